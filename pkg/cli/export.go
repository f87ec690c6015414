package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/mnemosyne/pkg/cli/config"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/service/memstore"
	"github.com/secmon-lab/mnemosyne/pkg/utils/logging"
	"github.com/secmon-lab/mnemosyne/pkg/utils/safe"
)

func cmdExport() *cli.Command {
	var userID string
	var output string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user",
			Usage:       "User ID to export",
			Value:       string(types.DefaultUserID),
			Sources:     cli.EnvVars("MNEMOSYNE_EXPORT_USER"),
			Destination: &userID,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file path (stdout if empty)",
			Destination: &output,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "export",
		Usage: "Export a user's memory document as JSON",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uid := types.UserID(userID).Normalize()
			if err := uid.Validate(); err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			store := memstore.New(repo)
			doc, err := store.Load(ctx, uid)
			if err != nil {
				return goerr.Wrap(err, "failed to load memory document")
			}

			bundle := model.NewExportBundle(uid, doc, store.Now())

			data, err := json.MarshalIndent(bundle, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to marshal export bundle")
			}
			data = append(data, '\n')

			if output == "" {
				safe.Write(ctx, os.Stdout, data)
				return nil
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return goerr.Wrap(err, "failed to write export file", goerr.V("path", output))
			}

			logging.Default().Info("Export completed",
				"user_id", uid,
				"path", output,
				"events", bundle.Summary.TotalEvents,
			)
			return nil
		},
	}
}
