package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/mnemosyne/pkg/cli/config"
	httpctrl "github.com/secmon-lab/mnemosyne/pkg/controller/http"
	"github.com/secmon-lab/mnemosyne/pkg/service/coach"
	"github.com/secmon-lab/mnemosyne/pkg/service/memstore"
	"github.com/secmon-lab/mnemosyne/pkg/service/worker"
	"github.com/secmon-lab/mnemosyne/pkg/usecase"
	"github.com/secmon-lab/mnemosyne/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var llmCfg config.LLM
	var rateLimitCfg config.RateLimit
	var sentryCfg config.Sentry
	var coachCfg config.Coach

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("MNEMOSYNE_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)
	flags = append(flags, rateLimitCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, coachCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sentryCloser, err := sentryCfg.Configure(c.Root().Version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure sentry")
			}
			defer sentryCloser()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			llmClient, err := llmCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure LLM client")
			}
			if llmClient == nil {
				return goerr.New("LLM API key is required for serving")
			}

			persona, err := coachCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load persona")
			}
			logging.Default().Info("Coach persona loaded", "name", persona.Name)

			store := memstore.New(repo)
			coachSvc := coach.New(llmClient, persona)
			uc := usecase.New(store, coachSvc)

			httpOpts := []httpctrl.Options{}

			limiter := rateLimitCfg.Configure()
			var sweeper *worker.RateLimitSweepWorker
			if limiter != nil {
				httpOpts = append(httpOpts, httpctrl.WithRateLimiter(limiter))

				sweeper = worker.NewRateLimitSweepWorker(limiter, rateLimitCfg.SweepInterval())
				if err := sweeper.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start rate limit sweep worker")
				}
				logging.Default().Info("Rate limiting enabled",
					"limit", limiter.Limit(),
					"window", limiter.Window(),
				)
			} else {
				logging.Default().Warn("Rate limiting disabled")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if sweeper != nil {
					sweeper.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
