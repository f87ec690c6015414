package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	domainConfig "github.com/secmon-lab/mnemosyne/pkg/domain/model/config"
)

// Coach holds CLI flags for coach persona configuration
type Coach struct {
	personaPath string
}

// Flags returns CLI flags for coach configuration
func (c *Coach) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "persona",
			Usage:       "Path to persona TOML file (empty for the default persona)",
			Category:    "Coach",
			Sources:     cli.EnvVars("MNEMOSYNE_PERSONA"),
			Destination: &c.personaPath,
		},
	}
}

// Configure loads and validates the persona. Without a path the
// default persona is returned.
func (c *Coach) Configure() (*domainConfig.Persona, error) {
	if c.personaPath == "" {
		return domainConfig.DefaultPersona(), nil
	}

	data, err := os.ReadFile(c.personaPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "persona file does not exist", goerr.V(ConfigPathKey, c.personaPath))
		}
		return nil, goerr.Wrap(err, "failed to read persona file", goerr.V(ConfigPathKey, c.personaPath))
	}

	var persona domainConfig.Persona
	if err := toml.Unmarshal(data, &persona); err != nil {
		return nil, goerr.Wrap(err, "failed to parse persona file", goerr.V(ConfigPathKey, c.personaPath))
	}

	persona.Normalize()
	if err := persona.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid persona", goerr.V(ConfigPathKey, c.personaPath))
	}

	return &persona, nil
}
