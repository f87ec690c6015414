package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/claude"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/urfave/cli/v3"
)

// LLM holds configuration for the coaching LLM client
type LLM struct {
	provider string
	apiKey   string
	model    string
}

// Flags returns CLI flags for LLM configuration
func (l *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Usage:       "LLM provider (openai or claude)",
			Value:       "openai",
			Category:    "LLM",
			Sources:     cli.EnvVars("MNEMOSYNE_LLM_PROVIDER"),
			Destination: &l.provider,
		},
		&cli.StringFlag{
			Name:        "llm-api-key",
			Usage:       "API key for the LLM provider",
			Category:    "LLM",
			Sources:     cli.EnvVars("MNEMOSYNE_LLM_API_KEY", "OPENAI_API_KEY"),
			Destination: &l.apiKey,
		},
		&cli.StringFlag{
			Name:        "llm-model",
			Usage:       "Model name override for the selected provider",
			Category:    "LLM",
			Sources:     cli.EnvVars("MNEMOSYNE_LLM_MODEL"),
			Destination: &l.model,
		},
	}
}

// LogAttrs returns log attributes for the LLM configuration. The API
// key is deliberately omitted.
func (l *LLM) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("provider", l.provider),
		slog.String("model", l.model),
		slog.Bool("api_key_set", l.apiKey != ""),
	}
}

// Configure creates a new LLM client from the configured flags.
// Returns nil if no API key is configured (coaching features will be
// disabled).
func (l *LLM) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if l.apiKey == "" {
		return nil, nil
	}

	switch l.provider {
	case "openai":
		var opts []openai.Option
		if l.model != "" {
			opts = append(opts, openai.WithModel(l.model))
		}
		client, err := openai.New(ctx, l.apiKey, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create OpenAI client")
		}
		return client, nil

	case "claude":
		var opts []claude.Option
		if l.model != "" {
			opts = append(opts, claude.WithModel(l.model))
		}
		client, err := claude.New(ctx, l.apiKey, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Claude client")
		}
		return client, nil

	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid LLM provider", goerr.V(ProviderKey, l.provider))
	}
}
