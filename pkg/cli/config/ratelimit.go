package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/mnemosyne/pkg/service/ratelimit"
)

// RateLimit holds CLI flags for the request rate limiter
type RateLimit struct {
	limit    int
	window   time.Duration
	sweep    time.Duration
	disabled bool
}

// Flags returns CLI flags for rate limiter configuration
func (r *RateLimit) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "rate-limit",
			Usage:       "Max requests per client per window",
			Value:       60,
			Category:    "Rate limiting",
			Sources:     cli.EnvVars("MNEMOSYNE_RATE_LIMIT"),
			Destination: &r.limit,
		},
		&cli.DurationFlag{
			Name:        "rate-limit-window",
			Usage:       "Rate limit window size",
			Value:       time.Minute,
			Category:    "Rate limiting",
			Sources:     cli.EnvVars("MNEMOSYNE_RATE_LIMIT_WINDOW"),
			Destination: &r.window,
		},
		&cli.DurationFlag{
			Name:        "rate-limit-sweep",
			Usage:       "Interval for sweeping idle rate limit clients",
			Value:       5 * time.Minute,
			Category:    "Rate limiting",
			Sources:     cli.EnvVars("MNEMOSYNE_RATE_LIMIT_SWEEP"),
			Destination: &r.sweep,
		},
		&cli.BoolFlag{
			Name:        "no-rate-limit",
			Usage:       "Disable request rate limiting",
			Category:    "Rate limiting",
			Sources:     cli.EnvVars("MNEMOSYNE_NO_RATE_LIMIT"),
			Destination: &r.disabled,
		},
	}
}

// SweepInterval returns how often idle clients are pruned
func (r *RateLimit) SweepInterval() time.Duration {
	return r.sweep
}

// Configure builds the rate limiter. Returns nil when limiting is
// disabled.
func (r *RateLimit) Configure() *ratelimit.Limiter {
	if r.disabled {
		return nil
	}

	var opts []ratelimit.Option
	if r.limit > 0 {
		opts = append(opts, ratelimit.WithLimit(r.limit))
	}
	if r.window > 0 {
		opts = append(opts, ratelimit.WithWindow(r.window))
	}

	return ratelimit.New(opts...)
}
