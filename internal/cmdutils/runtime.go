package cmdutils

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stockyodha/terminal/internal/business"
	"github.com/stockyodha/terminal/internal/config"
)

// RunTerminal is the body of every one-shot terminal command: load config,
// set up the logger, wire a runtime, optionally insist on a session, and run
// fn.
func RunTerminal(cmd *cobra.Command, buildInfo string, needAuth bool, fn func(context.Context, *business.Runtime, *config.Config) error) error {
	cfg, err := LoadConfig(buildInfo)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	return RunAsJob(cmd.Context(), func(ctx context.Context, cfg *config.Config) error {
		rt, err := business.NewRuntime(ctx, cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		if needAuth {
			if err := rt.RequireAuth(); err != nil {
				return err
			}
		}

		return fn(ctx, rt, cfg)
	}, cfg)
}
