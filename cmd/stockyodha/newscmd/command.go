// Package newscmd implements the recent news command.
package newscmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockyodha/terminal/internal/business"
	"github.com/stockyodha/terminal/internal/cmdutils"
	"github.com/stockyodha/terminal/internal/config"
)

func Cmd(buildInfo string) *cobra.Command {
	var (
		since time.Duration
		limit int
	)

	cmd := &cobra.Command{
		Use:   "news",
		Short: "Show recent market news",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				news, err := rt.Client.RecentNews(ctx, int(since.Seconds()), limit)
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, news)
			})
		},
	}

	cmd.Flags().DurationVar(&since, "since", 3*time.Hour, "look back this far")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of articles")

	return cmd
}
