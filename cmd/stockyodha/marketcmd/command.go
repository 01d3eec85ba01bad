// Package marketcmd implements the market-wide commands: trends and
// market-status.
package marketcmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stockyodha/terminal/internal/api"
	"github.com/stockyodha/terminal/internal/business"
	"github.com/stockyodha/terminal/internal/cmdutils"
	"github.com/stockyodha/terminal/internal/config"
)

func TrendsCmd(buildInfo string) *cobra.Command {
	var (
		index string
		limit int
	)

	cmd := &cobra.Command{
		Use:       "trends [gainers|losers]",
		Short:     "Show the top gainers or losers of an index",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"gainers", "losers"},
		RunE: func(cmd *cobra.Command, args []string) error {
			trendType := api.TrendTopGainers
			if len(args) == 1 {
				switch args[0] {
				case "gainers":
					trendType = api.TrendTopGainers
				case "losers":
					trendType = api.TrendTopLosers
				default:
					return fmt.Errorf("unknown trend %q, want gainers or losers", args[0])
				}
			}

			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				trends, err := rt.Client.Trends(ctx, trendType, api.MarketIndex(index), limit)
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, trends)
			})
		},
	}

	cmd.Flags().StringVar(&index, "index", string(api.IndexNifty100), "market index")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of entries")

	return cmd
}

func StatusCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "market-status",
		Short: "Show whether the exchange is open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				status, err := rt.Client.MarketStatus(ctx)
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, status)
			})
		},
	}
}
