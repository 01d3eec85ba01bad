// Package stockcmd implements the listing commands: quote, search and
// history.
package stockcmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockyodha/terminal/internal/api"
	"github.com/stockyodha/terminal/internal/business"
	"github.com/stockyodha/terminal/internal/cmdutils"
	"github.com/stockyodha/terminal/internal/config"
)

func QuoteCmd(buildInfo string) *cobra.Command {
	var withNews int

	cmd := &cobra.Command{
		Use:   "quote <exchange> <symbol>",
		Short: "Show the full record of one listing, including the latest quote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				stock, err := rt.Client.Stock(ctx, args[0], args[1])
				if err != nil {
					return err
				}

				if withNews <= 0 {
					return cmdutils.Render(cmd, stock)
				}

				news, err := rt.Client.StockNews(ctx, args[0], args[1], withNews)
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, struct {
					Stock api.Stock  `json:"stock"`
					News  []api.News `json:"news"`
				}{Stock: stock, News: news})
			})
		},
	}

	cmd.Flags().IntVar(&withNews, "news", 0, "include up to N related news articles")

	return cmd
}

func SearchCmd(buildInfo string) *cobra.Command {
	var (
		exchange string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search listings by symbol or name (minimum 3 characters)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				stocks, err := rt.Client.Search(ctx, strings.Join(args, " "), exchange, limit)
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, stocks)
			})
		},
	}

	cmd.Flags().StringVar(&exchange, "exchange", "", "restrict to one exchange (nse|bse)")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of results")

	return cmd
}

func HistoryCmd(buildInfo string) *cobra.Command {
	var (
		resolution string
		days       int
	)

	cmd := &cobra.Command{
		Use:   "history <exchange> <symbol>",
		Short: "Show OHLCV candles for an NSE listing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				to := time.Now()
				from := to.AddDate(0, 0, -days)

				points, err := rt.Client.History(ctx, args[0], args[1], api.Resolution(resolution), from.Unix(), to.Unix())
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, points)
			})
		},
	}

	cmd.Flags().StringVar(&resolution, "resolution", string(api.ResolutionOneDay),
		fmt.Sprintf("candle resolution (%s|%s|%s|%s|%s|%s)",
			api.ResolutionOneDay, api.ResolutionOneMonth, api.ResolutionThreeMonths,
			api.ResolutionSixMonths, api.ResolutionOneYear, api.ResolutionFiveYears))
	cmd.Flags().IntVar(&days, "days", 30, "look back this many days")

	return cmd
}
