package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/openkcm/common-sdk/pkg/utils"
	"github.com/spf13/cobra"

	slogctx "github.com/veqryn/slog-context"

	"github.com/stockyodha/terminal/cmd/stockyodha/authcmd"
	"github.com/stockyodha/terminal/cmd/stockyodha/marketcmd"
	"github.com/stockyodha/terminal/cmd/stockyodha/newscmd"
	"github.com/stockyodha/terminal/cmd/stockyodha/ordercmd"
	"github.com/stockyodha/terminal/cmd/stockyodha/portfoliocmd"
	"github.com/stockyodha/terminal/cmd/stockyodha/stockcmd"
	"github.com/stockyodha/terminal/cmd/stockyodha/watchcmd"
	"github.com/stockyodha/terminal/cmd/stockyodha/watchlistcmd"
)

var (
	// BuildInfo will be set by the build system
	BuildInfo = "{}"

	isVersionCmd     bool
	gracefulShutdown time.Duration
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "StockYodha Terminal Version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		isVersionCmd = true

		value, err := utils.ExtractFromComplexValue(BuildInfo)
		if err != nil {
			return err
		}

		slog.InfoContext(cmd.Context(), value)

		return nil
	},
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stockyodha",
		Short: "StockYodha Terminal",
		Long:  "Headless terminal client for the StockYodha virtual trading platform.",
	}

	cmd.PersistentFlags().DurationVar(&gracefulShutdown, "graceful-shutdown", 0, "graceful shutdown")
	cmd.PersistentFlags().StringP("output", "o", "json", "output format (json|yaml)")

	cmd.AddCommand(
		versionCmd,
		authcmd.LoginCmd(BuildInfo),
		authcmd.LogoutCmd(BuildInfo),
		authcmd.WhoamiCmd(BuildInfo),
		authcmd.RegisterCmd(BuildInfo),
		stockcmd.QuoteCmd(BuildInfo),
		stockcmd.SearchCmd(BuildInfo),
		stockcmd.HistoryCmd(BuildInfo),
		marketcmd.TrendsCmd(BuildInfo),
		marketcmd.StatusCmd(BuildInfo),
		portfoliocmd.Cmd(BuildInfo),
		ordercmd.Cmd(BuildInfo),
		watchlistcmd.Cmd(BuildInfo),
		newscmd.Cmd(BuildInfo),
		watchcmd.Cmd(BuildInfo),
	)

	return cmd
}

func execute() error {
	ctx, cancelOnSignal := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancelOnSignal()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		slogctx.Error(ctx, "failed to run the command", "error", err)
		_, _ = fmt.Fprintln(os.Stderr, err)

		return err
	}

	if !isVersionCmd && gracefulShutdown > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "Graceful shutdown in %s\n", gracefulShutdown)
		time.Sleep(gracefulShutdown)
	}

	return nil
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
