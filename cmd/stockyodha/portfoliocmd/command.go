// Package portfoliocmd implements the portfolio command family.
package portfoliocmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stockyodha/terminal/internal/api"
	"github.com/stockyodha/terminal/internal/business"
	"github.com/stockyodha/terminal/internal/cmdutils"
	"github.com/stockyodha/terminal/internal/config"
)

func Cmd(buildInfo string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Manage portfolios",
	}

	cmd.AddCommand(
		listCmd(buildInfo),
		createCmd(buildInfo),
		renameCmd(buildInfo),
		deleteCmd(buildInfo),
		performanceCmd(buildInfo),
		holdingsCmd(buildInfo),
	)

	return cmd
}

func listCmd(buildInfo string) *cobra.Command {
	var limit, skip int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your portfolios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				portfolios, err := rt.Client.Portfolios(ctx, limit, skip)
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, portfolios)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of portfolios")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of portfolios to skip")

	return cmd
}

func createCmd(buildInfo string) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				create := api.PortfolioCreate{Name: args[0]}
				if description != "" {
					create.Description = &description
				}

				portfolio, err := rt.Client.CreatePortfolio(ctx, create)
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, portfolio)
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "portfolio description")

	return cmd
}

func renameCmd(buildInfo string) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "rename <portfolio-id>",
		Short: "Change the name or description of a portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				update := api.PortfolioUpdate{}
				if name != "" {
					update.Name = &name
				}
				if description != "" {
					update.Description = &description
				}

				portfolio, err := rt.Client.UpdatePortfolio(ctx, args[0], update)
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, portfolio)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description")

	return cmd
}

func deleteCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <portfolio-id>",
		Short: "Delete a portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				return rt.Client.DeletePortfolio(ctx, args[0])
			})
		},
	}
}

func performanceCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "performance <portfolio-id>",
		Short: "Show the valuation of a portfolio against current prices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				performance, err := rt.Client.Performance(ctx, args[0])
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, performance)
			})
		},
	}
}

func holdingsCmd(buildInfo string) *cobra.Command {
	var limit, skip int

	cmd := &cobra.Command{
		Use:   "holdings <portfolio-id>",
		Short: "List the positions held in a portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				holdings, err := rt.Client.Holdings(ctx, args[0], limit, skip)
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, holdings)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of holdings")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of holdings to skip")

	return cmd
}
