// Package ordercmd implements the order command family.
package ordercmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stockyodha/terminal/internal/api"
	"github.com/stockyodha/terminal/internal/business"
	"github.com/stockyodha/terminal/internal/cmdutils"
	"github.com/stockyodha/terminal/internal/config"
)

func Cmd(buildInfo string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place and inspect orders",
	}

	cmd.AddCommand(
		placeCmd(buildInfo),
		listCmd(buildInfo),
		getCmd(buildInfo),
		cancelCmd(buildInfo),
	)

	return cmd
}

func placeCmd(buildInfo string) *cobra.Command {
	var (
		portfolioID string
		quantity    int64
		limitPrice  string
	)

	cmd := &cobra.Command{
		Use:   "place <buy|sell> <exchange> <symbol>",
		Short: "Place a market or limit order",
		Long:  "Place a market order, or a limit order when --limit-price is given. Funds or shares are held until the order settles.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var transaction api.TransactionType

			switch strings.ToLower(args[0]) {
			case "buy":
				transaction = api.TransactionBuy
			case "sell":
				transaction = api.TransactionSell
			default:
				return fmt.Errorf("unknown transaction %q, want buy or sell", args[0])
			}

			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				create := api.OrderCreate{
					PortfolioID:     portfolioID,
					Exchange:        args[1],
					Symbol:          args[2],
					OrderType:       api.OrderTypeMarket,
					TransactionType: transaction,
					Quantity:        quantity,
				}

				if limitPrice != "" {
					create.OrderType = api.OrderTypeLimit
					create.LimitPrice = &limitPrice
				}

				order, err := rt.Client.PlaceOrder(ctx, create)
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, order)
			})
		},
	}

	cmd.Flags().StringVar(&portfolioID, "portfolio", "", "portfolio to trade in")
	cmd.Flags().Int64Var(&quantity, "quantity", 1, "number of shares")
	cmd.Flags().StringVar(&limitPrice, "limit-price", "", "limit price (makes this a limit order)")
	_ = cmd.MarkFlagRequired("portfolio")

	return cmd
}

func listCmd(buildInfo string) *cobra.Command {
	var limit, skip int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				orders, err := rt.Client.Orders(ctx, limit, skip)
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, orders)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of orders")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of orders to skip")

	return cmd
}

func getCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <order-id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				order, err := rt.Client.Order(ctx, args[0])
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, order)
			})
		},
	}
}

func cancelCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel a pending order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				order, err := rt.Client.CancelOrder(ctx, args[0])
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, order)
			})
		},
	}
}
