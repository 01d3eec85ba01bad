// Package watchlistcmd implements the watchlist command family.
package watchlistcmd

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
		Use:   "watchlist",
		Short: "Manage watchlists",
	}

	cmd.AddCommand(
		listCmd(buildInfo),
		createCmd(buildInfo),
		renameCmd(buildInfo),
		deleteCmd(buildInfo),
		setDefaultCmd(buildInfo),
		stocksCmd(buildInfo),
		addCmd(buildInfo),
		removeCmd(buildInfo),
	)

	return cmd
}

func listCmd(buildInfo string) *cobra.Command {
	var limit, skip int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your watchlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				watchlists, err := rt.Client.Watchlists(ctx, limit, skip)
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, watchlists)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of watchlists")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of watchlists to skip")

	return cmd
}

func createCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				rt.Store.WaitProfile()

				user := rt.Store.User()
				if user == nil {
					if err := rt.Store.FetchUser(ctx); err != nil {
						return err
					}

					user = rt.Store.User()
				}

				watchlist, err := rt.Client.CreateWatchlist(ctx, api.WatchlistCreate{Name: args[0], UserID: user.ID})
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, watchlist)
			})
		},
	}
}

func renameCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <watchlist-id> <name>",
		Short: "Rename a watchlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				watchlist, err := rt.Client.RenameWatchlist(ctx, args[0], api.WatchlistUpdate{Name: &args[1]})
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, watchlist)
			})
		},
	}
}

func deleteCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <watchlist-id>",
		Short: "Delete a watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				return rt.Client.DeleteWatchlist(ctx, args[0])
			})
		},
	}
}

func setDefaultCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "set-default <watchlist-id>",
		Short: "Make a watchlist the default target for quick adds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				watchlist, err := rt.Client.SetDefaultWatchlist(ctx, args[0])
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, watchlist)
			})
		},
	}
}

func stocksCmd(buildInfo string) *cobra.Command {
	var limit, skip int

	cmd := &cobra.Command{
		Use:   "stocks <watchlist-id>",
		Short: "List the entries of a watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				stocks, err := rt.Client.WatchlistStocks(ctx, args[0], limit, skip)
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, stocks)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of entries")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of entries to skip")

	return cmd
}

func addCmd(buildInfo string) *cobra.Command {
	var watchlistID string

	cmd := &cobra.Command{
		Use:   "add <exchange> <symbol>",
		Short: "Add a listing to a watchlist (the default one when --watchlist is omitted)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				var (
					added api.WatchlistStock
					err   error
				)

				if watchlistID == "" {
					added, err = rt.Client.AddDefaultWatchlistStock(ctx, args[0], args[1])
				} else {
					added, err = rt.Client.AddWatchlistStock(ctx, watchlistID, args[0], args[1])
				}

				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, added)
			})
		},
	}

	cmd.Flags().StringVar(&watchlistID, "watchlist", "", "target watchlist id")

	return cmd
}

func removeCmd(buildInfo string) *cobra.Command {
	var watchlistID string

	cmd := &cobra.Command{
		Use:   "remove <exchange> <symbol>",
		Short: "Remove a listing from a watchlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				return rt.Client.RemoveWatchlistStock(ctx, watchlistID, args[0], args[1])
			})
		},
	}

	cmd.Flags().StringVar(&watchlistID, "watchlist", "", "watchlist id")
	_ = cmd.MarkFlagRequired("watchlist")

	return cmd
}
