package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	slogctx "github.com/veqryn/slog-context"

	"github.com/stockyodha/terminal/internal/api"
	"github.com/stockyodha/terminal/internal/config"
	"github.com/stockyodha/terminal/internal/gateway"
	"github.com/stockyodha/terminal/internal/serviceerr"
)

// WatcherMain runs the quote watcher: a periodic poll of the market status
// and the default watchlist, logged as structured quotes. It exits when the
// context is cancelled or the session ends.
func WatcherMain(ctx context.Context, cfg *config.Config) error {
	if err := gateway.InitMeters(ctx, cfg); err != nil {
		return err
	}

	rt, err := NewRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.RequireAuth(); err != nil {
		return err
	}

	slogctx.Info(ctx, "Starting quote watcher", "interval", cfg.Watch.Interval)

	c := time.Tick(cfg.Watch.Interval)

	for {
		err := watchOnce(ctx, rt, cfg)
		if errors.Is(err, serviceerr.ErrNotAuthenticated) {
			// The refresh protocol gave up and ended the session;
			// there is nothing left to watch.
			return err
		}

		if err != nil {
			slogctx.Error(ctx, "Watch tick failed", "error", err)
		}

		select {
		case <-c:
			continue
		case <-ctx.Done():
			return nil
		}
	}
}

func watchOnce(ctx context.Context, rt *Runtime, cfg *config.Config) error {
	if err := rt.RequireAuth(); err != nil {
		return err
	}

	status, err := rt.Client.MarketStatus(ctx)
	if err != nil {
		return fmt.Errorf("fetching market status: %w", err)
	}

	slogctx.Info(ctx, "Market status", "status", status.Status)

	watchlist, err := defaultWatchlist(ctx, rt.Client)
	if err != nil {
		return err
	}

	if watchlist == nil {
		slogctx.Info(ctx, "No default watchlist, nothing to watch")
		return nil
	}

	stocks, err := rt.Client.WatchlistStocks(ctx, watchlist.ID, cfg.Watch.Limit, 0)
	if err != nil {
		return fmt.Errorf("listing watchlist stocks: %w", err)
	}

	for _, entry := range stocks {
		attrs := []any{"exchange", entry.Exchange, "symbol", entry.Symbol}

		if entry.Stock != nil && entry.Stock.Info != nil {
			info := entry.Stock.Info
			if info.CurrentPrice != nil {
				attrs = append(attrs, "price", *info.CurrentPrice)
			}

			if info.PricePercentChange != nil {
				attrs = append(attrs, "change_percent", *info.PricePercentChange)
			}
		}

		slogctx.Info(ctx, "Quote", attrs...)
	}

	return nil
}

func defaultWatchlist(ctx context.Context, client *api.Client) (*api.Watchlist, error) {
	watchlists, err := client.Watchlists(ctx, 50, 0)
	if err != nil {
		return nil, fmt.Errorf("listing watchlists: %w", err)
	}

	for i := range watchlists {
		if watchlists[i].IsDefault {
			return &watchlists[i], nil
		}
	}

	return nil, nil
}
