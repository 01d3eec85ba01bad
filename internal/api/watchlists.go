package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Watchlists lists the watchlists of the authenticated user.
func (c *Client) Watchlists(ctx context.Context, limit, skip int) ([]Watchlist, error) {
	var watchlists []Watchlist
	if err := c.get(ctx, "/watchlists", pagination(limit, skip), &watchlists); err != nil {
		return nil, fmt.Errorf("listing watchlists: %w", err)
	}

	return watchlists, nil
}

func (c *Client) CreateWatchlist(ctx context.Context, create WatchlistCreate) (Watchlist, error) {
	var watchlist Watchlist
	if err := c.doJSON(ctx, http.MethodPost, "/watchlists", nil, create, &watchlist); err != nil {
		return Watchlist{}, fmt.Errorf("creating watchlist: %w", err)
	}

	return watchlist, nil
}

func (c *Client) RenameWatchlist(ctx context.Context, id string, update WatchlistUpdate) (Watchlist, error) {
	var watchlist Watchlist
	if err := c.doJSON(ctx, http.MethodPut, "/watchlists/"+url.PathEscape(id), nil, update, &watchlist); err != nil {
		return Watchlist{}, fmt.Errorf("renaming watchlist: %w", err)
	}

	return watchlist, nil
}

func (c *Client) DeleteWatchlist(ctx context.Context, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/watchlists/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting watchlist: %w", err)
	}

	return nil
}

// SetDefaultWatchlist marks one watchlist as the default target for quick
// adds. The platform clears the flag on the previous default.
func (c *Client) SetDefaultWatchlist(ctx context.Context, id string) (Watchlist, error) {
	var watchlist Watchlist
	if err := c.doJSON(ctx, http.MethodPost, "/watchlists/"+url.PathEscape(id)+"/set-default", nil, nil, &watchlist); err != nil {
		return Watchlist{}, fmt.Errorf("setting default watchlist: %w", err)
	}

	return watchlist, nil
}

// WatchlistStocks lists the entries of a watchlist, each with the current
// stock record embedded when the platform has it.
func (c *Client) WatchlistStocks(ctx context.Context, id string, limit, skip int) ([]WatchlistStock, error) {
	var stocks []WatchlistStock
	if err := c.get(ctx, "/watchlists/"+url.PathEscape(id)+"/stocks", pagination(limit, skip), &stocks); err != nil {
		return nil, fmt.Errorf("listing watchlist stocks: %w", err)
	}

	return stocks, nil
}

type stockIdentifier struct {
	Exchange string `json:"exchange"`
	Symbol   string `json:"symbol"`
}

func (c *Client) AddWatchlistStock(ctx context.Context, id, exchange, symbol string) (WatchlistStock, error) {
	var added WatchlistStock
	payload := stockIdentifier{Exchange: exchange, Symbol: symbol}
	if err := c.doJSON(ctx, http.MethodPost, "/watchlists/"+url.PathEscape(id)+"/stocks", nil, payload, &added); err != nil {
		return WatchlistStock{}, fmt.Errorf("adding stock to watchlist: %w", err)
	}

	return added, nil
}

// AddDefaultWatchlistStock adds a listing to the default watchlist without
// the caller knowing its id.
func (c *Client) AddDefaultWatchlistStock(ctx context.Context, exchange, symbol string) (WatchlistStock, error) {
	var added WatchlistStock
	payload := stockIdentifier{Exchange: exchange, Symbol: symbol}
	if err := c.doJSON(ctx, http.MethodPost, "/watchlists/default/stocks", nil, payload, &added); err != nil {
		return WatchlistStock{}, fmt.Errorf("adding stock to default watchlist: %w", err)
	}

	return added, nil
}

func (c *Client) RemoveWatchlistStock(ctx context.Context, id, exchange, symbol string) error {
	path := "/watchlists/" + url.PathEscape(id) + "/stocks/" + url.PathEscape(exchange) + "/" + url.PathEscape(symbol)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("removing stock from watchlist: %w", err)
	}

	return nil
}
