package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/stockyodha/terminal/internal/serviceerr"
)

// Search looks up listings by symbol or name. The platform requires at least
// three characters; shorter queries fail locally without a network call.
// exchange is an optional filter ("nse" or "bse").
func (c *Client) Search(ctx context.Context, query, exchange string, limit int) ([]Stock, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < 3 {
		return nil, &serviceerr.Error{
			Err:         serviceerr.CodeValidation,
			Description: "search query must be at least 3 characters",
		}
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	if exchange != "" {
		params.Set("exchange", exchange)
	}

	var stocks []Stock
	if err := c.get(ctx, "/stocks/search", params, &stocks); err != nil {
		return nil, fmt.Errorf("searching stocks: %w", err)
	}

	return stocks, nil
}

// Stock fetches the full record of one listing, including its latest quote.
func (c *Client) Stock(ctx context.Context, exchange, symbol string) (Stock, error) {
	key := fmt.Sprintf("quote:%s:%s", strings.ToUpper(exchange), strings.ToUpper(symbol))

	return cached(c, key, c.ttl.QuoteTTL, func() (Stock, error) {
		var stock Stock
		path := "/stocks/" + url.PathEscape(exchange) + "/" + url.PathEscape(symbol)
		if err := c.get(ctx, path, nil, &stock); err != nil {
			return Stock{}, fmt.Errorf("fetching stock %s:%s: %w", exchange, symbol, err)
		}

		return stock, nil
	})
}

// StockNews returns news articles related to one listing.
func (c *Client) StockNews(ctx context.Context, exchange, symbol string, limit int) ([]News, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var news []News
	path := "/stocks/" + url.PathEscape(exchange) + "/" + url.PathEscape(symbol) + "/news"
	if err := c.get(ctx, path, query, &news); err != nil {
		return nil, fmt.Errorf("fetching stock news: %w", err)
	}

	return news, nil
}

// History returns OHLCV candles between the from and to Unix timestamps. The
// platform serves history for NSE listings only.
func (c *Client) History(ctx context.Context, exchange, symbol string, resolution Resolution, from, to int64) ([]HistoryPoint, error) {
	if !strings.EqualFold(exchange, "nse") {
		return nil, &serviceerr.Error{
			Err:         serviceerr.CodeValidation,
			Description: "price history is only available for NSE listings",
		}
	}

	query := url.Values{}
	query.Set("resolution", string(resolution))
	query.Set("from", strconv.FormatInt(from, 10))
	query.Set("to", strconv.FormatInt(to, 10))

	var points []HistoryPoint
	path := "/stocks/" + url.PathEscape(exchange) + "/" + url.PathEscape(symbol) + "/history"
	if err := c.get(ctx, path, query, &points); err != nil {
		return nil, fmt.Errorf("fetching price history: %w", err)
	}

	return points, nil
}
