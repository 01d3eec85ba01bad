package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Trends returns the top gainers or losers of an index. Results are cached
// briefly; the watcher polls this on every tick.
func (c *Client) Trends(ctx context.Context, trendType TrendType, index MarketIndex, limit int) ([]Trend, error) {
	key := fmt.Sprintf("trends:%s:%s:%d", trendType, index, limit)

	return cached(c, key, c.ttl.TrendsTTL, func() ([]Trend, error) {
		query := url.Values{}
		query.Set("type", string(trendType))
		query.Set("index", string(index))
		query.Set("limit", strconv.Itoa(limit))

		var trends []Trend
		if err := c.get(ctx, "/market/trends", query, &trends); err != nil {
			return nil, fmt.Errorf("fetching market trends: %w", err)
		}

		return trends, nil
	})
}

// MarketStatus reports whether the exchange is open, with IST session times.
func (c *Client) MarketStatus(ctx context.Context) (MarketStatus, error) {
	return cached(c, "market:status", c.ttl.QuoteTTL, func() (MarketStatus, error) {
		var status MarketStatus
		if err := c.get(ctx, "/market/status", nil, &status); err != nil {
			return MarketStatus{}, fmt.Errorf("fetching market status: %w", err)
		}

		return status, nil
	})
}
