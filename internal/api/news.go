package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// RecentNews returns articles published within the last lastSeconds, each
// annotated with a human readable "ago" field by the platform.
func (c *Client) RecentNews(ctx context.Context, lastSeconds, limit int) ([]News, error) {
	key := fmt.Sprintf("news:%d:%d", lastSeconds, limit)

	return cached(c, key, c.ttl.NewsTTL, func() ([]News, error) {
		query := url.Values{}
		query.Set("last_seconds", strconv.Itoa(lastSeconds))
		query.Set("limit", strconv.Itoa(limit))

		var news []News
		if err := c.get(ctx, "/news/recent", query, &news); err != nil {
			return nil, fmt.Errorf("fetching recent news: %w", err)
		}

		return news, nil
	})
}
