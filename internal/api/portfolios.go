package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

func pagination(limit, skip int) url.Values {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("skip", strconv.Itoa(skip))

	return query
}

// Portfolios lists the portfolios of the authenticated user.
func (c *Client) Portfolios(ctx context.Context, limit, skip int) ([]Portfolio, error) {
	var portfolios []Portfolio
	if err := c.get(ctx, "/portfolios/", pagination(limit, skip), &portfolios); err != nil {
		return nil, fmt.Errorf("listing portfolios: %w", err)
	}

	return portfolios, nil
}

func (c *Client) CreatePortfolio(ctx context.Context, create PortfolioCreate) (Portfolio, error) {
	var portfolio Portfolio
	if err := c.doJSON(ctx, http.MethodPost, "/portfolios/", nil, create, &portfolio); err != nil {
		return Portfolio{}, fmt.Errorf("creating portfolio: %w", err)
	}

	return portfolio, nil
}

func (c *Client) UpdatePortfolio(ctx context.Context, id string, update PortfolioUpdate) (Portfolio, error) {
	var portfolio Portfolio
	if err := c.doJSON(ctx, http.MethodPut, "/portfolios/"+url.PathEscape(id), nil, update, &portfolio); err != nil {
		return Portfolio{}, fmt.Errorf("updating portfolio: %w", err)
	}

	return portfolio, nil
}

func (c *Client) DeletePortfolio(ctx context.Context, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/portfolios/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting portfolio: %w", err)
	}

	return nil
}

// Performance returns the valuation of a portfolio against current prices.
func (c *Client) Performance(ctx context.Context, id string) (PortfolioPerformance, error) {
	var performance PortfolioPerformance
	if err := c.get(ctx, "/portfolios/"+url.PathEscape(id)+"/performance", nil, &performance); err != nil {
		return PortfolioPerformance{}, fmt.Errorf("fetching portfolio performance: %w", err)
	}

	return performance, nil
}

// Holdings lists the positions held in a portfolio.
func (c *Client) Holdings(ctx context.Context, id string, limit, skip int) ([]Holding, error) {
	var holdings []Holding
	if err := c.get(ctx, "/portfolios/"+url.PathEscape(id)+"/holdings", pagination(limit, skip), &holdings); err != nil {
		return nil, fmt.Errorf("listing holdings: %w", err)
	}

	return holdings, nil
}
