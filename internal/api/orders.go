package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// PlaceOrder submits a buy or sell order. Market orders leave LimitPrice nil.
func (c *Client) PlaceOrder(ctx context.Context, order OrderCreate) (Order, error) {
	var placed Order
	if err := c.doJSON(ctx, http.MethodPost, "/orders", nil, order, &placed); err != nil {
		return Order{}, fmt.Errorf("placing order: %w", err)
	}

	return placed, nil
}

// Orders lists the orders of the authenticated user, newest first.
func (c *Client) Orders(ctx context.Context, limit, skip int) ([]Order, error) {
	var orders []Order
	if err := c.get(ctx, "/orders", pagination(limit, skip), &orders); err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	return orders, nil
}

func (c *Client) Order(ctx context.Context, id string) (Order, error) {
	var order Order
	if err := c.get(ctx, "/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return Order{}, fmt.Errorf("fetching order: %w", err)
	}

	return order, nil
}

// CancelOrder cancels a pending order. Executed orders cannot be cancelled;
// the platform answers with a conflict in that case.
func (c *Client) CancelOrder(ctx context.Context, id string) (Order, error) {
	var order Order
	if err := c.doJSON(ctx, http.MethodPost, "/orders/"+url.PathEscape(id)+"/cancel", nil, nil, &order); err != nil {
		return Order{}, fmt.Errorf("cancelling order: %w", err)
	}

	return order, nil
}
