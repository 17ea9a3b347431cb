package square

import (
	"context"
)

// ListCategories lists the item categories of the v1 location
func (c *Client) ListCategories(ctx context.Context) (*Response, error) {
	return c.Do(ctx, RequestSpec{Version: V1, Endpoint: "categories", Method: "GET", LocationScoped: true})
}

// ListDiscounts lists the discounts of the v1 location
func (c *Client) ListDiscounts(ctx context.Context) (*Response, error) {
	return c.Do(ctx, RequestSpec{Version: V1, Endpoint: "discounts", Method: "GET", LocationScoped: true})
}

// ListFees lists the fees (taxes) of the v1 location
func (c *Client) ListFees(ctx context.Context) (*Response, error) {
	return c.Do(ctx, RequestSpec{Version: V1, Endpoint: "fees", Method: "GET", LocationScoped: true})
}

// ListModifiers lists the modifier lists of the v1 location
func (c *Client) ListModifiers(ctx context.Context) (*Response, error) {
	return c.Do(ctx, RequestSpec{Version: V1, Endpoint: "modifier-lists", Method: "GET", LocationScoped: true})
}

// GetModifier returns one modifier list with its options
func (c *Client) GetModifier(ctx context.Context, modifierListID string) (*Response, error) {
	id, err := c.segment("modifier_list_id", modifierListID)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestSpec{Version: V1, Endpoint: "modifier-lists/" + id, Method: "GET", LocationScoped: true})
}
