package square

import (
	"context"
	"strconv"
)

// ListInventory lists inventory counts of the v1 location. A limit of 0
// leaves the page size to the server.
func (c *Client) ListInventory(ctx context.Context, limit int) (*Response, error) {
	if err := c.check("limit", limit, "gte=0,lte=1000"); err != nil {
		return nil, err
	}

	spec := RequestSpec{Version: V1, Endpoint: "inventory", Method: "GET", LocationScoped: true}
	if limit > 0 {
		spec.Query = map[string]string{"limit": strconv.Itoa(limit)}
	}
	return c.Do(ctx, spec)
}

// UpdateInventory adjusts the stock of an item variation by quantity
func (c *Client) UpdateInventory(ctx context.Context, variationID string, quantity float64, typ AdjustmentType, memo string) (*Response, error) {
	id, err := c.segment("variation_id", variationID)
	if err != nil {
		return nil, err
	}
	if err := c.check("adjustment_type", string(typ), "oneof=SALE RECEIVE_STOCK MANUAL_ADJUST"); err != nil {
		return nil, err
	}

	body := map[string]any{
		"quantity_delta":  quantity,
		"adjustment_type": string(typ),
	}
	putString(body, "memo", memo)

	return c.Do(ctx, RequestSpec{Version: V1, Endpoint: "inventory/" + id, Method: "POST", LocationScoped: true, Body: body})
}
