package square

import (
	"context"
)

// ListLocations lists the locations of the business (v2)
func (c *Client) ListLocations(ctx context.Context) (*Response, error) {
	return c.Do(ctx, RequestSpec{Version: V2, Endpoint: "locations", Method: "GET"})
}

// GetBusiness returns the merchant profile behind the v1 token
func (c *Client) GetBusiness(ctx context.Context) (*Response, error) {
	return c.Do(ctx, RequestSpec{Version: V1, Endpoint: "me", Method: "GET"})
}

// ListLocationsV1 lists the locations of the business (v1)
func (c *Client) ListLocationsV1(ctx context.Context) (*Response, error) {
	return c.Do(ctx, RequestSpec{Version: V1, Endpoint: "me/locations", Method: "GET"})
}
