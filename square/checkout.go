package square

import (
	"context"
)

// CreateCheckout creates a hosted checkout page for order. The response
// carries the checkout_page_url the buyer should be sent to.
func (c *Client) CreateCheckout(ctx context.Context, order Order, email string) (*Response, error) {
	if err := c.check("pre_populate_buyer_email", email, "omitempty,email"); err != nil {
		return nil, err
	}

	body := map[string]any{
		"idempotency_key": c.newKey(),
		"order":           order,
	}
	putString(body, "pre_populate_buyer_email", email)
	putString(body, "redirect_url", c.redirectURL)

	return c.Do(ctx, RequestSpec{Version: V2, Endpoint: "checkouts", Method: "POST", LocationScoped: true, Body: body})
}
