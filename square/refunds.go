package square

import (
	"context"
)

// CreateRefund refunds amount cents in USD of one tender of a transaction
func (c *Client) CreateRefund(ctx context.Context, transactionID, tenderID, reason string, amount int64) (*Response, error) {
	id, err := c.segment("transaction_id", transactionID)
	if err != nil {
		return nil, err
	}
	if err := c.check("tender_id", tenderID, "required"); err != nil {
		return nil, err
	}
	if err := c.check("amount", amount, "gt=0"); err != nil {
		return nil, err
	}

	body := map[string]any{
		"idempotency_key": c.newKey(),
		"tender_id":       tenderID,
		"amount_money":    USD(amount),
	}
	putString(body, "reason", reason)

	return c.Do(ctx, RequestSpec{Version: V2, Endpoint: "transactions/" + id + "/refund", Method: "POST", LocationScoped: true, Body: body})
}

// ListRefunds lists refunds of the v2 location
func (c *Client) ListRefunds(ctx context.Context, p ListParams) (*Response, error) {
	if err := c.checkList(p); err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestSpec{Version: V2, Endpoint: "refunds", Method: "GET", LocationScoped: true, Query: p.query()})
}
