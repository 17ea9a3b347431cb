package square

import (
	"context"
	"strconv"
)

// maxNoteLength is the longest note Square accepts on a charge
const maxNoteLength = 60

// Charge charges amount cents in USD. A non-empty nonce charges the card it
// represents; otherwise the card on file of customer is charged, which
// requires customer.ID and customer.Card.
func (c *Client) Charge(ctx context.Context, nonce string, amount int64, customer Customer, note string) (*Response, error) {
	if err := c.check("amount", amount, "gt=0"); err != nil {
		return nil, err
	}
	if err := c.check("note", note, "max="+strconv.Itoa(maxNoteLength)); err != nil {
		return nil, err
	}
	if err := c.checkCustomer(customer); err != nil {
		return nil, err
	}

	body := map[string]any{
		"idempotency_key": c.newKey(),
		"amount_money":    USD(amount),
	}
	if customer.Zip != "" {
		body["billing_address"] = map[string]any{"postal_code": customer.Zip}
	}
	putString(body, "buyer_email_address", customer.Email)
	putString(body, "note", note)

	switch {
	case nonce != "":
		body["card_nonce"] = nonce
	case customer.ID != "" && customer.Card != nil && customer.Card.ID != "":
		body["customer_id"] = customer.ID
		body["customer_card_id"] = customer.Card.ID
	default:
		return nil, ErrInvalidArgument.WithMetadata(map[string]string{
			"source": "card nonce or customer card on file required",
		})
	}

	return c.Do(ctx, RequestSpec{Version: V2, Endpoint: "transactions", Method: "POST", LocationScoped: true, Body: body})
}

// CaptureTransaction captures a charge created with delay_capture
func (c *Client) CaptureTransaction(ctx context.Context, transactionID string) (*Response, error) {
	return c.transactionAction(ctx, transactionID, "capture")
}

// VoidTransaction cancels a charge created with delay_capture
func (c *Client) VoidTransaction(ctx context.Context, transactionID string) (*Response, error) {
	return c.transactionAction(ctx, transactionID, "void")
}

func (c *Client) transactionAction(ctx context.Context, transactionID, action string) (*Response, error) {
	id, err := c.segment("transaction_id", transactionID)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestSpec{Version: V2, Endpoint: "transactions/" + id + "/" + action, Method: "POST", LocationScoped: true})
}

// GetTransaction returns one transaction
func (c *Client) GetTransaction(ctx context.Context, transactionID string) (*Response, error) {
	id, err := c.segment("transaction_id", transactionID)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestSpec{Version: V2, Endpoint: "transactions/" + id, Method: "GET", LocationScoped: true})
}

// ListTransactions lists transactions of the v2 location
func (c *Client) ListTransactions(ctx context.Context, p ListParams) (*Response, error) {
	if err := c.checkList(p); err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestSpec{Version: V2, Endpoint: "transactions", Method: "GET", LocationScoped: true, Query: p.query()})
}

func (c *Client) checkList(p ListParams) error {
	if err := c.check("sort_order", string(p.SortOrder), "omitempty,oneof=ASC DESC"); err != nil {
		return err
	}
	if !p.Begin.IsZero() && !p.End.IsZero() && p.End.Before(p.Begin) {
		return ErrInvalidArgument.WithMetadata(map[string]string{"end_time": "before begin_time"})
	}
	return nil
}
