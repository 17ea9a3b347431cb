package square

import (
	"context"
)

func customerBody(cust Customer) map[string]any {
	body := make(map[string]any, 3)
	putString(body, "given_name", cust.First)
	putString(body, "family_name", cust.Last)
	putString(body, "email_address", cust.Email)
	return body
}

func (c *Client) checkCustomer(cust Customer) error {
	if err := c.validate.Struct(&cust); err != nil {
		return ErrInvalidArgument.WithCause(err)
	}
	return nil
}

// CreateCustomer creates a customer profile from name and email
func (c *Client) CreateCustomer(ctx context.Context, cust Customer) (*Response, error) {
	if err := c.checkCustomer(cust); err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestSpec{Version: V2, Endpoint: "customers", Method: "POST", Body: customerBody(cust)})
}

// ListCustomers lists customer profiles. Pass the cursor of a previous page
// to continue, or an empty string for the first page.
func (c *Client) ListCustomers(ctx context.Context, cursor string) (*Response, error) {
	spec := RequestSpec{Version: V2, Endpoint: "customers", Method: "GET"}
	if cursor != "" {
		spec.Query = map[string]string{"cursor": cursor}
	}
	return c.Do(ctx, spec)
}

// UpdateCustomer replaces name and email of an existing customer
func (c *Client) UpdateCustomer(ctx context.Context, cust Customer) (*Response, error) {
	id, err := c.segment("customer_id", cust.ID)
	if err != nil {
		return nil, err
	}
	if err := c.checkCustomer(cust); err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestSpec{Version: V2, Endpoint: "customers/" + id, Method: "PUT", Body: customerBody(cust)})
}

// GetCustomer returns one customer profile
func (c *Client) GetCustomer(ctx context.Context, cust Customer) (*Response, error) {
	id, err := c.segment("customer_id", cust.ID)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestSpec{Version: V2, Endpoint: "customers/" + id, Method: "GET"})
}

// DeleteCustomer deletes a customer profile
func (c *Client) DeleteCustomer(ctx context.Context, cust Customer) (*Response, error) {
	id, err := c.segment("customer_id", cust.ID)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestSpec{Version: V2, Endpoint: "customers/" + id, Method: "DELETE"})
}

// AddCardToCustomer stores the card behind nonce on the customer profile
func (c *Client) AddCardToCustomer(ctx context.Context, cust Customer, nonce string) (*Response, error) {
	id, err := c.segment("customer_id", cust.ID)
	if err != nil {
		return nil, err
	}
	if err := c.check("card_nonce", nonce, "required"); err != nil {
		return nil, err
	}

	body := map[string]any{"card_nonce": nonce}
	if cust.Zip != "" {
		body["billing_address"] = map[string]any{"postal_code": cust.Zip}
	}
	putString(body, "cardholder_name", cust.Name())

	return c.Do(ctx, RequestSpec{Version: V2, Endpoint: "customers/" + id + "/cards", Method: "POST", Body: body})
}

// DeleteCardFromCustomer removes a card on file
func (c *Client) DeleteCardFromCustomer(ctx context.Context, cust Customer, card Card) (*Response, error) {
	id, err := c.segment("customer_id", cust.ID)
	if err != nil {
		return nil, err
	}
	cardID, err := c.segment("card_id", card.ID)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestSpec{Version: V2, Endpoint: "customers/" + id + "/cards/" + cardID, Method: "DELETE"})
}
