package square

import (
	"strings"
	"time"
)

// CurrencyUSD is the only currency the client sends
const CurrencyUSD = "USD"

// Customer is a Square customer profile
type Customer struct {
	ID    string `json:"id,omitempty"`
	First string `json:"given_name,omitempty"`
	Last  string `json:"family_name,omitempty"`
	Email string `json:"email_address,omitempty" validate:"omitempty,email"`
	Zip   string `json:"postal_code,omitempty"`
	Card  *Card  `json:"card,omitempty"`
}

// Name joins first and last name with a single space
func (c Customer) Name() string {
	return strings.TrimSpace(c.First + " " + c.Last)
}

// Card is a card on file
type Card struct {
	ID string `json:"id"`
}

// Money is an amount in the smallest currency unit
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// USD returns amount cents in US dollars
func USD(amount int64) Money {
	return Money{Amount: amount, Currency: CurrencyUSD}
}

// Order is the order embedded in a checkout
type Order struct {
	ReferenceID string          `json:"reference_id,omitempty"`
	LineItems   []LineItem      `json:"line_items"`
	Taxes       []OrderTax      `json:"taxes,omitempty"`
	Discounts   []OrderDiscount `json:"discounts,omitempty"`
}

// LineItem is one line of an Order
type LineItem struct {
	Name           string          `json:"name"`
	Quantity       string          `json:"quantity"`
	BasePriceMoney Money           `json:"base_price_money"`
	Note           string          `json:"note,omitempty"`
	Taxes          []OrderTax      `json:"taxes,omitempty"`
	Discounts      []OrderDiscount `json:"discounts,omitempty"`
}

// OrderTax applies to the whole order or, inside a LineItem, to that line.
// Percentage is a decimal string such as "8.5"; Type is ADDITIVE or INCLUSIVE.
type OrderTax struct {
	Name       string `json:"name"`
	Percentage string `json:"percentage"`
	Type       string `json:"type,omitempty"`
}

// OrderDiscount is either a Percentage or a fixed AmountMoney
type OrderDiscount struct {
	Name        string `json:"name"`
	Percentage  string `json:"percentage,omitempty"`
	AmountMoney *Money `json:"amount_money,omitempty"`
}

// Item holds the editable fields of a v1 item. Zero fields are not sent.
type Item struct {
	Name               string
	Description        string
	CategoryID         string
	Color              string
	Abbreviation       string
	Visibility         string
	AvailableOnline    *bool
	AvailableForPickup *bool
}

func (i Item) body() map[string]any {
	body := make(map[string]any, 8)
	putString(body, "name", i.Name)
	putString(body, "description", i.Description)
	putString(body, "category_id", i.CategoryID)
	putString(body, "color", i.Color)
	putString(body, "abbreviation", i.Abbreviation)
	putString(body, "visibility", i.Visibility)
	if i.AvailableOnline != nil {
		body["available_online"] = *i.AvailableOnline
	}
	if i.AvailableForPickup != nil {
		body["available_for_pickup"] = *i.AvailableForPickup
	}
	return body
}

// AdjustmentType is the reason of an inventory adjustment
type AdjustmentType string

const (
	AdjustmentSale         AdjustmentType = "SALE"
	AdjustmentReceiveStock AdjustmentType = "RECEIVE_STOCK"
	AdjustmentManual       AdjustmentType = "MANUAL_ADJUST"
)

// SortOrder orders list results by creation time
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ListParams filters ListTransactions and ListRefunds.
// Zero times are not sent; an empty SortOrder means DESC.
type ListParams struct {
	Begin     time.Time
	End       time.Time
	SortOrder SortOrder
	Cursor    string
}

func (p ListParams) query() map[string]string {
	q := make(map[string]string, 4)
	if !p.Begin.IsZero() {
		q["begin_time"] = p.Begin.UTC().Format(time.RFC3339)
	}
	if !p.End.IsZero() {
		q["end_time"] = p.End.UTC().Format(time.RFC3339)
	}
	order := p.SortOrder
	if order == "" {
		order = SortDesc
	}
	q["sort_order"] = string(order)
	if p.Cursor != "" {
		q["cursor"] = p.Cursor
	}
	return q
}

func putString(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}
