package square

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/square/errors"
	"github.com/kochabx/square/log"
)

func TestOperationRoutes(t *testing.T) {
	fs := newFakeServer(t)
	client := newTestClient(t, fs)
	cust := Customer{ID: "C1", First: "Jane", Last: "Doe", Email: "jane@example.com", Zip: "94103"}

	tests := []struct {
		name   string
		call   func(ctx context.Context) (*Response, error)
		method string
		path   string
	}{
		{"ListCategories", client.ListCategories, "GET", "/v1/L1/categories"},
		{"ListDiscounts", client.ListDiscounts, "GET", "/v1/L1/discounts"},
		{"ListFees", client.ListFees, "GET", "/v1/L1/fees"},
		{"ListModifiers", client.ListModifiers, "GET", "/v1/L1/modifier-lists"},
		{"GetModifier", func(ctx context.Context) (*Response, error) { return client.GetModifier(ctx, "M1") }, "GET", "/v1/L1/modifier-lists/M1"},
		{"ListItems", client.ListItems, "GET", "/v1/L1/items"},
		{"GetItem", func(ctx context.Context) (*Response, error) { return client.GetItem(ctx, "I1") }, "GET", "/v1/L1/items/I1"},
		{"DeleteItem", func(ctx context.Context) (*Response, error) { return client.DeleteItem(ctx, "I1") }, "DELETE", "/v1/L1/items/I1"},
		{"ListInventory", func(ctx context.Context) (*Response, error) { return client.ListInventory(ctx, 0) }, "GET", "/v1/L1/inventory"},
		{"ListLocations", client.ListLocations, "GET", "/v2/locations"},
		{"GetBusiness", client.GetBusiness, "GET", "/v1/me"},
		{"ListLocationsV1", client.ListLocationsV1, "GET", "/v1/me/locations"},
		{"ListCustomers", func(ctx context.Context) (*Response, error) { return client.ListCustomers(ctx, "") }, "GET", "/v2/customers"},
		{"GetCustomer", func(ctx context.Context) (*Response, error) { return client.GetCustomer(ctx, cust) }, "GET", "/v2/customers/C1"},
		{"DeleteCustomer", func(ctx context.Context) (*Response, error) { return client.DeleteCustomer(ctx, cust) }, "DELETE", "/v2/customers/C1"},
		{"DeleteCardFromCustomer", func(ctx context.Context) (*Response, error) {
			return client.DeleteCardFromCustomer(ctx, cust, Card{ID: "K1"})
		}, "DELETE", "/v2/customers/C1/cards/K1"},
		{"GetTransaction", func(ctx context.Context) (*Response, error) { return client.GetTransaction(ctx, "T1") }, "GET", "/v2/locations/L2/transactions/T1"},
		{"CaptureTransaction", func(ctx context.Context) (*Response, error) { return client.CaptureTransaction(ctx, "T1") }, "POST", "/v2/locations/L2/transactions/T1/capture"},
		{"VoidTransaction", func(ctx context.Context) (*Response, error) { return client.VoidTransaction(ctx, "T1") }, "POST", "/v2/locations/L2/transactions/T1/void"},
		{"ListTransactions", func(ctx context.Context) (*Response, error) { return client.ListTransactions(ctx, ListParams{}) }, "GET", "/v2/locations/L2/transactions"},
		{"ListRefunds", func(ctx context.Context) (*Response, error) { return client.ListRefunds(ctx, ListParams{}) }, "GET", "/v2/locations/L2/refunds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.call(context.Background())
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, `{"ok":true}`, string(resp.Body))

			got := fs.last.Load()
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)
		})
	}
}

func TestListCategories(t *testing.T) {
	fs := newFakeServer(t)
	fs.reply = `[{"id":"cat1","name":"Drinks"}]`
	client := newTestClient(t, fs)

	resp, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, fs.reply, string(resp.Body))

	got := fs.last.Load()
	assert.Equal(t, "/v1/L1/categories", got.Path)
	assert.Equal(t, "Bearer v1-token", got.Header.Get("Authorization"))
	assert.Nil(t, got.Body)
}

func TestCreateCheckout(t *testing.T) {
	fs := newFakeServer(t)
	client := newTestClient(t, fs, WithRedirectURL("https://shop.example.com/done"))

	fixed := USD(100)
	order := Order{
		ReferenceID: "ref-1",
		LineItems: []LineItem{{
			Name:           "Coffee",
			Quantity:       "2",
			BasePriceMoney: USD(350),
			Note:           "oat milk",
			Discounts:      []OrderDiscount{{Name: "Happy hour", Percentage: "10"}},
		}},
		Taxes:     []OrderTax{{Name: "Sales tax", Percentage: "8.5", Type: "ADDITIVE"}},
		Discounts: []OrderDiscount{{Name: "Coupon", AmountMoney: &fixed}},
	}
	_, err := client.CreateCheckout(context.Background(), order, "a@b.com")
	require.NoError(t, err)

	got := fs.last.Load()
	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, "/v2/locations/L2/checkouts", got.Path)
	assert.Equal(t, "Bearer v2-token", got.Header.Get("Authorization"))
	assert.Equal(t, "key-1", got.Body["idempotency_key"])
	assert.Equal(t, "a@b.com", got.Body["pre_populate_buyer_email"])
	assert.Equal(t, "https://shop.example.com/done", got.Body["redirect_url"])

	sent := got.Body["order"].(map[string]any)
	assert.Equal(t, "ref-1", sent["reference_id"])
	items := sent["line_items"].([]any)
	require.Len(t, items, 1)
	line := items[0].(map[string]any)
	assert.Equal(t, float64(350), line["base_price_money"].(map[string]any)["amount"])
	assert.Equal(t, "oat milk", line["note"])
	assert.Equal(t, []any{map[string]any{"name": "Happy hour", "percentage": "10"}}, line["discounts"])
	assert.NotContains(t, line, "taxes")
	assert.Equal(t, []any{map[string]any{"name": "Sales tax", "percentage": "8.5", "type": "ADDITIVE"}}, sent["taxes"])
	assert.Equal(t, []any{map[string]any{
		"name":         "Coupon",
		"amount_money": map[string]any{"amount": float64(100), "currency": "USD"},
	}}, sent["discounts"])

	_, err = client.CreateCheckout(context.Background(), order, "not-an-email")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestCustomers(t *testing.T) {
	fs := newFakeServer(t)
	client := newTestClient(t, fs)
	ctx := context.Background()
	cust := Customer{ID: "C 1", First: "Jane", Last: "Doe", Email: "jane@example.com", Zip: "94103"}

	_, err := client.CreateCustomer(ctx, cust)
	require.NoError(t, err)
	got := fs.last.Load()
	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, "/v2/customers", got.Path)
	assert.Equal(t, map[string]any{"given_name": "Jane", "family_name": "Doe", "email_address": "jane@example.com"}, got.Body)

	_, err = client.UpdateCustomer(ctx, cust)
	require.NoError(t, err)
	got = fs.last.Load()
	assert.Equal(t, "PUT", got.Method)
	assert.Equal(t, "/v2/customers/C%201", got.Path)
	assert.Equal(t, "Jane", got.Body["given_name"])

	_, err = client.AddCardToCustomer(ctx, cust, "cnon:abc")
	require.NoError(t, err)
	got = fs.last.Load()
	assert.Equal(t, "/v2/customers/C%201/cards", got.Path)
	assert.Equal(t, "cnon:abc", got.Body["card_nonce"])
	assert.Equal(t, "Jane Doe", got.Body["cardholder_name"])
	assert.Equal(t, map[string]any{"postal_code": "94103"}, got.Body["billing_address"])

	_, err = client.ListCustomers(ctx, "next-page")
	require.NoError(t, err)
	got = fs.last.Load()
	assert.Equal(t, "GET", got.Method)
	assert.Equal(t, "next-page", got.Query["cursor"])
	assert.Nil(t, got.Body)

	hits := fs.hits.Load()
	_, err = client.AddCardToCustomer(ctx, cust, "")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = client.GetCustomer(ctx, Customer{})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = client.CreateCustomer(ctx, Customer{Email: "broken"})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, hits, fs.hits.Load())
}

func TestInventory(t *testing.T) {
	fs := newFakeServer(t)
	client := newTestClient(t, fs)
	ctx := context.Background()

	_, err := client.ListInventory(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, "50", fs.last.Load().Query["limit"])

	_, err = client.UpdateInventory(ctx, "V1", -2, AdjustmentSale, "sold at counter")
	require.NoError(t, err)
	got := fs.last.Load()
	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, "/v1/L1/inventory/V1", got.Path)
	assert.Equal(t, float64(-2), got.Body["quantity_delta"])
	assert.Equal(t, "SALE", got.Body["adjustment_type"])
	assert.Equal(t, "sold at counter", got.Body["memo"])

	_, err = client.UpdateInventory(ctx, "V1", 1, AdjustmentType("STOLEN"), "")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = client.ListInventory(ctx, -1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestUpdateItem(t *testing.T) {
	fs := newFakeServer(t)
	client := newTestClient(t, fs)
	online := false

	_, err := client.UpdateItem(context.Background(), "I1", Item{Name: "Latte", Color: "593c00", AvailableOnline: &online})
	require.NoError(t, err)
	got := fs.last.Load()
	assert.Equal(t, "PUT", got.Method)
	assert.Equal(t, "/v1/L1/items/I1", got.Path)
	assert.Equal(t, map[string]any{"name": "Latte", "color": "593c00", "available_online": false}, got.Body)

	_, err = client.UpdateItem(context.Background(), "I1", Item{})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestPathSegmentsAreEscaped(t *testing.T) {
	fs := newFakeServer(t)
	client := newTestClient(t, fs)
	ctx := context.Background()

	_, err := client.GetItem(ctx, "a/b?c")
	require.NoError(t, err)
	assert.Equal(t, "/v1/L1/items/a%2Fb%3Fc", fs.last.Load().Path)

	for _, id := range []string{"", ".", ".."} {
		_, err := client.GetItem(ctx, id)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "id %q", id)
	}
}

func TestUpdateItemImage(t *testing.T) {
	var (
		field, filename, contents, partType string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if assert.NoError(t, err) && assert.Equal(t, "multipart/form-data", mediaType) {
			part, err := multipart.NewReader(r.Body, params["boundary"]).NextPart()
			if assert.NoError(t, err) {
				field = part.FormName()
				filename = part.FileName()
				partType = part.Header.Get("Content-Type")
				raw, _ := io.ReadAll(part)
				contents = string(raw)
			}
		}
		assert.Equal(t, "/v1/L1/items/I1/image", r.URL.Path)
		assert.Equal(t, "Bearer v1-token", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"id":"img1"}`)
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL), WithLogger(log.Nop()))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "latte.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o600))

	resp, err := client.UpdateItemImage(context.Background(), "I1", path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"img1"}`, string(resp.Body))
	assert.Equal(t, "file_name", field)
	assert.Equal(t, "latte.jpg", filename)
	assert.Equal(t, "jpeg-bytes", contents)
	assert.Equal(t, "image/jpeg", partType)

	_, err = client.UpdateItemImage(context.Background(), "I1", filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Equal(t, 400, errors.Code(err))

	_, err = client.UpdateItemImageReader(context.Background(), "I1", "x.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "x.png", filename)
	assert.Equal(t, "image/png", partType)

	// no extension: the type comes from the leading bytes
	pngData := "\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 600)
	_, err = client.UpdateItemImageReader(context.Background(), "I1", "upload", strings.NewReader(pngData))
	require.NoError(t, err)
	assert.Equal(t, "upload", filename)
	assert.Equal(t, "image/png", partType)
	assert.Equal(t, pngData, contents)
}

func TestCharge(t *testing.T) {
	fs := newFakeServer(t)
	client := newTestClient(t, fs)
	ctx := context.Background()
	cust := Customer{ID: "C1", Email: "jane@example.com", Zip: "94103", Card: &Card{ID: "K1"}}

	_, err := client.Charge(ctx, "cnon:ok", 500, cust, "table 4")
	require.NoError(t, err)
	got := fs.last.Load()
	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, "/v2/locations/L2/transactions", got.Path)
	assert.Equal(t, "key-1", got.Body["idempotency_key"])
	assert.Equal(t, map[string]any{"amount": float64(500), "currency": "USD"}, got.Body["amount_money"])
	assert.Equal(t, map[string]any{"postal_code": "94103"}, got.Body["billing_address"])
	assert.Equal(t, "jane@example.com", got.Body["buyer_email_address"])
	assert.Equal(t, "cnon:ok", got.Body["card_nonce"])
	assert.Equal(t, "table 4", got.Body["note"])
	assert.NotContains(t, got.Body, "customer_card_id")

	_, err = client.Charge(ctx, "", 500, cust, "")
	require.NoError(t, err)
	got = fs.last.Load()
	assert.Equal(t, "C1", got.Body["customer_id"])
	assert.Equal(t, "K1", got.Body["customer_card_id"])
	assert.NotContains(t, got.Body, "card_nonce")
	assert.NotContains(t, got.Body, "note")

	hits := fs.hits.Load()
	_, err = client.Charge(ctx, "cnon:ok", 500, cust, strings.Repeat("n", 61))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = client.Charge(ctx, "", 500, Customer{ID: "C1"}, "")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = client.Charge(ctx, "cnon:ok", 0, cust, "")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, hits, fs.hits.Load())
}

func TestCreateRefund(t *testing.T) {
	fs := newFakeServer(t)
	client := newTestClient(t, fs)

	_, err := client.CreateRefund(context.Background(), "T1", "TN1", "damaged", 250)
	require.NoError(t, err)
	got := fs.last.Load()
	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, "/v2/locations/L2/transactions/T1/refund", got.Path)
	assert.Equal(t, "key-1", got.Body["idempotency_key"])
	assert.Equal(t, "TN1", got.Body["tender_id"])
	assert.Equal(t, "damaged", got.Body["reason"])
	assert.Equal(t, map[string]any{"amount": float64(250), "currency": "USD"}, got.Body["amount_money"])

	_, err = client.CreateRefund(context.Background(), "T1", "", "", 250)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestListParamsQuery(t *testing.T) {
	fs := newFakeServer(t)
	client := newTestClient(t, fs)
	ctx := context.Background()

	begin := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	end := begin.Add(24 * time.Hour)

	_, err := client.ListRefunds(ctx, ListParams{Begin: begin, End: end, Cursor: "c1"})
	require.NoError(t, err)
	got := fs.last.Load()
	assert.Equal(t, map[string]string{
		"begin_time": "2024-01-02T03:04:05Z",
		"end_time":   "2024-01-03T03:04:05Z",
		"sort_order": "DESC",
		"cursor":     "c1",
	}, got.Query)
	assert.Nil(t, got.Body)

	_, err = client.ListTransactions(ctx, ListParams{SortOrder: SortAsc})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"sort_order": "ASC"}, fs.last.Load().Query)

	_, err = client.ListTransactions(ctx, ListParams{SortOrder: "SIDEWAYS"})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = client.ListTransactions(ctx, ListParams{Begin: end, End: begin})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
