package payment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stemwithlyn/booking/internal/common/config"
)

const completedOrder = `{
  "id": "ORDER-1",
  "status": "COMPLETED",
  "purchase_units": [{
    "amount": {"currency_code": "USD", "value": "60.00"},
    "payments": {"captures": [{
      "id": "CAP-1",
      "amount": {"currency_code": "USD", "value": "60.00"},
      "seller_receivable_breakdown": {"paypal_fee": {"currency_code": "USD", "value": "2.04"}}
    }]}
  }]
}`

func newProcessor(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		user, pass, ok := r.BasicAuth()
		if !ok || user != "id" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"access_token":"tok","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/v2/checkout/orders/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/v2/checkout/orders/ORDER-1":
			_, _ = fmt.Fprint(w, completedOrder)
		case "/v2/checkout/orders/ORDER-2":
			_, _ = fmt.Fprint(w, `{"id":"ORDER-2","status":"APPROVED","purchase_units":[{"amount":{"value":"45.50"}}]}`)
		case "/v2/checkout/orders/ORDER-BAD":
			_, _ = fmt.Fprint(w, `{"id":"x"}`)
		case "/v2/checkout/orders/ORDER-500":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &tokenCalls
}

func newTestClient(t *testing.T, base string) *Client {
	t.Helper()
	c, err := NewClient(context.Background(), &config.PaymentConfig{
		Enabled:      true,
		Processor:    "paypal",
		BaseURL:      base + "/",
		ClientID:     "id",
		ClientSecret: "secret",
		Timeout:      5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestVerifyOrder_Completed(t *testing.T) {
	srv, tokenCalls := newProcessor(t)
	c := newTestClient(t, srv.URL)

	conf, err := c.VerifyOrder(context.Background(), "ORDER-1")
	require.NoError(t, err)
	assert.True(t, conf.Completed())
	assert.Equal(t, "paypal", conf.Processor)
	assert.Equal(t, "USD", conf.Currency)
	assert.True(t, decimal.RequireFromString("60").Equal(conf.Gross))
	assert.True(t, decimal.RequireFromString("2.04").Equal(conf.Fee))
	assert.Equal(t, "57.96", conf.Net().StringFixed(2))

	// the token is cached between calls
	_, err = c.VerifyOrder(context.Background(), "ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, 1, *tokenCalls)
}

func TestVerifyOrder_NotCaptured(t *testing.T) {
	srv, _ := newProcessor(t)
	c := newTestClient(t, srv.URL)

	conf, err := c.VerifyOrder(context.Background(), "ORDER-2")
	require.NoError(t, err)
	assert.False(t, conf.Completed())
	assert.Equal(t, "45.5", conf.Gross.String())
	assert.True(t, conf.Fee.IsZero())
}

func TestVerifyOrder_Failures(t *testing.T) {
	srv, _ := newProcessor(t)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	_, err := c.VerifyOrder(ctx, "ORDER-404")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = c.VerifyOrder(ctx, "ORDER-BAD")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = c.VerifyOrder(ctx, "ORDER-500")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrOrderNotFound)
}

func TestVerifyOrder_BadCredentials(t *testing.T) {
	srv, _ := newProcessor(t)
	c, err := NewClient(context.Background(), &config.PaymentConfig{BaseURL: srv.URL, ClientID: "id", ClientSecret: "wrong", Timeout: time.Second}, zap.NewNop())
	require.NoError(t, err)

	_, err = c.VerifyOrder(context.Background(), "ORDER-1")
	assert.Error(t, err)
}

func TestParseOrder(t *testing.T) {
	_, err := parseOrder("x", "paypal", []byte("not json"))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = parseOrder("x", "paypal", []byte(`{"status":"COMPLETED","purchase_units":[{"amount":{"value":"abc"}}]}`))
	assert.ErrorIs(t, err, ErrMalformed)

	conf, err := parseOrder("x", "paypal", []byte(`{"status":"completed"}`))
	require.NoError(t, err)
	assert.True(t, conf.Completed())
	assert.True(t, conf.Gross.IsZero())

	_, err = NewClient(context.Background(), &config.PaymentConfig{}, zap.NewNop())
	assert.Error(t, err)
}
