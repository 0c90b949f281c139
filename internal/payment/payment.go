package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/stemwithlyn/booking/internal/common/cnst"
	"github.com/stemwithlyn/booking/internal/common/config"
	"github.com/stemwithlyn/booking/pkg/trace"
)

// StatusCompleted is the processor status for a captured order
const StatusCompleted = "COMPLETED"

// maxBody caps how much of an order response is read
const maxBody = 1 << 20

var (
	ErrOrderNotFound = errors.New("payment order not found")
	ErrMalformed     = errors.New("malformed payment order")
)

// gjson paths into a checkout order
const (
	pathStatus     = "status"
	pathCapture    = "purchase_units.0.payments.captures.0"
	pathOrderValue = "purchase_units.0.amount.value"
)

// Confirmation is the processor's view of one order
type Confirmation struct {
	TransactionID string
	Processor     string
	Status        string
	Currency      string
	Gross         decimal.Decimal
	Fee           decimal.Decimal
}

// Completed reports whether the money has been captured
func (c *Confirmation) Completed() bool {
	return strings.EqualFold(c.Status, StatusCompleted)
}

// Net is the amount recognized as profit
func (c *Confirmation) Net() decimal.Decimal {
	return c.Gross.Sub(c.Fee)
}

// Client verifies checkout orders against a PayPal compatible REST API
type Client struct {
	logger    *zap.Logger
	baseURL   string
	processor string
	http      *http.Client
}

// NewClient builds a client authenticated with OAuth2 client credentials.
// ctx scopes token refreshes and should outlive the client.
func NewClient(ctx context.Context, cfg *config.PaymentConfig, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("payment base url is required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")

	transport := otelhttp.NewTransport(http.DefaultTransport)
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: transport, Timeout: cfg.Timeout})

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     base + "/v1/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	httpClient := cc.Client(ctx)
	httpClient.Timeout = cfg.Timeout

	return &Client{
		logger:    logger.Named("payment"),
		baseURL:   base,
		processor: cfg.Processor,
		http:      httpClient,
	}, nil
}

// VerifyOrder fetches the order and extracts its status and captured amounts
func (c *Client) VerifyOrder(ctx context.Context, orderID string) (*Confirmation, error) {
	scope := trace.Tracer(cnst.TracePayment).Start(ctx, cnst.SpanVerifyOrder).
		WithAttrs(attribute.String(cnst.AttrTransactionID, orderID))
	defer scope.End()

	conf, err := c.verify(scope.Ctx, orderID)
	if err != nil {
		scope.Fail(err)
		c.logger.Warn("order verification failed", zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}
	scope.WithAttrs(attribute.String(cnst.AttrOrderStatus, conf.Status))
	c.logger.Info("order verified",
		zap.String("order_id", orderID),
		zap.String("status", conf.Status),
		zap.String("gross", conf.Gross.String()),
		zap.String("fee", conf.Fee.String()))
	return conf, nil
}

func (c *Client) verify(ctx context.Context, orderID string) (*Confirmation, error) {
	endpoint := c.baseURL + "/v2/checkout/orders/" + url.PathEscape(orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read order: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrOrderNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("order lookup returned status %d", resp.StatusCode)
	}

	return parseOrder(orderID, c.processor, body)
}

func parseOrder(orderID, processor string, body []byte) (*Confirmation, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformed
	}
	doc := gjson.ParseBytes(body)
	status := doc.Get(pathStatus)
	if !status.Exists() {
		return nil, fmt.Errorf("%w: missing status", ErrMalformed)
	}

	conf := &Confirmation{
		TransactionID: orderID,
		Processor:     processor,
		Status:        status.String(),
	}

	capture := doc.Get(pathCapture)
	gross := capture.Get("amount.value")
	if !gross.Exists() {
		gross = doc.Get(pathOrderValue)
	}
	if gross.Exists() {
		v, err := decimal.NewFromString(gross.String())
		if err != nil {
			return nil, fmt.Errorf("%w: amount %q", ErrMalformed, gross.String())
		}
		conf.Gross = v
	}
	conf.Currency = capture.Get("amount.currency_code").String()

	if fee := capture.Get("seller_receivable_breakdown.paypal_fee.value"); fee.Exists() {
		v, err := decimal.NewFromString(fee.String())
		if err != nil {
			return nil, fmt.Errorf("%w: fee %q", ErrMalformed, fee.String())
		}
		conf.Fee = v
	}
	return conf, nil
}
