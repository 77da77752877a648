// Package cashfree implements the payment gateway boundary against the
// Cashfree PG REST API. All provider payload shapes are parsed here; only
// the normalized three-value outcome set crosses into the core.
package cashfree

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

const (
	apiVersion     = "2023-08-01"
	defaultTimeout = 15 * time.Second
)

// Config carries the gateway credentials and endpoint.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client talks to the Cashfree orders API.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	http         *http.Client
	logger       zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		http:         &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

type createOrderRequest struct {
	OrderAmount   float64           `json:"order_amount"`
	OrderCurrency string            `json:"order_currency"`
	OrderTags     map[string]string `json:"order_tags,omitempty"`
	CustomerDetails struct {
		CustomerID    string `json:"customer_id"`
		CustomerName  string `json:"customer_name,omitempty"`
		CustomerEmail string `json:"customer_email,omitempty"`
		CustomerPhone string `json:"customer_phone,omitempty"`
	} `json:"customer_details"`
}

type orderResponse struct {
	OrderID          string `json:"order_id"`
	OrderStatus      string `json:"order_status"`
	PaymentSessionID string `json:"payment_session_id"`
	Payments         struct {
		URL string `json:"url"`
	} `json:"payments"`
}

// CreateOrder opens a gateway order tagged with the booking id. Any
// transport or non-2xx failure is wrapped in domain.ErrGateway so the
// caller can roll the booking back.
func (c *Client) CreateOrder(ctx context.Context, in ports.CreateOrderInput) (*ports.OrderSession, error) {
	var req createOrderRequest
	req.OrderAmount = in.Amount
	req.OrderCurrency = in.Currency
	req.OrderTags = map[string]string{"booking_id": in.BookingID}
	req.CustomerDetails.CustomerID = in.Customer.ID
	req.CustomerDetails.CustomerName = in.Customer.Name
	req.CustomerDetails.CustomerEmail = in.Customer.Email
	req.CustomerDetails.CustomerPhone = in.Customer.Phone

	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/pg/orders", req, &resp); err != nil {
		return nil, fmt.Errorf("%w: create order: %v", domain.ErrGateway, err)
	}

	return &ports.OrderSession{
		OrderID:          resp.OrderID,
		PaymentSessionID: resp.PaymentSessionID,
		PaymentURL:       resp.Payments.URL,
	}, nil
}

// Verify fetches the order and normalizes order_status. Only PAID maps to
// paid; everything else the gateway reports (ACTIVE, EXPIRED, TERMINATED,
// ...) is not-paid from the core's point of view.
func (c *Client) Verify(ctx context.Context, orderID string) (*ports.OrderStatus, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodGet, "/pg/orders/"+orderID, nil, &resp); err != nil {
		return nil, fmt.Errorf("%w: verify order: %v", domain.ErrGateway, err)
	}
	return &ports.OrderStatus{
		Paid:      resp.OrderStatus == "PAID",
		RawStatus: resp.OrderStatus,
	}, nil
}

type webhookPayload struct {
	Type string `json:"type"`
	Data struct {
		Order struct {
			OrderID   string            `json:"order_id"`
			OrderTags map[string]string `json:"order_tags"`
		} `json:"order"`
		Payment struct {
			PaymentStatus string `json:"payment_status"`
		} `json:"payment"`
	} `json:"data"`
}

// InterpretWebhook normalizes an asynchronous notification. A payload
// without an order id is structurally invalid; anything else yields a
// valid event, with the embedded booking tag extracted best-effort.
func (c *Client) InterpretWebhook(payload []byte) (*ports.WebhookEvent, error) {
	var p webhookPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("webhook payload: %w", domain.ErrValidation)
	}
	if p.Data.Order.OrderID == "" {
		return nil, fmt.Errorf("webhook payload missing order id: %w", domain.ErrValidation)
	}

	ev := &ports.WebhookEvent{
		OrderID:   p.Data.Order.OrderID,
		BookingID: p.Data.Order.OrderTags["booking_id"],
	}
	switch {
	case p.Type == "PAYMENT_SUCCESS_WEBHOOK" || p.Data.Payment.PaymentStatus == "SUCCESS":
		ev.Success = true
	case p.Type == "PAYMENT_FAILED_WEBHOOK" || p.Data.Payment.PaymentStatus == "FAILED":
		ev.Failed = true
	}
	return ev, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-version", apiVersion)
	req.Header.Set("x-client-id", c.clientID)
	req.Header.Set("x-client-secret", c.clientSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("gateway request rejected")
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
