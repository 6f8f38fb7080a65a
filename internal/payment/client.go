package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/footkitshop/storefront/internal/config"
	"github.com/footkitshop/storefront/pkg/errors"
)

// Client talks to the external payment processor's REST API
type Client struct {
	apiBase    string
	secretKey  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a payment processor client
func NewClient(cfg config.PaymentConfig, logger *zap.Logger) *Client {
	// Normalize API base - no trailing slash
	apiBase := strings.TrimSuffix(cfg.APIBase, "/")

	return &Client{
		apiBase:   apiBase,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// Configured reports whether a processor credential is set
func (c *Client) Configured() bool {
	return c.secretKey != ""
}

// CreateCheckoutSession asks the processor to open a hosted checkout session
// and returns it, including the redirect URL the customer is sent to.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	if !c.Configured() {
		return nil, &errors.ErrPaymentNotConfigured{}
	}

	var session CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", params, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListLineItems fetches the itemized line items of a session. The completion
// webhook does not carry itemization, so recording an order requires this
// follow-up call.
func (c *Client) ListLineItems(ctx context.Context, sessionID string) ([]LineItem, error) {
	if !c.Configured() {
		return nil, &errors.ErrPaymentNotConfigured{}
	}

	path := fmt.Sprintf("/v1/checkout/sessions/%s/line_items", url.PathEscape(sessionID))
	var list lineItemList
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// do executes one authenticated request against the processor API and
// decodes the response into out. Non-2xx responses and transport failures
// are mapped to ErrPaymentProvider.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts and connection failures are provider errors: the caller
		// made a valid request that the processor never answered.
		return &errors.ErrPaymentProvider{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.ErrPaymentProvider{Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		msg := string(respBody)
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		c.logger.Warn("Payment provider rejected request",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &errors.ErrPaymentProvider{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &errors.ErrPaymentProvider{Message: fmt.Sprintf("failed to unmarshal response: %v", err)}
	}

	return nil
}
