package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/footkitshop/storefront/internal/domain"
	"github.com/footkitshop/storefront/pkg/errors"
)

type stubCheckout struct {
	url      string
	err      error
	items    []domain.CartItem
	shipping domain.ShippingInfo
	called   bool
}

func (s *stubCheckout) CreateSession(_ context.Context, items []domain.CartItem, shipping domain.ShippingInfo) (string, error) {
	s.called = true
	s.items = items
	s.shipping = shipping
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func checkoutRouter(svc *stubCheckout) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/create-checkout-session", HandleCreateCheckoutSession(svc, zap.NewNop()))
	return r
}

func postJSON(r *gin.Engine, url, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

const validCheckoutBody = `{
	"items": [{"id": "psg", "name": "PSG Home", "unit_price": 2000, "quantity": 1}],
	"shipping": {"name": "K M", "address": "1 Rue du Parc", "city": "Paris",
		"postal_code": "75016", "country": "FR", "method": "express"}
}`

func TestHandleCreateCheckoutSession_Success(t *testing.T) {
	svc := &stubCheckout{url: "https://pay.example.com/cs_1"}
	w := postJSON(checkoutRouter(svc), "/create-checkout-session", validCheckoutBody)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://pay.example.com/cs_1", resp["url"])

	require.Len(t, svc.items, 1)
	assert.Equal(t, int64(2000), svc.items[0].UnitPrice)
	assert.Equal(t, "express", svc.shipping.Method)
}

func TestHandleCreateCheckoutSession_MissingItems(t *testing.T) {
	svc := &stubCheckout{}
	w := postJSON(checkoutRouter(svc), "/create-checkout-session", `{"items": [], "shipping": {}}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, svc.called)
}

func TestHandleCreateCheckoutSession_DefaultsShippingMethod(t *testing.T) {
	svc := &stubCheckout{url: "https://pay.example.com/cs_1"}
	body := `{
		"items": [{"id": "psg", "name": "PSG Home", "unit_price": 2000, "quantity": 1}],
		"shipping": {"name": "K M", "address": "1 Rue du Parc", "city": "Paris",
			"postal_code": "75016", "country": "FR"}
	}`
	w := postJSON(checkoutRouter(svc), "/create-checkout-session", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "standard", svc.shipping.Method)
}

func TestHandleCreateCheckoutSession_InvalidItem(t *testing.T) {
	svc := &stubCheckout{err: &errors.ErrInvalidItem{ItemID: "psg", Reason: "unit price must not be negative"}}
	w := postJSON(checkoutRouter(svc), "/create-checkout-session", validCheckoutBody)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "psg")
}

func TestHandleCreateCheckoutSession_NotConfigured(t *testing.T) {
	svc := &stubCheckout{err: &errors.ErrPaymentNotConfigured{}}
	w := postJSON(checkoutRouter(svc), "/create-checkout-session", validCheckoutBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "not configured")
}

func TestHandleCreateCheckoutSession_ProviderError(t *testing.T) {
	svc := &stubCheckout{err: &errors.ErrPaymentProvider{StatusCode: 400, Message: "card country not supported"}}
	w := postJSON(checkoutRouter(svc), "/create-checkout-session", validCheckoutBody)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "card country not supported")
}
