package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/footkitshop/storefront/internal/payment"
	"github.com/footkitshop/storefront/pkg/errors"
)

type stubWebhook struct {
	err       error
	payload   []byte
	sigHeader string
}

func (s *stubWebhook) HandleEvent(_ context.Context, payload []byte, sigHeader string) error {
	s.payload = payload
	s.sigHeader = sigHeader
	return s.err
}

func webhookRouter(svc *stubWebhook) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook", HandleWebhook(svc, zap.NewNop()))
	return r
}

func postWebhook(r *gin.Engine, body, sig string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	if sig != "" {
		req.Header.Set(payment.SignatureHeader, sig)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHandleWebhook_Accepted(t *testing.T) {
	svc := &stubWebhook{}
	w := postWebhook(webhookRouter(svc), `{"type": "checkout.session.completed"}`, "t=1,v1=abc")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, `{"type": "checkout.session.completed"}`, string(svc.payload))
	assert.Equal(t, "t=1,v1=abc", svc.sigHeader)
}

func TestHandleWebhook_InvalidSignature(t *testing.T) {
	svc := &stubWebhook{err: &errors.ErrInvalidSignature{Reason: "no matching signature"}}
	w := postWebhook(webhookRouter(svc), `{}`, "t=1,v1=bad")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandleWebhook_StorageErrorTriggersRetry(t *testing.T) {
	svc := &stubWebhook{err: &errors.ErrStorage{Op: "append"}}
	w := postWebhook(webhookRouter(svc), `{}`, "t=1,v1=ok")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleWebhook_ProviderErrorTriggersRetry(t *testing.T) {
	svc := &stubWebhook{err: &errors.ErrPaymentProvider{Message: "timeout"}}
	w := postWebhook(webhookRouter(svc), `{}`, "t=1,v1=ok")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
