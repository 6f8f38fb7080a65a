package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footkitshop/storefront/pkg/errors"
)

const webhookSecret = "whsec_test"

var completedPayload = []byte(`{
	"id": "evt_1",
	"type": "checkout.session.completed",
	"created": 1700000000,
	"data": {"object": {"id": "cs_123", "amount_total": 5499, "currency": "eur"}}
}`)

func TestConstructEvent_ValidSignature(t *testing.T) {
	now := time.Now()
	header := SignPayload(completedPayload, webhookSecret, now)

	event, err := constructEventAt(completedPayload, header, webhookSecret, now, DefaultTolerance)
	require.NoError(t, err)
	assert.Equal(t, EventCheckoutCompleted, event.Type)

	session, err := event.Session()
	require.NoError(t, err)
	assert.Equal(t, "cs_123", session.ID)
	assert.Equal(t, int64(5499), session.AmountTotal)
}

func TestConstructEvent_TamperedBody(t *testing.T) {
	now := time.Now()
	header := SignPayload(completedPayload, webhookSecret, now)

	tampered := []byte(`{"id": "evt_1", "type": "checkout.session.completed", "data": {"object": {"id": "cs_EVIL", "amount_total": 1}}}`)

	_, err := constructEventAt(tampered, header, webhookSecret, now, DefaultTolerance)
	var sigErr *errors.ErrInvalidSignature
	require.ErrorAs(t, err, &sigErr)
}

func TestConstructEvent_WrongSecret(t *testing.T) {
	now := time.Now()
	header := SignPayload(completedPayload, "whsec_other", now)

	_, err := constructEventAt(completedPayload, header, webhookSecret, now, DefaultTolerance)
	var sigErr *errors.ErrInvalidSignature
	require.ErrorAs(t, err, &sigErr)
}

func TestConstructEvent_MissingHeader(t *testing.T) {
	_, err := constructEventAt(completedPayload, "", webhookSecret, time.Now(), DefaultTolerance)
	var sigErr *errors.ErrInvalidSignature
	require.ErrorAs(t, err, &sigErr)
	assert.Contains(t, sigErr.Reason, "missing")
}

func TestConstructEvent_StaleTimestamp(t *testing.T) {
	signedAt := time.Now().Add(-10 * time.Minute)
	header := SignPayload(completedPayload, webhookSecret, signedAt)

	_, err := constructEventAt(completedPayload, header, webhookSecret, time.Now(), DefaultTolerance)
	var sigErr *errors.ErrInvalidSignature
	require.ErrorAs(t, err, &sigErr)
	assert.Contains(t, sigErr.Reason, "tolerance")
}

func TestConstructEvent_NoSecretSkipsVerification(t *testing.T) {
	// Development mode: no secret configured, any header accepted.
	event, err := constructEventAt(completedPayload, "garbage", "", time.Now(), DefaultTolerance)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
}

func TestPayerEmail_PrefersCustomerDetails(t *testing.T) {
	s := &CheckoutSession{
		CustomerEmail:   "submitted@example.com",
		CustomerDetails: &CustomerDetails{Email: "collected@example.com"},
	}
	assert.Equal(t, "collected@example.com", s.PayerEmail())

	s.CustomerDetails = nil
	assert.Equal(t, "submitted@example.com", s.PayerEmail())
}
