package errors

import "fmt"

// ErrInvalidItem indicates a malformed cart line (bad price or quantity)
type ErrInvalidItem struct {
	ItemID string
	Reason string
}

func (e *ErrInvalidItem) Error() string {
	return fmt.Sprintf("invalid cart item %q: %s", e.ItemID, e.Reason)
}

// ErrPaymentNotConfigured indicates no payment processor credential is set
type ErrPaymentNotConfigured struct{}

func (e *ErrPaymentNotConfigured) Error() string {
	return "payment processor is not configured"
}

// ErrPaymentProvider indicates the external processor rejected a request
// or the request timed out
type ErrPaymentProvider struct {
	StatusCode int
	Message    string
}

func (e *ErrPaymentProvider) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("payment provider error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("payment provider error: %s", e.Message)
}

// ErrInvalidSignature indicates a webhook payload failed signature verification
type ErrInvalidSignature struct {
	Reason string
}

func (e *ErrInvalidSignature) Error() string {
	return fmt.Sprintf("invalid webhook signature: %s", e.Reason)
}

// ErrStorage indicates the order store failed to persist or read data
type ErrStorage struct {
	Op  string
	Err error
}

func (e *ErrStorage) Error() string {
	return fmt.Sprintf("order store %s failed: %v", e.Op, e.Err)
}

func (e *ErrStorage) Unwrap() error {
	return e.Err
}

// ErrForbidden indicates a request failed the admin secret check
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	return e.Message
}
