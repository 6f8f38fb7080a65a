package payment

import "encoding/json"

// CheckoutSessionParams is the payload for creating a hosted checkout
// session. All amounts are in minor currency units.
type CheckoutSessionParams struct {
	LineItems         []LineItemParams  `json:"line_items"`
	Currency          string            `json:"currency"`
	SuccessURL        string            `json:"success_url"`
	CancelURL         string            `json:"cancel_url"`
	CustomerEmail     string            `json:"customer_email,omitempty"`
	ShippingCountries []string          `json:"shipping_countries,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// LineItemParams is one priced entry submitted to the processor. Image URLs
// must be absolute: the processor fetches them out-of-band.
type LineItemParams struct {
	Name       string   `json:"name"`
	UnitAmount int64    `json:"unit_amount"`
	Quantity   int      `json:"quantity"`
	Images     []string `json:"images,omitempty"`
}

// CheckoutSession is the processor's view of a hosted checkout session
type CheckoutSession struct {
	ID              string            `json:"id"`
	URL             string            `json:"url,omitempty"`
	Created         int64             `json:"created"`
	AmountTotal     int64             `json:"amount_total"`
	Currency        string            `json:"currency"`
	CustomerEmail   string            `json:"customer_email,omitempty"`
	CustomerDetails *CustomerDetails  `json:"customer_details,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// CustomerDetails is what the processor collected on its hosted page
type CustomerDetails struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// PayerEmail returns the best-known payer address: the email collected on
// the hosted page when present, else the one submitted at session creation.
func (s *CheckoutSession) PayerEmail() string {
	if s.CustomerDetails != nil && s.CustomerDetails.Email != "" {
		return s.CustomerDetails.Email
	}
	return s.CustomerEmail
}

// LineItem is one itemized entry of a completed session, as returned by the
// line-item fetch. Amount is the line total, not the unit price.
type LineItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Amount      int64  `json:"amount_total"`
}

// lineItemList is the wire shape of the line-item fetch response
type lineItemList struct {
	Data []LineItem `json:"data"`
}

// Event type tags the processor delivers. Only the completed-checkout tag is
// acted on; everything else is acknowledged and discarded.
const (
	EventCheckoutCompleted = "checkout.session.completed"
)

// Event is the envelope of an asynchronous processor notification. Data
// stays raw until the event type is known.
type Event struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Created int64     `json:"created"`
	Data    EventData `json:"data"`
}

type EventData struct {
	Object json.RawMessage `json:"object"`
}

// Session decodes the event payload as a checkout session. Only meaningful
// for checkout events; callers filter on Type first.
func (e *Event) Session() (*CheckoutSession, error) {
	var s CheckoutSession
	if err := json.Unmarshal(e.Data.Object, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// apiError is the processor's non-2xx response body
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
