package domain

import "time"

// CartItem is one line of a submitted cart. Prices are in minor currency
// units (cents); never floating point. Ephemeral: lives only for the
// duration of one checkout request.
type CartItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	UnitPrice int64    `json:"unit_price"`
	Quantity  int      `json:"quantity"`
	Image     string   `json:"image,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// ShippingInfo is the delivery destination submitted with a cart. Ephemeral;
// it reaches the recorded order only through the processor's session
// metadata.
type ShippingInfo struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Email      string `json:"email,omitempty"`
	Method     string `json:"method"`
}

// Order is one recorded, paid order. SessionID is the processor's checkout
// session identifier and doubles as the idempotency key: the store holds at
// most one order per session. Immutable after creation.
type Order struct {
	SessionID string       `json:"session_id"`
	Reference string       `json:"reference"`
	CreatedAt time.Time    `json:"created_at"`
	Email     string       `json:"email"`
	Total     int64        `json:"total"`
	Currency  string       `json:"currency"`
	Shipping  ShippingInfo `json:"shipping"`
	Items     []OrderItem  `json:"items"`
}

// OrderItem is one priced entry of a recorded order, as itemized by the
// processor (products and the synthetic shipping line alike).
type OrderItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Amount      int64  `json:"amount"`
}
