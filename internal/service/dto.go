package service

import "github.com/footkitshop/storefront/internal/domain"

// CheckoutRequest represents the checkout submission payload
type CheckoutRequest struct {
	Items    []CartItemRequest `json:"items" binding:"required,min=1"`
	Shipping ShippingRequest   `json:"shipping" binding:"required"`
}

// CartItemRequest is one cart line as submitted by the storefront. Amounts
// are minor currency units; numeric validity is checked by the pricing
// engine, not the binding layer, so bad values surface as InvalidItem.
type CartItemRequest struct {
	ID        string   `json:"id"`
	Name      string   `json:"name" binding:"required"`
	UnitPrice int64    `json:"unit_price"`
	Quantity  int      `json:"quantity"`
	Image     string   `json:"image,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

type ShippingRequest struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Email      string `json:"email,omitempty"`
	Method     string `json:"method,omitempty"`
}

// CheckoutResponse carries the processor's hosted-payment redirect URL
type CheckoutResponse struct {
	URL string `json:"url"`
}

// ToDomain converts the request into domain cart items and shipping info.
// Absent optional fields stay empty; nothing is coerced silently.
func (r *CheckoutRequest) ToDomain() ([]domain.CartItem, domain.ShippingInfo) {
	items := make([]domain.CartItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = domain.CartItem{
			ID:        item.ID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Image:     item.Image,
			Tags:      item.Tags,
		}
	}

	shipping := domain.ShippingInfo{
		Name:       r.Shipping.Name,
		Address:    r.Shipping.Address,
		City:       r.Shipping.City,
		PostalCode: r.Shipping.PostalCode,
		Country:    r.Shipping.Country,
		Email:      r.Shipping.Email,
		Method:     r.Shipping.Method,
	}
	if shipping.Method == "" {
		shipping.Method = string(domain.ShippingMethodStandard)
	}

	return items, shipping
}
