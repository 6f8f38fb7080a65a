package domain

// ShippingMethod represents how a customer wants their order delivered
type ShippingMethod string

const (
	ShippingMethodStandard ShippingMethod = "standard"
	ShippingMethodExpress  ShippingMethod = "express"
)

// IsValid checks if the shipping method is one of the known tags
func (m ShippingMethod) IsValid() bool {
	switch m {
	case ShippingMethodStandard, ShippingMethodExpress:
		return true
	default:
		return false
	}
}
