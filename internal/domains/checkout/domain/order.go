package domain

import (
	"strings"

	cartdomain "github.com/Apurer/choufli-storefront/internal/domains/cart/domain"
)

// Customer is the contact block read from the checkout form. Fields are
// trimmed but may be empty; the storefront does not validate them.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Normalize trims surrounding whitespace from every field.
func (c Customer) Normalize() Customer {
	return Customer{
		Name:    strings.TrimSpace(c.Name),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
}

// Payload is the body posted to every order endpoint.
type Payload struct {
	Customer Customer        `json:"customer"`
	Items    cartdomain.Cart `json:"items"`
	Total    int64           `json:"total"`
}

// NewPayload snapshots the cart. Total includes shipping unless the cart is empty.
func NewPayload(customer Customer, cart cartdomain.Cart, shippingFee int64) Payload {
	return Payload{
		Customer: customer.Normalize(),
		Items:    cart.Clone(),
		Total:    cart.Total(shippingFee),
	}
}
