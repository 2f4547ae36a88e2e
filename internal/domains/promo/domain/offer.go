package domain

import (
	"errors"
	"strings"
)

const (
	DefaultCode            = "M&M"
	DefaultDiscountPercent = 10
)

var (
	ErrInvalidPercent = errors.New("discount percent must be between 0 and 100")
	ErrInvalidBase    = errors.New("base price must not be negative")
)

// Offer is the single promo code of the storefront and the product price it discounts.
type Offer struct {
	Code            string
	DiscountPercent int64
	BasePrice       int64
}

// NewOffer validates an offer and applies the default code when none is given.
func NewOffer(code string, percent, basePrice int64) (Offer, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		code = DefaultCode
	}
	if percent < 0 || percent > 100 {
		return Offer{}, ErrInvalidPercent
	}
	if basePrice < 0 {
		return Offer{}, ErrInvalidBase
	}
	return Offer{Code: code, DiscountPercent: percent, BasePrice: basePrice}, nil
}

// Matches compares a typed code case-insensitively, ignoring surrounding blanks.
func (o Offer) Matches(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), o.Code)
}

// DiscountedPrice is the base price reduced by the percentage, rounded to the
// nearest unit with halves rounded up.
func (o Offer) DiscountedPrice() int64 {
	scaled := o.BasePrice * (100 - o.DiscountPercent)
	return (scaled*2 + 100) / 200
}
