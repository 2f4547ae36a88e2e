package application

import "errors"

var (
	// ErrAlreadyUsed is returned for every attempt once the code has been redeemed.
	ErrAlreadyUsed = errors.New("promo code already used")
	// ErrInvalidCode is returned for a wrong code while the promo is still available.
	ErrInvalidCode = errors.New("promo code invalid")
)

// User-facing notices for the promo form.
const (
	MessageApplied     = "Code promo applique : -%d%% sur ce produit."
	MessageAlreadyUsed = "Code promo deja utilise."
	MessageInvalid     = "Code promo invalide."
)

// Message maps a Redeem error to the notice shown to the shopper.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyUsed):
		return MessageAlreadyUsed
	case errors.Is(err, ErrInvalidCode):
		return MessageInvalid
	default:
		return ""
	}
}
