package application

import "errors"

var (
	// ErrEmptyCart rejects a checkout before any network call.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSubmissionFailed means no endpoint accepted the order.
	ErrSubmissionFailed = errors.New("order submission failed")
	// ErrSubmissionInProgress rejects a second submit while one is in flight.
	ErrSubmissionInProgress = errors.New("order submission already in progress")
	ErrNoEndpoints          = errors.New("no order endpoints configured")
)
