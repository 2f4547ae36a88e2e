package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Mode is the response-handling policy of an endpoint.
type Mode string

const (
	// ModeStrict requires a readable 2xx response.
	ModeStrict Mode = "strict"
	// ModeFireAndForget posts without reading the response when it is cross-origin.
	ModeFireAndForget Mode = "fire-and-forget"
)

var (
	ErrInvalidMode     = errors.New("invalid endpoint mode")
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	// ErrCrossOriginBlocked means a cross-origin response could not be read.
	ErrCrossOriginBlocked = errors.New("cross-origin response blocked")
)

// ParseMode accepts the config spellings of a mode. Empty means strict.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeStrict:
		return ModeStrict, nil
	case ModeFireAndForget, "no-cors":
		return ModeFireAndForget, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, raw)
	}
}

// Endpoint is one order destination.
type Endpoint struct {
	Name         string
	URL          string
	Mode         Mode
	AcceptOpaque bool
	// Timeout bounds one delivery; zero waits as long as the transport does.
	Timeout time.Duration
}

func (e Endpoint) Validate() error {
	if strings.TrimSpace(e.URL) == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidEndpoint)
	}
	if e.Mode != ModeStrict && e.Mode != ModeFireAndForget {
		return fmt.Errorf("%w: %q", ErrInvalidMode, e.Mode)
	}
	if e.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidEndpoint)
	}
	return nil
}

// Label names the endpoint in logs and metrics.
func (e Endpoint) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return e.URL
}

// Delivery is what could be observed of one response. An opaque delivery
// carries no status.
type Delivery struct {
	StatusCode int
	Opaque     bool
}

// Evaluate applies the endpoint policy to a delivery that did not error.
func (e Endpoint) Evaluate(d Delivery) bool {
	if d.Opaque {
		return e.Mode == ModeFireAndForget && e.AcceptOpaque
	}
	return d.StatusCode >= 200 && d.StatusCode < 300
}
