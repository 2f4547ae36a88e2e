package ports

import (
	"context"

	"github.com/Apurer/choufli-storefront/internal/domains/checkout/domain"
)

// Form is the checkout form owned by the UI collaborator.
type Form interface {
	Customer() domain.Customer
	Reset()
}

// Level grades a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notice struct {
	Level   Level
	Message string
}

// Notifier shows a notice to the shopper. It may block until acknowledged.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// SubmitControl is the checkout button. It is re-enabled by the next cart render.
type SubmitControl interface {
	DisableSubmit()
}

// NoopUI satisfies every UI port and does nothing.
type NoopUI struct{}

func (NoopUI) Customer() domain.Customer      { return domain.Customer{} }
func (NoopUI) Reset()                         {}
func (NoopUI) Notify(context.Context, Notice) {}
func (NoopUI) DisableSubmit()                 {}
