package ports

import (
	"context"

	"github.com/Apurer/choufli-storefront/internal/domains/cart/domain"
)

// Presenter is the UI collaborator that displays the cart region.
type Presenter interface {
	// Present replaces whatever was displayed before with view.
	Present(ctx context.Context, view domain.View)
	// FocusCart brings the cart region into view. Best effort.
	FocusCart(ctx context.Context)
}

// NoopPresenter discards renders; useful for headless sessions.
var NoopPresenter Presenter = noopPresenter{}

type noopPresenter struct{}

func (noopPresenter) Present(context.Context, domain.View) {}
func (noopPresenter) FocusCart(context.Context)            {}
