package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	intakeclient "github.com/Apurer/choufli-storefront/internal/clients/http/intake"
	cartobs "github.com/Apurer/choufli-storefront/internal/domains/cart/adapters/observability"
	cartapp "github.com/Apurer/choufli-storefront/internal/domains/cart/application"
	cartdomain "github.com/Apurer/choufli-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/choufli-storefront/internal/domains/cart/ports"
	checkoutendpoints "github.com/Apurer/choufli-storefront/internal/domains/checkout/adapters/external/endpoints"
	checkoutobs "github.com/Apurer/choufli-storefront/internal/domains/checkout/adapters/observability"
	checkoutapp "github.com/Apurer/choufli-storefront/internal/domains/checkout/application"
	checkoutdomain "github.com/Apurer/choufli-storefront/internal/domains/checkout/domain"
	checkoutports "github.com/Apurer/choufli-storefront/internal/domains/checkout/ports"
	promoapp "github.com/Apurer/choufli-storefront/internal/domains/promo/application"
	"github.com/Apurer/choufli-storefront/internal/platform/kv"
	platformobservability "github.com/Apurer/choufli-storefront/internal/platform/observability"
)

// ErrUnknownProduct is returned by Add for a product missing from the
// catalog when no explicit price is given.
var ErrUnknownProduct = errors.New("unknown product")

// ErrPromoNeedsShell is returned by promo outside the interactive session.
var ErrPromoNeedsShell = errors.New("le code promo s'utilise dans la session interactive: storefront shell")

// App is one storefront session: the cart, the promo gate and checkout
// sharing a single durable store and terminal.
type App struct {
	cfg      Config
	store    kv.Store
	terminal *Terminal
	cart     cartports.Service
	promo    *promoapp.Service
	checkout checkoutports.Service
	logger   *slog.Logger
}

// Open builds the session. The caller owns Close.
func Open(ctx context.Context, cfg Config, terminal *Terminal, instruments *platformobservability.Instruments) (*App, error) {
	store, err := kv.OpenLevelDB(filepath.Join(cfg.DataDir, "storefront.db"))
	if err != nil {
		return nil, fmt.Errorf("open storefront storage: %w", err)
	}
	app, err := newApp(ctx, cfg, store, terminal, instruments)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, cfg Config, store kv.Store, terminal *Terminal, instruments *platformobservability.Instruments) (*App, error) {
	logger := instruments.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	offer, err := cfg.Offer()
	if err != nil {
		return nil, err
	}
	endpoints, err := cfg.CheckoutEndpoints()
	if err != nil {
		return nil, err
	}

	session := cartapp.NewSession(ctx,
		cartapp.NewStore(store, logger),
		cartapp.WithPresenter(terminal),
		cartapp.WithShippingFee(cfg.Fee()),
	)
	cart := cartobs.New(session,
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	client, err := intakeclient.NewClient(cfg.Origin, nil)
	if err != nil {
		return nil, fmt.Errorf("storefront origin: %w", err)
	}
	dispatcher, err := checkoutendpoints.NewDispatcher(client)
	if err != nil {
		return nil, err
	}
	core, err := checkoutapp.NewService(cart, dispatcher, endpoints,
		checkoutapp.WithForm(terminal),
		checkoutapp.WithNotifier(terminal),
		checkoutapp.WithSubmitControl(terminal),
		checkoutapp.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	checkout := checkoutobs.New(core,
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)

	return &App{
		cfg:      cfg,
		store:    store,
		terminal: terminal,
		cart:     cart,
		promo:    promoapp.NewService(store, offer, promoapp.WithLogger(logger)),
		checkout: checkout,
		logger:   logger,
	}, nil
}

func (a *App) Close() error {
	return a.store.Close()
}

// Show renders the cart.
func (a *App) Show(ctx context.Context) cartdomain.View {
	return a.cart.Refresh(ctx)
}

// Add puts a product in the cart. An explicit price wins; otherwise the
// promoted product uses the promo price and anything else its catalog price.
func (a *App) Add(ctx context.Context, name string, price *int64, size cartdomain.Size) (cartdomain.View, error) {
	req := cartdomain.AddRequest{Name: name, Size: size}
	switch product, known := a.cfg.Product(name); {
	case price != nil:
		req.Price = *price
	case known && a.isPromoted(product.Name):
		req.Name = product.Name
		req.Price = a.promo.Price()
	case known:
		req.Name = product.Name
		req.Price = product.Price
	default:
		return cartdomain.View{}, fmt.Errorf("%w: %q (pass --price)", ErrUnknownProduct, name)
	}
	return a.cart.Add(ctx, req)
}

func (a *App) isPromoted(name string) bool {
	promoted, ok := a.cfg.Product(a.cfg.Promo.Product)
	return ok && promoted.Name == name
}

// ChangeSize updates one line's size. An unknown index is ignored.
func (a *App) ChangeSize(ctx context.Context, index int, size cartdomain.Size) error {
	return a.cart.ChangeSize(ctx, index, size)
}

// Remove drops one line. An unknown index is ignored.
func (a *App) Remove(ctx context.Context, index int) (cartdomain.View, error) {
	return a.cart.Remove(ctx, index)
}

// Checkout submits the cart for customer.
func (a *App) Checkout(ctx context.Context, customer checkoutdomain.Customer) (checkoutdomain.Result, error) {
	a.terminal.SetCustomer(customer)
	return a.checkout.Submit(ctx)
}

// Promo redeems code and returns the message to show.
func (a *App) Promo(ctx context.Context, code string) (string, error) {
	if _, err := a.promo.Redeem(ctx, code); err != nil {
		return promoapp.Message(err), err
	}
	return fmt.Sprintf(promoapp.MessageApplied, a.promo.Offer().DiscountPercent), nil
}

// PromoProduct is the promoted catalog entry with its current price.
func (a *App) PromoProduct() Product {
	product, _ := a.cfg.Product(a.cfg.Promo.Product)
	product.Price = a.promo.Price()
	return product
}

// Catalog lists the configured products with current prices.
func (a *App) Catalog() []Product {
	out := make([]Product, 0, len(a.cfg.Catalog))
	for _, p := range a.cfg.Catalog {
		if a.isPromoted(p.Name) {
			p.Price = a.promo.Price()
		}
		out = append(out, p)
	}
	return out
}

func (a *App) Terminal() *Terminal {
	return a.terminal
}
