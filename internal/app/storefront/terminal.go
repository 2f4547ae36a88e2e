package storefront

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	cartdomain "github.com/Apurer/choufli-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/choufli-storefront/internal/domains/cart/ports"
	checkoutdomain "github.com/Apurer/choufli-storefront/internal/domains/checkout/domain"
	checkoutports "github.com/Apurer/choufli-storefront/internal/domains/checkout/ports"
)

var (
	_ cartports.Presenter         = (*Terminal)(nil)
	_ checkoutports.Form          = (*Terminal)(nil)
	_ checkoutports.Notifier      = (*Terminal)(nil)
	_ checkoutports.SubmitControl = (*Terminal)(nil)
)

// Terminal is the storefront UI on a text terminal. It renders the cart
// region, holds the checkout form and shows notices. Renders are buffered
// until Flush so a command prints the final state once.
type Terminal struct {
	mu       sync.Mutex
	out      io.Writer
	in       *bufio.Reader
	blocking bool

	customer  checkoutdomain.Customer
	view      *cartdomain.View
	focused   bool
	submitOff bool
}

// NewTerminal writes to out. When in is non-nil, notices wait for Enter.
func NewTerminal(out io.Writer, in *bufio.Reader) *Terminal {
	return &Terminal{out: out, in: in, blocking: in != nil}
}

// Present keeps the latest view for Flush.
func (t *Terminal) Present(_ context.Context, view cartdomain.View) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.view = &view
	t.submitOff = !view.CheckoutEnabled
}

func (t *Terminal) FocusCart(context.Context) {
	t.mu.Lock()
	t.focused = true
	t.mu.Unlock()
}

// Flush prints the pending cart view, if any.
func (t *Terminal) Flush() {
	t.mu.Lock()
	view := t.view
	t.view = nil
	t.focused = false
	t.mu.Unlock()
	if view != nil {
		t.PrintView(*view)
	}
}

// PrintView renders the cart region as a table.
func (t *Terminal) PrintView(view cartdomain.View) {
	fmt.Fprintf(t.out, "Panier (%d)\n", view.Count)
	if view.Empty {
		fmt.Fprintln(t.out, view.EmptyMessage)
		fmt.Fprintf(t.out, "Total: 0 %s\n", view.Currency)
		return
	}
	tw := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tProduit\tTaille\tPrix")
	for _, row := range view.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d %s\n", row.Index, row.Name, sizeChoices(row), row.Price, view.Currency)
	}
	_ = tw.Flush()
	fmt.Fprintf(t.out, "Sous-total: %d %s\n", view.Subtotal, view.Currency)
	fmt.Fprintf(t.out, "Livraison: %d %s\n", view.Shipping, view.Currency)
	fmt.Fprintf(t.out, "Total: %d %s\n", view.Total, view.Currency)
}

func sizeChoices(row cartdomain.Row) string {
	parts := make([]string, 0, len(row.SizeOptions))
	for _, size := range row.SizeOptions {
		if size == row.Size {
			parts = append(parts, "["+string(size)+"]")
			continue
		}
		parts = append(parts, string(size))
	}
	return strings.Join(parts, " ")
}

// SetCustomer fills the checkout form.
func (t *Terminal) SetCustomer(c checkoutdomain.Customer) {
	t.mu.Lock()
	t.customer = c
	t.mu.Unlock()
}

func (t *Terminal) Customer() checkoutdomain.Customer {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.customer
}

func (t *Terminal) Reset() {
	t.mu.Lock()
	t.customer = checkoutdomain.Customer{}
	t.mu.Unlock()
}

func (t *Terminal) DisableSubmit() {
	t.mu.Lock()
	t.submitOff = true
	t.mu.Unlock()
}

// SubmitDisabled reports whether the last render left checkout disabled.
func (t *Terminal) SubmitDisabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.submitOff
}

// Notify prints the notice and, in an interactive session, waits for Enter.
func (t *Terminal) Notify(_ context.Context, notice checkoutports.Notice) {
	fmt.Fprintf(t.out, "%s %s\n", noticePrefix(notice.Level), notice.Message)
	if !t.blocking {
		return
	}
	fmt.Fprint(t.out, "(Entree pour continuer)")
	_, _ = t.in.ReadString('\n')
	fmt.Fprintln(t.out)
}

func noticePrefix(level checkoutports.Level) string {
	switch level {
	case checkoutports.LevelError:
		return "[erreur]"
	case checkoutports.LevelWarning:
		return "[attention]"
	default:
		return "[info]"
	}
}
