package domain

// EmptyCartMessage is shown in place of the line list when the cart is empty.
const EmptyCartMessage = "Ton panier est vide pour le moment."

// Currency labels every amount in the view.
const Currency = "TND"

// Row is the display shape of one cart line. Index keys the size selector
// and the remove control.
type Row struct {
	Index       int
	Name        string
	Size        Size
	SizeOptions []Size
	Price       int64
}

// View is everything the cart region displays. It is rebuilt from scratch on every render.
type View struct {
	Rows            []Row
	Empty           bool
	EmptyMessage    string
	Subtotal        int64
	Shipping        int64
	Total           int64
	Count           int
	CheckoutEnabled bool
	Currency        string
}

// Render projects a cart into its view. It never mutates the cart.
func Render(cart Cart, shippingFee int64) View {
	if cart.Empty() {
		return View{Empty: true, EmptyMessage: EmptyCartMessage, Currency: Currency}
	}
	rows := make([]Row, 0, len(cart))
	for i, item := range cart {
		rows = append(rows, Row{
			Index:       i,
			Name:        item.Name,
			Size:        item.Size,
			SizeOptions: Sizes(),
			Price:       item.Price,
		})
	}
	subtotal := cart.Subtotal()
	return View{
		Rows:            rows,
		Subtotal:        subtotal,
		Shipping:        shippingFee,
		Total:           subtotal + shippingFee,
		Count:           len(cart),
		CheckoutEnabled: true,
		Currency:        Currency,
	}
}
