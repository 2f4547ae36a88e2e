package domain

import (
	"errors"
	"strings"
)

// Size is the garment size recorded on a cart line.
type Size string

const (
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"

	// DefaultSize is used when an add request carries no size.
	DefaultSize = SizeS
)

// DefaultShippingFee is the flat fee, in currency units, added to a non-empty cart.
const DefaultShippingFee int64 = 8

var (
	ErrInvalidSize  = errors.New("size must be one of S, M, L, XL")
	ErrInvalidName  = errors.New("product name is required")
	ErrInvalidPrice = errors.New("price must not be negative")
)

// Sizes lists the selectable sizes in display order.
func Sizes() []Size {
	return []Size{SizeS, SizeM, SizeL, SizeXL}
}

// ParseSize normalizes user input ("xl", " m ") into a Size.
func ParseSize(raw string) (Size, error) {
	size := Size(strings.ToUpper(strings.TrimSpace(raw)))
	if !size.Valid() {
		return "", ErrInvalidSize
	}
	return size, nil
}

func (s Size) Valid() bool {
	switch s {
	case SizeS, SizeM, SizeL, SizeXL:
		return true
	default:
		return false
	}
}

// Item is one product+size+price line. Lines have no identity beyond their position.
type Item struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Size  Size   `json:"size"`
}

// AddRequest is what the UI collaborator hands over when a product is added.
type AddRequest struct {
	Name  string
	Price int64
	Size  Size
}

// NewItem validates an add request and applies the default size.
func NewItem(req AddRequest) (Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Item{}, ErrInvalidName
	}
	if req.Price < 0 {
		return Item{}, ErrInvalidPrice
	}
	size := req.Size
	if size == "" {
		size = DefaultSize
	}
	if !size.Valid() {
		return Item{}, ErrInvalidSize
	}
	return Item{Name: name, Price: req.Price, Size: size}, nil
}

// Cart is the ordered list of lines; insertion order is display order.
type Cart []Item

func (c Cart) Empty() bool { return len(c) == 0 }

// Clone returns an independent copy so callers can stage a mutation.
func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	return append(Cart{}, c...)
}

// Subtotal sums the line prices.
func (c Cart) Subtotal() int64 {
	var total int64
	for _, item := range c {
		total += item.Price
	}
	return total
}

// Total is the amount due: subtotal plus the flat fee, or zero for an empty cart.
func (c Cart) Total(shippingFee int64) int64 {
	if c.Empty() {
		return 0
	}
	return c.Subtotal() + shippingFee
}

// Valid reports whether index addresses an existing line.
func (c Cart) Valid(index int) bool {
	return index >= 0 && index < len(c)
}

// Append returns a copy of the cart with item appended.
func (c Cart) Append(item Item) Cart {
	next := c.Clone()
	return append(next, item)
}

// WithSize returns a copy with the line at index resized. Out-of-range
// indexes yield an unchanged copy and false.
func (c Cart) WithSize(index int, size Size) (Cart, bool) {
	next := c.Clone()
	if !next.Valid(index) {
		return next, false
	}
	next[index].Size = size
	return next, true
}

// Without returns a copy with the line at index removed. Later lines shift
// down by one. Out-of-range indexes yield an unchanged copy and false.
func (c Cart) Without(index int) (Cart, bool) {
	if !c.Valid(index) {
		return c.Clone(), false
	}
	next := make(Cart, 0, len(c)-1)
	next = append(next, c[:index]...)
	next = append(next, c[index+1:]...)
	return next, true
}
