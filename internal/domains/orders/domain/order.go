package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// ErrMissingFields is returned when a contact field is blank after trimming.
var ErrMissingFields = errors.New("missing fields")

// Customer is who the order is delivered to and paid by, cash on delivery.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// LineItem is one cart line as submitted by the storefront. The intake side
// stores it verbatim and does not reprice it.
type LineItem struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Size  string `json:"size"`
}

// Order models a received storefront order.
type Order struct {
	ID           int64
	Customer     Customer
	Items        []LineItem
	Total        int64
	SubmissionID string
	CreatedAt    time.Time
}

// NewOrder trims the contact fields and validates the aggregate.
func NewOrder(customer Customer, items []LineItem, total int64, submissionID string) (*Order, error) {
	if items == nil {
		items = []LineItem{}
	}
	order := &Order{
		Customer: Customer{
			Name:    strings.TrimSpace(customer.Name),
			Phone:   strings.TrimSpace(customer.Phone),
			Address: strings.TrimSpace(customer.Address),
		},
		Items:        slices.Clone(items),
		Total:        total,
		SubmissionID: strings.TrimSpace(submissionID),
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.Customer.Name == "" || o.Customer.Phone == "" || o.Customer.Address == "" {
		return ErrMissingFields
	}
	return nil
}

// SameContent reports whether two orders carry the same customer, lines and total.
func (o *Order) SameContent(other *Order) bool {
	if o == nil || other == nil {
		return o == other
	}
	return o.Customer == other.Customer && o.Total == other.Total && slices.Equal(o.Items, other.Items)
}

// ItemsSummary renders the lines as "name (size)" separated by commas.
func (o *Order) ItemsSummary() string {
	parts := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		parts = append(parts, item.Name+" ("+item.Size+")")
	}
	return strings.Join(parts, ", ")
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = slices.Clone(o.Items)
	return &clone
}
