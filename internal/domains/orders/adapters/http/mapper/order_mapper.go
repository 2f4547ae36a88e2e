package mapper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	ordertypes "github.com/Apurer/choufli-storefront/internal/domains/orders/application/types"
	"github.com/Apurer/choufli-storefront/internal/domains/orders/domain"
)

// ErrInvalidJSON is returned when the request body is not a JSON object.
var ErrInvalidJSON = errors.New("invalid JSON")

// Order is the HTTP representation of a stored order.
type Order struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone"`
	Address   string            `json:"address"`
	Items     []domain.LineItem `json:"items"`
	Total     int64             `json:"total"`
	CreatedAt string            `json:"created_at"`
}

// OrderList wraps the list endpoint response.
type OrderList struct {
	Orders []Order `json:"orders"`
}

// ParsePlaceOrder decodes an intake body leniently: customer fields are
// stringified and trimmed, total accepts numbers and numeric strings, and
// malformed line items are kept as empty lines.
func ParsePlaceOrder(body []byte, idempotencyKey string) (ordertypes.PlaceOrderInput, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil || payload == nil {
		return ordertypes.PlaceOrderInput{}, ErrInvalidJSON
	}

	customer, _ := payload["customer"].(map[string]any)
	input := ordertypes.PlaceOrderInput{
		Customer: domain.Customer{
			Name:    coerceString(customer["name"]),
			Phone:   coerceString(customer["phone"]),
			Address: coerceString(customer["address"]),
		},
		Total:          coerceInt(payload["total"]),
		IdempotencyKey: strings.TrimSpace(idempotencyKey),
	}
	if input.Customer.Name == "" || input.Customer.Phone == "" || input.Customer.Address == "" {
		return ordertypes.PlaceOrderInput{}, domain.ErrMissingFields
	}

	items, err := coerceItems(payload["items"])
	if err != nil {
		return ordertypes.PlaceOrderInput{}, err
	}
	input.Items = items
	return input, nil
}

func coerceItems(raw any) ([]domain.LineItem, error) {
	if raw == nil {
		return []domain.LineItem{}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: items must be a list", domain.ErrMissingFields)
	}
	items := make([]domain.LineItem, 0, len(list))
	for _, entry := range list {
		fields, _ := entry.(map[string]any)
		items = append(items, domain.LineItem{
			Name:  coerceString(fields["name"]),
			Price: coerceInt(fields["price"]),
			Size:  coerceString(fields["size"]),
		})
	}
	return items, nil
}

func coerceString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func coerceInt(raw any) int64 {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		// totals outside the int64 range count as unparseable
		if f, err := v.Float64(); err == nil && f >= -(1<<63) && f < 1<<63 {
			return int64(f)
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	case bool:
		if v {
			return 1
		}
	}
	return 0
}

// FromDomain maps a stored order to its HTTP representation.
func FromDomain(order *domain.Order) Order {
	items := order.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return Order{
		ID:        order.ID,
		Name:      order.Customer.Name,
		Phone:     order.Customer.Phone,
		Address:   order.Customer.Address,
		Items:     items,
		Total:     order.Total,
		CreatedAt: order.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// FromDomainList maps stored orders preserving order.
func FromDomainList(orders []*domain.Order) OrderList {
	out := OrderList{Orders: make([]Order, 0, len(orders))}
	for _, order := range orders {
		if order == nil {
			continue
		}
		out.Orders = append(out.Orders, FromDomain(order))
	}
	return out
}
