package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/choufli-storefront/internal/domains/orders/domain"
)

func TestParsePlaceOrder(t *testing.T) {
	body := `{"customer":{"name":" Amel ","phone":"22 333 444","address":"Rue 5"},
		"items":[{"name":"Chemise Choufli","price":45,"size":"M"},{"name":"Casquette","price":"30"},"junk"],
		"total":83}`
	input, err := ParsePlaceOrder([]byte(body), " key-1 ")
	require.NoError(t, err)
	require.Equal(t, domain.Customer{Name: "Amel", Phone: "22 333 444", Address: "Rue 5"}, input.Customer)
	require.Equal(t, int64(83), input.Total)
	require.Equal(t, "key-1", input.IdempotencyKey)
	require.Equal(t, []domain.LineItem{
		{Name: "Chemise Choufli", Price: 45, Size: "M"},
		{Name: "Casquette", Price: 30},
		{},
	}, input.Items)
}

func TestParsePlaceOrder_TotalCoercion(t *testing.T) {
	cases := map[string]int64{
		`128`:    128,
		`"128"`:  128,
		`12.7`:   12,
		`"12.5"`: 0,
		`"abc"`:  0,
		`null`:   0,
		`[1]`:    0,
		`1e19`:   0,
		`-1e300`: 0,
		`1e400`:  0,
		`-9e18`:  -9_000_000_000_000_000_000,
	}
	for raw, want := range cases {
		body := `{"customer":{"name":"n","phone":"p","address":"a"},"items":[],"total":` + raw + `}`
		input, err := ParsePlaceOrder([]byte(body), "")
		require.NoError(t, err, raw)
		require.Equal(t, want, input.Total, raw)
	}
}

func TestParsePlaceOrder_Rejects(t *testing.T) {
	_, err := ParsePlaceOrder([]byte(`{not json`), "")
	require.ErrorIs(t, err, ErrInvalidJSON)

	_, err = ParsePlaceOrder([]byte(`[1,2]`), "")
	require.ErrorIs(t, err, ErrInvalidJSON)

	_, err = ParsePlaceOrder([]byte(`{"customer":{"name":"n","phone":"  ","address":"a"},"items":[]}`), "")
	require.ErrorIs(t, err, domain.ErrMissingFields)

	_, err = ParsePlaceOrder([]byte(`{"items":[]}`), "")
	require.ErrorIs(t, err, domain.ErrMissingFields)

	_, err = ParsePlaceOrder([]byte(`{"customer":{"name":"n","phone":"p","address":"a"},"items":"x"}`), "")
	require.ErrorIs(t, err, domain.ErrMissingFields)
}

func TestParsePlaceOrder_MissingItemsIsEmptyList(t *testing.T) {
	input, err := ParsePlaceOrder([]byte(`{"customer":{"name":"n","phone":"p","address":"a"}}`), "")
	require.NoError(t, err)
	require.NotNil(t, input.Items)
	require.Empty(t, input.Items)
}

func TestFromDomainList(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	list := FromDomainList([]*domain.Order{
		{ID: 2, Customer: domain.Customer{Name: "n", Phone: "p", Address: "a"}, Total: 10, CreatedAt: created},
		nil,
	})
	raw, err := json.Marshal(list)
	require.NoError(t, err)
	require.JSONEq(t, `{"orders":[{"id":2,"name":"n","phone":"p","address":"a","items":[],"total":10,"created_at":"2024-05-01T10:30:00Z"}]}`, string(raw))
}
