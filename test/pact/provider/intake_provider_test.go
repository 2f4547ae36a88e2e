//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/Apurer/choufli-storefront/test/pact"

	"github.com/Apurer/choufli-storefront/internal/app/api"
	orderhandlers "github.com/Apurer/choufli-storefront/internal/domains/orders/adapters/http/handlers"
	ordersmemory "github.com/Apurer/choufli-storefront/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/choufli-storefront/internal/domains/orders/adapters/observability"
	ordersworkflows "github.com/Apurer/choufli-storefront/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/choufli-storefront/internal/domains/orders/application"
	ordertypes "github.com/Apurer/choufli-storefront/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/choufli-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/choufli-storefront/internal/domains/orders/ports"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestOrderIntakeProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateOrdersBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetOrders(t)
			return nil, nil
		},
		pacttest.StateSubmissionSeen: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetOrders(t)
			if setup {
				app.seedOrder(t, pacttest.ExistingSubmissionID)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetOrders(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo    *ordersmemory.Repository
	service ordersports.Service
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	repo := ordersmemory.NewRepository()
	service := ordersobs.New(ordersapp.NewService(repo))
	workflows := ordersworkflows.NewInlineOrderWorkflows(service)

	router := api.NewRouter(orderhandlers.NewOrderAPI(service, workflows, nil), api.RouterOptions{
		Config: api.Config{OrderRatePerMinute: 6000, OrderRateBurst: 1000, AdminUser: "admin", AdminPassword: "pact"},
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{repo: repo, service: service, server: server}
}

func (a *contractProviderApp) resetOrders(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	orders, err := a.repo.ListRecent(ctx, 1000)
	require.NoError(t, err)
	for _, order := range orders {
		_ = a.repo.Delete(ctx, order.ID)
	}
}

func (a *contractProviderApp) seedOrder(t testing.TB, submissionID string) {
	t.Helper()
	name, phone, address := pacttest.ExampleCustomer()
	product, price, size := pacttest.ExampleLine()
	_, err := a.service.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		Customer:       orderdomain.Customer{Name: name, Phone: phone, Address: address},
		Items:          []orderdomain.LineItem{{Name: product, Price: price, Size: size}},
		Total:          pacttest.ExampleTotal,
		IdempotencyKey: submissionID,
	})
	require.NoError(t, err)
}
