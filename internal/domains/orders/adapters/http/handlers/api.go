package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/choufli-storefront/internal/domains/orders/adapters/http/mapper"
	ordertypes "github.com/Apurer/choufli-storefront/internal/domains/orders/application/types"
	"github.com/Apurer/choufli-storefront/internal/domains/orders/ports"
)

const (
	// ListLimit is the number of orders returned by GET /api/orders.
	ListLimit = 50
	// AdminLimit is the number of orders shown on the admin page.
	AdminLimit = 100

	idempotencyHeader = "Idempotency-Key"
)

// OrderAPI wires HTTP transport with the orders bounded context service and workflows.
type OrderAPI struct {
	service   ports.Service
	workflows ports.WorkflowOrchestrator
	logger    *slog.Logger
}

// NewOrderAPI creates an OrderAPI. A nil orchestrator places orders through the service directly.
func NewOrderAPI(service ports.Service, workflows ports.WorkflowOrchestrator, logger *slog.Logger) OrderAPI {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return OrderAPI{service: service, workflows: workflows, logger: logger}
}

// Post /api/orders
// Receive a storefront order. The body is read as JSON whatever the content
// type, so opaque text/plain posts are accepted too.
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondOrderError(c, mapper.ErrInvalidJSON)
		return
	}
	input, err := mapper.ParsePlaceOrder(body, c.GetHeader(idempotencyHeader))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	placed, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		api.logger.Error("order intake failed", slog.String("error", err.Error()))
		respondOrderError(c, err)
		return
	}
	if placed != nil && placed.Replayed {
		api.logger.Info("order intake replayed", slog.Int64("order_id", placed.Order.ID))
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok"})
}

func (api *OrderAPI) placeOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*ordertypes.PlacedOrder, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Get /api/orders
// List the most recent orders
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context(), ListLimit)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainList(orders))
}

// Get /admin
// Render the order table
func (api *OrderAPI) AdminPage(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context(), AdminLimit)
	if err != nil {
		api.logger.Error("admin listing failed", slog.String("error", err.Error()))
		responder.InternalError(c, "Database error")
		return
	}
	c.HTML(http.StatusOK, AdminTemplateName, gin.H{"Orders": orders})
}

// Post /admin/delete
// Delete an order and go back to the table
func (api *OrderAPI) AdminDelete(c *gin.Context) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.PostForm("id")), 10, 64)
	if err != nil {
		responder.BadRequest(c, "Invalid order id")
		return
	}
	if err := api.service.DeleteOrder(c.Request.Context(), id); err != nil && !errors.Is(err, ports.ErrNotFound) {
		api.logger.Error("admin delete failed", slog.Int64("order_id", id), slog.String("error", err.Error()))
		responder.InternalError(c, "Database error")
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}
