package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/choufli-storefront/internal/domains/orders/application"
	ordertypes "github.com/Apurer/choufli-storefront/internal/domains/orders/application/types"
	"github.com/Apurer/choufli-storefront/internal/domains/orders/domain"
	"github.com/Apurer/choufli-storefront/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/choufli-storefront/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/Apurer/choufli-storefront/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order intake workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.IntakeTaskQueue}
}

// PlaceOrder runs the intake workflow and waits for its result. A second
// request with the same idempotency key joins the workflow already running
// and must carry the same order, otherwise it is a conflict.
func (o *TemporalOrderWorkflows) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*ordertypes.PlacedOrder, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildIntakeWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:                                       workflowID,
		TaskQueue:                                o.taskQueue,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.IntakeWorkflowName,
		orderworkflows.IntakeWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var placed ordertypes.PlacedOrder
			if err := existingRun.Get(ctx, &placed); err != nil {
				return nil, mapWorkflowError(err)
			}
			return joinedResult(&placed, input)
		}
		return nil, err
	}
	var placed ordertypes.PlacedOrder
	if err := run.Get(ctx, &placed); err != nil {
		return nil, mapWorkflowError(err)
	}
	return &placed, nil
}

// joinedResult checks a joined run stored the order this request carries.
func joinedResult(placed *ordertypes.PlacedOrder, input ordertypes.PlaceOrderInput) (*ordertypes.PlacedOrder, error) {
	candidate, err := domain.NewOrder(input.Customer, input.Items, input.Total, input.IdempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", application.ErrInvalidInput, err)
	}
	if !placed.Order.SameContent(candidate) {
		return nil, application.ErrIdempotencyConflict
	}
	placed.Replayed = true
	return placed, nil
}

// mapWorkflowError restores the application sentinels carried as activity
// error types so transports can map them to status codes.
func mapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.ErrTypeInvalidOrder:
		return fmt.Errorf("%w: %s", application.ErrInvalidInput, appErr.Message())
	case orderactivities.ErrTypeIdempotencyConflict:
		return fmt.Errorf("%w: %s", application.ErrIdempotencyConflict, appErr.Message())
	}
	return err
}

// InlineOrderWorkflows calls the service directly, for tests or when Temporal is unavailable.
type InlineOrderWorkflows struct {
	service ports.Service
}

func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

func (o *InlineOrderWorkflows) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*ordertypes.PlacedOrder, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.PlaceOrder(ctx, input)
}

func buildIntakeWorkflowID(input ordertypes.PlaceOrderInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("order-intake-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("order-intake-%d-%s", time.Now().UnixNano(), traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// first 16 hex chars keep the id readable and deterministic
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
