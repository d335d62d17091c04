// Package http exposes the order lifecycle over a REST API. Handlers bind
// requests into commands and queries, delegate to the application layer and
// map domain errors onto HTTP statuses.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"orderflow/internal/core/application/orchestration"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const defaultListPageSize = 20

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	initializeOrderHandler commands.InitializeOrderCommandHandler
	reserveStockHandler    commands.ReserveStockCommandHandler
	earnLoyaltyHandler     commands.EarnLoyaltyCommandHandler
	burnLoyaltyHandler     commands.BurnLoyaltyCommandHandler

	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler

	orchestrator *orchestration.Orchestrator
}

// NewServer creates the HTTP server with the required command and query
// handlers and the lifecycle orchestrator.
func NewServer(
	initializeOrderHandler commands.InitializeOrderCommandHandler,
	reserveStockHandler commands.ReserveStockCommandHandler,
	earnLoyaltyHandler commands.EarnLoyaltyCommandHandler,
	burnLoyaltyHandler commands.BurnLoyaltyCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	orchestrator *orchestration.Orchestrator,
) *Server {
	return &Server{
		initializeOrderHandler: initializeOrderHandler,
		reserveStockHandler:    reserveStockHandler,
		earnLoyaltyHandler:     earnLoyaltyHandler,
		burnLoyaltyHandler:     burnLoyaltyHandler,
		getOrderHandler:        getOrderHandler,
		listOrdersHandler:      listOrdersHandler,
		orchestrator:           orchestrator,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.InitializeOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/payment-success", s.PaymentSuccess)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/reset", s.ResetOrderRun)
	api.POST("/orders/:id/stock-reservations", s.ReserveStock)
	api.POST("/orders/:id/loyalty/earn", s.EarnLoyalty)
	api.POST("/orders/:id/loyalty/burn", s.BurnLoyalty)
}

// Error is the JSON body returned on failures.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the body of POST /api/v1/orders.
type NewOrderRequest struct {
	ReferenceID   string `json:"referenceId"`
	PaymentMethod string `json:"paymentMethod"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
}

// NewOrderResponse reports the order and payment created (or found, when the
// reference was already seen) for a reference.
type NewOrderResponse struct {
	OrderID       string `json:"orderId"`
	PaymentID     string `json:"paymentId"`
	PaymentStatus string `json:"paymentStatus"`
}

// PaymentSuccessRequest is the body of POST /api/v1/orders/:id/payment-success.
type PaymentSuccessRequest struct {
	PaymentID      string `json:"paymentId"`
	TransactionRef string `json:"transactionRef"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// ResetOrderRunResponse reports the run created by a reset.
type ResetOrderRunResponse struct {
	RunID string `json:"runId"`
}

// ReserveStockRequest is the body of POST /api/v1/orders/:id/stock-reservations.
type ReserveStockRequest struct {
	Sku      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// LoyaltyRequest is the body of the loyalty earn and burn endpoints.
type LoyaltyRequest struct {
	Points int64  `json:"points"`
	Reason string `json:"reason"`
}

// Order is the full JSON representation of one order.
type Order struct {
	ID             string             `json:"id"`
	ReferenceID    string             `json:"referenceId"`
	State          string             `json:"state"`
	StateReason    string             `json:"stateReason,omitempty"`
	TotalAmount    int64              `json:"totalAmount"`
	Currency       string             `json:"currency"`
	WorkflowID     string             `json:"workflowId,omitempty"`
	Version        int64              `json:"version"`
	LoyaltyBalance int64              `json:"loyaltyBalance"`
	Payments       []Payment          `json:"payments"`
	Reservations   []StockReservation `json:"stockReservations"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// Payment is the JSON representation of one payment record.
type Payment struct {
	ID             string     `json:"id"`
	Method         string     `json:"method"`
	Amount         int64      `json:"amount"`
	Currency       string     `json:"currency"`
	Status         string     `json:"status"`
	TransactionRef string     `json:"transactionRef,omitempty"`
	PaidAt         *time.Time `json:"paidAt,omitempty"`
}

// StockReservation is the JSON representation of one stock reservation.
type StockReservation struct {
	ID       string `json:"id"`
	Sku      string `json:"sku"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

// OrderSummary is the compact JSON representation used by the list endpoint.
type OrderSummary struct {
	ID          string    `json:"id"`
	ReferenceID string    `json:"referenceId"`
	State       string    `json:"state"`
	TotalAmount int64     `json:"totalAmount"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"createdAt"`
}

// InitializeOrder handles POST /api/v1/orders. Submitting the same reference
// twice returns the already created order instead of a duplicate. After the
// order is persisted its lifecycle run is started; when starting fails the
// order stays unattached and the reconciliation job picks it up.
func (s *Server) InitializeOrder(ctx echo.Context) error {
	var request NewOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewInitializeOrderCommand(
		request.ReferenceID, request.PaymentMethod, request.Amount, request.Currency)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	result, err := s.initializeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	_, _ = s.orchestrator.StartOrderProcessing(ctx.Request().Context(), result.OrderID)

	return ctx.JSON(http.StatusCreated, NewOrderResponse{
		OrderID:       result.OrderID.String(),
		PaymentID:     result.PaymentID.String(),
		PaymentStatus: result.PaymentStatus,
	})
}

// ListOrders handles GET /api/v1/orders with skip/take paging.
func (s *Server) ListOrders(ctx echo.Context) error {
	skip, err := queryParamInt(ctx, "skip", 0)
	if err != nil {
		return badRequest(ctx, "Invalid skip parameter")
	}
	take, err := queryParamInt(ctx, "take", defaultListPageSize)
	if err != nil {
		return badRequest(ctx, "Invalid take parameter")
	}

	query, err := queries.NewListOrdersQuery(skip, take)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = OrderSummary{
			ID:          o.ID.String(),
			ReferenceID: o.ReferenceID,
			State:       o.State,
			TotalAmount: o.TotalAmount,
			Currency:    o.Currency,
			CreatedAt:   o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	payments := make([]Payment, len(o.Payments))
	for i, p := range o.Payments {
		payments[i] = Payment{
			ID:             p.ID.String(),
			Method:         p.Method,
			Amount:         p.Amount,
			Currency:       p.Currency,
			Status:         p.Status,
			TransactionRef: p.TransactionRef,
			PaidAt:         p.PaidAt,
		}
	}

	reservations := make([]StockReservation, len(o.Reservations))
	for i, r := range o.Reservations {
		reservations[i] = StockReservation{
			ID:       r.ID.String(),
			Sku:      r.Sku,
			Quantity: r.Quantity,
			Status:   r.Status,
		}
	}

	return ctx.JSON(http.StatusOK, Order{
		ID:             o.ID.String(),
		ReferenceID:    o.ReferenceID,
		State:          o.State,
		StateReason:    o.StateReason,
		TotalAmount:    o.TotalAmount,
		Currency:       o.Currency,
		WorkflowID:     o.WorkflowID,
		Version:        o.Version,
		LoyaltyBalance: o.LoyaltyBalance,
		Payments:       payments,
		Reservations:   reservations,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	})
}

// PaymentSuccess handles POST /api/v1/orders/:id/payment-success. The
// settlement is delivered to the order's run as a signal; the run applies it
// asynchronously.
func (s *Server) PaymentSuccess(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var request PaymentSuccessRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	paymentID, err := kernel.UUIDFromString(request.PaymentID)
	if err != nil {
		return badRequest(ctx, "Invalid payment ID")
	}

	err = s.orchestrator.SignalPaymentSuccess(ctx.Request().Context(), orderID, paymentID, request.TransactionRef)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var request CancelOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	err = s.orchestrator.SignalCancelOrder(ctx.Request().Context(), orderID, request.Reason)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// ResetOrderRun handles POST /api/v1/orders/:id/reset. It rewinds the
// order's live run to the point where it was waiting for payment or
// cancellation, dropping signals delivered since.
func (s *Server) ResetOrderRun(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	runID, err := s.orchestrator.ResetToPendingCheckpoint(ctx.Request().Context(), orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ResetOrderRunResponse{RunID: runID})
}

// ReserveStock handles POST /api/v1/orders/:id/stock-reservations.
func (s *Server) ReserveStock(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var request ReserveStockRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReserveStockCommand(orderID, request.Sku, request.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid reservation data: "+err.Error())
	}

	if err = s.reserveStockHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// EarnLoyalty handles POST /api/v1/orders/:id/loyalty/earn.
func (s *Server) EarnLoyalty(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var request LoyaltyRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewEarnLoyaltyCommand(orderID, request.Points, request.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid loyalty data: "+err.Error())
	}

	if err = s.earnLoyaltyHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// BurnLoyalty handles POST /api/v1/orders/:id/loyalty/burn.
func (s *Server) BurnLoyalty(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var request LoyaltyRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewBurnLoyaltyCommand(orderID, request.Points, request.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid loyalty data: "+err.Error())
	}

	if err = s.burnLoyaltyHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

func queryParamInt(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps application errors onto HTTP statuses.
func errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrConcurrencyConflict),
		errors.Is(err, order.ErrStateTransitionNotAllowed):
		status = http.StatusConflict
	case errors.Is(err, order.ErrInsufficientBalance):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, ports.ErrOrchestration):
		status = http.StatusBadGateway
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
