package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler answers single-order lookups with raw SQL over the
// read connection.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	o, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("order %s is %s, balance %d points\n", o.ID, o.State, o.LoyaltyBalance)
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when no order
// exists under the requested identifier.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	response, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.Payments, err = h.loadPayments(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.Reservations, err = h.loadReservations(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.LoyaltyBalance, err = h.loadLoyaltyBalance(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) loadOrder(ctx context.Context, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			reference_id,
			state,
			state_reason,
			total_amount,
			currency,
			workflow_id,
			version,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var response GetOrderQueryResponse
	var id uuid.UUID

	err := row.Scan(
		&id,
		&response.ReferenceID,
		&response.State,
		&response.StateReason,
		&response.TotalAmount,
		&response.Currency,
		&response.WorkflowID,
		&response.Version,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) loadPayments(ctx context.Context, orderID kernel.UUID) ([]PaymentResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			method,
			amount,
			currency,
			status,
			transaction_ref,
			paid_at
		FROM payments
		WHERE order_id = ?
		ORDER BY created_at
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]PaymentResponse, 0)
	for rows.Next() {
		var payment PaymentResponse
		var id uuid.UUID
		var paidAt sql.NullTime

		err = rows.Scan(
			&id,
			&payment.Method,
			&payment.Amount,
			&payment.Currency,
			&payment.Status,
			&payment.TransactionRef,
			&paidAt,
		)
		if err != nil {
			return nil, err
		}

		payment.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		if paidAt.Valid {
			settledAt := paidAt.Time.UTC()
			payment.PaidAt = &settledAt
		}

		payments = append(payments, payment)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

func (h GetOrderQueryHandler) loadReservations(ctx context.Context, orderID kernel.UUID) ([]StockReservationResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			sku,
			quantity,
			status
		FROM stock_reservations
		WHERE order_id = ?
		ORDER BY created_at
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]StockReservationResponse, 0)
	for rows.Next() {
		var reservation StockReservationResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&reservation.Sku,
			&reservation.Quantity,
			&reservation.Status,
		)
		if err != nil {
			return nil, err
		}

		reservation.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		reservations = append(reservations, reservation)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return reservations, nil
}

func (h GetOrderQueryHandler) loadLoyaltyBalance(ctx context.Context, orderID kernel.UUID) (int64, error) {
	var balance int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(points_delta), 0)
		FROM loyalty_entries
		WHERE order_id = ?
	`, orderID.Bytes()).Row().Scan(&balance)
	if err != nil {
		return 0, err
	}

	return balance, nil
}
