// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"orderflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler declares the narrowest unit of work it needs, so tests mock
// only the repositories the operation actually touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PaymentRepoFactory provides access to the payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// LoyaltyRepoFactory provides access to the loyalty ledger within a transaction.
	LoyaltyRepoFactory interface {
		LoyaltyRepository() ports.LoyaltyRepository
	}

	// StockRepoFactory provides access to the stock reservations within a transaction.
	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderPaymentUoW manages transactions spanning the order and its payments.
	// Used by initialization, which creates both atomically.
	OrderPaymentUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
	}

	// OrderPaymentUoWFactory creates new order+payment unit of work instances.
	OrderPaymentUoWFactory interface {
		Create() OrderPaymentUoW
	}

	// OrderLoyaltyUoW manages transactions spanning the order and its loyalty ledger.
	OrderLoyaltyUoW interface {
		TxManager
		OrderRepoFactory
		LoyaltyRepoFactory
	}

	// OrderLoyaltyUoWFactory creates new order+loyalty unit of work instances.
	OrderLoyaltyUoWFactory interface {
		Create() OrderLoyaltyUoW
	}

	// OrderStockUoW manages transactions spanning the order and its reservations.
	OrderStockUoW interface {
		TxManager
		OrderRepoFactory
		StockRepoFactory
	}

	// OrderStockUoWFactory creates new order+stock unit of work instances.
	OrderStockUoWFactory interface {
		Create() OrderStockUoW
	}

	// SettlementUoW manages transactions for payment settlement, which touches
	// the order, the settled payment and the committed reservations at once.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
		StockRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}
)
