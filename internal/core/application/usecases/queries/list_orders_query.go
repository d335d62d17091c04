package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

const maxListOrdersPageSize = 100

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
	ErrSkipIsInvalid = errors.New("skip must not be negative")
	ErrTakeIsInvalid = errors.New("take must be between 1 and 100")
)

// ListOrdersQuery retrieves a page of orders ordered by creation time.
type ListOrdersQuery struct {
	skip int
	take int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a paging query over the order collection.
// Validates that skip is not negative and take fits the page-size bounds.
func NewListOrdersQuery(skip int, take int) (ListOrdersQuery, error) {
	if skip < 0 {
		return ListOrdersQuery{}, ErrSkipIsInvalid
	}
	if take <= 0 || take > maxListOrdersPageSize {
		return ListOrdersQuery{}, ErrTakeIsInvalid
	}

	return ListOrdersQuery{
		skip:  skip,
		take:  take,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Skip returns the number of leading orders to drop.
func (q ListOrdersQuery) Skip() int {
	return q.skip
}

// Take returns the page size.
func (q ListOrdersQuery) Take() int {
	return q.take
}

// ListOrdersQueryResponse is the compact read model of one listed order.
type ListOrdersQueryResponse struct {
	ID          kernel.UUID
	ReferenceID string
	State       string
	TotalAmount int64
	Currency    string
	CreatedAt   time.Time
}
