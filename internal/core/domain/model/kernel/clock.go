package kernel

import "time"

// Clock supplies the current time to domain logic. Injecting it keeps state
// transitions deterministic and testable instead of depending on an implicit
// global "now".
//
// Example:
//
//	aggregate, err := order.NewAggregate(o, payments, loyalty, stock, kernel.SystemClock{})
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time in UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock is a Clock frozen at a single instant, for tests.
type FixedClock struct {
	Instant time.Time
}

// Now returns the frozen instant.
func (c FixedClock) Now() time.Time {
	return c.Instant
}
