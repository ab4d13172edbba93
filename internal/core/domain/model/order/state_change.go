package order

import (
	"time"

	"orders/internal/core/domain/model/kernel"
)

// StateChange records a transition of one of the order's inferred state
// labels. A record is only appended when the new value differs from the
// previous one, so repeated recomputation passes do not flood the log.
type StateChange struct {
	id        kernel.UUID
	name      string
	previous  string
	next      string
	changedAt time.Time
}

// NewStateChange creates a state change record.
func NewStateChange(id kernel.UUID, name, previous, next string, changedAt time.Time) StateChange {
	return StateChange{
		id:        id,
		name:      name,
		previous:  previous,
		next:      next,
		changedAt: changedAt,
	}
}

// ID returns the record identifier.
func (c StateChange) ID() kernel.UUID {
	return c.id
}

// Name returns which label changed ("payment" or "shipment").
func (c StateChange) Name() string {
	return c.name
}

// Previous returns the label value before the change.
func (c StateChange) Previous() string {
	return c.previous
}

// Next returns the label value after the change.
func (c StateChange) Next() string {
	return c.next
}

// ChangedAt returns when the change was recorded.
func (c StateChange) ChangedAt() time.Time {
	return c.changedAt
}
