package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

// EventKind names a settlement event.
type EventKind string

const (
	EventTokenPurchase        EventKind = "token_purchase"
	EventDeferredContribution EventKind = "deferred_contribution"
	EventFinalized            EventKind = "finalized"
	EventTokensWithdrawn      EventKind = "tokens_withdrawn"
	EventRefundLoaded         EventKind = "refund_loaded"
	EventRefunded             EventKind = "refunded"
	EventClawback             EventKind = "clawback"
)

// Event is emitted by the engine after a state change has been committed.
// Value is the payment-side amount, Amount the asset-side amount; either may
// be nil when the event carries none.
type Event struct {
	ID          uuid.UUID
	Sale        string
	Kind        EventKind
	Participant Account
	Value       *uint256.Int
	Amount      *uint256.Int
	Outcome     Outcome
	OccurredAt  time.Time
}

// NewEvent stamps a fresh id on an event.
func NewEvent(sale string, kind EventKind, participant Account, at time.Time) Event {
	return Event{
		ID:          uuid.New(),
		Sale:        sale,
		Kind:        kind,
		Participant: participant,
		OccurredAt:  at,
	}
}
