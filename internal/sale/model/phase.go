package model

import (
	"time"

	"github.com/holiman/uint256"
)

// Phase is one time window of the sale. The window is half-open:
// OpeningTime <= t < ClosingTime.
type Phase struct {
	OpeningTime     time.Time
	ClosingTime     time.Time
	Rate            *uint256.Int
	MinContribution *uint256.Int
	// Deferred phases record contributions only; tokens are allocated pro-rata
	// after successful finalization.
	Deferred bool
}

// Contains reports whether t falls within the phase window.
func (p Phase) Contains(t time.Time) bool {
	return !t.Before(p.OpeningTime) && t.Before(p.ClosingTime)
}
