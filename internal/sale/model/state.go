package model

import (
	"fmt"
	"strings"
)

// Outcome is the result chosen by the issuer at finalization.
type Outcome uint8

const (
	OutcomeUnknown Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// ParseOutcome accepts "success"/"failure" and the boolean spellings used by
// the contract API ("true"/"false").
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success", "true":
		return OutcomeSuccess, nil
	case "failure", "false":
		return OutcomeFailure, nil
	default:
		return OutcomeUnknown, fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
	}
}

// State is the finalization state of a sale: Active, or Finalized with an
// outcome. The zero value is Active.
type State uint8

const (
	StateActive State = iota
	StateSucceeded
	StateFailed
)

// Finalize returns the terminal state for outcome. Only an Active state can
// be finalized.
func (s State) Finalize(o Outcome) (State, error) {
	if s != StateActive {
		return s, ErrAlreadyFinalized
	}
	switch o {
	case OutcomeSuccess:
		return StateSucceeded, nil
	case OutcomeFailure:
		return StateFailed, nil
	default:
		return s, fmt.Errorf("%w: %s", ErrInvalidOutcome, o)
	}
}

// Active reports whether the sale still accepts contributions.
func (s State) Active() bool { return s == StateActive }

// Finalized reports whether an outcome has been chosen.
func (s State) Finalized() bool { return s != StateActive }

// Outcome returns the finalization outcome, OutcomeUnknown while Active.
func (s State) Outcome() Outcome {
	switch s {
	case StateSucceeded:
		return OutcomeSuccess
	case StateFailed:
		return OutcomeFailure
	default:
		return OutcomeUnknown
	}
}

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateSucceeded:
		return "finalized_success"
	case StateFailed:
		return "finalized_failure"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}
