// Package escrow implements the issuer-funded refund pool that repays
// contributions after a failed sale.
package escrow

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
	"github.com/goodnatureofminers/saleledger/pkg/safe"
)

// Status of the escrow pool.
type Status uint8

const (
	// StatusInactive means nothing has been loaded yet.
	StatusInactive Status = iota
	// StatusFunded means a positive balance is available for claims.
	StatusFunded
	// StatusClosed means claims drained the loaded balance.
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusInactive:
		return "inactive"
	case StatusFunded:
		return "funded"
	case StatusClosed:
		return "closed"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Escrow is independent of the funds forwarded to the wallet. It is not safe
// for concurrent use; the engine serializes access.
type Escrow struct {
	status  Status
	loaded  *uint256.Int
	paid    *uint256.Int
	claimed map[model.Account]*uint256.Int
}

// New returns an inactive escrow.
func New() *Escrow {
	return &Escrow{
		loaded:  new(uint256.Int),
		paid:    new(uint256.Int),
		claimed: make(map[model.Account]*uint256.Int),
	}
}

// CheckLoad validates a deposit without applying it.
func (e *Escrow) CheckLoad(amount *uint256.Int) error {
	_, err := e.loadedAfter(amount)
	return err
}

// Load adds amount to the funded balance.
func (e *Escrow) Load(amount *uint256.Int) error {
	loaded, err := e.loadedAfter(amount)
	if err != nil {
		return err
	}
	e.loaded = loaded
	e.refreshStatus()
	return nil
}

func (e *Escrow) loadedAfter(amount *uint256.Int) (*uint256.Int, error) {
	if amount == nil || amount.IsZero() {
		return nil, fmt.Errorf("%w: refund deposit must be positive", model.ErrInvalidAmount)
	}
	loaded, err := safe.Add(e.loaded, amount)
	if err != nil {
		return nil, fmt.Errorf("refund escrow: %w", err)
	}
	return loaded, nil
}

// CheckClaim validates a claim of amount by participant without applying it.
func (e *Escrow) CheckClaim(participant model.Account, amount *uint256.Int) error {
	if _, ok := e.claimed[participant]; ok {
		return model.ErrAlreadyRefunded
	}
	if amount == nil || amount.IsZero() {
		return fmt.Errorf("%w: refund must be positive", model.ErrInvalidAmount)
	}
	if amount.Gt(e.Balance()) {
		return fmt.Errorf("%w: claim %s exceeds balance %s", model.ErrInsufficientEscrow, amount.Dec(), e.Balance().Dec())
	}
	return nil
}

// Claim records a refund of amount to participant and reduces the balance.
func (e *Escrow) Claim(participant model.Account, amount *uint256.Int) error {
	if err := e.CheckClaim(participant, amount); err != nil {
		return err
	}
	paid, err := safe.Add(e.paid, amount)
	if err != nil {
		return fmt.Errorf("refund escrow: %w", err)
	}
	e.paid = paid
	e.claimed[participant] = amount.Clone()
	e.refreshStatus()
	return nil
}

// Unclaim reverts a Claim whose payout failed.
func (e *Escrow) Unclaim(participant model.Account) {
	amount, ok := e.claimed[participant]
	if !ok {
		return
	}
	delete(e.claimed, participant)
	e.paid.Sub(e.paid, amount)
	e.refreshStatus()
}

// Claimed reports whether participant has already been refunded.
func (e *Escrow) Claimed(participant model.Account) bool {
	_, ok := e.claimed[participant]
	return ok
}

// Balance is the loaded amount not yet paid out.
func (e *Escrow) Balance() *uint256.Int {
	return new(uint256.Int).Sub(e.loaded, e.paid)
}

// Loaded is the total ever deposited.
func (e *Escrow) Loaded() *uint256.Int {
	return e.loaded.Clone()
}

// Status returns the current pool status.
func (e *Escrow) Status() Status {
	return e.status
}

func (e *Escrow) refreshStatus() {
	switch {
	case e.loaded.IsZero():
		e.status = StatusInactive
	case e.Balance().IsZero():
		e.status = StatusClosed
	default:
		e.status = StatusFunded
	}
}
