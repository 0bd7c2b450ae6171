package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/goodnatureofminers/saleledger/internal/sale/escrow"
	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

// Snapshot is a consistent view of the sale.
type Snapshot struct {
	Sale             string
	State            model.State
	HasClosed        bool
	SoldOut          bool
	ActivePhase      int
	OpeningTime      time.Time
	ClosingTime      time.Time
	HeldBalance      *uint256.Int
	TotalContributed *uint256.Int
	// Pool is the supply divided pro-rata, set by successful finalization.
	Pool          *uint256.Int
	Participants  int
	Pending       int
	EscrowStatus  escrow.Status
	EscrowBalance *uint256.Int
}

// ParticipantStatus describes one participant.
type ParticipantStatus struct {
	Account      model.Account
	Invested     *uint256.Int
	Allocation   *uint256.Int
	TokenBalance *uint256.Int
	Withdrawn    bool
	Refunded     bool
}

// State returns the finalization state.
func (e *Engine) State() model.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// HasClosed reports whether the last phase ended or the pool sold out.
func (e *Engine) HasClosed(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasClosed(ctx)
}

// InvestedAmountOf is the participant's cumulative contribution over all phases.
func (e *Engine) InvestedAmountOf(participant model.Account) *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.contributions.AmountOf(participant.Normalize())
}

// Investors lists participants in first-contribution order.
func (e *Engine) Investors() []model.Account {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.contributions.Participants()
}

// AllocationOf previews the participant's pro-rata allocation. It is zero
// until the sale succeeds.
func (e *Engine) AllocationOf(participant model.Account) (*uint256.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.allocation(e.contributions.AmountOf(participant.Normalize()))
}

// EscrowBalance is the refund escrow balance not yet paid out.
func (e *Engine) EscrowBalance() *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.escrow.Balance()
}

// Snapshot collects the sale state under one lock.
func (e *Engine) Snapshot(ctx context.Context) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	held, err := e.ledger.HeldBalance(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("held balance: %w", err)
	}
	now := e.clock.Now()
	active, _ := e.schedule.Active(now)

	s := Snapshot{
		Sale:             e.sale,
		State:            e.state,
		SoldOut:          held.IsZero(),
		HasClosed:        e.schedule.HasEnded(now) || held.IsZero(),
		ActivePhase:      active.Index,
		OpeningTime:      e.schedule.OpeningTime(),
		ClosingTime:      e.schedule.ClosingTime(),
		HeldBalance:      held,
		TotalContributed: e.contributions.Total(),
		Pool:             new(uint256.Int),
		Participants:     e.contributions.Len(),
		Pending:          len(e.contributions.Pending()),
		EscrowStatus:     e.escrow.Status(),
		EscrowBalance:    e.escrow.Balance(),
	}
	if e.pool != nil {
		s.Pool = e.pool.Clone()
	}
	return s, nil
}

// Participant describes participant, including its current token balance.
func (e *Engine) Participant(ctx context.Context, participant model.Account) (ParticipantStatus, error) {
	participant, err := requireParticipant(participant)
	if err != nil {
		return ParticipantStatus{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	balance, err := e.ledger.BalanceOf(ctx, participant)
	if err != nil {
		return ParticipantStatus{}, fmt.Errorf("balance of %s: %w", participant, err)
	}
	record, ok := e.contributions.Get(participant)
	if !ok {
		record.Amount = new(uint256.Int)
	}
	allocation, err := e.allocation(record.Amount)
	if err != nil {
		return ParticipantStatus{}, err
	}
	return ParticipantStatus{
		Account:      participant,
		Invested:     record.Amount,
		Allocation:   allocation,
		TokenBalance: balance,
		Withdrawn:    record.Withdrawn,
		Refunded:     e.escrow.Claimed(participant),
	}, nil
}
