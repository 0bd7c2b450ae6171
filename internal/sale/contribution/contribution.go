// Package contribution tracks cumulative per-participant contributions.
//
// Records live in a slice in first-contribution order and are found through a
// map index, so finalization never iterates participants and withdrawals
// touch a single record.
package contribution

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
	"github.com/goodnatureofminers/saleledger/pkg/safe"
)

// Record is a participant's cumulative contribution.
type Record struct {
	Participant model.Account
	Amount      *uint256.Int
	Withdrawn   bool
	// Refunded records are kept so the participant stays known, with a zero
	// amount that no longer counts toward the total.
	Refunded bool
}

// Ledger is not safe for concurrent use; the engine serializes access.
type Ledger struct {
	records []Record
	index    map[model.Account]int
	total    *uint256.Int
	refunded int
}

// New returns an empty Ledger.
func New() *Ledger {
	return &Ledger{
		index: make(map[model.Account]int),
		total: new(uint256.Int),
	}
}

// CheckAdd reports whether Add(participant, value) would succeed without
// changing anything.
func (l *Ledger) CheckAdd(participant model.Account, value *uint256.Int) error {
	_, _, err := l.sums(participant, value)
	return err
}

// Add increments the participant's cumulative amount, creating the record on
// first contact, and returns the new cumulative amount.
func (l *Ledger) Add(participant model.Account, value *uint256.Int) (*uint256.Int, error) {
	cumulative, total, err := l.sums(participant, value)
	if err != nil {
		return nil, err
	}

	if i, ok := l.index[participant]; ok {
		l.records[i].Amount = cumulative
	} else {
		l.index[participant] = len(l.records)
		l.records = append(l.records, Record{Participant: participant, Amount: cumulative})
	}
	l.total = total
	return cumulative.Clone(), nil
}

func (l *Ledger) sums(participant model.Account, value *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	if value == nil || value.IsZero() {
		return nil, nil, fmt.Errorf("%w: contribution must be positive", model.ErrInvalidAmount)
	}
	current := new(uint256.Int)
	if i, ok := l.index[participant]; ok {
		if l.records[i].Refunded {
			return nil, nil, fmt.Errorf("%w: %s", model.ErrAlreadyRefunded, participant)
		}
		current = l.records[i].Amount
	}
	cumulative, err := safe.Add(current, value)
	if err != nil {
		return nil, nil, fmt.Errorf("contribution of %s: %w", participant, err)
	}
	total, err := safe.Add(l.total, value)
	if err != nil {
		return nil, nil, fmt.Errorf("total contributions: %w", err)
	}
	return cumulative, total, nil
}

// Get returns a copy of the participant's record.
func (l *Ledger) Get(participant model.Account) (Record, bool) {
	i, ok := l.index[participant]
	if !ok {
		return Record{}, false
	}
	r := l.records[i]
	r.Amount = r.Amount.Clone()
	return r, true
}

// AmountOf returns the cumulative contribution, zero for unknown participants.
func (l *Ledger) AmountOf(participant model.Account) *uint256.Int {
	if i, ok := l.index[participant]; ok {
		return l.records[i].Amount.Clone()
	}
	return new(uint256.Int)
}

// MarkWithdrawn flags the participant's record as withdrawn.
func (l *Ledger) MarkWithdrawn(participant model.Account) error {
	i, ok := l.index[participant]
	if !ok {
		return model.ErrNoContribution
	}
	if l.records[i].Withdrawn {
		return model.ErrAlreadyWithdrawn
	}
	l.records[i].Withdrawn = true
	return nil
}

// UnmarkWithdrawn clears the withdrawn flag after the credit that followed
// MarkWithdrawn failed.
func (l *Ledger) UnmarkWithdrawn(participant model.Account) {
	if i, ok := l.index[participant]; ok {
		l.records[i].Withdrawn = false
	}
}

// Refund takes the participant's amount out of the total and flags the
// record refunded. It returns the amount removed.
func (l *Ledger) Refund(participant model.Account) (*uint256.Int, error) {
	i, ok := l.index[participant]
	if !ok {
		return nil, model.ErrNoContribution
	}
	r := &l.records[i]
	if r.Refunded {
		return nil, model.ErrAlreadyRefunded
	}
	total, err := safe.Sub(l.total, r.Amount)
	if err != nil {
		return nil, fmt.Errorf("total contributions: %w", err)
	}
	amount := r.Amount
	r.Amount = new(uint256.Int)
	r.Refunded = true
	l.total = total
	l.refunded++
	return amount, nil
}

// Total is the sum of all contributions.
func (l *Ledger) Total() *uint256.Int {
	return l.total.Clone()
}

// Len is the number of distinct participants not refunded.
func (l *Ledger) Len() int {
	return len(l.records) - l.refunded
}

// Participants lists participants not refunded in first-contribution order.
func (l *Ledger) Participants() []model.Account {
	out := make([]model.Account, 0, l.Len())
	for _, r := range l.records {
		if !r.Refunded {
			out = append(out, r.Participant)
		}
	}
	return out
}

// Pending lists participants that have neither withdrawn nor been refunded.
func (l *Ledger) Pending() []model.Account {
	out := make([]model.Account, 0, len(l.records))
	for _, r := range l.records {
		if !r.Withdrawn && !r.Refunded {
			out = append(out, r.Participant)
		}
	}
	return out
}
