// Package ledger is an in-memory token ledger. The sale pool is held by a
// dedicated holder account; Credit pays out of it.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
	"github.com/goodnatureofminers/saleledger/pkg/safe"
)

// ErrInsufficientBalance is returned when a debit exceeds the account balance.
var ErrInsufficientBalance = errors.New("insufficient token balance")

// ClawbackGate owns the clawback decision. Clawback checks whether reclaiming
// is still allowed and moves the balance in the same critical section.
type ClawbackGate interface {
	Clawback(ctx context.Context, caller, participant model.Account) (*uint256.Int, error)
}

// Token keeps balances per account.
type Token struct {
	mu       sync.RWMutex
	issuer   model.Account
	holder   model.Account
	supply   *uint256.Int
	balances map[model.Account]*uint256.Int
	gate     ClawbackGate
	logger   *zap.Logger
}

// NewToken mints supply to holder.
func NewToken(issuer, holder model.Account, supply *uint256.Int, logger *zap.Logger) (*Token, error) {
	issuer, holder = issuer.Normalize(), holder.Normalize()
	if issuer.IsZero() || holder.IsZero() {
		return nil, fmt.Errorf("%w: issuer and holder are required", model.ErrInvalidAccount)
	}
	if issuer == holder {
		return nil, fmt.Errorf("%w: holder must differ from issuer", model.ErrInvalidAccount)
	}
	if supply == nil {
		supply = new(uint256.Int)
	}
	t := &Token{
		issuer:   issuer,
		holder:   holder,
		supply:   supply.Clone(),
		balances: make(map[model.Account]*uint256.Int),
		logger:   logger.With(zap.String("holder", string(holder))),
	}
	if !supply.IsZero() {
		t.balances[holder] = supply.Clone()
	}
	return t, nil
}

// SetClawbackGate installs the gate consulted by TransferToIssuer.
func (t *Token) SetClawbackGate(gate ClawbackGate) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gate = gate
}

// Credit moves amount from the holder to account.
func (t *Token) Credit(_ context.Context, to model.Account, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.move(t.holder, to.Normalize(), amount)
}

// DebitAndTransfer moves amount between two accounts. It does not consult the
// clawback gate; the caller owns that decision.
func (t *Token) DebitAndTransfer(_ context.Context, from, to model.Account, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.move(from.Normalize(), to.Normalize(), amount)
}

// TransferToIssuer moves participant's whole balance to the issuer. Only the
// issuer may call it. With a gate installed the gate performs the transfer.
func (t *Token) TransferToIssuer(ctx context.Context, caller, participant model.Account) (*uint256.Int, error) {
	if caller.Normalize() != t.issuer {
		return nil, fmt.Errorf("%w: %s", model.ErrUnauthorized, caller)
	}

	// The gate holds its own lock while calling back into DebitAndTransfer,
	// so t.mu must not be held here.
	t.mu.RLock()
	gate := t.gate
	t.mu.RUnlock()
	if gate != nil {
		return gate.Clawback(ctx, caller, participant)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	participant = participant.Normalize()
	balance := t.balanceOf(participant)
	if balance.IsZero() {
		return nil, fmt.Errorf("%w: %s holds no tokens", model.ErrInvalidAmount, participant)
	}
	if err := t.move(participant, t.issuer, balance); err != nil {
		return nil, err
	}
	t.logger.Info("balance transferred to issuer",
		zap.String("participant", string(participant)),
		zap.String("amount", balance.Dec()))
	return balance, nil
}

// BalanceOf returns the balance of account.
func (t *Token) BalanceOf(_ context.Context, account model.Account) (*uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.balanceOf(account.Normalize()), nil
}

// HeldBalance returns the holder's balance, the unsold pool.
func (t *Token) HeldBalance(_ context.Context) (*uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.balanceOf(t.holder), nil
}

// TotalSupply is the amount minted at construction.
func (t *Token) TotalSupply() *uint256.Int {
	return t.supply.Clone()
}

// Holder is the account owning the unsold pool.
func (t *Token) Holder() model.Account {
	return t.holder
}

func (t *Token) balanceOf(account model.Account) *uint256.Int {
	if b, ok := t.balances[account]; ok {
		return b.Clone()
	}
	return new(uint256.Int)
}

// move requires t.mu.
func (t *Token) move(from, to model.Account, amount *uint256.Int) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: empty account", model.ErrInvalidAccount)
	}
	if amount == nil || amount.IsZero() {
		return fmt.Errorf("%w: transfer must be positive", model.ErrInvalidAmount)
	}
	debited, err := safe.Sub(t.balanceOf(from), amount)
	if err != nil {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientBalance, from, t.balanceOf(from).Dec(), amount.Dec())
	}
	if from == to {
		return nil
	}
	credited, err := safe.Add(t.balanceOf(to), amount)
	if err != nil {
		return fmt.Errorf("credit %s: %w", to, err)
	}
	t.set(from, debited)
	t.set(to, credited)
	return nil
}

func (t *Token) set(account model.Account, balance *uint256.Int) {
	if balance.IsZero() {
		delete(t.balances, account)
		return
	}
	t.balances[account] = balance
}
