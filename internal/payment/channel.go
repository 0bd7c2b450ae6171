// Package payment is an in-memory payment rail: participant accounts, the
// sale wallet and the refund escrow pool.
package payment

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

// ErrInsufficientFunds is returned when a debit exceeds the available value.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Option configures a Channel.
type Option func(*Channel)

// WithOpenAccounts treats accounts as externally funded: debits beyond the
// known balance are accepted and the balance floors at zero. Used by the
// daemon, where contributions arrive from outside the process.
func WithOpenAccounts() Option {
	return func(c *Channel) {
		c.open = true
	}
}

// Channel keeps value balances per account plus the escrow pool.
type Channel struct {
	mu       sync.Mutex
	open     bool
	balances map[model.Account]*uint256.Int
	escrow   *uint256.Int
	logger   *zap.Logger
}

// NewChannel builds an empty channel.
func NewChannel(logger *zap.Logger, opts ...Option) *Channel {
	c := &Channel{
		balances: make(map[model.Account]*uint256.Int),
		escrow:   new(uint256.Int),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fund credits account with amount from outside the channel.
func (c *Channel) Fund(account model.Account, amount *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := validate(amount); err != nil {
		return err
	}
	return c.credit(account.Normalize(), amount)
}

// Forward moves amount from one account to another.
func (c *Channel) Forward(_ context.Context, from, to model.Account, amount *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := validate(amount); err != nil {
		return err
	}
	from, to = from.Normalize(), to.Normalize()
	if err := c.checkDebit(from, amount); err != nil {
		return err
	}
	if err := c.checkCredit(to, amount); err != nil {
		return err
	}
	c.debit(from, amount)
	return c.credit(to, amount)
}

// Deposit moves amount from an account into the escrow pool.
func (c *Channel) Deposit(_ context.Context, from model.Account, amount *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := validate(amount); err != nil {
		return err
	}
	from = from.Normalize()
	if err := c.checkDebit(from, amount); err != nil {
		return err
	}
	escrow, err := safe.Add(c.escrow, amount)
	if err != nil {
		return fmt.Errorf("escrow: %w", err)
	}
	c.debit(from, amount)
	c.escrow = escrow
	c.logger.Debug("escrow deposit", zap.String("from", string(from)), zap.String("amount", amount.Dec()))
	return nil
}

// Release pays amount out of the escrow pool to account.
func (c *Channel) Release(_ context.Context, to model.Account, amount *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := validate(amount); err != nil {
		return err
	}
	to = to.Normalize()
	escrow, err := safe.Sub(c.escrow, amount)
	if err != nil {
		return fmt.Errorf("%w: escrow holds %s, needs %s", ErrInsufficientFunds, c.escrow.Dec(), amount.Dec())
	}
	if err = c.checkCredit(to, amount); err != nil {
		return err
	}
	c.escrow = escrow
	c.logger.Debug("escrow release", zap.String("to", string(to)), zap.String("amount", amount.Dec()))
	return c.credit(to, amount)
}

// BalanceOf returns the value held by account.
func (c *Channel) BalanceOf(_ context.Context, account model.Account) (*uint256.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balanceOf(account.Normalize()), nil
}

// EscrowBalance returns the value held in the escrow pool.
func (c *Channel) EscrowBalance() *uint256.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.escrow.Clone()
}

func validate(amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return fmt.Errorf("%w: payment must be positive", model.ErrInvalidAmount)
	}
	return nil
}

func (c *Channel) balanceOf(account model.Account) *uint256.Int {
	if b, ok := c.balances[account]; ok {
		return b.Clone()
	}
	return new(uint256.Int)
}

func (c *Channel) checkDebit(from model.Account, amount *uint256.Int) error {
	if from.IsZero() {
		return fmt.Errorf("%w: empty account", model.ErrInvalidAccount)
	}
	if c.open {
		return nil
	}
	if c.balanceOf(from).Lt(amount) {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientFunds, from, c.balanceOf(from).Dec(), amount.Dec())
	}
	return nil
}

func (c *Channel) checkCredit(to model.Account, amount *uint256.Int) error {
	if to.IsZero() {
		return fmt.Errorf("%w: empty account", model.ErrInvalidAccount)
	}
	if _, err := safe.Add(c.balanceOf(to), amount); err != nil {
		return fmt.Errorf("credit %s: %w", to, err)
	}
	return nil
}

// debit floors at zero; checkDebit has already run.
func (c *Channel) debit(from model.Account, amount *uint256.Int) {
	b := c.balanceOf(from)
	if b.Lt(amount) {
		delete(c.balances, from)
		return
	}
	b.Sub(b, amount)
	if b.IsZero() {
		delete(c.balances, from)
		return
	}
	c.balances[from] = b
}

func (c *Channel) credit(to model.Account, amount *uint256.Int) error {
	if to.IsZero() {
		return fmt.Errorf("%w: empty account", model.ErrInvalidAccount)
	}
	b, err := safe.Add(c.balanceOf(to), amount)
	if err != nil {
		return fmt.Errorf("credit %s: %w", to, err)
	}
	c.balances[to] = b
	return nil
}
