// Package observed decorates settlement collaborators with call metrics.
package observed

import (
	"context"
	"time"

	"github.com/holiman/uint256"

	"github.com/goodnatureofminers/saleledger/internal/sale/engine"
	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

type Ledger struct {
	ledger  engine.Ledger
	metrics CallMetrics
}

func NewLedger(ledger engine.Ledger, metrics CallMetrics) *Ledger {
	return &Ledger{
		ledger:  ledger,
		metrics: metrics,
	}
}

func (l *Ledger) Credit(ctx context.Context, to model.Account, amount *uint256.Int) (err error) {
	started := time.Now()
	defer func() {
		l.metrics.Observe("credit", err, started)
	}()
	return l.ledger.Credit(ctx, to, amount)
}

func (l *Ledger) DebitAndTransfer(ctx context.Context, from, to model.Account, amount *uint256.Int) (err error) {
	started := time.Now()
	defer func() {
		l.metrics.Observe("debit_and_transfer", err, started)
	}()
	return l.ledger.DebitAndTransfer(ctx, from, to, amount)
}

func (l *Ledger) BalanceOf(ctx context.Context, account model.Account) (balance *uint256.Int, err error) {
	started := time.Now()
	defer func() {
		l.metrics.Observe("balance_of", err, started)
	}()
	return l.ledger.BalanceOf(ctx, account)
}

func (l *Ledger) HeldBalance(ctx context.Context) (balance *uint256.Int, err error) {
	started := time.Now()
	defer func() {
		l.metrics.Observe("held_balance", err, started)
	}()
	return l.ledger.HeldBalance(ctx)
}
