package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
	"github.com/goodnatureofminers/saleledger/pkg/safe"
	"github.com/goodnatureofminers/saleledger/pkg/workerpool"
)

// WithdrawTokens credits participant with their share of the pool snapshot
// taken at successful finalization. Each participant withdraws once.
func (e *Engine) WithdrawTokens(ctx context.Context, participant model.Account) (amount *uint256.Int, err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveOperation(opWithdrawTokens, err, started)
	}()

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.withdraw(ctx, participant)
}

// WithdrawTokensFor is WithdrawTokens invoked by the issuer on behalf of
// participant.
func (e *Engine) WithdrawTokensFor(ctx context.Context, caller, participant model.Account) (amount *uint256.Int, err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveOperation(opWithdrawTokens, err, started)
	}()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err = e.authorize(caller); err != nil {
		return nil, err
	}
	return e.withdraw(ctx, participant)
}

// WithdrawAllFor distributes allocations to every participant that has not
// withdrawn yet using workers concurrent workers. Each withdrawal takes the
// engine lock on its own. It returns how many withdrawals it performed.
func (e *Engine) WithdrawAllFor(ctx context.Context, caller model.Account, workers int) (withdrawn int, err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveOperation(opWithdrawAll, err, started)
	}()

	e.mu.Lock()
	if err = e.authorize(caller); err != nil {
		e.mu.Unlock()
		return 0, err
	}
	if e.state != model.StateSucceeded {
		e.mu.Unlock()
		return 0, fmt.Errorf("%w: sale is %s", model.ErrNotFinalizedSuccess, e.state)
	}
	pending := e.contributions.Pending()
	e.mu.Unlock()

	if len(pending) == 0 {
		return 0, nil
	}
	if workers < 1 {
		workers = 1
	}

	var count atomic.Int64
	err = workerpool.Process(ctx, workers, pending, func(ctx context.Context, p model.Account) error {
		e.mu.Lock()
		defer e.mu.Unlock()

		_, err := e.withdraw(ctx, p)
		switch {
		case err == nil:
			count.Add(1)
			return nil
		case errors.Is(err, model.ErrAlreadyWithdrawn), errors.Is(err, model.ErrAlreadyRefunded):
			return nil
		default:
			return fmt.Errorf("withdraw for %s: %w", p, err)
		}
	}, nil)

	e.logger.Info("bulk withdrawal finished",
		zap.Int("pending", len(pending)),
		zap.Int64("withdrawn", count.Load()),
		zap.Error(err))

	return int(count.Load()), err
}

// withdraw requires e.mu.
func (e *Engine) withdraw(ctx context.Context, participant model.Account) (*uint256.Int, error) {
	participant, err := requireParticipant(participant)
	if err != nil {
		return nil, err
	}
	if e.state != model.StateSucceeded {
		return nil, fmt.Errorf("%w: sale is %s", model.ErrNotFinalizedSuccess, e.state)
	}
	record, ok := e.contributions.Get(participant)
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrNoContribution, participant)
	}
	if record.Withdrawn {
		return nil, fmt.Errorf("%w: %s", model.ErrAlreadyWithdrawn, participant)
	}
	if e.escrow.Claimed(participant) {
		return nil, fmt.Errorf("%w: %s", model.ErrAlreadyRefunded, participant)
	}
	amount, err := e.allocation(record.Amount)
	if err != nil {
		return nil, err
	}

	if err = e.contributions.MarkWithdrawn(participant); err != nil {
		return nil, err
	}
	if !amount.IsZero() {
		if err = e.ledger.Credit(ctx, participant, amount); err != nil {
			e.contributions.UnmarkWithdrawn(participant)
			return nil, fmt.Errorf("credit tokens: %w", err)
		}
	}

	e.logger.Info("tokens withdrawn",
		zap.String("participant", string(participant)),
		zap.String("contribution", record.Amount.Dec()),
		zap.String("amount", amount.Dec()))

	ev := e.newEvent(model.EventTokensWithdrawn, participant)
	ev.Value = record.Amount
	ev.Amount = amount.Clone()
	e.publish(ctx, ev)

	return amount, nil
}

// allocation is pool * contribution / total, truncated.
func (e *Engine) allocation(contribution *uint256.Int) (*uint256.Int, error) {
	if e.pool == nil || e.total == nil || e.total.IsZero() {
		return new(uint256.Int), nil
	}
	amount, err := safe.MulDiv(e.pool, contribution, e.total)
	if err != nil {
		return nil, fmt.Errorf("allocation: %w", err)
	}
	return amount, nil
}
