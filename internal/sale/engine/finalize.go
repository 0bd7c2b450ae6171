package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

// Finalize closes the sale with outcome. Only the issuer may call it, only
// once, and only after the last phase closed or the pool sold out. Success
// snapshots the remaining pool and the contribution total; allocations are
// derived from that snapshot on withdrawal.
func (e *Engine) Finalize(ctx context.Context, caller model.Account, outcome model.Outcome) (err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveOperation(opFinalize, err, started)
	}()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err = e.authorize(caller); err != nil {
		return err
	}
	closed, err := e.hasClosed(ctx)
	if err != nil {
		return err
	}
	if !closed {
		return fmt.Errorf("%w: closes at %s", model.ErrTooEarly, e.schedule.ClosingTime().Format(time.RFC3339))
	}
	next, err := e.state.Finalize(outcome)
	if err != nil {
		return err
	}

	if next == model.StateSucceeded {
		var pool *uint256.Int
		if pool, err = e.ledger.HeldBalance(ctx); err != nil {
			return fmt.Errorf("held balance: %w", err)
		}
		e.pool = pool
		e.total = e.contributions.Total()
	}
	e.state = next

	e.logger.Info("sale finalized",
		zap.String("outcome", outcome.String()),
		zap.Int("participants", e.contributions.Len()),
		zap.String("total_contributed", e.contributions.Total().Dec()))

	ev := e.newEvent(model.EventFinalized, "")
	ev.Outcome = outcome
	if e.pool != nil {
		ev.Amount = e.pool.Clone()
	}
	ev.Value = e.contributions.Total()
	e.publish(ctx, ev)

	return nil
}

func (e *Engine) hasClosed(ctx context.Context) (bool, error) {
	if e.schedule.HasEnded(e.clock.Now()) {
		return true, nil
	}
	held, err := e.ledger.HeldBalance(ctx)
	if err != nil {
		return false, fmt.Errorf("held balance: %w", err)
	}
	return held.IsZero(), nil
}
