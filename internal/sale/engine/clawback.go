package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

// IsClawbackAllowed reports whether the issuer may still reclaim tokens from
// participants. It turns false for good once the sale succeeds.
func (e *Engine) IsClawbackAllowed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clawbackAllowed()
}

func (e *Engine) clawbackAllowed() bool {
	return e.state != model.StateSucceeded
}

// Clawback moves the participant's whole token balance to the issuer. The
// state check and the transfer share one critical section, so a clawback can
// never land after a successful finalization. The engine is installed as the
// token's clawback gate, which routes TransferToIssuer here.
func (e *Engine) Clawback(ctx context.Context, caller, participant model.Account) (amount *uint256.Int, err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveOperation(opClawback, err, started)
	}()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err = e.authorize(caller); err != nil {
		return nil, err
	}
	if !e.clawbackAllowed() {
		return nil, model.ErrClawbackRevoked
	}
	if participant, err = requireParticipant(participant); err != nil {
		return nil, err
	}
	balance, err := e.ledger.BalanceOf(ctx, participant)
	if err != nil {
		return nil, fmt.Errorf("balance of %s: %w", participant, err)
	}
	if balance.IsZero() {
		return nil, fmt.Errorf("%w: %s holds no tokens", model.ErrInvalidAmount, participant)
	}
	if err = e.ledger.DebitAndTransfer(ctx, participant, e.issuer, balance); err != nil {
		return nil, fmt.Errorf("transfer to issuer: %w", err)
	}

	e.logger.Info("tokens clawed back",
		zap.String("participant", string(participant)),
		zap.String("amount", balance.Dec()))

	ev := e.newEvent(model.EventClawback, participant)
	ev.Amount = balance.Clone()
	e.publish(ctx, ev)

	return balance, nil
}
