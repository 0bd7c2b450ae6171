package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

// LoadRefund moves amount from the issuer into the refund escrow. The issuer
// may deposit in any state; refunds are only paid against a failed sale.
func (e *Engine) LoadRefund(ctx context.Context, caller model.Account, amount *uint256.Int) (err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveOperation(opLoadRefund, err, started)
	}()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err = e.authorize(caller); err != nil {
		return err
	}
	if err = e.escrow.CheckLoad(amount); err != nil {
		return err
	}
	if err = e.payments.Deposit(ctx, e.issuer, amount); err != nil {
		return fmt.Errorf("deposit refund: %w", err)
	}
	if err = e.escrow.Load(amount); err != nil {
		e.logger.Error("escrow not loaded after deposit", zap.String("amount", amount.Dec()), zap.Error(err))
		return err
	}

	e.logger.Info("refund escrow loaded",
		zap.String("amount", amount.Dec()),
		zap.String("balance", e.escrow.Balance().Dec()),
		zap.Stringer("state", e.state))

	ev := e.newEvent(model.EventRefundLoaded, e.issuer)
	ev.Value = amount.Clone()
	e.publish(ctx, ev)

	return nil
}

// ClaimRefund pays participant back their total contribution from the escrow
// after the sale was finalized as failed.
func (e *Engine) ClaimRefund(ctx context.Context, participant model.Account) (value *uint256.Int, err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveOperation(opClaimRefund, err, started)
	}()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != model.StateFailed {
		return nil, fmt.Errorf("%w: sale is %s", model.ErrNotFinalizedFailure, e.state)
	}
	return e.refund(ctx, participant)
}

// ClaimRefundFor is ClaimRefund invoked by the issuer. With
// IssuerRefundAnyTime set it also works while the sale is active; such a
// refund removes the participant from the sale, and further contributions
// from them are rejected.
func (e *Engine) ClaimRefundFor(ctx context.Context, caller, participant model.Account) (value *uint256.Int, err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveOperation(opClaimRefund, err, started)
	}()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err = e.authorize(caller); err != nil {
		return nil, err
	}
	allowed := e.state == model.StateFailed || (e.issuerRefundAnyTime && e.state == model.StateActive)
	if !allowed {
		return nil, fmt.Errorf("%w: sale is %s", model.ErrNotFinalizedFailure, e.state)
	}
	return e.refund(ctx, participant)
}

// refund requires e.mu.
func (e *Engine) refund(ctx context.Context, participant model.Account) (*uint256.Int, error) {
	participant, err := requireParticipant(participant)
	if err != nil {
		return nil, err
	}
	record, ok := e.contributions.Get(participant)
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrNoContribution, participant)
	}
	if err = e.escrow.Claim(participant, record.Amount); err != nil {
		return nil, err
	}
	if err = e.payments.Release(ctx, participant, record.Amount); err != nil {
		e.escrow.Unclaim(participant)
		return nil, fmt.Errorf("release refund: %w", err)
	}
	// A refund while active withdraws the participant from the sale, so the
	// amount must not count toward a later pro-rata split.
	if e.state == model.StateActive {
		if _, err = e.contributions.Refund(participant); err != nil {
			e.logger.Error("contribution not cleared after refund", zap.String("participant", string(participant)), zap.Error(err))
		}
	}

	e.logger.Info("contribution refunded",
		zap.String("participant", string(participant)),
		zap.String("value", record.Amount.Dec()),
		zap.String("escrow_balance", e.escrow.Balance().Dec()))

	ev := e.newEvent(model.EventRefunded, participant)
	ev.Value = record.Amount.Clone()
	e.publish(ctx, ev)

	return record.Amount, nil
}
