package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
	"github.com/goodnatureofminers/saleledger/internal/sale/schedule"
	"github.com/goodnatureofminers/saleledger/pkg/safe"
)

// Contribute accepts value from participant in the phase open now. In an
// immediate phase tokens are credited right away at the phase rate; in the
// deferred phase the contribution is only recorded. It returns the number of
// tokens credited, zero for deferred contributions.
func (e *Engine) Contribute(ctx context.Context, participant model.Account, value *uint256.Int) (tokens *uint256.Int, err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveOperation(opContribute, err, started)
	}()

	e.mu.Lock()
	defer e.mu.Unlock()

	a, err := e.admit(ctx, participant, value)
	if err != nil {
		return nil, err
	}
	if a.Phase.Deferred {
		if err = e.contributeDeferred(ctx, a.participant, value); err != nil {
			return nil, err
		}
		return new(uint256.Int), nil
	}
	return e.contributeImmediate(ctx, a, value)
}

// ContributeDeferred records a contribution for the deferred phase. It is
// rejected whenever the phase open now is not the deferred one.
func (e *Engine) ContributeDeferred(ctx context.Context, participant model.Account, value *uint256.Int) (err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveOperation(opContributeDeferred, err, started)
	}()

	e.mu.Lock()
	defer e.mu.Unlock()

	a, err := e.admit(ctx, participant, value)
	if err != nil {
		return err
	}
	if !a.Phase.Deferred {
		return fmt.Errorf("%w: phase %d is not deferred", model.ErrAdmissionRejected, a.Index)
	}
	return e.contributeDeferred(ctx, a.participant, value)
}

// admission is an accepted contribution request.
type admission struct {
	schedule.Decision
	participant model.Account
	held        *uint256.Int
}

func (e *Engine) admit(ctx context.Context, participant model.Account, value *uint256.Int) (admission, error) {
	participant, err := requireParticipant(participant)
	if err != nil {
		return admission{}, err
	}
	if !e.state.Active() {
		return admission{}, fmt.Errorf("%w: sale is %s", model.ErrAdmissionRejected, e.state)
	}
	if e.escrow.Claimed(participant) {
		return admission{}, fmt.Errorf("%w: %s was refunded", model.ErrAdmissionRejected, participant)
	}
	if value == nil || value.IsZero() {
		return admission{}, fmt.Errorf("%w: contribution must be positive", model.ErrAdmissionRejected)
	}

	held, err := e.ledger.HeldBalance(ctx)
	if err != nil {
		return admission{}, fmt.Errorf("held balance: %w", err)
	}
	if held.IsZero() {
		return admission{}, fmt.Errorf("%w: sold out", model.ErrAdmissionRejected)
	}

	decision, err := e.schedule.Admit(e.clock.Now(), value)
	if err != nil {
		e.logger.Debug("contribution rejected",
			zap.String("participant", string(participant)),
			zap.String("value", value.Dec()),
			zap.Error(err))
		return admission{}, err
	}
	if err = e.contributions.CheckAdd(participant, value); err != nil {
		return admission{}, err
	}
	return admission{Decision: decision, participant: participant, held: held}, nil
}

func (e *Engine) contributeImmediate(ctx context.Context, a admission, value *uint256.Int) (*uint256.Int, error) {
	participant := a.participant
	tokens, err := safe.Mul(a.Phase.Rate, value)
	if err != nil {
		return nil, fmt.Errorf("token amount: %w", err)
	}
	if tokens.Gt(a.held) {
		return nil, fmt.Errorf("%w: %s tokens requested, %s remaining", model.ErrAdmissionRejected, tokens.Dec(), a.held.Dec())
	}

	if err = e.payments.Forward(ctx, participant, e.wallet, value); err != nil {
		return nil, fmt.Errorf("forward funds: %w", err)
	}
	if err = e.ledger.Credit(ctx, participant, tokens); err != nil {
		if refundErr := e.payments.Forward(ctx, e.wallet, participant, value); refundErr != nil {
			e.logger.Error("forwarded funds not returned after failed credit",
				zap.String("participant", string(participant)),
				zap.String("value", value.Dec()),
				zap.Error(refundErr))
			err = errors.Join(err, refundErr)
		}
		return nil, fmt.Errorf("credit tokens: %w", err)
	}
	if _, err = e.contributions.Add(participant, value); err != nil {
		// CheckAdd ran under the same lock, so this cannot happen.
		e.logger.Error("contribution not recorded after credit", zap.String("participant", string(participant)), zap.Error(err))
		return nil, err
	}

	e.logger.Info("tokens purchased",
		zap.String("participant", string(participant)),
		zap.Int("phase", a.Index),
		zap.String("value", value.Dec()),
		zap.String("tokens", tokens.Dec()))

	ev := e.newEvent(model.EventTokenPurchase, participant)
	ev.Value = value.Clone()
	ev.Amount = tokens.Clone()
	e.publish(ctx, ev)

	return tokens, nil
}

func (e *Engine) contributeDeferred(ctx context.Context, participant model.Account, value *uint256.Int) error {
	if err := e.payments.Forward(ctx, participant, e.wallet, value); err != nil {
		return fmt.Errorf("forward funds: %w", err)
	}
	cumulative, err := e.contributions.Add(participant, value)
	if err != nil {
		e.logger.Error("contribution not recorded after forward", zap.String("participant", string(participant)), zap.Error(err))
		return err
	}

	e.logger.Info("deferred contribution recorded",
		zap.String("participant", string(participant)),
		zap.String("value", value.Dec()),
		zap.String("cumulative", cumulative.Dec()))

	ev := e.newEvent(model.EventDeferredContribution, participant)
	ev.Value = value.Clone()
	e.publish(ctx, ev)

	return nil
}
