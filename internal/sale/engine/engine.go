// Package engine implements the settlement state machine of a staged token
// sale: admission, contribution bookkeeping, finalization, pro-rata
// withdrawal, the refund escrow and the issuer clawback gate.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/saleledger/internal/sale/contribution"
	"github.com/goodnatureofminers/saleledger/internal/sale/escrow"
	"github.com/goodnatureofminers/saleledger/internal/sale/model"
	"github.com/goodnatureofminers/saleledger/internal/sale/schedule"
)

const (
	opContribute         = "contribute"
	opContributeDeferred = "contribute_deferred"
	opFinalize           = "finalize"
	opWithdrawTokens     = "withdraw_tokens"
	opWithdrawAll        = "withdraw_all"
	opLoadRefund         = "load_refund"
	opClaimRefund        = "claim_refund"
	opClawback           = "clawback"
)

// Config describes one sale.
type Config struct {
	Sale   string
	Issuer model.Account
	Wallet model.Account
	Phases []model.Phase
	// IssuerRefundAnyTime lets the issuer refund a participant while the sale
	// is still active. Participants themselves can only claim after Failure.
	IssuerRefundAnyTime bool
}

// Engine serializes every operation behind one mutex. Collaborator calls are
// made while the lock is held.
type Engine struct {
	mu sync.Mutex

	sale                string
	issuer              model.Account
	wallet              model.Account
	issuerRefundAnyTime bool

	schedule      *schedule.Schedule
	contributions *contribution.Ledger
	escrow        *escrow.Escrow
	state         model.State

	// set once by Finalize(Success)
	pool  *uint256.Int
	total *uint256.Int

	ledger   Ledger
	payments PaymentChannel
	clock    Clock
	events   EventSink
	metrics  Metrics
	logger   *zap.Logger
}

// New validates cfg and builds an Active engine. events may be nil.
func New(
	cfg Config,
	ledger Ledger,
	payments PaymentChannel,
	clk Clock,
	events EventSink,
	metrics Metrics,
	logger *zap.Logger,
) (*Engine, error) {
	issuer, wallet := cfg.Issuer.Normalize(), cfg.Wallet.Normalize()
	if issuer.IsZero() {
		return nil, fmt.Errorf("%w: issuer is required", model.ErrInvalidConfig)
	}
	if wallet.IsZero() {
		return nil, fmt.Errorf("%w: wallet is required", model.ErrInvalidConfig)
	}
	if ledger == nil {
		return nil, errors.New("ledger is required")
	}
	if payments == nil {
		return nil, errors.New("payment channel is required")
	}
	if clk == nil {
		return nil, errors.New("clock is required")
	}
	if metrics == nil {
		return nil, errors.New("engine metrics is required")
	}
	if events == nil {
		events = discard{}
	}

	sched, err := schedule.New(cfg.Phases)
	if err != nil {
		return nil, err
	}

	return &Engine{
		sale:                cfg.Sale,
		issuer:              issuer,
		wallet:              wallet,
		issuerRefundAnyTime: cfg.IssuerRefundAnyTime,
		schedule:            sched,
		contributions:       contribution.New(),
		escrow:              escrow.New(),
		state:               model.StateActive,
		ledger:              ledger,
		payments:            payments,
		clock:               clk,
		events:              events,
		metrics:             metrics,
		logger:              logger.With(zap.String("sale", cfg.Sale)),
	}, nil
}

// Sale returns the sale name stamped on every event.
func (e *Engine) Sale() string {
	return e.sale
}

// Issuer returns the account allowed to call issuer-only operations.
func (e *Engine) Issuer() model.Account {
	return e.issuer
}

// Wallet returns the account receiving forwarded contributions.
func (e *Engine) Wallet() model.Account {
	return e.wallet
}

func (e *Engine) authorize(caller model.Account) error {
	if caller.Normalize() != e.issuer {
		return fmt.Errorf("%w: %s", model.ErrUnauthorized, caller)
	}
	return nil
}

func (e *Engine) publish(ctx context.Context, ev model.Event) {
	if err := e.events.Publish(ctx, ev); err != nil {
		e.logger.Warn("event not published",
			zap.String("kind", string(ev.Kind)),
			zap.String("participant", string(ev.Participant)),
			zap.Error(err))
	}
}

func (e *Engine) newEvent(kind model.EventKind, participant model.Account) model.Event {
	return model.NewEvent(e.sale, kind, participant, e.clock.Now())
}

func requireParticipant(p model.Account) (model.Account, error) {
	p = p.Normalize()
	if p.IsZero() {
		return "", fmt.Errorf("%w: participant is required", model.ErrInvalidAccount)
	}
	return p, nil
}

type discard struct{}

func (discard) Publish(context.Context, model.Event) error { return nil }
