// Package monitor polls a sale and publishes its gauges.
package monitor

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/saleledger/internal/clock"
	"github.com/goodnatureofminers/saleledger/internal/sale/engine"
	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

// Service logs sale milestones and keeps the sale gauges current.
type Service struct {
	source   Source
	metrics  Metrics
	logger   *zap.Logger
	sleep    func(context.Context, time.Duration) error
	clock    clock.Clock
	interval time.Duration

	closedLogged    bool
	finalizedLogged bool
}

// NewService builds a monitor. clk must be the clock the engine reads so the
// wake-up at closing time matches the engine's view of it.
func NewService(source Source, metrics Metrics, clk clock.Clock, logger *zap.Logger, interval time.Duration) (*Service, error) {
	if source == nil {
		return nil, errors.New("monitor source is required")
	}
	if metrics == nil {
		return nil, errors.New("monitor metrics is required")
	}
	if clk == nil {
		return nil, errors.New("monitor clock is required")
	}
	if interval <= 0 {
		return nil, errors.New("monitor interval must be positive")
	}
	return &Service{
		source:   source,
		metrics:  metrics,
		logger:   logger,
		sleep:    clock.SleepWithContext,
		clock:    clk,
		interval: interval,
	}, nil
}

// Run polls until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		wait := s.interval
		snap, err := s.run(ctx)
		if err != nil {
			s.logger.Warn("sale poll failed", zap.Error(err), zap.Duration("sleep", wait))
		} else {
			wait = s.nextWait(snap)
		}
		if err := s.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// nextWait shortens the interval so the poll after the closing time is not
// late by more than a moment.
func (s *Service) nextWait(snap engine.Snapshot) time.Duration {
	if snap.HasClosed || snap.ClosingTime.IsZero() {
		return s.interval
	}
	if untilClose := snap.ClosingTime.Sub(s.clock.Now()); untilClose >= 0 && untilClose < s.interval {
		return untilClose + time.Millisecond
	}
	return s.interval
}

func (s *Service) run(ctx context.Context) (engine.Snapshot, error) {
	started := time.Now()
	snap, err := s.source.Snapshot(ctx)
	s.metrics.ObservePoll(err, started)
	if err != nil {
		return engine.Snapshot{}, err
	}
	s.metrics.ObserveSnapshot(snap)

	if snap.HasClosed && !s.closedLogged {
		s.closedLogged = true
		s.logger.Info("sale closed",
			zap.Bool("sold_out", snap.SoldOut),
			zap.Time("closing_time", snap.ClosingTime),
			zap.String("total_contributed", snap.TotalContributed.Dec()),
			zap.Int("participants", snap.Participants))
	}
	if snap.State != model.StateActive && !s.finalizedLogged {
		s.finalizedLogged = true
		s.logger.Info("sale finalized",
			zap.Stringer("state", snap.State),
			zap.String("pool", snap.Pool.Dec()),
			zap.Int("pending_withdrawals", snap.Pending))
	}
	return snap, nil
}

var _ Source = (*engine.Engine)(nil)
