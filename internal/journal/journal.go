// Package journal persists settlement events in the background.
package journal

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
	"github.com/goodnatureofminers/saleledger/pkg/batcher"
)

// Journal buffers published events and writes them to the repository in
// batches. A failed flush is logged and dropped; the engine state it
// describes is already committed.
type Journal struct {
	repo    Repository
	metrics Metrics
	batcher *batcher.Batcher[model.Event]
	logger  *zap.Logger
}

// New builds a Journal. Call Start before publishing.
func New(repo Repository, metrics Metrics, logger *zap.Logger, flushSize int, flushInterval time.Duration, rps int) (*Journal, error) {
	if repo == nil {
		return nil, errors.New("journal repository is required")
	}
	if metrics == nil {
		return nil, errors.New("journal metrics is required")
	}
	if flushSize < 1 || flushInterval <= 0 || rps < 1 {
		return nil, errors.New("journal flush size, interval and rps must be positive")
	}

	j := &Journal{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}
	j.batcher = batcher.New[model.Event](logger.Named("batcher"), j.flush, flushSize, flushInterval, rps)
	return j, nil
}

// Start begins background flushing.
func (j *Journal) Start(ctx context.Context) {
	j.batcher.Start(ctx)
}

// Stop flushes what is buffered and stops.
func (j *Journal) Stop() {
	j.batcher.Stop()
}

// Publish queues an event.
func (j *Journal) Publish(ctx context.Context, event model.Event) error {
	err := j.batcher.Add(ctx, event)
	j.metrics.ObservePublish(string(event.Kind), err)
	return err
}

func (j *Journal) flush(ctx context.Context, events []model.Event) error {
	started := time.Now()
	err := j.repo.InsertEvents(ctx, events)
	j.metrics.ObserveFlush(err, len(events), started)
	return err
}
