package journal

import (
	"context"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

// LogSink writes events to the log only. Used when no journal database is
// configured.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(_ context.Context, event model.Event) error {
	fields := []zap.Field{
		zap.String("id", event.ID.String()),
		zap.String("sale", event.Sale),
		zap.String("kind", string(event.Kind)),
		zap.Time("occurred_at", event.OccurredAt),
	}
	if event.Participant != "" {
		fields = append(fields, zap.String("participant", string(event.Participant)))
	}
	if event.Value != nil {
		fields = append(fields, zap.String("value", event.Value.Dec()))
	}
	if event.Amount != nil {
		fields = append(fields, zap.String("amount", event.Amount.Dec()))
	}
	if event.Outcome != model.OutcomeUnknown {
		fields = append(fields, zap.Stringer("outcome", event.Outcome))
	}
	s.logger.Info("settlement event", fields...)
	return nil
}
