package clickhouse

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/holiman/uint256"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

// InsertEvents stores settlement events. Replays of the same event id
// collapse on merge.
func (r *Repository) InsertEvents(ctx context.Context, events []model.Event) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_events", len(events), err, start)
	}()

	if len(events) == 0 {
		return nil
	}

	const query = `
INSERT INTO settlement_events (
	id,
	sale,
	kind,
	participant,
	value,
	amount,
	outcome,
	occurred_at
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare events batch: %w", err)
	}

	for _, ev := range events {
		if err = batch.Append(
			ev.ID,
			ev.Sale,
			string(ev.Kind),
			string(ev.Participant),
			toBig(ev.Value),
			toBig(ev.Amount),
			outcomeColumn(ev.Outcome),
			ev.OccurredAt.UTC(),
		); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	return nil
}

func toBig(v *uint256.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v.ToBig()
}

func outcomeColumn(o model.Outcome) string {
	if o == model.OutcomeUnknown {
		return ""
	}
	return o.String()
}
