package clickhouse

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/holiman/uint256"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

// EventsByParticipant returns the events of participant in sale, oldest first.
func (r *Repository) EventsByParticipant(ctx context.Context, sale string, participant model.Account) ([]model.Event, error) {
	start := time.Now()
	var (
		err    error
		events []model.Event
	)
	defer func() {
		r.metrics.Observe("events_by_participant", len(events), err, start)
	}()

	const query = `
SELECT
	id,
	kind,
	value,
	amount,
	outcome,
	occurred_at
FROM settlement_events FINAL
WHERE sale = ? AND participant = ?
ORDER BY occurred_at ASC, id ASC`

	rows, err := r.conn.Query(ctx, query, sale, string(participant))
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var (
			ev      model.Event
			kind    string
			value   big.Int
			amount  big.Int
			outcome string
		)
		if err = rows.Scan(&ev.ID, &kind, &value, &amount, &outcome, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Sale = sale
		ev.Participant = participant
		ev.Kind = model.EventKind(kind)
		if ev.Value, err = fromBig(&value); err != nil {
			return nil, err
		}
		if ev.Amount, err = fromBig(&amount); err != nil {
			return nil, err
		}
		ev.Outcome = parseOutcomeColumn(outcome)
		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

func fromBig(v *big.Int) (*uint256.Int, error) {
	out, overflow := uint256.FromBig(v)
	if overflow {
		return nil, fmt.Errorf("amount %s does not fit 256 bits", v.String())
	}
	return out, nil
}

func parseOutcomeColumn(s string) model.Outcome {
	if s == "" {
		return model.OutcomeUnknown
	}
	o, err := model.ParseOutcome(s)
	if err != nil {
		return model.OutcomeUnknown
	}
	return o
}
