package monitor

import (
	"context"
	"time"

	"github.com/goodnatureofminers/saleledger/internal/sale/engine"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Source interface {
		Snapshot(ctx context.Context) (engine.Snapshot, error)
	}
	Metrics interface {
		ObservePoll(err error, started time.Time)
		ObserveSnapshot(s engine.Snapshot)
	}
)
