package journal

import (
	"context"
	"time"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		InsertEvents(ctx context.Context, events []model.Event) error
	}
	Metrics interface {
		ObservePublish(kind string, err error)
		ObserveFlush(err error, size int, started time.Time)
	}
)
