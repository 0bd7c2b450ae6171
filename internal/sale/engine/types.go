package engine

import (
	"context"
	"time"

	"github.com/holiman/uint256"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Ledger holds asset balances. HeldBalance is the pool still owned by the
	// sale; Credit pays out of it.
	Ledger interface {
		Credit(ctx context.Context, to model.Account, amount *uint256.Int) error
		DebitAndTransfer(ctx context.Context, from, to model.Account, amount *uint256.Int) error
		BalanceOf(ctx context.Context, account model.Account) (*uint256.Int, error)
		HeldBalance(ctx context.Context) (*uint256.Int, error)
	}
	// PaymentChannel moves contributed value. Deposit funds the refund escrow
	// and Release pays out of it.
	PaymentChannel interface {
		Forward(ctx context.Context, from, to model.Account, amount *uint256.Int) error
		Deposit(ctx context.Context, from model.Account, amount *uint256.Int) error
		Release(ctx context.Context, to model.Account, amount *uint256.Int) error
		BalanceOf(ctx context.Context, account model.Account) (*uint256.Int, error)
	}
	Clock interface {
		Now() time.Time
	}
	EventSink interface {
		Publish(ctx context.Context, event model.Event) error
	}
	Metrics interface {
		ObserveOperation(operation string, err error, started time.Time)
	}
)
