package transport

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/goodnatureofminers/saleledger/internal/sale/engine"
	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Settlement is the part of engine.Engine served over the wire.
	Settlement interface {
		Sale() string
		Contribute(ctx context.Context, participant model.Account, value *uint256.Int) (*uint256.Int, error)
		Finalize(ctx context.Context, caller model.Account, outcome model.Outcome) error
		WithdrawTokens(ctx context.Context, participant model.Account) (*uint256.Int, error)
		WithdrawTokensFor(ctx context.Context, caller, participant model.Account) (*uint256.Int, error)
		WithdrawAllFor(ctx context.Context, caller model.Account, workers int) (int, error)
		LoadRefund(ctx context.Context, caller model.Account, amount *uint256.Int) error
		ClaimRefund(ctx context.Context, participant model.Account) (*uint256.Int, error)
		ClaimRefundFor(ctx context.Context, caller, participant model.Account) (*uint256.Int, error)
		Clawback(ctx context.Context, caller, participant model.Account) (*uint256.Int, error)
		Snapshot(ctx context.Context) (engine.Snapshot, error)
		Participant(ctx context.Context, participant model.Account) (engine.ParticipantStatus, error)
	}
	// History reads journaled events back.
	History interface {
		EventsByParticipant(ctx context.Context, sale string, participant model.Account) ([]model.Event, error)
	}
)
