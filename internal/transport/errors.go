package transport

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/goodnatureofminers/saleledger/internal/ledger"
	"github.com/goodnatureofminers/saleledger/internal/payment"
	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

var codeBySentinel = []struct {
	err  error
	code codes.Code
}{
	{model.ErrUnauthorized, codes.PermissionDenied},
	{model.ErrInvalidAmount, codes.InvalidArgument},
	{model.ErrInvalidAccount, codes.InvalidArgument},
	{model.ErrInvalidOutcome, codes.InvalidArgument},
	{model.ErrInvalidConfig, codes.InvalidArgument},
	{model.ErrArithmeticOverflow, codes.OutOfRange},
	{model.ErrNoContribution, codes.NotFound},
	{model.ErrAlreadyWithdrawn, codes.AlreadyExists},
	{model.ErrAlreadyRefunded, codes.AlreadyExists},
	{model.ErrAdmissionRejected, codes.FailedPrecondition},
	{model.ErrAlreadyFinalized, codes.FailedPrecondition},
	{model.ErrTooEarly, codes.FailedPrecondition},
	{model.ErrNotFinalizedSuccess, codes.FailedPrecondition},
	{model.ErrNotFinalizedFailure, codes.FailedPrecondition},
	{model.ErrInsufficientEscrow, codes.FailedPrecondition},
	{model.ErrClawbackRevoked, codes.FailedPrecondition},
	{ledger.ErrInsufficientBalance, codes.FailedPrecondition},
	{payment.ErrInsufficientFunds, codes.FailedPrecondition},
	{context.Canceled, codes.Canceled},
	{context.DeadlineExceeded, codes.DeadlineExceeded},
}

// statusCode maps a settlement error to its gRPC code.
func statusCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if s, ok := status.FromError(err); ok {
		return s.Code()
	}
	for _, c := range codeBySentinel {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return codes.Internal
}

func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(statusCode(err), err.Error())
}
