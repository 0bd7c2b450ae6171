package model

import (
	"errors"

	"github.com/goodnatureofminers/saleledger/pkg/safe"
)

// Every rejected settlement operation returns one of these, possibly wrapped
// with detail. Callers match with errors.Is.
var (
	ErrAdmissionRejected   = errors.New("admission rejected")
	ErrUnauthorized        = errors.New("caller is not the issuer")
	ErrAlreadyFinalized    = errors.New("sale already finalized")
	ErrTooEarly            = errors.New("sale has not closed yet")
	ErrNotFinalizedSuccess = errors.New("sale not finalized successfully")
	ErrNotFinalizedFailure = errors.New("sale not finalized as failed")
	ErrAlreadyWithdrawn    = errors.New("tokens already withdrawn")
	ErrAlreadyRefunded     = errors.New("contribution already refunded")
	ErrNoContribution      = errors.New("no contribution recorded")
	ErrInsufficientEscrow  = errors.New("insufficient refund escrow balance")
	ErrArithmeticOverflow  = safe.ErrOverflow

	ErrInvalidConfig   = errors.New("invalid sale configuration")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidAccount  = errors.New("invalid account")
	ErrInvalidOutcome  = errors.New("invalid finalization outcome")
	ErrClawbackRevoked = errors.New("clawback revoked after successful finalization")
)
