// Package safe provides overflow-checked arithmetic on 256-bit amounts.
package safe

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

var (
	// ErrOverflow reports a result that does not fit into 256 bits or would go negative.
	ErrOverflow = errors.New("arithmetic overflow")
	// ErrDivisionByZero reports a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
)

// Zero returns a fresh zero amount.
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// Add returns x + y.
func Add(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, fmt.Errorf("%w: %s + %s", ErrOverflow, x.Dec(), y.Dec())
	}
	return z, nil
}

// Sub returns x - y and fails when y > x.
func Sub(x, y *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, fmt.Errorf("%w: %s - %s", ErrOverflow, x.Dec(), y.Dec())
	}
	return z, nil
}

// Mul returns x * y.
func Mul(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, fmt.Errorf("%w: %s * %s", ErrOverflow, x.Dec(), y.Dec())
	}
	return z, nil
}

// MulDiv returns x * y / d truncated toward zero. The intermediate product is
// computed with 512-bit precision, so only the final quotient must fit.
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, ErrDivisionByZero
	}
	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return nil, fmt.Errorf("%w: %s * %s / %s", ErrOverflow, x.Dec(), y.Dec(), d.Dec())
	}
	return z, nil
}

// Float64 converts an amount for metrics. Precision loss is expected.
func Float64(x *uint256.Int) float64 {
	if x == nil {
		return 0
	}
	if x.IsUint64() {
		return float64(x.Uint64())
	}
	f, _ := new(big.Float).SetInt(x.ToBig()).Float64()
	return f
}

// ParseAmount parses a non-negative integer written either as plain decimal
// digits ("200000000000000000000000000") or in exponent form ("2e26",
// "1.5e18"). Exponent forms must still denote an integer. Underscores are
// ignored as digit separators.
func ParseAmount(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", ""))
	if s == "" {
		return nil, errors.New("empty amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if d.Sign() < 0 {
		return nil, fmt.Errorf("parse amount %q: negative", s)
	}
	if !d.IsInteger() {
		return nil, fmt.Errorf("parse amount %q: not an integer", s)
	}
	v, overflow := uint256.FromBig(d.BigInt())
	if overflow {
		return nil, fmt.Errorf("%w: amount %q", ErrOverflow, s)
	}
	return v, nil
}
