// Package model holds the settlement domain types shared by the sale packages.
package model

import "strings"

// Account identifies a participant, the issuer, the wallet or a pool holder.
type Account string

// Normalize trims surrounding whitespace.
func (a Account) Normalize() Account {
	return Account(strings.TrimSpace(string(a)))
}

// IsZero reports an empty identifier.
func (a Account) IsZero() bool {
	return a.Normalize() == ""
}
