// Package vesting defines the external vesting-program adapter the
// distributor reads one record from per investor per page. The engine never
// infers schema beyond ReadLocked's return value.
package vesting

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
)

// ErrRecordNotFound is returned by an Adapter when the vesting record
// account does not exist or cannot be decoded. The distributor (C5) treats
// this as non-fatal and substitutes locked_i = 0.
var ErrRecordNotFound = errors.New("vesting: record not found or malformed")

// Adapter is the external vesting-program collaborator.
type Adapter interface {
	// ReadLocked returns the still-locked token amount for record at time
	// now. It must be monotonically non-increasing in now for a fixed
	// record, and must not block or retry internally — a page is a pure
	// function of its own inputs.
	ReadLocked(ctx context.Context, record solana.PublicKey, now int64) (uint64, error)
}
