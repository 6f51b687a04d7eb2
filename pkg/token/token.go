// Package token defines the external token-transfer adapter the
// distributor uses to move quote tokens out of the treasury. Transfer
// authority is delegated to this subsystem; the engine never constructs
// SPL token instructions itself.
package token

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Transferer moves amount of mint from from (an account owned by authority)
// to to, and surfaces any failure as an error rather than panicking — a
// single investor's transfer failure must not abort the rest of a page.
type Transferer interface {
	Transfer(ctx context.Context, from, to, authority solana.PublicKey, signer solana.PrivateKey, amount uint64, mint solana.PublicKey) (solana.Signature, error)
}
