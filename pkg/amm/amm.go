// Package amm defines the external AMM adapter the fee-distribution engine
// calls to create the honorary position and claim its fees. The engine never
// reaches into pool math or swap routing; it only ever calls the three
// operations below.
package amm

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
)

// PoolConfig is the subset of an AMM pool's on-chain configuration the
// honorary-position preflight needs: its two mints, its fee scheme, and the
// price range the position would be opened across.
type PoolConfig struct {
	Pool          solana.PublicKey
	TokenAMint    solana.PublicKey
	TokenBMint    solana.PublicKey
	BaseFeeMode   bool // true if the pool charges fees in the base (non-quote-designated) token
	LowerTick     int32
	UpperTick     int32
	ActivationTick int32
}

// PositionRef addresses a created honorary position.
type PositionRef struct {
	Pool     solana.PublicKey
	Position solana.PublicKey
	Owner    solana.PublicKey
}

var (
	// ErrQuoteMintMismatch means neither pool mint equals the declared quote mint.
	ErrQuoteMintMismatch = errors.New("amm: pool does not contain the declared quote mint")
	// ErrBaseFeeConfigRejected means the pool configuration could ever earn base-side fees.
	ErrBaseFeeConfigRejected = errors.New("amm: pool configuration could earn base-side fees")
	// ErrClaimReadFailed means the position account could not be fetched or decoded during a claim.
	ErrClaimReadFailed = errors.New("amm: failed to read position fee state")
)

// Adapter is the external AMM collaborator. Implementations must make
// ValidateFeeOnlyConfig a pure, deterministic function of pool — callers
// need to be able to reproduce the same verdict off-chain.
type Adapter interface {
	// ValidateFeeOnlyConfig returns nil if a position opened across
	// [pool.LowerTick, pool.UpperTick] can only ever accrue fees in
	// quoteMint, and ErrBaseFeeConfigRejected otherwise.
	ValidateFeeOnlyConfig(ctx context.Context, pool PoolConfig, quoteMint solana.PublicKey) error

	// CreateFeeOnlyPosition opens a zero-liquidity position at pool's
	// configured range, owned by owner (a derived authority), signing and
	// sending with payer.
	CreateFeeOnlyPosition(ctx context.Context, pool PoolConfig, quoteMint, owner solana.PublicKey, payer solana.PrivateKey) (PositionRef, error)

	// ClaimFees atomically sweeps accrued fees from position into treasury
	// and reports the two amounts claimed. The caller (feerouter.ClaimFees)
	// is responsible for rejecting a non-zero base amount.
	ClaimFees(ctx context.Context, position PositionRef, treasury solana.PublicKey, payer solana.PrivateKey) (baseAmount, quoteAmount uint64, err error)
}
