package amm

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/solana-zh/feerouter/pkg/anchor"
	"github.com/solana-zh/feerouter/pkg/sol"
)

// MeteoraDammV2ProgramID is the on-chain program this adapter talks to.
var MeteoraDammV2ProgramID = solana.MustPublicKeyFromBase58("cpamdpZCGKUy5JxQXB4dcpGPiikHawvSWAd6mEn1sGG")

// MeteoraDammV2Adapter implements amm.Adapter against a DAMM v2 style pool:
// a concentrated-liquidity pool where fee accrual direction is fixed at
// position-open time by which side of the active price the position's range
// sits on.
type MeteoraDammV2Adapter struct {
	SolClient *sol.Client
}

func NewMeteoraDammV2Adapter(solClient *sol.Client) *MeteoraDammV2Adapter {
	return &MeteoraDammV2Adapter{SolClient: solClient}
}

// ValidateFeeOnlyConfig is a pure function of pool: a position can only ever
// collect quote-side fees if (a) the pool doesn't charge fees in the base
// token at all, and (b) the configured range sits entirely on the quote side
// of the activation tick, so liquidity can never be crossed into earning the
// base mint.
func (a *MeteoraDammV2Adapter) ValidateFeeOnlyConfig(ctx context.Context, pool PoolConfig, quoteMint solana.PublicKey) error {
	if pool.TokenAMint != quoteMint && pool.TokenBMint != quoteMint {
		return ErrQuoteMintMismatch
	}
	if pool.BaseFeeMode {
		return ErrBaseFeeConfigRejected
	}
	quoteIsTokenB := pool.TokenBMint == quoteMint
	if quoteIsTokenB {
		// Token B (quote) fees accrue only while the position's range sits
		// at or below the activation tick.
		if pool.UpperTick > pool.ActivationTick {
			return ErrBaseFeeConfigRejected
		}
	} else {
		// Token A (quote) fees accrue only while the position's range sits
		// at or above the activation tick.
		if pool.LowerTick < pool.ActivationTick {
			return ErrBaseFeeConfigRejected
		}
	}
	return nil
}

// CreateFeeOnlyPosition builds, signs and sends the create-position
// instruction for a zero-liquidity position owned by owner, across pool's
// configured range.
func (a *MeteoraDammV2Adapter) CreateFeeOnlyPosition(ctx context.Context, pool PoolConfig, quoteMint, owner solana.PublicKey, payer solana.PrivateKey) (PositionRef, error) {
	if err := a.ValidateFeeOnlyConfig(ctx, pool, quoteMint); err != nil {
		return PositionRef{}, err
	}

	position, _, err := anchor.DerivePDA(MeteoraDammV2ProgramID,
		[]byte("position"), pool.Pool.Bytes(), owner.Bytes())
	if err != nil {
		return PositionRef{}, fmt.Errorf("failed to derive position address: %w", err)
	}

	inst := &createPositionInstruction{
		lowerTick: pool.LowerTick,
		upperTick: pool.UpperTick,
		AccountMetaSlice: solana.AccountMetaSlice{
			solana.NewAccountMeta(pool.Pool, true, false),
			solana.NewAccountMeta(position, true, false),
			solana.NewAccountMeta(owner, false, false),
			solana.NewAccountMeta(payer.PublicKey(), true, true),
			solana.NewAccountMeta(MeteoraDammV2ProgramID, false, false),
		},
	}
	inst.BaseVariant = bin.BaseVariant{Impl: inst}

	tx, err := a.SolClient.SignTransaction(ctx, []solana.PrivateKey{payer}, inst)
	if err != nil {
		return PositionRef{}, fmt.Errorf("failed to sign create-position transaction: %w", err)
	}
	if _, err := a.SolClient.SendTx(ctx, tx); err != nil {
		return PositionRef{}, fmt.Errorf("failed to send create-position transaction: %w", err)
	}

	return PositionRef{Pool: pool.Pool, Position: position, Owner: owner}, nil
}

// ClaimFees reads the position's owed-fee fields before and after sending
// the claim instruction, and reports the delta rather than trusting the
// instruction's logged return value.
func (a *MeteoraDammV2Adapter) ClaimFees(ctx context.Context, position PositionRef, treasury solana.PublicKey, payer solana.PrivateKey) (baseAmount, quoteAmount uint64, err error) {
	before, err := a.readOwedFees(ctx, position)
	if err != nil {
		return 0, 0, err
	}

	inst := BuildClaimFeesInstruction(position, treasury)
	tx, err := a.SolClient.SignTransaction(ctx, []solana.PrivateKey{payer}, inst)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sign claim-fees transaction: %w", err)
	}
	if _, err := a.SolClient.SendTx(ctx, tx); err != nil {
		return 0, 0, fmt.Errorf("failed to send claim-fees transaction: %w", err)
	}

	after, err := a.readOwedFees(ctx, position)
	if err != nil {
		return 0, 0, err
	}

	return subOwed(before.baseFeeOwed, after.baseFeeOwed), subOwed(before.quoteFeeOwed, after.quoteFeeOwed), nil
}

func subOwed(before, after uint64) uint64 {
	if after >= before {
		return 0
	}
	return before - after
}

func (a *MeteoraDammV2Adapter) readOwedFees(ctx context.Context, position PositionRef) (positionFees, error) {
	data, err := a.SolClient.GetAccountData(ctx, position.Position)
	if err != nil {
		return positionFees{}, fmt.Errorf("%w: %v", ErrClaimReadFailed, err)
	}
	fees, err := decodePositionFees(data)
	if err != nil {
		return positionFees{}, fmt.Errorf("%w: %v", ErrClaimReadFailed, err)
	}
	return fees, nil
}

type positionFees struct {
	baseFeeOwed  uint64
	quoteFeeOwed uint64
}

const (
	positionFeeBaseOffset  = 8 + 32 + 32 // discriminator + pool + owner
	positionFeeQuoteOffset = positionFeeBaseOffset + 8
	positionAccountMinSize = positionFeeQuoteOffset + 8
)

// decodePositionFees reads the owed-fee fields out of a position account
// by their fixed borsh offsets.
func decodePositionFees(data []byte) (positionFees, error) {
	if len(data) < positionAccountMinSize {
		return positionFees{}, fmt.Errorf("position account too small: %d bytes", len(data))
	}
	return positionFees{
		baseFeeOwed:  binary.LittleEndian.Uint64(data[positionFeeBaseOffset : positionFeeBaseOffset+8]),
		quoteFeeOwed: binary.LittleEndian.Uint64(data[positionFeeQuoteOffset : positionFeeQuoteOffset+8]),
	}, nil
}

// createPositionInstruction is the Anchor instruction wrapper for opening a
// zero-liquidity, fee-only position: a BaseVariant + AccountMetaSlice +
// manual borsh-encoded discriminator and args.
type createPositionInstruction struct {
	bin.BaseVariant
	lowerTick, upperTick    int32
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func (inst *createPositionInstruction) ProgramID() solana.PublicKey {
	return MeteoraDammV2ProgramID
}

func (inst *createPositionInstruction) Accounts() (out []*solana.AccountMeta) {
	return inst.Impl.(solana.AccountsGettable).GetAccounts()
}

func (inst *createPositionInstruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	discriminator := anchor.GetDiscriminator("global", "create_position")
	if _, err := buf.Write(discriminator); err != nil {
		return nil, fmt.Errorf("failed to write discriminator: %w", err)
	}
	enc := bin.NewBorshEncoder(buf)
	if err := enc.Encode(inst.lowerTick); err != nil {
		return nil, fmt.Errorf("failed to encode lower tick: %w", err)
	}
	if err := enc.Encode(inst.upperTick); err != nil {
		return nil, fmt.Errorf("failed to encode upper tick: %w", err)
	}
	return buf.Bytes(), nil
}

// claimFeesInstruction is the Anchor instruction wrapper for sweeping
// accrued fees from a position into the treasury.
type claimFeesInstruction struct {
	bin.BaseVariant
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func (inst *claimFeesInstruction) ProgramID() solana.PublicKey {
	return MeteoraDammV2ProgramID
}

func (inst *claimFeesInstruction) Accounts() (out []*solana.AccountMeta) {
	return inst.Impl.(solana.AccountsGettable).GetAccounts()
}

func (inst *claimFeesInstruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	discriminator := anchor.GetDiscriminator("global", "claim_position_fee")
	if _, err := buf.Write(discriminator); err != nil {
		return nil, fmt.Errorf("failed to write discriminator: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildClaimFeesInstruction constructs the instruction a crank would sign
// and send to execute ClaimFees; kept separate from ClaimFees itself so
// tests can exercise the pure math paths without a live account fetch.
func BuildClaimFeesInstruction(position PositionRef, treasury solana.PublicKey) solana.Instruction {
	inst := &claimFeesInstruction{
		AccountMetaSlice: solana.AccountMetaSlice{
			solana.NewAccountMeta(position.Pool, true, false),
			solana.NewAccountMeta(position.Position, true, false),
			solana.NewAccountMeta(position.Owner, false, true),
			solana.NewAccountMeta(treasury, true, false),
			solana.NewAccountMeta(MeteoraDammV2ProgramID, false, false),
		},
	}
	inst.BaseVariant = bin.BaseVariant{Impl: inst}
	return inst
}
