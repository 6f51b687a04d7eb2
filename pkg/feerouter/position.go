package feerouter

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/solana-zh/feerouter/pkg/amm"
)

// InitializePositionParams are C1's inputs: the pool descriptor, the
// declared quote mint, and the vault the owner authority is derived from.
type InitializePositionParams struct {
	Pool      amm.PoolConfig
	QuoteMint solana.PublicKey
	VaultID   solana.PublicKey
	Payer     solana.PrivateKey
}

// derivePositionOwner computes the PDA that owns the honorary position,
// seeded from the vault ID so each vault gets its own deterministic
// authority.
func derivePositionOwner(programID, vaultID solana.PublicKey) (solana.PublicKey, error) {
	owner, _, err := solana.FindProgramAddress([][]byte{
		[]byte("VAULT"),
		vaultID.Bytes(),
		[]byte("investor_fee_pos_owner"),
	}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive position owner: %w", err)
	}
	return owner, nil
}

// InitializePosition runs C1: identifies the quote side, preflights the
// base-fee rejection, requests a zero-liquidity fee-only position from the
// AMM owned by the derived authority, and records the result.
func InitializePosition(ctx context.Context, adapter amm.Adapter, ammProgramID solana.PublicKey, params InitializePositionParams, sink EventSink) (PositionRecord, error) {
	if sink == nil {
		sink = NoopEventSink{}
	}

	if params.Pool.TokenAMint != params.QuoteMint && params.Pool.TokenBMint != params.QuoteMint {
		return PositionRecord{}, ErrQuoteMintMismatch
	}

	if err := adapter.ValidateFeeOnlyConfig(ctx, params.Pool, params.QuoteMint); err != nil {
		if errors.Is(err, amm.ErrQuoteMintMismatch) {
			return PositionRecord{}, ErrQuoteMintMismatch
		}
		return PositionRecord{}, ErrBaseFeeConfigRejected
	}

	owner, err := derivePositionOwner(ammProgramID, params.VaultID)
	if err != nil {
		return PositionRecord{}, err
	}

	ref, err := adapter.CreateFeeOnlyPosition(ctx, params.Pool, params.QuoteMint, owner, params.Payer)
	if err != nil {
		return PositionRecord{}, fmt.Errorf("%w: %v", ErrAMMFailure, err)
	}

	baseMint := params.Pool.TokenAMint
	if baseMint == params.QuoteMint {
		baseMint = params.Pool.TokenBMint
	}

	record := PositionRecord{
		Pool:      ref.Pool,
		Position:  ref.Position,
		Owner:     ref.Owner,
		BaseMint:  baseMint,
		QuoteMint: params.QuoteMint,
	}
	sink.Emit(HonoraryPositionInitialized{
		Pool:      record.Pool,
		Position:  record.Position,
		Owner:     record.Owner,
		QuoteMint: record.QuoteMint,
	})
	return record, nil
}
