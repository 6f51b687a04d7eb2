package feerouter

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/solana-zh/feerouter/pkg/amm"
)

// ClaimFees runs C2. It must be called at most once per day, on the first
// page (the caller — Crank — enforces that). A non-zero base amount is
// fatal and leaves day untouched; otherwise day.ClaimedThisDay is advanced
// in place and QuoteFeesClaimed is emitted.
func ClaimFees(ctx context.Context, adapter amm.Adapter, position PositionRecord, treasury solana.PublicKey, payer solana.PrivateKey, day *DayState, sink EventSink) error {
	if sink == nil {
		sink = NoopEventSink{}
	}
	if day.State == DayClosed {
		return ErrDayClosed
	}

	baseAmount, quoteAmount, err := adapter.ClaimFees(ctx, amm.PositionRef{
		Pool:     position.Pool,
		Position: position.Position,
		Owner:    position.Owner,
	}, treasury, payer)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAMMFailure, err)
	}
	if baseAmount != 0 {
		return ErrBaseFeeDetected
	}

	day.ClaimedThisDay += quoteAmount
	sink.Emit(QuoteFeesClaimed{DayIndex: day.DayIndex, Amount: quoteAmount})
	return nil
}
