package feerouter

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/solana-zh/feerouter/pkg/token"
)

// closeDay runs C4.4.3: the creator remainder is whatever was claimed today
// and never distributed to investors, and is swept out before the day
// transitions to Closed.
func closeDay(
	ctx context.Context,
	transferer token.Transferer,
	quoteMint solana.PublicKey,
	treasury TreasuryAuth,
	creatorPayoutAccount solana.PublicKey,
	day *DayState,
	global *GlobalState,
	sink EventSink,
) error {
	if sink == nil {
		sink = NoopEventSink{}
	}
	if day.State == DayClosed {
		return ErrDayAlreadyClosed
	}

	remainder := subClampU64(day.ClaimedThisDay, day.DistributedThisDay)
	if remainder > 0 {
		_, err := transferer.Transfer(ctx, treasury.Treasury, creatorPayoutAccount, treasury.Authority, treasury.Signer, remainder, quoteMint)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailure, err)
		}
	}

	day.State = DayClosed
	global.LastDayIndex = day.DayIndex
	global.LifetimeDistributed += day.DistributedThisDay

	sink.Emit(CreatorPayoutCompleted{DayIndex: day.DayIndex, Remainder: remainder})
	return nil
}
