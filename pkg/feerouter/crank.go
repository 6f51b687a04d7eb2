package feerouter

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/solana-zh/feerouter/pkg/amm"
	"github.com/solana-zh/feerouter/pkg/token"
	"github.com/solana-zh/feerouter/pkg/vesting"
)

// CrankRequest bundles one permissionless crank call's inputs: the caller
// supplies the page of investors to process this call, the on-chain state it
// read just before calling, and the collaborators needed to act on it.
type CrankRequest struct {
	NowUnix int64
	Page    PageInput

	// Cursor is the zero-based index of this page within the day, as the
	// caller believes it to be. It must equal DayState.Cursor (the next
	// expected page) or be a byte-for-byte retry of the last applied page.
	Cursor uint64

	// IsFinal marks this page as the day's last; Crank runs C4.4.3 (close)
	// immediately after applying the page.
	IsFinal bool

	// CompatibilitySinglePage collapses a deployment with no true pagination
	// into a single page per day: IsFinal is forced true regardless of what
	// the caller passed.
	CompatibilitySinglePage bool

	Position             PositionRecord
	CreatorPayoutAccount solana.PublicKey

	AMMAdapter     amm.Adapter
	VestingAdapter vesting.Adapter
	Transferer     token.Transferer
	Treasury       TreasuryAuth
}

// CrankResult reports what one crank call actually did, for the caller to
// persist back to DayState/GlobalState storage.
type CrankResult struct {
	DayIndex  int64
	Day       DayState
	Global    GlobalState
	Paid      uint64
	Dust      uint64
	DayClosed bool
}

// Crank runs one permissionless call of the distribution engine: evaluate
// the gate, claim fees on the opening page, apply the page's pro-rata
// distribution, advance the pagination cursor, and close the day when this
// is the final page. The caller owns persistence — Crank takes the
// DayState/GlobalState it was given, mutates copies, and returns the
// result to be written back atomically; the transaction boundary is the
// caller's, not the engine's.
func Crank(ctx context.Context, global GlobalState, existingDay, prevDay *DayState, policy Policy, req CrankRequest, sink EventSink) (*CrankResult, error) {
	if sink == nil {
		sink = NoopEventSink{}
	}
	if req.CompatibilitySinglePage {
		req.IsFinal = true
	}

	dayIndex, verdict, err := EvaluateGate(global, existingDay, prevDay, req.NowUnix)
	if err != nil {
		return nil, err
	}

	var day DayState
	switch verdict {
	case GateOpensDay:
		day = DayState{
			DayIndex:  dayIndex,
			QuoteMint: policy.QuoteMint,
			OpenedAt:  req.NowUnix,
			State:     DayOpen,
			Policy:    policy.snapshot(),
		}
		if err := ClaimFees(ctx, req.AMMAdapter, req.Position, req.Treasury.Treasury, req.Treasury.Signer, &day, sink); err != nil {
			return nil, err
		}
	case GateContinuesDay:
		day = *existingDay
	}

	digest := DigestInvestorRefs(req.Page.Investors)
	if isIdempotentRetry(day, req.Cursor+1, digest) {
		return &CrankResult{DayIndex: dayIndex, Day: day, Global: global, DayClosed: day.State == DayClosed}, nil
	}
	if req.Cursor != day.Cursor {
		return nil, ErrPageOutOfOrder
	}

	paid, dust, err := distributePage(ctx, req.VestingAdapter, req.Transferer, policy.QuoteMint, req.Treasury, day, req.Page, sink)
	if err != nil {
		return nil, fmt.Errorf("feerouter: distributing page at cursor %d: %w", day.Cursor, err)
	}

	day.DistributedThisDay += paid
	day.DustCarry = dust
	day.Cursor = req.Cursor + 1
	day.LastPageDigest = digest

	sink.Emit(InvestorsProcessed{DayIndex: dayIndex, Cursor: day.Cursor, Paid: paid, Dust: dust})

	result := &CrankResult{DayIndex: dayIndex, Day: day, Global: global, Paid: paid, Dust: dust}

	if req.IsFinal {
		if err := closeDay(ctx, req.Transferer, policy.QuoteMint, req.Treasury, req.CreatorPayoutAccount, &day, &global, sink); err != nil {
			return nil, err
		}
		result.Day = day
		result.Global = global
		result.DayClosed = true
	}

	return result, nil
}
