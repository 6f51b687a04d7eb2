package feerouter

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/solana-zh/feerouter/pkg/token"
	"github.com/solana-zh/feerouter/pkg/vesting"
)

// PageInput is one page's worth of investors plus the timestamp the page's
// locked-amount reads are pinned to.
type PageInput struct {
	Investors []InvestorRef
	Now       int64
}

// TreasuryAuth is the authority that signs transfers out of the treasury
// token account (a derived PDA in production; a plain keypair is also
// accepted for local/test use).
type TreasuryAuth struct {
	Treasury  solana.PublicKey
	Authority solana.PublicKey
	Signer    solana.PrivateKey
}

// distributePage runs C5's six steps for one page and mutates nothing on
// day directly — it returns the amounts the caller (Crank) folds into
// DayState under the pagination protocol's cursor/digest update.
func distributePage(
	ctx context.Context,
	vestingAdapter vesting.Adapter,
	transferer token.Transferer,
	quoteMint solana.PublicKey,
	treasury TreasuryAuth,
	day DayState,
	page PageInput,
	sink EventSink,
) (paid uint64, dustOut uint64, err error) {
	if sink == nil {
		sink = NoopEventSink{}
	}

	// Step 1: read locked amounts, never failing the page on a bad record.
	locked := make([]uint64, len(page.Investors))
	var lockedTotal uint64
	for i, ref := range page.Investors {
		amount, rErr := vestingAdapter.ReadLocked(ctx, ref.VestingRecord, page.Now)
		if rErr != nil {
			sink.Emit(VestingReadWarning{Investor: ref.Investor, Err: rErr})
			amount = 0
		}
		locked[i] = amount
		lockedTotal += amount
	}

	// Step 2+3: this page's own f_locked / eligible_bps / pool, a pure
	// function of this page's investors and the day's frozen policy
	// snapshot — never of other pages, so pages can be retried or
	// reordered-and-rejected without cross-page state leaking in.
	if lockedTotal == 0 {
		// B1: no locked balance on this page at all.
		return 0, 0, nil
	}

	fLockedBps, err := mulDivFloor(lockedTotal, BpsDenominator, day.Policy.Y0)
	if err != nil {
		return 0, 0, err
	}
	fLockedBps = minU64(fLockedBps, BpsDenominator)

	eligibleBps := minU64(uint64(day.Policy.InvestorShareCapBps), fLockedBps)

	claimedPool := subClampU64(day.ClaimedThisDay, day.DistributedThisDay)
	claimedPool = subClampU64(claimedPool, day.DustCarry)

	investorSlice, err := mulDivFloor(claimedPool, eligibleBps, BpsDenominator)
	if err != nil {
		return 0, 0, err
	}
	pagePool := investorSlice + day.DustCarry

	if day.Policy.DailyCap > 0 {
		room := subClampU64(day.Policy.DailyCap, day.DistributedThisDay)
		pagePool = minU64(pagePool, room)
	}

	// Step 4: per-investor raw payouts, floored, dust-suppressed below MinPayout.
	var rawSum uint64
	var payouts []Payout
	for i, ref := range page.Investors {
		if locked[i] == 0 {
			continue
		}
		raw, mErr := mulDivFloor(pagePool, locked[i], lockedTotal)
		if mErr != nil {
			return 0, 0, mErr
		}
		rawSum += raw
		if raw == 0 {
			continue
		}
		if raw < day.Policy.MinPayout {
			dustOut += raw
			continue
		}
		payouts = append(payouts, Payout{Investor: ref.Investor, Amount: raw})
	}
	dustOut += subClampU64(pagePool, rawSum)

	// Step 5: transfer. A missing payout account or transfer failure folds
	// the amount into dust instead of failing the page.
	var paidTotal uint64
	for _, p := range payouts {
		ref := findInvestorRef(page.Investors, p.Investor)
		_, tErr := transferer.Transfer(ctx, treasury.Treasury, ref.PayoutAccount, treasury.Authority, treasury.Signer, p.Amount, quoteMint)
		if tErr != nil {
			sink.Emit(PayoutSkipped{Investor: p.Investor, Amount: p.Amount, Reason: tErr})
			dustOut += p.Amount
			continue
		}
		paidTotal += p.Amount
	}

	return paidTotal, dustOut, nil
}

func findInvestorRef(refs []InvestorRef, investor solana.PublicKey) InvestorRef {
	for _, r := range refs {
		if r.Investor == investor {
			return r
		}
	}
	return InvestorRef{}
}
