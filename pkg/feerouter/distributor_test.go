package feerouter

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/solana-zh/feerouter/pkg/vesting"
	"github.com/stretchr/testify/require"
)

type fakeVestingAdapter struct {
	locked map[solana.PublicKey]uint64
	errs   map[solana.PublicKey]error
}

func (f fakeVestingAdapter) ReadLocked(_ context.Context, record solana.PublicKey, _ int64) (uint64, error) {
	if err, ok := f.errs[record]; ok {
		return 0, err
	}
	return f.locked[record], nil
}

type fakeTransferer struct {
	fail map[solana.PublicKey]bool
	sent map[solana.PublicKey]uint64
}

func newFakeTransferer() *fakeTransferer {
	return &fakeTransferer{fail: map[solana.PublicKey]bool{}, sent: map[solana.PublicKey]uint64{}}
}

func (f *fakeTransferer) Transfer(_ context.Context, _, to, _ solana.PublicKey, _ solana.PrivateKey, amount uint64, _ solana.PublicKey) (solana.Signature, error) {
	if f.fail[to] {
		return solana.Signature{}, errors.New("fake transfer failure")
	}
	f.sent[to] += amount
	return solana.Signature{}, nil
}

func testTreasury() TreasuryAuth {
	wallet := solana.NewWallet()
	return TreasuryAuth{
		Treasury:  solana.NewWallet().PublicKey(),
		Authority: wallet.PublicKey(),
		Signer:    wallet.PrivateKey,
	}
}

func baselineDay() DayState {
	return DayState{
		DayIndex: 1,
		Policy: PolicySnapshot{
			InvestorShareCapBps: 8_000,
			DailyCap:            0,
			MinPayout:           100,
			Y0:                  1_000_000,
		},
	}
}

func TestDistributePageSplitsProRataByLockedAmount(t *testing.T) {
	inv1 := solana.NewWallet().PublicKey()
	inv2 := solana.NewWallet().PublicKey()
	rec1 := solana.NewWallet().PublicKey()
	rec2 := solana.NewWallet().PublicKey()
	pay1 := solana.NewWallet().PublicKey()
	pay2 := solana.NewWallet().PublicKey()

	day := baselineDay()
	day.ClaimedThisDay = 100_000 // full Y0 locked below, so f_locked_bps clamps to 10000

	vestingAdapter := fakeVestingAdapter{locked: map[solana.PublicKey]uint64{
		rec1: 750_000,
		rec2: 250_000,
	}}
	transferer := newFakeTransferer()

	page := PageInput{Investors: []InvestorRef{
		{Investor: inv1, VestingRecord: rec1, PayoutAccount: pay1},
		{Investor: inv2, VestingRecord: rec2, PayoutAccount: pay2},
	}, Now: 1}

	paid, dust, err := distributePage(context.Background(), vestingAdapter, transferer, solana.PublicKey{}, testTreasury(), day, page, nil)
	require.NoError(t, err)

	// locked_total = 1_000_000 = Y0, so f_locked_bps = 10000, capped by
	// investor_share_cap_bps = 8000 -> eligible_bps = 8000.
	// claimed_pool = 100_000, page_pool = floor(100_000*8000/10000) = 80_000.
	require.Equal(t, uint64(60_000), transferer.sent[pay1]) // floor(80_000*750_000/1_000_000)
	require.Equal(t, uint64(20_000), transferer.sent[pay2]) // floor(80_000*250_000/1_000_000)
	require.Equal(t, uint64(80_000), paid)
	require.Equal(t, uint64(0), dust)
}

func TestDistributePagePartialLockClampsEligibleShare(t *testing.T) {
	inv1 := solana.NewWallet().PublicKey()
	rec1 := solana.NewWallet().PublicKey()
	pay1 := solana.NewWallet().PublicKey()

	day := baselineDay()
	day.ClaimedThisDay = 100_000

	// Only 10% of Y0 is locked, well under the 8000 bps cap, so
	// eligible_bps tracks f_locked_bps instead of the cap.
	vestingAdapter := fakeVestingAdapter{locked: map[solana.PublicKey]uint64{rec1: 100_000}}
	transferer := newFakeTransferer()
	page := PageInput{Investors: []InvestorRef{{Investor: inv1, VestingRecord: rec1, PayoutAccount: pay1}}, Now: 1}

	paid, dust, err := distributePage(context.Background(), vestingAdapter, transferer, solana.PublicKey{}, testTreasury(), day, page, nil)
	require.NoError(t, err)

	// f_locked_bps = floor(100_000*10000/1_000_000) = 1000, eligible_bps=1000.
	// page_pool = floor(100_000*1000/10000) = 10_000, all to the one investor.
	require.Equal(t, uint64(10_000), paid)
	require.Equal(t, uint64(10_000), transferer.sent[pay1])
	require.Equal(t, uint64(0), dust)
}

func TestDistributePageSuppressesBelowMinPayoutAsDust(t *testing.T) {
	inv1 := solana.NewWallet().PublicKey()
	inv2 := solana.NewWallet().PublicKey()
	rec1 := solana.NewWallet().PublicKey()
	rec2 := solana.NewWallet().PublicKey()
	pay1 := solana.NewWallet().PublicKey()
	pay2 := solana.NewWallet().PublicKey()

	day := baselineDay()
	day.Policy.MinPayout = 50
	day.ClaimedThisDay = 1_000 // tiny pool so one investor's share lands under MinPayout

	vestingAdapter := fakeVestingAdapter{locked: map[solana.PublicKey]uint64{
		rec1: 950_000,
		rec2: 50_000,
	}}
	transferer := newFakeTransferer()
	page := PageInput{Investors: []InvestorRef{
		{Investor: inv1, VestingRecord: rec1, PayoutAccount: pay1},
		{Investor: inv2, VestingRecord: rec2, PayoutAccount: pay2},
	}, Now: 1}

	paid, dust, err := distributePage(context.Background(), vestingAdapter, transferer, solana.PublicKey{}, testTreasury(), day, page, nil)
	require.NoError(t, err)

	require.Equal(t, uint64(0), transferer.sent[pay2]) // floor(800*50_000/1_000_000)=40 < MinPayout, suppressed
	require.Greater(t, paid, uint64(0))
	require.Equal(t, paid+dust, uint64(800)) // page_pool = floor(1000*8000/10000) = 800
}

func TestDistributePageSkipsZeroRawPayoutEvenWithNoMinPayout(t *testing.T) {
	inv1 := solana.NewWallet().PublicKey()
	inv2 := solana.NewWallet().PublicKey()
	rec1 := solana.NewWallet().PublicKey()
	rec2 := solana.NewWallet().PublicKey()
	pay1 := solana.NewWallet().PublicKey()
	pay2 := solana.NewWallet().PublicKey()

	day := baselineDay()
	day.Policy.MinPayout = 0 // no dust floor configured
	day.ClaimedThisDay = 1_000

	vestingAdapter := fakeVestingAdapter{locked: map[solana.PublicKey]uint64{
		rec1: 999_000,
		rec2: 1_000,
	}}
	transferer := newFakeTransferer()
	page := PageInput{Investors: []InvestorRef{
		{Investor: inv1, VestingRecord: rec1, PayoutAccount: pay1},
		{Investor: inv2, VestingRecord: rec2, PayoutAccount: pay2},
	}, Now: 1}

	paid, dust, err := distributePage(context.Background(), vestingAdapter, transferer, solana.PublicKey{}, testTreasury(), day, page, nil)
	require.NoError(t, err)

	// floor(800*1000/1_000_000) = 0: with MinPayout == 0, "raw < MinPayout"
	// alone would let this through as a zero-amount transfer.
	_, wasSent := transferer.sent[pay2]
	require.False(t, wasSent)
	require.Equal(t, paid+dust, uint64(800))
}

func TestDistributePageCarriesDustIntoPagePool(t *testing.T) {
	inv1 := solana.NewWallet().PublicKey()
	rec1 := solana.NewWallet().PublicKey()
	pay1 := solana.NewWallet().PublicKey()

	day := baselineDay()
	day.DustCarry = 500
	day.ClaimedThisDay = 100_000

	vestingAdapter := fakeVestingAdapter{locked: map[solana.PublicKey]uint64{rec1: 1_000_000}}
	transferer := newFakeTransferer()
	page := PageInput{Investors: []InvestorRef{{Investor: inv1, VestingRecord: rec1, PayoutAccount: pay1}}, Now: 1}

	paid, _, err := distributePage(context.Background(), vestingAdapter, transferer, solana.PublicKey{}, testTreasury(), day, page, nil)
	require.NoError(t, err)

	// claimed_pool = 100_000 - 0 - 500 = 99_500. eligible_bps=8000 (full lock).
	// investor_slice = floor(99_500*8000/10000) = 79_600. page_pool = 79_600+500 = 80_100.
	require.Equal(t, uint64(80_100), paid)
}

func TestDistributePageDailyCapClampsPagePool(t *testing.T) {
	inv1 := solana.NewWallet().PublicKey()
	rec1 := solana.NewWallet().PublicKey()
	pay1 := solana.NewWallet().PublicKey()

	day := baselineDay()
	day.Policy.DailyCap = 1_000
	day.ClaimedThisDay = 100_000

	vestingAdapter := fakeVestingAdapter{locked: map[solana.PublicKey]uint64{rec1: 1_000_000}}
	transferer := newFakeTransferer()
	page := PageInput{Investors: []InvestorRef{{Investor: inv1, VestingRecord: rec1, PayoutAccount: pay1}}, Now: 1}

	paid, _, err := distributePage(context.Background(), vestingAdapter, transferer, solana.PublicKey{}, testTreasury(), day, page, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), paid) // clamped to the daily cap's remaining room
}

func TestDistributePageZeroLockedTotalIsANoOp(t *testing.T) {
	inv1 := solana.NewWallet().PublicKey()
	rec1 := solana.NewWallet().PublicKey()
	pay1 := solana.NewWallet().PublicKey()

	day := baselineDay()
	day.ClaimedThisDay = 100_000

	vestingAdapter := fakeVestingAdapter{locked: map[solana.PublicKey]uint64{rec1: 0}}
	transferer := newFakeTransferer()
	page := PageInput{Investors: []InvestorRef{{Investor: inv1, VestingRecord: rec1, PayoutAccount: pay1}}, Now: 1}

	paid, dust, err := distributePage(context.Background(), vestingAdapter, transferer, solana.PublicKey{}, testTreasury(), day, page, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(0), paid)
	require.Equal(t, uint64(0), dust)
}

func TestDistributePageMissingVestingRecordTreatedAsZeroLocked(t *testing.T) {
	inv1 := solana.NewWallet().PublicKey()
	inv2 := solana.NewWallet().PublicKey()
	rec1 := solana.NewWallet().PublicKey()
	rec2 := solana.NewWallet().PublicKey()
	pay1 := solana.NewWallet().PublicKey()
	pay2 := solana.NewWallet().PublicKey()

	day := baselineDay()
	day.ClaimedThisDay = 100_000

	vestingAdapter := fakeVestingAdapter{
		locked: map[solana.PublicKey]uint64{rec1: 1_000_000},
		errs:   map[solana.PublicKey]error{rec2: vesting.ErrRecordNotFound},
	}
	transferer := newFakeTransferer()
	page := PageInput{Investors: []InvestorRef{
		{Investor: inv1, VestingRecord: rec1, PayoutAccount: pay1},
		{Investor: inv2, VestingRecord: rec2, PayoutAccount: pay2},
	}, Now: 1}

	var sink recordingSink
	paid, _, err := distributePage(context.Background(), vestingAdapter, transferer, solana.PublicKey{}, testTreasury(), day, page, &sink)
	require.NoError(t, err)
	require.Equal(t, uint64(0), transferer.sent[pay2])
	require.Greater(t, paid, uint64(0))
	require.True(t, sink.sawWarningFor(inv2))
}

func TestDistributePageFoldsTransferFailureIntoDust(t *testing.T) {
	inv1 := solana.NewWallet().PublicKey()
	rec1 := solana.NewWallet().PublicKey()
	pay1 := solana.NewWallet().PublicKey()

	day := baselineDay()
	day.ClaimedThisDay = 100_000

	vestingAdapter := fakeVestingAdapter{locked: map[solana.PublicKey]uint64{rec1: 1_000_000}}
	transferer := newFakeTransferer()
	transferer.fail[pay1] = true
	page := PageInput{Investors: []InvestorRef{{Investor: inv1, VestingRecord: rec1, PayoutAccount: pay1}}, Now: 1}

	paid, dust, err := distributePage(context.Background(), vestingAdapter, transferer, solana.PublicKey{}, testTreasury(), day, page, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(0), paid)
	require.Equal(t, uint64(80_000), dust)
}

type recordingSink struct {
	events []Event
}

func (s *recordingSink) Emit(e Event) {
	s.events = append(s.events, e)
}

func (s *recordingSink) sawWarningFor(investor solana.PublicKey) bool {
	for _, e := range s.events {
		if w, ok := e.(VestingReadWarning); ok && w.Investor == investor {
			return true
		}
	}
	return false
}
