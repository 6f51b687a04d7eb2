// Package feerouter implements the permissionless fee-distribution engine:
// the honorary-position lifecycle, the fee claim step, the policy store, the
// 24-hour paginated distribution state machine, and the pro-rata payout
// math. External collaborators (the AMM, the vesting program, token
// transfers) are accessed only through the adapter interfaces in amm,
// vesting and token.
package feerouter

import "github.com/gagliardetto/solana-go"

// DayStatus is the lifecycle state of a DayState.
type DayStatus uint8

const (
	DayOpen DayStatus = iota
	DayClosed
)

// BpsDenominator is the basis-point scale used throughout the engine.
const BpsDenominator = 10_000

// Policy is the authority-gated configuration for one quote mint. It is
// immutable during a crank; UpdatePolicy only ever changes the live record,
// never an in-flight DayState's snapshot (see DayState.Policy).
type Policy struct {
	Authority           solana.PublicKey
	QuoteMint           solana.PublicKey
	InvestorShareCapBps uint16
	DailyCap            uint64
	MinPayout           uint64
	Y0                  uint64
}

// PolicySnapshot is the subset of Policy a DayState freezes at opening time,
// so that a mid-day UpdatePolicy never perturbs an in-flight day (spec
// design note: this is what makes replay of a page idempotent).
type PolicySnapshot struct {
	InvestorShareCapBps uint16
	DailyCap            uint64
	MinPayout           uint64
	Y0                  uint64
}

func (p Policy) snapshot() PolicySnapshot {
	return PolicySnapshot{
		InvestorShareCapBps: p.InvestorShareCapBps,
		DailyCap:            p.DailyCap,
		MinPayout:           p.MinPayout,
		Y0:                  p.Y0,
	}
}

// DayState is one distribution day, keyed by (QuoteMint, DayIndex).
type DayState struct {
	DayIndex           int64
	QuoteMint          solana.PublicKey
	OpenedAt           int64
	ClaimedThisDay     uint64
	DistributedThisDay uint64
	DustCarry          uint64
	Cursor             uint64
	LastPageDigest     [32]byte
	State              DayStatus
	Policy             PolicySnapshot
}

// GlobalState survives across days, one per quote mint.
type GlobalState struct {
	QuoteMint           solana.PublicKey
	LastDayIndex        int64
	LifetimeDistributed uint64
}

// PositionRecord is C1's output: the honorary fee-only position.
type PositionRecord struct {
	Pool      solana.PublicKey
	Position  solana.PublicKey
	Owner     solana.PublicKey
	BaseMint  solana.PublicKey
	QuoteMint solana.PublicKey
}

// InvestorRef identifies one investor within a page: the vesting record to
// read locked_i from, and the token account to pay into.
type InvestorRef struct {
	Investor      solana.PublicKey
	VestingRecord solana.PublicKey
	PayoutAccount solana.PublicKey
}

// Payout is one investor's computed transfer for a page.
type Payout struct {
	Investor solana.PublicKey
	Amount   uint64
}

const SecondsPerDay = 86_400

// DayIndexFromUnix computes the day gate's identity, floor(now / 86_400).
func DayIndexFromUnix(nowUnix int64) int64 {
	if nowUnix < 0 && nowUnix%SecondsPerDay != 0 {
		return nowUnix/SecondsPerDay - 1
	}
	return nowUnix / SecondsPerDay
}
