package feerouter

import "github.com/gagliardetto/solana-go"

// Event is the common interface of every observable event the engine emits.
// It carries no wire-format obligation; EventSink implementations decide how
// to log, meter or forward it.
type Event interface {
	eventName() string
}

// EventSink receives events as they are emitted. Callers that don't care can
// pass a NoopEventSink.
type EventSink interface {
	Emit(Event)
}

// NoopEventSink discards every event.
type NoopEventSink struct{}

func (NoopEventSink) Emit(Event) {}

type HonoraryPositionInitialized struct {
	Pool, Position, Owner, QuoteMint solana.PublicKey
}

func (HonoraryPositionInitialized) eventName() string { return "HonoraryPositionInitialized" }

type QuoteFeesClaimed struct {
	DayIndex int64
	Amount   uint64
}

func (QuoteFeesClaimed) eventName() string { return "QuoteFeesClaimed" }

type InvestorsProcessed struct {
	DayIndex int64
	Cursor   uint64
	Paid     uint64
	Dust     uint64
}

func (InvestorsProcessed) eventName() string { return "InvestorsProcessed" }

type CreatorPayoutCompleted struct {
	DayIndex  int64
	Remainder uint64
}

func (CreatorPayoutCompleted) eventName() string { return "CreatorPayoutCompleted" }

type PolicyUpdated struct {
	QuoteMint solana.PublicKey
}

func (PolicyUpdated) eventName() string { return "PolicyUpdated" }

// VestingReadWarning is emitted (not fatal) when an investor's vesting
// record is missing or malformed; the distributor treats the investor's
// locked amount as zero and keeps processing the rest of the page.
type VestingReadWarning struct {
	Investor solana.PublicKey
	Err      error
}

func (VestingReadWarning) eventName() string { return "VestingReadWarning" }

// PayoutSkipped is emitted when a computed payout could not be transferred
// (missing payout account, transfer failure) and was folded into dust.
type PayoutSkipped struct {
	Investor solana.PublicKey
	Amount   uint64
	Reason   error
}

func (PayoutSkipped) eventName() string { return "PayoutSkipped" }
