package main

import (
	"log"

	"github.com/solana-zh/feerouter/pkg/feerouter"
)

// logSink narrates engine events with log.Printf and a short emoji tag per
// event kind; no structured logging library is wired in.
type logSink struct{}

func (logSink) Emit(e feerouter.Event) {
	switch ev := e.(type) {
	case feerouter.HonoraryPositionInitialized:
		log.Printf("🏷️honorary position initialized: pool=%s position=%s owner=%s", ev.Pool, ev.Position, ev.Owner)
	case feerouter.QuoteFeesClaimed:
		log.Printf("💰claimed %d quote fees for day %d", ev.Amount, ev.DayIndex)
	case feerouter.InvestorsProcessed:
		log.Printf("📤day %d page done: cursor=%d paid=%d dust=%d", ev.DayIndex, ev.Cursor, ev.Paid, ev.Dust)
	case feerouter.CreatorPayoutCompleted:
		log.Printf("🏁day %d closed, creator remainder=%d", ev.DayIndex, ev.Remainder)
	case feerouter.PolicyUpdated:
		log.Printf("🛠️policy updated for quote mint %s", ev.QuoteMint)
	case feerouter.VestingReadWarning:
		log.Printf("🧐vesting read failed for investor %s: %v", ev.Investor, ev.Err)
	case feerouter.PayoutSkipped:
		log.Printf("🙈payout skipped for investor %s, amount %d folded into dust: %v", ev.Investor, ev.Amount, ev.Reason)
	default:
		log.Printf("📣%v", ev)
	}
}
