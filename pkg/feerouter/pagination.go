package feerouter

import "crypto/sha256"

// DigestInvestorRefs computes a collision-resistant hash over the canonical
// encoding of the ordered investor reference list, used to recognize a
// retried page. Order matters — two pages with the same investors in a
// different order are different pages.
func DigestInvestorRefs(refs []InvestorRef) [32]byte {
	h := sha256.New()
	for _, r := range refs {
		h.Write(r.Investor.Bytes())
		h.Write(r.VestingRecord.Bytes())
		h.Write(r.PayoutAccount.Bytes())
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// isIdempotentRetry reports whether a page with this cursor/digest is a
// successful no-op replay of the last applied page. This must be checked
// before the cursor-order check: a retry of the last page arrives with the
// cursor already advanced past it, which would otherwise look out-of-order.
func isIdempotentRetry(day DayState, cursor uint64, digest [32]byte) bool {
	return cursor == day.Cursor && digest == day.LastPageDigest
}
