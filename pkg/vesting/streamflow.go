package vesting

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/solana-zh/feerouter/pkg/sol"
)

// StreamflowAdapter reads a Streamflow-shaped linear-vesting-with-cliff
// contract account and computes the still-locked amount as a pure function
// of now. Field offsets below follow the fixed little-endian layout
// Streamflow contracts use; this adapter only decodes the handful of fields
// ReadLocked needs.
type StreamflowAdapter struct {
	SolClient *sol.Client
}

func NewStreamflowAdapter(solClient *sol.Client) *StreamflowAdapter {
	return &StreamflowAdapter{SolClient: solClient}
}

// Field layout (all little-endian uint64/int64, 8 bytes each):
// magic, version, start_time, created_at, withdrawn_amount, canceled_at,
// end_time, net_deposited_amount, period, amount_per_period, cliff,
// cliff_amount, ...
const (
	vestingRecordMinSize = 200

	offsetStartTime       = 16 // magic + version
	offsetEndTime         = offsetStartTime + 8*4 // + created_at + withdrawn_amount + canceled_at
	offsetNetDeposited    = offsetEndTime + 8
	offsetPeriod          = offsetNetDeposited + 8
	offsetAmountPerPeriod = offsetPeriod + 8
	offsetCliff           = offsetAmountPerPeriod + 8
	offsetCliffAmount     = offsetCliff + 8
)

type vestingTerms struct {
	startTime       int64
	endTime         int64
	netDeposited    uint64
	period          uint64
	amountPerPeriod uint64
	cliff           int64
	cliffAmount     uint64
}

// ReadLocked decodes record and returns the still-locked amount at now. A
// missing or undersized account returns (0, ErrRecordNotFound); the caller
// is expected to treat that as a warning, not a fatal error.
func (a *StreamflowAdapter) ReadLocked(ctx context.Context, record solana.PublicKey, now int64) (uint64, error) {
	data, err := a.SolClient.GetAccountData(ctx, record)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRecordNotFound, err)
	}
	terms, err := decodeVestingTerms(data)
	if err != nil {
		return 0, err
	}
	return lockedAmount(terms, now), nil
}

func lockedAmount(t vestingTerms, now int64) uint64 {
	if now < t.cliff {
		return t.netDeposited
	}
	if t.period == 0 || t.amountPerPeriod == 0 {
		if now >= t.endTime {
			return 0
		}
		return subU64(t.netDeposited, t.cliffAmount)
	}

	periodsElapsed := uint64(now-t.cliff) / t.period
	unlocked := t.cliffAmount + periodsElapsed*t.amountPerPeriod
	if unlocked > t.netDeposited {
		unlocked = t.netDeposited
	}
	return subU64(t.netDeposited, unlocked)
}

func subU64(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}

func decodeVestingTerms(data []byte) (vestingTerms, error) {
	if len(data) < vestingRecordMinSize {
		return vestingTerms{}, fmt.Errorf("%w: account too small (%d bytes)", ErrRecordNotFound, len(data))
	}
	le := binary.LittleEndian
	return vestingTerms{
		startTime:       int64(le.Uint64(data[offsetStartTime : offsetStartTime+8])),
		endTime:         int64(le.Uint64(data[offsetEndTime : offsetEndTime+8])),
		netDeposited:    le.Uint64(data[offsetNetDeposited : offsetNetDeposited+8]),
		period:          le.Uint64(data[offsetPeriod : offsetPeriod+8]),
		amountPerPeriod: le.Uint64(data[offsetAmountPerPeriod : offsetAmountPerPeriod+8]),
		cliff:           int64(le.Uint64(data[offsetCliff : offsetCliff+8])),
		cliffAmount:     le.Uint64(data[offsetCliffAmount : offsetCliffAmount+8]),
	}, nil
}
