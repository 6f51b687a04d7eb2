package main

import (
	"encoding/hex"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/solana-zh/feerouter/pkg/feerouter"
)

func pubkeyOrZero(s string) solana.PublicKey {
	if s == "" {
		return solana.PublicKey{}
	}
	return solana.MustPublicKeyFromBase58(s)
}

func toPolicy(p policyJSON) feerouter.Policy {
	return feerouter.Policy{
		Authority:           pubkeyOrZero(p.Authority),
		QuoteMint:           pubkeyOrZero(p.QuoteMint),
		InvestorShareCapBps: p.InvestorShareCapBps,
		DailyCap:            p.DailyCap,
		MinPayout:           p.MinPayout,
		Y0:                  p.Y0,
	}
}

func fromPolicy(p feerouter.Policy) policyJSON {
	return policyJSON{
		Authority:           p.Authority.String(),
		QuoteMint:           p.QuoteMint.String(),
		InvestorShareCapBps: p.InvestorShareCapBps,
		DailyCap:            p.DailyCap,
		MinPayout:           p.MinPayout,
		Y0:                  p.Y0,
	}
}

func toGlobal(g globalJSON) feerouter.GlobalState {
	lastDayIndex := g.LastDayIndex
	if g.QuoteMint == "" {
		lastDayIndex = feerouter.NoPriorDay
	}
	return feerouter.GlobalState{
		QuoteMint:           pubkeyOrZero(g.QuoteMint),
		LastDayIndex:        lastDayIndex,
		LifetimeDistributed: g.LifetimeDistributed,
	}
}

func fromGlobal(g feerouter.GlobalState) globalJSON {
	return globalJSON{
		QuoteMint:           g.QuoteMint.String(),
		LastDayIndex:        g.LastDayIndex,
		LifetimeDistributed: g.LifetimeDistributed,
	}
}

func toDay(d *dayJSON) (*feerouter.DayState, error) {
	if d == nil {
		return nil, nil
	}
	digestBytes, err := hex.DecodeString(d.LastPageDigest)
	if err != nil {
		return nil, fmt.Errorf("failed to parse last_page_digest: %w", err)
	}
	var digest [32]byte
	copy(digest[:], digestBytes)

	return &feerouter.DayState{
		DayIndex:           d.DayIndex,
		QuoteMint:          pubkeyOrZero(d.QuoteMint),
		OpenedAt:           d.OpenedAt,
		ClaimedThisDay:     d.ClaimedThisDay,
		DistributedThisDay: d.DistributedThisDay,
		DustCarry:          d.DustCarry,
		Cursor:             d.Cursor,
		LastPageDigest:     digest,
		State:              feerouter.DayStatus(d.State),
		Policy: feerouter.PolicySnapshot{
			InvestorShareCapBps: d.Policy.InvestorShareCapBps,
			DailyCap:            d.Policy.DailyCap,
			MinPayout:           d.Policy.MinPayout,
			Y0:                  d.Policy.Y0,
		},
	}, nil
}

func fromDay(d feerouter.DayState) *dayJSON {
	return &dayJSON{
		DayIndex:           d.DayIndex,
		QuoteMint:          d.QuoteMint.String(),
		OpenedAt:           d.OpenedAt,
		ClaimedThisDay:     d.ClaimedThisDay,
		DistributedThisDay: d.DistributedThisDay,
		DustCarry:          d.DustCarry,
		Cursor:             d.Cursor,
		LastPageDigest:     hex.EncodeToString(d.LastPageDigest[:]),
		State:              uint8(d.State),
		Policy: policySnapshotJSON{
			InvestorShareCapBps: d.Policy.InvestorShareCapBps,
			DailyCap:            d.Policy.DailyCap,
			MinPayout:           d.Policy.MinPayout,
			Y0:                  d.Policy.Y0,
		},
	}
}
