package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// fileState is the crank runner's on-disk record of one quote mint's
// Policy/GlobalState/DayState, standing in for the on-chain accounts a
// deployed program would own. The crank binary is the only writer; it reads
// this file, calls feerouter.Crank, and rewrites it atomically before
// exiting.
type fileState struct {
	Policy policyJSON `json:"policy"`
	Global globalJSON `json:"global"`
	Day    *dayJSON   `json:"day,omitempty"`
}

type policyJSON struct {
	Authority           string `json:"authority"`
	QuoteMint           string `json:"quote_mint"`
	InvestorShareCapBps uint16 `json:"investor_share_cap_bps"`
	DailyCap            uint64 `json:"daily_cap"`
	MinPayout           uint64 `json:"min_payout"`
	Y0                  uint64 `json:"y0"`
}

type globalJSON struct {
	QuoteMint           string `json:"quote_mint"`
	LastDayIndex        int64  `json:"last_day_index"`
	LifetimeDistributed uint64 `json:"lifetime_distributed"`
}

type dayJSON struct {
	DayIndex           int64  `json:"day_index"`
	QuoteMint          string `json:"quote_mint"`
	OpenedAt           int64  `json:"opened_at"`
	ClaimedThisDay     uint64 `json:"claimed_this_day"`
	DistributedThisDay uint64 `json:"distributed_this_day"`
	DustCarry          uint64 `json:"dust_carry"`
	Cursor             uint64 `json:"cursor"`
	LastPageDigest     string `json:"last_page_digest"`
	State              uint8  `json:"state"`
	Policy             policySnapshotJSON `json:"policy_snapshot"`
}

type policySnapshotJSON struct {
	InvestorShareCapBps uint16 `json:"investor_share_cap_bps"`
	DailyCap            uint64 `json:"daily_cap"`
	MinPayout           uint64 `json:"min_payout"`
	Y0                  uint64 `json:"y0"`
}

func loadFileState(path string) (*fileState, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &fileState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	}
	var fs fileState
	if err := json.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	return &fs, nil
}

func saveFileState(path string, fs *fileState) error {
	data, err := json.MarshalIndent(fs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state file: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace state file %s: %w", path, err)
	}
	return nil
}
