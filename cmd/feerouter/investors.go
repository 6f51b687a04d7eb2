package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/solana-zh/feerouter/pkg/feerouter"
)

type investorRefJSON struct {
	Investor      string `json:"investor"`
	VestingRecord string `json:"vesting_record"`
	PayoutAccount string `json:"payout_account"`
}

// loadInvestorPage reads one page's investor list, the set of investors a
// crank call processes this round. Pagination is the caller's
// responsibility, not the engine's.
func loadInvestorPage(path string) ([]feerouter.InvestorRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read investors file %s: %w", path, err)
	}
	var raw []investorRefJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse investors file %s: %w", path, err)
	}
	refs := make([]feerouter.InvestorRef, len(raw))
	for i, r := range raw {
		refs[i] = feerouter.InvestorRef{
			Investor:      pubkeyOrZero(r.Investor),
			VestingRecord: pubkeyOrZero(r.VestingRecord),
			PayoutAccount: pubkeyOrZero(r.PayoutAccount),
		}
	}
	return refs, nil
}
