package sol

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// DerivePDA wraps solana.FindProgramAddress with the error message style used
// across the rest of this package's RPC wrappers.
func DerivePDA(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive PDA: %w", err)
	}
	return addr, bump, nil
}

// GetAccountData fetches an account and returns its raw data, rate limited
// like every other RPC call on this client.
func (c *Client) GetAccountData(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	resp, err := c.GetAccountInfoWithOpts(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", account, err)
	}
	if resp.Value == nil {
		return nil, fmt.Errorf("account %s not found", account)
	}
	return resp.Value.Data.GetBinary(), nil
}
