package anchor

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// DerivePDA wraps solana.FindProgramAddress for byte-seed program-derived
// addresses; the AMM adapter derives the honorary position address with it.
func DerivePDA(programID solana.PublicKey, seeds ...[]byte) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive PDA: %w", err)
	}
	return addr, bump, nil
}

// Uint64Seed renders a little-endian seed component for an integer key
// (e.g. a day index).
func Uint64Seed(v uint64) []byte {
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(v >> (8 * i))
	}
	return b
}
