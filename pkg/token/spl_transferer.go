package token

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	splToken "github.com/gagliardetto/solana-go/programs/token"
	"github.com/solana-zh/feerouter/pkg/sol"
)

// SPLTransferer moves tokens via the standard SPL token program: build the
// transfer instruction, sign it, and send it.
type SPLTransferer struct {
	SolClient *sol.Client
}

func NewSPLTransferer(solClient *sol.Client) *SPLTransferer {
	return &SPLTransferer{SolClient: solClient}
}

// Transfer signs and sends an SPL token transfer instruction from `from` to
// `to`, authorized by `authority` and signed by `signer`. mint is accepted
// for interface symmetry with quote-only enforcement upstream (C5/C2); the
// legacy SPL Transfer instruction itself is mint-implicit via the source
// account.
func (t *SPLTransferer) Transfer(ctx context.Context, from, to, authority solana.PublicKey, signer solana.PrivateKey, amount uint64, mint solana.PublicKey) (solana.Signature, error) {
	inst, err := splToken.NewTransferInstruction(
		amount,
		from,
		to,
		authority,
		nil,
	).ValidateAndBuild()
	if err != nil {
		return solana.Signature{}, fmt.Errorf("token: failed to build transfer instruction: %w", err)
	}

	tx, err := t.SolClient.SignTransaction(ctx, []solana.PrivateKey{signer}, inst)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("token: failed to sign transfer transaction: %w", err)
	}

	sig, err := t.SolClient.SendTx(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("token: failed to send transfer transaction: %w", err)
	}
	return sig, nil
}
