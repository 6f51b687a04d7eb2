package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/solana-zh/feerouter/pkg/amm"
	"github.com/solana-zh/feerouter/pkg/feerouter"
	"github.com/solana-zh/feerouter/pkg/sol"
	"github.com/solana-zh/feerouter/pkg/token"
	"github.com/solana-zh/feerouter/pkg/vesting"
	"github.com/solana-zh/feerouter/utils"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: feerouter <crank|init-position|init-policy|update-policy|vanity> [flags]")
	}

	switch os.Args[1] {
	case "crank":
		runCrank(os.Args[2:])
	case "init-position":
		runInitPosition(os.Args[2:])
	case "init-policy":
		runInitPolicy(os.Args[2:])
	case "update-policy":
		runUpdatePolicy(os.Args[2:])
	case "vanity":
		runVanity(os.Args[2:])
	default:
		log.Fatalf("🧐unknown subcommand: %s", os.Args[1])
	}
}

func runCrank(args []string) {
	fs := flag.NewFlagSet("crank", flag.ExitOnError)
	rpcEndpoint := fs.String("rpc", "", "solana RPC endpoint")
	jitoEndpoint := fs.String("jito-rpc", "", "jito bundle endpoint (optional)")
	payerKey := fs.String("payer", "", "base58 private key paying for crank transactions")
	stateFile := fs.String("state", "feerouter_state.json", "path to the local policy/global/day state file")
	investorsFile := fs.String("investors", "", "path to this page's investor refs JSON file")
	poolFlag := fs.String("pool", "", "AMM pool address")
	positionFlag := fs.String("position", "", "honorary position address")
	positionOwnerFlag := fs.String("position-owner", "", "honorary position owner PDA")
	baseMintFlag := fs.String("base-mint", "", "base mint of the honorary position")
	treasuryFlag := fs.String("treasury", "", "treasury quote token account")
	treasuryAuthorityFlag := fs.String("treasury-authority", "", "treasury authority PDA")
	creatorPayoutFlag := fs.String("creator-payout", "", "creator's quote token account")
	cursor := fs.Uint64("cursor", 0, "this page's cursor within the day")
	isFinal := fs.Bool("final", false, "mark this page as the day's last")
	singlePage := fs.Bool("single-page", false, "compatibility mode: force a single page per day")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	log.Printf("🚀cranking fee distribution...")

	ctx := context.Background()
	solClient, err := sol.NewClient(ctx, *rpcEndpoint, *jitoEndpoint, 20)
	if err != nil {
		log.Fatalf("Failed to create solana client: %v", err)
	}
	payer := solana.MustPrivateKeyFromBase58(*payerKey)

	state, err := loadFileState(*stateFile)
	if err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}
	policy := toPolicy(state.Policy)
	global := toGlobal(state.Global)
	day, err := toDay(state.Day)
	if err != nil {
		log.Fatalf("Failed to parse stored day state: %v", err)
	}

	investors, err := loadInvestorPage(*investorsFile)
	if err != nil {
		log.Fatalf("Failed to load investor page: %v", err)
	}
	log.Printf("😈Processing %d investors at cursor %d", len(investors), *cursor)

	if _, balance, err := solClient.GetUserTokenBalance(ctx, pubkeyOrZero(*treasuryAuthorityFlag), policy.QuoteMint); err == nil {
		log.Printf("🏦treasury authority currently holds %d quote units before this page", balance)
	}

	clock, err := solClient.GetClock(ctx)
	if err != nil {
		log.Fatalf("Failed to read network clock: %v", err)
	}
	now := int64(clock.UnixTimestamp)

	req := feerouter.CrankRequest{
		NowUnix:                 now,
		Page:                    feerouter.PageInput{Investors: investors, Now: now},
		Cursor:                  *cursor,
		IsFinal:                 *isFinal,
		CompatibilitySinglePage: *singlePage,
		Position: feerouter.PositionRecord{
			Pool:      pubkeyOrZero(*poolFlag),
			Position:  pubkeyOrZero(*positionFlag),
			Owner:     pubkeyOrZero(*positionOwnerFlag),
			BaseMint:  pubkeyOrZero(*baseMintFlag),
			QuoteMint: policy.QuoteMint,
		},
		CreatorPayoutAccount: pubkeyOrZero(*creatorPayoutFlag),
		AMMAdapter:           amm.NewMeteoraDammV2Adapter(solClient),
		VestingAdapter:       vesting.NewStreamflowAdapter(solClient),
		Transferer:           token.NewSPLTransferer(solClient),
		Treasury: feerouter.TreasuryAuth{
			Treasury:  pubkeyOrZero(*treasuryFlag),
			Authority: pubkeyOrZero(*treasuryAuthorityFlag),
			Signer:    payer,
		},
	}

	result, err := feerouter.Crank(ctx, global, day, day, policy, req, logSink{})
	if err != nil {
		log.Fatalf("💥crank failed: %v", err)
	}

	state.Global = fromGlobal(result.Global)
	state.Day = fromDay(result.Day)
	if err := saveFileState(*stateFile, state); err != nil {
		log.Fatalf("Failed to persist state: %v", err)
	}

	log.Printf("✅crank complete: day=%d cursor=%d paid=%d dust=%d closed=%v",
		result.DayIndex, result.Day.Cursor, result.Paid, result.Dust, result.DayClosed)
}

func runInitPosition(args []string) {
	fs := flag.NewFlagSet("init-position", flag.ExitOnError)
	rpcEndpoint := fs.String("rpc", "", "solana RPC endpoint")
	payerKey := fs.String("payer", "", "base58 private key paying for the position")
	poolFlag := fs.String("pool", "", "AMM pool address")
	tokenAMint := fs.String("token-a-mint", "", "pool's token A mint")
	tokenBMint := fs.String("token-b-mint", "", "pool's token B mint")
	quoteMintFlag := fs.String("quote-mint", "", "the declared quote mint")
	vaultID := fs.String("vault-id", "", "vault ID the position owner PDA is derived from")
	ammProgramID := fs.String("amm-program-id", "", "AMM program ID")
	lowerTick := fs.Int("lower-tick", 0, "position lower tick")
	upperTick := fs.Int("upper-tick", 0, "position upper tick")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	log.Printf("🧱initializing the honorary fee-only position...")

	ctx := context.Background()
	solClient, err := sol.NewClient(ctx, *rpcEndpoint, "", 20)
	if err != nil {
		log.Fatalf("Failed to create solana client: %v", err)
	}
	payer := solana.MustPrivateKeyFromBase58(*payerKey)

	params := feerouter.InitializePositionParams{
		Pool: amm.PoolConfig{
			Pool:       pubkeyOrZero(*poolFlag),
			TokenAMint: pubkeyOrZero(*tokenAMint),
			TokenBMint: pubkeyOrZero(*tokenBMint),
			LowerTick:  int32(*lowerTick),
			UpperTick:  int32(*upperTick),
		},
		QuoteMint: pubkeyOrZero(*quoteMintFlag),
		VaultID:   pubkeyOrZero(*vaultID),
		Payer:     payer,
	}

	record, err := feerouter.InitializePosition(ctx, amm.NewMeteoraDammV2Adapter(solClient), pubkeyOrZero(*ammProgramID), params, logSink{})
	if err != nil {
		log.Fatalf("💥failed to initialize position: %v", err)
	}

	log.Printf("✅position initialized: pool=%s position=%s owner=%s base=%s quote=%s",
		record.Pool, record.Position, record.Owner, record.BaseMint, record.QuoteMint)
}

func runInitPolicy(args []string) {
	fs := flag.NewFlagSet("init-policy", flag.ExitOnError)
	stateFile := fs.String("state", "feerouter_state.json", "path to the local policy/global/day state file")
	authority := fs.String("authority", "", "authority allowed to update this policy")
	quoteMintFlag := fs.String("quote-mint", "", "the declared quote mint")
	investorShareCapBps := fs.Uint("investor-share-cap-bps", 8_000, "maximum investor share in basis points")
	dailyCap := fs.Uint64("daily-cap", 0, "daily payout cap in quote units, 0 for uncapped")
	minPayout := fs.Uint64("min-payout", 0, "minimum payout threshold, below which a payout is dust")
	y0 := fs.Uint64("y0", 0, "total investor allocation at TGE")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	policy, err := feerouter.InitializePolicy(feerouter.InitializePolicyParams{
		Authority:           pubkeyOrZero(*authority),
		QuoteMint:           pubkeyOrZero(*quoteMintFlag),
		InvestorShareCapBps: uint16(*investorShareCapBps),
		DailyCap:            *dailyCap,
		MinPayout:           *minPayout,
		Y0:                  *y0,
	})
	if err != nil {
		log.Fatalf("💥invalid policy: %v", err)
	}

	state, err := loadFileState(*stateFile)
	if err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}
	state.Policy = fromPolicy(policy)
	if err := saveFileState(*stateFile, state); err != nil {
		log.Fatalf("Failed to persist state: %v", err)
	}
	log.Printf("✅policy initialized for quote mint %s", policy.QuoteMint)
}

func runUpdatePolicy(args []string) {
	fs := flag.NewFlagSet("update-policy", flag.ExitOnError)
	stateFile := fs.String("state", "feerouter_state.json", "path to the local policy/global/day state file")
	caller := fs.String("caller", "", "the caller's public key, must match the policy's authority")
	investorShareCapBps := fs.Uint("investor-share-cap-bps", 8_000, "maximum investor share in basis points")
	dailyCap := fs.Uint64("daily-cap", 0, "daily payout cap in quote units, 0 for uncapped")
	minPayout := fs.Uint64("min-payout", 0, "minimum payout threshold, below which a payout is dust")
	y0 := fs.Uint64("y0", 0, "total investor allocation at TGE")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	state, err := loadFileState(*stateFile)
	if err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}
	current := toPolicy(state.Policy)

	updated, err := feerouter.UpdatePolicy(current, feerouter.UpdatePolicyParams{
		Caller:              pubkeyOrZero(*caller),
		InvestorShareCapBps: uint16(*investorShareCapBps),
		DailyCap:            *dailyCap,
		MinPayout:           *minPayout,
		Y0:                  *y0,
	}, logSink{})
	if err != nil {
		log.Fatalf("💥policy update rejected: %v", err)
	}

	state.Policy = fromPolicy(updated)
	if err := saveFileState(*stateFile, state); err != nil {
		log.Fatalf("Failed to persist state: %v", err)
	}
	log.Printf("✅policy updated for quote mint %s", updated.QuoteMint)
}

func runVanity(args []string) {
	fs := flag.NewFlagSet("vanity", flag.ExitOnError)
	prefix := fs.String("prefix", "", "desired vault-authority address prefix")
	suffix := fs.String("suffix", "", "desired vault-authority address suffix")
	concurrency := fs.Int("concurrency", 4, "number of concurrent search workers")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}
	if *prefix == "" && *suffix == "" {
		log.Fatalf("🧐vanity requires -prefix or -suffix")
	}

	log.Printf("⌛️searching for a vault authority keypair...")

	var (
		keyPair *utils.KeyPair
		err     error
	)
	if *prefix != "" {
		keyPair, err = utils.FindKeyPairWithPrefix(*prefix, *concurrency)
	} else {
		keyPair, err = utils.FindKeyPairWithSuffix(*suffix, *concurrency)
	}
	if err != nil {
		log.Fatalf("💥vanity search failed: %v", err)
	}

	log.Printf("✅found vault authority: %s", keyPair.PublicKey)
	log.Printf("🔒store this private key securely, it is never logged again: %s", keyPair.PrivateKey)
}
