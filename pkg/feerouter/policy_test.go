package feerouter

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestInitializePolicy(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	quote := solana.NewWallet().PublicKey()

	policy, err := InitializePolicy(InitializePolicyParams{
		Authority:           authority,
		QuoteMint:           quote,
		InvestorShareCapBps: 8_000,
		DailyCap:            0,
		MinPayout:           100,
		Y0:                  1_000_000,
	})
	require.NoError(t, err)
	require.Equal(t, authority, policy.Authority)
	require.Equal(t, uint16(8_000), policy.InvestorShareCapBps)
}

func TestInitializePolicyRejectsCapAboveDenominator(t *testing.T) {
	_, err := InitializePolicy(InitializePolicyParams{
		InvestorShareCapBps: 10_001,
		Y0:                  1,
	})
	require.ErrorIs(t, err, ErrPolicyParamOutOfRange)
}

func TestInitializePolicyRejectsZeroY0(t *testing.T) {
	_, err := InitializePolicy(InitializePolicyParams{
		InvestorShareCapBps: 1_000,
		Y0:                  0,
	})
	require.ErrorIs(t, err, ErrPolicyParamOutOfRange)
}

func TestUpdatePolicyRequiresAuthority(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	stranger := solana.NewWallet().PublicKey()
	policy, err := InitializePolicy(InitializePolicyParams{Authority: authority, Y0: 1_000_000, InvestorShareCapBps: 5_000})
	require.NoError(t, err)

	_, err = UpdatePolicy(policy, UpdatePolicyParams{Caller: stranger, Y0: 1_000_000, InvestorShareCapBps: 6_000}, NoopEventSink{})
	require.ErrorIs(t, err, ErrUnauthorizedUpdate)
}

func TestUpdatePolicyAppliesNewValues(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	policy, err := InitializePolicy(InitializePolicyParams{Authority: authority, Y0: 1_000_000, InvestorShareCapBps: 5_000})
	require.NoError(t, err)

	updated, err := UpdatePolicy(policy, UpdatePolicyParams{
		Caller:              authority,
		InvestorShareCapBps: 9_000,
		DailyCap:            500_000,
		MinPayout:           50,
		Y0:                  2_000_000,
	}, NoopEventSink{})
	require.NoError(t, err)
	require.Equal(t, uint16(9_000), updated.InvestorShareCapBps)
	require.Equal(t, uint64(500_000), updated.DailyCap)
	require.Equal(t, uint64(2_000_000), updated.Y0)
}

func TestUpdatePolicyEmitsPolicyUpdated(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	quote := solana.NewWallet().PublicKey()
	policy, err := InitializePolicy(InitializePolicyParams{Authority: authority, QuoteMint: quote, Y0: 1_000_000, InvestorShareCapBps: 5_000})
	require.NoError(t, err)

	sink := &recordingSink{}
	_, err = UpdatePolicy(policy, UpdatePolicyParams{Caller: authority, Y0: 1_000_000, InvestorShareCapBps: 6_000}, sink)
	require.NoError(t, err)

	require.Len(t, sink.events, 1)
	emitted, ok := sink.events[0].(PolicyUpdated)
	require.True(t, ok)
	require.Equal(t, quote, emitted.QuoteMint)
}

func TestPolicySnapshotIsIndependentOfLiveUpdates(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	policy, err := InitializePolicy(InitializePolicyParams{Authority: authority, Y0: 1_000_000, InvestorShareCapBps: 5_000, MinPayout: 100})
	require.NoError(t, err)

	day := DayState{Policy: policy.snapshot()}

	_, err = UpdatePolicy(policy, UpdatePolicyParams{Caller: authority, Y0: 9_999, InvestorShareCapBps: 1, MinPayout: 1}, NoopEventSink{})
	require.NoError(t, err)

	// The snapshot taken at day-open time must not observe the later update.
	require.Equal(t, uint64(1_000_000), day.Policy.Y0)
	require.Equal(t, uint16(5_000), day.Policy.InvestorShareCapBps)
}
