package feerouter

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// InitializePolicyParams are the caller-supplied fields for a new Policy.
type InitializePolicyParams struct {
	Authority           solana.PublicKey
	QuoteMint           solana.PublicKey
	InvestorShareCapBps uint16
	DailyCap            uint64
	MinPayout           uint64
	Y0                  uint64
}

// InitializePolicy creates the Policy record for params.QuoteMint. It is
// authority-gated by construction: the caller provides the authority that
// will later be checked against UpdatePolicy requests.
func InitializePolicy(params InitializePolicyParams) (Policy, error) {
	if err := validatePolicyParams(params.InvestorShareCapBps, params.Y0, params.MinPayout); err != nil {
		return Policy{}, err
	}
	return Policy{
		Authority:           params.Authority,
		QuoteMint:           params.QuoteMint,
		InvestorShareCapBps: params.InvestorShareCapBps,
		DailyCap:            params.DailyCap,
		MinPayout:           params.MinPayout,
		Y0:                  params.Y0,
	}, nil
}

// UpdatePolicyParams are the mutable fields of an existing Policy.
type UpdatePolicyParams struct {
	Caller              solana.PublicKey
	InvestorShareCapBps uint16
	DailyCap            uint64
	MinPayout           uint64
	Y0                  uint64
}

// UpdatePolicy authority-gates and validates a policy mutation, returning
// the updated Policy. It never touches an in-flight DayState: DayState
// snapshots the policy values it needs at opening time (see
// PolicySnapshot), so a mid-day update only affects days that open after it.
func UpdatePolicy(current Policy, params UpdatePolicyParams, sink EventSink) (Policy, error) {
	if sink == nil {
		sink = NoopEventSink{}
	}
	if params.Caller != current.Authority {
		return Policy{}, ErrUnauthorizedUpdate
	}
	if err := validatePolicyParams(params.InvestorShareCapBps, params.Y0, params.MinPayout); err != nil {
		return Policy{}, err
	}
	current.InvestorShareCapBps = params.InvestorShareCapBps
	current.DailyCap = params.DailyCap
	current.MinPayout = params.MinPayout
	current.Y0 = params.Y0
	sink.Emit(PolicyUpdated{QuoteMint: current.QuoteMint})
	return current, nil
}

func validatePolicyParams(investorShareCapBps uint16, y0, minPayout uint64) error {
	if investorShareCapBps > BpsDenominator {
		return fmt.Errorf("%w: investor_share_cap_bps=%d exceeds %d", ErrPolicyParamOutOfRange, investorShareCapBps, BpsDenominator)
	}
	if y0 == 0 {
		return fmt.Errorf("%w: Y0 must be > 0", ErrPolicyParamOutOfRange)
	}
	// MinPayout >= 0 always holds for an unsigned type; minPayout is accepted
	// here purely so the signature documents the invariant at call sites.
	_ = minPayout
	return nil
}
