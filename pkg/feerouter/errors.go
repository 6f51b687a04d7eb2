package feerouter

import "errors"

// Configuration errors (C1, C3).
var (
	ErrQuoteMintMismatch     = errors.New("feerouter: pool does not contain the declared quote mint")
	ErrBaseFeeConfigRejected = errors.New("feerouter: pool configuration could earn base-side fees")
	ErrPolicyParamOutOfRange = errors.New("feerouter: policy parameter out of range")
	ErrUnauthorizedUpdate    = errors.New("feerouter: caller is not the policy authority")
)

// Gate errors (C4.4.1, C4.4.2).
var (
	ErrTooEarly         = errors.New("feerouter: day gate has not elapsed since the previous open")
	ErrDayAlreadyClosed = errors.New("feerouter: day is already closed")
	ErrClockRewind      = errors.New("feerouter: observed clock moved behind the last known day index")
	ErrPageOutOfOrder   = errors.New("feerouter: page cursor does not match the expected next cursor")
)

// Runtime errors (C2, C5).
var (
	ErrBaseFeeDetected    = errors.New("feerouter: fee claim returned a non-zero base amount")
	ErrArithmeticOverflow = errors.New("feerouter: intermediate computation does not fit in 64 bits")
	ErrDayClosed          = errors.New("feerouter: day state is closed and accepts no further mutation")
)

// External-adapter errors (C6).
var (
	ErrAMMFailure         = errors.New("feerouter: AMM adapter call failed")
	ErrVestingReadFailure = errors.New("feerouter: vesting adapter read failed")
	ErrTransferFailure    = errors.New("feerouter: token transfer failed")
)
