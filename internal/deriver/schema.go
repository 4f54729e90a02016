package deriver

import (
	"fmt"
	"strconv"
)

// Event files use aggressively short keys: a day of mainnet activity is
// hundreds of thousands of events and the files live forever in object
// storage. The key assignments here are part of the archive format and
// must never change.

// Pubkey is a base58 account address.
type Pubkey = string

// Uint64 is a u64 carried as a decimal string, so consumers without
// 64-bit-safe JSON numbers (browsers) can read it losslessly.
type Uint64 uint64

func (u Uint64) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, strconv.FormatUint(uint64(u), 10)), nil
}

func (u *Uint64) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("u64 must be a decimal string: %s", data)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("u64 must be a decimal string: %s", data)
	}
	*u = Uint64(v)
	return nil
}

// Uint128 is a u128 decimal string. Go has no native u128; values pass
// through derivation untouched, so an opaque string is enough.
type Uint128 string

// DecimalPrice is an arbitrary-precision decimal string. The scale
// comes from the decimals delta of the two mints involved.
type DecimalPrice string

// TokenProgram identifies which token program owns a mint.
type TokenProgram string

const (
	TokenProgramToken     TokenProgram = "t"
	TokenProgramToken2022 TokenProgram = "t2"
)

// TransferInfo describes one token movement. The transfer fee fields
// are present only for token-2022 transfers with a fee config.
type TransferInfo struct {
	Mint     Pubkey `json:"m"`
	Amount   Uint64 `json:"a"`
	Decimals uint8  `json:"d"`

	TransferFeeBps *uint16 `json:"tfb,omitempty"`
	TransferFeeMax *Uint64 `json:"tfm,omitempty"`
}

// AdaptiveFeeConstants mirrors the adaptive fee tier parameters.
type AdaptiveFeeConstants struct {
	FilterPeriod             uint16 `json:"fp"`
	DecayPeriod              uint16 `json:"dp"`
	ReductionFactor          uint16 `json:"rf"`
	AdaptiveFeeControlFactor uint32 `json:"afcf"`
	MaxVolatilityAccumulator uint32 `json:"mva"`
	TickGroupSize            uint16 `json:"tgs"`
	MajorSwapThresholdTicks  uint16 `json:"mstt"`
}

// AdaptiveFeeVariables mirrors the oracle's volatility tracking state.
type AdaptiveFeeVariables struct {
	LastReferenceUpdateTimestamp Uint64 `json:"lrut"`
	LastMajorSwapTimestamp       Uint64 `json:"lmst"`
	VolatilityReference          uint32 `json:"vr"`
	TickGroupIndexReference      int32  `json:"tgir"`
	VolatilityAccumulator        uint32 `json:"va"`
}

// PositionLockType is internally tagged under "n".
type PositionLockType struct {
	Name string `json:"n"`
}

var PositionLockTypePermanent = PositionLockType{Name: "p"}

// PositionType discriminates standalone and bundled positions.
type PositionType string

const (
	PositionTypePosition        PositionType = "p"
	PositionTypeBundledPosition PositionType = "bp"
)

// TradeDirection is the swap direction relative to the pool's mints.
type TradeDirection string

const (
	TradeDirectionAtoB TradeDirection = "ab"
	TradeDirectionBtoA TradeDirection = "ba"
)

// TradeMode reflects whether the swap amount fixed the input or output.
type TradeMode string

const (
	TradeModeExactInput  TradeMode = "ei"
	TradeModeExactOutput TradeMode = "eo"
)
