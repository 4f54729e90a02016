// Package whirlpool defines the closed set of decoded on-chain program
// instructions. Decoding validates the variant name against the full
// set; an unknown name is always an error, never a passthrough.
package whirlpool

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// DecodedInstruction is one typed instruction row read from the
// per-variant views, identified by its packed txid and in-transaction
// order. Payload keeps the variant's JSON shape (keyX / dataX /
// transferX fields) untouched for the executor and the artifacts.
type DecodedInstruction struct {
	Txid    uint64
	Order   uint8
	Name    string
	Payload json.RawMessage
}

// Variant names, lowerCamel as emitted by the instruction views.
const (
	NameAdminIncreaseLiquidity                = "adminIncreaseLiquidity"
	NameCloseBundledPosition                  = "closeBundledPosition"
	NameClosePosition                         = "closePosition"
	NameClosePositionWithTokenExtensions      = "closePositionWithTokenExtensions"
	NameCollectFees                           = "collectFees"
	NameCollectFeesV2                         = "collectFeesV2"
	NameCollectProtocolFees                   = "collectProtocolFees"
	NameCollectProtocolFeesV2                 = "collectProtocolFeesV2"
	NameCollectReward                         = "collectReward"
	NameCollectRewardV2                       = "collectRewardV2"
	NameDecreaseLiquidity                     = "decreaseLiquidity"
	NameDecreaseLiquidityV2                   = "decreaseLiquidityV2"
	NameDeletePositionBundle                  = "deletePositionBundle"
	NameDeleteTokenBadge                      = "deleteTokenBadge"
	NameIncreaseLiquidity                     = "increaseLiquidity"
	NameIncreaseLiquidityV2                   = "increaseLiquidityV2"
	NameInitializeAdaptiveFeeTier             = "initializeAdaptiveFeeTier"
	NameInitializeConfig                      = "initializeConfig"
	NameInitializeConfigExtension             = "initializeConfigExtension"
	NameInitializeFeeTier                     = "initializeFeeTier"
	NameInitializePool                        = "initializePool"
	NameInitializePoolV2                      = "initializePoolV2"
	NameInitializePoolWithAdaptiveFee         = "initializePoolWithAdaptiveFee"
	NameInitializePositionBundle              = "initializePositionBundle"
	NameInitializePositionBundleWithMetadata  = "initializePositionBundleWithMetadata"
	NameInitializeReward                      = "initializeReward"
	NameInitializeRewardV2                    = "initializeRewardV2"
	NameInitializeTickArray                   = "initializeTickArray"
	NameInitializeTokenBadge                  = "initializeTokenBadge"
	NameLockPosition                          = "lockPosition"
	NameMigrateRepurposeRewardAuthoritySpace  = "migrateRepurposeRewardAuthoritySpace"
	NameOpenBundledPosition                   = "openBundledPosition"
	NameOpenPosition                          = "openPosition"
	NameOpenPositionWithMetadata              = "openPositionWithMetadata"
	NameOpenPositionWithTokenExtensions       = "openPositionWithTokenExtensions"
	NameProgramDeploy                         = "programDeploy"
	NameResetPositionRange                    = "resetPositionRange"
	NameSetCollectProtocolFeesAuthority       = "setCollectProtocolFeesAuthority"
	NameSetConfigExtensionAuthority           = "setConfigExtensionAuthority"
	NameSetDefaultFeeRate                     = "setDefaultFeeRate"
	NameSetDefaultProtocolFeeRate             = "setDefaultProtocolFeeRate"
	NameSetDelegatedFeeAuthority              = "setDelegatedFeeAuthority"
	NameSetFeeAuthority                       = "setFeeAuthority"
	NameSetFeeRate                            = "setFeeRate"
	NameSetFeeRateByDelegatedFeeAuthority     = "setFeeRateByDelegatedFeeAuthority"
	NameSetInitializePoolAuthority            = "setInitializePoolAuthority"
	NameSetPresetAdaptiveFeeConstants         = "setPresetAdaptiveFeeConstants"
	NameSetProtocolFeeRate                    = "setProtocolFeeRate"
	NameSetRewardAuthority                    = "setRewardAuthority"
	NameSetRewardAuthorityBySuperAuthority    = "setRewardAuthorityBySuperAuthority"
	NameSetRewardEmissions                    = "setRewardEmissions"
	NameSetRewardEmissionsSuperAuthority      = "setRewardEmissionsSuperAuthority"
	NameSetRewardEmissionsV2                  = "setRewardEmissionsV2"
	NameSetTokenBadgeAttribute                = "setTokenBadgeAttribute"
	NameSetTokenBadgeAuthority                = "setTokenBadgeAuthority"
	NameSwap                                  = "swap"
	NameSwapV2                                = "swapV2"
	NameTransferLockedPosition                = "transferLockedPosition"
	NameTwoHopSwap                            = "twoHopSwap"
	NameTwoHopSwapV2                          = "twoHopSwapV2"
	NameUpdateFeesAndRewards                  = "updateFeesAndRewards"
)

// names lists every variant once, in view order. The order here is the
// order of the UNION ALL branches in the reader's instruction scan.
var names = []string{
	NameProgramDeploy,
	NameAdminIncreaseLiquidity,
	NameCloseBundledPosition,
	NameClosePosition,
	NameCollectFees,
	NameCollectProtocolFees,
	NameCollectReward,
	NameDecreaseLiquidity,
	NameDeletePositionBundle,
	NameIncreaseLiquidity,
	NameInitializeConfig,
	NameInitializeFeeTier,
	NameInitializePool,
	NameInitializePositionBundle,
	NameInitializePositionBundleWithMetadata,
	NameInitializeReward,
	NameInitializeTickArray,
	NameOpenBundledPosition,
	NameOpenPosition,
	NameOpenPositionWithMetadata,
	NameSetCollectProtocolFeesAuthority,
	NameSetDefaultFeeRate,
	NameSetDefaultProtocolFeeRate,
	NameSetFeeAuthority,
	NameSetFeeRate,
	NameSetProtocolFeeRate,
	NameSetRewardAuthority,
	NameSetRewardAuthorityBySuperAuthority,
	NameSetRewardEmissions,
	NameSetRewardEmissionsSuperAuthority,
	NameSwap,
	NameTwoHopSwap,
	NameUpdateFeesAndRewards,
	NameCollectFeesV2,
	NameCollectProtocolFeesV2,
	NameCollectRewardV2,
	NameDecreaseLiquidityV2,
	NameIncreaseLiquidityV2,
	NameSwapV2,
	NameTwoHopSwapV2,
	NameInitializePoolV2,
	NameInitializeRewardV2,
	NameSetRewardEmissionsV2,
	NameInitializeConfigExtension,
	NameInitializeTokenBadge,
	NameDeleteTokenBadge,
	NameSetConfigExtensionAuthority,
	NameSetTokenBadgeAuthority,
	NameSetTokenBadgeAttribute,
	NameOpenPositionWithTokenExtensions,
	NameClosePositionWithTokenExtensions,
	NameLockPosition,
	NameResetPositionRange,
	NameTransferLockedPosition,
	NameInitializeAdaptiveFeeTier,
	NameInitializePoolWithAdaptiveFee,
	NameSetInitializePoolAuthority,
	NameSetDelegatedFeeAuthority,
	NameSetFeeRateByDelegatedFeeAuthority,
	NameSetPresetAdaptiveFeeConstants,
	NameMigrateRepurposeRewardAuthoritySpace,
}

var known = func() map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}()

// Names returns the closed variant set in view order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// ViewName returns the per-variant view name for a variant, e.g.
// "vwJsonIxsSwap" for "swap".
func ViewName(name string) string {
	return "vwJsonIxs" + upperFirst(name)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// Decode validates a row from an instruction view against the closed
// variant set. An unknown name means the view union and this package
// disagree, which is fatal upstream.
func Decode(ixTxid uint64, order uint8, name string, payload []byte) (DecodedInstruction, error) {
	if _, ok := known[name]; !ok {
		return DecodedInstruction{}, fmt.Errorf("unknown instruction variant %q (txid=%d)", name, ixTxid)
	}
	if !json.Valid(payload) {
		return DecodedInstruction{}, fmt.Errorf("invalid payload json for %s (txid=%d)", name, ixTxid)
	}
	return DecodedInstruction{
		Txid:    ixTxid,
		Order:   order,
		Name:    name,
		Payload: json.RawMessage(payload),
	}, nil
}

// IsProgramDeploy reports whether the instruction replaces the program
// binary rather than mutating accounts.
func (ix DecodedInstruction) IsProgramDeploy() bool {
	return ix.Name == NameProgramDeploy
}

// ProgramDeployPayload carries the new program binary, base64 encoded
// in the view payload.
type ProgramDeployPayload struct {
	ProgramData string `json:"dataProgramData"`
}

// ProgramData decodes the program binary from a programDeploy payload.
func (ix DecodedInstruction) ProgramData() ([]byte, error) {
	if !ix.IsProgramDeploy() {
		return nil, fmt.Errorf("instruction %s is not a program deploy", ix.Name)
	}
	var p ProgramDeployPayload
	if err := json.Unmarshal(ix.Payload, &p); err != nil {
		return nil, fmt.Errorf("decode programDeploy payload: %w", err)
	}
	data, err := base64.StdEncoding.DecodeString(p.ProgramData)
	if err != nil {
		return nil, fmt.Errorf("decode program data: %w", err)
	}
	return data, nil
}
