package deriver

// One payload struct per event category. Each line of an event file is
// a single payload object; the "o" key carries the origin, the exact
// instruction the event was derived from, so no category ever loses
// information by merging its V1/V2 variants.

// ---------------------------------------------------------------------
// Traded

type TradedEventOrigin string

const (
	TradedOriginSwap            TradedEventOrigin = "s"
	TradedOriginSwapV2          TradedEventOrigin = "sv2"
	TradedOriginTwoHopSwapOne   TradedEventOrigin = "ths1"
	TradedOriginTwoHopSwapTwo   TradedEventOrigin = "ths2"
	TradedOriginTwoHopSwapV2One TradedEventOrigin = "thsv21"
	TradedOriginTwoHopSwapV2Two TradedEventOrigin = "thsv22"
)

type TradedEventPayload struct {
	Origin TradedEventOrigin `json:"o"`

	TradeDirection TradeDirection `json:"td"`
	TradeMode      TradeMode      `json:"tm"`

	TokenAuthority Pubkey `json:"ta"`
	Whirlpool      Pubkey `json:"w"`

	OldSqrtPrice        Uint128      `json:"osp"`
	NewSqrtPrice        Uint128      `json:"nsp"`
	OldCurrentTickIndex int32        `json:"octi"`
	NewCurrentTickIndex int32        `json:"ncti"`
	OldDecimalPrice     DecimalPrice `json:"odp"`
	NewDecimalPrice     DecimalPrice `json:"ndp"`

	FeeRate         uint16 `json:"fr"`
	ProtocolFeeRate uint16 `json:"pfr"`

	TransferIn  TransferInfo `json:"ti"`
	TransferOut TransferInfo `json:"to"`

	// adaptive fee enabled pools only
	OldAdaptiveFeeVariables *AdaptiveFeeVariables `json:"oafv,omitempty"`
	NewAdaptiveFeeVariables *AdaptiveFeeVariables `json:"nafv,omitempty"`
}

// ---------------------------------------------------------------------
// Liquidity

type LiquidityDepositedEventOrigin string

const (
	LiquidityDepositedOriginIncreaseLiquidity   LiquidityDepositedEventOrigin = "il"
	LiquidityDepositedOriginIncreaseLiquidityV2 LiquidityDepositedEventOrigin = "ilv2"
)

type LiquidityDepositedEventPayload struct {
	Origin LiquidityDepositedEventOrigin `json:"o"`

	LiquidityDelta Uint128 `json:"ld"`

	Whirlpool         Pubkey `json:"w"`
	PositionAuthority Pubkey `json:"pa"`
	Position          Pubkey `json:"p"`
	LowerTickArray    Pubkey `json:"lta"`
	UpperTickArray    Pubkey `json:"uta"`

	LowerTickIndex    int32        `json:"lti"`
	UpperTickIndex    int32        `json:"uti"`
	LowerDecimalPrice DecimalPrice `json:"ldp"`
	UpperDecimalPrice DecimalPrice `json:"udp"`

	OldPositionLiquidity Uint128 `json:"opl"`
	NewPositionLiquidity Uint128 `json:"npl"`

	TransferA TransferInfo `json:"ta"`
	TransferB TransferInfo `json:"tb"`

	OldWhirlpoolLiquidity     Uint128      `json:"owl"`
	NewWhirlpoolLiquidity     Uint128      `json:"nwl"`
	WhirlpoolSqrtPrice        Uint128      `json:"wsp"`
	WhirlpoolCurrentTickIndex int32        `json:"wcti"`
	WhirlpoolDecimalPrice     DecimalPrice `json:"wdp"`
}

type LiquidityWithdrawnEventOrigin string

const (
	LiquidityWithdrawnOriginDecreaseLiquidity   LiquidityWithdrawnEventOrigin = "dl"
	LiquidityWithdrawnOriginDecreaseLiquidityV2 LiquidityWithdrawnEventOrigin = "dlv2"
)

type LiquidityWithdrawnEventPayload struct {
	Origin LiquidityWithdrawnEventOrigin `json:"o"`

	LiquidityDelta Uint128 `json:"ld"`

	Whirlpool         Pubkey `json:"w"`
	PositionAuthority Pubkey `json:"pa"`
	Position          Pubkey `json:"p"`
	LowerTickArray    Pubkey `json:"lta"`
	UpperTickArray    Pubkey `json:"uta"`

	LowerTickIndex    int32        `json:"lti"`
	UpperTickIndex    int32        `json:"uti"`
	LowerDecimalPrice DecimalPrice `json:"ldp"`
	UpperDecimalPrice DecimalPrice `json:"udp"`

	OldPositionLiquidity Uint128 `json:"opl"`
	NewPositionLiquidity Uint128 `json:"npl"`

	TransferA TransferInfo `json:"ta"`
	TransferB TransferInfo `json:"tb"`

	OldWhirlpoolLiquidity     Uint128      `json:"owl"`
	NewWhirlpoolLiquidity     Uint128      `json:"nwl"`
	WhirlpoolSqrtPrice        Uint128      `json:"wsp"`
	WhirlpoolCurrentTickIndex int32        `json:"wcti"`
	WhirlpoolDecimalPrice     DecimalPrice `json:"wdp"`
}

type LiquidityPatchedEventOrigin string

const LiquidityPatchedOriginAdminIncreaseLiquidity LiquidityPatchedEventOrigin = "ail"

type LiquidityPatchedEventPayload struct {
	Origin LiquidityPatchedEventOrigin `json:"o"`

	LiquidityDelta Uint128 `json:"ld"`

	Whirlpool Pubkey `json:"w"`

	OldWhirlpoolLiquidity Uint128 `json:"owl"`
	NewWhirlpoolLiquidity Uint128 `json:"nwl"`
}

// ---------------------------------------------------------------------
// Pool

type PoolInitializedEventOrigin string

const (
	PoolInitializedOriginInitializePool                PoolInitializedEventOrigin = "ip"
	PoolInitializedOriginInitializePoolV2              PoolInitializedEventOrigin = "ipv2"
	PoolInitializedOriginInitializePoolWithAdaptiveFee PoolInitializedEventOrigin = "ipwaf"
)

type PoolInitializedEventPayload struct {
	Origin PoolInitializedEventOrigin `json:"o"`

	TickSpacing  uint16       `json:"ts"`
	SqrtPrice    Uint128      `json:"sp"`
	DecimalPrice DecimalPrice `json:"dp"`

	Config     Pubkey `json:"c"`
	TokenMintA Pubkey `json:"tma"`
	TokenMintB Pubkey `json:"tmb"`
	Funder     Pubkey `json:"f"`
	Whirlpool  Pubkey `json:"w"`
	FeeTier    Pubkey `json:"ft"`

	TokenProgramA TokenProgram `json:"tpa"`
	TokenProgramB TokenProgram `json:"tpb"`

	TokenDecimalsA uint8 `json:"tda"`
	TokenDecimalsB uint8 `json:"tdb"`

	CurrentTickIndex int32  `json:"cti"`
	FeeRate          uint16 `json:"fr"`
	ProtocolFeeRate  uint16 `json:"pfr"`

	// adaptive fee enabled pools only
	FeeTierIndex         *uint16               `json:"fti,omitempty"`
	TradeEnableTimestamp *Uint64               `json:"tet,omitempty"`
	AdaptiveFeeConstants *AdaptiveFeeConstants `json:"afc,omitempty"`
}

type PoolMigratedEventOrigin string

const PoolMigratedOriginMigrateRepurposeRewardAuthoritySpace PoolMigratedEventOrigin = "mrras"

type PoolMigratedEventPayload struct {
	Origin PoolMigratedEventOrigin `json:"o"`

	Whirlpool Pubkey `json:"w"`
}

type PoolFeeRateUpdatedEventOrigin string

const (
	PoolFeeRateUpdatedOriginSetFeeRate                        PoolFeeRateUpdatedEventOrigin = "sfr"
	PoolFeeRateUpdatedOriginSetFeeRateByDelegatedFeeAuthority PoolFeeRateUpdatedEventOrigin = "sfrbdfa"
)

type PoolFeeRateUpdatedEventPayload struct {
	Origin PoolFeeRateUpdatedEventOrigin `json:"o"`

	Config    Pubkey `json:"c"`
	Whirlpool Pubkey `json:"w"`

	OldFeeRate uint16 `json:"ofr"`
	NewFeeRate uint16 `json:"nfr"`
}

type PoolProtocolFeeRateUpdatedEventOrigin string

const PoolProtocolFeeRateUpdatedOriginSetProtocolFeeRate PoolProtocolFeeRateUpdatedEventOrigin = "spfr"

type PoolProtocolFeeRateUpdatedEventPayload struct {
	Origin PoolProtocolFeeRateUpdatedEventOrigin `json:"o"`

	Config    Pubkey `json:"c"`
	Whirlpool Pubkey `json:"w"`

	OldProtocolFeeRate uint16 `json:"opfr"`
	NewProtocolFeeRate uint16 `json:"npfr"`
}

// ---------------------------------------------------------------------
// Position lifecycle

type PositionOpenedEventOrigin string

const (
	PositionOpenedOriginOpenPosition                    PositionOpenedEventOrigin = "op"
	PositionOpenedOriginOpenPositionWithMetadata        PositionOpenedEventOrigin = "opwm"
	PositionOpenedOriginOpenBundledPosition             PositionOpenedEventOrigin = "obp"
	PositionOpenedOriginOpenPositionWithTokenExtensions PositionOpenedEventOrigin = "opwte"
)

type PositionOpenedEventPayload struct {
	Origin PositionOpenedEventOrigin `json:"o"`

	Whirlpool Pubkey `json:"w"`
	Position  Pubkey `json:"p"`

	LowerTickIndex    int32        `json:"lti"`
	UpperTickIndex    int32        `json:"uti"`
	LowerDecimalPrice DecimalPrice `json:"ldp"`
	UpperDecimalPrice DecimalPrice `json:"udp"`

	PositionAuthority Pubkey `json:"pa"`

	PositionType PositionType `json:"pt"`

	// standalone position only
	PositionMint *Pubkey `json:"pm,omitempty"`

	// bundled position only
	PositionBundleMint  *Pubkey `json:"pbm,omitempty"`
	PositionBundle      *Pubkey `json:"pb,omitempty"`
	PositionBundleIndex *uint16 `json:"pbi,omitempty"`
}

type PositionClosedEventOrigin string

const (
	PositionClosedOriginClosePosition                    PositionClosedEventOrigin = "cp"
	PositionClosedOriginCloseBundledPosition             PositionClosedEventOrigin = "cbp"
	PositionClosedOriginClosePositionWithTokenExtensions PositionClosedEventOrigin = "cpwte"
)

type PositionClosedEventPayload struct {
	Origin PositionClosedEventOrigin `json:"o"`

	Whirlpool Pubkey `json:"w"`
	Position  Pubkey `json:"p"`

	LowerTickIndex    int32        `json:"lti"`
	UpperTickIndex    int32        `json:"uti"`
	LowerDecimalPrice DecimalPrice `json:"ldp"`
	UpperDecimalPrice DecimalPrice `json:"udp"`

	PositionAuthority Pubkey `json:"pa"`

	PositionType PositionType `json:"pt"`

	// standalone position only
	PositionMint *Pubkey `json:"pm,omitempty"`

	// bundled position only
	PositionBundleMint  *Pubkey `json:"pbm,omitempty"`
	PositionBundle      *Pubkey `json:"pb,omitempty"`
	PositionBundleIndex *uint16 `json:"pbi,omitempty"`
}

type PositionRangeResetEventOrigin string

const PositionRangeResetOriginResetPositionRange PositionRangeResetEventOrigin = "rpr"

type PositionRangeResetEventPayload struct {
	Origin PositionRangeResetEventOrigin `json:"o"`

	Whirlpool Pubkey `json:"w"`
	Position  Pubkey `json:"p"`

	OldLowerTickIndex    int32        `json:"olti"`
	OldUpperTickIndex    int32        `json:"outi"`
	OldLowerDecimalPrice DecimalPrice `json:"oldp"`
	OldUpperDecimalPrice DecimalPrice `json:"oudp"`

	NewLowerTickIndex    int32        `json:"nlti"`
	NewUpperTickIndex    int32        `json:"nuti"`
	NewLowerDecimalPrice DecimalPrice `json:"nldp"`
	NewUpperDecimalPrice DecimalPrice `json:"nudp"`

	PositionAuthority Pubkey `json:"pa"`
}

type PositionLockedEventOrigin string

const PositionLockedOriginLockPosition PositionLockedEventOrigin = "lp"

type PositionLockedEventPayload struct {
	Origin PositionLockedEventOrigin `json:"o"`

	Whirlpool Pubkey `json:"w"`
	Position  Pubkey `json:"p"`

	LockType   PositionLockType `json:"lt"`
	LockConfig Pubkey           `json:"lc"`

	LowerTickIndex    int32        `json:"lti"`
	UpperTickIndex    int32        `json:"uti"`
	LowerDecimalPrice DecimalPrice `json:"ldp"`
	UpperDecimalPrice DecimalPrice `json:"udp"`

	LockedLiquidity Uint128 `json:"ll"`

	PositionOwner Pubkey `json:"po"`

	PositionMint Pubkey `json:"pm"`
}

type PositionLockedTransferredEventOrigin string

const PositionLockedTransferredOriginTransferLockedPosition PositionLockedTransferredEventOrigin = "tlp"

type PositionLockedTransferredEventPayload struct {
	Origin PositionLockedTransferredEventOrigin `json:"o"`

	Whirlpool Pubkey `json:"w"`
	Position  Pubkey `json:"p"`

	LockType   PositionLockType `json:"lt"`
	LockConfig Pubkey           `json:"lc"`

	LowerTickIndex    int32        `json:"lti"`
	UpperTickIndex    int32        `json:"uti"`
	LowerDecimalPrice DecimalPrice `json:"ldp"`
	UpperDecimalPrice DecimalPrice `json:"udp"`

	LockedLiquidity Uint128 `json:"ll"`

	OldPositionOwner Pubkey `json:"opo"`
	NewPositionOwner Pubkey `json:"npo"`

	PositionMint Pubkey `json:"pm"`
}

// ---------------------------------------------------------------------
// Harvest

type PositionFeesHarvestedEventOrigin string

const (
	PositionFeesHarvestedOriginCollectFees   PositionFeesHarvestedEventOrigin = "cf"
	PositionFeesHarvestedOriginCollectFeesV2 PositionFeesHarvestedEventOrigin = "cfv2"
)

type PositionFeesHarvestedEventPayload struct {
	Origin PositionFeesHarvestedEventOrigin `json:"o"`

	Whirlpool         Pubkey `json:"w"`
	Position          Pubkey `json:"p"`
	PositionAuthority Pubkey `json:"pa"`

	TransferA TransferInfo `json:"ta"`
	TransferB TransferInfo `json:"tb"`
}

type PositionRewardHarvestedEventOrigin string

const (
	PositionRewardHarvestedOriginCollectReward   PositionRewardHarvestedEventOrigin = "cr"
	PositionRewardHarvestedOriginCollectRewardV2 PositionRewardHarvestedEventOrigin = "crv2"
)

type PositionRewardHarvestedEventPayload struct {
	Origin PositionRewardHarvestedEventOrigin `json:"o"`

	Whirlpool         Pubkey `json:"w"`
	Position          Pubkey `json:"p"`
	PositionAuthority Pubkey `json:"pa"`

	RewardIndex uint8 `json:"ri"`

	TransferReward TransferInfo `json:"tr"`
}

type PositionHarvestUpdatedEventOrigin string

const PositionHarvestUpdatedOriginUpdateFeesAndRewards PositionHarvestUpdatedEventOrigin = "ufar"

type PositionHarvestUpdatedEventPayload struct {
	Origin PositionHarvestUpdatedEventOrigin `json:"o"`

	Whirlpool Pubkey `json:"w"`
	Position  Pubkey `json:"p"`
}

type ProtocolFeesCollectedEventOrigin string

const (
	ProtocolFeesCollectedOriginCollectProtocolFees   ProtocolFeesCollectedEventOrigin = "cpf"
	ProtocolFeesCollectedOriginCollectProtocolFeesV2 ProtocolFeesCollectedEventOrigin = "cpfv2"
)

type ProtocolFeesCollectedEventPayload struct {
	Origin ProtocolFeesCollectedEventOrigin `json:"o"`

	Config                       Pubkey `json:"c"`
	Whirlpool                    Pubkey `json:"w"`
	CollectProtocolFeesAuthority Pubkey `json:"cpfa"`

	TransferA TransferInfo `json:"ta"`
	TransferB TransferInfo `json:"tb"`
}

// ---------------------------------------------------------------------
// Position bundles

type PositionBundleInitializedEventOrigin string

const (
	PositionBundleInitializedOriginInitializePositionBundle             PositionBundleInitializedEventOrigin = "ipb"
	PositionBundleInitializedOriginInitializePositionBundleWithMetadata PositionBundleInitializedEventOrigin = "ipbwm"
)

type PositionBundleInitializedEventPayload struct {
	Origin PositionBundleInitializedEventOrigin `json:"o"`

	PositionBundle      Pubkey `json:"pb"`
	PositionBundleMint  Pubkey `json:"pbm"`
	PositionBundleOwner Pubkey `json:"pbo"`
}

type PositionBundleDeletedEventOrigin string

const PositionBundleDeletedOriginDeletePositionBundle PositionBundleDeletedEventOrigin = "dpb"

type PositionBundleDeletedEventPayload struct {
	Origin PositionBundleDeletedEventOrigin `json:"o"`

	PositionBundle      Pubkey `json:"pb"`
	PositionBundleMint  Pubkey `json:"pbm"`
	PositionBundleOwner Pubkey `json:"pbo"`
}

// ---------------------------------------------------------------------
// Rewards

type RewardInitializedEventOrigin string

const (
	RewardInitializedOriginInitializeReward   RewardInitializedEventOrigin = "ir"
	RewardInitializedOriginInitializeRewardV2 RewardInitializedEventOrigin = "irv2"
)

type RewardInitializedEventPayload struct {
	Origin RewardInitializedEventOrigin `json:"o"`

	Whirlpool Pubkey `json:"w"`

	RewardIndex uint8 `json:"ri"`

	RewardMint Pubkey `json:"rm"`

	RewardTokenProgram TokenProgram `json:"rtp"`

	RewardDecimal uint8 `json:"rd"`
}

type RewardAuthorityUpdatedEventOrigin string

const (
	RewardAuthorityUpdatedOriginSetRewardAuthority                 RewardAuthorityUpdatedEventOrigin = "sra"
	RewardAuthorityUpdatedOriginSetRewardAuthorityBySuperAuthority RewardAuthorityUpdatedEventOrigin = "srabsa"
)

type RewardAuthorityUpdatedEventPayload struct {
	Origin RewardAuthorityUpdatedEventOrigin `json:"o"`

	Whirlpool Pubkey `json:"w"`

	RewardIndex uint8 `json:"ri"`

	OldRewardAuthority Pubkey `json:"ora"`
	NewRewardAuthority Pubkey `json:"nra"`
}

type RewardEmissionsUpdatedEventOrigin string

const (
	RewardEmissionsUpdatedOriginSetRewardEmissions   RewardEmissionsUpdatedEventOrigin = "sre"
	RewardEmissionsUpdatedOriginSetRewardEmissionsV2 RewardEmissionsUpdatedEventOrigin = "srev2"
)

type RewardEmissionsUpdatedEventPayload struct {
	Origin RewardEmissionsUpdatedEventOrigin `json:"o"`

	Whirlpool Pubkey `json:"w"`

	RewardIndex    uint8  `json:"ri"`
	RewardMint     Pubkey `json:"rm"`
	RewardDecimals uint8  `json:"rd"`

	OldEmissionsPerSecondX64 Uint128 `json:"oeps"`
	NewEmissionsPerSecondX64 Uint128 `json:"neps"`
}

// ---------------------------------------------------------------------
// Config

type ConfigInitializedEventOrigin string

const ConfigInitializedOriginInitializeConfig ConfigInitializedEventOrigin = "ic"

type ConfigInitializedEventPayload struct {
	Origin ConfigInitializedEventOrigin `json:"o"`

	Config Pubkey `json:"c"`

	FeeAuthority                  Pubkey `json:"fa"`
	CollectProtocolFeesAuthority  Pubkey `json:"cpfa"`
	RewardEmissionsSuperAuthority Pubkey `json:"resa"`
	DefaultProtocolFeeRate        uint16 `json:"dpfr"`
}

type ConfigUpdatedEventOrigin string

const (
	ConfigUpdatedOriginSetCollectProtocolFeesAuthority  ConfigUpdatedEventOrigin = "scpfa"
	ConfigUpdatedOriginSetDefaultProtocolFeeRate        ConfigUpdatedEventOrigin = "sdpfr"
	ConfigUpdatedOriginSetFeeAuthority                  ConfigUpdatedEventOrigin = "sfa"
	ConfigUpdatedOriginSetRewardEmissionsSuperAuthority ConfigUpdatedEventOrigin = "sresa"
)

type ConfigUpdatedEventPayload struct {
	Origin ConfigUpdatedEventOrigin `json:"o"`

	Config Pubkey `json:"c"`

	OldFeeAuthority                  Pubkey `json:"ofa"`
	OldCollectProtocolFeesAuthority  Pubkey `json:"ocpfa"`
	OldRewardEmissionsSuperAuthority Pubkey `json:"oresa"`
	OldDefaultProtocolFeeRate        uint16 `json:"odpfr"`

	NewFeeAuthority                  Pubkey `json:"nfa"`
	NewCollectProtocolFeesAuthority  Pubkey `json:"ncpfa"`
	NewRewardEmissionsSuperAuthority Pubkey `json:"nresa"`
	NewDefaultProtocolFeeRate        uint16 `json:"ndpfr"`
}

type ConfigExtensionInitializedEventOrigin string

const ConfigExtensionInitializedOriginInitializeConfigExtension ConfigExtensionInitializedEventOrigin = "ice"

type ConfigExtensionInitializedEventPayload struct {
	Origin ConfigExtensionInitializedEventOrigin `json:"o"`

	Config          Pubkey `json:"c"`
	ConfigExtension Pubkey `json:"ce"`

	ConfigExtensionAuthority Pubkey `json:"cea"`
	TokenBadgeAuthority      Pubkey `json:"tba"`
}

type ConfigExtensionUpdatedEventOrigin string

const (
	ConfigExtensionUpdatedOriginSetConfigExtensionAuthority ConfigExtensionUpdatedEventOrigin = "scea"
	ConfigExtensionUpdatedOriginSetTokenBadgeAuthority      ConfigExtensionUpdatedEventOrigin = "stba"
)

type ConfigExtensionUpdatedEventPayload struct {
	Origin ConfigExtensionUpdatedEventOrigin `json:"o"`

	Config          Pubkey `json:"c"`
	ConfigExtension Pubkey `json:"ce"`

	OldConfigExtensionAuthority Pubkey `json:"ocea"`
	NewConfigExtensionAuthority Pubkey `json:"ncea"`

	OldTokenBadgeAuthority Pubkey `json:"otba"`
	NewTokenBadgeAuthority Pubkey `json:"ntba"`
}

// ---------------------------------------------------------------------
// Fee tiers

type FeeTierInitializedEventOrigin string

const FeeTierInitializedOriginInitializeFeeTier FeeTierInitializedEventOrigin = "ift"

type FeeTierInitializedEventPayload struct {
	Origin FeeTierInitializedEventOrigin `json:"o"`

	Config      Pubkey `json:"c"`
	TickSpacing uint16 `json:"ts"`
	FeeTier     Pubkey `json:"ft"`

	DefaultFeeRate uint16 `json:"dfr"`
}

type FeeTierUpdatedEventOrigin string

const FeeTierUpdatedOriginSetDefaultFeeRate FeeTierUpdatedEventOrigin = "sdfr"

type FeeTierUpdatedEventPayload struct {
	Origin FeeTierUpdatedEventOrigin `json:"o"`

	Config      Pubkey `json:"c"`
	TickSpacing uint16 `json:"ts"`
	FeeTier     Pubkey `json:"ft"`

	OldDefaultFeeRate uint16 `json:"odfr"`
	NewDefaultFeeRate uint16 `json:"ndfr"`
}

type AdaptiveFeeTierInitializedEventOrigin string

const AdaptiveFeeTierInitializedOriginInitializeAdaptiveFeeTier AdaptiveFeeTierInitializedEventOrigin = "iaft"

type AdaptiveFeeTierInitializedEventPayload struct {
	Origin AdaptiveFeeTierInitializedEventOrigin `json:"o"`

	Config Pubkey `json:"c"`

	AdaptiveFeeTier Pubkey `json:"aft"`

	FeeTierIndex uint16 `json:"fti"`

	TickSpacing uint16 `json:"ts"`

	InitializePoolAuthority Pubkey `json:"ipa"`
	DelegatedFeeAuthority   Pubkey `json:"dfa"`

	DefaultBaseFeeRate uint16 `json:"dbfr"`

	AdaptiveFeeConstants AdaptiveFeeConstants `json:"afc"`
}

type AdaptiveFeeTierUpdatedEventOrigin string

const (
	AdaptiveFeeTierUpdatedOriginSetInitializePoolAuthority    AdaptiveFeeTierUpdatedEventOrigin = "sipa"
	AdaptiveFeeTierUpdatedOriginSetDelegatedFeeAuthority      AdaptiveFeeTierUpdatedEventOrigin = "sdfa"
	AdaptiveFeeTierUpdatedOriginSetDefaultBaseFeeRate         AdaptiveFeeTierUpdatedEventOrigin = "sdbfr"
	AdaptiveFeeTierUpdatedOriginSetPresetAdaptiveFeeConstants AdaptiveFeeTierUpdatedEventOrigin = "spafc"
)

type AdaptiveFeeTierUpdatedEventPayload struct {
	Origin AdaptiveFeeTierUpdatedEventOrigin `json:"o"`

	Config Pubkey `json:"c"`

	AdaptiveFeeTier Pubkey `json:"aft"`

	FeeTierIndex uint16 `json:"fti"`

	TickSpacing uint16 `json:"ts"`

	OldInitializePoolAuthority Pubkey `json:"oipa"`
	NewInitializePoolAuthority Pubkey `json:"nipa"`

	OldDelegatedFeeAuthority Pubkey `json:"odfa"`
	NewDelegatedFeeAuthority Pubkey `json:"ndfa"`

	OldDefaultBaseFeeRate uint16 `json:"odbfr"`
	NewDefaultBaseFeeRate uint16 `json:"ndbfr"`

	OldAdaptiveFeeConstants AdaptiveFeeConstants `json:"oafc"`
	NewAdaptiveFeeConstants AdaptiveFeeConstants `json:"nafc"`
}

// ---------------------------------------------------------------------
// Tick arrays

type TickArrayInitializedEventOrigin string

const (
	TickArrayInitializedOriginInitializeTickArray        TickArrayInitializedEventOrigin = "ita"
	TickArrayInitializedOriginInitializeDynamicTickArray TickArrayInitializedEventOrigin = "idta"
)

type TickArrayInitializedEventPayload struct {
	Origin TickArrayInitializedEventOrigin `json:"o"`

	Whirlpool      Pubkey `json:"w"`
	StartTickIndex int32  `json:"sti"`
	TickArray      Pubkey `json:"ta"`
}

// ---------------------------------------------------------------------
// Token badges

type TokenBadgeInitializedEventOrigin string

const TokenBadgeInitializedOriginInitializeTokenBadge TokenBadgeInitializedEventOrigin = "itb"

type TokenBadgeInitializedEventPayload struct {
	Origin TokenBadgeInitializedEventOrigin `json:"o"`

	Config          Pubkey `json:"c"`
	ConfigExtension Pubkey `json:"ce"`

	TokenMint  Pubkey `json:"tm"`
	TokenBadge Pubkey `json:"tb"`
}

type TokenBadgeDeletedEventOrigin string

const TokenBadgeDeletedOriginDeleteTokenBadge TokenBadgeDeletedEventOrigin = "dtb"

type TokenBadgeDeletedEventPayload struct {
	Origin TokenBadgeDeletedEventOrigin `json:"o"`

	Config          Pubkey `json:"c"`
	ConfigExtension Pubkey `json:"ce"`

	TokenMint  Pubkey `json:"tm"`
	TokenBadge Pubkey `json:"tb"`
}

type TokenBadgeUpdatedEventOrigin string

const TokenBadgeUpdatedOriginSetTokenBadgeAttribute TokenBadgeUpdatedEventOrigin = "stba"

type TokenBadgeUpdatedEventPayload struct {
	Origin TokenBadgeUpdatedEventOrigin `json:"o"`

	Config Pubkey `json:"c"`

	TokenMint Pubkey `json:"tm"`

	TokenBadge Pubkey `json:"tb"`

	OldAttributeRequireNonTransferablePosition bool `json:"oarntp"`
	NewAttributeRequireNonTransferablePosition bool `json:"narntp"`
}

// ---------------------------------------------------------------------
// Program

type ProgramDeployedEventOrigin string

const ProgramDeployedOriginProgramDeploy ProgramDeployedEventOrigin = "pd"

type ProgramDeployedEventPayload struct {
	Origin ProgramDeployedEventOrigin `json:"o"`
}
