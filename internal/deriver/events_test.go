package deriver

import (
	"encoding/json"
	"testing"
)

func mustMarshal(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestUint64StringRoundTrip(t *testing.T) {
	b, err := json.Marshal(Uint64(18446744073709551615))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"18446744073709551615"` {
		t.Errorf("got %s", b)
	}

	var u Uint64
	if err := json.Unmarshal(b, &u); err != nil {
		t.Fatal(err)
	}
	if u != 18446744073709551615 {
		t.Errorf("got %d", u)
	}

	if err := json.Unmarshal([]byte(`123`), &u); err == nil {
		t.Error("bare number accepted, want decimal string only")
	}
}

func TestTransferInfoEncoding(t *testing.T) {
	plain := TransferInfo{Mint: "M1", Amount: 500, Decimals: 6}
	if got := mustMarshal(t, plain); got != `{"m":"M1","a":"500","d":6}` {
		t.Errorf("plain transfer = %s", got)
	}

	bps := uint16(100)
	max := Uint64(9999)
	withFee := TransferInfo{Mint: "M2", Amount: 1, Decimals: 9, TransferFeeBps: &bps, TransferFeeMax: &max}
	if got := mustMarshal(t, withFee); got != `{"m":"M2","a":"1","d":9,"tfb":100,"tfm":"9999"}` {
		t.Errorf("fee transfer = %s", got)
	}
}

func TestAdaptiveFeeEncoding(t *testing.T) {
	constants := AdaptiveFeeConstants{
		FilterPeriod:             30,
		DecayPeriod:              600,
		ReductionFactor:          500,
		AdaptiveFeeControlFactor: 4000,
		MaxVolatilityAccumulator: 350000,
		TickGroupSize:            64,
		MajorSwapThresholdTicks:  32,
	}
	want := `{"fp":30,"dp":600,"rf":500,"afcf":4000,"mva":350000,"tgs":64,"mstt":32}`
	if got := mustMarshal(t, constants); got != want {
		t.Errorf("constants = %s, want %s", got, want)
	}

	variables := AdaptiveFeeVariables{
		LastReferenceUpdateTimestamp: 1704067200,
		LastMajorSwapTimestamp:       1704067100,
		VolatilityReference:          12,
		TickGroupIndexReference:      -5,
		VolatilityAccumulator:        34,
	}
	wantVars := `{"lrut":"1704067200","lmst":"1704067100","vr":12,"tgir":-5,"va":34}`
	if got := mustMarshal(t, variables); got != wantVars {
		t.Errorf("variables = %s, want %s", got, wantVars)
	}
}

func TestPoolInitializedEncoding(t *testing.T) {
	payload := PoolInitializedEventPayload{
		Origin:           PoolInitializedOriginInitializePool,
		TickSpacing:      64,
		SqrtPrice:        "79226673515401279992447579055",
		DecimalPrice:     "1.000000",
		Config:           "CFG",
		TokenMintA:       "MA",
		TokenMintB:       "MB",
		Funder:           "F",
		Whirlpool:        "W",
		FeeTier:          "FT",
		TokenProgramA:    TokenProgramToken,
		TokenProgramB:    TokenProgramToken2022,
		TokenDecimalsA:   6,
		TokenDecimalsB:   9,
		CurrentTickIndex: -443636,
		FeeRate:          3000,
		ProtocolFeeRate:  300,
	}
	want := `{"o":"ip","ts":64,"sp":"79226673515401279992447579055","dp":"1.000000",` +
		`"c":"CFG","tma":"MA","tmb":"MB","f":"F","w":"W","ft":"FT",` +
		`"tpa":"t","tpb":"t2","tda":6,"tdb":9,"cti":-443636,"fr":3000,"pfr":300}`
	if got := mustMarshal(t, payload); got != want {
		t.Errorf("pool initialized:\n got %s\nwant %s", got, want)
	}
}

func TestPositionOpenedEncodingOmitsBundleFields(t *testing.T) {
	mint := "PM"
	payload := PositionOpenedEventPayload{
		Origin:            PositionOpenedOriginOpenPosition,
		Whirlpool:         "W",
		Position:          "P",
		LowerTickIndex:    -128,
		UpperTickIndex:    128,
		LowerDecimalPrice: "0.98",
		UpperDecimalPrice: "1.02",
		PositionAuthority: "PA",
		PositionType:      PositionTypePosition,
		PositionMint:      &mint,
	}
	want := `{"o":"op","w":"W","p":"P","lti":-128,"uti":128,"ldp":"0.98","udp":"1.02",` +
		`"pa":"PA","pt":"p","pm":"PM"}`
	if got := mustMarshal(t, payload); got != want {
		t.Errorf("position opened:\n got %s\nwant %s", got, want)
	}
}

func TestPositionLockedEncoding(t *testing.T) {
	payload := PositionLockedEventPayload{
		Origin:            PositionLockedOriginLockPosition,
		Whirlpool:         "W",
		Position:          "P",
		LockType:          PositionLockTypePermanent,
		LockConfig:        "LC",
		LowerTickIndex:    -10,
		UpperTickIndex:    10,
		LowerDecimalPrice: "0.9",
		UpperDecimalPrice: "1.1",
		LockedLiquidity:   "340282366920938463463374607431768211455",
		PositionOwner:     "PO",
		PositionMint:      "PM",
	}
	want := `{"o":"lp","w":"W","p":"P","lt":{"n":"p"},"lc":"LC",` +
		`"lti":-10,"uti":10,"ldp":"0.9","udp":"1.1",` +
		`"ll":"340282366920938463463374607431768211455","po":"PO","pm":"PM"}`
	if got := mustMarshal(t, payload); got != want {
		t.Errorf("position locked:\n got %s\nwant %s", got, want)
	}
}

func TestTokenBadgeUpdatedEncoding(t *testing.T) {
	payload := TokenBadgeUpdatedEventPayload{
		Origin:     TokenBadgeUpdatedOriginSetTokenBadgeAttribute,
		Config:     "C",
		TokenMint:  "TM",
		TokenBadge: "TB",
		OldAttributeRequireNonTransferablePosition: false,
		NewAttributeRequireNonTransferablePosition: true,
	}
	want := `{"o":"stba","c":"C","tm":"TM","tb":"TB","oarntp":false,"narntp":true}`
	if got := mustMarshal(t, payload); got != want {
		t.Errorf("token badge updated:\n got %s\nwant %s", got, want)
	}
}

func TestAdaptiveFeeTierUpdatedOrigins(t *testing.T) {
	origins := map[AdaptiveFeeTierUpdatedEventOrigin]string{
		AdaptiveFeeTierUpdatedOriginSetInitializePoolAuthority:    "sipa",
		AdaptiveFeeTierUpdatedOriginSetDelegatedFeeAuthority:      "sdfa",
		AdaptiveFeeTierUpdatedOriginSetDefaultBaseFeeRate:         "sdbfr",
		AdaptiveFeeTierUpdatedOriginSetPresetAdaptiveFeeConstants: "spafc",
	}
	for origin, want := range origins {
		if string(origin) != want {
			t.Errorf("origin %q, want %q", origin, want)
		}
	}
}

type nopDeriver struct{}

func (nopDeriver) DeriveEvents(prevStatePath, tokenPath, transactionPath, eventOutPath string) error {
	return nil
}

func (nopDeriver) DeriveOHLCV(prevStatePath, tokenPath, eventPath, dailyOutPath, minutelyOutPath string) error {
	return nil
}

func TestDeriverRegistry(t *testing.T) {
	Register("test-nop", nopDeriver{})

	if _, err := Lookup("test-nop"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if _, err := Lookup("missing"); err == nil {
		t.Error("Lookup(missing) should fail")
	}

	found := false
	for _, name := range Registered() {
		if name == "test-nop" {
			found = true
		}
	}
	if !found {
		t.Errorf("Registered() = %v, missing test-nop", Registered())
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test-nop", nopDeriver{})
}
