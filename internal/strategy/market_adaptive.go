package strategy

// MarketAdaptive switches behavior with the trend regime: trend-filtered
// summary following while ADX signals a trend, momentum reversal in ranging
// tape where level-following whipsaws.
type MarketAdaptive struct {
	adxPeriod    int
	adxThreshold float64
	trending     Strategy
	ranging      Strategy
}

// NewMarketAdaptive creates the strategy with the ADX 25 regime split.
func NewMarketAdaptive() Strategy {
	return &MarketAdaptive{
		adxPeriod:    14,
		adxThreshold: 25,
		trending:     NewTrendFiltered(),
		ranging:      NewMomentumReversal(),
	}
}

// Name returns the registry identifier.
func (s *MarketAdaptive) Name() string {
	return "market_adaptive"
}

// Decide implements Strategy.
func (s *MarketAdaptive) Decide(ctx Context) (Decision, error) {
	adx := adxValue(ctx, s.adxPeriod)
	if adx.IsSome() && adx.Unwrap() >= s.adxThreshold {
		return s.trending.Decide(ctx)
	}

	return s.ranging.Decide(ctx)
}
