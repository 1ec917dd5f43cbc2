package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/chartbeacon/chartbeacon/internal/types"
	"github.com/chartbeacon/chartbeacon/pkg/errors"
)

// MACDCross trades signal-line crossovers. A trade fires only on the bar where
// the MACD-minus-signal difference changes sign, not while it merely stays on
// one side, so the strategy is edge triggered.
type MACDCross struct{}

// NewMACDCross creates the crossover strategy.
func NewMACDCross() Strategy {
	return &MACDCross{}
}

// Name returns the registry identifier.
func (s *MACDCross) Name() string {
	return "macd"
}

// Decide implements Strategy.
func (s *MACDCross) Decide(ctx Context) (Decision, error) {
	cur, ok := macdDiff(ctx.Indicator(types.IndicatorTypeMACD), ctx.Indicator(types.IndicatorTypeMACDSignal))
	if !ok {
		return Hold(), errors.Newf(errors.ErrCodeStrategyIndicatorInput,
			"macd: missing MACD inputs at bar %d", ctx.Index)
	}

	prev, ok := macdDiff(ctx.PrevIndicator(types.IndicatorTypeMACD), ctx.PrevIndicator(types.IndicatorTypeMACDSignal))
	if !ok {
		// First decidable bar has no previous diff to cross from.
		return Hold(), nil
	}

	switch {
	case prev <= 0 && cur > 0 && !ctx.Portfolio.Holding():
		return BuyAll("MACD_BULLISH_CROSS"), nil
	case prev >= 0 && cur < 0 && ctx.Portfolio.Holding():
		return SellAll("MACD_BEARISH_CROSS"), nil
	default:
		return Hold(), nil
	}
}

func macdDiff(macd, signal optional.Option[float64]) (float64, bool) {
	if macd.IsNone() || signal.IsNone() {
		return 0, false
	}

	return macd.Unwrap() - signal.Unwrap(), true
}
