package strategy

import (
	"github.com/chartbeacon/chartbeacon/internal/types"
	"github.com/chartbeacon/chartbeacon/pkg/errors"
)

// RSI trades the classic 30/70 bands on RSI(14) alone, ignoring every other
// indicator.
type RSI struct {
	lower float64
	upper float64
}

// NewRSI creates the strategy with the standard 30/70 thresholds.
func NewRSI() Strategy {
	return &RSI{lower: 30, upper: 70}
}

// Name returns the registry identifier.
func (s *RSI) Name() string {
	return "rsi"
}

// Decide implements Strategy.
func (s *RSI) Decide(ctx Context) (Decision, error) {
	rsi := ctx.Indicator(types.IndicatorTypeRSI)
	if rsi.IsNone() {
		return Hold(), errors.Newf(errors.ErrCodeStrategyIndicatorInput,
			"rsi: no RSI value at bar %d", ctx.Index)
	}

	value := rsi.Unwrap()

	switch {
	case value < s.lower && !ctx.Portfolio.Holding():
		return BuyAll("RSI_OVERSOLD"), nil
	case value > s.upper && ctx.Portfolio.Holding():
		return SellAll("RSI_OVERBOUGHT"), nil
	default:
		return Hold(), nil
	}
}
