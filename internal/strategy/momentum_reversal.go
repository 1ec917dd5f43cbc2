package strategy

import (
	"github.com/chartbeacon/chartbeacon/internal/types"
	"github.com/chartbeacon/chartbeacon/pkg/errors"
)

// MomentumReversal trades only at RSI extremes, ignoring the aggregate
// level: buy deep oversold, sell deep overbought.
type MomentumReversal struct {
	buyBelow  float64
	sellAbove float64
}

// NewMomentumReversal creates the strategy with the extreme 20/80 bands.
func NewMomentumReversal() Strategy {
	return &MomentumReversal{buyBelow: 20, sellAbove: 80}
}

// Name returns the registry identifier.
func (s *MomentumReversal) Name() string {
	return "momentum_reversal"
}

// Decide implements Strategy.
func (s *MomentumReversal) Decide(ctx Context) (Decision, error) {
	rsi := ctx.Indicator(types.IndicatorTypeRSI)
	if rsi.IsNone() {
		return Hold(), errors.Newf(errors.ErrCodeStrategyIndicatorInput,
			"momentum_reversal: no RSI value at bar %d", ctx.Index)
	}

	value := rsi.Unwrap()

	switch {
	case value < s.buyBelow && !ctx.Portfolio.Holding():
		return BuyAll("RSI_EXTREME_OVERSOLD"), nil
	case value > s.sellAbove && ctx.Portfolio.Holding():
		return SellAll("RSI_EXTREME_OVERBOUGHT"), nil
	default:
		return Hold(), nil
	}
}
