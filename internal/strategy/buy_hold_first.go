package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/chartbeacon/chartbeacon/internal/series"
	"github.com/chartbeacon/chartbeacon/internal/types"
	"github.com/chartbeacon/chartbeacon/pkg/errors"
)

// BuyHoldFirst enters on the first bullish level and then sits on the
// position. It exits only under a severe breakdown, a STRONG_SELL level with
// the close more than 10% below SMA200, making it a near buy-and-hold with an
// escape hatch.
type BuyHoldFirst struct {
	smaPeriod     int
	breakdownDrop float64
}

// NewBuyHoldFirst creates the strategy with the SMA200 breakdown exit.
func NewBuyHoldFirst() Strategy {
	return &BuyHoldFirst{smaPeriod: 200, breakdownDrop: 0.10}
}

// Name returns the registry identifier.
func (s *BuyHoldFirst) Name() string {
	return "buy_hold_first"
}

// Decide implements Strategy.
func (s *BuyHoldFirst) Decide(ctx Context) (Decision, error) {
	level := ctx.Level()
	if level.IsNone() {
		return Hold(), errors.Newf(errors.ErrCodeStrategyIndicatorInput,
			"buy_hold_first: no summary level at bar %d", ctx.Index)
	}

	if !ctx.Portfolio.Holding() {
		if level.Unwrap().Bullish() {
			return BuyAll(string(level.Unwrap())), nil
		}

		return Hold(), nil
	}

	if level.Unwrap() != types.LevelStrongSell {
		return Hold(), nil
	}

	sma := s.smaValue(ctx)
	if sma.IsSome() && ctx.Bar.Close < (1-s.breakdownDrop)*sma.Unwrap() {
		return SellAll("BREAKDOWN_BELOW_SMA200"), nil
	}

	return Hold(), nil
}

func (s *BuyHoldFirst) smaValue(ctx Context) optional.Option[float64] {
	if reading := ctx.MovingAverage(types.MovingAverageSMA200); reading.IsSome() {
		return reading
	}

	return series.SMA(series.Closes(ctx.Bars[:ctx.Index+1]), s.smaPeriod)
}
