package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/chartbeacon/chartbeacon/internal/series"
	"github.com/chartbeacon/chartbeacon/internal/types"
	"github.com/chartbeacon/chartbeacon/pkg/errors"
)

// TrendFiltered follows the technical summary but refuses to sell while the
// close holds above EMA20, protecting open positions through intact uptrends.
type TrendFiltered struct {
	emaPeriod int
}

// NewTrendFiltered creates the strategy with the EMA20 uptrend filter.
func NewTrendFiltered() Strategy {
	return &TrendFiltered{emaPeriod: 20}
}

// Name returns the registry identifier.
func (s *TrendFiltered) Name() string {
	return "trend_filtered"
}

// Decide implements Strategy.
func (s *TrendFiltered) Decide(ctx Context) (Decision, error) {
	level := ctx.Level()
	if level.IsNone() {
		return Hold(), errors.Newf(errors.ErrCodeStrategyIndicatorInput,
			"trend_filtered: no summary level at bar %d", ctx.Index)
	}

	base := followLevel(level.Unwrap(), ctx.Portfolio)
	if base.Action != ActionSell {
		return base, nil
	}

	ema := emaValue(ctx, s.emaPeriod)
	if ema.IsSome() && ctx.Bar.Close > ema.Unwrap() {
		// uptrend intact, suppress the sell
		return Hold(), nil
	}

	return base, nil
}

// emaValue prefers the provider's EMA20 and falls back to computing it from
// the trailing closes.
func emaValue(ctx Context, period int) optional.Option[float64] {
	if reading := ctx.MovingAverage(types.MovingAverageEMA20); reading.IsSome() {
		return reading
	}

	return series.EMA(series.Closes(ctx.Bars[:ctx.Index+1]), period)
}
