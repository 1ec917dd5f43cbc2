package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/chartbeacon/chartbeacon/internal/series"
	"github.com/chartbeacon/chartbeacon/internal/types"
	"github.com/chartbeacon/chartbeacon/pkg/errors"
)

// ADXFiltered follows the technical summary only while ADX(14) signals a
// trending regime. Ranging markets produce no trades at all.
type ADXFiltered struct {
	period    int
	threshold float64
}

// NewADXFiltered creates the strategy with the standard 14-bar period and
// trend threshold 20.
func NewADXFiltered() Strategy {
	return &ADXFiltered{period: 14, threshold: 20}
}

// Name returns the registry identifier.
func (s *ADXFiltered) Name() string {
	return "adx_filtered"
}

// Decide implements Strategy.
func (s *ADXFiltered) Decide(ctx Context) (Decision, error) {
	adx := adxValue(ctx, s.period)
	if adx.IsNone() {
		return Hold(), errors.Newf(errors.ErrCodeStrategyIndicatorInput,
			"adx_filtered: no ADX value at bar %d", ctx.Index)
	}

	if adx.Unwrap() < s.threshold {
		return Hold(), nil
	}

	level := ctx.Level()
	if level.IsNone() {
		return Hold(), errors.Newf(errors.ErrCodeStrategyIndicatorInput,
			"adx_filtered: no summary level at bar %d", ctx.Index)
	}

	return followLevel(level.Unwrap(), ctx.Portfolio), nil
}

// adxValue prefers the provider's ADX reading and falls back to computing
// the directional movement system from the trailing bars.
func adxValue(ctx Context, period int) optional.Option[float64] {
	if reading := ctx.Indicator(types.IndicatorTypeADX); reading.IsSome() {
		return reading
	}

	dm := series.ADX(ctx.Bars[:ctx.Index+1], period)
	if dm.IsNone() {
		return optional.None[float64]()
	}

	return optional.Some(dm.Unwrap().ADX)
}
