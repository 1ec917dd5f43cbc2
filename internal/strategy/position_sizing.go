package strategy

import (
	"math"

	"github.com/moznion/go-optional"

	"github.com/chartbeacon/chartbeacon/internal/series"
	"github.com/chartbeacon/chartbeacon/internal/types"
	"github.com/chartbeacon/chartbeacon/pkg/errors"
)

// PositionSizing trades the technical summary direction with fractional
// sizing: the fraction grows with how far the agreeing count sits past the
// strong-level threshold and shrinks with recent ATR-normalized volatility.
type PositionSizing struct {
	atrPeriod int
	targetVol float64
	floorVol  float64
}

// NewPositionSizing creates the strategy with a 14-bar ATR window and a 2%
// volatility target.
func NewPositionSizing() Strategy {
	return &PositionSizing{
		atrPeriod: 14,
		targetVol: 0.02,
		floorVol:  0.01,
	}
}

// Name returns the registry identifier.
func (s *PositionSizing) Name() string {
	return "position_sizing"
}

// Decide implements Strategy.
func (s *PositionSizing) Decide(ctx Context) (Decision, error) {
	summary := ctx.Summary()
	if summary.IsNone() {
		return Hold(), errors.Newf(errors.ErrCodeStrategyIndicatorInput,
			"position_sizing: no summary at bar %d", ctx.Index)
	}

	sm := summary.Unwrap()
	scale := s.volatilityScale(ctx)

	switch {
	case sm.Level.Bullish() && !ctx.Portfolio.Holding():
		return BuyFraction(sizeFraction(sm.BuyCount, sm.Total(), scale), string(sm.Level)), nil
	case sm.Level.Bearish() && ctx.Portfolio.Holding():
		return SellFraction(sizeFraction(sm.SellCount, sm.Total(), scale), string(sm.Level)), nil
	default:
		return Hold(), nil
	}
}

// volatilityScale shrinks position size as ATR-normalized volatility rises
// past the target. Without enough history for an ATR the scale stays 1.
func (s *PositionSizing) volatilityScale(ctx Context) float64 {
	atr := s.atrNormalized(ctx)
	if atr.IsNone() {
		return 1
	}

	vol := math.Max(atr.Unwrap(), s.floorVol)

	return math.Min(1, s.targetVol/vol)
}

func (s *PositionSizing) atrNormalized(ctx Context) optional.Option[float64] {
	if ctx.Bar.Close <= 0 {
		return optional.None[float64]()
	}

	if reading := ctx.Indicator(types.IndicatorTypeATR); reading.IsSome() {
		return optional.Some(reading.Unwrap() / ctx.Bar.Close)
	}

	atr := series.ATR(ctx.Bars[:ctx.Index+1], s.atrPeriod)
	if atr.IsNone() {
		return optional.None[float64]()
	}

	return optional.Some(atr.Unwrap() / ctx.Bar.Close)
}

// sizeFraction maps how far the agreeing count sits toward the ceil(2/3)
// strong threshold into (0, 1], then applies the volatility scale. A count at
// or past the threshold commits the full scaled size.
func sizeFraction(count, total int, scale float64) float64 {
	if total == 0 || count <= 0 {
		return minFraction
	}

	strongAt := (2*total + 2) / 3
	strength := float64(count) / float64(strongAt)
	if strength > 1 {
		strength = 1
	}

	fraction := strength * scale
	if fraction < minFraction {
		return minFraction
	}

	return fraction
}

// minFraction keeps a nonzero order even for weak signals in volatile tape.
const minFraction = 0.1
