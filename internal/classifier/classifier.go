// Package classifier maps raw indicator values to discrete BUY/SELL/NEUTRAL
// signals. Every rule is a data entry in a closed table keyed by indicator
// kind, so adding an indicator is a table change, not new branching logic.
// Classification never fails: missing input degrades to SignalUnavailable.
package classifier

import (
	"github.com/moznion/go-optional"

	"github.com/chartbeacon/chartbeacon/internal/types"
)

type compareOp int

const (
	opGreater compareOp = iota
	opLess
)

// condition is one side of a rule: a strict comparison against a threshold.
// Equality at the threshold never satisfies a condition, so boundary values
// resolve to NEUTRAL.
type condition struct {
	op        compareOp
	threshold float64
}

func (c condition) holds(value float64) bool {
	switch c.op {
	case opGreater:
		return value > c.threshold
	case opLess:
		return value < c.threshold
	default:
		return false
	}
}

func greater(threshold float64) condition { return condition{op: opGreater, threshold: threshold} }
func less(threshold float64) condition    { return condition{op: opLess, threshold: threshold} }

// rule pairs the buy and sell conditions for one single-valued indicator.
type rule struct {
	buy  condition
	sell condition
}

// adxTrendThreshold is the minimum ADX for the directional movement signal to
// count as trending. The comparison is non-strict.
const adxTrendThreshold = 20

// oscillatorRules is the closed classification table for single-valued
// oscillators. MACD is classified on the macd-minus-signal difference and the
// Bull/Bear Power on the combined power value, matching the columns the
// indicator provider materializes. ATR and bare ADX carry no signal and are
// deliberately absent.
var oscillatorRules = map[types.IndicatorType]rule{
	types.IndicatorTypeRSI:      {buy: less(30), sell: greater(70)},
	types.IndicatorTypeStochK:   {buy: less(20), sell: greater(80)},
	types.IndicatorTypeMACD:     {buy: greater(0), sell: less(0)},
	types.IndicatorTypeCCI:      {buy: greater(100), sell: less(-100)},
	types.IndicatorTypeHighLow:  {buy: greater(0), sell: less(0)},
	types.IndicatorTypeUltOsc:   {buy: greater(70), sell: less(30)},
	types.IndicatorTypeROC:      {buy: greater(0), sell: less(0)},
	types.IndicatorTypeBullBear: {buy: greater(0), sell: less(0)},
}

// scored reports whether the indicator kind participates in signal counts.
// Display-only kinds (ATR, bare ADX components) are not scored.
func scored(kind types.IndicatorType) bool {
	if kind == types.IndicatorTypeADX {
		return true
	}

	_, ok := oscillatorRules[kind]

	return ok
}

// Oscillator classifies a single-valued oscillator reading. Unknown kinds and
// missing values classify as UNAVAILABLE.
func Oscillator(kind types.IndicatorType, value optional.Option[float64]) types.Signal {
	r, ok := oscillatorRules[kind]
	if !ok || value.IsNone() {
		return types.SignalUnavailable
	}

	v := value.Unwrap()

	switch {
	case r.buy.holds(v):
		return types.SignalBuy
	case r.sell.holds(v):
		return types.SignalSell
	default:
		return types.SignalNeutral
	}
}

// MACD classifies the MACD line against its signal line. The rule operates on
// the difference, so an exact touch is NEUTRAL.
func MACD(macd, signal optional.Option[float64]) types.Signal {
	if macd.IsNone() || signal.IsNone() {
		return types.SignalUnavailable
	}

	return Oscillator(types.IndicatorTypeMACD, optional.Some(macd.Unwrap()-signal.Unwrap()))
}

// ADX classifies the directional movement system. The signal requires both
// directional components; the bare ADX value alone carries no signal. A
// reading below the trend threshold is NEUTRAL regardless of DI ordering.
func ADX(adx, plusDI, minusDI optional.Option[float64]) types.Signal {
	if adx.IsNone() || plusDI.IsNone() || minusDI.IsNone() {
		return types.SignalUnavailable
	}

	if adx.Unwrap() < adxTrendThreshold {
		return types.SignalNeutral
	}

	plus, minus := plusDI.Unwrap(), minusDI.Unwrap()

	switch {
	case plus > minus:
		return types.SignalBuy
	case minus > plus:
		return types.SignalSell
	default:
		return types.SignalNeutral
	}
}

// MovingAverage classifies the close price against one moving average value.
func MovingAverage(close, ma optional.Option[float64]) types.Signal {
	if close.IsNone() || ma.IsNone() {
		return types.SignalUnavailable
	}

	c, m := close.Unwrap(), ma.Unwrap()

	switch {
	case c > m:
		return types.SignalBuy
	case c < m:
		return types.SignalSell
	default:
		return types.SignalNeutral
	}
}

// Oscillators classifies a full indicator reading into the per-kind signal
// map the summary aggregator consumes. Only scored kinds appear in the
// result.
func Oscillators(reading types.IndicatorReading) map[types.IndicatorType]types.Signal {
	signals := make(map[types.IndicatorType]types.Signal, len(oscillatorRules)+1)

	for kind := range oscillatorRules {
		if kind == types.IndicatorTypeMACD {
			continue
		}

		signals[kind] = Oscillator(kind, reading.Value(kind))
	}

	signals[types.IndicatorTypeMACD] = MACD(
		reading.Value(types.IndicatorTypeMACD),
		reading.Value(types.IndicatorTypeMACDSignal),
	)
	signals[types.IndicatorTypeADX] = ADX(
		reading.Value(types.IndicatorTypeADX),
		reading.Value(types.IndicatorTypePlusDI),
		reading.Value(types.IndicatorTypeMinusDI),
	)

	return signals
}

// MovingAverages classifies a full moving-average reading against the close
// price. A missing close makes every MA signal UNAVAILABLE.
func MovingAverages(reading types.MovingAverageReading, close optional.Option[float64]) map[types.MovingAverageType]types.Signal {
	signals := make(map[types.MovingAverageType]types.Signal, len(types.AllMovingAverages()))

	for _, kind := range types.AllMovingAverages() {
		signals[kind] = MovingAverage(close, reading.Value(kind))
	}

	return signals
}
