// Package summary combines classified indicator signals into the five-way
// technical level. Aggregation is pure: identical inputs always produce the
// identical Summary, and it never fails. All-unavailable input degrades to
// NEUTRAL.
package summary

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/chartbeacon/chartbeacon/internal/classifier"
	"github.com/chartbeacon/chartbeacon/internal/types"
)

// counts tallies available signals only. Unavailable signals never reach a
// counter.
type counts struct {
	buy     int
	sell    int
	neutral int
}

func (c counts) total() int {
	return c.buy + c.sell + c.neutral
}

func (c *counts) add(signal types.Signal) {
	switch signal {
	case types.SignalBuy:
		c.buy++
	case types.SignalSell:
		c.sell++
	case types.SignalNeutral:
		c.neutral++
	case types.SignalUnavailable:
		// excluded from counts
	}
}

// level applies the group decision rule. The strong thresholds compare
// against ceil(2/3 * total); 3*cnt >= 2*total is that comparison in exact
// integer arithmetic. An empty group is NEUTRAL.
func (c counts) level() types.Level {
	total := c.total()
	if total == 0 {
		return types.LevelNeutral
	}

	switch {
	case 3*c.buy >= 2*total:
		return types.LevelStrongBuy
	case c.buy > c.sell:
		return types.LevelBuy
	case 3*c.sell >= 2*total:
		return types.LevelStrongSell
	case c.sell > c.buy:
		return types.LevelSell
	default:
		return types.LevelNeutral
	}
}

// Aggregate combines oscillator and moving-average signals into a Summary.
//
// The reported counts are the raw combined tallies across both groups. The
// Level is not derived from them: each group decides its own level, the two
// group ordinals are averaged with equal weight, and the average is rounded
// to the nearest integer with ties toward zero. Integer division of the
// ordinal sum by two implements exactly that rounding, since the only
// non-exact case is a .5 tie.
func Aggregate(oscillators map[types.IndicatorType]types.Signal, movingAverages map[types.MovingAverageType]types.Signal) types.Summary {
	var osc, ma counts

	for _, signal := range oscillators {
		osc.add(signal)
	}

	for _, signal := range movingAverages {
		ma.add(signal)
	}

	oscLevel := osc.level()
	maLevel := ma.level()

	return types.Summary{
		BuyCount:           osc.buy + ma.buy,
		SellCount:          osc.sell + ma.sell,
		NeutralCount:       osc.neutral + ma.neutral,
		OscillatorLevel:    oscLevel,
		MovingAverageLevel: maLevel,
		Level:              types.LevelFromOrdinal((oscLevel.Ordinal() + maLevel.Ordinal()) / 2),
	}
}

// Compute classifies a reading pair and aggregates it in one step, stamping
// the summary with the reading's key. The close price comes from the bar
// aligned to the reading's timestamp.
func Compute(symbol string, timeframe types.Timeframe, ts time.Time, reading types.IndicatorReading, maReading types.MovingAverageReading, close optional.Option[float64]) types.Summary {
	s := Aggregate(
		classifier.Oscillators(reading),
		classifier.MovingAverages(maReading, close),
	)
	s.Symbol = symbol
	s.Timeframe = timeframe
	s.Time = ts

	return s
}
