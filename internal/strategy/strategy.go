// Package strategy contains the catalogue of backtest decision functions.
// Every strategy is a stateless value: the decision for a bar depends only on
// the bar, the trailing history, and the portfolio view handed in, so runs
// replay deterministically.
package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/chartbeacon/chartbeacon/internal/types"
)

// Action is what a strategy wants the engine to do at the current bar.
type Action string

const (
	ActionHold Action = "HOLD"
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
)

// Decision is the outcome of one strategy invocation. Fraction scales how
// much of the available cash (buys) or open position (sells) to commit and
// must be in (0, 1]; full-size helpers set it to 1.
type Decision struct {
	Action   Action
	Fraction float64
	Reason   string
}

// Hold returns the no-op decision.
func Hold() Decision {
	return Decision{Action: ActionHold}
}

// BuyAll commits all available cash.
func BuyAll(reason string) Decision {
	return Decision{Action: ActionBuy, Fraction: 1, Reason: reason}
}

// SellAll liquidates the entire position.
func SellAll(reason string) Decision {
	return Decision{Action: ActionSell, Fraction: 1, Reason: reason}
}

// BuyFraction commits the given fraction of available cash.
func BuyFraction(fraction float64, reason string) Decision {
	return Decision{Action: ActionBuy, Fraction: fraction, Reason: reason}
}

// SellFraction liquidates the given fraction of the open position.
func SellFraction(fraction float64, reason string) Decision {
	return Decision{Action: ActionSell, Fraction: fraction, Reason: reason}
}

// PortfolioView is the read-only slice of run state a strategy may consult.
type PortfolioView struct {
	Cash          float64
	Position      float64
	AvgEntryPrice float64
	// LastTradeIndex is the bar index of the most recent executed trade,
	// -1 before the first trade. Cooldown strategies key off it.
	LastTradeIndex int
}

// Holding reports whether the run currently has an open position.
func (p PortfolioView) Holding() bool {
	return p.Position > 0
}

// Context carries everything a strategy may look at for one bar. Bars,
// Readings, MovingAverages and Summaries are aligned slices covering history
// up to and including the current bar at Index.
type Context struct {
	Index          int
	Bar            types.Bar
	Bars           []types.Bar
	Readings       []optional.Option[types.IndicatorReading]
	MovingAverages []optional.Option[types.MovingAverageReading]
	Summaries      []optional.Option[types.Summary]
	Portfolio      PortfolioView
}

// Level returns the aggregate level at the current bar, if a summary exists.
func (c Context) Level() optional.Option[types.Level] {
	return levelOf(c.summaryAt(c.Index))
}

// PrevLevel returns the aggregate level at the previous bar.
func (c Context) PrevLevel() optional.Option[types.Level] {
	return levelOf(c.summaryAt(c.Index - 1))
}

func levelOf(summary optional.Option[types.Summary]) optional.Option[types.Level] {
	if summary.IsNone() {
		return optional.None[types.Level]()
	}

	return optional.Some(summary.Unwrap().Level)
}

// Summary returns the summary row for the current bar.
func (c Context) Summary() optional.Option[types.Summary] {
	return c.summaryAt(c.Index)
}

func (c Context) summaryAt(index int) optional.Option[types.Summary] {
	if index < 0 || index >= len(c.Summaries) {
		return optional.None[types.Summary]()
	}

	return c.Summaries[index]
}

// Indicator returns one indicator value at the current bar.
func (c Context) Indicator(kind types.IndicatorType) optional.Option[float64] {
	return c.indicatorAt(c.Index, kind)
}

// PrevIndicator returns one indicator value at the previous bar.
func (c Context) PrevIndicator(kind types.IndicatorType) optional.Option[float64] {
	return c.indicatorAt(c.Index-1, kind)
}

func (c Context) indicatorAt(index int, kind types.IndicatorType) optional.Option[float64] {
	if index < 0 || index >= len(c.Readings) || c.Readings[index].IsNone() {
		return optional.None[float64]()
	}

	return c.Readings[index].Unwrap().Value(kind)
}

// MovingAverage returns one moving-average value at the current bar.
func (c Context) MovingAverage(kind types.MovingAverageType) optional.Option[float64] {
	if c.Index < 0 || c.Index >= len(c.MovingAverages) || c.MovingAverages[c.Index].IsNone() {
		return optional.None[float64]()
	}

	return c.MovingAverages[c.Index].Unwrap().Value(kind)
}

// Strategy is one decision function in the catalogue.
type Strategy interface {
	// Name is the registry identifier.
	Name() string
	// Decide returns the action for the current bar. An error means the
	// strategy cannot decide this bar (e.g. a required indicator is
	// missing); the engine logs it and holds.
	Decide(ctx Context) (Decision, error)
}
