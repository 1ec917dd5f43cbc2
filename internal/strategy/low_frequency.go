package strategy

import (
	"github.com/chartbeacon/chartbeacon/pkg/errors"
)

// DefaultCooldownBars is the minimum number of bars between low-frequency
// trades: 15 days at daily granularity.
const DefaultCooldownBars = 15

// LowFrequency applies the technical-summary thresholds but suppresses
// chatter two ways: a trade starts a cooldown during which every decision is
// HOLD, and a trade only fires on a level transition, never on a sustained
// level.
type LowFrequency struct {
	cooldown int
}

// NewLowFrequency creates the strategy with the default 15-bar cooldown.
func NewLowFrequency() Strategy {
	return &LowFrequency{cooldown: DefaultCooldownBars}
}

// NewLowFrequencyWithCooldown creates the strategy with a custom cooldown.
func NewLowFrequencyWithCooldown(bars int) Strategy {
	if bars < 1 {
		bars = 1
	}

	return &LowFrequency{cooldown: bars}
}

// Name returns the registry identifier.
func (s *LowFrequency) Name() string {
	return "low_frequency"
}

// Decide implements Strategy.
func (s *LowFrequency) Decide(ctx Context) (Decision, error) {
	level := ctx.Level()
	if level.IsNone() {
		return Hold(), errors.Newf(errors.ErrCodeStrategyIndicatorInput,
			"low_frequency: no summary level at bar %d", ctx.Index)
	}

	if ctx.Portfolio.LastTradeIndex >= 0 && ctx.Index-ctx.Portfolio.LastTradeIndex < s.cooldown {
		return Hold(), nil
	}

	current := level.Unwrap()

	// Only a transition fires. A bar with no previous summary counts as a
	// transition so the series can open a position on its first signal.
	prev := ctx.PrevLevel()
	if prev.IsSome() && prev.Unwrap() == current {
		return Hold(), nil
	}

	return followLevel(current, ctx.Portfolio), nil
}
