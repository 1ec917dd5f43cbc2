package strategy

import (
	"github.com/chartbeacon/chartbeacon/internal/types"
	"github.com/chartbeacon/chartbeacon/pkg/errors"
)

// TechnicalSummary follows the aggregate level every bar: buy on any bullish
// level while flat, sell on any bearish level while holding. This is the
// highest-frequency strategy in the catalogue.
type TechnicalSummary struct{}

// NewTechnicalSummary creates the summary-following strategy.
func NewTechnicalSummary() Strategy {
	return &TechnicalSummary{}
}

// Name returns the registry identifier.
func (s *TechnicalSummary) Name() string {
	return "technical_summary"
}

// Decide implements Strategy.
func (s *TechnicalSummary) Decide(ctx Context) (Decision, error) {
	level := ctx.Level()
	if level.IsNone() {
		return Hold(), errors.Newf(errors.ErrCodeStrategyIndicatorInput,
			"technical_summary: no summary level at bar %d (%s)", ctx.Index, ctx.Bar.Time.Format("2006-01-02"))
	}

	return followLevel(level.Unwrap(), ctx.Portfolio), nil
}

// followLevel is the shared level-following rule used by every strategy that
// layers a filter on top of the technical summary.
func followLevel(level types.Level, portfolio PortfolioView) Decision {
	switch {
	case level.Bullish() && !portfolio.Holding():
		return BuyAll(string(level))
	case level.Bearish() && portfolio.Holding():
		return SellAll(string(level))
	default:
		return Hold()
	}
}
