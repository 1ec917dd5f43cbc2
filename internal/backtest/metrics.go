package backtest

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/chartbeacon/chartbeacon/internal/types"
)

// applyMetrics fills the derived metric block on a completed result. Every
// division is guarded; degenerate inputs produce zero metrics, never a panic.
func applyMetrics(result *types.BacktestResult, state *runState, req Request, config Config) {
	result.TotalReturnPct = returnPct(result.FinalCapital, result.InitialCapital)
	result.BuyHoldReturnPct = buyHoldReturnPct(req.Bars, result.InitialCapital, config.TransactionCostRate)
	result.Alpha = result.TotalReturnPct - result.BuyHoldReturnPct

	result.WinningTrades, result.LosingTrades = matchTrades(state.trades)
	if result.TotalTrades > 0 {
		result.WinRate = float64(result.WinningTrades) / float64(result.TotalTrades) * 100
	}

	result.MaxDrawdown = maxDrawdown(state.equity)
	result.SharpeRatio = sharpeRatio(state.equity, req.Timeframe, config.RiskFreeRate)
}

func returnPct(final, initial float64) float64 {
	if initial <= 0 {
		return 0
	}

	return (final/initial - 1) * 100
}

// buyHoldReturnPct is the benchmark: spend the whole capital at the first
// close, including the entry cost, and liquidate at the last close net of the
// exit cost.
func buyHoldReturnPct(bars []types.Bar, initialCapital, costRate float64) float64 {
	if len(bars) == 0 || initialCapital <= 0 {
		return 0
	}

	entry := bars[0].Close
	exit := bars[len(bars)-1].Close
	if entry <= 0 {
		return 0
	}

	quantity := initialCapital / (entry * (1 + costRate))
	proceeds := quantity * exit * (1 - costRate)

	return returnPct(proceeds, initialCapital)
}

// matchTrades pairs every sell against the oldest unmatched buy lots and
// counts it as a win when the net proceeds beat the matched basis. The basis
// includes buy-side transaction costs; decimal arithmetic keeps long
// accumulation chains exact.
func matchTrades(trades []types.Trade) (wins, losses int) {
	type openLot struct {
		quantity decimal.Decimal
		unitCost decimal.Decimal
	}

	var lots []openLot

	for _, trade := range trades {
		quantity := decimal.NewFromFloat(trade.Quantity)
		notional := decimal.NewFromFloat(trade.Notional())
		cost := decimal.NewFromFloat(trade.TransactionCost)

		if trade.Action == types.TradeActionBuy {
			if trade.Quantity <= 0 {
				continue
			}

			lots = append(lots, openLot{
				quantity: quantity,
				unitCost: notional.Add(cost).Div(quantity),
			})

			continue
		}

		remaining := quantity
		basis := decimal.Zero

		for len(lots) > 0 && remaining.IsPositive() {
			head := &lots[0]
			matched := decimal.Min(head.quantity, remaining)
			basis = basis.Add(matched.Mul(head.unitCost))
			head.quantity = head.quantity.Sub(matched)
			remaining = remaining.Sub(matched)

			if !head.quantity.IsPositive() {
				lots = lots[1:]
			}
		}

		proceeds := notional.Sub(cost)
		if proceeds.GreaterThan(basis) {
			wins++
		} else {
			losses++
		}
	}

	return wins, losses
}

// maxDrawdown is the most negative percentage gap between the equity curve
// and its running peak, 0 when equity never dips below a prior peak.
func maxDrawdown(equity []float64) float64 {
	drawdown := 0.0
	peak := math.Inf(-1)

	for _, value := range equity {
		if value > peak {
			peak = value
		}

		if peak > 0 {
			if dd := (value - peak) / peak * 100; dd < drawdown {
				drawdown = dd
			}
		}
	}

	return drawdown
}

// sharpeRatio annualizes mean-over-stddev of per-bar excess returns by the
// timeframe's periods per year. A zero-variance curve yields 0.
func sharpeRatio(equity []float64, timeframe types.Timeframe, riskFreeRate float64) float64 {
	if len(equity) < 2 {
		return 0
	}

	periods := timeframe.PeriodsPerYear()
	perBarRiskFree := 0.0
	if periods > 0 {
		perBarRiskFree = riskFreeRate / periods
	}

	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1] <= 0 {
			return 0
		}

		returns = append(returns, equity[i]/equity[i-1]-1-perBarRiskFree)
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	if variance == 0 {
		return 0
	}

	return mean / math.Sqrt(variance) * math.Sqrt(periods)
}
