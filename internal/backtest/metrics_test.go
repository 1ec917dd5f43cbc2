package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chartbeacon/chartbeacon/internal/types"
)

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		equity []float64
		want   float64
	}{
		{"reference curve", []float64{100, 120, 90, 110}, -25.0},
		{"monotonic rise never draws down", []float64{100, 110, 120}, 0},
		{"flat curve", []float64{100, 100, 100}, 0},
		{"empty curve", nil, 0},
		{"deepest trough wins", []float64{100, 80, 120, 60}, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, maxDrawdown(tt.equity), 1e-9)
		})
	}
}

func TestSharpeRatio(t *testing.T) {
	t.Run("zero variance yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, sharpeRatio([]float64{100, 101, 102.01}, types.Timeframe1d, 0))
	})

	t.Run("flat curve yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, sharpeRatio([]float64{100, 100, 100}, types.Timeframe1d, 0))
	})

	t.Run("too short a curve yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, sharpeRatio([]float64{100}, types.Timeframe1d, 0))
	})

	t.Run("annualizes by the timeframe", func(t *testing.T) {
		equity := []float64{100, 102, 101, 104, 103}

		daily := sharpeRatio(equity, types.Timeframe1d, 0)
		weekly := sharpeRatio(equity, types.Timeframe1wk, 0)

		// same curve, annualization factor sqrt(252) vs sqrt(52)
		assert.InDelta(t, daily/weekly, math.Sqrt(252.0/52.0), 1e-9)
	})

	t.Run("risk free rate lowers the ratio", func(t *testing.T) {
		equity := []float64{100, 102, 101, 104, 103}

		raw := sharpeRatio(equity, types.Timeframe1d, 0)
		excess := sharpeRatio(equity, types.Timeframe1d, 0.05)

		assert.Less(t, excess, raw)
	})
}

func TestBuyHoldReturnPct(t *testing.T) {
	t.Run("frictionless tracks the price move", func(t *testing.T) {
		bars := dailyBars(100, 110)
		assert.InDelta(t, 10.0, buyHoldReturnPct(bars, 10000, 0), 1e-9)
	})

	t.Run("flat prices return zero", func(t *testing.T) {
		bars := dailyBars(100, 100, 100)
		assert.InDelta(t, 0.0, buyHoldReturnPct(bars, 10000, 0), 1e-9)
	})

	t.Run("entry and exit costs drag the benchmark", func(t *testing.T) {
		bars := dailyBars(100, 100)

		// quantity = 10000/(100*1.01), proceeds = quantity*100*0.99
		want := (0.99/1.01 - 1) * 100
		assert.InDelta(t, want, buyHoldReturnPct(bars, 10000, 0.01), 1e-9)
	})

	t.Run("degenerate inputs return zero", func(t *testing.T) {
		assert.Equal(t, 0.0, buyHoldReturnPct(nil, 10000, 0))
		assert.Equal(t, 0.0, buyHoldReturnPct(dailyBars(0, 100), 10000, 0))
	})
}

func TestMatchTrades(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	buy := func(price, quantity, cost float64) types.Trade {
		return types.Trade{Time: at, Action: types.TradeActionBuy, Price: price, Quantity: quantity, TransactionCost: cost}
	}
	sell := func(price, quantity, cost float64) types.Trade {
		return types.Trade{Time: at, Action: types.TradeActionSell, Price: price, Quantity: quantity, TransactionCost: cost}
	}

	t.Run("profitable round trip wins", func(t *testing.T) {
		wins, losses := matchTrades([]types.Trade{buy(100, 10, 0), sell(110, 10, 0)})
		assert.Equal(t, 1, wins)
		assert.Equal(t, 0, losses)
	})

	t.Run("losing round trip loses", func(t *testing.T) {
		wins, losses := matchTrades([]types.Trade{buy(100, 10, 0), sell(90, 10, 0)})
		assert.Equal(t, 0, wins)
		assert.Equal(t, 1, losses)
	})

	t.Run("costs can turn a flat trip into a loss", func(t *testing.T) {
		wins, losses := matchTrades([]types.Trade{buy(100, 10, 5), sell(100, 10, 5)})
		assert.Equal(t, 0, wins)
		assert.Equal(t, 1, losses)
	})

	t.Run("one sell matches across multiple lots", func(t *testing.T) {
		// 10 @ 100 plus 10 @ 120, all sold at 115: basis 2200 vs 2300
		wins, losses := matchTrades([]types.Trade{
			buy(100, 10, 0),
			buy(120, 10, 0),
			sell(115, 20, 0),
		})
		assert.Equal(t, 1, wins)
		assert.Equal(t, 0, losses)
	})

	t.Run("partial sells consume the oldest lot first", func(t *testing.T) {
		wins, losses := matchTrades([]types.Trade{
			buy(100, 10, 0),
			buy(120, 10, 0),
			sell(110, 10, 0), // matches the 100 lot, win
			sell(110, 10, 0), // matches the 120 lot, loss
		})
		assert.Equal(t, 1, wins)
		assert.Equal(t, 1, losses)
	})

	t.Run("no trades no counts", func(t *testing.T) {
		wins, losses := matchTrades(nil)
		assert.Equal(t, 0, wins)
		assert.Equal(t, 0, losses)
	})
}
