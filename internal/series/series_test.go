package series

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartbeacon/chartbeacon/internal/types"
)

func barsFromCloses(closes ...float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, c := range closes {
		bars[i] = types.Bar{
			Symbol:    "TEST",
			Timeframe: types.Timeframe1d,
			Time:      base.AddDate(0, 0, i),
			Open:      c,
			High:      c * 1.01,
			Low:       c * 0.99,
			Close:     c,
			Volume:    1000,
		}
	}

	return bars
}

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	got := SMA(values, 3)
	require.True(t, got.IsSome())
	assert.InDelta(t, 4.0, got.Unwrap(), 1e-9)

	got = SMA(values, 5)
	require.True(t, got.IsSome())
	assert.InDelta(t, 3.0, got.Unwrap(), 1e-9)

	assert.True(t, SMA(values, 6).IsNone())
	assert.True(t, SMA(values, 0).IsNone())
	assert.True(t, SMA(nil, 3).IsNone())
}

func TestEMA(t *testing.T) {
	// Constant series: EMA equals the constant.
	constant := []float64{10, 10, 10, 10, 10, 10}
	got := EMA(constant, 3)
	require.True(t, got.IsSome())
	assert.InDelta(t, 10.0, got.Unwrap(), 1e-9)

	// Rising series: EMA lags the last value but exceeds the SMA seed.
	rising := []float64{1, 2, 3, 4, 5, 6}
	ema := EMA(rising, 3)
	require.True(t, ema.IsSome())
	assert.Greater(t, ema.Unwrap(), 3.0)
	assert.Less(t, ema.Unwrap(), 6.0)

	assert.True(t, EMA([]float64{1, 2}, 3).IsNone())
}

func TestReturns(t *testing.T) {
	returns := Returns([]float64{100, 110, 99})
	require.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)

	assert.Nil(t, Returns([]float64{100}))
}

func TestStdDev(t *testing.T) {
	assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
	assert.Zero(t, StdDev([]float64{5, 5, 5}))
	assert.Zero(t, StdDev(nil))
}

func TestVolatility(t *testing.T) {
	flat := []float64{100, 100, 100, 100, 100}
	got := Volatility(flat, 3)
	require.True(t, got.IsSome())
	assert.Zero(t, got.Unwrap())

	assert.True(t, Volatility(flat, 10).IsNone())

	moving := []float64{100, 110, 99, 105, 101}
	vol := Volatility(moving, 4)
	require.True(t, vol.IsSome())
	assert.Greater(t, vol.Unwrap(), 0.0)
}

func TestATR(t *testing.T) {
	bars := barsFromCloses(100, 102, 101, 103, 104, 102, 105, 106, 104, 107,
		108, 106, 109, 110, 108, 111)

	atr := ATR(bars, 14)
	require.True(t, atr.IsSome())
	assert.Greater(t, atr.Unwrap(), 0.0)

	assert.True(t, ATR(bars[:5], 14).IsNone())
}

func TestADXTrendingSeries(t *testing.T) {
	// A steadily rising series is a strong up-trend: high ADX, +DI > -DI.
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)*2
	}

	dm := ADX(barsFromCloses(closes...), 14)
	require.True(t, dm.IsSome())

	got := dm.Unwrap()
	assert.Greater(t, got.ADX, 20.0)
	assert.Greater(t, got.PlusDI, got.MinusDI)
	assert.False(t, math.IsNaN(got.ADX))
}

func TestADXInsufficientHistory(t *testing.T) {
	bars := barsFromCloses(100, 101, 102, 103, 104)
	assert.True(t, ADX(bars, 14).IsNone())
}

func TestRSI(t *testing.T) {
	t.Run("insufficient history", func(t *testing.T) {
		assert.True(t, RSI([]float64{100, 101, 102}, 14).IsNone())
	})

	t.Run("all gains saturate at 100", func(t *testing.T) {
		closes := make([]float64, 20)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}

		rsi := RSI(closes, 14)
		require.True(t, rsi.IsSome())
		assert.Equal(t, 100.0, rsi.Unwrap())
	})

	t.Run("all losses approach zero", func(t *testing.T) {
		closes := make([]float64, 20)
		for i := range closes {
			closes[i] = 100 - float64(i)
		}

		rsi := RSI(closes, 14)
		require.True(t, rsi.IsSome())
		assert.InDelta(t, 0.0, rsi.Unwrap(), 1e-9)
	})

	t.Run("alternating series sits midrange", func(t *testing.T) {
		closes := make([]float64, 30)
		for i := range closes {
			closes[i] = 100
			if i%2 == 1 {
				closes[i] = 101
			}
		}

		rsi := RSI(closes, 14)
		require.True(t, rsi.IsSome())
		assert.Greater(t, rsi.Unwrap(), 30.0)
		assert.Less(t, rsi.Unwrap(), 70.0)
	})
}

func TestMACD(t *testing.T) {
	t.Run("insufficient history", func(t *testing.T) {
		assert.True(t, MACD([]float64{100, 101, 102}, 12, 26, 9).IsNone())
	})

	t.Run("uptrend puts the fast line above the slow", func(t *testing.T) {
		closes := make([]float64, 60)
		for i := range closes {
			closes[i] = 100 + float64(i)*1.5
		}

		line := MACD(closes, 12, 26, 9)
		require.True(t, line.IsSome())
		assert.Greater(t, line.Unwrap().MACD, 0.0)
	})

	t.Run("downtrend puts it below", func(t *testing.T) {
		closes := make([]float64, 60)
		for i := range closes {
			closes[i] = 200 - float64(i)*1.5
		}

		line := MACD(closes, 12, 26, 9)
		require.True(t, line.IsSome())
		assert.Less(t, line.Unwrap().MACD, 0.0)
	})

	t.Run("flat series collapses both lines to zero", func(t *testing.T) {
		closes := make([]float64, 60)
		for i := range closes {
			closes[i] = 100
		}

		line := MACD(closes, 12, 26, 9)
		require.True(t, line.IsSome())
		assert.InDelta(t, 0.0, line.Unwrap().MACD, 1e-9)
		assert.InDelta(t, 0.0, line.Unwrap().Signal, 1e-9)
	})
}
