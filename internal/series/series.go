// Package series computes trailing-window statistics over bar history.
// Strategies use these when the indicator provider has no reading for a bar,
// mirroring how the summary pipeline computes its own moving averages.
// Every function returns None when the window does not fit the history.
package series

import (
	"math"

	"github.com/moznion/go-optional"

	"github.com/chartbeacon/chartbeacon/internal/types"
)

// Closes extracts the close prices of a bar slice.
func Closes(bars []types.Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}

	return closes
}

// SMA returns the simple moving average of the trailing period values.
func SMA(values []float64, period int) optional.Option[float64] {
	if period <= 0 || len(values) < period {
		return optional.None[float64]()
	}

	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}

	return optional.Some(sum / float64(period))
}

// EMA returns the exponential moving average over the whole series, seeded
// with the SMA of the first period values.
func EMA(values []float64, period int) optional.Option[float64] {
	if period <= 0 || len(values) < period {
		return optional.None[float64]()
	}

	seed := 0.0
	for _, v := range values[:period] {
		seed += v
	}

	ema := seed / float64(period)
	multiplier := 2.0 / (float64(period) + 1.0)

	for _, v := range values[period:] {
		ema = (v-ema)*multiplier + ema
	}

	return optional.Some(ema)
}

// Returns computes bar-over-bar fractional price changes.
func Returns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(values)-1)

	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}

		returns = append(returns, values[i]/values[i-1]-1)
	}

	return returns
}

// Volatility returns the standard deviation of the trailing window of
// bar-over-bar returns.
func Volatility(values []float64, window int) optional.Option[float64] {
	returns := Returns(values)
	if window <= 0 || len(returns) < window {
		return optional.None[float64]()
	}

	return optional.Some(StdDev(returns[len(returns)-window:]))
}

// StdDev returns the population standard deviation.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}

	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}

	return math.Sqrt(variance / float64(len(values)))
}

// trueRanges computes the true range series starting at the second bar.
func trueRanges(bars []types.Bar) []float64 {
	if len(bars) < 2 {
		return nil
	}

	ranges := make([]float64, 0, len(bars)-1)

	for i := 1; i < len(bars); i++ {
		highLow := bars[i].High - bars[i].Low
		highClose := math.Abs(bars[i].High - bars[i-1].Close)
		lowClose := math.Abs(bars[i].Low - bars[i-1].Close)
		ranges = append(ranges, math.Max(highLow, math.Max(highClose, lowClose)))
	}

	return ranges
}

// ATR returns the average true range over the trailing period.
func ATR(bars []types.Bar, period int) optional.Option[float64] {
	ranges := trueRanges(bars)

	return SMA(ranges, period)
}

// RSI returns the Wilder relative strength index over the trailing values.
// Needs period+1 values for the first period price changes.
func RSI(values []float64, period int) optional.Option[float64] {
	if period <= 0 || len(values) < period+1 {
		return optional.None[float64]()
	}

	var avgGain, avgLoss float64

	for i := 1; i <= period; i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(values); i++ {
		change := values[i] - values[i-1]

		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return optional.Some(100.0)
	}

	rs := avgGain / avgLoss

	return optional.Some(100 - 100/(1+rs))
}

// MACDLine is one MACD snapshot: the fast-minus-slow EMA difference and its
// signal EMA.
type MACDLine struct {
	MACD   float64
	Signal float64
}

// MACD computes the 12/26/9 convergence-divergence lines at the end of the
// series. Needs slow+signal-1 values for the signal EMA to seed.
func MACD(values []float64, fast, slow, signal int) optional.Option[MACDLine] {
	if fast <= 0 || slow <= fast || signal <= 0 || len(values) < slow+signal-1 {
		return optional.None[MACDLine]()
	}

	macds := make([]float64, 0, len(values)-slow+1)

	for i := slow; i <= len(values); i++ {
		fastEMA := EMA(values[:i], fast)
		slowEMA := EMA(values[:i], slow)
		macds = append(macds, fastEMA.Unwrap()-slowEMA.Unwrap())
	}

	signalEMA := EMA(macds, signal)
	if signalEMA.IsNone() {
		return optional.None[MACDLine]()
	}

	return optional.Some(MACDLine{
		MACD:   macds[len(macds)-1],
		Signal: signalEMA.Unwrap(),
	})
}

// DirectionalMovement holds one Wilder directional movement snapshot.
type DirectionalMovement struct {
	ADX     float64
	PlusDI  float64
	MinusDI float64
}

// ADX computes the Wilder directional movement system over the bar history.
// Requires at least 2*period+1 bars for the ADX smoothing to settle.
func ADX(bars []types.Bar, period int) optional.Option[DirectionalMovement] {
	if period <= 0 || len(bars) < 2*period+1 {
		return optional.None[DirectionalMovement]()
	}

	var trSum, plusSum, minusSum float64

	dxs := make([]float64, 0, len(bars)-1)

	var plusDI, minusDI float64

	for i := 1; i < len(bars); i++ {
		upMove := bars[i].High - bars[i-1].High
		downMove := bars[i-1].Low - bars[i].Low

		plusDM, minusDM := 0.0, 0.0
		if upMove > downMove && upMove > 0 {
			plusDM = upMove
		}

		if downMove > upMove && downMove > 0 {
			minusDM = downMove
		}

		highLow := bars[i].High - bars[i].Low
		highClose := math.Abs(bars[i].High - bars[i-1].Close)
		lowClose := math.Abs(bars[i].Low - bars[i-1].Close)
		tr := math.Max(highLow, math.Max(highClose, lowClose))

		if i <= period {
			trSum += tr
			plusSum += plusDM
			minusSum += minusDM

			if i < period {
				continue
			}
		} else {
			// Wilder smoothing
			trSum = trSum - trSum/float64(period) + tr
			plusSum = plusSum - plusSum/float64(period) + plusDM
			minusSum = minusSum - minusSum/float64(period) + minusDM
		}

		if trSum == 0 {
			dxs = append(dxs, 0)
			continue
		}

		plusDI = 100 * plusSum / trSum
		minusDI = 100 * minusSum / trSum

		diSum := plusDI + minusDI
		if diSum == 0 {
			dxs = append(dxs, 0)
			continue
		}

		dxs = append(dxs, 100*math.Abs(plusDI-minusDI)/diSum)
	}

	if len(dxs) < period {
		return optional.None[DirectionalMovement]()
	}

	// ADX seeds with the mean DX, then Wilder-smooths the rest.
	adx := 0.0
	for _, dx := range dxs[:period] {
		adx += dx
	}

	adx /= float64(period)

	for _, dx := range dxs[period:] {
		adx = (adx*float64(period-1) + dx) / float64(period)
	}

	return optional.Some(DirectionalMovement{ADX: adx, PlusDI: plusDI, MinusDI: minusDI})
}
