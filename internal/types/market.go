package types

import "time"

// Bar is a single OHLCV candle for one (symbol, timeframe) at one timestamp.
type Bar struct {
	Symbol    string    `yaml:"symbol" csv:"symbol"`
	Timeframe Timeframe `yaml:"timeframe" csv:"timeframe"`
	Time      time.Time `yaml:"time" csv:"time"`
	Open      float64   `yaml:"open" csv:"open"`
	High      float64   `yaml:"high" csv:"high"`
	Low       float64   `yaml:"low" csv:"low"`
	Close     float64   `yaml:"close" csv:"close"`
	Volume    float64   `yaml:"volume" csv:"volume"`
}

// Timeframe is a bar granularity.
type Timeframe string

const (
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe30m Timeframe = "30m"
	Timeframe1h  Timeframe = "1h"
	Timeframe4h  Timeframe = "4h"
	Timeframe1d  Timeframe = "1d"
	Timeframe1wk Timeframe = "1wk"
	Timeframe1mo Timeframe = "1mo"
)

// tradingDaysPerYear and tradingHoursPerDay follow the US equity calendar the
// original data pipeline trims to.
const (
	tradingDaysPerYear   = 252
	tradingHoursPerDay   = 6.5
	tradingMinutesPerDay = tradingHoursPerDay * 60
)

// periodsPerYear maps each timeframe to the bar count used to annualize
// per-bar return statistics.
var periodsPerYear = map[Timeframe]float64{
	Timeframe5m:  tradingDaysPerYear * tradingMinutesPerDay / 5,
	Timeframe15m: tradingDaysPerYear * tradingMinutesPerDay / 15,
	Timeframe30m: tradingDaysPerYear * tradingMinutesPerDay / 30,
	Timeframe1h:  tradingDaysPerYear * tradingHoursPerDay,
	Timeframe4h:  tradingDaysPerYear * tradingHoursPerDay / 4,
	Timeframe1d:  tradingDaysPerYear,
	Timeframe1wk: 52,
	Timeframe1mo: 12,
}

// Supported reports whether the timeframe is one of the closed set.
func (t Timeframe) Supported() bool {
	_, ok := periodsPerYear[t]

	return ok
}

// PeriodsPerYear returns the number of bars per year for annualization.
// Returns 0 for unsupported timeframes.
func (t Timeframe) PeriodsPerYear() float64 {
	return periodsPerYear[t]
}

// AllTimeframes lists every supported timeframe.
func AllTimeframes() []Timeframe {
	return []Timeframe{
		Timeframe5m,
		Timeframe15m,
		Timeframe30m,
		Timeframe1h,
		Timeframe4h,
		Timeframe1d,
		Timeframe1wk,
		Timeframe1mo,
	}
}
