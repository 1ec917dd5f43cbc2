package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// IndicatorReading holds the computed indicator values for one
// (symbol, timeframe, timestamp). Values are nullable: an indicator with
// insufficient history is present as None, and an indicator the provider does
// not compute is absent from the map. Readings are immutable once computed;
// recomputation replaces the whole reading upstream.
type IndicatorReading struct {
	Symbol    string
	Timeframe Timeframe
	Time      time.Time
	Values    map[IndicatorType]optional.Option[float64]
}

// Value returns the named indicator value. Absent keys and None values both
// come back as None.
func (r IndicatorReading) Value(kind IndicatorType) optional.Option[float64] {
	if r.Values == nil {
		return optional.None[float64]()
	}

	return r.Values[kind]
}

// MovingAverageReading holds the moving average values for one
// (symbol, timeframe, timestamp). Same key and nullability discipline as
// IndicatorReading.
type MovingAverageReading struct {
	Symbol    string
	Timeframe Timeframe
	Time      time.Time
	Values    map[MovingAverageType]optional.Option[float64]
}

// Value returns the named moving average value.
func (r MovingAverageReading) Value(kind MovingAverageType) optional.Option[float64] {
	if r.Values == nil {
		return optional.None[float64]()
	}

	return r.Values[kind]
}
