package types

// IndicatorType identifies one computed indicator column.
type IndicatorType string

const (
	IndicatorTypeRSI        IndicatorType = "rsi14"
	IndicatorTypeStochK     IndicatorType = "stoch_k"
	IndicatorTypeMACD       IndicatorType = "macd"
	IndicatorTypeMACDSignal IndicatorType = "macd_signal"
	IndicatorTypeADX        IndicatorType = "adx14"
	IndicatorTypePlusDI     IndicatorType = "plus_di"
	IndicatorTypeMinusDI    IndicatorType = "minus_di"
	IndicatorTypeCCI        IndicatorType = "cci14"
	IndicatorTypeATR        IndicatorType = "atr14"
	IndicatorTypeHighLow    IndicatorType = "highlow14"
	IndicatorTypeUltOsc     IndicatorType = "ultosc"
	IndicatorTypeROC        IndicatorType = "roc"
	IndicatorTypeBullBear   IndicatorType = "bull_bear"
)

// MovingAverageType identifies one moving average column.
type MovingAverageType string

const (
	MovingAverageSMA5   MovingAverageType = "ma5"
	MovingAverageSMA10  MovingAverageType = "ma10"
	MovingAverageSMA20  MovingAverageType = "ma20"
	MovingAverageSMA50  MovingAverageType = "ma50"
	MovingAverageSMA100 MovingAverageType = "ma100"
	MovingAverageSMA200 MovingAverageType = "ma200"
	MovingAverageEMA5   MovingAverageType = "ema5"
	MovingAverageEMA10  MovingAverageType = "ema10"
	MovingAverageEMA20  MovingAverageType = "ema20"
	MovingAverageEMA50  MovingAverageType = "ema50"
	MovingAverageEMA100 MovingAverageType = "ema100"
	MovingAverageEMA200 MovingAverageType = "ema200"
)

// AllMovingAverages lists every configured moving average column.
func AllMovingAverages() []MovingAverageType {
	return []MovingAverageType{
		MovingAverageSMA5,
		MovingAverageSMA10,
		MovingAverageSMA20,
		MovingAverageSMA50,
		MovingAverageSMA100,
		MovingAverageSMA200,
		MovingAverageEMA5,
		MovingAverageEMA10,
		MovingAverageEMA20,
		MovingAverageEMA50,
		MovingAverageEMA100,
		MovingAverageEMA200,
	}
}
