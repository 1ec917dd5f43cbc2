package types

import "time"

// Summary is the aggregated multi-indicator view for one
// (symbol, timeframe, timestamp).
//
// BuyCount, SellCount and NeutralCount are the raw counts over all available
// oscillator and moving-average signals combined. Level is NOT derived from
// those combined counts: it is the rounded ordinal average of the two group
// levels (OscillatorLevel and MovingAverageLevel). The counts and the level
// are two independent derivations from the same inputs.
type Summary struct {
	Symbol    string    `yaml:"symbol"`
	Timeframe Timeframe `yaml:"timeframe"`
	Time      time.Time `yaml:"ts"`

	BuyCount     int `yaml:"buy_cnt"`
	SellCount    int `yaml:"sell_cnt"`
	NeutralCount int `yaml:"neutral_cnt"`

	OscillatorLevel    Level `yaml:"oscillator_level"`
	MovingAverageLevel Level `yaml:"moving_average_level"`
	Level              Level `yaml:"level"`
}

// Total is the number of available signals the counts cover. Unavailable
// signals are never included.
func (s Summary) Total() int {
	return s.BuyCount + s.SellCount + s.NeutralCount
}
