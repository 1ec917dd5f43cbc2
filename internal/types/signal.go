package types

// Signal is the discrete classification of a single indicator value.
type Signal string

const (
	// SignalBuy means the indicator favors entering a long position
	SignalBuy Signal = "BUY"
	// SignalSell means the indicator favors exiting a long position
	SignalSell Signal = "SELL"
	// SignalNeutral means the indicator is inside its neutral band
	SignalNeutral Signal = "NEUTRAL"
	// SignalUnavailable means the indicator value was missing or had
	// insufficient history. Unavailable signals are excluded from counts,
	// never defaulted to neutral.
	SignalUnavailable Signal = "UNAVAILABLE"
)

// Available reports whether the signal participates in summary counts.
func (s Signal) Available() bool {
	return s == SignalBuy || s == SignalSell || s == SignalNeutral
}

// Level is the five-way aggregate recommendation.
type Level string

const (
	LevelStrongBuy  Level = "STRONG_BUY"
	LevelBuy        Level = "BUY"
	LevelNeutral    Level = "NEUTRAL"
	LevelSell       Level = "SELL"
	LevelStrongSell Level = "STRONG_SELL"
)

// Ordinal maps a level to its signed score: STRONG_SELL=-2 up to STRONG_BUY=2.
func (l Level) Ordinal() int {
	switch l {
	case LevelStrongBuy:
		return 2
	case LevelBuy:
		return 1
	case LevelSell:
		return -1
	case LevelStrongSell:
		return -2
	case LevelNeutral:
		return 0
	default:
		return 0
	}
}

// LevelFromOrdinal is the inverse of Ordinal. Scores outside [-2, 2] clamp to
// the nearest strong level.
func LevelFromOrdinal(score int) Level {
	switch {
	case score >= 2:
		return LevelStrongBuy
	case score == 1:
		return LevelBuy
	case score == -1:
		return LevelSell
	case score <= -2:
		return LevelStrongSell
	default:
		return LevelNeutral
	}
}

// Bullish reports whether the level recommends buying.
func (l Level) Bullish() bool {
	return l == LevelBuy || l == LevelStrongBuy
}

// Bearish reports whether the level recommends selling.
func (l Level) Bearish() bool {
	return l == LevelSell || l == LevelStrongSell
}
