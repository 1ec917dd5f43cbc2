package types

import "time"

// TradeAction is the side of an executed backtest trade.
type TradeAction string

const (
	TradeActionBuy  TradeAction = "BUY"
	TradeActionSell TradeAction = "SELL"
)

// Well-known trade reasons recorded by the backtest engine. Strategies may
// also record free-text reasons.
const (
	TradeReasonStrategy = "strategy"
	TradeReasonStopLoss = "STOP_LOSS"
)

// Trade is one executed fill inside a backtest run. Trades are append-only
// within a run and owned by the run's result.
type Trade struct {
	Time            time.Time   `yaml:"time" csv:"time"`
	Action          TradeAction `yaml:"action" csv:"action"`
	Price           float64     `yaml:"price" csv:"price"`
	Quantity        float64     `yaml:"quantity" csv:"quantity"`
	Reason          string      `yaml:"reason" csv:"reason"`
	TransactionCost float64     `yaml:"transaction_cost" csv:"transaction_cost"`
}

// Notional is the gross value of the fill before transaction costs.
func (t Trade) Notional() float64 {
	return t.Price * t.Quantity
}
