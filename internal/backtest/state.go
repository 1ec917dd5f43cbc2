package backtest

import (
	"time"

	"github.com/chartbeacon/chartbeacon/internal/strategy"
	"github.com/chartbeacon/chartbeacon/internal/types"
)

// lot is one FIFO parcel of an open position. unitCost includes the buy-side
// transaction cost so win/loss matching compares against the true basis.
type lot struct {
	quantity float64
	unitCost float64
}

// runState is the mutable ledger of one backtest run. It is owned by a single
// Run call and discarded when the run ends.
type runState struct {
	config Config

	cash           float64
	position       float64
	avgEntryPrice  float64
	lastTradeIndex int

	lots      []lot
	trades    []types.Trade
	totalCost float64
	equity    []float64
}

func newRunState(config Config, initialCapital float64) *runState {
	return &runState{
		config:         config,
		cash:           initialCapital,
		lastTradeIndex: -1,
	}
}

// view is the read-only snapshot handed to strategies.
func (s *runState) view() strategy.PortfolioView {
	return strategy.PortfolioView{
		Cash:           s.cash,
		Position:       s.position,
		AvgEntryPrice:  s.avgEntryPrice,
		LastTradeIndex: s.lastTradeIndex,
	}
}

// buy fills a fraction of the committable cash at the given price. The budget
// covers notional plus transaction cost so cash never goes negative. A fill
// below the minimum notional is skipped.
func (s *runState) buy(index int, ts time.Time, price, fraction float64, reason string) bool {
	if price <= 0 {
		return false
	}

	budget := s.cash * s.config.MaxPositionRatio * fraction
	notional := budget / (1 + s.config.TransactionCostRate)
	if notional < s.config.MinTradeNotional {
		return false
	}

	quantity := notional / price
	cost := notional * s.config.TransactionCostRate

	s.cash -= notional + cost
	s.avgEntryPrice = (s.avgEntryPrice*s.position + price*quantity) / (s.position + quantity)
	s.position += quantity
	s.lastTradeIndex = index
	s.totalCost += cost
	s.lots = append(s.lots, lot{quantity: quantity, unitCost: (notional + cost) / quantity})
	s.trades = append(s.trades, types.Trade{
		Time:            ts,
		Action:          types.TradeActionBuy,
		Price:           price,
		Quantity:        quantity,
		Reason:          reason,
		TransactionCost: cost,
	})

	return true
}

// sell liquidates a fraction of the open position at the given price, netting
// the transaction cost out of the proceeds. Selling with no position or below
// the minimum notional is skipped.
func (s *runState) sell(index int, ts time.Time, price, fraction float64, reason string) bool {
	if s.position <= 0 || price <= 0 {
		return false
	}

	quantity := s.position * fraction
	notional := quantity * price
	if notional < s.config.MinTradeNotional {
		return false
	}

	cost := notional * s.config.TransactionCostRate

	s.cash += notional - cost
	s.position -= quantity
	if s.position <= 0 {
		s.position = 0
		s.avgEntryPrice = 0
	}
	s.lastTradeIndex = index
	s.totalCost += cost
	s.trades = append(s.trades, types.Trade{
		Time:            ts,
		Action:          types.TradeActionSell,
		Price:           price,
		Quantity:        quantity,
		Reason:          reason,
		TransactionCost: cost,
	})

	return true
}

// markEquity appends cash plus position marked at the close to the equity
// curve.
func (s *runState) markEquity(close float64) {
	s.equity = append(s.equity, s.cash+s.position*close)
}

// stopLossHit reports whether the stop loss should force a full sell at this
// close.
func (s *runState) stopLossHit(close float64) bool {
	if s.config.StopLossRatio <= 0 || s.position <= 0 || s.avgEntryPrice <= 0 {
		return false
	}

	return close <= s.avgEntryPrice*(1-s.config.StopLossRatio)
}
