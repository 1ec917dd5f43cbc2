package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RunStatus is the lifecycle state of one backtest run.
type RunStatus string

const (
	RunStatusInitialized RunStatus = "INITIALIZED"
	RunStatusRunning     RunStatus = "RUNNING"
	RunStatusCompleted   RunStatus = "COMPLETED"
	RunStatusFailed      RunStatus = "FAILED"
)

// BacktestResult is the immutable report of one completed backtest run.
type BacktestResult struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id"`
	// Ticker of the simulated symbol.
	Ticker string `yaml:"ticker"`
	// Timeframe of the simulated bars.
	Timeframe Timeframe `yaml:"timeframe"`
	// Strategy is the registry name of the decision function that drove the run.
	Strategy string `yaml:"strategy"`
	// StartTime and EndTime bound the simulated bar range.
	StartTime time.Time `yaml:"start_time"`
	EndTime   time.Time `yaml:"end_time"`

	InitialCapital float64 `yaml:"initial_capital"`
	// FinalCapital is cash plus any open position marked to market at the
	// last bar's close. Open positions are not force-liquidated.
	FinalCapital float64 `yaml:"final_capital"`

	TotalReturnPct   float64 `yaml:"total_return_pct"`
	BuyHoldReturnPct float64 `yaml:"buy_hold_return_pct"`
	// Alpha is the strategy return minus the buy-and-hold return.
	Alpha float64 `yaml:"alpha"`

	// TotalTrades counts every trade record, buys and sells alike.
	TotalTrades int `yaml:"total_trades"`
	// WinningTrades counts SELL trades whose proceeds exceeded the FIFO-matched
	// cost basis; LosingTrades counts the rest of the matched sells.
	WinningTrades int     `yaml:"winning_trades"`
	LosingTrades  int     `yaml:"losing_trades"`
	WinRate       float64 `yaml:"win_rate"`

	MaxDrawdown          float64 `yaml:"max_drawdown"`
	SharpeRatio          float64 `yaml:"sharpe_ratio"`
	TotalTransactionCost float64 `yaml:"total_transaction_cost"`

	Trades []Trade `yaml:"trades"`
}

// WriteResult writes the result as YAML to the given path.
func WriteResult(path string, result BacktestResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest result to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest result to file: %w", err)
	}

	return nil
}
