package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTradeNotional(t *testing.T) {
	trade := Trade{Price: 101.5, Quantity: 10}
	assert.InDelta(t, 1015.0, trade.Notional(), 1e-9)
}

func TestWriteResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.yaml")

	result := BacktestResult{
		ID:             "0b821a9e-6f2a-4f3c-9f2b-2f2c8f0f1a11",
		Ticker:         "AAPL",
		Timeframe:      Timeframe1d,
		Strategy:       "technical_summary",
		StartTime:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		InitialCapital: 10000,
		FinalCapital:   10500,
		TotalReturnPct: 5,
		TotalTrades:    2,
		Trades: []Trade{
			{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Action: TradeActionBuy, Price: 100, Quantity: 100, Reason: "BUY"},
			{Time: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), Action: TradeActionSell, Price: 105, Quantity: 100, Reason: "SELL"},
		},
	}

	require.NoError(t, WriteResult(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded BacktestResult
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	assert.Equal(t, result.ID, loaded.ID)
	assert.Equal(t, result.Ticker, loaded.Ticker)
	assert.Equal(t, result.FinalCapital, loaded.FinalCapital)
	require.Len(t, loaded.Trades, 2)
	assert.Equal(t, TradeActionBuy, loaded.Trades[0].Action)
}

func TestWriteResultBadPath(t *testing.T) {
	err := WriteResult(filepath.Join(t.TempDir(), "missing", "result.yaml"), BacktestResult{})
	assert.Error(t, err)
}
