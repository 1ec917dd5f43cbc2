// Package datasource loads bar series for the backtest CLI from CSV or
// parquet files through DuckDB.
package datasource

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/chartbeacon/chartbeacon/internal/types"
)

// DataSource serves ordered bar series from a backing file. Bars come back
// stamped with the symbol and timeframe the caller names, ascending by time.
type DataSource interface {
	// Initialize points the data source at a CSV or parquet file.
	Initialize(path string) error
	// ReadAll yields every bar in the optional time range to the caller.
	ReadAll(symbol string, timeframe types.Timeframe, start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.Bar, error) bool)
	// ReadRange returns all bars in the optional time range as a slice.
	ReadRange(symbol string, timeframe types.Timeframe, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.Bar, error)
	// Count returns the number of bars in the optional time range.
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close releases the underlying database.
	Close() error
}
