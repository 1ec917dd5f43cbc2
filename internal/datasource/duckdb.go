package datasource

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/chartbeacon/chartbeacon/internal/logger"
	"github.com/chartbeacon/chartbeacon/internal/types"
	"github.com/chartbeacon/chartbeacon/pkg/errors"
)

// DuckDBDataSource serves bars from a DuckDB view over a CSV or parquet
// file. The file needs time, open, high, low, close and volume columns.
type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDB creates an in-memory DuckDB data source. Call Initialize to point
// it at a bar file.
func NewDuckDB(log *logger.Logger) (*DuckDBDataSource, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatasourceInit, "failed to open DuckDB", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("initializing DuckDB data source", zap.String("path", path))

	if _, err := d.db.Exec(`DROP VIEW IF EXISTS bars;`); err != nil {
		return errors.Wrap(errors.ErrCodeDatasourceInit, "failed to drop existing view", err)
	}

	// CREATE VIEW has no placeholder support, so the reader call is inlined
	var reader string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		reader = fmt.Sprintf("read_csv_auto('%s')", path)
	case ".parquet":
		reader = fmt.Sprintf("read_parquet('%s')", path)
	default:
		return errors.Newf(errors.ErrCodeDatasourceInit, "unsupported bar file extension %q", filepath.Ext(path))
	}

	query := fmt.Sprintf(`CREATE VIEW bars AS SELECT * FROM %s;`, reader)
	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeDatasourceInit, err, "failed to create bar view over %s", path)
	}

	return nil
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	builder := d.sq.Select("COUNT(*)").From("bars")
	builder = applyTimeRange(builder, start, end)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeDatasourceQuery, "failed to build count query", err)
	}

	var count int
	if err := d.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeDatasourceQuery, "failed to count bars", err)
	}

	return count, nil
}

// ReadAll implements DataSource with batch processing.
func (d *DuckDBDataSource) ReadAll(symbol string, timeframe types.Timeframe, start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.Bar, error) bool) {
	const batchSize = 1000

	return func(yield func(types.Bar, error) bool) {
		d.logger.Debug("reading bars from DuckDB",
			zap.String("symbol", symbol),
			zap.String("timeframe", string(timeframe)),
		)

		query, args, err := d.buildRangeQuery(start, end)
		if err != nil {
			yield(types.Bar{}, err)

			return
		}

		stmt, err := d.db.Prepare(query)
		if err != nil {
			yield(types.Bar{}, errors.Wrap(errors.ErrCodeDatasourceQuery, "failed to prepare bar query", err))

			return
		}
		defer stmt.Close()

		rows, err := stmt.Query(args...)
		if err != nil {
			yield(types.Bar{}, errors.Wrap(errors.ErrCodeDatasourceQuery, "failed to query bars", err))

			return
		}
		defer rows.Close()

		batch := make([]types.Bar, 0, batchSize)

		for rows.Next() {
			bar, err := scanBar(rows, symbol, timeframe)
			if err != nil {
				yield(types.Bar{}, err)

				return
			}

			batch = append(batch, bar)

			if len(batch) >= batchSize {
				for _, b := range batch {
					if !yield(b, nil) {
						return
					}
				}

				batch = batch[:0]
			}
		}

		for _, b := range batch {
			if !yield(b, nil) {
				return
			}
		}
	}
}

// ReadRange implements DataSource.
func (d *DuckDBDataSource) ReadRange(symbol string, timeframe types.Timeframe, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.Bar, error) {
	bars := make([]types.Bar, 0, 1000)

	for bar, err := range d.ReadAll(symbol, timeframe, start, end) {
		if err != nil {
			return nil, err
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}

func (d *DuckDBDataSource) buildRangeQuery(start optional.Option[time.Time], end optional.Option[time.Time]) (string, []interface{}, error) {
	builder := d.sq.
		Select("time", "open", "high", "low", "close", "volume").
		From("bars")
	builder = applyTimeRange(builder, start, end)

	query, args, err := builder.OrderBy("time ASC").ToSql()
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeDatasourceQuery, "failed to build bar query", err)
	}

	return query, args, nil
}

func applyTimeRange(builder squirrel.SelectBuilder, start optional.Option[time.Time], end optional.Option[time.Time]) squirrel.SelectBuilder {
	if start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"time": start.Unwrap()})
	}

	if end.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"time": end.Unwrap()})
	}

	return builder
}

func scanBar(rows *sql.Rows, symbol string, timeframe types.Timeframe) (types.Bar, error) {
	var (
		timestamp                      time.Time
		open, high, low, close, volume float64
	)

	if err := rows.Scan(&timestamp, &open, &high, &low, &close, &volume); err != nil {
		return types.Bar{}, errors.Wrap(errors.ErrCodeDatasourceQuery, "failed to scan bar row", err)
	}

	return types.Bar{
		Symbol:    symbol,
		Timeframe: timeframe,
		Time:      timestamp,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    volume,
	}, nil
}
