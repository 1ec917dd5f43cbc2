package datasource

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/chartbeacon/chartbeacon/internal/logger"
	"github.com/chartbeacon/chartbeacon/internal/types"
)

type DuckDBTestSuite struct {
	suite.Suite
	ds      *DuckDBDataSource
	csvPath string
}

func (suite *DuckDBTestSuite) SetupTest() {
	ds, err := NewDuckDB(logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.ds = ds

	suite.csvPath = filepath.Join(suite.T().TempDir(), "bars.csv")
	data := "time,open,high,low,close,volume\n" +
		"2024-01-01 00:00:00,100,101,99,100.5,1000\n" +
		"2024-01-02 00:00:00,100.5,102,100,101.5,1100\n" +
		"2024-01-03 00:00:00,101.5,103,101,102.5,1200\n"
	suite.Require().NoError(os.WriteFile(suite.csvPath, []byte(data), 0644))
}

func (suite *DuckDBTestSuite) TearDownTest() {
	if suite.ds != nil {
		suite.ds.Close()
		suite.ds = nil
	}
}

func (suite *DuckDBTestSuite) TestInitializeRejectsUnknownExtension() {
	err := suite.ds.Initialize("bars.json")
	suite.Error(err)
}

func (suite *DuckDBTestSuite) TestReadRange() {
	suite.Require().NoError(suite.ds.Initialize(suite.csvPath))

	bars, err := suite.ds.ReadRange("AAPL", types.Timeframe1d,
		optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Require().Len(bars, 3)

	suite.Equal("AAPL", bars[0].Symbol)
	suite.Equal(types.Timeframe1d, bars[0].Timeframe)
	suite.Equal(100.5, bars[0].Close)
	suite.True(bars[0].Time.Before(bars[1].Time))
	suite.True(bars[1].Time.Before(bars[2].Time))
}

func (suite *DuckDBTestSuite) TestReadRangeWithBounds() {
	suite.Require().NoError(suite.ds.Initialize(suite.csvPath))

	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars, err := suite.ds.ReadRange("AAPL", types.Timeframe1d,
		optional.Some(start), optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Len(bars, 2)
}

func (suite *DuckDBTestSuite) TestCount() {
	suite.Require().NoError(suite.ds.Initialize(suite.csvPath))

	count, err := suite.ds.Count(optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Equal(3, count)

	end := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	count, err = suite.ds.Count(optional.None[time.Time](), optional.Some(end))
	suite.Require().NoError(err)
	suite.Equal(1, count)
}

func (suite *DuckDBTestSuite) TestReadAllStopsWhenYieldReturnsFalse() {
	suite.Require().NoError(suite.ds.Initialize(suite.csvPath))

	seen := 0
	for _, err := range suite.ds.ReadAll("AAPL", types.Timeframe1d,
		optional.None[time.Time](), optional.None[time.Time]()) {
		suite.Require().NoError(err)

		seen++
		if seen == 2 {
			break
		}
	}

	suite.Equal(2, seen)
}

func TestDuckDBTestSuite(t *testing.T) {
	suite.Run(t, new(DuckDBTestSuite))
}
