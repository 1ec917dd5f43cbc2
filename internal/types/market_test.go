package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type MarketTestSuite struct {
	suite.Suite
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(MarketTestSuite))
}

func (suite *MarketTestSuite) TestTimeframeSupported() {
	for _, tf := range AllTimeframes() {
		suite.True(tf.Supported(), "timeframe %s should be supported", tf)
	}

	suite.False(Timeframe("2h").Supported())
	suite.False(Timeframe("").Supported())
}

func (suite *MarketTestSuite) TestPeriodsPerYear() {
	suite.InDelta(252.0, Timeframe1d.PeriodsPerYear(), 1e-9)
	suite.InDelta(252*6.5, Timeframe1h.PeriodsPerYear(), 1e-9)
	suite.InDelta(52.0, Timeframe1wk.PeriodsPerYear(), 1e-9)
	suite.InDelta(12.0, Timeframe1mo.PeriodsPerYear(), 1e-9)
	suite.Zero(Timeframe("2h").PeriodsPerYear())
}

func (suite *MarketTestSuite) TestIntradayPeriodsScaleWithBarLength() {
	// 5m bars happen 78 times inside a 6.5h session.
	suite.InDelta(252*78, Timeframe5m.PeriodsPerYear(), 1e-9)
	suite.Greater(Timeframe15m.PeriodsPerYear(), Timeframe30m.PeriodsPerYear())
	suite.Greater(Timeframe30m.PeriodsPerYear(), Timeframe1h.PeriodsPerYear())
}
