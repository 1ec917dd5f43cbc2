package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type UtilsTestSuite struct {
	suite.Suite
}

func TestUtilsSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

// sampleConfig is a sample config struct for schema reflection tests.
type sampleConfig struct {
	Rate    float64  `json:"rate" jsonschema:"description=Transaction cost rate"`
	Periods int      `json:"periods" jsonschema:"description=Cooldown length in bars"`
	Enabled bool     `json:"enabled"`
	Tags    []string `json:"tags,omitempty"`
}

func (suite *UtilsTestSuite) TestGetSchemaFromConfig() {
	schema, err := GetSchemaFromConfig(sampleConfig{})

	suite.NoError(err)
	suite.NotEmpty(schema)

	// Verify it's valid JSON
	var result map[string]interface{}
	err = json.Unmarshal([]byte(schema), &result)
	suite.NoError(err)

	// Schema uses $ref to reference definitions in $defs
	suite.Contains(result, "$schema")
	suite.Contains(result, "$ref")
	suite.Contains(result, "$defs")
}
