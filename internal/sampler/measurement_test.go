package sampler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
  "performance": {
    "insert": {"p0": 10, "p50": 20, "p95": 30, "p99": 40, "p99_9": 50, "p99_99": 60},
    "find":   {"p0": 11, "p50": 21, "p95": 31, "p99": 41, "p99_9": 51, "p99_99": 61},
    "erase":  {"p0": 12, "p50": 22, "p95": 32, "p99": 42, "p99_9": 52, "p99_99": 62}
  }
}`

func TestParseMeasurement_Valid(t *testing.T) {
	m, err := ParseMeasurement([]byte(validDoc))
	require.NoError(t, err)

	assert.Equal(t, 20.0, m.Performance.Insert.P50)
	assert.Equal(t, 51.0, m.Performance.Find.P999)
	assert.Equal(t, 62.0, m.Performance.Erase.P9999)

	v, err := m.Value(OpErase, P0)
	require.NoError(t, err)
	assert.Equal(t, 12.0, v)
}

func TestParseMeasurement_NotJSON(t *testing.T) {
	_, err := ParseMeasurement([]byte("Segmentation fault (core dumped)"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestParseMeasurement_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		missing string
	}{
		{
			name:    "no performance section",
			doc:     `{"results": {}}`,
			missing: "performance",
		},
		{
			name:    "missing operation",
			doc:     `{"performance": {"insert": {"p0": 1, "p50": 2, "p95": 3, "p99": 4, "p99_9": 5, "p99_99": 6}}}`,
			missing: "performance.find",
		},
		{
			name: "missing percentile",
			doc: `{"performance": {
				"insert": {"p0": 1, "p50": 2, "p95": 3, "p99": 4, "p99_99": 6},
				"find":   {"p0": 1, "p50": 2, "p95": 3, "p99": 4, "p99_9": 5, "p99_99": 6},
				"erase":  {"p0": 1, "p50": 2, "p95": 3, "p99": 4, "p99_9": 5, "p99_99": 6}
			}}`,
			missing: "performance.insert.p99_9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMeasurement([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.missing,
				"error should name the missing field")

			assert.Equal(t, tt.missing, FirstMissingField([]byte(tt.doc)))
		})
	}
}

func TestParseMeasurement_RejectsNonNumericValues(t *testing.T) {
	doc := `{"performance": {
		"insert": {"p0": "fast", "p50": 2, "p95": 3, "p99": 4, "p99_9": 5, "p99_99": 6},
		"find":   {"p0": 1, "p50": 2, "p95": 3, "p99": 4, "p99_9": 5, "p99_99": 6},
		"erase":  {"p0": 1, "p50": 2, "p95": 3, "p99": 4, "p99_9": 5, "p99_99": 6}
	}}`
	_, err := ParseMeasurement([]byte(doc))
	require.Error(t, err)
}

func TestParseMeasurement_RejectsNegativeValues(t *testing.T) {
	doc := `{"performance": {
		"insert": {"p0": -1, "p50": 2, "p95": 3, "p99": 4, "p99_9": 5, "p99_99": 6},
		"find":   {"p0": 1, "p50": 2, "p95": 3, "p99": 4, "p99_9": 5, "p99_99": 6},
		"erase":  {"p0": 1, "p50": 2, "p95": 3, "p99": 4, "p99_9": 5, "p99_99": 6}
	}}`
	_, err := ParseMeasurement([]byte(doc))
	require.Error(t, err)
}

func TestMeasurement_Value_Unknown(t *testing.T) {
	m, err := ParseMeasurement([]byte(validDoc))
	require.NoError(t, err)

	_, err = m.Value(Operation("lookup"), P50)
	assert.Error(t, err)

	_, err = m.Value(OpInsert, Percentile("p75"))
	assert.Error(t, err)
}

func TestPercentileLabel(t *testing.T) {
	tests := []struct {
		pct  Percentile
		want string
	}{
		{P0, "P0"},
		{P50, "P50"},
		{P95, "P95"},
		{P99, "P99"},
		{P999, "P99.9"},
		{P9999, "P99.99"},
	}
	for _, tt := range tests {
		t.Run(string(tt.pct), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pct.Label())
		})
	}
}

func TestLatencies_At_CoversLadder(t *testing.T) {
	l := Latencies{P0: 1, P50: 2, P95: 3, P99: 4, P999: 5, P9999: 6}
	for i, pct := range Percentiles() {
		v, ok := l.At(pct)
		require.True(t, ok, "At(%s)", pct)
		assert.Equal(t, float64(i+1), v, fmt.Sprintf("At(%s)", pct))
	}
}
