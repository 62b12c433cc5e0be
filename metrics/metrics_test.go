package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/household"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter(t *testing.T) {
	e := NewExporter("test")
	s := household.YearSummary{
		Year:       2,
		Salary:     household.M(123600, ""),
		Retirement: household.M(25000.5, ""),
		Assets:     1,
	}
	require.NoError(t, e.Append(s))

	assert.Equal(t, 123600.0, testutil.ToFloat64(e.Gauge(2, "salary")))
	assert.Equal(t, 25000.5, testutil.ToFloat64(e.Gauge(2, "retirement")))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.Gauge(2, "assets")))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.years))

	// every field but the year is a series
	assert.Equal(t, len(household.FieldNames)-1, testutil.CollectAndCount(e.fields))
}

func TestWriteTextfile(t *testing.T) {
	e := NewExporter("test")
	require.NoError(t, e.Append(household.YearSummary{Year: 1, Giving: household.M(10, "")}))

	path := filepath.Join(t.TempDir(), "household.prom")
	require.NoError(t, e.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.True(t, strings.Contains(text, `household_summary_value{field="giving",run="test",year="1"} 10`), text)
	assert.True(t, strings.Contains(text, `household_years_simulated_total{run="test"} 1`), text)
}
