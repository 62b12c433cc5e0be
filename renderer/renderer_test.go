package renderer

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/etnz/household"
	"github.com/etnz/household/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaries(t *testing.T, sc household.Scenario, months int) []household.YearSummary {
	t.Helper()
	sink := &household.MemorySink{}
	m, err := household.NewPortfolioManager(sc, sink, nil)
	require.NoError(t, err)
	require.NoError(t, m.Run(months))
	return sink.Summaries
}

func TestSummaryMarkdown(t *testing.T) {
	got := SummaryMarkdown("Default", summaries(t, household.DefaultScenario(), 24))

	assert.True(t, strings.HasPrefix(got, "# Default"), got)
	for _, want := range []string{"## Balances", "## Taxes", "## Giving", "Asset Savings", "120000.00", "+5500.00"} {
		assert.Contains(t, got, want)
	}
	assert.Contains(t, got, "After 2 years the household holds")
}

func TestSummaryMarkdown_NoGiving(t *testing.T) {
	sc := household.DefaultScenario()
	sc.Spending.DisposableGive = 0
	got := SummaryMarkdown("Selfish", summaries(t, sc, 12))
	assert.Contains(t, got, "## Balances")
	assert.NotContains(t, got, "## Giving")
}

func TestSummaryMarkdown_Empty(t *testing.T) {
	got := SummaryMarkdown("Nothing", nil)
	assert.Contains(t, got, "# Nothing")
	assert.Contains(t, got, "No year was simulated.")
}

func TestGivingShare(t *testing.T) {
	s := household.YearSummary{
		CumulativeGiving:   household.M(250, ""),
		CumulativeSpending: household.M(750, ""),
	}
	assert.True(t, GivingShare(s).Equal(25), GivingShare(s).String())
	assert.True(t, GivingShare(household.YearSummary{}).Equal(0))
}

func TestCompareMarkdown(t *testing.T) {
	base := summaries(t, household.DefaultScenario(), 12)
	frugal := household.DefaultScenario()
	frugal.Spending.BaseSpending = 0.4
	lean := summaries(t, frugal, 12)

	got := CompareMarkdown([]Outcome{
		{Name: "base", Last: base[len(base)-1]},
		{Name: "frugal", Last: lean[len(lean)-1]},
	})
	assert.Contains(t, got, "# Scenario Comparison")
	assert.Contains(t, got, "base")
	assert.Contains(t, got, "frugal")
	assert.Less(t, strings.Index(got, "base"), strings.Index(got, "frugal"))
}

func TestRunsMarkdown(t *testing.T) {
	assert.Contains(t, RunsMarkdown(nil), "No run was stored yet.")

	got := RunsMarkdown([]store.RunInfo{
		{ID: 7, Name: "baseline", Created: time.Date(2025, time.March, 1, 10, 30, 0, 0, time.UTC), Years: 30},
	})
	assert.Contains(t, got, "baseline")
	assert.Contains(t, got, "2025-03-01 10:30:00")
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, "Default household", summaries(t, household.DefaultScenario(), 36)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestConditionalBlock(t *testing.T) {
	var buf bytes.Buffer
	ConditionalBlock(&buf, func(w io.Writer) bool {
		_, _ = io.WriteString(w, "kept")
		return true
	})
	ConditionalBlock(&buf, func(w io.Writer) bool {
		_, _ = io.WriteString(w, "dropped")
		return false
	})
	assert.Equal(t, "kept", buf.String())
}
