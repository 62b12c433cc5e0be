package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/household"
	"github.com/etnz/household/metrics"
	"github.com/etnz/household/renderer"
	"github.com/etnz/household/store"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type simulateCmd struct {
	years   int
	name    string
	jsonl   string
	pdf     string
	metrics string
	legacy  bool
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "simulate a household and display its yearly summaries" }
func (*simulateCmd) Usage() string {
	return `hhsim [-scenario <file>] [-store <dsn>] simulate [-years <n>] [-name <run>] [-jsonl <file>] [-pdf <file>] [-metrics <file>] [-legacy]

  Simulates the household of the scenario month by month and displays its
  yearly summaries. Summaries can also be written as a JSONL report, a PDF
  report, Prometheus metrics, or stored as a run.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.years, "years", 0, "Number of years to simulate (defaults to the scenario's)")
	f.StringVar(&c.name, "name", "", "Name of the run (defaults to the scenario's name)")
	f.StringVar(&c.jsonl, "jsonl", "", "Write the yearly summaries to this JSONL file")
	f.StringVar(&c.pdf, "pdf", "", "Write a PDF report to this file")
	f.StringVar(&c.metrics, "metrics", "", "Write Prometheus metrics to this textfile")
	f.BoolVar(&c.legacy, "legacy", false, "Give the legacy share of the giving fund at the end of the run")
}

func (c *simulateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sc, err := loadScenario()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.years < 0 {
		fmt.Fprintf(os.Stderr, "Error: -years %d must not be negative\n", c.years)
		return subcommands.ExitUsageError
	}
	years := sc.Years
	if c.years > 0 {
		years = c.years
	}
	name := sc.Name
	if c.name != "" {
		name = c.name
	}

	logger := newLogger()
	defer logger.Sync()

	memory := &household.MemorySink{}
	sinks := []household.Sink{memory}

	var report *os.File
	if c.jsonl != "" {
		out, err := os.Create(c.jsonl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating report %q: %v\n", c.jsonl, err)
			return subcommands.ExitFailure
		}
		// closed explicitly once the run is over, this only covers early returns.
		defer out.Close()
		report = out
		sinks = append(sinks, household.NewJSONLSink(out, name))
	}

	var exporter *metrics.Exporter
	if c.metrics != "" {
		exporter = metrics.NewExporter(name)
		sinks = append(sinks, exporter)
	}

	var run *store.Run
	if *storeDSN != "" {
		st, err := store.Open(ctx, *storeDSN, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			return subcommands.ExitFailure
		}
		defer st.Close()
		if run, err = st.NewRun(ctx, name, sc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		sinks = append(sinks, run)
	}

	m, err := household.NewPortfolioManager(sc, household.Tee(sinks...), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := m.Run(years * household.MonthsPerYear); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if report != nil {
		if err := closeReport(report); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	title := fmt.Sprintf("Household %q", name)
	md := renderer.SummaryMarkdown(title, memory.Summaries)
	if c.legacy {
		amount, err := m.Legacy(m.Last().Years())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		md += fmt.Sprintf("\nLegacy given: %s\n", amount)
	}
	printMarkdown(md)

	if c.pdf != "" {
		if err := writePDF(c.pdf, title, memory.Summaries); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if exporter != nil {
		if err := exporter.WriteTextfile(c.metrics); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if run != nil {
		logger.Info("run stored", zap.Int64("run", run.ID()))
		fmt.Printf("Stored run %d\n", run.ID())
	}
	return subcommands.ExitSuccess
}

func writePDF(path, title string, summaries []household.YearSummary) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %q: %w", path, err)
	}
	if err := renderer.WritePDF(out, title, summaries); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// closeReport closes the JSONL report. A report that fails to close may be
// incomplete.
func closeReport(out *os.File) error {
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing report %q: %w", out.Name(), err)
	}
	return nil
}
