package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/household"
	"github.com/etnz/household/renderer"
	"github.com/google/subcommands"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type compareCmd struct {
	years int
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare the outcomes of several scenarios" }
func (*compareCmd) Usage() string {
	return `hhsim compare [-years <n>] <scenario file>...

  Simulates every scenario concurrently and displays their final year side
  by side.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.years, "years", 0, "Number of years to simulate (defaults to each scenario's)")
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	files := f.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one scenario file is required")
		return subcommands.ExitUsageError
	}

	logger := newLogger()
	defer logger.Sync()

	outcomes, err := compare(ctx, files, c.years, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CompareMarkdown(outcomes))
	return subcommands.ExitSuccess
}

// compare runs each scenario file in its own goroutine.
func compare(ctx context.Context, files []string, years int, logger *zap.Logger) ([]renderer.Outcome, error) {
	outcomes := make([]renderer.Outcome, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			sc, err := household.LoadScenario(file)
			if err != nil {
				return err
			}
			n := sc.Years
			if years > 0 {
				n = years
			}
			sink := &household.MemorySink{}
			m, err := household.NewPortfolioManager(sc, sink, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			for range n {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := m.Run(household.MonthsPerYear); err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
			}
			last, _ := sink.Last()
			outcomes[i] = renderer.Outcome{Name: sc.Name, Last: last}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
