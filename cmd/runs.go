package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/household/renderer"
	"github.com/etnz/household/store"
	"github.com/google/subcommands"
)

type runsCmd struct {
	run int64
}

func (*runsCmd) Name() string     { return "runs" }
func (*runsCmd) Synopsis() string { return "list the stored runs, or display one" }
func (*runsCmd) Usage() string {
	return `hhsim -store <dsn> runs [-run <id>]

  Lists the runs of the store, latest first. With -run, displays the yearly
  summaries of that run.
`
}

func (c *runsCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.run, "run", 0, "Identifier of the run to display")
}

func (c *runsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if *storeDSN == "" {
		fmt.Fprintf(os.Stderr, "Error: a store is required, use -store or %s\n", EnvStore)
		return subcommands.ExitUsageError
	}
	logger := newLogger()
	defer logger.Sync()

	st, err := store.Open(ctx, *storeDSN, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	if c.run == 0 {
		runs, err := st.Runs(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.RunsMarkdown(runs))
		return subcommands.ExitSuccess
	}

	summaries, err := st.Summaries(ctx, c.run)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SummaryMarkdown(fmt.Sprintf("Run %d", c.run), summaries))
	return subcommands.ExitSuccess
}
