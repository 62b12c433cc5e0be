package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/household"
	"github.com/google/subcommands"
)

type scenarioCmd struct {
	format string
}

func (*scenarioCmd) Name() string     { return "scenario" }
func (*scenarioCmd) Synopsis() string { return "print the scenario, the default one without -scenario" }
func (*scenarioCmd) Usage() string {
	return `hhsim [-scenario <file>] scenario [-format yaml|toml]

  Prints the scenario with all its values, defaults included. Use it to
  start a new scenario file.
`
}

func (c *scenarioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "yaml", "Output format (yaml, toml)")
}

func (c *scenarioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format := household.Format(c.format)
	if format != household.YAML && format != household.TOML {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	sc, err := loadScenario()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := sc.Encode(os.Stdout, format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
