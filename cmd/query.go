package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/household"
	"github.com/google/subcommands"
)

type queryCmd struct {
	path string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query a JSONL report with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `hhsim query -path <jsonpath> <report.jsonl>

  Evaluates the JSONPath expression on every year of the report, and prints
  one line per year with the result. Reads the standard input if the file is
  '-'.

  Example: hhsim query -path '$.retirement' report.jsonl
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "path", "", "JSONPath expression, like $.retirement")
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.path == "" || f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: -path and exactly one report are required")
		return subcommands.ExitUsageError
	}
	filename := f.Arg(0)
	var r io.Reader = os.Stdin
	if filename != "-" {
		in, err := os.Open(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer in.Close()
		r = in
	}

	matches, err := household.Query(filename, r, c.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, m := range matches {
		value, err := json.Marshal(m.Value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: line %d: %v\n", m.Line, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%d\t%s\n", m.Year, value)
	}
	return subcommands.ExitSuccess
}
