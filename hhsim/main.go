// Command hhsim simulates the finances of a household.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"

	"github.com/etnz/household/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion.
func completion() *complete.Command {
	yaml, yml, toml := predict.Files("*.yaml"), predict.Files("*.yml"), predict.Files("*.toml")
	scenarios := complete.PredictFunc(func(prefix string) []string {
		return slices.Concat(yaml.Predict(prefix), yml.Predict(prefix), toml.Predict(prefix))
	})
	sub := map[string]*complete.Command{
		"simulate": {Flags: map[string]complete.Predictor{
			"years":   predict.Something,
			"name":    predict.Something,
			"jsonl":   predict.Files("*.jsonl"),
			"pdf":     predict.Files("*.pdf"),
			"metrics": predict.Files("*.prom"),
			"legacy":  predict.Nothing,
		}},
		"compare": {
			Flags: map[string]complete.Predictor{"years": predict.Something},
			Args:  scenarios,
		},
		"scenario": {Flags: map[string]complete.Predictor{"format": predict.Set{"yaml", "toml"}}},
		"query": {
			Flags: map[string]complete.Predictor{"path": predict.Something},
			Args:  predict.Files("*.jsonl"),
		},
		"runs":  {Flags: map[string]complete.Predictor{"run": predict.Something}},
		"topic": {Args: predict.Set{"scenario", "simulation", "taxes", "investments", "assets", "reports"}},
	}
	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"scenario": scenarios,
			"store":    predict.Files("*.db"),
			"v":        predict.Nothing,
		},
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: cannot load .env: %v\n", err)
	}

	name := path.Base(os.Args[0])
	completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if err := cmd.ApplyEnv(flag.CommandLine); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	if sub := flag.Arg(0); sub != "" && !isCommand(sub) {
		if ok, code := cmd.RunExtension(sub, flag.Args()[1:]); ok {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func isCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range cmd.Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}
