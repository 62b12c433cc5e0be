// Package cmd implements the CLI application to simulate household finances.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/household"
	"github.com/google/subcommands"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Commands lists the subcommands of the application.
var Commands = []subcommands.Command{
	&simulateCmd{},
	&compareCmd{},
	&scenarioCmd{},
	&queryCmd{},
	&runsCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&simulateCmd{}, "simulation")
	c.Register(&compareCmd{}, "simulation")
	c.Register(&scenarioCmd{}, "simulation")

	c.Register(&queryCmd{}, "reports")
	c.Register(&runsCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var scenarioFile = flag.String("scenario", "", "Path to the scenario file (.yaml, .yml or .toml), the default scenario if empty")
var storeDSN = flag.String("store", "", "Store for simulation runs: a SQLite file path or a postgres:// URL")

// Verbose enables debug logs.
var Verbose = flag.Bool("v", false, "Verbose: log every simulated month")

// globalEnv maps the global flags to their environment variables.
var globalEnv = map[string]string{
	"scenario": EnvScenario,
	"store":    EnvStore,
	"v":        EnvVerbose,
}

// ApplyEnv sets every global flag that was not given on the command line from
// its environment variable, if any. It must be called after parsing.
func ApplyEnv(fs *flag.FlagSet) error {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for name, env := range globalEnv {
		value, ok := os.LookupEnv(env)
		if set[name] || !ok {
			continue
		}
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", env, value, err)
		}
	}
	return nil
}

// loadScenario returns the scenario of the -scenario flag.
func loadScenario() (household.Scenario, error) {
	if *scenarioFile == "" {
		return household.DefaultScenario(), nil
	}
	return household.LoadScenario(*scenarioFile)
}

// newLogger returns a development logger in verbose mode, a production one
// logging warnings only otherwise.
func newLogger() *zap.Logger {
	if *Verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// printMarkdown renders markdown on the terminal, or prints it raw if it
// cannot be rendered.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
