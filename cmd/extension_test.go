package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	if testing.Short() {
		t.Skip("builds binaries")
	}
	tempDir := t.TempDir()

	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvScenario, EnvScenario, EnvStore, EnvStore, EnvVerbose, EnvVerbose)

	helloCmdPath := filepath.Join(tempDir, "hhsim-hello")
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write hhsim-hello source: %v", err)
	}
	build := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile hhsim-hello: %v", err)
	}

	binary := filepath.Join(tempDir, "hhsim")
	build = exec.Command("go", "build", "-o", binary, "../hhsim")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile hhsim binary: %v", err)
	}

	scenario := filepath.Join(tempDir, "family.yaml")
	dsn := filepath.Join(tempDir, "runs.db")
	args := []string{
		"-scenario", scenario,
		"-store", dsn,
		"-v",
		"hello", "world",
	}

	run := exec.Command(binary, args...)
	run.Dir = tempDir
	run.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}

	var stdout, stderr bytes.Buffer
	run.Stdout = &stdout
	run.Stderr = &stderr
	if err := run.Run(); err != nil {
		t.Fatalf("hhsim command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, want := range []string{
		EnvScenario + "=" + scenario,
		EnvStore + "=" + dsn,
		EnvVerbose + "=true",
		"args=[world]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, but got:\n%s", want, output)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	newFlags := func() *flag.FlagSet {
		fs := flag.NewFlagSet("hhsim", flag.ContinueOnError)
		fs.String("scenario", "", "")
		fs.String("store", "", "")
		fs.Bool("v", false, "")
		return fs
	}

	t.Run("env fills unset flags", func(t *testing.T) {
		t.Setenv(EnvScenario, "family.toml")
		t.Setenv(EnvVerbose, "true")
		fs := newFlags()
		if err := fs.Parse(nil); err != nil {
			t.Fatal(err)
		}
		if err := ApplyEnv(fs); err != nil {
			t.Fatalf("ApplyEnv() error = %v", err)
		}
		if got := fs.Lookup("scenario").Value.String(); got != "family.toml" {
			t.Errorf("scenario = %q, want %q", got, "family.toml")
		}
		if got := fs.Lookup("v").Value.String(); got != "true" {
			t.Errorf("v = %q, want true", got)
		}
		if got := fs.Lookup("store").Value.String(); got != "" {
			t.Errorf("store = %q, want empty", got)
		}
	})

	t.Run("command line wins", func(t *testing.T) {
		t.Setenv(EnvScenario, "family.toml")
		fs := newFlags()
		if err := fs.Parse([]string{"-scenario", "single.yaml"}); err != nil {
			t.Fatal(err)
		}
		if err := ApplyEnv(fs); err != nil {
			t.Fatalf("ApplyEnv() error = %v", err)
		}
		if got := fs.Lookup("scenario").Value.String(); got != "single.yaml" {
			t.Errorf("scenario = %q, want %q", got, "single.yaml")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv(EnvVerbose, "maybe")
		fs := newFlags()
		if err := fs.Parse(nil); err != nil {
			t.Fatal(err)
		}
		if err := ApplyEnv(fs); err == nil {
			t.Error("ApplyEnv() expected an error for a non boolean verbose")
		}
	})
}
