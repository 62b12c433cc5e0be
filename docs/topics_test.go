package docs

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/household"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	yamlScenario = "yaml scenario"
	tomlScenario = "toml scenario"
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md can be loaded, and every .md file is
	// listed in readme.md.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		if !slices.Contains(topicsInReadme, topic) {
			t.Errorf("topic %q is not listed in docs/readme.md", topic)
		}
	}
}

func TestGetTopicStar(t *testing.T) {
	all, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, heading := range []string{"# Scenario", "# Taxes", "# Assets"} {
		if !strings.Contains(all, heading) {
			t.Errorf("GetTopic(*) misses %q", heading)
		}
	}
	if _, err := GetTopic("nope"); err == nil {
		t.Error("GetTopic(nope) want error, got nil")
	}
}

func TestAssetsLeftover(t *testing.T) {
	got, err := GetTopic("assets")
	if err != nil {
		t.Fatal(err)
	}
	if want := "always saved in the asset savings fund"; !strings.Contains(got, want) {
		t.Errorf("GetTopic(assets) misses %q", want)
	}
}

func TestTitle(t *testing.T) {
	got, err := Title("taxes")
	if err != nil {
		t.Fatal(err)
	}
	if want := "Taxes"; got != want {
		t.Errorf("Title(taxes) = %q, want %q", got, want)
	}
}

// TestScenarioBlocks checks that every scenario example of the documentation
// is a valid scenario.
func TestScenarioBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, file := range files {
		for _, block := range parseMarkdown(t, file) {
			count++
			format := household.YAML
			if block.Type == tomlScenario {
				format = household.TOML
			}
			if _, err := household.ParseScenario(strings.NewReader(block.Content), format); err != nil {
				t.Errorf("%s:%d: invalid scenario: %v", block.File, block.Line, err)
			}
		}
	}
	if count == 0 {
		t.Error("no scenario example found")
	}
}

// HELPER

// Block represents a fenced code block in the markdown file.
type Block struct {
	Type    string
	Content string
	File    string
	Line    int
}

// parseMarkdown parses a markdown file and returns its scenario blocks.
func parseMarkdown(t *testing.T, file string) []*Block {
	t.Helper()

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var blocks []*Block
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		lang := string(fcb.Info.Segment.Value(content))
		if lang != yamlScenario && lang != tomlScenario {
			return ast.WalkContinue, nil
		}
		var blockContent strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			blockContent.Write(line.Value(content))
		}
		blocks = append(blocks, &Block{
			Type:    lang,
			Content: blockContent.String(),
			File:    file,
			Line:    lineNumber(content, fcb.Info.Segment.Start),
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

// lineNumber computes the line number of an AST offset.
func lineNumber(source []byte, offset int) int {
	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}
