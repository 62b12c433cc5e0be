package household

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// Match is the value of a JSONPath expression on a line of a report.
type Match struct {
	Line  int
	Year  int
	Value any
}

// Query evaluates a JSONPath expression, like "$.retirement", on every line
// of a JSONL report. Lines where the path does not resolve are skipped.
// filename is for error messages only.
func Query(filename string, r io.Reader, path string) ([]Match, error) {
	eval, err := jsonpath.New(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	lines, err := decodeLines(filename, r)
	if err != nil {
		return nil, err
	}
	var matches []Match
	for _, l := range lines {
		var jobj map[string]any
		if err := json.Unmarshal([]byte(l.txt), &jobj); err != nil {
			return nil, fmt.Errorf("parse error %s:%v: not a correct json: %w", l.filename, l.i, err)
		}
		jval, err := eval(context.Background(), jobj)
		if err != nil {
			continue
		}
		// jsonpath returns a list for wildcards and filters, a value otherwise.
		if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
			jval = jlist[0]
		}
		year, _ := jobj["year"].(float64)
		matches = append(matches, Match{Line: l.i, Year: int(year), Value: jval})
	}
	return matches, nil
}
