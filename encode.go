package household

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// A JSONL report is one summary per line, in year order. Lines can carry the
// name of the run under the "run" key.
const attrRun = "run"

// JSONLSink writes each summary as a line of JSON.
type JSONLSink struct {
	w   io.Writer
	run string
}

// NewJSONLSink returns a sink writing to w. The run name, if not empty, is
// added to every line.
func NewJSONLSink(w io.Writer, run string) *JSONLSink {
	return &JSONLSink{w: w, run: run}
}

func (s *JSONLSink) Append(summary YearSummary) error {
	var w jsonObjectWriter
	w.Optional(attrRun, s.run)
	w.EmbedFrom(summary)
	line, err := w.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot encode year %d: %w", summary.Year, err)
	}
	line = append(line, '\n')
	_, err = s.w.Write(line)
	return err
}

// reportLine is a line of a JSONL report. filename is for error messages only.
type reportLine struct {
	filename string
	i        int
	txt      string
}

// decodeLines reads the non empty lines of a report.
func decodeLines(filename string, r io.Reader) ([]reportLine, error) {
	var list []reportLine
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		txt := scanner.Text()
		if strings.TrimSpace(txt) == "" {
			continue
		}
		list = append(list, reportLine{filename, i, txt})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", filename, err)
	}
	return list, nil
}

// DecodeSummaries reads a JSONL report. filename is for error messages only.
// The run name of the lines, if any, is ignored.
func DecodeSummaries(filename string, r io.Reader) ([]YearSummary, error) {
	lines, err := decodeLines(filename, r)
	if err != nil {
		return nil, err
	}
	summaries := make([]YearSummary, 0, len(lines))
	for _, l := range lines {
		var s YearSummary
		if err := json.Unmarshal([]byte(l.txt), &s); err != nil {
			return nil, fmt.Errorf("parse error %s:%v: %w", l.filename, l.i, err)
		}
		if n := len(summaries); n > 0 && s.Year <= summaries[n-1].Year {
			return nil, fmt.Errorf("parse error %s:%v: year %d is not after year %d", l.filename, l.i, s.Year, summaries[n-1].Year)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
