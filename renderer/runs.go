package renderer

import (
	"bytes"
	"strconv"
	"time"

	"github.com/etnz/household/store"
	md "github.com/nao1215/markdown"
)

// RunsMarkdown renders the list of stored runs.
func RunsMarkdown(runs []store.RunInfo) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Stored Runs")
	if len(runs) == 0 {
		doc.PlainText("No run was stored yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"ID", "Name", "Created", "Years"},
		Rows:      [][]string{},
	}
	for _, r := range runs {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Name,
			r.Created.Format(time.DateTime),
			strconv.Itoa(r.Years),
		})
	}
	doc.Table(table)
	return doc.String()
}
