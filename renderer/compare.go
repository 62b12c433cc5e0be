package renderer

import (
	"bytes"
	"strconv"

	"github.com/etnz/household"
	md "github.com/nao1215/markdown"
)

// Outcome is the last yearly summary of a named run.
type Outcome struct {
	Name string
	Last household.YearSummary
}

// CompareMarkdown renders the outcomes of several runs side by side.
func CompareMarkdown(outcomes []Outcome) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Scenario Comparison")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Scenario", "Years", "Retirement", "Giving", "Asset Savings", "Assets", "Cumulative Giving", "Total"},
		Rows:   [][]string{},
	}
	for _, o := range outcomes {
		s := o.Last
		table.Rows = append(table.Rows, []string{
			o.Name,
			strconv.Itoa(s.Year),
			s.Retirement.String(),
			s.Giving.String(),
			s.AssetSavings.String(),
			strconv.Itoa(s.Assets),
			s.CumulativeGiving.String(),
			s.Total().String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
