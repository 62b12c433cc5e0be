package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/etnz/household"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the yearly summaries of a run as markdown tables.
func SummaryMarkdown(title string, summaries []household.YearSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)

	if len(summaries) == 0 {
		doc.PlainText("No year was simulated.")
		return doc.String()
	}
	last := summaries[len(summaries)-1]
	doc.PlainText(fmt.Sprintf("After %d years the household holds %s, with %d assets.", last.Year, last.Total(), last.Assets))

	doc.H2("Balances")
	balances := md.TableSet{
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
		Header: []string{"Year", "Salary", "Income", "Retirement", "Giving", "Asset Savings", "Assets", "Asset Value"},
		Rows:   [][]string{},
	}
	for _, s := range summaries {
		balances.Rows = append(balances.Rows, []string{
			strconv.Itoa(s.Year),
			s.Salary.String(),
			s.Income.String(),
			s.Retirement.String(),
			s.Giving.String(),
			s.AssetSavings.String(),
			strconv.Itoa(s.Assets),
			s.AssetValue.String(),
		})
	}
	doc.Table(balances)

	doc.H2("Taxes")
	taxes := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Year", "Net Income", "Withheld", "Return", "Capital Gains"},
		Rows:      [][]string{},
	}
	for _, s := range summaries {
		taxes.Rows = append(taxes.Rows, []string{
			strconv.Itoa(s.Year),
			s.NetIncome.String(),
			s.TaxesWithheld.String(),
			s.TaxReturn.SignedString(),
			s.CapitalGainsTax.String(),
		})
	}
	doc.Table(taxes)
	if err := doc.Build(); err != nil {
		return fmt.Sprintf("error rendering %q: %v", title, err)
	}

	ConditionalBlock(&buf, func(w io.Writer) bool {
		giving := md.NewMarkdown(w)
		giving.PlainText("")
		giving.H2("Giving")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{"Year", "Cumulative Giving", "Cumulative Spending", "Giving Share"},
			Rows:      [][]string{},
		}
		for _, s := range summaries {
			table.Rows = append(table.Rows, []string{
				strconv.Itoa(s.Year),
				s.CumulativeGiving.String(),
				s.CumulativeSpending.String(),
				GivingShare(s).String(),
			})
		}
		giving.Table(table)
		if err := giving.Build(); err != nil {
			return false
		}
		return last.CumulativeGiving.IsPositive()
	})

	return buf.String()
}

// GivingShare returns the share of the household outflows that was given.
func GivingShare(s household.YearSummary) household.Percent {
	total := s.CumulativeGiving.Add(s.CumulativeSpending)
	if !total.IsPositive() {
		return 0
	}
	return household.PercentOf(s.CumulativeGiving.Float() / total.Float())
}
