package renderer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/household"
	"github.com/go-pdf/fpdf"
)

const (
	pageWidth    = 297.0 // A4 landscape
	marginLeft   = 12.0
	marginRight  = 12.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// pdfText converts text to the Latin-1 encoding of the standard PDF fonts.
func pdfText(s string) string {
	s = strings.ReplaceAll(s, "€", "\x80")
	return strings.ReplaceAll(s, "£", "\xa3")
}

// pdfReport lays out the yearly summaries of a run.
type pdfReport struct {
	pdf   *fpdf.Fpdf
	title string
	rows  []household.YearSummary
}

// WritePDF writes a PDF report of a run: a title page with the final
// balances, then the yearly table.
func WritePDF(w io.Writer, title string, summaries []household.YearSummary) error {
	r := &pdfReport{
		pdf:   fpdf.New("L", "mm", "A4", ""),
		title: title,
		rows:  summaries,
	}
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetTitle(title, true)

	r.addTitlePage()
	if len(summaries) > 0 {
		r.addYearByYear()
	}
	if err := r.pdf.Error(); err != nil {
		return fmt.Errorf("cannot render %q: %w", title, err)
	}
	return r.pdf.Output(w)
}

func (r *pdfReport) addTitlePage() {
	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 28)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(40)
	r.pdf.CellFormat(contentWidth, 15, pdfText(r.title), "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "", 14)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.Ln(10)
	if len(r.rows) == 0 {
		r.pdf.CellFormat(contentWidth, 10, "No year was simulated.", "", 1, "C", false, 0, "")
		return
	}
	last := r.rows[len(r.rows)-1]
	r.pdf.CellFormat(contentWidth, 10, fmt.Sprintf("Household finances over %d years", last.Year), "", 1, "C", false, 0, "")

	r.pdf.Ln(15)
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	const boxWidth = 120.0
	left := marginLeft + (contentWidth-boxWidth)/2
	r.pdf.SetX(left)
	r.pdf.CellFormat(boxWidth, 8, "Final Balances", "1", 1, "C", true, 0, "")

	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	lines := [][2]string{
		{"Retirement", last.Retirement.String()},
		{"Giving fund", last.Giving.String()},
		{"Asset savings", last.AssetSavings.String()},
		{"Assets", fmt.Sprintf("%d worth %s", last.Assets, last.AssetValue)},
		{"Cumulative giving", last.CumulativeGiving.String()},
		{"Total", last.Total().String()},
	}
	for i, l := range lines {
		border := "L"
		if i == len(lines)-1 {
			border = "LB"
		}
		r.pdf.SetX(left)
		r.pdf.CellFormat(boxWidth/2, 7, l[0], border, 0, "L", true, 0, "")
		r.pdf.CellFormat(boxWidth/2, 7, pdfText(l[1]), strings.Replace(border, "L", "R", 1), 1, "R", true, 0, "")
	}
}

func (r *pdfReport) addYearByYear() {
	r.pdf.AddPage()
	r.drawSectionHeader("Year by Year")

	headers := []string{"Year", "Salary", "Income", "Net Income", "Withheld", "Return", "Retirement", "Giving", "Asset Savings", "Assets", "Asset Value"}
	widths := []float64{13, 25, 25, 25, 23, 22, 28, 25, 28, 14, 25}
	r.drawTableHeader(headers, widths)
	for _, s := range r.rows {
		r.drawTableRow([]string{
			strconv.Itoa(s.Year),
			s.Salary.String(),
			s.Income.String(),
			s.NetIncome.String(),
			s.TaxesWithheld.String(),
			s.TaxReturn.String(),
			s.Retirement.String(),
			s.Giving.String(),
			s.AssetSavings.String(),
			strconv.Itoa(s.Assets),
			s.AssetValue.String(),
		}, widths, s.Year%10 == 0)
	}
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(5)
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, pdfText(cell), "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
