package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/report"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportRowsToCSV writes a header (keyHeader, amount_usd) followed by one record per row.
func (r *ExportRepositoryImpl) ExportRowsToCSV(keyHeader string, set entity.CostRowSet) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{keyHeader, "amount_usd"}); err != nil {
		return nil, fmt.Errorf("error writing CSV header: %w", err)
	}
	if err := writer.WriteAll(report.ExportRows(set)); err != nil {
		return nil, fmt.Errorf("error writing CSV rows: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportToJSON encodes v with two-space indentation.
func (r *ExportRepositoryImpl) ExportToJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return nil, fmt.Errorf("error encoding JSON data: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	headerColor       = [3]int{40, 40, 40}
	headerTextColor   = [3]int{255, 255, 255}
	sectionTitleColor = [3]int{0, 0, 0}
	bodyTextColor     = [3]int{50, 50, 50}
	lineColor         = [3]int{200, 200, 200}
)

// ExportReportToPDF renders the document as a single A4 report.
func (r *ExportRepositoryImpl) ExportReportToPDF(doc entity.ReportDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  AWS Cost Report"), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Date (yesterday): %s", doc.Date)), "", 1, "L", true, 0, "")
	pdf.Ln(6)

	drawTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(3)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	}

	drawCostTable := func(s *entity.CostSection) {
		if s == nil {
			return
		}
		drawTitle(s.Title)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(150, 7, tr(s.KeyHeader), "B", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, "Amount", "B", 1, "R", false, 0, "")

		pdf.SetFont("Arial", "", 9)
		if len(s.Rows) == 0 {
			pdf.CellFormat(190, 6, "No charges", "", 1, "L", false, 0, "")
		}
		for _, row := range s.Rows {
			pdf.CellFormat(150, 6, tr(truncateLabel(row.Label, 90)), "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, report.FormatMoney(row.Amount), "", 1, "R", false, 0, "")
		}
		if s.Hidden > 0 {
			pdf.SetTextColor(120, 120, 120)
			pdf.CellFormat(190, 6, fmt.Sprintf("%d more not shown", s.Hidden), "", 1, "L", false, 0, "")
			pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(150, 7, "Total", "T", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, report.FormatMoney(s.Total), "T", 1, "R", false, 0, "")
		pdf.Ln(6)
	}

	drawCostTable(&doc.Yesterday)

	if t := doc.Trend; t != nil {
		drawTitle(fmt.Sprintf("Daily trend (%d days)", len(t.Points)))
		drawTrendBars(pdf, t)
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(190, 6, fmt.Sprintf("Min %s / Avg %s / Max %s",
			report.FormatMoney(t.Stats.Min), report.FormatMoney(t.Stats.Avg), report.FormatMoney(t.Stats.Max)), "", 1, "L", false, 0, "")
		if t.DayOverDay != nil {
			pdf.CellFormat(190, 6, "Day over day: "+describeChange(*t.DayOverDay), "", 1, "L", false, 0, "")
		}
		if t.WeekOverWeek != nil {
			pdf.CellFormat(190, 6, "Week over week: "+describeChange(*t.WeekOverWeek), "", 1, "L", false, 0, "")
		}
		pdf.Ln(6)
	}

	drawCostTable(doc.MonthToDate)

	if b := doc.Budget; b != nil {
		drawTitle("Budget: " + b.Name)
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(190, 6, fmt.Sprintf("Limit %s / Actual %s / Forecast %s",
			report.FormatMoney(b.Limit), report.FormatMoney(b.Actual), report.FormatMoney(b.Forecast)), "", 1, "L", false, 0, "")
		drawUtilizationBar(pdf, b)
		pdf.Ln(6)
	}

	if f := doc.Forecast; f != nil {
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(190, 6, tr(fmt.Sprintf("Forecast month-end spend: %s (%s still expected before %s)",
			report.FormatMoney(f.MonthEnd), report.FormatMoney(f.Remaining), f.Through.Format(entity.DateLayout))), "", "L", false)
		pdf.Ln(4)
	}

	drawCostTable(doc.Drivers)
	drawCostTable(doc.Regions)

	if doc.ArchiveURI != "" {
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(190, 6, tr("Archive: "+doc.ArchiveURI), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error generating PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// drawTrendBars draws one vertical bar per day, scaled to the series maximum.
func drawTrendBars(pdf *gofpdf.Fpdf, t *entity.TrendSection) {
	const chartHeight = 30.0
	const barWidth = 12.0
	const gap = 4.0

	maxAmount := t.Stats.Max.InexactFloat64()
	x0, y0 := pdf.GetX(), pdf.GetY()
	pdf.SetFont("Arial", "", 7)

	for i, p := range t.Points {
		h := 0.0
		if maxAmount > 0 {
			h = p.Amount.InexactFloat64() / maxAmount * chartHeight
		}
		x := x0 + float64(i)*(barWidth+gap)
		if i == len(t.Points)-1 {
			pdf.SetFillColor(41, 128, 185)
		} else {
			pdf.SetFillColor(160, 190, 220)
		}
		pdf.Rect(x, y0+chartHeight-h, barWidth, h, "F")
		pdf.Text(x, y0+chartHeight+4, p.Date.Format("01/02"))
	}

	pdf.SetXY(x0, y0+chartHeight+7)
}

// drawUtilizationBar draws budget utilization in the tier colour, capped at the bar width.
func drawUtilizationBar(pdf *gofpdf.Fpdf, b *entity.BudgetSnapshot) {
	const width = 120.0
	const height = 6.0

	r, g, bl := tierRGB(b.Tier)
	x, y := pdf.GetX(), pdf.GetY()+1

	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.Rect(x, y, width, height, "D")

	filled := b.UtilizationPct / 100 * width
	if filled > width {
		filled = width
	}
	if filled > 0 {
		pdf.SetFillColor(r, g, bl)
		pdf.Rect(x, y, filled, height, "F")
	}

	pdf.SetXY(x+width+4, y)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(r, g, bl)
	pdf.CellFormat(60, height, fmt.Sprintf("%.1f%% (%s)", b.UtilizationPct, b.Tier), "", 1, "L", false, 0, "")
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
}

func tierRGB(t entity.BudgetTier) (int, int, int) {
	hex := t.Color()
	r, _ := strconv.ParseInt(hex[1:3], 16, 32)
	g, _ := strconv.ParseInt(hex[3:5], 16, 32)
	b, _ := strconv.ParseInt(hex[5:7], 16, 32)
	return int(r), int(g), int(b)
}

func describeChange(c entity.ChangeResult) string {
	return fmt.Sprintf("%s %s", c.Direction, report.FormatPercent(c.PctChange))
}

// truncateLabel shortens label to at most limit runes, ending in "...".
func truncateLabel(label string, limit int) string {
	runes := []rune(label)
	if len(runes) <= limit {
		return label
	}
	return string(runes[:limit-3]) + "..."
}
