// Package report builds the report document and renders it for e-mail delivery.
package report

import (
	"fmt"
	"time"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/analytics"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Input gathers every figure the report can show. Nil fields are omitted from the document.
type Input struct {
	ReportDate  time.Time
	GeneratedAt time.Time
	TopN        int

	Yesterday   entity.CostRowSet
	MonthToDate *entity.CostRowSet
	Drivers     *entity.CostRowSet
	Regions     *entity.CostRowSet
	Trend       []entity.TrendPoint
	Budget      *entity.BudgetSnapshot
	Forecast    *entity.ForecastSection

	ArchiveURI string
}

// Build assembles the document. Budget and forecast belong to the month-to-date view
// and are dropped when month-to-date is absent.
func Build(in Input) entity.ReportDocument {
	doc := entity.ReportDocument{
		Date:        in.ReportDate.Format(entity.DateLayout),
		GeneratedAt: in.GeneratedAt,
		TopN:        in.TopN,
		Yesterday:   costSection(fmt.Sprintf("Yesterday by service (top %d)", in.TopN), "Service", in.Yesterday, in.TopN),
		ArchiveURI:  in.ArchiveURI,
	}

	if in.MonthToDate != nil {
		s := costSection(fmt.Sprintf("Month-to-date by service (top %d)", in.TopN), "Service", *in.MonthToDate, in.TopN)
		doc.MonthToDate = &s
		doc.Budget = in.Budget
		doc.Forecast = in.Forecast
	}
	if in.Drivers != nil {
		s := costSection(fmt.Sprintf("Yesterday drivers by usage type (top %d)", in.TopN), "Usage type", *in.Drivers, in.TopN)
		doc.Drivers = &s
	}
	if in.Regions != nil {
		s := costSection(fmt.Sprintf("Yesterday by region (top %d)", in.TopN), "Region", *in.Regions, in.TopN)
		doc.Regions = &s
	}
	if len(in.Trend) >= 2 {
		stats, _ := analytics.Stats(in.Trend)
		doc.Trend = &entity.TrendSection{
			Points:       in.Trend,
			Sparkline:    analytics.Sparkline(analytics.Amounts(in.Trend)),
			Stats:        stats,
			DayOverDay:   analytics.DayOverDay(in.Trend),
			WeekOverWeek: analytics.WeekOverWeek(in.Trend),
		}
	}

	return doc
}

func costSection(title, keyHeader string, set entity.CostRowSet, topN int) entity.CostSection {
	rows := analytics.Top(set, topN)
	return entity.CostSection{
		Title:     title,
		KeyHeader: keyHeader,
		Rows:      rows,
		Total:     set.Total,
		Hidden:    len(set.Rows) - len(rows),
	}
}

// Subject is the e-mail subject line for the document.
func Subject(doc entity.ReportDocument) string {
	return fmt.Sprintf("AWS Cost Report - %s (daily by service)", doc.Date)
}

// FormatMoney renders an amount as $1,234.56.
func FormatMoney(amount decimal.Decimal) string {
	f := amount.Round(2).InexactFloat64()
	if f < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -f)
	}
	return "$" + humanize.FormatFloat("#,###.##", f)
}

// FormatPercent renders a signed percentage with one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

// ExportRows flattens a set into label/amount records for CSV archival.
func ExportRows(set entity.CostRowSet) [][]string {
	records := make([][]string, 0, len(set.Rows))
	for _, r := range set.Rows {
		records = append(records, []string{r.Label, r.Amount.String()})
	}
	return records
}
