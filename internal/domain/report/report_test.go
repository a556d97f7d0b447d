package report

import (
	"strings"
	"testing"
	"time"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/analytics"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportDate = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func rowSet(pairs ...string) entity.CostRowSet {
	b := entity.CostBucket{Start: reportDate}
	for i := 0; i+1 < len(pairs); i += 2 {
		b.Groups = append(b.Groups, entity.GroupAmount{Label: pairs[i], Amount: decimal.RequireFromString(pairs[i+1])})
	}
	return analytics.Aggregate([]entity.CostBucket{b}, entity.FirstBucketOnly)
}

func trendPoints(values ...int64) []entity.TrendPoint {
	out := make([]entity.TrendPoint, len(values))
	for i, v := range values {
		out[i] = entity.TrendPoint{Date: reportDate.AddDate(0, 0, i-len(values)+1), Amount: decimal.NewFromInt(v)}
	}
	return out
}

func TestBuild_OptionalSectionsAbsent(t *testing.T) {
	budget := analytics.EvaluateBudget(entity.BudgetInfo{Name: "monthly", Limit: decimal.NewFromInt(100), Actual: decimal.NewFromInt(50)}, nil)

	doc := Build(Input{
		ReportDate: reportDate,
		TopN:       10,
		Yesterday:  rowSet("Amazon EC2", "120.00", "Amazon S3", "5.00", "AWS Support", "0.0005"),
		Budget:     &budget,
		Forecast:   &entity.ForecastSection{MonthEnd: decimal.NewFromInt(200)},
		Trend:      trendPoints(4),
	})

	assert.Equal(t, "2025-03-14", doc.Date)
	assert.Nil(t, doc.MonthToDate)
	assert.Nil(t, doc.Budget)
	assert.Nil(t, doc.Forecast)
	assert.Nil(t, doc.Drivers)
	assert.Nil(t, doc.Regions)
	assert.Nil(t, doc.Trend)
	require.Len(t, doc.Yesterday.Rows, 2)
	assert.True(t, doc.Yesterday.Total.Equal(decimal.NewFromInt(125)))

	html, err := RenderHTML(doc)
	require.NoError(t, err)
	assert.NotContains(t, html, "Month-to-date")
	assert.NotContains(t, html, "Budget")
	assert.NotContains(t, html, "Forecast")
	assert.NotContains(t, html, "<no value>")
	assert.Contains(t, html, "Yesterday by service (top 10)")
	assert.Contains(t, html, "$120.00")
	assert.Contains(t, html, "$125.00")
}

func TestBuild_AllSections(t *testing.T) {
	mtd := rowSet("Amazon EC2", "1500.25", "Amazon RDS", "320.10")
	drivers := rowSet("BoxUsage:t3.large", "40.00", "DataTransfer-Out-Bytes", "3.10")
	regions := rowSet("us-east-1", "100.00", "eu-west-1", "25.00")
	budget := analytics.EvaluateBudget(entity.BudgetInfo{Name: "monthly", Limit: decimal.NewFromInt(2000), Actual: decimal.NewFromInt(1820)}, nil)

	doc := Build(Input{
		ReportDate:  reportDate,
		TopN:        1,
		Yesterday:   rowSet("Amazon EC2", "120.00", "Amazon S3", "5.00"),
		MonthToDate: &mtd,
		Drivers:     &drivers,
		Regions:     &regions,
		Trend:       trendPoints(100, 90, 95, 92, 97, 99, 100, 125),
		Budget:      &budget,
		Forecast:    &entity.ForecastSection{Remaining: decimal.NewFromInt(600), MonthEnd: decimal.NewFromInt(2420), Through: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		ArchiveURI:  "s3://cost-archive/reports/2025/03/14/",
	})

	require.NotNil(t, doc.MonthToDate)
	require.NotNil(t, doc.Trend)
	assert.Equal(t, 1, doc.Yesterday.Hidden)
	assert.Equal(t, entity.DirectionUp, doc.Trend.DayOverDay.Direction)
	require.NotNil(t, doc.Trend.WeekOverWeek)
	assert.InDelta(t, 25.0, doc.Trend.WeekOverWeek.PctChange, 1e-9)
	assert.Equal(t, entity.TierWarning, doc.Budget.Tier)

	html, err := RenderHTML(doc)
	require.NoError(t, err)
	for _, want := range []string{
		"Month-to-date by service (top 1)",
		"Yesterday drivers by usage type (top 1)",
		"Yesterday by region (top 1)",
		"Budget: monthly",
		"$1,500.25",
		"$2,420.00",
		"1 more not shown",
		"s3://cost-archive/reports/2025/03/14/",
		doc.Trend.Sparkline,
	} {
		assert.Contains(t, html, want)
	}

	text := HTMLToText(html)
	assert.NotContains(t, text, "<")
	assert.Contains(t, text, "Amazon EC2 $120.00")
	assert.Contains(t, text, "Total $125.00")
	assert.Contains(t, text, "Week over week: ▲ +25.0%")
	assert.NotContains(t, text, "\n\n\n")
}

func TestRenderHTML_EscapesLabels(t *testing.T) {
	doc := Build(Input{ReportDate: reportDate, TopN: 5, Yesterday: rowSet("<script>x</script>", "1.00")})

	html, err := RenderHTML(doc)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderHTML_NoCharges(t *testing.T) {
	doc := Build(Input{ReportDate: reportDate, TopN: 5, Yesterday: rowSet()})

	html, err := RenderHTML(doc)
	require.NoError(t, err)
	assert.Contains(t, html, "No charges")
	assert.Contains(t, html, "$0.00")
}

func TestHTMLToText(t *testing.T) {
	got := HTMLToText("<p>A &amp; B</p>\n\n\n<div>x &lt;y&gt;&nbsp;z &#43;5</div>\n")
	assert.Equal(t, "A & B\n\nx <y> z +5", got)
}

func TestHTMLToText_DecodesOnce(t *testing.T) {
	assert.Equal(t, "a&lt;b &#43;1 &amp;", HTMLToText("a&amp;lt;b &amp;#43;1 &amp;amp;"))

	doc := Build(Input{ReportDate: reportDate, TopN: 5, Yesterday: rowSet("a&lt;b &#43;1", "1.00")})
	html, err := RenderHTML(doc)
	require.NoError(t, err)
	assert.Contains(t, HTMLToText(html), "a&lt;b &#43;1 $1.00")
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "AWS Cost Report - 2025-03-14 (daily by service)", Subject(entity.ReportDocument{Date: "2025-03-14"}))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$0.00", FormatMoney(decimal.Zero))
	assert.Equal(t, "$0.01", FormatMoney(decimal.RequireFromString("0.005")))
	assert.Equal(t, "-$3.20", FormatMoney(decimal.RequireFromString("-3.2")))
}

func TestExportRows(t *testing.T) {
	rows := ExportRows(rowSet("Amazon EC2", "120.00", "Amazon S3", "5.5"))
	assert.Equal(t, [][]string{{"Amazon EC2", "120"}, {"Amazon S3", "5.5"}}, rows)
	assert.True(t, strings.HasPrefix(FormatPercent(3), "+"))
}
