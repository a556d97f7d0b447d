package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostSection is one rendered table of the report.
type CostSection struct {
	Title     string          `json:"title"`
	KeyHeader string          `json:"key_header"`
	Rows      []CostRow       `json:"rows"`
	Total     decimal.Decimal `json:"total"`
	// Hidden is the number of rows cut by the top-N limit.
	Hidden int `json:"hidden,omitempty"`
}

// TrendSection describes the recent daily spend.
type TrendSection struct {
	Points       []TrendPoint  `json:"points"`
	Sparkline    string        `json:"sparkline"`
	Stats        TrendStats    `json:"stats"`
	DayOverDay   *ChangeResult `json:"day_over_day,omitempty"`
	WeekOverWeek *ChangeResult `json:"week_over_week,omitempty"`
}

// ForecastSection is the projected spend for the current month.
type ForecastSection struct {
	Remaining decimal.Decimal `json:"remaining"`
	MonthEnd  decimal.Decimal `json:"month_end"`
	Through   time.Time       `json:"through"`
}

// ReportDocument is the structured model handed to the renderers.
// Nil sections were not requested or could not be fetched and are not rendered.
type ReportDocument struct {
	Date        string           `json:"date"`
	GeneratedAt time.Time        `json:"generated_at"`
	TopN        int              `json:"top_n"`
	Yesterday   CostSection      `json:"yesterday"`
	MonthToDate *CostSection     `json:"month_to_date,omitempty"`
	Drivers     *CostSection     `json:"drivers,omitempty"`
	Regions     *CostSection     `json:"regions,omitempty"`
	Trend       *TrendSection    `json:"trend,omitempty"`
	Budget      *BudgetSnapshot  `json:"budget,omitempty"`
	Forecast    *ForecastSection `json:"forecast,omitempty"`
	ArchiveURI  string           `json:"archive_uri,omitempty"`
}

// Email is a message ready for delivery.
type Email struct {
	From     string
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// ReportResult is returned by the report handler.
type ReportResult struct {
	OK            bool     `json:"ok"`
	Date          string   `json:"date"`
	DailyTotal    float64  `json:"daily_total"`
	MTDTotal      *float64 `json:"mtd_total"`
	MessageID     string   `json:"message_id,omitempty"`
	ArchivePrefix string   `json:"archive_prefix,omitempty"`

	// Document is the rendered model, kept for local runs.
	Document *ReportDocument `json:"-"`
}
