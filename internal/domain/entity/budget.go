package entity

import "github.com/shopspring/decimal"

// BudgetInfo represents a budget as reported by the Budgets service.
type BudgetInfo struct {
	Name     string           `json:"name"`
	Limit    decimal.Decimal  `json:"limit"`
	Actual   decimal.Decimal  `json:"actual"`
	Forecast *decimal.Decimal `json:"forecast,omitempty"`
}

// BudgetTier is the presentation tier derived from utilization.
type BudgetTier string

const (
	TierNominal BudgetTier = "nominal"
	TierWarning BudgetTier = "warning"
	TierOver    BudgetTier = "over"
)

// Color returns the indicator colour used by the renderers.
func (t BudgetTier) Color() string {
	switch t {
	case TierOver:
		return "#c0392b"
	case TierWarning:
		return "#e67e22"
	default:
		return "#27ae60"
	}
}

// BudgetSnapshot is the evaluated state of a budget for one report.
type BudgetSnapshot struct {
	Name           string          `json:"name"`
	Limit          decimal.Decimal `json:"limit"`
	Actual         decimal.Decimal `json:"actual"`
	Forecast       decimal.Decimal `json:"forecast"`
	UtilizationPct float64         `json:"utilization_pct"`
	Tier           BudgetTier      `json:"tier"`
}
