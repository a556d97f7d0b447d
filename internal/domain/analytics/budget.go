package analytics

import (
	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Utilization thresholds, in percent.
const (
	WarningThreshold = 80.0
	OverThreshold    = 100.0
)

// EvaluateBudget derives utilization, forecast and tier for a budget.
// externalForecast, when non-nil, takes precedence over the budget's own forecast.
func EvaluateBudget(info entity.BudgetInfo, externalForecast *decimal.Decimal) entity.BudgetSnapshot {
	utilization := 0.0
	if info.Limit.IsPositive() {
		utilization = info.Actual.Div(info.Limit).Mul(hundred).InexactFloat64()
	}

	forecast := decimal.Zero
	switch {
	case externalForecast != nil:
		forecast = *externalForecast
	case info.Forecast != nil:
		forecast = *info.Forecast
	}

	return entity.BudgetSnapshot{
		Name:           info.Name,
		Limit:          info.Limit,
		Actual:         info.Actual,
		Forecast:       forecast,
		UtilizationPct: utilization,
		Tier:           TierFor(utilization),
	}
}

// TierFor maps a utilization percentage to its presentation tier.
func TierFor(utilization float64) entity.BudgetTier {
	switch {
	case utilization > OverThreshold:
		return entity.TierOver
	case utilization >= WarningThreshold:
		return entity.TierWarning
	default:
		return entity.TierNominal
	}
}
