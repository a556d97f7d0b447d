package repository

import (
	"context"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CostRepository defines the Cost Explorer queries used by the report.
type CostRepository interface {
	// GetCostAndUsage returns daily unblended cost for the window. An empty dimension
	// returns ungrouped daily totals.
	GetCostAndUsage(ctx context.Context, window entity.AggregationWindow, dimension string) (entity.CostQueryResult, error)
	// GetCostForecast returns the forecast unblended cost for the window.
	GetCostForecast(ctx context.Context, window entity.AggregationWindow) (decimal.Decimal, error)
}

// BudgetRepository reads budget status.
type BudgetRepository interface {
	DescribeBudget(ctx context.Context, name string) (entity.BudgetInfo, error)
}

// ParameterRepository resolves configuration values by name.
type ParameterRepository interface {
	// GetParameters returns the values found. Names absent from the store are absent from the map.
	GetParameters(ctx context.Context, names []string) (map[string]string, error)
}

// AutomationRepository starts remediation automations.
type AutomationRepository interface {
	StartAutomation(ctx context.Context, documentName string, params entity.RemediationParams) (string, error)
}

// InstanceRepository lists instances carrying a tag.
type InstanceRepository interface {
	ListTaggedInstances(ctx context.Context, tagKey, tagValue string) ([]entity.TaggedInstance, error)
}
