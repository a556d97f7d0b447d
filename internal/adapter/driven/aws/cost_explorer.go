package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/shopspring/decimal"
)

const metricUnblendedCost = "UnblendedCost"

// CostExplorerAPI is the subset of the Cost Explorer client used here.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
	GetCostForecast(ctx context.Context, params *costexplorer.GetCostForecastInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostForecastOutput, error)
}

// CostExplorerRepository implements repository.CostRepository.
type CostExplorerRepository struct {
	client CostExplorerAPI
}

// NewCostExplorerRepository wraps a Cost Explorer client.
func NewCostExplorerRepository(client CostExplorerAPI) *CostExplorerRepository {
	return &CostExplorerRepository{client: client}
}

// rawCostAndUsage is the archived form of a (possibly paginated) query.
type rawCostAndUsage struct {
	GroupDefinitions []ceTypes.GroupDefinition `json:"GroupDefinitions,omitempty"`
	ResultsByTime    []ceTypes.ResultByTime    `json:"ResultsByTime"`
}

// GetCostAndUsage fetches daily unblended cost, following NextPageToken and merging pages per day.
func (r *CostExplorerRepository) GetCostAndUsage(ctx context.Context, window entity.AggregationWindow, dimension string) (entity.CostQueryResult, error) {
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(window.Start.Format(entity.DateLayout)),
			End:   aws.String(window.End.Format(entity.DateLayout)),
		},
		Granularity: ceTypes.GranularityDaily,
		Metrics:     []string{metricUnblendedCost},
	}
	if dimension != "" {
		input.GroupBy = []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String(dimension)},
		}
	}

	raw := rawCostAndUsage{GroupDefinitions: input.GroupBy}
	byDay := make(map[string]int, max(window.Days(), 0))

	for {
		output, err := r.client.GetCostAndUsage(ctx, input)
		if err != nil {
			return entity.CostQueryResult{}, fmt.Errorf("error getting cost and usage (%s, %s): %w", dimensionLabel(dimension), window, err)
		}

		for _, period := range output.ResultsByTime {
			start := aws.ToString(periodStart(period))
			idx, seen := byDay[start]
			if !seen {
				byDay[start] = len(raw.ResultsByTime)
				raw.ResultsByTime = append(raw.ResultsByTime, period)
				continue
			}
			// Later pages carry more groups for a day already seen.
			raw.ResultsByTime[idx].Groups = append(raw.ResultsByTime[idx].Groups, period.Groups...)
		}

		if aws.ToString(output.NextPageToken) == "" {
			break
		}
		input.NextPageToken = output.NextPageToken
	}

	body, err := json.Marshal(raw)
	if err != nil {
		return entity.CostQueryResult{}, fmt.Errorf("error encoding cost and usage response: %w", err)
	}

	buckets := make([]entity.CostBucket, 0, len(raw.ResultsByTime))
	for _, period := range raw.ResultsByTime {
		buckets = append(buckets, toBucket(period, window.Start.Location()))
	}

	return entity.CostQueryResult{
		Window:    window,
		Dimension: dimension,
		Buckets:   buckets,
		Raw:       body,
	}, nil
}

// GetCostForecast returns the forecast unblended cost for the window at monthly granularity.
func (r *CostExplorerRepository) GetCostForecast(ctx context.Context, window entity.AggregationWindow) (decimal.Decimal, error) {
	output, err := r.client.GetCostForecast(ctx, &costexplorer.GetCostForecastInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(window.Start.Format(entity.DateLayout)),
			End:   aws.String(window.End.Format(entity.DateLayout)),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metric:      ceTypes.MetricUnblendedCost,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("error getting cost forecast (%s): %w", window, err)
	}
	if output.Total == nil {
		return decimal.Zero, nil
	}
	return parseAmount(output.Total.Amount), nil
}

func periodStart(period ceTypes.ResultByTime) *string {
	if period.TimePeriod == nil {
		return nil
	}
	return period.TimePeriod.Start
}

func toBucket(period ceTypes.ResultByTime, loc *time.Location) entity.CostBucket {
	bucket := entity.CostBucket{Estimated: period.Estimated, Total: decimal.Zero}
	if start := aws.ToString(periodStart(period)); start != "" {
		if t, err := time.ParseInLocation(entity.DateLayout, start, loc); err == nil {
			bucket.Start = t
		}
	}

	if len(period.Groups) == 0 {
		if metric, ok := period.Total[metricUnblendedCost]; ok {
			bucket.Total = parseAmount(metric.Amount)
		}
		return bucket
	}

	for _, group := range period.Groups {
		label := ""
		if len(group.Keys) > 0 {
			label = group.Keys[0]
		}
		amount := decimal.Zero
		if metric, ok := group.Metrics[metricUnblendedCost]; ok {
			amount = parseAmount(metric.Amount)
		}
		bucket.Groups = append(bucket.Groups, entity.GroupAmount{Label: label, Amount: amount})
		bucket.Total = bucket.Total.Add(amount)
	}
	return bucket
}

// parseAmount treats missing or unparsable amounts as zero.
func parseAmount(s *string) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

func dimensionLabel(dimension string) string {
	if dimension == "" {
		return "total"
	}
	return dimension
}
