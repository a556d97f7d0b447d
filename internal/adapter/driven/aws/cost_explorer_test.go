package aws

import (
	"context"
	"testing"
	"time"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func group(key, amount string) ceTypes.Group {
	return ceTypes.Group{
		Keys:    []string{key},
		Metrics: map[string]ceTypes.MetricValue{"UnblendedCost": {Amount: aws.String(amount), Unit: aws.String("USD")}},
	}
}

func day(start string, groups ...ceTypes.Group) ceTypes.ResultByTime {
	return ceTypes.ResultByTime{
		TimePeriod: &ceTypes.DateInterval{Start: aws.String(start)},
		Groups:     groups,
	}
}

var window = entity.NewWindow(
	time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
	time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
)

func TestGetCostAndUsage_MergesPages(t *testing.T) {
	mock := &mockCostExplorer{Pages: []*costexplorer.GetCostAndUsageOutput{
		{
			NextPageToken: aws.String("page-2"),
			ResultsByTime: []ceTypes.ResultByTime{day("2025-03-13", group("Amazon EC2", "120.00"), group("Amazon S3", "5.00"))},
		},
		{
			ResultsByTime: []ceTypes.ResultByTime{day("2025-03-13", group("AWS Support", "0.0005"), group("Broken", "n/a"))},
		},
	}}
	repo := NewCostExplorerRepository(mock)

	result, err := repo.GetCostAndUsage(context.Background(), window, entity.DimensionService)
	require.NoError(t, err)

	require.Len(t, mock.Inputs, 2)
	assert.Nil(t, mock.Inputs[0].NextPageToken)
	assert.Equal(t, "page-2", aws.ToString(mock.Inputs[1].NextPageToken))
	assert.Equal(t, ceTypes.GranularityDaily, mock.Inputs[0].Granularity)
	assert.Equal(t, "2025-03-13", aws.ToString(mock.Inputs[0].TimePeriod.Start))
	assert.Equal(t, "2025-03-14", aws.ToString(mock.Inputs[0].TimePeriod.End))
	require.Len(t, mock.Inputs[0].GroupBy, 1)
	assert.Equal(t, "SERVICE", aws.ToString(mock.Inputs[0].GroupBy[0].Key))

	require.Len(t, result.Buckets, 1)
	b := result.Buckets[0]
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), b.Start)
	require.Len(t, b.Groups, 4)
	assert.True(t, b.Groups[3].Amount.IsZero(), "unparsable amount should be zero")
	assert.True(t, b.Total.Equal(decimal.RequireFromString("125.0005")))

	assert.Contains(t, string(result.Raw), "ResultsByTime")
	assert.Contains(t, string(result.Raw), "Amazon EC2")
	assert.Contains(t, string(result.Raw), "AWS Support")
}

func TestGetCostAndUsage_UngroupedTotals(t *testing.T) {
	mock := &mockCostExplorer{Pages: []*costexplorer.GetCostAndUsageOutput{{
		ResultsByTime: []ceTypes.ResultByTime{
			{
				TimePeriod: &ceTypes.DateInterval{Start: aws.String("2025-03-12")},
				Total:      map[string]ceTypes.MetricValue{"UnblendedCost": {Amount: aws.String("10.5")}},
			},
			{
				TimePeriod: &ceTypes.DateInterval{Start: aws.String("2025-03-13")},
				Total:      map[string]ceTypes.MetricValue{"UnblendedCost": {Amount: aws.String("11")}},
				Estimated:  true,
			},
		},
	}}}

	result, err := NewCostExplorerRepository(mock).GetCostAndUsage(context.Background(), window, "")
	require.NoError(t, err)

	assert.Empty(t, mock.Inputs[0].GroupBy)
	require.Len(t, result.Buckets, 2)
	assert.True(t, result.Buckets[0].Total.Equal(decimal.RequireFromString("10.5")))
	assert.True(t, result.Buckets[1].Estimated)
	assert.Empty(t, result.Buckets[1].Groups)
}

func TestGetCostAndUsage_Error(t *testing.T) {
	mock := &mockCostExplorer{Err: errThrottled}

	_, err := NewCostExplorerRepository(mock).GetCostAndUsage(context.Background(), window, entity.DimensionUsageType)
	require.Error(t, err)
	assert.ErrorIs(t, err, errThrottled)
	assert.Contains(t, err.Error(), "USAGE_TYPE")
}

func TestGetCostForecast(t *testing.T) {
	mock := &mockCostExplorer{Forecast: &costexplorer.GetCostForecastOutput{
		Total: &ceTypes.MetricValue{Amount: aws.String("432.1099")},
	}}

	amount, err := NewCostExplorerRepository(mock).GetCostForecast(context.Background(), window)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("432.1099")))
	require.Len(t, mock.ForecastInputs, 1)
	assert.Equal(t, ceTypes.MetricUnblendedCost, mock.ForecastInputs[0].Metric)
	assert.Equal(t, ceTypes.GranularityMonthly, mock.ForecastInputs[0].Granularity)

	mock.ForecastErr = errThrottled
	_, err = NewCostExplorerRepository(mock).GetCostForecast(context.Background(), window)
	assert.ErrorIs(t, err, errThrottled)
}

func TestParseAmount(t *testing.T) {
	assert.True(t, parseAmount(nil).IsZero())
	assert.True(t, parseAmount(aws.String("")).IsZero())
	assert.True(t, parseAmount(aws.String("1e-10")).Equal(decimal.New(1, -10)))
	assert.True(t, parseAmount(aws.String("-2.5")).Equal(decimal.RequireFromString("-2.5")))
}
