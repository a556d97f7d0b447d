// Package analytics holds the pure cost math used by the report: bucket
// aggregation, period-over-period change, sparklines and budget evaluation.
package analytics

import (
	"sort"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Epsilon is the smallest amount kept in an aggregated set.
var Epsilon = decimal.New(1, -3)

// Aggregate combines buckets into a descending CostRowSet.
// Amounts at or below Epsilon are dropped; ties keep the order in which labels were first seen.
func Aggregate(buckets []entity.CostBucket, mode entity.AggregationMode) entity.CostRowSet {
	if len(buckets) == 0 {
		return entity.CostRowSet{Rows: []entity.CostRow{}, Total: decimal.Zero}
	}

	if mode == entity.FirstBucketOnly {
		buckets = buckets[:1]
	}

	sums := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, bucket := range buckets {
		for _, g := range bucket.Groups {
			current, seen := sums[g.Label]
			if !seen {
				order = append(order, g.Label)
			}
			sums[g.Label] = current.Add(g.Amount)
		}
	}

	rows := make([]entity.CostRow, 0, len(order))
	total := decimal.Zero
	for _, label := range order {
		amount := sums[label]
		if amount.LessThanOrEqual(Epsilon) {
			continue
		}
		rows = append(rows, entity.CostRow{Label: label, Amount: amount})
		total = total.Add(amount)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount.GreaterThan(rows[j].Amount)
	})

	return entity.CostRowSet{Rows: rows, Total: total}
}

// Top returns the first n rows of the set. n <= 0 returns every row.
func Top(set entity.CostRowSet, n int) []entity.CostRow {
	if n <= 0 || n >= len(set.Rows) {
		return set.Rows
	}
	return set.Rows[:n]
}

// Totals turns daily buckets into a trend series.
func Totals(buckets []entity.CostBucket) []entity.TrendPoint {
	points := make([]entity.TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, entity.TrendPoint{Date: b.Start, Amount: b.Total})
	}
	return points
}
