package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Cost Explorer dimensions used by the report.
const (
	DimensionService   = "SERVICE"
	DimensionUsageType = "USAGE_TYPE"
	DimensionRegion    = "REGION"
)

// DateLayout is the day format used by Cost Explorer and the archive keys.
const DateLayout = "2006-01-02"

// CostRow represents the spend attributed to one dimension value over a window.
type CostRow struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// CostRowSet is an aggregated, descending list of rows plus their total.
type CostRowSet struct {
	Rows  []CostRow       `json:"rows"`
	Total decimal.Decimal `json:"total"`
}

// Empty reports whether the set carries no rows.
func (s CostRowSet) Empty() bool {
	return len(s.Rows) == 0
}

// AggregationWindow is a [Start, End) day range.
type AggregationWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewWindow truncates both bounds to midnight in their own location.
func NewWindow(start, end time.Time) AggregationWindow {
	return AggregationWindow{Start: truncateDay(start), End: truncateDay(end)}
}

// Days returns the number of calendar days covered by the window, independent of
// DST transitions in the bounds' location.
func (w AggregationWindow) Days() int {
	return int(calendarDay(w.End).Sub(calendarDay(w.Start)).Hours() / 24)
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (w AggregationWindow) String() string {
	return fmt.Sprintf("%s to %s", w.Start.Format(DateLayout), w.End.Format(DateLayout))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// GroupAmount is one (label, amount) pair inside a day bucket.
type GroupAmount struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// CostBucket is one day of cost data as returned by the upstream query.
type CostBucket struct {
	Start     time.Time       `json:"start"`
	Estimated bool            `json:"estimated"`
	Groups    []GroupAmount   `json:"groups,omitempty"`
	Total     decimal.Decimal `json:"total"`
}

// CostQueryResult carries the parsed buckets and the raw upstream payload for archival.
type CostQueryResult struct {
	Window    AggregationWindow `json:"window"`
	Dimension string            `json:"dimension,omitempty"`
	Buckets   []CostBucket      `json:"buckets"`
	Raw       []byte            `json:"-"`
}

// AggregationMode selects how buckets are combined.
type AggregationMode int

const (
	// SumAcrossBuckets accumulates every bucket; used for multi-day windows.
	SumAcrossBuckets AggregationMode = iota
	// FirstBucketOnly takes the first bucket verbatim; used for single-day windows.
	FirstBucketOnly
)

func (m AggregationMode) String() string {
	switch m {
	case FirstBucketOnly:
		return "first_bucket_only"
	default:
		return "sum_across_buckets"
	}
}
