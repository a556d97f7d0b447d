package analytics

import (
	"strings"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DeadBand is the absolute percentage inside which a change is reported as flat.
const DeadBand = 5.0

// SparkRamp lists the sparkline glyphs from lowest to highest.
var SparkRamp = []rune("▁▂▃▄▅▆▇█")

var hundred = decimal.NewFromInt(100)

// PercentChange compares current against previous.
func PercentChange(current, previous decimal.Decimal) entity.ChangeResult {
	if previous.IsZero() {
		if current.IsPositive() {
			return entity.ChangeResult{PctChange: 100, Direction: entity.DirectionUp}
		}
		return entity.ChangeResult{PctChange: 0, Direction: entity.DirectionFlat}
	}

	pct := current.Sub(previous).Div(previous).Mul(hundred).InexactFloat64()
	switch {
	case pct > DeadBand:
		return entity.ChangeResult{PctChange: pct, Direction: entity.DirectionUp}
	case pct < -DeadBand:
		return entity.ChangeResult{PctChange: pct, Direction: entity.DirectionDown}
	default:
		return entity.ChangeResult{PctChange: pct, Direction: entity.DirectionFlat}
	}
}

// Sparkline renders a series as one glyph per point. Fewer than two points yield "".
func Sparkline(series []decimal.Decimal) string {
	if len(series) < 2 {
		return ""
	}

	lo, hi := series[0], series[0]
	for _, v := range series[1:] {
		lo = decimal.Min(lo, v)
		hi = decimal.Max(hi, v)
	}

	if lo.Equal(hi) {
		return strings.Repeat(string(SparkRamp[0]), len(series))
	}

	var sb strings.Builder
	span := hi.Sub(lo)
	top := int64(len(SparkRamp) - 1)
	for _, v := range series {
		bucket := v.Sub(lo).Mul(decimal.NewFromInt(top)).Div(span).Floor().IntPart()
		if bucket < 0 {
			bucket = 0
		}
		if bucket > top {
			bucket = top
		}
		sb.WriteRune(SparkRamp[bucket])
	}
	return sb.String()
}

// Amounts extracts the values of a trend series.
func Amounts(points []entity.TrendPoint) []decimal.Decimal {
	out := make([]decimal.Decimal, len(points))
	for i, p := range points {
		out[i] = p.Amount
	}
	return out
}

// Stats returns min, average and max of the series. ok is false for an empty series.
func Stats(points []entity.TrendPoint) (entity.TrendStats, bool) {
	if len(points) == 0 {
		return entity.TrendStats{}, false
	}

	lo, hi, sum := points[0].Amount, points[0].Amount, decimal.Zero
	for _, p := range points {
		lo = decimal.Min(lo, p.Amount)
		hi = decimal.Max(hi, p.Amount)
		sum = sum.Add(p.Amount)
	}

	return entity.TrendStats{
		Min: lo,
		Avg: sum.Div(decimal.NewFromInt(int64(len(points)))),
		Max: hi,
	}, true
}

// DayOverDay compares the last point with the one before it.
func DayOverDay(points []entity.TrendPoint) *entity.ChangeResult {
	if len(points) < 2 {
		return nil
	}
	change := PercentChange(points[len(points)-1].Amount, points[len(points)-2].Amount)
	return &change
}

// WeekOverWeek compares the last point with the point seven days earlier.
func WeekOverWeek(points []entity.TrendPoint) *entity.ChangeResult {
	if len(points) < 8 {
		return nil
	}
	change := PercentChange(points[len(points)-1].Amount, points[len(points)-8].Amount)
	return &change
}
