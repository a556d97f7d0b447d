package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction of a period-over-period change.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// Arrow returns the glyph shown next to a change.
func (d Direction) Arrow() string {
	switch d {
	case DirectionUp:
		return "▲"
	case DirectionDown:
		return "▼"
	default:
		return "▬"
	}
}

// ChangeResult is a signed percentage change and its dead-banded direction.
type ChangeResult struct {
	PctChange float64   `json:"pct_change"`
	Direction Direction `json:"direction"`
}

// TrendPoint is the total spend for one day.
type TrendPoint struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// TrendStats summarizes a daily series.
type TrendStats struct {
	Min decimal.Decimal `json:"min"`
	Avg decimal.Decimal `json:"avg"`
	Max decimal.Decimal `json:"max"`
}
