package repository

import (
	"context"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
)

// ArchiveRepository persists report artifacts.
type ArchiveRepository interface {
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

// MailRepository delivers a rendered report and returns the provider message id.
type MailRepository interface {
	Send(ctx context.Context, email entity.Email) (string, error)
}

// Metric units.
const (
	UnitNone  = "None"
	UnitCount = "Count"
)

// MetricsRepository publishes a single data point.
type MetricsRepository interface {
	PutMetric(ctx context.Context, name string, value float64, unit string) error
}
