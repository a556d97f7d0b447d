package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/alexlux58/AWS-ALERTING/internal/adapter/driven/config"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/analytics"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/report"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/repository"
	"github.com/alexlux58/AWS-ALERTING/internal/shared/types"
	"github.com/shopspring/decimal"
)

// Metric names published by the report.
const (
	MetricDailyTotalCost  = "DailyTotalCost"
	MetricMTDTotalCost    = "MTDTotalCost"
	MetricEmailSent       = "EmailSent"
	MetricEmailFailed     = "EmailFailed"
	MetricReportGenerated = "ReportGenerated"
	MetricReportFailed    = "ReportFailed"
)

// ReportOptions tune a single run.
type ReportOptions struct {
	// Date overrides the report date. Zero means yesterday in the schedule time zone.
	Date time.Time
}

// ReportUseCase generates, archives and sends the daily cost report.
type ReportUseCase struct {
	costRepo    repository.CostRepository
	budgetRepo  repository.BudgetRepository
	paramRepo   repository.ParameterRepository
	archiveRepo repository.ArchiveRepository
	mailRepo    repository.MailRepository
	exportRepo  repository.ExportRepository
	metrics     metricsSink
	console     types.ConsoleInterface
	now         func() time.Time
}

// NewReportUseCase creates a new report use case. budgetRepo may be nil.
func NewReportUseCase(
	costRepo repository.CostRepository,
	budgetRepo repository.BudgetRepository,
	paramRepo repository.ParameterRepository,
	archiveRepo repository.ArchiveRepository,
	mailRepo repository.MailRepository,
	metricsRepo repository.MetricsRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		costRepo:    costRepo,
		budgetRepo:  budgetRepo,
		paramRepo:   paramRepo,
		archiveRepo: archiveRepo,
		mailRepo:    mailRepo,
		exportRepo:  exportRepo,
		metrics:     metricsSink{repo: metricsRepo, console: console},
		console:     console,
		now:         time.Now,
	}
}

// artifact is one object written under the archive prefix.
type artifact struct {
	name        string
	body        []byte
	contentType string
}

// Run executes the report pipeline: settings, queries, archive, render, send.
func (uc *ReportUseCase) Run(ctx context.Context, env types.ReportEnv, opts ReportOptions) (result entity.ReportResult, err error) {
	defer func() {
		if err != nil {
			uc.console.LogError("Report failed: %v", err)
			uc.metrics.count(ctx, MetricReportFailed)
		}
	}()

	loc, err := time.LoadLocation(env.ScheduleTZ)
	if err != nil {
		return entity.ReportResult{}, fmt.Errorf("%w: invalid time zone %q: %w", types.ErrConfiguration, env.ScheduleTZ, err)
	}

	settings, err := config.ResolveReportSettings(ctx, config.NewParameterCache(uc.paramRepo), env)
	if err != nil {
		return entity.ReportResult{}, err
	}

	now := uc.now().In(loc)
	reportDate := opts.Date
	if reportDate.IsZero() {
		reportDate = now.AddDate(0, 0, -1)
	}
	reportDate = time.Date(reportDate.Year(), reportDate.Month(), reportDate.Day(), 0, 0, 0, 0, loc)
	dayAfter := reportDate.AddDate(0, 0, 1)
	dayWindow := entity.NewWindow(reportDate, dayAfter)
	dateLabel := reportDate.Format(entity.DateLayout)

	uc.console.LogInfo("Generating cost report for %s (top %d)", dateLabel, settings.TopN)

	input := report.Input{
		ReportDate:  reportDate,
		GeneratedAt: now,
		TopN:        settings.TopN,
	}
	var artifacts []artifact

	// Yesterday by service
	daily, err := uc.costRepo.GetCostAndUsage(ctx, dayWindow, entity.DimensionService)
	if err != nil {
		return entity.ReportResult{}, fmt.Errorf("%w: daily cost by service for %s: %w", types.ErrUpstreamQuery, dateLabel, err)
	}
	input.Yesterday = analytics.Aggregate(daily.Buckets, entity.FirstBucketOnly)
	uc.metrics.put(ctx, MetricDailyTotalCost, input.Yesterday.Total.InexactFloat64(), repository.UnitNone)
	if artifacts, err = uc.appendArtifacts(artifacts, "daily_by_service", "service", daily, input.Yesterday); err != nil {
		return entity.ReportResult{}, err
	}

	// Month-to-date
	if settings.IncludeMTD {
		monthStart := time.Date(reportDate.Year(), reportDate.Month(), 1, 0, 0, 0, 0, loc)
		mtd, err := uc.costRepo.GetCostAndUsage(ctx, entity.NewWindow(monthStart, dayAfter), entity.DimensionService)
		if err != nil {
			return entity.ReportResult{}, fmt.Errorf("%w: month-to-date cost by service: %w", types.ErrUpstreamQuery, err)
		}
		set := analytics.Aggregate(mtd.Buckets, entity.SumAcrossBuckets)
		input.MonthToDate = &set
		uc.metrics.put(ctx, MetricMTDTotalCost, set.Total.InexactFloat64(), repository.UnitNone)
		if artifacts, err = uc.appendArtifacts(artifacts, "mtd_by_service", "service", mtd, set); err != nil {
			return entity.ReportResult{}, err
		}
	}

	// Drivers
	if settings.IncludeDrivers {
		drivers, err := uc.costRepo.GetCostAndUsage(ctx, dayWindow, entity.DimensionUsageType)
		if err != nil {
			return entity.ReportResult{}, fmt.Errorf("%w: daily cost by usage type: %w", types.ErrUpstreamQuery, err)
		}
		set := analytics.Aggregate(drivers.Buckets, entity.FirstBucketOnly)
		input.Drivers = &set
		if artifacts, err = uc.appendArtifacts(artifacts, "daily_drivers_usage_type", "usage_type", drivers, set); err != nil {
			return entity.ReportResult{}, err
		}
	}

	// Enrichments. A failure here only removes the section.
	if env.IncludeRegions {
		regions, err := uc.costRepo.GetCostAndUsage(ctx, dayWindow, entity.DimensionRegion)
		if err != nil {
			uc.console.LogWarning("Skipping region breakdown: %v", fmt.Errorf("%w: %w", types.ErrUpstreamQuery, err))
		} else {
			set := analytics.Aggregate(regions.Buckets, entity.FirstBucketOnly)
			input.Regions = &set
			if artifacts, err = uc.appendArtifacts(artifacts, "daily_by_region", "region", regions, set); err != nil {
				return entity.ReportResult{}, err
			}
		}
	}

	if env.IncludeTrend {
		trend, err := uc.costRepo.GetCostAndUsage(ctx, entity.NewWindow(reportDate.AddDate(0, 0, -7), dayAfter), "")
		if err != nil {
			uc.console.LogWarning("Skipping daily trend: %v", fmt.Errorf("%w: %w", types.ErrUpstreamQuery, err))
		} else {
			input.Trend = analytics.Totals(trend.Buckets)
		}
	}

	if input.MonthToDate != nil {
		var (
			remaining *decimal.Decimal
			queried   bool
		)
		if env.IncludeForecast {
			remaining, queried = uc.remainingForecast(ctx, dayAfter)
			if remaining != nil {
				input.Forecast = &entity.ForecastSection{
					Remaining: *remaining,
					MonthEnd:  input.MonthToDate.Total.Add(*remaining),
					Through:   firstOfNextMonth(reportDate),
				}
			}
		}
		if env.BudgetName != "" && uc.budgetRepo != nil {
			// Only a forecast that was actually queried replaces the budget's own.
			var external *decimal.Decimal
			if queried {
				external = remaining
			}
			input.Budget = uc.budgetSnapshot(ctx, env.BudgetName, external)
		}
	}

	prefix := archivePrefix(reportDate)
	input.ArchiveURI = fmt.Sprintf("s3://%s/%s", settings.ArchiveBucket, prefix)
	doc := report.Build(input)

	if env.ArchivePDF {
		pdf, err := uc.exportRepo.ExportReportToPDF(doc)
		if err != nil {
			return entity.ReportResult{}, fmt.Errorf("%w: rendering PDF: %w", types.ErrPersistence, err)
		}
		artifacts = append(artifacts, artifact{name: "cost_report.pdf", body: pdf, contentType: "application/pdf"})
	}

	for _, a := range artifacts {
		if err := uc.archiveRepo.Put(ctx, settings.ArchiveBucket, prefix+a.name, a.body, a.contentType); err != nil {
			return entity.ReportResult{}, fmt.Errorf("%w: archiving %s: %w", types.ErrPersistence, a.name, err)
		}
	}
	uc.console.LogInfo("Archived %d artifacts to %s", len(artifacts), input.ArchiveURI)

	htmlBody, err := renderHTML(doc)
	if err != nil {
		return entity.ReportResult{}, fmt.Errorf("%w: rendering report: %w", types.ErrDelivery, err)
	}

	messageID, err := uc.mailRepo.Send(ctx, entity.Email{
		From:     settings.ReportFrom,
		To:       settings.ReportTo,
		Subject:  report.Subject(doc),
		HTMLBody: htmlBody,
		TextBody: report.HTMLToText(htmlBody),
	})
	if err != nil {
		uc.metrics.count(ctx, MetricEmailFailed)
		return entity.ReportResult{}, fmt.Errorf("%w: sending report: %w", types.ErrDelivery, err)
	}
	uc.metrics.count(ctx, MetricEmailSent)
	uc.metrics.count(ctx, MetricReportGenerated)
	uc.console.LogSuccess("Report for %s sent, message id %s", dateLabel, messageID)

	result = entity.ReportResult{
		OK:            true,
		Date:          dateLabel,
		DailyTotal:    input.Yesterday.Total.Round(2).InexactFloat64(),
		MessageID:     messageID,
		ArchivePrefix: input.ArchiveURI,
		Document:      &doc,
	}
	if input.MonthToDate != nil {
		mtdTotal := input.MonthToDate.Total.Round(2).InexactFloat64()
		result.MTDTotal = &mtdTotal
	}
	return result, nil
}

// renderHTML is replaced in tests.
var renderHTML = report.RenderHTML

// appendArtifacts adds the raw JSON and the CSV of one query.
func (uc *ReportUseCase) appendArtifacts(artifacts []artifact, name, keyHeader string, res entity.CostQueryResult, set entity.CostRowSet) ([]artifact, error) {
	raw := res.Raw
	if len(raw) == 0 {
		var err error
		if raw, err = uc.exportRepo.ExportToJSON(res); err != nil {
			return nil, fmt.Errorf("%w: encoding %s.json: %w", types.ErrPersistence, name, err)
		}
	}
	csv, err := uc.exportRepo.ExportRowsToCSV(keyHeader, set)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding %s.csv: %w", types.ErrPersistence, name, err)
	}
	return append(artifacts,
		artifact{name: name + ".json", body: raw, contentType: "application/json"},
		artifact{name: name + ".csv", body: csv, contentType: "text/csv"},
	), nil
}

// remainingForecast returns the spend still expected between from and the end of its month.
// From the first day of a month nothing remains and no query is made. Nil means the
// forecast is unavailable; queried reports whether Cost Explorer produced the amount.
func (uc *ReportUseCase) remainingForecast(ctx context.Context, from time.Time) (remaining *decimal.Decimal, queried bool) {
	if from.Day() == 1 {
		zero := decimal.Zero
		return &zero, false
	}
	amount, err := uc.costRepo.GetCostForecast(ctx, entity.NewWindow(from, firstOfNextMonth(from)))
	if err != nil {
		uc.console.LogWarning("Skipping forecast: %v", fmt.Errorf("%w: %w", types.ErrUpstreamQuery, err))
		return nil, false
	}
	return &amount, true
}

func (uc *ReportUseCase) budgetSnapshot(ctx context.Context, name string, remaining *decimal.Decimal) *entity.BudgetSnapshot {
	info, err := uc.budgetRepo.DescribeBudget(ctx, name)
	if err != nil {
		uc.console.LogWarning("Skipping budget %s: %v", name, fmt.Errorf("%w: %w", types.ErrUpstreamQuery, err))
		return nil
	}

	var external *decimal.Decimal
	if remaining != nil {
		monthEnd := info.Actual.Add(*remaining)
		external = &monthEnd
	}
	snapshot := analytics.EvaluateBudget(info, external)
	return &snapshot
}

func firstOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
}

func archivePrefix(date time.Time) string {
	return fmt.Sprintf("reports/%04d/%02d/%02d/", date.Year(), int(date.Month()), date.Day())
}

// metricsSink publishes metrics and swallows every failure.
type metricsSink struct {
	repo    repository.MetricsRepository
	console types.ConsoleInterface
}

func (s metricsSink) put(ctx context.Context, name string, value float64, unit string) {
	if s.repo == nil {
		return
	}
	if err := s.repo.PutMetric(ctx, name, value, unit); err != nil {
		s.console.LogWarning("%v", fmt.Errorf("%w: %s: %w", types.ErrMetrics, name, err))
	}
}

func (s metricsSink) count(ctx context.Context, name string) {
	s.put(ctx, name, 1, repository.UnitCount)
}
