// Package handler exposes the report and remediation use cases as Lambda handlers.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	awsadapter "github.com/alexlux58/AWS-ALERTING/internal/adapter/driven/aws"
	"github.com/alexlux58/AWS-ALERTING/internal/adapter/driven/config"
	"github.com/alexlux58/AWS-ALERTING/internal/adapter/driven/export"
	"github.com/alexlux58/AWS-ALERTING/internal/application/usecase"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/repository"
	"github.com/alexlux58/AWS-ALERTING/internal/shared/types"
	"github.com/alexlux58/AWS-ALERTING/pkg/console"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

// ReportHandler serves scheduled report invocations.
type ReportHandler struct {
	console *console.Console

	mu      sync.Mutex
	clients map[string]*awsadapter.ClientProvider
}

// NewReportHandler creates the handler. AWS clients are built on first use and
// reused by later invocations of the same container.
func NewReportHandler(c *console.Console) *ReportHandler {
	return &ReportHandler{console: c, clients: make(map[string]*awsadapter.ClientProvider)}
}

// reportEvent is the optional invocation payload. Scheduled events carry no date.
type reportEvent struct {
	Date string `json:"date"`
}

// Handle runs one report.
func (h *ReportHandler) Handle(ctx context.Context, event json.RawMessage) (entity.ReportResult, error) {
	log := h.console.WithFields("request_id", RequestID(ctx))
	log.LogInfo("Cost report invocation started")

	env, err := config.LoadReportEnv(nil)
	if err != nil {
		log.LogError("%v", err)
		return entity.ReportResult{}, err
	}

	opts, err := reportOptions(event)
	if err != nil {
		log.LogError("%v", err)
		return entity.ReportResult{}, err
	}

	uc, err := BuildReportUseCase(ctx, h.provider(env.SESRegion), env, log)
	if err != nil {
		log.LogError("%v", err)
		return entity.ReportResult{}, err
	}

	return uc.Run(ctx, env, opts)
}

func (h *ReportHandler) provider(sesRegion string) *awsadapter.ClientProvider {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, ok := h.clients[sesRegion]
	if !ok {
		p = awsadapter.NewClientProvider("", sesRegion)
		h.clients[sesRegion] = p
	}
	return p
}

func reportOptions(event json.RawMessage) (usecase.ReportOptions, error) {
	var in reportEvent
	if len(event) == 0 || json.Unmarshal(event, &in) != nil || in.Date == "" {
		return usecase.ReportOptions{}, nil
	}

	date, err := time.Parse(entity.DateLayout, in.Date)
	if err != nil {
		return usecase.ReportOptions{}, fmt.Errorf("%w: invalid report date %q: %w", types.ErrConfiguration, in.Date, err)
	}
	return usecase.ReportOptions{Date: date}, nil
}

// BuildReportUseCase wires the report against AWS.
func BuildReportUseCase(ctx context.Context, clients *awsadapter.ClientProvider, env types.ReportEnv, c types.ConsoleInterface) (*usecase.ReportUseCase, error) {
	costRepo, err := clients.CostRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
	}
	paramRepo, err := clients.SSMRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
	}
	archiveRepo, err := clients.ArchiveRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
	}
	mailRepo, err := clients.MailRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
	}
	metricsRepo, err := clients.MetricsRepository(ctx, env.MetricsNamespace, env.EnableMetrics)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
	}

	var budgetRepo repository.BudgetRepository
	if env.BudgetName != "" {
		b, err := clients.BudgetRepository(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
		}
		budgetRepo = b
	}

	return usecase.NewReportUseCase(
		costRepo,
		budgetRepo,
		paramRepo,
		archiveRepo,
		mailRepo,
		metricsRepo,
		export.NewExportRepository(),
		c,
	), nil
}

// RequestID returns the Lambda request id carried by ctx, or "" outside Lambda.
func RequestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.AwsRequestID
	}
	return ""
}
