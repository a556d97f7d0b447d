package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/alexlux58/AWS-ALERTING/internal/shared/types"
	"github.com/shopspring/decimal"
)

var errBoom = errors.New("boom")

type costCall struct {
	dimension string
	window    entity.AggregationWindow
}

// fakeCostRepository answers by "DIMENSION@start" first, then by dimension alone.
type fakeCostRepository struct {
	results       map[string]entity.CostQueryResult
	errs          map[string]error
	forecast      decimal.Decimal
	forecastErr   error
	calls         []costCall
	forecastCalls []entity.AggregationWindow
}

func (f *fakeCostRepository) GetCostAndUsage(_ context.Context, window entity.AggregationWindow, dimension string) (entity.CostQueryResult, error) {
	f.calls = append(f.calls, costCall{dimension: dimension, window: window})
	if err := f.errs[dimension]; err != nil {
		return entity.CostQueryResult{}, err
	}
	res, ok := f.results[dimension+"@"+window.Start.Format(entity.DateLayout)]
	if !ok {
		res = f.results[dimension]
	}
	res.Window = window
	res.Dimension = dimension
	return res, nil
}

func (f *fakeCostRepository) GetCostForecast(_ context.Context, window entity.AggregationWindow) (decimal.Decimal, error) {
	f.forecastCalls = append(f.forecastCalls, window)
	if f.forecastErr != nil {
		return decimal.Zero, f.forecastErr
	}
	return f.forecast, nil
}

func (f *fakeCostRepository) dimensions() []string {
	var out []string
	for _, c := range f.calls {
		out = append(out, c.dimension)
	}
	return out
}

type fakeBudgetRepository struct {
	info  entity.BudgetInfo
	err   error
	calls int
}

func (f *fakeBudgetRepository) DescribeBudget(_ context.Context, name string) (entity.BudgetInfo, error) {
	f.calls++
	if f.err != nil {
		return entity.BudgetInfo{}, f.err
	}
	info := f.info
	info.Name = name
	return info, nil
}

type fakeParameterRepository struct {
	values map[string]string
	err    error
}

func (f *fakeParameterRepository) GetParameters(_ context.Context, names []string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]string)
	for _, n := range names {
		if v, ok := f.values[n]; ok {
			out[n] = v
		}
	}
	return out, nil
}

type fakeArchiveRepository struct {
	keys   []string
	bodies map[string][]byte
	types  map[string]string
	failOn string
}

func (f *fakeArchiveRepository) Put(_ context.Context, bucket, key string, body []byte, contentType string) error {
	if f.failOn != "" && key == f.failOn {
		return errBoom
	}
	if f.bodies == nil {
		f.bodies = make(map[string][]byte)
		f.types = make(map[string]string)
	}
	full := bucket + "/" + key
	f.keys = append(f.keys, full)
	f.bodies[full] = body
	f.types[full] = contentType
	return nil
}

type fakeMailRepository struct {
	sent []entity.Email
	err  error
}

func (f *fakeMailRepository) Send(_ context.Context, email entity.Email) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, email)
	return "msg-0001", nil
}

type fakeMetricsRepository struct {
	names  []string
	values map[string]float64
	err    error
}

func (f *fakeMetricsRepository) PutMetric(_ context.Context, name string, value float64, _ string) error {
	f.names = append(f.names, name)
	if f.values == nil {
		f.values = make(map[string]float64)
	}
	f.values[name] = value
	return f.err
}

type fakeAutomationRepository struct {
	document string
	params   entity.RemediationParams
	id       string
	err      error
	calls    int
}

func (f *fakeAutomationRepository) StartAutomation(_ context.Context, documentName string, params entity.RemediationParams) (string, error) {
	f.calls++
	f.document = documentName
	f.params = params
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

type fakeInstanceRepository struct {
	instances []entity.TaggedInstance
	err       error
}

func (f *fakeInstanceRepository) ListTaggedInstances(_ context.Context, _, _ string) ([]entity.TaggedInstance, error) {
	return f.instances, f.err
}

// recordingConsole keeps log lines instead of printing them.
type recordingConsole struct {
	infos    []string
	warnings []string
	errors   []string
}

func (c *recordingConsole) Print(a ...interface{})                 {}
func (c *recordingConsole) Printf(format string, a ...interface{}) {}
func (c *recordingConsole) Println(a ...interface{})               {}

func (c *recordingConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) LogSuccess(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) Status(string) types.StatusHandle { return noopStatus{} }

func (c *recordingConsole) CreateTable() types.TableInterface { return nil }

func (c *recordingConsole) DisplayTrendBars([]types.DailyCost) {}

type noopStatus struct{}

func (noopStatus) Update(string) {}
func (noopStatus) Stop()         {}
