package config

import (
	"context"
	"errors"
	"testing"

	"github.com/alexlux58/AWS-ALERTING/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockParameterRepository records every lookup.
type mockParameterRepository struct {
	Values map[string]string
	Err    error
	Calls  [][]string
}

func (m *mockParameterRepository) GetParameters(_ context.Context, names []string) (map[string]string, error) {
	m.Calls = append(m.Calls, append([]string(nil), names...))
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string]string)
	for _, n := range names {
		if v, ok := m.Values[n]; ok {
			out[n] = v
		}
	}
	return out, nil
}

var testEnv = types.ReportEnv{
	ParamReportTo:       "to",
	ParamReportFrom:     "from",
	ParamArchiveBucket:  "bucket",
	ParamTopNServices:   "topn",
	ParamIncludeMTD:     "mtd",
	ParamIncludeDrivers: "drivers",
}

func validParams() map[string]string {
	return map[string]string{
		"to":      "ops@example.com, finance@example.com",
		"from":    "reports@example.com",
		"bucket":  "cost-archive",
		"topn":    "10",
		"mtd":     "yes",
		"drivers": "0",
	}
}

func TestParameterCache_FetchesOnce(t *testing.T) {
	repo := &mockParameterRepository{Values: map[string]string{"a": "1", "b": "2"}}
	cache := NewParameterCache(repo)

	got, err := cache.Get(context.Background(), []string{"a", "b", "a"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, got)

	_, err = cache.Get(context.Background(), []string{"b", "a"})
	require.NoError(t, err)
	require.Len(t, repo.Calls, 1)
	assert.Equal(t, []string{"a", "b"}, repo.Calls[0])
}

func TestParameterCache_MissingName(t *testing.T) {
	cache := NewParameterCache(&mockParameterRepository{Values: map[string]string{"a": "1"}})

	_, err := cache.Get(context.Background(), []string{"a", "z"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrConfiguration)
	assert.Contains(t, err.Error(), "z")
}

func TestParameterCache_UpstreamError(t *testing.T) {
	boom := errors.New("AccessDeniedException")
	cache := NewParameterCache(&mockParameterRepository{Err: boom})

	_, err := cache.Get(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, types.ErrConfiguration)
	assert.ErrorIs(t, err, boom)
}

func TestResolveReportSettings(t *testing.T) {
	cache := NewParameterCache(&mockParameterRepository{Values: validParams()})

	settings, err := ResolveReportSettings(context.Background(), cache, testEnv)
	require.NoError(t, err)
	assert.Equal(t, types.ReportSettings{
		ReportTo:       []string{"ops@example.com", "finance@example.com"},
		ReportFrom:     "reports@example.com",
		ArchiveBucket:  "cost-archive",
		TopN:           10,
		IncludeMTD:     true,
		IncludeDrivers: false,
	}, settings)
}

func TestResolveReportSettings_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]string)
		errMsg string
	}{
		{name: "top n not a number", mutate: func(p map[string]string) { p["topn"] = "ten" }, errMsg: "positive integer"},
		{name: "top n zero", mutate: func(p map[string]string) { p["topn"] = "0" }, errMsg: "positive integer"},
		{name: "no recipients", mutate: func(p map[string]string) { p["to"] = " , " }, errMsg: "to is empty"},
		{name: "no sender", mutate: func(p map[string]string) { p["from"] = "" }, errMsg: "from is empty"},
		{name: "no bucket", mutate: func(p map[string]string) { p["bucket"] = " " }, errMsg: "bucket is empty"},
		{name: "missing parameter", mutate: func(p map[string]string) { delete(p, "mtd") }, errMsg: "parameters not found: mtd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(params)
			cache := NewParameterCache(&mockParameterRepository{Values: params})

			_, err := ResolveReportSettings(context.Background(), cache, testEnv)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrConfiguration)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestFileParameterRepository(t *testing.T) {
	repo := NewFileParameterRepository(&types.Config{Parameters: map[string]string{"a": "1"}})

	got, err := repo.GetParameters(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1"}, got)

	empty := NewFileParameterRepository(nil)
	got, err = empty.GetParameters(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
