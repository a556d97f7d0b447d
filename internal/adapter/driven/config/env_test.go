package config

import (
	"testing"

	"github.com/alexlux58/AWS-ALERTING/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setReportParams(t *testing.T) {
	t.Helper()
	t.Setenv(EnvParamReportTo, "/cost-report/report_to")
	t.Setenv(EnvParamReportFrom, "/cost-report/report_from")
	t.Setenv(EnvParamArchiveBucket, "/cost-report/archive_bucket")
	t.Setenv(EnvParamTopNServices, "/cost-report/top_n_services")
	t.Setenv(EnvParamIncludeMTD, "/cost-report/include_mtd")
	t.Setenv(EnvParamIncludeDrivers, "/cost-report/include_drivers")
}

func TestLoadReportEnv_Defaults(t *testing.T) {
	setReportParams(t)
	t.Setenv(EnvAWSRegion, "us-west-2")

	env, err := LoadReportEnv(nil)
	require.NoError(t, err)

	assert.Equal(t, "/cost-report/report_to", env.ParamReportTo)
	assert.Equal(t, "America/Los_Angeles", env.ScheduleTZ)
	assert.Equal(t, "us-west-2", env.SESRegion, "SES falls back to the function region")
	assert.True(t, env.EnableMetrics)
	assert.Equal(t, "cost-alerting", env.MetricsNamespace)
	assert.Empty(t, env.BudgetName)
	assert.True(t, env.IncludeRegions)
	assert.True(t, env.IncludeTrend)
	assert.True(t, env.IncludeForecast)
	assert.True(t, env.ArchivePDF)
	assert.Len(t, env.ParameterNames(), 6)
}

func TestLoadReportEnv_Overrides(t *testing.T) {
	setReportParams(t)
	t.Setenv(EnvSESRegion, "eu-west-1")
	t.Setenv(EnvEnableMetrics, "false")
	t.Setenv(EnvBudgetName, " monthly ")

	env, err := LoadReportEnv(map[string]string{
		"include_trend": "no",
		EnvScheduleTZ:   "UTC",
	})
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", env.SESRegion)
	assert.False(t, env.EnableMetrics)
	assert.Equal(t, "monthly", env.BudgetName)
	assert.False(t, env.IncludeTrend)
	assert.Equal(t, "UTC", env.ScheduleTZ)
}

func TestLoadReportEnv_Missing(t *testing.T) {
	setReportParams(t)
	t.Setenv(EnvParamArchiveBucket, "")
	t.Setenv(EnvParamTopNServices, "")

	_, err := LoadReportEnv(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrConfiguration)
	assert.Contains(t, err.Error(), EnvParamArchiveBucket)
	assert.Contains(t, err.Error(), EnvParamTopNServices)
}

func TestLoadRemediationEnv(t *testing.T) {
	t.Setenv(EnvAutomationDocName, "StopTaggedInstances")
	t.Setenv(EnvAutomationAssumeRoleARN, "arn:aws:iam::123456789012:role/automation")

	env, err := LoadRemediationEnv(nil)
	require.NoError(t, err)
	assert.Equal(t, types.RemediationEnv{
		DocumentName:  "StopTaggedInstances",
		AssumeRoleARN: "arn:aws:iam::123456789012:role/automation",
		TagKey:        "AutoStop",
		TagValue:      "true",
	}, env)

	t.Setenv(EnvAutomationAssumeRoleARN, "")
	_, err = LoadRemediationEnv(nil)
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestToBool(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", "yes", "Y", "on", " On "} {
		assert.True(t, ToBool(s), s)
	}
	for _, s := range []string{"", "0", "false", "no", "off", "enabled"} {
		assert.False(t, ToBool(s), s)
	}
}
