package config

import (
	"fmt"
	"strings"

	"github.com/alexlux58/AWS-ALERTING/internal/shared/types"
	"github.com/spf13/viper"
)

// Environment variables read by the report function.
const (
	EnvParamReportTo       = "PARAM_REPORT_TO"
	EnvParamReportFrom     = "PARAM_REPORT_FROM"
	EnvParamArchiveBucket  = "PARAM_ARCHIVE_BUCKET"
	EnvParamTopNServices   = "PARAM_TOP_N_SERVICES"
	EnvParamIncludeMTD     = "PARAM_INCLUDE_MTD"
	EnvParamIncludeDrivers = "PARAM_INCLUDE_DRIVERS"
	EnvScheduleTZ          = "SCHEDULE_TZ"
	EnvSESRegion           = "SES_REGION"
	EnvAWSRegion           = "AWS_REGION"
	EnvEnableMetrics       = "ENABLE_METRICS"
	EnvMetricsNamespace    = "METRICS_NAMESPACE"
	EnvBudgetName          = "BUDGET_NAME"
	EnvIncludeRegions      = "INCLUDE_REGIONS"
	EnvIncludeTrend        = "INCLUDE_TREND"
	EnvIncludeForecast     = "INCLUDE_FORECAST"
	EnvArchivePDF          = "ARCHIVE_PDF"
)

// Environment variables read by the remediation function.
const (
	EnvAutomationDocName       = "AUTOMATION_DOC_NAME"
	EnvAutomationAssumeRoleARN = "AUTOMATION_ASSUME_ROLE_ARN"
	EnvRemediationTagKey       = "REMEDIATION_TAG_KEY"
	EnvRemediationTagValue     = "REMEDIATION_TAG_VALUE"
	EnvPreviewTargets          = "REMEDIATION_PREVIEW_TARGETS"
)

// newEnv binds keys to the process environment. Overrides win over the environment,
// which wins over defaults.
func newEnv(keys []string, defaults, overrides map[string]string) *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	for _, k := range keys {
		_ = v.BindEnv(k, k)
	}
	for k, val := range overrides {
		v.Set(strings.ToUpper(k), val)
	}
	return v
}

func requireKeys(v *viper.Viper, keys ...string) error {
	var missing []string
	for _, k := range keys {
		if strings.TrimSpace(v.GetString(k)) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing environment variables: %s", types.ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// LoadReportEnv reads the report environment.
func LoadReportEnv(overrides map[string]string) (types.ReportEnv, error) {
	keys := []string{
		EnvParamReportTo, EnvParamReportFrom, EnvParamArchiveBucket,
		EnvParamTopNServices, EnvParamIncludeMTD, EnvParamIncludeDrivers,
		EnvScheduleTZ, EnvSESRegion, EnvAWSRegion, EnvEnableMetrics, EnvMetricsNamespace,
		EnvBudgetName, EnvIncludeRegions, EnvIncludeTrend, EnvIncludeForecast, EnvArchivePDF,
	}
	v := newEnv(keys, map[string]string{
		EnvScheduleTZ:       "America/Los_Angeles",
		EnvAWSRegion:        "us-east-1",
		EnvEnableMetrics:    "true",
		EnvMetricsNamespace: "cost-alerting",
		EnvIncludeRegions:   "true",
		EnvIncludeTrend:     "true",
		EnvIncludeForecast:  "true",
		EnvArchivePDF:       "true",
	}, overrides)

	if err := requireKeys(v, EnvParamReportTo, EnvParamReportFrom, EnvParamArchiveBucket,
		EnvParamTopNServices, EnvParamIncludeMTD, EnvParamIncludeDrivers); err != nil {
		return types.ReportEnv{}, err
	}

	sesRegion := v.GetString(EnvSESRegion)
	if sesRegion == "" {
		sesRegion = v.GetString(EnvAWSRegion)
	}

	return types.ReportEnv{
		ParamReportTo:       v.GetString(EnvParamReportTo),
		ParamReportFrom:     v.GetString(EnvParamReportFrom),
		ParamArchiveBucket:  v.GetString(EnvParamArchiveBucket),
		ParamTopNServices:   v.GetString(EnvParamTopNServices),
		ParamIncludeMTD:     v.GetString(EnvParamIncludeMTD),
		ParamIncludeDrivers: v.GetString(EnvParamIncludeDrivers),
		ScheduleTZ:          v.GetString(EnvScheduleTZ),
		SESRegion:           sesRegion,
		EnableMetrics:       ToBool(v.GetString(EnvEnableMetrics)),
		MetricsNamespace:    v.GetString(EnvMetricsNamespace),
		BudgetName:          strings.TrimSpace(v.GetString(EnvBudgetName)),
		IncludeRegions:      ToBool(v.GetString(EnvIncludeRegions)),
		IncludeTrend:        ToBool(v.GetString(EnvIncludeTrend)),
		IncludeForecast:     ToBool(v.GetString(EnvIncludeForecast)),
		ArchivePDF:          ToBool(v.GetString(EnvArchivePDF)),
	}, nil
}

// LoadRemediationEnv reads the remediation environment.
func LoadRemediationEnv(overrides map[string]string) (types.RemediationEnv, error) {
	keys := []string{
		EnvAutomationDocName, EnvAutomationAssumeRoleARN,
		EnvRemediationTagKey, EnvRemediationTagValue, EnvPreviewTargets,
	}
	v := newEnv(keys, map[string]string{
		EnvRemediationTagKey:   "AutoStop",
		EnvRemediationTagValue: "true",
		EnvPreviewTargets:      "false",
	}, overrides)

	if err := requireKeys(v, EnvAutomationDocName, EnvAutomationAssumeRoleARN); err != nil {
		return types.RemediationEnv{}, err
	}

	return types.RemediationEnv{
		DocumentName:   v.GetString(EnvAutomationDocName),
		AssumeRoleARN:  v.GetString(EnvAutomationAssumeRoleARN),
		TagKey:         v.GetString(EnvRemediationTagKey),
		TagValue:       v.GetString(EnvRemediationTagValue),
		PreviewTargets: ToBool(v.GetString(EnvPreviewTargets)),
	}, nil
}

// ToBool accepts 1, true, yes, y and on in any case.
func ToBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
