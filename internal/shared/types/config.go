package types

// Config represents the local configuration file used by the CLI.
// Parameters stands in for the parameter store; Environment overrides the Lambda environment variables.
type Config struct {
	Parameters  map[string]string `json:"parameters" yaml:"parameters" toml:"parameters"`
	Environment map[string]string `json:"environment" yaml:"environment" toml:"environment"`
}

// ReportEnv is the environment of the report function.
type ReportEnv struct {
	ParamReportTo       string
	ParamReportFrom     string
	ParamArchiveBucket  string
	ParamTopNServices   string
	ParamIncludeMTD     string
	ParamIncludeDrivers string

	ScheduleTZ       string
	SESRegion        string
	EnableMetrics    bool
	MetricsNamespace string
	BudgetName       string
	IncludeRegions   bool
	IncludeTrend     bool
	IncludeForecast  bool
	ArchivePDF       bool
}

// ParameterNames lists the parameter-store names the report needs, in a stable order.
func (e ReportEnv) ParameterNames() []string {
	return []string{
		e.ParamReportTo,
		e.ParamReportFrom,
		e.ParamArchiveBucket,
		e.ParamTopNServices,
		e.ParamIncludeMTD,
		e.ParamIncludeDrivers,
	}
}

// ReportSettings are the parameter-store values once resolved and parsed.
type ReportSettings struct {
	ReportTo       []string
	ReportFrom     string
	ArchiveBucket  string
	TopN           int
	IncludeMTD     bool
	IncludeDrivers bool
}

// RemediationEnv is the environment of the remediation function.
type RemediationEnv struct {
	DocumentName   string
	AssumeRoleARN  string
	TagKey         string
	TagValue       string
	PreviewTargets bool
}
