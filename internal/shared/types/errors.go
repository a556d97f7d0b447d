package types

import "errors"

// Error kinds surfaced by the report and remediation flows. Callers match them with errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrUpstreamQuery = errors.New("upstream query error")
	ErrPersistence   = errors.New("persistence error")
	ErrDelivery      = errors.New("delivery error")
	ErrMetrics       = errors.New("metrics error")
	ErrAutomation    = errors.New("automation error")
)
