package repository

import (
	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
)

// ExportRepository turns report data into archive artifacts.
type ExportRepository interface {
	ExportRowsToCSV(keyHeader string, set entity.CostRowSet) ([]byte, error)
	ExportToJSON(v interface{}) ([]byte, error)
	ExportReportToPDF(doc entity.ReportDocument) ([]byte, error)
}
