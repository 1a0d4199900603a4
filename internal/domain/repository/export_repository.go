package repository

import (
	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(report *entity.CostReport, filename, outputDir string) (string, error)
	ExportToJSON(report *entity.CostReport, filename, outputDir string) (string, error)
	ExportToPDF(report *entity.CostReport, filename, outputDir string) (string, error)

	// Forecast accuracy
	ExportAccuracyToCSV(results []entity.AccuracyResult, filename, outputDir string) (string, error)
	ExportAccuracyToJSON(results []entity.AccuracyResult, filename, outputDir string) (string, error)
}
