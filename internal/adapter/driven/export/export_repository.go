package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/diillson/cloud-cost-ai-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// --- Funções de Exportação do Relatório de Custos ---

// ExportToCSV grava o relatório em seções separadas por uma linha em branco:
// resumo, drivers, recomendações, economia simulada e previsão por serviço.
func (r *ExportRepositoryImpl) ExportToCSV(report *entity.CostReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	rows := [][]string{
		{"Section", "Field", "Value"},
		{"Summary", "Run ID", report.RunID},
		{"Summary", "Generated At", report.GeneratedAt.Format(time.RFC3339)},
		{"Summary", "Source", report.Source},
		{"Summary", "Account ID", report.AccountID},
		{"Summary", "Records", fmt.Sprintf("%d", report.RecordCount)},
		{"Summary", "Total Cost", money(report.TotalCost)},
		{"Budget", "Limit", money(report.BudgetStatus.Limit)},
		{"Budget", "Exceeded", fmt.Sprintf("%t", report.BudgetStatus.Exceeded)},
		{"Budget", "Message", report.BudgetStatus.Message},
		{},
		{"Service", "Region", "Total Cost (USD)"},
	}
	if report.DriverReport != nil {
		for _, d := range report.DriverReport.Drivers {
			rows = append(rows, []string{d.Service, d.Region, money(d.TotalCostUSD)})
		}
	}

	rows = append(rows, []string{}, []string{"Recommendation"})
	for _, rec := range report.Recommendations {
		rows = append(rows, []string{rec})
	}

	rows = append(rows, []string{}, []string{"Service", fmt.Sprintf("Potential Savings at %.0f%% (USD)", report.ReductionPct)})
	for _, service := range report.Simulation.Services() {
		rows = append(rows, []string{service, money(report.Simulation[service])})
	}

	rows = append(rows, []string{}, []string{"Service", "Date", "Forecast", "Lower", "Upper"})
	for _, service := range report.Forecasts.Services() {
		for _, p := range report.Forecasts[service] {
			rows = append(rows, []string{
				service,
				p.Date.Format("2006-01-02"),
				money(p.Forecast),
				money(p.Lower),
				money(p.Upper),
			})
		}
	}

	if err := writeRows(writer, rows); err != nil {
		return "", err
	}
	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(report *entity.CostReport, filename, outputDir string) (string, error) {
	return r.writeJSON(report, filename, outputDir)
}

func (r *ExportRepositoryImpl) ExportToPDF(report *entity.CostReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	s := newPDFStyle(pdf, tr)

	pdf.AddPage()
	s.header("Cloud Cost Report", fmt.Sprintf("Run %s | Source: %s%s",
		report.RunID, report.Source, accountSuffix(report.AccountID)))

	// resumo em destaque
	s.sectionTitle("Cost Summary")
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(95, 12, tr(money(report.TotalCost)), "", 0, "L", false, 0, "")
	r0, g0, b0 := pdf.GetTextColor()
	if report.BudgetStatus.Exceeded {
		pdf.SetTextColor(192, 0, 0)
	} else {
		pdf.SetTextColor(0, 128, 0)
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(95, 12, tr(report.BudgetStatus.Message), "", 1, "L", false, 0, "")
	pdf.SetTextColor(r0, g0, b0)
	pdf.Ln(6)

	if report.DriverReport.Len() > 0 {
		s.sectionTitle("Top Cost Drivers")
		widths := []float64{80, 60, 50}
		s.tableHeader(widths, "Service", "Region", "Total Cost (USD)")
		for _, d := range report.DriverReport.Drivers {
			s.tableRow(widths, d.Service, d.Region, money(d.TotalCostUSD))
		}
		pdf.Ln(8)
	}

	s.drawSection("Optimization Recommendations", strings.Join(bullets(report.Recommendations), "\n"))

	var savings []string
	for _, service := range report.Simulation.Services() {
		savings = append(savings, fmt.Sprintf("%s: %s", service, money(report.Simulation[service])))
	}
	s.drawSection(fmt.Sprintf("What-if Savings (%.0f%% reduction)", report.ReductionPct), strings.Join(savings, "\n"))

	var forecasts []string
	for _, service := range report.Forecasts.Services() {
		points := report.Forecasts[service]
		if len(points) == 0 {
			continue
		}
		last := points[len(points)-1]
		forecasts = append(forecasts, fmt.Sprintf("%s: %s on %s (%s - %s)",
			service, money(last.Forecast), last.Date.Format("2006-01-02"), money(last.Lower), money(last.Upper)))
	}
	s.drawSection(fmt.Sprintf("Forecast (%d days ahead)", report.Horizon), strings.Join(forecasts, "\n"))

	s.footer(r.now(), 1)

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções de Exportação da Acurácia ---

func (r *ExportRepositoryImpl) ExportAccuracyToCSV(results []entity.AccuracyResult, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	rows := [][]string{{"Service", "Train Size", "Test Size", "MAE", "RMSE", "MAPE (%)", "Skipped", "Reason", "Plot"}}
	for _, res := range results {
		rows = append(rows, []string{
			res.Service,
			fmt.Sprintf("%d", res.TrainSize),
			fmt.Sprintf("%d", res.TestSize),
			fmt.Sprintf("%.2f", res.MAE),
			fmt.Sprintf("%.2f", res.RMSE),
			fmt.Sprintf("%.2f", res.MAPE),
			fmt.Sprintf("%t", res.Skipped),
			res.Reason,
			res.PlotPath,
		})
	}

	if err := writeRows(csv.NewWriter(file), rows); err != nil {
		return "", err
	}
	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportAccuracyToJSON(results []entity.AccuracyResult, filename, outputDir string) (string, error) {
	if results == nil {
		results = []entity.AccuracyResult{}
	}
	return r.writeJSON(results, filename, outputDir)
}

// --- Funções Auxiliares ---

func (r *ExportRepositoryImpl) writeJSON(data interface{}, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func writeRows(writer *csv.Writer, rows [][]string) error {
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func accountSuffix(accountID string) string {
	if accountID == "" {
		return ""
	}
	return fmt.Sprintf(" | Account: %s", accountID)
}

func bullets(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = "- " + item
	}
	return out
}
