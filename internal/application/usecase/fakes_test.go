package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/diillson/cloud-cost-ai-go/internal/shared/types"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func record(offset int, service, region string, cost float64) entity.CostRecord {
	return entity.CostRecord{Date: day0.AddDate(0, 0, offset), Service: service, Region: region, CostUSD: cost}
}

func writeCSV(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "costs.csv")
	content := "date,service,region,cost_usd\n" + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// fakeModel devolve uma previsão constante igual ao último valor observado.
type fakeModel struct {
	min   int
	calls int
	err   error
}

func (m *fakeModel) MinObservations() int {
	if m.min == 0 {
		return 1
	}
	return m.min
}

func (m *fakeModel) FitPredict(_ context.Context, history []entity.Observation, horizon int) ([]entity.ForecastPoint, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	last := history[len(history)-1]
	points := make([]entity.ForecastPoint, 0, len(history)+horizon)
	for _, obs := range history {
		points = append(points, entity.ForecastPoint{Date: obs.Date, Forecast: obs.Value, Lower: obs.Value - 1, Upper: obs.Value + 1})
	}
	for i := 1; i <= horizon; i++ {
		points = append(points, entity.ForecastPoint{Date: last.Date.AddDate(0, 0, i), Forecast: last.Value, Lower: last.Value - 1, Upper: last.Value + 1})
	}
	return points, nil
}

type fakeCharts struct {
	forecasts []string
	accuracy  []string
	err       error
}

func (c *fakeCharts) RenderForecast(dir, service string, _ []entity.ForecastPoint) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.forecasts = append(c.forecasts, service)
	return filepath.Join(dir, service+"_forecast.png"), nil
}

func (c *fakeCharts) RenderAccuracy(dir, service string, _ []time.Time, _, _ []float64) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.accuracy = append(c.accuracy, service)
	return filepath.Join(dir, service+"_actual_vs_predicted.png"), nil
}

type fakeExport struct {
	calls []string
	err   error
}

func (e *fakeExport) export(kind, filename, dir string) (string, error) {
	e.calls = append(e.calls, kind)
	if e.err != nil {
		return "", e.err
	}
	return filepath.Join(dir, filename+"."+kind), nil
}

func (e *fakeExport) ExportToCSV(_ *entity.CostReport, filename, dir string) (string, error) {
	return e.export("csv", filename, dir)
}

func (e *fakeExport) ExportToJSON(_ *entity.CostReport, filename, dir string) (string, error) {
	return e.export("json", filename, dir)
}

func (e *fakeExport) ExportToPDF(_ *entity.CostReport, filename, dir string) (string, error) {
	return e.export("pdf", filename, dir)
}

func (e *fakeExport) ExportAccuracyToCSV(_ []entity.AccuracyResult, filename, dir string) (string, error) {
	return e.export("accuracy-csv", filename, dir)
}

func (e *fakeExport) ExportAccuracyToJSON(_ []entity.AccuracyResult, filename, dir string) (string, error) {
	return e.export("accuracy-json", filename, dir)
}

type fakeAWS struct {
	records  []entity.CostRecord
	budget   entity.BudgetInfo
	account  string
	profiles []string
	err      error
}

func (a *fakeAWS) LoadCostRecords(context.Context, entity.CostQuery) ([]entity.CostRecord, error) {
	return a.records, a.err
}

func (a *fakeAWS) GetAWSProfiles() []string {
	if a.profiles == nil {
		return []string{"default", "finops"}
	}
	return a.profiles
}

func (a *fakeAWS) GetAccountID(context.Context, string) (string, error) {
	if a.account == "" {
		return "", errors.New("no identity")
	}
	return a.account, nil
}

func (a *fakeAWS) GetBudget(_ context.Context, _, name string) (entity.BudgetInfo, error) {
	if a.budget.Name != name {
		return entity.BudgetInfo{}, fmt.Errorf("budget %s not found", name)
	}
	return a.budget, nil
}

type fakeConfigRepo struct{ cfg *types.Config }

func (c *fakeConfigRepo) LoadConfigFile(string) (*types.Config, error) {
	return c.cfg, nil
}

// fakeConsole grava tudo o que seria exibido.
type fakeConsole struct {
	sections []string
	infos    []string
	warnings []string
	errors   []string
	success  []string
	output   strings.Builder
	bars     []types.BarItem
	tables   []*fakeTable
}

func (c *fakeConsole) Print(a ...interface{}) { fmt.Fprint(&c.output, a...) }
func (c *fakeConsole) Printf(format string, a ...interface{}) { fmt.Fprintf(&c.output, format, a...) }
func (c *fakeConsole) Println(a ...interface{}) { fmt.Fprintln(&c.output, a...) }
func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.success = append(c.success, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) Section(title string) { c.sections = append(c.sections, title) }
func (c *fakeConsole) Status(string) types.StatusHandle { return fakeStatus{} }
func (c *fakeConsole) DisplayBars(_ string, items []types.BarItem) { c.bars = items }
func (c *fakeConsole) CreateTable() types.TableInterface {
	t := &fakeTable{}
	c.tables = append(c.tables, t)
	return t
}

type fakeStatus struct{}

func (fakeStatus) Update(string) {}
func (fakeStatus) Stop() {}

type fakeTable struct {
	columns []string
	rows    [][]interface{}
}

func (t *fakeTable) AddColumn(name string, _ ...interface{}) { t.columns = append(t.columns, name) }
func (t *fakeTable) AddRow(cells ...interface{}) { t.rows = append(t.rows, cells) }
func (t *fakeTable) Render() string { return fmt.Sprintf("table(%d rows)\n", len(t.rows)) }
