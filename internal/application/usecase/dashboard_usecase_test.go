package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/diillson/cloud-cost-ai-go/internal/adapter/driven/csvdata"
	"github.com/diillson/cloud-cost-ai-go/internal/adapter/driven/forecast"
	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/diillson/cloud-cost-ai-go/internal/shared/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardFixture struct {
	uc      *DashboardUseCase
	model   *fakeModel
	charts  *fakeCharts
	export  *fakeExport
	console *fakeConsole
	aws     *fakeAWS
}

func newDashboardFixture() *dashboardFixture {
	f := &dashboardFixture{
		model:   &fakeModel{},
		charts:  &fakeCharts{},
		export:  &fakeExport{},
		console: &fakeConsole{},
		aws:     &fakeAWS{},
	}
	f.uc = NewDashboardUseCase(
		csvdata.NewCSVRepository(""),
		f.aws,
		f.model,
		f.charts,
		f.export,
		&fakeConfigRepo{cfg: &types.Config{Source: "aws"}},
		f.console,
	)
	f.uc.now = func() time.Time { return time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func csvOptions(path string, limit float64) ReportOptions {
	opts := DefaultReportOptions()
	opts.DataPath = path
	opts.BudgetLimit = limit
	opts.NoPlots = true
	return opts
}

func TestGenerateReportEndToEnd(t *testing.T) {
	path := writeCSV(t,
		"2024-01-01,EC2,us-east-1,100",
		"2024-01-02,EC2,us-east-1,50",
	)

	cases := []struct {
		limit    float64
		exceeded bool
		message  string
	}{
		{100, true, "Budget exceeded! Total cost $150.00 > Budget $100.00"},
		{200, false, "Cost within budget. Total cost $150.00 <= Budget $200.00"},
	}
	for _, tc := range cases {
		f := newDashboardFixture()
		f.uc.model = forecast.NewLinearTrendModel()

		report, err := f.uc.GenerateReport(context.Background(), csvOptions(path, tc.limit))
		require.NoError(t, err)

		assert.Equal(t, []entity.CostDriver{{Service: "EC2", Region: "us-east-1", TotalCostUSD: 150}}, report.DriverReport.Drivers)
		assert.Equal(t, []string{AdviceFor("EC2")}, report.Recommendations)
		assert.Equal(t, 150.0, report.TotalCost)
		assert.Equal(t, 2, report.RecordCount)
		assert.Equal(t, tc.exceeded, report.BudgetStatus.Exceeded)
		assert.Equal(t, tc.message, report.BudgetStatus.Message)

		require.Len(t, report.Forecasts["EC2"], 2+types.DefaultHorizon)
		// tendência de -50/dia deixa a soma prevista negativa, então a economia é zerada
		assert.Equal(t, entity.SavingsReport{"EC2": 0}, report.Simulation)
		assert.Empty(t, report.PlotPaths)
		assert.Empty(t, f.charts.forecasts)

		_, err = uuid.Parse(report.RunID)
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC), report.GeneratedAt)
	}
}

func TestGenerateReportMissingData(t *testing.T) {
	f := newDashboardFixture()
	missing := filepath.Join(t.TempDir(), "nope.csv")

	report, err := f.uc.GenerateReport(context.Background(), csvOptions(missing, 100))
	assert.Nil(t, report)

	var notFound *types.DataNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, missing, notFound.Path)
	assert.ErrorIs(t, err, types.ErrDataNotFound)
	assert.Zero(t, f.model.calls)
}

func TestGenerateReportInsufficientData(t *testing.T) {
	f := newDashboardFixture()
	f.model.min = 2
	path := writeCSV(t,
		"2024-01-01,EC2,us-east-1,100",
		"2024-01-02,EC2,us-east-1,50",
		"2024-01-01,S3,us-east-1,5",
	)

	_, err := f.uc.GenerateReport(context.Background(), csvOptions(path, 100))
	var insufficient *types.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "S3", insufficient.Service)
}

func TestGenerateReportWithPlots(t *testing.T) {
	f := newDashboardFixture()
	path := writeCSV(t, "2024-01-01,RDS,us-east-1,10")

	opts := csvOptions(path, 100)
	opts.NoPlots = false
	opts.PlotDir = t.TempDir()

	report, err := f.uc.GenerateReport(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"RDS"}, f.charts.forecasts)
	assert.Equal(t, filepath.Join(opts.PlotDir, "RDS_forecast.png"), report.PlotPaths["RDS"])
}

func TestGenerateReportFromAWS(t *testing.T) {
	f := newDashboardFixture()
	f.aws.records = []entity.CostRecord{
		record(0, "EC2", "us-east-1", 100),
		record(1, "EC2", "us-east-1", 50),
	}
	f.aws.account = "123456789012"
	f.aws.budget = entity.BudgetInfo{Name: "monthly", Limit: 120}

	opts := DefaultReportOptions()
	opts.Source = types.SourceAWS
	opts.Profile = "finops"
	opts.AWSBudget = "monthly"
	opts.NoPlots = true

	report, err := f.uc.GenerateReport(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "123456789012", report.AccountID)
	assert.Equal(t, 120.0, report.BudgetStatus.Limit)
	assert.True(t, report.BudgetStatus.Exceeded)

	opts.AWSBudget = "missing"
	_, err = f.uc.GenerateReport(context.Background(), opts)
	assert.ErrorContains(t, err, "budget missing not found")
}

func TestGenerateReportAccountIDIsOptional(t *testing.T) {
	f := newDashboardFixture()
	f.aws.records = []entity.CostRecord{record(0, "S3", "us-east-1", 1)}

	opts := DefaultReportOptions()
	opts.Source = types.SourceAWS
	opts.NoPlots = true

	report, err := f.uc.GenerateReport(context.Background(), opts)
	require.NoError(t, err)
	assert.Empty(t, report.AccountID)
}

func TestGenerateReportSourceErrors(t *testing.T) {
	f := newDashboardFixture()

	opts := DefaultReportOptions()
	opts.Source = "gcp"
	_, err := f.uc.GenerateReport(context.Background(), opts)
	assert.ErrorIs(t, err, types.ErrUnknownSource)

	f.aws.err = errors.New("expired token")
	opts.Source = types.SourceAWS
	_, err = f.uc.GenerateReport(context.Background(), opts)
	assert.ErrorContains(t, err, "expired token")

	f.aws.err = nil
	opts.Profile = "prod"
	_, err = f.uc.GenerateReport(context.Background(), opts)
	assert.ErrorIs(t, err, types.ErrProfileNotFound)

	f.aws.profiles = []string{}
	opts.Profile = ""
	_, err = f.uc.GenerateReport(context.Background(), opts)
	assert.ErrorIs(t, err, types.ErrNoProfilesFound)
	f.aws.profiles = nil

	opts = csvOptions(writeCSV(t, "2024-01-01,EC2,us-east-1,1"), 10)
	opts.AWSBudget = "monthly"
	opts.NoPlots = false
	opts.PlotDir = t.TempDir()
	_, err = f.uc.GenerateReport(context.Background(), opts)
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
	assert.Zero(t, f.model.calls, "budget source is rejected before forecasting")
	assert.Empty(t, f.charts.forecasts)
}

func cliArgs(path string) *types.CLIArgs {
	return &types.CLIArgs{
		Source:           types.SourceCSV,
		DataPath:         path,
		BudgetLimit:      100,
		Horizon:          7,
		TopN:             10,
		AdviceTopN:       3,
		ReductionPercent: 10,
		NoPlots:          true,
	}
}

func TestRunDashboard(t *testing.T) {
	path := writeCSV(t,
		"2024-01-01,EC2,us-east-1,100",
		"2024-01-02,EC2,us-east-1,50",
		"2024-01-01,S3,eu-west-1,20",
	)

	t.Run("PrintsEverySection", func(t *testing.T) {
		f := newDashboardFixture()
		args := cliArgs(path)
		args.ReportName = "costs"
		args.ReportType = []string{"csv", "json", "pdf"}
		args.Dir = t.TempDir()

		require.NoError(t, f.uc.RunDashboard(context.Background(), args))

		assert.Equal(t, []string{
			"Cloud Cost Report",
			"Top Cost Drivers",
			"Optimization Recommendations",
			"What-if Savings (10% reduction)",
			"Forecast (next 7 days)",
			"Budget Status",
		}, f.console.sections)
		assert.Equal(t, []string{"Budget exceeded! Total cost $170.00 > Budget $100.00"}, f.console.errors)
		assert.ElementsMatch(t, []string{AdviceFor("EC2"), AdviceFor("S3")}, f.console.infos)
		assert.Equal(t, []string{"csv", "json", "pdf"}, f.export.calls)
		assert.Len(t, f.console.success, 3)

		require.Len(t, f.console.bars, 2)
		assert.Equal(t, "EC2", f.console.bars[0].Label)
		assert.Len(t, f.console.tables[0].rows, 2)
	})

	t.Run("WithinBudgetIsSuccess", func(t *testing.T) {
		f := newDashboardFixture()
		args := cliArgs(path)
		args.BudgetLimit = 170

		require.NoError(t, f.uc.RunDashboard(context.Background(), args))
		assert.Empty(t, f.console.errors)
		assert.Equal(t, []string{"Cost within budget. Total cost $170.00 <= Budget $170.00"}, f.console.success)
		assert.Empty(t, f.export.calls)
	})

	t.Run("ExportFailureIsReported", func(t *testing.T) {
		f := newDashboardFixture()
		f.export.err = errors.New("read-only")
		args := cliArgs(path)
		args.BudgetLimit = 1000
		args.ReportName = "costs"
		args.ReportType = []string{"json"}

		require.NoError(t, f.uc.RunDashboard(context.Background(), args))
		assert.Equal(t, []string{"Failed to export to JSON: read-only"}, f.console.errors)
	})

	t.Run("MissingData", func(t *testing.T) {
		f := newDashboardFixture()
		missing := filepath.Join(t.TempDir(), "missing.csv")

		err := f.uc.RunDashboard(context.Background(), cliArgs(missing))
		assert.ErrorIs(t, err, types.ErrDataNotFound)
		require.Len(t, f.console.errors, 1)
		assert.Contains(t, f.console.errors[0], "Error loading data")
		assert.Empty(t, f.console.sections)
	})
}

func TestRunAccuracy(t *testing.T) {
	var rows []string
	for i := 0; i < 10; i++ {
		rows = append(rows, day0.AddDate(0, 0, i).Format("2006-01-02")+",EC2,us-east-1,10")
	}
	path := writeCSV(t, rows...)

	f := newDashboardFixture()
	args := cliArgs(path)
	args.NoPlots = false
	args.PlotDir = t.TempDir()
	args.ReportName = "accuracy"
	args.ReportType = []string{"csv", "json", "pdf"}

	results, err := f.uc.RunAccuracy(context.Background(), args)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Zero(t, results[0].MAE)
	assert.Equal(t, filepath.Join(args.PlotDir, "EC2_actual_vs_predicted.png"), results[0].PlotPath)

	assert.Equal(t, []string{"Forecast Accuracy"}, f.console.sections)
	assert.Equal(t, []string{"accuracy-csv", "accuracy-json"}, f.export.calls)
	assert.Len(t, f.console.warnings, 1)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := newDashboardFixture().uc.LoadConfig("cloudcost.toml")
	require.NoError(t, err)
	assert.Equal(t, "aws", cfg.Source)

	_, err = (&DashboardUseCase{}).LoadConfig("cloudcost.toml")
	assert.Error(t, err)
}
