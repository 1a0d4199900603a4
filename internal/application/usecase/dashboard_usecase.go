package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/diillson/cloud-cost-ai-go/internal/domain/repository"
	"github.com/diillson/cloud-cost-ai-go/internal/shared/types"
	"github.com/diillson/cloud-cost-ai-go/pkg/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportOptions controla uma execução do pipeline.
type ReportOptions struct {
	Source           string
	DataPath         string
	Profile          string
	TimeRange        int
	BudgetLimit      float64
	AWSBudget        string
	Horizon          int
	TopN             int
	AdviceTopN       int
	ReductionPercent float64
	PlotDir          string
	NoPlots          bool
}

// DefaultReportOptions returns the options used when nothing is configured.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		Source:           types.SourceCSV,
		DataPath:         types.DefaultDataPath,
		TimeRange:        types.DefaultTimeRange,
		BudgetLimit:      types.DefaultBudgetLimit,
		Horizon:          types.DefaultHorizon,
		TopN:             types.DefaultDriverTopN,
		AdviceTopN:       types.DefaultAdviceTopN,
		ReductionPercent: types.DefaultReductionPercent,
		PlotDir:          types.DefaultPlotDir,
	}
}

// ReportOptionsFromArgs converte os argumentos da CLI nas opções do pipeline.
func ReportOptionsFromArgs(args *types.CLIArgs) ReportOptions {
	return ReportOptions{
		Source:           args.Source,
		DataPath:         args.DataPath,
		Profile:          args.Profile,
		TimeRange:        args.TimeRange,
		BudgetLimit:      args.BudgetLimit,
		AWSBudget:        args.AWSBudget,
		Horizon:          args.Horizon,
		TopN:             args.TopN,
		AdviceTopN:       args.AdviceTopN,
		ReductionPercent: args.ReductionPercent,
		PlotDir:          args.PlotDir,
		NoPlots:          args.NoPlots,
	}
}

// DashboardUseCase coordena o pipeline de custo e a exibição do resultado.
type DashboardUseCase struct {
	csvRepo    repository.CostDataRepository
	awsRepo    repository.AWSRepository
	model      repository.ForecastModel
	charts     repository.ChartRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	log        *zap.Logger
	now        func() time.Time
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	csvRepo repository.CostDataRepository,
	awsRepo repository.AWSRepository,
	model repository.ForecastModel,
	charts repository.ChartRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *DashboardUseCase {
	return &DashboardUseCase{
		csvRepo:    csvRepo,
		awsRepo:    awsRepo,
		model:      model,
		charts:     charts,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
		log:        logging.Named("Coordinator"),
		now:        time.Now,
	}
}

// LoadConfig lê o arquivo de configuração informado em --config-file.
func (uc *DashboardUseCase) LoadConfig(path string) (*types.Config, error) {
	if uc.configRepo == nil {
		return nil, errors.New("no configuration repository available")
	}
	return uc.configRepo.LoadConfigFile(path)
}

func (uc *DashboardUseCase) dataSource(source string) (repository.CostDataRepository, error) {
	switch source {
	case "", types.SourceCSV:
		if uc.csvRepo != nil {
			return uc.csvRepo, nil
		}
	case types.SourceAWS:
		if uc.awsRepo != nil {
			return uc.awsRepo, nil
		}
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownSource, source)
	}
	return nil, fmt.Errorf("data source %s is not configured", source)
}

// checkProfile confirma que o perfil pedido existe na configuração local da AWS.
func (uc *DashboardUseCase) checkProfile(profile string) error {
	available := uc.awsRepo.GetAWSProfiles()
	if len(available) == 0 {
		return types.ErrNoProfilesFound
	}
	if profile == "" {
		return nil
	}
	for _, p := range available {
		if p == profile {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", types.ErrProfileNotFound, profile)
}

func (uc *DashboardUseCase) loadRecords(ctx context.Context, opts ReportOptions) ([]entity.CostRecord, error) {
	repo, err := uc.dataSource(opts.Source)
	if err != nil {
		return nil, err
	}
	if opts.Source == types.SourceAWS {
		if err := uc.checkProfile(opts.Profile); err != nil {
			return nil, err
		}
	}
	records, err := repo.LoadCostRecords(ctx, entity.CostQuery{
		Path:    opts.DataPath,
		Profile: opts.Profile,
		Days:    opts.TimeRange,
	})
	if err != nil {
		return nil, fmt.Errorf("loading cost data: %w", err)
	}
	return records, nil
}

// GenerateReport executa Loader, Forecaster, Analyzer, Advisor, Simulation e a
// checagem de orçamento, nessa ordem. O primeiro erro interrompe a execução.
func (uc *DashboardUseCase) GenerateReport(ctx context.Context, opts ReportOptions) (*entity.CostReport, error) {
	uc.log.Info("starting pipeline", zap.String("source", opts.Source))

	if opts.AWSBudget != "" && (opts.Source != types.SourceAWS || uc.awsRepo == nil) {
		return nil, &types.ConfigError{Field: "aws-budget", Reason: "requires --source aws"}
	}

	records, err := uc.loadRecords(ctx, opts)
	if err != nil {
		return nil, err
	}
	uc.log.Info("data loaded", zap.Int("records", len(records)))

	var forecasterOpts []ForecasterOption
	if !opts.NoPlots && uc.charts != nil {
		forecasterOpts = append(forecasterOpts, WithChartRenderer(uc.charts, opts.PlotDir))
	}
	forecaster := NewForecaster(records, uc.model, opts.Horizon, forecasterOpts...)
	forecasts, err := forecaster.RunForecast(ctx)
	if err != nil {
		return nil, err
	}

	drivers := NewDriverAnalyzer(records, opts.TopN).AnalyzeCostDrivers()
	recommendations := NewOptimizationAdvisor(drivers, opts.AdviceTopN).RecommendSavings()
	savings := NewSimulationEngine(forecasts).SimulateWhatIf(opts.ReductionPercent)

	limit := opts.BudgetLimit
	if opts.AWSBudget != "" {
		budget, err := uc.awsRepo.GetBudget(ctx, opts.Profile, opts.AWSBudget)
		if err != nil {
			return nil, fmt.Errorf("loading budget limit: %w", err)
		}
		limit = budget.Limit
		uc.log.Info("budget limit loaded from AWS Budgets",
			zap.String("budget", budget.Name),
			zap.Float64("limit", budget.Limit))
	}

	total := TotalCost(records)
	status := NewBudgetAlert(limit).CheckBudget(total)

	report := &entity.CostReport{
		RunID:           uuid.NewString(),
		GeneratedAt:     uc.now().UTC(),
		Source:          opts.Source,
		RecordCount:     len(records),
		TotalCost:       round2(total),
		Horizon:         horizonOrDefault(opts.Horizon),
		ReductionPct:    opts.ReductionPercent,
		DriverReport:    drivers,
		Recommendations: recommendations,
		Simulation:      savings,
		Forecasts:       forecasts,
		BudgetStatus:    status,
		PlotPaths:       forecaster.PlotPaths(),
	}

	// o account id só enriquece o cabeçalho; falha não invalida o relatório
	if opts.Source == types.SourceAWS && uc.awsRepo != nil {
		if accountID, err := uc.awsRepo.GetAccountID(ctx, opts.Profile); err != nil {
			uc.log.Warn("could not resolve account id", zap.Error(err))
		} else {
			report.AccountID = accountID
		}
	}

	uc.log.Info("pipeline completed",
		zap.String("run_id", report.RunID),
		zap.Float64("total_cost", report.TotalCost),
		zap.Bool("budget_exceeded", status.Exceeded))
	return report, nil
}

func horizonOrDefault(h int) int {
	if h <= 0 {
		return types.DefaultHorizon
	}
	return h
}

// RunDashboard executa a funcionalidade principal do dashboard.
func (uc *DashboardUseCase) RunDashboard(ctx context.Context, args *types.CLIArgs) error {
	status := uc.console.Status("Running cost pipeline...")
	report, err := uc.GenerateReport(ctx, ReportOptionsFromArgs(args))
	status.Stop()
	if err != nil {
		var notFound *types.DataNotFoundError
		if errors.As(err, &notFound) {
			uc.console.LogError("Error loading data: no cost data found at %s", notFound.Path)
		}
		return err
	}

	uc.displayHeader(report)
	uc.displayDrivers(report.DriverReport)
	uc.displayRecommendations(report.Recommendations)
	uc.displaySavings(report.Simulation, report.ReductionPct)
	uc.displayForecasts(report)
	uc.displayBudget(report.BudgetStatus)

	if args.ReportName != "" && len(args.ReportType) > 0 {
		for _, reportType := range args.ReportType {
			switch reportType {
			case "csv":
				csvPath, err := uc.exportRepo.ExportToCSV(report, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export to CSV: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
				}
			case "json":
				jsonPath, err := uc.exportRepo.ExportToJSON(report, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export to JSON: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
				}
			case "pdf":
				pdfPath, err := uc.exportRepo.ExportToPDF(report, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export to PDF: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
				}
			}
		}
	}

	return nil
}

func (uc *DashboardUseCase) displayHeader(report *entity.CostReport) {
	uc.console.Section("Cloud Cost Report")
	uc.console.Printf("Run ID: %s\n", report.RunID)
	uc.console.Printf("Source: %s", report.Source)
	if report.AccountID != "" {
		uc.console.Printf(" (account %s)", report.AccountID)
	}
	uc.console.Printf("\nRecords: %d  Total cost: $%.2f\n", report.RecordCount, report.TotalCost)
}

func (uc *DashboardUseCase) displayDrivers(drivers *entity.DriverReport) {
	uc.console.Section("Top Cost Drivers")
	if drivers.Len() == 0 {
		uc.console.LogWarning("No cost records to analyze.")
		return
	}

	table := uc.console.CreateTable()
	table.AddColumn("#")
	table.AddColumn("Service")
	table.AddColumn("Region")
	table.AddColumn("Total Cost (USD)")
	for i, d := range drivers.Drivers {
		table.AddRow(fmt.Sprintf("%d", i+1), d.Service, d.Region, fmt.Sprintf("$%.2f", d.TotalCostUSD))
	}
	uc.console.Print(table.Render())
}

func (uc *DashboardUseCase) displayRecommendations(recommendations []string) {
	uc.console.Section("Optimization Recommendations")
	if len(recommendations) == 0 {
		uc.console.LogWarning("No recommendations available.")
		return
	}
	for _, rec := range recommendations {
		uc.console.LogInfo("%s", rec)
	}
}

func (uc *DashboardUseCase) displaySavings(savings entity.SavingsReport, pct float64) {
	uc.console.Section(fmt.Sprintf("What-if Savings (%.0f%% reduction)", pct))
	if len(savings) == 0 {
		uc.console.LogWarning("No forecasts available for simulation.")
		return
	}

	table := uc.console.CreateTable()
	table.AddColumn("Service")
	table.AddColumn("Potential Savings (USD)")

	items := make([]types.BarItem, 0, len(savings))
	for _, service := range savings.Services() {
		table.AddRow(service, fmt.Sprintf("$%.2f", savings[service]))
		items = append(items, types.BarItem{Label: service, Value: savings[service]})
	}
	uc.console.Print(table.Render())
	uc.console.DisplayBars("Potential savings by service", items)
}

func (uc *DashboardUseCase) displayForecasts(report *entity.CostReport) {
	uc.console.Section(fmt.Sprintf("Forecast (next %d days)", report.Horizon))
	if len(report.Forecasts) == 0 {
		uc.console.LogWarning("No forecasts generated.")
		return
	}

	table := uc.console.CreateTable()
	table.AddColumn("Service")
	table.AddColumn("Forecast Total (USD)")
	table.AddColumn("Last Day")
	table.AddColumn("Interval")
	table.AddColumn("Plot")
	for _, service := range report.Forecasts.Services() {
		points := report.Forecasts[service]
		future := points
		if len(points) > report.Horizon {
			future = points[len(points)-report.Horizon:]
		}
		if len(future) == 0 {
			continue
		}
		var sum float64
		for _, p := range future {
			sum += p.Forecast
		}
		last := future[len(future)-1]
		table.AddRow(
			service,
			fmt.Sprintf("$%.2f", sum),
			last.Date.Format("2006-01-02"),
			fmt.Sprintf("$%.2f - $%.2f", last.Lower, last.Upper),
			report.PlotPaths[service],
		)
	}
	uc.console.Print(table.Render())
}

func (uc *DashboardUseCase) displayBudget(status entity.BudgetStatus) {
	uc.console.Section("Budget Status")
	if status.Exceeded {
		uc.console.LogError("%s", status.Message)
	} else {
		uc.console.LogSuccess("%s", status.Message)
	}
}

// RunAccuracy faz o backtest do modelo sobre os dados carregados e exibe as
// métricas por serviço.
func (uc *DashboardUseCase) RunAccuracy(ctx context.Context, args *types.CLIArgs) ([]entity.AccuracyResult, error) {
	opts := ReportOptionsFromArgs(args)

	status := uc.console.Status("Evaluating forecast accuracy...")
	records, err := uc.loadRecords(ctx, opts)
	if err != nil {
		status.Stop()
		var notFound *types.DataNotFoundError
		if errors.As(err, &notFound) {
			uc.console.LogError("Error loading data: no cost data found at %s", notFound.Path)
		}
		return nil, err
	}

	var charts repository.ChartRepository
	if !opts.NoPlots {
		charts = uc.charts
	}
	plotDir := opts.PlotDir
	if plotDir == "" || plotDir == types.DefaultPlotDir {
		plotDir = types.DefaultAccuracyPlotDir
	}
	results, err := NewAccuracyEvaluator(uc.model, charts, plotDir).Evaluate(ctx, records)
	status.Stop()
	if err != nil {
		return nil, err
	}

	uc.console.Section("Forecast Accuracy")
	table := uc.console.CreateTable()
	table.AddColumn("Service")
	table.AddColumn("Train")
	table.AddColumn("Test")
	table.AddColumn("MAE")
	table.AddColumn("RMSE")
	table.AddColumn("MAPE (%)")
	table.AddColumn("Plot")
	for _, r := range results {
		if r.Skipped {
			table.AddRow(r.Service, fmt.Sprintf("%d", r.TrainSize), fmt.Sprintf("%d", r.TestSize), "-", "-", "-", r.Reason)
			continue
		}
		table.AddRow(
			r.Service,
			fmt.Sprintf("%d", r.TrainSize),
			fmt.Sprintf("%d", r.TestSize),
			fmt.Sprintf("%.2f", r.MAE),
			fmt.Sprintf("%.2f", r.RMSE),
			fmt.Sprintf("%.2f", r.MAPE),
			r.PlotPath,
		)
	}
	uc.console.Print(table.Render())

	if args.ReportName != "" {
		for _, reportType := range args.ReportType {
			switch reportType {
			case "csv":
				path, err := uc.exportRepo.ExportAccuracyToCSV(results, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export accuracy report to CSV: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported accuracy report to CSV: %s", path)
				}
			case "json":
				path, err := uc.exportRepo.ExportAccuracyToJSON(results, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export accuracy report to JSON: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported accuracy report to JSON: %s", path)
				}
			default:
				uc.console.LogWarning("Accuracy report does not support %s export", reportType)
			}
		}
	}

	return results, nil
}
