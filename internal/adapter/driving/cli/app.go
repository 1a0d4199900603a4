package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/cloud-cost-ai-go/internal/application/usecase"
	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/diillson/cloud-cost-ai-go/internal/shared/types"
	"github.com/diillson/cloud-cost-ai-go/pkg/logging"
	"github.com/diillson/cloud-cost-ai-go/pkg/version"
	"github.com/spf13/cobra"
)

// dashboardRunner é o subconjunto do DashboardUseCase usado pela CLI.
type dashboardRunner interface {
	RunDashboard(ctx context.Context, args *types.CLIArgs) error
	RunAccuracy(ctx context.Context, args *types.CLIArgs) ([]entity.AccuracyResult, error)
	LoadConfig(path string) (*types.Config, error)
}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd *cobra.Command
	runner  dashboardRunner
	version string
	banner  bool
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
		banner:  true,
	}

	rootCmd := &cobra.Command{
		Use:           "cloudcost",
		Short:         "Cloud cost forecasting, driver analysis and budget alerts",
		Version:       version.FormatVersion(),
		RunE:          app.runCommand,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetVersionTemplate(`{{printf "cloudcost version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("data", "f", types.DefaultDataPath, "Path to the cost CSV (date, service, region, cost_usd)")
	flags.String("source", types.SourceCSV, "Cost data source: csv or aws (Cost Explorer)")
	flags.StringP("profile", "p", "", "AWS profile used with --source aws")
	flags.IntP("time-range", "t", types.DefaultTimeRange, "Days of Cost Explorer history to load with --source aws")
	flags.Float64P("budget-limit", "b", types.DefaultBudgetLimit, "Budget limit in USD")
	flags.String("aws-budget", "", "Read the budget limit from this AWS Budgets budget (requires --source aws)")
	flags.Int("horizon", types.DefaultHorizon, "Forecast horizon in days")
	flags.Int("top-n", types.DefaultDriverTopN, "Number of cost drivers to report")
	flags.Int("advice-top-n", types.DefaultAdviceTopN, "Number of top services that receive recommendations")
	flags.Float64("reduction", types.DefaultReductionPercent, "Cost reduction percentage for the what-if simulation")
	flags.String("plot-dir", types.DefaultPlotDir, "Directory for forecast charts")
	flags.Bool("no-plots", false, "Skip chart rendering")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-format", "console", "Log format: console or json")

	accuracyCmd := &cobra.Command{
		Use:   "accuracy",
		Short: "Backtest the forecast model on the loaded data (80/20 chronological split)",
		RunE:  app.runAccuracy,
	}
	rootCmd.AddCommand(accuracyCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.ExecuteContext(context.Background())
}

// parseArgs lê as flags do comando e aplica o arquivo de configuração, quando
// informado, às flags que o usuário não definiu explicitamente.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	f := cmd.Flags()
	configFile, _ := f.GetString("config-file")
	dataPath, _ := f.GetString("data")
	source, _ := f.GetString("source")
	profile, _ := f.GetString("profile")
	timeRange, _ := f.GetInt("time-range")
	budgetLimit, _ := f.GetFloat64("budget-limit")
	awsBudget, _ := f.GetString("aws-budget")
	horizon, _ := f.GetInt("horizon")
	topN, _ := f.GetInt("top-n")
	adviceTopN, _ := f.GetInt("advice-top-n")
	reduction, _ := f.GetFloat64("reduction")
	plotDir, _ := f.GetString("plot-dir")
	noPlots, _ := f.GetBool("no-plots")
	reportName, _ := f.GetString("report-name")
	reportType, _ := f.GetStringSlice("report-type")
	dir, _ := f.GetString("dir")
	logLevel, _ := f.GetString("log-level")
	logFormat, _ := f.GetString("log-format")

	args := &types.CLIArgs{
		ConfigFile:       configFile,
		Source:           source,
		DataPath:         dataPath,
		Profile:          profile,
		TimeRange:        timeRange,
		BudgetLimit:      budgetLimit,
		AWSBudget:        awsBudget,
		Horizon:          horizon,
		TopN:             topN,
		AdviceTopN:       adviceTopN,
		ReductionPercent: reduction,
		PlotDir:          plotDir,
		NoPlots:          noPlots,
		ReportName:       reportName,
		ReportType:       reportType,
		Dir:              dir,
		LogLevel:         logLevel,
		LogFormat:        logFormat,
	}

	if args.ConfigFile != "" {
		cfg, err := app.runner.LoadConfig(args.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
		mergeConfig(args, cfg, f.Changed)
	}

	// Set default directory to current working directory if not specified
	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	if err := args.Validate(); err != nil {
		return nil, err
	}
	return args, nil
}

// mergeConfig copia os valores presentes no arquivo para as flags não alteradas.
func mergeConfig(args *types.CLIArgs, cfg *types.Config, changed func(string) bool) {
	if cfg == nil {
		return
	}
	setString := func(flag string, dst *string, v string) {
		if !changed(flag) && v != "" {
			*dst = v
		}
	}
	setInt := func(flag string, dst *int, v *int) {
		if !changed(flag) && v != nil {
			*dst = *v
		}
	}
	setFloat := func(flag string, dst *float64, v *float64) {
		if !changed(flag) && v != nil {
			*dst = *v
		}
	}

	setString("source", &args.Source, cfg.Source)
	setString("data", &args.DataPath, cfg.DataPath)
	setString("profile", &args.Profile, cfg.Profile)
	setInt("time-range", &args.TimeRange, cfg.TimeRange)
	setFloat("budget-limit", &args.BudgetLimit, cfg.BudgetLimit)
	setString("aws-budget", &args.AWSBudget, cfg.AWSBudget)
	setInt("horizon", &args.Horizon, cfg.Horizon)
	setInt("top-n", &args.TopN, cfg.TopN)
	setInt("advice-top-n", &args.AdviceTopN, cfg.AdviceTopN)
	setFloat("reduction", &args.ReductionPercent, cfg.ReductionPercent)
	setString("plot-dir", &args.PlotDir, cfg.PlotDir)
	setString("report-name", &args.ReportName, cfg.ReportName)
	setString("dir", &args.Dir, cfg.Dir)
	setString("log-level", &args.LogLevel, cfg.LogLevel)
	setString("log-format", &args.LogFormat, cfg.LogFormat)

	if !changed("no-plots") && cfg.NoPlots {
		args.NoPlots = true
	}
	if !changed("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
}

// prepare lê os argumentos e inicializa o logger estruturado.
func (app *CLIApp) prepare(cmd *cobra.Command) (*types.CLIArgs, error) {
	if app.runner == nil {
		return nil, fmt.Errorf("dashboard use case not configured")
	}

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return nil, err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cliArgs.LogLevel
	logCfg.Format = cliArgs.LogFormat
	if err := logging.Initialize(logCfg); err != nil {
		return nil, fmt.Errorf("error initializing logger: %w", err)
	}
	return cliArgs, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	if app.banner {
		displayWelcomeBanner(app.version)
		go checkLatestVersion(app.version)
	}

	cliArgs, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	defer logging.Sync()

	return app.runner.RunDashboard(cmd.Context(), cliArgs)
}

func (app *CLIApp) runAccuracy(cmd *cobra.Command, args []string) error {
	cliArgs, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	defer logging.Sync()

	// o diretório padrão de gráficos da previsão não serve para o backtest
	if !cmd.Flags().Changed("plot-dir") && cliArgs.PlotDir == types.DefaultPlotDir {
		cliArgs.PlotDir = types.DefaultAccuracyPlotDir
	}

	_, err = app.runner.RunAccuracy(cmd.Context(), cliArgs)
	return err
}

// SetDashboardUseCase sets the dashboard use case for the CLI app.
func (app *CLIApp) SetDashboardUseCase(useCase *usecase.DashboardUseCase) {
	app.runner = useCase
}
