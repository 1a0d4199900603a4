package types

import "fmt"

// Fontes de dados suportadas.
const (
	SourceCSV = "csv"
	SourceAWS = "aws"
)

// Valores padrão usados pela CLI e pelo pipeline.
const (
	DefaultDataPath         = "data/simulated_realtime_cloud_cost.csv"
	DefaultPlotDir          = "outputs/plots"
	DefaultAccuracyPlotDir  = "outputs/accuracy_plots"
	DefaultBudgetLimit      = 5000.0
	DefaultHorizon          = 30
	DefaultDriverTopN       = 10
	DefaultAdviceTopN       = 3
	DefaultReductionPercent = 20.0
	DefaultTimeRange        = 90
)

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile       string
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
	ReportName       string
	ReportType       []string
	Dir              string
	LogLevel         string
	LogFormat        string
}

// Validate checks the option ranges before the pipeline runs.
func (a *CLIArgs) Validate() error {
	switch a.Source {
	case SourceCSV, SourceAWS:
	default:
		return &ConfigError{Field: "source", Reason: fmt.Sprintf("%q is not one of csv, aws", a.Source)}
	}
	if a.ReductionPercent < 0 || a.ReductionPercent > 100 {
		return &ConfigError{Field: "reduction", Reason: fmt.Sprintf("%.2f is outside [0, 100]", a.ReductionPercent)}
	}
	if a.Horizon <= 0 {
		return &ConfigError{Field: "horizon", Reason: "must be greater than zero"}
	}
	if a.BudgetLimit < 0 {
		return &ConfigError{Field: "budget-limit", Reason: "must not be negative"}
	}
	if a.TopN <= 0 || a.AdviceTopN <= 0 {
		return &ConfigError{Field: "top-n", Reason: "must be greater than zero"}
	}
	if a.AWSBudget != "" && a.Source != SourceAWS {
		return &ConfigError{Field: "aws-budget", Reason: "requires --source aws"}
	}
	for _, t := range a.ReportType {
		switch t {
		case "csv", "json", "pdf":
		default:
			return &ConfigError{Field: "report-type", Reason: fmt.Sprintf("unsupported type %q", t)}
		}
	}
	return nil
}
