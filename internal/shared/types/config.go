package types

// Config represents the application configuration that can be loaded from a file.
// Campos numéricos são ponteiros: nil significa ausente no arquivo, e zero é um valor válido.
type Config struct {
	Source           string   `json:"source" yaml:"source" toml:"source"`
	DataPath         string   `json:"data_path" yaml:"data_path" toml:"data_path"`
	Profile          string   `json:"profile" yaml:"profile" toml:"profile"`
	TimeRange        *int     `json:"time_range" yaml:"time_range" toml:"time_range"`
	BudgetLimit      *float64 `json:"budget_limit" yaml:"budget_limit" toml:"budget_limit"`
	AWSBudget        string   `json:"aws_budget" yaml:"aws_budget" toml:"aws_budget"`
	Horizon          *int     `json:"horizon" yaml:"horizon" toml:"horizon"`
	TopN             *int     `json:"top_n" yaml:"top_n" toml:"top_n"`
	AdviceTopN       *int     `json:"advice_top_n" yaml:"advice_top_n" toml:"advice_top_n"`
	ReductionPercent *float64 `json:"reduction_percent" yaml:"reduction_percent" toml:"reduction_percent"`
	PlotDir          string   `json:"plot_dir" yaml:"plot_dir" toml:"plot_dir"`
	NoPlots          bool     `json:"no_plots" yaml:"no_plots" toml:"no_plots"`
	ReportName       string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType       []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir              string   `json:"dir" yaml:"dir" toml:"dir"`
	LogLevel         string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat        string   `json:"log_format" yaml:"log_format" toml:"log_format"`
}
