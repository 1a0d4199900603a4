package entity

// AccuracyResult holds the backtest metrics for one service.
type AccuracyResult struct {
	Service   string  `json:"service"`
	TrainSize int     `json:"train_size"`
	TestSize  int     `json:"test_size"`
	MAE       float64 `json:"mae"`
	RMSE      float64 `json:"rmse"`
	MAPE      float64 `json:"mape_percent"`
	Skipped   bool    `json:"skipped,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	PlotPath  string  `json:"plot_path,omitempty"`
}
