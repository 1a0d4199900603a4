package main

import (
	"fmt"
	"os"

	"github.com/diillson/cloud-cost-ai-go/internal/adapter/driven/aws"
	"github.com/diillson/cloud-cost-ai-go/internal/adapter/driven/chart"
	"github.com/diillson/cloud-cost-ai-go/internal/adapter/driven/config"
	"github.com/diillson/cloud-cost-ai-go/internal/adapter/driven/csvdata"
	"github.com/diillson/cloud-cost-ai-go/internal/adapter/driven/export"
	"github.com/diillson/cloud-cost-ai-go/internal/adapter/driven/forecast"
	"github.com/diillson/cloud-cost-ai-go/internal/adapter/driving/cli"
	"github.com/diillson/cloud-cost-ai-go/internal/application/usecase"
	"github.com/diillson/cloud-cost-ai-go/internal/shared/types"
	"github.com/diillson/cloud-cost-ai-go/pkg/console"
	"github.com/diillson/cloud-cost-ai-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	csvRepo := csvdata.NewCSVRepository(types.DefaultDataPath)
	awsRepo := aws.NewAWSRepository()
	model := forecast.NewLinearTrendModel()
	chartRepo := chart.NewChartRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	dashboardUseCase := usecase.NewDashboardUseCase(
		csvRepo,
		awsRepo,
		model,
		chartRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetDashboardUseCase(dashboardUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
