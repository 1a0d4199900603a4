package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/diillson/cloud-cost-ai-go/internal/domain/repository"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Cores predefinidas para uso consistente entre os gráficos
var (
	forecastColor  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	intervalColor  = color.RGBA{R: 31, G: 119, B: 180, A: 77}
	actualColor    = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	predictedColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// ChartRepositoryImpl implementa o ChartRepository gerando PNGs com gonum/plot.
type ChartRepositoryImpl struct {
	width  vg.Length
	height vg.Length
}

// NewChartRepository cria um renderizador com figuras de 10x5 polegadas.
func NewChartRepository() repository.ChartRepository {
	return &ChartRepositoryImpl{
		width:  10 * vg.Inch,
		height: 5 * vg.Inch,
	}
}

// RenderForecast desenha a linha de previsão e a faixa de confiança em
// {dir}/{service}_forecast.png.
func (r *ChartRepositoryImpl) RenderForecast(dir, service string, points []entity.ForecastPoint) (string, error) {
	if len(points) == 0 {
		return "", errors.New("no forecast points to plot")
	}

	p := newTimePlot(fmt.Sprintf("%s Cost Forecast", service))

	line := make(plotter.XYs, len(points))
	band := make(plotter.XYs, 0, 2*len(points))
	for i, pt := range points {
		x := unix(pt.Date)
		line[i] = plotter.XY{X: x, Y: pt.Forecast}
		band = append(band, plotter.XY{X: x, Y: pt.Upper})
	}
	for i := len(points) - 1; i >= 0; i-- {
		band = append(band, plotter.XY{X: unix(points[i].Date), Y: points[i].Lower})
	}

	interval, err := plotter.NewPolygon(band)
	if err != nil {
		return "", fmt.Errorf("error building confidence band: %w", err)
	}
	interval.Color = intervalColor
	interval.LineStyle.Width = 0

	forecastLine, err := plotter.NewLine(line)
	if err != nil {
		return "", fmt.Errorf("error building forecast line: %w", err)
	}
	forecastLine.Color = forecastColor
	forecastLine.Width = vg.Points(1.5)

	p.Add(interval, forecastLine)
	p.Legend.Add("Forecast", forecastLine)
	p.Legend.Add("Confidence interval", interval)

	return r.save(p, dir, ForecastFilename(service))
}

// RenderAccuracy compara valores reais e previstos no período de teste.
func (r *ChartRepositoryImpl) RenderAccuracy(dir, service string, dates []time.Time, actual, predicted []float64) (string, error) {
	if len(dates) == 0 || len(dates) != len(actual) || len(dates) != len(predicted) {
		return "", fmt.Errorf("mismatched accuracy series: %d dates, %d actual, %d predicted",
			len(dates), len(actual), len(predicted))
	}

	p := newTimePlot(fmt.Sprintf("Actual vs Predicted Cost - %s", service))

	actualXYs := make(plotter.XYs, len(dates))
	predictedXYs := make(plotter.XYs, len(dates))
	for i, d := range dates {
		actualXYs[i] = plotter.XY{X: unix(d), Y: actual[i]}
		predictedXYs[i] = plotter.XY{X: unix(d), Y: predicted[i]}
	}

	actualLine, actualPoints, err := plotter.NewLinePoints(actualXYs)
	if err != nil {
		return "", fmt.Errorf("error building actual series: %w", err)
	}
	actualLine.Color = actualColor
	actualPoints.GlyphStyle.Color = actualColor

	predictedLine, err := plotter.NewLine(predictedXYs)
	if err != nil {
		return "", fmt.Errorf("error building predicted series: %w", err)
	}
	predictedLine.Color = predictedColor
	predictedLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(actualLine, actualPoints, predictedLine)
	p.Legend.Add("Actual Cost", actualLine, actualPoints)
	p.Legend.Add("Predicted Cost", predictedLine)

	return r.save(p, dir, fmt.Sprintf("%s_actual_vs_predicted.png", sanitize(service)))
}

// ForecastFilename returns the file name used for a service's forecast chart.
func ForecastFilename(service string) string {
	return fmt.Sprintf("%s_forecast.png", sanitize(service))
}

func newTimePlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Cost (USD)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

func (r *ChartRepositoryImpl) save(p *plot.Plot, dir, filename string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating plot directory '%s': %w", dir, err)
	}
	path := filepath.Join(dir, filename)
	if err := p.Save(r.width, r.height, path); err != nil {
		return "", fmt.Errorf("error saving plot %s: %w", path, err)
	}
	return path, nil
}

func unix(t time.Time) float64 {
	return float64(t.Unix())
}

// sanitize evita que nomes de serviço com barras escapem do diretório.
func sanitize(service string) string {
	return strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(service)
}
