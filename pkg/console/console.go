package console

import (
	"fmt"
	"strings"

	"github.com/diillson/cloud-cost-ai-go/internal/shared/types"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// barWidth é o comprimento da maior barra em DisplayBars.
const barWidth = 40

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// Section imprime um título de seção.
func (c *Console) Section(title string) {
	pterm.DefaultSection.Println(title)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(message)
	return &statusHandle{spinner: spinner}
}

// Cores predefinidas para uso consistente
var (
	BrightGreen = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightCyan  = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// DisplayBars exibe os valores como barras horizontais proporcionais ao maior.
func (c *Console) DisplayBars(title string, items []types.BarItem) {
	if len(items) == 0 {
		return
	}
	rendered, ok := renderBars(items)
	if !ok {
		pterm.Warning.Println("All values are $0.00")
		return
	}

	panel := pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(rendered)
	fmt.Println("\n" + panel)
}

// renderBars monta a tabela de barras; ok é falso quando não há valor positivo.
func renderBars(items []types.BarItem) (string, bool) {
	maxValue, total := 0.0, 0.0
	for _, item := range items {
		if item.Value > maxValue {
			maxValue = item.Value
		}
		if item.Value > 0 {
			total += item.Value
		}
	}
	if maxValue <= 0 {
		return "", false
	}

	tableData := pterm.TableData{{"Service", "Value", "", "Share"}}
	for i, item := range items {
		length := 0
		if item.Value > 0 {
			length = int(item.Value / maxValue * barWidth)
		}
		bar := strings.Repeat("█", length)

		// a maior barra em verde, as demais em azul
		barColor := pterm.FgBlue.Sprint(bar)
		if i == 0 || item.Value == maxValue {
			barColor = pterm.FgGreen.Sprint(bar)
		}

		share := 0.0
		if item.Value > 0 {
			share = item.Value / total * 100
		}
		tableData = append(tableData, []string{
			item.Label,
			fmt.Sprintf("$%.2f", item.Value),
			barColor,
			fmt.Sprintf("%.1f%%", share),
		})
	}

	rendered, _ := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
	return rendered, true
}
