package types

// ConsoleInterface define a interface para saída no console.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Section(title string)
	Status(message string) StatusHandle

	CreateTable() TableInterface
	DisplayBars(title string, items []BarItem)
}

// StatusHandle é uma interface para atualizar uma mensagem de status.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// BarItem é um valor rotulado exibido como barra horizontal.
type BarItem struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
