package console

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/alexlux58/AWS-ALERTING/internal/shared/types"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// Console é uma implementação do ConsoleInterface.
// In structured mode every log line is a JSON object, which is what CloudWatch Logs expects from a Lambda.
type Console struct {
	structured bool
	logger     *pterm.Logger
	fields     []interface{}
	out        io.Writer
}

// NewConsole cria um novo Console interativo para a CLI.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewStructuredConsole creates a console that writes JSON log lines to w.
func NewStructuredConsole(w io.Writer) *Console {
	logger := pterm.DefaultLogger.
		WithFormatter(pterm.LogFormatterJSON).
		WithLevel(pterm.LogLevelInfo).
		WithWriter(w)
	return &Console{structured: true, logger: logger, out: w}
}

// WithFields returns a console that adds key/value pairs to every structured log line.
func (c *Console) WithFields(keyvals ...interface{}) *Console {
	clone := *c
	clone.fields = append(append([]interface{}{}, c.fields...), keyvals...)
	return &clone
}

func (c *Console) args() []pterm.LoggerArgument {
	if len(c.fields) == 0 {
		return nil
	}
	return c.logger.Args(c.fields...)
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Fprint(c.out, a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	if c.structured {
		c.logger.Info(fmt.Sprintf(format, a...), c.args())
		return
	}
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	if c.structured {
		c.logger.Warn(fmt.Sprintf(format, a...), c.args())
		return
	}
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	if c.structured {
		c.logger.Error(fmt.Sprintf(format, a...), c.args())
		return
	}
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	if c.structured {
		c.logger.Info(fmt.Sprintf(format, a...), c.args())
		return
	}
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
// Structured consoles have no terminal, so the handle does nothing.
func (c *Console) Status(message string) types.StatusHandle {
	if c.structured {
		return &statusHandle{}
	}
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Cores predefinidas para uso consistente
var (
	BrightGreen  = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightRed    = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightCyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
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

// DisplayTrendBars exibe gráficos de barras para a tendência diária.
// Changes inside ±5% are shown in yellow, increases in red and decreases in green.
func (c *Console) DisplayTrendBars(dailyCosts []types.DailyCost) {
	if c.structured {
		for _, dc := range dailyCosts {
			c.LogInfo("trend %s $%.2f", dc.Day, dc.Cost)
		}
		return
	}

	maxCost := 0.0
	for _, cost := range dailyCosts {
		maxCost = math.Max(maxCost, cost.Cost)
	}

	if maxCost == 0 {
		pterm.Warning.Println("All costs are $0.00 for this period")
		return
	}

	tableData := pterm.TableData{
		{"Day", "Cost", "", "DoD Change"},
	}

	var prevCost *float64
	for _, dc := range dailyCosts {
		bar := strings.Repeat("█", int((dc.Cost/maxCost)*40))
		barColor := pterm.FgBlue.Sprint(bar)
		change := ""

		if prevCost != nil {
			switch {
			case *prevCost < 0.01 && dc.Cost < 0.01:
				change = pterm.FgYellow.Sprint("0%")
				barColor = pterm.FgYellow.Sprint(bar)
			case *prevCost < 0.01:
				change = pterm.FgRed.Sprint("N/A")
				barColor = pterm.FgRed.Sprint(bar)
			default:
				changePercent := ((dc.Cost - *prevCost) / *prevCost) * 100.0
				switch {
				case changePercent > 5:
					change = pterm.FgRed.Sprintf("+%.2f%%", changePercent)
					barColor = pterm.FgRed.Sprint(bar)
				case changePercent < -5:
					change = pterm.FgGreen.Sprintf("%.2f%%", changePercent)
					barColor = pterm.FgGreen.Sprint(bar)
				default:
					change = pterm.FgYellow.Sprintf("%+.2f%%", changePercent)
					barColor = pterm.FgYellow.Sprint(bar)
				}
			}
		}

		tableData = append(tableData, []string{
			dc.Day,
			fmt.Sprintf("$%.2f", dc.Cost),
			barColor,
			change,
		})

		currentCost := dc.Cost
		prevCost = &currentCost
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle("AWS Daily Cost Trend").WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)

	fmt.Fprintln(c.out, "\n"+panel)
}
