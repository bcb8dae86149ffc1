package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	gojson "github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
)

func printError(w io.Writer, err error) {
	_, _ = errColor.Fprintf(w, "%s error: %v\n", cliName, err)
}

// renderTable writes rows under header. Numeric columns are right aligned
// by passing their one-based numbers in numeric.
func renderTable(w io.Writer, header table.Row, rows []table.Row, numeric ...int) {
	t := table.NewWriter()
	t.AppendHeader(header)
	t.AppendRows(rows)

	cfgs := make([]table.ColumnConfig, 0, len(numeric))
	for _, n := range numeric {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignHeader: text.AlignCenter})
	}
	t.SetColumnConfigs(cfgs)
	t.SetOutputMirror(w)
	t.Render()
}

func writeJSON(w io.Writer, v any) error {
	data, err := gojson.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
