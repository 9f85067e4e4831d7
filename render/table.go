package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/spektr-org/launchdash/engine"
)

// WriteTable prints data as a box-drawn terminal table, or as a Markdown
// table when markdown is set.
func WriteTable(w io.Writer, data *engine.TableData, markdown bool) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	if data.Title != "" {
		t.SetTitle(data.Title)
	}

	header := make(table.Row, len(data.Columns))
	configs := make([]table.ColumnConfig, len(data.Columns))
	for i, c := range data.Columns {
		header[i] = c.Label
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align(c.Align)}
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for _, r := range data.Rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = v
		}
		t.AppendRow(row)
	}
	if footer := summaryRow(data); footer != nil {
		t.AppendFooter(footer)
	}

	out := t.Render()
	if markdown {
		out = t.RenderMarkdown()
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

// summaryRow lays the summary out under the matching columns. The label
// takes the first column unless that column carries a value.
func summaryRow(data *engine.TableData) table.Row {
	if data.Summary == nil {
		return nil
	}
	if len(data.Columns) == 0 {
		row := table.Row{data.Summary.Label}
		for _, v := range data.Summary.Values {
			row = append(row, v)
		}
		return row
	}
	row := make(table.Row, len(data.Columns))
	row[0] = data.Summary.Label
	for i, c := range data.Columns {
		if v, ok := data.Summary.Values[c.Key]; ok {
			if i == 0 {
				row[0] = fmt.Sprintf("%s: %s", data.Summary.Label, v)
				continue
			}
			row[i] = v
		}
	}
	return row
}

func align(a string) text.Align {
	switch a {
	case "left":
		return text.AlignLeft
	case "center":
		return text.AlignCenter
	case "right":
		return text.AlignRight
	}
	return text.AlignDefault
}

// WriteCSV writes data's column keys as the header followed by its rows.
// The summary is not written.
func WriteCSV(w io.Writer, data *engine.TableData) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(data.Columns))
	for i, c := range data.Columns {
		header[i] = c.Key
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(data.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteSiteSummaries prints one row per site plus an overall total.
func WriteSiteSummaries(w io.Writer, title string, rows []engine.SiteSummary, total *engine.TextData) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Site", "Launches", "Successes", "Success %", "Mean payload (kg)", "Min (kg)", "Max (kg)"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	for _, r := range rows {
		t.AppendRow(summaryCells(r.Site, r.Data))
	}
	if total != nil {
		t.AppendFooter(summaryCells("Total", total))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func summaryCells(label string, d *engine.TextData) table.Row {
	if d.Launches == 0 {
		return table.Row{label, "0", "0", "-", "-", "-", "-"}
	}
	return table.Row{
		label,
		engine.FormatInt(d.Launches),
		engine.FormatInt(d.Successes),
		fmt.Sprintf("%.1f", d.SuccessRate),
		engine.FormatNumber(d.MeanPayload),
		engine.FormatNumber(d.Payload.Min),
		engine.FormatNumber(d.Payload.Max),
	}
}
