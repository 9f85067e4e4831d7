package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/internal/logging"
	"github.com/spektr-org/launchdash/render"
)

var chartFlags struct {
	kind   string
	site   string
	min    float64
	max    float64
	format string
	out    string
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Compute one chart for a site and payload range",
	Long: `Runs one selection through the same controller the dashboard uses and
prints the resulting chart.

Formats:
  table     Terminal table (default)
  markdown  Markdown table
  json      Spec, chart config and table as JSON
  csv       Table rows as CSV
  svg, png  Chart image (use --out for png)`,
	Example: `  launchdash chart --kind proportion --site "KSC LC-39A"
  launchdash chart --kind scatter --min 2000 --max 8000 --format csv --out scatter.csv`,
	Args: cobra.NoArgs,
	RunE: runChart,
}

func init() {
	f := chartCmd.Flags()
	f.StringVar(&chartFlags.kind, "kind", string(engine.KindProportion), "Chart: proportion or scatter")
	f.StringVar(&chartFlags.site, "site", engine.AllSites, "Site, or ALL")
	f.Float64Var(&chartFlags.min, "min", 0, "Lowest payload mass (default: dataset minimum)")
	f.Float64Var(&chartFlags.max, "max", 0, "Highest payload mass (default: dataset maximum)")
	f.StringVarP(&chartFlags.format, "format", "f", "table", "Output format: table, markdown, json, csv, svg, png")
	f.StringVarP(&chartFlags.out, "out", "o", "", "Write output to file instead of stdout")
}

func runChart(cmd *cobra.Command, _ []string) error {
	kind, ok := engine.ParseKind(chartFlags.kind)
	if !ok {
		return fmt.Errorf("unknown chart kind %q (want %s)", chartFlags.kind, kindNames())
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	opts := []engine.Option{
		engine.WithSites(s.sites),
		engine.WithLogger(logging.New("controller")),
	}
	if f := cmd.Flags(); f.Changed("min") || f.Changed("max") {
		r := s.data.PayloadBounds()
		if f.Changed("min") {
			r.Min = chartFlags.min
		}
		if f.Changed("max") {
			r.Max = chartFlags.max
		}
		opts = append(opts, engine.WithInitialRange(r))
	}

	charts := render.NewLatest()
	ctrl, err := engine.NewController(s.data.View(), charts, opts...)
	if err != nil {
		return err
	}

	// An invalid site still yields a chart in its error state; the error is
	// reported after the chart is written.
	siteErr := ctrl.OnSiteChanged(chartFlags.site)

	spec, _ := charts.Get(kind)
	err = withOutput(chartFlags.out, cmd.OutOrStdout(), func(w io.Writer) error {
		return writeChart(w, spec, chartFlags.format)
	})
	if err != nil {
		return err
	}
	return siteErr
}

func writeChart(w io.Writer, spec engine.ChartSpec, format string) error {
	switch strings.ToLower(format) {
	case "table":
		return render.WriteTable(w, engine.BuildTable(spec), false)
	case "markdown", "md":
		return render.WriteTable(w, engine.BuildTable(spec), true)
	case "csv":
		return render.WriteCSV(w, engine.BuildTable(spec))
	case "json":
		return writeJSON(w, chartOutput{
			Spec:  spec,
			Chart: engine.BuildChart(spec),
			Table: engine.BuildTable(spec),
		})
	case "svg":
		return render.Draw(w, spec, render.SVG)
	case "png":
		return render.Draw(w, spec, render.PNG)
	}
	return fmt.Errorf("unknown format %q", format)
}

type chartOutput struct {
	Spec  engine.ChartSpec    `json:"spec"`
	Chart *engine.ChartConfig `json:"chart"`
	Table *engine.TableData   `json:"table"`
}

func kindNames() string {
	names := make([]string, len(engine.Kinds))
	for i, k := range engine.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, " or ")
}

// withOutput runs write against path, or against stdout when path is empty.
func withOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logging.New("cli").Info("output written", "path", path)
	return nil
}
