package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/render"
)

var describeFlags struct {
	format string
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Summarize the dataset per site",
	Args:  cobra.NoArgs,
	RunE:  runDescribe,
}

func init() {
	describeCmd.Flags().StringVarP(&describeFlags.format, "format", "f", "table", "Output format: table, json")
}

type describeOutput struct {
	Name  string               `json:"name"`
	Path  string               `json:"path"`
	Total *engine.TextData     `json:"total"`
	Sites []engine.SiteSummary `json:"sites"`
}

func runDescribe(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	view := s.data.View()
	out := describeOutput{
		Name:  s.cfg.Schema.Name,
		Path:  s.cfg.Dataset,
		Total: engine.BuildSummary(view),
		Sites: engine.BuildSiteSummaries(view, s.sites),
	}

	w := cmd.OutOrStdout()
	switch describeFlags.format {
	case "json":
		return writeJSON(w, out)
	case "table":
		title := fmt.Sprintf("%s (%s)", out.Name, out.Path)
		return render.WriteSiteSummaries(w, title, out.Sites, out.Total)
	}
	return fmt.Errorf("unknown format %q", describeFlags.format)
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
