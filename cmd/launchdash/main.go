// launchdash serves an interactive launch-records dashboard and prints its
// charts from the command line.
//
// Usage:
//
//	launchdash serve --dataset spacex_launch_dash.csv [--addr :8090]
//	launchdash chart --kind proportion --site "KSC LC-39A" --format table
//	launchdash chart --kind scatter --min 2000 --max 8000 --format svg --out scatter.svg
//	launchdash describe [--format json]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/launchdash/config"
	"github.com/spektr-org/launchdash/dataset"
	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	config    string
	dataset   string
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "launchdash",
	Short: "Launch records dashboard: success by site, payload against outcome",
	Long: `launchdash loads a launch-records CSV and draws two charts from it:
the share of successful launches by site (or success against failure for one
site), and payload mass against outcome coloured by booster category.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.config, "config", "", "Path to a YAML or JSON config file")
	pf.StringVar(&rootFlags.dataset, "dataset", "", "Path to the launch CSV (overrides config)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "", "Log format: text, json")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// session is what every command needs: settings, the loaded dataset and the
// known-site set.
type session struct {
	cfg   *config.Config
	data  *dataset.Dataset
	sites engine.SiteSet
}

// loadConfig reads --config (or the defaults) and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if rootFlags.config != "" {
		loaded, err := config.LoadFromPath(rootFlags.config)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	if rootFlags.dataset != "" {
		cfg.Dataset = rootFlags.dataset
	}
	if rootFlags.logLevel != "" {
		cfg.Log.Level = rootFlags.logLevel
	}
	if rootFlags.logFormat != "" {
		cfg.Log.Format = rootFlags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// openSession configures logging and loads the dataset. A load failure ends
// the command.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	level, _ := logging.ParseLevel(cfg.Log.Level)
	logging.Init(level, cfg.Log.Format, cmd.ErrOrStderr())

	data, err := dataset.Load(cfg.Dataset, cfg.Schema)
	if err != nil {
		return nil, err
	}
	sites := dataset.KnownSites(cfg.Schema)
	warnUnknownSites(data, sites)
	return &session{cfg: cfg, data: data, sites: sites}, nil
}

// warnUnknownSites logs sites present in the data but absent from the
// configured set. They count towards the all-sites chart but cannot be selected.
func warnUnknownSites(data *dataset.Dataset, sites engine.SiteSet) {
	logger := logging.New("dataset")
	for _, site := range data.Sites() {
		if !sites.Contains(site) {
			logger.Warn("site is not in the configured site list", "site", site)
		}
	}
}
