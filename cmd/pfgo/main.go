package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/rgehrsitz/pfgo/internal/config"
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/rgehrsitz/pfgo/internal/output"
	"github.com/rgehrsitz/pfgo/internal/profile"
	"github.com/rgehrsitz/pfgo/internal/store"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	debug      bool
	noHistory  bool
	format     string
	configPath string
	rulesPath  string
}

// app is the per-invocation state built from flags and settings
type app struct {
	settings  config.Settings
	engine    *calculation.CalculationEngine
	logger    zerologLogger
	format    string
	noHistory bool
	out       io.Writer
}

func (o *rootOptions) settingsPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.SettingsPath()
}

// setup loads settings and tax rules and wires the engine logger
func (o *rootOptions) setup(cmd *cobra.Command) (*app, error) {
	path := o.settingsPath()
	settings, err := config.LoadSettingsFrom(path)
	if err != nil {
		return nil, err
	}

	rules := o.rulesPath
	if rules == "" {
		rules = settings.RulesPath()
	}
	cfg, err := config.LoadTaxConfig(rules)
	if err != nil {
		return nil, fmt.Errorf("loading tax rules: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), o.debug)
	engine := calculation.NewCalculationEngineWithConfig(cfg)
	engine.SetLogger(logger)
	logger.Debugf("settings=%s rules=%q fy=%s", path, rules, cfg.Metadata().FinancialYear)

	return &app{
		settings:  settings,
		engine:    engine,
		logger:    logger,
		format:    o.format,
		noHistory: o.noHistory,
		out:       cmd.OutOrStdout(),
	}, nil
}

// render writes a report in the selected output format
func (a *app) render(r *output.Report) error {
	return output.Write(a.out, a.format, r)
}

// record stores a calculation in the history database. Failures are logged
// and never fail the command.
func (a *app) record(kind, summary string, input, result any) {
	if a.noHistory {
		return
	}
	h, err := store.Open(a.settings.HistoryPath())
	if err != nil {
		a.logger.Warnf("history unavailable: %v", err)
		return
	}
	defer h.Close()

	if _, err := h.Record(kind, summary, input, result); err != nil {
		a.logger.Warnf("could not record %s: %v", kind, err)
	}
}

func (a *app) profileStore() *profile.Store {
	return profile.NewStore(a.settings.ProfilePath())
}

// loadProfile returns the stored profile; a corrupt file is reported and
// replaced by defaults
func (a *app) loadProfile() domain.UserProfile {
	p, err := a.profileStore().Load()
	if err != nil {
		a.logger.Warnf("using default profile: %v", err)
	}
	return p
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pfgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "pfgo",
		Short: "Personal finance calculator (India)",
		Long: `Personal finance calculator for Indian households: income tax under the
old and new regimes, SIP and goal planning, loan EMIs, retirement corpus,
emergency fund and asset allocation.

` + output.Disclaimer,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug output for detailed calculations")
	pf.BoolVar(&opts.noHistory, "no-history", false, "Do not record calculations in the history database")
	pf.StringVarP(&opts.format, "format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	pf.StringVar(&opts.configPath, "config", "", "Settings file (default: "+config.SettingsPath()+")")
	pf.StringVar(&opts.rulesPath, "rules", "", "Tax rules YAML file (default: built-in rules)")

	rootCmd.AddCommand(
		taxCmd(opts),
		compareCmd(opts),
		breakEvenCmd(opts),
		sipCmd(opts),
		goalCmd(opts),
		emiCmd(opts),
		retirementCmd(opts),
		emergencyCmd(opts),
		allocateCmd(opts),
		profileCmd(opts),
		chatCmd(opts),
		historyCmd(opts),
		rulesCmd(opts),
		configCmd(opts),
		versionCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
