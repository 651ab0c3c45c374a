package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/rgehrsitz/pfgo/internal/config"
	"github.com/rgehrsitz/pfgo/internal/profile"
	"github.com/rgehrsitz/pfgo/internal/store"
	"github.com/rgehrsitz/pfgo/internal/tui"
)

type options struct {
	configPath string
	rulesPath  string
	noHistory  bool
}

// buildModel loads settings and rules and wires history recording
func buildModel(opts options, logw io.Writer) (tui.Model, error) {
	path := opts.configPath
	if path == "" {
		path = config.SettingsPath()
	}
	settings, err := config.LoadSettingsFrom(path)
	if err != nil {
		return tui.Model{}, err
	}

	rules := opts.rulesPath
	if rules == "" {
		rules = settings.RulesPath()
	}
	cfg, err := config.LoadTaxConfig(rules)
	if err != nil {
		return tui.Model{}, fmt.Errorf("loading tax rules: %w", err)
	}

	log := zerolog.New(logw).With().Timestamp().Logger()
	engine := calculation.NewCalculationEngineWithConfig(cfg)
	model := tui.NewModel(engine, settings, profile.NewStore(settings.ProfilePath()))

	if !opts.noHistory {
		historyPath := settings.HistoryPath()
		model.OnResult = func(kind, summary string, input, result any) {
			h, err := store.Open(historyPath)
			if err != nil {
				log.Warn().Err(err).Msg("history unavailable")
				return
			}
			defer h.Close()
			if _, err := h.Record(kind, summary, input, result); err != nil {
				log.Warn().Err(err).Str("kind", kind).Msg("could not record calculation")
			}
		}
	}
	return model, nil
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "pfgo-tui",
		Short:        "Interactive terminal UI for the pfgo calculators",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The alternate screen owns the terminal; warnings are held until exit
			var logs bytes.Buffer
			defer func() { _, _ = io.Copy(cmd.ErrOrStderr(), &logs) }()

			model, err := buildModel(opts, &logs)
			if err != nil {
				return err
			}

			p := tea.NewProgram(
				model,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Settings file (default "+config.SettingsPath()+")")
	cmd.Flags().StringVar(&opts.rulesPath, "rules", "", "Tax rules YAML file (default: built-in FY rules)")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record calculations")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
