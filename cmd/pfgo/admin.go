package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"github.com/rgehrsitz/pfgo/internal/config"
	"github.com/rgehrsitz/pfgo/internal/output"
	"github.com/rgehrsitz/pfgo/internal/store"
	"github.com/spf13/cobra"
)

func historyCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")

			h, err := store.Open(a.settings.HistoryPath())
			if err != nil {
				return err
			}
			defer h.Close()

			entries, err := h.Recent(limit)
			if err != nil {
				return err
			}
			if output.NormalizeFormatName(a.format) == "json" {
				return writeJSON(a, entries)
			}
			if len(entries) == 0 {
				_, err = fmt.Fprintln(a.out, "No calculations recorded yet.")
				return err
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tWHEN\tKIND\tSUMMARY")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", shortID(e.ID), humanize.Time(e.CreatedAt), e.Kind, e.Summary)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "Number of entries to show (0 for all)")
	cmd.AddCommand(historyShowCmd(opts), historyClearCmd(opts))
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func historyShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one recorded calculation with its inputs and result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			h, err := store.Open(a.settings.HistoryPath())
			if err != nil {
				return err
			}
			defer h.Close()

			e, err := h.Get(args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no calculation with id %s", args[0])
			}
			if err != nil {
				return err
			}
			return writeJSON(a, e)
		},
	}
}

func historyClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			h, err := store.Open(a.settings.HistoryPath())
			if err != nil {
				return err
			}
			defer h.Close()

			n, err := h.Clear()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "Removed %s entries\n", humanize.Comma(n))
			return err
		},
	}
}

func writeJSON(a *app, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

func rulesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect or validate tax rules",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective tax rules as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			data, err := config.MarshalRules(a.engine.TaxConfig())
			if err != nil {
				return err
			}
			_, err = a.out.Write(data)
			return err
		},
	}

	validate := &cobra.Command{
		Use:   "validate [rules-file]",
		Short: "Validate a tax rules YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewRulesParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Tax rules file %s is valid (FY %s)\n", args[0], cfg.Metadata().FinancialYear)
			return err
		},
	}

	cmd.AddCommand(show, validate)
	return cmd
}

func configCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			path := opts.settingsPath()

			fmt.Fprintf(a.out, "  Settings file: %s\n", path)
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintln(a.out, "  Status: loaded")
			} else {
				fmt.Fprintln(a.out, "  Status: using defaults (no settings file)")
			}
			fmt.Fprintln(a.out)

			fmt.Fprintln(a.out, "  [Paths]")
			fmt.Fprintf(a.out, "    Profile: %s\n", a.settings.ProfilePath())
			fmt.Fprintf(a.out, "    History: %s\n", a.settings.HistoryPath())
			if rules := a.settings.RulesPath(); rules != "" {
				fmt.Fprintf(a.out, "    Rules:   %s\n", rules)
			} else {
				fmt.Fprintf(a.out, "    Rules:   built-in (FY %s)\n", a.engine.TaxConfig().Metadata().FinancialYear)
			}
			fmt.Fprintln(a.out)

			as := a.settings.Assumptions
			fmt.Fprintln(a.out, "  [Assumptions]")
			fmt.Fprintf(a.out, "    Inflation:             %s\n", output.FormatPercentage(as.Inflation()))
			fmt.Fprintf(a.out, "    Safe withdrawal rate:  %s\n", output.FormatPercentage(as.SafeWithdrawalRate()))
			fmt.Fprintf(a.out, "    Accumulation return:   %s\n", output.FormatPercentage(as.AccumulationReturn()))
			fmt.Fprintf(a.out, "    Retired years:         %d\n", as.RetiredYears)
			_, err = fmt.Fprintf(a.out, "    Emergency months:      %d\n", as.EmergencyMonths)
			return err
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.settingsPath()
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.SaveSettingsTo(path, config.DefaultSettings()); err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := toml.NewEncoder(&buf).Encode(config.DefaultSettings()); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n\n%s", path, buf.String())
			return err
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing settings file")

	cmd.AddCommand(initCmd)
	return cmd
}
