package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/pfgo/internal/breakeven"
	"github.com/rgehrsitz/pfgo/internal/compare"
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/rgehrsitz/pfgo/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func compareCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the new and old tax regimes for the same income",
		Long: `Estimate the same income under both regimes and report the cheaper one.

Examples:
  pfgo compare --income 1500000
  pfgo compare --income 1500000 --section-80c 150000 --section-80d 25000 --base old
  pfgo compare --income 1500000 --format csv
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			in, err := readTaxInput(cmd)
			if err != nil {
				return err
			}
			baseFlag, _ := cmd.Flags().GetString("base")
			base, err := parseRegime(baseFlag)
			if err != nil {
				return err
			}

			compSet, err := compare.NewCompareEngine(a.engine).Compare(cmd.Context(), in, compare.CompareOptions{BaseRegime: base})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			a.record("compare", compareSummary(compSet), in, compSet)

			var out string
			switch output.NormalizeFormatName(a.format) {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
				out += "\n"
			case "console", "":
				out = (&compare.TableFormatter{}).Format(compSet)
			default:
				return fmt.Errorf("unknown output format: %s (valid: console, csv, json)", a.format)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.out, out)
			return err
		},
	}
	taxInputFlags(cmd)
	cmd.Flags().String("base", "new", "Base regime the other is measured against (new or old)")
	return cmd
}

func compareSummary(cs *compare.ComparisonSet) string {
	if cs.Tie {
		return "Regimes tie at " + output.FormatCurrency(cs.BaseResult.TotalTax)
	}
	return fmt.Sprintf("%s regime cheaper by %s", cs.Cheaper.Title(), output.FormatCurrency(cs.Savings))
}

func breakEvenCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Deductions at which the old regime matches the new regime",
		Long: `Find the smallest 80C/80D deductions at which old-regime tax falls to the
new-regime tax for the same income. Targets:

  total_deductions  vary 80C and 80D together, filling 80C first
  section_80c       vary 80C only, keeping --section-80d fixed
  all               solve both targets and summarise`,
		Example: "  pfgo breakeven --income 1200000 --target all",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			in, err := readTaxInput(cmd)
			if err != nil {
				return err
			}
			in.Regime = domain.RegimeOld

			var constraints breakeven.Constraints
			for name, dst := range map[string]**decimal.Decimal{
				"max-80c": &constraints.MaxSection80C,
				"max-80d": &constraints.MaxSection80D,
			} {
				if !cmd.Flags().Changed(name) {
					continue
				}
				d, err := decimalFlag(cmd, name)
				if err != nil {
					return err
				}
				*dst = &d
			}

			targetFlag, _ := cmd.Flags().GetString("target")
			target := breakeven.OptimizationTarget(strings.ToLower(targetFlag))
			solver := breakeven.NewDefaultSolver(a.engine)
			jsonOut := output.NormalizeFormatName(a.format) == "json"

			if target == breakeven.OptimizeAll {
				md, err := solver.OptimizeMultiDimensional(cmd.Context(), in, constraints)
				if err != nil {
					return err
				}
				a.record("breakeven", fmt.Sprintf("Break-even search (%d targets)", len(md.Results)), in, md)
				if jsonOut {
					s, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(md)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(a.out, s)
					return err
				}
				_, err = fmt.Fprint(a.out, (&breakeven.TableFormatter{}).FormatMultiDimensional(md))
				return err
			}

			res, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
				Income:      in,
				Target:      target,
				Constraints: constraints,
			})
			if err != nil {
				return err
			}
			a.record("breakeven", res.ConvergenceInfo, in, res)
			if jsonOut {
				s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(res)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, s)
				return err
			}
			_, err = fmt.Fprint(a.out, (&breakeven.TableFormatter{}).Format(res))
			return err
		},
	}
	taxInputFlags(cmd)
	cmd.Flags().String("target", string(breakeven.OptimizeTotalDeductions), "Search target: total_deductions, section_80c or all")
	cmd.Flags().String("max-80c", "", "Most you can invest under 80C (default: statutory cap)")
	cmd.Flags().String("max-80d", "", "Most you can claim under 80D (default: statutory cap)")
	return cmd
}
