package main

import (
	"fmt"

	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/rgehrsitz/pfgo/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// taxInputFlags registers the flags shared by tax, compare and breakeven
func taxInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("income", "", "Gross annual income in rupees (required)")
	cmd.Flags().Bool("salaried", true, "Apply the salaried standard deduction")
	cmd.Flags().String("section-80c", "0", "80C investments (old regime only)")
	cmd.Flags().String("section-80d", "0", "80D health insurance premium (old regime only)")
}

func readTaxInput(cmd *cobra.Command) (calculation.TaxInput, error) {
	var in calculation.TaxInput
	var err error
	if in.GrossAnnualIncome, err = requiredDecimal(cmd, "income"); err != nil {
		return in, err
	}
	if in.IsSalaried, err = cmd.Flags().GetBool("salaried"); err != nil {
		return in, err
	}
	if in.Section80C, err = decimalFlag(cmd, "section-80c"); err != nil {
		return in, err
	}
	if in.Section80D, err = decimalFlag(cmd, "section-80d"); err != nil {
		return in, err
	}
	return in, nil
}

func taxCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Estimate income tax under one regime",
		Example: `  pfgo tax --income 1800000 --regime new
  pfgo tax --income 12,00,000 --regime old --section-80c 150000 --section-80d 25000`,
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

			regimeFlag, _ := cmd.Flags().GetString("regime")
			if regimeFlag == "" {
				in.Regime = a.loadProfile().PreferredRegime()
			} else if in.Regime, err = parseRegime(regimeFlag); err != nil {
				return err
			}

			est, err := a.engine.EstimateTax(in)
			if err != nil {
				return err
			}
			a.record("tax", fmt.Sprintf("%s regime tax on %s: %s", est.Regime, output.FormatCurrency(in.GrossAnnualIncome), output.FormatCurrency(est.TotalTax)), in, est)
			return a.render(output.NewTaxReport(est, a.engine.TaxConfig().CessRate()))
		},
	}
	taxInputFlags(cmd)
	cmd.Flags().String("regime", "", "Tax regime: new or old (default: profile preference, else new)")
	return cmd
}

// amountRateYears registers the three flags shared by the annuity commands
func amountRateYears(cmd *cobra.Command, amount, amountUsage, rate, rateUsage string) {
	cmd.Flags().String(amount, "", amountUsage+" (required)")
	cmd.Flags().String(rate, "", rateUsage+" (required)")
	cmd.Flags().String("years", "", "Horizon in years, fractions allowed (required)")
}

func readAmountRateYears(cmd *cobra.Command, amount, rate string) (decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	a, err := requiredDecimal(cmd, amount)
	if err != nil {
		return a, decimal.Zero, decimal.Zero, err
	}
	r, err := requiredDecimal(cmd, rate)
	if err != nil {
		return a, r, decimal.Zero, err
	}
	y, err := requiredDecimal(cmd, "years")
	return a, r, y, err
}

func sipCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sip",
		Short:   "Project the future value of a monthly SIP",
		Example: "  pfgo sip --monthly 10000 --return 12 --years 15",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			monthly, rate, years, err := readAmountRateYears(cmd, "monthly", "return")
			if err != nil {
				return err
			}
			p, err := a.engine.ProjectSIP(monthly, rate, years)
			if err != nil {
				return err
			}
			a.record("sip", "SIP future value "+output.FormatCurrency(p.FutureValue), p, p)
			return a.render(output.NewSIPReport(p))
		},
	}
	amountRateYears(cmd, "monthly", "Monthly contribution in rupees", "return", "Expected annual return in percent")
	return cmd
}

func goalCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goal",
		Short:   "Monthly SIP required to reach a target amount",
		Example: "  pfgo goal --target 50,00,000 --return 12 --years 15",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			target, rate, years, err := readAmountRateYears(cmd, "target", "return")
			if err != nil {
				return err
			}
			p, err := a.engine.PlanGoal(target, rate, years)
			if err != nil {
				return err
			}
			a.record("goal", "Goal "+output.FormatCurrency(target)+" needs "+output.FormatCurrency(p.MonthlyContribution)+"/month", p, p)
			return a.render(output.NewGoalReport(p))
		},
	}
	amountRateYears(cmd, "target", "Target amount in rupees", "return", "Expected annual return in percent")
	return cmd
}

func emiCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "emi",
		Short:   "Loan EMI with total interest and total paid",
		Example: "  pfgo emi --principal 40,00,000 --rate 8.5 --years 20",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			principal, rate, years, err := readAmountRateYears(cmd, "principal", "rate")
			if err != nil {
				return err
			}
			l, err := a.engine.SummarizeLoan(principal, rate, years)
			if err != nil {
				return err
			}
			a.record("emi", "EMI "+output.FormatCurrency(l.MonthlyPayment), l, l)
			return a.render(output.NewLoanReport(l))
		},
	}
	amountRateYears(cmd, "principal", "Loan principal in rupees", "rate", "Annual interest rate in percent")
	return cmd
}

func retirementCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retirement",
		Short: "Retirement corpus and the monthly SIP that builds it",
		Long: `Inflates today's monthly expense to the retirement date, sizes the corpus whose
yield at the safe withdrawal rate covers it, and backs out the monthly SIP.

Missing values come from the profile (age, monthly expenses) and the settings
file (inflation, safe withdrawal rate, accumulation return).`,
		Example: `  pfgo retirement --age 30 --retire-age 60 --expense 50000
  pfgo retirement --years 25 --expense 50000 --inflation 6 --swr 3.5 --return 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			in, rate, err := readRetirementInput(cmd, a)
			if err != nil {
				return err
			}
			plan, err := a.engine.PlanRetirement(in, rate)
			if err != nil {
				return err
			}
			a.record("retirement", "Retirement corpus "+output.FormatCompact(plan.Target.CorpusRequired), in, plan)
			return a.render(output.NewRetirementReport(plan))
		},
	}
	f := cmd.Flags()
	f.Int("years", 0, "Years to retirement (overrides --age/--retire-age)")
	f.Int("age", 0, "Current age (default: profile age)")
	f.Int("retire-age", 60, "Retirement age")
	f.String("expense", "", "Monthly expense today in rupees (default: profile monthly expenses)")
	f.String("inflation", "", "Inflation in percent (default: settings)")
	f.String("swr", "", "Safe withdrawal rate in percent (default: settings)")
	f.String("return", "", "Expected return during accumulation in percent (default: settings)")
	return cmd
}

func readRetirementInput(cmd *cobra.Command, a *app) (calculation.RetirementInput, decimal.Decimal, error) {
	assumptions := a.settings.Assumptions
	in := calculation.RetirementInput{
		RetiredYears:          assumptions.RetiredYears,
		InflationPct:          assumptions.Inflation(),
		SafeWithdrawalRatePct: assumptions.SafeWithdrawalRate(),
	}
	rate := assumptions.AccumulationReturn()
	p := a.loadProfile()

	years, _ := cmd.Flags().GetInt("years")
	if years == 0 {
		age, _ := cmd.Flags().GetInt("age")
		if !cmd.Flags().Changed("age") {
			if p.Age == nil {
				return in, rate, fmt.Errorf("--age or --years is required when the profile has no age")
			}
			age = *p.Age
		}
		retireAge, _ := cmd.Flags().GetInt("retire-age")
		years = retireAge - age
		if years <= 0 {
			return in, rate, fmt.Errorf("retirement age %d must be greater than current age %d", retireAge, age)
		}
	}
	in.YearsToRetirement = years

	var err error
	switch {
	case cmd.Flags().Changed("expense"):
		if in.MonthlyExpenseToday, err = decimalFlag(cmd, "expense"); err != nil {
			return in, rate, err
		}
	case p.MonthlyExpenses != nil:
		in.MonthlyExpenseToday = *p.MonthlyExpenses
	default:
		return in, rate, fmt.Errorf("--expense is required when the profile has no monthly expenses")
	}

	overrides := []struct {
		name string
		dst  *decimal.Decimal
	}{
		{"inflation", &in.InflationPct},
		{"swr", &in.SafeWithdrawalRatePct},
		{"return", &rate},
	}
	for _, o := range overrides {
		if !cmd.Flags().Changed(o.name) {
			continue
		}
		if *o.dst, err = decimalFlag(cmd, o.name); err != nil {
			return in, rate, err
		}
	}
	return in, rate, nil
}

func emergencyCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "emergency",
		Short:   "Emergency fund target",
		Example: "  pfgo emergency --expense 40000 --months 6",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			p := a.loadProfile()

			var expense decimal.Decimal
			switch {
			case cmd.Flags().Changed("expense"):
				if expense, err = decimalFlag(cmd, "expense"); err != nil {
					return err
				}
			case p.MonthlyExpenses != nil:
				expense = *p.MonthlyExpenses
			default:
				return fmt.Errorf("--expense is required when the profile has no monthly expenses")
			}

			months := p.EmergencyMonths
			if cmd.Flags().Changed("months") {
				months, _ = cmd.Flags().GetInt("months")
			} else if months == 0 {
				months = a.settings.Assumptions.EmergencyMonths
			}

			f, err := a.engine.SizeEmergencyFund(expense, months)
			if err != nil {
				return err
			}
			a.record("emergency", "Emergency fund "+output.FormatCurrency(f.Target), f, f)
			return a.render(output.NewEmergencyReport(f))
		},
	}
	cmd.Flags().String("expense", "", "Monthly expenses in rupees (default: profile)")
	cmd.Flags().Int("months", 0, "Months of buffer (default: profile, else settings)")
	return cmd
}

func allocateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "allocate",
		Short:   "Suggested equity/debt/gold allocation",
		Example: "  pfgo allocate --risk aggressive --horizon 12",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("horizon") {
				return fmt.Errorf("--horizon is required")
			}
			horizon, _ := cmd.Flags().GetInt("horizon")

			risk := a.loadProfile().Risk
			if riskFlag, _ := cmd.Flags().GetString("risk"); riskFlag != "" {
				if risk, err = parseRisk(riskFlag); err != nil {
					return err
				}
			}

			alloc, err := a.engine.SuggestAllocation(risk, horizon)
			if err != nil {
				return err
			}
			a.record("allocate", fmt.Sprintf("%s allocation for %d years", alloc.Risk, horizon), alloc, alloc)
			return a.render(output.NewAllocationReport(alloc))
		},
	}
	cmd.Flags().String("risk", "", "Risk category: conservative, moderate or aggressive (default: profile)")
	cmd.Flags().Int("horizon", 0, "Investment horizon in years (required)")
	return cmd
}
