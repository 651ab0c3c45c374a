package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/rgehrsitz/pfgo/internal/output"
	"github.com/shopspring/decimal"
)

const riskPrompt = "Risk (conservative/moderate/aggressive) [%s]: "

func (s *Session) cmdHelp() error {
	s.println(helpText)
	return nil
}

func (s *Session) cmdTax() error {
	income, err := s.askNumber("Gross annual income ₹: ")
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}
	salariedAns, err := s.askDefault("Are you salaried? (y/n) [y]: ", "y")
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}
	def := s.profile.PreferredRegime()
	regimeAns, err := s.askDefault(fmt.Sprintf("Regime new/old [%s]: ", def), string(def))
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}

	in := calculation.TaxInput{
		GrossAnnualIncome: income,
		IsSalaried:        strings.ToLower(salariedAns) == "y",
		Regime:            domain.Regime(strings.ToLower(regimeAns)),
	}
	if in.Regime == domain.RegimeOld {
		if in.Section80C, err = s.askNumberDefault("80C deductions ₹ (max 1.5L): ", decimal.Zero); err != nil {
			return s.invalid("Please enter valid numbers.", err)
		}
		if in.Section80D, err = s.askNumberDefault("80D health insurance ₹ (max 25k): ", decimal.Zero); err != nil {
			return s.invalid("Please enter valid numbers.", err)
		}
	}

	est, err := s.Engine.EstimateTax(in)
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}
	report := output.NewTaxReport(est, s.Engine.TaxConfig().CessRate())
	s.println()
	if err := output.Write(s.out, "console", report); err != nil {
		return err
	}
	s.record("tax", fmt.Sprintf("%s regime tax on %s: %s", est.Regime, output.FormatCurrency(income), output.FormatCurrency(est.TotalTax)), in, est)
	return nil
}

func (s *Session) cmdSIP() error {
	s.println("SIP calculator → Choose mode:")
	s.println(" 1) Future value (given monthly SIP)")
	s.println(" 2) Required SIP (given target)")
	choice, err := s.ask("Enter 1 or 2: ")
	if err != nil {
		return err
	}

	switch strings.TrimSpace(choice) {
	case "1":
		monthly, rate, years, err := s.askAmountRateYears("Monthly SIP ₹: ")
		if err != nil {
			return s.invalid("Please enter valid numbers.", err)
		}
		p, err := s.Engine.ProjectSIP(monthly, rate, years)
		if err != nil {
			return s.invalid("Please enter valid numbers.", err)
		}
		s.printf("Future value ≈ %s\n", output.FormatCurrency(p.FutureValue))
		s.record("sip", "SIP future value "+output.FormatCurrency(p.FutureValue), p, p)
	case "2":
		target, rate, years, err := s.askAmountRateYears("Target amount ₹: ")
		if err != nil {
			return s.invalid("Please enter valid numbers.", err)
		}
		p, err := s.Engine.PlanGoal(target, rate, years)
		if err != nil {
			return s.invalid("Please enter valid numbers.", err)
		}
		s.printf("Required monthly SIP ≈ %s\n", output.FormatCurrency(p.MonthlyContribution))
		s.record("goal", "Required SIP "+output.FormatCurrency(p.MonthlyContribution), p, p)
	default:
		s.println("Invalid choice.")
	}
	return nil
}

func (s *Session) askAmountRateYears(amountPrompt string) (amount, rate, years decimal.Decimal, err error) {
	if amount, err = s.askNumber(amountPrompt); err != nil {
		return
	}
	if rate, err = s.askNumber("Expected annual return %: "); err != nil {
		return
	}
	years, err = s.askNumber("Years: ")
	return
}

func (s *Session) cmdGoal() error {
	target, err := s.askNumber("Target amount ₹: ")
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}
	years, err := s.askNumber("Years to goal: ")
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}
	rate, err := s.askNumber("Expected annual return %: ")
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}

	p, err := s.Engine.PlanGoal(target, rate, years)
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}
	s.printf("To reach %s in %s years at %s p.a., invest ≈ %s per month.\n",
		output.FormatCurrency(target), years.StringFixed(1), output.FormatPercentage(rate), output.FormatCurrency(p.MonthlyContribution))
	s.record("goal", "Goal "+output.FormatCurrency(target)+" needs "+output.FormatCurrency(p.MonthlyContribution)+"/month", p, p)
	return nil
}

func (s *Session) cmdEMI() error {
	principal, err := s.askNumber("Loan principal ₹: ")
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}
	rate, err := s.askNumber("Annual interest %: ")
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}
	years, err := s.askNumber("Tenure (years): ")
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}

	l, err := s.Engine.SummarizeLoan(principal, rate, years)
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}
	s.printf("EMI ≈ %s | Total Interest ≈ %s | Total Paid ≈ %s\n",
		output.FormatCurrency(l.MonthlyPayment), output.FormatCurrency(l.TotalInterest), output.FormatCurrency(l.TotalPaid))
	s.record("emi", "EMI "+output.FormatCurrency(l.MonthlyPayment), l, l)
	return nil
}

func (s *Session) cmdRetirement() error {
	var age int
	if s.profile.Age != nil {
		age = *s.profile.Age
	} else {
		a, err := s.askInt("Your age: ")
		if err != nil {
			return s.invalid("Please enter valid numbers.", err)
		}
		age = a
	}
	retireAge, err := s.askInt("Retirement age (e.g., 60): ")
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}
	years := retireAge - age
	if years <= 0 {
		s.println("Retirement age must be greater than current age.")
		return nil
	}

	var expense decimal.Decimal
	if s.profile.MonthlyExpenses != nil {
		expense = *s.profile.MonthlyExpenses
	} else if expense, err = s.askNumber("Monthly expense today ₹: "); err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}

	a := s.Assumptions
	inflation, err := s.askNumberDefault(fmt.Sprintf("Inflation %% (default %s): ", trimFloat(a.InflationPct)), a.Inflation())
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}
	swr, err := s.askNumberDefault(fmt.Sprintf("Safe withdrawal rate %% (default %s): ", trimFloat(a.SafeWithdrawalRatePct)), a.SafeWithdrawalRate())
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}

	in := calculation.RetirementInput{
		MonthlyExpenseToday:   expense,
		YearsToRetirement:     years,
		RetiredYears:          a.RetiredYears,
		InflationPct:          inflation,
		SafeWithdrawalRatePct: swr,
	}
	target, err := calculation.RetirementCorpus(in)
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}
	s.printf("At %s%% inflation, your monthly expense at retirement ≈ %s\n", inflation.StringFixed(1), output.FormatCurrency(target.InflatedMonthlyExpense))
	s.printf("Estimated retirement corpus needed (SWR %s) ≈ %s\n", output.FormatPercentage(swr), output.FormatCurrency(target.CorpusRequired))

	rate, err := s.askNumberDefault(fmt.Sprintf("Expected return during accumulation %% (e.g., %s): ", trimFloat(a.AccumulationReturnPct)), a.AccumulationReturn())
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}
	plan, err := s.Engine.PlanRetirement(in, rate)
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}
	s.printf("Suggested monthly investment ≈ %s for %d years at %s%% p.a.\n", output.FormatCurrency(plan.RequiredMonthlySIP), years, rate.StringFixed(1))
	s.record("retirement", "Retirement corpus "+output.FormatCompact(target.CorpusRequired), in, plan)
	return nil
}

func (s *Session) cmdEmergency() error {
	var expense decimal.Decimal
	if s.profile.MonthlyExpenses != nil {
		expense = *s.profile.MonthlyExpenses
	} else {
		e, err := s.askNumber("Monthly expenses ₹: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return err
			}
			s.println("Please enter a number.")
			return nil
		}
		expense = e
	}

	months := s.profile.EmergencyMonths
	ans, err := s.ask(fmt.Sprintf("Months of buffer [%d]: ", months))
	if err != nil {
		return err
	}
	if ans = strings.TrimSpace(ans); ans != "" {
		// a bad answer keeps the stored value
		if n, convErr := strconv.Atoi(ans); convErr == nil {
			months = n
		}
	}

	f, err := s.Engine.SizeEmergencyFund(expense, months)
	if err != nil {
		return s.invalid("Please enter valid numbers.", err)
	}
	s.printf("Emergency fund target for %d months: %s\n", f.Months, output.FormatCurrency(f.Target))
	s.record("emergency", "Emergency fund "+output.FormatCurrency(f.Target), f, f)
	return nil
}

func (s *Session) cmdAllocate() error {
	def := string(s.profile.Risk)
	riskAns, err := s.askDefault(fmt.Sprintf(riskPrompt, def), def)
	if err != nil {
		return err
	}
	horizon, err := s.askInt("Investment horizon (years): ")
	if err != nil {
		return s.invalid("Please enter valid inputs.", err)
	}

	a, err := s.Engine.SuggestAllocation(domain.RiskCategory(strings.ToLower(riskAns)), horizon)
	if err != nil {
		return s.invalid("Please enter valid inputs.", err)
	}
	s.println("Suggested allocation:")
	for _, class := range domain.AssetClasses {
		s.printf("  %-8s: %s\n", titleWord(string(class)), output.FormatWeight(a.Weight(class)))
	}
	s.record("allocate", fmt.Sprintf("%s allocation for %d years", a.Risk, horizon), a, a)
	return nil
}

func (s *Session) cmdProfile() error {
	p := s.profile
	view, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	s.println("\nCurrent profile:")
	s.println(string(view))
	s.println("\nUpdate fields (press Enter to keep current):")

	updated, err := s.editProfile(p)
	if errors.Is(err, io.EOF) {
		s.println("\nUpdate cancelled.")
		return err
	}
	if err != nil {
		s.printf("[error] %v\n", err)
		return nil
	}

	s.profile = updated
	if err := s.Store.Save(updated); err != nil {
		s.printf("[error] %v\n", err)
		return nil
	}
	s.printf("\nSaved ✔\n\n")
	return nil
}

// editProfile prompts for every field; blank answers keep the current value
func (s *Session) editProfile(p domain.UserProfile) (domain.UserProfile, error) {
	name, err := s.askDefault(fmt.Sprintf("Name [%s]: ", p.Name), p.Name)
	if err != nil {
		return p, err
	}
	age, err := s.askDefault(fmt.Sprintf("Age [%s]: ", optInt(p.Age)), "")
	if err != nil {
		return p, err
	}
	income, err := s.askDefault(fmt.Sprintf("Monthly income ₹ [%s]: ", optDecimal(p.MonthlyIncome)), "")
	if err != nil {
		return p, err
	}
	expenses, err := s.askDefault(fmt.Sprintf("Monthly expenses ₹ [%s]: ", optDecimal(p.MonthlyExpenses)), "")
	if err != nil {
		return p, err
	}
	months, err := s.askDefault(fmt.Sprintf("Emergency months [%d]: ", p.EmergencyMonths), "")
	if err != nil {
		return p, err
	}
	risk, err := s.askDefault(fmt.Sprintf(riskPrompt, p.Risk), string(p.Risk))
	if err != nil {
		return p, err
	}
	city, err := s.askDefault(fmt.Sprintf("City [%s]: ", optString(p.City)), "")
	if err != nil {
		return p, err
	}
	regime, err := s.askDefault(fmt.Sprintf("Tax regime preference (new/old) [%s]: ", optRegime(p.RegimePreference)), "")
	if err != nil {
		return p, err
	}

	p.Name = name
	if age != "" {
		n, err := strconv.Atoi(age)
		if err != nil {
			return p, fmt.Errorf("invalid age %q", age)
		}
		p.Age = &n
	}
	if income != "" {
		d, err := parseNumber(income)
		if err != nil {
			return p, fmt.Errorf("invalid monthly income %q", income)
		}
		p.MonthlyIncome = &d
	}
	if expenses != "" {
		d, err := parseNumber(expenses)
		if err != nil {
			return p, fmt.Errorf("invalid monthly expenses %q", expenses)
		}
		p.MonthlyExpenses = &d
	}
	if months != "" {
		n, err := strconv.Atoi(months)
		if err != nil {
			return p, fmt.Errorf("invalid emergency months %q", months)
		}
		p.EmergencyMonths = n
	}
	p.Risk = domain.NormalizeRiskCategory(risk)
	if city != "" {
		p.City = &city
	}
	if regime != "" {
		r := domain.NormalizeRegime(regime)
		p.RegimePreference = &r
	}
	return p, nil
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optDecimal(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optRegime(v *domain.Regime) string {
	if v == nil {
		return ""
	}
	return string(*v)
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
