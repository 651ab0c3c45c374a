package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rgehrsitz/pfgo/internal/chat"
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/spf13/cobra"
)

// profileFields is a profile edit in text form; blank fields keep the
// current value
type profileFields struct {
	Name     string
	Age      string
	Income   string
	Expenses string
	Months   string
	Risk     string
	City     string
	Regime   string
}

func fieldsFromProfile(p domain.UserProfile) profileFields {
	f := profileFields{
		Name:   p.Name,
		Months: strconv.Itoa(p.EmergencyMonths),
		Risk:   string(p.Risk),
		Regime: string(p.PreferredRegime()),
	}
	if p.Age != nil {
		f.Age = strconv.Itoa(*p.Age)
	}
	if p.MonthlyIncome != nil {
		f.Income = p.MonthlyIncome.String()
	}
	if p.MonthlyExpenses != nil {
		f.Expenses = p.MonthlyExpenses.String()
	}
	if p.City != nil {
		f.City = *p.City
	}
	return f
}

func (f profileFields) apply(p domain.UserProfile) (domain.UserProfile, error) {
	if name := strings.TrimSpace(f.Name); name != "" {
		p.Name = name
	}
	if f.Age != "" {
		n, err := strconv.Atoi(strings.TrimSpace(f.Age))
		if err != nil || n < 0 {
			return p, fmt.Errorf("invalid age %q", f.Age)
		}
		p.Age = &n
	}
	if f.Income != "" {
		d, err := parseAmount("income", f.Income)
		if err != nil {
			return p, err
		}
		p.MonthlyIncome = &d
	}
	if f.Expenses != "" {
		d, err := parseAmount("expenses", f.Expenses)
		if err != nil {
			return p, err
		}
		p.MonthlyExpenses = &d
	}
	if f.Months != "" {
		n, err := strconv.Atoi(strings.TrimSpace(f.Months))
		if err != nil || n < 0 {
			return p, fmt.Errorf("invalid emergency months %q", f.Months)
		}
		p.EmergencyMonths = n
	}
	if f.Risk != "" {
		r, err := parseRisk(f.Risk)
		if err != nil {
			return p, err
		}
		p.Risk = r
	}
	if city := strings.TrimSpace(f.City); city != "" {
		p.City = &city
	}
	if f.Regime != "" {
		r, err := parseRegime(f.Regime)
		if err != nil {
			return p, err
		}
		p.RegimePreference = &r
	}
	return p, nil
}

func profileCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the saved profile",
	}
	cmd.AddCommand(profileShowCmd(opts), profileSetCmd(opts), profileEditCmd(opts))
	return cmd
}

func profileShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved profile as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(a.loadProfile(), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, string(data))
			return err
		},
	}
}

func profileSetCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "set",
		Short:   "Update profile fields from flags",
		Example: "  pfgo profile set --age 32 --expenses 45000 --risk aggressive --regime old",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			var f profileFields
			for name, dst := range map[string]*string{
				"name":     &f.Name,
				"age":      &f.Age,
				"income":   &f.Income,
				"expenses": &f.Expenses,
				"months":   &f.Months,
				"risk":     &f.Risk,
				"city":     &f.City,
				"regime":   &f.Regime,
			} {
				*dst, _ = flags.GetString(name)
			}
			return saveProfileFields(a, f)
		},
	}
	f := cmd.Flags()
	f.String("name", "", "Name")
	f.String("age", "", "Age in years")
	f.String("income", "", "Monthly income in rupees")
	f.String("expenses", "", "Monthly expenses in rupees")
	f.String("months", "", "Emergency fund months")
	f.String("risk", "", "Risk category: conservative, moderate or aggressive")
	f.String("city", "", "City")
	f.String("regime", "", "Tax regime preference: new or old")
	return cmd
}

func profileEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the profile in an interactive form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			f := fieldsFromProfile(a.loadProfile())
			if err := profileForm(&f).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(a.out, "Update cancelled.")
					return nil
				}
				return err
			}
			return saveProfileFields(a, f)
		},
	}
}

func profileForm(f *profileFields) *huh.Form {
	validInt := func(s string) error {
		if s == "" {
			return nil
		}
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n < 0 {
			return errors.New("enter a whole number")
		}
		return nil
	}
	validAmount := func(s string) error {
		if s == "" {
			return nil
		}
		_, err := parseAmount("amount", s)
		return err
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&f.Name),
			huh.NewInput().Title("Age").Value(&f.Age).Validate(validInt),
			huh.NewInput().Title("Monthly income ₹").Value(&f.Income).Validate(validAmount),
			huh.NewInput().Title("Monthly expenses ₹").Value(&f.Expenses).Validate(validAmount),
			huh.NewInput().Title("Emergency months").Value(&f.Months).Validate(validInt),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Risk").
				Options(huh.NewOptions(string(domain.RiskConservative), string(domain.RiskModerate), string(domain.RiskAggressive))...).
				Value(&f.Risk),
			huh.NewInput().Title("City").Value(&f.City),
			huh.NewSelect[string]().
				Title("Tax regime preference").
				Options(huh.NewOptions(string(domain.RegimeNew), string(domain.RegimeOld))...).
				Value(&f.Regime),
		),
	)
}

func saveProfileFields(a *app, f profileFields) error {
	store := a.profileStore()
	p, err := f.apply(a.loadProfile())
	if err != nil {
		return err
	}
	if err := store.Save(p); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "Saved ✔ %s\n", store.Path())
	return err
}

func chatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive finance chatbot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			s := chat.NewSession(a.engine, a.profileStore(), a.settings.Assumptions, cmd.InOrStdin(), a.out)
			s.OnResult = a.record
			return s.Run(cmd.Context())
		},
	}
}
