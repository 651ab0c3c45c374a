package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/rgehrsitz/pfgo/internal/config"
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/rgehrsitz/pfgo/internal/output"
	"github.com/shopspring/decimal"
)

const banner = `👋 Personal Finance Chatbot (India)
Type 'help' to see options. Type 'quit' to exit and save.
Disclaimer: ` + output.Disclaimer

const helpText = `What I can do:
 1) tax           -> Estimate income tax (India, Old vs New)
 2) sip           -> SIP calculator (future value or required monthly)
 3) goal          -> Plan a goal (target amount, return, years)
 4) retirement    -> Retirement corpus estimate
 5) emergency     -> Emergency fund target
 6) emi           -> Loan EMI calculator
 7) allocate      -> Suggested asset allocation
 8) profile       -> View or update your profile
 9) help          -> Show this help
10) quit/exit     -> Save & exit

Tip: You can also just type things like "tax for 18 lakh new regime" or
"need ₹50L in 15 yrs at 12% – how much SIP?" and I'll try to parse it.`

// ProfileStore loads and saves the user profile
type ProfileStore interface {
	Load() (domain.UserProfile, error)
	Save(domain.UserProfile) error
}

// ResultFunc receives every successful calculation, e.g. to record history
type ResultFunc func(kind, summary string, input, result any)

// Session is one interactive conversation. It resolves defaults from the
// profile and settings before calling the engine.
type Session struct {
	Engine      *calculation.CalculationEngine
	Store       ProfileStore
	Assumptions config.AssumptionsConfig
	OnResult    ResultFunc

	profile  domain.UserProfile
	handlers map[Intent]func() error
	in       *bufio.Scanner
	out      io.Writer
}

// NewSession creates a session reading from in and writing to out
func NewSession(engine *calculation.CalculationEngine, store ProfileStore, assumptions config.AssumptionsConfig, in io.Reader, out io.Writer) *Session {
	s := &Session{
		Engine:      engine,
		Store:       store,
		Assumptions: assumptions,
		in:          bufio.NewScanner(in),
		out:         out,
	}
	s.handlers = map[Intent]func() error{
		IntentHelp:       s.cmdHelp,
		IntentProfile:    s.cmdProfile,
		IntentEmergency:  s.cmdEmergency,
		IntentSIP:        s.cmdSIP,
		IntentGoal:       s.cmdGoal,
		IntentEMI:        s.cmdEMI,
		IntentRetirement: s.cmdRetirement,
		IntentAllocate:   s.cmdAllocate,
		IntentTax:        s.cmdTax,
	}
	return s
}

// Profile returns the profile the session is working with
func (s *Session) Profile() domain.UserProfile {
	return s.profile
}

// Run loads the profile and serves input until quit or end of input. Quitting
// saves the profile; end of input does not.
func (s *Session) Run(ctx context.Context) error {
	p, err := s.Store.Load()
	if err != nil {
		s.Engine.Logger.Warnf("using default profile: %v", err)
	}
	s.profile = p

	s.println(banner)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.ask("\n> ")
		if errors.Is(err, io.EOF) {
			s.println("\nGoodbye!")
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if IsQuit(line) {
			s.println("Saving profile… bye!")
			s.saveProfile()
			return nil
		}

		if err := s.Handle(line); errors.Is(err, io.EOF) {
			s.println("\nGoodbye!")
			return nil
		} else if err != nil {
			return err
		}
	}
}

// Handle routes one line of input. Only end of input is returned as an
// error; calculation problems are reported to the user.
func (s *Session) Handle(line string) error {
	intent := MatchIntent(line)
	handler, ok := s.handlers[intent]
	if !ok {
		s.println("I didn't catch that. Type 'help' for options.")
		return nil
	}
	return handler()
}

func (s *Session) saveProfile() {
	if err := s.Store.Save(s.profile); err != nil {
		s.printf("[warn] Could not save profile: %v\n", err)
	}
}

func (s *Session) record(kind, summary string, input, result any) {
	if s.OnResult != nil {
		s.OnResult(kind, summary, input, result)
	}
}

func (s *Session) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Session) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

// ask prints prompt and returns the next line, or io.EOF
func (s *Session) ask(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

// askDefault returns def when the answer is blank
func (s *Session) askDefault(prompt, def string) (string, error) {
	line, err := s.ask(prompt)
	if err != nil {
		return "", err
	}
	if line = strings.TrimSpace(line); line == "" {
		return def, nil
	}
	return line, nil
}

func (s *Session) askNumber(prompt string) (decimal.Decimal, error) {
	line, err := s.ask(prompt)
	if err != nil {
		return decimal.Zero, err
	}
	return parseNumber(line)
}

func (s *Session) askNumberDefault(prompt string, def decimal.Decimal) (decimal.Decimal, error) {
	line, err := s.askDefault(prompt, def.String())
	if err != nil {
		return decimal.Zero, err
	}
	return parseNumber(line)
}

func (s *Session) askInt(prompt string) (int, error) {
	line, err := s.ask(prompt)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(line))
}

// parseNumber accepts plain decimals with optional ₹ and digit separators
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.NewReplacer(",", "", "_", "").Replace(s)
	return decimal.NewFromString(s)
}

// invalid reports bad input and swallows it; end of input is passed through
func (s *Session) invalid(msg string, err error) error {
	if errors.Is(err, io.EOF) {
		return err
	}
	var verr *calculation.ValidationError
	if errors.As(err, &verr) {
		s.printf("%s %v\n", msg, err)
		return nil
	}
	s.println(msg)
	return nil
}
