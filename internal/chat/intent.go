// Package chat implements the line-based personal finance assistant.
package chat

import "strings"

// Intent names the calculator a line of input is routed to
type Intent string

const (
	IntentNone       Intent = ""
	IntentHelp       Intent = "help"
	IntentTax        Intent = "tax"
	IntentEMI        Intent = "emi"
	IntentRetirement Intent = "retirement"
	IntentEmergency  Intent = "emergency"
	IntentAllocate   Intent = "allocate"
	IntentSIP        Intent = "sip"
	IntentGoal       Intent = "goal"
	IntentProfile    Intent = "profile"
)

// keywordRoutes are tried in order; the first containing match wins, so
// "sip to save tax" routes to tax.
var keywordRoutes = []struct {
	keywords []string
	intent   Intent
}{
	{[]string{"help", "menu", "what can you do"}, IntentHelp},
	{[]string{"tax"}, IntentTax},
	{[]string{"emi"}, IntentEMI},
	{[]string{"retire"}, IntentRetirement},
	{[]string{"emergency"}, IntentEmergency},
	{[]string{"allocate", "allocation"}, IntentAllocate},
	{[]string{"sip", "s.i.p"}, IntentSIP},
	{[]string{"goal"}, IntentGoal},
	{[]string{"profile"}, IntentProfile},
}

// commands maps an exact first word to an intent
var commands = map[string]Intent{
	"help":       IntentHelp,
	"profile":    IntentProfile,
	"emergency":  IntentEmergency,
	"sip":        IntentSIP,
	"goal":       IntentGoal,
	"emi":        IntentEMI,
	"retirement": IntentRetirement,
	"allocate":   IntentAllocate,
	"tax":        IntentTax,
}

// MatchIntent routes free text by keyword containment, then by first word.
// It returns IntentNone when nothing matches.
func MatchIntent(text string) Intent {
	t := strings.ToLower(text)
	for _, route := range keywordRoutes {
		for _, k := range route.keywords {
			if strings.Contains(t, k) {
				return route.intent
			}
		}
	}

	fields := strings.Fields(t)
	if len(fields) > 0 {
		if intent, ok := commands[fields[0]]; ok {
			return intent
		}
	}
	return IntentNone
}

// IsQuit reports whether the line ends the session
func IsQuit(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "quit", "exit", "q":
		return true
	}
	return false
}
