package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchIntent(t *testing.T) {
	tests := map[string]Intent{
		"help":                              IntentHelp,
		"show me the MENU":                  IntentHelp,
		"what can you do?":                  IntentHelp,
		"tax for 18 lakh new regime":        IntentTax,
		"sip to save tax":                   IntentTax,
		"what is my EMI":                    IntentEMI,
		"when can I retire":                 IntentRetirement,
		"retirement":                        IntentRetirement,
		"emergency fund":                    IntentEmergency,
		"suggest an allocation":             IntentAllocate,
		"allocate":                          IntentAllocate,
		"need 50L in 15 yrs, how much SIP?": IntentSIP,
		"s.i.p please":                      IntentSIP,
		"plan a goal":                       IntentGoal,
		"update my profile":                 IntentProfile,
		"hello there":                       IntentNone,
		"":                                  IntentNone,
	}
	for in, want := range tests {
		assert.Equal(t, want, MatchIntent(in), "input %q", in)
	}
}

func TestIsQuit(t *testing.T) {
	for _, in := range []string{"quit", "EXIT", " q "} {
		assert.True(t, IsQuit(in), in)
	}
	for _, in := range []string{"quiet", "", "exit now"} {
		assert.False(t, IsQuit(in), in)
	}
}
