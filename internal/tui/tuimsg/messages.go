// Package tuimsg holds the messages scenes send back to the root model. It
// sits apart from package tui so scenes can emit them without an import cycle.
package tuimsg

// CalculatorSelectedMsg signals a calculator has been picked on the home scene
type CalculatorSelectedMsg struct {
	ID string
}

// FormSubmittedMsg carries the raw field values of a submitted form, keyed by
// field key
type FormSubmittedMsg struct {
	ID     string
	Values map[string]string
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
