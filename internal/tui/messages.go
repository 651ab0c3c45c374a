package tui

import (
	"github.com/rgehrsitz/pfgo/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneForm
	SceneResults
	SceneCompare
	SceneHelp
)

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// QuitMsg signals the application should exit
type QuitMsg struct{}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ProfileLoadedMsg carries the stored profile. Err is set when the file was
// unreadable; Profile then holds defaults.
type ProfileLoadedMsg struct {
	Profile domain.UserProfile
	Err     error
}

// CalculationCompleteMsg signals a calculator has finished
type CalculationCompleteMsg struct {
	Calculator string
	Outcome    Outcome
	Err        error
}
