package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/pfgo/internal/tui/scenes"
	"github.com/rgehrsitz/pfgo/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Standard tea.Msg types
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.homeModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		if m.formModel != nil {
			m.formModel.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	// Custom messages
	case NavigateMsg:
		m.navigate(msg.Scene)
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case ProfileLoadedMsg:
		m.loading = false
		m.profile = msg.Profile
		m.homeModel.SetProfile(msg.Profile)
		if msg.Err != nil {
			m.warning = "using default profile: " + msg.Err.Error()
		}
		return m, nil

	case tuimsg.CalculatorSelectedMsg:
		calc, ok := findCalculator(msg.ID)
		if !ok {
			m.err = fmt.Errorf("unknown calculator %q", msg.ID)
			return m, nil
		}
		m.selected = calc
		m.formModel = scenes.NewFormModel(calc.ID, calc.Title, calc.Fields(m.env()))
		m.formModel.SetSize(m.width, m.height)
		m.navigate(SceneForm)
		return m, nil

	case tuimsg.FormSubmittedMsg:
		calc, ok := findCalculator(msg.ID)
		if !ok {
			m.err = fmt.Errorf("unknown calculator %q", msg.ID)
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Calculating " + calc.Title + "..."
		return m, runCalculatorCmd(calc, m.env(), msg.Values)

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		return m.showOutcome(msg.Outcome), nil
	}

	// Delegate to scene-specific update handlers
	return m.updateCurrentScene(msg)
}

// showOutcome records a finished calculation and switches to its scene
func (m Model) showOutcome(out Outcome) Model {
	var result any
	if out.Comparison != nil {
		result = out.Comparison
		m.compareModel.SetComparison(out.Comparison)
		m.navigate(SceneCompare)
	} else {
		result = out.Report.Result
		m.resultsModel.SetReport(out.Report)
		m.navigate(SceneResults)
	}
	if m.OnResult != nil {
		m.OnResult(out.Kind, out.Summary, out.Input, result)
	}
	return m
}

func (m *Model) navigate(s Scene) {
	if s == m.currentScene {
		return
	}
	m.previousScene = m.currentScene
	m.currentScene = s
}

// parentScene is where esc leads from the current scene
func (m Model) parentScene() Scene {
	switch m.currentScene {
	case SceneResults, SceneCompare:
		if m.formModel != nil {
			return SceneForm
		}
	case SceneHelp:
		if m.previousScene != SceneHelp {
			return m.previousScene
		}
	}
	return SceneHome
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}
	if m.loading {
		return m, nil
	}

	// Forms take every other key so values can contain letters
	if m.currentScene == SceneForm {
		if msg.String() == "esc" {
			m.navigate(SceneHome)
			return m, nil
		}
		return m.updateCurrentScene(msg)
	}

	// Global keyboard shortcuts
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?":
		m.navigate(SceneHelp)
		return m, nil

	case "esc":
		if m.currentScene != SceneHome {
			m.navigate(m.parentScene())
		}
		return m, nil

	case "h":
		m.navigate(SceneHome)
		return m, nil
	}

	// Let the current scene handle other keys
	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneForm:
		if m.formModel != nil {
			m.formModel, cmd = m.formModel.Update(msg)
		}
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
