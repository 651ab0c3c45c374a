package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/rgehrsitz/pfgo/internal/config"
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/rgehrsitz/pfgo/internal/tui/scenes"
)

// ProfileStore loads the user profile shown on the home scene and used for
// form defaults
type ProfileStore interface {
	Load() (domain.UserProfile, error)
}

// ResultFunc is called with every successful calculation
type ResultFunc func(kind, summary string, input, result any)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Engine and inputs
	engine      *calculation.CalculationEngine
	assumptions config.AssumptionsConfig
	store       ProfileStore
	profile     domain.UserProfile
	warning     string

	// Current selection
	selected Calculator

	// OnResult, when set, receives every successful calculation
	OnResult ResultFunc

	// Scene-specific models
	homeModel    *scenes.HomeModel
	formModel    *scenes.FormModel
	resultsModel *scenes.ResultsModel
	compareModel *scenes.CompareModel

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(engine *calculation.CalculationEngine, settings config.Settings, store ProfileStore) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return Model{
		currentScene:   SceneHome,
		engine:         engine,
		assumptions:    settings.Assumptions,
		store:          store,
		homeModel:      scenes.NewHomeModel(menuItems()),
		resultsModel:   scenes.NewResultsModel(),
		compareModel:   scenes.NewCompareModel(),
		width:          80,
		height:         24,
		loading:        store != nil,
		loadingMessage: "Loading profile...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.store == nil {
		return nil
	}
	return loadProfileCmd(m.store)
}

// loadProfileCmd returns a command that reads the stored profile
func loadProfileCmd(store ProfileStore) tea.Cmd {
	return func() tea.Msg {
		p, err := store.Load()
		return ProfileLoadedMsg{Profile: p, Err: err}
	}
}

// runCalculatorCmd returns a command that runs a calculator off the UI loop
func runCalculatorCmd(calc Calculator, env calcEnv, values map[string]string) tea.Cmd {
	return func() tea.Msg {
		out, err := calc.Run(context.Background(), env, formValues(values))
		return CalculationCompleteMsg{Calculator: calc.ID, Outcome: out, Err: err}
	}
}

func (m Model) env() calcEnv {
	return calcEnv{engine: m.engine, assumptions: m.assumptions, profile: m.profile}
}

// CurrentScene returns the scene on display
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// Err returns the error on display, if any
func (m Model) Err() error {
	return m.err
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneForm:
		return "Form"
	case SceneResults:
		return "Results"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
