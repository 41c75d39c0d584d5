package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"intelhub/config"
	"intelhub/types"
)

// State represents the application state machine
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateDigesting State = "digesting"
	StateComplete  State = "complete"
	StateError     State = "error"
)

// Param identifies one adjustable run parameter.
type Param int

const (
	ParamMaxPerSource Param = iota
	ParamMaxTotal
	ParamMinScore
	ParamWindowHours
	paramCount
)

// RunParams holds the adjustable knobs sent with a run trigger.
type RunParams struct {
	MaxPerSource int
	MaxTotal     int
	MinScore     int
	WindowHours  int
	WithDigests  bool
}

// Model represents the TUI client state (thin client of the HTTP API)
type Model struct {
	Client *PipelineClient

	State    State
	Params   RunParams
	Selected Param

	LastRun     *types.RunRecord
	LastDigests int
	Err         error
	Logs        []string

	Connected bool
}

// NewModel creates a new TUI model with default run parameters.
func NewModel(baseURL, runToken string) Model {
	return Model{
		Client: NewPipelineClient(baseURL, runToken),
		State:  StateIdle,
		Params: RunParams{
			MaxPerSource: config.DefaultMaxPerSource,
			MaxTotal:     config.DefaultMaxTotal,
			MinScore:     config.DefaultMinScore,
			WindowHours:  config.DefaultWindowHours,
			WithDigests:  true,
		},
		Logs: make([]string, 0),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return checkHealth(m.Client)
}

func (m *Model) addLog(msg string) {
	m.Logs = append(m.Logs, fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg))
	if len(m.Logs) > 10 {
		m.Logs = m.Logs[len(m.Logs)-10:]
	}
}
