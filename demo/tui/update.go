package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case healthMsg:
		m.Connected = msg.ok
		if msg.ok {
			m.addLog("Connected to API server")
		} else {
			m.addLog("API server unreachable")
		}
		return m, nil

	case runCompleteMsg:
		if msg.err != nil {
			m.State = StateError
			m.Err = msg.err
			m.addLog(fmt.Sprintf("Run failed: %v", msg.err))
			return m, nil
		}
		m.LastRun = &msg.run
		m.LastDigests = msg.run.Digests
		m.State = StateComplete
		m.addLog(fmt.Sprintf("Run %s: analyzed=%d added=%d skipped=%d errors=%d",
			msg.run.ID, msg.run.Analyzed, msg.run.Added, msg.run.SkippedExisting, msg.run.Errors))
		return m, nil

	case digestsCompleteMsg:
		if msg.err != nil {
			m.State = StateError
			m.Err = msg.err
			m.addLog(fmt.Sprintf("Digest pass failed: %v", msg.err))
			return m, nil
		}
		m.LastDigests = msg.digests
		m.State = StateComplete
		m.addLog(fmt.Sprintf("Generated %d digests", msg.digests))
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < paramCount-1 {
			m.Selected++
		}
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)

	case "t":
		m.Params.WithDigests = !m.Params.WithDigests

	case "r", "R":
		if m.State != StateRunning && m.State != StateDigesting {
			m.State = StateRunning
			m.Err = nil
			m.addLog("Pipeline run started...")
			return m, runPipeline(m.Client, m.Params)
		}

	case "g", "G":
		if m.State != StateRunning && m.State != StateDigesting {
			m.State = StateDigesting
			m.Err = nil
			m.addLog("Digest pass started...")
			return m, generateDigests(m.Client, m.Params)
		}

	case "c":
		return m, checkHealth(m.Client)
	}

	return m, nil
}

// adjust moves the selected parameter by one step, clamped to sane bounds.
func (m *Model) adjust(delta int) {
	switch m.Selected {
	case ParamMaxPerSource:
		m.Params.MaxPerSource = clamp(m.Params.MaxPerSource+delta, 1, 50)
	case ParamMaxTotal:
		m.Params.MaxTotal = clamp(m.Params.MaxTotal+delta*5, 5, 500)
	case ParamMinScore:
		m.Params.MinScore = clamp(m.Params.MinScore+delta*5, 0, 100)
	case ParamWindowHours:
		m.Params.WindowHours = clamp(m.Params.WindowHours+delta*12, 12, 168)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
