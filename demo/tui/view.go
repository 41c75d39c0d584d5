package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("📰 Intelligence Hub Pipeline Demo"))
	b.WriteString("\n\n")

	b.WriteString(m.stateText())
	b.WriteString("\n\n")

	b.WriteString(m.paramsView())
	b.WriteString("\n")

	if m.LastRun != nil {
		b.WriteString(BoxStyle.Render(m.runSummary()))
		b.WriteString("\n\n")
	}

	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		for _, logMsg := range m.Logs {
			b.WriteString(InfoStyle.Render("   " + logMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(InfoStyle.Render("↑/↓ select | ←/→ adjust | t toggle digests | r run | g digests only | c recheck | q quit"))
	return b.String()
}

func (m Model) stateText() string {
	if !m.Connected {
		return ErrorStyle.Render("❌ Not connected to API server") + "\n" +
			InfoStyle.Render("Press 'c' to retry")
	}

	switch m.State {
	case StateIdle:
		return HighlightStyle.Render("👋 Ready!") + "\n\n" +
			InfoStyle.Render("Press 'r' to run the pipeline")
	case StateRunning:
		return StatusStyle.Render("⏳ Running pipeline (fetch, analyze, store)...")
	case StateDigesting:
		return StatusStyle.Render("📋 Composing digests...")
	case StateComplete:
		return HighlightStyle.Render("✅ COMPLETE")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("❌ Error: %s", errMsg))
	default:
		return ""
	}
}

func (m Model) paramsView() string {
	digests := "off"
	if m.Params.WithDigests {
		digests = "on"
	}

	rows := []struct {
		param Param
		label string
	}{
		{ParamMaxPerSource, fmt.Sprintf("Max per source:  %d", m.Params.MaxPerSource)},
		{ParamMaxTotal, fmt.Sprintf("Max total:       %d", m.Params.MaxTotal)},
		{ParamMinScore, fmt.Sprintf("Min score:       %d", m.Params.MinScore)},
		{ParamWindowHours, fmt.Sprintf("Digest window:   %dh (digests %s)", m.Params.WindowHours, digests)},
	}

	var b strings.Builder
	b.WriteString(InfoStyle.Render("⚙️  Run parameters:"))
	b.WriteString("\n")
	for _, row := range rows {
		line := "   " + row.label
		if row.param == m.Selected {
			b.WriteString(SelectedStyle.Render(" ▸ " + row.label))
		} else {
			b.WriteString(InfoStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) runSummary() string {
	run := m.LastRun
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Run Summary"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Run ID:   %s\n", run.ID))
	b.WriteString(fmt.Sprintf("Status:   %s\n", StatusStyle.Render(string(run.Status))))
	b.WriteString(fmt.Sprintf("Sources:  %d\n", run.Sources))
	b.WriteString(fmt.Sprintf("Analyzed: %d | Added: %d | Skipped: %d | Errors: %d\n",
		run.Analyzed, run.Added, run.SkippedExisting, run.Errors))
	if m.LastDigests > 0 {
		b.WriteString(fmt.Sprintf("Digests:  %d\n", m.LastDigests))
	}
	if len(run.SampleErrors) > 0 {
		b.WriteString("\nSample errors:\n")
		for _, e := range run.SampleErrors {
			b.WriteString(ErrorStyle.Render("  " + e))
			b.WriteString("\n")
		}
	}
	return b.String()
}
