package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Tea commands

func checkHealth(client *PipelineClient) tea.Cmd {
	return func() tea.Msg {
		return healthMsg{ok: client.Health()}
	}
}

func runPipeline(client *PipelineClient, params RunParams) tea.Cmd {
	return func() tea.Msg {
		rec, err := client.RunPipeline(params)
		return runCompleteMsg{run: rec, err: err}
	}
}

func generateDigests(client *PipelineClient, params RunParams) tea.Cmd {
	return func() tea.Msg {
		n, err := client.GenerateDigests(params)
		return digestsCompleteMsg{digests: n, err: err}
	}
}
