package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/textlens/internal/coordinator"
	"github.com/yildizm/textlens/internal/dashboard"
)

// analysisDoneMsg carries a finished job back to the update loop
type analysisDoneMsg struct {
	completion coordinator.Completion
}

// runJobCommand performs the remote call off the update loop
func runJobCommand(ctx context.Context, job *dashboard.Job) tea.Cmd {
	return func() tea.Msg {
		return analysisDoneMsg{completion: job.Run(ctx)}
	}
}
