package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Reiker1894/isekai-system/internal/engine"
)

// CommitFunc persists the service's document after a dashboard action.
type CommitFunc func(ctx context.Context) error

func RunBoard(ctx context.Context, svc *engine.Service, commit CommitFunc, out io.Writer) error {
	m := newBoardModel(ctx, svc, commit)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
