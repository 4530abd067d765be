package tui

import (
	"context"

	"employee-directory/internal/app"
	"employee-directory/internal/directory"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the directory screen until the user quits or ctx is done.
func Run(ctx context.Context, dir *app.Directory, opts ...tea.ProgramOption) error {
	m := New(ctx, dir)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)

	unsubscribe := dir.Store().Subscribe(func(st directory.State) {
		p.Send(StateMsg(st))
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}
