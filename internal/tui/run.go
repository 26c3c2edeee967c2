package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/classconnect-grupo3/classconnect-cli/internal/api"
	"github.com/classconnect-grupo3/classconnect-cli/internal/courses"
)

// Run starts the interactive course browser and blocks until the user quits
func Run(ctx context.Context, client *api.Client, cache *courses.Cache, debounce time.Duration) error {
	program := tea.NewProgram(
		NewModel(ctx, client, cache, debounce),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}
