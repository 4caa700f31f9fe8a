package commands

import (
	"github.com/akasprzok/cubeplot/internal/dashboard"
	"github.com/akasprzok/cubeplot/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// TUICmd is the Kong command for the interactive TUI mode.
type TUICmd struct {
	ComparisonFactor float64 `name:"comparison-factor" help:"Multiplier deriving the comparison series from the current one." default:"0.9"`
}

// Run starts the interactive TUI. Logging is off while the TUI owns the screen;
// load failures show in the status bar instead.
func (t *TUICmd) Run(ctx *Context) error {
	ctx.Logger = zerolog.Nop()
	composer, err := ctx.Composer(dashboard.WithComparisonFactor(t.ComparisonFactor))
	if err != nil {
		return err
	}

	model := tui.NewModel(composer, ctx.Timeout)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
