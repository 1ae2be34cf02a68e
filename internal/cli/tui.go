package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/dragtodo/internal/app"
)

// runTUI opens the task list and runs the interactive board until the
// user quits or ctx is cancelled.
func runTUI(ctx context.Context, o *options) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere.
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "dragtodo")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer func() { _ = f.Close() }()
	} else {
		log.SetOutput(io.Discard)
	}

	s, err := o.open(ctx, log.Default())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	root := app.New(s.list, app.Options{
		Theme:       cfg.Display.Theme,
		GridColumns: cfg.Display.GridColumns,
		Flash:       time.Duration(cfg.Display.FlashMillis) * time.Millisecond,
	})

	p := tea.NewProgram(root,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
