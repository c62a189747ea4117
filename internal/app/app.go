package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mindmap-tui/internal/backend"
	"github.com/atomicstack/mindmap-tui/internal/logging"
	"github.com/atomicstack/mindmap-tui/internal/store"
	"github.com/atomicstack/mindmap-tui/internal/tree"
	"github.com/atomicstack/mindmap-tui/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	StoreKind  store.Kind
	StorePath  string
	Key        string
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Watch      bool
	Debounce   time.Duration
	ExportPath string
}

// Session is an opened store with a loaded engine and, when enabled, a
// watcher on the store's backing file.
type Session struct {
	Store   store.Store
	Engine  *tree.Engine
	Watcher *backend.Watcher
}

// Open prepares everything the program needs without starting the UI.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	st, err := store.Open(cfg.StoreKind, cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	opts := []tree.Option{tree.WithStore(st)}
	if cfg.Key != "" {
		opts = append(opts, tree.WithKey(cfg.Key))
	}
	engine := tree.New(opts...)
	engine.Load(ctx)

	s := &Session{Store: st, Engine: engine}
	if cfg.Watch {
		if path := WatchPath(st, engine.Key()); path != "" {
			w, err := backend.NewWatcher(path, cfg.Debounce)
			if err != nil {
				// the editor still works without live reload
				logging.Error(fmt.Errorf("start watcher: %w", err))
			} else {
				s.Watcher = w
			}
		}
	}
	return s, nil
}

// Close stops the watcher and releases the store.
func (s *Session) Close() error {
	if s.Watcher != nil {
		s.Watcher.Stop()
		s.Watcher.Wait()
	}
	return s.Store.Close()
}

// WatchPath returns the file backing key in st, or "" when the store has
// nothing on disk to watch.
func WatchPath(st store.Store, key string) string {
	switch s := st.(type) {
	case *store.File:
		return s.Path(key)
	case *store.SQLite:
		return s.Path()
	default:
		return ""
	}
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	ctx := context.Background()
	session, err := Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			logging.Error(fmt.Errorf("close store: %w", cerr))
		}
	}()

	model := ui.NewModel(ui.Options{
		Engine:     session.Engine,
		Watcher:    session.Watcher,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		ExportPath: cfg.ExportPath,
		Context:    ctx,
	})
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
