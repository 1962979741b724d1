package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"codeberg.org/snonux/poplingo/internal/audio"
	"codeberg.org/snonux/poplingo/internal/content"
	"codeberg.org/snonux/poplingo/internal/notebook"
	"codeberg.org/snonux/poplingo/internal/processor"
)

// App holds the shared state of one command invocation
type App struct {
	Flags *Flags
	In    io.Reader
	Out   io.Writer
	Err   io.Writer

	Logger *slog.Logger

	// NewProvider builds the content provider chain
	NewProvider func(ctx context.Context, config *content.Config, logger *slog.Logger) (content.Provider, error)
	// NewSink builds the audio output for the configured player
	NewSink func(player string) audio.Sink

	store   *notebook.Store
	slot    notebook.Slot
	proc    *processor.Processor
	closers []io.Closer
}

// NewApp creates an app using the real providers and audio output
func NewApp(flags *Flags) *App {
	return &App{
		Flags:       flags,
		In:          os.Stdin,
		Out:         os.Stdout,
		Err:         os.Stderr,
		Logger:      slog.Default(),
		NewProvider: content.NewProvider,
		NewSink: func(player string) audio.Sink {
			return audio.NewCommandSink(player)
		},
	}
}

// Store opens the configured notebook backend once
func (a *App) Store() (*notebook.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	slot, err := a.openSlot()
	if err != nil {
		return nil, err
	}
	a.slot = slot
	a.store = notebook.Open(slot, a.Logger)
	return a.store, nil
}

// Slot returns the storage slot behind the notebook
func (a *App) Slot() (notebook.Slot, error) {
	if _, err := a.Store(); err != nil {
		return nil, err
	}
	return a.slot, nil
}

func (a *App) openSlot() (notebook.Slot, error) {
	path := viper.GetString("notebook.path")
	name := viper.GetString("notebook.slot")
	if name == "" {
		name = notebook.DefaultSlotName
	}

	switch backend := viper.GetString("notebook.backend"); backend {
	case "file", "":
		if path == "" {
			path = notebook.DefaultNotebookPath()
		}
		return notebook.NewFileSlot(path), nil
	case "sqlite":
		if path == "" {
			path = filepath.Join(filepath.Dir(notebook.DefaultNotebookPath()), "notebook.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create notebook directory: %w", err)
		}
		slot, err := notebook.OpenSQLiteSlot(path, name)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, slot)
		return slot, nil
	case "memory":
		return notebook.NewMemorySlot(nil), nil
	default:
		return nil, fmt.Errorf("unknown notebook backend: %s", backend)
	}
}

// Client builds the content client from configuration
func (a *App) Client(ctx context.Context) (*content.Client, error) {
	cfg := ContentConfig()
	provider, err := a.NewProvider(ctx, cfg, a.Logger)
	if err != nil {
		return nil, err
	}
	return content.NewClient(provider, a.Logger,
		content.WithFallbackImageURL(cfg.FallbackImageURL),
		content.WithMaxStoryWords(cfg.MaxStoryWords),
	), nil
}

// Processor wires client, notebook and speaker into a processor once
func (a *App) Processor(ctx context.Context) (*processor.Processor, error) {
	if a.proc != nil {
		return a.proc, nil
	}

	settings, err := Settings()
	if err != nil {
		return nil, err
	}

	client, err := a.Client(ctx)
	if err != nil {
		return nil, err
	}

	store, err := a.Store()
	if err != nil {
		return nil, err
	}

	notifier := audio.NotifierFunc(func(msg string) {
		fmt.Fprintln(a.Err, msg)
	})
	player := audio.NewPlayer(a.NewSink(viper.GetString("audio.player")))
	speaker := audio.NewSpeaker(client, player, notifier, a.Logger)

	a.proc = processor.NewProcessor(client, store, processor.Options{
		Settings:  settings,
		SkipImage: a.Flags.SkipImage,
		Speaker:   speaker,
		Logger:    a.Logger,
		Out:       a.Out,
	})
	return a.proc, nil
}

// Close releases backends opened by the app
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
