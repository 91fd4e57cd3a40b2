// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce coalesces the event bursts editors produce on save.
const defaultDebounce = 500 * time.Millisecond

// Watcher watches the YAML config file and reloads it on change.
//
// # Description
//
// Detects writes to the config file (including the rename-and-replace
// save pattern of most editors) and invokes the callback with the freshly
// merged configuration. Reload failures are logged and the previous
// configuration stays in effect.
//
// # Thread Safety
//
// Safe for concurrent use. Start should only be called once.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(Config)
}

// NewWatcher creates a watcher for the config file at path.
//
// # Description
//
// Creates a watcher that monitors the config file and invokes onChange
// with the reloaded configuration when the file is rewritten. The
// callback runs on the watcher goroutine; keep it short.
//
// # Inputs
//
//   - path: Path to the YAML config file.
//   - onChange: Callback invoked with each successfully reloaded Config.
//
// # Outputs
//
//   - *Watcher: Ready-to-start watcher.
//   - error: Non-nil if watcher creation fails.
func NewWatcher(path string, onChange func(Config)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:     filepath.Clean(path),
		watcher:  watcher,
		debounce: defaultDebounce,
		onChange: onChange,
	}, nil
}

// Start begins watching for config file changes.
//
// # Description
//
// Watches the directory containing the config file so the watch survives
// rename-and-replace saves. Blocks until the context is cancelled. Should
// be run in a goroutine.
//
// # Inputs
//
//   - ctx: Context for cancellation.
//
// # Example
//
//	watcher, _ := config.NewWatcher(path, func(cfg config.Config) {
//	    logging.SetLevel(cfg.LogLevel)
//	})
//	go watcher.Start(ctx)
func (w *Watcher) Start(ctx context.Context) {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		slog.Warn("Failed to watch config directory",
			"dir", dir,
			"error", err)
		return
	}

	slog.Debug("Started watching config file",
		"path", w.path)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.isConfigEvent(event) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Config watcher error",
				"error", err)

		case <-ctx.Done():
			slog.Debug("Config watcher stopping")
			return
		}
	}
}

// isConfigEvent reports whether the event is a content change to the
// watched config file.
func (w *Watcher) isConfigEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// reload re-reads the config file and hands the result to the callback.
func (w *Watcher) reload() {
	cfg, err := LoadFrom(w.path)
	if err != nil {
		slog.Warn("Config reload failed, keeping previous configuration",
			"path", w.path,
			"error", err)
		return
	}

	slog.Info("Config file changed, reloaded",
		"path", w.path,
		"log_level", cfg.LogLevel)

	if w.onChange != nil {
		w.onChange(cfg)
	}
}

// Stop stops the watcher.
//
// # Description
//
// Stops watching and releases resources. Safe to call multiple times.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
