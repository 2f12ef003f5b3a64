// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fluxgraph/fluxgraph/pkg/logging"
	"github.com/fluxgraph/fluxgraph/pkg/theme"
)

// themeDebounce batches rapid editor save events into one reload.
const themeDebounce = 200 * time.Millisecond

// watchThemeFile reloads the theme whenever the file changes and hands
// the result to onReload. Editors often replace files by rename, so the
// watch is on the parent directory rather than the file itself. Returns
// when the context is cancelled.
func watchThemeFile(ctx context.Context, path string, log *logging.Logger, onReload func(theme.Theme)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(path)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(themeDebounce)
			} else {
				timer.Reset(themeDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			t, err := theme.Load(path)
			if err != nil {
				log.Warn("theme reload skipped", "path", path, "error", err)
				continue
			}
			log.Info("theme reloaded", "path", path)
			onReload(t)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("theme watcher error", "error", err)
		}
	}
}
