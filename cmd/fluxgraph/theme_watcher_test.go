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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxgraph/fluxgraph/pkg/logging"
	"github.com/fluxgraph/fluxgraph/pkg/theme"
)

func TestWatchThemeFile_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, theme.Save(theme.Default(), path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan theme.Theme, 1)
	done := make(chan error, 1)
	go func() {
		done <- watchThemeFile(ctx, path, logging.New(logging.Config{Quiet: true}), func(th theme.Theme) {
			select {
			case reloaded <- th:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)

	changed := theme.Default()
	changed.Accent = "#FF0000"
	require.NoError(t, theme.Save(changed, path))

	select {
	case th := <-reloaded:
		assert.Equal(t, "#FF0000", th.Accent)
	case <-time.After(5 * time.Second):
		t.Fatal("theme reload not observed")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestWatchThemeFile_BadDirectory(t *testing.T) {
	err := watchThemeFile(context.Background(), "/nonexistent/dir/theme.yaml",
		logging.New(logging.Config{Quiet: true}), func(theme.Theme) {})
	assert.Error(t, err)
}
