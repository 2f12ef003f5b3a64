// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fluxgraph/fluxgraph/pkg/theme"
	"github.com/fluxgraph/fluxgraph/services/editor/canvas"
)

// runEdit opens the editor. With no --graph flag on a terminal, a short
// form asks which demo graph to load and whether to watch the theme file.
func runEdit(cmd *cobra.Command, args []string) {
	log := newLogger()
	defer log.Close()

	th, err := theme.Load(themePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "theme %s: %v\n", themePath, err)
		os.Exit(1)
	}

	graphName := demoGraph
	watch := watchTheme
	if graphName == "" {
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			graphName = demoGraphNames()[0]
			form := huh.NewForm(huh.NewGroup(
				huh.NewSelect[string]().
					Title("Demo graph").
					Options(huh.NewOptions(demoGraphNames()...)...).
					Value(&graphName),
				huh.NewConfirm().
					Title("Reload the theme file when it changes?").
					Value(&watch),
			))
			if err := form.Run(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		} else {
			graphName = demoGraphNames()[0]
		}
	}

	m := canvas.New(th, log)
	if err := buildDemoGraph(m, graphName); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Info("editor started", "graph", graphName, "theme", themePath)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if watch {
		g.Go(func() error {
			return watchThemeFile(gctx, themePath, log, func(t theme.Theme) {
				p.Send(canvas.ThemeReloadedMsg{Theme: t})
			})
		})
	}
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		return err
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("editor exited", "error", err)
		os.Exit(1)
	}
}
