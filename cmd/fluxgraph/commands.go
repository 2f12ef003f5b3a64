// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fluxgraph/fluxgraph/pkg/logging"
	"github.com/fluxgraph/fluxgraph/pkg/theme"
)

// --- Global Command Variables ---
var (
	themePath  string
	logDir     string
	logLevel   string
	jsonLogs   bool
	demoGraph  string
	watchTheme bool

	rootCmd = &cobra.Command{
		Use:   "fluxgraph",
		Short: "A terminal editor for dataflow graphs",
		Long: `FluxGraph renders a dataflow graph as draggable node boxes in the
terminal. Nodes expose their file attributes as connection pins and
reflect lock, status, and compatibility state live.`,
	}

	editCmd = &cobra.Command{
		Use:   "edit",
		Short: "Open the graph editor",
		Run:   runEdit, // Defined in cmd_edit.go
	}

	themeCmd = &cobra.Command{
		Use:   "theme",
		Short: "Manage the color theme",
	}

	themeInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the default theme to the theme file",
		RunE:  runThemeInit,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&themePath, "theme", "fluxgraph_theme.yaml", "Path to the theme file")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Directory for the log file (empty disables file logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit JSON logs on stderr")

	editCmd.Flags().StringVar(&demoGraph, "graph", "", "Demo graph to open (pipeline, compat)")
	editCmd.Flags().BoolVar(&watchTheme, "watch-theme", false, "Reload the theme file when it changes")

	themeCmd.AddCommand(themeInitCmd)
	rootCmd.AddCommand(editCmd, themeCmd)
}

func newLogger() *logging.Logger {
	return logging.New(logging.Config{
		Level:   logging.ParseLevel(logLevel),
		LogDir:  logDir,
		Service: "fluxgraph",
		JSON:    jsonLogs,
	})
}

func runThemeInit(cmd *cobra.Command, args []string) error {
	if err := theme.Save(theme.Default(), themePath); err != nil {
		return fmt.Errorf("writing theme: %w", err)
	}
	cmd.Printf("wrote %s\n", themePath)
	return nil
}
