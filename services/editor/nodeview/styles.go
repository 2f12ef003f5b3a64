// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package nodeview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fluxgraph/fluxgraph/pkg/theme"
	"github.com/fluxgraph/fluxgraph/services/editor/model"
)

// Pin glyphs. The hollow glyph marks an inert pin.
const (
	pinGlyph         = "●"
	pinGlyphReadOnly = "○"
	chunkGlyph       = "▪"
)

// statusGlyph is the header marker for the global execution status.
func statusGlyph(s model.Status) string {
	switch s {
	case model.StatusSubmitted:
		return "◌ "
	case model.StatusRunning:
		return "◉ "
	case model.StatusDone:
		return "✓ "
	case model.StatusError:
		return "✗ "
	default:
		return ""
	}
}

// statusColor maps a status to its theme color.
func statusColor(th theme.Theme, s model.Status) lipgloss.Color {
	switch s {
	case model.StatusSubmitted:
		return lipgloss.Color(th.StatusSubmitted)
	case model.StatusRunning:
		return lipgloss.Color(th.StatusRunning)
	case model.StatusDone:
		return lipgloss.Color(th.StatusDone)
	case model.StatusError:
		return lipgloss.Color(th.StatusError)
	default:
		return lipgloss.Color(th.Text)
	}
}

func pinStyle(th theme.Theme, readOnly bool) lipgloss.Style {
	if readOnly {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(th.PinDisabled))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(th.Pin))
}

func badgeStyle(th theme.Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(th.Badge))
}
