// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package nodeview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the node box. Every line has the same printable width so
// the canvas can overlay boxes row by row.
func (v *NodeView) View() string {
	vs := v.Visual()
	w := v.contentWidth()

	lines := []string{v.renderHeader(vs, w)}
	if v.chunkRows() > 0 {
		lines = append(lines, v.renderChunkStrip(w))
	}
	lines = append(lines, v.renderPinRows(w)...)
	if vs.Badge != nil {
		lines = append(lines, v.renderBadge(vs.Badge, w))
	}

	border := lipgloss.HiddenBorder()
	if vs.BorderVisible {
		border = lipgloss.NormalBorder()
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(vs.BorderColor).
		Render(strings.Join(lines, "\n"))
}

// =============================================================================
// Header
// =============================================================================

func (v *NodeView) renderHeader(vs VisualState, w int) string {
	title := statusGlyph(v.node.Status()) + v.node.Title()

	var tags []string
	if vs.ShowComputedElsewhere {
		tags = append(tags, "[shared]")
	}
	if vs.ShowComputedExternally {
		tags = append(tags, "[ext]")
	}
	if vs.ShowLock {
		tags = append(tags, "[lock]")
	}
	tagText := strings.Join(tags, " ")

	room := w - lipgloss.Width(tagText)
	if len(tags) > 0 {
		room-- // separating space
	}
	title = truncate(title, room)

	pad := w - lipgloss.Width(title) - lipgloss.Width(tagText)
	if pad < 1 && len(tags) > 0 {
		pad = 1
	}
	line := title + strings.Repeat(" ", max(pad, 0)) + tagText

	return lipgloss.NewStyle().
		Background(vs.HeaderBackground).
		Foreground(vs.HeaderForeground).
		Width(w).
		Render(truncate(line, w))
}

// =============================================================================
// Chunk strip
// =============================================================================

// renderChunkStrip shows one glyph per execution chunk, colored by the
// chunk's own status.
func (v *NodeView) renderChunkStrip(w int) string {
	var b strings.Builder
	width := 0
	for _, c := range v.node.Chunks() {
		if width+2 > w {
			break
		}
		b.WriteString(lipgloss.NewStyle().
			Foreground(statusColor(v.th, c.Status)).
			Render(chunkGlyph))
		b.WriteString(" ")
		width += 2
	}
	return b.String() + strings.Repeat(" ", w-width)
}

// =============================================================================
// Pins
// =============================================================================

func (v *NodeView) renderPinRows(w int) []string {
	ins := flattenPins(v.pins.Inputs())
	outs := flattenPins(v.pins.Outputs())

	rows := v.pinRows()
	lines := make([]string, 0, rows)
	for i := 0; i < rows; i++ {
		var left, right string
		var leftW, rightW int

		if i < len(ins) {
			p := ins[i]
			text := pinGlyph
			if p.ReadOnly() {
				text = pinGlyphReadOnly
			}
			label := truncate(pinLabel(p), w/2-2)
			left = pinStyle(v.th, p.ReadOnly()).Render(text) + " " + label
			leftW = 2 + lipgloss.Width(label)
		}
		if i < len(outs) {
			p := outs[i]
			text := pinGlyph
			if p.ReadOnly() {
				text = pinGlyphReadOnly
			}
			label := truncate(pinLabel(p), w/2-2)
			right = label + " " + pinStyle(v.th, p.ReadOnly()).Render(text)
			rightW = 2 + lipgloss.Width(label)
		}

		gap := w - leftW - rightW
		if gap < 0 {
			gap = 0
		}
		lines = append(lines, left+strings.Repeat(" ", gap)+right)
	}
	return lines
}

// =============================================================================
// Compatibility badge
// =============================================================================

func (v *NodeView) renderBadge(b *BadgeState, w int) string {
	text := "⚠ " + b.Details
	if b.CanUpgrade {
		text += " (upgradable)"
	}
	text = truncate(text, w)
	pad := w - lipgloss.Width(text)
	return badgeStyle(v.th).Render(text) + strings.Repeat(" ", max(pad, 0))
}

// =============================================================================
// Helpers
// =============================================================================

// truncate cuts a string to the given printable width. The cut
// accumulates per-rune display width, so double-width runes never push
// the result past the target.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}

	var b strings.Builder
	width := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if width+rw > w-1 {
			break
		}
		b.WriteRune(r)
		width += rw
	}
	return b.String() + "…"
}
