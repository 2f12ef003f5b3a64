// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/fluxgraph/fluxgraph/services/editor/model"
	"github.com/fluxgraph/fluxgraph/services/editor/nodeview"
)

// View implements tea.Model: a title row, the scrollable world, and a
// status row with the key help.
func (m *Model) View() string {
	if !m.ready {
		return "Loading...\n"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.th.TextSelected)).
		Background(lipgloss.Color(m.th.NodeBase)).
		Width(m.width)
	title := titleStyle.Render(" FluxGraph")

	m.vp.SetContent(m.renderWorld())

	help := "[L] Lock  [U] Upgrade  [X] Remove  [J/K] Scroll  [Q] Quit"
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.th.PinDisabled)).
		Width(m.width).
		Render(" " + m.status + "  " + help)

	return title + "\n" + m.vp.View() + "\n" + footer
}

// =============================================================================
// World composition
// =============================================================================

// renderWorld paints edges on a background rune grid, then overlays the
// node boxes row by row. Later views stack higher; a lower box row that
// would collide with a higher one is clipped whole.
func (m *Model) renderWorld() string {
	w, h := m.worldSize()
	grid := newRuneGrid(w, h)
	for _, c := range m.conns {
		m.drawConnection(grid, c)
	}

	type segment struct {
		x    int
		text string
		w    int
	}
	rows := make([][]segment, h)

	// Claim segments topmost first so overlaps clip the lower box.
	for i := len(m.views) - 1; i >= 0; i-- {
		v := m.views[i]
		x0, y0 := v.Position()
		vw := v.Width()
		for dy, line := range strings.Split(v.View(), "\n") {
			y := y0 + dy
			if y < 0 || y >= h || x0 >= w || x0+vw <= 0 {
				continue
			}
			// A box dragged past an edge contributes only its visible
			// cells, or the row would render wider than the world.
			sx, sw := x0, vw
			if sx < 0 {
				line = ansi.Cut(line, -sx, sw)
				sw += sx
				sx = 0
			}
			if sx+sw > w {
				line = ansi.Cut(line, 0, w-sx)
				sw = w - sx
			}
			free := true
			for _, s := range rows[y] {
				if sx < s.x+s.w && s.x < sx+sw {
					free = false
					break
				}
			}
			if free {
				rows[y] = append(rows[y], segment{x: sx, text: line, w: sw})
			}
		}
	}

	var b strings.Builder
	for y := 0; y < h; y++ {
		segs := rows[y]
		// Insertion sort by x; rows hold a handful of segments.
		for i := 1; i < len(segs); i++ {
			for j := i; j > 0 && segs[j-1].x > segs[j].x; j-- {
				segs[j-1], segs[j] = segs[j], segs[j-1]
			}
		}

		cursor := 0
		for _, s := range segs {
			if s.x > cursor {
				b.WriteString(string(grid[y][cursor:s.x]))
			}
			b.WriteString(s.text)
			cursor = s.x + s.w
		}
		if cursor < w {
			b.WriteString(string(grid[y][cursor:]))
		}
		if y < h-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// worldSize covers every node box plus a margin, and never shrinks
// below the viewport.
func (m *Model) worldSize() (w, h int) {
	w, h = m.vp.Width, m.vp.Height
	for _, v := range m.views {
		x, y := v.Position()
		if r := x + v.Width() + 2; r > w {
			w = r
		}
		if b := y + v.Height() + 1; b > h {
			h = b
		}
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func newRuneGrid(w, h int) [][]rune {
	grid := make([][]rune, h)
	for y := range grid {
		row := make([]rune, w)
		for x := range row {
			row[x] = ' '
		}
		grid[y] = row
	}
	return grid
}

// drawConnection routes an elbow from the output anchor to the input
// anchor: horizontal, vertical at the midpoint column, horizontal.
func (m *Model) drawConnection(grid [][]rune, c Connection) {
	fromView := m.viewFor(c.From.Node())
	toView := m.viewFor(c.To.Node())
	if fromView == nil || toView == nil {
		return
	}
	fx, fy, ok := fromView.PinAnchor(c.From)
	if !ok {
		return
	}
	tx, ty, ok := toView.PinAnchor(c.To)
	if !ok {
		return
	}

	midX := (fx + tx) / 2
	drawH(grid, fy, fx+1, midX)
	drawV(grid, midX, fy, ty)
	drawH(grid, ty, midX, tx-1)

	if fy != ty {
		if set(grid, midX, fy) {
			if ty > fy {
				grid[fy][midX] = '╮'
			} else {
				grid[fy][midX] = '╯'
			}
		}
		if set(grid, midX, ty) {
			if ty > fy {
				grid[ty][midX] = '╰'
			} else {
				grid[ty][midX] = '╭'
			}
		}
	}
}

func drawH(grid [][]rune, y, x1, x2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if set(grid, x, y) {
			grid[y][x] = '─'
		}
	}
}

func drawV(grid [][]rune, x, y1, y2 int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if set(grid, x, y) {
			grid[y][x] = '│'
		}
	}
}

// set reports whether the point is on the grid.
func set(grid [][]rune, x, y int) bool {
	return y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y])
}

func (m *Model) viewFor(n *model.Node) *nodeview.NodeView {
	for _, v := range m.views {
		if v.Node() == n {
			return v
		}
	}
	return nil
}
