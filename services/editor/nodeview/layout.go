// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package nodeview

import "github.com/charmbracelet/lipgloss"

// Box geometry. The border always reserves its cells, whether or not it
// is visible, so hovering a node never shifts the layout around it.
const (
	minContentWidth = 14
	maxContentWidth = 42
)

// Width returns the total box width in cells, border included.
func (v *NodeView) Width() int {
	return v.contentWidth() + 2
}

// Height returns the total box height in cells, border included.
func (v *NodeView) Height() int {
	return 1 + v.contentRows() + 1
}

// Contains reports whether a canvas point falls inside the box.
func (v *NodeView) Contains(x, y int) bool {
	x0, y0 := v.pos.Visual()
	return x >= x0 && x < x0+v.Width() && y >= y0 && y < y0+v.Height()
}

// PinAnchor returns the absolute canvas coordinates of a pin's
// connection point: the border column of the pin's row, left edge for
// inputs and right edge for outputs. ok is false for a pin this view
// does not own or that is no longer live.
func (v *NodeView) PinAnchor(p *Pin) (x, y int, ok bool) {
	if p == nil || p.Disposed() {
		return 0, 0, false
	}
	x0, y0 := v.pos.Visual()
	rowBase := y0 + 2 + v.chunkRows()

	side := v.pins.Inputs()
	edgeX := x0
	if p.Output() {
		side = v.pins.Outputs()
		edgeX = x0 + v.Width() - 1
	}
	for i, q := range flattenPins(side) {
		if q == p {
			return edgeX, rowBase + i, true
		}
	}
	return 0, 0, false
}

// PinAt hit-tests a canvas point against the pin edge columns. It
// returns nil when the point misses every pin or when the body is
// interaction-disabled (locked or compatibility mode): inert pins are
// not valid connection endpoints.
func (v *NodeView) PinAt(x, y int) *Pin {
	if !v.Visual().BodyEnabled || !v.Contains(x, y) {
		return nil
	}
	x0, y0 := v.pos.Visual()
	row := y - (y0 + 2 + v.chunkRows())
	if row < 0 {
		return nil
	}

	col := x - x0
	var side []*Pin
	switch {
	case col <= 1:
		side = flattenPins(v.pins.Inputs())
	case col >= v.Width()-2:
		side = flattenPins(v.pins.Outputs())
	default:
		return nil
	}
	if row >= len(side) {
		return nil
	}
	return side[row]
}

// =============================================================================
// Internal geometry
// =============================================================================

func (v *NodeView) chunkRows() int {
	if len(v.node.Chunks()) > 0 {
		return 1
	}
	return 0
}

func (v *NodeView) badgeRows() int {
	if v.node.Compatibility() != nil {
		return 1
	}
	return 0
}

func (v *NodeView) pinRows() int {
	in := len(flattenPins(v.pins.Inputs()))
	out := len(flattenPins(v.pins.Outputs()))
	if out > in {
		return out
	}
	return in
}

func (v *NodeView) contentRows() int {
	return 1 + v.chunkRows() + v.pinRows() + v.badgeRows()
}

func (v *NodeView) contentWidth() int {
	w := lipgloss.Width(v.node.Title()) + v.headerTagWidth()

	ins := flattenPins(v.pins.Inputs())
	outs := flattenPins(v.pins.Outputs())
	rows := len(ins)
	if len(outs) > rows {
		rows = len(outs)
	}
	for i := 0; i < rows; i++ {
		var rw int
		if i < len(ins) {
			rw += lipgloss.Width(pinLabel(ins[i])) + 1
		}
		if i < len(outs) {
			rw += lipgloss.Width(pinLabel(outs[i])) + 1
		}
		rw += 2 // gap between the columns
		if rw > w {
			w = rw
		}
	}

	if w < minContentWidth {
		w = minContentWidth
	}
	if w > maxContentWidth {
		w = maxContentWidth
	}
	return w
}

// headerTagWidth reserves space for the indicator tags next to the
// title.
func (v *NodeView) headerTagWidth() int {
	vs := v.Visual()
	w := 0
	if vs.ShowLock {
		w += len(" [lock]")
	}
	if vs.ShowComputedElsewhere {
		w += len(" [shared]")
	}
	if vs.ShowComputedExternally {
		w += len(" [ext]")
	}
	return w
}

// flattenPins lists pins in display order: each pin followed by its
// element pins, recursively.
func flattenPins(pins []*Pin) []*Pin {
	var out []*Pin
	for _, p := range pins {
		out = append(out, p)
		if len(p.children) > 0 {
			out = append(out, flattenPins(p.children)...)
		}
	}
	return out
}

// pinLabel is the text a pin row shows, element pins indented under
// their list.
func pinLabel(p *Pin) string {
	if p.parent != nil {
		return " " + p.attr.Name
	}
	return p.attr.Name
}
