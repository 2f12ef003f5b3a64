// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package nodeview

import "github.com/fluxgraph/fluxgraph/services/editor/model"

// DefaultDragThreshold is the pointer travel, in cells, required before
// a press becomes a drag. One cell keeps single clicks from nudging the
// node.
const DefaultDragThreshold = 1

// DragState is the PositionSync state machine state.
type DragState int

const (
	// Idle means the model position is authoritative: any model change
	// flows straight into the visual position.
	Idle DragState = iota

	// Dragging means the visual position is authoritative and follows
	// the pointer; the model is not written until release.
	Dragging
)

// PositionSync keeps the node's on-screen position consistent with its
// model position. While Idle the sync is one-directional model to view.
// During a drag the visual position follows the raw pointer delta, and
// the final position is committed back to the model exactly once, at
// release.
type PositionSync struct {
	node      *model.Node
	threshold int
	onMoved   func(x, y int)

	x, y  int
	state DragState

	pressed        bool
	pressX, pressY int
	startX, startY int
}

// NewPositionSync reads the initial visual position from the model.
// threshold values below 1 fall back to DefaultDragThreshold. onMoved
// may be nil.
func NewPositionSync(node *model.Node, threshold int, onMoved func(x, y int)) *PositionSync {
	if threshold < 1 {
		threshold = DefaultDragThreshold
	}
	x, y := node.Position()
	return &PositionSync{
		node:      node,
		threshold: threshold,
		onMoved:   onMoved,
		x:         x,
		y:         y,
	}
}

// Visual returns the on-screen position.
func (s *PositionSync) Visual() (x, y int) {
	return s.x, s.y
}

// State returns the current state machine state.
func (s *PositionSync) State() DragState {
	return s.state
}

// ModelChanged applies an external model position change. Ignored while
// Dragging: the pointer owns the position until release.
func (s *PositionSync) ModelChanged() {
	if s.state == Dragging {
		return
	}
	s.x, s.y = s.node.Position()
}

// Press records the pointer position of a button press. No state
// transition happens yet; a click that never travels stays a click.
func (s *PositionSync) Press(px, py int) {
	s.pressed = true
	s.pressX, s.pressY = px, py
	s.startX, s.startY = s.x, s.y
}

// Move handles pointer motion. Without a preceding Press it is a no-op.
// The first motion past the threshold enters Dragging; from then on the
// visual position tracks the raw pointer delta from the press point.
func (s *PositionSync) Move(px, py int) {
	if !s.pressed {
		return
	}
	dx, dy := px-s.pressX, py-s.pressY
	if s.state == Idle {
		if abs(dx) < s.threshold && abs(dy) < s.threshold {
			return
		}
		s.state = Dragging
	}
	s.x = s.startX + dx
	s.y = s.startY + dy
}

// Release ends a press. On the Dragging to Idle transition the visual
// position is committed to the model and onMoved fires, both exactly
// once and only if the position actually changed. A release without a
// press, or a press that never crossed the threshold, commits nothing.
func (s *PositionSync) Release() {
	if !s.pressed {
		return
	}
	s.pressed = false

	if s.state != Dragging {
		return
	}
	s.state = Idle

	if s.x == s.startX && s.y == s.startY {
		return
	}
	s.node.SetPosition(s.x, s.y)
	if s.onMoved != nil {
		s.onMoved(s.x, s.y)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
