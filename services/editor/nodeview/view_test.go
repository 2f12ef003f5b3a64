// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package nodeview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxgraph/fluxgraph/services/editor/model"
)

func testNode() *model.Node {
	n := model.NewNode("blur", 0, 0)
	n.AddAttribute(model.NewAttribute("in", model.TypeFile, false))
	n.AddAttribute(model.NewAttribute("out", model.TypeFile, true))
	n.AddAttribute(model.NewAttribute("radius", model.TypeFloat, false))
	return n
}

func TestNew_EmitsInitialPins(t *testing.T) {
	n := testNode()

	var created []string
	v := New(n, Config{}, Events{
		PinCreated: func(a *model.Attribute, p *Pin) { created = append(created, a.Name) },
	})
	defer v.Dispose()

	assert.Equal(t, []string{"in", "out"}, created)
}

// The view reconciles on attribute notifications by itself; no caller
// nudging required.
func TestNodeView_ReactsToAttributeChanges(t *testing.T) {
	n := testNode()

	var created, deleted []string
	v := New(n, Config{}, Events{
		PinCreated: func(a *model.Attribute, p *Pin) { created = append(created, a.Name) },
		PinDeleted: func(a *model.Attribute, p *Pin) { deleted = append(deleted, a.Name) },
	})
	defer v.Dispose()
	created = nil

	n.AddAttribute(model.NewAttribute("mask", model.TypeFile, false))
	assert.Equal(t, []string{"mask"}, created)

	n.RemoveAttribute("in")
	assert.Equal(t, []string{"in"}, deleted)
	require.Len(t, v.Pins().Inputs(), 1)
	assert.Equal(t, "mask", v.Pins().Inputs()[0].Attribute().Name)
}

// Adding a list attribute fires the parent pin event before any element
// pin events.
func TestNodeView_ListCreationOrder(t *testing.T) {
	n := model.NewNode("seq", 0, 0)

	var created []string
	v := New(n, Config{}, Events{
		PinCreated: func(a *model.Attribute, p *Pin) { created = append(created, a.Name) },
	})
	defer v.Dispose()

	require.False(t, n.Locked())
	n.AddAttribute(model.NewListAttribute("frames", model.TypeFile, false,
		model.NewAttribute("frame0", model.TypeFile, false)))

	assert.Equal(t, []string{"frames", "frame0"}, created)
}

func TestNodeView_LockPropagation(t *testing.T) {
	n := testNode()
	v := New(n, Config{}, Events{})
	defer v.Dispose()

	in := v.Pins().Inputs()[0]
	require.False(t, in.ReadOnly())

	n.SetLocked(true)

	assert.True(t, v.State().Locked)
	assert.Same(t, in, v.Pins().Inputs()[0], "lock toggles must not recreate pins")
	assert.True(t, in.ReadOnly())
	assert.False(t, v.Visual().BodyEnabled)
}

func TestNodeView_CompatibilityMode(t *testing.T) {
	n := testNode()
	v := New(n, Config{}, Events{})
	defer v.Dispose()

	n.SetCompatibility(&model.CompatibilityIssue{CanUpgrade: false, Details: "schema drift"})

	st := v.State()
	assert.True(t, st.CompatibilityMode)
	assert.False(t, st.Locked, "compatibility mode must not masquerade as a lock")
	assert.True(t, v.Pins().Inputs()[0].ReadOnly())

	vs := v.Visual()
	assert.False(t, vs.BodyEnabled)
	require.NotNil(t, vs.Badge)
	assert.Equal(t, "schema drift", vs.Badge.Details)
}

func TestNodeView_HoverEvents(t *testing.T) {
	n := testNode()

	var entered, exited int
	v := New(n, Config{}, Events{
		Entered: func(*model.Node) { entered++ },
		Exited:  func(*model.Node) { exited++ },
	})
	defer v.Dispose()

	v.SetHovered(true)
	v.SetHovered(true) // no transition
	v.SetHovered(false)

	assert.Equal(t, 1, entered)
	assert.Equal(t, 1, exited)
}

func TestNodeView_PressAndDoubleClick(t *testing.T) {
	n := testNode()

	var pressed, doubled int
	v := New(n, Config{}, Events{
		Pressed:       func(*model.Node) { pressed++ },
		DoubleClicked: func(*model.Node) { doubled++ },
	})
	defer v.Dispose()

	v.Press(1, 1)
	v.Release()
	v.Press(1, 1) // within DoubleClickInterval of the first
	v.Release()

	assert.Equal(t, 1, pressed)
	assert.Equal(t, 1, doubled)
}

func TestNodeView_DragEmitsMoved(t *testing.T) {
	n := testNode()

	var moved []([2]int)
	v := New(n, Config{}, Events{
		Moved: func(x, y int) { moved = append(moved, [2]int{x, y}) },
	})
	defer v.Dispose()

	v.Press(3, 1)
	v.Motion(8, 4)
	assert.True(t, v.State().Dragging)

	v.Release()

	require.Len(t, moved, 1)
	assert.Equal(t, [2]int{5, 3}, moved[0])
	mx, my := n.Position()
	assert.Equal(t, [2]int{5, 3}, [2]int{mx, my})
	assert.False(t, v.State().Dragging)
}

// External position changes land on the view while idle.
func TestNodeView_FollowsModelPosition(t *testing.T) {
	n := testNode()
	v := New(n, Config{}, Events{})
	defer v.Dispose()

	n.SetPosition(12, 9)

	x, y := v.Position()
	assert.Equal(t, [2]int{12, 9}, [2]int{x, y})
}

func TestNodeView_Dispose(t *testing.T) {
	n := testNode()

	var deleted []string
	v := New(n, Config{}, Events{
		PinDeleted: func(a *model.Attribute, p *Pin) { deleted = append(deleted, a.Name) },
	})

	v.Dispose()
	assert.True(t, v.Disposed())
	assert.ElementsMatch(t, []string{"in", "out"}, deleted)

	// Model changes after disposal reach nothing.
	deleted = nil
	n.AddAttribute(model.NewAttribute("late", model.TypeFile, false))
	assert.Empty(t, v.Pins().Inputs())
	assert.Empty(t, deleted)

	v.Dispose() // idempotent
}

// =============================================================================
// Geometry
// =============================================================================

func TestNodeView_PinAnchors(t *testing.T) {
	n := testNode()
	v := New(n, Config{}, Events{})
	defer v.Dispose()

	in := v.Pins().Inputs()[0]
	out := v.Pins().Outputs()[0]

	x, y, ok := v.PinAnchor(in)
	require.True(t, ok)
	assert.Equal(t, 0, x, "input anchors sit on the left border column")
	assert.Equal(t, 2, y, "first pin row sits under the border and header")

	x, y, ok = v.PinAnchor(out)
	require.True(t, ok)
	assert.Equal(t, v.Width()-1, x, "output anchors sit on the right border column")
	assert.Equal(t, 2, y)

	// Anchors follow the node.
	n.SetPosition(10, 5)
	x, y, ok = v.PinAnchor(in)
	require.True(t, ok)
	assert.Equal(t, [2]int{10, 7}, [2]int{x, y})

	_, _, ok = v.PinAnchor(nil)
	assert.False(t, ok)
}

func TestNodeView_PinAt(t *testing.T) {
	n := testNode()
	v := New(n, Config{}, Events{})
	defer v.Dispose()

	in := v.Pins().Inputs()[0]
	out := v.Pins().Outputs()[0]

	assert.Same(t, in, v.PinAt(0, 2))
	assert.Same(t, in, v.PinAt(1, 2))
	assert.Same(t, out, v.PinAt(v.Width()-1, 2))
	assert.Nil(t, v.PinAt(5, 2), "mid-row is not a pin")
	assert.Nil(t, v.PinAt(0, 1), "header row has no pins")
	assert.Nil(t, v.PinAt(200, 200))
}

// Locked and compatibility nodes have inert pins: hit testing returns
// nothing.
func TestNodeView_PinAtDisabledBody(t *testing.T) {
	n := testNode()
	v := New(n, Config{}, Events{})
	defer v.Dispose()

	require.NotNil(t, v.PinAt(0, 2))

	n.SetLocked(true)
	assert.Nil(t, v.PinAt(0, 2))

	n.SetLocked(false)
	n.SetCompatibility(&model.CompatibilityIssue{})
	assert.Nil(t, v.PinAt(0, 2))
}

// =============================================================================
// Rendering
// =============================================================================

// Every rendered line must have the same printable width, or the canvas
// cannot overlay boxes row by row.
func TestNodeView_RenderUniformWidth(t *testing.T) {
	n := testNode()
	n.SetChunks([]model.Chunk{{StatusNodeName: "blur", Status: model.StatusRunning}})
	n.SetStatus(model.StatusRunning)
	n.SetCompatibility(&model.CompatibilityIssue{CanUpgrade: true, Details: "old schema"})

	v := New(n, Config{}, Events{})
	defer v.Dispose()
	v.SetSelected(true)

	out := v.View()
	lines := strings.Split(out, "\n")
	require.Equal(t, v.Height(), len(lines))
	for i, line := range lines {
		assert.Equal(t, v.Width(), lipgloss.Width(line), "line %d width", i)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		w    int
		want string
	}{
		{"fits", "blur", 6, "blur"},
		{"exact", "blur", 4, "blur"},
		{"cut", "gaussian", 5, "gaus…"},
		{"one cell", "blur", 1, "…"},
		{"zero", "blur", 0, ""},
		{"wide fits", "ノード", 6, "ノード"},
		{"wide cut", "ノードビュー", 5, "ノー…"},
		{"wide no overshoot", "ノードビュー", 6, "ノー…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.w)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
			}
			if lipgloss.Width(got) > tt.w {
				t.Errorf("truncate(%q, %d) renders %d cells", tt.in, tt.w, lipgloss.Width(got))
			}
		})
	}
}

// Double-width runes in the title must not break the uniform row width.
func TestNodeView_RenderUniformWidthWideRunes(t *testing.T) {
	n := testNode()
	n.Label = "ガウシアンブラーフィルターノードビューテスト"

	v := New(n, Config{}, Events{})
	defer v.Dispose()

	lines := strings.Split(v.View(), "\n")
	require.Equal(t, v.Height(), len(lines))
	for i, line := range lines {
		assert.Equal(t, v.Width(), lipgloss.Width(line), "line %d width", i)
	}
}

func TestNodeView_RenderShowsTitleAndTags(t *testing.T) {
	n := testNode()
	n.SetLocked(true)

	v := New(n, Config{}, Events{})
	defer v.Dispose()

	out := v.View()
	assert.Contains(t, out, "blur")
	assert.Contains(t, out, "[lock]")
	assert.Contains(t, out, pinGlyphReadOnly, "locked pins render hollow")
}
