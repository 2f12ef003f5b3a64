// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package canvas is the graph-wide scene: it owns the node views, routes
// mouse input to them by hit testing, tracks selection and hover, and
// anchors connection edges on the pin lifecycle events the views bubble
// up. It runs as a bubbletea model inside one tea.Program, which is the
// editor's single event loop.
package canvas

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fluxgraph/fluxgraph/pkg/logging"
	"github.com/fluxgraph/fluxgraph/pkg/theme"
	"github.com/fluxgraph/fluxgraph/services/editor/model"
	"github.com/fluxgraph/fluxgraph/services/editor/nodeview"
)

// ThemeReloadedMsg swaps the palette at runtime, e.g. after the theme
// file changed on disk.
type ThemeReloadedMsg struct {
	Theme theme.Theme
}

// Connection is one drawn edge between an output pin and an input pin.
type Connection struct {
	From *nodeview.Pin
	To   *nodeview.Pin
}

// Model is the canvas bubbletea model.
type Model struct {
	log *logging.Logger
	th  theme.Theme

	views   []*nodeview.NodeView
	anchors map[*nodeview.Pin]struct{}
	conns   []Connection

	selected *nodeview.NodeView
	hovered  *nodeview.NodeView

	// pressView receives motion and release while a button is held;
	// pendingPin is a connection drag started on a pin.
	pressView  *nodeview.NodeView
	pendingPin *nodeview.Pin

	vp     viewport.Model
	ready  bool
	width  int
	height int

	status string
}

// New creates an empty canvas.
func New(th theme.Theme, log *logging.Logger) *Model {
	if log == nil {
		log = logging.New(logging.Config{Quiet: true})
	}
	return &Model{
		log:     log,
		th:      th,
		anchors: make(map[*nodeview.Pin]struct{}),
		status:  "ready",
	}
}

// AddNode builds a view for the node and wires its events into the
// canvas: pin lifecycle into the anchor registry, interaction into the
// status line.
func (m *Model) AddNode(n *model.Node) *nodeview.NodeView {
	v := nodeview.New(n, nodeview.Config{Theme: m.th, Logger: m.log}, nodeview.Events{
		Pressed: func(n *model.Node) {
			m.status = n.Title()
		},
		DoubleClicked: func(n *model.Node) {
			m.status = fmt.Sprintf("%s: %d attrs, status %s", n.Title(), len(n.Attributes()), n.Status())
		},
		Moved: func(x, y int) {
			m.status = fmt.Sprintf("%s moved to %d,%d", n.Title(), x, y)
		},
		PinCreated: func(a *model.Attribute, p *nodeview.Pin) {
			m.anchors[p] = struct{}{}
		},
		PinDeleted: func(a *model.Attribute, p *nodeview.Pin) {
			delete(m.anchors, p)
			m.dropConnections(p)
		},
	})
	m.views = append(m.views, v)
	return v
}

// RemoveNode disposes the view; its PinDeleted events clean the anchor
// registry and every connection touching the node.
func (m *Model) RemoveNode(v *nodeview.NodeView) {
	for i, w := range m.views {
		if w == v {
			m.views = append(m.views[:i], m.views[i+1:]...)
			break
		}
	}
	if m.selected == v {
		m.selected = nil
	}
	if m.hovered == v {
		m.hovered = nil
	}
	if m.pressView == v {
		m.pressView = nil
	}
	v.Dispose()
}

// Connect draws an edge from an output pin to an input pin. Both pins
// must be live anchors on different nodes.
func (m *Model) Connect(from, to *nodeview.Pin) error {
	if from == nil || to == nil {
		return fmt.Errorf("connect: nil pin")
	}
	if _, ok := m.anchors[from]; !ok {
		return fmt.Errorf("connect: %s is not a live anchor", from.Attribute().Name)
	}
	if _, ok := m.anchors[to]; !ok {
		return fmt.Errorf("connect: %s is not a live anchor", to.Attribute().Name)
	}
	if !from.Output() || to.Output() {
		return fmt.Errorf("connect: edges run output to input")
	}
	if from.Node() == to.Node() {
		return fmt.Errorf("connect: cannot connect a node to itself")
	}
	for _, c := range m.conns {
		if c.From == from && c.To == to {
			return fmt.Errorf("connect: edge already exists")
		}
	}
	m.conns = append(m.conns, Connection{From: from, To: to})
	m.log.Debug("edge added",
		"from", from.Node().Name+"."+from.Attribute().Name,
		"to", to.Node().Name+"."+to.Attribute().Name)
	return nil
}

// Connections returns the drawn edges. The slice is a copy.
func (m *Model) Connections() []Connection {
	out := make([]Connection, len(m.conns))
	copy(out, m.conns)
	return out
}

// AnchorCount reports the number of live pin anchors.
func (m *Model) AnchorCount() int { return len(m.anchors) }

// Views returns the node views in stacking order.
func (m *Model) Views() []*nodeview.NodeView {
	out := make([]*nodeview.NodeView, len(m.views))
	copy(out, m.views)
	return out
}

// SetTheme swaps the palette on the canvas and every view.
func (m *Model) SetTheme(th theme.Theme) {
	m.th = th
	for _, v := range m.views {
		v.SetTheme(th)
	}
}

// =============================================================================
// tea.Model
// =============================================================================

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 2 // title and status rows
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case ThemeReloadedMsg:
		m.SetTheme(msg.Theme)
		m.status = "theme reloaded"
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "l":
		if m.selected != nil {
			n := m.selected.Node()
			n.SetLocked(!n.Locked())
			m.status = fmt.Sprintf("%s locked=%v", n.Title(), n.Locked())
		}

	case "u":
		if m.selected != nil {
			n := m.selected.Node()
			if issue := n.Compatibility(); issue != nil && issue.CanUpgrade {
				n.SetCompatibility(nil)
				m.status = n.Title() + " upgraded"
			}
		}

	case "x":
		if m.selected != nil {
			title := m.selected.Node().Title()
			m.RemoveNode(m.selected)
			m.status = title + " removed"
		}

	case "j", "down":
		m.vp.LineDown(1)

	case "k", "up":
		m.vp.LineUp(1)
	}

	return m, nil
}

// handleMouse translates screen coordinates to world coordinates and
// routes to the topmost view under the pointer. A press on a pin starts
// a connection drag instead of a node drag.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	x := msg.X
	y := msg.Y - 1 + m.vp.YOffset // title row, then viewport scroll

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		v := m.viewAt(x, y)
		m.setSelected(v)
		if v == nil {
			return
		}
		if pin := v.PinAt(x, y); pin != nil {
			m.pendingPin = pin
			m.status = "connecting from " + pin.Attribute().Name
			return
		}
		m.pressView = v
		v.Press(x, y)

	case tea.MouseActionMotion:
		if m.pressView != nil {
			m.pressView.Motion(x, y)
			return
		}
		m.setHovered(m.viewAt(x, y))

	case tea.MouseActionRelease:
		if m.pendingPin != nil {
			m.finishConnection(x, y)
			return
		}
		if m.pressView != nil {
			m.pressView.Release()
			m.pressView = nil
		}
	}
}

// finishConnection completes a pin-to-pin drag, in either direction.
func (m *Model) finishConnection(x, y int) {
	from := m.pendingPin
	m.pendingPin = nil

	v := m.viewAt(x, y)
	if v == nil {
		m.status = "connection cancelled"
		return
	}
	to := v.PinAt(x, y)
	if to == nil {
		m.status = "connection cancelled"
		return
	}
	if !from.Output() {
		from, to = to, from
	}
	if err := m.Connect(from, to); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("connected %s to %s", from.Attribute().Name, to.Attribute().Name)
}

// viewAt returns the topmost view containing the point, or nil. Views
// later in the slice stack higher.
func (m *Model) viewAt(x, y int) *nodeview.NodeView {
	for i := len(m.views) - 1; i >= 0; i-- {
		if m.views[i].Contains(x, y) {
			return m.views[i]
		}
	}
	return nil
}

func (m *Model) setSelected(v *nodeview.NodeView) {
	if m.selected == v {
		return
	}
	if m.selected != nil {
		m.selected.SetSelected(false)
	}
	m.selected = v
	if v != nil {
		v.SetSelected(true)
	}
}

func (m *Model) setHovered(v *nodeview.NodeView) {
	if m.hovered == v {
		return
	}
	if m.hovered != nil {
		m.hovered.SetHovered(false)
	}
	m.hovered = v
	if v != nil {
		v.SetHovered(true)
	}
}

// dropConnections removes every edge touching a pin that is going away.
func (m *Model) dropConnections(p *nodeview.Pin) {
	kept := m.conns[:0]
	for _, c := range m.conns {
		if c.From != p && c.To != p {
			kept = append(kept, c)
		}
	}
	m.conns = kept
}
