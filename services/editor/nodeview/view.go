// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package nodeview

import (
	"time"

	"github.com/fluxgraph/fluxgraph/pkg/logging"
	"github.com/fluxgraph/fluxgraph/pkg/theme"
	"github.com/fluxgraph/fluxgraph/services/editor/model"
)

// DoubleClickInterval is the longest gap between two presses that still
// counts as a double click.
const DoubleClickInterval = 400 * time.Millisecond

// Events are the callbacks a NodeView exposes to the canvas. All fields
// are optional. PinCreated and PinDeleted bubble straight from the pin
// set, element pins included, and fire during construction for the
// initial attribute collection.
type Events struct {
	Pressed       func(n *model.Node)
	DoubleClicked func(n *model.Node)
	Moved         func(x, y int)
	Entered       func(n *model.Node)
	Exited        func(n *model.Node)
	PinCreated    PinEvent
	PinDeleted    PinEvent
}

// Config configures a NodeView.
type Config struct {
	// Theme is the injected palette; zero value means theme.Default().
	Theme theme.Theme

	// DragThreshold in cells; below 1 means DefaultDragThreshold.
	DragThreshold int

	// Logger for lifecycle and anomaly logs; nil means a quiet logger.
	Logger *logging.Logger
}

// NodeView renders one node and keeps its visual state in sync with the
// model: position through PositionSync, pins through PinSet, and the
// lock and compatibility flags through direct projections. It owns no
// model data beyond its ephemeral interaction state.
type NodeView struct {
	node   *model.Node
	th     theme.Theme
	log    *logging.Logger
	events Events

	pins  *PinSet
	pos   *PositionSync
	state InteractionState

	lastPress   time.Time
	unsubscribe func()
	disposed    bool
}

// New builds a view for the node, derives the initial pins (emitting
// PinCreated for each), and subscribes to the model notifications the
// view depends on.
func New(node *model.Node, cfg Config, events Events) *NodeView {
	if cfg.Logger == nil {
		cfg.Logger = logging.New(logging.Config{Quiet: true})
	}
	if (cfg.Theme == theme.Theme{}) {
		cfg.Theme = theme.Default()
	}

	v := &NodeView{
		node:   node,
		th:     cfg.Theme,
		log:    cfg.Logger.With("node", node.Name),
		events: events,
		state: InteractionState{
			Locked:            node.Locked(),
			CompatibilityMode: node.Compatibility() != nil,
		},
	}

	v.pos = NewPositionSync(node, cfg.DragThreshold, func(x, y int) {
		v.log.Debug("drag committed", "x", x, "y", y)
		if v.events.Moved != nil {
			v.events.Moved(x, y)
		}
	})

	v.pins = NewPinSet(node, v.log, PinSetHooks{
		Created: func(a *model.Attribute, p *Pin) {
			if v.events.PinCreated != nil {
				v.events.PinCreated(a, p)
			}
		},
		Deleted: func(a *model.Attribute, p *Pin) {
			if v.events.PinDeleted != nil {
				v.events.PinDeleted(a, p)
			}
		},
	})

	v.unsubscribe = node.Subscribe(model.Listener{
		OnPosition:   func(*model.Node) { v.pos.ModelChanged() },
		OnAttributes: func(*model.Node) { v.pins.Reconcile() },
		OnLock: func(n *model.Node) {
			v.state.Locked = n.Locked()
			v.pins.RefreshReadOnly()
		},
		OnCompatibility: func(n *model.Node) {
			v.state.CompatibilityMode = n.Compatibility() != nil
			v.pins.RefreshReadOnly()
		},
		// Status and chunks are read at render time; nothing cached.
	})

	return v
}

// Node returns the observed node.
func (v *NodeView) Node() *model.Node { return v.node }

// Pins returns the pin set.
func (v *NodeView) Pins() *PinSet { return v.pins }

// Position returns the visual position.
func (v *NodeView) Position() (x, y int) { return v.pos.Visual() }

// State returns a copy of the interaction flags, with Dragging filled
// from the position sync.
func (v *NodeView) State() InteractionState {
	st := v.state
	st.Dragging = v.pos.State() == Dragging
	return st
}

// Visual resolves the current style decisions.
func (v *NodeView) Visual() VisualState {
	return Resolve(v.node, v.State(), v.th)
}

// SetTheme swaps the palette, e.g. after a theme file reload.
func (v *NodeView) SetTheme(th theme.Theme) { v.th = th }

// =============================================================================
// Canvas-driven properties
// =============================================================================

// SetSelected is pushed by the canvas; the view never selects itself.
func (v *NodeView) SetSelected(selected bool) {
	v.state.Selected = selected
}

// SetHovered is pushed by the canvas. Transitions fire Entered and
// Exited.
func (v *NodeView) SetHovered(hovered bool) {
	if v.state.Hovered == hovered {
		return
	}
	v.state.Hovered = hovered
	if hovered {
		if v.events.Entered != nil {
			v.events.Entered(v.node)
		}
	} else if v.events.Exited != nil {
		v.events.Exited(v.node)
	}
}

// =============================================================================
// Mouse input (canvas coordinates)
// =============================================================================

// Press handles a button press on the node. Two presses within
// DoubleClickInterval fire DoubleClicked instead of a second Pressed.
func (v *NodeView) Press(x, y int) {
	if v.disposed {
		return
	}
	now := time.Now()
	double := now.Sub(v.lastPress) < DoubleClickInterval
	v.lastPress = now

	v.pos.Press(x, y)

	if double {
		if v.events.DoubleClicked != nil {
			v.events.DoubleClicked(v.node)
		}
		return
	}
	if v.events.Pressed != nil {
		v.events.Pressed(v.node)
	}
}

// Motion handles pointer motion while a button is held. Without a prior
// Press it is a no-op.
func (v *NodeView) Motion(x, y int) {
	if v.disposed {
		return
	}
	v.pos.Move(x, y)
}

// Release ends a press; a drag past the threshold commits the position
// here, exactly once.
func (v *NodeView) Release() {
	if v.disposed {
		return
	}
	v.pos.Release()
}

// =============================================================================
// Lifecycle
// =============================================================================

// Dispose unsubscribes from the model and deletes every pin, emitting
// PinDeleted for each so the canvas can drop its anchors. The view is
// inert afterwards.
func (v *NodeView) Dispose() {
	if v.disposed {
		return
	}
	v.disposed = true
	v.unsubscribe()
	v.pins.Dispose()
}

// Disposed reports whether Dispose has run.
func (v *NodeView) Disposed() bool { return v.disposed }
