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

// InteractionState holds the ephemeral interaction flags of one view.
// Selected and Hovered are pushed in by the canvas; Dragging is owned by
// PositionSync; the last two are projections of the model.
type InteractionState struct {
	Selected bool
	Hovered  bool
	Dragging bool

	// Locked mirrors the node's lock flag.
	Locked bool

	// CompatibilityMode mirrors the presence of an issue descriptor.
	CompatibilityMode bool
}

// BadgeState is the compatibility badge overlay content.
type BadgeState struct {
	CanUpgrade bool
	Details    string
}

// VisualState is the resolved set of style decisions for one render
// pass. Each slot is computed independently; no rule shadows another.
type VisualState struct {
	BorderVisible    bool
	BorderColor      lipgloss.Color
	HeaderBackground lipgloss.Color
	HeaderForeground lipgloss.Color

	// ShowLock marks the node as locked in the header.
	ShowLock bool

	// ShowComputedElsewhere marks a node whose status is reported by a
	// chunk belonging to a different node (shared cache).
	ShowComputedElsewhere bool

	// ShowComputedExternally marks in-flight work running outside the
	// editor's own process pool.
	ShowComputedExternally bool

	// BodyEnabled gates pin interaction; when false pins are inert.
	BodyEnabled bool

	// Badge is non-nil iff the node is in compatibility mode.
	Badge *BadgeState
}

// Resolve computes the visual state for a node under the given
// interaction flags and theme.
func Resolve(n *model.Node, st InteractionState, th theme.Theme) VisualState {
	vs := VisualState{
		BorderVisible: st.Selected || st.Hovered,
		ShowLock:      st.Locked,
		BodyEnabled:   !st.Locked && !st.CompatibilityMode,
	}

	if st.Selected {
		vs.BorderColor = th.AccentColor()
		vs.HeaderBackground = th.AccentColor()
		vs.HeaderForeground = lipgloss.Color(th.TextSelected)
	} else {
		vs.BorderColor = th.AccentDimColor()
		vs.HeaderForeground = lipgloss.Color(th.Text)
		if st.CompatibilityMode {
			vs.HeaderBackground = lipgloss.Color(th.NodeMuted)
		} else {
			vs.HeaderBackground = lipgloss.Color(th.NodeBase)
		}
	}

	chunks := n.Chunks()
	status := n.Status()

	if len(chunks) > 0 && status != model.StatusNone && chunks[0].StatusNodeName != n.Name {
		vs.ShowComputedElsewhere = true
	}

	if status.Active() {
		for _, c := range chunks {
			if c.Mode == model.ModeExternal {
				vs.ShowComputedExternally = true
				break
			}
		}
	}

	if issue := n.Compatibility(); issue != nil {
		vs.Badge = &BadgeState{
			CanUpgrade: issue.CanUpgrade,
			Details:    issue.Details,
		}
	}

	return vs
}
