// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package nodeview

import (
	"github.com/fluxgraph/fluxgraph/pkg/logging"
	"github.com/fluxgraph/fluxgraph/services/editor/model"
)

// PinEvent is a pin lifecycle callback. For element pins of a list the
// attribute is the element attribute, bubbled through the parent pin's
// owner.
type PinEvent func(attr *model.Attribute, pin *Pin)

// PinSetHooks carries the lifecycle callbacks a PinSet emits. Nil hooks
// are skipped.
type PinSetHooks struct {
	Created PinEvent
	Deleted PinEvent
}

// PinSet maintains the ordered input and output pin sequences of one
// node. It re-derives both sequences from the node's attribute
// collection on every structural change, by diffing against the previous
// set on attribute identity: unaffected pins survive untouched, and only
// real transitions emit creation or deletion events.
//
// The invariant it maintains: the live pins are exactly the displayable
// attributes, partitioned by direction, in attribute order.
type PinSet struct {
	node  *model.Node
	log   *logging.Logger
	hooks PinSetHooks

	inputs  []*Pin
	outputs []*Pin
	byAttr  map[string]*Pin
}

// NewPinSet builds the pin set and derives the initial sequences,
// emitting a Created event for every displayable attribute.
func NewPinSet(node *model.Node, log *logging.Logger, hooks PinSetHooks) *PinSet {
	ps := &PinSet{
		node:   node,
		log:    log,
		hooks:  hooks,
		byAttr: make(map[string]*Pin),
	}
	ps.Reconcile()
	return ps
}

// Inputs returns the input pins in attribute order. The slice is a copy.
func (ps *PinSet) Inputs() []*Pin {
	out := make([]*Pin, len(ps.inputs))
	copy(out, ps.inputs)
	return out
}

// Outputs returns the output pins in attribute order. The slice is a copy.
func (ps *PinSet) Outputs() []*Pin {
	out := make([]*Pin, len(ps.outputs))
	copy(out, ps.outputs)
	return out
}

// PinFor returns the live top-level pin for an attribute, or nil.
func (ps *PinSet) PinFor(attr *model.Attribute) *Pin {
	if attr == nil {
		return nil
	}
	return ps.byAttr[attr.ID]
}

// Reconcile re-derives the pin sequences from the node's current
// attribute collection. Pins whose attribute left the displayable set
// are deleted (event first, then disposal); attributes that entered it
// get a fresh pin (appended first, then the event). A reconcile against
// an unchanged collection emits nothing.
func (ps *PinSet) Reconcile() {
	readOnly := ps.projectedReadOnly()

	type slot struct {
		attr    *model.Attribute
		pin     *Pin // nil when a pin must be created
		created bool
	}

	var slots []slot
	seen := make(map[string]bool)
	for _, a := range ps.node.Attributes() {
		if a == nil {
			// Model corruption; fail closed and keep going.
			ps.log.Warn("nil attribute reference in collection", "node", ps.node.Name)
			continue
		}
		if !DisplayableAsPin(a) || seen[a.ID] {
			continue
		}
		seen[a.ID] = true

		pin := ps.byAttr[a.ID]
		if pin != nil && pin.output != a.IsOutput {
			// Direction flip moves the pin to the other edge; the
			// old endpoint is gone as far as the canvas is concerned.
			ps.deletePin(pin)
			pin = nil
		}
		slots = append(slots, slot{attr: a, pin: pin})
	}

	// Delete pins whose attribute is no longer displayable, in the
	// previous display order.
	for _, pin := range append(ps.Inputs(), ps.Outputs()...) {
		if !pin.disposed && !seen[pin.attr.ID] {
			ps.deletePin(pin)
		}
	}

	// Rebuild both sequences, constructing pins for new slots.
	ps.inputs = nil
	ps.outputs = nil
	for i := range slots {
		s := &slots[i]
		if s.pin == nil {
			s.pin = newPin(s.attr, ps.node, readOnly)
			s.created = true
			ps.byAttr[s.attr.ID] = s.pin
		}
		if s.pin.output {
			ps.outputs = append(ps.outputs, s.pin)
		} else {
			ps.inputs = append(ps.inputs, s.pin)
		}
	}

	// Emit creations and reconcile list elements after the sequences
	// are in place, so a listener observing pinCreated always sees the
	// pin already appended, and always before any of its child events.
	for _, s := range slots {
		if s.created {
			ps.log.Debug("pin created", "node", ps.node.Name, "attr", s.attr.Name, "output", s.pin.output)
			ps.emitCreated(s.attr, s.pin)
		}
		if s.attr.Type == model.TypeList {
			ps.reconcileChildren(s.pin)
		}
	}
}

// RefreshReadOnly re-projects the node's lock state onto every pin,
// without recreating any of them. Compatibility mode forces the
// projection true regardless of the lock flag.
func (ps *PinSet) RefreshReadOnly() {
	readOnly := ps.projectedReadOnly()
	for _, pin := range ps.inputs {
		pin.setReadOnly(readOnly)
	}
	for _, pin := range ps.outputs {
		pin.setReadOnly(readOnly)
	}
}

// Dispose deletes every pin, emitting Deleted events so the canvas can
// drop its anchors. Called when the owning view is destroyed.
func (ps *PinSet) Dispose() {
	for _, pin := range append(ps.Inputs(), ps.Outputs()...) {
		ps.deletePin(pin)
	}
	ps.inputs = nil
	ps.outputs = nil
}

// =============================================================================
// Internal
// =============================================================================

func (ps *PinSet) projectedReadOnly() bool {
	return ps.node.Locked() || ps.node.Compatibility() != nil
}

// reconcileChildren diffs a list pin's element pins against the
// attribute's element collection. Nested lists recurse.
func (ps *PinSet) reconcileChildren(parent *Pin) {
	old := make(map[string]*Pin, len(parent.children))
	for _, c := range parent.children {
		old[c.attr.ID] = c
	}

	var kept []*Pin
	var created []*Pin
	for _, el := range parent.attr.Elements() {
		if !DisplayableAsPin(el) {
			continue
		}
		if c, ok := old[el.ID]; ok {
			delete(old, el.ID)
			kept = append(kept, c)
			continue
		}
		c := newPin(el, ps.node, parent.readOnly)
		c.parent = parent
		kept = append(kept, c)
		created = append(created, c)
	}

	// Deletions first, in previous element order.
	for _, c := range parent.children {
		if old[c.attr.ID] == c {
			ps.deletePin(c)
		}
	}

	parent.children = kept
	for _, c := range created {
		ps.log.Debug("element pin created", "node", ps.node.Name, "attr", c.attr.Name)
		ps.emitCreated(c.attr, c)
	}
	for _, c := range kept {
		if c.attr.Type == model.TypeList {
			ps.reconcileChildren(c)
		}
	}
}

// deletePin emits Deleted for the pin's children first, then the pin
// itself, then disposes it.
func (ps *PinSet) deletePin(pin *Pin) {
	if pin.disposed {
		return
	}
	for _, c := range pin.children {
		ps.deletePin(c)
	}
	ps.log.Debug("pin deleted", "node", ps.node.Name, "attr", pin.attr.Name)
	ps.emitDeleted(pin.attr, pin)
	delete(ps.byAttr, pin.attr.ID)
	pin.dispose()
}

func (ps *PinSet) emitCreated(attr *model.Attribute, pin *Pin) {
	if ps.hooks.Created != nil {
		ps.hooks.Created(attr, pin)
	}
}

func (ps *PinSet) emitDeleted(attr *model.Attribute, pin *Pin) {
	if ps.hooks.Deleted != nil {
		ps.hooks.Deleted(attr, pin)
	}
}
