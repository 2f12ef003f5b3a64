// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package nodeview

import "github.com/fluxgraph/fluxgraph/services/editor/model"

// Pin is the visual anchor for one connectable attribute. The canvas
// uses pins as connection endpoints, so their identity is stable for as
// long as the attribute stays displayable. A pin for a list attribute
// owns one child pin per displayable element attribute.
type Pin struct {
	attr     *model.Attribute
	node     *model.Node
	output   bool
	readOnly bool
	parent   *Pin
	children []*Pin
	disposed bool
}

func newPin(attr *model.Attribute, node *model.Node, readOnly bool) *Pin {
	return &Pin{
		attr:     attr,
		node:     node,
		output:   attr.IsOutput,
		readOnly: readOnly,
	}
}

// Attribute returns the attribute this pin represents.
func (p *Pin) Attribute() *model.Attribute { return p.attr }

// Node returns the owning node.
func (p *Pin) Node() *model.Node { return p.node }

// Output reports the pin's direction, fixed at creation.
func (p *Pin) Output() bool { return p.output }

// ReadOnly reports whether the pin rejects interaction. This is a live
// projection of the owning node's lock flag, forced true in
// compatibility mode; it is never copied at creation and then left
// stale.
func (p *Pin) ReadOnly() bool { return p.readOnly }

// Parent returns the list pin this pin is an element of, or nil for a
// top-level pin.
func (p *Pin) Parent() *Pin { return p.parent }

// Children returns the element pins of a list pin in element order. The
// slice is a copy.
func (p *Pin) Children() []*Pin {
	out := make([]*Pin, len(p.children))
	copy(out, p.children)
	return out
}

// Disposed reports whether the pin has been destroyed. A disposed pin
// must not be used as a connection endpoint.
func (p *Pin) Disposed() bool { return p.disposed }

// setReadOnly updates the projection on the pin and its children.
func (p *Pin) setReadOnly(readOnly bool) {
	p.readOnly = readOnly
	for _, c := range p.children {
		c.setReadOnly(readOnly)
	}
}

func (p *Pin) dispose() {
	p.disposed = true
	p.children = nil
	p.parent = nil
}
