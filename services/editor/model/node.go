// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package model

import "github.com/google/uuid"

// =============================================================================
// Change Notifications
// =============================================================================

// Listener receives discrete change notifications from a Node. Nil
// callbacks are skipped, so a subscriber only pays for the notifications
// it handles. Delivery is synchronous, in subscription order.
type Listener struct {
	OnPosition      func(*Node)
	OnAttributes    func(*Node)
	OnLock          func(*Node)
	OnStatus        func(*Node)
	OnCompatibility func(*Node)
}

type subscription struct {
	id       int
	listener Listener
}

// =============================================================================
// Node
// =============================================================================

// Node is one vertex of the dataflow graph: a name, a position on the
// canvas, an ordered attribute collection, and execution metadata. All
// mutation goes through setter methods so subscribed views stay in sync.
type Node struct {
	// ID is a stable identity assigned at construction.
	ID string

	// Name identifies the node; Label is the display title and falls
	// back to Name when empty.
	Name  string
	Label string

	x, y   int
	locked bool
	status Status
	chunks []Chunk
	attrs  []*Attribute
	compat *CompatibilityIssue

	subs   []subscription
	nextID int
}

// NewNode creates a node at the given canvas position.
func NewNode(name string, x, y int) *Node {
	return &Node{
		ID:   uuid.NewString(),
		Name: name,
		x:    x,
		y:    y,
	}
}

// Title returns the label, falling back to the name.
func (n *Node) Title() string {
	if n.Label != "" {
		return n.Label
	}
	return n.Name
}

// Subscribe registers a listener and returns its unsubscribe func.
// Unsubscribing twice is harmless.
func (n *Node) Subscribe(l Listener) func() {
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription{id: id, listener: l})

	return func() {
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// =============================================================================
// Position
// =============================================================================

// Position returns the model position.
func (n *Node) Position() (x, y int) {
	return n.x, n.y
}

// SetPosition moves the node and notifies subscribers. A write to the
// current position is a no-op and emits nothing.
func (n *Node) SetPosition(x, y int) {
	if n.x == x && n.y == y {
		return
	}
	n.x, n.y = x, y
	n.notify(func(l Listener) func(*Node) { return l.OnPosition })
}

// =============================================================================
// Lock / Status / Compatibility
// =============================================================================

// Locked reports the lock flag.
func (n *Node) Locked() bool { return n.locked }

// SetLocked toggles the lock flag and notifies subscribers on change.
func (n *Node) SetLocked(locked bool) {
	if n.locked == locked {
		return
	}
	n.locked = locked
	n.notify(func(l Listener) func(*Node) { return l.OnLock })
}

// Status returns the global execution status.
func (n *Node) Status() Status { return n.status }

// SetStatus updates the global status and notifies subscribers on change.
func (n *Node) SetStatus(s Status) {
	if n.status == s {
		return
	}
	n.status = s
	n.notify(func(l Listener) func(*Node) { return l.OnStatus })
}

// Chunks returns the execution chunks in order. The slice is a copy.
func (n *Node) Chunks() []Chunk {
	out := make([]Chunk, len(n.chunks))
	copy(out, n.chunks)
	return out
}

// SetChunks replaces the chunk collection and notifies status
// subscribers, since every chunk-derived indicator depends on it.
func (n *Node) SetChunks(chunks []Chunk) {
	n.chunks = make([]Chunk, len(chunks))
	copy(n.chunks, chunks)
	n.notify(func(l Listener) func(*Node) { return l.OnStatus })
}

// Compatibility returns the issue descriptor, or nil when the node
// matches the current schema.
func (n *Node) Compatibility() *CompatibilityIssue { return n.compat }

// SetCompatibility installs or clears the issue descriptor. Presence of
// a descriptor is what puts the node in compatibility mode.
func (n *Node) SetCompatibility(issue *CompatibilityIssue) {
	if n.compat == issue {
		return
	}
	n.compat = issue
	n.notify(func(l Listener) func(*Node) { return l.OnCompatibility })
}

// =============================================================================
// Attributes
// =============================================================================

// Attributes returns the attribute collection in order. The slice is a
// copy; the attributes themselves are shared references.
func (n *Node) Attributes() []*Attribute {
	out := make([]*Attribute, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// Attribute looks up an attribute by name. Returns nil when absent.
// Nil entries in the collection are skipped, matching the fail-closed
// handling in the view layer.
func (n *Node) Attribute(name string) *Attribute {
	for _, a := range n.attrs {
		if a != nil && a.Name == name {
			return a
		}
	}
	return nil
}

// AddAttribute appends an attribute and notifies subscribers.
func (n *Node) AddAttribute(a *Attribute) {
	n.attrs = append(n.attrs, a)
	n.notify(func(l Listener) func(*Node) { return l.OnAttributes })
}

// InsertAttribute places an attribute at index i, clamped to the
// collection bounds, and notifies subscribers.
func (n *Node) InsertAttribute(i int, a *Attribute) {
	if i < 0 {
		i = 0
	}
	if i > len(n.attrs) {
		i = len(n.attrs)
	}
	n.attrs = append(n.attrs[:i], append([]*Attribute{a}, n.attrs[i:]...)...)
	n.notify(func(l Listener) func(*Node) { return l.OnAttributes })
}

// RemoveAttribute deletes the named attribute and notifies subscribers.
// Removing an absent name is a no-op.
func (n *Node) RemoveAttribute(name string) {
	for i, a := range n.attrs {
		if a != nil && a.Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			n.notify(func(l Listener) func(*Node) { return l.OnAttributes })
			return
		}
	}
}

// SetAttributeType retypes the named attribute and notifies attribute
// subscribers, since displayability may have changed.
func (n *Node) SetAttributeType(name string, typ AttrType) {
	a := n.Attribute(name)
	if a == nil || a.Type == typ {
		return
	}
	a.Type = typ
	if typ != TypeList {
		a.ElemType = TypeInvalid
		a.elements = nil
	}
	n.notify(func(l Listener) func(*Node) { return l.OnAttributes })
}

// AddListElement appends an element attribute to a list and notifies
// subscribers. Non-list targets are ignored.
func (n *Node) AddListElement(listName string, el *Attribute) {
	a := n.Attribute(listName)
	if a == nil || a.Type != TypeList {
		return
	}
	el.IsOutput = a.IsOutput
	a.elements = append(a.elements, el)
	n.notify(func(l Listener) func(*Node) { return l.OnAttributes })
}

// RemoveListElement deletes the named element from a list and notifies
// subscribers. Absent targets are a no-op.
func (n *Node) RemoveListElement(listName, elName string) {
	a := n.Attribute(listName)
	if a == nil || a.Type != TypeList {
		return
	}
	for i, el := range a.elements {
		if el.Name == elName {
			a.elements = append(a.elements[:i], a.elements[i+1:]...)
			n.notify(func(l Listener) func(*Node) { return l.OnAttributes })
			return
		}
	}
}

// =============================================================================
// Internal
// =============================================================================

// notify delivers one notification kind to every subscriber that handles
// it. Subscribers are snapshotted first so an unsubscribe during
// delivery cannot skip a peer.
func (n *Node) notify(pick func(Listener) func(*Node)) {
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	for _, s := range subs {
		if fn := pick(s.listener); fn != nil {
			fn(n)
		}
	}
}
