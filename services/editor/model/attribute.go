// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package model

import "github.com/google/uuid"

// Attribute is one named, typed slot on a node. Views hold attribute
// references, never copies; identity is the ID, which survives renames
// and type changes.
type Attribute struct {
	// ID is a stable identity assigned at construction.
	ID string

	// Name is unique within the owning node.
	Name string

	// Type is the declared type tag.
	Type AttrType

	// IsOutput partitions the attribute onto the right edge of the node.
	IsOutput bool

	// ElemType is the element type for TypeList attributes and
	// TypeInvalid otherwise.
	ElemType AttrType

	elements []*Attribute
}

// NewAttribute creates a scalar, file, or group attribute.
func NewAttribute(name string, typ AttrType, isOutput bool) *Attribute {
	return &Attribute{
		ID:       uuid.NewString(),
		Name:     name,
		Type:     typ,
		IsOutput: isOutput,
	}
}

// NewListAttribute creates a list attribute with the given element type.
// Elements share the list's direction.
func NewListAttribute(name string, elemType AttrType, isOutput bool, elements ...*Attribute) *Attribute {
	a := &Attribute{
		ID:       uuid.NewString(),
		Name:     name,
		Type:     TypeList,
		IsOutput: isOutput,
		ElemType: elemType,
	}
	for _, el := range elements {
		el.IsOutput = isOutput
		a.elements = append(a.elements, el)
	}
	return a
}

// Elements returns the element attributes of a list in order. The slice
// is a copy; mutate through the owning node so observers are notified.
func (a *Attribute) Elements() []*Attribute {
	out := make([]*Attribute, len(a.elements))
	copy(out, a.elements)
	return out
}
