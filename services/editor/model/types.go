// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package model holds the graph data model the editor views observe.
//
// The model is deliberately passive: it stores nodes, attributes, and
// execution metadata, and emits discrete change notifications when
// mutated. Views subscribe to the notifications they care about and
// recompute only the derived state affected by each one. There are no
// property bindings and no global observers.
//
// # Thread Safety
//
// The model is single-threaded by contract. All mutation and all
// notification delivery happen synchronously on the editor event loop,
// in call order. Do not mutate a Node from another goroutine; hand the
// change to the event loop instead.
package model

// =============================================================================
// Attribute Types
// =============================================================================

// AttrType tags the declared type of an attribute.
type AttrType int

const (
	// TypeInvalid is the zero value; attributes never carry it in a
	// well-formed model and it is treated as non-displayable everywhere.
	TypeInvalid AttrType = iota

	// TypeInt, TypeFloat, TypeString, and TypeBool are scalar types.
	TypeInt
	TypeFloat
	TypeString
	TypeBool

	// TypeFile is a file reference, the connectable currency of the
	// graph.
	TypeFile

	// TypeList is an ordered collection; its element type is carried
	// separately on the attribute.
	TypeList

	// TypeGroup nests attributes for presentation only.
	TypeGroup
)

// String returns the lowercase type name.
func (t AttrType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeFile:
		return "file"
	case TypeList:
		return "list"
	case TypeGroup:
		return "group"
	default:
		return "invalid"
	}
}

// =============================================================================
// Execution Status
// =============================================================================

// Status is the aggregate execution status of a node across its chunks.
type Status int

const (
	StatusNone Status = iota
	StatusSubmitted
	StatusRunning
	StatusDone
	StatusError
)

// String returns the uppercase status name.
func (s Status) String() string {
	switch s {
	case StatusNone:
		return "NONE"
	case StatusSubmitted:
		return "SUBMITTED"
	case StatusRunning:
		return "RUNNING"
	case StatusDone:
		return "DONE"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Active reports whether the status describes in-flight work.
func (s Status) Active() bool {
	return s == StatusSubmitted || s == StatusRunning
}

// =============================================================================
// Chunks
// =============================================================================

// ExecutionMode says where a chunk's work runs.
type ExecutionMode int

const (
	// ModeLocal runs in the editor's own process pool.
	ModeLocal ExecutionMode = iota

	// ModeExternal runs on a farm or remote service.
	ModeExternal
)

// String returns "local" or "external".
func (m ExecutionMode) String() string {
	if m == ModeExternal {
		return "external"
	}
	return "local"
}

// Chunk is one unit of execution work belonging to a node. StatusNodeName
// names the node whose cache the chunk reports against; when it differs
// from the owning node, the result is shared from elsewhere.
type Chunk struct {
	StatusNodeName string
	Mode           ExecutionMode
	Status         Status
}

// =============================================================================
// Compatibility
// =============================================================================

// CompatibilityIssue describes why a node's definition no longer matches
// the current schema. Its presence on a node (non-nil pointer) is what
// signals compatibility mode; the shape of the details never is.
type CompatibilityIssue struct {
	// CanUpgrade reports whether an automatic upgrade path exists.
	CanUpgrade bool

	// Details is a human-readable description shown on the badge.
	Details string
}
