// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package nodeview renders one node of the dataflow graph: a box with
// the node's title, status and lock indicators, and one pin per
// connectable attribute. The package keeps the visual state in sync with
// the model through discrete change notifications and exposes pin
// lifecycle events for the canvas to anchor connection edges on.
//
// # Thread Safety
//
// Everything in this package runs on the single editor event loop. No
// type here is safe for concurrent use, and none needs to be.
package nodeview

import "github.com/fluxgraph/fluxgraph/services/editor/model"

// DisplayableAsPin reports whether an attribute can be rendered as a
// connectable pin. Only file attributes and lists of files qualify;
// everything else, including a nil or malformed attribute, fails closed.
//
// Extending the set of connectable types means extending this one
// predicate.
func DisplayableAsPin(a *model.Attribute) bool {
	if a == nil {
		return false
	}
	switch a.Type {
	case model.TypeFile:
		return true
	case model.TypeList:
		return a.ElemType == model.TypeFile
	default:
		return false
	}
}
