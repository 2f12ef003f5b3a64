// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strings"

	"github.com/fluxgraph/fluxgraph/services/editor/canvas"
	"github.com/fluxgraph/fluxgraph/services/editor/model"
)

func demoGraphNames() []string {
	return []string{"pipeline", "compat"}
}

// buildDemoGraph populates the canvas with one of the bundled graphs.
func buildDemoGraph(m *canvas.Model, name string) error {
	switch name {
	case "pipeline":
		return buildPipelineGraph(m)
	case "compat":
		return buildCompatGraph(m)
	default:
		return fmt.Errorf("unknown demo graph %q (have: %s)",
			name, strings.Join(demoGraphNames(), ", "))
	}
}

// buildPipelineGraph is a three-stage render pipeline: a frame loader
// with a per-frame file list, a denoise stage whose status is reported
// by a shared status node, and a locked writer.
func buildPipelineGraph(m *canvas.Model) error {
	loader := model.NewNode("loader", 2, 1)
	loader.Label = "Frame Loader"
	loader.AddAttribute(model.NewListAttribute("frames", model.TypeFile, true,
		model.NewAttribute("frame_0001", model.TypeFile, true),
		model.NewAttribute("frame_0002", model.TypeFile, true),
	))
	loader.SetStatus(model.StatusDone)
	loader.SetChunks([]model.Chunk{
		{StatusNodeName: "loader", Mode: model.ModeLocal, Status: model.StatusDone},
	})

	denoise := model.NewNode("denoise", 32, 4)
	denoise.Label = "Denoise"
	denoise.AddAttribute(model.NewAttribute("input", model.TypeFile, false))
	denoise.AddAttribute(model.NewAttribute("strength", model.TypeFloat, false))
	denoise.AddAttribute(model.NewAttribute("output", model.TypeFile, true))
	denoise.SetStatus(model.StatusRunning)
	denoise.SetChunks([]model.Chunk{
		{StatusNodeName: "farm_status", Mode: model.ModeExternal, Status: model.StatusRunning},
		{StatusNodeName: "farm_status", Mode: model.ModeExternal, Status: model.StatusSubmitted},
	})

	writer := model.NewNode("writer", 62, 8)
	writer.Label = "EXR Writer"
	writer.AddAttribute(model.NewAttribute("result", model.TypeFile, false))
	writer.AddAttribute(model.NewAttribute("path", model.TypeString, false))
	writer.SetLocked(true)

	lv := m.AddNode(loader)
	dv := m.AddNode(denoise)
	wv := m.AddNode(writer)

	if err := m.Connect(lv.Pins().Outputs()[0], dv.Pins().Inputs()[0]); err != nil {
		return err
	}
	return m.Connect(dv.Pins().Outputs()[0], wv.Pins().Inputs()[0])
}

// buildCompatGraph is the pipeline plus a node saved by a newer release,
// flagged incompatible but upgradable.
func buildCompatGraph(m *canvas.Model) error {
	if err := buildPipelineGraph(m); err != nil {
		return err
	}

	grade := model.NewNode("grade", 32, 14)
	grade.Label = "Color Grade"
	grade.AddAttribute(model.NewAttribute("input", model.TypeFile, false))
	grade.AddAttribute(model.NewAttribute("lut", model.TypeFile, false))
	grade.AddAttribute(model.NewAttribute("output", model.TypeFile, true))
	grade.SetCompatibility(&model.CompatibilityIssue{
		CanUpgrade: true,
		Details:    "saved by a newer release",
	})

	m.AddNode(grade)
	return nil
}
