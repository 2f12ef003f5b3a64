// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package theme provides the color palette for the FluxGraph editor.
//
// The palette is an explicit dependency: views receive a Theme at
// construction instead of reaching for process-wide state. Colors are
// stored as hex strings so a theme can be loaded from YAML and validated,
// and are converted to lipgloss colors at render time.
package theme

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"
)

// themeValidate is the shared validator for theme files.
var themeValidate = validator.New()

// Theme holds every color the node editor renders with. All fields are
// required hex colors; Load falls back to Default on a missing file but
// never on a malformed one.
type Theme struct {
	// Accent is the selection color: selected header background and
	// selected border.
	Accent string `yaml:"accent" validate:"required,hexcolor"`

	// NodeBase is the header background of an ordinary node.
	NodeBase string `yaml:"node_base" validate:"required,hexcolor"`

	// NodeMuted is the header background of a node in compatibility
	// mode.
	NodeMuted string `yaml:"node_muted" validate:"required,hexcolor"`

	// Text is the default header text color.
	Text string `yaml:"text" validate:"required,hexcolor"`

	// TextSelected is the header text color on the accent background.
	TextSelected string `yaml:"text_selected" validate:"required,hexcolor"`

	// Pin and PinDisabled color the pin glyphs.
	Pin         string `yaml:"pin" validate:"required,hexcolor"`
	PinDisabled string `yaml:"pin_disabled" validate:"required,hexcolor"`

	// Badge colors the compatibility badge overlay.
	Badge string `yaml:"badge" validate:"required,hexcolor"`

	// Status glyph colors.
	StatusSubmitted string `yaml:"status_submitted" validate:"required,hexcolor"`
	StatusRunning   string `yaml:"status_running" validate:"required,hexcolor"`
	StatusDone      string `yaml:"status_done" validate:"required,hexcolor"`
	StatusError     string `yaml:"status_error" validate:"required,hexcolor"`
}

// Default returns the built-in palette.
func Default() Theme {
	return Theme{
		Accent:          "#5F87FF",
		NodeBase:        "#3A3A3A",
		NodeMuted:       "#4E4E4E",
		Text:            "#D0D0D0",
		TextSelected:    "#EEEEEE",
		Pin:             "#87D7AF",
		PinDisabled:     "#6C6C6C",
		Badge:           "#D7AF5F",
		StatusSubmitted: "#AFAF00",
		StatusRunning:   "#5FAFFF",
		StatusDone:      "#5FAF5F",
		StatusError:     "#D75F5F",
	}
}

// Validate checks that every field is a well-formed hex color.
func (t Theme) Validate() error {
	if err := themeValidate.Struct(t); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}
	return nil
}

// AccentColor returns the selection color.
func (t Theme) AccentColor() lipgloss.Color { return lipgloss.Color(t.Accent) }

// AccentDimColor returns a darker shade of the accent, used for the
// hover-only border.
func (t Theme) AccentDimColor() lipgloss.Color {
	return lipgloss.Color(Darken(t.Accent, 0.6))
}

// Darken scales each RGB channel of a "#RRGGBB" color by factor
// (0 black, 1 unchanged). Malformed input is returned untouched so a
// render never fails on a color.
func Darken(hex string, factor float64) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}
	if factor < 0 {
		factor = 0
	} else if factor > 1 {
		factor = 1
	}

	out := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[1+i*2:3+i*2], 16, 8)
		if err != nil {
			return hex
		}
		scaled := uint64(float64(v) * factor)
		s := fmt.Sprintf("%02X", scaled)
		out[1+i*2] = s[0]
		out[2+i*2] = s[1]
	}
	return string(out)
}
