// Copyright (C) 2025 The FluxGraph Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package theme

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a theme from a YAML file. A missing file yields the default
// palette; a file that exists but fails to parse or validate is an error,
// so a typo never silently falls back to defaults.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Theme{}, fmt.Errorf("read theme file: %w", err)
	}

	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("parse theme file %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return Theme{}, fmt.Errorf("theme file %s: %w", path, err)
	}
	return t, nil
}

// Save writes the theme to a YAML file, creating it with 0644. Used by
// the CLI to materialize the default theme for editing.
func Save(t Theme, path string) error {
	if err := t.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal theme: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write theme file: %w", err)
	}
	return nil
}
