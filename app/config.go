// TLINE: Treatment Line Derivation Library
// Copyright (c) 2022 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/tline/blob/master/LICENSE.txt>.

package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for a tline run.
type Config struct {
	CohortFile     string //csv with patient_id, index_date, followup_end
	EventsFile     string //csv with therapy events
	ClassifierFile string //optional csv mapping treatment codes to drug groups and classes
	OutputPath     string //directory for output tables
	GapDays        int    `yaml:"gap_days"`         //maximum days between records of one line
	EmitLongFormat bool   `yaml:"emit_long_format"` //also write the per-record audit table
	DrugGroupCount int    `yaml:"drug_group_count"` //the classifier's declared vocabulary size
	LogFormat      string `yaml:"log_format"`       //"text" or "json"
	Plot           bool   `yaml:"plot"`             //write summary plots
}

// DefaultConfig returns the configuration defaults: a 45-day gap threshold, long-format output enabled, and the
// classifier's default vocabulary of 147 drug groups.
func DefaultConfig() Config {
	return Config{
		GapDays:        45,
		EmitLongFormat: true,
		DrugGroupCount: 147,
		LogFormat:      "text",
	}
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	GapDays        *int    `yaml:"gap_days"`
	EmitLongFormat *bool   `yaml:"emit_long_format"`
	DrugGroupCount *int    `yaml:"drug_group_count"`
	LogFormat      *string `yaml:"log_format"`
	Plot           *bool   `yaml:"plot"`
}

// LoadFromFile reads a YAML config file and merges the values it sets into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if yc.GapDays != nil {
		c.GapDays = *yc.GapDays
	}
	if yc.EmitLongFormat != nil {
		c.EmitLongFormat = *yc.EmitLongFormat
	}
	if yc.DrugGroupCount != nil {
		c.DrugGroupCount = *yc.DrugGroupCount
	}
	if yc.LogFormat != nil {
		c.LogFormat = *yc.LogFormat
	}
	if yc.Plot != nil {
		c.Plot = *yc.Plot
	}
	return nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.CohortFile == "" {
		return fmt.Errorf("--cohort is required")
	}
	if c.EventsFile == "" {
		return fmt.Errorf("--events is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("--out is required")
	}
	if c.GapDays <= 0 {
		return fmt.Errorf("gap threshold must be positive, got %d", c.GapDays)
	}
	if c.DrugGroupCount <= 0 {
		return fmt.Errorf("drug group count must be positive, got %d", c.DrugGroupCount)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
