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
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFileMergesSetValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "gap_days: 30\nlog_format: json\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := cfg.LoadFromFile(path); err != nil {
		t.Fatal(err)
	}
	if cfg.GapDays != 30 {
		t.Errorf("got gap days %d, want 30", cfg.GapDays)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("got log format %q, want json", cfg.LogFormat)
	}
	// values the file does not set keep their defaults
	if cfg.DrugGroupCount != 147 {
		t.Errorf("got drug group count %d, want default 147", cfg.DrugGroupCount)
	}
	if !cfg.EmitLongFormat {
		t.Error("got long format disabled, want default enabled")
	}
}

func TestLoadFromFileRejectsBadYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("gap_days: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := cfg.LoadFromFile(path); err == nil {
		t.Error("expected an error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.CohortFile = "cohort.csv"
	valid.EventsFile = "events.csv"
	valid.OutputPath = "out"
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	missingOut := valid
	missingOut.OutputPath = ""
	if err := missingOut.Validate(); err == nil {
		t.Error("config without output path accepted")
	}

	badGap := valid
	badGap.GapDays = 0
	if err := badGap.Validate(); err == nil {
		t.Error("config with zero gap threshold accepted")
	}

	badFormat := valid
	badFormat.LogFormat = "xml"
	if err := badFormat.Validate(); err == nil {
		t.Error("config with unknown log format accepted")
	}
}
