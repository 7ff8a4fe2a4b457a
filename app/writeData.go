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
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"tline/lines"
)

// WriteLines stores the derived treatment lines as a csv table with one row per (patient, line):
// patient_id, line, start, end, duration_days, classes, has_specified, drug_groups.
func WriteLines(tLines []*lines.TreatmentLine, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("create lines file: %w", err)
	}
	defer f.Close()
	writer := csv.NewWriter(f)
	header := []string{"patient_id", "line", "start", "end", "duration_days", "classes", "has_specified", "drug_groups"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write lines file: %w", err)
	}
	for _, line := range tLines {
		record := []string{
			line.PIDString,
			strconv.Itoa(line.Number),
			line.Start.String(),
			line.End.String(),
			strconv.Itoa(line.Duration),
			lines.FormatClassList(line.Classes),
			strconv.FormatBool(line.HasSpecified),
			lines.FormatGroups(line.Groups),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write lines file: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteLongFormat stores the per-record audit table: one row per DayRecord with its resolved line number and
// that line's boundaries and class list. This output can be mapped back to the input shape to reproduce the
// derivation.
func WriteLongFormat(patients []*lines.Patient, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("create long-format file: %w", err)
	}
	defer f.Close()
	writer := csv.NewWriter(f)
	header := []string{"patient_id", "date", "drug_groups", "unspecified", "record_classes", "line", "line_start", "line_end", "line_classes"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write long-format file: %w", err)
	}
	for _, p := range patients {
		lineByNumber := map[int]*lines.TreatmentLine{}
		for _, line := range p.Lines {
			lineByNumber[line.Number] = line
		}
		for _, rec := range p.Records {
			record := []string{
				p.PIDString,
				rec.Date.String(),
				lines.FormatGroups(rec.Groups),
				strconv.FormatBool(rec.Unspecified),
				lines.FormatClassList(rec.Classes),
				strconv.Itoa(rec.Line),
				"", "", "",
			}
			if line, ok := lineByNumber[rec.Line]; ok {
				record[6] = line.Start.String()
				record[7] = line.End.String()
				record[8] = lines.FormatClassList(line.Classes)
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("write long-format file: %w", err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
