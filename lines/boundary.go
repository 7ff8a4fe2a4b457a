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

package lines

import "fmt"

// Boundary calculation: a line starts at its earliest record date and ends gapDays after its latest record date,
// capped at the patient's follow-up end. Consecutive lines of one patient must not overlap, so line ends are
// trimmed in reverse order against the next line's start.

// ValidationError reports a line whose duration came out negative after boundary trimming. This indicates an
// upstream date inconsistency (e.g. a follow-up end before the index date) and must be surfaced, not clamped.
type ValidationError struct {
	PIDString string
	Line      int
	Duration  int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("patient %s line %d: negative duration %d days, upstream date inconsistency",
		e.PIDString, e.Line, e.Duration)
}

// ComputeBoundaries computes the final TreatmentLine records for one patient from its resolved line groups.
// It returns a ValidationError when any line's duration is negative.
func ComputeBoundaries(p *Patient, groups []*LineGroup, gapDays int) ([]*TreatmentLine, error) {
	result := make([]*TreatmentLine, len(groups))
	for i, group := range groups {
		start := group.Records[0].Date
		last := group.Records[len(group.Records)-1].Date
		end := last.AddDays(gapDays)
		if !p.FollowUpEnd.IsZero() && DateSmallerThan(p.FollowUpEnd, end) {
			end = p.FollowUpEnd
		}
		result[i] = &TreatmentLine{
			PID:          p.PID,
			PIDString:    p.PIDString,
			Number:       group.Number,
			Start:        start,
			End:          end,
			Classes:      group.Classes,
			HasSpecified: group.HasSpecified,
			Groups:       group.Groups,
			NofRecords:   len(group.Records),
		}
	}
	// trim overlaps against the next line, latest line first
	for i := len(result) - 2; i >= 0; i-- {
		next := result[i+1]
		if !DateSmallerThan(result[i].End, next.Start) {
			result[i].End = next.Start.AddDays(-1)
		}
	}
	for _, line := range result {
		line.Duration = DaysBetween(line.Start, line.End)
		if line.Duration < 0 {
			return nil, &ValidationError{PIDString: p.PIDString, Line: line.Number, Duration: line.Duration}
		}
	}
	return result, nil
}
