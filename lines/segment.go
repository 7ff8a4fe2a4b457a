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

// Specified-line segmentation: walking a patient's specified-only records in date order, a new specified line
// starts whenever the active drug-group set differs from the set of the immediately preceding specified record.
// Set inequality is literal: adding or removing a single drug-group id triggers a new line.

// SegmentSpecified tags every specified DayRecord with a monotonically increasing specified-line number,
// starting at 1. Unspecified records keep SpecLine 0. It returns the number of specified lines found.
func SegmentSpecified(records []*DayRecord) int {
	var currentSet []int
	currentLine := 0
	for _, rec := range records {
		if rec.Unspecified || rec.Date.IsZero() {
			continue
		}
		if currentLine == 0 || !groupsEqual(rec.Groups, currentSet) {
			currentLine++
			currentSet = rec.Groups
		}
		rec.SpecLine = currentLine
	}
	return currentLine
}
