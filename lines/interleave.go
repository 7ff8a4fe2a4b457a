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

import (
	"tline/utils"
)

// Interleaving of unspecified records into the specified-line timeline. Every DayRecord gets a provisional line
// number such that an unspecified record sitting between two specified records of the same specified line, within
// the gap tolerance, is folded into that line rather than splitting it. Two passes over the date-sorted records:
// a forward pass assigns provisional numbers from a small retained-state accumulator, a backward pass pulls
// trapped unspecified-only segments forward into the lower of the two adjacent confirmed line numbers.

// interleaveState holds the values retained across records of one patient during the forward pass.
type interleaveState struct {
	prevDate Date
	prevSpec int //specified line of the previous record, 0 when it was unspecified
	confSpec int //specified line last confirmed as written, 0 before the first specified record
	confLine int //provisional line number the confirmed specified line was written under
	line     int //provisional line number just assigned
}

// InterleaveRecords assigns every DayRecord of one patient a provisional treatment-line number, then corrects
// trapped segments with a backward pass. Records with a zero date are placeholders: they are forced to line 0
// and excluded from further processing. gapDays is the maximum gap between two records of the same line.
func InterleaveRecords(records []*DayRecord, gapDays int) {
	active := make([]*DayRecord, 0, len(records))
	for _, rec := range records {
		if rec.Date.IsZero() {
			rec.Line = 0
			continue
		}
		active = append(active, rec)
	}
	forwardAssign(active, gapDays)
	backwardCorrect(active)
}

// forwardAssign is the forward pass. For every record after the first, a line boundary candidate arises when the
// date gap exceeds the tolerance or when two consecutive specified records carry different specified lines. A
// boundary caused only by an intervening unspecified gap, with the current record's specified line matching the
// line last confirmed as written, re-attaches to that confirmed number instead of incrementing. Within tolerance,
// a specified record following an unspecified run also re-attaches when it matches the confirmed line.
func forwardAssign(records []*DayRecord, gapDays int) {
	var st interleaveState
	for i, rec := range records {
		if i == 0 {
			st.line = 1
		} else {
			gap := DaysBetween(st.prevDate, rec.Date)
			specConflict := rec.SpecLine != 0 && st.prevSpec != 0 && rec.SpecLine != st.prevSpec
			if gap > gapDays || specConflict {
				if rec.SpecLine != 0 && st.prevSpec == 0 && rec.SpecLine == st.confSpec {
					// false trigger: the gap came from an intervening unspecified record, the
					// specified line itself never changed
					st.line = st.confLine
				} else {
					st.line++
				}
			} else if st.prevSpec == 0 && rec.SpecLine != 0 && rec.SpecLine == st.confSpec && st.confLine < st.line {
				// the unspecified run started a new provisional line, but the specified line
				// continues; re-attach to the earlier confirmed number
				st.line = st.confLine
			}
		}
		rec.Line = st.line
		if rec.SpecLine != 0 {
			st.confSpec = rec.SpecLine
			st.confLine = st.line
		}
		st.prevDate = rec.Date
		st.prevSpec = rec.SpecLine
	}
}

// backwardCorrect is the backward pass. In reverse date order, any record whose provisional number exceeds the
// number of the following record is lowered to it. This pulls unspecified-only segments that were trapped
// between two records of the same line into that line.
func backwardCorrect(records []*DayRecord) {
	if len(records) < 2 {
		return
	}
	next := records[len(records)-1].Line
	for i := len(records) - 2; i >= 0; i-- {
		records[i].Line = utils.MinInt(records[i].Line, next)
		next = records[i].Line
	}
}
