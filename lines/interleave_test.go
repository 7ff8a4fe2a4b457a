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

import "testing"

const testGapDays = 45

func segmentAndInterleave(records []*DayRecord) {
	SegmentSpecified(records)
	InterleaveRecords(records, testGapDays)
}

func TestInterleaveGapSplitsLine(t *testing.T) {
	d := mkDate(2020, 1, 1)
	records := []*DayRecord{
		specRec(d, 3),
		specRec(d.AddDays(testGapDays+1), 3), // same drug set, but beyond tolerance
	}
	segmentAndInterleave(records)
	checkLines(t, records, []int{1, 2})
}

func TestInterleaveGapAtToleranceStaysOneLine(t *testing.T) {
	d := mkDate(2020, 1, 1)
	records := []*DayRecord{
		specRec(d, 3),
		specRec(d.AddDays(testGapDays), 3),
	}
	segmentAndInterleave(records)
	checkLines(t, records, []int{1, 1})
}

func TestInterleaveSetChangeSplitsWithinTolerance(t *testing.T) {
	d := mkDate(2020, 1, 1)
	records := []*DayRecord{
		specRec(d, 3),
		specRec(d.AddDays(7), 3, 7),
	}
	segmentAndInterleave(records)
	checkLines(t, records, []int{1, 2})
}

func TestInterleaveUnspecifiedJoinsSurroundingLine(t *testing.T) {
	d := mkDate(2020, 1, 1)
	records := []*DayRecord{
		specRec(d, 3),
		unspecRec(d.AddDays(20), ClassTKI, ClassOther),
		specRec(d.AddDays(40), 3),
	}
	segmentAndInterleave(records)
	checkLines(t, records, []int{1, 1, 1})
}

func TestInterleaveFalseTriggerReattaches(t *testing.T) {
	// the gap beyond tolerance is between the unspecified detour and the next specified record; the
	// specified line itself never changed, so the specified record re-attaches to it
	d := mkDate(2020, 1, 1)
	records := []*DayRecord{
		specRec(d, 3),
		unspecRec(d.AddDays(40), ClassTKI, ClassOther),
		specRec(d.AddDays(40+testGapDays+5), 3),
	}
	segmentAndInterleave(records)
	checkLines(t, records, []int{1, 1, 1})
}

func TestInterleaveTrappedUnspecifiedPulledForward(t *testing.T) {
	// the unspecified record opens a provisional new line after a large gap, but the following specified
	// record continues the earlier line; the backward pass lowers the trapped record
	d := mkDate(2020, 1, 1)
	records := []*DayRecord{
		specRec(d, 3),
		unspecRec(d.AddDays(testGapDays+5), ClassTKI, ClassOther),
		specRec(d.AddDays(testGapDays+15), 3),
	}
	segmentAndInterleave(records)
	checkLines(t, records, []int{1, 1, 1})
}

func TestInterleaveUnspecifiedStartsNewLineBeforeSetChange(t *testing.T) {
	d := mkDate(2020, 1, 1)
	records := []*DayRecord{
		specRec(d, 3),
		unspecRec(d.AddDays(100), ClassChemo),
		specRec(d.AddDays(110), 5), // different drug set, new specified line
	}
	segmentAndInterleave(records)
	checkLines(t, records, []int{1, 2, 2})
}

func TestInterleaveTrailingUnspecifiedExtendsLine(t *testing.T) {
	d := mkDate(2020, 1, 1)
	records := []*DayRecord{
		specRec(d, 3),
		unspecRec(d.AddDays(30), ClassTKI),
	}
	segmentAndInterleave(records)
	checkLines(t, records, []int{1, 1})
}

func TestInterleaveZeroDatePlaceholderGetsLineZero(t *testing.T) {
	d := mkDate(2020, 1, 1)
	placeholder := specRec(Date{}, 3)
	records := []*DayRecord{
		placeholder,
		specRec(d, 3),
		specRec(d.AddDays(7), 3),
	}
	segmentAndInterleave(records)
	if placeholder.Line != 0 {
		t.Errorf("placeholder record: got line %d, want 0", placeholder.Line)
	}
	if records[1].Line != 1 || records[2].Line != 1 {
		t.Errorf("got lines %v for dated records, want 1", lineNumbers(records[1:]))
	}
}

func TestInterleaveLineNumbersNonDecreasingAfterCorrection(t *testing.T) {
	d := mkDate(2020, 1, 1)
	records := []*DayRecord{
		specRec(d, 3),
		specRec(d.AddDays(testGapDays+1), 3),
		unspecRec(d.AddDays(2*testGapDays+10), ClassOther),
		specRec(d.AddDays(3*testGapDays+20), 8),
	}
	segmentAndInterleave(records)
	for i := 1; i < len(records); i++ {
		if records[i].Line < records[i-1].Line {
			t.Errorf("line numbers decrease at record %d: %v", i, lineNumbers(records))
		}
	}
}
