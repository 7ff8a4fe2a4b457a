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
	"errors"
	"testing"
)

func groupOf(number int, records ...*DayRecord) *LineGroup {
	g := &LineGroup{Number: number, Records: records}
	for _, rec := range records {
		if !rec.Unspecified {
			g.HasSpecified = true
		}
	}
	return g
}

func TestBoundaryEndExtendsByGap(t *testing.T) {
	d := mkDate(2020, 1, 1)
	p := &Patient{PID: 1, PIDString: "p1", FollowUpEnd: mkDate(2022, 1, 1)}
	groups := []*LineGroup{
		groupOf(1, specRec(d, 3), specRec(d.AddDays(14), 3)),
	}
	result, err := ComputeBoundaries(p, groups, testGapDays)
	if err != nil {
		t.Fatal(err)
	}
	line := result[0]
	if !dateEqual(line.Start, d) {
		t.Errorf("got start %v, want %v", line.Start, d)
	}
	wantEnd := d.AddDays(14 + testGapDays)
	if !dateEqual(line.End, wantEnd) {
		t.Errorf("got end %v, want %v", line.End, wantEnd)
	}
	if line.Duration != 14+testGapDays {
		t.Errorf("got duration %d, want %d", line.Duration, 14+testGapDays)
	}
}

func TestBoundaryEndCappedAtFollowUpEnd(t *testing.T) {
	d := mkDate(2020, 1, 1)
	followUpEnd := d.AddDays(20)
	p := &Patient{PID: 1, PIDString: "p1", FollowUpEnd: followUpEnd}
	groups := []*LineGroup{
		groupOf(1, specRec(d, 3), specRec(d.AddDays(14), 3)),
	}
	result, err := ComputeBoundaries(p, groups, testGapDays)
	if err != nil {
		t.Fatal(err)
	}
	if !dateEqual(result[0].End, followUpEnd) {
		t.Errorf("got end %v, want follow-up end %v", result[0].End, followUpEnd)
	}
}

func TestBoundaryNoCapWithoutFollowUpEnd(t *testing.T) {
	d := mkDate(2020, 1, 1)
	p := &Patient{PID: 1, PIDString: "p1"}
	groups := []*LineGroup{
		groupOf(1, specRec(d, 3)),
	}
	result, err := ComputeBoundaries(p, groups, testGapDays)
	if err != nil {
		t.Fatal(err)
	}
	if !dateEqual(result[0].End, d.AddDays(testGapDays)) {
		t.Errorf("got end %v, want %v", result[0].End, d.AddDays(testGapDays))
	}
}

func TestBoundaryConsecutiveLinesDoNotOverlap(t *testing.T) {
	d := mkDate(2020, 1, 1)
	p := &Patient{PID: 1, PIDString: "p1", FollowUpEnd: mkDate(2022, 1, 1)}
	// the second line starts before the first line's extended end
	groups := []*LineGroup{
		groupOf(1, specRec(d, 3)),
		groupOf(2, specRec(d.AddDays(10), 5)),
	}
	result, err := ComputeBoundaries(p, groups, testGapDays)
	if err != nil {
		t.Fatal(err)
	}
	wantEnd := d.AddDays(9)
	if !dateEqual(result[0].End, wantEnd) {
		t.Errorf("got first-line end %v, want %v (day before next start)", result[0].End, wantEnd)
	}
	if !DateSmallerThan(result[0].End, result[1].Start) {
		t.Errorf("lines overlap: end %v, next start %v", result[0].End, result[1].Start)
	}
	if result[0].Duration != 9 {
		t.Errorf("got duration %d, want 9", result[0].Duration)
	}
}

func TestBoundaryChainedTrim(t *testing.T) {
	d := mkDate(2020, 1, 1)
	p := &Patient{PID: 1, PIDString: "p1", FollowUpEnd: mkDate(2022, 1, 1)}
	groups := []*LineGroup{
		groupOf(1, specRec(d, 3)),
		groupOf(2, specRec(d.AddDays(10), 5)),
		groupOf(3, specRec(d.AddDays(20), 7)),
	}
	result, err := ComputeBoundaries(p, groups, testGapDays)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(result)-1; i++ {
		if !DateSmallerThan(result[i].End, result[i+1].Start) {
			t.Errorf("line %d overlaps line %d: end %v, next start %v",
				result[i].Number, result[i+1].Number, result[i].End, result[i+1].Start)
		}
	}
}

func TestBoundaryNegativeDurationIsValidationError(t *testing.T) {
	d := mkDate(2020, 1, 1)
	// follow-up end before the line start forces a negative duration
	p := &Patient{PID: 1, PIDString: "p1", FollowUpEnd: d.AddDays(-10)}
	groups := []*LineGroup{
		groupOf(1, specRec(d, 3)),
	}
	_, err := ComputeBoundaries(p, groups, testGapDays)
	if err == nil {
		t.Fatal("expected a validation error for a negative duration")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got error %T, want *ValidationError", err)
	}
	if vErr.PIDString != "p1" || vErr.Line != 1 || vErr.Duration >= 0 {
		t.Errorf("got %+v, want patient p1, line 1, negative duration", vErr)
	}
}
