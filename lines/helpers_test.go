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

func mkDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// specRec builds a specified DayRecord with the given drug groups. Classes default to one class per group via
// Class(group % int(ClassOther)), mirroring how the simulator classifies groups.
func specRec(d Date, groups ...int) *DayRecord {
	classes := []Class{}
	for _, g := range groups {
		classes = appendClass(classes, Class(g%int(ClassOther)))
	}
	return &DayRecord{Date: d, Groups: groups, Classes: classes}
}

// unspecRec builds an unspecified DayRecord carrying the given candidate class list.
func unspecRec(d Date, candidates ...Class) *DayRecord {
	return &DayRecord{Date: d, Groups: []int{}, Unspecified: true, Classes: candidates}
}

func lineNumbers(records []*DayRecord) []int {
	result := make([]int, len(records))
	for i, rec := range records {
		result[i] = rec.Line
	}
	return result
}

func checkLines(t *testing.T, records []*DayRecord, want []int) {
	t.Helper()
	got := lineNumbers(records)
	if len(got) != len(want) {
		t.Fatalf("got %d line numbers %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d (%v): got line %d, want %d", i, records[i].Date, got[i], want[i])
		}
	}
}

func classListEqual(l1, l2 []Class) bool {
	if len(l1) != len(l2) {
		return false
	}
	for i := range l1 {
		if l1[i] != l2[i] {
			return false
		}
	}
	return true
}
