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

func TestParseClassListRoundTrip(t *testing.T) {
	s := "Chemo+PD-L1/PD-1"
	classes, err := ParseClassList(s)
	if err != nil {
		t.Fatal(err)
	}
	if !classListEqual(classes, []Class{ClassChemo, ClassPDL1}) {
		t.Errorf("got %v, want [Chemo PD-L1/PD-1]", classes)
	}
	if got := FormatClassList(classes); got != s {
		t.Errorf("got %q, want %q", got, s)
	}
}

func TestParseClassListEmpty(t *testing.T) {
	classes, err := ParseClassList("")
	if err != nil {
		t.Fatal(err)
	}
	if len(classes) != 0 {
		t.Errorf("got %v, want an empty list", classes)
	}
}

func TestParseClassListUnknownName(t *testing.T) {
	if _, err := ParseClassList("Chemo+NotAClass"); err == nil {
		t.Error("expected an error for an unknown class name")
	}
}

func TestSortClassesCanonical(t *testing.T) {
	got := SortClassesCanonical([]Class{ClassOther, ClassChemo, ClassPDL1, ClassChemo, ClassUnspecified})
	want := []Class{ClassPDL1, ClassChemo, ClassOther, ClassUnspecified}
	if !classListEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassListsOverlap(t *testing.T) {
	if !ClassListsOverlap([]Class{ClassChemo, ClassTKI}, []Class{ClassTKI}) {
		t.Error("lists sharing TKI must overlap")
	}
	if ClassListsOverlap([]Class{ClassChemo}, []Class{ClassTKI}) {
		t.Error("disjoint lists must not overlap")
	}
	if ClassListsOverlap([]Class{}, []Class{ClassTKI}) {
		t.Error("the empty list overlaps nothing")
	}
}
