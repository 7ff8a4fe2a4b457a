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

import "sort"

// Line renumbering and class resolution. Lines get dense consecutive numbers per patient; the therapy-class list
// per line prefers specified evidence and falls back to unspecified candidate lists. A line whose class list
// overlaps the previous line's list, while that previous line rests on a single record, is absorbed into it:
// such splits are caused purely by unspecified-class ambiguity.

// LineGroup is the intermediate grouping of DayRecords into one resolved treatment line.
type LineGroup struct {
	Number       int
	Records      []*DayRecord
	Classes      []Class
	HasSpecified bool
	Groups       []int
}

// resolveGroupClasses computes a line group's class list from its records. The first record's list seeds the
// line list; every subsequent record either confirms it (any class in common) or replaces it wholesale when
// nothing overlaps (most recent no-overlap record wins). Records with an empty class list carry no evidence and
// are skipped.
func resolveGroupClasses(group *LineGroup) {
	classes := []Class{}
	seeded := false
	for _, rec := range group.Records {
		if len(rec.Classes) == 0 {
			continue
		}
		if !seeded {
			classes = append([]Class{}, rec.Classes...)
			seeded = true
			continue
		}
		if !ClassListsOverlap(rec.Classes, classes) {
			classes = append([]Class{}, rec.Classes...)
		}
	}
	group.Classes = classes
}

// collectGroups splits the corrected record stream into maximal runs of records sharing a provisional line
// number. Records on line 0 are placeholders and excluded.
func collectGroups(records []*DayRecord) []*LineGroup {
	groups := []*LineGroup{}
	var cur *LineGroup
	for _, rec := range records {
		if rec.Line == 0 {
			continue
		}
		if cur == nil || rec.Line != cur.Number {
			cur = &LineGroup{Number: rec.Line}
			groups = append(groups, cur)
		}
		cur.Records = append(cur.Records, rec)
		if !rec.Unspecified {
			cur.HasSpecified = true
		}
		for _, g := range rec.Groups {
			cur.Groups = appendGroup(cur.Groups, g)
		}
	}
	return groups
}

// mergeGroups absorbs the second group into the first. The merged class list prefers the side with specified
// evidence; when neither side has any, the overlapping candidate classes win, in the order of the absorbed
// group's list.
func mergeGroups(g1, g2 *LineGroup) {
	switch {
	case g2.HasSpecified:
		g1.Classes = g2.Classes
	case g1.HasSpecified:
		// keep g1.Classes
	default:
		overlap := intersectClassLists(g2.Classes, g1.Classes)
		if len(overlap) > 0 {
			g1.Classes = overlap
		} else {
			g1.Classes = g2.Classes
		}
	}
	g1.Records = append(g1.Records, g2.Records...)
	g1.HasSpecified = g1.HasSpecified || g2.HasSpecified
	for _, g := range g2.Groups {
		g1.Groups = appendGroup(g1.Groups, g)
	}
}

// ResolveLines turns a patient's corrected DayRecord stream into renumbered line groups with resolved class
// lists. Per line it resolves the class list from record evidence (steps A and B), absorbs lines split purely by
// class-list noise into their single-record predecessor (step C), collapses true-unspecified lines to a single
// generic or specific label (step D), and orders the final list canonically (step E). The records' Line fields
// are rewritten to the final visible numbers.
func ResolveLines(records []*DayRecord) []*LineGroup {
	groups := collectGroups(records)
	for _, group := range groups {
		resolveGroupClasses(group)
	}
	// cross-line deduplication and renumbering
	result := []*LineGroup{}
	for _, group := range groups {
		if len(result) > 0 {
			prev := result[len(result)-1]
			if len(prev.Records) == 1 && ClassListsOverlap(group.Classes, prev.Classes) {
				mergeGroups(prev, group)
				continue
			}
		}
		result = append(result, group)
	}
	for i, group := range result {
		group.Number = i + 1
		// true-unspecified collapsing: multiple candidates degrade to the generic label, a single
		// candidate is a high-confidence attribution
		if !group.HasSpecified && len(group.Classes) > 1 {
			group.Classes = []Class{ClassUnspecified}
		}
		group.Classes = SortClassesCanonical(group.Classes)
		sort.Ints(group.Groups)
		for _, rec := range group.Records {
			rec.Line = group.Number
		}
	}
	return result
}
