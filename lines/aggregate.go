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

// Same-date aggregation: all events of one patient on one date collapse into a single DayRecord. When a date
// carries both specified and unspecified events, the unspecified ones are dropped because specified evidence
// always wins on same-day conflicts.

// memberInt checks if an int occurs as an entry in a list of ints.
func memberInt(g int, list []int) bool {
	for _, g2 := range list {
		if g2 == g {
			return true
		}
	}
	return false
}

// appendGroup appends a drug-group id to a list, unless that id is already a member of that list.
func appendGroup(list []int, g int) []int {
	if !memberInt(g, list) {
		return append(list, g)
	}
	return list
}

// groupsEqual compares two sorted drug-group id sets.
func groupsEqual(g1, g2 []int) bool {
	if len(g1) != len(g2) {
		return false
	}
	for i, g := range g1 {
		if g2[i] != g {
			return false
		}
	}
	return true
}

// aggregateDate collapses the events of one date into a DayRecord.
func aggregateDate(events []*Event) *DayRecord {
	anySpecified := false
	for _, e := range events {
		if e.Group != 0 {
			anySpecified = true
			break
		}
	}
	rec := &DayRecord{
		PID:         events[0].PID,
		Date:        events[0].Date,
		Groups:      []int{},
		Unspecified: !anySpecified,
		Classes:     []Class{},
	}
	for _, e := range events {
		if anySpecified && e.Group == 0 {
			continue // drop unspecified events when specified evidence exists on this date
		}
		if e.Group != 0 {
			rec.Groups = appendGroup(rec.Groups, e.Group)
		}
		rec.Classes = mergeClassLists(rec.Classes, e.Classes)
	}
	sort.Ints(rec.Groups)
	return rec
}

// AggregateDayRecords derives the ordered DayRecord sequence for one patient. It sorts and de-duplicates the
// patient's events first, then emits one record per distinct date. The result is stored on the patient and
// returned.
func AggregateDayRecords(p *Patient) []*DayRecord {
	SortEvents(p)
	CompactEvents(p)
	records := []*DayRecord{}
	var dayEvents []*Event
	for _, e := range p.Events {
		if len(dayEvents) > 0 && !dateEqual(dayEvents[0].Date, e.Date) {
			records = append(records, aggregateDate(dayEvents))
			dayEvents = dayEvents[:0]
		}
		dayEvents = append(dayEvents, e)
	}
	if len(dayEvents) > 0 {
		records = append(records, aggregateDate(dayEvents))
	}
	p.Records = records
	return records
}
