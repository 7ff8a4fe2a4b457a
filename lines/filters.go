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

// PatientFilter prescribes a function type for implementing filters on cohort patients, to be able to derive
// treatment lines for specific subpopulations. A filter may trim a patient's events and returns whether the
// patient stays in the cohort.
type PatientFilter func(patient *Patient) bool

func ApplyPatientFilters(filters []PatientFilter, pMap *PatientMap) *PatientMap {
	newPMap := &PatientMap{PIDStringMap: map[string]int{}, PIDMap: map[int]*Patient{}, Ctr: pMap.Ctr}
	for pid, p := range pMap.PIDMap {
		res := true
		for _, filter := range filters {
			res = filter(p) && res
			if !res {
				break
			}
		}
		if res {
			newPMap.PIDStringMap[p.PIDString] = pid
			newPMap.PIDMap[pid] = p
		}
	}
	return newPMap
}

// WindowFilter trims all events outside a patient's [index date, follow-up end] window. Patients stay in the
// cohort even when every event is trimmed away: they yield zero lines, which is a valid empty result.
func WindowFilter() PatientFilter {
	return func(p *Patient) bool {
		newE := []*Event{}
		for _, e := range p.Events {
			if !p.IndexDate.IsZero() && DateSmallerThan(e.Date, p.IndexDate) {
				continue
			}
			if !p.FollowUpEnd.IsZero() && DateSmallerThan(p.FollowUpEnd, e.Date) {
				continue
			}
			newE = append(newE, e)
		}
		p.Events = newE
		return true
	}
}

// NonEmptyFilter removes all patients without any events in the window.
func NonEmptyFilter() PatientFilter {
	return func(p *Patient) bool {
		return len(p.Events) > 0
	}
}
