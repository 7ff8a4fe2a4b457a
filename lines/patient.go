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
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Date represents the date of a therapy administration, with fields for representing the year, month, and day.
type Date struct {
	Year, Month, Day int
}

// DateSmallerThan compares two dates chronologically.
func DateSmallerThan(d1, d2 Date) bool {
	if d1.Year < d2.Year {
		return true
	}
	if d1.Year > d2.Year {
		return false
	}
	if d1.Month < d2.Month {
		return true
	}
	if d1.Month > d2.Month {
		return false
	}
	if d1.Day < d2.Day {
		return true
	}
	return false
}

func dateEqual(d1, d2 Date) bool {
	return d1.Year == d2.Year && d1.Month == d2.Month && d1.Day == d2.Day
}

// IsZero checks if a date is the zero value. Placeholder records without a date are excluded from segmentation.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of days from d1 to d2. The result is negative when d2 precedes d1.
func DaysBetween(d1, d2 Date) int {
	return int(d2.time().Sub(d1.time()) / (24 * time.Hour))
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	t := d.time().AddDate(0, 0, n)
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	year, err := strconv.Atoi(s[0:4])
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %v", s, err)
	}
	month, err := strconv.Atoi(s[5:7])
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %v", s, err)
	}
	day, err := strconv.Atoi(s[8:10])
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %v", s, err)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// Event represents one therapy contact for one patient, date, and drug. Group 0 denotes an unspecified drug code;
// in that case Classes holds the candidate class list the code could represent. Events are read-only inputs
// produced by the external drug classifier.
type Event struct {
	PID     int
	Date    Date
	Group   int
	Classes []Class
}

// DayRecord collapses all events of one patient on one date into one unit. Groups holds the surviving drug-group
// ids in ascending order; it is empty for a purely unspecified record. SpecLine and Line are filled in during
// segmentation.
type DayRecord struct {
	PID         int
	Date        Date
	Groups      []int
	Unspecified bool
	Classes     []Class
	SpecLine    int //specified-line number, 0 when unspecified
	Line        int //resolved treatment-line number
}

// TreatmentLine is the final per-patient episode: a contiguous run of therapy grouped by drug class, with
// start/end dates truncated against the follow-up window and not overlapping the next line.
type TreatmentLine struct {
	PID          int
	PIDString    string
	Number       int
	Start, End   Date
	Duration     int //days, End - Start
	Classes      []Class
	HasSpecified bool //whether any specified record informed the line
	Groups       []int
	NofRecords   int
}

// Patient represents one cohort member with its processing window and therapy events.
type Patient struct {
	PID         int      //analysis ID
	PIDString   string   //ID from the input
	IndexDate   Date     //start of the follow-up window
	FollowUpEnd Date     //end of the follow-up window
	Events      []*Event //therapy events, sorted by date <
	Records     []*DayRecord
	Lines       []*TreatmentLine
}

// AddEvent appends an event to a patient's list of events.
func AddEvent(p *Patient, e *Event) {
	p.Events = append(p.Events, e)
}

// SortEvents modifies a given patient's list of events to be ordered by date, then drug-group id.
func SortEvents(p *Patient) {
	events := p.Events
	sort.Slice(events, func(i, j int) bool {
		if dateEqual(events[i].Date, events[j].Date) {
			return events[i].Group < events[j].Group
		}
		return DateSmallerThan(events[i].Date, events[j].Date)
	})
}

func eventEqual(e1, e2 *Event) bool {
	return e1.PID == e2.PID && e1.Group == e2.Group && dateEqual(e1.Date, e2.Date)
}

// CompactEvents makes a sorted event list contain unique (patient, date, drug-group) entries. Duplicate rows in
// the input are dropped silently.
func CompactEvents(p *Patient) {
	if len(p.Events) > 1 {
		events := p.Events
		curEvent := events[0]
		newEvents := []*Event{curEvent}
		for _, event := range events[1:] {
			if !eventEqual(curEvent, event) {
				curEvent = event
				newEvents = append(newEvents, curEvent)
			}
		}
		p.Events = newEvents
	}
}

// PatientMap contains all patient information parsed from the input.
type PatientMap struct {
	PIDStringMap map[string]int   //maps patient string id onto an int PID
	Ctr          int              //total nr of patients parsed, also used for creating PIDs
	PIDMap       map[int]*Patient //maps PID onto a patient object
}

// NewPatientMap creates an empty patient map.
func NewPatientMap() *PatientMap {
	return &PatientMap{PIDStringMap: map[string]int{}, PIDMap: map[int]*Patient{}}
}

// AddPatient registers a patient under a fresh analysis PID and returns it. If the string id is already known,
// the existing patient is returned instead.
func (pMap *PatientMap) AddPatient(pidString string, indexDate, followUpEnd Date) *Patient {
	if pid, ok := pMap.PIDStringMap[pidString]; ok {
		return pMap.PIDMap[pid]
	}
	pMap.Ctr++ // avoid using 0 as PID
	pid := pMap.Ctr
	patient := &Patient{
		PID:         pid,
		PIDString:   pidString,
		IndexDate:   indexDate,
		FollowUpEnd: followUpEnd,
		Events:      []*Event{},
	}
	pMap.PIDMap[pid] = patient
	pMap.PIDStringMap[pidString] = pid
	return patient
}

// GetPatient retrieves from a patient map the patient object associated with a given patient ID. The patient ID is
// passed as a string and refers to the PID that occurs in the input.
func GetPatient(pidString string, patients *PatientMap) (*Patient, bool) {
	pid, ok := patients.PIDStringMap[pidString]
	if !ok {
		return &Patient{}, false
	}
	patient, ok := patients.PIDMap[pid]
	return patient, ok
}

// SortedPatients returns the patients of a map ordered by analysis PID, for deterministic output.
func SortedPatients(patients *PatientMap) []*Patient {
	result := make([]*Patient, 0, len(patients.PIDMap))
	for _, p := range patients.PIDMap {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PID < result[j].PID })
	return result
}

// FormatGroups renders a drug-group id set joined with ";", which keeps csv fields unquoted.
func FormatGroups(groups []int) string {
	strs := make([]string, len(groups))
	for i, g := range groups {
		strs[i] = strconv.Itoa(g)
	}
	return strings.Join(strs, ";")
}
