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

package app

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"tline/lines"
)

//The tline program has 3 data inputs:
//A cohort file, associating a patient ID (PID) with an index date and a follow-up end date.
//A file with therapy events, mapping PID -> date, drug-group id, therapy classes.
//An optional classifier file, mapping raw treatment codes -> drug-group id, therapy classes. When it is given,
//the events file may carry raw treatment codes instead of pre-classified drug groups.

// Classifier is the code-to-drug-group lookup table: it maps a raw treatment code onto a numeric drug group and
// the therapy classes that group represents. Group 0 denotes an unspecified code; its class list is the
// candidate list of classes the code could stand for.
type Classifier struct {
	GroupOf       map[string]int     //treatment code -> drug-group id
	ClassesOf     map[string][]lines.Class //treatment code -> resolved or candidate class list
	NofDrugGroups int                //declared vocabulary size, bounds the group ids
}

// ParseClassifier parses the lookup table from a csv file with columns: treatment_code, drug_group, classes.
// Group ids must lie in [0, nofDrugGroups].
func ParseClassifier(file string, nofDrugGroups int, logger zerolog.Logger) (*Classifier, error) {
	csvFile, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open classifier file: %w", err)
	}
	defer csvFile.Close()
	classifier := &Classifier{
		GroupOf:       map[string]int{},
		ClassesOf:     map[string][]lines.Class{},
		NofDrugGroups: nofDrugGroups,
	}
	reader := csv.NewReader(csvFile)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read classifier file: %w", err)
		}
		if record[0] == "treatment_code" {
			continue //header
		}
		code := record[0]
		group, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("classifier code %s: invalid drug group %q", code, record[1])
		}
		if group < 0 || group > nofDrugGroups {
			return nil, fmt.Errorf("classifier code %s: drug group %d outside vocabulary [0,%d]",
				code, group, nofDrugGroups)
		}
		classes, err := lines.ParseClassList(record[2])
		if err != nil {
			return nil, fmt.Errorf("classifier code %s: %w", code, err)
		}
		classifier.GroupOf[code] = group
		classifier.ClassesOf[code] = classes
	}
	logger.Info().Int("codes", len(classifier.GroupOf)).Msg("parsed classifier table")
	return classifier, nil
}

// Classify returns the drug group and class list for a raw treatment code. An unmapped code yields group 0 with
// an empty candidate list, which propagates to an empty-class line for manual review instead of failing the run.
func (c *Classifier) Classify(code string) (int, []lines.Class) {
	group, ok := c.GroupOf[code]
	if !ok {
		return 0, []lines.Class{}
	}
	return group, c.ClassesOf[code]
}

// ParseCohort parses the cohort table from a csv file with columns: patient_id, index_date, followup_end. One
// row per patient; the dates define the processing window.
func ParseCohort(file string, logger zerolog.Logger) (*lines.PatientMap, error) {
	csvFile, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open cohort file: %w", err)
	}
	defer csvFile.Close()
	patients := lines.NewPatientMap()
	reader := csv.NewReader(csvFile)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read cohort file: %w", err)
		}
		if record[0] == "patient_id" {
			continue //header
		}
		indexDate, err := lines.ParseDate(record[1])
		if err != nil {
			return nil, fmt.Errorf("cohort patient %s: %w", record[0], err)
		}
		followUpEnd, err := lines.ParseDate(record[2])
		if err != nil {
			return nil, fmt.Errorf("cohort patient %s: %w", record[0], err)
		}
		patients.AddPatient(record[0], indexDate, followUpEnd)
	}
	logger.Info().Int("patients", patients.Ctr).Msg("parsed cohort table")
	return patients, nil
}

// ParseEvents parses the therapy event table and fills in the events for the given patients. Without a
// classifier the file must be pre-classified with columns: patient_id, date, drug_group, classes. With a
// classifier the file carries raw codes instead: patient_id, date, treatment_code. Events of patients not in the
// cohort are skipped.
func ParseEvents(file string, patients *lines.PatientMap, classifier *Classifier, logger zerolog.Logger) error {
	csvFile, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open events file: %w", err)
	}
	defer csvFile.Close()
	reader := csv.NewReader(csvFile)
	ctr := 0        //for counting the number of parsed events
	ctrUnknown := 0 //events of patients missing from the cohort
	ctrUnspec := 0  //events with an unspecified drug code
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read events file: %w", err)
		}
		if record[0] == "patient_id" {
			continue //header
		}
		patient, ok := lines.GetPatient(record[0], patients)
		if !ok {
			ctrUnknown++
			continue //skip unknown patients
		}
		date, err := lines.ParseDate(record[1])
		if err != nil {
			return fmt.Errorf("event for patient %s: %w", record[0], err)
		}
		var group int
		var classes []lines.Class
		if classifier != nil {
			group, classes = classifier.Classify(record[2])
		} else {
			group, err = strconv.Atoi(record[2])
			if err != nil {
				return fmt.Errorf("event for patient %s: invalid drug group %q", record[0], record[2])
			}
			classes, err = lines.ParseClassList(record[3])
			if err != nil {
				return fmt.Errorf("event for patient %s: %w", record[0], err)
			}
		}
		ctr++
		if group == 0 {
			ctrUnspec++
		}
		lines.AddEvent(patient, &lines.Event{PID: patient.PID, Date: date, Group: group, Classes: classes})
	}
	logger.Info().
		Int("events", ctr).
		Int("unspecified", ctrUnspec).
		Int("unknownPatients", ctrUnknown).
		Msg("parsed event table")
	return nil
}
