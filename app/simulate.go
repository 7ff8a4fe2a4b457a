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
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/valyala/fastrand"

	"tline/lines"
)

// Synthetic cohort generation for testing and benchmarking. The generated histories cover the interesting
// shapes for the segmenter: contiguous specified runs, drug-set changes, gaps beyond the threshold, and
// interleaved unspecified records with plausible candidate lists.

// SimConfig holds the simulator parameters.
type SimConfig struct {
	Patients       int    //number of patients to generate
	Seed           uint32 //rng seed, for reproducible cohorts
	GapDays        int    //gap threshold the generated gaps are calibrated against
	DrugGroupCount int    //drug-group vocabulary size
}

// simGroupClass assigns a specified therapy class to a drug group. The simulator spreads the vocabulary over the
// eight specific classes; Other and Unspecified are never specified-drug classes.
func simGroupClass(group int) lines.Class {
	return lines.Class(group % int(lines.ClassOther))
}

// simulatePatient generates one patient's therapy history and appends the event rows to events.
func simulatePatient(rng *fastrand.RNG, cfg *SimConfig, pidString string, indexDate, followUpEnd lines.Date,
	events [][]string) [][]string {
	cursor := indexDate.AddDays(int(rng.Uint32n(30)))
	nofEpisodes := 1 + int(rng.Uint32n(4))
	for e := 0; e < nofEpisodes; e++ {
		// pick the active drug set for this episode
		nofGroups := 1 + int(rng.Uint32n(2))
		groups := []int{}
		for len(groups) < nofGroups {
			g := 1 + int(rng.Uint32n(uint32(cfg.DrugGroupCount)))
			member := false
			for _, g2 := range groups {
				if g2 == g {
					member = true
				}
			}
			if !member {
				groups = append(groups, g)
			}
		}
		nofAdmins := 2 + int(rng.Uint32n(4))
		for a := 0; a < nofAdmins; a++ {
			if lines.DateSmallerThan(followUpEnd, cursor) {
				return events
			}
			for _, g := range groups {
				events = append(events, []string{
					pidString,
					cursor.String(),
					strconv.Itoa(g),
					simGroupClass(g).String(),
				})
			}
			// occasionally an unspecified administration between specified ones, with the episode's
			// class among its candidates
			if rng.Uint32n(4) == 0 {
				mid := cursor.AddDays(1 + int(rng.Uint32n(uint32(cfg.GapDays/3+1))))
				if !lines.DateSmallerThan(followUpEnd, mid) {
					candidates := []lines.Class{simGroupClass(groups[0]), lines.ClassOther}
					events = append(events, []string{
						pidString,
						mid.String(),
						"0",
						lines.FormatClassList(candidates),
					})
				}
			}
			cursor = cursor.AddDays(1 + int(rng.Uint32n(uint32(cfg.GapDays))))
		}
		// jump beyond the threshold so the next episode starts a new line
		cursor = cursor.AddDays(cfg.GapDays + 1 + int(rng.Uint32n(60)))
	}
	return events
}

// Simulate writes a synthetic cohort.csv and events.csv into outputPath.
func Simulate(cfg *SimConfig, outputPath string, logger zerolog.Logger) error {
	var rng fastrand.RNG
	rng.Seed(cfg.Seed)
	cohortRows := [][]string{{"patient_id", "index_date", "followup_end"}}
	eventRows := [][]string{{"patient_id", "date", "drug_group", "classes"}}
	for i := 0; i < cfg.Patients; i++ {
		pidString := fmt.Sprintf("SIM%06d", i+1)
		indexDate := lines.Date{Year: 2018, Month: 1, Day: 1}.AddDays(int(rng.Uint32n(365)))
		followUpEnd := indexDate.AddDays(730)
		cohortRows = append(cohortRows, []string{pidString, indexDate.String(), followUpEnd.String()})
		eventRows = simulatePatient(&rng, cfg, pidString, indexDate, followUpEnd, eventRows)
	}
	if err := writeCsv(filepath.Join(outputPath, "cohort.csv"), cohortRows); err != nil {
		return err
	}
	if err := writeCsv(filepath.Join(outputPath, "events.csv"), eventRows); err != nil {
		return err
	}
	logger.Info().
		Int("patients", cfg.Patients).
		Int("events", len(eventRows)-1).
		Str("path", outputPath).
		Msg("simulated cohort written")
	return nil
}

func writeCsv(file string, rows [][]string) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("create %s: %w", file, err)
	}
	defer f.Close()
	writer := csv.NewWriter(f)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	return writer.Error()
}
