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
	"sort"

	"github.com/exascience/pargo/parallel"
	"github.com/rs/zerolog"

	"tline/utils"
)

// The per-patient derivation pipeline. All segmentation state is scoped to one patient's record set, so
// derivation parallelizes across patients with no shared mutable state.

// DeriveLines runs the full pipeline for one patient: same-date aggregation, specified-line segmentation,
// unspecified-record interleaving, line renumbering with class resolution, and boundary calculation. The
// resulting lines and the resolved DayRecords are stored on the patient. A patient without events yields zero
// lines without error.
func DeriveLines(p *Patient, gapDays int) ([]*TreatmentLine, error) {
	records := AggregateDayRecords(p)
	if len(records) == 0 {
		p.Lines = []*TreatmentLine{}
		return p.Lines, nil
	}
	SegmentSpecified(records)
	InterleaveRecords(records, gapDays)
	groups := ResolveLines(records)
	result, err := ComputeBoundaries(p, groups, gapDays)
	if err != nil {
		p.Lines = []*TreatmentLine{}
		return nil, err
	}
	p.Lines = result
	return result, nil
}

// deriveResult accumulates lines and per-patient errors over a patient partition.
type deriveResult struct {
	lines []*TreatmentLine
	errs  []error
}

// DeriveAll derives treatment lines for all patients of a cohort, in parallel across patients. A validation
// error for one patient is reported and collected but does not abort the other patients' derivations. The
// returned lines are ordered by analysis PID, then line number.
func DeriveAll(patients *PatientMap, gapDays int, logger zerolog.Logger) ([]*TreatmentLine, []error) {
	sorted := SortedPatients(patients)
	result := parallel.RangeReduce(0, len(sorted), 0, func(low, high int) interface{} {
		res := &deriveResult{}
		for _, p := range sorted[low:high] {
			lines, err := DeriveLines(p, gapDays)
			if err != nil {
				logger.Error().Err(err).Str("patient", p.PIDString).Msg("patient skipped")
				res.errs = append(res.errs, err)
				continue
			}
			res.lines = append(res.lines, lines...)
		}
		return res
	}, func(result1, result2 interface{}) interface{} {
		r1 := result1.(*deriveResult)
		r2 := result2.(*deriveResult)
		r1.lines = append(r1.lines, r2.lines...)
		r1.errs = append(r1.errs, r2.errs...)
		return r1
	})
	res := result.(*deriveResult)
	sort.Slice(res.lines, func(i, j int) bool {
		if res.lines[i].PID == res.lines[j].PID {
			return res.lines[i].Number < res.lines[j].Number
		}
		return res.lines[i].PID < res.lines[j].PID
	})
	logger.Info().
		Int("patients", len(sorted)).
		Int("lines", len(res.lines)).
		Int("errors", len(res.errs)).
		Msg("derived treatment lines")
	return res.lines, res.errs
}

// LineMetrics summarizes derived lines for logging: number of lines, mean and maximum duration, and line counts
// per leading therapy class.
type LineMetrics struct {
	NofLines     int
	MeanDuration float64
	MaxDuration  int
	ClassCounts  map[Class]int
}

// MetricsFromLines computes summary metrics over a set of derived treatment lines.
func MetricsFromLines(lines []*TreatmentLine) LineMetrics {
	m := LineMetrics{NofLines: len(lines), ClassCounts: map[Class]int{}}
	total := 0
	for _, line := range lines {
		total += line.Duration
		m.MaxDuration = utils.MaxInt(m.MaxDuration, line.Duration)
		if len(line.Classes) > 0 {
			m.ClassCounts[line.Classes[0]]++
		}
	}
	if len(lines) > 0 {
		m.MeanDuration = float64(total) / float64(len(lines))
	}
	return m
}
