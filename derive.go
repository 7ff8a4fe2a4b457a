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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tline/app"
	"tline/lines"
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive treatment lines from cohort and therapy event tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDerive()
	},
}

func init() {
	f := deriveCmd.Flags()
	f.StringVar(&cfg.CohortFile, "cohort", "", "The cohort csv: patient_id, index_date, followup_end")
	f.StringVar(&cfg.EventsFile, "events", "", "The therapy event csv")
	f.StringVar(&cfg.ClassifierFile, "classifier", "", "An optional csv mapping treatment codes to drug groups and classes")
	f.StringVar(&cfg.OutputPath, "out", "", "The directory where output tables are written")
	f.IntVar(&cfg.GapDays, "days", cfg.GapDays, "The maximum nr of days between administrations of one treatment line")
	f.IntVar(&cfg.DrugGroupCount, "drug-groups", cfg.DrugGroupCount, "The classifier's declared nr of drug groups")
	f.BoolVar(&cfg.EmitLongFormat, "long", cfg.EmitLongFormat, "Also write the long-format audit table")
	f.BoolVar(&cfg.Plot, "plot", cfg.Plot, "Write summary plots next to the output tables")
	rootCmd.AddCommand(deriveCmd)
}

func runDerive() error {
	if configFile != "" {
		if err := cfg.LoadFromFile(configFile); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if nofThreads > 0 {
		runtime.GOMAXPROCS(nofThreads)
	}
	logger := app.SetupLogging(cfg.LogFormat)
	logger.Info().Msg(programMessage())
	logger.Info().Int("gapDays", cfg.GapDays).Int("threads", runtime.GOMAXPROCS(0)).Msg("deriving treatment lines")

	var classifier *app.Classifier
	if cfg.ClassifierFile != "" {
		var err error
		classifier, err = app.ParseClassifier(cfg.ClassifierFile, cfg.DrugGroupCount, logger)
		if err != nil {
			return err
		}
	}
	patients, err := app.ParseCohort(cfg.CohortFile, logger)
	if err != nil {
		return err
	}
	if err := app.ParseEvents(cfg.EventsFile, patients, classifier, logger); err != nil {
		return err
	}
	patients = lines.ApplyPatientFilters([]lines.PatientFilter{lines.WindowFilter(), lines.NonEmptyFilter()}, patients)

	tLines, errs := lines.DeriveAll(patients, cfg.GapDays, logger)
	for _, derr := range errs {
		logger.Warn().Err(derr).Msg("derivation error")
	}

	if err := os.MkdirAll(cfg.OutputPath, 0755); err != nil {
		return fmt.Errorf("creating output path %v: %w", cfg.OutputPath, err)
	}
	if err := app.WriteLines(tLines, filepath.Join(cfg.OutputPath, "lines.csv")); err != nil {
		return err
	}
	if cfg.EmitLongFormat {
		if err := app.WriteLongFormat(lines.SortedPatients(patients), filepath.Join(cfg.OutputPath, "long.csv")); err != nil {
			return err
		}
	}
	if cfg.Plot {
		if err := lines.PlotSummary(tLines, cfg.OutputPath); err != nil {
			return err
		}
	}

	m := lines.MetricsFromLines(tLines)
	classCounts := zerolog.Dict()
	for c, ctr := range m.ClassCounts {
		classCounts.Int(c.String(), ctr)
	}
	logger.Info().
		Int("patients", len(patients.PIDMap)).
		Int("lines", m.NofLines).
		Float64("meanDurationDays", m.MeanDuration).
		Int("maxDurationDays", m.MaxDuration).
		Dict("linesPerClass", classCounts).
		Int("skipped", len(errs)).
		Msg("derivation done")
	return nil
}
