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
	"github.com/spf13/cobra"

	"tline/app"
)

var (
	simCfg = app.SimConfig{Patients: 1000, Seed: 42, GapDays: 45, DrugGroupCount: 147}
	simOut string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Generate a synthetic cohort and therapy event table",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := app.SetupLogging(cfg.LogFormat)
		logger.Info().Msg(programMessage())
		return app.Simulate(&simCfg, simOut, logger)
	},
}

func init() {
	f := simulateCmd.Flags()
	f.IntVar(&simCfg.Patients, "patients", simCfg.Patients, "The number of patients to generate")
	f.Uint32Var(&simCfg.Seed, "seed", simCfg.Seed, "The rng seed, for reproducible cohorts")
	f.IntVar(&simCfg.GapDays, "days", simCfg.GapDays, "The gap threshold the generated histories are calibrated against")
	f.IntVar(&simCfg.DrugGroupCount, "drug-groups", simCfg.DrugGroupCount, "The drug-group vocabulary size")
	f.StringVar(&simOut, "out", "", "The directory where cohort.csv and events.csv are written")
	simulateCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(simulateCmd)
}
