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
	"runtime"

	"github.com/spf13/cobra"

	"tline/app"
)

/*
Tline is a tool for deriving treatment lines from longitudinal therapy administration records.

Usage:
	tline derive --cohort cohort.csv --events events.csv --out ./results [flags]
	tline simulate --patients 1000 --out ./testdata

Example:
	tline derive --cohort cohort.csv --events events.csv --classifier codes.csv --out ./mibc_lines
	--days 45 --drug-groups 147 --plot --nrOfThreads 8

The derive flags are:

--cohort file
	The cohort table in csv format: patient_id, index_date, followup_end. One row per patient; the two dates
	define the follow-up window for that patient.
--events file
	The therapy event table in csv format. Without --classifier the rows are pre-classified:
	patient_id, date, drug_group, classes. With --classifier the rows carry raw treatment codes instead:
	patient_id, date, treatment_code.
--classifier file
	A csv table mapping raw treatment codes onto drug-group ids and therapy classes:
	treatment_code, drug_group, classes. Drug group 0 denotes an unspecified code; its classes column holds the
	candidate class list.
--out path
	The directory where output tables are written: lines.csv and, unless disabled, long.csv.
--days nr
	The gap threshold: the maximum number of days between two administrations to be considered part of the same
	treatment line.
--drug-groups nr
	The classifier's declared vocabulary size, i.e. the number of distinct drug groups.
--long
	Also write the long-format audit table (one row per patient-date record with its resolved line).
--plot
	Write summary plots (line duration histogram, line counts per therapy class) next to the output tables.
--config file
	A yaml file with the above run parameters; explicit flags take precedence.
--nrOfThreads nr
	The number of threads tline uses.
*/

const (
	programVersion = 0.1
	programName    = "tline"
)

func programMessage() string {
	return fmt.Sprint(programName, " version ", programVersion, " compiled with ", runtime.Version())
}

var (
	cfg        = app.DefaultConfig()
	configFile string
	nofThreads int
)

var rootCmd = &cobra.Command{
	Use:     "tline",
	Short:   "Derive normalized treatment lines from longitudinal therapy records",
	Version: fmt.Sprint(programVersion),
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")
	pf.StringVar(&configFile, "config", "", "A yaml file with run parameters; flags take precedence")
	pf.IntVar(&nofThreads, "nrOfThreads", 0, "The number of threads tline uses")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
