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
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plotting of derived treatment lines.

// plotDurationHistogram renders a histogram of line durations in days.
func plotDurationHistogram(tLines []*TreatmentLine, file string) error {
	values := make(plotter.Values, len(tLines))
	for i, line := range tLines {
		values[i] = float64(line.Duration)
	}
	p := plot.New()
	p.Title.Text = "Treatment line durations"
	p.X.Label.Text = "Duration (days)"
	p.Y.Label.Text = "Lines"
	h, err := plotter.NewHist(values, 16)
	if err != nil {
		return fmt.Errorf("duration histogram: %w", err)
	}
	p.Add(h)
	return p.Save(6*vg.Inch, 4*vg.Inch, file)
}

// plotClassCounts renders a bar chart with the number of lines per leading therapy class.
func plotClassCounts(tLines []*TreatmentLine, file string) error {
	metrics := MetricsFromLines(tLines)
	values := plotter.Values{}
	names := []string{}
	for c := Class(0); c < NofClasses; c++ {
		if ctr := metrics.ClassCounts[c]; ctr > 0 {
			values = append(values, float64(ctr))
			names = append(names, c.String())
		}
	}
	p := plot.New()
	p.Title.Text = "Treatment lines per therapy class"
	p.Y.Label.Text = "Lines"
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("class bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(names...)
	return p.Save(6*vg.Inch, 4*vg.Inch, file)
}

// PlotSummary writes the duration histogram and the per-class line counts as PNG files into outputPath.
func PlotSummary(tLines []*TreatmentLine, outputPath string) error {
	if len(tLines) == 0 {
		return nil
	}
	if err := plotDurationHistogram(tLines, filepath.Join(outputPath, "duration_hist.png")); err != nil {
		return err
	}
	return plotClassCounts(tLines, filepath.Join(outputPath, "class_counts.png"))
}
