/*
Copyright © 2021 the SOCSEM authors.
This file is part of SOCSEM.

SOCSEM is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SOCSEM is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SOCSEM.  If not, see <http://www.gnu.org/licenses/>.
*/

package socsem

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics of a flux series.
type Summary struct {
	// N is the number of finite values and NonFinite is the number of
	// NaN or ±Inf values, which are excluded from the statistics.
	N, NonFinite int

	Mean, Std, Min, Max float64
}

// Summarize returns descriptive statistics of flux. Std is the sample
// standard deviation, and is zero when there are fewer than two finite
// values.
func Summarize(flux []float64) Summary {
	var s Summary
	finite := make([]float64, 0, len(flux))
	for _, f := range flux {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			s.NonFinite++
			continue
		}
		finite = append(finite, f)
	}
	s.N = len(finite)
	if s.N == 0 {
		return s
	}
	s.Mean = stat.Mean(finite, nil)
	if s.N > 1 {
		s.Std = stat.StdDev(finite, nil)
	}
	s.Min = floats.Min(finite)
	s.Max = floats.Max(finite)
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.6g std=%.6g min=%.6g max=%.6g non-finite=%d",
		s.N, s.Mean, s.Std, s.Min, s.Max, s.NonFinite)
}
