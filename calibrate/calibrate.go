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

// Package calibrate fits the curve forms used by SOCSEM to observations,
// for example lab incubation fluxes at several temperatures or field
// fluxes at several soil moistures.
//
// Nonlinear fits minimize the sum of squared residuals with the
// Nelder–Mead method. Each free parameter is optimized as a multiple of
// its initial guess, so initial guesses must be non-zero and should be of
// the right sign and order of magnitude.
package calibrate

import (
	"fmt"
	"math"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/spatialmodel/socsem/science/production/logistic"
	"github.com/spatialmodel/socsem/science/uptake/bellcurve"
	"github.com/spatialmodel/socsem/science/uptake/biotic"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// Fit describes how well a fitted curve matches the observations.
type Fit struct {
	// N is the number of observations.
	N int

	// RSquared is the coefficient of determination. It is NaN when all
	// observations are equal, since there is then no variance to explain.
	RSquared float64

	// RMSE is the root-mean-square error, in the units of the observations.
	RMSE float64
}

// FitLinear fits a linear temperature curve to uptake observations y at
// temperatures x.
func FitLinear(x, y []float64) (biotic.Linear, Fit, error) {
	if err := checkObservations(x, y, 2); err != nil {
		return biotic.Linear{}, Fit{}, err
	}
	slope, intercept, r2, _, _, _ := stats.LinearRegression(x, y)
	l := biotic.Linear{Slope: slope, Intercept: intercept}
	f := goodness(x, y, l.Uptake)
	if !math.IsNaN(f.RSquared) {
		f.RSquared = r2
	}
	return l, f, nil
}

// FitBell fits a bellcurve to observations y at abscissas x. RefX is held
// at refX, and OptFlux, RefFlux and OptX are fitted starting from init.
// Holding RefX fixed is useful when observations are anchored at a known
// secondary soil moisture or temperature.
func FitBell(x, y []float64, refX float64, init bellcurve.Curve) (bellcurve.Curve, Fit, error) {
	if err := checkObservations(x, y, 3); err != nil {
		return bellcurve.Curve{}, Fit{}, err
	}
	init.RefX = refX
	if err := init.Validate(); err != nil {
		return bellcurve.Curve{}, Fit{}, fmt.Errorf("calibrate: initial curve: %w", err)
	}
	curve := func(p []float64) bellcurve.Curve {
		return bellcurve.Curve{
			OptFlux: init.OptFlux * p[0],
			RefFlux: init.RefFlux * p[1],
			RefX:    refX,
			OptX:    init.OptX * p[2],
		}
	}
	p, err := minimize(x, y, 3, func(p []float64) func(float64) float64 { return curve(p).Value })
	if err != nil {
		return bellcurve.Curve{}, Fit{}, err
	}
	c := curve(p)
	return c, goodness(x, y, c.Value), nil
}

// FitLogistic fits a production curve to observations y at temperatures t.
// AMax is held at aMax, which is normally the largest flux observed in
// the field, and K and B are fitted starting from init.
func FitLogistic(t, y []float64, aMax float64, init logistic.Production) (logistic.Production, Fit, error) {
	if err := checkObservations(t, y, 2); err != nil {
		return logistic.Production{}, Fit{}, err
	}
	init.AMax = aMax
	if err := init.Validate(); err != nil {
		return logistic.Production{}, Fit{}, fmt.Errorf("calibrate: initial curve: %w", err)
	}
	prod := func(p []float64) logistic.Production {
		return logistic.Production{AMax: aMax, K: init.K * p[0], B: init.B * p[1]}
	}
	p, err := minimize(t, y, 2, func(p []float64) func(float64) float64 { return prod(p).Flux })
	if err != nil {
		return logistic.Production{}, Fit{}, err
	}
	pr := prod(p)
	return pr, goodness(t, y, pr.Flux), nil
}

// minimize finds the parameter multipliers that minimize the sum of
// squared residuals of the curve built by f, starting from all ones.
func minimize(x, y []float64, dim int, f func(p []float64) func(float64) float64) ([]float64, error) {
	sse := func(p []float64) float64 {
		g := f(p)
		var s float64
		for i, xi := range x {
			r := g(xi) - y[i]
			s += r * r
		}
		if math.IsNaN(s) {
			return math.Inf(1)
		}
		return s
	}
	x0 := make([]float64, dim)
	for i := range x0 {
		x0[i] = 1
	}
	if math.IsInf(sse(x0), 0) {
		return nil, fmt.Errorf("calibrate: the initial guess gives an undefined curve at the observations")
	}
	settings := &optimize.Settings{
		MajorIterations: 20000,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-16,
			Relative:   1e-12,
			Iterations: 200,
		},
	}
	result, err := optimize.Minimize(optimize.Problem{Func: sse}, x0, settings, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("calibrate: %w", err)
	}
	if math.IsInf(result.F, 0) || math.IsNaN(result.F) {
		return nil, fmt.Errorf("calibrate: fit did not converge to a finite solution")
	}
	return result.X, nil
}

// goodness calculates the fit statistics of f against observations y at x.
func goodness(x, y []float64, f func(float64) float64) Fit {
	mean := stat.Mean(y, nil)
	var ssRes, ssTot float64
	for i, xi := range x {
		r := y[i] - f(xi)
		ssRes += r * r
		d := y[i] - mean
		ssTot += d * d
	}
	r2 := math.NaN()
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}
	return Fit{
		N:        len(x),
		RSquared: r2,
		RMSE:     math.Sqrt(ssRes / float64(len(x))),
	}
}

func checkObservations(x, y []float64, params int) error {
	if len(x) != len(y) {
		return fmt.Errorf("calibrate: the number of abscissas (%d) and observations (%d) differ", len(x), len(y))
	}
	if len(x) < params {
		return fmt.Errorf("calibrate: %d observations are too few to fit %d parameters", len(x), params)
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) || math.IsInf(x[i], 0) || math.IsInf(y[i], 0) {
			return fmt.Errorf("calibrate: observation %d (%g, %g) is not finite", i, x[i], y[i])
		}
	}
	return nil
}
