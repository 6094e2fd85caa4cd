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

// Package bellcurve implements the asymmetric, unimodal response curve used
// to describe microbial OCS uptake as a function of a single environmental
// driver such as soil moisture or soil temperature. The curve form is the
// NO production model of Behrendt et al. (2014), repurposed for OCS
// consumption:
//
//	f(x) = OptFlux · (x/OptX)^a · exp(−a·(x/OptX − 1))
//
// where the shape exponent a is derived from a second calibration point
// (RefX, RefFlux).
//
// Nothing in this package validates its inputs. A non-positive flux ratio
// or RefX == OptX makes the curve undefined, and the result is NaN or ±Inf,
// which then propagates through any downstream arithmetic. Use
// Curve.Validate to check parameters when they come from configuration.
package bellcurve

import (
	"fmt"
	"math"
)

// Shape returns the curve-shape exponent a for a curve that reaches
// optFlux at optX and passes through refFlux at refX. a is typically
// between 1 and 3; it increases to ~30 as optX approaches refX.
func Shape(optFlux, refFlux, refX, optX float64) float64 {
	r := optFlux / refFlux
	return math.Log(r) / (math.Log(optX/refX) + refX/optX - 1)
}

// Response returns the value of the curve defined by optFlux, refFlux,
// refX and optX at x. It equals optFlux when x == optX.
func Response(x, optFlux, refFlux, refX, optX float64) float64 {
	a := Shape(optFlux, refFlux, refX, optX)
	xr := x / optX
	return optFlux * math.Pow(xr, a) * math.Exp(-a*(xr-1))
}

// Responses evaluates Response elementwise, with x, optFlux and refFlux
// varying by position and refX and optX shared. The result is stored in
// dst, which is allocated if nil. It panics if the slice lengths do not
// match.
func Responses(dst, x, optFlux, refFlux []float64, refX, optX float64) []float64 {
	if len(optFlux) != len(x) || len(refFlux) != len(x) {
		panic("bellcurve: slice lengths do not match")
	}
	if dst == nil {
		dst = make([]float64, len(x))
	}
	if len(dst) != len(x) {
		panic("bellcurve: destination length does not match")
	}
	for i, xi := range x {
		dst[i] = Response(xi, optFlux[i], refFlux[i], refX, optX)
	}
	return dst
}

// Curve holds the four fitted constants that define a response curve.
type Curve struct {
	// OptFlux is the flux at the optimum, OptX.
	OptFlux float64

	// RefFlux is the flux at the secondary calibration point, RefX.
	RefFlux float64

	RefX, OptX float64
}

// Shape returns the shape exponent of c.
func (c Curve) Shape() float64 {
	return Shape(c.OptFlux, c.RefFlux, c.RefX, c.OptX)
}

// Value returns the value of c at x.
func (c Curve) Value(x float64) float64 {
	return Response(x, c.OptFlux, c.RefFlux, c.RefX, c.OptX)
}

// Values evaluates c at each element of x, storing the result in dst,
// which is allocated if nil.
func (c Curve) Values(dst, x []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(x))
	}
	if len(dst) != len(x) {
		panic("bellcurve: destination length does not match")
	}
	a := c.Shape()
	for i, xi := range x {
		xr := xi / c.OptX
		dst[i] = c.OptFlux * math.Pow(xr, a) * math.Exp(-a*(xr-1))
	}
	return dst
}

// Validate returns an error if c does not define a curve: the two
// fluxes must be non-zero, share a sign and differ, and the two
// abscissas must be positive and differ.
func (c Curve) Validate() error {
	r := c.OptFlux / c.RefFlux
	switch {
	case !(r > 0) || math.IsInf(r, 0):
		return fmt.Errorf("bellcurve: OptFlux (%g) and RefFlux (%g) must be non-zero and share a sign", c.OptFlux, c.RefFlux)
	case r == 1:
		return fmt.Errorf("bellcurve: OptFlux and RefFlux must differ; both are %g", c.OptFlux)
	case !(c.RefX > 0) || !(c.OptX > 0):
		return fmt.Errorf("bellcurve: RefX (%g) and OptX (%g) must be positive", c.RefX, c.OptX)
	case c.RefX == c.OptX:
		return fmt.Errorf("bellcurve: RefX and OptX must differ; both are %g", c.OptX)
	}
	return nil
}
