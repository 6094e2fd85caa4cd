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

package bellcurve

import (
	"fmt"
	"math"
	"testing"
)

var testCurves = []Curve{
	{OptFlux: -4.5, RefFlux: -1.48268657, RefX: 25, OptX: 10.86745456},
	{OptFlux: -2.33809598, RefFlux: -1.27719641, RefX: 25, OptX: 14.75202332},
	{OptFlux: -18.24779932, RefFlux: -12, RefX: 35, OptX: 28.05488082},
	{OptFlux: -12.6, RefFlux: -4.5, RefX: 51, OptX: 24.6},
	{OptFlux: -9.7, RefFlux: -5.36, RefX: 22, OptX: 17.7},
	{OptFlux: 3, RefFlux: 1, RefX: 5, OptX: 10},
}

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func TestValueAtOptimum(t *testing.T) {
	for _, c := range testCurves {
		t.Run(fmt.Sprint(c), func(t *testing.T) {
			if have := c.Value(c.OptX); have != c.OptFlux {
				t.Errorf("have %g, want %g", have, c.OptFlux)
			}
		})
	}
}

func TestValueAtReference(t *testing.T) {
	for _, c := range testCurves {
		t.Run(fmt.Sprint(c), func(t *testing.T) {
			if have := c.Value(c.RefX); different(have, c.RefFlux, 1e-10) {
				t.Errorf("have %g, want %g", have, c.RefFlux)
			}
		})
	}
}

// The curve peaks in magnitude at the optimum and decays on both sides.
func TestUnimodal(t *testing.T) {
	for _, c := range testCurves {
		t.Run(fmt.Sprint(c), func(t *testing.T) {
			peak := math.Abs(c.OptFlux)
			for _, f := range []float64{0.25, 0.5, 0.9, 1.1, 1.5, 2.5} {
				v := math.Abs(c.Value(c.OptX * f))
				if v >= peak {
					t.Errorf("|f(%g·OptX)| = %g, should be less than %g", f, v, peak)
				}
			}
			if lo, hi := math.Abs(c.Value(c.OptX*0.5)), math.Abs(c.Value(c.OptX*0.9)); lo >= hi {
				t.Errorf("curve should increase towards the optimum: %g >= %g", lo, hi)
			}
		})
	}
}

func TestShapeNegationSymmetry(t *testing.T) {
	for _, c := range testCurves {
		a := Shape(c.OptFlux, c.RefFlux, c.RefX, c.OptX)
		b := Shape(-c.OptFlux, -c.RefFlux, c.RefX, c.OptX)
		if a != b {
			t.Errorf("%v: %g != %g", c, a, b)
		}
		if a != c.Shape() {
			t.Errorf("%v: method %g != function %g", c, c.Shape(), a)
		}
	}
}

func TestShapeDegenerate(t *testing.T) {
	if a := Shape(-4, 2, 25, 10); !math.IsNaN(a) {
		t.Errorf("opposite signs: have %g, want NaN", a)
	}
	if a := Shape(-4, -2, 10, 10); !math.IsInf(a, 0) {
		t.Errorf("equal abscissas: have %g, want ±Inf", a)
	}
	if a := Shape(-4, -4, 25, 10); a != 0 {
		t.Errorf("equal fluxes: have %g, want 0", a)
	}
	if v := Response(20, -4, 2, 25, 10); !math.IsNaN(v) {
		t.Errorf("undefined curve should give NaN, not %g", v)
	}
}

func TestResponses(t *testing.T) {
	x := []float64{5, 10, 15, 20, 40}
	opt := []float64{-4.5, -3, -2, -6, -1}
	ref := []float64{-1.5, -1, -0.5, -2, -0.2}
	have := Responses(nil, x, opt, ref, 25, 12.5)
	for i := range x {
		want := Response(x[i], opt[i], ref[i], 25, 12.5)
		if have[i] != want {
			t.Errorf("%d: %g != %g", i, have[i], want)
		}
	}

	c := testCurves[0]
	vals := c.Values(nil, x)
	for i, xi := range x {
		if vals[i] != c.Value(xi) {
			t.Errorf("Values[%d] = %g, Value = %g", i, vals[i], c.Value(xi))
		}
	}
}

func TestResponsesLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("should panic")
		}
	}()
	Responses(nil, []float64{1, 2}, []float64{-1}, []float64{-0.5, -0.5}, 25, 12.5)
}

func TestValidate(t *testing.T) {
	for _, c := range testCurves {
		if err := c.Validate(); err != nil {
			t.Errorf("%v: %v", c, err)
		}
	}
	bad := []Curve{
		{OptFlux: -4, RefFlux: 2, RefX: 25, OptX: 10},
		{OptFlux: -4, RefFlux: 0, RefX: 25, OptX: 10},
		{OptFlux: 0, RefFlux: -1, RefX: 25, OptX: 10},
		{OptFlux: -4, RefFlux: -4, RefX: 25, OptX: 10},
		{OptFlux: -4, RefFlux: -2, RefX: 10, OptX: 10},
		{OptFlux: -4, RefFlux: -2, RefX: -25, OptX: 10},
		{OptFlux: -4, RefFlux: -2, RefX: 25, OptX: math.NaN()},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("%v: should be an error", c)
		}
	}
}

func ExampleCurve() {
	c := Curve{OptFlux: -4.5, RefFlux: -1.48268657, RefX: 25, OptX: 10.86745456}
	fmt.Printf("at optimum: %g\n", c.Value(c.OptX))
	fmt.Printf("at reference: %.4f\n", c.Value(c.RefX))
	// Output:
	// at optimum: -4.5
	// at reference: -1.4827
}
