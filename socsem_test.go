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
	"testing"

	"github.com/spatialmodel/socsem/science/production/logistic"
	"gonum.org/v1/gonum/floats"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

var gated = []Model{Grassland, BorealForest, TemperateForest, TropicalForest, Agricultural}

func TestFreezingGate(t *testing.T) {
	for _, m := range gated {
		for _, temp := range []float64{-40, -5, -1e-9, 0, math.Copysign(0, -1)} {
			for _, sw := range []float64{2, 12.5, 20, 45} {
				t.Run(fmt.Sprintf("%s_%g_%g", m.Name, temp, sw), func(t *testing.T) {
					if have := m.FluxScalar(temp, sw); have != 0 {
						t.Errorf("have %g, want 0", have)
					}
				})
			}
		}
	}
}

// Flux just above zero takes the non-zero branch.
func TestGateStrict(t *testing.T) {
	for _, m := range []Model{Grassland, BorealForest, TropicalForest, Agricultural} {
		if have := m.FluxScalar(1e-6, 20); have == 0 || math.IsNaN(have) {
			t.Errorf("%s: flux just above freezing should be non-zero and finite but is %g", m.Name, have)
		}
	}
	mask := Grassland.Mask([]float64{-1, 0, 1e-12, math.NaN(), 20})
	want := []bool{false, false, true, false, true}
	for i := range mask {
		if mask[i] != want[i] {
			t.Errorf("mask[%d] = %v, want %v", i, mask[i], want[i])
		}
	}
}

func TestMaskUngated(t *testing.T) {
	mask := Wetland.Mask([]float64{-1, 0, math.NaN(), 20})
	for i, ok := range mask {
		if !ok {
			t.Errorf("mask[%d] = false; ungated models pass every temperature", i)
		}
	}
	have, err := Wetland.Flux([]float64{math.NaN()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(have[0]) {
		t.Errorf("wetland flux at NaN temperature should be NaN, not %g", have[0])
	}
}

func TestGrasslandAtOptimumMoisture(t *testing.T) {
	have := GrasslandFlux(20, 12.5)
	want := Grassland.Uptake.Opt.Uptake(20) + logistic.Grassland.Flux(20)
	if different(have, want, 1e-12) {
		t.Errorf("have %g, want %g", have, want)
	}
}

func TestGrasslandFrozen(t *testing.T) {
	if have := GrasslandFlux(-5, 20); have != 0.0 {
		t.Errorf("have %g, want 0", have)
	}
}

func TestWetland(t *testing.T) {
	aMax, k, b, temp := 295.0, 0.07855407, 41.16705972, 10.0
	want := aMax / (1 + b*math.Exp(-k*temp))
	if have := WetlandFlux(10); different(have, want, 1.e-14) {
		t.Errorf("have %.17g, want %.17g", have, want)
	}
	if have := logistic.Wetland.Flux(10); different(have, want, 1.e-14) {
		t.Errorf("production: have %.17g, want %.17g", have, want)
	}
	// Soil moisture is ignored, so every result is identical.
	prod := logistic.Wetland.Flux(10)
	for _, sw := range []float64{0, 12.5, 80, math.NaN()} {
		if have := Wetland.FluxScalar(10, sw); have != prod {
			t.Errorf("sw=%g: have %g, want %g", sw, have, prod)
		}
	}
	have, err := Wetland.Flux([]float64{10, -5}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if have[0] != prod {
		t.Errorf("have %g, want %g", have[0], prod)
	}
	if !(have[1] > 0) || have[1] != logistic.Wetland.Flux(-5) {
		t.Errorf("wetland is not gated; flux at -5 °C should be %g but is %g", logistic.Wetland.Flux(-5), have[1])
	}
}

func TestAgriculturalAtOptimumMoisture(t *testing.T) {
	have := AgriculturalFlux(30, 17.7)
	want := -9.7 + logistic.Agricultural.Flux(30)
	if different(have, want, 1e-12) {
		t.Errorf("have %g, want %g", have, want)
	}
}

func TestBiomeFlux(t *testing.T) {
	var tests = []struct {
		f        func(t, sw float64) float64
		name     string
		t, sw    float64
		expected float64
	}{
		{f: GrasslandFlux, name: "grassland", t: 20, sw: 20, expected: -2.2255},
		{f: GrasslandFlux, name: "grassland", t: 10, sw: 30, expected: -1.2914},
		{f: BorealForestFlux, name: "boreal", t: 20, sw: 12.5, expected: -7.3277},
		{f: BorealForestFlux, name: "boreal", t: 25, sw: 10, expected: -11.3775},
		{f: TemperateForestFlux, name: "temperate", t: 20, sw: 20, expected: -10.8572},
		{f: TemperateForestFlux, name: "temperate", t: 25, sw: 10, expected: -2.8707},
		{f: TropicalForestFlux, name: "tropical", t: 20, sw: 20, expected: -0.7806},
		{f: TropicalForestFlux, name: "tropical", t: 30, sw: 17.7, expected: 0.9497},
		{f: AgriculturalFlux, name: "agricultural", t: 20, sw: 20, expected: -4.9525},
		{f: AgriculturalFlux, name: "agricultural", t: 25, sw: 10, expected: 4.3605},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%s_%g_%g", test.name, test.t, test.sw), func(t *testing.T) {
			have := test.f(test.t, test.sw)
			if math.Abs(have-test.expected) > 1e-4 {
				t.Errorf("have %.6f, want %.4f", have, test.expected)
			}
		})
	}
}

// Elementwise evaluation matches scalar evaluation at every position.
func TestElementwise(t *testing.T) {
	temps := []float64{-10, 0, 0.5, 5, 12, 18, 25, 33, 41}
	sw := []float64{20, 35, 8, 12.5, 17.7, 24.6, 31, 45, 2}
	for _, m := range append(gated, Wetland) {
		t.Run(m.Name, func(t *testing.T) {
			have, err := m.Flux(temps, sw)
			if err != nil {
				t.Fatal(err)
			}
			if len(have) != len(temps) {
				t.Fatalf("length %d != %d", len(have), len(temps))
			}
			for i := range temps {
				want := m.FluxScalar(temps[i], sw[i])
				if have[i] != want && !(math.IsNaN(have[i]) && math.IsNaN(want)) {
					t.Errorf("%d: %g != %g", i, have[i], want)
				}
			}
		})
	}
}

func TestComponents(t *testing.T) {
	temps := []float64{-3, 0, 10, 20, 30}
	sw := []float64{15, 15, 15, 25, 35}
	bio, abio, err := Agricultural.Components(temps, sw)
	if err != nil {
		t.Fatal(err)
	}
	flux, err := Agricultural.Flux(temps, sw)
	if err != nil {
		t.Fatal(err)
	}
	sum := make([]float64, len(temps))
	floats.AddTo(sum, bio, abio)
	if !floats.Equal(sum, flux) {
		t.Errorf("%v + %v != %v", bio, abio, flux)
	}
	for i := 0; i < 2; i++ {
		if bio[i] != 0 || abio[i] != 0 {
			t.Errorf("%d: components at %g °C should be zero: %g, %g", i, temps[i], bio[i], abio[i])
		}
	}
	for i := 2; i < len(temps); i++ {
		if !(bio[i] < 0) || !(abio[i] > 0) {
			t.Errorf("%d: biotic flux should be negative and abiotic positive: %g, %g", i, bio[i], abio[i])
		}
	}
}

func TestLengthMismatch(t *testing.T) {
	if _, err := Grassland.Flux([]float64{1, 2, 3}, []float64{20, 20}); err == nil {
		t.Error("should be an error")
	}
	if _, err := Wetland.Flux([]float64{1, 2, 3}, []float64{20}); err != nil {
		t.Errorf("wetland ignores soil moisture: %v", err)
	}
	f, err := Grassland.Flux(nil, nil)
	if err != nil || len(f) != 0 {
		t.Errorf("empty input: %v, %v", f, err)
	}
}

// The linear temperate "other" curve changes sign at low temperature,
// which leaves the moisture response undefined. The NaN is passed on.
func TestNaNPropagation(t *testing.T) {
	if have := TemperateForestFlux(1, 30); !math.IsNaN(have) {
		t.Errorf("have %g, want NaN", have)
	}
	if have := TemperateForestFlux(-1, 30); have != 0 {
		t.Errorf("gate should still apply: have %g", have)
	}
}

func TestValidate(t *testing.T) {
	for _, m := range append(gated, Wetland) {
		if err := m.Validate(); err != nil {
			t.Errorf("%s: %v", m.Name, err)
		}
	}
	bad := Grassland.Copy()
	bad.Uptake.RefMoisture = bad.Uptake.OptMoisture
	if err := bad.Validate(); err == nil {
		t.Error("equal reference and optimum moisture should be an error")
	}
	bad = Wetland.Copy()
	bad.Production.K = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero K should be an error")
	}
}

func ExampleModel_Flux() {
	temperature := []float64{-2, 10, 20}
	moisture := []float64{20, 30, 20}
	flux, err := Grassland.Flux(temperature, moisture)
	if err != nil {
		panic(err)
	}
	for i, f := range flux {
		fmt.Printf("%g °C, %g%% VWC: %.4f pmol m⁻² s⁻¹\n", temperature[i], moisture[i], f)
	}
	// Output:
	// -2 °C, 20% VWC: 0.0000 pmol m⁻² s⁻¹
	// 10 °C, 30% VWC: -1.2914 pmol m⁻² s⁻¹
	// 20 °C, 20% VWC: -2.2255 pmol m⁻² s⁻¹
}

func ExampleWetlandFlux() {
	fmt.Printf("%.4f\n", WetlandFlux(10))
	// Output: 14.9239
}
