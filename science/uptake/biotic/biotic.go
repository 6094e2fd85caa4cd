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

// Package biotic estimates microbial (biotic) soil OCS uptake as a joint
// function of soil temperature and soil moisture.
//
// Uptake is described in two stages. First, two temperature curves give
// the uptake expected at the biome's optimum soil moisture and at a
// secondary reference soil moisture. Second, those two values anchor a
// bellcurve response over soil moisture, which is evaluated at the
// observed moisture. By convention uptake is negative.
package biotic

import (
	"fmt"

	"github.com/spatialmodel/socsem/science/uptake/bellcurve"
)

// TemperatureCurve gives OCS uptake [pmol m⁻² s⁻¹] at a fixed soil moisture
// as a function of soil temperature t [°C].
type TemperatureCurve interface {
	Uptake(t float64) float64
}

// Bell is a bellcurve response over soil temperature, where RefX and OptX
// are temperatures.
type Bell struct {
	bellcurve.Curve
}

// Uptake implements TemperatureCurve.
func (b Bell) Uptake(t float64) float64 { return b.Value(t) }

// Constant is a temperature curve that does not vary with temperature.
// It is used where calibration data are too sparse to resolve a
// temperature response.
type Constant float64

// Uptake implements TemperatureCurve.
func (c Constant) Uptake(float64) float64 { return float64(c) }

// Linear is a temperature curve of the form Slope·t + Intercept.
type Linear struct {
	Slope, Intercept float64
}

// Uptake implements TemperatureCurve.
func (l Linear) Uptake(t float64) float64 { return l.Slope*t + l.Intercept }

// Uptake holds the parameters of the biotic uptake model for one biome.
type Uptake struct {
	// OptMoisture is the soil volumetric water content [%] at which
	// uptake is largest.
	OptMoisture float64

	// RefMoisture is the secondary soil volumetric water content [%] at
	// which Other is calibrated. It usually lies above OptMoisture.
	RefMoisture float64

	// Opt gives uptake at OptMoisture and Other gives uptake at
	// RefMoisture, both as functions of temperature.
	Opt, Other TemperatureCurve
}

// Flux returns the biotic OCS flux [pmol m⁻² s⁻¹] at soil temperature t
// [°C] and soil volumetric water content sw [%]. No gating or range
// checking is done.
func (u *Uptake) Flux(t, sw float64) float64 {
	return bellcurve.Response(sw, u.Opt.Uptake(t), u.Other.Uptake(t), u.RefMoisture, u.OptMoisture)
}

// Fluxes evaluates Flux elementwise over paired temperatures and
// moistures, storing the result in dst, which is allocated if nil.
// It panics if the slice lengths do not match.
func (u *Uptake) Fluxes(dst, t, sw []float64) []float64 {
	if len(sw) != len(t) {
		panic("biotic: slice lengths do not match")
	}
	opt := make([]float64, len(t))
	other := make([]float64, len(t))
	for i, ti := range t {
		opt[i] = u.Opt.Uptake(ti)
		other[i] = u.Other.Uptake(ti)
	}
	return bellcurve.Responses(dst, sw, opt, other, u.RefMoisture, u.OptMoisture)
}

// Validate checks that u is fully specified. Temperature curves that
// have their own Validate method are checked as well.
func (u *Uptake) Validate() error {
	if u.Opt == nil || u.Other == nil {
		return fmt.Errorf("biotic: both the optimum and the reference temperature curves must be specified")
	}
	if !(u.OptMoisture > 0) || !(u.RefMoisture > 0) {
		return fmt.Errorf("biotic: OptMoisture (%g) and RefMoisture (%g) must be positive", u.OptMoisture, u.RefMoisture)
	}
	if u.OptMoisture == u.RefMoisture {
		return fmt.Errorf("biotic: OptMoisture and RefMoisture must differ; both are %g", u.OptMoisture)
	}
	for i, c := range []TemperatureCurve{u.Opt, u.Other} {
		if v, ok := c.(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("biotic: %s temperature curve: %w", [2]string{"Opt", "Other"}[i], err)
			}
		}
	}
	return nil
}
