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

// Package logistic describes abiotic soil OCS production as a logistic
// function of soil temperature,
//
//	flux = AMax / (1 + B·exp(−K·t))
//
// The curve approaches AMax at high temperature and zero at low
// temperature, crossing the flux axis at AMax/(1+B). The exponential
// shape of production with temperature was first noted in lab
// incubations by Liu et al. (2010) and observed in the field by Maseyk
// et al. (2014). By convention emission is positive.
package logistic

import (
	"fmt"
	"math"
)

// Production holds the fitted constants of a production curve.
type Production struct {
	// AMax is the largest flux observed in the field or in incubations
	// [pmol m⁻² s⁻¹]. It should not be reached under environmental
	// conditions.
	AMax float64

	// K [1/°C] and B [-] are fitted to lab incubations.
	K, B float64
}

// Flux returns abiotic OCS production [pmol m⁻² s⁻¹] at soil
// temperature t [°C].
func (p Production) Flux(t float64) float64 {
	return p.AMax / (1 + p.B*math.Exp(-p.K*t))
}

// Fluxes evaluates Flux at each element of t, storing the result in
// dst, which is allocated if nil.
func (p Production) Fluxes(dst, t []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(t))
	}
	if len(dst) != len(t) {
		panic("logistic: destination length does not match")
	}
	for i, ti := range t {
		dst[i] = p.Flux(ti)
	}
	return dst
}

// Validate returns an error if p does not describe a production curve
// that is positive and increasing in temperature.
func (p Production) Validate() error {
	switch {
	case !(p.AMax > 0) || math.IsInf(p.AMax, 0):
		return fmt.Errorf("logistic: AMax must be positive and finite but is %g", p.AMax)
	case !(p.K > 0) || math.IsInf(p.K, 0):
		return fmt.Errorf("logistic: K must be positive and finite but is %g", p.K)
	case !(p.B > 0) || math.IsInf(p.B, 0):
		return fmt.Errorf("logistic: B must be positive and finite but is %g", p.B)
	}
	return nil
}

// Rainforest is fit to soil incubations from Los Amigos Research Station,
// Peru (r² = 0.96; Whelan et al., 2016). No field maximum is available,
// so AMax is three times the largest incubation flux.
var Rainforest = Production{
	AMax: 2.7 * 3,
	K:    0.123581, // ± 0.0146
	B:    205,      // ± 101.7
}

// Forest is fit to soil incubations from the Willow Creek tall tower
// site (r² = 0.997; Whelan et al., 2016), with AMax from Commane et al.
// (2015). It is used for both temperate and boreal forest.
var Forest = Production{
	AMax: 20,
	K:    0.160745, // ± 0.0060
	B:    644.7,    // ± 132.9
}

// Agricultural is fit to the DOE ARM SGP wheat field (r² = 0.79;
// Maseyk et al., 2014), with AMax the largest scaled incubation flux from
// the US-Bo1 flux site soil (Whelan et al., 2016).
var Agricultural = Production{
	AMax: 83,
	K:    0.087689, // ± 0.0056
	B:    146.9,    // ± 31.8
}

// Grassland is fit to soils from Stunt Ranch UC Reserve, a California
// savannah (r² = 0.98; Whelan et al., 2016), with AMax from Whelan and
// Rhew (2016).
var Grassland = Production{
	AMax: 3.9,
	K:    0.115481, // ± 0.0150
	B:    286,      // ± 158.1
}

// Wetland is fit to the Mollie Beattie Habitat Community, Port Aransas,
// TX (r² = 0.64; Whelan et al., 2013). AMax is the largest value
// recorded by DeLaune et al. (2002).
var Wetland = Production{
	AMax: 295,
	K:    0.07855407,
	B:    41.16705972,
}
