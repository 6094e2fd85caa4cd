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
	"github.com/spatialmodel/socsem/science/production/logistic"
	"github.com/spatialmodel/socsem/science/uptake/bellcurve"
	"github.com/spatialmodel/socsem/science/uptake/biotic"
)

// Uptake parameters were estimated by subtracting modeled abiotic
// production from lab incubation and field observations and taking the
// largest remaining uptake as the optimum. Values after ± are one
// standard deviation of the model-observation error.

// Grassland is based on field and lab data from Stunt Ranch UC Reserve
// (Sun et al., 2016; Whelan et al., 2016).
var Grassland = Model{
	Name: "grassland",
	Uptake: &biotic.Uptake{
		OptMoisture: 12.5, // ± 1.9
		// The temperature curves are calibrated at 25 % VWC but the
		// moisture curve is anchored at 26.9 % VWC.
		RefMoisture: 26.9,
		Opt: biotic.Bell{Curve: bellcurve.Curve{
			OptFlux: -4.5,        // ± 0.52
			RefFlux: -1.48268657, // ± 0.21
			RefX:    25,          // ± 1.0
			OptX:    10.86745456, // ± 1.8
		}},
		Other: biotic.Bell{Curve: bellcurve.Curve{
			OptFlux: -2.33809598, // ± 0.44
			RefFlux: -1.27719641, // ± 0.50
			RefX:    25,          // ± 1.0
			OptX:    14.75202332, // ± 2.7
		}},
	},
	Production: logistic.Grassland,
	Gated:      true,
}

// BorealForest is based on "Siberian" soil data from van Diest and
// Kesselmeier (2008) and field data from Hyytiälä, Finland (Sun et al.,
// 2018). Boreal soils have a much higher optimum temperature (25 to 30 °C)
// than other soils (around 15 °C).
var BorealForest = Model{
	Name: "boreal_forest",
	Uptake: &biotic.Uptake{
		OptMoisture: 12.5, // ± 1.3
		RefMoisture: 19.3,
		Opt: biotic.Bell{Curve: bellcurve.Curve{
			OptFlux: -18.24779932, // ± 2.3
			RefFlux: -12,          // ± 6.8
			RefX:    35,           // ± 2.5
			OptX:    28.05488082,  // ± 2.5
		}},
		Other: biotic.Bell{Curve: bellcurve.Curve{
			OptFlux: -5.89511395, // ± 1.1
			RefFlux: -3.76628476, // ± 2.5
			RefX:    35,          // ± 3.5
			OptX:    28.05488082, // ± 3.5
		}},
	},
	Production: logistic.Forest,
	Gated:      true,
}

// TemperateForest is based on soil incubations from the Willow Creek
// FLUXNET site (US-WCr; Whelan et al., 2016), informed by field data from
// Harvard Forest (Wehr et al., 2017) and Wind River (Rastogi et al., 2018).
var TemperateForest = Model{
	Name: "temperate_forest",
	Uptake: &biotic.Uptake{
		OptMoisture: 24.6, // mean of 3 values, ± 0.6
		RefMoisture: 51,
		// Too few data for a temperature response; this is the largest
		// uptake recorded at Wind River (± 1.0).
		Opt: biotic.Constant(-12.6),
		// r² = 0.9 over 4 points.
		Other: biotic.Linear{Slope: -0.17629655, Intercept: 0.47914552},
	},
	Production: logistic.Forest,
	Gated:      true,
}

// TropicalForest is based on soil incubations from Los Amigos Research
// Station, Peru (Whelan et al., 2016). The optimum moisture is taken from
// temperate forest soil incubations.
var TropicalForest = Model{
	Name: "tropical_forest",
	Uptake: &biotic.Uptake{
		OptMoisture: 24.6,
		RefMoisture: 31, // ± 1.0
		// Largest uptake seen in incubations.
		Opt: biotic.Constant(-2.7),
		// Mean of 7 incubations from 10 to 40 °C, ± 0.74.
		Other: biotic.Constant(-0.86),
	},
	Production: logistic.Rainforest,
	Gated:      true,
}

// Agricultural is based on soil incubations from the Bondville FLUXNET
// site (US-Bo1; Whelan et al., 2016) and field data from an Oklahoma
// wheat field (Maseyk et al., 2014).
var Agricultural = Model{
	Name: "agricultural",
	Uptake: &biotic.Uptake{
		OptMoisture: 17.7, // mean of 3 values, ± 2.13
		RefMoisture: 22,   // ± 1.1
		// Largest uptake recorded in Oklahoma less modeled production
		// for observations below 20 % VWC (± 1.8). Maximum uptake appears
		// to rise with temperature, which suggests production may be
		// over-corrected.
		Opt: biotic.Constant(-9.7),
		// Mean of Bondville incubations between 20.9 and 22.2 % VWC less
		// modeled production (± 0.78).
		Other: biotic.Constant(-5.36),
	},
	Production: logistic.Agricultural,
	Gated:      true,
}

// Wetland has no uptake term: no uptake has been detected in wetland
// soils, and wetland emissions are large enough that uptake is a minor
// uncertainty in production. It is also not gated at 0 °C.
var Wetland = Model{
	Name:       "wetland",
	Production: logistic.Wetland,
}

// GrasslandFlux returns net grassland soil OCS flux [pmol m⁻² s⁻¹] at soil
// temperature t [°C] and soil volumetric water content sw [%].
func GrasslandFlux(t, sw float64) float64 { return Grassland.FluxScalar(t, sw) }

// BorealForestFlux returns net boreal forest soil OCS flux [pmol m⁻² s⁻¹]
// at soil temperature t [°C] and soil volumetric water content sw [%].
func BorealForestFlux(t, sw float64) float64 { return BorealForest.FluxScalar(t, sw) }

// TemperateForestFlux returns net temperate forest soil OCS flux
// [pmol m⁻² s⁻¹] at soil temperature t [°C] and soil volumetric water
// content sw [%].
func TemperateForestFlux(t, sw float64) float64 { return TemperateForest.FluxScalar(t, sw) }

// TropicalForestFlux returns net tropical forest soil OCS flux
// [pmol m⁻² s⁻¹] at soil temperature t [°C] and soil volumetric water
// content sw [%].
func TropicalForestFlux(t, sw float64) float64 { return TropicalForest.FluxScalar(t, sw) }

// AgriculturalFlux returns net agricultural soil OCS flux [pmol m⁻² s⁻¹]
// at soil temperature t [°C] and soil volumetric water content sw [%].
func AgriculturalFlux(t, sw float64) float64 { return Agricultural.FluxScalar(t, sw) }

// WetlandFlux returns wetland soil OCS flux [pmol m⁻² s⁻¹] at soil
// temperature t [°C].
func WetlandFlux(t float64) float64 { return Wetland.FluxScalar(t, 0) }
