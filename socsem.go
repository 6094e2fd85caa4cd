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

// Package socsem is the Soil OCS Exchange Model (SOCSEM). It estimates
// the exchange of carbonyl sulfide (OCS) between soils and the atmosphere
// [pmol m⁻² s⁻¹] from soil temperature [°C] and soil volumetric water
// content [%] for a number of biomes.
//
// For each biome, net flux is the sum of an abiotic production term
// (package science/production/logistic) and a biotic uptake term
// (package science/uptake/biotic). By convention emission to the
// atmosphere is positive and uptake from the atmosphere is negative.
//
// The model does not support freezing soils: for every biome except
// wetland, flux at or below 0 °C is taken to be exactly zero.
//
// Input values are not range checked. Formulas extrapolate freely
// outside their calibration range, and parameters that make a formula
// undefined produce NaN or ±Inf rather than an error.
package socsem

import (
	"fmt"

	"github.com/spatialmodel/socsem/science/production/logistic"
	"github.com/spatialmodel/socsem/science/uptake/biotic"
	"gonum.org/v1/gonum/floats"
)

// Version is the version of the model parameterization.
const Version = "8.0.1"

// Model estimates net soil OCS flux for one biome.
type Model struct {
	// Name is the biome name.
	Name string

	// Uptake is the biotic uptake model. It is nil for biomes with no
	// known uptake process, in which case soil moisture is ignored.
	Uptake *biotic.Uptake

	// Production is the abiotic production model.
	Production logistic.Production

	// Gated specifies whether flux is set to zero at temperatures at or
	// below 0 °C.
	Gated bool
}

// Mask returns whether the model computes a non-zero flux at each
// temperature in t. For gated models that requires t > 0, so NaN
// temperatures are masked out; ungated models pass every temperature,
// NaN included.
func (m Model) Mask(t []float64) []bool {
	mask := make([]bool, len(t))
	for i, ti := range t {
		mask[i] = !m.Gated || ti > 0
	}
	return mask
}

// Components returns the biotic and abiotic parts of the flux at each
// pair of soil temperature t [°C] and soil volumetric water content
// sw [%]. Masked-out positions are zero in both results. t and sw must
// be the same length unless the model has no uptake term, in which case
// sw is ignored and may be nil.
func (m Model) Components(t, sw []float64) (bio, abio []float64, err error) {
	if m.Uptake != nil && len(sw) != len(t) {
		return nil, nil, fmt.Errorf("socsem: %s: temperature and soil moisture lengths differ (%d != %d)",
			m.Name, len(t), len(sw))
	}
	var idx []int
	for i, ok := range m.Mask(t) {
		if ok {
			idx = append(idx, i)
		}
	}
	tm := gather(t, idx)

	bio = make([]float64, len(t))
	abio = make([]float64, len(t))
	scatter(abio, m.Production.Fluxes(nil, tm), idx)
	if m.Uptake != nil {
		scatter(bio, m.Uptake.Fluxes(nil, tm, gather(sw, idx)), idx)
	}
	return bio, abio, nil
}

// Flux returns the net OCS flux [pmol m⁻² s⁻¹] at each pair of soil
// temperature t [°C] and soil volumetric water content sw [%]. The
// result is the same length as t.
func (m Model) Flux(t, sw []float64) ([]float64, error) {
	bio, abio, err := m.Components(t, sw)
	if err != nil {
		return nil, err
	}
	floats.Add(bio, abio)
	return bio, nil
}

// FluxScalar returns the net OCS flux [pmol m⁻² s⁻¹] at soil temperature
// t [°C] and soil volumetric water content sw [%]. It gives the same
// result as Flux applied to one-element inputs.
func (m Model) FluxScalar(t, sw float64) float64 {
	f, err := m.Flux([]float64{t}, []float64{sw})
	if err != nil {
		panic(err) // Unreachable: both inputs have length one.
	}
	return f[0]
}

// Validate checks the model parameters. It is meant for parameter sets
// read from configuration; the built-in sets are valid.
func (m Model) Validate() error {
	if err := m.Production.Validate(); err != nil {
		return fmt.Errorf("socsem: %s: %w", m.Name, err)
	}
	if m.Uptake != nil {
		if err := m.Uptake.Validate(); err != nil {
			return fmt.Errorf("socsem: %s: %w", m.Name, err)
		}
	}
	return nil
}

func gather(x []float64, idx []int) []float64 {
	o := make([]float64, len(idx))
	for j, i := range idx {
		o[j] = x[i]
	}
	return o
}

func scatter(dst, x []float64, idx []int) {
	for j, i := range idx {
		dst[i] = x[j]
	}
}
