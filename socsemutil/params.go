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

package socsemutil

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/socsem"
	"github.com/spatialmodel/socsem/science/production/logistic"
	"github.com/spatialmodel/socsem/science/uptake/bellcurve"
	"github.com/spatialmodel/socsem/science/uptake/biotic"
)

// ParamFile is the layout of a biome parameter file. Each entry of Biome
// holds the parameters of one biome, keyed by biome name.
type ParamFile struct {
	Biome map[string]BiomeParams
}

// BiomeParams holds the parameters of one biome.
type BiomeParams struct {
	// Ungated specifies that flux is calculated at all temperatures rather
	// than only above 0 °C.
	Ungated bool

	// OptMoisture and RefMoisture are the optimum and reference soil
	// moistures [%] of the uptake curve.
	OptMoisture, RefMoisture float64

	// Opt and Other are the uptake at the optimum and reference soil
	// moistures as functions of temperature. A biome without either has
	// no biotic uptake.
	Opt, Other *CurveParams

	Production ProductionParams
}

// CurveParams describes an uptake temperature curve. Form is one of
// "bell", "constant", or "linear" and determines which of the other
// fields are used.
type CurveParams struct {
	Form string

	// Value is the uptake of a constant curve.
	Value float64

	// Slope and Intercept describe a linear curve.
	Slope, Intercept float64

	// OptFlux, RefFlux, RefT, and OptT describe a bell curve.
	OptFlux, RefFlux, RefT, OptT float64
}

// ProductionParams describes the abiotic production curve. If Builtin is
// set to one of "rainforest", "forest", "agricultural", "grassland", or
// "wetland", the built-in parameters of that family are used and the other
// fields are ignored.
type ProductionParams struct {
	Builtin string

	AMax, K, B float64
}

var builtinProduction = map[string]logistic.Production{
	"rainforest":   logistic.Rainforest,
	"forest":       logistic.Forest,
	"agricultural": logistic.Agricultural,
	"grassland":    logistic.Grassland,
	"wetland":      logistic.Wetland,
}

// LoadParams reads and validates the biome parameter file at path.
func LoadParams(path string, log logrus.FieldLogger) (map[string]socsem.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("socsem: opening parameter file: %w", err)
	}
	defer f.Close()
	models, err := ReadParams(f, log)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	log.WithFields(logrus.Fields{"file": path, "biomes": len(models)}).Info("loaded biome parameters")
	return models, nil
}

// ReadParams reads and validates biome parameters in TOML format from r.
// Keys that do not match any parameter are logged as warnings.
func ReadParams(r io.Reader, log logrus.FieldLogger) (map[string]socsem.Model, error) {
	var pf ParamFile
	md, err := toml.NewDecoder(r).Decode(&pf)
	if err != nil {
		return nil, fmt.Errorf("socsem: decoding parameter file: %w", err)
	}
	for _, k := range md.Undecoded() {
		log.WithField("key", k.String()).Warn("unknown key in parameter file")
	}
	if len(pf.Biome) == 0 {
		return nil, fmt.Errorf("socsem: parameter file has no biomes")
	}
	names := make([]string, 0, len(pf.Biome))
	for n := range pf.Biome {
		names = append(names, n)
	}
	sort.Strings(names)

	models := make(map[string]socsem.Model, len(pf.Biome))
	for _, n := range names {
		name := socsem.CanonicalName(n)
		if _, ok := models[name]; ok {
			return nil, fmt.Errorf("socsem: biome '%s' is specified more than once", name)
		}
		m, err := pf.Biome[n].Model(name)
		if err != nil {
			return nil, err
		}
		models[name] = m
	}
	return models, nil
}

// Model converts b into a validated model with the given name.
func (b BiomeParams) Model(name string) (socsem.Model, error) {
	m := socsem.Model{Name: name, Gated: !b.Ungated}
	prod, err := b.Production.production()
	if err != nil {
		return socsem.Model{}, fmt.Errorf("socsem: biome '%s': %w", name, err)
	}
	m.Production = prod

	switch {
	case b.Opt == nil && b.Other == nil:
	case b.Opt == nil || b.Other == nil:
		return socsem.Model{}, fmt.Errorf("socsem: biome '%s': uptake needs both 'opt' and 'other' curves", name)
	default:
		opt, err := b.Opt.Curve()
		if err != nil {
			return socsem.Model{}, fmt.Errorf("socsem: biome '%s': opt: %w", name, err)
		}
		other, err := b.Other.Curve()
		if err != nil {
			return socsem.Model{}, fmt.Errorf("socsem: biome '%s': other: %w", name, err)
		}
		m.Uptake = &biotic.Uptake{
			OptMoisture: b.OptMoisture,
			RefMoisture: b.RefMoisture,
			Opt:         opt,
			Other:       other,
		}
	}
	if err := m.Validate(); err != nil {
		return socsem.Model{}, err
	}
	return m, nil
}

// Curve returns the temperature curve described by c.
func (c CurveParams) Curve() (biotic.TemperatureCurve, error) {
	switch strings.ToLower(c.Form) {
	case "bell":
		return biotic.Bell{Curve: bellcurve.Curve{
			OptFlux: c.OptFlux,
			RefFlux: c.RefFlux,
			RefX:    c.RefT,
			OptX:    c.OptT,
		}}, nil
	case "constant":
		return biotic.Constant(c.Value), nil
	case "linear":
		return biotic.Linear{Slope: c.Slope, Intercept: c.Intercept}, nil
	default:
		return nil, fmt.Errorf("invalid curve form '%s'; valid options are bell, constant, and linear", c.Form)
	}
}

func (p ProductionParams) production() (logistic.Production, error) {
	if p.Builtin == "" {
		return logistic.Production{AMax: p.AMax, K: p.K, B: p.B}, nil
	}
	prod, ok := builtinProduction[strings.ToLower(p.Builtin)]
	if !ok {
		return logistic.Production{}, fmt.Errorf("invalid built-in production curve '%s'", p.Builtin)
	}
	return prod, nil
}
