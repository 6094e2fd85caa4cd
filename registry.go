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
	"sort"
	"strings"
)

// builtin holds the built-in models under their canonical names.
var builtin = map[string]*Model{
	Grassland.Name:       &Grassland,
	BorealForest.Name:    &BorealForest,
	TemperateForest.Name: &TemperateForest,
	TropicalForest.Name:  &TropicalForest,
	Agricultural.Name:    &Agricultural,
	Wetland.Name:         &Wetland,
}

// aliases maps alternative biome names to canonical ones.
var aliases = map[string]string{
	"grass":       "grassland",
	"savannah":    "grassland",
	"boreal":      "boreal_forest",
	"bforest":     "boreal_forest",
	"temperate":   "temperate_forest",
	"tforest":     "temperate_forest",
	"tropical":    "tropical_forest",
	"tropforest":  "tropical_forest",
	"rainforest":  "tropical_forest",
	"ag":          "agricultural",
	"agriculture": "agricultural",
	"cropland":    "agricultural",
}

// CanonicalName returns the canonical form of a biome name. Case,
// surrounding space, and the separators '-' and ' ' are ignored, and
// aliases such as "boreal" or "ag" are resolved.
func CanonicalName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	if c, ok := aliases[n]; ok {
		return c
	}
	return n
}

// New returns a copy of the built-in model for the named biome.
func New(name string) (Model, error) {
	m, ok := builtin[CanonicalName(name)]
	if !ok {
		return Model{}, fmt.Errorf("socsem: invalid biome '%s'; valid options are %s",
			name, strings.Join(Names(), ", "))
	}
	return m.Copy(), nil
}

// Names returns the canonical names of the built-in biomes in
// alphabetical order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Copy returns a copy of m that shares no memory with it.
func (m Model) Copy() Model {
	if m.Uptake != nil {
		u := *m.Uptake
		m.Uptake = &u
	}
	return m
}
