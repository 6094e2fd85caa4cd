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
	"math"
	"strings"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/socsem"
	"github.com/spatialmodel/socsem/calibrate"
	"github.com/spatialmodel/socsem/science/production/logistic"
	"github.com/spatialmodel/socsem/science/uptake/bellcurve"
	"github.com/spf13/cast"
	"gonum.org/v1/gonum/floats"
)

// Flux calculates the flux of model m at temperatures t and soil moistures
// sw and writes one tab-separated line per value to w. If components is
// true, the biotic and abiotic parts are written as well. If summary is
// true, a line of summary statistics follows the values. Non-finite
// results are logged as warnings.
func Flux(w io.Writer, log logrus.FieldLogger, m socsem.Model, t, sw []float64, components, summary bool) error {
	if len(t) == 0 {
		return fmt.Errorf("socsem: no temperatures specified")
	}
	if m.Uptake == nil && len(sw) > 0 {
		log.WithField("biome", m.Name).Info("soil moisture is ignored for this biome")
	}
	bio, abio, err := m.Components(t, sw)
	if err != nil {
		return err
	}
	flux := make([]float64, len(t))
	floats.AddTo(flux, bio, abio)

	fmt.Fprintf(w, "# biome: %s (SOCSEM v%s)\n", m.Name, socsem.Version)
	if components {
		fmt.Fprintln(w, "temperature\tmoisture\tbiotic\tabiotic\tflux")
	} else {
		fmt.Fprintln(w, "temperature\tmoisture\tflux")
	}
	for i, ti := range t {
		swi := "-"
		if i < len(sw) {
			swi = fmt.Sprint(sw[i])
		}
		if components {
			fmt.Fprintf(w, "%g\t%s\t%.6g\t%.6g\t%.6g\n", ti, swi, bio[i], abio[i], flux[i])
		} else {
			fmt.Fprintf(w, "%g\t%s\t%.6g\n", ti, swi, flux[i])
		}
		if math.IsNaN(flux[i]) || math.IsInf(flux[i], 0) {
			log.WithFields(logrus.Fields{
				"biome":       m.Name,
				"index":       i,
				"temperature": ti,
				"moisture":    swi,
			}).Warn("non-finite flux")
		}
	}
	if summary {
		fmt.Fprintf(w, "# %s\n", socsem.Summarize(flux))
	}
	return nil
}

// Params writes a human-readable dump of the given models to w.
func Params(w io.Writer, models ...socsem.Model) error {
	for _, m := range models {
		if _, err := pretty.Fprintf(w, "%# v\n", m); err != nil {
			return err
		}
	}
	return nil
}

// FitLinear fits a linear temperature curve and writes the result to w.
func FitLinear(w io.Writer, log logrus.FieldLogger, x, y []float64) error {
	l, f, err := calibrate.FitLinear(x, y)
	if err != nil {
		return err
	}
	logFit(log, "linear", f)
	fmt.Fprintf(w, "slope\t%.8g\nintercept\t%.8g\n", l.Slope, l.Intercept)
	writeFit(w, f)
	return nil
}

// FitBell fits a bell-shaped curve with its reference abscissa held at refX
// and writes the result to w. init holds initial guesses for the optimum
// flux, reference flux and optimum abscissa.
func FitBell(w io.Writer, log logrus.FieldLogger, x, y []float64, refX float64, init []float64) error {
	if len(init) != 3 {
		return fmt.Errorf("socsem: bell fit needs 3 initial values (optimum flux, reference flux, optimum abscissa) but got %d", len(init))
	}
	c, f, err := calibrate.FitBell(x, y, refX, bellcurve.Curve{
		OptFlux: init[0],
		RefFlux: init[1],
		OptX:    init[2],
	})
	if err != nil {
		return err
	}
	logFit(log, "bell", f)
	fmt.Fprintf(w, "optflux\t%.8g\nrefflux\t%.8g\nrefx\t%.8g\noptx\t%.8g\n", c.OptFlux, c.RefFlux, c.RefX, c.OptX)
	writeFit(w, f)
	return nil
}

// FitLogistic fits an abiotic production curve with its maximum held at
// aMax and writes the result to w. If aMax is not positive, the largest
// observation is used. init holds initial guesses for K and B.
func FitLogistic(w io.Writer, log logrus.FieldLogger, t, y []float64, aMax float64, init []float64) error {
	if len(init) != 2 {
		return fmt.Errorf("socsem: logistic fit needs 2 initial values (K, B) but got %d", len(init))
	}
	if !(aMax > 0) && len(y) > 0 {
		aMax = floats.Max(y)
		log.WithField("amax", aMax).Info("holding maximum at largest observation")
	}
	p, f, err := calibrate.FitLogistic(t, y, aMax, logistic.Production{K: init[0], B: init[1]})
	if err != nil {
		return err
	}
	logFit(log, "logistic", f)
	fmt.Fprintf(w, "amax\t%.8g\nk\t%.8g\nb\t%.8g\n", p.AMax, p.K, p.B)
	writeFit(w, f)
	return nil
}

func logFit(log logrus.FieldLogger, form string, f calibrate.Fit) {
	log.WithFields(logrus.Fields{
		"form":     form,
		"n":        f.N,
		"rsquared": f.RSquared,
		"rmse":     f.RMSE,
	}).Info("fitted curve")
}

func writeFit(w io.Writer, f calibrate.Fit) {
	fmt.Fprintf(w, "# n=%d r²=%.6f rmse=%.6g\n", f.N, f.RSquared, f.RMSE)
}

// toFloat64SliceE converts a configuration value to a slice of floats.
// Strings are split on commas.
func toFloat64SliceE(i interface{}) ([]float64, error) {
	switch v := i.(type) {
	case nil:
		return nil, nil
	case []float64:
		return v, nil
	case []interface{}:
		o := make([]float64, len(v))
		for j, vv := range v {
			f, err := cast.ToFloat64E(vv)
			if err != nil {
				return nil, err
			}
			o[j] = f
		}
		return o, nil
	case []string:
		return stringsToFloat64s(v)
	case string:
		v = strings.TrimSpace(strings.Trim(strings.TrimSpace(v), "[]"))
		if v == "" {
			return nil, nil
		}
		return stringsToFloat64s(strings.Split(v, ","))
	default:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, fmt.Errorf("invalid type %T for list of numbers", i)
		}
		return []float64{f}, nil
	}
}

func stringsToFloat64s(s []string) ([]float64, error) {
	o := make([]float64, len(s))
	for j, ss := range s {
		f, err := cast.ToFloat64E(strings.TrimSpace(ss))
		if err != nil {
			return nil, err
		}
		o[j] = f
	}
	return o, nil
}
