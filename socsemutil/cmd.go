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

// Package socsemutil holds the command-line interface and configuration
// handling for SOCSEM.
package socsemutil

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/socsem"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
type Cfg struct {
	*viper.Viper

	// Root is the main command.
	Root *cobra.Command

	versionCmd, fluxCmd, paramsCmd                   *cobra.Command
	fitCmd, fitLinearCmd, fitBellCmd, fitLogisticCmd *cobra.Command

	// Log receives progress and diagnostic messages.
	Log *logrus.Logger

	// models holds the active biome models: the built-in ones, replaced
	// or supplemented by any from the parameter file.
	models map[string]socsem.Model
}

type flagOption struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

// InitializeConfig initializes the configuration and command tree.
func InitializeConfig() *Cfg {
	cfg := &Cfg{
		Viper: viper.New(),
		Log:   newLogger(),
	}

	cfg.Root = &cobra.Command{
		Use:   "socsem",
		Short: "A soil OCS exchange model.",
		Long: `SOCSEM estimates the exchange of carbonyl sulfide (OCS) between soils
and the atmosphere from soil temperature and soil moisture for grassland,
boreal forest, temperate forest, tropical forest, agricultural and wetland
soils. Emission to the atmosphere is positive and uptake is negative.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'SOCSEM_var' where 'var' is the
name of the variable to be set.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return cfg.setConfig() },
	}

	cfg.versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "version prints the version number of this version of SOCSEM.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("SOCSEM v%s\n", socsem.Version)
		},
		DisableAutoGenTag: true,
	}

	cfg.fluxCmd = &cobra.Command{
		Use:   "flux",
		Short: "Calculate soil OCS flux.",
		Long: `flux calculates net soil OCS flux in pmol m⁻² s⁻¹ for the
biome given by --Biome at each pair of soil temperatures (°C, --Temperature)
and soil volumetric water contents (%, --Moisture). Flux at or below 0 °C is
zero for every biome except wetland, which also ignores soil moisture.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cfg.model(cfg.GetString("Biome"))
			if err != nil {
				return err
			}
			t, err := toFloat64SliceE(cfg.Get("Temperature"))
			if err != nil {
				return fmt.Errorf("socsem: reading 'Temperature': %v", err)
			}
			sw, err := toFloat64SliceE(cfg.Get("Moisture"))
			if err != nil {
				return fmt.Errorf("socsem: reading 'Moisture': %v", err)
			}
			return Flux(cmd.OutOrStdout(), cfg.Log, m, t, sw,
				cfg.GetBool("Components"), cfg.GetBool("Summary"))
		},
		DisableAutoGenTag: true,
	}

	cfg.paramsCmd = &cobra.Command{
		Use:   "params [biome...]",
		Short: "Print biome parameters.",
		Long: `params prints the parameters of the named biomes, or of all
biomes if none are named, including any read from the file given by --Params.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = cfg.biomeNames()
			}
			models := make([]socsem.Model, len(args))
			for i, name := range args {
				m, err := cfg.model(name)
				if err != nil {
					return err
				}
				models[i] = m
			}
			return Params(cmd.OutOrStdout(), models...)
		},
		DisableAutoGenTag: true,
	}

	cfg.fitCmd = &cobra.Command{
		Use:   "fit",
		Short: "Fit curves to observations.",
		Long: `fit calibrates one of the curve forms used by SOCSEM to the
observations given by --Y at the abscissas given by --X. Use the subcommands
to choose the curve form.`,
		DisableAutoGenTag: true,
	}

	cfg.fitLinearCmd = &cobra.Command{
		Use:   "linear",
		Short: "Fit a linear temperature curve.",
		Long:  `linear fits uptake = slope·temperature + intercept by least squares.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, _, err := cfg.observations()
			if err != nil {
				return err
			}
			return FitLinear(cmd.OutOrStdout(), cfg.Log, x, y)
		},
		DisableAutoGenTag: true,
	}

	cfg.fitBellCmd = &cobra.Command{
		Use:   "bell",
		Short: "Fit a bell-shaped response curve.",
		Long: `bell fits a bell-shaped response curve with its reference abscissa
held at --RefX. --Init gives initial guesses for the optimum flux, the reference
flux, and the optimum abscissa, in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, init, err := cfg.observations()
			if err != nil {
				return err
			}
			return FitBell(cmd.OutOrStdout(), cfg.Log, x, y, cfg.GetFloat64("RefX"), init)
		},
		DisableAutoGenTag: true,
	}

	cfg.fitLogisticCmd = &cobra.Command{
		Use:   "logistic",
		Short: "Fit a logistic production curve.",
		Long: `logistic fits an abiotic production curve with its maximum held at
--AMax, or at the largest observation if --AMax is not positive. --Init gives
initial guesses for K and B, in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, init, err := cfg.observations()
			if err != nil {
				return err
			}
			return FitLogistic(cmd.OutOrStdout(), cfg.Log, x, y, cfg.GetFloat64("AMax"), init)
		},
		DisableAutoGenTag: true,
	}

	// Link the commands together.
	cfg.Root.AddCommand(cfg.versionCmd)
	cfg.Root.AddCommand(cfg.fluxCmd)
	cfg.Root.AddCommand(cfg.paramsCmd)
	cfg.Root.AddCommand(cfg.fitCmd)
	cfg.fitCmd.AddCommand(cfg.fitLinearCmd)
	cfg.fitCmd.AddCommand(cfg.fitBellCmd)
	cfg.fitCmd.AddCommand(cfg.fitLogisticCmd)

	// Options are the configuration options available to SOCSEM.
	options := []flagOption{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "Params",
			usage: `
              Params specifies the location of a TOML file holding biome
              parameter sets. Biomes in the file replace built-in biomes of
              the same name; other names add new biomes. The path can include
              environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel specifies the logging level. Valid options are
              "debug", "info", "warning", and "error".`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "Biome",
			usage: `
              Biome specifies the biome to calculate flux for. Run
              'socsem params' to list the available biomes.`,
			shorthand:  "b",
			defaultVal: "grassland",
			flagsets:   []*pflag.FlagSet{cfg.fluxCmd.Flags()},
		},
		{
			name: "Temperature",
			usage: `
              Temperature is a comma-separated list of soil temperatures
              in °C.`,
			shorthand:  "t",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.fluxCmd.Flags()},
		},
		{
			name: "Moisture",
			usage: `
              Moisture is a comma-separated list of soil volumetric water
              contents in percent, one for each temperature. It is ignored
              for wetland.`,
			shorthand:  "m",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.fluxCmd.Flags()},
		},
		{
			name: "Components",
			usage: `
              Components specifies whether to print the biotic and abiotic
              parts of the flux along with the net flux.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{cfg.fluxCmd.Flags()},
		},
		{
			name: "Summary",
			usage: `
              Summary specifies whether to print summary statistics of
              the calculated fluxes.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{cfg.fluxCmd.Flags()},
		},
		{
			name: "X",
			usage: `
              X is a comma-separated list of abscissas (temperatures or
              soil moistures) of the observations to fit.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.fitCmd.PersistentFlags()},
		},
		{
			name: "Y",
			usage: `
              Y is a comma-separated list of observed fluxes in
              pmol m⁻² s⁻¹, one for each abscissa.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.fitCmd.PersistentFlags()},
		},
		{
			name: "Init",
			usage: `
              Init is a comma-separated list of initial parameter guesses.
              Its meaning depends on the curve form.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.fitBellCmd.Flags(), cfg.fitLogisticCmd.Flags()},
		},
		{
			name: "RefX",
			usage: `
              RefX is the reference abscissa that a bell-shaped curve is
              fitted with.`,
			defaultVal: 25.0,
			flagsets:   []*pflag.FlagSet{cfg.fitBellCmd.Flags()},
		},
		{
			name: "AMax",
			usage: `
              AMax is the maximum flux that a production curve is fitted
              with, in pmol m⁻² s⁻¹.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{cfg.fitLogisticCmd.Flags()},
		},
	}

	// Set the prefix for configuration environment variables.
	cfg.SetEnvPrefix("SOCSEM")
	cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
	return cfg
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stderr
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
	return log
}

// setConfig finds and reads in the configuration file, if there is one,
// sets the logging level, and loads any biome parameter file.
func (cfg *Cfg) setConfig() error {
	if cfgpath := cfg.GetString("config"); cfgpath != "" {
		cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("socsem: problem reading configuration file: %v", err)
		}
		cfg.Log.WithField("file", cfgpath).Debug("read configuration file")
	}

	level, err := logrus.ParseLevel(cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("socsem: %v", err)
	}
	cfg.Log.SetLevel(level)

	cfg.models = make(map[string]socsem.Model)
	for _, name := range socsem.Names() {
		m, err := socsem.New(name)
		if err != nil {
			return err
		}
		cfg.models[name] = m
	}
	if p := cfg.GetString("Params"); p != "" {
		models, err := LoadParams(os.ExpandEnv(p), cfg.Log)
		if err != nil {
			return err
		}
		for name, m := range models {
			if _, ok := cfg.models[name]; ok {
				cfg.Log.WithField("biome", name).Info("replacing built-in biome parameters")
			}
			cfg.models[name] = m
		}
	}
	return nil
}

// model returns the active model for the named biome.
func (cfg *Cfg) model(name string) (socsem.Model, error) {
	m, ok := cfg.models[socsem.CanonicalName(name)]
	if !ok {
		return socsem.Model{}, fmt.Errorf("socsem: invalid biome '%s'; valid options are %v", name, cfg.biomeNames())
	}
	return m, nil
}

func (cfg *Cfg) biomeNames() []string {
	names := make([]string, 0, len(cfg.models))
	for n := range cfg.models {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// observations reads the observations and initial guesses for a fit.
func (cfg *Cfg) observations() (x, y, init []float64, err error) {
	if x, err = toFloat64SliceE(cfg.Get("X")); err != nil {
		return nil, nil, nil, fmt.Errorf("socsem: reading 'X': %v", err)
	}
	if y, err = toFloat64SliceE(cfg.Get("Y")); err != nil {
		return nil, nil, nil, fmt.Errorf("socsem: reading 'Y': %v", err)
	}
	if init, err = toFloat64SliceE(cfg.Get("Init")); err != nil {
		return nil, nil, nil, fmt.Errorf("socsem: reading 'Init': %v", err)
	}
	return x, y, init, nil
}
