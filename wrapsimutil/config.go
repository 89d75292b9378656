/*
Copyright © 2026 the WrapSim authors.
This file is part of WrapSim.

WrapSim is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

WrapSim is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with WrapSim.  If not, see <http://www.gnu.org/licenses/>.
*/

package wrapsimutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/wrapsim"
	"github.com/spatialmodel/wrapsim/evolve"
	"github.com/spf13/cast"
)

// searchSection is the configuration file section holding the search
// settings.
const searchSection = "SearchConfig"

// readConfigFile reads the configuration file at path into a new viper
// instance. The file type is determined by the file extension.
func readConfigFile(path string) (*viper.Viper, error) {
	if path == "" {
		return nil, fmt.Errorf("wrapsimutil: no configuration file specified")
	}
	cfg := viper.New()
	cfg.SetConfigFile(os.ExpandEnv(path))
	if err := cfg.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("wrapsimutil: problem reading configuration file %s: %v", path, err)
	}
	return cfg, nil
}

// checkRequired returns an error naming the first of keys that is not set
// in cfg.
func checkRequired(cfg *viper.Viper, keys ...string) error {
	for _, k := range keys {
		if !cfg.IsSet(k) {
			return fmt.Errorf("wrapsimutil: missing required configuration variable %s", k)
		}
	}
	return nil
}

// LoadSimulationConfig unmarshals the raster settings from a viper
// configuration.
func LoadSimulationConfig(cfg *viper.Viper) (wrapsim.SimulationConfig, error) {
	var c wrapsim.SimulationConfig
	if err := checkRequired(cfg, "layermapSize", "mapFillPrecisionMult", "errorCalcYAxisSweeps"); err != nil {
		return c, err
	}
	var err error
	if c.LayermapSize, err = cast.ToIntE(cfg.Get("layermapSize")); err != nil {
		return c, fmt.Errorf("wrapsimutil: layermapSize: %v", err)
	}
	if c.MapFillPrecisionMult, err = cast.ToFloat64E(cfg.Get("mapFillPrecisionMult")); err != nil {
		return c, fmt.Errorf("wrapsimutil: mapFillPrecisionMult: %v", err)
	}
	if c.ErrorCalcYAxisSweeps, err = cast.ToIntE(cfg.Get("errorCalcYAxisSweeps")); err != nil {
		return c, fmt.Errorf("wrapsimutil: errorCalcYAxisSweeps: %v", err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("wrapsimutil: parsing simulation configuration: %v", err)
	}
	return c, nil
}

// LoadShellConfig reads the taping schedule in the file at path. Stepper
// speeds and rim rotations are stored as fractions of the rim speed and
// are converted to internal units.
func LoadShellConfig(path string) (wrapsim.ShellConfig, error) {
	cfg, err := readConfigFile(path)
	if err != nil {
		return wrapsim.ShellConfig{}, err
	}
	return shellConfig(cfg)
}

func shellConfig(cfg *viper.Viper) (wrapsim.ShellConfig, error) {
	var c wrapsim.ShellConfig
	if err := checkRequired(cfg, "numAngles", "shellDiameter", "tapeWidth", "shellChuckDiameter",
		"shellArmAngles", "shellStepperSpeedFraction", "rimRotationsUntilNextAngle"); err != nil {
		return c, err
	}
	var err error
	if c.NumAngles, err = cast.ToIntE(cfg.Get("numAngles")); err != nil {
		return c, fmt.Errorf("wrapsimutil: numAngles: %v", err)
	}
	scalars := []*float64{&c.ShellDiameter, &c.TapeWidth, &c.ShellChuckDiameter}
	for i, name := range []string{"shellDiameter", "tapeWidth", "shellChuckDiameter"} {
		if *scalars[i], err = cast.ToFloat64E(cfg.Get(name)); err != nil {
			return c, fmt.Errorf("wrapsimutil: %s: %v", name, err)
		}
	}
	if c.ShellArmAngles, err = toFloat64SliceE(cfg.Get("shellArmAngles")); err != nil {
		return c, fmt.Errorf("wrapsimutil: shellArmAngles: %v", err)
	}
	fractions, err := toFloat64SliceE(cfg.Get("shellStepperSpeedFraction"))
	if err != nil {
		return c, fmt.Errorf("wrapsimutil: shellStepperSpeedFraction: %v", err)
	}
	rims, err := toFloat64SliceE(cfg.Get("rimRotationsUntilNextAngle"))
	if err != nil {
		return c, fmt.Errorf("wrapsimutil: rimRotationsUntilNextAngle: %v", err)
	}
	c.ShellStepperSpeed = make([]float64, len(fractions))
	for i, f := range fractions {
		if !(f > 0) {
			return c, fmt.Errorf("wrapsimutil: shellStepperSpeedFraction[%d]=%g but should be >0", i, f)
		}
		c.ShellStepperSpeed[i] = wrapsim.SpeedFromFraction(f)
	}
	c.RimRotationsUntilNextAngle = make([]float64, len(rims))
	for i, r := range rims {
		c.RimRotationsUntilNextAngle[i] = r * 2
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("wrapsimutil: parsing shell configuration: %v", err)
	}
	return c, nil
}

// LoadEvolutionConfig unmarshals the search settings in the SearchConfig
// section of a viper configuration.
func LoadEvolutionConfig(cfg *viper.Viper) (*evolve.EvolutionConfig, error) {
	if !cfg.IsSet(searchSection) {
		return nil, fmt.Errorf("wrapsimutil: could not find %q section in configuration file", searchSection)
	}
	key := func(name string) string { return searchSection + "." + name }

	ints := []string{"numAngles", "targetLayers", "maxGenerations", "populationSize"}
	floats := []string{"shellDiameter", "tapeWidth", "shellChuckDiameter", "elitePercentage",
		"randomPercentage", "maxMutationPercentage", "minShellArmAngle"}
	slices := []string{"minShellArmAngles", "maxShellArmAngles",
		"minShellStepperSpeedFraction", "maxShellStepperSpeedFraction"}
	var required []string
	for _, names := range [][]string{ints, floats, slices} {
		for _, n := range names {
			required = append(required, key(n))
		}
	}
	if err := checkRequired(cfg, required...); err != nil {
		return nil, err
	}

	c := new(evolve.EvolutionConfig)
	intVals := []*int{&c.NumAngles, &c.TargetLayers, &c.MaxGenerations, &c.PopulationSize}
	for i, n := range ints {
		v, err := cast.ToIntE(cfg.Get(key(n)))
		if err != nil {
			return nil, fmt.Errorf("wrapsimutil: %s: %v", key(n), err)
		}
		*intVals[i] = v
	}
	floatVals := []*float64{&c.ShellDiameter, &c.TapeWidth, &c.ShellChuckDiameter, &c.ElitePercentage,
		&c.RandomPercentage, &c.MaxMutationPercentage, &c.MinShellArmAngle}
	for i, n := range floats {
		v, err := cast.ToFloat64E(cfg.Get(key(n)))
		if err != nil {
			return nil, fmt.Errorf("wrapsimutil: %s: %v", key(n), err)
		}
		*floatVals[i] = v
	}
	sliceVals := []*[]float64{&c.MinShellArmAngles, &c.MaxShellArmAngles,
		&c.MinShellStepperSpeedFraction, &c.MaxShellStepperSpeedFraction}
	for i, n := range slices {
		v, err := toFloat64SliceE(cfg.Get(key(n)))
		if err != nil {
			return nil, fmt.Errorf("wrapsimutil: %s: %v", key(n), err)
		}
		*sliceVals[i] = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("wrapsimutil: parsing search configuration: %v", err)
	}
	return c, nil
}

// toFloat64SliceE converts a configuration value to a slice of numbers,
// accounting for the fact that it might be a JSON array if it was set from
// a command line argument or environment variable.
func toFloat64SliceE(s interface{}) ([]float64, error) {
	switch v := s.(type) {
	case []float64:
		return v, nil
	case []interface{}:
		o := make([]float64, len(v))
		for i, val := range v {
			f, err := cast.ToFloat64E(val)
			if err != nil {
				return nil, fmt.Errorf("element %d: %v", i, err)
			}
			o[i] = f
		}
		return o, nil
	case string:
		var o []float64
		if err := json.Unmarshal([]byte(v), &o); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("invalid type %T for a list of numbers", s)
	}
}

// checkLogFile fills in a default value for the log file path if one isn't
// specified, using the path of the main output file or, if that is empty
// too, fallback.
func checkLogFile(logFile, outputFile, fallback string) string {
	if logFile != "" {
		return os.ExpandEnv(logFile)
	}
	if outputFile == "" {
		return fallback
	}
	outputFile = os.ExpandEnv(outputFile)
	return strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".log"
}
