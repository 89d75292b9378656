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

// Package wrapsimutil contains the command-line interface and configuration
// handling for WrapSim.
package wrapsimutil

import (
	"fmt"
	"runtime"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/wrapsim"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to WrapSim.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the simulation configuration file location.
              The file holds layermapSize, mapFillPrecisionMult and
              errorCalcYAxisSweeps and, for searches, a SearchConfig section.`,
			shorthand:  "i",
			defaultVal: "sim-config.json",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "verbose",
			usage: `
              verbose specifies whether to log debugging information such as
              search state changes and evaluation timings.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the desired log file location. If it is
              not specified, it is derived from the path of the main output
              file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "find",
			usage: `
              find specifies whether to search for the best taping schedule
              instead of simulating the schedule in the shell configuration file.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "shell",
			usage: `
              shell specifies the shell configuration file location.`,
			shorthand:  "s",
			defaultVal: "shell-config.json",
			flagsets:   []*pflag.FlagSet{Root.Flags(), runCmd.Flags()},
		},
		{
			name: "error",
			usage: `
              error specifies a target number of layers to calculate the error
              of a simulated schedule against. If it is negative, no error is
              calculated.`,
			shorthand:  "e",
			defaultVal: -1,
			flagsets:   []*pflag.FlagSet{Root.Flags(), runCmd.Flags()},
		},
		{
			name: "LayermapFile",
			usage: `
              LayermapFile is the path where the greyscale layer map image of a
              simulation should be written. Leave it empty to skip the image.`,
			defaultVal: "layermap.png",
			flagsets:   []*pflag.FlagSet{Root.Flags(), runCmd.Flags()},
		},
		{
			name: "HeatmapFile",
			usage: `
              HeatmapFile is the path where the heat map image of a simulation
              should be written. Leave it empty to skip the image.`,
			defaultVal: "heatmap.png",
			flagsets:   []*pflag.FlagSet{Root.Flags(), runCmd.Flags()},
		},
		{
			name: "workers",
			usage: `
              workers specifies the number of schedules to evaluate at once.
              Values less than one use the number of available processors.`,
			defaultVal: runtime.GOMAXPROCS(0),
			flagsets:   []*pflag.FlagSet{Root.Flags(), evolveCmd.Flags()},
		},
		{
			name: "seed",
			usage: `
              seed specifies the random seed for the search. Runs with the same
              nonzero seed and configuration produce the same result. Zero
              seeds from the current time.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{Root.Flags(), evolveCmd.Flags()},
		},
		{
			name: "BestConfigFile",
			usage: `
              BestConfigFile is the path where the best schedule found so far is
              written after every generation. It can be used as a shell
              configuration file.`,
			defaultVal: "best-config.json",
			flagsets:   []*pflag.FlagSet{Root.Flags(), evolveCmd.Flags()},
		},
		{
			name: "CheckpointFile",
			usage: `
              CheckpointFile is the path where the ranked population is written
              after every generation. Leave it empty to disable checkpoints.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.Flags(), evolveCmd.Flags()},
		},
		{
			name: "Resume",
			usage: `
              Resume specifies whether to start the search from the population
              in CheckpointFile.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.Flags(), evolveCmd.Flags()},
		},
		{
			name: "HistoryPlot",
			usage: `
              HistoryPlot is the path where a plot of the best and mean fitness
              of every generation is written when the search finishes. Leave it
              empty to skip the plot.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.Flags(), evolveCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("WRAPSIM")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(evolveCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("wrapsimutil: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "wrapsim",
	Short: "A tape winding simulator and schedule optimizer.",
	Long: `WrapSim simulates tape being wound onto a hemispherical shell and counts
the layers laid down on every part of its surface. With --find, it instead
searches for the taping schedule that gives the most uniform thickness.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'WRAPSIM_var' where 'var' is
the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
	RunE: func(cmd *cobra.Command, args []string) error {
		if Cfg.GetBool("find") {
			return evolveCmdFunc(cmd)
		}
		return runCmdFunc(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of WrapSim.",
	// The version does not depend on the configuration file.
	PersistentPreRun: func(*cobra.Command, []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("WrapSim v%s\n", wrapsim.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a taping schedule.",
	Long: `run simulates the taping schedule in the shell configuration file and
writes the resulting layer map and heat map images.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCmdFunc(cmd)
	},
	DisableAutoGenTag: true,
}

var evolveCmd = &cobra.Command{
	Use:   "evolve",
	Short: "Search for the best taping schedule.",
	Long: `evolve runs an evolutionary search for the taping schedule whose layer map
best matches the target thickness in the SearchConfig section of the
configuration file. The best schedule is written after every generation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return evolveCmdFunc(cmd)
	},
	DisableAutoGenTag: true,
}

func runCmdFunc(cmd *cobra.Command) error {
	sim, err := LoadSimulationConfig(Cfg)
	if err != nil {
		return err
	}
	shell, err := LoadShellConfig(Cfg.GetString("shell"))
	if err != nil {
		return err
	}
	layermapFile := Cfg.GetString("LayermapFile")
	log, closeLog, err := newLogger(cmd.OutOrStdout(),
		checkLogFile(Cfg.GetString("LogFile"), layermapFile, "wrapsim.log"), Cfg.GetBool("verbose"))
	if err != nil {
		return err
	}
	defer closeLog()
	return Run(log, sim, shell, Cfg.GetInt("error"), layermapFile, Cfg.GetString("HeatmapFile"))
}

func evolveCmdFunc(cmd *cobra.Command) error {
	sim, err := LoadSimulationConfig(Cfg)
	if err != nil {
		return err
	}
	evo, err := LoadEvolutionConfig(Cfg)
	if err != nil {
		return err
	}
	bestFile := Cfg.GetString("BestConfigFile")
	log, closeLog, err := newLogger(cmd.OutOrStdout(),
		checkLogFile(Cfg.GetString("LogFile"), bestFile, "wrapsim-evolve.log"), Cfg.GetBool("verbose"))
	if err != nil {
		return err
	}
	defer closeLog()
	return Evolve(log, sim, evo, Cfg.GetInt("workers"), int64(Cfg.GetInt("seed")),
		bestFile, Cfg.GetString("CheckpointFile"), Cfg.GetBool("Resume"), Cfg.GetString("HistoryPlot"))
}
