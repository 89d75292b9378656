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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spatialmodel/wrapsim"
)

func TestVersion(t *testing.T) {
	var buf bytes.Buffer
	Root.SetOutput(&buf)
	defer Root.SetOutput(nil)
	Cfg.Set("config", "does-not-exist.json")
	defer Cfg.Set("config", "")
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if want := "WrapSim v" + wrapsim.Version; !strings.Contains(buf.String(), want) {
		t.Errorf("%q does not contain %q", buf.String(), want)
	}
}

func TestRunCmd(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	Cfg.Set("config", writeConfig(t, dir, "sim-config.json", simConfigJSON))
	Cfg.Set("shell", writeConfig(t, dir, "shell-config.json", shellConfigJSON))
	Cfg.Set("LayermapFile", filepath.Join(dir, "layermap.png"))
	Cfg.Set("HeatmapFile", filepath.Join(dir, "heatmap.png"))
	Cfg.Set("LogFile", "")
	Cfg.Set("error", 2)
	Root.SetArgs([]string{"run"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	checkPNG(t, filepath.Join(dir, "layermap.png"), 16)
	checkPNG(t, filepath.Join(dir, "heatmap.png"), 16)
	if _, err := os.Stat(filepath.Join(dir, "layermap.log")); err != nil {
		t.Errorf("log file: %v", err)
	}
}

func TestEvolveCmd(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	Cfg.Set("config", writeConfig(t, dir, "sim-config.json", simConfigJSON))
	Cfg.Set("BestConfigFile", filepath.Join(dir, "best-config.json"))
	Cfg.Set("CheckpointFile", filepath.Join(dir, "checkpoint.toml"))
	Cfg.Set("HistoryPlot", "")
	Cfg.Set("LogFile", filepath.Join(dir, "evolve.log"))
	Cfg.Set("Resume", false)
	Cfg.Set("workers", 2)
	Cfg.Set("seed", 3)
	defer Cfg.Set("find", false)

	for _, args := range [][]string{{"evolve"}, {"--find"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			Cfg.Set("find", args[0] == "--find")
			Root.SetArgs(args)
			if err := Root.Execute(); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadShellConfig(filepath.Join(dir, "best-config.json")); err != nil {
				t.Errorf("reading best configuration: %v", err)
			}
			if _, err := os.Stat(filepath.Join(dir, "checkpoint.toml")); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestRunCmd_missingShell(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	Cfg.Set("config", writeConfig(t, dir, "sim-config.json", simConfigJSON))
	Cfg.Set("shell", filepath.Join(dir, "shell-config.json"))
	Root.SetArgs([]string{"run"})
	if err := Root.Execute(); err == nil {
		t.Error("expected an error")
	}
}
