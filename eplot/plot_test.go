/*
 * plot_test.go, part of goensemble.
 *
 * Copyright 2023 Raul Mera <rmeraaatacademicosdotutadotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package eplot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRMSDPlot(Te *testing.T) {
	rmsds := []float64{0.0, 1.2, 0.9, 2.3, 1.7, 1.1}
	name := filepath.Join(Te.TempDir(), "rmsd")
	if err := RMSDPlot(rmsds, "RMSD per conformation", name); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Error("plot file not written:", err)
	}
	if err := RMSDPlot(nil, "empty", name); err == nil {
		Te.Error("expected an error for an empty data set")
	}
}

func TestOccupancyPlot(Te *testing.T) {
	occ := []float64{1, 0.5, 0.75, 1, 0.25}
	name := filepath.Join(Te.TempDir(), "occupancy")
	if err := OccupancyPlot(occ, "Atom occupancies", name); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Error("plot file not written:", err)
	}
}
