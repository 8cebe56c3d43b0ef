/*
 * plot.go, part of goensemble.
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

//Package eplot draws simple diagnostic plots for conformational ensembles:
//RMSD against the reference per conformation, and per-atom occupancy.
package eplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//RMSDPlot plots the given RMSDs against their conformation index, and saves
//the plot as plotname.png. The rmsds slice is what Ensembler.RMSDs returns;
//a nil slice (an empty ensemble) is an error here, as there is nothing to
//plot.
func RMSDPlot(rmsds []float64, title, plotname string) error {
	if rmsds == nil {
		return fmt.Errorf("RMSDPlot: given nil data")
	}
	p := basicPlot(title, "Conformation", "RMSD (A)")
	pts := make(plotter.XYs, len(rmsds))
	for i, v := range rmsds {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{B: 255, A: 255}
	scatter.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	p.Add(line, scatter)
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname+".png")
}

//OccupancyPlot plots per-atom occupancies (or any other per-atom series,
//such as the mean square fluctuations) as a bar chart, and saves the plot
//as plotname.png.
func OccupancyPlot(occ []float64, title, plotname string) error {
	if occ == nil {
		return fmt.Errorf("OccupancyPlot: given nil data")
	}
	p := basicPlot(title, "Atom", "Occupancy")
	bars, err := plotter.NewBarChart(plotter.Values(occ), vg.Points(3))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{B: 255, A: 255}
	p.Add(bars)
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname+".png")
}
