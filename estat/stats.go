/*
 * stats.go, part of goensemble.
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

//Package estat implements simple statistical descriptors for conformational
//ensembles: spread of the RMSD to the reference, per-atom mean square
//fluctuations and per-atom occupancies.
package estat

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	ens "github.com/rmera/goensemble"
	v3 "github.com/rmera/goensemble/v3"
)

//RMSDStats returns the mean and the standard deviation of the RMSDs of the
//conformations of e against its reference. Zeroes and no error for an
//ensemble with no coordinate sets.
func RMSDStats(e ens.Ensembler) (float64, float64, error) {
	rmsds, err := e.RMSDs()
	if err != nil {
		return 0, 0, err
	}
	if rmsds == nil {
		return 0, 0, nil
	}
	if len(rmsds) == 1 {
		return rmsds[0], 0, nil
	}
	return stat.Mean(rmsds, nil), stat.StdDev(rmsds, nil), nil
}

//MSF returns the mean square fluctuation of each atom about its average
//position across the coordinate sets of e. Conformations are taken as
//stored: superpose the ensemble first if the sets are not yet aligned.
//Nil and no error for an ensemble with no coordinate sets.
func MSF(e ens.Ensembler) ([]float64, error) {
	sets := e.Coordsets()
	if sets == nil {
		return nil, nil
	}
	natoms := e.NumAtoms()
	nsets := float64(len(sets))
	mean := v3.Zeros(natoms)
	for _, s := range sets {
		mean.Add(mean, s)
	}
	mean.Scale(1/nsets, mean)
	msf := make([]float64, natoms)
	for _, s := range sets {
		for i := 0; i < natoms; i++ {
			dx := s.At(i, 0) - mean.At(i, 0)
			dy := s.At(i, 1) - mean.At(i, 1)
			dz := s.At(i, 2) - mean.At(i, 2)
			msf[i] += dx*dx + dy*dy + dz*dz
		}
	}
	floats.Scale(1/nsets, msf)
	return msf, nil
}

//Occupancy returns, per atom, the fraction of the coordinate sets of p that
//resolve it: the sum of its weights over the sets, divided by the number of
//sets. With binary weights this is the occupancy of the atom in the
//ensemble, between 0 (never present) and 1 (present in every conformation).
//Nil and no error for an ensemble with no coordinate sets.
func Occupancy(p *ens.PDBEnsemble) ([]float64, error) {
	sums, err := ens.CalcSumOfWeights(p)
	if err != nil {
		return nil, err
	}
	if sums == nil {
		return nil, nil
	}
	floats.Scale(1/float64(p.NumCoordsets()), sums)
	return sums, nil
}
