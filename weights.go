/*
 * weights.go, part of goensemble.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package ensemble

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//CalcSumOfWeights returns the per-atom sum of the weights of a weighted
//ensemble across all its coordinate sets. The result tells how many of the
//conformations resolve each atom (exactly, when weights are binary). It
//returns an error if given an ensemble that is not a PDBEnsemble, as plain
//ensembles carry no per-conformation weights to sum. A weighted ensemble
//with no coordinate sets gives a nil result and no error.
func CalcSumOfWeights(e Ensembler) ([]float64, error) {
	P, ok := e.(*PDBEnsemble)
	if !ok {
		return nil, Err{string(ErrTypeMismatch), []string{"CalcSumOfWeights"}}
	}
	if P.NumCoordsets() == 0 {
		return nil, nil
	}
	sum := make([]float64, P.NumAtoms())
	col := make([]float64, P.NumAtoms())
	for _, w := range P.wts {
		floats.Add(sum, mat.Col(col, 0, w))
	}
	return sum, nil
}
