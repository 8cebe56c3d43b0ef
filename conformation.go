/*
 * conformation.go, part of goensemble.
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
	"fmt"

	"gonum.org/v1/gonum/mat"

	v3 "github.com/rmera/goensemble/v3"
)

//Conformation is a read-only, non-owning view into one coordinate set of an
//Ensemble. It stores only the owner and an index: every accessor re-reads
//the owner at that index when called. If the owner's coordinate-set list is
//mutated after the view is created, the view silently refers to whatever now
//lives at its index (possibly nothing). This is a documented hazard, not a
//guarded one; don't interleave structural edits with the use of views.
type Conformation struct {
	ensemble *Ensemble
	index    int
}

//Coordinates returns a copy of the coordinates of this conformation, or nil
//if the index no longer refers to a stored coordinate set.
func (C *Conformation) Coordinates() *v3.Matrix {
	if C.index >= C.ensemble.NumCoordsets() {
		return nil
	}
	s := C.ensemble.Coordsets(C.index)
	if s == nil {
		return nil
	}
	return s[0]
}

//Weights returns a copy of the uniform per-atom weights of the owning
//ensemble (they are shared by all its conformations), or nil if the owner
//is unweighted.
func (C *Conformation) Weights() *mat.Dense {
	return C.ensemble.Weights()
}

//Index returns the position of this conformation in the owning ensemble,
//as of the time of the call.
func (C *Conformation) Index() int { return C.index }

//NumAtoms returns the number of atoms in the conformation.
func (C *Conformation) NumAtoms() int { return C.ensemble.NumAtoms() }

//String returns a one-line description of the conformation.
func (C *Conformation) String() string {
	return fmt.Sprintf("Conformation %d from ensemble %q (%d atoms)", C.index, C.ensemble.Title(), C.ensemble.NumAtoms())
}

//PDBConformation is the Conformation variant bound to a PDBEnsemble. Unlike
//a plain Conformation, its weights are its own: the weight column attached
//to this specific coordinate set.
type PDBConformation struct {
	ensemble *PDBEnsemble
	index    int
}

//Coordinates returns a copy of the coordinates of this conformation.
//Positions whose weight is zero are not guaranteed to be meaningful; check
//Weights before trusting a value.
func (C *PDBConformation) Coordinates() *v3.Matrix {
	if C.index >= C.ensemble.NumCoordsets() {
		return nil
	}
	s := C.ensemble.Coordsets(C.index)
	if s == nil {
		return nil
	}
	return s[0]
}

//Weights returns a copy of the per-atom weight column of this specific
//conformation, an atoms x 1 matrix.
func (C *PDBConformation) Weights() *mat.Dense {
	if C.index >= len(C.ensemble.wts) {
		return nil
	}
	return mat.DenseCopyOf(C.ensemble.wts[C.index])
}

//Index returns the position of this conformation in the owning ensemble,
//as of the time of the call.
func (C *PDBConformation) Index() int { return C.index }

//NumAtoms returns the number of atoms in the conformation.
func (C *PDBConformation) NumAtoms() int { return C.ensemble.NumAtoms() }

//String returns a one-line description of the conformation.
func (C *PDBConformation) String() string {
	return fmt.Sprintf("PDBConformation %d from ensemble %q (%d atoms)", C.index, C.ensemble.Title(), C.ensemble.NumAtoms())
}
