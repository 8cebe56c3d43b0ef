/*
 * pdbensemble.go, part of goensemble.
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

//PDBEnsemble is an ensemble of conformations that do not all need to resolve
//every atom: each coordinate set carries its own per-atom weight column,
//where weight 0 marks an atom as absent or unreliable in that specific
//conformation (e.g. missing density in a crystal structure) and weight 1
//marks it as present. Non-binary weights are allowed and used as
//multipliers in the fit and the RMSD. The weight stack is kept in lockstep
//with the coordinate sets through additions, deletions, slicing and
//concatenation.
type PDBEnsemble struct {
	Ensemble
	wts []*mat.Dense //one atoms x 1 column per coordinate set
}

//NewPDBEnsemble returns an empty weighted ensemble with the given title.
func NewPDBEnsemble(title string) *PDBEnsemble {
	return &PDBEnsemble{Ensemble: Ensemble{title: title}}
}

//PDBEnsembleFromProvider returns a weighted ensemble with the atom count,
//reference coordinates and coordinate sets copied from p, each set with
//all-ones weights.
func PDBEnsembleFromProvider(title string, p Provider) (*PDBEnsemble, error) {
	E, err := EnsembleFromProvider(title, p)
	if err != nil {
		return nil, errDecorate(err, "PDBEnsembleFromProvider")
	}
	P := &PDBEnsemble{Ensemble: *E}
	for i := 0; i < P.NumCoordsets(); i++ {
		P.wts = append(P.wts, onesCol(P.atoms))
	}
	return P, nil
}

//String returns a one-line description of the ensemble.
func (P *PDBEnsemble) String() string {
	return fmt.Sprintf("PDBEnsemble %q with %d coordinate sets of %d atoms", P.title, len(P.coords), P.atoms)
}

//AddCoordset appends copies of the given coordinate sets, each with
//all-ones weights. See AddCoordsetWeighted for attaching explicit weights.
func (P *PDBEnsemble) AddCoordset(coords ...*v3.Matrix) error {
	if err := P.Ensemble.AddCoordset(coords...); err != nil {
		return errDecorate(err, "AddCoordset")
	}
	for range coords {
		P.wts = append(P.wts, onesCol(P.atoms))
	}
	return nil
}

//AddCoordsetWeighted appends a copy of the given coordinate set with the
//given per-atom weight column (atoms x 1). A nil w is taken as all-ones.
//The operation is atomic: on a shape mismatch of either argument, nothing
//is added.
func (P *PDBEnsemble) AddCoordsetWeighted(coords *v3.Matrix, w *mat.Dense) error {
	if w == nil {
		err := P.AddCoordset(coords)
		if err != nil {
			return errDecorate(err, "AddCoordsetWeighted")
		}
		return nil
	}
	if coords == nil {
		return Err{string(ErrNilCoordinates), []string{"AddCoordsetWeighted"}}
	}
	wr, wc := w.Dims()
	if wc != 1 || wr != coords.NVecs() || (P.atoms != 0 && wr != P.atoms) {
		return Err{fmt.Sprintf("%s: weights are %dx%d", ErrShapeMismatch, wr, wc), []string{"AddCoordsetWeighted"}}
	}
	if err := P.Ensemble.AddCoordset(coords); err != nil {
		return errDecorate(err, "AddCoordsetWeighted")
	}
	P.wts = append(P.wts, mat.DenseCopyOf(w))
	return nil
}

//Weights returns copies of the weight columns of every stored coordinate
//set, in index order, or nil if the ensemble holds no coordinate sets. Note
//that this shadows the uniform-weights accessor of the plain Ensemble: for
//this variant the weights are per conformation.
func (P *PDBEnsemble) Weights() []*mat.Dense {
	if len(P.wts) == 0 {
		return nil
	}
	ret := make([]*mat.Dense, 0, len(P.wts))
	for _, w := range P.wts {
		ret = append(ret, mat.DenseCopyOf(w))
	}
	return ret
}

//SetWeights is not available on this variant: the weights are per
//conformation, so they are set through AddCoordsetWeighted. This shadows
//the uniform-weight setter of the embedded Ensemble, which Superpose and
//RMSDs would otherwise silently ignore here.
func (P *PDBEnsemble) SetWeights(w *mat.Dense) error {
	return Err{string(ErrTypeMismatch), []string{"SetWeights"}}
}

//SetWeightsSlice is not available on this variant. See SetWeights.
func (P *PDBEnsemble) SetWeightsSlice(w []float64) error {
	return Err{string(ErrTypeMismatch), []string{"SetWeightsSlice"}}
}

//DelCoordset removes the coordinate sets with the given indices together
//with their weight columns, keeping both in lockstep. Removing every set
//leaves the weights nil, not empty. The reference coordinates are never
//affected. Atomic, like the unweighted version.
func (P *PDBEnsemble) DelCoordset(indices ...int) error {
	if err := P.Ensemble.DelCoordset(indices...); err != nil {
		return errDecorate(err, "DelCoordset")
	}
	keep := make([]*mat.Dense, 0, len(P.wts))
	for i, w := range P.wts {
		if !isInInt(indices, i) {
			keep = append(keep, w)
		}
	}
	if len(keep) == 0 {
		keep = nil
	}
	P.wts = keep
	return nil
}

//Conformation returns a view into the ith stored coordinate set and its
//weight column. The same invalidation hazard of the unweighted version
//applies.
func (P *PDBEnsemble) Conformation(i int) (*PDBConformation, error) {
	if i < 0 || i >= len(P.coords) {
		return nil, Err{fmt.Sprintf("%s: %d", ErrIndexOutOfRange, i), []string{"Conformation"}}
	}
	return &PDBConformation{ensemble: P, index: i}, nil
}

//Select returns a new independent weighted ensemble holding copies of the
//coordinate sets with the given indices and their weight columns, in the
//given order, with the same title and reference coordinates as the
//receiver.
func (P *PDBEnsemble) Select(indices []int) (*PDBEnsemble, error) {
	for _, i := range indices {
		if i < 0 || i >= len(P.coords) {
			return nil, Err{fmt.Sprintf("%s: %d", ErrIndexOutOfRange, i), []string{"Select"}}
		}
	}
	N := NewPDBEnsemble(P.title)
	N.atoms = P.atoms
	N.ref = P.Coordinates()
	for _, i := range indices {
		if err := N.AddCoordsetWeighted(P.coords[i], P.wts[i]); err != nil {
			return nil, errDecorate(err, "Select")
		}
	}
	return N, nil
}

//SelectRange is Select for the half-open index range [start,end).
func (P *PDBEnsemble) SelectRange(start, end int) (*PDBEnsemble, error) {
	r, err := P.Select(spanInt(start, end))
	if err != nil {
		return nil, errDecorate(err, "SelectRange")
	}
	return r, nil
}

//Concatenate returns a new weighted ensemble with the receiver's coordinate
//sets followed by those of other, and the weight stacks joined along the
//coordinate-set axis. Both operands must have the same number of atoms. If
//other is a plain (uniformly weighted) ensemble, the sets it contributes
//get all-ones weight columns. The reference coordinates come from the
//receiver.
func (P *PDBEnsemble) Concatenate(other Ensembler) (*PDBEnsemble, error) {
	if other == nil {
		return nil, Err{string(ErrNilEnsemble), []string{"Concatenate"}}
	}
	if P.atoms != 0 && other.NumAtoms() != 0 && P.atoms != other.NumAtoms() {
		return nil, Err{fmt.Sprintf("%s: %d and %d", ErrDimensionMismatch, P.atoms, other.NumAtoms()), []string{"Concatenate"}}
	}
	N, err := P.SelectRange(0, len(P.coords))
	if err != nil {
		return nil, errDecorate(err, "Concatenate")
	}
	sets := other.Coordsets()
	if sets == nil {
		return N, nil
	}
	if op, ok := other.(*PDBEnsemble); ok {
		for i, s := range sets {
			if err := N.AddCoordsetWeighted(s, op.wts[i]); err != nil {
				return nil, errDecorate(err, "Concatenate")
			}
		}
		return N, nil
	}
	if err := N.AddCoordset(sets...); err != nil {
		return nil, errDecorate(err, "Concatenate")
	}
	return N, nil
}

//Concatenate joins the coordinate sets of a and b, in that order, into a
//new ensemble, dispatching on the operand types: if either operand carries
//per-conformation weights the result is a *PDBEnsemble keeping every weight
//column (sets contributed by a uniform operand get all-ones), otherwise it
//is a plain *Ensemble under the uniform-weight merge rule of
//Ensemble.Concatenate. This is the way to concatenate a plain left operand
//with a weighted right one without reversing the set order.
func Concatenate(a, b Ensembler) (Ensembler, error) {
	if a == nil || b == nil {
		return nil, Err{string(ErrNilEnsemble), []string{"Concatenate"}}
	}
	if pa, ok := a.(*PDBEnsemble); ok {
		r, err := pa.Concatenate(b)
		if err != nil {
			return nil, errDecorate(err, "Concatenate")
		}
		return r, nil
	}
	ea, ok := a.(*Ensemble)
	if !ok {
		return nil, Err{string(ErrTypeMismatch), []string{"Concatenate"}}
	}
	if pb, ok := b.(*PDBEnsemble); ok {
		//promote the uniform left operand to per-set all-ones weights, so
		//the right operand's columns survive in order.
		left := NewPDBEnsemble(ea.Title())
		if r := ea.Coordinates(); r != nil {
			if err := left.SetCoordinates(r); err != nil {
				return nil, errDecorate(err, "Concatenate")
			}
		}
		if sets := ea.Coordsets(); sets != nil {
			if err := left.AddCoordset(sets...); err != nil {
				return nil, errDecorate(err, "Concatenate")
			}
		}
		r, err := left.Concatenate(pb)
		if err != nil {
			return nil, errDecorate(err, "Concatenate")
		}
		return r, nil
	}
	eb, ok := b.(*Ensemble)
	if !ok {
		return nil, Err{string(ErrTypeMismatch), []string{"Concatenate"}}
	}
	r, err := ea.Concatenate(eb)
	if err != nil {
		return nil, errDecorate(err, "Concatenate")
	}
	return r, nil
}

//Superpose fits every stored conformation onto the reference coordinates,
//each under its own weight column, and overwrites the stored coordinates
//with the transformed ones. The transformation estimated from the weighted
//atoms is applied to all atoms of the conformation, zero-weight ones
//included. A conformation whose weights sum to zero makes the whole
//operation fail.
func (P *PDBEnsemble) Superpose() error {
	if len(P.coords) == 0 {
		return nil
	}
	if P.ref == nil {
		return Err{string(ErrNoReference), []string{"Superpose"}}
	}
	err := superposeAll(P.coords, P.ref, func(i int) *mat.Dense { return P.wts[i] }, DefaultOptions())
	if err != nil {
		return errDecorate(err, "Superpose")
	}
	return nil
}

//RMSDs returns the RMSD of each stored conformation against the reference,
//each weighted by its own weight column, in index order. Nil (and no error)
//for an ensemble with no coordinate sets.
func (P *PDBEnsemble) RMSDs() ([]float64, error) {
	if len(P.coords) == 0 {
		return nil, nil
	}
	if P.ref == nil {
		return nil, Err{string(ErrNoReference), []string{"RMSDs"}}
	}
	ret := make([]float64, len(P.coords))
	for i, c := range P.coords {
		r, err := WeightedRMSD(c, P.ref, P.wts[i])
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("RMSDs: set %d", i))
		}
		ret[i] = r
	}
	return ret, nil
}

//IterCoordsets returns a restartable iterator over the stored coordinate
//sets.
func (P *PDBEnsemble) IterCoordsets() *CoordsetIter {
	return &CoordsetIter{owner: P}
}

//onesCol returns an n x 1 column of ones, the weight column of a
//conformation with every atom present.
func onesCol(n int) *mat.Dense {
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	return mat.NewDense(n, 1, ones)
}
