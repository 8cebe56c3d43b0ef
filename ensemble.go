/*
 * ensemble.go, part of goensemble.
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

/**Note: Some accessors here panic instead of returning errors. This is
 * because they are "fundamental" functions: if something goes wrong in them,
 * the program is way-most likely wrong and should crash. The panics are
 * related to out-of-bounds indexes, as in the rest of the library.**/

//Ensemble holds any number of conformations (coordinate sets) of a fixed
//set of atoms, in insertion order, together with the reference coordinates
//against which they are compared, and an optional per-atom weight column
//shared by every conformation. A nil weight column means every atom weighs 1.
//The number of atoms is fixed by the first coordinates ingested (or by the
//Provider used for construction) and never changes afterwards.
type Ensemble struct {
	title   string
	atoms   int
	ref     *v3.Matrix
	coords  []*v3.Matrix
	weights *mat.Dense //atoms x 1, nil when unweighted
	current int        //next frame for Traj-style sequential reads
}

//NewEnsemble returns an empty ensemble with the given title, to be populated
//with AddCoordset and SetCoordinates.
func NewEnsemble(title string) *Ensemble {
	return &Ensemble{title: title}
}

//EnsembleFromProvider returns an ensemble with the given title, the atom
//count, reference coordinates and coordinate sets copied from p. The copy
//happens once: later changes to p are not seen by the ensemble.
func EnsembleFromProvider(title string, p Provider) (*Ensemble, error) {
	if p == nil {
		return nil, Err{string(ErrNilEnsemble), []string{"EnsembleFromProvider"}}
	}
	E := NewEnsemble(title)
	E.atoms = p.NumAtoms()
	if r := p.Coordinates(); r != nil {
		if err := E.SetCoordinates(r); err != nil {
			return nil, errDecorate(err, "EnsembleFromProvider")
		}
	}
	if sets := p.Coordsets(); len(sets) > 0 {
		if err := E.AddCoordset(sets...); err != nil {
			return nil, errDecorate(err, "EnsembleFromProvider")
		}
	}
	return E, nil
}

//Title returns the title of the ensemble.
func (E *Ensemble) Title() string { return E.title }

//SetTitle sets the title of the ensemble.
func (E *Ensemble) SetTitle(title string) { E.title = title }

//NumAtoms returns the number of atoms per conformation. It is zero until
//the first coordinates are ingested.
func (E *Ensemble) NumAtoms() int { return E.atoms }

//NumCoordsets returns the number of conformations currently stored.
func (E *Ensemble) NumCoordsets() int { return len(E.coords) }

//String returns a one-line description of the ensemble.
func (E *Ensemble) String() string {
	return fmt.Sprintf("Ensemble %q with %d coordinate sets of %d atoms", E.title, len(E.coords), E.atoms)
}

//AddCoordset appends copies of the given coordinate sets, in call order.
//The first set ingested into an empty ensemble fixes the atom count. The
//operation is atomic: if any of the sets mismatches that count, nothing is
//added and the error is returned.
func (E *Ensemble) AddCoordset(coords ...*v3.Matrix) error {
	if len(coords) == 0 {
		return nil
	}
	n := E.atoms
	for _, c := range coords {
		if c == nil {
			return Err{string(ErrNilCoordinates), []string{"AddCoordset"}}
		}
		if n == 0 {
			n = c.NVecs()
		}
		if c.NVecs() != n {
			return Err{fmt.Sprintf("%s: got %d atoms, want %d", ErrShapeMismatch, c.NVecs(), n), []string{"AddCoordset"}}
		}
	}
	E.atoms = n
	for _, c := range coords {
		cp := v3.Zeros(n)
		cp.Copy(c)
		E.coords = append(E.coords, cp)
	}
	return nil
}

//Coordsets returns copies of the requested coordinate sets, in the order
//given (all the stored sets, in index order, if no index is given). It
//returns nil if the ensemble currently holds no coordinate sets, whatever
//the indices requested. Panics if an index is out of range.
func (E *Ensemble) Coordsets(indices ...int) []*v3.Matrix {
	if len(E.coords) == 0 {
		return nil
	}
	if len(indices) == 0 {
		indices = make([]int, len(E.coords))
		for i := range indices {
			indices[i] = i
		}
	}
	ret := make([]*v3.Matrix, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(E.coords) {
			panic(ErrIndexOutOfRange)
		}
		cp := v3.Zeros(E.atoms)
		cp.Copy(E.coords[i])
		ret = append(ret, cp)
	}
	return ret
}

//Coordinates returns a copy of the reference coordinates, or nil if they
//have not been set. The reference is independent of the stored coordinate
//sets: deletions never touch it.
func (E *Ensemble) Coordinates() *v3.Matrix {
	if E.ref == nil {
		return nil
	}
	cp := v3.Zeros(E.ref.NVecs())
	cp.Copy(E.ref)
	return cp
}

//SetCoordinates sets the reference coordinates to a copy of ref. On an
//ensemble with no atom count fixed yet, it fixes it.
func (E *Ensemble) SetCoordinates(ref *v3.Matrix) error {
	if ref == nil {
		return Err{string(ErrNilCoordinates), []string{"SetCoordinates"}}
	}
	if E.atoms != 0 && ref.NVecs() != E.atoms {
		return Err{fmt.Sprintf("%s: got %d atoms, want %d", ErrShapeMismatch, ref.NVecs(), E.atoms), []string{"SetCoordinates"}}
	}
	cp := v3.Zeros(ref.NVecs())
	cp.Copy(ref)
	if E.atoms == 0 {
		E.atoms = ref.NVecs()
	}
	E.ref = cp
	return nil
}

//Weights returns a copy of the uniform per-atom weight column shared by all
//conformations, or nil if the ensemble is unweighted.
func (E *Ensemble) Weights() *mat.Dense {
	if E.weights == nil {
		return nil
	}
	return mat.DenseCopyOf(E.weights)
}

//SetWeights sets the uniform per-atom weights to a copy of w, which must be
//an atoms x 1 column. A nil w removes the weights, going back to uniform
//weight 1 for every atom.
func (E *Ensemble) SetWeights(w *mat.Dense) error {
	if w == nil {
		E.weights = nil
		return nil
	}
	r, c := w.Dims()
	if c != 1 || (E.atoms != 0 && r != E.atoms) {
		return Err{fmt.Sprintf("%s: weights are %dx%d", ErrShapeMismatch, r, c), []string{"SetWeights"}}
	}
	if E.atoms == 0 {
		E.atoms = r
	}
	E.weights = mat.DenseCopyOf(w)
	return nil
}

//SetWeightsSlice is a convenience around SetWeights: it broadcasts a slice
//of per-atom weights into a column.
func (E *Ensemble) SetWeightsSlice(w []float64) error {
	if w == nil {
		E.weights = nil
		return nil
	}
	err := E.SetWeights(mat.NewDense(len(w), 1, w))
	if err != nil {
		return errDecorate(err, "SetWeightsSlice")
	}
	return nil
}

//DelCoordset removes the coordinate sets with the given indices. The
//remaining sets are re-indexed contiguously starting at 0. The reference
//coordinates are never affected, even when every set is removed. The
//operation is atomic: an out-of-range index means nothing is deleted.
func (E *Ensemble) DelCoordset(indices ...int) error {
	if len(indices) == 0 {
		return nil
	}
	for _, i := range indices {
		if i < 0 || i >= len(E.coords) {
			return Err{fmt.Sprintf("%s: %d", ErrIndexOutOfRange, i), []string{"DelCoordset"}}
		}
	}
	keep := make([]*v3.Matrix, 0, len(E.coords))
	for i, c := range E.coords {
		if !isInInt(indices, i) {
			keep = append(keep, c)
		}
	}
	if len(keep) == 0 {
		keep = nil
	}
	E.coords = keep
	if E.current > len(E.coords) {
		E.current = len(E.coords)
	}
	return nil
}

//Conformation returns a view into the ith stored coordinate set. The view
//holds no data of its own; it re-reads the ensemble on every call, so it is
//invalidated (silently) by any later structural edit of the ensemble.
func (E *Ensemble) Conformation(i int) (*Conformation, error) {
	if i < 0 || i >= len(E.coords) {
		return nil, Err{fmt.Sprintf("%s: %d", ErrIndexOutOfRange, i), []string{"Conformation"}}
	}
	return &Conformation{ensemble: E, index: i}, nil
}

//Select returns a new independent ensemble holding copies of the coordinate
//sets with the given indices, in the given order, with the same title,
//reference coordinates and uniform weights as the receiver. The two
//ensembles share no mutable state.
func (E *Ensemble) Select(indices []int) (*Ensemble, error) {
	N := NewEnsemble(E.title)
	N.atoms = E.atoms
	N.ref = E.Coordinates()
	N.weights = E.Weights()
	for _, i := range indices {
		if i < 0 || i >= len(E.coords) {
			return nil, Err{fmt.Sprintf("%s: %d", ErrIndexOutOfRange, i), []string{"Select"}}
		}
	}
	if len(E.coords) > 0 && len(indices) > 0 {
		if err := N.AddCoordset(E.Coordsets(indices...)...); err != nil {
			return nil, errDecorate(err, "Select")
		}
	}
	return N, nil
}

//SelectRange is Select for the half-open index range [start,end).
//SelectRange(0, NumCoordsets()) is a full copy of the ensemble.
func (E *Ensemble) SelectRange(start, end int) (*Ensemble, error) {
	r, err := E.Select(spanInt(start, end))
	if err != nil {
		return nil, errDecorate(err, "SelectRange")
	}
	return r, nil
}

//Concatenate returns a new ensemble with the receiver's coordinate sets
//followed by those of other. Both must have the same number of atoms. The
//reference coordinates come from the receiver. If both operands carry
//uniform weights, the result takes the receiver's; if exactly one does,
//the result takes that one's. To concatenate with a per-conformation
//weighted ensemble on the right, use the package-level Concatenate, which
//keeps the weight columns.
func (E *Ensemble) Concatenate(other *Ensemble) (*Ensemble, error) {
	if other == nil {
		return nil, Err{string(ErrNilEnsemble), []string{"Concatenate"}}
	}
	if E.atoms != 0 && other.atoms != 0 && E.atoms != other.atoms {
		return nil, Err{fmt.Sprintf("%s: %d and %d", ErrDimensionMismatch, E.atoms, other.atoms), []string{"Concatenate"}}
	}
	N, err := E.SelectRange(0, len(E.coords))
	if err != nil {
		return nil, errDecorate(err, "Concatenate")
	}
	if sets := other.Coordsets(); sets != nil {
		if err := N.AddCoordset(sets...); err != nil {
			return nil, errDecorate(err, "Concatenate")
		}
	}
	if N.weights == nil {
		N.weights = other.Weights()
	}
	return N, nil
}

//Superpose computes, for each stored conformation, the weighted
//least-squares rigid-body transformation that best maps it onto the
//reference coordinates, under the uniform weights of the ensemble (weight 1
//per atom if none are set), and overwrites the stored conformation with the
//transformed coordinates. Conformations are processed concurrently. The
//reference itself is never changed. Superposing an ensemble with no
//coordinate sets is a no-op.
func (E *Ensemble) Superpose() error {
	if len(E.coords) == 0 {
		return nil
	}
	if E.ref == nil {
		return Err{string(ErrNoReference), []string{"Superpose"}}
	}
	err := superposeAll(E.coords, E.ref, func(int) *mat.Dense { return E.weights }, DefaultOptions())
	if err != nil {
		return errDecorate(err, "Superpose")
	}
	return nil
}

//RMSDs returns the weighted RMSD of each stored conformation against the
//reference coordinates, in index order, under the same weights Superpose
//uses. It returns nil (and no error) for an ensemble with no coordinate
//sets.
func (E *Ensemble) RMSDs() ([]float64, error) {
	if len(E.coords) == 0 {
		return nil, nil
	}
	if E.ref == nil {
		return nil, Err{string(ErrNoReference), []string{"RMSDs"}}
	}
	ret := make([]float64, len(E.coords))
	for i, c := range E.coords {
		r, err := WeightedRMSD(c, E.ref, E.weights)
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("RMSDs: set %d", i))
		}
		ret[i] = r
	}
	return ret, nil
}

/******************************************
//Iteration over the stored coordinate sets
******************************************/

//CoordsetIter is a lazy, restartable iterator over the coordinate sets of
//an ensemble, in index order. It reads the owner at each step, so it sees
//(and is invalidated by) structural edits made while iterating.
type CoordsetIter struct {
	owner   Ensembler
	current int
}

//Next returns a copy of the next coordinate set, or nil and false when the
//sets are exhausted.
func (it *CoordsetIter) Next() (*v3.Matrix, bool) {
	if it.current >= it.owner.NumCoordsets() {
		return nil, false
	}
	s := it.owner.Coordsets(it.current)
	it.current++
	if s == nil {
		return nil, false
	}
	return s[0], true
}

//Reset restarts the iterator from the first coordinate set.
func (it *CoordsetIter) Reset() { it.current = 0 }

//IterCoordsets returns a restartable iterator over the stored coordinate
//sets.
func (E *Ensemble) IterCoordsets() *CoordsetIter {
	return &CoordsetIter{owner: E}
}

/******************************************
//The following implement the Traj interface
******************************************/

//Readable returns true as long as there are frames left to be read
//sequentially.
func (E *Ensemble) Readable() bool {
	return E != nil && E.current < len(E.coords)
}

//Next reads the next stored coordinate set into output, or skips it if
//output is nil. It returns a LastFrameError after the last set. The box
//argument is ignored.
func (E *Ensemble) Next(output *v3.Matrix, box ...[]float64) error {
	if E.current >= len(E.coords) {
		return newLastFrameError("Next")
	}
	if output != nil {
		if output.NVecs() != E.atoms {
			return Err{fmt.Sprintf("%s: output has %d atoms, want %d", ErrShapeMismatch, output.NVecs(), E.atoms), []string{"Next"}}
		}
		output.Copy(E.coords[E.current])
	}
	E.current++
	return nil
}

//Len returns the number of atoms per frame. It is part of the Traj
//interface; it is the same number NumAtoms returns.
func (E *Ensemble) Len() int { return E.atoms }

//InitRead rewinds the sequential reading of the ensemble.
func (E *Ensemble) InitRead() error {
	if E == nil {
		return Err{string(ErrNilEnsemble), []string{"InitRead"}}
	}
	E.current = 0
	return nil
}

//helper functions

//isInInt returns true if test is in container, false otherwise.
func isInInt(container []int, test int) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

//spanInt returns the ints in [start,end), in order. An empty or inverted
//range gives an empty slice.
func spanInt(start, end int) []int {
	if end <= start {
		return []int{}
	}
	ret := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		ret = append(ret, i)
	}
	return ret
}
