/*
 * ensemble_test.go, part of goensemble.
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

package ensemble

import (
	"math"
	"testing"

	v3 "github.com/rmera/goensemble/v3"
)

//The test system: 5 atoms, deliberately non-planar so rigid-body fits are
//well determined.
func testRef(Te *testing.T) *v3.Matrix {
	r, err := v3.NewMatrix([]float64{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
		1, 1, 1,
	})
	if err != nil {
		Te.Fatal(err)
	}
	return r
}

//rigid returns a copy of A rotated by theta radians around the Z axis and
//then translated by t.
func rigid(A *v3.Matrix, theta float64, t [3]float64) *v3.Matrix {
	n := A.NVecs()
	ret := v3.Zeros(n)
	c := math.Cos(theta)
	s := math.Sin(theta)
	for i := 0; i < n; i++ {
		x := A.At(i, 0)
		y := A.At(i, 1)
		z := A.At(i, 2)
		ret.Set(i, 0, x*c-y*s+t[0])
		ret.Set(i, 1, x*s+y*c+t[1])
		ret.Set(i, 2, z+t[2])
	}
	return ret
}

func matEqual(a, b *v3.Matrix, tol float64) bool {
	if a.NVecs() != b.NVecs() {
		return false
	}
	for i := 0; i < a.NVecs(); i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(a.At(i, j)-b.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

//testEnsemble returns an ensemble with the test reference and 3 coordinate
//sets: the reference itself and 2 rigidly transformed copies.
func testEnsemble(Te *testing.T) *Ensemble {
	ref := testRef(Te)
	E := NewEnsemble("test")
	if err := E.SetCoordinates(ref); err != nil {
		Te.Fatal(err)
	}
	err := E.AddCoordset(ref, rigid(ref, 0.5, [3]float64{2, -1, 3}), rigid(ref, -1.1, [3]float64{-4, 0, 1}))
	if err != nil {
		Te.Fatal(err)
	}
	return E
}

func TestAddAndGetCoordsets(Te *testing.T) {
	E := testEnsemble(Te)
	if E.NumAtoms() != 5 {
		Te.Errorf("wrong number of atoms: %d", E.NumAtoms())
	}
	if E.NumCoordsets() != 3 {
		Te.Errorf("wrong number of coordinate sets: %d", E.NumCoordsets())
	}
	sets := E.Coordsets()
	if len(sets) != 3 {
		Te.Fatalf("Coordsets returned %d sets", len(sets))
	}
	if !matEqual(sets[0], testRef(Te), 0) {
		Te.Error("first coordinate set doesn't match what was added")
	}
	//Returned sets are copies: mutating them must not touch the ensemble.
	sets[0].Set(0, 0, 999)
	if E.Coordsets(0)[0].At(0, 0) == 999 {
		Te.Error("Coordsets returned a live view into the ensemble")
	}
}

func TestAddCoordsetShapeMismatch(Te *testing.T) {
	E := testEnsemble(Te)
	bad := v3.Zeros(4) //wrong atom count
	good := testRef(Te)
	err := E.AddCoordset(good, bad)
	if err == nil {
		Te.Error("expected a shape mismatch error")
	}
	//The add is atomic: the good set must not have been kept.
	if E.NumCoordsets() != 3 {
		Te.Errorf("failed add still changed the ensemble: %d sets", E.NumCoordsets())
	}
}

func TestEmptyEnsemble(Te *testing.T) {
	E := NewEnsemble("empty")
	if E.Coordsets() != nil {
		Te.Error("Coordsets on an empty ensemble should be nil")
	}
	if err := E.Superpose(); err != nil {
		Te.Error("Superpose on an empty ensemble should be a no-op, got:", err)
	}
	r, err := E.RMSDs()
	if r != nil || err != nil {
		Te.Error("RMSDs on an empty ensemble should be nil, nil")
	}
}

func TestWeightsShape(Te *testing.T) {
	E := testEnsemble(Te)
	if E.Weights() != nil {
		Te.Error("fresh ensemble should be unweighted")
	}
	w := []float64{1, 1, 1, 1, 1}
	if err := E.SetWeightsSlice(w); err != nil {
		Te.Fatal(err)
	}
	got := E.Weights()
	r, c := got.Dims()
	if r != E.NumAtoms() || c != 1 {
		Te.Errorf("wrong weight shape: %dx%d", r, c)
	}
	for i := 0; i < r; i++ {
		if got.At(i, 0) != 1 {
			Te.Errorf("wrong weight at %d: %f", i, got.At(i, 0))
		}
	}
}

func TestSlicingCopy(Te *testing.T) {
	E := testEnsemble(Te)
	S, err := E.SelectRange(0, E.NumCoordsets())
	if err != nil {
		Te.Fatal(err)
	}
	if !matEqual(S.Coordinates(), E.Coordinates(), 0) {
		Te.Error("full-range slice changed the reference coordinates")
	}
	se, ee := S.Coordsets(), E.Coordsets()
	for i := range ee {
		if !matEqual(se[i], ee[i], 0) {
			Te.Errorf("full-range slice differs at set %d", i)
		}
	}
	//No shared state: deleting from the slice must not touch the original.
	if err := S.DelCoordset(0, 1, 2); err != nil {
		Te.Fatal(err)
	}
	if E.NumCoordsets() != 3 {
		Te.Error("deleting from a slice changed the original")
	}
}

func TestSlicingList(Te *testing.T) {
	E := testEnsemble(Te)
	S, err := E.Select([]int{0, 2})
	if err != nil {
		Te.Fatal(err)
	}
	if S.NumCoordsets() != 2 {
		Te.Fatalf("wrong number of sets in slice: %d", S.NumCoordsets())
	}
	want := E.Coordsets(0, 2)
	got := S.Coordsets()
	for i := range want {
		if !matEqual(got[i], want[i], 0) {
			Te.Errorf("slice [0,2] differs at set %d", i)
		}
	}
}

func TestDelCoordsetMiddle(Te *testing.T) {
	E := testEnsemble(Te)
	want := E.Coordsets(0, 2)
	if err := E.DelCoordset(1); err != nil {
		Te.Fatal(err)
	}
	if E.NumCoordsets() != 2 {
		Te.Fatalf("wrong number of sets after deletion: %d", E.NumCoordsets())
	}
	got := E.Coordsets()
	for i := range want {
		if !matEqual(got[i], want[i], 0) {
			Te.Errorf("wrong set %d after middle deletion", i)
		}
	}
}

func TestDelCoordsetAll(Te *testing.T) {
	E := testEnsemble(Te)
	ref := E.Coordinates()
	if err := E.DelCoordset(0, 1, 2); err != nil {
		Te.Fatal(err)
	}
	if E.Coordsets() != nil {
		Te.Error("Coordsets should be nil after deleting every set")
	}
	if !matEqual(E.Coordinates(), ref, 0) {
		Te.Error("deleting all coordinate sets changed the reference")
	}
}

func TestDelCoordsetAtomic(Te *testing.T) {
	E := testEnsemble(Te)
	err := E.DelCoordset(0, 5) //5 is out of range
	if err == nil {
		Te.Error("expected an out-of-range error")
	}
	if E.NumCoordsets() != 3 {
		Te.Error("failed deletion still removed coordinate sets")
	}
}

func TestConcatenation(Te *testing.T) {
	E := testEnsemble(Te)
	N, err := E.Concatenate(E)
	if err != nil {
		Te.Fatal(err)
	}
	if N.NumCoordsets() != 6 {
		Te.Fatalf("wrong number of sets after concatenation: %d", N.NumCoordsets())
	}
	orig := E.Coordsets()
	first := N.Coordsets(0, 1, 2)
	second := N.Coordsets(3, 4, 5)
	for i := range orig {
		if !matEqual(first[i], orig[i], 0) || !matEqual(second[i], orig[i], 0) {
			Te.Errorf("concatenation mangled set %d", i)
		}
	}
	if !matEqual(N.Coordinates(), E.Coordinates(), 0) {
		Te.Error("concatenation changed the reference coordinates")
	}
}

func TestConcatenationWeightStickiness(Te *testing.T) {
	plain := testEnsemble(Te)
	weighted := testEnsemble(Te)
	if err := weighted.SetWeightsSlice([]float64{1, 1, 1, 1, 1}); err != nil {
		Te.Fatal(err)
	}
	//Weighted on the left: result takes its weights.
	N, err := weighted.Concatenate(plain)
	if err != nil {
		Te.Fatal(err)
	}
	if N.Weights() == nil {
		Te.Error("weighted+plain concatenation lost the weights")
	}
	//Weighted only on the right: weights still stick.
	N, err = plain.Concatenate(weighted)
	if err != nil {
		Te.Fatal(err)
	}
	if N.Weights() == nil {
		Te.Error("plain+weighted concatenation should take the right operand's weights")
	}
	//Neither weighted: no weights.
	N, err = plain.Concatenate(plain)
	if err != nil {
		Te.Fatal(err)
	}
	if N.Weights() != nil {
		Te.Error("plain+plain concatenation should be unweighted")
	}
}

func TestConcatenationDimensionMismatch(Te *testing.T) {
	E := testEnsemble(Te)
	small := NewEnsemble("small")
	if err := small.AddCoordset(v3.Zeros(3)); err != nil {
		Te.Fatal(err)
	}
	if _, err := E.Concatenate(small); err == nil {
		Te.Error("expected a dimension mismatch error")
	}
}

func TestIterCoordsets(Te *testing.T) {
	E := testEnsemble(Te)
	it := E.IterCoordsets()
	count := 0
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		if !matEqual(c, E.Coordsets(count)[0], 0) {
			Te.Errorf("iterator yielded wrong set at %d", count)
		}
		count++
	}
	if count != E.NumCoordsets() {
		Te.Errorf("iterator yielded %d sets, want %d", count, E.NumCoordsets())
	}
	//The iterator is restartable.
	it.Reset()
	count = 0
	for {
		if _, ok := it.Next(); !ok {
			break
		}
		count++
	}
	if count != E.NumCoordsets() {
		Te.Errorf("restarted iterator yielded %d sets, want %d", count, E.NumCoordsets())
	}
}

func TestTrajRead(Te *testing.T) {
	E := testEnsemble(Te)
	if err := E.InitRead(); err != nil {
		Te.Fatal(err)
	}
	frame := v3.Zeros(E.NumAtoms())
	read := 0
	for E.Readable() {
		if err := E.Next(frame); err != nil {
			Te.Fatal(err)
		}
		read++
	}
	if read != E.NumCoordsets() {
		Te.Errorf("read %d frames, want %d", read, E.NumCoordsets())
	}
	err := E.Next(frame)
	if err == nil {
		Te.Fatal("expected an error past the last frame")
	}
	if _, ok := err.(LastFrameError); !ok {
		Te.Errorf("past-the-end error is not a LastFrameError: %v", err)
	}
}

func TestConformation(Te *testing.T) {
	E := testEnsemble(Te)
	for i := 0; i < E.NumCoordsets(); i++ {
		C, err := E.Conformation(i)
		if err != nil {
			Te.Fatal(err)
		}
		if C.Index() != i {
			Te.Errorf("wrong index: %d", C.Index())
		}
		if C.NumAtoms() != E.NumAtoms() {
			Te.Errorf("wrong number of atoms: %d", C.NumAtoms())
		}
		if !matEqual(C.Coordinates(), E.Coordsets(i)[0], 0) {
			Te.Errorf("wrong coordinates for conformation %d", i)
		}
		if C.Weights() != nil {
			Te.Error("conformation of an unweighted ensemble should have nil weights")
		}
	}
	if _, err := E.Conformation(17); err == nil {
		Te.Error("expected an out-of-range error")
	}
}

//fakeTop is a minimal topology provider for testing the constructors.
type fakeTop struct {
	ref  *v3.Matrix
	sets []*v3.Matrix
}

func (f *fakeTop) NumAtoms() int           { return f.ref.NVecs() }
func (f *fakeTop) Coordinates() *v3.Matrix { return f.ref }
func (f *fakeTop) Coordsets() []*v3.Matrix { return f.sets }

func TestEnsembleFromProvider(Te *testing.T) {
	ref := testRef(Te)
	top := &fakeTop{ref: ref, sets: []*v3.Matrix{ref, rigid(ref, 0.3, [3]float64{1, 2, 3})}}
	E, err := EnsembleFromProvider("from topology", top)
	if err != nil {
		Te.Fatal(err)
	}
	if E.NumAtoms() != 5 || E.NumCoordsets() != 2 {
		Te.Fatalf("wrong dimensions: %d atoms, %d sets", E.NumAtoms(), E.NumCoordsets())
	}
	if !matEqual(E.Coordinates(), ref, 0) {
		Te.Error("reference coordinates not copied from the provider")
	}
	//The copy happens once: changing the provider's data must not show.
	top.sets[0].Set(0, 0, 999)
	if E.Coordsets(0)[0].At(0, 0) == 999 {
		Te.Error("ensemble kept a live view into the provider")
	}
}
