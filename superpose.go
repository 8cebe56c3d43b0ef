/*
 * superpose.go, part of goensemble.
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
	"log"
	"math"
	"runtime"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	v3 "github.com/rmera/goensemble/v3"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Options contains the options for the concurrent superposition of the
//coordinate sets of an ensemble.
type Options struct {
	cpus int
}

//DefaultOptions returns reasonable options: one worker per available CPU.
func DefaultOptions() *Options {
	r := new(Options)
	r.cpus = runtime.NumCPU()
	return r
}

//Cpus returns the current number of concurrent workers used for the
//superposition, and sets it to the given value, if any.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return ret
}

//RotTransToSuper superimposes the set of cartesian coordinates given as the
//rows of mov on those of ref, under the per-atom weights w (an atoms x 1
//column; nil means weight 1 for every atom). Zero-weight atoms do not
//contribute to the estimate of the transformation, but the transformation
//is applied to every atom, so the returned matrix always holds all the
//transformed positions. It returns the transformed matrix, the rotation
//matrix and 2 translation row vectors, plus an error. To reproduce the
//superposition without using the returned matrix, add the first translation
//vector to the moving matrix, then apply the rotation (on the right side,
//as coordinates are rows), then add the second translation vector.
//The procedure is the weighted Kabsch algorithm: weighted centroids are
//removed from both sets, the weighted cross-covariance matrix is factored
//by singular value decomposition, and the handedness of the result is
//corrected so a proper rotation (no reflection) is always returned.
func RotTransToSuper(mov, ref *v3.Matrix, w *mat.Dense) (*v3.Matrix, *mat.Dense, *v3.Matrix, *v3.Matrix, error) {
	if mov == nil || ref == nil {
		return nil, nil, nil, nil, Err{string(ErrNilCoordinates), []string{"RotTransToSuper"}}
	}
	n := mov.NVecs()
	if ref.NVecs() != n {
		return nil, nil, nil, nil, Err{fmt.Sprintf("%s: %d and %d atoms", ErrShapeMismatch, n, ref.NVecs()), []string{"RotTransToSuper"}}
	}
	if w != nil {
		wr, wc := w.Dims()
		if wr != n || wc != 1 {
			return nil, nil, nil, nil, Err{fmt.Sprintf("%s: weights are %dx%d", ErrShapeMismatch, wr, wc), []string{"RotTransToSuper"}}
		}
	} else {
		ones := make([]float64, n)
		for i := range ones {
			ones[i] = 1
		}
		w = mat.NewDense(n, 1, ones)
	}
	wsum := floats.Sum(mat.Col(nil, 0, w))
	if wsum <= appzero {
		return nil, nil, nil, nil, Err{string(ErrDegenerateWeights), []string{"RotTransToSuper"}}
	}
	cmov := weightedCentroid(mov, w, wsum)
	cref := weightedCentroid(ref, w, wsum)
	movc := v3.Zeros(n)
	movc.SubVec(mov, cmov)
	refc := v3.Zeros(n)
	refc.SubVec(ref, cref)
	//The weighted cross-covariance matrix between the centered sets.
	wmov := v3.Zeros(n)
	wmov.ScaleByCol(movc, w)
	H := mat.NewDense(3, 3, nil)
	H.Mul(wmov.T(), refc)
	var svd mat.SVD
	if ok := svd.Factorize(H, mat.SVDThin); !ok {
		return nil, nil, nil, nil, Err{string(v3.ErrGonum) + ": SVD failed", []string{"RotTransToSuper"}}
	}
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)
	rotation := mat.NewDense(3, 3, nil)
	rotation.Mul(&V, U.T())
	if mat.Det(rotation) < 0 {
		//A reflection: negate the singular vector of the smallest
		//singular value and rebuild, so a proper rotation is returned.
		for i := 0; i < 3; i++ {
			V.Set(i, 2, -V.At(i, 2))
		}
		rotation.Mul(&V, U.T())
	}
	//rotation maps column vectors; our coordinates are rows, so the
	//transformed set is movc times the transpose.
	transformed := v3.Zeros(n)
	transformed.Mul(movc, rotation.T())
	transformed.AddVec(transformed, cref)
	cmov.Scale(-1, cmov)
	return transformed, rotation, cmov, cref, nil
}

//weightedCentroid returns the weighted average position of the rows of A
//as a 1x3 row vector. wsum must be the sum of the weight column w.
func weightedCentroid(A *v3.Matrix, w *mat.Dense, wsum float64) *v3.Matrix {
	c := v3.Zeros(1)
	n := A.NVecs()
	for j := 0; j < 3; j++ {
		var s float64
		for i := 0; i < n; i++ {
			s += w.At(i, 0) * A.At(i, j)
		}
		c.Set(0, j, s/wsum)
	}
	return c
}

//WeightedRMSD returns the weighted root mean square deviation between the
//coordinates in test and ref, sqrt(sum(w*d^2)/sum(w)), where d is the
//per-atom displacement. A nil w means weight 1 for every atom. Note that no
//superposition is performed: the positions are compared as given.
func WeightedRMSD(test, ref *v3.Matrix, w *mat.Dense) (float64, error) {
	if test == nil || ref == nil {
		return 0, Err{string(ErrNilCoordinates), []string{"WeightedRMSD"}}
	}
	n := test.NVecs()
	if ref.NVecs() != n {
		return 0, Err{fmt.Sprintf("%s: %d and %d atoms", ErrShapeMismatch, n, ref.NVecs()), []string{"WeightedRMSD"}}
	}
	if w != nil {
		wr, wc := w.Dims()
		if wr != n || wc != 1 {
			return 0, Err{fmt.Sprintf("%s: weights are %dx%d", ErrShapeMismatch, wr, wc), []string{"WeightedRMSD"}}
		}
	}
	var dev, wsum float64
	for i := 0; i < n; i++ {
		wi := 1.0
		if w != nil {
			wi = w.At(i, 0)
		}
		dx := test.At(i, 0) - ref.At(i, 0)
		dy := test.At(i, 1) - ref.At(i, 1)
		dz := test.At(i, 2) - ref.At(i, 2)
		dev += wi * (dx*dx + dy*dy + dz*dz)
		wsum += wi
	}
	if wsum <= appzero {
		return 0, Err{string(ErrDegenerateWeights), []string{"WeightedRMSD"}}
	}
	return math.Sqrt(dev / wsum), nil
}

//superposeAll fits every coordinate set in sets onto ref, in place, using
//the per-set weight column given by wf. Sets are processed concurrently in
//chunks of o.Cpus() workers; each worker owns one coordinate-set index, so
//writes never race, and the function only returns once every worker of
//every chunk has finished.
func superposeAll(sets []*v3.Matrix, ref *v3.Matrix, wf weighter, o *Options) error {
	type fitted struct {
		index  int
		coords *v3.Matrix
		err    error
	}
	cpus := o.Cpus()
	if cpus < 1 {
		cpus = 1
	}
	results := make(chan *fitted, cpus)
	var err error
	for start := 0; start < len(sets); start += cpus {
		end := start + cpus
		if end > len(sets) {
			end = len(sets)
		}
		for i := start; i < end; i++ {
			go func(i int) {
				t, _, _, _, err2 := RotTransToSuper(sets[i], ref, wf(i))
				results <- &fitted{index: i, coords: t, err: err2}
			}(i)
		}
		for i := start; i < end; i++ {
			r := <-results
			if r.err != nil {
				if err == nil {
					err = Err{fmt.Sprintf("%s: set %d", r.err.Error(), r.index), []string{"superposeAll"}}
				} else {
					//only the first error is returned
					log.Printf("goEnsemble: fit of set %d also failed: %v", r.index, r.err)
				}
				continue //keep draining the chunk
			}
			sets[r.index].Copy(r.coords)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
