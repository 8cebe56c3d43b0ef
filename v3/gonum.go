/*
 * gonum.go, part of goensemble.
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

//gonum.go contains the Matrix type itself plus everything closest to the
//underlying gonum library: constructors, views and the wrappers that are
//needed because the receiver is a Matrix while gonum only knows about Dense.

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space. The underlying implementation varies.
//Within the package it is understood that a "vector" is a row vector, i.e. the
//cartesian coordinates of a point in 3D space.
type Matrix struct {
	*mat.Dense
}

func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

func Dense2Matrix(A *mat.Dense) *Matrix {
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//ColView puts a view of the given col of the matrix on the receiver.
func (F *Matrix) ColView(i int) *Matrix {
	Fr, _ := F.Dims()
	r := F.Dense.Slice(0, Fr, i, i+1).(*mat.Dense)
	return &Matrix{r}
}

//VecView returns a view of the ith vector of the matrix.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of F starting from i,j and spanning r rows and
//c columns. Changes in the view are reflected in F and vice-versa.
//Notice that very little memory allocation happens, only a couple of
//ints and pointers.
func (F *Matrix) View(i, j, r, c int) *Matrix {
	ret := F.Dense.Slice(i, i+r, j, j+c).(*mat.Dense)
	return &Matrix{ret}
}

//Mul wraps mat.Mul to take care of the case when one of the
//arguments is also the receiver. Since the receiver is a Matrix,
//the gonum function would only see the embedded Dense and could
//not know that internally F.Dense==A, hence the need for this wrapper.
func (F *Matrix) Mul(A, B mat.Matrix) {
	if F == A {
		A := A.(*Matrix)
		F.Dense.Mul(A.Dense, B)
	} else if F == B {
		B := B.(*Matrix)
		F.Dense.Mul(A, B.Dense)
	} else {
		F.Dense.Mul(A, B)
	}
}

//unwrap returns the embedded Dense of A if A is a Matrix, or A itself
//otherwise. gonum identifies in-place operations by pointer identity with
//the receiver, so a Matrix argument must be unwrapped before the call or
//the aliasing check will see two different headers over the same data and
//panic.
func unwrap(A mat.Matrix) mat.Matrix {
	if A, ok := A.(*Matrix); ok {
		return A.Dense
	}
	return A
}

//Scale wraps mat.Scale. Safe to call with the receiver as the argument.
func (F *Matrix) Scale(factor float64, A mat.Matrix) {
	F.Dense.Scale(factor, unwrap(A))
}

//Add wraps mat.Add. Safe to call with the receiver as either argument.
func (F *Matrix) Add(A, B mat.Matrix) {
	F.Dense.Add(unwrap(A), unwrap(B))
}

//Sub wraps mat.Sub. Safe to call with the receiver as either argument.
func (F *Matrix) Sub(A, B mat.Matrix) {
	F.Dense.Sub(unwrap(A), unwrap(B))
}

//MulElem wraps mat.MulElem. Safe to call with the receiver as either
//argument.
func (F *Matrix) MulElem(A, B mat.Matrix) {
	F.Dense.MulElem(unwrap(A), unwrap(B))
}

//Det returns the determinant of a 3x3 matrix. Panics if the matrix is not 3x3.
func Det(A mat.Matrix) float64 {
	r, c := A.Dims()
	if r != 3 || c != 3 {
		panic(ErrDeterminant)
	}
	return mat.Det(A)
}

//Errors

type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored.
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//For errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix      = PanicMsg("goEnsemble/v3: A Matrix should have 3 columns")
	ErrNoCrossProduct    = PanicMsg("goEnsemble/v3: Invalid matrix for cross product")
	ErrNotEnoughElements = PanicMsg("goEnsemble/v3: not enough elements in Matrix")
	ErrGonum             = PanicMsg("goEnsemble/v3: Error in gonum function")
	ErrDeterminant       = PanicMsg("goEnsemble/v3: Determinants are only available for 3x3 matrices")
	ErrShape             = PanicMsg("goEnsemble/v3: Dimension mismatch")
	ErrIndexOutOfRange   = PanicMsg("goEnsemble/v3: index out of range")
)
