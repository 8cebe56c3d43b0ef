/*
 * interfaces.go, part of goensemble.
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
	"gonum.org/v1/gonum/mat"

	v3 "github.com/rmera/goensemble/v3"
)

//Provider is the contract with topology objects: anything that knows a fixed
//number of atoms, a reference structure for them, and zero or more coordinate
//sets can populate an ensemble. The constructor copies the provider's current
//coordinate sets once; later changes to the provider are not reflected in the
//ensemble.
type Provider interface {

	//NumAtoms returns the number of atoms per coordinate set.
	NumAtoms() int

	//Coordinates returns the reference coordinates, or nil if not set.
	Coordinates() *v3.Matrix

	//Coordsets returns all the stored coordinate sets, in order.
	Coordsets() []*v3.Matrix
}

//Ensembler groups the operations shared by the uniform-weight Ensemble and
//the per-conformation-weighted PDBEnsemble, so analyses can be written once
//for both.
type Ensembler interface {
	Title() string

	NumAtoms() int

	NumCoordsets() int

	//AddCoordset appends the given coordinate sets, in call order.
	AddCoordset(coords ...*v3.Matrix) error

	//Coordsets returns copies of the requested coordinate sets (all of
	//them if no index is given), or nil if the ensemble holds none.
	Coordsets(indices ...int) []*v3.Matrix

	//DelCoordset removes the named coordinate sets, re-indexing the
	//remaining ones contiguously from 0.
	DelCoordset(indices ...int) error

	//Superpose aligns every stored coordinate set onto the reference
	//coordinates, in place.
	Superpose() error

	//RMSDs returns the weighted RMSD of each stored coordinate set
	//against the reference, in index order.
	RMSDs() ([]float64, error)

	//IterCoordsets returns a restartable iterator over the stored
	//coordinate sets, in index order.
	IterCoordsets() *CoordsetIter
}

//Traj is an interface for a sequential source of frames, compatible with
//trajectory readers. An Ensemble satisfies it, so the stored conformations
//can be consumed one at a time by trajectory-oriented analyses.
type Traj interface {

	//Readable returns true if the object is ready to be read.
	Readable() bool

	//Next reads the next frame into output, or discards it if output is
	//nil. The box argument is accepted for interface compatibility and
	//ignored, as ensembles carry no cell information.
	Next(output *v3.Matrix, box ...[]float64) error

	//Len returns the number of atoms per frame.
	Len() int
}

//Errors

//Error is the interface for errors that all packages in this library
//implement. The Decorate method allows adding and retrieving info from the
//error without changing its type or wrapping it around something else.
//If passed an empty string, Decorate just returns the current decoration
//slice without adding to it. The decoration slice should contain the names
//of the functions in the calling stack, each optionally followed by extra
//information, as in "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

//LastFrameError is the harmless error returned by sequential reads that ran
//out of frames, so it can be filtered in a type switch.
type LastFrameError interface {
	Error
	NormalLastFrameTermination() //does nothing, just to separate this interface from other errors.
}

//weighter is the internal handle the superposition engine uses to obtain the
//fit weights for one conformation. Both ensemble variants provide one.
type weighter func(index int) *mat.Dense
