/*
 * errors.go, part of goensemble.
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

//Err is the concrete error type of the package. It carries a message plus a
//"decoration" trail of the functions the error went through.
type Err struct {
	message string
	deco    []string
}

//Error returns a string with an error message.
func (err Err) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice. Passing an empty string just returns
//the current decoration.
func (err Err) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//errDecorate asserts that the error implements Error and decorates it with
//the caller's name before returning it. Calling it with an error from
//outside the library will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//lastFrame signals the normal end of a sequential read over the stored
//coordinate sets.
type lastFrame struct {
	Err
}

func (e lastFrame) NormalLastFrameTermination() {}

func newLastFrameError(caller string) lastFrame {
	return lastFrame{Err{string(ErrNoMoreFrames), []string{caller}}}
}

//PanicMsg is a message used for panics and as the fixed text of the errors
//in the package taxonomy. It satisfies the error interface, but for returned
//errors use Err.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	//ErrNilCoordinates: a nil coordinate or weight matrix was given where one was required.
	ErrNilCoordinates = PanicMsg("goEnsemble: nil coordinates given")
	//ErrShapeMismatch: a coordinate or weight array disagrees with the number of atoms in the ensemble.
	ErrShapeMismatch = PanicMsg("goEnsemble: coordinates or weights don't match the atoms in the ensemble")
	//ErrDimensionMismatch: concatenation of ensembles with different numbers of atoms.
	ErrDimensionMismatch = PanicMsg("goEnsemble: ensembles to concatenate have different numbers of atoms")
	//ErrDegenerateWeights: the total fit weight for a conformation is zero, so the fit is undefined.
	ErrDegenerateWeights = PanicMsg("goEnsemble: total fit weight is zero for a conformation")
	//ErrTypeMismatch: the operation needs a per-conformation-weighted (PDB) ensemble.
	ErrTypeMismatch = PanicMsg("goEnsemble: operation requires a weighted (PDB) ensemble")
	//ErrNoReference: superposition or RMSD was requested but no reference coordinates are set.
	ErrNoReference = PanicMsg("goEnsemble: ensemble has no reference coordinates")
	//ErrIndexOutOfRange: a coordinate-set index is out of range.
	ErrIndexOutOfRange = PanicMsg("goEnsemble: coordinate set index out of range")
	//ErrNilEnsemble: a nil ensemble was given.
	ErrNilEnsemble = PanicMsg("goEnsemble: nil ensemble given")
	//ErrNoMoreFrames: a sequential read went past the last stored coordinate set.
	ErrNoMoreFrames = PanicMsg("goEnsemble: no more frames")
)
