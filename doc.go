/*
 * doc.go, part of goensemble.
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

/*Package ensemble is the main package of the goEnsemble library. It manages
collections of alternative conformations (coordinate sets) sharing one atom
topology, and computes geometric comparisons between them.


	**goEnsemble capabilities**

    Holds any number of conformations of a molecule, in insertion order,
	together with a reference structure and optional per-atom weights.

    A weighted (PDB-style) ensemble variant carries one weight column per
	conformation, so atoms missing in some of the structures (say, residues
	without density in some crystal) can be masked out per conformation.

    Superimposes every conformation onto the reference with a weighted
	least-squares rigid-body fit (rotation plus translation, no scaling),
	concurrently across conformations.

    Calculates weighted RMSD between each conformation and the reference.

    Slicing, deletion and concatenation of coordinate sets, with per-set
	weights kept in lockstep for the weighted variant.

    Lightweight Conformation views into single coordinate sets of an
	ensemble.

    Sequential, trajectory-style reading of the stored conformations, so an
	ensemble can be fed to any function that consumes a Traj.

Coordinates are kept in the v3.Matrix type of the v3 subpackage, a Nx3
row-major wrapper over gonum's Dense, where each row is one atom position.

Note that a Conformation is a non-owning view: deleting or reordering the
coordinate sets of an ensemble while views or iterators into it are
outstanding leaves those views pointing to whatever now lives at their index.
The library does not track such invalidations; callers must not interleave
structural edits with iteration.

File parsing and writing is deliberately out of the scope of this library.
Anything able to produce a reference structure and coordinate sets (a PDB or
XYZ reader, a trajectory reader, another ensemble) can feed an ensemble
through the Provider interface.*/
package ensemble
