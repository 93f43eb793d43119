/*
 * graph.go, part of chemsel.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

//Package chemgraph exposes the bonds of a set of atoms as a gonum undirected graph,
//and provides the graph queries needed by atom selections: fragments (connected
//components) and bond-distance neighborhoods.
package chemgraph

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

//Atom is a node of the graph. Its ID is the index of the atom in its set.
type Atom struct {
	Index int
}

func (A Atom) ID() int64 {
	return int64(A.Index)
}

//Bond is an undirected edge between 2 atoms.
type Bond struct {
	At1, At2 Atom
}

func (B Bond) From() graph.Node {
	return B.At1
}

func (B Bond) To() graph.Node {
	return B.At2
}

//bonds are not directional, so the reversed edge is the same bond with the ends swapped.
func (B Bond) ReversedEdge() graph.Edge {
	return Bond{At1: B.At2, At2: B.At1}
}

//Topology is the bond graph for a set of n atoms. Every atom is a node, even if it has no bonds.
//A Topology is never modified after New returns, so it can be shared among goroutines.
type Topology struct {
	g *simple.UndirectedGraph
	n int
}

//New builds the bond graph of n atoms with the given pairs of atom indexes.
//pairs must not contain self bonds or indexes outside [0,n). Repeated pairs
//(in any order) are merged. New panics on invalid pairs, which should have been
//validated by the caller.
func New(n int, pairs [][2]int) *Topology {
	T := &Topology{g: simple.NewUndirectedGraph(), n: n}
	for i := 0; i < n; i++ {
		T.g.AddNode(Atom{Index: i})
	}
	for _, p := range pairs {
		if p[0] == p[1] || p[0] < 0 || p[1] < 0 || p[0] >= n || p[1] >= n {
			panic(ErrInvalidBond)
		}
		T.g.SetEdge(Bond{At1: Atom{Index: p[0]}, At2: Atom{Index: p[1]}})
	}
	return T
}

//Len returns the number of atoms (nodes) in the graph
func (T *Topology) Len() int {
	return T.n
}

//Graph returns the underlying gonum graph.
func (T *Topology) Graph() graph.Undirected {
	return T.g
}

//Neighbors returns the indexes of the atoms bonded to atom i, sorted.
func (T *Topology) Neighbors(i int) []int {
	it := T.g.From(int64(i))
	ret := make([]int, 0, 4)
	for it.Next() {
		ret = append(ret, int(it.Node().ID()))
	}
	sort.Ints(ret)
	return ret
}

//Degree returns the number of bonds of atom i.
func (T *Topology) Degree(i int) int {
	d := 0
	for it := T.g.From(int64(i)); it.Next(); {
		d++
	}
	return d
}

//Fragments returns, for each atom, the index of the fragment (connected component) it belongs to.
//Fragments are numbered from 0, in the order of their lowest atom index, so the result doesn't
//depend on gonum's traversal order.
func (T *Topology) Fragments() []int {
	ret := make([]int, T.n)
	if T.n == 0 {
		return ret
	}
	comps := topo.ConnectedComponents(T.g)
	lowest := make([]int, len(comps))
	for i, c := range comps {
		low := T.n
		for _, node := range c {
			if id := int(node.ID()); id < low {
				low = id
			}
		}
		lowest[i] = low
	}
	order := make([]int, len(comps))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return lowest[order[i]] < lowest[order[j]] })
	for frag, ci := range order {
		for _, node := range comps[ci] {
			ret[node.ID()] = frag
		}
	}
	return ret
}

//WithinBonds returns a mask with the atoms that are at most k bonds away
//from any of the atoms marked in seeds, including the seeds themselves. It is a multi-source
//breadth-first search. seeds must have one element per atom.
func (T *Topology) WithinBonds(seeds []bool, k int) []bool {
	if len(seeds) != T.n {
		panic(ErrMaskLength)
	}
	ret := make([]bool, T.n)
	frontier := make([]int, 0, 16)
	for i, v := range seeds {
		if v {
			ret[i] = true
			frontier = append(frontier, i)
		}
	}
	next := make([]int, 0, 16)
	for depth := 0; depth < k && len(frontier) > 0; depth++ {
		next = next[:0]
		for _, i := range frontier {
			it := T.g.From(int64(i))
			for it.Next() {
				j := int(it.Node().ID())
				if !ret[j] {
					ret[j] = true
					next = append(next, j)
				}
			}
		}
		frontier, next = next, frontier
	}
	return ret
}

//PanicMsg is a message used for panics, for programming errors.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrInvalidBond = PanicMsg("chemgraph: bond with invalid atom indexes")
	ErrMaskLength  = PanicMsg("chemgraph: mask length doesn't match the number of atoms")
)
