// Copyright 2026 The kubectl-smart Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package graph builds and queries the typed dependency graph over
// ResourceRecords. The graph is an adjacency list keyed by uid; it does
// not depend on an external graph engine.
package graph

import "github.com/kubectl-smart/kubectl-smart/pkg/model"

// EdgeLabel is the closed set of relationship kinds an edge may carry.
type EdgeLabel string

const (
	EdgeOwns        EdgeLabel = "owns"
	EdgeMounts      EdgeLabel = "mounts"
	EdgeScheduledOn EdgeLabel = "scheduled-on"
	EdgeSelects     EdgeLabel = "selects"
	EdgeUses        EdgeLabel = "uses"
	EdgeBindsTo     EdgeLabel = "binds-to"
)

// Direction selects which adjacency a traversal follows.
type Direction string

const (
	Upstream   Direction = "upstream"
	Downstream Direction = "downstream"
)

// Edge is one directed, labeled relationship to a neighbor uid.
type Edge struct {
	To    string
	Label EdgeLabel
}

type edgeKey struct {
	from, to string
	label    EdgeLabel
}

// Graph is a directed multigraph over ResourceRecords, keyed by uid,
// with at most one edge per (src, dst, label) triple. Built once per
// command in two passes and read-only thereafter.
type Graph struct {
	vertices map[string]*model.ResourceRecord
	out      map[string][]Edge
	in       map[string][]Edge
	edgeSeen map[edgeKey]bool
	edges    int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		vertices: make(map[string]*model.ResourceRecord),
		out:      make(map[string][]Edge),
		in:       make(map[string][]Edge),
		edgeSeen: make(map[edgeKey]bool),
	}
}

// AddVertex registers r under its uid. A second AddVertex for the same
// uid replaces the stored record (last write wins); callers are
// expected to add each uid once during the vertex pass.
func (g *Graph) AddVertex(r *model.ResourceRecord) {
	g.vertices[r.UID] = r
}

// AddEdge adds a labeled edge from -> to. Returns false, adding
// nothing, when either endpoint is absent or the (from, to, label)
// triple already exists.
func (g *Graph) AddEdge(from, to string, label EdgeLabel) bool {
	if _, ok := g.vertices[from]; !ok {
		return false
	}
	if _, ok := g.vertices[to]; !ok {
		return false
	}
	key := edgeKey{from, to, label}
	if g.edgeSeen[key] {
		return false
	}
	g.edgeSeen[key] = true
	g.out[from] = append(g.out[from], Edge{To: to, Label: label})
	g.in[to] = append(g.in[to], Edge{To: from, Label: label})
	g.edges++
	return true
}

// Vertex returns the record stored for uid.
func (g *Graph) Vertex(uid string) (*model.ResourceRecord, bool) {
	r, ok := g.vertices[uid]
	return r, ok
}

// Vertices returns every record in the graph, in no particular order.
func (g *Graph) Vertices() []*model.ResourceRecord {
	out := make([]*model.ResourceRecord, 0, len(g.vertices))
	for _, r := range g.vertices {
		out = append(out, r)
	}
	return out
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Dependencies returns the neighbor uids of uid in direction: successors
// for Downstream, predecessors for Upstream.
func (g *Graph) Dependencies(uid string, direction Direction) []string {
	var edges []Edge
	if direction == Upstream {
		edges = g.in[uid]
	} else {
		edges = g.out[uid]
	}
	out := make([]string, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.To)
	}
	return out
}

// OutEdges returns the outgoing edges of uid.
func (g *Graph) OutEdges(uid string) []Edge { return g.out[uid] }

// InEdges returns the incoming edges of uid.
func (g *Graph) InEdges(uid string) []Edge { return g.in[uid] }
