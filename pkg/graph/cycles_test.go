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

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

func threeNodeGraph() *Graph {
	g := New()
	g.AddVertex(&model.ResourceRecord{UID: "a", Kind: model.KindPod, Name: "a"})
	g.AddVertex(&model.ResourceRecord{UID: "b", Kind: model.KindPod, Name: "b"})
	g.AddVertex(&model.ResourceRecord{UID: "c", Kind: model.KindPod, Name: "c"})
	return g
}

func TestFindCyclesDetectsBackEdge(t *testing.T) {
	g := threeNodeGraph()
	g.AddEdge("a", "b", EdgeUses)
	g.AddEdge("b", "c", EdgeUses)
	g.AddEdge("c", "a", EdgeUses)

	cycles := g.FindCycles()
	assert.NotEmpty(t, cycles)
}

func TestFindCyclesEmptyForDAG(t *testing.T) {
	g := threeNodeGraph()
	g.AddEdge("a", "b", EdgeUses)
	g.AddEdge("b", "c", EdgeUses)

	assert.Empty(t, g.FindCycles())
}

func TestShortestPath(t *testing.T) {
	g := threeNodeGraph()
	g.AddEdge("a", "b", EdgeUses)
	g.AddEdge("b", "c", EdgeUses)

	assert.Equal(t, []string{"a", "b", "c"}, g.ShortestPath("a", "c"))
	assert.Equal(t, []string{"a"}, g.ShortestPath("a", "a"))
}

func TestShortestPathNoPath(t *testing.T) {
	g := threeNodeGraph()
	assert.Nil(t, g.ShortestPath("a", "c"))
}

func TestShortestPathMissingEndpoint(t *testing.T) {
	g := threeNodeGraph()
	assert.Nil(t, g.ShortestPath("a", "missing"))
}

func TestStatsReportsDAGAndComponents(t *testing.T) {
	g := threeNodeGraph()
	g.AddEdge("a", "b", EdgeUses)

	stats := g.Stats()
	assert.Equal(t, 3, stats.Vertices)
	assert.Equal(t, 1, stats.Edges)
	assert.True(t, stats.IsDAG)
	assert.Equal(t, 2, stats.ComponentCount)
}

func TestStatsDetectsCycleAsNotDAG(t *testing.T) {
	g := threeNodeGraph()
	g.AddEdge("a", "b", EdgeUses)
	g.AddEdge("b", "a", EdgeUses)

	assert.False(t, g.Stats().IsDAG)
}
