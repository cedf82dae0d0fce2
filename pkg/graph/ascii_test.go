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
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

func TestToASCIIRendersTreeWithIcons(t *testing.T) {
	g := New()
	g.AddVertex(&model.ResourceRecord{UID: "dep", Kind: model.KindDeployment, Name: "web", Status: "Available"})
	g.AddVertex(&model.ResourceRecord{UID: "rs", Kind: model.KindReplicaSet, Name: "web-abc", Status: "Active"})
	g.AddVertex(&model.ResourceRecord{UID: "pod", Kind: model.KindPod, Name: "web-abc-xyz", Status: "Failed"})
	g.AddEdge("dep", "rs", EdgeOwns)
	g.AddEdge("rs", "pod", EdgeOwns)

	out, err := ToASCII(g, "dep", Downstream, 3)
	require.NoError(t, err)
	assert.Contains(t, out, "(ok) Deployment/web")
	assert.Contains(t, out, "└─ (ok) ReplicaSet/web-abc")
	assert.Contains(t, out, "(x) Pod/web-abc-xyz")
}

func TestToASCIIMarksCycles(t *testing.T) {
	g := New()
	g.AddVertex(&model.ResourceRecord{UID: "a", Kind: model.KindPod, Name: "a", Status: "Running"})
	g.AddVertex(&model.ResourceRecord{UID: "b", Kind: model.KindPod, Name: "b", Status: "Running"})
	g.AddEdge("a", "b", EdgeUses)
	g.AddEdge("b", "a", EdgeUses)

	out, err := ToASCII(g, "a", Downstream, 3)
	require.NoError(t, err)
	assert.Contains(t, out, "(cycle)")
}

func TestToASCIIRespectsDepthCutoff(t *testing.T) {
	g := New()
	g.AddVertex(&model.ResourceRecord{UID: "a", Kind: model.KindPod, Name: "a", Status: "Running"})
	g.AddVertex(&model.ResourceRecord{UID: "b", Kind: model.KindPod, Name: "b", Status: "Running"})
	g.AddVertex(&model.ResourceRecord{UID: "c", Kind: model.KindPod, Name: "c", Status: "Running"})
	g.AddEdge("a", "b", EdgeUses)
	g.AddEdge("b", "c", EdgeUses)

	out, err := ToASCII(g, "a", Downstream, 1)
	require.NoError(t, err)
	assert.Contains(t, out, "(depth cutoff)")
	assert.False(t, strings.Contains(out, "Pod/c"))
}

func TestToASCIIRootNotFound(t *testing.T) {
	g := New()
	_, err := ToASCII(g, "missing", Downstream, 3)
	assert.Error(t, err)
}

func TestToASCIIRefusesOversizedGraph(t *testing.T) {
	g := New()
	for i := 0; i < maxRenderVertices+1; i++ {
		uid := strconv.Itoa(i)
		g.AddVertex(&model.ResourceRecord{UID: uid, Kind: model.KindPod, Name: uid, Status: "Running"})
	}
	_, err := ToASCII(g, "0", Downstream, 3)
	assert.Error(t, err)
}
