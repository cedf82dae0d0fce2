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
	"fmt"
	"strings"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

const (
	maxRenderVertices = 2000
	maxRenderEdges    = 5000
	defaultMaxDepth   = 3
)

var iconByBucket = map[string]string{
	"green":  "(ok)",
	"red":    "(x)",
	"yellow": "(~)",
	"white":  "(.)",
}

func icon(status string) string {
	return iconByBucket[model.IconBucket(status)]
}

// ToASCII renders the tree rooted at root in direction, stopping at
// maxDepth (default 3 when <= 0). Rendering is refused outright when
// the graph exceeds 2,000 vertices or 5,000 edges (spec.md §4.3).
func ToASCII(g *Graph, root string, direction Direction, maxDepth int) (string, error) {
	if g.VertexCount() > maxRenderVertices || g.EdgeCount() > maxRenderEdges {
		return "", fmt.Errorf("graph too large to render (%d vertices, %d edges); narrow the scope", g.VertexCount(), g.EdgeCount())
	}
	rootRec, ok := g.Vertex(root)
	if !ok {
		return "", fmt.Errorf("root %q not found in graph", root)
	}
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	var b strings.Builder
	b.WriteString(treeLine(rootRec))
	b.WriteByte('\n')

	visited := map[string]bool{root: true}
	renderChildren(&b, g, root, direction, 1, maxDepth, "", visited)
	return b.String(), nil
}

func treeLine(r *model.ResourceRecord) string {
	return fmt.Sprintf("%s %s", icon(r.Status), r.FullName())
}

func renderChildren(b *strings.Builder, g *Graph, uid string, direction Direction, depth, maxDepth int, prefix string, visited map[string]bool) {
	children := g.Dependencies(uid, direction)
	for i, childUID := range children {
		last := i == len(children)-1
		connector := "├─ "
		nextPrefix := prefix + "│  "
		if last {
			connector = "└─ "
			nextPrefix = prefix + "   "
		}

		child, ok := g.Vertex(childUID)
		if !ok {
			continue
		}

		if visited[childUID] {
			b.WriteString(prefix)
			b.WriteString(connector)
			b.WriteString(treeLine(child))
			b.WriteString(" (cycle)\n")
			continue
		}

		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(treeLine(child))
		if depth >= maxDepth {
			if len(g.Dependencies(childUID, direction)) > 0 {
				b.WriteString(" (depth cutoff)")
			}
			b.WriteByte('\n')
			continue
		}
		b.WriteByte('\n')

		visited[childUID] = true
		renderChildren(b, g, childUID, direction, depth+1, maxDepth, nextPrefix, visited)
		delete(visited, childUID)
	}
}
