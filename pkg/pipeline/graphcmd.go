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

package pipeline

import (
	"context"

	"github.com/kubectl-smart/kubectl-smart/pkg/collector"
	"github.com/kubectl-smart/kubectl-smart/pkg/graph"
	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

// Graph runs the graph command (spec.md §4.6): reuse a graph built
// earlier this process if one exists, otherwise collect {get,
// describe}; locate the target; render the ASCII tree and
// dependencies in direction (default downstream).
func (e *Engine) Graph(ctx context.Context, subject model.SubjectContext, direction graph.Direction) *GraphResult {
	if err := subject.Validate(); err != nil {
		return &GraphResult{Subject: subject, Direction: direction, ExitCode: ExitIssue, Err: err}
	}
	if direction == "" {
		direction = graph.Downstream
	}

	g, reused := e.reuseGraph()
	if !reused {
		ctx, cancel := context.WithTimeout(ctx, e.OuterDeadline)
		defer cancel()

		names := collector.CommandCollectors()["graph"]
		blobs := runCollectors(ctx, e.Logger, e.Collectors, e.Metrics, requestsFor(names, subject))
		records := e.Parsers.DispatchAll(e.Logger, blobs)
		g = graph.Build(records)
		e.rememberGraph(g)
	}

	target := g.Vertices()
	var root *model.ResourceRecord
	for _, r := range target {
		if r.Kind == subject.Kind && r.Name == subject.Name && r.Namespace == subject.Namespace {
			root = r
			break
		}
	}
	if root == nil {
		return &GraphResult{Subject: subject, Direction: direction, ExitCode: ExitIssue, Err: notFoundError(subject)}
	}

	maxDepth := subject.Depth
	ascii, err := graph.ToASCII(g, root.UID, direction, maxDepth)
	result := &GraphResult{
		Subject:      subject,
		Direction:    direction,
		Root:         root,
		Dependencies: g.Dependencies(root.UID, direction),
		Stats:        g.Stats(),
		ExitCode:     ExitOK,
	}
	if err != nil {
		result.Err = err
		return result
	}
	result.ASCII = ascii
	return result
}
