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
	"sync"
	"time"

	"github.com/go-kit/log"

	"github.com/kubectl-smart/kubectl-smart/pkg/cache"
	"github.com/kubectl-smart/kubectl-smart/pkg/collector"
	"github.com/kubectl-smart/kubectl-smart/pkg/graph"
	"github.com/kubectl-smart/kubectl-smart/pkg/parser"
	"github.com/kubectl-smart/kubectl-smart/pkg/scoring"
)

// Engine holds the collaborators every orchestrator shares: the
// collector/parser registries, a logger, metrics, the forecasting
// cache, and the weights table. One Engine serves every command of a
// single process invocation (spec.md §1, §5 — the tool is single-
// process, per-invocation). No global/package-level state is used;
// every collaborator is a construction parameter (spec.md §9).
type Engine struct {
	Logger        log.Logger
	Collectors    *collector.Registry
	Parsers       *parser.Registry
	Metrics       *Metrics
	Cache         *cache.Store
	Weights       *scoring.Weights
	OuterDeadline time.Duration

	mu         sync.Mutex
	builtGraph *graph.Graph
}

// NewEngine builds an Engine with the standard built-in registries.
// cacheStore and metrics may be nil (top's PVC history degrades to a
// single in-process sample; metrics become a no-op).
func NewEngine(logger log.Logger, metrics *Metrics, cacheStore *cache.Store, weights *scoring.Weights) *Engine {
	return &Engine{
		Logger:        logger,
		Collectors:    collector.NewRegistry(),
		Parsers:       parser.NewRegistry(),
		Metrics:       metrics,
		Cache:         cacheStore,
		Weights:       weights,
		OuterDeadline: DefaultOuterDeadline,
	}
}

// rememberGraph caches g for a later Graph() call within the same
// process invocation (spec.md §4.6's "if a graph was already built
// earlier in this process, reuse it" — relevant when a future
// collaborator runs diag then graph back to back without re-invoking
// the process; the engine itself never builds the graph eagerly).
func (e *Engine) rememberGraph(g *graph.Graph) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.builtGraph = g
}

// reuseGraph returns a previously built graph, if any.
func (e *Engine) reuseGraph() (*graph.Graph, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.builtGraph == nil {
		return nil, false
	}
	return e.builtGraph, true
}
