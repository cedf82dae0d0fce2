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

package collector

import (
	"context"
	"time"

	"github.com/go-kit/log"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

// Collector exposes the single operation spec.md §4.1 requires:
// collect a RawBlob for a subject. Implementations never return an
// error from Collect itself — failures are folded into an empty blob
// plus a logged CollectError, so the pipeline always proceeds with
// whatever partial data is available.
type Collector interface {
	// Name is the registered, logical collector name (e.g. "get").
	Name() string
	// Collect runs the collector for subject, returning a RawBlob. On
	// any failure the blob is empty but carries the correct
	// Source/ContentType so downstream parsing dispatch still works.
	Collect(ctx context.Context, logger log.Logger, subject model.SubjectContext) model.RawBlob
}

// ListOnlyKinds are list-only kinds the "get" collector always lists
// rather than fetching by name, to support forecasting (spec.md §4.1).
var ListOnlyKinds = map[model.ResourceKind]bool{
	model.KindSecret:  true,
	model.KindIngress: true,
	model.KindPVC:     true,
	model.KindPV:      true,
}

// CommandCollectors returns the registered collector names each
// top-level command fans out to, per spec.md §4.1's selection table.
func CommandCollectors() map[string][]string {
	return map[string][]string{
		"diag":  {"get", "describe", "events", "logs"},
		"graph": {"get", "describe"},
		"top":   {"get", "metrics", "kubelet"},
	}
}

// DefaultDeadline is the per-call deadline default from spec.md §5.
const DefaultDeadline = 10 * time.Second

// Registry maps a collector name to its implementation.
type Registry struct {
	collectors map[string]Collector
}

// NewRegistry builds a registry pre-populated with the built-in
// collectors from spec.md §4.1.
func NewRegistry() *Registry {
	r := &Registry{collectors: map[string]Collector{}}
	for _, c := range []Collector{
		&GetCollector{Deadline: DefaultDeadline},
		&DescribeCollector{Deadline: DefaultDeadline},
		&EventsCollector{Deadline: DefaultDeadline},
		&LogsCollector{Deadline: DefaultDeadline, TailLines: 100},
		&MetricsCollector{Deadline: DefaultDeadline},
		&KubeletCollector{Deadline: DefaultDeadline},
	} {
		r.Register(c)
	}
	return r
}

// Register adds or replaces a collector by name.
func (r *Registry) Register(c Collector) {
	r.collectors[c.Name()] = c
}

// Get returns the collector registered under name, if any.
func (r *Registry) Get(name string) (Collector, bool) {
	c, ok := r.collectors[name]
	return c, ok
}

// contextArgs builds the --context/--namespace argv prefix shared by
// every collector, per spec.md §4.1(b).
func contextArgs(subject model.SubjectContext) []string {
	var args []string
	if subject.Context != "" {
		args = append(args, "--context", subject.Context)
	}
	if subject.Namespace != "" {
		args = append(args, "--namespace", subject.Namespace)
	}
	return args
}

func callDeadline(subject model.SubjectContext, configured time.Duration) time.Duration {
	if subject.Timeout > 0 {
		return subject.Timeout
	}
	return configured
}
