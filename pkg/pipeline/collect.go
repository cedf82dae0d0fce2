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
	"time"

	"github.com/go-kit/log"
	"golang.org/x/sync/errgroup"

	"github.com/kubectl-smart/kubectl-smart/pkg/collector"
	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

// DefaultOuterDeadline bounds the whole command, per spec.md §5 ("the
// orchestrator's outer deadline applies across the whole command").
const DefaultOuterDeadline = 30 * time.Second

// namedCollect is one fan-out request: a registered collector name and
// the subject it runs against. Most requests share the command's
// subject; "top"'s targeted gets override the kind (§4.1, §4.6), by
// supplying impl directly instead of a registry lookup.
type namedCollect struct {
	name    string
	subject model.SubjectContext
	impl    collector.Collector
}

// runCollectors runs every request in req concurrently via errgroup,
// bounded by ctx's deadline, and returns one RawBlob per request in
// request order. A request naming an unregistered collector yields an
// empty blob with that name as its source. Parsing order never
// depends on completion order (spec.md §5), so the fixed output slot
// per index is purely for deterministic blob ordering in tests, not a
// correctness requirement.
func runCollectors(ctx context.Context, logger log.Logger, reg *collector.Registry, m *Metrics, requests []namedCollect) []model.RawBlob {
	blobs := make([]model.RawBlob, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			c := req.impl
			if c == nil {
				var ok bool
				c, ok = reg.Get(req.name)
				if !ok {
					blobs[i] = model.RawBlob{Source: req.name, ContentType: model.ContentTypeJSON, Timestamp: time.Now()}
					return nil
				}
			}
			m.observeCollectorCall(req.name)
			blob := c.Collect(gctx, logger, req.subject)
			if taxonomy, failed := blob.Metadata["error_taxonomy"]; failed {
				m.observeCollectorFailure(req.name, taxonomy)
			}
			blobs[i] = blob
			return nil
		})
	}
	// errgroup's Group never returns an error here: every goroutine
	// always returns nil, since collector failures are soft (spec.md
	// §7) and folded into the blob itself, not propagated as an error.
	_ = g.Wait()
	return blobs
}

// requestsFor builds the fan-out request list for a plain command
// whose collectors all share the same subject (diag, graph's {get,
// describe}).
func requestsFor(names []string, subject model.SubjectContext) []namedCollect {
	out := make([]namedCollect, len(names))
	for i, n := range names {
		out[i] = namedCollect{name: n, subject: subject}
	}
	return out
}
