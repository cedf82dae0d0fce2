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
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

func emptyBlob(source string, ct model.ContentType) model.RawBlob {
	return model.RawBlob{Source: source, ContentType: ct, Timestamp: time.Now()}
}

// emptyBlobWithError builds the degraded blob a failed collector
// returns, tagging Metadata with the failure taxonomy (and, for an
// RBAC denial, the missing verb/resource) so the pipeline can surface
// user-visible guidance without the soft-failure policy leaking a
// second error-return path into the Collector interface (spec.md §7).
func emptyBlobWithError(source string, ct model.ContentType, err error) model.RawBlob {
	blob := emptyBlob(source, ct)
	ce, ok := err.(*CollectError)
	if !ok {
		blob.Metadata = map[string]string{"error_taxonomy": string(TaxonomyKubectl)}
		return blob
	}
	meta := map[string]string{"error_taxonomy": string(ce.Taxonomy)}
	if ce.Verb != "" {
		meta["error_verb"] = ce.Verb
	}
	if ce.Resource != "" {
		meta["error_resource"] = ce.Resource
	}
	blob.Metadata = meta
	return blob
}

func logCollectFailure(logger log.Logger, source string, err error) {
	_ = level.Warn(logger).Log("msg", "collector failed, degrading to empty blob", "collector", source, "err", err)
}

// GetCollector lists or fetches a resource set as JSON (spec.md §4.1).
type GetCollector struct {
	Deadline time.Duration
	// Override, used by the `top` command to target a fixed kind
	// irrespective of subject.Kind (e.g. "get secrets").
	KindOverride model.ResourceKind
}

func (c *GetCollector) Name() string { return "get" }

func (c *GetCollector) Collect(ctx context.Context, logger log.Logger, subject model.SubjectContext) model.RawBlob {
	kind := subject.Kind
	if c.KindOverride != "" {
		kind = c.KindOverride
	}
	resourceName := ResourceName(kind)
	if resourceName == "" {
		return emptyBlob("get", model.ContentTypeJSON)
	}

	args := []string{"get", resourceName}
	if subject.Name != "" && c.KindOverride == "" && !ListOnlyKinds[kind] {
		args = append(args, subject.Name)
	}
	args = append(args, "-o", "json")
	args = append(args, contextArgs(subject)...)

	res := runKubectl(ctx, logger, callDeadline(subject, c.Deadline), args)
	if res.Err != nil {
		logCollectFailure(logger, "get", res.Err)
		return emptyBlobWithError("get", model.ContentTypeJSON, res.Err)
	}
	return model.RawBlob{Data: res.Stdout, Source: "get", ContentType: model.ContentTypeJSON, Timestamp: time.Now(), Metadata: map[string]string{"kind": string(kind)}}
}

// DescribeCollector returns a human-readable object description
// (spec.md §4.1).
type DescribeCollector struct{ Deadline time.Duration }

func (c *DescribeCollector) Name() string { return "describe" }

func (c *DescribeCollector) Collect(ctx context.Context, logger log.Logger, subject model.SubjectContext) model.RawBlob {
	resourceName := ResourceName(subject.Kind)
	if resourceName == "" || subject.Name == "" {
		return emptyBlob("describe", model.ContentTypeText)
	}
	args := []string{"describe", resourceName, subject.Name}
	args = append(args, contextArgs(subject)...)

	res := runKubectl(ctx, logger, callDeadline(subject, c.Deadline), args)
	if res.Err != nil {
		logCollectFailure(logger, "describe", res.Err)
		return emptyBlobWithError("describe", model.ContentTypeText, res.Err)
	}
	return model.RawBlob{Data: res.Stdout, Source: "describe", ContentType: model.ContentTypeText, Timestamp: time.Now()}
}

// EventsCollector returns events sorted by last timestamp, optionally
// scoped to a single involved object (spec.md §4.1).
type EventsCollector struct{ Deadline time.Duration }

func (c *EventsCollector) Name() string { return "events" }

func (c *EventsCollector) Collect(ctx context.Context, logger log.Logger, subject model.SubjectContext) model.RawBlob {
	args := []string{"get", "events", "--sort-by=.lastTimestamp", "-o", "json"}
	if subject.Scope == model.ScopeResource && subject.Name != "" {
		selector := fmt.Sprintf("involvedObject.name=%s,involvedObject.kind=%s", subject.Name, subject.Kind)
		args = append(args, "--field-selector", selector)
	}
	args = append(args, contextArgs(subject)...)

	res := runKubectl(ctx, logger, callDeadline(subject, c.Deadline), args)
	if res.Err != nil {
		logCollectFailure(logger, "events", res.Err)
		return emptyBlobWithError("events", model.ContentTypeJSON, res.Err)
	}
	return model.RawBlob{Data: res.Stdout, Source: "events", ContentType: model.ContentTypeJSON, Timestamp: time.Now()}
}

// LogsCollector tails logs for a Pod subject; any other kind yields an
// empty text blob (spec.md §4.1).
type LogsCollector struct {
	Deadline  time.Duration
	TailLines int
}

func (c *LogsCollector) Name() string { return "logs" }

func (c *LogsCollector) Collect(ctx context.Context, logger log.Logger, subject model.SubjectContext) model.RawBlob {
	if subject.Kind != model.KindPod || subject.Name == "" {
		return emptyBlob("logs", model.ContentTypeText)
	}
	tail := c.TailLines
	if tail <= 0 {
		tail = 100
	}
	args := []string{"logs", subject.Name, fmt.Sprintf("--tail=%d", tail)}
	args = append(args, contextArgs(subject)...)

	res := runKubectl(ctx, logger, callDeadline(subject, c.Deadline), args)
	if res.Err != nil {
		logCollectFailure(logger, "logs", res.Err)
		return emptyBlobWithError("logs", model.ContentTypeText, res.Err)
	}
	return model.RawBlob{Data: res.Stdout, Source: "logs", ContentType: model.ContentTypeText, Timestamp: time.Now()}
}

// MetricsCollector returns the "top pods/nodes" tabular output
// (spec.md §4.1). Optional: a non-zero exit (e.g. metrics-server not
// installed) degrades to an empty blob like any other collector.
type MetricsCollector struct{ Deadline time.Duration }

func (c *MetricsCollector) Name() string { return "metrics" }

func (c *MetricsCollector) Collect(ctx context.Context, logger log.Logger, subject model.SubjectContext) model.RawBlob {
	var args []string
	if subject.Scope == model.ScopeCluster {
		args = []string{"top", "nodes"}
	} else {
		args = []string{"top", "pods"}
	}
	args = append(args, contextArgs(subject)...)

	res := runKubectl(ctx, logger, callDeadline(subject, c.Deadline), args)
	if res.Err != nil {
		logCollectFailure(logger, "metrics", res.Err)
		return emptyBlobWithError("metrics", model.ContentTypeText, res.Err)
	}
	return model.RawBlob{Data: res.Stdout, Source: "metrics", ContentType: model.ContentTypeText, Timestamp: time.Now()}
}

// KubeletCollector enumerates node names then scrapes each node's
// kubelet /metrics proxy endpoint, concatenating Prometheus-format
// output prefixed by "# node=<name>". Forbidden nodes are silently
// skipped (spec.md §4.1).
type KubeletCollector struct{ Deadline time.Duration }

func (c *KubeletCollector) Name() string { return "kubelet" }

func (c *KubeletCollector) Collect(ctx context.Context, logger log.Logger, subject model.SubjectContext) model.RawBlob {
	names, err := c.listNodeNames(ctx, logger, subject)
	if err != nil {
		logCollectFailure(logger, "kubelet", err)
		return emptyBlob("kubelet", model.ContentTypeText)
	}

	var out strings.Builder
	for _, name := range names {
		args := []string{"get", "--raw", fmt.Sprintf("/api/v1/nodes/%s/proxy/metrics", name)}
		args = append(args, contextArgs(subject)...)
		res := runKubectl(ctx, logger, callDeadline(subject, c.Deadline), args)
		if res.Err != nil {
			if ce, ok := res.Err.(*CollectError); ok && ce.Taxonomy == TaxonomyRBAC {
				continue // forbidden nodes are silently skipped
			}
			continue
		}
		out.WriteString("# node=")
		out.WriteString(name)
		out.WriteByte('\n')
		out.WriteString(res.Stdout)
		out.WriteByte('\n')
	}
	return model.RawBlob{Data: out.String(), Source: "kubelet", ContentType: model.ContentTypeText, Timestamp: time.Now()}
}

func (c *KubeletCollector) listNodeNames(ctx context.Context, logger log.Logger, subject model.SubjectContext) ([]string, error) {
	args := []string{"get", "nodes", "-o", "json"}
	args = append(args, contextArgs(subject)...)
	res := runKubectl(ctx, logger, callDeadline(subject, c.Deadline), args)
	if res.Err != nil {
		return nil, res.Err
	}

	var list struct {
		Items []struct {
			Metadata struct {
				Name string `json:"name"`
			} `json:"metadata"`
		} `json:"items"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &list); err != nil {
		return nil, &CollectError{Taxonomy: TaxonomyDecode, Source: "kubelet", Err: err}
	}
	names := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		names = append(names, item.Metadata.Name)
	}
	return names, nil
}
