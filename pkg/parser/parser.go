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

// Package parser turns RawBlobs into typed ResourceRecords. Every
// parser is a pure function; none mutate the blob they decode, and all
// tolerate malformed input by returning an empty slice (spec.md §4.2).
package parser

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

// Feed decodes one blob into zero or more records.
type Feed func(logger log.Logger, blob model.RawBlob) []model.ResourceRecord

// dispatchKey is the (source, contentType) pair the registry keys on.
type dispatchKey struct {
	source      string
	contentType model.ContentType
}

// Registry dispatches a blob to the right Feed by (source, contentType).
type Registry struct {
	bySourceAndType map[dispatchKey]Feed
	jsonDefault     Feed // any source / application/json except "events"
}

// NewRegistry builds the registry wired per spec.md §4.2's dispatch
// table.
func NewRegistry() *Registry {
	return &Registry{
		bySourceAndType: map[dispatchKey]Feed{
			{"events", model.ContentTypeJSON}:  FeedEvents,
			{"logs", model.ContentTypeText}:    FeedLogs,
			{"metrics", model.ContentTypeText}: FeedTabular,
			{"kubelet", model.ContentTypeText}: FeedPrometheusText,
		},
		jsonDefault: FeedK8sResource,
	}
}

// Dispatch decodes blob using the registered parser, or a no-op for
// any other text/plain source.
func (r *Registry) Dispatch(logger log.Logger, blob model.RawBlob) []model.ResourceRecord {
	if blob.Empty() {
		return nil
	}
	if feed, ok := r.bySourceAndType[dispatchKey{blob.Source, blob.ContentType}]; ok {
		return feed(logger, blob)
	}
	if blob.ContentType == model.ContentTypeJSON && blob.Source != "events" {
		return r.jsonDefault(logger, blob)
	}
	_ = level.Debug(logger).Log("msg", "no parser for blob, dropping", "source", blob.Source, "contentType", blob.ContentType)
	return nil
}

// DispatchAll decodes every blob and concatenates the resulting
// records, in the order blobs were given. Parsing order never matters
// for correctness (spec.md §5).
func (r *Registry) DispatchAll(logger log.Logger, blobs []model.RawBlob) []model.ResourceRecord {
	var records []model.ResourceRecord
	for _, b := range blobs {
		records = append(records, r.Dispatch(logger, b)...)
	}
	return records
}

// maxJSONBytes is the oversized-document cutoff from spec.md §4.2.
const maxJSONBytes = 5 * 1024 * 1024
