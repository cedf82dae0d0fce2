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

package parser

import (
	"encoding/json"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

// preservedSubtrees are the top-level fields the resource parser
// preserves verbatim into a record's Properties bag, per spec.md §3.
var preservedSubtrees = []string{"spec", "status", "metadata", "data", "type"}

// FeedK8sResource decodes a single Kubernetes object or a List (with
// an "items" array) into records, per spec.md §4.2.
func FeedK8sResource(logger log.Logger, blob model.RawBlob) []model.ResourceRecord {
	if len(blob.Data) > maxJSONBytes {
		_ = level.Warn(logger).Log("msg", "oversized JSON document rejected", "source", blob.Source, "bytes", len(blob.Data))
		return nil
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(blob.Data), &doc); err != nil {
		_ = level.Warn(logger).Log("msg", "malformed JSON document, dropping", "source", blob.Source, "err", err)
		return nil
	}

	var items []map[string]any
	if rawItems, ok := doc["items"].([]any); ok {
		for _, it := range rawItems {
			if m, ok := it.(map[string]any); ok {
				items = append(items, m)
			}
		}
	} else {
		items = []map[string]any{doc}
	}

	var records []model.ResourceRecord
	for _, item := range items {
		if r, ok := decodeResourceItem(item); ok {
			records = append(records, r)
		}
	}
	return records
}

func decodeResourceItem(item map[string]any) (model.ResourceRecord, bool) {
	kindStr, _ := item["kind"].(string)
	if kindStr == "" || !model.IsKnownKind(kindStr) {
		return model.ResourceRecord{}, false
	}
	kind := model.ResourceKind(kindStr)

	metadata, _ := item["metadata"].(map[string]any)
	if metadata == nil {
		return model.ResourceRecord{}, false
	}
	name, _ := metadata["name"].(string)
	uid, _ := metadata["uid"].(string)
	if name == "" || uid == "" {
		return model.ResourceRecord{}, false
	}
	namespace, _ := metadata["namespace"].(string)

	props := model.Properties{}
	for _, key := range preservedSubtrees {
		if v, ok := item[key]; ok {
			props[key] = v
		}
	}

	r := model.ResourceRecord{
		Kind:              kind,
		Name:              name,
		UID:               uid,
		Namespace:         namespace,
		CreationTimestamp: parseTimestamp(metadata["creationTimestamp"]),
		Labels:            toStringMap(metadata["labels"]),
		Annotations:       toStringMap(metadata["annotations"]),
		Properties:        props,
	}
	r.Status = model.NormalizeStatus(kind, props)
	return r, true
}

func toStringMap(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, raw := range m {
		if s, ok := raw.(string); ok {
			out[k] = s
		}
	}
	return out
}

func parseTimestamp(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
