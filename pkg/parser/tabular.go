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
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

// FeedTabular decodes `kubectl top nodes`/`kubectl top pods` output.
// The node table carries CPU%/MEMORY% columns that the pod table
// lacks, which is how the two shapes are told apart (spec.md §4.2).
func FeedTabular(logger log.Logger, blob model.RawBlob) []model.ResourceRecord {
	lines := nonEmptyLines(blob.Data)
	if len(lines) < 2 {
		return nil
	}

	header := strings.Fields(lines[0])
	isNodeTable := containsField(header, "CPU%")

	var records []model.ResourceRecord
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < len(header) {
			_ = level.Debug(logger).Log("msg", "short metrics row, skipping", "fields", len(fields))
			continue
		}
		name := fields[0]
		row := make(map[string]string, len(header))
		for i, col := range header {
			row[col] = fields[i]
		}

		kind := model.KindPod
		if isNodeTable {
			kind = model.KindNode
		}
		records = append(records, model.ResourceRecord{
			Kind:   kind,
			Name:   name,
			UID:    "metrics/" + string(kind) + "/" + name,
			Status: "Active",
			Properties: model.Properties{
				"metrics": row,
			},
		})
	}
	return records
}

func nonEmptyLines(data string) []string {
	var out []string
	for _, l := range strings.Split(data, "\n") {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

func containsField(fields []string, target string) bool {
	for _, f := range fields {
		if f == target {
			return true
		}
	}
	return false
}
