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

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

var (
	errorMarkers = []string{"error", "exception", "panic", "fatal", "fail", "crash"}
	noiseMarkers = []string{"deprecated", "warning"}
)

const maxUniqueLogLines = 5

// FeedLogs scans log text for error-shaped lines, deduplicates near-
// identical ones, and emits a single LogAnalysis record summarizing the
// most recent unique matches (spec.md §4.2).
func FeedLogs(logger log.Logger, blob model.RawBlob) []model.ResourceRecord {
	lines := strings.Split(blob.Data, "\n")

	var matches []string
	for _, line := range lines {
		if isErrorLine(line) {
			matches = append(matches, strings.TrimSpace(line))
		}
	}
	if len(matches) == 0 {
		return nil
	}

	unique := dedupeRecentFirst(matches, maxUniqueLogLines)

	props := model.Properties{
		"errors":      unique,
		"log_count":   len(lines),
		"error_count": len(matches),
	}
	return []model.ResourceRecord{{
		Kind:       model.KindLogAnalysis,
		Name:       blob.Source,
		UID:        "loganalysis/" + blob.Source,
		Status:     "Analyzed",
		Properties: props,
	}}
}

func isErrorLine(line string) bool {
	lower := strings.ToLower(line)
	for _, noise := range noiseMarkers {
		if strings.Contains(lower, noise) {
			return false
		}
	}
	for _, marker := range errorMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// dedupeRecentFirst walks matches from most recent to oldest, folding
// lines that normalize to the same shape into one entry, and returns
// up to limit uniques in most-recent-first order.
func dedupeRecentFirst(matches []string, limit int) []string {
	seen := make(map[string]bool)
	var out []string
	for i := len(matches) - 1; i >= 0 && len(out) < limit; i-- {
		key := normalizeLogLine(matches[i])
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, matches[i])
	}
	return out
}

// normalizeLogLine mirrors original_source/kubectl_smart/parsers/
// base.py's LogParser.feed(): a line whose 20th character looks like
// the tail of an ISO-ish timestamp prefix ('T' or ' ') is folded to
// its suffix after that prefix for the dedup key; every other line is
// used as-is.
func normalizeLogLine(line string) string {
	if len(line) > 20 && (line[19] == 'T' || line[19] == ' ') {
		return strings.TrimSpace(line[20:])
	}
	return line
}
