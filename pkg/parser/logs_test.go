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
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

func TestFeedLogsNoMatchesYieldsNoRecords(t *testing.T) {
	blob := model.RawBlob{Data: "starting up\nlistening on :8080\nready", Source: "logs", ContentType: model.ContentTypeText}
	out := FeedLogs(log.NewNopLogger(), blob)
	assert.Nil(t, out)
}

func TestFeedLogsFiltersNoiseMarkers(t *testing.T) {
	blob := model.RawBlob{
		Data: strings.Join([]string{
			"DEPRECATED: error flag will be removed",
			"WARNING: fail-open mode enabled",
			"panic: runtime error: nil pointer",
		}, "\n"),
		Source:      "logs",
		ContentType: model.ContentTypeText,
	}
	out := FeedLogs(log.NewNopLogger(), blob)
	assert.Len(t, out, 1)
	errs := out[0].Properties["errors"].([]string)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "panic")
}

func TestFeedLogsDedupesIdenticalLines(t *testing.T) {
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, "error: connection to \"db-1\" failed on attempt 7")
	}
	lines = append(lines, "fatal: disk full")
	blob := model.RawBlob{Data: strings.Join(lines, "\n"), Source: "logs", ContentType: model.ContentTypeText}

	out := FeedLogs(log.NewNopLogger(), blob)
	assert.Len(t, out, 1)
	errs := out[0].Properties["errors"].([]string)
	assert.Len(t, errs, 2)
	assert.Equal(t, 11, out[0].Properties["error_count"])
	assert.Equal(t, "Analyzed", out[0].Status)
}

func TestNormalizeLogLineFoldsTimestampPrefix(t *testing.T) {
	// A 19-char "YYYY-MM-DD HH:MM:SS" timestamp followed by the space
	// that separates it from the message puts a space at index 19,
	// the exact condition base.py's LogParser.feed() checks for.
	a := normalizeLogLine(`2026-07-31 00:00:00 error: pod crashed`)
	b := normalizeLogLine(`2026-08-01 00:00:00 error: pod crashed`)
	assert.Equal(t, a, b)
	assert.Equal(t, "error: pod crashed", a)
}

func TestNormalizeLogLineWithoutTimestampPrefixIsUnchanged(t *testing.T) {
	line := `error: pod "web-1" crashed after 3 retries`
	assert.Equal(t, line, normalizeLogLine(line))
}
