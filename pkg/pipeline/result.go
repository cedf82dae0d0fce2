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

// Package pipeline composes collectors, parsers, the graph, scoring
// and the forecaster into the three command orchestrators (spec.md
// §4.6): diag, graph and top. Each orchestrator accepts a
// SubjectContext and a command, and returns a typed Result plus an
// exit code; the CLI surface that renders these is an out-of-scope
// collaborator (spec.md §1).
package pipeline

import (
	"time"

	"github.com/kubectl-smart/kubectl-smart/pkg/forecast"
	"github.com/kubectl-smart/kubectl-smart/pkg/graph"
	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

// Exit codes per spec.md §6.
const (
	ExitOK    = 0
	ExitIssue = 2
)

// DiagnosisResult is diag's typed return value.
type DiagnosisResult struct {
	Subject             model.SubjectContext
	Target              *model.ResourceRecord
	Issues              []model.Issue
	RootCause           *model.Issue
	ContributingFactors []model.Issue
	SuggestedActions    []string
	DegradedCollectors  []string
	RBACGuidance        []string
	AnalysisDuration    time.Duration
	ExitCode            int
	Err                 error
}

// GraphResult is graph's typed return value.
type GraphResult struct {
	Subject      model.SubjectContext
	Direction    graph.Direction
	Root         *model.ResourceRecord
	ASCII        string
	Dependencies []string
	Stats        graph.Stats
	ExitCode     int
	Err          error
}

// TopResult is top's typed return value.
type TopResult struct {
	Subject               model.SubjectContext
	HorizonHours          int
	CapacityPredictions   []*forecast.CapacityPrediction
	CertExpiryWarnings    []*forecast.CertExpiryWarning
	CertReferenceWarnings []forecast.CertReferenceWarning
	DegradedCollectors    []string
	AnalysisDuration      time.Duration
	ExitCode              int
}

// degradedCollectorNames scans blobs for the error_taxonomy metadata
// tag emptyBlobWithError attaches on a collector failure (spec.md §7),
// returning the deduplicated collector names that degraded during this
// command, in the order their blobs appear (not sorted).
func degradedCollectorNames(blobs []model.RawBlob) []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range blobs {
		if b.Metadata == nil {
			continue
		}
		if _, ok := b.Metadata["error_taxonomy"]; !ok {
			continue
		}
		if seen[b.Source] {
			continue
		}
		seen[b.Source] = true
		out = append(out, b.Source)
	}
	return out
}

// rbacGuidance builds the "missing verb/resource" guidance lines
// spec.md §7 requires for RBAC denials, one per degraded collector
// whose failure tagged a verb/resource pair.
func rbacGuidance(blobs []model.RawBlob) []string {
	var out []string
	seen := make(map[string]bool)
	for _, b := range blobs {
		if b.Metadata == nil || b.Metadata["error_taxonomy"] != "RBACFail" {
			continue
		}
		verb, resource := b.Metadata["error_verb"], b.Metadata["error_resource"]
		var msg string
		if verb != "" && resource != "" {
			msg = "missing RBAC permission: cannot " + verb + " resource \"" + resource + "\" — run `kubectl auth can-i " + verb + " " + resource + "`"
		} else {
			msg = "RBAC denial collecting " + b.Source + " — run `kubectl auth can-i` to check your permissions"
		}
		if seen[msg] {
			continue
		}
		seen[msg] = true
		out = append(out, msg)
	}
	return out
}
