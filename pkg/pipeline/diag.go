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

	"github.com/go-kit/log/level"

	"github.com/kubectl-smart/kubectl-smart/pkg/collector"
	"github.com/kubectl-smart/kubectl-smart/pkg/graph"
	"github.com/kubectl-smart/kubectl-smart/pkg/model"
	"github.com/kubectl-smart/kubectl-smart/pkg/scoring"
)

// issueSeverityFloor is the minimum score that makes diag's exit code
// non-zero (spec.md §6: "0 (no issues >= 50), 2 (any warning or
// critical)").
const issueSeverityFloor = 50.0

// Diag runs the diag command (spec.md §4.6): collect {get, describe,
// events, logs} in parallel, parse, build the graph, locate the
// target, score its issues, and select a root cause plus contributing
// factors.
func (e *Engine) Diag(ctx context.Context, subject model.SubjectContext, now time.Time) *DiagnosisResult {
	start := time.Now()
	if err := subject.Validate(); err != nil {
		return &DiagnosisResult{Subject: subject, ExitCode: ExitIssue, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, e.OuterDeadline)
	defer cancel()

	names := collector.CommandCollectors()["diag"]
	blobs := runCollectors(ctx, e.Logger, e.Collectors, e.Metrics, requestsFor(names, subject))
	degraded := degradedCollectorNames(blobs)
	guidance := rbacGuidance(blobs)

	records := e.Parsers.DispatchAll(e.Logger, blobs)
	g := graph.Build(records)
	e.rememberGraph(g)

	target := findTarget(records, subject)
	result := &DiagnosisResult{
		Subject:            subject,
		Target:             target,
		DegradedCollectors: degraded,
		RBACGuidance:       guidance,
	}
	if target == nil {
		result.ExitCode = ExitIssue
		result.Err = notFoundError(subject)
		result.AnalysisDuration = time.Since(start)
		e.Metrics.observeCommandDuration("diag", result.AnalysisDuration.Seconds())
		return result
	}

	all := scoring.Assemble(e.Weights, records, g, now)
	var targeted []model.Issue
	for _, issue := range all {
		if issue.ResourceUID == target.UID {
			targeted = append(targeted, issue)
		}
	}

	root := scoring.SelectRootCause(targeted)
	factors := scoring.ContributingFactors(targeted, root)

	result.Issues = targeted
	result.RootCause = root
	result.ContributingFactors = factors
	if root != nil {
		result.SuggestedActions = suggestedActionsFor(root.Reason, root.Message)
	}

	result.ExitCode = ExitOK
	for _, issue := range targeted {
		if issue.Score >= issueSeverityFloor {
			result.ExitCode = ExitIssue
			break
		}
	}
	result.AnalysisDuration = time.Since(start)
	e.Metrics.observeCommandDuration("diag", result.AnalysisDuration.Seconds())
	_ = level.Debug(e.Logger).Log("msg", "diag complete", "subject", subject.Name, "issues", len(targeted), "exit", result.ExitCode)
	return result
}

// findTarget locates the record matching subject's (kind, name,
// namespace) (spec.md §4.6 step 4).
func findTarget(records []model.ResourceRecord, subject model.SubjectContext) *model.ResourceRecord {
	for i := range records {
		r := &records[i]
		if r.Kind == subject.Kind && r.Name == subject.Name && r.Namespace == subject.Namespace {
			return r
		}
	}
	return nil
}

// notFoundError is the explicit not-found error spec.md §7 requires.
type notFound struct {
	subject model.SubjectContext
}

func (e *notFound) Error() string {
	return "resource not found: " + string(e.subject.Kind) + "/" + e.subject.Name
}

func notFoundError(subject model.SubjectContext) error {
	return &notFound{subject: subject}
}
