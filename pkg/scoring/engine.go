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

package scoring

import (
	"fmt"
	"sort"
	"time"

	"github.com/kubectl-smart/kubectl-smart/pkg/graph"
	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

// contributingFactorCount is the number of secondary issues kept
// alongside the root cause (spec.md §4.4).
const contributingFactorCount = 2

// Assemble converts records, the events subset therein, and a built
// graph into an ordered, deterministic issue list (spec.md §4.4). now
// is an explicit parameter so scoring never consults wall-clock time
// directly.
func Assemble(w *Weights, records []model.ResourceRecord, g *graph.Graph, now time.Time) []model.Issue {
	nameIndex := make(map[string]string, len(records))
	for i := range records {
		r := &records[i]
		if r.Kind == model.KindEvent || !r.Valid() {
			continue
		}
		nameIndex[indexKey(r.Namespace, r.Kind, r.Name)] = r.UID
	}

	var issues []model.Issue
	var primaryPodUID string

	for i := range records {
		r := &records[i]
		switch r.Kind {
		case model.KindEvent:
			if issue, ok := eventIssue(w, r, g, nameIndex, now); ok {
				issues = append(issues, issue)
			}
		case model.KindLogAnalysis:
			// handled after the loop, once the primary subject is known
		default:
			if r.Kind == model.KindPod && primaryPodUID == "" && r.Valid() {
				primaryPodUID = r.UID
			}
			if issue, ok := statusIssue(w, r, g, now); ok {
				issues = append(issues, issue)
			}
		}
	}

	if primaryPodUID != "" {
		for i := range records {
			r := &records[i]
			if r.Kind != model.KindLogAnalysis {
				continue
			}
			issues = append(issues, logIssue(r, primaryPodUID, now))
		}
	}

	sortIssues(issues)
	return issues
}

func indexKey(namespace string, kind model.ResourceKind, name string) string {
	return fmt.Sprintf("%s/%s/%s", namespace, kind, name)
}

func eventIssue(w *Weights, event *model.ResourceRecord, g *graph.Graph, nameIndex map[string]string, now time.Time) (model.Issue, bool) {
	uid := targetUID(event, nameIndex)
	if uid == "" {
		return model.Issue{}, false
	}
	target, ok := g.Vertex(uid)
	if !ok {
		return model.Issue{}, false
	}

	reason := event.Properties.GetString("reason", "")
	message := event.Properties.GetString("message", "")
	base := w.BaseScoreForReason(reason)
	ts := eventTimestamp(event)
	hasAge, ageHours := ageOf(ts, now)
	criticalPath := anyUpstreamUnhealthy(g, uid)
	eventType := event.Properties.GetString("type", "Normal")

	score := scoreEvent(w, base, message, criticalPath, hasAge, ageHours, target.Kind, eventType)

	return model.Issue{
		ResourceUID:      uid,
		Title:            reason,
		Description:      message,
		Reason:           reason,
		Message:          message,
		Severity:         model.SeverityForScore(score),
		Score:            score,
		CriticalPath:     criticalPath,
		Timestamp:        ts,
		SuggestedActions: nil,
	}, true
}

func statusIssue(w *Weights, r *model.ResourceRecord, g *graph.Graph, now time.Time) (model.Issue, bool) {
	if !r.Valid() || !w.IsUnhealthyStatus(r.Status) {
		return model.Issue{}, false
	}
	base := w.BaseScoreForStatus(r.Status)
	criticalPath := len(g.Dependencies(r.UID, graph.Downstream)) > 2
	hasAge, ageHours := ageOf(r.CreationTimestamp, now)
	score := scoreStatus(w, base, criticalPath, hasAge, ageHours)
	reason := "Status" + r.Status
	message := fmt.Sprintf("%s is %s", r.FullName(), r.Status)

	return model.Issue{
		ResourceUID:  r.UID,
		Title:        reason,
		Description:  message,
		Reason:       reason,
		Message:      message,
		Severity:     model.SeverityForScore(score),
		Score:        score,
		CriticalPath: criticalPath,
		Timestamp:    r.CreationTimestamp,
	}, true
}

// logIssue attaches a fixed-score LogFailure issue to the primary
// subject: base score 85, severity Warning, per spec.md §4.4.
func logIssue(r *model.ResourceRecord, primaryUID string, now time.Time) model.Issue {
	errCount := 0
	if v, ok := r.Properties["error_count"].(int); ok {
		errCount = v
	}
	message := fmt.Sprintf("%d error-pattern log lines detected", errCount)
	return model.Issue{
		ResourceUID: primaryUID,
		Title:       "LogFailure",
		Description: message,
		Reason:      "LogFailure",
		Message:     message,
		Severity:    model.SeverityWarning,
		Score:       85,
		Timestamp:   now,
	}
}

// targetUID resolves an event's subject by involvedObject.uid first,
// falling back to (name, kind, namespace) (spec.md §4.4).
func targetUID(event *model.ResourceRecord, nameIndex map[string]string) string {
	if uid := event.Properties.GetString("involvedObject.uid", ""); uid != "" {
		return uid
	}
	name := event.Properties.GetString("involvedObject.name", "")
	kind := event.Properties.GetString("involvedObject.kind", "")
	namespace := event.Properties.GetString("involvedObject.namespace", "")
	if name == "" || kind == "" {
		return ""
	}
	return nameIndex[indexKey(namespace, model.ResourceKind(kind), name)]
}

func eventTimestamp(event *model.ResourceRecord) time.Time {
	if s := event.Properties.GetString("lastTimestamp", ""); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return event.CreationTimestamp
}

func ageOf(ts, now time.Time) (bool, float64) {
	if ts.IsZero() {
		return false, 0
	}
	return true, now.Sub(ts).Hours()
}

// anyUpstreamUnhealthy implements the event critical-path rule: any
// upstream neighbor of uid has a status in {Failed, NotReady,
// Unavailable} (spec.md §4.4).
func anyUpstreamUnhealthy(g *graph.Graph, uid string) bool {
	for _, neighborUID := range g.Dependencies(uid, graph.Upstream) {
		n, ok := g.Vertex(neighborUID)
		if !ok {
			continue
		}
		switch n.Status {
		case "Failed", "NotReady", "Unavailable":
			return true
		}
	}
	return false
}

var severityRank = map[model.Severity]int{
	model.SeverityCritical: 3,
	model.SeverityWarning:  2,
	model.SeverityInfo:     1,
}

// sortIssues orders by (severity desc, score desc), tie-broken by
// (resourceUid, reason) ascending, for byte-stable output across runs
// with identical inputs (spec.md §4.4, §8).
func sortIssues(issues []model.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if severityRank[a.Severity] != severityRank[b.Severity] {
			return severityRank[a.Severity] > severityRank[b.Severity]
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.ResourceUID != b.ResourceUID {
			return a.ResourceUID < b.ResourceUID
		}
		return a.Reason < b.Reason
	})
}

// SelectRootCause prefers a critical issue on the critical path, then
// the top-scoring critical issue, then the top-scoring issue overall
// (spec.md §4.4). issues must already be sorted by sortIssues.
func SelectRootCause(issues []model.Issue) *model.Issue {
	if len(issues) == 0 {
		return nil
	}
	for i := range issues {
		if issues[i].Severity == model.SeverityCritical && issues[i].CriticalPath {
			return &issues[i]
		}
	}
	for i := range issues {
		if issues[i].Severity == model.SeverityCritical {
			return &issues[i]
		}
	}
	return &issues[0]
}

// ContributingFactors returns up to two remaining issues with score
// >= 50, excluding any sharing root's (resourceUid, reason) (spec.md
// §4.4). issues must already be sorted by sortIssues.
func ContributingFactors(issues []model.Issue, root *model.Issue) []model.Issue {
	var out []model.Issue
	for i := range issues {
		if len(out) >= contributingFactorCount {
			break
		}
		if issues[i].Score < 50 {
			continue
		}
		if root != nil && issues[i].ResourceUID == root.ResourceUID && issues[i].Reason == root.Reason {
			continue
		}
		out = append(out, issues[i])
	}
	return out
}
