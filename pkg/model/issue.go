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

package model

import "time"

// Severity is derived from an Issue's score; never set independently.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityWarning  Severity = "Warning"
	SeverityInfo     Severity = "Info"
)

// SeverityForScore implements the thresholds in spec.md §3: >=90
// Critical, >=50 Warning, else Info.
func SeverityForScore(score float64) Severity {
	switch {
	case score >= 90:
		return SeverityCritical
	case score >= 50:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// Issue is a scored observation about a resource, derived from an
// event, a status, or a log pattern.
type Issue struct {
	ResourceUID      string
	Title            string
	Description      string
	Reason           string
	Message          string
	Severity         Severity
	Score            float64
	CriticalPath     bool
	Timestamp        time.Time
	SuggestedActions []string
	Metadata         map[string]string
}

// EquivalenceKey returns the (resourceUid, reason, message) tuple used
// to decide whether two issues are equivalent for change detection.
func (i Issue) EquivalenceKey() [3]string {
	return [3]string{i.ResourceUID, i.Reason, i.Message}
}

// ClampScore clamps a raw score into the valid [0, 100] range.
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
