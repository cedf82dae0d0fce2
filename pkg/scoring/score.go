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
	"strings"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

// pureScore implements score(issue) from spec.md §4.4: base, keyword
// bonuses (once per group), critical-path multiplier, age-bucket
// multiplier, clamp. It consults no wall-clock time; "now" reaches
// this function only via the caller-computed ageHours.
func pureScore(w *Weights, base float64, message string, criticalPath, hasAge bool, ageHours float64) float64 {
	s := base
	lower := strings.ToLower(message)
	for _, group := range w.Keywords {
		for _, pattern := range group.Patterns {
			if strings.Contains(lower, strings.ToLower(pattern)) {
				s += group.Bonus
				break
			}
		}
	}
	if criticalPath {
		s *= w.Multipliers.CriticalPath
	}
	if hasAge {
		s *= w.ageMultiplier(ageHours)
	}
	return model.ClampScore(s)
}

// scoreEvent scores an event attributed to a resource of kind
// targetKind: the pure score, then resource-type and event-type
// multipliers (spec.md §4.4).
func scoreEvent(w *Weights, base float64, message string, criticalPath, hasAge bool, ageHours float64, targetKind model.ResourceKind, eventType string) float64 {
	s := pureScore(w, base, message, criticalPath, hasAge, ageHours)
	s *= w.resourceTypeMultiplier(string(targetKind))
	s *= w.eventTypeMultiplier(eventType)
	return model.ClampScore(s)
}

// scoreStatus scores a synthesized status issue: the pure score only,
// with no resource-type or event-type multiplier (those apply to
// event-derived issues alone).
func scoreStatus(w *Weights, base float64, criticalPath, hasAge bool, ageHours float64) float64 {
	return pureScore(w, base, "", criticalPath, hasAge, ageHours)
}
