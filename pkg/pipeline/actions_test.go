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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestedActionsForReasonMatch(t *testing.T) {
	actions := suggestedActionsFor("FailedMount", "Unable to attach or mount volumes")
	assert.Contains(t, actions, "Check PVC status and binding")
}

func TestSuggestedActionsForKeywordFallback(t *testing.T) {
	actions := suggestedActionsFor("", "pods is forbidden: User cannot list resource")
	assert.Contains(t, actions, "Check RBAC: run `kubectl auth can-i`")
}

func TestSuggestedActionsForNoMatch(t *testing.T) {
	assert.Empty(t, suggestedActionsFor("SomeUnknownReason", "nothing matches here"))
}

func TestSuggestedActionsForCapsAtMax(t *testing.T) {
	actions := suggestedActionsFor("FailedScheduling", "0/3 nodes are available: insufficient cpu, network policy blocks traffic, rbac forbidden")
	assert.LessOrEqual(t, len(actions), MaxSuggestedActions)
}

func TestSuggestedActionsForDedupesAcrossRules(t *testing.T) {
	actions := suggestedActionsFor("FailedScheduling", "insufficient cpu")
	seen := make(map[string]bool)
	for _, a := range actions {
		assert.False(t, seen[a], "action %q returned twice", a)
		seen[a] = true
	}
}
