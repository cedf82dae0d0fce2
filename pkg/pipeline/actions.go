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

import "strings"

// MaxSuggestedActions caps the number of actions attached to a single
// issue (spec.md §4.6).
const MaxSuggestedActions = 5

// actionRule pattern-matches an issue's reason/message against a fixed
// decision table and contributes its actions when it matches. Carried
// from original_source/kubectl_smart/remediation.py's decision table
// (SPEC_FULL.md §C.3), reworked as a Go decision table rather than the
// original's if/elif chain.
type actionRule struct {
	reasons  []string // exact Reason match, case-sensitive (event reason vocabulary is stable, spec.md §6)
	keywords []string // lowercase substring match against message, used when reasons is empty or doesn't match
	actions  []string
}

var actionRules = []actionRule{
	{
		reasons: []string{"FailedMount"},
		actions: []string{"Check PVC status and binding", "Verify storage class provisioner"},
	},
	{
		reasons: []string{"FailedScheduling"},
		actions: []string{"Check node capacity and availability", "Check pod resource requests vs available capacity", "Review taints and tolerations"},
	},
	{
		reasons: []string{"ImagePullBackOff", "ErrImagePull"},
		actions: []string{"Verify image name and tag", "Check image pull secrets"},
	},
	{
		reasons: []string{"CrashLoopBackOff", "BackOff"},
		actions: []string{"Inspect previous container logs", "Check container exit code and command"},
	},
	{
		reasons: []string{"Unhealthy"},
		actions: []string{"Inspect liveness/readiness probe timing", "Check probe endpoint availability"},
	},
	{
		reasons: []string{"NetworkNotReady"},
		actions: []string{"Check CoreDNS pods and service", "Verify cluster DNS configuration"},
	},
	{
		keywords: []string{"network policy", "networkpolicy"},
		actions:  []string{"Review NetworkPolicy rules for this namespace"},
	},
	{
		keywords: []string{"forbidden", "unauthorized", "rbac", "permission denied"},
		actions:  []string{"Check RBAC: run `kubectl auth can-i`"},
	},
}

// suggestedActionsFor returns the decision-table actions for reason
// and message, deduplicated and capped at MaxSuggestedActions.
func suggestedActionsFor(reason, message string) []string {
	lowerMessage := strings.ToLower(message)
	var out []string
	seen := make(map[string]bool)
	add := func(actions []string) {
		for _, a := range actions {
			if seen[a] || len(out) >= MaxSuggestedActions {
				continue
			}
			seen[a] = true
			out = append(out, a)
		}
	}

	for _, rule := range actionRules {
		matched := false
		for _, r := range rule.reasons {
			if r == reason {
				matched = true
				break
			}
		}
		if !matched && len(rule.keywords) > 0 {
			for _, kw := range rule.keywords {
				if strings.Contains(lowerMessage, kw) {
					matched = true
					break
				}
			}
		}
		if matched {
			add(rule.actions)
		}
		if len(out) >= MaxSuggestedActions {
			break
		}
	}
	return out
}
