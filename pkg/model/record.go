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

import (
	"fmt"
	"time"
)

// ResourceRecord is the uniform view of a Kubernetes object (or a
// synthetic pseudo-object, e.g. a log analysis) after parsing. Records
// are immutable once constructed; nothing downstream may mutate the
// maps in place.
type ResourceRecord struct {
	Kind              ResourceKind
	Name              string
	UID               string
	Namespace         string // empty for cluster-scoped kinds
	Status            string // normalized per-kind status, see NormalizeStatus
	CreationTimestamp time.Time
	Labels            map[string]string
	Annotations       map[string]string
	Properties        Properties
}

// FullName derives the "Kind/Namespace/Name" identifier, omitting the
// namespace segment for cluster-scoped resources.
func (r ResourceRecord) FullName() string {
	if r.Namespace == "" {
		return fmt.Sprintf("%s/%s", r.Kind, r.Name)
	}
	return fmt.Sprintf("%s/%s/%s", r.Kind, r.Namespace, r.Name)
}

// Valid reports whether the record has the minimum fields required to
// participate in the graph and scoring: a non-empty UID and Name.
func (r ResourceRecord) Valid() bool {
	return r.UID != "" && r.Name != ""
}

// LabelsContainSelector reports whether r's labels are a superset of
// selector, used by the Service -> Pod "selects" edge rule. An empty
// selector matches nothing, mirroring Kubernetes' own semantics for
// services without a selector.
func (r ResourceRecord) LabelsContainSelector(selector map[string]string) bool {
	if len(selector) == 0 {
		return false
	}
	for k, v := range selector {
		if r.Labels[k] != v {
			return false
		}
	}
	return true
}

// NormalizeStatus derives the per-kind normalized status string from a
// decoded status/phase properties subtree, per spec.md §3.
func NormalizeStatus(kind ResourceKind, props Properties) string {
	switch kind {
	case KindPod:
		return props.GetString("status.phase", "Unknown")
	case KindNode:
		if conditionTrue(props, "Ready") {
			return "Ready"
		}
		return "NotReady"
	case KindDeployment, KindStatefulSet, KindDaemonSet:
		switch conditionStatus(props, "Available") {
		case "True":
			return "Available"
		case "False":
			return "Unavailable"
		default:
			return "Unknown"
		}
	case KindPVC, KindPV:
		return props.GetString("status.phase", "Unknown")
	case KindService:
		return "Active"
	case KindJob:
		if conditionTrue(props, "Complete") {
			return "Complete"
		}
		if conditionTrue(props, "Failed") {
			return "Failed"
		}
		return "Running"
	default:
		return "Active"
	}
}

// conditionStatus returns the "status" field (True/False/Unknown) of
// the named condition in status.conditions, or "" if not present.
func conditionStatus(props Properties, conditionType string) string {
	conditions := props.GetSlice("status.conditions")
	for _, c := range conditions {
		cm, ok := c.(map[string]any)
		if !ok {
			continue
		}
		if cm["type"] == conditionType {
			if s, ok := cm["status"].(string); ok {
				return s
			}
		}
	}
	return ""
}

func conditionTrue(props Properties, conditionType string) bool {
	return conditionStatus(props, conditionType) == "True"
}

// UnhealthyStatuses is the set of normalized statuses scoring treats as
// unhealthy, used to gate synthetic status issues (spec.md §4.4).
var UnhealthyStatuses = map[string]bool{
	"Failed": true, "NotReady": true, "Unavailable": true,
	"Unknown": true, "Pending": true,
}

// IconBucket maps normalized statuses to the ASCII-tree icon
// bucket used by graph.ToASCII (spec.md §4.3).
func IconBucket(status string) string {
	switch status {
	case "Running", "Ready", "Bound", "Available", "Complete", "Active":
		return "green"
	case "Failed", "NotReady", "Unavailable", "Unknown":
		return "red"
	case "Pending":
		return "yellow"
	default:
		return "white"
	}
}
