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

package graph

import (
	"fmt"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

// Build constructs a graph from records in two passes: first every
// valid record becomes a vertex, then each record's kind-specific edge
// rules run against the now-complete vertex set (spec.md §4.3). Edge
// insertion is namespace-aware; cross-namespace relationships are
// never inferred, except for the cluster-scoped Node and PV targets.
func Build(records []model.ResourceRecord) *Graph {
	g := New()
	nameIndex := make(map[string]string, len(records))

	for i := range records {
		r := &records[i]
		if !r.Valid() {
			continue
		}
		g.AddVertex(r)
		nameIndex[indexKey(r.Namespace, r.Kind, r.Name)] = r.UID
	}

	for i := range records {
		r := &records[i]
		if !r.Valid() {
			continue
		}
		addOwnerEdges(g, r)
		switch r.Kind {
		case model.KindPod:
			addPodEdges(g, r, nameIndex)
		case model.KindStatefulSet:
			addStatefulSetEdges(g, r, nameIndex)
		case model.KindService:
			addServiceEdges(g, r)
		case model.KindPVC:
			addPVCEdges(g, r, nameIndex)
		}
	}
	return g
}

func indexKey(namespace string, kind model.ResourceKind, name string) string {
	return fmt.Sprintf("%s/%s/%s", namespace, kind, name)
}

// addOwnerEdges covers Deployment->ReplicaSet, ReplicaSet->Pod and
// DaemonSet->Pod "owns" edges uniformly: any record naming an owner
// uid that is itself a vertex gets an owns edge from that owner.
func addOwnerEdges(g *Graph, r *model.ResourceRecord) {
	for _, raw := range r.Properties.GetSlice("metadata.ownerReferences") {
		owner, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		ownerUID, _ := owner["uid"].(string)
		if ownerUID == "" {
			continue
		}
		g.AddEdge(ownerUID, r.UID, EdgeOwns)
	}
}

func addPodEdges(g *Graph, r *model.ResourceRecord, nameIndex map[string]string) {
	if nodeName := r.Properties.GetString("spec.nodeName", ""); nodeName != "" {
		if uid, ok := nameIndex[indexKey("", model.KindNode, nodeName)]; ok {
			g.AddEdge(r.UID, uid, EdgeScheduledOn)
		}
	}

	for _, raw := range r.Properties.GetSlice("spec.volumes") {
		vol, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if pvc, ok := vol["persistentVolumeClaim"].(map[string]any); ok {
			if claim, _ := pvc["claimName"].(string); claim != "" {
				if uid, ok := nameIndex[indexKey(r.Namespace, model.KindPVC, claim)]; ok {
					g.AddEdge(r.UID, uid, EdgeMounts)
				}
			}
		}
		if cm, ok := vol["configMap"].(map[string]any); ok {
			if name, _ := cm["name"].(string); name != "" {
				if uid, ok := nameIndex[indexKey(r.Namespace, model.KindConfigMap, name)]; ok {
					g.AddEdge(r.UID, uid, EdgeMounts)
				}
			}
		}
		if sec, ok := vol["secret"].(map[string]any); ok {
			if name, _ := sec["secretName"].(string); name != "" {
				if uid, ok := nameIndex[indexKey(r.Namespace, model.KindSecret, name)]; ok {
					g.AddEdge(r.UID, uid, EdgeMounts)
				}
			}
		}
	}

	saName := r.Properties.GetString("spec.serviceAccountName", "default")
	if uid, ok := nameIndex[indexKey(r.Namespace, model.KindServiceAccount, saName)]; ok {
		g.AddEdge(r.UID, uid, EdgeUses)
	}
}

func addStatefulSetEdges(g *Graph, r *model.ResourceRecord, nameIndex map[string]string) {
	replicas := int(r.Properties.GetFloat("spec.replicas", 0))
	for i := 0; i < replicas; i++ {
		podName := fmt.Sprintf("%s-%d", r.Name, i)
		if uid, ok := nameIndex[indexKey(r.Namespace, model.KindPod, podName)]; ok {
			g.AddEdge(r.UID, uid, EdgeOwns)
		}
	}
}

func addServiceEdges(g *Graph, r *model.ResourceRecord) {
	selector := stringMap(r.Properties.GetMap("spec.selector"))
	if len(selector) == 0 {
		return
	}
	for _, v := range g.Vertices() {
		if v.Kind != model.KindPod || v.Namespace != r.Namespace {
			continue
		}
		if v.LabelsContainSelector(selector) {
			g.AddEdge(r.UID, v.UID, EdgeSelects)
		}
	}
}

func addPVCEdges(g *Graph, r *model.ResourceRecord, nameIndex map[string]string) {
	volumeName := r.Properties.GetString("status.volumeName", "")
	if volumeName == "" {
		return
	}
	if uid, ok := nameIndex[indexKey("", model.KindPV, volumeName)]; ok {
		g.AddEdge(r.UID, uid, EdgeBindsTo)
	}
}

func stringMap(m map[string]any) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
