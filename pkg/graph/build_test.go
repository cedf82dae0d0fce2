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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

func TestBuildPodScheduledOnNode(t *testing.T) {
	records := []model.ResourceRecord{
		{Kind: model.KindNode, UID: "node-uid", Name: "node-1"},
		{Kind: model.KindPod, UID: "pod-uid", Name: "web-1", Namespace: "default",
			Properties: model.Properties{"spec": map[string]any{"nodeName": "node-1"}}},
	}
	g := Build(records)
	assert.ElementsMatch(t, []string{"node-uid"}, g.Dependencies("pod-uid", Downstream))
}

func TestBuildPodMountsPVCConfigMapSecret(t *testing.T) {
	records := []model.ResourceRecord{
		{Kind: model.KindPVC, UID: "pvc-uid", Name: "data", Namespace: "default"},
		{Kind: model.KindConfigMap, UID: "cm-uid", Name: "app-config", Namespace: "default"},
		{Kind: model.KindSecret, UID: "sec-uid", Name: "app-secret", Namespace: "default"},
		{Kind: model.KindPod, UID: "pod-uid", Name: "web-1", Namespace: "default", Properties: model.Properties{
			"spec": map[string]any{
				"volumes": []any{
					map[string]any{"persistentVolumeClaim": map[string]any{"claimName": "data"}},
					map[string]any{"configMap": map[string]any{"name": "app-config"}},
					map[string]any{"secret": map[string]any{"secretName": "app-secret"}},
				},
			},
		}},
	}
	g := Build(records)
	assert.ElementsMatch(t, []string{"pvc-uid", "cm-uid", "sec-uid"}, g.Dependencies("pod-uid", Downstream))
}

func TestBuildPodUsesServiceAccountDefault(t *testing.T) {
	records := []model.ResourceRecord{
		{Kind: model.KindServiceAccount, UID: "sa-uid", Name: "default", Namespace: "default"},
		{Kind: model.KindPod, UID: "pod-uid", Name: "web-1", Namespace: "default"},
	}
	g := Build(records)
	assert.ElementsMatch(t, []string{"sa-uid"}, g.Dependencies("pod-uid", Downstream))
}

func TestBuildOwnerReferenceChain(t *testing.T) {
	records := []model.ResourceRecord{
		{Kind: model.KindDeployment, UID: "dep-uid", Name: "web", Namespace: "default"},
		{Kind: model.KindReplicaSet, UID: "rs-uid", Name: "web-abc", Namespace: "default", Properties: model.Properties{
			"metadata": map[string]any{"ownerReferences": []any{map[string]any{"uid": "dep-uid"}}},
		}},
		{Kind: model.KindPod, UID: "pod-uid", Name: "web-abc-xyz", Namespace: "default", Properties: model.Properties{
			"metadata": map[string]any{"ownerReferences": []any{map[string]any{"uid": "rs-uid"}}},
		}},
	}
	g := Build(records)
	assert.ElementsMatch(t, []string{"rs-uid"}, g.Dependencies("dep-uid", Downstream))
	assert.ElementsMatch(t, []string{"pod-uid"}, g.Dependencies("rs-uid", Downstream))
}

func TestBuildStatefulSetSynthesizesPodNames(t *testing.T) {
	records := []model.ResourceRecord{
		{Kind: model.KindStatefulSet, UID: "sts-uid", Name: "db", Namespace: "default",
			Properties: model.Properties{"spec": map[string]any{"replicas": float64(2)}}},
		{Kind: model.KindPod, UID: "pod-0", Name: "db-0", Namespace: "default"},
		{Kind: model.KindPod, UID: "pod-1", Name: "db-1", Namespace: "default"},
	}
	g := Build(records)
	assert.ElementsMatch(t, []string{"pod-0", "pod-1"}, g.Dependencies("sts-uid", Downstream))
}

func TestBuildServiceSelectsPods(t *testing.T) {
	records := []model.ResourceRecord{
		{Kind: model.KindService, UID: "svc-uid", Name: "web", Namespace: "default",
			Properties: model.Properties{"spec": map[string]any{"selector": map[string]any{"app": "web"}}}},
		{Kind: model.KindPod, UID: "pod-1", Name: "web-1", Namespace: "default", Labels: map[string]string{"app": "web"}},
		{Kind: model.KindPod, UID: "pod-2", Name: "other-1", Namespace: "default", Labels: map[string]string{"app": "other"}},
	}
	g := Build(records)
	assert.ElementsMatch(t, []string{"pod-1"}, g.Dependencies("svc-uid", Downstream))
}

func TestBuildPVCBindsToPV(t *testing.T) {
	records := []model.ResourceRecord{
		{Kind: model.KindPV, UID: "pv-uid", Name: "pv-001"},
		{Kind: model.KindPVC, UID: "pvc-uid", Name: "data", Namespace: "default",
			Properties: model.Properties{"status": map[string]any{"volumeName": "pv-001"}}},
	}
	g := Build(records)
	assert.ElementsMatch(t, []string{"pv-uid"}, g.Dependencies("pvc-uid", Downstream))
}

func TestBuildCrossNamespaceNotInferred(t *testing.T) {
	records := []model.ResourceRecord{
		{Kind: model.KindPVC, UID: "pvc-uid", Name: "data", Namespace: "other"},
		{Kind: model.KindPod, UID: "pod-uid", Name: "web-1", Namespace: "default", Properties: model.Properties{
			"spec": map[string]any{"volumes": []any{
				map[string]any{"persistentVolumeClaim": map[string]any{"claimName": "data"}},
			}},
		}},
	}
	g := Build(records)
	assert.Empty(t, g.Dependencies("pod-uid", Downstream))
}

func TestBuildInvalidRecordsSkipped(t *testing.T) {
	records := []model.ResourceRecord{
		{Kind: model.KindPod, Name: "no-uid"},
	}
	g := Build(records)
	assert.Equal(t, 0, g.VertexCount())
}
