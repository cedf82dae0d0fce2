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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullName(t *testing.T) {
	cases := []struct {
		name string
		r    ResourceRecord
		want string
	}{
		{"namespaced", ResourceRecord{Kind: KindPod, Namespace: "default", Name: "web-1"}, "Pod/default/web-1"},
		{"cluster-scoped", ResourceRecord{Kind: KindNode, Name: "node-a"}, "Node/node-a"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.r.FullName())
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, ResourceRecord{UID: "u1", Name: "x"}.Valid())
	assert.False(t, ResourceRecord{Name: "x"}.Valid())
	assert.False(t, ResourceRecord{UID: "u1"}.Valid())
}

func TestNormalizeStatusPod(t *testing.T) {
	props := Properties{"status": map[string]any{"phase": "Running"}}
	require.Equal(t, "Running", NormalizeStatus(KindPod, props))
}

func TestNormalizeStatusNode(t *testing.T) {
	ready := Properties{"status": map[string]any{"conditions": []any{
		map[string]any{"type": "Ready", "status": "True"},
	}}}
	assert.Equal(t, "Ready", NormalizeStatus(KindNode, ready))

	notReady := Properties{"status": map[string]any{"conditions": []any{
		map[string]any{"type": "Ready", "status": "False"},
	}}}
	assert.Equal(t, "NotReady", NormalizeStatus(KindNode, notReady))
}

func TestNormalizeStatusDeployment(t *testing.T) {
	avail := Properties{"status": map[string]any{"conditions": []any{
		map[string]any{"type": "Available", "status": "True"},
	}}}
	assert.Equal(t, "Available", NormalizeStatus(KindDeployment, avail))

	unknown := Properties{"status": map[string]any{}}
	assert.Equal(t, "Unknown", NormalizeStatus(KindDeployment, unknown))
}

func TestLabelsContainSelector(t *testing.T) {
	r := ResourceRecord{Labels: map[string]string{"app": "web", "tier": "frontend"}}
	assert.True(t, r.LabelsContainSelector(map[string]string{"app": "web"}))
	assert.False(t, r.LabelsContainSelector(map[string]string{"app": "api"}))
	assert.False(t, r.LabelsContainSelector(nil))
}

func TestIconBucket(t *testing.T) {
	assert.Equal(t, "green", IconBucket("Running"))
	assert.Equal(t, "red", IconBucket("Failed"))
	assert.Equal(t, "yellow", IconBucket("Pending"))
	assert.Equal(t, "white", IconBucket("Terminating"))
}
