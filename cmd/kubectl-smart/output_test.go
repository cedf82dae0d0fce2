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

package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kubectl-smart/kubectl-smart/pkg/forecast"
	"github.com/kubectl-smart/kubectl-smart/pkg/graph"
	"github.com/kubectl-smart/kubectl-smart/pkg/model"
	"github.com/kubectl-smart/kubectl-smart/pkg/pipeline"
)

func TestRenderDiagWithRootCause(t *testing.T) {
	var buf bytes.Buffer
	r := &pipeline.DiagnosisResult{
		Subject: model.SubjectContext{Kind: model.KindPod, Name: "web-0", Namespace: "prod"},
		RootCause: &model.Issue{
			Severity: model.SeverityCritical, Score: 90, Reason: "FailedMount", Message: "Unable to attach or mount volumes",
		},
		SuggestedActions: []string{"Check PVC status and binding"},
		ExitCode:         pipeline.ExitIssue,
	}

	code := renderDiag(&buf, r)

	assert.Equal(t, pipeline.ExitIssue, code)
	out := buf.String()
	assert.Contains(t, out, "Pod/web-0")
	assert.Contains(t, out, "FailedMount")
	assert.Contains(t, out, "Check PVC status and binding")
}

func TestRenderDiagNoIssues(t *testing.T) {
	var buf bytes.Buffer
	r := &pipeline.DiagnosisResult{
		Subject:  model.SubjectContext{Kind: model.KindPod, Name: "web-0", Namespace: "prod"},
		ExitCode: pipeline.ExitOK,
	}
	renderDiag(&buf, r)
	assert.Contains(t, buf.String(), "no issues found")
}

func TestRenderDiagError(t *testing.T) {
	var buf bytes.Buffer
	r := &pipeline.DiagnosisResult{Err: errors.New("boom"), ExitCode: pipeline.ExitIssue}
	code := renderDiag(&buf, r)
	assert.Equal(t, pipeline.ExitIssue, code)
	assert.Contains(t, buf.String(), "error: boom")
}

func TestRenderGraph(t *testing.T) {
	var buf bytes.Buffer
	r := &pipeline.GraphResult{
		ASCII:        "web\n└── web-0\n",
		Dependencies: []string{"pod-uid-1"},
		Stats:        graph.Stats{Vertices: 2, Edges: 1, IsDAG: true},
		ExitCode:     pipeline.ExitOK,
	}
	renderGraph(&buf, r)
	out := buf.String()
	assert.Contains(t, out, "web-0")
	assert.Contains(t, out, "1 dependencies, 2 vertices, 1 edges, dag=true")
}

func TestRenderTopNoPredictions(t *testing.T) {
	var buf bytes.Buffer
	r := &pipeline.TopResult{Subject: model.SubjectContext{Namespace: "prod"}, HorizonHours: 24, ExitCode: pipeline.ExitOK}
	renderTop(&buf, r)
	assert.Contains(t, buf.String(), "no actionable capacity predictions")
}

func TestRenderTopWithPredictionsAndCertWarnings(t *testing.T) {
	var buf bytes.Buffer
	r := &pipeline.TopResult{
		Subject:      model.SubjectContext{Namespace: "prod"},
		HorizonHours: 24,
		CapacityPredictions: []*forecast.CapacityPrediction{
			{ResourceKind: model.KindPVC, Name: "data", PredictedUtilization: 93.5, Message: "PVC data already at 93.5% utilization"},
		},
		CertExpiryWarnings: []*forecast.CertExpiryWarning{
			{Namespace: "prod", Name: "web-tls", DaysUntilExpiry: 5},
		},
		ExitCode: pipeline.ExitOK,
	}
	renderTop(&buf, r)
	out := buf.String()
	assert.Contains(t, out, "PersistentVolumeClaim/data: 93.5%")
	assert.Contains(t, out, "expires in 5 days")
}
