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
	"fmt"
	"io"

	"github.com/kubectl-smart/kubectl-smart/pkg/pipeline"
)

// renderDiag prints a DiagnosisResult in a plain human-readable form
// and returns the exit code to propagate. Rendering is a thin,
// out-of-scope collaborator (spec.md §1, §6); it owns no domain logic.
func renderDiag(w io.Writer, r *pipeline.DiagnosisResult) int {
	if r.Err != nil {
		fmt.Fprintf(w, "error: %v\n", r.Err)
		return r.ExitCode
	}
	fmt.Fprintf(w, "%s/%s", r.Subject.Kind, r.Subject.Name)
	if r.Subject.Namespace != "" {
		fmt.Fprintf(w, " (namespace %s)", r.Subject.Namespace)
	}
	fmt.Fprintln(w)

	if r.RootCause != nil {
		fmt.Fprintf(w, "\nroot cause [%s, score %.0f]: %s\n  %s\n", r.RootCause.Severity, r.RootCause.Score, r.RootCause.Reason, r.RootCause.Message)
	} else {
		fmt.Fprintln(w, "\nno issues found")
	}
	for _, f := range r.ContributingFactors {
		fmt.Fprintf(w, "contributing [%s, score %.0f]: %s — %s\n", f.Severity, f.Score, f.Reason, f.Message)
	}
	if len(r.SuggestedActions) > 0 {
		fmt.Fprintln(w, "\nsuggested actions:")
		for _, a := range r.SuggestedActions {
			fmt.Fprintf(w, "  - %s\n", a)
		}
	}
	for _, msg := range r.RBACGuidance {
		fmt.Fprintf(w, "\n%s\n", msg)
	}
	if len(r.DegradedCollectors) > 0 {
		fmt.Fprintf(w, "\n(degraded collectors: %v, results may be partial)\n", r.DegradedCollectors)
	}
	return r.ExitCode
}

// renderGraph prints a GraphResult's ASCII tree and dependency list.
func renderGraph(w io.Writer, r *pipeline.GraphResult) int {
	if r.Err != nil {
		fmt.Fprintf(w, "error: %v\n", r.Err)
		return r.ExitCode
	}
	fmt.Fprint(w, r.ASCII)
	fmt.Fprintf(w, "\n%d dependencies, %d vertices, %d edges, dag=%v\n",
		len(r.Dependencies), r.Stats.Vertices, r.Stats.Edges, r.Stats.IsDAG)
	return r.ExitCode
}

// renderTop prints a TopResult's capacity predictions and certificate
// warnings.
func renderTop(w io.Writer, r *pipeline.TopResult) int {
	fmt.Fprintf(w, "capacity forecast for namespace %s, horizon %dh\n", r.Subject.Namespace, r.HorizonHours)
	if len(r.CapacityPredictions) == 0 {
		fmt.Fprintln(w, "  no actionable capacity predictions")
	}
	for _, p := range r.CapacityPredictions {
		fmt.Fprintf(w, "  %s/%s: %.1f%% predicted — %s\n", p.ResourceKind, p.Name, p.PredictedUtilization, p.Message)
	}
	for _, c := range r.CertExpiryWarnings {
		fmt.Fprintf(w, "  secret %s/%s: certificate expires in %d days\n", c.Namespace, c.Name, c.DaysUntilExpiry)
	}
	for _, ref := range r.CertReferenceWarnings {
		fmt.Fprintf(w, "  ingress %s/%s references TLS secret %s for hosts %v\n", ref.Namespace, ref.Name, ref.SecretName, ref.Hosts)
	}
	if len(r.DegradedCollectors) > 0 {
		fmt.Fprintf(w, "\n(degraded collectors: %v, results may be partial)\n", r.DegradedCollectors)
	}
	return r.ExitCode
}
