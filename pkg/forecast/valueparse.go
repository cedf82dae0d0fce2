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

// Package forecast predicts node/PVC capacity exhaustion and
// certificate expiry from the records a command collects (spec.md
// §4.5).
package forecast

import (
	"strings"

	"k8s.io/apimachinery/pkg/api/resource"
)

// ParseQuantity parses a Kubernetes quantity string — CPU cores
// ("2", "250m"), memory/storage with SI or binary suffixes
// ("512Mi", "1Gi", "100k") — into its float64 base-unit value (cores
// for CPU, bytes for memory/storage). Unparseable values degrade to
// zero rather than erroring, per spec.md §4.5's "value parsing"
// clause; k8s.io/apimachinery/pkg/api/resource already implements the
// exact suffix table required, so no hand-rolled suffix math is needed
// here.
func ParseQuantity(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return 0
	}
	return q.AsApproximateFloat64()
}

// ParseCPU is an alias for ParseQuantity documenting intent at call
// sites that read CPU columns.
func ParseCPU(s string) float64 { return ParseQuantity(s) }

// ParseMemory is an alias for ParseQuantity documenting intent at call
// sites that read memory columns.
func ParseMemory(s string) float64 { return ParseQuantity(s) }

// ParseStorage is an alias for ParseQuantity documenting intent at
// call sites that read storage quantities (PVC requests, capacity).
func ParseStorage(s string) float64 { return ParseQuantity(s) }
