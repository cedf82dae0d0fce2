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

// Package collector invokes the external kubectl binary as a data
// source (spec.md §4.1). Every collector is stateless except its
// configured resource type and timeout, and every failure is soft: a
// collector always returns a RawBlob, never an error that aborts the
// command.
package collector

import (
	"fmt"
	"regexp"
)

// Taxonomy is the closed set of terminal failure classifications a
// collector produces (spec.md §4.1).
type Taxonomy string

const (
	TaxonomyTimeout Taxonomy = "TimeoutFail"
	TaxonomyRBAC    Taxonomy = "RBACFail"
	TaxonomyKubectl Taxonomy = "KubectlFail"
	TaxonomyDecode  Taxonomy = "DecodeFail"
)

// CollectError records why a collector invocation failed. It is always
// recovered locally by the collector (which returns an empty blob
// alongside it for logging) and never propagated as a command failure.
type CollectError struct {
	Taxonomy Taxonomy
	Source   string
	Verb     string
	Resource string
	Stderr   string
	Err      error
}

func (e *CollectError) Error() string {
	if e.Verb != "" || e.Resource != "" {
		return fmt.Sprintf("collector %s: %s (verb=%q resource=%q): %s", e.Source, e.Taxonomy, e.Verb, e.Resource, e.Stderr)
	}
	return fmt.Sprintf("collector %s: %s: %s", e.Source, e.Taxonomy, e.Stderr)
}

func (e *CollectError) Unwrap() error { return e.Err }

// transientPattern matches stderr text indicating a transient fault
// worth retrying, per spec.md §4.1.
var transientPattern = regexp.MustCompile(`(?i)timeout|temporarily unavailable|connection refused`)

// rbacPattern matches stderr text indicating an RBAC denial.
var rbacPattern = regexp.MustCompile(`(?i)forbidden|unauthorized|access denied|rbac|permission denied`)

// IsTransient reports whether stderr text indicates a fault worth
// retrying with backoff.
func IsTransient(stderr string) bool {
	return transientPattern.MatchString(stderr)
}

// IsRBACDenial reports whether stderr text indicates an RBAC denial.
func IsRBACDenial(stderr string) bool {
	return rbacPattern.MatchString(stderr)
}

// rbacVerbResource extracts the missing verb and resource from a
// kubectl RBAC denial message of the shape:
//
//	pods is forbidden: User "x" cannot list resource "pods" in API group ...
//
// spec.md's "User-visible behavior" section requires an RBAC denial to
// be "shown with the missing verb/resource and guidance (auth can-i)";
// no file under original_source/ performs this extraction (its RBAC
// handling, collectors/base.py, only does a substring-membership check
// with no capture groups), so the pattern itself is grounded directly
// in that spec.md requirement rather than in a ported original.
var rbacVerbResourcePattern = regexp.MustCompile(`(?i)cannot (\w+) resource "([^"]+)"`)

func rbacVerbResource(stderr string) (verb, resource string) {
	m := rbacVerbResourcePattern.FindStringSubmatch(stderr)
	if m == nil {
		return "", ""
	}
	return m[1], m[2]
}
