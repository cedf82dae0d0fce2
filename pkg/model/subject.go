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
	"regexp"
	"time"
)

// Scope is the breadth a SubjectContext operates over.
type Scope string

const (
	ScopeResource  Scope = "resource"
	ScopeNamespace Scope = "namespace"
	ScopeCluster   Scope = "cluster"
)

// SubjectContext is the target of a command: a specific resource, a
// namespace, or a cluster scope.
type SubjectContext struct {
	Kind      ResourceKind
	Name      string
	Namespace string
	Context   string
	Scope     Scope
	Depth     int
	Timeout   time.Duration
}

// Validation constraints from spec.md §6.
const (
	MaxNameLength      = 253
	MaxNamespaceLength = 63
	MaxContextLength   = 253
	MinDepth           = 1
	MaxDepth           = 10
	MinHorizonHours    = 1
	MaxHorizonHours    = 720
)

// dnsLabel matches an RFC 1123 DNS label: lowercase alphanumerics and
// hyphens, starting and ending with an alphanumeric character.
var dnsLabel = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// contextName matches the looser charset allowed for cluster
// context names: alphanumeric plus ".-_".
var contextName = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidationError is a caller-input error surfaced with exit code 2.
type ValidationError struct {
	Field string
	Value string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: field %q value %q: %s", e.Field, e.Value, e.Msg)
}

// Validate checks the subject against the constraints in spec.md §6.
func (s SubjectContext) Validate() error {
	if s.Name != "" {
		if len(s.Name) > MaxNameLength {
			return &ValidationError{"name", s.Name, "exceeds 253 characters"}
		}
		if !dnsLabel.MatchString(s.Name) {
			return &ValidationError{"name", s.Name, "must be an RFC 1123 DNS label"}
		}
	}
	if s.Namespace != "" {
		if len(s.Namespace) > MaxNamespaceLength {
			return &ValidationError{"namespace", s.Namespace, "exceeds 63 characters"}
		}
		if !dnsLabel.MatchString(s.Namespace) {
			return &ValidationError{"namespace", s.Namespace, "must be an RFC 1123 DNS label"}
		}
	}
	if s.Context != "" {
		if len(s.Context) > MaxContextLength {
			return &ValidationError{"context", s.Context, "exceeds 253 characters"}
		}
		if !contextName.MatchString(s.Context) {
			return &ValidationError{"context", s.Context, "must be alphanumeric plus '.-_'"}
		}
	}
	if s.Depth != 0 && (s.Depth < MinDepth || s.Depth > MaxDepth) {
		return &ValidationError{"depth", fmt.Sprintf("%d", s.Depth), "must be in [1, 10]"}
	}
	return nil
}

// ValidateHorizon validates the top command's forecasting horizon.
func ValidateHorizon(hours int) error {
	if hours < MinHorizonHours || hours > MaxHorizonHours {
		return &ValidationError{"horizon", fmt.Sprintf("%d", hours), "must be in [1, 720]"}
	}
	return nil
}
