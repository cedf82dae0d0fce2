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

import "strconv"

// Properties is the tagged tree preserving a record's original
// spec/status/metadata/data/type subtrees. Values are whatever
// encoding/json produced: nil, bool, float64, string, []any or
// map[string]any. Accessors give typed "or-default" semantics over a
// dotted path, e.g. "spec.containers.0.image".
type Properties map[string]any

// Get walks a dotted path and returns the raw value and whether every
// segment resolved. Numeric segments index into a slice.
func (p Properties) Get(path string) (any, bool) {
	if p == nil {
		return nil, false
	}
	segments := splitPath(path)
	var cur any = map[string]any(p)
	for _, seg := range segments {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// GetString returns the string at path, or def if absent/wrong type.
func (p Properties) GetString(path, def string) string {
	v, ok := p.Get(path)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// GetFloat returns the float64 at path, or def if absent/wrong type.
func (p Properties) GetFloat(path string, def float64) float64 {
	v, ok := p.Get(path)
	if !ok {
		return def
	}
	f, ok := v.(float64)
	if !ok {
		return def
	}
	return f
}

// GetMap returns the map[string]any at path, or nil if absent/wrong type.
func (p Properties) GetMap(path string) map[string]any {
	v, ok := p.Get(path)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return m
}

// GetSlice returns the []any at path, or nil if absent/wrong type.
func (p Properties) GetSlice(path string) []any {
	v, ok := p.Get(path)
	if !ok {
		return nil
	}
	s, ok := v.([]any)
	if !ok {
		return nil
	}
	return s
}

func splitPath(path string) []string {
	var segments []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			segments = append(segments, path[start:i])
			start = i + 1
		}
	}
	segments = append(segments, path[start:])
	return segments
}
