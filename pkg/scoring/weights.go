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

// Package scoring turns records, events and a graph into ranked
// issues using a weighted, pure scoring function (spec.md §4.4).
package scoring

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// KeywordGroup is one bonus-scoring keyword family.
type KeywordGroup struct {
	Patterns []string `toml:"patterns"`
	Bonus    float64  `toml:"bonus"`
}

// AgeBucket assigns Multiplier to any age strictly below UpperHours.
// Buckets must be supplied in ascending UpperHours order; the final
// bucket should carry a +Inf upper bound to catch every remaining age.
type AgeBucket struct {
	UpperHours float64 `toml:"upper_hours"`
	Multiplier float64 `toml:"multiplier"`
}

// Multipliers holds every non-base-score multiplier in the model.
type Multipliers struct {
	ResourceType map[string]float64 `toml:"resource_type"`
	EventType    map[string]float64 `toml:"event_type"`
	CriticalPath float64            `toml:"critical_path"`
	AgeHours     []AgeBucket        `toml:"age_hours"`
}

// Weights is the full tunable scoring model, loadable from TOML with
// embedded defaults (spec.md §4.4).
type Weights struct {
	BaseScores  map[string]float64      `toml:"base_scores"`
	Multipliers Multipliers             `toml:"multipliers"`
	Keywords    map[string]KeywordGroup `toml:"keywords"`
}

// unhealthyStatusFloor is the minimum status base score that still
// synthesizes a status issue (spec.md §4.4 issue assembly).
const unhealthyStatusFloor = 30.0

// Default returns the embedded default weights table from spec.md §4.4.
func Default() *Weights {
	return &Weights{
		BaseScores: map[string]float64{
			"Failed":             50,
			"FailedMount":        80,
			"FailedScheduling":   85,
			"ImagePullBackOff":   75,
			"ErrImagePull":       75,
			"Unhealthy":          70,
			"NetworkNotReady":    60,
			"BackOff":            30,
			"Killing":            40,
			"Preempting":         45,
			"status_Failed":      90,
			"status_NotReady":    80,
			"status_Unavailable": 75,
			"status_Unknown":     70,
			"status_Pending":     40,
		},
		Multipliers: Multipliers{
			ResourceType: map[string]float64{
				"Node":                  2.0,
				"PersistentVolume":      1.8,
				"PersistentVolumeClaim": 1.6,
				"StatefulSet":           1.5,
				"Deployment":            1.4,
				"DaemonSet":             1.4,
				"Service":               1.3,
				"Pod":                   1.2,
				"Secret":                1.2,
				"ConfigMap":             1.1,
			},
			EventType:    map[string]float64{"Warning": 2.0, "Normal": 1.0},
			CriticalPath: 1.5,
			AgeHours: []AgeBucket{
				{UpperHours: 1, Multiplier: 1.0},
				{UpperHours: 6, Multiplier: 0.9},
				{UpperHours: 24, Multiplier: 0.7},
				{UpperHours: 168, Multiplier: 0.5},
				{UpperHours: math.Inf(1), Multiplier: 0.3},
			},
		},
		Keywords: map[string]KeywordGroup{
			"critical":          {Patterns: []string{"crash", "oom", "out of memory", "panic", "fatal"}, Bonus: 15},
			"warning":           {Patterns: []string{"timeout", "retry", "degraded", "unreachable"}, Bonus: 8},
			"resource_specific": {Patterns: []string{"insufficient", "quota", "exceeded", "throttl"}, Bonus: 12},
		},
	}
}

// BaseScoreForReason returns base_scores[reason], or 20 for any reason
// not in the table.
func (w *Weights) BaseScoreForReason(reason string) float64 {
	if v, ok := w.BaseScores[reason]; ok {
		return v
	}
	return 20
}

// BaseScoreForStatus returns base_scores["status_"+status], or 0 for
// any status not in the table (healthy statuses score 0).
func (w *Weights) BaseScoreForStatus(status string) float64 {
	return w.BaseScores["status_"+status]
}

// IsUnhealthyStatus reports whether status's base score meets the
// floor that synthesizes a status issue.
func (w *Weights) IsUnhealthyStatus(status string) bool {
	return w.BaseScoreForStatus(status) >= unhealthyStatusFloor
}

func (w *Weights) ageMultiplier(ageHours float64) float64 {
	for _, b := range w.Multipliers.AgeHours {
		if ageHours < b.UpperHours {
			return b.Multiplier
		}
	}
	return 1.0
}

func (w *Weights) resourceTypeMultiplier(kind string) float64 {
	if v, ok := w.Multipliers.ResourceType[kind]; ok {
		return v
	}
	return 1.0
}

func (w *Weights) eventTypeMultiplier(eventType string) float64 {
	if v, ok := w.Multipliers.EventType[eventType]; ok {
		return v
	}
	return 1.0
}

// LoadWeights resolves path against baseDir (the engine's package
// directory) and decodes a TOML weights table. Any path escaping
// baseDir, any missing file, or any decode error falls back to
// Default with a single log line (spec.md §4.4, §7).
func LoadWeights(logger log.Logger, baseDir, path string) *Weights {
	if path == "" {
		return Default()
	}
	confined, err := confine(baseDir, path)
	if err != nil {
		_ = level.Warn(logger).Log("msg", "weights path rejected, using defaults", "path", path, "err", err)
		return Default()
	}

	data, err := os.ReadFile(confined)
	if err != nil {
		_ = level.Warn(logger).Log("msg", "weights file unreadable, using defaults", "path", confined, "err", err)
		return Default()
	}

	var loaded Weights
	if _, err := toml.Decode(string(data), &loaded); err != nil {
		_ = level.Warn(logger).Log("msg", "weights file malformed, using defaults", "path", confined, "err", err)
		return Default()
	}
	return mergeOntoDefaults(&loaded)
}

// mergeOntoDefaults layers any keys loaded decoded onto the embedded
// defaults, so a weights file overriding a single reason or multiplier
// never silently drops the rest of the table.
func mergeOntoDefaults(loaded *Weights) *Weights {
	w := Default()
	for k, v := range loaded.BaseScores {
		w.BaseScores[k] = v
	}
	for k, v := range loaded.Multipliers.ResourceType {
		w.Multipliers.ResourceType[k] = v
	}
	for k, v := range loaded.Multipliers.EventType {
		w.Multipliers.EventType[k] = v
	}
	if loaded.Multipliers.CriticalPath != 0 {
		w.Multipliers.CriticalPath = loaded.Multipliers.CriticalPath
	}
	if len(loaded.Multipliers.AgeHours) > 0 {
		w.Multipliers.AgeHours = loaded.Multipliers.AgeHours
	}
	for k, v := range loaded.Keywords {
		w.Keywords[k] = v
	}
	return w
}

// confine resolves path relative to baseDir and rejects any result
// that escapes baseDir, implementing the "weights outside the package
// directory are never loaded" invariant (spec.md §4.4, §8).
func confine(baseDir, path string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(baseDir, path)
	}
	cleanBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", errors.Wrap(err, "resolving base directory")
	}
	cleanAbs, err := filepath.Abs(abs)
	if err != nil {
		return "", errors.Wrap(err, "resolving weights path")
	}
	rel, err := filepath.Rel(cleanBase, cleanAbs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("path %q escapes base directory %q", path, baseDir)
	}
	return cleanAbs, nil
}
