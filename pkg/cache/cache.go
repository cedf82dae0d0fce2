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

// Package cache persists PVC utilization history across invocations
// so the forecaster can compute a trend instead of a single point
// (spec.md §4.5, §6).
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// maxSamplesPerKey caps each series length (spec.md §6, §8).
const maxSamplesPerKey = 50

// Sample is one (timestamp, utilization-percent) observation.
type Sample struct {
	Timestamp time.Time `json:"ts"`
	Util      float64   `json:"util"`
}

// document is the on-disk shape: {"pvc": {"<ns>/<pvc>": [...]}}.
type document struct {
	PVC map[string][]Sample `json:"pvc"`
}

// Key builds the "<namespace>/<name>" series key spec.md §6 specifies.
func Key(namespace, name string) string {
	return namespace + "/" + name
}

// Store is a file-backed, atomically-written sample cache. One Store
// guards one path; concurrent invocations may race on the file itself
// (spec.md §5 accepts this — "file always parses as a valid document
// containing <= 50 samples per key").
type Store struct {
	path string
	mu   sync.Mutex
}

// DefaultPath returns "<user-cache>/kubectl-smart/metrics.json".
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "kubectl-smart", "metrics.json"), nil
}

// Open returns a Store writing to path. It performs no I/O itself.
func Open(path string) *Store {
	return &Store{path: path}
}

// Load reads the whole document, tolerating a missing or malformed
// file by returning an empty map (spec.md §7's soft-failure policy).
func (s *Store) Load() (map[string][]Sample, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string][]Sample{}, nil
	}
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return map[string][]Sample{}, nil
	}
	if doc.PVC == nil {
		doc.PVC = map[string][]Sample{}
	}
	return doc.PVC, nil
}

// History returns the series for key, oldest first, or nil if absent.
func (s *Store) History(key string) ([]Sample, error) {
	all, err := s.Load()
	if err != nil {
		return nil, err
	}
	return all[key], nil
}

// Append adds sample to key's series, trims to the last
// maxSamplesPerKey entries, and atomically rewrites the file.
func (s *Store) Append(key string, sample Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.Load()
	if err != nil {
		all = map[string][]Sample{}
	}
	series := append(all[key], sample)
	if len(series) > maxSamplesPerKey {
		series = series[len(series)-maxSamplesPerKey:]
	}
	all[key] = series
	return s.write(all)
}

// write serializes all to JSON and atomically replaces the cache file
// via write-temp-then-rename (spec.md §5, §6).
func (s *Store) write(all map[string][]Sample) error {
	data, err := json.MarshalIndent(document{PVC: all}, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".metrics-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, s.path)
}
