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

package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyJoinsNamespaceAndName(t *testing.T) {
	assert.Equal(t, "prod/data", Key("prod", "data"))
}

func TestLoadOnMissingFileReturnsEmptyMap(t *testing.T) {
	dir := t.TempDir()
	store := Open(filepath.Join(dir, "metrics.json"))
	all, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAppendThenHistoryRoundTrips(t *testing.T) {
	dir := t.TempDir()
	store := Open(filepath.Join(dir, "metrics.json"))
	now := time.Now().Truncate(time.Second)

	require.NoError(t, store.Append("prod/data", Sample{Timestamp: now, Util: 70}))
	require.NoError(t, store.Append("prod/data", Sample{Timestamp: now.Add(time.Hour), Util: 85}))

	history, err := store.History("prod/data")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 70.0, history[0].Util)
	assert.Equal(t, 85.0, history[1].Util)
}

// "Appending the same PVC sample twice to the cache yields two entries
// in order; cache never exceeds 50 per key." (spec.md §8)
func TestAppendSameSampleTwiceYieldsTwoEntries(t *testing.T) {
	dir := t.TempDir()
	store := Open(filepath.Join(dir, "metrics.json"))
	sample := Sample{Timestamp: time.Now().Truncate(time.Second), Util: 42}

	require.NoError(t, store.Append("prod/data", sample))
	require.NoError(t, store.Append("prod/data", sample))

	history, err := store.History("prod/data")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, history[0], history[1])
}

func TestAppendTrimsToFiftySamples(t *testing.T) {
	dir := t.TempDir()
	store := Open(filepath.Join(dir, "metrics.json"))
	base := time.Now().Truncate(time.Second)

	for i := 0; i < 60; i++ {
		require.NoError(t, store.Append("prod/data", Sample{Timestamp: base.Add(time.Duration(i) * time.Hour), Util: float64(i)}))
	}

	history, err := store.History("prod/data")
	require.NoError(t, err)
	require.Len(t, history, 50)
	assert.Equal(t, 10.0, history[0].Util)  // oldest 10 samples trimmed
	assert.Equal(t, 59.0, history[49].Util) // most recent retained
}

func TestHistoryIsolatedPerKey(t *testing.T) {
	dir := t.TempDir()
	store := Open(filepath.Join(dir, "metrics.json"))
	require.NoError(t, store.Append("prod/data", Sample{Util: 10}))
	require.NoError(t, store.Append("staging/data", Sample{Util: 20}))

	prodHistory, err := store.History("prod/data")
	require.NoError(t, err)
	require.Len(t, prodHistory, 1)
	assert.Equal(t, 10.0, prodHistory[0].Util)

	stagingHistory, err := store.History("staging/data")
	require.NoError(t, err)
	require.Len(t, stagingHistory, 1)
	assert.Equal(t, 20.0, stagingHistory[0].Util)
}

func TestLoadToleratesMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metrics.json")
	require.NoError(t, writeRaw(path, "not json"))

	store := Open(path)
	all, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func writeRaw(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
