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

package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseScoreForReasonFallsBackToDefault(t *testing.T) {
	w := Default()
	assert.Equal(t, 85.0, w.BaseScoreForReason("FailedScheduling"))
	assert.Equal(t, 20.0, w.BaseScoreForReason("SomethingUnknown"))
}

func TestBaseScoreForStatusUnknownIsZero(t *testing.T) {
	w := Default()
	assert.Equal(t, 90.0, w.BaseScoreForStatus("Failed"))
	assert.Equal(t, 0.0, w.BaseScoreForStatus("Running"))
}

func TestIsUnhealthyStatus(t *testing.T) {
	w := Default()
	assert.True(t, w.IsUnhealthyStatus("Pending"))
	assert.False(t, w.IsUnhealthyStatus("Running"))
}

func TestAgeMultiplierBuckets(t *testing.T) {
	w := Default()
	assert.Equal(t, 1.0, w.ageMultiplier(0.5))
	assert.Equal(t, 0.9, w.ageMultiplier(3))
	assert.Equal(t, 0.7, w.ageMultiplier(12))
	assert.Equal(t, 0.5, w.ageMultiplier(100))
	assert.Equal(t, 0.3, w.ageMultiplier(1000))
}

func TestLoadWeightsDefaultsOnEmptyPath(t *testing.T) {
	w := LoadWeights(log.NewNopLogger(), "/tmp", "")
	assert.Equal(t, Default().BaseScores, w.BaseScores)
}

func TestLoadWeightsRejectsEscapingPath(t *testing.T) {
	dir := t.TempDir()
	w := LoadWeights(log.NewNopLogger(), dir, "../../etc/passwd")
	assert.Equal(t, Default().BaseScores, w.BaseScores)
}

func TestLoadWeightsOverridesFromTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weights.toml")
	require.NoError(t, os.WriteFile(path, []byte("[base_scores]\nFailedMount = 99\n"), 0o644))

	w := LoadWeights(log.NewNopLogger(), dir, "weights.toml")
	assert.Equal(t, 99.0, w.BaseScoreForReason("FailedMount"))
}

func TestLoadWeightsDefaultsOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	w := LoadWeights(log.NewNopLogger(), dir, "nonexistent.toml")
	assert.Equal(t, Default().BaseScores, w.BaseScores)
}
