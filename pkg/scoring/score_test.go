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
	"testing"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestPureScoreIsDeterministic(t *testing.T) {
	w := Default()
	a := pureScore(w, 50, "panic: boom", true, true, 2)
	b := pureScore(w, 50, "panic: boom", true, true, 2)
	assert.Equal(t, a, b)
}

func TestPureScoreAppliesKeywordBonusOnce(t *testing.T) {
	w := Default()
	withoutKeyword := pureScore(w, 50, "plain message", false, false, 0)
	withKeyword := pureScore(w, 50, "panic and also fatal here", false, false, 0)
	assert.Equal(t, withoutKeyword+15, withKeyword)
}

func TestPureScoreClampsAt100(t *testing.T) {
	w := Default()
	s := pureScore(w, 95, "panic", true, false, 0)
	assert.Equal(t, 100.0, s)
}

func TestPureScoreClampsAt0(t *testing.T) {
	w := Default()
	s := pureScore(w, -10, "", false, false, 0)
	assert.Equal(t, 0.0, s)
}

func TestPureScoreSkipsAgeMultiplierWhenAbsent(t *testing.T) {
	w := Default()
	s := pureScore(w, 50, "", false, false, 10000)
	assert.Equal(t, 50.0, s)
}

func TestScoreEventAppliesResourceAndEventTypeMultipliers(t *testing.T) {
	w := Default()
	s := scoreEvent(w, 90, "", false, false, 0, model.KindPod, "Warning")
	assert.Equal(t, 100.0, s) // 90 * 1.2 (Pod) * 2.0 (Warning) clamped to 100
}

func TestScoreStatusHasNoResourceMultiplier(t *testing.T) {
	w := Default()
	s := scoreStatus(w, 90, false, false, 0)
	assert.Equal(t, 90.0, s)
}
