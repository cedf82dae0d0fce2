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

package pipeline

import (
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"

	"github.com/kubectl-smart/kubectl-smart/pkg/graph"
)

func TestEngineGraphReuse(t *testing.T) {
	e := NewEngine(log.NewNopLogger(), nil, nil, nil)

	_, reused := e.reuseGraph()
	assert.False(t, reused)

	g := graph.Build(nil)
	e.rememberGraph(g)

	got, reused := e.reuseGraph()
	assert.True(t, reused)
	assert.Same(t, g, got)
}

func TestNewEngineDefaultsOuterDeadline(t *testing.T) {
	e := NewEngine(log.NewNopLogger(), nil, nil, nil)
	assert.Equal(t, DefaultOuterDeadline, e.OuterDeadline)
	assert.NotNil(t, e.Collectors)
	assert.NotNil(t, e.Parsers)
}
