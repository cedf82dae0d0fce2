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

package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCPUHandlesMillicoresAndWholeCores(t *testing.T) {
	assert.InDelta(t, 0.25, ParseCPU("250m"), 1e-9)
	assert.InDelta(t, 2.0, ParseCPU("2"), 1e-9)
}

func TestParseMemoryHandlesBinarySuffixes(t *testing.T) {
	assert.InDelta(t, 1024*1024*1024, ParseMemory("1Gi"), 1)
	assert.InDelta(t, 512*1024*1024, ParseMemory("512Mi"), 1)
}

func TestParseStorageHandlesSISuffixes(t *testing.T) {
	assert.InDelta(t, 100000, ParseStorage("100k"), 1)
}

func TestParseQuantityDegradesToZeroOnGarbage(t *testing.T) {
	assert.Equal(t, 0.0, ParseQuantity("not-a-quantity"))
	assert.Equal(t, 0.0, ParseQuantity(""))
}
