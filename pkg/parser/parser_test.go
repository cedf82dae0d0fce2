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

package parser

import (
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

func TestDispatchEmptyBlobYieldsNoRecords(t *testing.T) {
	r := NewRegistry()
	out := r.Dispatch(log.NewNopLogger(), model.RawBlob{Source: "get", ContentType: model.ContentTypeJSON})
	assert.Nil(t, out)
}

func TestDispatchUnroutedTextSourceIsDropped(t *testing.T) {
	r := NewRegistry()
	out := r.Dispatch(log.NewNopLogger(), model.RawBlob{Data: "hello", Source: "describe", ContentType: model.ContentTypeText})
	assert.Nil(t, out)
}

func TestDispatchRoutesJSONDefault(t *testing.T) {
	r := NewRegistry()
	blob := model.RawBlob{
		Data:        `{"kind":"Pod","metadata":{"name":"a","uid":"u1"},"status":{"phase":"Running"}}`,
		Source:      "get",
		ContentType: model.ContentTypeJSON,
	}
	out := r.Dispatch(log.NewNopLogger(), blob)
	assert.Len(t, out, 1)
	assert.Equal(t, model.KindPod, out[0].Kind)
}

func TestDispatchAllConcatenates(t *testing.T) {
	r := NewRegistry()
	blobs := []model.RawBlob{
		{Data: `{"kind":"Pod","metadata":{"name":"a","uid":"u1"}}`, Source: "get", ContentType: model.ContentTypeJSON},
		{Data: `{"kind":"Node","metadata":{"name":"n1","uid":"u2"}}`, Source: "get", ContentType: model.ContentTypeJSON},
	}
	out := r.DispatchAll(log.NewNopLogger(), blobs)
	assert.Len(t, out, 2)
}
