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

import "time"

// ContentType is the closed set of payload encodings a RawBlob carries.
type ContentType string

const (
	ContentTypeJSON ContentType = "application/json"
	ContentTypeText ContentType = "text/plain"
)

// RawBlob is the opaque transport unit between a collector and the
// parser registry. Collectors never mutate a context to produce one;
// parsers never mutate a blob while decoding it.
type RawBlob struct {
	Data        string
	Source      string
	ContentType ContentType
	Timestamp   time.Time
	Metadata    map[string]string
}

// Empty reports whether the blob carries no payload, the shape a
// collector returns on a soft failure (spec.md §4.1).
func (b RawBlob) Empty() bool {
	return b.Data == ""
}
