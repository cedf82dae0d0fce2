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
	"encoding/json"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

// FeedEvents decodes an Events list into KindEvent records, preserving
// reason/message/type/count/involvedObject/source/timestamps so the
// scoring engine can attribute each event to the resource it concerns
// (spec.md §4.2).
func FeedEvents(logger log.Logger, blob model.RawBlob) []model.ResourceRecord {
	if len(blob.Data) > maxJSONBytes {
		_ = level.Warn(logger).Log("msg", "oversized events document rejected", "bytes", len(blob.Data))
		return nil
	}

	var list struct {
		Items []eventItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(blob.Data), &list); err != nil {
		_ = level.Warn(logger).Log("msg", "malformed events document, dropping", "err", err)
		return nil
	}

	var records []model.ResourceRecord
	for _, it := range list.Items {
		if it.Metadata.UID == "" || it.Metadata.Name == "" {
			continue
		}
		props := model.Properties{
			"reason":  it.Reason,
			"message": it.Message,
			"type":    it.Type,
			"count":   it.Count,
			"involvedObject": map[string]any{
				"kind":      it.InvolvedObject.Kind,
				"name":      it.InvolvedObject.Name,
				"namespace": it.InvolvedObject.Namespace,
				"uid":       it.InvolvedObject.UID,
			},
			"source": map[string]any{
				"component": it.Source.Component,
				"host":      it.Source.Host,
			},
			"firstTimestamp": it.FirstTimestamp,
			"lastTimestamp":  it.LastTimestamp,
		}
		records = append(records, model.ResourceRecord{
			Kind:              model.KindEvent,
			Name:              it.Metadata.Name,
			UID:               it.Metadata.UID,
			Namespace:         it.Metadata.Namespace,
			Status:            it.Type,
			CreationTimestamp: parseTimestamp(it.Metadata.CreationTimestamp),
			Properties:        props,
		})
	}
	return records
}

type eventItem struct {
	Metadata struct {
		Name              string `json:"name"`
		UID               string `json:"uid"`
		Namespace         string `json:"namespace"`
		CreationTimestamp string `json:"creationTimestamp"`
	} `json:"metadata"`
	Reason         string `json:"reason"`
	Message        string `json:"message"`
	Type           string `json:"type"`
	Count          int    `json:"count"`
	FirstTimestamp string `json:"firstTimestamp"`
	LastTimestamp  string `json:"lastTimestamp"`
	InvolvedObject struct {
		Kind      string `json:"kind"`
		Name      string `json:"name"`
		Namespace string `json:"namespace"`
		UID       string `json:"uid"`
	} `json:"involvedObject"`
	Source struct {
		Component string `json:"component"`
		Host      string `json:"host"`
	} `json:"source"`
}
