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
	"regexp"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

// promLine matches "metric_name{labels} value", with an optional
// trailing timestamp that this parser ignores.
var promLine = regexp.MustCompile(`^([a-zA-Z_:][a-zA-Z0-9_:]*)\{([^}]*)\}\s+(\S+)`)

var promLabel = regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_]*)="((?:[^"\\]|\\.)*)"`)

// watchedMetrics are the only kubelet metrics the forecaster needs:
// PVC used/capacity bytes, keyed by (namespace, persistentvolumeclaim).
var watchedMetrics = map[string]bool{
	"kubelet_volume_stats_used_bytes":     true,
	"kubelet_volume_stats_capacity_bytes": true,
}

type pvcKey struct{ namespace, name string }

// FeedPrometheusText hand-parses the small subset of the Prometheus
// text exposition format kubectl-smart cares about: per-PVC volume
// stats scraped from each node's kubelet /metrics proxy endpoint. A
// full exposition-format parser is unnecessary scope for two metric
// families (spec.md §4.2; SPEC_FULL.md domain stack).
func FeedPrometheusText(logger log.Logger, blob model.RawBlob) []model.ResourceRecord {
	usage := make(map[pvcKey]map[string]float64)

	for _, line := range nonEmptyLines(blob.Data) {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		m := promLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		metric, labelBody, valueStr := m[1], m[2], m[3]
		if !watchedMetrics[metric] {
			continue
		}
		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			_ = level.Debug(logger).Log("msg", "unparseable metric value, skipping", "metric", metric, "err", err)
			continue
		}
		labels := parsePromLabels(labelBody)
		key := pvcKey{namespace: labels["namespace"], name: labels["persistentvolumeclaim"]}
		if key.name == "" {
			continue
		}
		if usage[key] == nil {
			usage[key] = make(map[string]float64)
		}
		usage[key][metric] = value
	}

	records := make([]model.ResourceRecord, 0, len(usage))
	for key, metrics := range usage {
		records = append(records, model.ResourceRecord{
			Kind:      model.KindPVC,
			Name:      key.name,
			UID:       "metrics/pvc/" + key.namespace + "/" + key.name,
			Namespace: key.namespace,
			Status:    "Active",
			Properties: model.Properties{
				"metrics": map[string]any{
					"pvc_used_bytes":     metrics["kubelet_volume_stats_used_bytes"],
					"pvc_capacity_bytes": metrics["kubelet_volume_stats_capacity_bytes"],
				},
			},
		})
	}
	return records
}

func parsePromLabels(body string) map[string]string {
	out := make(map[string]string)
	for _, m := range promLabel.FindAllStringSubmatch(body, -1) {
		out[m[1]] = strings.ReplaceAll(m[2], `\"`, `"`)
	}
	return out
}
