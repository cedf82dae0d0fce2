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

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the small set of counters/histograms the pipeline
// records into, following the package-level CounterVec/HistogramVec
// construction style common across the Prometheus Go client. The
// registry that serves these is a
// collaborator-owned concern (spec.md §1 treats health/metrics serving
// as out of scope); NewMetrics registers against whatever Registerer
// it is given, or stays an unregistered, fully functional no-op when
// given nil.
type Metrics struct {
	collectorCalls    *prometheus.CounterVec
	collectorFailures *prometheus.CounterVec
	commandDuration   *prometheus.HistogramVec
}

// NewMetrics builds the metric set, registering it against reg when
// reg is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		collectorCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kubectl_smart_collector_calls_total",
				Help: "A counter of collector invocations by collector name.",
			},
			[]string{"collector"},
		),
		collectorFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kubectl_smart_collector_failures_total",
				Help: "A counter of collector failures by collector name and taxonomy.",
			},
			[]string{"collector", "taxonomy"},
		),
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kubectl_smart_command_duration_seconds",
				Help:    "Histogram of end-to-end command latency by command name.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.collectorCalls, m.collectorFailures, m.commandDuration)
	}
	return m
}

func (m *Metrics) observeCollectorCall(name string) {
	if m == nil {
		return
	}
	m.collectorCalls.WithLabelValues(name).Inc()
}

func (m *Metrics) observeCollectorFailure(name, taxonomy string) {
	if m == nil {
		return
	}
	m.collectorFailures.WithLabelValues(name, taxonomy).Inc()
}

func (m *Metrics) observeCommandDuration(command string, seconds float64) {
	if m == nil {
		return
	}
	m.commandDuration.WithLabelValues(command).Observe(seconds)
}
