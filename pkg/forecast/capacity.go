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
	"fmt"
	"strings"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

// Sample is one (timestamp, utilization-percent) observation feeding a
// capacity projection. For a Node it is normally a single in-process
// reading; for a PVC it is the cached series loaded by pkg/cache.
type Sample struct {
	Timestamp   int64 // unix seconds; kept as an int so callers needn't import time here
	Utilization float64
}

// CapacityPrediction is one forecasted capacity issue (spec.md §4.5).
type CapacityPrediction struct {
	ResourceUID          string
	ResourceKind         model.ResourceKind
	Name                 string
	Namespace            string
	PredictedUtilization float64
	ForecastHours        int
	Immediate            bool
	Message              string
	SuggestedAction      string
}

// minSamples is the sample count at or above which exponential smoothing is
// used instead of the linear-trend fallback (spec.md §4.5).
const minSamples = 7

// actionableThreshold is the predicted-utilization floor a prediction
// must meet to reach the final result (spec.md §4.5).
const actionableThreshold = 90.0

// pvcPlaceholderUtilization is the conservative estimate emitted for a
// Bound PVC with no available metrics history.
const pvcPlaceholderUtilization = 85.0

// nodePressureUtilization is the immediate predicted utilization for a
// node already reporting a pressure condition.
const nodePressureUtilization = 95.0

var pressureConditionTypes = map[string]bool{
	"DiskPressure": true, "MemoryPressure": true, "PIDPressure": true,
}

// NodePressureType returns the first active pressure condition type on
// node, or "" if none is set.
func NodePressureType(node model.ResourceRecord) string {
	for _, c := range node.Properties.GetSlice("status.conditions") {
		cm, ok := c.(map[string]any)
		if !ok {
			continue
		}
		condType, _ := cm["type"].(string)
		status, _ := cm["status"].(string)
		if status == "True" && pressureConditionTypes[condType] {
			return condType
		}
	}
	return ""
}

// PredictNodeCapacity predicts capacity exhaustion for node (spec.md
// §4.5). history is whatever utilization samples are available for
// this node in the current invocation — typically one, since node
// capacity has no persistent sample cache (spec.md §9 design notes).
// Returns nil when no prediction is warranted.
func PredictNodeCapacity(node model.ResourceRecord, history []Sample, horizonHours int) *CapacityPrediction {
	if pressureType := NodePressureType(node); pressureType != "" {
		return &CapacityPrediction{
			ResourceUID:          node.UID,
			ResourceKind:         node.Kind,
			Name:                 node.Name,
			PredictedUtilization: nodePressureUtilization,
			Immediate:            true,
			Message:              fmt.Sprintf("node already experiencing %s", pressureType),
			SuggestedAction:      fmt.Sprintf("investigate %s on node %s", strings.ToLower(pressureType), node.Name),
		}
	}

	projected, ok := projectUtilization(history, horizonHours)
	if !ok || projected < actionableThreshold {
		return nil
	}
	return &CapacityPrediction{
		ResourceUID:          node.UID,
		ResourceKind:         node.Kind,
		Name:                 node.Name,
		PredictedUtilization: projected,
		ForecastHours:        horizonHours,
		Message:              fmt.Sprintf("utilization predicted to reach %.1f%%", projected),
		SuggestedAction:      "consider scaling workloads or adding nodes",
	}
}

// PVCUtilization reads the current used/capacity byte pair a
// kubelet-scraped metrics record attached to pvc, returning the
// utilization percentage and whether metrics were present at all.
func PVCUtilization(pvc model.ResourceRecord) (float64, bool) {
	metrics := pvc.Properties.GetMap("metrics")
	if metrics == nil {
		return 0, false
	}
	used, uok := metrics["pvc_used_bytes"].(float64)
	capacity, cok := metrics["pvc_capacity_bytes"].(float64)
	if !uok || !cok || capacity <= 0 {
		return 0, false
	}
	return used / capacity * 100, true
}

// PredictPVCCapacity predicts disk-usage exhaustion for pvc (spec.md
// §4.5). history is the persisted series for this PVC's
// "<namespace>/<name>" cache key, oldest first. The caller is
// responsible for appending the current sample to that series (via
// pkg/cache) before or after calling this, as appropriate; this
// function only reads history, never mutates the cache.
func PredictPVCCapacity(pvc model.ResourceRecord, history []Sample, horizonHours int) *CapacityPrediction {
	current, haveMetrics := PVCUtilization(pvc)
	if !haveMetrics {
		if pvc.Status != "Bound" {
			return nil
		}
		return &CapacityPrediction{
			ResourceUID:          pvc.UID,
			ResourceKind:         pvc.Kind,
			Name:                 pvc.Name,
			Namespace:            pvc.Namespace,
			PredictedUtilization: pvcPlaceholderUtilization,
			ForecastHours:        horizonHours,
			Message:              fmt.Sprintf("PVC %s usage trending upward", pvc.Name),
			SuggestedAction:      fmt.Sprintf("monitor disk usage on PVC %s", pvc.Name),
		}
	}

	if current >= actionableThreshold {
		return &CapacityPrediction{
			ResourceUID:          pvc.UID,
			ResourceKind:         pvc.Kind,
			Name:                 pvc.Name,
			Namespace:            pvc.Namespace,
			PredictedUtilization: clampPercent(current),
			Immediate:            true,
			Message:              fmt.Sprintf("PVC %s already at %.1f%% utilization", pvc.Name, current),
			SuggestedAction:      fmt.Sprintf("expand PVC %s or free up space", pvc.Name),
		}
	}

	projected := current
	if len(history) >= 2 {
		last := history[len(history)-1]
		prev := history[len(history)-2]
		hours := float64(last.Timestamp-prev.Timestamp) / 3600.0
		if hours > 0 {
			slopePerHour := (last.Utilization - prev.Utilization) / hours
			projected = current + slopePerHour*float64(horizonHours)
		}
	}
	projected = clampPercent(projected)

	return &CapacityPrediction{
		ResourceUID:          pvc.UID,
		ResourceKind:         pvc.Kind,
		Name:                 pvc.Name,
		Namespace:            pvc.Namespace,
		PredictedUtilization: projected,
		ForecastHours:        horizonHours,
		Message:              fmt.Sprintf("PVC %s projected to reach %.1f%% utilization", pvc.Name, projected),
		SuggestedAction:      fmt.Sprintf("expand PVC %s before it fills", pvc.Name),
	}
}

// FilterActionable applies the "only predictions >= 90 reach the
// result" rule uniformly across every prediction source (spec.md
// §4.5), regardless of whether the prediction already self-gated.
func FilterActionable(predictions []*CapacityPrediction) []*CapacityPrediction {
	var out []*CapacityPrediction
	for _, p := range predictions {
		if p != nil && p.PredictedUtilization >= actionableThreshold {
			out = append(out, p)
		}
	}
	return out
}

// projectUtilization projects the next horizonHours of utilization
// from history. With minSamples or more points it fits a damped
// additive-trend exponential smoothing model; with 2 or more but fewer
// than minSamples it falls back to a linear trend over the last three
// points (spec.md §4.5, §9 "forecasting fallback" design note). A
// single point projects flat; an empty history has no signal.
func projectUtilization(history []Sample, horizonHours int) (float64, bool) {
	if len(history) == 0 {
		return 0, false
	}
	values := make([]float64, len(history))
	for i, s := range history {
		values[i] = s.Utilization
	}
	steps := horizonHours / 24
	if steps < 1 {
		steps = 1
	}

	switch {
	case len(values) >= minSamples:
		return clampPercent(dampedHoltLinear(values, steps)), true
	case len(values) >= 2:
		return clampPercent(linearTrend(values, steps)), true
	default:
		return clampPercent(values[0]), true
	}
}

// linearTrend projects forward using the slope across the last three
// samples (fewer if history is shorter), matching the reference
// implementation's simple trend fallback.
func linearTrend(values []float64, steps int) float64 {
	recent := values
	if len(values) > 3 {
		recent = values[len(values)-3:]
	}
	trend := (recent[len(recent)-1] - recent[0]) / float64(len(recent))
	predicted := values[len(values)-1] + trend*float64(steps)
	if predicted < 0 {
		return 0
	}
	return predicted
}

// dampedHoltLinear fits Holt's linear trend method with a damping
// factor (additive trend, no seasonality) and projects steps periods
// ahead. This hand-rolled smoothing stands in for a statistical
// forecasting library: nothing in the retrieval pack imports one, so
// there is no grounded ecosystem choice to wire in here, and spec.md
// §9 explicitly allows the linear fallback to be authoritative when no
// such library is available.
func dampedHoltLinear(values []float64, steps int) float64 {
	const alpha, beta, phi = 0.3, 0.1, 0.9

	level := values[0]
	trend := values[1] - values[0]
	for i := 1; i < len(values); i++ {
		prevLevel := level
		level = alpha*values[i] + (1-alpha)*(prevLevel+phi*trend)
		trend = beta*(level-prevLevel) + (1-beta)*phi*trend
	}

	dampFactor := 0.0
	phiPow := phi
	for i := 0; i < steps; i++ {
		dampFactor += phiPow
		phiPow *= phi
	}
	return level + dampFactor*trend
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
