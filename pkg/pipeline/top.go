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
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/kubectl-smart/kubectl-smart/pkg/cache"
	"github.com/kubectl-smart/kubectl-smart/pkg/collector"
	"github.com/kubectl-smart/kubectl-smart/pkg/forecast"
	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

// targetedListKinds are the extra `get` fetches top runs beyond its
// subject's own kind, to support forecasting (spec.md §4.1, §4.6).
var targetedListKinds = []model.ResourceKind{
	model.KindSecret, model.KindIngress, model.KindPVC, model.KindPV,
}

// Top runs the top command (spec.md §4.6): collect {get, metrics,
// kubelet} plus targeted gets, parse, filter to in-scope records, and
// invoke both forecasters. Always exits 0 except on input validation
// failure (spec.md §6's general validation policy still applies to
// the horizon bound).
func (e *Engine) Top(ctx context.Context, subject model.SubjectContext, horizonHours int, now time.Time) *TopResult {
	start := time.Now()
	if err := subject.Validate(); err != nil {
		return &TopResult{Subject: subject, HorizonHours: horizonHours, ExitCode: ExitIssue}
	}
	if err := model.ValidateHorizon(horizonHours); err != nil {
		return &TopResult{Subject: subject, HorizonHours: horizonHours, ExitCode: ExitIssue}
	}

	ctx, cancel := context.WithTimeout(ctx, e.OuterDeadline)
	defer cancel()

	names := collector.CommandCollectors()["top"]
	requests := requestsFor(names, subject)
	for _, kind := range targetedListKinds {
		requests = append(requests, namedCollect{
			name:    "get",
			subject: subject,
			impl:    &collector.GetCollector{Deadline: collector.DefaultDeadline, KindOverride: kind},
		})
	}

	blobs := runCollectors(ctx, e.Logger, e.Collectors, e.Metrics, requests)
	degraded := degradedCollectorNames(blobs)
	records := e.Parsers.DispatchAll(e.Logger, blobs)

	inScope := filterTopScope(records, subject)

	capacityPreds := e.predictCapacity(inScope, records, horizonHours, now)
	certWarnings, certRefs := checkCertificates(e.Logger, inScope, now)

	result := &TopResult{
		Subject:               subject,
		HorizonHours:          horizonHours,
		CapacityPredictions:   forecast.FilterActionable(capacityPreds),
		CertExpiryWarnings:    certWarnings,
		CertReferenceWarnings: certRefs,
		DegradedCollectors:    degraded,
		ExitCode:              ExitOK,
	}
	result.AnalysisDuration = time.Since(start)
	e.Metrics.observeCommandDuration("top", result.AnalysisDuration.Seconds())
	_ = level.Debug(e.Logger).Log("msg", "top complete", "predictions", len(result.CapacityPredictions), "cert_warnings", len(result.CertExpiryWarnings))
	return result
}

// filterTopScope keeps namespace-scoped records in subject's namespace
// plus cluster-scoped Node/PV records, per spec.md §4.6 step 2. When
// subject carries no namespace (cluster scope), every namespace-scoped
// record passes through.
func filterTopScope(records []model.ResourceRecord, subject model.SubjectContext) []model.ResourceRecord {
	var out []model.ResourceRecord
	for _, r := range records {
		if !r.Valid() {
			continue
		}
		if model.IsClusterScoped(r.Kind) || r.Kind == model.KindNode || r.Kind == model.KindPV {
			out = append(out, r)
			continue
		}
		if subject.Namespace == "" || r.Namespace == subject.Namespace {
			out = append(out, r)
		}
	}
	return out
}

// predictCapacity runs the node and PVC capacity forecasters over
// inScope, joining in the pseudo-records the tabular and Prometheus
// text parsers emit (which carry a synthetic uid, not the real
// object's) by (kind, namespace, name) before calling the forecast
// package's pure prediction functions (spec.md §4.5).
func (e *Engine) predictCapacity(inScope, allRecords []model.ResourceRecord, horizonHours int, now time.Time) []*forecast.CapacityPrediction {
	var preds []*forecast.CapacityPrediction

	for i := range inScope {
		r := inScope[i]
		switch r.Kind {
		case model.KindNode:
			sample, ok := nodeUtilizationSample(r.Name, allRecords, now)
			var history []forecast.Sample
			if ok {
				history = []forecast.Sample{sample}
			}
			if pred := forecast.PredictNodeCapacity(r, history, horizonHours); pred != nil {
				preds = append(preds, pred)
			}
		case model.KindPVC:
			merged := mergePVCMetrics(r, allRecords)
			key := cache.Key(merged.Namespace, merged.Name)
			var priorHistory []forecast.Sample
			if e.Cache != nil {
				if cached, err := e.Cache.History(key); err == nil {
					priorHistory = convertCacheHistory(cached)
				}
			}
			pred := forecast.PredictPVCCapacity(merged, priorHistory, horizonHours)
			if pred != nil {
				preds = append(preds, pred)
			}
			if current, haveMetrics := forecast.PVCUtilization(merged); haveMetrics && e.Cache != nil {
				_ = e.Cache.Append(key, cache.Sample{Timestamp: now, Util: current})
			}
		}
	}
	return preds
}

// nodeUtilizationSample finds the `kubectl top nodes` pseudo-record
// for nodeName and reduces its CPU%/MEMORY% columns to a single
// utilization sample, using whichever of the two is higher as the
// more conservative signal.
func nodeUtilizationSample(nodeName string, records []model.ResourceRecord, now time.Time) (forecast.Sample, bool) {
	for _, r := range records {
		if r.Kind != model.KindNode || r.Name != nodeName {
			continue
		}
		row, ok := r.Properties["metrics"].(map[string]string)
		if !ok {
			continue
		}
		cpuPct, cpuOK := parsePercent(row["CPU%"])
		memPct, memOK := parsePercent(row["MEMORY%"])
		if !cpuOK && !memOK {
			continue
		}
		util := cpuPct
		if memOK && memPct > util {
			util = memPct
		}
		return forecast.Sample{Timestamp: now.Unix(), Utilization: util}, true
	}
	return forecast.Sample{}, false
}

// mergePVCMetrics returns a copy of pvc with the matching Prometheus-
// sourced metrics pseudo-record's properties joined in under
// "metrics", when one exists for the same (namespace, name). The real
// PVC record (from `get`) and the pseudo-record (from the kubelet
// Prometheus scrape) carry different uids, so the join is by identity,
// not uid (spec.md §4.5).
func mergePVCMetrics(pvc model.ResourceRecord, records []model.ResourceRecord) model.ResourceRecord {
	for _, r := range records {
		if r.Kind != model.KindPVC || r.Namespace != pvc.Namespace || r.Name != pvc.Name {
			continue
		}
		metrics, ok := r.Properties["metrics"]
		if !ok {
			continue
		}
		merged := pvc
		props := model.Properties{}
		for k, v := range pvc.Properties {
			props[k] = v
		}
		props["metrics"] = metrics
		merged.Properties = props
		return merged
	}
	return pvc
}

func convertCacheHistory(samples []cache.Sample) []forecast.Sample {
	out := make([]forecast.Sample, len(samples))
	for i, s := range samples {
		out[i] = forecast.Sample{Timestamp: s.Timestamp.Unix(), Utilization: s.Util}
	}
	return out
}

func parsePercent(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// checkCertificates runs the certificate-expiry forecaster over every
// in-scope Secret and the reference-only check over every Ingress
// (spec.md §4.5).
func checkCertificates(logger log.Logger, records []model.ResourceRecord, now time.Time) ([]*forecast.CertExpiryWarning, []forecast.CertReferenceWarning) {
	var warnings []*forecast.CertExpiryWarning
	var refs []forecast.CertReferenceWarning
	for _, r := range records {
		switch r.Kind {
		case model.KindSecret:
			if w := forecast.CheckSecretExpiry(logger, r, now); w != nil {
				warnings = append(warnings, w)
			}
		case model.KindIngress:
			refs = append(refs, forecast.CheckIngressReferences(r)...)
		}
	}
	return warnings, refs
}
