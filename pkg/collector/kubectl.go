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

package collector

import (
	"bytes"
	"context"
	"os/exec"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// binaryName is the external CLI collectors invoke. spec.md §6 pins
// this to "kubectl" on PATH; never a user-controlled string.
const binaryName = "kubectl"

// retryDelays is the literal 0.5s/1.0s/1.5s ladder from spec.md §4.1,
// distinct from the geometric backoff in pkg/resilience (see
// SPEC_FULL.md §C.1 for why the two schedules are kept separate).
var retryDelays = []time.Duration{500 * time.Millisecond, time.Second, 1500 * time.Millisecond}

// kubectlPathOnce locates and caches the kubectl binary path once per
// process, per spec.md §4.1(a).
var (
	kubectlPathOnce sync.Once
	kubectlPath     string
	kubectlPathErr  error
)

func lookupKubectl() (string, error) {
	kubectlPathOnce.Do(func() {
		kubectlPath, kubectlPathErr = exec.LookPath(binaryName)
	})
	return kubectlPath, kubectlPathErr
}

// runResult is the captured outcome of one kubectl invocation.
type runResult struct {
	Stdout string
	Stderr string
	Err    error
}

// runKubectl runs kubectl with args under deadline, attempting up to
// three total invocations (spec.md §6), backing off with the literal
// ladder between attempts when stderr looks transient. It never
// returns a shell-interpreted string: args are always passed as
// discrete argv elements (spec.md §9, shell safety).
func runKubectl(ctx context.Context, logger log.Logger, deadline time.Duration, args []string) runResult {
	path, err := lookupKubectl()
	if err != nil {
		return runResult{Err: &CollectError{Taxonomy: TaxonomyKubectl, Stderr: "kubectl not found on PATH", Err: err}}
	}

	var last runResult
	for attempt := 0; attempt < len(retryDelays); attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, deadline)
		last = execOnce(callCtx, path, args)
		cancel()

		if last.Err == nil {
			return last
		}
		if ctx.Err() != nil {
			return runResult{Err: &CollectError{Taxonomy: TaxonomyTimeout, Stderr: last.Stderr, Err: ctx.Err()}}
		}
		ce, ok := last.Err.(*CollectError)
		if !ok || ce.Taxonomy != TaxonomyKubectl || !IsTransient(last.Stderr) {
			break
		}
		if attempt < len(retryDelays) {
			_ = level.Debug(logger).Log("msg", "retrying transient kubectl failure", "attempt", attempt+1, "args", joinArgs(args))
			select {
			case <-ctx.Done():
				return runResult{Err: &CollectError{Taxonomy: TaxonomyTimeout, Stderr: last.Stderr}}
			case <-time.After(retryDelays[attempt]):
			}
		}
	}
	return last
}

func execOnce(ctx context.Context, path string, args []string) runResult {
	cmd := exec.CommandContext(ctx, path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return runResult{Stdout: stdout.String(), Stderr: stderr.String()}
	}

	stderrText := stderr.String()
	if ctx.Err() == context.DeadlineExceeded {
		return runResult{Stdout: stdout.String(), Stderr: stderrText, Err: &CollectError{Taxonomy: TaxonomyTimeout, Stderr: stderrText, Err: err}}
	}
	if IsRBACDenial(stderrText) {
		verb, resource := rbacVerbResource(stderrText)
		return runResult{Stdout: stdout.String(), Stderr: stderrText, Err: &CollectError{Taxonomy: TaxonomyRBAC, Verb: verb, Resource: resource, Stderr: stderrText, Err: err}}
	}
	return runResult{Stdout: stdout.String(), Stderr: stderrText, Err: &CollectError{Taxonomy: TaxonomyKubectl, Stderr: stderrText, Err: err}}
}

func joinArgs(args []string) string {
	var b bytes.Buffer
	for i, a := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(a)
	}
	return b.String()
}
