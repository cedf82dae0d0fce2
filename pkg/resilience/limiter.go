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

package resilience

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter is the token-bucket limiter from spec.md §4.7: maxCalls
// per period, built directly on golang.org/x/time/rate (a teacher
// transitive dependency, promoted to direct use here).
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter builds a limiter allowing maxCalls over period,
// bursting up to maxCalls. Defaults from spec.md §4.7: maxCalls=100,
// period=60s.
func NewRateLimiter(maxCalls int, period time.Duration) *RateLimiter {
	every := rate.Every(period / time.Duration(maxCalls))
	return &RateLimiter{limiter: rate.NewLimiter(every, maxCalls)}
}

// Acquire blocks until a slot frees, or ctx is cancelled.
func (l *RateLimiter) Acquire(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
