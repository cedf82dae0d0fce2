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
)

// RetryPolicy is the exponential-backoff schedule from spec.md §4.7:
// base=0.5s, factor=2.0, cap=10s, max 3 retries. This is a distinct
// schedule from the collector's own literal 0.5/1.0/1.5s ladder
// (pkg/collector); this one backs withResilience-style composition for
// callers that explicitly opt into breaker+limiter+retry. No command in
// this repository calls WithResilience; only its tests exercise it.
type RetryPolicy struct {
	Base       time.Duration
	Factor     float64
	Cap        time.Duration
	MaxRetries int
}

// DefaultRetryPolicy returns the spec.md §4.7 defaults.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Base:       500 * time.Millisecond,
		Factor:     2.0,
		Cap:        10 * time.Second,
		MaxRetries: 3,
	}
}

// delay returns the backoff delay before retry attempt n (1-indexed).
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := float64(p.Base)
	for i := 1; i < attempt; i++ {
		d *= p.Factor
	}
	if d > float64(p.Cap) {
		d = float64(p.Cap)
	}
	return time.Duration(d)
}

// Transient classifies whether an error should trigger a retry.
type Transient func(error) bool

// Do retries fn up to MaxRetries times while isTransient(err) is true,
// sleeping between attempts per the backoff schedule. It stops early
// when ctx is done.
func Do(ctx context.Context, policy RetryPolicy, isTransient Transient, fn func(context.Context) error) error {
	var err error
	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !isTransient(err) || attempt == policy.MaxRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(policy.delay(attempt + 1)):
		}
	}
	return err
}

// Breaker-aware composition: withResilience(f) from spec.md §4.7.
// WithResilience rejects the call if the breaker is open, acquires a
// rate-limiter token, retries transient failures, and records the
// final outcome on the breaker.
func WithResilience(ctx context.Context, b *Breaker, l *RateLimiter, policy RetryPolicy, isTransient Transient, fn func(context.Context) error) error {
	if err := b.Allow(); err != nil {
		return err
	}
	if err := l.Acquire(ctx); err != nil {
		return err
	}
	err := Do(ctx, policy, isTransient, fn)
	if err != nil {
		b.RecordFailure()
	} else {
		b.RecordSuccess()
	}
	return err
}
