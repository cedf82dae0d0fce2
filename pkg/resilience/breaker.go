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

// Package resilience provides the circuit breaker, token-bucket rate
// limiter and retry wrappers collectors compose around calls to the
// external kubectl binary (spec.md §4.7).
package resilience

import (
	"sync"
	"time"
)

// State is one of the three circuit breaker states.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerOpenError is returned by Allow when the breaker is open.
type BreakerOpenError struct{ Name string }

func (e *BreakerOpenError) Error() string {
	return "circuit breaker " + e.Name + " is open"
}

// Breaker is a per-logical-remote circuit breaker. One instance is
// sufficient per collector type, per spec.md §4.7.
type Breaker struct {
	Name             string
	FailureThreshold int
	SuccessThreshold int
	OpenTimeout      time.Duration

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	openedAt  time.Time
	now       func() time.Time
}

// NewBreaker builds a breaker with the spec.md §4.7 defaults:
// failureThreshold=5, timeoutSeconds=60, successThreshold=2.
func NewBreaker(name string) *Breaker {
	return &Breaker{
		Name:             name,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      60 * time.Second,
		state:            StateClosed,
		now:              time.Now,
	}
}

// State returns the breaker's current state, transitioning Open to
// HalfOpen if the timeout has elapsed.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maybeTransitionToHalfOpenLocked()
	return b.state
}

func (b *Breaker) maybeTransitionToHalfOpenLocked() {
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.OpenTimeout {
		b.state = StateHalfOpen
		b.successes = 0
	}
}

// Allow reports whether a call may proceed, returning a BreakerOpenError
// when it must be rejected.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maybeTransitionToHalfOpenLocked()
	if b.state == StateOpen {
		return &BreakerOpenError{Name: b.Name}
	}
	return nil
}

// RecordSuccess reports a successful call outcome.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case StateHalfOpen:
		b.successes++
		if b.successes >= b.SuccessThreshold {
			b.state = StateClosed
			b.failures = 0
			b.successes = 0
		}
	case StateClosed:
		b.failures = 0
	}
}

// RecordFailure reports a failed call outcome.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case StateHalfOpen:
		b.openLocked()
	case StateClosed:
		b.failures++
		if b.failures >= b.FailureThreshold {
			b.openLocked()
		}
	}
}

func (b *Breaker) openLocked() {
	b.state = StateOpen
	b.openedAt = b.now()
	b.failures = 0
	b.successes = 0
}
