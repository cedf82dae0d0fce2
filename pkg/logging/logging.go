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

// Package logging builds the go-kit logger kubectl-smart's components
// log through: JSON by default, timestamp and caller injected at
// construction. The engine never constructs its own logger at package
// scope; callers (the CLI entrypoint, or tests) supply one.
package logging

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New builds a JSON logger over os.Stderr with ts/caller fields, at the
// level named by lvl ("debug", "info", "warn", "error"). Unknown level
// names fall back to "info".
func New(lvl string) log.Logger {
	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return level.NewFilter(logger, levelOption(lvl))
}

func levelOption(lvl string) level.Option {
	switch lvl {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

// FromDebugEnv derives the level from KUBECTL_SMART_DEBUG (spec.md §6):
// "true" enables debug logging, anything else (including unset) is info.
func FromDebugEnv() string {
	if os.Getenv("KUBECTL_SMART_DEBUG") == "true" {
		return "debug"
	}
	return "info"
}
