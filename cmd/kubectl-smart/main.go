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

package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/kubectl-smart/kubectl-smart/pkg/cache"
	"github.com/kubectl-smart/kubectl-smart/pkg/graph"
	"github.com/kubectl-smart/kubectl-smart/pkg/logging"
	"github.com/kubectl-smart/kubectl-smart/pkg/model"
	"github.com/kubectl-smart/kubectl-smart/pkg/pipeline"
	"github.com/kubectl-smart/kubectl-smart/pkg/scoring"
)

func main() {
	os.Exit(run_())
}

// run_ builds the CLI, parses one command, executes it, renders the
// result, and returns the process exit code. Split out of main so a
// defer-based cancel() always fires before os.Exit.
func run_() int {
	logger := logging.New(logging.FromDebugEnv())

	app := kingpin.New("kubectl-smart", "A diagnostic engine for Kubernetes: why is this broken, what depends on it, what will break next.")
	app.HelpFlag.Short('h')
	logLevel := app.Flag("log.level", "One of 'debug', 'info', 'warn', 'error'.").Default("info").Enum("debug", "info", "warn", "error")
	weightsPath := app.Flag("weights", "Path to a weights.toml overriding the built-in scoring defaults, resolved under the binary's own package directory.").String()

	diagCmd := app.Command("diag", "Diagnose a resource: score its issues, pick a root cause, suggest actions.")
	diagKind := diagCmd.Arg("kind", "Resource kind (Pod, Deployment, Node, ...).").Required().String()
	diagName := diagCmd.Arg("name", "Resource name.").Required().String()
	diagNamespace := diagCmd.Flag("namespace", "Namespace (required for namespaced kinds).").Short('n').String()
	diagContext := diagCmd.Flag("context", "kubeconfig context to use.").String()

	graphCmd := app.Command("graph", "Render the dependency graph around a resource.")
	graphKind := graphCmd.Arg("kind", "Resource kind.").Required().String()
	graphName := graphCmd.Arg("name", "Resource name.").Required().String()
	graphNamespace := graphCmd.Flag("namespace", "Namespace.").Short('n').String()
	graphContext := graphCmd.Flag("context", "kubeconfig context to use.").String()
	graphDirection := graphCmd.Flag("direction", "upstream or downstream.").Default("downstream").Enum("upstream", "downstream")
	graphDepth := graphCmd.Flag("depth", "Maximum tree depth, 1-10.").Default("5").Int()

	topCmd := app.Command("top", "Forecast capacity exhaustion and certificate expiry for a namespace.")
	topNamespace := topCmd.Arg("namespace", "Namespace to scan.").Required().String()
	topContext := topCmd.Flag("context", "kubeconfig context to use.").String()
	topHorizon := topCmd.Flag("horizon", "Forecast horizon in hours, 1-720.").Default("24").Int()

	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		_ = level.Error(logger).Log("msg", "argument parse error", "err", err)
		return pipeline.ExitIssue
	}
	logger = logging.New(*logLevel)

	var subject model.SubjectContext
	switch cmd {
	case diagCmd.FullCommand():
		subject = model.SubjectContext{Kind: model.ResourceKind(*diagKind), Name: *diagName, Namespace: *diagNamespace, Context: *diagContext, Scope: model.ScopeResource}
	case graphCmd.FullCommand():
		subject = model.SubjectContext{Kind: model.ResourceKind(*graphKind), Name: *graphName, Namespace: *graphNamespace, Context: *graphContext, Scope: model.ScopeResource, Depth: *graphDepth}
	case topCmd.FullCommand():
		subject = model.SubjectContext{Namespace: *topNamespace, Context: *topContext, Scope: model.ScopeNamespace}
	default:
		_ = level.Error(logger).Log("msg", "unknown command")
		return pipeline.ExitIssue
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := pipeline.NewMetrics(reg)

	weights := loadWeights(logger, *weightsPath)
	cacheStore := openCache(logger)
	engine := pipeline.NewEngine(logger, metrics, cacheStore, weights)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exitCode := pipeline.ExitIssue
	var g run.Group
	{
		term := make(chan os.Signal, 1)
		signal.Notify(term, os.Interrupt, syscall.SIGTERM)
		g.Add(func() error {
			select {
			case <-term:
				_ = level.Info(logger).Log("msg", "received interrupt, cancelling")
			case <-ctx.Done():
			}
			return nil
		}, func(error) {
			cancel()
		})
	}
	{
		g.Add(func() error {
			switch cmd {
			case diagCmd.FullCommand():
				result := engine.Diag(ctx, subject, time.Now())
				exitCode = renderDiag(os.Stdout, result)
			case graphCmd.FullCommand():
				direction := graph.Direction(*graphDirection)
				result := engine.Graph(ctx, subject, direction)
				exitCode = renderGraph(os.Stdout, result)
			case topCmd.FullCommand():
				result := engine.Top(ctx, subject, *topHorizon, time.Now())
				exitCode = renderTop(os.Stdout, result)
			}
			cancel()
			return nil
		}, func(error) {
			cancel()
		})
	}
	_ = g.Run()
	return exitCode
}

// loadWeights resolves path under this binary's own directory, per
// spec.md §6's "weights file resolved under the engine's package
// directory only"; an empty path keeps the built-in defaults.
func loadWeights(logger interface {
	Log(keyvals ...interface{}) error
}, path string) *scoring.Weights {
	if path == "" {
		return scoring.Default()
	}
	exe, err := os.Executable()
	if err != nil {
		_ = logger.Log("msg", "could not resolve executable path, using default weights", "err", err)
		return scoring.Default()
	}
	return scoring.LoadWeights(logging.New("info"), filepath.Dir(exe), path)
}

func openCache(logger interface {
	Log(keyvals ...interface{}) error
}) *cache.Store {
	path, err := cache.DefaultPath()
	if err != nil {
		_ = logger.Log("msg", "could not resolve forecasting cache path, PVC history disabled", "err", err)
		return nil
	}
	return cache.Open(path)
}
