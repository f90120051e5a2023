// Package scenario wires config, rng, stats, engine, and observe
// together into one runnable simulation, the way the reference's own
// top-level runner stitches its node, consensus, and network layers
// together behind a single entry point.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tolelom/nakasim/config"
	"github.com/tolelom/nakasim/engine"
	"github.com/tolelom/nakasim/observe"
	"github.com/tolelom/nakasim/rng"
	"github.com/tolelom/nakasim/stats"
)

// Result summarizes a completed run for callers that want more than
// "it wrote files" (the sweep runner, in particular).
type Result struct {
	Config        *config.ScenarioConfig
	BlocksMined   int
	FinalTime     float64
	SeedUsed      uint64
	OutputDir     string
}

// Run executes one simulation end to end: builds the RNG, network,
// and scheduler, registers the three CSV observers against
// cfg.OutputDir, drives the scheduler to cfg.StopTime, and flushes
// every sink. It never runs the Go toolchain and never touches global
// state: two Run calls with identical cfg.Seed produce byte-identical
// output (P6, determinism).
func Run(cfg *config.ScenarioConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scenario: invalid config: %w", err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("scenario: create output dir: %w", err)
	}

	streams := rng.NewStreams(cfg.Seed)
	provider := stats.Default{}

	sch := engine.NewScheduler(nil)
	net, err := engine.NewNetwork(engine.Config{
		NumRegularNodes:    cfg.NumRegularNodes,
		NumMiners:          cfg.NumMiners,
		NeighborDegree:     cfg.NeighborDegree,
		ConfirmationDepth:  cfg.ConfirmationDepth,
		TargetMeanInterval: cfg.AverageBlockInterval,
		Difficulty:         stats.Difficulty,
	}, streams, provider, sch)
	if err != nil {
		return nil, fmt.Errorf("scenario: build network: %w", err)
	}
	sch.SetDispatch(net.Dispatch)

	metadata := fmt.Sprintf("scenario=%s seed=%d stop_time=%g confirmation_depth=%d",
		cfg.Name, cfg.Seed, cfg.StopTime, cfg.ConfirmationDepth)

	observers, closers, err := buildObservers(net, cfg.OutputDir, metadata)
	if err != nil {
		return nil, fmt.Errorf("scenario: build observers: %w", err)
	}
	defer closeAll(closers)

	if err := sch.Run(cfg.StopTime, observers); err != nil {
		return nil, fmt.Errorf("scenario: run: %w", err)
	}

	return &Result{
		Config:      cfg,
		BlocksMined: net.Store.Len() - 1, // exclude genesis
		FinalTime:   sch.Now(),
		SeedUsed:    cfg.Seed,
		OutputDir:   cfg.OutputDir,
	}, nil
}

// propagationThresholds are the two fractions the reference's own
// analysis scripts expect: time-to-50%-of-network and
// time-to-90%-of-network.
var propagationThresholds = []float64{0.5, 0.9}

func buildObservers(net *engine.Network, outputDir, metadata string) ([]engine.Observer, []*os.File, error) {
	var observers []engine.Observer
	var files []*os.File

	open := func(name string) (*os.File, error) {
		f, err := os.Create(filepath.Join(outputDir, name))
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", name, err)
		}
		files = append(files, f)
		return f, nil
	}

	confFile, err := open("confirmations.csv")
	if err != nil {
		return nil, files, err
	}
	confObs, err := observe.NewConfirmationObserver(net, confFile, confFile, metadata)
	if err != nil {
		return nil, files, err
	}
	observers = append(observers, confObs)

	for _, threshold := range propagationThresholds {
		name := fmt.Sprintf("propagation-%d.csv", int(threshold*100))
		f, err := open(name)
		if err != nil {
			return nil, files, err
		}
		obs, err := observe.NewPropagationObserver(net, f, f, metadata, threshold)
		if err != nil {
			return nil, files, err
		}
		observers = append(observers, obs)
	}

	reorgFile, err := open("reorgs.csv")
	if err != nil {
		return nil, files, err
	}
	reorgObs, err := observe.NewReorgObserver(net, reorgFile, reorgFile, metadata)
	if err != nil {
		return nil, files, err
	}
	observers = append(observers, reorgObs)

	return observers, files, nil
}

func closeAll(files []*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
