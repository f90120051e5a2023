package engine

import (
	"fmt"

	"github.com/tolelom/nakasim/rng"
	"github.com/tolelom/nakasim/stats"
)

// Config parameterizes one topology/mining initialization.
type Config struct {
	NumRegularNodes     int
	NumMiners           int
	NeighborDegree      int
	ConfirmationDepth   int
	TargetMeanInterval  float64 // seconds
	Difficulty          float64
}

// Network is the world: the node set, the global block store, and the
// mining configuration. It owns no events itself; every mutation
// happens inside the handlers the scheduler dispatches.
type Network struct {
	Nodes             []Node
	Store             *BlockStore
	Miners            []int
	ConfirmationDepth int
	Difficulty        float64
	Stats             stats.Provider
	RNG               *rng.Streams
}

// NewNetwork allocates and initializes a Network per the nine-step
// procedure, scheduling each miner's first MineTick on sch. streams
// supplies one independent generator per concern; see rng.Streams.
func NewNetwork(cfg Config, streams *rng.Streams, provider stats.Provider, sch *Scheduler) (*Network, error) {
	if cfg.NumMiners <= 0 {
		return nil, fmt.Errorf("got %d: %w", cfg.NumMiners, ErrNoMiners)
	}
	n := cfg.NumRegularNodes + cfg.NumMiners
	if n <= 0 {
		return nil, fmt.Errorf("got %d: %w", n, ErrNoNodes)
	}

	topology := streams.Topology
	bandwidth := streams.Bandwidth

	net := &Network{
		Nodes:             make([]Node, n),
		Store:             NewBlockStore(),
		ConfirmationDepth: cfg.ConfirmationDepth,
		Difficulty:        cfg.Difficulty,
		Stats:             provider,
		RNG:               streams,
	}
	for i := range net.Nodes {
		net.Nodes[i] = newNode()
	}

	// Step 2: sample distinct miner ids.
	net.Miners = topology.SampleKWithoutReplacement(n, cfg.NumMiners)
	isMiner := make(map[int]bool, len(net.Miners))
	for _, m := range net.Miners {
		isMiner[m] = true
	}

	// Step 3: sample countries.
	for i := range net.Nodes {
		if isMiner[i] {
			net.Nodes[i].Country = provider.SampleMinerCountry(topology)
		} else {
			net.Nodes[i].Country = provider.SampleNodeCountry(topology)
		}
	}

	// Step 4: sample bandwidths.
	for i := range net.Nodes {
		net.Nodes[i].Uplink.BandwidthBitsPerSec = provider.SampleUploadBandwidth(bandwidth, net.Nodes[i].Country)
		net.Nodes[i].Downlink.BandwidthBitsPerSec = provider.SampleDownloadBandwidth(bandwidth, net.Nodes[i].Country)
	}

	// Step 5: random neighbor graph, degree target k, idempotent and
	// symmetric.
	if n > 1 {
		k := cfg.NeighborDegree
		if k > n-1 {
			k = n - 1
		}
		for v := 0; v < n; v++ {
			candidates := topology.SampleKWithoutReplacement(n, k, v)
			for _, u := range candidates {
				net.Nodes[v].Neighbors[u] = struct{}{}
				net.Nodes[u].Neighbors[v] = struct{}{}
			}
		}
	}

	// Step 6: local trees already seeded with genesis by newNode.

	// Step 7: sample and scale hash power.
	raw := make([]float64, len(net.Miners))
	for i := range raw {
		raw[i] = provider.SampleRawMinerHashPower(topology)
	}
	scaled := stats.ScaleHashPowers(raw, cfg.Difficulty, cfg.TargetMeanInterval)
	for i, m := range net.Miners {
		hp := scaled[i]
		net.Nodes[m].HashPower = &hp
	}

	// Step 8: genesis already inserted by NewBlockStore.

	// Step 9: schedule each miner's first MineTick.
	for _, m := range net.Miners {
		hp := *net.Nodes[m].HashPower
		sch.Schedule(Event{Kind: KindMineTick, Miner: m}, streams.Mining.Exponential(cfg.Difficulty/hp))
	}

	return net, nil
}

// Dispatch is the Scheduler Handler bound to this Network: the single
// type switch on event Kind required by the component design.
func (net *Network) Dispatch(sch *Scheduler, ev Event) {
	switch ev.Kind {
	case KindMineTick:
		net.handleMineTick(sch, ev)
	case KindGenerateBlock:
		net.handleGenerateBlock(sch, ev)
	case KindSend:
		net.handleSend(sch, ev)
	case KindReceive:
		net.handleReceive(sch, ev)
	case KindConfirmation:
		// Carries no mutation; it exists purely so observers can log
		// the moment a block is considered confirmed at a node.
	default:
		panic(fmt.Sprintf("engine: unknown event kind %v", ev.Kind))
	}
}
