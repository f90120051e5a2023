package engine

import "github.com/tolelom/nakasim/stats"

// seenState tracks whether a node has observed an INV or DATA message
// for a given block, independent of whether it has fully received the
// block's payload — duplicate-suppression state.
type seenState struct {
	SawINV  bool
	SawData bool
}

// Node holds all per-node state. Following the component-vector
// layout, Network stores nodes in a dense []Node keyed by the
// plain integer node id; nothing here is a pointer or handle with its
// own lifetime.
type Node struct {
	Connected bool
	Neighbors map[int]struct{}
	Country   stats.Country

	Uplink   Link
	Downlink Link

	LocalTree *LocalBlockTree
	Seen      map[int]*seenState
	Consensus ConsensusState

	// HashPower is non-nil iff this node is a miner.
	HashPower *float64

	// Per-block counts of distinct DATA receivers are kept by the
	// propagation-delay observers (observe.PropagationObserver), not
	// here.
}

func newNode() Node {
	return Node{
		Neighbors: make(map[int]struct{}),
		LocalTree: NewLocalBlockTree(),
		Seen:      make(map[int]*seenState),
		Consensus: NewConsensusState(),
		Connected: true,
	}
}

func (n *Node) seenFor(blockID int) *seenState {
	s, ok := n.Seen[blockID]
	if !ok {
		s = &seenState{}
		n.Seen[blockID] = s
	}
	return s
}

// IsMiner reports whether this node has assigned hash power.
func (n *Node) IsMiner() bool { return n.HashPower != nil }
