package engine

// ConsensusState is a node's Nakamoto (longest-chain) view: the
// height and id of its current head, and the set of blocks it
// considers confirmed.
type ConsensusState struct {
	LongestChainLen int
	MainHead        int
	Confirmed       map[int]struct{}
}

// NewConsensusState returns the initial state for a fresh node,
// head at genesis.
func NewConsensusState() ConsensusState {
	return ConsensusState{
		LongestChainLen: 0,
		MainHead:        0,
		Confirmed:       map[int]struct{}{0: {}},
	}
}

// NewIncomingBlock is invoked only for blocks already known to be
// connected to genesis in the node's local tree. It applies the
// canonical longest-chain rule with first-seen-wins tie-breaking:
// equal-height competitors never displace the current head.
//
// Returns the confirmation tip produced by chain-update, if any, and
// whether the head actually moved.
func (c *ConsensusState) NewIncomingBlock(blockID int, store *BlockStore, tree *LocalBlockTree, confirmationDepth int) (confirmTip int, confirmed bool, headMoved bool) {
	height := store.Get(blockID).Height
	if height <= c.LongestChainLen {
		return 0, false, false
	}
	c.LongestChainLen = height
	c.MainHead = blockID
	tip, ok := c.chainUpdate(store, tree, confirmationDepth)
	return tip, ok, true
}

// chainUpdate recomputes the confirmed set after the head has moved.
// If the chain is not yet deeper than confirmationDepth, or the
// ancestor at the confirmation height has not been fully received,
// there is nothing new to confirm.
func (c *ConsensusState) chainUpdate(store *BlockStore, tree *LocalBlockTree, confirmationDepth int) (int, bool) {
	if c.LongestChainLen <= confirmationDepth {
		return 0, false
	}
	confirmHeight := c.LongestChainLen - confirmationDepth
	tip, ok := tree.AncestorAtHeight(c.MainHead, confirmHeight, store)
	if !ok {
		return 0, false
	}
	c.Confirmed = tree.AllSingleAncestors(tip, store)
	c.Confirmed[tip] = struct{}{}
	return tip, true
}
