package engine

import "testing"

// TestConsensusHeadHeightInvariant verifies that MainHead's height always
// equals LongestChainLen, and the head never moves to a block at a
// height it has already reached (first-seen-wins tie-break).
func TestConsensusHeadHeightInvariant(t *testing.T) {
	store := NewBlockStore()
	tree := NewLocalBlockTree()
	a := store.Append(Block{Creator: 0, Height: 1, Parents: []int{0}})
	b := store.Append(Block{Creator: 1, Height: 1, Parents: []int{0}}) // competing block, same height
	tree.Add(a, store)
	tree.Add(b, store)

	c := NewConsensusState()
	_, _, moved := c.NewIncomingBlock(a, store, tree, 6)
	if !moved || c.MainHead != a || c.LongestChainLen != 1 {
		t.Fatalf("expected head to move to first block at height 1")
	}

	_, _, moved = c.NewIncomingBlock(b, store, tree, 6)
	if moved {
		t.Fatalf("equal-height competitor must not displace the current head")
	}
	if c.MainHead != a {
		t.Fatalf("head must remain at first-seen block a, got %d", c.MainHead)
	}
}

// TestConfirmationDepthZero checks that with confirmation
// depth 0, a block is confirmed the instant it becomes the head.
func TestConfirmationDepthZero(t *testing.T) {
	store := NewBlockStore()
	tree := NewLocalBlockTree()
	a := store.Append(Block{Creator: 0, Height: 1, Parents: []int{0}})
	tree.Add(a, store)

	c := NewConsensusState()
	tip, confirmed, _ := c.NewIncomingBlock(a, store, tree, 0)
	if !confirmed || tip != a {
		t.Fatalf("expected block a confirmed immediately at depth 0, got tip=%d confirmed=%v", tip, confirmed)
	}
}

func TestChainNotYetDeeperThanConfirmationDepth(t *testing.T) {
	store := NewBlockStore()
	tree := NewLocalBlockTree()
	a := store.Append(Block{Creator: 0, Height: 1, Parents: []int{0}})
	tree.Add(a, store)

	c := NewConsensusState()
	_, confirmed, _ := c.NewIncomingBlock(a, store, tree, 6)
	if confirmed {
		t.Fatalf("chain of length 1 must not confirm anything at depth 6")
	}
}

func TestConfirmedSetIsSingleParentAncestorsOfTip(t *testing.T) {
	store := NewBlockStore()
	tree := NewLocalBlockTree()
	ids := buildChain(store, 4)
	for _, id := range ids {
		tree.Add(id, store)
	}

	c := NewConsensusState()
	var tip int
	var confirmed bool
	for _, id := range ids {
		tip, confirmed, _ = c.NewIncomingBlock(id, store, tree, 2)
	}
	if !confirmed {
		t.Fatalf("expected confirmation once chain length exceeds depth")
	}
	wantTip := ids[1] // height 4 - depth 2 = height 2 = ids[1]
	if tip != wantTip {
		t.Fatalf("confirm tip = %d, want %d", tip, wantTip)
	}
	if _, ok := c.Confirmed[tip]; !ok {
		t.Fatalf("confirmed set must include the tip itself")
	}
	if _, ok := c.Confirmed[0]; !ok {
		t.Fatalf("confirmed set must include genesis as an ancestor")
	}
	if _, ok := c.Confirmed[ids[2]]; ok {
		t.Fatalf("confirmed set must not include blocks above the confirm tip")
	}
}
