package engine

import "testing"

// buildChain appends n blocks in a straight line atop genesis and
// returns their ids in order.
func buildChain(store *BlockStore, n int) []int {
	ids := make([]int, n)
	parent := 0
	for i := 0; i < n; i++ {
		id := store.Append(Block{Creator: 0, Height: i + 1, Parents: []int{parent}})
		ids[i] = id
		parent = id
	}
	return ids
}

// TestLocalTreeConnectivityInvariant verifies that every block present in
// a LocalBlockTree is either genesis or has an ancestry chain fully
// present, and IsConnected only ever reports true once that full
// chain has arrived — regardless of arrival order.
func TestLocalTreeConnectivityInvariant(t *testing.T) {
	store := NewBlockStore()
	chain := buildChain(store, 3)

	tree := NewLocalBlockTree()
	// Receive out of order: middle block first, arrives disconnected.
	got := tree.Add(chain[1], store)
	if len(got) != 0 {
		t.Fatalf("expected no newly-connected blocks before parent arrives, got %v", got)
	}
	if tree.IsConnected(chain[1]) {
		t.Fatalf("block should not be connected before its parent arrives")
	}

	// Now the parent arrives: both should flip to connected.
	got = tree.Add(chain[0], store)
	wantSet := map[int]bool{chain[0]: true, chain[1]: true}
	if len(got) != 2 {
		t.Fatalf("expected 2 newly-connected blocks, got %v", got)
	}
	for _, id := range got {
		if !wantSet[id] {
			t.Fatalf("unexpected newly-connected id %d", id)
		}
	}
	if !tree.IsConnected(chain[0]) || !tree.IsConnected(chain[1]) {
		t.Fatalf("both blocks should be connected after parent arrives")
	}

	// Third block still not received.
	if tree.IsConnected(chain[2]) {
		t.Fatalf("unreceived block must not report connected")
	}
}

func TestLocalTreeAddIsIdempotent(t *testing.T) {
	store := NewBlockStore()
	chain := buildChain(store, 1)
	tree := NewLocalBlockTree()
	tree.Add(chain[0], store)
	got := tree.Add(chain[0], store) // duplicate Add is a no-op
	if got != nil {
		t.Fatalf("expected nil on duplicate Add, got %v", got)
	}
}

func TestAncestorAtHeight(t *testing.T) {
	store := NewBlockStore()
	chain := buildChain(store, 5)
	tree := NewLocalBlockTree()
	for _, id := range chain {
		tree.Add(id, store)
	}
	got, ok := tree.AncestorAtHeight(chain[4], 2, store)
	if !ok || got != chain[1] {
		t.Fatalf("AncestorAtHeight(height=2) = (%d, %v), want (%d, true)", got, ok, chain[1])
	}
	if _, ok := tree.AncestorAtHeight(chain[4], 10, store); ok {
		t.Fatalf("AncestorAtHeight should fail for height beyond the block")
	}
}

func TestCommonAncestorOnFork(t *testing.T) {
	store := NewBlockStore()
	base := store.Append(Block{Creator: 0, Height: 1, Parents: []int{0}})
	left := store.Append(Block{Creator: 0, Height: 2, Parents: []int{base}})
	right := store.Append(Block{Creator: 1, Height: 2, Parents: []int{base}})
	leftDeep := store.Append(Block{Creator: 0, Height: 3, Parents: []int{left}})

	tree := NewLocalBlockTree()
	for _, id := range []int{base, left, right, leftDeep} {
		tree.Add(id, store)
	}

	got, ok := tree.CommonAncestor(leftDeep, right, store)
	if !ok || got != base {
		t.Fatalf("CommonAncestor = (%d, %v), want (%d, true)", got, ok, base)
	}
}
