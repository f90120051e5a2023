package engine

import "sort"

// LocalBlock is one node's view of a single block: which of its
// children have also been received locally, and whether its parent
// chain reaches genesis entirely within this tree.
type LocalBlock struct {
	ChildrenIndex      map[int]struct{}
	IsConnectedToGenesis bool
}

func newLocalBlock() *LocalBlock {
	return &LocalBlock{ChildrenIndex: make(map[int]struct{})}
}

// LocalBlockTree is a node's partial view of the global block graph:
// the blocks it has received so far, with child-set links only — the
// global BlockStore's Parents field remains the single source of
// truth for ancestry.
type LocalBlockTree struct {
	dag map[int]*LocalBlock
}

// NewLocalBlockTree creates a tree containing only genesis, already
// marked connected.
func NewLocalBlockTree() *LocalBlockTree {
	genesis := newLocalBlock()
	genesis.IsConnectedToGenesis = true
	return &LocalBlockTree{dag: map[int]*LocalBlock{0: genesis}}
}

// Contains reports whether blockID has been received into this tree.
func (t *LocalBlockTree) Contains(blockID int) bool {
	_, ok := t.dag[blockID]
	return ok
}

// IsConnected reports whether blockID is both present and connected
// to genesis in this tree. False for a block not yet received.
func (t *LocalBlockTree) IsConnected(blockID int) bool {
	lb, ok := t.dag[blockID]
	return ok && lb.IsConnectedToGenesis
}

// Add inserts blockID into the tree (a no-op if already present,
// satisfying R3), wires it as a child of any already-present parent,
// and — if that parent is connected to genesis — propagates
// connectivity to blockID and transitively to every pre-existing
// descendant via breadth-first traversal of the child sets.
//
// Returns the ids that are connected to genesis as of this call and
// were not before it: blockID itself (if newly connected) followed by
// any pre-existing descendants whose connectivity just flipped. A
// caller that needs to relay INV onward for "the block and every
// descendant that just became connected" iterates exactly this slice.
func (t *LocalBlockTree) Add(blockID int, store *BlockStore) []int {
	if t.Contains(blockID) {
		return nil
	}

	local := newLocalBlock()

	// Wire in any already-received blocks whose single parent is
	// blockID: they become blockID's children in the local view.
	for existingID := range t.dag {
		if parent, ok := store.Get(existingID).SingleParent(); ok && parent == blockID {
			local.ChildrenIndex[existingID] = struct{}{}
		}
	}

	if parent, ok := store.Get(blockID).SingleParent(); ok {
		if localParent, ok := t.dag[parent]; ok {
			localParent.ChildrenIndex[blockID] = struct{}{}
			if localParent.IsConnectedToGenesis {
				local.IsConnectedToGenesis = true
			}
		}
	} else {
		// No parent recorded means this is genesis; Add is never
		// called for genesis (it is seeded by NewLocalBlockTree), but
		// guard anyway rather than silently mis-marking a real block.
		local.IsConnectedToGenesis = blockID == 0
	}

	t.dag[blockID] = local

	if !local.IsConnectedToGenesis {
		return nil
	}
	newlyConnected := []int{blockID}
	for _, successor := range t.allSuccessors(blockID) {
		if !t.dag[successor].IsConnectedToGenesis {
			t.dag[successor].IsConnectedToGenesis = true
			newlyConnected = append(newlyConnected, successor)
		}
	}
	return newlyConnected
}

// allSuccessors returns every block reachable from blockID via child
// links, via breadth-first layers (mirrors the Rust original's
// in_current_height/in_next_height sweep). Within a layer, each
// block's children are visited in ascending id order.
func (t *LocalBlockTree) allSuccessors(blockID int) []int {
	lb, ok := t.dag[blockID]
	if !ok || len(lb.ChildrenIndex) == 0 {
		return nil
	}
	var all []int
	seen := make(map[int]struct{})
	frontier := []int{blockID}
	for len(frontier) > 0 {
		var next []int
		for _, id := range frontier {
			children := make([]int, 0, len(t.dag[id].ChildrenIndex))
			for child := range t.dag[id].ChildrenIndex {
				children = append(children, child)
			}
			sort.Ints(children)
			for _, child := range children {
				if _, dup := seen[child]; !dup {
					seen[child] = struct{}{}
					all = append(all, child)
					next = append(next, child)
				}
			}
		}
		frontier = next
	}
	return all
}

// AncestorAtHeight walks single-parent links from blockID upward,
// returning the ancestor at the given height. Only ancestors present
// in this tree are consulted; returns false if the chain is not
// fully received down to that height.
func (t *LocalBlockTree) AncestorAtHeight(blockID, height int, store *BlockStore) (int, bool) {
	if !t.Contains(blockID) {
		return 0, false
	}
	block := store.Get(blockID)
	switch {
	case block.Height == height:
		return blockID, true
	case block.Height < height:
		return 0, false
	default:
		parent, ok := block.SingleParent()
		for ok {
			if !t.Contains(parent) {
				return 0, false
			}
			pb := store.Get(parent)
			if pb.Height == height {
				return parent, true
			}
			parent, ok = pb.SingleParent()
		}
		return 0, false
	}
}

// AllSingleAncestors returns every ancestor of blockID present in
// this tree, walking single-parent links upward until an ancestor is
// missing locally or genesis is reached.
func (t *LocalBlockTree) AllSingleAncestors(blockID int, store *BlockStore) map[int]struct{} {
	out := make(map[int]struct{})
	if !t.Contains(blockID) {
		return out
	}
	parent, ok := store.Get(blockID).SingleParent()
	for ok {
		if !t.Contains(parent) {
			return out
		}
		out[parent] = struct{}{}
		parent, ok = store.Get(parent).SingleParent()
	}
	return out
}

// CommonAncestor lifts the deeper of a and b to the other's height,
// then walks both upward in lockstep until they coincide. Returns
// false if no common ancestor is present in this tree.
func (t *LocalBlockTree) CommonAncestor(a, b int, store *BlockStore) (int, bool) {
	ha, hb := store.Get(a).Height, store.Get(b).Height
	for ha > hb {
		var ok bool
		a, ok = store.Get(a).SingleParent()
		if !ok || !t.Contains(a) {
			return 0, false
		}
		ha--
	}
	for hb > ha {
		var ok bool
		b, ok = store.Get(b).SingleParent()
		if !ok || !t.Contains(b) {
			return 0, false
		}
		hb--
	}
	for a != b {
		var ok bool
		a, ok = store.Get(a).SingleParent()
		if !ok || !t.Contains(a) {
			return 0, false
		}
		b, ok = store.Get(b).SingleParent()
		if !ok || !t.Contains(b) {
			return 0, false
		}
	}
	return a, true
}
