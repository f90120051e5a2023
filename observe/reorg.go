package observe

import (
	"io"
	"strconv"

	"github.com/tolelom/nakasim/engine"
)

// ReorgObserver detects, for every node, when a DATA arrival moves
// that node's main head off the chain its previous head was on. It
// keeps its own network-wide shadow block tree fed by every node's
// DATA receipt so it can compute a common ancestor even when the
// affected node's own local tree has not yet received every block on
// the old or new chain — the same independent-view design the
// original reorg logger uses.
type ReorgObserver struct {
	net  *engine.Network
	sink *sink

	shadow        *engine.LocalBlockTree
	previousHead  map[int]int // nodeID -> main head before this event

	pendingNode int
	pending     bool
}

// NewReorgObserver opens a sink for reorgs.csv.
func NewReorgObserver(net *engine.Network, w io.Writer, closer io.Closer, metadata string) (*ReorgObserver, error) {
	s, err := newSink(w, closer, metadata, []string{
		"Time", "NodeIndex", "BlockHeight", "BlockCreationTime", "BlockCreator", "ReorgLength",
	})
	if err != nil {
		return nil, err
	}
	previousHead := make(map[int]int, len(net.Nodes))
	for i := range net.Nodes {
		previousHead[i] = net.Nodes[i].Consensus.MainHead
	}
	return &ReorgObserver{
		net:          net,
		sink:         s,
		shadow:       engine.NewLocalBlockTree(),
		previousHead: previousHead,
	}, nil
}

func (o *ReorgObserver) Before(_ *engine.Scheduler, ev engine.Event) error {
	switch {
	case ev.Kind == engine.KindReceive && ev.Msg == engine.MsgData:
		o.pending, o.pendingNode = true, ev.Node
	case ev.Kind == engine.KindGenerateBlock:
		// A freshly mined block is delivered to its miner as DATA
		// inside this event, moving the miner's head.
		o.pending, o.pendingNode = true, ev.Miner
	default:
		o.pending = false
	}
	return nil
}

func (o *ReorgObserver) After(s *engine.Scheduler, ev engine.Event) error {
	if !o.pending {
		return nil
	}
	node := &o.net.Nodes[o.pendingNode]
	if ev.Kind == engine.KindGenerateBlock {
		o.shadow.Add(node.Consensus.MainHead, o.net.Store)
	} else {
		o.shadow.Add(ev.BlockID, o.net.Store)
	}
	oldHead := o.previousHead[o.pendingNode]
	newHead := node.Consensus.MainHead
	o.previousHead[o.pendingNode] = newHead
	if newHead == oldHead {
		return nil
	}

	ancestor, ok := o.shadow.CommonAncestor(oldHead, newHead, o.net.Store)
	if !ok {
		return nil
	}
	if ancestor == oldHead {
		// newHead simply extends the old head's chain: not a reorg.
		return nil
	}

	newBlock := o.net.Store.Get(newHead)
	ancestorBlock := o.net.Store.Get(ancestor)
	return o.sink.writeRow([]string{
		strconv.FormatFloat(s.Now(), 'g', -1, 64),
		strconv.Itoa(o.pendingNode),
		strconv.Itoa(newBlock.Height),
		strconv.FormatFloat(newBlock.CreationTime, 'g', -1, 64),
		strconv.Itoa(newBlock.Creator),
		strconv.Itoa(newBlock.Height - ancestorBlock.Height),
	})
}

func (o *ReorgObserver) Finalize() error { return o.sink.flushAndClose() }
