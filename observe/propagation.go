package observe

import (
	"io"
	"strconv"

	"github.com/tolelom/nakasim/engine"
)

// PropagationObserver emits a row the instant a block has been
// received (DATA) by exactly threshold fraction of the N nodes in the
// network — fired exactly once per block, never re-evaluated
// afterward.
type PropagationObserver struct {
	net       *engine.Network
	sink      *sink
	threshold float64 // e.g. 0.5 or 0.9
	target    int     // floor(threshold * N)

	receivedBy map[int]map[int]struct{} // blockID -> set of node ids that have received it
	fired      map[int]bool             // blockID -> threshold already logged

	// pending* carry state from Before to After within one event.
	pendingIsNewReceipt bool
}

// NewPropagationObserver opens a sink for propagation-<pct>.csv.
func NewPropagationObserver(net *engine.Network, w io.Writer, closer io.Closer, metadata string, threshold float64) (*PropagationObserver, error) {
	s, err := newSink(w, closer, metadata, []string{
		"Time", "PropagationDelay", "BlockIndex", "BlockHeight", "BlockCreator", "BlockSize",
	})
	if err != nil {
		return nil, err
	}
	target := int(threshold * float64(len(net.Nodes)))
	return &PropagationObserver{
		net:        net,
		sink:       s,
		threshold:  threshold,
		target:     target,
		receivedBy: make(map[int]map[int]struct{}),
		fired:      make(map[int]bool),
	}, nil
}

func (o *PropagationObserver) Before(_ *engine.Scheduler, ev engine.Event) error {
	o.pendingIsNewReceipt = false
	if ev.Kind != engine.KindReceive || ev.Msg != engine.MsgData {
		return nil
	}
	if !o.net.Nodes[ev.Node].LocalTree.Contains(ev.BlockID) {
		o.pendingIsNewReceipt = true
	}
	return nil
}

func (o *PropagationObserver) After(s *engine.Scheduler, ev engine.Event) error {
	if !o.pendingIsNewReceipt {
		return nil
	}
	if o.fired[ev.BlockID] {
		return nil
	}

	set, ok := o.receivedBy[ev.BlockID]
	if !ok {
		set = make(map[int]struct{})
		o.receivedBy[ev.BlockID] = set
	}
	set[ev.Node] = struct{}{}

	if len(set) < o.target {
		return nil
	}
	o.fired[ev.BlockID] = true

	block := o.net.Store.Get(ev.BlockID)
	now := s.Now()
	return o.sink.writeRow([]string{
		strconv.FormatFloat(now, 'g', -1, 64),
		strconv.FormatFloat(now-block.CreationTime, 'g', -1, 64),
		strconv.Itoa(ev.BlockID),
		strconv.Itoa(block.Height),
		strconv.Itoa(block.Creator),
		strconv.FormatUint(block.Size, 10),
	})
}

func (o *PropagationObserver) Finalize() error { return o.sink.flushAndClose() }
