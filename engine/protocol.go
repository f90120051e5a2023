package engine

import (
	"sort"

	"github.com/tolelom/nakasim/stats"
)

// Wire sizes for the three gossip message kinds. DATA's size is the
// block's own effective size and is looked up per-message.
const (
	InvWireSize     = stats.InvSize + stats.InvOverhead     // 37 bytes
	GetDataWireSize = stats.InvSize + stats.GetDataOverhead // 40 bytes
)

func wireSize(store *BlockStore, msg MsgType, blockID int) uint64 {
	switch msg {
	case MsgINV:
		return InvWireSize
	case MsgGetData:
		return GetDataWireSize
	case MsgData:
		return store.Get(blockID).Size
	default:
		panic("engine: wireSize called with unknown message type")
	}
}

// handleSend implements Send(block_id, from, node, msg_type): node is
// the party pushing bytes out, from is the predecessor that caused
// this send (itself, for a self-originated relay).
func (net *Network) handleSend(sch *Scheduler, ev Event) {
	node := &net.Nodes[ev.Node]
	if !node.Connected {
		return
	}

	switch ev.Msg {
	case MsgINV:
		// Neighbors are visited in ascending id order so that uplink
		// billing and latency draws repeat exactly under a fixed seed.
		neighbors := make([]int, 0, len(node.Neighbors))
		for neighbor := range node.Neighbors {
			if neighbor != ev.From {
				neighbors = append(neighbors, neighbor)
			}
		}
		sort.Ints(neighbors)
		for _, neighbor := range neighbors {
			net.sendOne(sch, node, ev.Node, neighbor, ev.BlockID, ev.Msg)
		}
	case MsgData, MsgGetData:
		net.sendOne(sch, node, ev.Node, ev.From, ev.BlockID, ev.Msg)
	}
}

// sendOne bills sender's uplink for one message, adds the sampled
// country-pair latency, and schedules the Receive at target.
func (net *Network) sendOne(sch *Scheduler, sender *Node, senderID, target int, blockID int, msg MsgType) {
	size := wireSize(net.Store, msg, blockID)
	delay := sender.Uplink.Transfer(size, sch.Now())
	latency := net.Stats.SampleLatency(net.RNG.Topology, sender.Country, net.Nodes[target].Country)
	sch.Schedule(Event{Kind: KindReceive, BlockID: blockID, From: senderID, Node: target, Msg: msg}, delay+latency)
}

// downloadDelayed bills node's downlink for the message that was just
// received (receivedMsg), then schedules the follow-up Send after
// that delay — the "download-delayed" rule.
func (net *Network) downloadDelayed(sch *Scheduler, node *Node, nodeID int, receivedMsg MsgType, receivedBlockID int, followUp Event) {
	size := wireSize(net.Store, receivedMsg, receivedBlockID)
	delay := node.Downlink.Transfer(size, sch.Now())
	sch.Schedule(followUp, delay)
}

// handleReceive implements Receive(block_id, from, node, msg_type).
func (net *Network) handleReceive(sch *Scheduler, ev Event) {
	node := &net.Nodes[ev.Node]
	if !node.Connected {
		return
	}

	switch ev.Msg {
	case MsgData:
		net.receiveData(sch, node, ev)
	case MsgINV:
		net.receiveINV(sch, node, ev)
	case MsgGetData:
		net.receiveGetData(sch, node, ev)
	}
}

func (net *Network) receiveData(sch *Scheduler, node *Node, ev Event) {
	if node.LocalTree.Contains(ev.BlockID) {
		return // duplicate DATA is a no-op
	}
	newlyConnected := node.LocalTree.Add(ev.BlockID, net.Store)
	node.seenFor(ev.BlockID).SawData = true

	if len(newlyConnected) > 0 {
		// Every block this arrival connects to genesis — the arriving
		// block itself, plus any previously-disconnected descendant it
		// unblocks — runs through consensus and gets relayed on its
		// own, exactly as if each had separately arrived: the
		// consensus update happens immediately, and the downlink is
		// billed once per block (each billed for the size of the DATA
		// message that actually arrived), serializing one relay's
		// download delay after another on the node's downlink queue.
		size := wireSize(net.Store, MsgData, ev.BlockID)
		for _, b := range newlyConnected {
			tip, confirmed, _ := node.Consensus.NewIncomingBlock(b, net.Store, node.LocalTree, net.ConfirmationDepth)
			if confirmed {
				sch.Schedule(Event{Kind: KindConfirmation, BlockID: tip, Node: ev.Node}, 0)
			}
			delay := node.Downlink.Transfer(size, sch.Now())
			sch.Schedule(Event{Kind: KindSend, BlockID: b, From: ev.From, Node: ev.Node, Msg: MsgINV}, delay)
		}
		return
	}

	parent, ok := net.Store.Get(ev.BlockID).SingleParent()
	if !ok {
		return
	}
	net.downloadDelayed(sch, node, ev.Node, MsgData, ev.BlockID,
		Event{Kind: KindSend, BlockID: parent, From: ev.From, Node: ev.Node, Msg: MsgGetData})
}

func (net *Network) receiveINV(sch *Scheduler, node *Node, ev Event) {
	s := node.seenFor(ev.BlockID)
	if s.SawINV || s.SawData {
		return // at most one GETDATA per block
	}
	s.SawINV = true
	net.downloadDelayed(sch, node, ev.Node, MsgINV, ev.BlockID,
		Event{Kind: KindSend, BlockID: ev.BlockID, From: ev.From, Node: ev.Node, Msg: MsgGetData})
}

func (net *Network) receiveGetData(sch *Scheduler, node *Node, ev Event) {
	s := node.seenFor(ev.BlockID)
	if !s.SawData {
		return // requester will see INV from elsewhere
	}
	net.downloadDelayed(sch, node, ev.Node, MsgGetData, ev.BlockID,
		Event{Kind: KindSend, BlockID: ev.BlockID, From: ev.From, Node: ev.Node, Msg: MsgData})
}

// deliverData feeds a just-mined block into the ordinary DATA receive
// path for its own creator, synchronously (no scheduling round-trip:
// there is no network hop for locally-created data).
func (net *Network) deliverData(sch *Scheduler, blockID, creator int) {
	net.handleReceive(sch, Event{Kind: KindReceive, BlockID: blockID, From: creator, Node: creator, Msg: MsgData})
}
