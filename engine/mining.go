package engine

// handleMineTick implements the MineTick(miner) event: a pure Poisson
// tick, deliberately separated from block construction (GenerateBlock)
// so mining stays an independent process from the block it produces.
func (net *Network) handleMineTick(sch *Scheduler, ev Event) {
	miner := ev.Miner
	sch.Schedule(Event{Kind: KindGenerateBlock, Miner: miner}, 0)

	hp := *net.Nodes[miner].HashPower
	sch.Schedule(Event{Kind: KindMineTick, Miner: miner}, net.RNG.Mining.Exponential(net.Difficulty/hp))
}

// handleGenerateBlock implements GenerateBlock(miner): mints a new
// block atop the miner's current head and delivers it to itself via
// the ordinary Receive(DATA) path, so a miner's own blocks go through
// exactly the same acceptance logic as a gossiped one.
func (net *Network) handleGenerateBlock(sch *Scheduler, ev Event) {
	miner := ev.Miner
	node := &net.Nodes[miner]
	if !node.Connected {
		return
	}

	parent := node.Consensus.MainHead
	parentBlock := net.Store.Get(parent)

	effectiveSize := net.Stats.SampleBlockSize(net.RNG.BlockSize)

	blockID := net.Store.Append(Block{
		Creator:      miner,
		Height:       parentBlock.Height + 1,
		Size:         effectiveSize,
		Parents:      []int{parent},
		CreationTime: sch.Now(),
		Difficulty:   net.Difficulty,
		Weight:       1,
	})

	net.deliverData(sch, blockID, miner)
}
