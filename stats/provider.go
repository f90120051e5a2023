package stats

// Provider is the external, read-only dependency engine.Network
// consults during topology initialization and mining. The default
// implementation is the package-level functions above, operating
// directly against the 2022 Bitcoin network snapshot baked into this
// package; Provider exists so tests can substitute a smaller, custom
// distribution without touching engine code.
type Provider interface {
	SampleNodeCountry(r weightedSampler) Country
	SampleMinerCountry(r weightedSampler) Country
	SampleUploadBandwidth(r lognormalSampler, c Country) float64
	SampleDownloadBandwidth(r lognormalSampler, c Country) float64
	SampleLatency(r lognormalSampler, from, to Country) float64
	SampleBlockSize(r weightedSampler) uint64
	SampleRawMinerHashPower(r weightedSampler) float64
}

// Default is the Provider backed by the reference 2022 network
// snapshot data in this package.
type Default struct{}

func (Default) SampleNodeCountry(r weightedSampler) Country    { return SampleNodeCountry(r) }
func (Default) SampleMinerCountry(r weightedSampler) Country   { return SampleMinerCountry(r) }
func (Default) SampleUploadBandwidth(r lognormalSampler, c Country) float64 {
	return SampleUploadBandwidth(r, c)
}
func (Default) SampleDownloadBandwidth(r lognormalSampler, c Country) float64 {
	return SampleDownloadBandwidth(r, c)
}
func (Default) SampleLatency(r lognormalSampler, from, to Country) float64 {
	return SampleLatency(r, from, to)
}
func (Default) SampleBlockSize(r weightedSampler) uint64 { return SampleBlockSize(r) }
func (Default) SampleRawMinerHashPower(r weightedSampler) float64 {
	return SampleRawMinerHashPower(r)
}
