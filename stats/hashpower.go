package stats

// hashPowerWeights and hashPowerBins are the 2022 Bitcoin miner
// hash-power histogram: 16 equally-likely bins, each a representative
// raw hash power in exahash/sec.
var hashPowerWeights = [16]float64{
	0.0625, 0.0625, 0.0625, 0.0625, 0.0625, 0.0625, 0.0625, 0.0625,
	0.0625, 0.0625, 0.0625, 0.0625, 0.0625, 0.0625, 0.0625, 0.0625,
}

var hashPowerBins = [16]float64{
	50.0, 37.0, 33.0, 23.0, 22.0, 17.0, 13.0, 10.0, 8.0, 5.0, 2.0, 1.0, 1.0, 1.0, 1.0, 1.0,
}

// SampleRawMinerHashPower draws one miner's unscaled hash power in
// exahash/sec from the empirical histogram. Callers must rescale the
// whole miner population so the aggregate matches the target mean
// block interval; see ScaleHashPowers.
func SampleRawMinerHashPower(r weightedSampler) float64 {
	idx := r.SampleWeighted(hashPowerWeights[:])
	return hashPowerBins[idx]
}

// ScaleHashPowers rescales raw per-miner hash powers so that the
// expected aggregate block interval equals targetMeanInterval, given
// the network difficulty:
//
//	scale = difficulty / (sum(raw) * targetMeanInterval)
func ScaleHashPowers(raw []float64, difficulty, targetMeanInterval float64) []float64 {
	total := 0.0
	for _, hp := range raw {
		total += hp
	}
	if total <= 0 {
		panic("stats: ScaleHashPowers called with non-positive total raw hash power")
	}
	scale := difficulty / (total * targetMeanInterval)
	scaled := make([]float64, len(raw))
	for i, hp := range raw {
		scaled[i] = hp * scale
	}
	return scaled
}
