package stats

// blockSizeWeights and blockSizeBins are the 2020 empirical Bitcoin
// block-size histogram: 23 bins, each with an observed probability
// mass and a representative raw size in bytes.
var blockSizeWeights = [23]float64{
	0.0000, 0.0482, 0.0422, 0.0422, 0.0421, 0.0422, 0.0421, 0.0445, 0.0455, 0.0458, 0.0461, 0.0468,
	0.0472, 0.0481, 0.0477, 0.0479, 0.0484, 0.0482, 0.0475, 0.0464, 0.0454, 0.0434, 0.0420,
}

var blockSizeBins = [23]float64{
	196.0, 119880.0, 254789.0, 396047.0, 553826.0, 726752.0, 917631.0, 1021479.0, 1054560.0,
	1084003.0, 1113136.0, 1138722.0, 1161695.0, 1183942.0, 1205734.0, 1227090.0, 1248408.0,
	1270070.0, 1293647.0, 1320186.0, 1354939.0, 1423459.0, 2422858.0,
}

// SampleRawBlockSize draws a raw (pre-compaction) block size in bytes
// from the empirical histogram.
func SampleRawBlockSize(r weightedSampler) uint64 {
	idx := r.SampleWeighted(blockSizeWeights[:])
	return uint64(blockSizeBins[idx])
}

// SampleBlockSize draws a raw block size and applies CompactSize,
// returning the effective on-wire size used for both the DATA payload
// and link transfer time.
func SampleBlockSize(r weightedSampler) uint64 {
	return CompactSize(SampleRawBlockSize(r))
}
