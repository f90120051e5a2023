package engine

import "errors"

// Sentinel errors returned by Network construction, checkable with
// errors.Is.
var (
	ErrNoMiners = errors.New("engine: network requires at least one miner")
	ErrNoNodes  = errors.New("engine: network requires at least one node")
)
