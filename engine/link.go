package engine

// Link models one direction (upload or download) of a node's network
// connection as a serializing queue: transfers on the same link never
// overlap. BusyUntil only ever moves forward.
type Link struct {
	BandwidthBitsPerSec float64
	BusyUntil           float64
}

// Transfer computes the delay, starting at now, to push sizeBytes
// across this link, and advances BusyUntil to the transfer's finish
// time. It never schedules anything itself — callers add any
// additional propagation (country) latency on top of the returned
// delay.
func (l *Link) Transfer(sizeBytes uint64, now float64) float64 {
	if l.BandwidthBitsPerSec <= 0 {
		panic("engine: Transfer called on a link with non-positive bandwidth")
	}
	busyStart := l.BusyUntil
	if now > busyStart {
		busyStart = now
	}
	finish := busyStart + float64(sizeBytes)*8/l.BandwidthBitsPerSec
	l.BusyUntil = finish
	return finish - now
}
