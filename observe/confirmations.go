package observe

import (
	"io"
	"strconv"

	"github.com/tolelom/nakasim/engine"
)

// ConfirmationObserver writes one row to confirmations.csv for every
// Confirmation event the scheduler dispatches.
type ConfirmationObserver struct {
	net  *engine.Network
	sink *sink
}

// NewConfirmationObserver opens a confirmations.csv sink over w,
// writing the given scenario metadata as the leading comment line.
func NewConfirmationObserver(net *engine.Network, w io.Writer, closer io.Closer, metadata string) (*ConfirmationObserver, error) {
	s, err := newSink(w, closer, metadata, []string{
		"Time", "NodeIndex", "BlockHeight", "BlockSize", "BlockCreationTime", "BlockCreator",
	})
	if err != nil {
		return nil, err
	}
	return &ConfirmationObserver{net: net, sink: s}, nil
}

func (o *ConfirmationObserver) Before(*engine.Scheduler, engine.Event) error { return nil }

func (o *ConfirmationObserver) After(s *engine.Scheduler, ev engine.Event) error {
	if ev.Kind != engine.KindConfirmation {
		return nil
	}
	block := o.net.Store.Get(ev.BlockID)
	return o.sink.writeRow([]string{
		strconv.FormatFloat(s.Now(), 'g', -1, 64),
		strconv.Itoa(ev.Node),
		strconv.Itoa(block.Height),
		strconv.FormatUint(block.Size, 10),
		strconv.FormatFloat(block.CreationTime, 'g', -1, 64),
		strconv.Itoa(block.Creator),
	})
}

func (o *ConfirmationObserver) Finalize() error { return o.sink.flushAndClose() }
