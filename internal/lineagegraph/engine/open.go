package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/asyncstore"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/codec"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/kv"
)

// OpenOptions are the config inputs accepted at Open: a filesystem path
// for the embedded backend, the wire serialization format, and the
// Engine's own Config (cache size, pool sizing, event/metrics
// capabilities).
type OpenOptions struct {
	Path                string
	SerializationFormat codec.Format
	Engine              Config
}

// Complete fills in defaults across every sub-config.
func (o OpenOptions) Complete() OpenOptions {
	if o.Path == "" {
		o.Path = "data/lineagegraph.db"
	}
	if o.SerializationFormat == "" {
		o.SerializationFormat = codec.FormatBinary
	}
	o.Engine = o.Engine.Complete()
	return o
}

// Open wires a BoltDB-backed kv.Backend, the chosen codec, an async
// wrapper, and (when requested) a pool gate, into a ready Engine. This
// is the module's production bootstrap; tests construct the pieces
// directly instead, so they can use an unwrapped *asyncstore.Store.
func Open(opts OpenOptions) (*Engine, error) {
	opts = opts.Complete()
	logrus.WithField("path", opts.Path).Info("opening storage engine")

	c, err := codec.New(opts.SerializationFormat)
	if err != nil {
		return nil, fmt.Errorf("lineagegraph: open codec: %w", err)
	}

	backend, err := kv.Open(opts.Path, c)
	if err != nil {
		return nil, fmt.Errorf("lineagegraph: open backend at %s: %w", opts.Path, err)
	}

	async := asyncstore.New(backend, int(opts.Engine.MaxConcurrent))

	var storage Storage = async
	if opts.Engine.EnablePool {
		storage = NewPooledStorage(async, opts.Engine.MaxConcurrent, opts.Engine.AcquireTimeout)
	}

	eng, err := New(storage, opts.Engine)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return eng, nil
}
