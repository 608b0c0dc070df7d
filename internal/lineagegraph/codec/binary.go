package codec

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
)

// binaryCodec is the default compact format: msgpack over nodeRecord /
// edgeRecord, with Unix-millisecond timestamps.
type binaryCodec struct{}

func (binaryCodec) Format() Format { return FormatBinary }

func (c binaryCodec) EncodeNode(n *graph.Node) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, serErr("encode node", fmt.Errorf("panic: %v", r))
		}
	}()
	rec := nodeToRecord(n)
	b, err := msgpack.Marshal(&rec)
	if err != nil {
		return nil, serErr("encode node", err)
	}
	return b, nil
}

func (c binaryCodec) DecodeNode(b []byte) (n *graph.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = nil, deserErr("decode node", fmt.Errorf("panic: %v", r))
		}
	}()
	var rec nodeRecord
	if err := msgpack.Unmarshal(b, &rec); err != nil {
		return nil, deserErr("decode node", err)
	}
	node, err := recordToNode(rec, false)
	if err != nil {
		return nil, deserErr("decode node", err)
	}
	return node, nil
}

func (c binaryCodec) EncodeEdge(e *graph.Edge) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, serErr("encode edge", fmt.Errorf("panic: %v", r))
		}
	}()
	rec := edgeToRecord(e)
	b, err := msgpack.Marshal(&rec)
	if err != nil {
		return nil, serErr("encode edge", err)
	}
	return b, nil
}

func (c binaryCodec) DecodeEdge(b []byte) (e *graph.Edge, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, err = nil, deserErr("decode edge", fmt.Errorf("panic: %v", r))
		}
	}()
	var rec edgeRecord
	if err := msgpack.Unmarshal(b, &rec); err != nil {
		return nil, deserErr("decode edge", err)
	}
	edge, err := recordToEdge(rec, false)
	if err != nil {
		return nil, deserErr("decode edge", err)
	}
	return edge, nil
}
