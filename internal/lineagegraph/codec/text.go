package codec

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
)

// textCodec is the self-describing debugging format: sonic-encoded JSON
// over nodeRecord / edgeRecord, with RFC-3339 timestamps.
type textCodec struct{}

func (textCodec) Format() Format { return FormatText }

func (c textCodec) EncodeNode(n *graph.Node) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, serErr("encode node", fmt.Errorf("panic: %v", r))
		}
	}()
	rec := nodeToRecord(n)
	b, err := sonic.Marshal(&rec)
	if err != nil {
		return nil, serErr("encode node", err)
	}
	return b, nil
}

func (c textCodec) DecodeNode(b []byte) (n *graph.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = nil, deserErr("decode node", fmt.Errorf("panic: %v", r))
		}
	}()
	var rec nodeRecord
	if err := sonic.Unmarshal(b, &rec); err != nil {
		return nil, deserErr("decode node", err)
	}
	node, err := recordToNode(rec, true)
	if err != nil {
		return nil, deserErr("decode node", err)
	}
	return node, nil
}

func (c textCodec) EncodeEdge(e *graph.Edge) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, serErr("encode edge", fmt.Errorf("panic: %v", r))
		}
	}()
	rec := edgeToRecord(e)
	b, err := sonic.Marshal(&rec)
	if err != nil {
		return nil, serErr("encode edge", err)
	}
	return b, nil
}

func (c textCodec) DecodeEdge(b []byte) (e *graph.Edge, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, err = nil, deserErr("decode edge", fmt.Errorf("panic: %v", r))
		}
	}()
	var rec edgeRecord
	if err := sonic.Unmarshal(b, &rec); err != nil {
		return nil, deserErr("decode edge", err)
	}
	edge, err := recordToEdge(rec, true)
	if err != nil {
		return nil, deserErr("decode edge", err)
	}
	return edge, nil
}
