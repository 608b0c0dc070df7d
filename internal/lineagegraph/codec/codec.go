package codec

import (
	"fmt"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/errs"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
)

// Format selects which wire representation a Codec uses.
type Format string

const (
	// FormatBinary is the default, compact, non-human-readable format.
	FormatBinary Format = "binary"
	// FormatText is a self-describing JSON format kept for debugging.
	FormatText Format = "text"
)

// Codec serializes graph.Node and graph.Edge values to and from bytes.
// Implementations never panic on malformed input; they return a
// *errs.Error of kind KindDeserialization instead.
type Codec interface {
	Format() Format
	EncodeNode(n *graph.Node) ([]byte, error)
	DecodeNode(b []byte) (*graph.Node, error)
	EncodeEdge(e *graph.Edge) ([]byte, error)
	DecodeEdge(b []byte) (*graph.Edge, error)
}

// New returns the Codec for the requested format.
func New(format Format) (Codec, error) {
	switch format {
	case FormatBinary, "":
		return binaryCodec{}, nil
	case FormatText:
		return textCodec{}, nil
	default:
		return nil, errs.Validation("format", fmt.Sprintf("unknown codec format %q", format))
	}
}

func unknownKindError(kind string) error {
	return errs.Wrap(errs.KindDeserialization, "unknown node kind", fmt.Errorf("kind=%q", kind))
}

// deserErr wraps a lower-level decode failure (msgpack/json) in a
// KindDeserialization *errs.Error. Panics on corrupt input are
// recovered by the Decode methods of the binary and text codecs.
func deserErr(context string, cause error) error {
	return errs.Wrap(errs.KindDeserialization, context, cause)
}

func serErr(context string, cause error) error {
	return errs.Wrap(errs.KindSerialization, context, cause)
}
