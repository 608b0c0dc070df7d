package kv

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/boltdb/bolt"
	"github.com/sirupsen/logrus"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/codec"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/errs"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

var (
	bucketNodes         = []byte("nodes")
	bucketEdges         = []byte("edges")
	bucketSessionIndex  = []byte("session_index")
	bucketOutgoingIndex = []byte("outgoing_index")
	bucketIncomingIndex = []byte("incoming_index")

	allBuckets = [][]byte{bucketNodes, bucketEdges, bucketSessionIndex, bucketOutgoingIndex, bucketIncomingIndex}
)

// BoltBackend is the embedded KV backend, backed by a single BoltDB file.
type BoltBackend struct {
	db    *bolt.DB
	codec codec.Codec
	log   *logrus.Entry
	path  string
}

// Open opens (creating if absent) a BoltDB file at path and ensures all
// five logical keyspaces exist as buckets.
func Open(path string, c codec.Codec) (*BoltBackend, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errs.Wrap(errs.KindIO, "create backend directory", err)
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errs.Wrap(errs.KindStorage, "open backend file", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %q: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errs.Wrap(errs.KindStorage, "create buckets", err)
	}
	return &BoltBackend{db: db, codec: c, log: logrus.WithField("component", "kv"), path: path}, nil
}

// Close closes the underlying BoltDB file.
func (b *BoltBackend) Close() error {
	return b.db.Close()
}

// Flush forces a durability sync. BoltDB fsyncs on every committed
// transaction, so this is a no-op kept to satisfy the Backend contract
// for callers migrating to a backend that batches commits.
func (b *BoltBackend) Flush() error { return nil }

func sessionIndexKey(sid ids.SessionID, nodeID ids.NodeID) []byte {
	return append(append([]byte{}, sid.Bytes()...), nodeID.Bytes()...)
}

func edgeIndexKey(nodeID ids.NodeID, edgeID ids.EdgeID) []byte {
	return append(append([]byte{}, nodeID.Bytes()...), edgeID.Bytes()...)
}

// PutNode serializes and writes n to the nodes bucket, then maintains
// session_index: Session nodes index under their own SessionID, Prompt
// nodes under their SessionID, Response nodes under their Prompt's
// SessionID (resolved with one extra read). ToolInvocation, Agent and
// Template nodes are not session-indexed.
func (b *BoltBackend) PutNode(n *graph.Node) error {
	payload, err := b.codec.EncodeNode(n)
	if err != nil {
		return err
	}
	nodeID := n.ID()

	return b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketNodes).Put(nodeID.Bytes(), payload); err != nil {
			return errs.Wrap(errs.KindStorage, "put node", err)
		}

		var sid *ids.SessionID
		switch n.Type {
		case graph.NodeTypeSession:
			sid = &n.Session.ID
		case graph.NodeTypePrompt:
			sid = &n.Prompt.SessionID
		case graph.NodeTypeResponse:
			promptRaw := tx.Bucket(bucketNodes).Get(n.Response.PromptID.Bytes())
			if promptRaw == nil {
				return errs.NodeNotFound(n.Response.PromptID.String())
			}
			promptNode, err := b.codec.DecodeNode(promptRaw)
			if err != nil {
				return err
			}
			if promptNode.Type != graph.NodeTypePrompt {
				return errs.InvalidNodeType(string(graph.NodeTypePrompt), string(promptNode.Type))
			}
			sid = &promptNode.Prompt.SessionID
		}
		if sid != nil {
			if err := tx.Bucket(bucketSessionIndex).Put(sessionIndexKey(*sid, nodeID), []byte{}); err != nil {
				return errs.Wrap(errs.KindStorage, "put session index", err)
			}
		}
		return nil
	})
}

// GetNode reads and decodes the node stored under id, or returns a
// KindNodeNotFound error.
func (b *BoltBackend) GetNode(id ids.NodeID) (*graph.Node, error) {
	var n *graph.Node
	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketNodes).Get(id.Bytes())
		if raw == nil {
			return errs.NodeNotFound(id.String())
		}
		decoded, err := b.codec.DecodeNode(raw)
		if err != nil {
			return err
		}
		n = decoded
		return nil
	})
	return n, err
}

// DeleteNode removes id from the nodes bucket. Per the documented design
// choice (see DESIGN.md "Open Question decisions"), this does not purge
// outgoing_index/incoming_index/session_index entries that reference id;
// readers tolerate the resulting dangling references by skipping them.
func (b *BoltBackend) DeleteNode(id ids.NodeID) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketNodes).Delete(id.Bytes()); err != nil {
			return errs.Wrap(errs.KindStorage, "delete node", err)
		}
		return nil
	})
}

// PutEdge serializes and writes e to the edges bucket, then indexes it
// under both outgoing_index (by From) and incoming_index (by To).
func (b *BoltBackend) PutEdge(e *graph.Edge) error {
	payload, err := b.codec.EncodeEdge(e)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketEdges).Put(e.ID.Bytes(), payload); err != nil {
			return errs.Wrap(errs.KindStorage, "put edge", err)
		}
		if err := tx.Bucket(bucketOutgoingIndex).Put(edgeIndexKey(e.From, e.ID), []byte{}); err != nil {
			return errs.Wrap(errs.KindStorage, "put outgoing index", err)
		}
		if err := tx.Bucket(bucketIncomingIndex).Put(edgeIndexKey(e.To, e.ID), []byte{}); err != nil {
			return errs.Wrap(errs.KindStorage, "put incoming index", err)
		}
		return nil
	})
}

// GetEdge reads and decodes the edge stored under id, or returns a
// KindEdgeNotFound error.
func (b *BoltBackend) GetEdge(id ids.EdgeID) (*graph.Edge, error) {
	var e *graph.Edge
	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketEdges).Get(id.Bytes())
		if raw == nil {
			return errs.EdgeNotFound(id.String())
		}
		decoded, err := b.codec.DecodeEdge(raw)
		if err != nil {
			return err
		}
		e = decoded
		return nil
	})
	return e, err
}

// DeleteEdge removes id from the edges bucket (index entries are left
// dangling, same rationale as DeleteNode).
func (b *BoltBackend) DeleteEdge(id ids.EdgeID) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketEdges).Delete(id.Bytes()); err != nil {
			return errs.Wrap(errs.KindStorage, "delete edge", err)
		}
		return nil
	})
}

// SessionNodes prefix-scans session_index under sid and fetches each
// referenced node from the nodes bucket. A dangling reference (the node
// was deleted but its session_index entry was not) is logged and
// skipped rather than treated as an error.
func (b *BoltBackend) SessionNodes(sid ids.SessionID) ([]*graph.Node, error) {
	var out []*graph.Node
	err := b.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketSessionIndex).Cursor()
		prefix := sid.Bytes()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			if len(k) < 32 {
				continue
			}
			nodeID, err := ids.NodeIDFromBytes(k[16:32])
			if err != nil {
				b.log.WithError(err).Warn("malformed session index key")
				continue
			}
			raw := tx.Bucket(bucketNodes).Get(nodeID.Bytes())
			if raw == nil {
				b.log.WithField("node_id", nodeID.String()).Warn("dangling session index entry, skipping")
				continue
			}
			n, err := b.codec.DecodeNode(raw)
			if err != nil {
				b.log.WithError(err).Warn("failed to decode indexed node, skipping")
				continue
			}
			out = append(out, n)
		}
		return nil
	})
	return out, err
}

// CountSessionNodes returns the session_index cardinality for sid
// without materializing any node.
func (b *BoltBackend) CountSessionNodes(sid ids.SessionID) (uint64, error) {
	var count uint64
	err := b.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketSessionIndex).Cursor()
		prefix := sid.Bytes()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			count++
		}
		return nil
	})
	return count, err
}

func (b *BoltBackend) scanEdgeIndex(bucket []byte, nodeID ids.NodeID) ([]*graph.Edge, error) {
	var out []*graph.Edge
	err := b.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucket).Cursor()
		prefix := nodeID.Bytes()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			if len(k) < 32 {
				continue
			}
			edgeID, err := ids.EdgeIDFromBytes(k[16:32])
			if err != nil {
				b.log.WithError(err).Warn("malformed edge index key")
				continue
			}
			raw := tx.Bucket(bucketEdges).Get(edgeID.Bytes())
			if raw == nil {
				b.log.WithField("edge_id", edgeID.String()).Warn("dangling edge index entry, skipping")
				continue
			}
			e, err := b.codec.DecodeEdge(raw)
			if err != nil {
				b.log.WithError(err).Warn("failed to decode indexed edge, skipping")
				continue
			}
			out = append(out, e)
		}
		return nil
	})
	return out, err
}

// OutgoingEdges returns every edge whose From equals id.
func (b *BoltBackend) OutgoingEdges(id ids.NodeID) ([]*graph.Edge, error) {
	return b.scanEdgeIndex(bucketOutgoingIndex, id)
}

// IncomingEdges returns every edge whose To equals id.
func (b *BoltBackend) IncomingEdges(id ids.NodeID) ([]*graph.Edge, error) {
	return b.scanEdgeIndex(bucketIncomingIndex, id)
}

// Stats reports node/edge/session cardinality and on-disk size.
func (b *BoltBackend) Stats() (Stats, error) {
	var s Stats
	err := b.db.View(func(tx *bolt.Tx) error {
		s.NodeCount = uint64(tx.Bucket(bucketNodes).Stats().KeyN)
		s.EdgeCount = uint64(tx.Bucket(bucketEdges).Stats().KeyN)

		seen := map[ids.SessionID]struct{}{}
		c := tx.Bucket(bucketSessionIndex).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if len(k) < 16 {
				continue
			}
			sid, err := ids.SessionIDFromBytes(k[:16])
			if err != nil {
				continue
			}
			seen[sid] = struct{}{}
		}
		s.SessionCount = uint64(len(seen))
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	info, err := os.Stat(b.path)
	if err != nil {
		return Stats{}, errs.Wrap(errs.KindIO, "stat backend file", err)
	}
	s.StorageBytes = uint64(info.Size())
	return s, nil
}

var _ Backend = (*BoltBackend)(nil)
