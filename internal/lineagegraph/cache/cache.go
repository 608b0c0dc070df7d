// Package cache provides a bounded, concurrent LRU cache for nodes and
// edges with independent capacities and no negative caching.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

// EdgeCapacityMultiplier is the default ratio of edge capacity to node
// capacity: edges are smaller and more numerous per read than nodes.
const EdgeCapacityMultiplier = 5

// Cache is a write-through-on-miss LRU cache for nodes and edges.
// Get updates recency and so takes the LRU's exclusive lock, as Put
// does: concurrent Get and Put calls on the same cache serialize
// briefly. A miss is never itself cached.
type Cache struct {
	nodes *lru.Cache[ids.NodeID, *graph.Node]
	edges *lru.Cache[ids.EdgeID, *graph.Edge]
}

// New builds a Cache sized for nodeCapacity entries (edge capacity is
// nodeCapacity * EdgeCapacityMultiplier).
func New(nodeCapacity int) (*Cache, error) {
	if nodeCapacity <= 0 {
		nodeCapacity = 1
	}
	nodes, err := lru.New[ids.NodeID, *graph.Node](nodeCapacity)
	if err != nil {
		return nil, err
	}
	edges, err := lru.New[ids.EdgeID, *graph.Edge](nodeCapacity * EdgeCapacityMultiplier)
	if err != nil {
		return nil, err
	}
	return &Cache{nodes: nodes, edges: edges}, nil
}

// NewFromBudgetMB derives node capacity from a configured MB budget, per
// the convention cache_size_mb -> node capacity = mb * 1000.
func NewFromBudgetMB(mb int) (*Cache, error) {
	return New(mb * 1000)
}

// GetNode returns the cached node for id, if present.
func (c *Cache) GetNode(id ids.NodeID) (*graph.Node, bool) {
	return c.nodes.Get(id)
}

// PutNode inserts n into the cache. Callers insert only after a
// successful backend write or read (write-through-on-miss); Cache
// itself never fetches on a miss.
func (c *Cache) PutNode(n *graph.Node) {
	c.nodes.Add(n.ID(), n)
}

// InvalidateNode evicts id from the node cache, used after in-place
// updates to Agent, Template, and ToolInvocation nodes.
func (c *Cache) InvalidateNode(id ids.NodeID) {
	c.nodes.Remove(id)
}

// GetEdge returns the cached edge for id, if present.
func (c *Cache) GetEdge(id ids.EdgeID) (*graph.Edge, bool) {
	return c.edges.Get(id)
}

// PutEdge inserts e into the cache.
func (c *Cache) PutEdge(e *graph.Edge) {
	c.edges.Add(e.ID, e)
}

// InvalidateEdge evicts id from the edge cache.
func (c *Cache) InvalidateEdge(id ids.EdgeID) {
	c.edges.Remove(id)
}

// NodeLen reports the current node cache occupancy, for metrics/stats.
func (c *Cache) NodeLen() int { return c.nodes.Len() }

// EdgeLen reports the current edge cache occupancy, for metrics/stats.
func (c *Cache) EdgeLen() int { return c.edges.Len() }
