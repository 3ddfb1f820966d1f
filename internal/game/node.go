package game

import (
	"fmt"
	"math/rand"
)

// NodeTags is the rotating label set assigned to nodes by column index.
var NodeTags = []string{
	"general-purpose",
	"compute-optimized",
	"memory-optimized",
	"storage-optimized",
	"gpu-enabled",
}

// PlacedPod is the ledger record of one pod a node has admitted.
type PlacedPod struct {
	ID     int64
	Kind   string
	Role   Role
	Demand Resources
}

// Node is one bottom-row bucket with finite capacity in four dimensions.
// Used never exceeds Total on any dimension.
type Node struct {
	Index int
	Tag   string
	Used  Resources
	Total Resources
	Pods  []PlacedPod
}

// NewNode samples a total capacity per dimension from the catalog's node
// tiers. A zero GPU total means the node cannot host GPU-demanding pods.
func NewNode(index int, cat *Catalog, rng *rand.Rand) *Node {
	return &Node{
		Index: index,
		Tag:   NodeTags[index%len(NodeTags)],
		Total: Resources{
			CPU:     sample(rng, cat.Nodes.CPU),
			Memory:  sample(rng, cat.Nodes.Memory),
			Storage: sample(rng, cat.Nodes.Storage),
			GPU:     sample(rng, cat.Nodes.GPU),
		},
	}
}

func (n *Node) Name() string {
	return fmt.Sprintf("node-%d", n.Index)
}

// CanAccept reports whether demand fits the remaining capacity on every
// dimension. Filling a node exactly is allowed.
func (n *Node) CanAccept(demand Resources) bool {
	for _, d := range Dimensions {
		if n.Used.Get(d)+demand.Get(d) > n.Total.Get(d) {
			return false
		}
	}
	return true
}

// Insufficient lists the dimensions demand does not fit on.
func (n *Node) Insufficient(demand Resources) []Dimension {
	var dims []Dimension
	for _, d := range Dimensions {
		if n.Used.Get(d)+demand.Get(d) > n.Total.Get(d) {
			dims = append(dims, d)
		}
	}
	return dims
}

// Consume books demand against the node and records the pod. Callers
// check CanAccept first; consuming past capacity is a programming error.
func (n *Node) Consume(id int64, kind *PieceKind, demand Resources) {
	if !n.CanAccept(demand) {
		panic(fmt.Sprintf("%s: consume past capacity (%s)", n.Name(), demand.Label()))
	}
	n.Used = n.Used.Add(demand)
	n.Pods = append(n.Pods, PlacedPod{ID: id, Kind: kind.Name, Role: kind.Role, Demand: demand})
}

// GrantCapacity raises total capacity by the positive dimensions of
// delta. Capacity never decreases.
func (n *Node) GrantCapacity(delta Resources) {
	for _, d := range Dimensions {
		if v := delta.Get(d); v > 0 {
			n.Total.Set(d, n.Total.Get(d)+v)
		}
	}
}

// Utilization is the combined cpu+memory usage fraction the scoring
// heuristics read.
func (n *Node) Utilization() float64 {
	den := n.Total.CPU + n.Total.Memory
	if den == 0 {
		return 0
	}
	return float64(n.Used.CPU+n.Used.Memory) / float64(den)
}

// CPURatio is used cpu over total cpu.
func (n *Node) CPURatio() float64 {
	if n.Total.CPU == 0 {
		return 0
	}
	return float64(n.Used.CPU) / float64(n.Total.CPU)
}

// PodsOfRole counts hosted pods of the given role.
func (n *Node) PodsOfRole(role Role) int {
	count := 0
	for _, p := range n.Pods {
		if p.Role == role {
			count++
		}
	}
	return count
}

// HasRole reports whether at least one pod of the role runs here.
func (n *Node) HasRole(role Role) bool {
	return n.PodsOfRole(role) > 0
}
