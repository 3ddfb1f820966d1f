package game

import (
	"errors"
	"fmt"
	"math/rand"
)

// Category separates workload pieces from capacity pieces.
type Category int

const (
	CategoryPod Category = iota
	CategoryUpgrade
)

func (c Category) String() string {
	if c == CategoryUpgrade {
		return "upgrade"
	}
	return "pod"
}

// Role names the service role a pod kind plays in the cluster.
type Role string

const (
	RoleFrontend Role = "frontend"
	RoleBackend  Role = "backend"
	RoleDatabase Role = "database"
	RoleCache    Role = "cache"
	RoleMonitor  Role = "monitor"
	RoleMLTask   Role = "ml-task"
)

// Tiers holds the discrete per-dimension values a kind samples from.
// Quantities come in steps, never from a continuum. A nil list means the
// dimension is always zero for that kind.
type Tiers struct {
	CPU     []int
	Memory  []int
	Storage []int
	GPU     []int
}

func (t Tiers) ForDim(d Dimension) []int {
	switch d {
	case DimCPU:
		return t.CPU
	case DimMemory:
		return t.Memory
	case DimStorage:
		return t.Storage
	case DimGPU:
		return t.GPU
	default:
		return nil
	}
}

func (t Tiers) Empty() bool {
	return len(t.CPU)+len(t.Memory)+len(t.Storage)+len(t.GPU) == 0
}

// PieceKind is one static catalog entry. Amounts are demand tiers for
// pods and grant tiers for upgrades.
type PieceKind struct {
	Name         string
	Symbol       string
	Color        string // hex, rendered by the UI layer
	Category     Category
	Role         Role   // pods only
	PreferredTag string // pods only, matches a node tag for the affinity bonus
	Dependencies []Role // pods only, advisory
	Amounts      Tiers
}

// Catalog enumerates every spawnable piece kind plus the node capacity
// tiers the board samples at build time.
type Catalog struct {
	Pods     []PieceKind
	Upgrades []PieceKind
	Nodes    Tiers // node total-capacity tiers; the GPU list may contain zeros
}

// KindByName looks a kind up across both categories.
func (c *Catalog) KindByName(name string) *PieceKind {
	for i := range c.Pods {
		if c.Pods[i].Name == name {
			return &c.Pods[i]
		}
	}
	for i := range c.Upgrades {
		if c.Upgrades[i].Name == name {
			return &c.Upgrades[i]
		}
	}
	return nil
}

// Validate rejects a catalog the engine cannot sample from.
func (c *Catalog) Validate() error {
	if len(c.Pods) == 0 {
		return errors.New("catalog: no pod kinds")
	}
	if len(c.Upgrades) == 0 {
		return errors.New("catalog: no upgrade kinds")
	}
	for i := range c.Pods {
		k := &c.Pods[i]
		if k.Name == "" {
			return fmt.Errorf("catalog: pod kind %d has no name", i)
		}
		if k.Role == "" {
			return fmt.Errorf("catalog: pod kind %q has no role", k.Name)
		}
		if len(k.Amounts.CPU) == 0 || len(k.Amounts.Memory) == 0 {
			return fmt.Errorf("catalog: pod kind %q needs cpu and memory tiers", k.Name)
		}
	}
	for i := range c.Upgrades {
		k := &c.Upgrades[i]
		if k.Name == "" {
			return fmt.Errorf("catalog: upgrade kind %d has no name", i)
		}
		if k.Amounts.Empty() {
			return fmt.Errorf("catalog: upgrade kind %q grants nothing", k.Name)
		}
	}
	if len(c.Nodes.CPU) == 0 || len(c.Nodes.Memory) == 0 || len(c.Nodes.Storage) == 0 || len(c.Nodes.GPU) == 0 {
		return errors.New("catalog: node capacity tiers incomplete")
	}
	return nil
}

// MissingDependencies lists declared dependency roles the node does not
// host yet. Advisory only: shown as scheduling hints, never scored and
// never blocking.
func MissingDependencies(kind *PieceKind, n *Node) []Role {
	var missing []Role
	for _, role := range kind.Dependencies {
		if !n.HasRole(role) {
			missing = append(missing, role)
		}
	}
	return missing
}

// sample picks uniformly from a tier list. An empty list yields zero.
func sample(rng *rand.Rand, tiers []int) int {
	if len(tiers) == 0 {
		return 0
	}
	return tiers[rng.Intn(len(tiers))]
}

// DefaultCatalog is the built-in piece set used when no catalog file is
// given.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Pods: []PieceKind{
			{
				Name:         "frontend",
				Symbol:       "FE",
				Color:        "#5FD7FF",
				Category:     CategoryPod,
				Role:         RoleFrontend,
				PreferredTag: "general-purpose",
				Dependencies: []Role{RoleBackend},
				Amounts: Tiers{
					CPU:     []int{1, 2, 4},
					Memory:  []int{1, 2, 4},
					Storage: []int{1, 2, 4},
				},
			},
			{
				Name:         "backend",
				Symbol:       "BE",
				Color:        "#7DCE13",
				Category:     CategoryPod,
				Role:         RoleBackend,
				PreferredTag: "compute-optimized",
				Dependencies: []Role{RoleDatabase, RoleCache},
				Amounts: Tiers{
					CPU:     []int{2, 4, 8},
					Memory:  []int{2, 4, 8},
					Storage: []int{2, 4, 8},
				},
			},
			{
				Name:         "database",
				Symbol:       "DB",
				Color:        "#FFAF00",
				Category:     CategoryPod,
				Role:         RoleDatabase,
				PreferredTag: "storage-optimized",
				Amounts: Tiers{
					CPU:     []int{2, 4, 8},
					Memory:  []int{4, 8, 16},
					Storage: []int{16, 32, 64},
				},
			},
			{
				Name:         "cache",
				Symbol:       "CA",
				Color:        "#FF5F87",
				Category:     CategoryPod,
				Role:         RoleCache,
				PreferredTag: "memory-optimized",
				Amounts: Tiers{
					CPU:     []int{1, 2, 4},
					Memory:  []int{8, 16, 32},
					Storage: []int{1, 2},
				},
			},
			{
				Name:         "monitor",
				Symbol:       "MO",
				Color:        "#87AFAF",
				Category:     CategoryPod,
				Role:         RoleMonitor,
				PreferredTag: "general-purpose",
				Amounts: Tiers{
					CPU:     []int{1, 2},
					Memory:  []int{1, 2, 4},
					Storage: []int{4, 8, 16},
				},
			},
			{
				Name:         "ml-task",
				Symbol:       "ML",
				Color:        "#AF87FF",
				Category:     CategoryPod,
				Role:         RoleMLTask,
				PreferredTag: "gpu-enabled",
				Dependencies: []Role{RoleDatabase},
				Amounts: Tiers{
					CPU:     []int{4, 8, 16},
					Memory:  []int{8, 16, 32},
					Storage: []int{8, 16, 32},
					GPU:     []int{1, 2},
				},
			},
		},
		Upgrades: []PieceKind{
			{
				Name:     "cpu-upgrade",
				Symbol:   "+C",
				Color:    "#00D7AF",
				Category: CategoryUpgrade,
				Amounts:  Tiers{CPU: []int{8, 16, 32}},
			},
			{
				Name:     "memory-upgrade",
				Symbol:   "+M",
				Color:    "#5FAFFF",
				Category: CategoryUpgrade,
				Amounts:  Tiers{Memory: []int{8, 16, 32}},
			},
			{
				Name:     "storage-upgrade",
				Symbol:   "+S",
				Color:    "#D7AF5F",
				Category: CategoryUpgrade,
				Amounts:  Tiers{Storage: []int{64, 128, 256}},
			},
			{
				Name:     "gpu-upgrade",
				Symbol:   "+G",
				Color:    "#FF87D7",
				Category: CategoryUpgrade,
				Amounts:  Tiers{GPU: []int{1, 2}},
			},
		},
		Nodes: Tiers{
			CPU:     []int{16, 32, 48, 64},
			Memory:  []int{32, 64, 128},
			Storage: []int{128, 256, 512},
			GPU:     []int{0, 0, 0, 2, 4},
		},
	}
}
