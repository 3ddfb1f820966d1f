package game

import (
	"fmt"
	"strings"
)

// Dimension indexes one of the four tracked resource dimensions.
type Dimension int

const (
	DimCPU Dimension = iota
	DimMemory
	DimStorage
	DimGPU
)

// Dimensions lists every dimension in display order.
var Dimensions = [4]Dimension{DimCPU, DimMemory, DimStorage, DimGPU}

func (d Dimension) String() string {
	switch d {
	case DimCPU:
		return "cpu"
	case DimMemory:
		return "memory"
	case DimStorage:
		return "storage"
	case DimGPU:
		return "gpu"
	default:
		return "unknown"
	}
}

// Short is the compact label used in bars and event lines.
func (d Dimension) Short() string {
	switch d {
	case DimCPU:
		return "cpu"
	case DimMemory:
		return "mem"
	case DimStorage:
		return "disk"
	case DimGPU:
		return "gpu"
	default:
		return "?"
	}
}

// Resources holds one quantity per dimension: CPU in compute units,
// Memory and Storage in Gi, GPU in devices.
type Resources struct {
	CPU     int
	Memory  int
	Storage int
	GPU     int
}

func (r Resources) Get(d Dimension) int {
	switch d {
	case DimCPU:
		return r.CPU
	case DimMemory:
		return r.Memory
	case DimStorage:
		return r.Storage
	case DimGPU:
		return r.GPU
	default:
		return 0
	}
}

func (r *Resources) Set(d Dimension, v int) {
	switch d {
	case DimCPU:
		r.CPU = v
	case DimMemory:
		r.Memory = v
	case DimStorage:
		r.Storage = v
	case DimGPU:
		r.GPU = v
	}
}

// Add returns the per-dimension sum.
func (r Resources) Add(o Resources) Resources {
	return Resources{
		CPU:     r.CPU + o.CPU,
		Memory:  r.Memory + o.Memory,
		Storage: r.Storage + o.Storage,
		GPU:     r.GPU + o.GPU,
	}
}

func (r Resources) IsZero() bool {
	return r == Resources{}
}

// Label formats the non-zero dimensions, e.g. "cpu=4 mem=8Gi gpu=1".
func (r Resources) Label() string {
	var parts []string
	for _, d := range Dimensions {
		v := r.Get(d)
		if v == 0 {
			continue
		}
		switch d {
		case DimMemory, DimStorage:
			parts = append(parts, fmt.Sprintf("%s=%dGi", d.Short(), v))
		default:
			parts = append(parts, fmt.Sprintf("%s=%d", d.Short(), v))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// dimList joins dimension shorts: "cpu, gpu".
func dimList(dims []Dimension) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = d.Short()
	}
	return strings.Join(parts, ", ")
}
