// Package catalog loads piece-set manifests. Manifests speak the
// Kubernetes resource dialect: quantities like "500m" or "8Gi" under
// names like cpu, memory and nvidia.com/gpu, parsed with the same
// apimachinery types the rest of the ecosystem uses and converted to the
// engine's whole units.
package catalog

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/ThanhChinhBK/kubebucket/internal/game"
)

// ResourceGPU is the extended resource name GPU tiers are listed under.
const ResourceGPU corev1.ResourceName = "nvidia.com/gpu"

type kindManifest struct {
	Name         string              `yaml:"name"`
	Symbol       string              `yaml:"symbol"`
	Color        string              `yaml:"color"`
	Role         string              `yaml:"role"`
	PreferredTag string              `yaml:"preferredTag"`
	Dependencies []string            `yaml:"dependencies"`
	Amounts      map[string][]string `yaml:"amounts"`
}

type manifest struct {
	Pods     []kindManifest      `yaml:"pods"`
	Upgrades []kindManifest      `yaml:"upgrades"`
	Nodes    map[string][]string `yaml:"nodes"`
}

// Load reads a manifest file into a validated catalog.
func Load(path string) (*game.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	cat := &game.Catalog{}
	for _, km := range m.Pods {
		kind, err := buildKind(km, game.CategoryPod)
		if err != nil {
			return nil, fmt.Errorf("pod %q: %w", km.Name, err)
		}
		cat.Pods = append(cat.Pods, kind)
	}
	for _, km := range m.Upgrades {
		kind, err := buildKind(km, game.CategoryUpgrade)
		if err != nil {
			return nil, fmt.Errorf("upgrade %q: %w", km.Name, err)
		}
		cat.Upgrades = append(cat.Upgrades, kind)
	}
	nodes, err := parseTiers(m.Nodes)
	if err != nil {
		return nil, fmt.Errorf("nodes: %w", err)
	}
	cat.Nodes = nodes

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func buildKind(km kindManifest, cat game.Category) (game.PieceKind, error) {
	tiers, err := parseTiers(km.Amounts)
	if err != nil {
		return game.PieceKind{}, err
	}
	kind := game.PieceKind{
		Name:         km.Name,
		Symbol:       km.Symbol,
		Color:        km.Color,
		Category:     cat,
		Role:         game.Role(km.Role),
		PreferredTag: km.PreferredTag,
		Amounts:      tiers,
	}
	for _, dep := range km.Dependencies {
		kind.Dependencies = append(kind.Dependencies, game.Role(dep))
	}
	if kind.Symbol == "" && len(km.Name) >= 2 {
		kind.Symbol = strings.ToUpper(km.Name[:2])
	}
	return kind, nil
}

func parseTiers(m map[string][]string) (game.Tiers, error) {
	var t game.Tiers
	for name, list := range m {
		dim, ok := dimensionFor(corev1.ResourceName(name))
		if !ok {
			return t, fmt.Errorf("unknown resource %q", name)
		}
		for _, raw := range list {
			q, err := resource.ParseQuantity(raw)
			if err != nil {
				return t, fmt.Errorf("%s quantity %q: %w", name, raw, err)
			}
			v, err := toUnits(dim, q)
			if err != nil {
				return t, fmt.Errorf("%s quantity %q: %w", name, raw, err)
			}
			appendTier(&t, dim, v)
		}
	}
	return t, nil
}

func dimensionFor(name corev1.ResourceName) (game.Dimension, bool) {
	switch name {
	case corev1.ResourceCPU:
		return game.DimCPU, true
	case corev1.ResourceMemory:
		return game.DimMemory, true
	case corev1.ResourceStorage, corev1.ResourceEphemeralStorage:
		return game.DimStorage, true
	case ResourceGPU:
		return game.DimGPU, true
	default:
		return 0, false
	}
}

// toUnits converts a quantity to engine units: whole cores, Gi, devices.
// Fractional values round up, so "500m" cpu still costs one unit.
func toUnits(d game.Dimension, q resource.Quantity) (int, error) {
	v := q.Value()
	if v < 0 {
		return 0, fmt.Errorf("negative quantity %s", q.String())
	}
	if d == game.DimMemory || d == game.DimStorage {
		const gi = int64(1) << 30
		v = (v + gi - 1) / gi
	}
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("quantity %s out of range", q.String())
	}
	return int(v), nil
}

func appendTier(t *game.Tiers, d game.Dimension, v int) {
	switch d {
	case game.DimCPU:
		t.CPU = append(t.CPU, v)
	case game.DimMemory:
		t.Memory = append(t.Memory, v)
	case game.DimStorage:
		t.Storage = append(t.Storage, v)
	case game.DimGPU:
		t.GPU = append(t.GPU, v)
	}
}
