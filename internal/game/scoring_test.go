package game

import (
	"math"
	"testing"
)

func TestScorePlacementTerms(t *testing.T) {
	rules := DefaultRules()
	cat := DefaultCatalog()
	be := cat.KindByName("backend")

	// single half-used node keeps every utilization bonus live
	n := fixedNode(Resources{CPU: 16, Memory: 16})
	n.Tag = "compute-optimized"
	n.Used = Resources{CPU: 8, Memory: 8}
	nodes := []*Node{n}
	p := &Piece{Kind: be, Amount: Resources{CPU: 2, Memory: 2}}

	sb := scorePlacement(rules, nodes, n, p, 2, 3)
	if sb.Base != 100 {
		t.Errorf("Base = %d", sb.Base)
	}
	if sb.Affinity != 200 {
		t.Errorf("Affinity = %d, backend prefers compute-optimized", sb.Affinity)
	}
	// util 0.5: below the 0.9 cutoff, above the 0.3 mean with zero spread
	if sb.Headroom != 150 {
		t.Errorf("Headroom = %d", sb.Headroom)
	}
	if sb.Balance != 200 {
		t.Errorf("Balance = %d", sb.Balance)
	}
	if sb.Constraints != 200 {
		t.Errorf("Constraints = %d, want 2 hits at 100", sb.Constraints)
	}
	if want := (100 + 200 + 150 + 200 + 200) * 3; sb.Total != want {
		t.Errorf("Total = %d, want %d", sb.Total, want)
	}
}

// A pod on its preferred node with plenty of headroom, a lightly loaded
// cluster and no active policies is worth exactly base + affinity +
// headroom, times the level.
func TestScorePreferredNodeLightLoad(t *testing.T) {
	rules := DefaultRules()
	cat := DefaultCatalog()

	n := fixedNode(Resources{CPU: 16, Memory: 16})
	n.Tag = "compute-optimized"
	n.Used = Resources{CPU: 1, Memory: 1} // util 0.0625: under the balance floor
	p := &Piece{Kind: cat.KindByName("backend"), Amount: Resources{CPU: 1, Memory: 1}}

	for _, level := range []int{1, 2, 5} {
		sb := scorePlacement(rules, []*Node{n}, n, p, 0, level)
		if want := 450 * level; sb.Total != want {
			t.Errorf("level %d: Total = %d, want %d", level, sb.Total, want)
		}
	}
}

func TestScorePlacementNoBonuses(t *testing.T) {
	rules := DefaultRules()
	cat := DefaultCatalog()

	// saturated node on a mismatched tag: only the base survives
	n := fixedNode(Resources{CPU: 16, Memory: 16})
	n.Tag = "general-purpose"
	n.Used = Resources{CPU: 16, Memory: 16}
	p := &Piece{Kind: cat.KindByName("backend"), Amount: Resources{}}

	sb := scorePlacement(rules, []*Node{n}, n, p, 0, 1)
	if sb.Affinity != 0 || sb.Headroom != 0 || sb.Constraints != 0 {
		t.Errorf("unexpected bonuses: %+v", sb)
	}
	// util 1.0 with zero spread fails the headroom cutoff but not balance
	if sb.Balance != 200 {
		t.Errorf("Balance = %d", sb.Balance)
	}
	if sb.Total != (100+200)*1 {
		t.Errorf("Total = %d", sb.Total)
	}
}

func TestUtilizationSpread(t *testing.T) {
	a := fixedNode(Resources{CPU: 8, Memory: 8})
	a.Used = Resources{CPU: 8, Memory: 8} // 1.0
	b := fixedNode(Resources{CPU: 8, Memory: 8})
	b.Used = Resources{CPU: 4, Memory: 4} // 0.5
	c := fixedNode(Resources{CPU: 8, Memory: 8}) // 0.0

	maxU, minU, avgU := utilizationSpread([]*Node{a, b, c})
	if maxU != 1.0 || minU != 0.0 {
		t.Fatalf("spread = [%v, %v]", minU, maxU)
	}
	if math.Abs(avgU-0.5) > 1e-9 {
		t.Fatalf("avg = %v, want 0.5", avgU)
	}

	maxU, minU, avgU = utilizationSpread(nil)
	if maxU != 0 || minU != 0 || avgU != 0 {
		t.Fatal("empty node list must report zeros")
	}
}

func TestCPUVariance(t *testing.T) {
	even := []*Node{
		fixedNode(Resources{CPU: 16, Memory: 16}),
		fixedNode(Resources{CPU: 16, Memory: 16}),
	}
	even[0].Used = Resources{CPU: 8}
	even[1].Used = Resources{CPU: 8}
	if got := cpuVariance(even); got != 0 {
		t.Fatalf("even spread variance = %v", got)
	}

	skewed := []*Node{
		fixedNode(Resources{CPU: 16, Memory: 16}),
		fixedNode(Resources{CPU: 16, Memory: 16}),
	}
	skewed[0].Used = Resources{CPU: 16}
	// ratios 1 and 0: mean 0.5, variance 0.25
	if got := cpuVariance(skewed); math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("skewed variance = %v, want 0.25", got)
	}

	if got := cpuVariance(nil); got != 0 {
		t.Fatalf("empty variance = %v", got)
	}
}
