package game

import (
	"math/rand"
	"testing"
)

func TestSpawnerDeterministic(t *testing.T) {
	cat := DefaultCatalog()
	a := NewSpawner(cat, rand.New(rand.NewSource(42)), 1.0/6.0, 8)
	b := NewSpawner(cat, rand.New(rand.NewSource(42)), 1.0/6.0, 8)
	for i := 0; i < 50; i++ {
		pa, pb := a.Spawn(), b.Spawn()
		if pa.Kind.Name != pb.Kind.Name || pa.Amount != pb.Amount {
			t.Fatalf("draw %d diverged: %s %+v vs %s %+v",
				i, pa.Kind.Name, pa.Amount, pb.Kind.Name, pb.Amount)
		}
	}
}

func TestSpawnerIDsAndPosition(t *testing.T) {
	s := NewSpawner(DefaultCatalog(), rand.New(rand.NewSource(1)), 0.5, 8)
	for want := int64(1); want <= 5; want++ {
		p := s.Spawn()
		if p.ID != want {
			t.Fatalf("spawn ID = %d, want %d", p.ID, want)
		}
		if p.Col != 4 || p.Row != 0 {
			t.Fatalf("spawn position = (%d,%d), want (4,0)", p.Col, p.Row)
		}
	}
}

func TestSpawnerUpgradeChance(t *testing.T) {
	cat := DefaultCatalog()

	onlyPods := NewSpawner(cat, rand.New(rand.NewSource(2)), 0, 8)
	for i := 0; i < 100; i++ {
		if p := onlyPods.Spawn(); !p.IsPod() {
			t.Fatalf("chance 0 spawned upgrade %s", p.Kind.Name)
		}
	}

	onlyUpgrades := NewSpawner(cat, rand.New(rand.NewSource(2)), 1, 8)
	for i := 0; i < 100; i++ {
		if p := onlyUpgrades.Spawn(); !p.IsUpgrade() {
			t.Fatalf("chance 1 spawned pod %s", p.Kind.Name)
		}
	}
}

func TestSpawnerAmountsComeFromTiers(t *testing.T) {
	cat := DefaultCatalog()
	s := NewSpawner(cat, rand.New(rand.NewSource(9)), 0.5, 8)
	for i := 0; i < 200; i++ {
		p := s.Spawn()
		for _, d := range Dimensions {
			v := p.Amount.Get(d)
			tiers := p.Kind.Amounts.ForDim(d)
			if len(tiers) == 0 {
				if v != 0 {
					t.Fatalf("%s: %s = %d with no tier list", p.Kind.Name, d, v)
				}
				continue
			}
			found := false
			for _, tier := range tiers {
				if tier == v {
					found = true
				}
			}
			if !found {
				t.Fatalf("%s: %s = %d not in tiers %v", p.Kind.Name, d, v, tiers)
			}
		}
	}
}
