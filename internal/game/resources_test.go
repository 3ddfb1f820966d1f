package game

import "testing"

func TestResourcesGetSet(t *testing.T) {
	var r Resources
	for i, d := range Dimensions {
		r.Set(d, i+1)
	}
	want := Resources{CPU: 1, Memory: 2, Storage: 3, GPU: 4}
	if r != want {
		t.Fatalf("Set round-trip = %+v, want %+v", r, want)
	}
	for i, d := range Dimensions {
		if got := r.Get(d); got != i+1 {
			t.Errorf("Get(%s) = %d, want %d", d, got, i+1)
		}
	}
}

func TestResourcesAdd(t *testing.T) {
	a := Resources{CPU: 1, Memory: 2, Storage: 3, GPU: 4}
	b := Resources{CPU: 10, Memory: 20, Storage: 30, GPU: 40}
	got := a.Add(b)
	want := Resources{CPU: 11, Memory: 22, Storage: 33, GPU: 44}
	if got != want {
		t.Fatalf("Add = %+v, want %+v", got, want)
	}
}

func TestResourcesIsZero(t *testing.T) {
	if !(Resources{}).IsZero() {
		t.Error("zero value reported non-zero")
	}
	if (Resources{GPU: 1}).IsZero() {
		t.Error("gpu-only demand reported zero")
	}
}

func TestResourcesLabel(t *testing.T) {
	tests := []struct {
		r    Resources
		want string
	}{
		{Resources{}, "none"},
		{Resources{CPU: 4}, "cpu=4"},
		{Resources{Memory: 8}, "mem=8Gi"},
		{Resources{CPU: 2, Memory: 4, Storage: 16, GPU: 1}, "cpu=2 mem=4Gi disk=16Gi gpu=1"},
	}
	for _, tt := range tests {
		if got := tt.r.Label(); got != tt.want {
			t.Errorf("Label(%+v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestDimensionNames(t *testing.T) {
	shorts := map[Dimension]string{
		DimCPU:     "cpu",
		DimMemory:  "mem",
		DimStorage: "disk",
		DimGPU:     "gpu",
	}
	for d, want := range shorts {
		if got := d.Short(); got != want {
			t.Errorf("Short(%d) = %q, want %q", d, got, want)
		}
	}
	if got := dimList([]Dimension{DimCPU, DimGPU}); got != "cpu, gpu" {
		t.Errorf("dimList = %q", got)
	}
}
