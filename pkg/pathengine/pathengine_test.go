package pathengine

import (
	"testing"

	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
	"github.com/dnaas-fabric/reasoner/pkg/normalize"
	"github.com/dnaas-fabric/reasoner/pkg/topology"
)

// buildS2Fabric constructs a small 3-tier fabric:
// LEAF-A01/A02 on SPINE-B08; SPINE-D14 and SPINE-B08 both on
// SUPERSPINE-D04; LEAF-F16 on SPINE-D14.
func buildS2Fabric(t *testing.T) *fabricmodel.TopologyGraph {
	t.Helper()
	in := topology.DiscoveryInput{
		Bundles: []topology.BundleRecord{
			{Name: "bundle-100", Device: "LEAF-A01", Members: []string{"ge0"},
				Peers: []topology.BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-1"}}},
			{Name: "bundle-100", Device: "LEAF-A02", Members: []string{"ge0"},
				Peers: []topology.BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-2"}}},
			{Name: "bundle-100", Device: "LEAF-F16", Members: []string{"ge0"},
				Peers: []topology.BundlePeerRecord{{RemoteDevice: "SPINE-D14", LocalInterface: "bundle-100", RemoteInterface: "bundle-3"}}},
			{Name: "bundle-200", Device: "SPINE-B08", Members: []string{"ge1"},
				Peers: []topology.BundlePeerRecord{{RemoteDevice: "SUPERSPINE-D04", LocalInterface: "bundle-200", RemoteInterface: "bundle-10"}}},
			{Name: "bundle-200", Device: "SPINE-D14", Members: []string{"ge1"},
				Peers: []topology.BundlePeerRecord{{RemoteDevice: "SUPERSPINE-D04", LocalInterface: "bundle-200", RemoteInterface: "bundle-11"}}},
		},
	}
	b := topology.NewBuilder(normalize.New())
	g, _ := b.Build(in)
	return g
}

func TestCalculatePathTwoTier(t *testing.T) {
	g := buildS2Fabric(t)
	e := New(g)
	p := e.CalculatePath("LEAFA01", "LEAFA02")
	if p == nil {
		t.Fatal("expected a path")
	}
	if p.Tiers() != 2 {
		t.Fatalf("expected 2-tier path, got %d segments", p.Tiers())
	}
	devs := p.Devices()
	if devs[0] != "LEAFA01" || devs[1] != "SPINEB08" || devs[2] != "LEAFA02" {
		t.Fatalf("unexpected path devices: %v", devs)
	}
}

func TestCalculatePathThreeTier(t *testing.T) {
	g := buildS2Fabric(t)
	e := New(g)
	p := e.CalculatePath("LEAFA01", "LEAFF16")
	if p == nil {
		t.Fatal("expected a path")
	}
	if p.Tiers() != 4 {
		t.Fatalf("expected 4-segment 3-tier path, got %d", p.Tiers())
	}
	devs := p.Devices()
	want := []string{"LEAFA01", "SPINEB08", "SUPERSPINED04", "SPINED14", "LEAFF16"}
	for i, w := range want {
		if devs[i] != w {
			t.Fatalf("path[%d]=%s want %s (full: %v)", i, devs[i], w, devs)
		}
	}
}

func TestNoPathWhenNoSpine(t *testing.T) {
	g := buildS2Fabric(t)
	e := New(g)
	if p := e.CalculatePath("LEAFA01", "NOSUCHLEAF"); p != nil {
		t.Fatalf("expected nil path, got %+v", p)
	}
}

func TestP2MPSharedSpine(t *testing.T) {
	in := topology.DiscoveryInput{
		Bundles: []topology.BundleRecord{
			{Name: "bundle-100", Device: "LEAF-A01", Members: []string{"ge0"},
				Peers: []topology.BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-1"}}},
			{Name: "bundle-100", Device: "LEAF-A02", Members: []string{"ge0"},
				Peers: []topology.BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-2"}}},
			{Name: "bundle-100", Device: "LEAF-A03", Members: []string{"ge0"},
				Peers: []topology.BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-3"}}},
			{Name: "bundle-100", Device: "LEAF-B01", Members: []string{"ge0"},
				Peers: []topology.BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-4"}}},
		},
	}
	b := topology.NewBuilder(normalize.New())
	g, _ := b.Build(in)
	e := New(g)

	plan := e.CalculateP2MPPaths("LEAFA01", []string{"LEAFA02", "LEAFA03", "LEAFB01"})
	if plan.TotalSpinesUsed != 1 {
		t.Fatalf("expected 1 spine used, got %d", plan.TotalSpinesUsed)
	}
	if len(plan.Paths) != 3 || len(plan.FailedDestinations) != 0 {
		t.Fatalf("expected all 3 served, got paths=%d failed=%v", len(plan.Paths), plan.FailedDestinations)
	}
	if plan.PathEfficiency != 1.0 {
		t.Fatalf("expected efficiency 1.0, got %f", plan.PathEfficiency)
	}
}

func TestP2MPPartialFailure(t *testing.T) {
	g := buildS2Fabric(t)
	e := New(g)
	plan := e.CalculateP2MPPaths("LEAFA01", []string{"LEAFA02", "GHOSTLEAF"})
	if len(plan.Paths) != 1 {
		t.Fatalf("expected 1 served, got %d", len(plan.Paths))
	}
	if len(plan.FailedDestinations) != 1 || plan.FailedDestinations[0] != "GHOSTLEAF" {
		t.Fatalf("expected GHOSTLEAF to fail, got %v", plan.FailedDestinations)
	}
	if len(plan.Paths)+len(plan.FailedDestinations) != 2 {
		t.Fatal("served + failed != requested")
	}
}
