package topology

import (
	"testing"

	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
	"github.com/dnaas-fabric/reasoner/pkg/normalize"
)

func twoLeafOneSpine() DiscoveryInput {
	return DiscoveryInput{
		Bundles: []BundleRecord{
			{
				Name: "bundle-100", Device: "LEAF-A01",
				Members: []string{"ge100-0/0/1"},
				Peers:   []BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-100"}},
			},
			{
				Name: "bundle-100", Device: "LEAF-A02",
				Members: []string{"ge100-0/0/1"},
				Peers:   []BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-101"}},
			},
		},
	}
}

func TestBuildBasicFabric(t *testing.T) {
	b := NewBuilder(normalize.New())
	g, report := b.Build(twoLeafOneSpine())

	if len(report.InvalidLinks) != 0 {
		t.Fatalf("unexpected invalid links: %v", report.InvalidLinks)
	}

	spine, ok := g.Device("SPINEB08")
	if !ok || spine.Role != fabricmodel.RoleSpine {
		t.Fatalf("expected spine device, got %+v ok=%v", spine, ok)
	}

	leaves := g.NeighborsByRole("SPINEB08", fabricmodel.RoleLeaf)
	if len(leaves) != 2 {
		t.Fatalf("expected spine to see 2 leaves, got %v", leaves)
	}
}

func TestBuildRejectsLeafLeafLink(t *testing.T) {
	b := NewBuilder(normalize.New())
	in := DiscoveryInput{
		Neighbors: []NeighborRecord{
			{Device: "LEAF-A01", LocalInterface: "ge0", NeighborDevice: "LEAF-A02", NeighborInterface: "ge0"},
		},
	}
	_, report := b.Build(in)
	if len(report.InvalidLinks) != 1 {
		t.Fatalf("expected 1 invalid link, got %d", len(report.InvalidLinks))
	}
}

func TestBundlePreferredOverDiscrepantLLDP(t *testing.T) {
	b := NewBuilder(normalize.New())
	in := DiscoveryInput{
		Bundles: []BundleRecord{
			{
				Name: "bundle-100", Device: "LEAF-A01", Members: []string{"ge0"},
				Peers: []BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-100"}},
			},
		},
		Neighbors: []NeighborRecord{
			{Device: "LEAF-A01", LocalInterface: "bundle-100", NeighborDevice: "SPINE-D14", NeighborInterface: "bundle-100"},
		},
	}
	g, report := b.Build(in)
	if len(report.BundleLLDPDiscrepancies) != 1 {
		t.Fatalf("expected 1 discrepancy, got %d", len(report.BundleLLDPDiscrepancies))
	}
	link, ok := g.LinkAt(fabricmodel.Endpoint{Device: "LEAFA01", Interface: "bundle-100"})
	if !ok || link.Other(fabricmodel.Endpoint{Device: "LEAFA01", Interface: "bundle-100"}).Device != "SPINEB08" {
		t.Fatalf("expected bundle record to win: %+v", link)
	}
}
