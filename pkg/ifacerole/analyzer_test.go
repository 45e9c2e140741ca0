package ifacerole

import (
	"testing"

	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
	"github.com/dnaas-fabric/reasoner/pkg/normalize"
	"github.com/dnaas-fabric/reasoner/pkg/topology"
)

func TestAssignLeafAccessAndUplink(t *testing.T) {
	in := topology.DiscoveryInput{
		Bundles: []topology.BundleRecord{
			{Name: "bundle-100", Device: "LEAF-A01", Members: []string{"ge0"},
				Peers: []topology.BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-1"}}},
		},
	}
	b := topology.NewBuilder(normalize.New())
	g, _ := b.Build(in)

	frag := &fabricmodel.BridgeDomainFragment{
		Device: "LEAFA01",
		Interfaces: []fabricmodel.InterfaceWithRole{
			{Name: "bundle-100"},
			{Name: "ge100-0/0/10"}, // no link evidence: user-facing access port
		},
	}
	Assign(g, frag)
	if frag.Interfaces[0].Role != fabricmodel.RoleUplink {
		t.Fatalf("expected uplink, got %v", frag.Interfaces[0].Role)
	}
	if frag.Interfaces[1].Role != fabricmodel.RoleAccess {
		t.Fatalf("expected access, got %v", frag.Interfaces[1].Role)
	}
}

func TestAssignSpineAmbiguousWithoutEvidence(t *testing.T) {
	g := fabricmodel.NewTopologyGraph()
	g.AddDevice(fabricmodel.DeviceId{RawName: "SPINE-B08", CanonicalKey: "SPINEB08"}, fabricmodel.RoleSpine)
	g.AddInterface(fabricmodel.Interface{Device: "SPINEB08", Name: "ge0"})

	frag := &fabricmodel.BridgeDomainFragment{
		Device:     "SPINEB08",
		Interfaces: []fabricmodel.InterfaceWithRole{{Name: "ge0"}},
	}
	Assign(g, frag)
	if frag.Interfaces[0].Role != fabricmodel.RoleAmbiguous {
		t.Fatalf("expected ambiguous, got %v", frag.Interfaces[0].Role)
	}
}
