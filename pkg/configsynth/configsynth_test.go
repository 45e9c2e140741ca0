package configsynth

import (
	"strings"
	"testing"

	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
	"github.com/dnaas-fabric/reasoner/pkg/normalize"
	"github.com/dnaas-fabric/reasoner/pkg/pathengine"
	"github.com/dnaas-fabric/reasoner/pkg/topology"
)

// accessPort is a user-facing interface distinct from any bundle member, so
// a leaf's access trio and uplink trio never collide on the same resolved
// interface name.
const accessPort = "ge100-0/0/10"

func twoLeafOneSpine(t *testing.T) *fabricmodel.TopologyGraph {
	t.Helper()
	in := topology.DiscoveryInput{
		Bundles: []topology.BundleRecord{
			{Name: "bundle-100", Device: "LEAF-A01", Members: []string{"ge100-0/0/1"},
				Peers: []topology.BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-1"}}},
			{Name: "bundle-100", Device: "LEAF-A02", Members: []string{"ge100-0/0/1"},
				Peers: []topology.BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-2"}}},
		},
	}
	b := topology.NewBuilder(normalize.New())
	g, _ := b.Build(in)
	return g
}

func containsLine(cmds []string, want string) bool {
	for _, c := range cmds {
		if strings.Contains(c, want) {
			return true
		}
	}
	return false
}

func TestSynthesizeP2PUsesBundleInterface(t *testing.T) {
	g := twoLeafOneSpine(t)
	e := pathengine.New(g)
	path := e.CalculatePath("LEAFA01", "LEAFA02")
	if path == nil {
		t.Fatal("expected a path")
	}

	req := fabricmodel.ServiceRequest{
		ServiceName: "g_alice_v100",
		VlanID:      100,
		Source:      fabricmodel.ServiceEndpoint{Device: "LEAFA01", Interface: accessPort},
		DestinationEndpoints: []fabricmodel.ServiceEndpoint{
			{Device: "LEAFA02", Interface: accessPort},
		},
	}

	art, err := New(g).P2P(req, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(art.Issues) != 0 {
		t.Fatalf("unexpected issues: %v", art.Issues)
	}
	if len(art.DeviceOrder) != 3 {
		t.Fatalf("expected 3 devices in order, got %v", art.DeviceOrder)
	}
	// Each leaf carries both its uplink-to-spine trio and its user-facing
	// access-port trio: 6 command lines, not 3.
	for _, dev := range []string{"LEAFA01", "LEAFA02"} {
		cmds := art.PerDeviceCommands[dev]
		if len(cmds) != 6 {
			t.Fatalf("device %s: expected an uplink trio plus an access trio (6 lines), got %v", dev, cmds)
		}
		if !containsLine(cmds, "interface bundle-100.100") {
			t.Fatalf("device %s: expected an uplink sub-interface line, got %v", dev, cmds)
		}
		if !containsLine(cmds, "interface "+accessPort+".100") {
			t.Fatalf("device %s: expected an access-port sub-interface line, got %v", dev, cmds)
		}
	}
	// The spine carries one uplink interface toward each leaf, so it gets
	// two trios (six command lines), one per bundle-facing endpoint.
	spineCmds := art.PerDeviceCommands["SPINEB08"]
	if len(spineCmds) != 6 {
		t.Fatalf("expected two trios on the transit spine, got %v", spineCmds)
	}
	if art.DeviceOrder[0] != "LEAFA01" || art.DeviceOrder[1] != "LEAFA02" || art.DeviceOrder[2] != "SPINEB08" {
		t.Fatalf("expected ascending canonical-key device order, got %v", art.DeviceOrder)
	}
}

func TestSynthesizeP2PNoPathRecordsIssue(t *testing.T) {
	g := twoLeafOneSpine(t)
	req := fabricmodel.ServiceRequest{ServiceName: "g_x_v1", VlanID: 1}
	art, err := New(g).P2P(req, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(art.Issues) == 0 {
		t.Fatal("expected an issue for nil path")
	}
}

func TestSynthesizeP2MPDedupesSharedUplink(t *testing.T) {
	in := topology.DiscoveryInput{
		Bundles: []topology.BundleRecord{
			{Name: "bundle-100", Device: "LEAF-A01", Members: []string{"ge100-0/0/1"},
				Peers: []topology.BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-1"}}},
			{Name: "bundle-100", Device: "LEAF-A02", Members: []string{"ge100-0/0/1"},
				Peers: []topology.BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-2"}}},
			{Name: "bundle-100", Device: "LEAF-A03", Members: []string{"ge100-0/0/1"},
				Peers: []topology.BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-3"}}},
		},
	}
	b := topology.NewBuilder(normalize.New())
	g, _ := b.Build(in)
	e := pathengine.New(g)
	plan := e.CalculateP2MPPaths("LEAFA01", []string{"LEAFA02", "LEAFA03"})

	req := fabricmodel.ServiceRequest{
		ServiceName: "g_bob_v200",
		VlanID:      200,
		Source:      fabricmodel.ServiceEndpoint{Device: "LEAFA01", Interface: accessPort},
		DestinationEndpoints: []fabricmodel.ServiceEndpoint{
			{Device: "LEAFA02", Interface: accessPort},
			{Device: "LEAFA03", Interface: accessPort},
		},
	}
	art, err := New(g).P2MP(req, plan.Paths, plan.FailedDestinations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The source's single uplink plus its own access port: one trio each,
	// emitted once despite serving two destinations.
	srcCmds := art.PerDeviceCommands["LEAFA01"]
	if len(srcCmds) != 6 {
		t.Fatalf("expected source's uplink and access trios emitted once each, got %d commands: %v", len(srcCmds), srcCmds)
	}
	if art.Metadata.TopologyType != fabricmodel.TopologyP2MP {
		t.Fatalf("expected P2MP topology type, got %v", art.Metadata.TopologyType)
	}
}

func TestSynthesizeP2MPMixedOnPartialFailure(t *testing.T) {
	g := twoLeafOneSpine(t)
	e := pathengine.New(g)
	plan := e.CalculateP2MPPaths("LEAFA01", []string{"LEAFA02", "GHOSTLEAF"})

	req := fabricmodel.ServiceRequest{
		ServiceName: "g_carol_v300",
		VlanID:      300,
		Source:      fabricmodel.ServiceEndpoint{Device: "LEAFA01", Interface: accessPort},
		DestinationEndpoints: []fabricmodel.ServiceEndpoint{
			{Device: "LEAFA02", Interface: accessPort},
			{Device: "GHOSTLEAF", Interface: accessPort},
		},
	}
	art, err := New(g).P2MP(req, plan.Paths, plan.FailedDestinations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if art.Metadata.TopologyType != fabricmodel.TopologyP2MPMixed {
		t.Fatalf("expected mixed topology type, got %v", art.Metadata.TopologyType)
	}
	if len(art.Issues) != 1 {
		t.Fatalf("expected one issue for the failed destination, got %v", art.Issues)
	}
	// The unreachable destination never reaches the plan, so it gets no
	// access trio; only the served leaf does.
	if len(art.PerDeviceCommands["GHOSTLEAF"]) != 0 {
		t.Fatalf("expected no commands for the unserved destination, got %v", art.PerDeviceCommands["GHOSTLEAF"])
	}
}

func TestSynthesizeRejectsTransitWithoutBundle(t *testing.T) {
	// A direct physical (non-bundle) leaf-to-spine hop violates §4.I's
	// mandatory bundle-resolution rule for transit hops, even though the
	// path itself (leaf -> spine -> superspine) is structurally valid.
	in := topology.DiscoveryInput{
		Neighbors: []topology.NeighborRecord{
			{Device: "LEAF-A01", LocalInterface: "ge100-0/0/1", NeighborDevice: "SPINE-B08", NeighborInterface: "ge100-0/0/1"},
		},
		ConnectedSuperspines: []topology.ConnectedSuperspineRecord{
			{Spine: "SPINE-B08", SpineInterface: "bundle-10", Superspine: "SUPERSPINE-C01", SuperspineInterface: "bundle-20"},
		},
	}
	b := topology.NewBuilder(normalize.New())
	g, _ := b.Build(in)
	e := pathengine.New(g)
	path := e.CalculatePathToSuperspine("LEAFA01", "SUPERSPINEC01")
	if path == nil {
		t.Fatal("expected a path")
	}

	req := fabricmodel.ServiceRequest{
		ServiceName: "g_dave_v400",
		VlanID:      400,
		Source:      fabricmodel.ServiceEndpoint{Device: "LEAFA01", Interface: accessPort},
		DestinationEndpoints: []fabricmodel.ServiceEndpoint{
			{Device: "SUPERSPINEC01", Interface: accessPort},
		},
	}
	if _, err := New(g).P2PSuperspine(req, path); err == nil {
		t.Fatal("expected a bundle-resolution error for a non-bundle transit hop")
	}
}
