package discovery

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
	"github.com/dnaas-fabric/reasoner/pkg/normalize"
)

func writeArtifact(t *testing.T, dir string, art RawArtifact) string {
	t.Helper()
	data, err := json.Marshal(art)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, art.Device+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func twoLeafOneSpineArtifacts(t *testing.T, dir string) []string {
	t.Helper()
	vlan := 100

	leafA1 := RawArtifact{
		Device: "LEAF-A01",
		Bundles: []BundleRecord{
			{Name: "bundle-100", Members: []string{"ge0"},
				Peers: []BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-1"}}},
		},
		BridgeDomainInstances: []BDInstanceRecord{
			{Name: "g_alice_v100", AdminState: "up", Interfaces: []string{"Ethernet1"}},
		},
		VlanConfigurations: []VlanConfigRecord{
			{Interface: "Ethernet1", VlanID: &vlan},
		},
	}
	leafA2 := RawArtifact{
		Device: "LEAF-A02",
		Bundles: []BundleRecord{
			{Name: "bundle-100", Members: []string{"ge0"},
				Peers: []BundlePeerRecord{{RemoteDevice: "SPINE-B08", LocalInterface: "bundle-100", RemoteInterface: "bundle-2"}}},
		},
		BridgeDomainInstances: []BDInstanceRecord{
			{Name: "g_alice_v100", AdminState: "up", Interfaces: []string{"Ethernet1"}},
		},
		VlanConfigurations: []VlanConfigRecord{
			{Interface: "Ethernet1", VlanID: &vlan},
		},
	}
	spine := RawArtifact{
		Device: "SPINE-B08",
		Bundles: []BundleRecord{
			{Name: "bundle-1", Members: []string{"ge10"},
				Peers: []BundlePeerRecord{{RemoteDevice: "LEAF-A01", LocalInterface: "bundle-1", RemoteInterface: "bundle-100"}}},
			{Name: "bundle-2", Members: []string{"ge11"},
				Peers: []BundlePeerRecord{{RemoteDevice: "LEAF-A02", LocalInterface: "bundle-2", RemoteInterface: "bundle-100"}}},
		},
	}

	return []string{
		writeArtifact(t, dir, leafA1),
		writeArtifact(t, dir, leafA2),
		writeArtifact(t, dir, spine),
	}
}

func TestRunBuildsTopologyAndConsolidatesFragments(t *testing.T) {
	dir := t.TempDir()
	paths := twoLeafOneSpineArtifacts(t, dir)

	result, err := Run(context.Background(), normalize.New(), paths, Options{IOPoolSize: 2, CPUPoolSize: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Cancelled {
		t.Fatal("did not expect cancellation")
	}
	if len(result.Graph.Devices()) != 3 {
		t.Fatalf("expected 3 devices, got %d", len(result.Graph.Devices()))
	}
	if len(result.BridgeDomains) != 1 {
		t.Fatalf("expected fragments from both leaves to consolidate into 1 BD, got %d", len(result.BridgeDomains))
	}

	cbd := result.BridgeDomains[0]
	if len(cbd.Devices) != 2 {
		t.Fatalf("expected 2 devices in consolidated BD, got %v", cbd.Devices)
	}
	if len(cbd.Paths) != 1 {
		t.Fatalf("expected exactly one path between the two leaves, got %d", len(cbd.Paths))
	}

	for _, iw := range cbd.Interfaces {
		if iw.Role == fabricmodel.RoleUnassigned {
			t.Fatalf("expected interface role assignment to run as part of discovery, got unassigned %+v", iw)
		}
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	paths := twoLeafOneSpineArtifacts(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, normalize.New(), paths, Options{IOPoolSize: 2, CPUPoolSize: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Cancelled {
		t.Fatal("expected a cancelled result")
	}
}

func TestRunSkipsUnreadableArtifact(t *testing.T) {
	dir := t.TempDir()
	paths := twoLeafOneSpineArtifacts(t, dir)
	paths = append(paths, filepath.Join(dir, "missing.json"))

	result, err := Run(context.Background(), normalize.New(), paths, Options{IOPoolSize: 2, CPUPoolSize: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Graph.Devices()) != 3 {
		t.Fatalf("expected the unreadable artifact to be skipped, kept 3 devices, got %d", len(result.Graph.Devices()))
	}
}
