// Package discovery orchestrates one discovery run: reading per-device
// parsed artifacts from disk under the I/O pool, running bridge-domain
// detection and DNAAS classification under the CPU pool (§5), then
// building the TopologyGraph and consolidated bridge domains on a single
// thread as the design requires.
package discovery

import (
	"encoding/json"
	"os"

	"github.com/dnaas-fabric/reasoner/pkg/bridgedomain"
	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
	"github.com/dnaas-fabric/reasoner/pkg/ferrors"
	"github.com/dnaas-fabric/reasoner/pkg/topology"
)

// NeighborRecord is the on-disk shape of one LLDP-derived adjacency, per
// §6's inbound "neighbors[]" contract.
type NeighborRecord struct {
	LocalInterface    string `json:"local_interface"`
	NeighborDevice    string `json:"neighbor_device"`
	NeighborInterface string `json:"neighbor_interface"`
}

// BundlePeerRecord is the on-disk shape of one bundle peer.
type BundlePeerRecord struct {
	RemoteDevice    string `json:"remote_device"`
	LocalInterface  string `json:"local_interface"`
	RemoteInterface string `json:"remote_interface"`
}

// BundleRecord is the on-disk shape of one bundle definition, per §6's
// inbound "bundles[]" contract.
type BundleRecord struct {
	Name    string             `json:"name"`
	Members []string           `json:"members"`
	Peers   []BundlePeerRecord `json:"peers"`
}

// BDInstanceRecord is the on-disk shape of one bridge-domain instance, per
// §6's inbound "bridge_domain_instances[]" contract.
type BDInstanceRecord struct {
	Name       string   `json:"name"`
	AdminState string   `json:"admin_state"`
	Interfaces []string `json:"interfaces"`
}

// ManipulationRecord is the on-disk shape of one VLAN edge manipulation rule.
type ManipulationRecord struct {
	Op    string `json:"op"`
	Outer int    `json:"outer"`
	Inner int    `json:"inner"`
}

// VlanConfigRecord is the on-disk shape of one interface's VLAN facts, per
// §6's inbound "vlan_configurations[]" contract. Exactly one of
// VlanID/Outer+Inner/VlanRange/VlanList/Manipulation is expected to be set;
// precedence on conflict follows fabricmodel.VlanConfigEntry.ToVlanConfig.
type VlanConfigRecord struct {
	Interface    string               `json:"interface"`
	VlanID       *int                 `json:"vlan_id,omitempty"`
	OuterVlan    *int                 `json:"outer_vlan,omitempty"`
	InnerVlan    *int                 `json:"inner_vlan,omitempty"`
	VlanRange    string               `json:"vlan_range,omitempty"`
	VlanList     []int                `json:"vlan_list,omitempty"`
	Manipulation []ManipulationRecord `json:"manipulation,omitempty"`
}

// toEntry converts the on-disk record into the internal VlanConfigEntry the
// Bridge-Domain Detector consumes.
func (r VlanConfigRecord) toEntry() (fabricmodel.VlanConfigEntry, error) {
	entry := fabricmodel.VlanConfigEntry{
		Interface: r.Interface,
		VlanID:    r.VlanID,
		OuterVlan: r.OuterVlan,
		InnerVlan: r.InnerVlan,
	}

	if r.VlanRange != "" {
		rangeEntry, err := fabricmodel.ParseVlanRangeSpec(r.VlanRange)
		if err != nil {
			return fabricmodel.VlanConfigEntry{}, ferrors.NewDataGapError(r.Interface, "vlan_range", err.Error())
		}
		entry.RangeStart = rangeEntry.RangeStart
		entry.RangeEnd = rangeEntry.RangeEnd
		entry.VlanList = rangeEntry.VlanList
	}
	if len(r.VlanList) > 0 {
		entry.VlanList = r.VlanList
	}
	for _, m := range r.Manipulation {
		entry.Manipulation = append(entry.Manipulation, fabricmodel.ManipulationRule{Op: m.Op, Outer: m.Outer, Inner: m.Inner})
	}

	return entry, nil
}

// RawArtifact is one device's complete parsed-CLI artifact, the unit the
// I/O pool reads from disk: one file per device.
type RawArtifact struct {
	Device                string             `json:"device"`
	Neighbors             []NeighborRecord   `json:"neighbors"`
	Bundles               []BundleRecord     `json:"bundles"`
	BridgeDomainInstances []BDInstanceRecord `json:"bridge_domain_instances"`
	VlanConfigurations    []VlanConfigRecord `json:"vlan_configurations"`
}

// ReadArtifact parses one device's artifact file from disk.
func ReadArtifact(path string) (RawArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RawArtifact{}, ferrors.NewIOError("read artifact "+path, err)
	}
	var art RawArtifact
	if err := json.Unmarshal(data, &art); err != nil {
		return RawArtifact{}, ferrors.NewIOError("parse artifact "+path, err)
	}
	return art, nil
}

// topologyContribution is the slice of a RawArtifact the Topology Builder
// (§4.B) consumes.
func (a RawArtifact) topologyContribution() (neighbors []topology.NeighborRecord, bundles []topology.BundleRecord) {
	for _, n := range a.Neighbors {
		neighbors = append(neighbors, topology.NeighborRecord{
			Device:            a.Device,
			LocalInterface:    n.LocalInterface,
			NeighborDevice:    n.NeighborDevice,
			NeighborInterface: n.NeighborInterface,
		})
	}
	for _, b := range a.Bundles {
		var peers []topology.BundlePeerRecord
		for _, p := range b.Peers {
			peers = append(peers, topology.BundlePeerRecord{
				RemoteDevice:    p.RemoteDevice,
				LocalInterface:  p.LocalInterface,
				RemoteInterface: p.RemoteInterface,
			})
		}
		bundles = append(bundles, topology.BundleRecord{
			Name:    b.Name,
			Device:  a.Device,
			Members: append([]string(nil), b.Members...),
			Peers:   peers,
		})
	}
	return neighbors, bundles
}

// bridgeDomainContribution converts the artifact's BD instances and VLAN
// configurations into the Bridge-Domain Detector's per-device input,
// skipping (and reporting via the DataGapError return) any VLAN record
// whose range spec fails to parse.
func (a RawArtifact) bridgeDomainContribution() (bridgedomain.DeviceInput, []error) {
	in := bridgedomain.DeviceInput{Device: a.Device}
	var errs []error

	for _, bd := range a.BridgeDomainInstances {
		in.BDInstances = append(in.BDInstances, fabricmodel.BDInstance{
			Name:       bd.Name,
			Device:     a.Device,
			AdminState: bd.AdminState,
			Interfaces: bd.Interfaces,
		})
	}
	for _, vc := range a.VlanConfigurations {
		entry, err := vc.toEntry()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		in.VlanConfigurations = append(in.VlanConfigurations, entry)
	}

	return in, errs
}
