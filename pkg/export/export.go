// Package export converts the engine's internal fact types into the
// outbound JSON records described in §6 (the topology snapshot, the
// consolidated bridge-domain report, and the configuration artifact),
// using dedicated snake_case json-tag DTOs rather than re-using internal
// struct tags.
package export

import (
	"sort"

	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
	"github.com/dnaas-fabric/reasoner/pkg/topology"
)

// EndpointDTO is a (device, interface) pair in outbound JSON.
type EndpointDTO struct {
	Device    string `json:"device"`
	Interface string `json:"interface"`
}

// DeviceDTO is one device entry in the outbound topology snapshot.
type DeviceDTO struct {
	Name         string   `json:"name"`
	CanonicalKey string   `json:"canonical_key"`
	Role         string   `json:"role"`
	Variants     []string `json:"variants,omitempty"`
}

// LinkDTO is one link entry in the outbound topology snapshot.
type LinkDTO struct {
	A    EndpointDTO `json:"a"`
	B    EndpointDTO `json:"b"`
	Kind string      `json:"kind"`
}

// BundlePeerDTO is one bundle peer entry.
type BundlePeerDTO struct {
	RemoteDevice    string `json:"remote_device"`
	LocalInterface  string `json:"local_interface"`
	RemoteInterface string `json:"remote_interface"`
}

// BundleDTO is one bundle entry in the outbound topology snapshot.
type BundleDTO struct {
	Device  string          `json:"device"`
	Name    string          `json:"name"`
	Members []string        `json:"members"`
	Peers   []BundlePeerDTO `json:"peers,omitempty"`
}

// DiscrepancyDTO mirrors topology.Discrepancy for outbound JSON.
type DiscrepancyDTO struct {
	Device     string `json:"device"`
	Interface  string `json:"interface"`
	BundlePeer string `json:"bundle_peer"`
	LLDPPeer   string `json:"lldp_peer"`
}

// ValidationDTO is the validation block of the outbound topology snapshot.
type ValidationDTO struct {
	InvalidLinks              []LinkDTO        `json:"invalid_links"`
	LLDPGaps                  []string         `json:"lldp_gaps"`
	UnreachableDevices        []string         `json:"unreachable_devices"`
	BundleLLDPDiscrepancies   []DiscrepancyDTO `json:"bundle_lldp_discrepancies,omitempty"`
}

// TopologySnapshot is the §6 "Outbound: topology snapshot" record.
type TopologySnapshot struct {
	Devices    []DeviceDTO   `json:"devices"`
	Links      []LinkDTO     `json:"links"`
	Bundles    []BundleDTO   `json:"bundles"`
	Validation ValidationDTO `json:"validation"`
}

func endpointDTO(e fabricmodel.Endpoint) EndpointDTO {
	return EndpointDTO{Device: e.Device, Interface: e.Interface}
}

func linkDTO(l fabricmodel.Link) LinkDTO {
	return LinkDTO{A: endpointDTO(l.A), B: endpointDTO(l.B), Kind: l.Kind.String()}
}

// Topology builds the outbound snapshot from a built TopologyGraph and its
// ValidationReport. Device, link, and bundle ordering is canonical-key
// ascending so repeated exports of the same graph are byte-identical.
func Topology(g *fabricmodel.TopologyGraph, report *topology.ValidationReport) TopologySnapshot {
	devices := append([]fabricmodel.Device(nil), g.Devices()...)
	sort.Slice(devices, func(i, j int) bool { return devices[i].ID.CanonicalKey < devices[j].ID.CanonicalKey })

	out := TopologySnapshot{}
	for _, d := range devices {
		out.Devices = append(out.Devices, DeviceDTO{
			Name:         d.ID.RawName,
			CanonicalKey: d.ID.CanonicalKey,
			Role:         d.Role.String(),
			Variants:     d.Variants,
		})
	}

	links := append([]fabricmodel.Link(nil), g.Links()...)
	sort.Slice(links, func(i, j int) bool {
		if links[i].A.Device != links[j].A.Device {
			return links[i].A.Device < links[j].A.Device
		}
		return links[i].A.Interface < links[j].A.Interface
	})
	for _, l := range links {
		out.Links = append(out.Links, linkDTO(l))
	}

	for _, d := range devices {
		bundles := append([]fabricmodel.Bundle(nil), g.BundlesOn(d.ID.CanonicalKey)...)
		sort.Slice(bundles, func(i, j int) bool { return bundles[i].Name < bundles[j].Name })
		for _, b := range bundles {
			bd := BundleDTO{Device: b.Device, Name: b.Name, Members: append([]string(nil), b.Members...)}
			for _, p := range b.Peers {
				bd.Peers = append(bd.Peers, BundlePeerDTO{
					RemoteDevice:    p.RemoteDevice,
					LocalInterface:  p.LocalInterface,
					RemoteInterface: p.RemoteInterface,
				})
			}
			out.Bundles = append(out.Bundles, bd)
		}
	}

	if report != nil {
		for _, l := range report.InvalidLinks {
			out.Validation.InvalidLinks = append(out.Validation.InvalidLinks, linkDTO(l))
		}
		out.Validation.LLDPGaps = append([]string(nil), report.LLDPGaps...)
		out.Validation.UnreachableDevices = append([]string(nil), report.UnreachableDevices...)
		for _, disc := range report.BundleLLDPDiscrepancies {
			out.Validation.BundleLLDPDiscrepancies = append(out.Validation.BundleLLDPDiscrepancies, DiscrepancyDTO{
				Device:     disc.Device,
				Interface:  disc.Interface,
				BundlePeer: disc.BundlePeer,
				LLDPPeer:   disc.LLDPPeer,
			})
		}
	}

	return out
}

// Rehydrate reconstructs a TopologyGraph from a persisted snapshot, for CLI
// verbs (path computation, config synthesis) that run against the last
// discovered topology without re-reading artifacts from disk. Bundle peers
// and link legality are taken from the snapshot as given; Rehydrate never
// re-derives them, since a snapshot is meant to already be validated.
func Rehydrate(snap TopologySnapshot) *fabricmodel.TopologyGraph {
	g := fabricmodel.NewTopologyGraph()

	roleOf := make(map[string]fabricmodel.DeviceRole, len(snap.Devices))
	for _, d := range snap.Devices {
		role := roleFromString(d.Role)
		roleOf[d.CanonicalKey] = role
		id := fabricmodel.DeviceId{RawName: d.Name, CanonicalKey: d.CanonicalKey}
		g.AddDevice(id, role)
		for _, v := range d.Variants {
			g.AddDevice(fabricmodel.DeviceId{RawName: v, CanonicalKey: d.CanonicalKey}, role)
		}
	}

	for _, b := range snap.Bundles {
		bundle := fabricmodel.Bundle{Device: b.Device, Name: b.Name, Members: append([]string(nil), b.Members...)}
		for _, p := range b.Peers {
			bundle.Peers = append(bundle.Peers, fabricmodel.BundlePeer{
				RemoteDevice:    p.RemoteDevice,
				LocalInterface:  p.LocalInterface,
				RemoteInterface: p.RemoteInterface,
			})
		}
		g.AddBundle(bundle)
		g.AddInterface(fabricmodel.Interface{Device: b.Device, Name: b.Name, Kind: fabricmodel.KindBundle})
	}

	for _, l := range snap.Links {
		g.AddLink(fabricmodel.Link{
			A:     fabricmodel.Endpoint{Device: l.A.Device, Interface: l.A.Interface},
			B:     fabricmodel.Endpoint{Device: l.B.Device, Interface: l.B.Interface},
			Kind:  linkKindFromString(l.Kind),
			RoleA: roleOf[l.A.Device],
			RoleB: roleOf[l.B.Device],
		})
	}

	return g
}

func roleFromString(s string) fabricmodel.DeviceRole {
	switch s {
	case "LEAF":
		return fabricmodel.RoleLeaf
	case "SPINE":
		return fabricmodel.RoleSpine
	case "SUPERSPINE":
		return fabricmodel.RoleSuperspine
	default:
		return fabricmodel.RoleUnknown
	}
}

func linkKindFromString(s string) fabricmodel.LinkKind {
	if s == "bundle" {
		return fabricmodel.LinkBundle
	}
	return fabricmodel.LinkPhysical
}
