package topology

import (
	"sort"
	"strings"

	"github.com/dnaas-fabric/reasoner/pkg/fabriclog"
	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
	"github.com/dnaas-fabric/reasoner/pkg/normalize"
)

// Builder constructs a TopologyGraph from raw parsed neighbor/bundle
// records, using a Normalizer to canonicalize every device reference.
type Builder struct {
	norm *normalize.Normalizer
}

// NewBuilder creates a Builder backed by the given Normalizer.
func NewBuilder(norm *normalize.Normalizer) *Builder {
	return &Builder{norm: norm}
}

// chassisSuffixes are the per-control-card canonical-key suffixes that, for
// a superspine, identify one control card of a multi-card chassis rather
// than a distinct device (§9 design note: NCC0/NCC1 consolidate into one
// logical superspine with a variants set).
var chassisSuffixes = []string{"NCC0", "NCC1"}

// deviceKey resolves the graph key for raw: the normalizer's canonical key,
// further collapsed across NCC0/NCC1 control-card suffixes when the device
// classifies as a superspine.
func (b *Builder) deviceKey(raw string) (key string, role fabricmodel.DeviceRole) {
	canon := b.norm.Normalize(raw)
	key = b.norm.CanonicalKey(raw)
	role = fabricmodel.ClassifyRole(canon)
	if role == fabricmodel.RoleSuperspine {
		key = stripChassisSuffix(key)
	}
	return key, role
}

func stripChassisSuffix(key string) string {
	for _, suf := range chassisSuffixes {
		if strings.HasSuffix(key, suf) && len(key) > len(suf) {
			return strings.TrimSuffix(key, suf)
		}
	}
	return key
}

// Build runs the §4.B algorithm: canonicalize every device, classify
// roles, lay down bundle-derived and LLDP-derived links, infer
// spine-superspine adjacency, then validate.
func (b *Builder) Build(in DiscoveryInput) (*fabricmodel.TopologyGraph, *ValidationReport) {
	g := fabricmodel.NewTopologyGraph()
	report := newValidationReport()

	// Step 1+2: register every device mentioned anywhere, classified by
	// role, with superspine control cards consolidated under one key.
	register := func(raw string) string {
		key, role := b.deviceKey(raw)
		g.AddDevice(fabricmodel.DeviceId{RawName: raw, CanonicalKey: key}, role)
		return key
	}

	neighborsSeen := map[string]int{}
	bundlesSeen := map[string]int{}

	for _, n := range in.Neighbors {
		register(n.Device)
		register(n.NeighborDevice)
		key, _ := b.deviceKey(n.Device)
		neighborsSeen[key]++
	}
	for _, bd := range in.Bundles {
		register(bd.Device)
		for _, p := range bd.Peers {
			register(p.RemoteDevice)
		}
		key, _ := b.deviceKey(bd.Device)
		bundlesSeen[key]++
	}
	for _, cs := range in.ConnectedSuperspines {
		register(cs.Spine)
		register(cs.Superspine)
	}

	for key, n := range neighborsSeen {
		stat := report.Coverage[key]
		stat.NeighborsSeen = n
		report.Coverage[key] = stat
	}
	for key, n := range bundlesSeen {
		stat := report.Coverage[key]
		stat.BundlesSeen = n
		report.Coverage[key] = stat
	}

	// Register interfaces and bundles.
	for _, bd := range in.Bundles {
		devKey, _ := b.deviceKey(bd.Device)
		g.AddInterface(fabricmodel.Interface{Device: devKey, Name: bd.Name, Kind: fabricmodel.KindBundle})
		for _, m := range bd.Members {
			g.AddInterface(fabricmodel.Interface{Device: devKey, Name: m, Kind: fabricmodel.KindPhysical})
		}
		bundle := fabricmodel.Bundle{Device: devKey, Name: bd.Name, Members: append([]string(nil), bd.Members...)}
		for _, p := range bd.Peers {
			remoteKey, _ := b.deviceKey(p.RemoteDevice)
			bundle.Peers = append(bundle.Peers, fabricmodel.BundlePeer{
				RemoteDevice:    remoteKey,
				LocalInterface:  bd.Name,
				RemoteInterface: p.RemoteInterface,
			})
		}
		g.AddBundle(bundle)

		// Step 3: add a link per bundle peer endpoint.
		for _, p := range bd.Peers {
			remoteKey, _ := b.deviceKey(p.RemoteDevice)
			g.AddInterface(fabricmodel.Interface{Device: remoteKey, Name: p.RemoteInterface, Kind: fabricmodel.KindBundle})
			addLink(g, devKey, bd.Name, remoteKey, p.RemoteInterface, fabricmodel.LinkBundle)
		}
	}

	// Step 3 cont'd / Step 4: LLDP entries. Prefer bundle record when the
	// same local interface already has a bundle peer recorded with a
	// different canonical remote; otherwise add a direct physical link.
	for _, n := range in.Neighbors {
		devKey, _ := b.deviceKey(n.Device)
		remoteKey, _ := b.deviceKey(n.NeighborDevice)
		ep := fabricmodel.Endpoint{Device: devKey, Interface: n.LocalInterface}

		if existing, ok := g.LinkAt(ep); ok {
			other := existing.Other(ep)
			if other.Device != remoteKey {
				report.BundleLLDPDiscrepancies = append(report.BundleLLDPDiscrepancies, Discrepancy{
					Device:     devKey,
					Interface:  n.LocalInterface,
					BundlePeer: other.Device,
					LLDPPeer:   remoteKey,
				})
				fabriclog.WithDevice(devKey).WithFields(map[string]interface{}{
					"interface":   n.LocalInterface,
					"bundle_peer": other.Device,
					"lldp_peer":   remoteKey,
				}).Warn("topology discrepancy: bundle record overrides LLDP")
			}
			continue // bundle record already added this link; bundle wins
		}

		g.AddInterface(fabricmodel.Interface{Device: devKey, Name: n.LocalInterface, Kind: fabricmodel.KindPhysical})
		g.AddInterface(fabricmodel.Interface{Device: remoteKey, Name: n.NeighborInterface, Kind: fabricmodel.KindPhysical})
		addLink(g, devKey, n.LocalInterface, remoteKey, n.NeighborInterface, fabricmodel.LinkPhysical)
	}

	// Step 5: explicit connected_superspines records, else rely on the
	// bundle-peer links already added above for spine<->superspine adjacency.
	for _, cs := range in.ConnectedSuperspines {
		spineKey, _ := b.deviceKey(cs.Spine)
		ssKey, _ := b.deviceKey(cs.Superspine)
		spineEp := fabricmodel.Endpoint{Device: spineKey, Interface: cs.SpineInterface}
		if _, ok := g.LinkAt(spineEp); ok {
			continue
		}
		g.AddInterface(fabricmodel.Interface{Device: spineKey, Name: cs.SpineInterface, Kind: fabricmodel.KindPhysical})
		g.AddInterface(fabricmodel.Interface{Device: ssKey, Name: cs.SuperspineInterface, Kind: fabricmodel.KindPhysical})
		addLink(g, spineKey, cs.SpineInterface, ssKey, cs.SuperspineInterface, fabricmodel.LinkPhysical)
	}

	// Step 6 (the two indices) is maintained incrementally by the graph itself.

	validate(g, report)
	computeUnreachable(g, report)

	return g, report
}

func addLink(g *fabricmodel.TopologyGraph, devA, ifA, devB, ifB string, kind fabricmodel.LinkKind) {
	a := fabricmodel.Endpoint{Device: devA, Interface: ifA}
	b := fabricmodel.Endpoint{Device: devB, Interface: ifB}
	if _, ok := g.LinkAt(a); ok {
		return
	}
	devAInfo, _ := g.Device(devA)
	devBInfo, _ := g.Device(devB)
	roleA, roleB := devAInfo.Role, devBInfo.Role
	g.AddLink(fabricmodel.Link{
		A: a, B: b, Kind: kind,
		RoleA: roleA, RoleB: roleB,
		Invalid: !fabricmodel.CompatibleLinkRoles(roleA, roleB),
	})
}

// validate scans all links, records leaf-leaf/superspine-superspine
// violations and zero-LLDP devices. It does not remove anything from the
// graph; invalid links stay present but marked.
func validate(g *fabricmodel.TopologyGraph, report *ValidationReport) {
	links := g.Links()
	for i := range links {
		if links[i].Invalid {
			report.InvalidLinks = append(report.InvalidLinks, links[i])
		}
	}

	for _, d := range g.Devices() {
		stat := report.Coverage[d.ID.CanonicalKey]
		if stat.NeighborsSeen == 0 {
			report.LLDPGaps = append(report.LLDPGaps, d.ID.CanonicalKey)
		}
	}
	sort.Strings(report.LLDPGaps)
}

// computeUnreachable finds devices with no path (via valid links) to any
// spine, a coverage signal for operators, not a build failure.
func computeUnreachable(g *fabricmodel.TopologyGraph, report *ValidationReport) {
	spines := map[string]bool{}
	for _, d := range g.Devices() {
		if d.Role == fabricmodel.RoleSpine {
			spines[d.ID.CanonicalKey] = true
		}
	}

	reachable := map[string]bool{}
	queue := make([]string, 0, len(spines))
	for k := range spines {
		reachable[k] = true
		queue = append(queue, k)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, l := range g.ValidLinks() {
			var other string
			switch cur {
			case l.A.Device:
				other = l.B.Device
			case l.B.Device:
				other = l.A.Device
			default:
				continue
			}
			if !reachable[other] {
				reachable[other] = true
				queue = append(queue, other)
			}
		}
	}

	for _, d := range g.Devices() {
		if !reachable[d.ID.CanonicalKey] {
			report.UnreachableDevices = append(report.UnreachableDevices, d.ID.CanonicalKey)
		}
	}
	sort.Strings(report.UnreachableDevices)
}
