// Package configsynth turns a resolved ServiceRequest plus its computed
// Path(s) into per-device CLI command sequences (§4.I). It never touches a
// device: its output is a pure ConfigArtifact the caller may print, diff,
// or hand to a deployment executor outside this module's scope.
package configsynth

import (
	"fmt"
	"sort"

	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
	"github.com/dnaas-fabric/reasoner/pkg/ferrors"
)

// resolveInterface returns the interface that should carry the bridge-
// domain config at an endpoint: the owning bundle's name if the endpoint
// interface is a bundle member, else the physical or already-bundle
// interface itself.
func resolveInterface(g *fabricmodel.TopologyGraph, device, iface string) string {
	if b, ok := g.BundleContaining(device, iface); ok {
		return b.Name
	}
	return iface
}

// transitRequiresBundle reports whether a path-segment endpoint on a
// device of devRole, facing a neighbor of remoteRole, must resolve to a
// bundle interface: LEAF uplinks to SPINE, both of a SPINE's transit
// endpoints, and SUPERSPINE downlinks to SPINE. Access-port endpoints
// (the user-facing source/destination interfaces) carry no such
// requirement and never go through this check.
func transitRequiresBundle(devRole, remoteRole fabricmodel.DeviceRole) bool {
	switch devRole {
	case fabricmodel.RoleLeaf:
		return remoteRole == fabricmodel.RoleSpine
	case fabricmodel.RoleSpine:
		return true
	case fabricmodel.RoleSuperspine:
		return remoteRole == fabricmodel.RoleSpine
	default:
		return false
	}
}

// commandTrio emits the fixed attach/enable/assign sequence for attaching
// one interface's VLAN sub-interface to a bridge-domain-backed service.
func commandTrio(iface, serviceName string, vlanID int) []string {
	sub := fabricmodel.SubinterfaceName(iface, vlanID)
	return []string{
		fmt.Sprintf("interface %s", sub),
		fmt.Sprintf("  bridge-domain %s vlan-id %d", serviceName, vlanID),
		fmt.Sprintf("  no shutdown"),
	}
}

// Synthesizer turns resolved requests into ConfigArtifacts against one
// immutable TopologyGraph snapshot.
type Synthesizer struct {
	g *fabricmodel.TopologyGraph
}

// New creates a Synthesizer over a built TopologyGraph.
func New(g *fabricmodel.TopologyGraph) *Synthesizer {
	return &Synthesizer{g: g}
}

// P2P synthesizes configuration for a single source-to-destination path.
func (s *Synthesizer) P2P(req fabricmodel.ServiceRequest, path *fabricmodel.Path) (*fabricmodel.ConfigArtifact, error) {
	art := newArtifact(req, fabricmodel.TopologyP2P)
	if path == nil {
		art.Issues = append(art.Issues, "no path computed between source and destination")
		return art, nil
	}
	seen := map[string]bool{}

	s.emitAccess(art, seen, req.Source.Device, req.Source.Interface, req)
	if err := s.emitPath(art, seen, path, req); err != nil {
		return nil, err
	}
	s.emitAccess(art, seen, req.DestinationEndpoints[0].Device, req.DestinationEndpoints[0].Interface, req)

	art.Metadata.PathCanonical = path.Devices()
	art.Metadata.DestDevices = []string{req.DestinationEndpoints[0].Device}
	s.finalize(art)
	return art, nil
}

// P2PSuperspine synthesizes configuration for a leaf-to-superspine path
// (the P2P_SUPERSPINE topology type).
func (s *Synthesizer) P2PSuperspine(req fabricmodel.ServiceRequest, path *fabricmodel.Path) (*fabricmodel.ConfigArtifact, error) {
	art := newArtifact(req, fabricmodel.TopologyP2PSuperspine)
	if path == nil {
		art.Issues = append(art.Issues, "no path computed to requested superspine")
		return art, nil
	}
	seen := map[string]bool{}

	s.emitAccess(art, seen, req.Source.Device, req.Source.Interface, req)
	if err := s.emitPath(art, seen, path, req); err != nil {
		return nil, err
	}
	s.emitAccess(art, seen, req.DestinationEndpoints[0].Device, req.DestinationEndpoints[0].Interface, req)

	art.Metadata.PathCanonical = path.Devices()
	art.Metadata.DestDevices = []string{req.DestinationEndpoints[0].Device}
	s.finalize(art)
	return art, nil
}

// P2MP synthesizes configuration for a one-source, many-destination
// request. The topology type is TopologyP2MPMixed when failed is non-empty
// (it is used for reporting only; the emitted commands are
// identical — mixed status describes partial service, not a different
// command shape). Shared uplinks (two destinations behind the same source
// spine) are only emitted once: emit is idempotent per (device, interface).
func (s *Synthesizer) P2MP(req fabricmodel.ServiceRequest, plan map[string]fabricmodel.Path, failed []string) (*fabricmodel.ConfigArtifact, error) {
	topoType := fabricmodel.TopologyP2MP
	if len(failed) > 0 {
		topoType = fabricmodel.TopologyP2MPMixed
	}
	art := newArtifact(req, topoType)

	dstKeys := make([]string, 0, len(plan))
	for k := range plan {
		dstKeys = append(dstKeys, k)
	}
	sort.Strings(dstKeys)

	seen := map[string]bool{}
	pathDevices := map[string]bool{}

	s.emitAccess(art, seen, req.Source.Device, req.Source.Interface, req)
	for _, dst := range dstKeys {
		p := plan[dst]
		if err := s.emitPath(art, seen, &p, req); err != nil {
			return nil, err
		}
		for _, seg := range p.Segments {
			pathDevices[seg.SrcDevice] = true
			pathDevices[seg.DstDevice] = true
		}
	}
	for _, ep := range req.DestinationEndpoints {
		if _, served := plan[ep.Device]; !served {
			continue
		}
		s.emitAccess(art, seen, ep.Device, ep.Interface, req)
	}

	for d := range pathDevices {
		art.Metadata.PathCanonical = append(art.Metadata.PathCanonical, d)
	}
	sort.Strings(art.Metadata.PathCanonical)

	art.Metadata.DestDevices = dstKeys
	for _, d := range failed {
		art.Issues = append(art.Issues, fmt.Sprintf("destination %s: no path", d))
	}
	s.finalize(art)
	return art, nil
}

// emitPath emits the transit trio for every segment endpoint in path,
// enforcing the mandatory bundle-resolution rule along the way.
func (s *Synthesizer) emitPath(art *fabricmodel.ConfigArtifact, seen map[string]bool, path *fabricmodel.Path, req fabricmodel.ServiceRequest) error {
	for _, seg := range path.Segments {
		if err := s.emitTransit(art, seen, seg.SrcDevice, seg.SrcInterface, seg.DstDevice, req); err != nil {
			return err
		}
		if err := s.emitTransit(art, seen, seg.DstDevice, seg.DstInterface, seg.SrcDevice, req); err != nil {
			return err
		}
	}
	return nil
}

// emitAccess attaches the user-facing access interface at a service
// endpoint. Access ports carry no bundle requirement.
func (s *Synthesizer) emitAccess(art *fabricmodel.ConfigArtifact, seen map[string]bool, device, iface string, req fabricmodel.ServiceRequest) {
	resolved := resolveInterface(s.g, device, iface)
	s.appendTrio(art, seen, device, resolved, req)
}

// emitTransit attaches one side of a path segment, enforcing §4.I's
// mandatory bundle-resolution rule for uplink/downlink endpoints: the
// resolved interface must already be a registered bundle, or the request
// is rejected with a TopologyError rather than silently emitting config
// against a bare physical interface.
func (s *Synthesizer) emitTransit(art *fabricmodel.ConfigArtifact, seen map[string]bool, device, iface, remoteDevice string, req fabricmodel.ServiceRequest) error {
	resolved := resolveInterface(s.g, device, iface)

	devRole := fabricmodel.RoleUnknown
	if dev, ok := s.g.Device(device); ok {
		devRole = dev.Role
	}
	remoteRole := fabricmodel.RoleUnknown
	if dev, ok := s.g.Device(remoteDevice); ok {
		remoteRole = dev.Role
	}

	if transitRequiresBundle(devRole, remoteRole) {
		info, known := s.g.Interface(device, resolved)
		if !known || info.Kind != fabricmodel.KindBundle {
			return ferrors.NewTopologyError(fmt.Sprintf(
				"%s/%s must resolve to a bundle interface for a %s-%s transit hop",
				device, iface, devRole, remoteRole))
		}
	}

	s.appendTrio(art, seen, device, resolved, req)
	return nil
}

// appendTrio appends the command trio for one resolved interface on
// device, exactly once per (device, resolved interface). seen is scoped
// to one synthesis call so shared uplinks across multiple P2MP
// destinations, or an access port that happens to coincide with a transit
// endpoint, only emit their trio once.
func (s *Synthesizer) appendTrio(art *fabricmodel.ConfigArtifact, seen map[string]bool, device, resolved string, req fabricmodel.ServiceRequest) {
	key := device + "|" + resolved
	if seen[key] {
		return
	}
	seen[key] = true

	if _, ok := art.PerDeviceCommands[device]; !ok {
		art.DeviceOrder = append(art.DeviceOrder, device)
	}
	art.PerDeviceCommands[device] = append(art.PerDeviceCommands[device], commandTrio(resolved, req.ServiceName, req.VlanID)...)

	if dev, ok := s.g.Device(device); ok {
		if dev.Role == fabricmodel.RoleSuperspine {
			art.Metadata.DestDevTypes = appendRoleOnce(art.Metadata.DestDevTypes, dev.Role)
		}
	}
}

func appendRoleOnce(roles []fabricmodel.DeviceRole, r fabricmodel.DeviceRole) []fabricmodel.DeviceRole {
	for _, existing := range roles {
		if existing == r {
			return roles
		}
	}
	return append(roles, r)
}

func newArtifact(req fabricmodel.ServiceRequest, topoType fabricmodel.TopologyType) *fabricmodel.ConfigArtifact {
	return &fabricmodel.ConfigArtifact{
		Metadata: fabricmodel.ConfigMetadata{
			ServiceName:  req.ServiceName,
			VlanID:       req.VlanID,
			TopologyType: topoType,
			SourceDevice: req.Source.Device,
		},
		PerDeviceCommands: map[string][]string{},
	}
}

// finalize sorts DeviceOrder ascending by canonical key, the deterministic
// ordering rule, independent of the order devices were discovered while
// emitting commands.
func (s *Synthesizer) finalize(art *fabricmodel.ConfigArtifact) {
	sort.Strings(art.DeviceOrder)
	if dev, ok := s.g.Device(art.Metadata.SourceDevice); ok {
		art.Metadata.SourceDevType = dev.Role
	}
}
