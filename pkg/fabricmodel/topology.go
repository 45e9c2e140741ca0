package fabricmodel

// Device is a node in the TopologyGraph: a canonical identity, its
// classified role, and (for multi-card chassis like a superspine with
// NCC0/NCC1) the set of observed raw-name variants that collapse to it.
type Device struct {
	ID       DeviceId
	Role     DeviceRole
	Variants []string
}

// TopologyGraph is the read-only fabric graph published once per discovery
// run. Internally it is arena-allocated: devices and interfaces live in
// flat tables, links reference endpoints by value rather than by pointer,
// so there are no back-references and no cycles to manage.
type TopologyGraph struct {
	devices      []Device
	deviceIndex  map[string]int // canonical key -> index into devices
	interfaces   []Interface
	ifaceIndex   map[Endpoint]int   // endpoint -> index into interfaces
	deviceIfaces map[string][]int   // canonical key -> indices into interfaces
	bundles      []Bundle
	bundleIndex  map[Endpoint]int // (device, bundle name) -> index into bundles
	links        []Link
	linkByEnd    map[Endpoint]int // endpoint -> index into links
}

// NewTopologyGraph returns an empty, mutable graph. Callers build it via
// the Add* methods, then treat it as immutable once construction
// (Topology Builder, §4.B) completes.
func NewTopologyGraph() *TopologyGraph {
	return &TopologyGraph{
		deviceIndex:  make(map[string]int),
		ifaceIndex:   make(map[Endpoint]int),
		deviceIfaces: make(map[string][]int),
		bundleIndex:  make(map[Endpoint]int),
		linkByEnd:    make(map[Endpoint]int),
	}
}

// AddDevice registers a device, or merges variants into an existing entry
// with the same canonical key (the NCC0/NCC1 chassis-consolidation case).
func (g *TopologyGraph) AddDevice(id DeviceId, role DeviceRole) int {
	if idx, ok := g.deviceIndex[id.CanonicalKey]; ok {
		d := &g.devices[idx]
		if role != RoleUnknown && d.Role == RoleUnknown {
			d.Role = role
		}
		d.addVariant(id.RawName)
		return idx
	}
	idx := len(g.devices)
	g.devices = append(g.devices, Device{ID: id, Role: role, Variants: []string{id.RawName}})
	g.deviceIndex[id.CanonicalKey] = idx
	return idx
}

func (d *Device) addVariant(raw string) {
	for _, v := range d.Variants {
		if v == raw {
			return
		}
	}
	d.Variants = append(d.Variants, raw)
}

// Device looks up a device by canonical key.
func (g *TopologyGraph) Device(canonicalKey string) (Device, bool) {
	idx, ok := g.deviceIndex[canonicalKey]
	if !ok {
		return Device{}, false
	}
	return g.devices[idx], true
}

// Devices returns every device in the graph, in insertion order.
func (g *TopologyGraph) Devices() []Device {
	out := make([]Device, len(g.devices))
	copy(out, g.devices)
	return out
}

// AddInterface registers an interface on a device, idempotently.
func (g *TopologyGraph) AddInterface(iface Interface) {
	ep := Endpoint{Device: iface.Device, Interface: iface.Name}
	if _, ok := g.ifaceIndex[ep]; ok {
		return
	}
	idx := len(g.interfaces)
	g.interfaces = append(g.interfaces, iface)
	g.ifaceIndex[ep] = idx
	g.deviceIfaces[iface.Device] = append(g.deviceIfaces[iface.Device], idx)
}

// Interface looks up an interface by device and name.
func (g *TopologyGraph) Interface(device, name string) (Interface, bool) {
	idx, ok := g.ifaceIndex[Endpoint{Device: device, Interface: name}]
	if !ok {
		return Interface{}, false
	}
	return g.interfaces[idx], true
}

// InterfacesOn returns the interfaces present on a device.
func (g *TopologyGraph) InterfacesOn(device string) []Interface {
	idxs := g.deviceIfaces[device]
	out := make([]Interface, len(idxs))
	for i, idx := range idxs {
		out[i] = g.interfaces[idx]
	}
	return out
}

// AddBundle registers a bundle (creating its backing interface if absent).
func (g *TopologyGraph) AddBundle(b Bundle) {
	ep := Endpoint{Device: b.Device, Interface: b.Name}
	if idx, ok := g.bundleIndex[ep]; ok {
		g.bundles[idx] = b
	} else {
		g.bundleIndex[ep] = len(g.bundles)
		g.bundles = append(g.bundles, b)
	}
	g.AddInterface(Interface{Device: b.Device, Name: b.Name, Kind: KindBundle})
}

// Bundle looks up a bundle by device and name.
func (g *TopologyGraph) Bundle(device, name string) (Bundle, bool) {
	idx, ok := g.bundleIndex[Endpoint{Device: device, Interface: name}]
	if !ok {
		return Bundle{}, false
	}
	return g.bundles[idx], true
}

// BundlesOn returns the bundles defined on a device.
func (g *TopologyGraph) BundlesOn(device string) []Bundle {
	var out []Bundle
	for _, b := range g.bundles {
		if b.Device == device {
			out = append(out, b)
		}
	}
	return out
}

// BundleContaining returns the bundle on device that has physical as a
// member, if any.
func (g *TopologyGraph) BundleContaining(device, physical string) (Bundle, bool) {
	for _, b := range g.bundles {
		if b.Device == device && b.HasMember(physical) {
			return b, true
		}
	}
	return Bundle{}, false
}

// AddLink registers an undirected link. Both endpoints are indexed so
// LinkAt can find the link from either side.
func (g *TopologyGraph) AddLink(l Link) {
	idx := len(g.links)
	g.links = append(g.links, l)
	g.linkByEnd[l.A] = idx
	g.linkByEnd[l.B] = idx
}

// LinkAt returns the link attached to the given (device, interface)
// endpoint, if any.
func (g *TopologyGraph) LinkAt(ep Endpoint) (Link, bool) {
	idx, ok := g.linkByEnd[ep]
	if !ok {
		return Link{}, false
	}
	return g.links[idx], true
}

// Links returns every link in the graph, including ones marked Invalid.
func (g *TopologyGraph) Links() []Link {
	out := make([]Link, len(g.links))
	copy(out, g.links)
	return out
}

// ValidLinks returns links excluding those marked Invalid.
func (g *TopologyGraph) ValidLinks() []Link {
	var out []Link
	for _, l := range g.links {
		if !l.Invalid {
			out = append(out, l)
		}
	}
	return out
}

// NeighborsByRole returns, for a device, the set of distinct neighbor
// canonical keys reachable over valid links where the neighbor has the
// given role.
func (g *TopologyGraph) NeighborsByRole(device string, role DeviceRole) []string {
	seen := map[string]bool{}
	var out []string
	for _, idx := range g.deviceIfaces[device] {
		iface := g.interfaces[idx]
		ep := Endpoint{Device: device, Interface: iface.Name}
		l, ok := g.LinkAt(ep)
		if !ok || l.Invalid {
			continue
		}
		other := l.Other(ep)
		if l.RoleOf(other) != role {
			continue
		}
		if !seen[other.Device] {
			seen[other.Device] = true
			out = append(out, other.Device)
		}
	}
	return out
}
