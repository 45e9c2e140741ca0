// Package topology builds the fabric TopologyGraph (§4.B) from parsed
// per-device neighbor and bundle records.
package topology

// NeighborRecord is one LLDP-derived adjacency as reported by a device.
type NeighborRecord struct {
	Device           string // raw name, as observed on this device's own CLI
	LocalInterface   string
	NeighborDevice   string // raw name
	NeighborInterface string
}

// BundlePeerRecord is one point-to-point peer reachable over a bundle.
type BundlePeerRecord struct {
	RemoteDevice    string // raw name
	LocalInterface  string // bundle name
	RemoteInterface string
}

// BundleRecord is one device's bundle definition.
type BundleRecord struct {
	Name    string
	Device  string // raw name
	Members []string
	Peers   []BundlePeerRecord
}

// ConnectedSuperspineRecord is an explicit spine->superspine adjacency
// record, used when available in preference to bundle-peer scanning.
type ConnectedSuperspineRecord struct {
	Spine          string // raw name
	SpineInterface string
	Superspine     string // raw name
	SuperspineInterface string
}

// DiscoveryInput is the full set of parsed per-device records the
// Topology Builder consumes for one discovery run.
type DiscoveryInput struct {
	Neighbors           []NeighborRecord
	Bundles             []BundleRecord
	ConnectedSuperspines []ConnectedSuperspineRecord
}
