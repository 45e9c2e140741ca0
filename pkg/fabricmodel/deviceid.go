// Package fabricmodel holds the shared in-memory data model for the
// topology and bridge-domain reasoning engine: device identity, the
// topology graph, paths, VLAN facts, bridge-domain fragments, consolidated
// services and configuration artifacts. Nothing in this package performs
// I/O; it is the arena the rest of the pipeline reads and writes.
package fabricmodel

// DeviceId pairs a device's raw observed name with its canonical
// comparison key. Equality and hashing always use the canonical key: two
// DeviceIds with different RawNames but the same CanonicalKey refer to the
// same physical device.
type DeviceId struct {
	RawName      string
	CanonicalKey string
}

// Equal reports whether two DeviceIds refer to the same physical device.
func (d DeviceId) Equal(other DeviceId) bool {
	return d.CanonicalKey == other.CanonicalKey
}

// String returns the raw name, for logging/display.
func (d DeviceId) String() string {
	return d.RawName
}
