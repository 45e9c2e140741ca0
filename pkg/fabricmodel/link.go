package fabricmodel

// Endpoint identifies one side of a Link: a device and an interface on it.
type Endpoint struct {
	Device    string // canonical key
	Interface string
}

// LinkKind records what produced a Link.
type LinkKind int

const (
	LinkBundle LinkKind = iota
	LinkPhysical
)

func (k LinkKind) String() string {
	if k == LinkBundle {
		return "bundle"
	}
	return "physical"
}

// Link is an undirected edge between two device/interface endpoints,
// tagged with the role pair it connects and whether it passed the
// leaf-leaf/superspine-superspine legality check.
type Link struct {
	A, B    Endpoint
	Kind    LinkKind
	RoleA   DeviceRole
	RoleB   DeviceRole
	Invalid bool // true if A-B role pairing is illegal (leaf-leaf, ss-ss)
}

// Other returns the endpoint on the far side of ep, assuming ep is one of
// the link's two endpoints.
func (l *Link) Other(ep Endpoint) Endpoint {
	if l.A == ep {
		return l.B
	}
	return l.A
}

// RoleOf returns the role recorded for the given endpoint's device.
func (l *Link) RoleOf(ep Endpoint) DeviceRole {
	if l.A == ep {
		return l.RoleA
	}
	return l.RoleB
}
