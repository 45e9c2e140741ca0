package fabricmodel

import "strings"

// InterfaceKind classifies an Interface.
type InterfaceKind int

const (
	KindPhysical InterfaceKind = iota
	KindBundle
	KindSubinterface
)

func (k InterfaceKind) String() string {
	switch k {
	case KindBundle:
		return "BUNDLE"
	case KindSubinterface:
		return "SUBINTERFACE"
	default:
		return "PHYSICAL"
	}
}

// Interface is a named port, bundle, or sub-interface on a device.
type Interface struct {
	Device     string // canonical key
	Name       string
	Kind       InterfaceKind
	SpeedClass string // e.g. "100G"; empty if unknown
}

// ParseSubinterface splits "<parent>.<tag>" into parent and the integer
// tag. ok is false if name is not in subinterface form.
func ParseSubinterface(name string) (parent string, tag int, ok bool) {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return "", 0, false
	}
	parent = name[:idx]
	tagStr := name[idx+1:]
	n := 0
	for _, c := range tagStr {
		if c < '0' || c > '9' {
			return "", 0, false
		}
		n = n*10 + int(c-'0')
	}
	return parent, n, true
}

// SubinterfaceName formats a "<parent>.<tag>" subinterface name.
func SubinterfaceName(parent string, tag int) string {
	return parent + "." + itoa(tag)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Bundle is a link-aggregation group: a named set of member physical
// interfaces on one device, plus the set of remote endpoints it carries
// point-to-point connections to.
type Bundle struct {
	Device  string // canonical key
	Name    string
	Members []string // physical interface names on Device
	Peers   []BundlePeer
}

// BundlePeer is one remote endpoint reachable over a Bundle.
type BundlePeer struct {
	RemoteDevice    string // canonical key
	LocalInterface  string // bundle name, redundant with owning Bundle.Name
	RemoteInterface string
}

// HasMember reports whether iface is a member of the bundle.
func (b *Bundle) HasMember(iface string) bool {
	for _, m := range b.Members {
		if m == iface {
			return true
		}
	}
	return false
}
