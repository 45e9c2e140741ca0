package fabricmodel

// DnaasType is the closed-set classification of how VLAN tags are used by
// a bridge domain.
type DnaasType int

const (
	DnaasUnknown DnaasType = iota
	Dnaas1DoubleTagged
	Dnaas2AQinQSingleBD
	Dnaas2BQinQMultiBD
	Dnaas3Hybrid
	Dnaas4ASingleTagged
	Dnaas4BSingleTaggedRangeList
	Dnaas5PortMode
)

func (t DnaasType) String() string {
	switch t {
	case Dnaas1DoubleTagged:
		return "Type-1-DoubleTagged"
	case Dnaas2AQinQSingleBD:
		return "Type-2A-QinQ-SingleBD"
	case Dnaas2BQinQMultiBD:
		return "Type-2B-QinQ-MultiBD"
	case Dnaas3Hybrid:
		return "Type-3-Hybrid"
	case Dnaas4ASingleTagged:
		return "Type-4A-SingleTagged"
	case Dnaas4BSingleTaggedRangeList:
		return "Type-4B-SingleTaggedRangeList"
	case Dnaas5PortMode:
		return "Type-5-PortMode"
	default:
		return "Unknown"
	}
}

// InterfaceRole classifies an interface's function within a bridge domain.
type InterfaceRole int

const (
	RoleUnassigned InterfaceRole = iota
	RoleAccess
	RoleUplink
	RoleDownlink
	RoleTransport
	RoleAmbiguous // SPINE/SUPERSPINE interface with no link evidence
)

func (r InterfaceRole) String() string {
	switch r {
	case RoleAccess:
		return "ACCESS"
	case RoleUplink:
		return "UPLINK"
	case RoleDownlink:
		return "DOWNLINK"
	case RoleTransport:
		return "TRANSPORT"
	case RoleAmbiguous:
		return "AMBIGUOUS"
	default:
		return "UNASSIGNED"
	}
}

// InterfaceWithRole pairs an interface with its derived role and VLAN
// facts, for reporting in fragments and consolidated bridge domains.
type InterfaceWithRole struct {
	Device    string
	Name      string
	Role      InterfaceRole
	VlanFacts VlanConfig
}

// Scope classifies the deployment breadth of a consolidated bridge domain.
type Scope int

const (
	ScopeLocal Scope = iota
	ScopeLocalDeployment
	ScopeGlobalDeployment
)

func (s Scope) String() string {
	switch s {
	case ScopeLocalDeployment:
		return "LOCAL_DEPLOYMENT"
	case ScopeGlobalDeployment:
		return "GLOBAL_DEPLOYMENT"
	default:
		return "LOCAL"
	}
}
