package fabricmodel

// BDInstance is a per-device bridge-domain instance as discovered from CLI:
// a name, admin state, and the interfaces attached to it.
type BDInstance struct {
	Name        string
	Device      string // canonical key
	AdminState  string // "up" / "down"
	Interfaces  []string
}

// BridgeDomainFragment is the per-device view of a bridge domain: its
// attached interfaces joined to their VLAN facts, the inferred DNAAS type,
// and a confidence score reflecting fact completeness.
type BridgeDomainFragment struct {
	Name              string
	Device            string // canonical key
	AdminState        string
	Interfaces        []InterfaceWithRole
	AggregatedVlan    VlanConfig
	DnaasType         DnaasType
	Confidence        float64
	ConfidenceReasons []string // additive: why confidence was reduced, if it was
}

// HasCompleteFacts reports whether every interface in the fragment carries
// VLAN facts (Kind != VlanNone).
func (f *BridgeDomainFragment) HasCompleteFacts() bool {
	for _, iw := range f.Interfaces {
		if iw.VlanFacts.Kind == VlanNone {
			return false
		}
	}
	return true
}

// FactCompleteness returns the fraction of interfaces carrying VLAN facts,
// in [0,1]. A fragment with no interfaces is considered complete (1.0).
func (f *BridgeDomainFragment) FactCompleteness() float64 {
	if len(f.Interfaces) == 0 {
		return 1.0
	}
	have := 0
	for _, iw := range f.Interfaces {
		if iw.VlanFacts.Kind != VlanNone {
			have++
		}
	}
	return float64(have) / float64(len(f.Interfaces))
}
