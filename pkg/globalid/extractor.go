// Package globalid derives the consolidation key for a bridge-domain
// fragment (§4.G) and classifies its deployment scope.
package globalid

import "github.com/dnaas-fabric/reasoner/pkg/fabricmodel"

// Extract returns the global identifier for frag's DNAAS type, or nil if
// the type carries none (port-mode, or a range/list with no nested outer).
func Extract(frag *fabricmodel.BridgeDomainFragment) *int {
	switch frag.DnaasType {
	case fabricmodel.Dnaas1DoubleTagged, fabricmodel.Dnaas2AQinQSingleBD,
		fabricmodel.Dnaas2BQinQMultiBD, fabricmodel.Dnaas3Hybrid:
		if outer, ok := outerOf(frag); ok {
			return &outer
		}
		return nil

	case fabricmodel.Dnaas4ASingleTagged:
		if vlan, ok := singleVlanOf(frag); ok {
			return &vlan
		}
		return nil

	case fabricmodel.Dnaas4BSingleTaggedRangeList:
		if outer, ok := outerOf(frag); ok {
			return &outer
		}
		return nil

	default: // Dnaas5PortMode, DnaasUnknown
		return nil
	}
}

func outerOf(frag *fabricmodel.BridgeDomainFragment) (int, bool) {
	for _, iw := range frag.Interfaces {
		if iw.VlanFacts.Kind == fabricmodel.VlanDoubleTag {
			return iw.VlanFacts.Outer, true
		}
	}
	if frag.AggregatedVlan.Kind == fabricmodel.VlanDoubleTag {
		return frag.AggregatedVlan.Outer, true
	}
	return 0, false
}

func singleVlanOf(frag *fabricmodel.BridgeDomainFragment) (int, bool) {
	for _, iw := range frag.Interfaces {
		if iw.VlanFacts.Kind == fabricmodel.VlanSingleTag {
			return iw.VlanFacts.VlanID, true
		}
	}
	if frag.AggregatedVlan.Kind == fabricmodel.VlanSingleTag {
		return frag.AggregatedVlan.VlanID, true
	}
	return 0, false
}

// Scope classifies the deployment breadth given an identifier and the set
// of devices the fragment (pre-consolidation) or consolidated domain
// (post-consolidation) was observed on.
func Scope(identifier *int, deviceCount int) fabricmodel.Scope {
	switch {
	case identifier == nil:
		return fabricmodel.ScopeLocal
	case deviceCount <= 1:
		return fabricmodel.ScopeLocalDeployment
	default:
		return fabricmodel.ScopeGlobalDeployment
	}
}
