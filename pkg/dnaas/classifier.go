// Package dnaas classifies bridge-domain fragments into the closed-set
// DNAAS types (§4.E) from their aggregated, CLI-derived VLAN facts.
// Classification never looks at device roles or interface names, and
// never looks across fragments: whether same-outer QinQ fragments belong
// to the same service (Type-2A once merged) or to different services
// (Type-2B) depends on consolidation grouping, decided in
// pkg/consolidate once that grouping is known.
package dnaas

import (
	"github.com/dnaas-fabric/reasoner/pkg/bridgedomain"
	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
)

// ClassifyAll classifies every fragment independently.
func ClassifyAll(fragments []*fabricmodel.BridgeDomainFragment) {
	for _, f := range fragments {
		classifyOne(f)
	}
}

func classifyOne(f *fabricmodel.BridgeDomainFragment) {
	completeness := f.FactCompleteness()
	conflict := bridgedomain.HasConflict(f)

	var (
		hasDouble, hasSingle, hasRange, hasList, hasManip bool
		outerSet                                          = map[int]bool{}
		innerSet                                          = map[int]bool{}
		singleSet                                         = map[int]bool{}
	)
	for _, iw := range f.Interfaces {
		switch iw.VlanFacts.Kind {
		case fabricmodel.VlanDoubleTag:
			hasDouble = true
			outerSet[iw.VlanFacts.Outer] = true
			innerSet[iw.VlanFacts.Inner] = true
		case fabricmodel.VlanSingleTag:
			hasSingle = true
			singleSet[iw.VlanFacts.VlanID] = true
		case fabricmodel.VlanRange:
			hasRange = true
		case fabricmodel.VlanList:
			hasList = true
		case fabricmodel.VlanManipulation:
			hasManip = true
		}
	}

	switch {
	case conflict:
		f.DnaasType = fabricmodel.DnaasUnknown
		f.Confidence = minFloat(0.5, completeness)
		f.ConfidenceReasons = append(f.ConfidenceReasons, "conflicting VLAN facts within fragment")

	case hasDouble && hasSingle:
		f.DnaasType = fabricmodel.Dnaas3Hybrid
		f.Confidence = completeness

	case hasDouble && len(outerSet) == 1 && len(innerSet) > 1:
		f.DnaasType = fabricmodel.Dnaas2AQinQSingleBD
		f.Confidence = completeness

	case hasDouble:
		f.DnaasType = fabricmodel.Dnaas1DoubleTagged
		f.Confidence = completeness

	case hasSingle && len(singleSet) == 1:
		f.DnaasType = fabricmodel.Dnaas4ASingleTagged
		f.Confidence = completeness

	case hasSingle:
		// Multiple distinct single-tag values on one fragment without a
		// shared outer: treat as an (ungrouped) list for type purposes.
		f.DnaasType = fabricmodel.Dnaas4BSingleTaggedRangeList
		f.Confidence = completeness

	case hasRange || hasList:
		f.DnaasType = fabricmodel.Dnaas4BSingleTaggedRangeList
		f.Confidence = completeness

	case hasManip:
		f.DnaasType = fabricmodel.DnaasUnknown
		f.Confidence = minFloat(0.5, completeness)
		f.ConfidenceReasons = append(f.ConfidenceReasons, "manipulation-only facts, no direct tag classification")

	default:
		f.DnaasType = fabricmodel.Dnaas5PortMode
		f.Confidence = 1.0
	}

	if completeness < 1.0 && f.DnaasType != fabricmodel.DnaasUnknown {
		f.ConfidenceReasons = append(f.ConfidenceReasons, "partial VLAN fact coverage across members")
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
