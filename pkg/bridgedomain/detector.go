// Package bridgedomain implements the Bridge-Domain Detector (§4.D):
// parsing per-device BD instances and VLAN configs into typed service
// fragments. VLAN information is drawn only from VlanConfigEntry records,
// never inferred from interface names (the golden rule).
package bridgedomain

import (
	"sort"

	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
)

// DeviceInput is one device's parsed BD instances and VLAN configuration
// entries, as delivered by the external CLI-parsing collaborator.
type DeviceInput struct {
	Device             string // canonical key
	BDInstances        []fabricmodel.BDInstance
	VlanConfigurations []fabricmodel.VlanConfigEntry
}

// Detect groups BDInstances across devices by name and produces one
// fragment per device per name, joining attached interfaces to their VLAN
// facts. DNAAS classification is left to the caller (pkg/dnaas); this
// detector only aggregates the raw per-fragment VlanConfig.
func Detect(inputs []DeviceInput) []*fabricmodel.BridgeDomainFragment {
	var fragments []*fabricmodel.BridgeDomainFragment

	for _, in := range inputs {
		vlanByIface := make(map[string]fabricmodel.VlanConfigEntry, len(in.VlanConfigurations))
		for _, v := range in.VlanConfigurations {
			vlanByIface[v.Interface] = v
		}

		for _, bd := range in.BDInstances {
			frag := &fabricmodel.BridgeDomainFragment{
				Name:       bd.Name,
				Device:     in.Device,
				AdminState: bd.AdminState,
			}

			ifaceNames := append([]string(nil), bd.Interfaces...)
			sort.Strings(ifaceNames)
			for _, ifName := range ifaceNames {
				var vc fabricmodel.VlanConfig
				if entry, ok := vlanByIface[ifName]; ok {
					vc = entry.ToVlanConfig()
				}
				frag.Interfaces = append(frag.Interfaces, fabricmodel.InterfaceWithRole{
					Device:    in.Device,
					Name:      ifName,
					VlanFacts: vc,
				})
			}

			frag.AggregatedVlan = aggregate(frag)
			fragments = append(fragments, frag)
		}
	}

	return fragments
}

// aggregate derives the fragment-level VlanConfig from its interfaces'
// facts by precedence: explicit outer/inner > single vlan-id > range >
// list > manipulation > none. Conflicting facts (interfaces disagreeing on
// a kind that should be uniform) are surfaced by the caller via
// fabricmodel.DnaasUnknown, not here — this function always returns a
// best-effort aggregate.
func aggregate(frag *fabricmodel.BridgeDomainFragment) fabricmodel.VlanConfig {
	var best fabricmodel.VlanConfig
	bestRank := -1
	rank := func(k fabricmodel.VlanKind) int {
		switch k {
		case fabricmodel.VlanDoubleTag:
			return 5
		case fabricmodel.VlanSingleTag:
			return 4
		case fabricmodel.VlanRange:
			return 3
		case fabricmodel.VlanList:
			return 2
		case fabricmodel.VlanManipulation:
			return 1
		default:
			return 0
		}
	}
	for _, iw := range frag.Interfaces {
		r := rank(iw.VlanFacts.Kind)
		if r > bestRank {
			bestRank = r
			best = iw.VlanFacts
		}
	}
	if bestRank <= 0 {
		return fabricmodel.VlanConfig{Kind: fabricmodel.VlanNone}
	}
	return best
}

// HasConflict reports whether the fragment's interfaces disagree on VLAN
// facts in a way that should reduce classification confidence: e.g. some
// interfaces carry an outer tag with a different value than others, or a
// mix of double-tagged and single-tagged facts that isn't itself the
// Type-3 Hybrid pattern (outer tags must at least agree).
func HasConflict(frag *fabricmodel.BridgeDomainFragment) bool {
	outer := map[int]bool{}
	for _, iw := range frag.Interfaces {
		switch iw.VlanFacts.Kind {
		case fabricmodel.VlanDoubleTag:
			outer[iw.VlanFacts.Outer] = true
		}
	}
	return len(outer) > 1
}
