// Package ifacerole assigns an ACCESS/UPLINK/DOWNLINK/TRANSPORT role to
// each interface participating in a bridge-domain fragment (§4.F), from
// the device's role and the remote endpoint's role over the topology
// graph. No fallback guessing is performed for SPINE/SUPERSPINE interfaces
// with no link evidence — they are flagged AMBIGUOUS instead.
package ifacerole

import "github.com/dnaas-fabric/reasoner/pkg/fabricmodel"

// Assign annotates frag's interfaces in place with their derived role.
func Assign(g *fabricmodel.TopologyGraph, frag *fabricmodel.BridgeDomainFragment) {
	dev, ok := g.Device(frag.Device)
	if !ok {
		return
	}

	for i := range frag.Interfaces {
		iw := &frag.Interfaces[i]
		link, hasLink := g.LinkAt(fabricmodel.Endpoint{Device: frag.Device, Interface: iw.Name})

		switch dev.Role {
		case fabricmodel.RoleLeaf:
			if !hasLink || link.Invalid {
				iw.Role = fabricmodel.RoleAccess
				continue
			}
			remote := link.Other(fabricmodel.Endpoint{Device: frag.Device, Interface: iw.Name})
			if link.RoleOf(remote) == fabricmodel.RoleSpine {
				iw.Role = fabricmodel.RoleUplink
			} else {
				iw.Role = fabricmodel.RoleAccess
			}

		case fabricmodel.RoleSpine:
			if !hasLink || link.Invalid {
				iw.Role = fabricmodel.RoleAmbiguous
				continue
			}
			remote := link.Other(fabricmodel.Endpoint{Device: frag.Device, Interface: iw.Name})
			switch link.RoleOf(remote) {
			case fabricmodel.RoleLeaf:
				iw.Role = fabricmodel.RoleDownlink
			case fabricmodel.RoleSuperspine:
				iw.Role = fabricmodel.RoleUplink
			default:
				iw.Role = fabricmodel.RoleAmbiguous
			}

		case fabricmodel.RoleSuperspine:
			if !hasLink || link.Invalid {
				// No fallback guessing for SUPERSPINE with no link evidence.
				iw.Role = fabricmodel.RoleAmbiguous
				continue
			}
			remote := link.Other(fabricmodel.Endpoint{Device: frag.Device, Interface: iw.Name})
			if link.RoleOf(remote) == fabricmodel.RoleSpine {
				iw.Role = fabricmodel.RoleDownlink
			} else {
				iw.Role = fabricmodel.RoleAccess
			}

		default:
			iw.Role = fabricmodel.RoleAmbiguous
		}
	}
}

// AssignAll runs Assign over every fragment.
func AssignAll(g *fabricmodel.TopologyGraph, fragments []*fabricmodel.BridgeDomainFragment) {
	for _, f := range fragments {
		Assign(g, f)
	}
}
