// Package validate checks an inbound ServiceRequest against the fabric's
// structural rules (§4.J) before the Path Engine or Config Synthesizer ever
// run. All failures for one request are collected into a single
// ValidationError rather than aborting on the first.
package validate

import (
	"fmt"
	"regexp"

	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
	"github.com/dnaas-fabric/reasoner/pkg/ferrors"
)

const (
	minVlan = 1
	maxVlan = 4094

	// maxServiceNameLen bounds ServiceName length. Request always applies
	// this built-in value; fabriccfg's max_service_name_len setting is not
	// read here.
	maxServiceNameLen = 64
)

var serviceNameCharset = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Request validates a ServiceRequest's static fields and its endpoints
// against a resolved TopologyGraph. dstRoles gives the resolved role of
// each destination endpoint's device, in the same order as
// req.DestinationEndpoints, with fabricmodel.RoleUnknown for any endpoint
// whose device was not found in the graph.
func Request(req fabricmodel.ServiceRequest, srcRole fabricmodel.DeviceRole, dstRoles []fabricmodel.DeviceRole, srcFound bool, interfacePresent func(device, iface string) bool) error {
	v := &ferrors.ValidationBuilder{}

	v.Add(req.VlanID >= minVlan && req.VlanID <= maxVlan,
		fmt.Sprintf("vlan id %d out of range [%d,%d]", req.VlanID, minVlan, maxVlan))

	v.Add(len(req.ServiceName) > 0 && len(req.ServiceName) <= maxServiceNameLen,
		fmt.Sprintf("service name length must be in (0,%d]", maxServiceNameLen))
	v.Add(serviceNameCharset.MatchString(req.ServiceName),
		"service name must match [A-Za-z0-9_-]+")

	v.Add(srcFound, fmt.Sprintf("source device %s not found in topology", req.Source.Device))
	if srcFound {
		v.Add(srcRole == fabricmodel.RoleLeaf,
			fmt.Sprintf("source %s must be a LEAF, got %s", req.Source.Device, srcRole))
	}
	if interfacePresent != nil && srcFound {
		v.Add(interfacePresent(req.Source.Device, req.Source.Interface),
			fmt.Sprintf("source interface %s/%s not present in topology", req.Source.Device, req.Source.Interface))
	}

	v.Add(len(req.DestinationEndpoints) > 0, "at least one destination is required")

	seen := map[fabricmodel.ServiceEndpoint]bool{}
	atLeastOneValidDest := false
	var destIssues []string
	for i, ep := range req.DestinationEndpoints {
		if seen[ep] {
			v.AddErrorf("duplicate destination endpoint %s/%s", ep.Device, ep.Interface)
			continue
		}
		seen[ep] = true

		role := fabricmodel.RoleUnknown
		if i < len(dstRoles) {
			role = dstRoles[i]
		}
		validRole := role == fabricmodel.RoleLeaf || role == fabricmodel.RoleSuperspine
		if !validRole {
			destIssues = append(destIssues, fmt.Sprintf("destination %s must be LEAF or SUPERSPINE, got %s", ep.Device, role))
			continue
		}
		v.Add(!(srcRole == fabricmodel.RoleLeaf && role == fabricmodel.RoleLeaf && req.Source.Device == ep.Device),
			fmt.Sprintf("source and destination %s cannot be the same device", ep.Device))

		if interfacePresent != nil && !interfacePresent(ep.Device, ep.Interface) {
			destIssues = append(destIssues, fmt.Sprintf("destination interface %s/%s not present in topology", ep.Device, ep.Interface))
			continue
		}
		atLeastOneValidDest = true
	}
	if len(req.DestinationEndpoints) <= 1 || !atLeastOneValidDest {
		for _, issue := range destIssues {
			v.AddErrorf("%s", issue)
		}
	}

	// For a P2MP request (more than one destination), the request as a
	// whole is acceptable as long as at least one destination is
	// structurally valid; per-destination path failures are reported later
	// by the Path Engine, not rejected here.
	if len(req.DestinationEndpoints) > 1 {
		v.Add(atLeastOneValidDest, "no destination endpoint is structurally valid")
	}

	return v.Build()
}

// NoDirectLeafLeafOrSuperspineSuperspine reports whether a topology
// consisting solely of roleA and roleB endpoints (no transit device) would
// violate the fixed adjacency rule. Used when a caller supplies an explicit
// single-hop topology request bypassing the Path Engine.
func NoDirectLeafLeafOrSuperspineSuperspine(roleA, roleB fabricmodel.DeviceRole) error {
	if roleA == fabricmodel.RoleLeaf && roleB == fabricmodel.RoleLeaf {
		return ferrors.NewValidationError("a direct leaf-to-leaf topology is not permitted")
	}
	if roleA == fabricmodel.RoleSuperspine && roleB == fabricmodel.RoleSuperspine {
		return ferrors.NewValidationError("a direct superspine-to-superspine topology is not permitted")
	}
	return nil
}
