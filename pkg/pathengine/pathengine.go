// Package pathengine computes 2-tier and 3-tier paths across the fabric
// (§4.C). It is a pure function of an immutable TopologyGraph: no
// synchronization is required since the graph never changes underneath it.
package pathengine

import (
	"sort"

	"github.com/dnaas-fabric/reasoner/pkg/fabriclog"
	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
)

// Engine computes paths against one immutable TopologyGraph snapshot.
// Reentrant: safe to call concurrently for independent requests.
type Engine struct {
	g *fabricmodel.TopologyGraph
}

// New creates an Engine over a built TopologyGraph.
func New(g *fabricmodel.TopologyGraph) *Engine {
	return &Engine{g: g}
}

// AvailableSources returns every LEAF device in the graph, sorted by
// canonical key.
func (e *Engine) AvailableSources() []string {
	var out []string
	for _, d := range e.g.Devices() {
		if d.Role == fabricmodel.RoleLeaf {
			out = append(out, d.ID.CanonicalKey)
		}
	}
	sort.Strings(out)
	return out
}

// AvailableDestinations returns every LEAF or SUPERSPINE device other than
// src, sorted by canonical key.
func (e *Engine) AvailableDestinations(src string) []string {
	var out []string
	for _, d := range e.g.Devices() {
		if d.ID.CanonicalKey == src {
			continue
		}
		if d.Role == fabricmodel.RoleLeaf || d.Role == fabricmodel.RoleSuperspine {
			out = append(out, d.ID.CanonicalKey)
		}
	}
	sort.Strings(out)
	return out
}

// Reachability is a dry-run batch check of which destinations currently
// have a computable path from src, without building the full paths.
// Supplements §4.C with the original system's pre-flight reachability
// query (original_source/config_engine/p2mp_path_calculator.py).
func (e *Engine) Reachability(src string, dsts []string) map[string]bool {
	out := make(map[string]bool, len(dsts))
	for _, d := range dsts {
		out[d] = e.CalculatePath(src, d) != nil
	}
	return out
}

// spinesOf returns the spines directly connected to a leaf via valid
// links, sorted by canonical key ascending (the tie-break order).
func (e *Engine) spinesOf(leaf string) []string {
	s := e.g.NeighborsByRole(leaf, fabricmodel.RoleSpine)
	sort.Strings(s)
	return s
}

// superspinesOf returns the superspines directly connected to a spine,
// sorted ascending.
func (e *Engine) superspinesOf(spine string) []string {
	s := e.g.NeighborsByRole(spine, fabricmodel.RoleSuperspine)
	sort.Strings(s)
	return s
}

func intersectSorted(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, v := range b {
		set[v] = true
	}
	var out []string
	for _, v := range a {
		if set[v] {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// linkBetween finds the valid link connecting dev's given neighbor
// endpoint, returning the exact interface pair.
func (e *Engine) linkBetween(devA, devB string) (fabricmodel.Segment, bool) {
	for _, iface := range e.g.InterfacesOn(devA) {
		ep := fabricmodel.Endpoint{Device: devA, Interface: iface.Name}
		l, ok := e.g.LinkAt(ep)
		if !ok || l.Invalid {
			continue
		}
		other := l.Other(ep)
		if other.Device == devB {
			return fabricmodel.Segment{
				SrcDevice: devA, SrcInterface: ep.Interface,
				DstDevice: devB, DstInterface: other.Interface,
			}, true
		}
	}
	return fabricmodel.Segment{}, false
}

// CalculatePath computes the preferred path between two leaves per the
// §4.C tier-selection rule: a 2-tier path via the lowest-canonical-key
// shared spine if one exists, else a 3-tier path via the lowest-key spine
// on each side and the lowest-key shared superspine. Returns nil if no
// leaf is reachable or no common superspine exists.
func (e *Engine) CalculatePath(srcLeaf, dstLeaf string) *fabricmodel.Path {
	if srcLeaf == dstLeaf {
		return nil
	}
	srcSpines := e.spinesOf(srcLeaf)
	dstSpines := e.spinesOf(dstLeaf)

	if shared := intersectSorted(srcSpines, dstSpines); len(shared) > 0 {
		spine := shared[0]
		s1, ok1 := e.linkBetween(srcLeaf, spine)
		s2, ok2 := e.linkBetween(spine, dstLeaf)
		if !ok1 || !ok2 {
			return nil
		}
		s1.Type = fabricmodel.SegLeafToSpine
		s2.Type = fabricmodel.SegSpineToLeaf
		return &fabricmodel.Path{Segments: []fabricmodel.Segment{s1, s2}}
	}

	if len(srcSpines) == 0 || len(dstSpines) == 0 {
		fabriclog.WithFields(map[string]interface{}{"src": srcLeaf, "dst": dstLeaf}).
			Warn("path engine: leaf has no spine connectivity")
		return nil
	}

	sSrc := srcSpines[0]
	sDst := dstSpines[0]
	ssShared := intersectSorted(e.superspinesOf(sSrc), e.superspinesOf(sDst))
	if len(ssShared) == 0 {
		fabriclog.WithFields(map[string]interface{}{"src": srcLeaf, "dst": dstLeaf}).
			Warn("path engine: no common superspine")
		return nil
	}
	ss := ssShared[0]

	seg1, ok1 := e.linkBetween(srcLeaf, sSrc)
	seg2, ok2 := e.linkBetween(sSrc, ss)
	seg3, ok3 := e.linkBetween(ss, sDst)
	seg4, ok4 := e.linkBetween(sDst, dstLeaf)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil
	}
	seg1.Type = fabricmodel.SegLeafToSpine
	seg2.Type = fabricmodel.SegSpineToSuperspine
	seg3.Type = fabricmodel.SegSuperspineToSpine
	seg4.Type = fabricmodel.SegSpineToLeaf
	return &fabricmodel.Path{Segments: []fabricmodel.Segment{seg1, seg2, seg3, seg4}}
}

// CalculatePathToSuperspine computes a leaf-to-superspine path: leaf ->
// spine -> superspine, where the spine is any spine connected to both src
// and (treating NCC variants as one chassis, handled upstream by the
// topology builder's chassis consolidation) the destination superspine.
func (e *Engine) CalculatePathToSuperspine(srcLeaf, dstSuperspine string) *fabricmodel.Path {
	for _, spine := range e.spinesOf(srcLeaf) {
		for _, ss := range e.superspinesOf(spine) {
			if ss != dstSuperspine {
				continue
			}
			seg1, ok1 := e.linkBetween(srcLeaf, spine)
			seg2, ok2 := e.linkBetween(spine, dstSuperspine)
			if !ok1 || !ok2 {
				continue
			}
			seg1.Type = fabricmodel.SegLeafToSpine
			seg2.Type = fabricmodel.SegSpineToSuperspine
			return &fabricmodel.Path{Segments: []fabricmodel.Segment{seg1, seg2}}
		}
	}
	fabriclog.WithFields(map[string]interface{}{"src": srcLeaf, "dst": dstSuperspine}).
		Warn("path engine: no spine bridges leaf to requested superspine")
	return nil
}

// P2MPPlan is the result of a point-to-multipoint path computation: one
// path per served destination, a utilization summary, and the list of
// destinations that could not be served.
type P2MPPlan struct {
	Paths             map[string]fabricmodel.Path
	FailedDestinations []string
	TotalSpinesUsed   int
	PathEfficiency    float64 // served / requested
}

// CalculateP2MPPaths computes per-destination paths and a shared-spine
// utilization summary. Destinations grouped on the same 2-tier spine as
// the source share that source uplink in the summary (reported, not
// structurally deduplicated — deduplication of the emitted commands is the
// Config Synthesizer's job). Succeeds iff at least one destination is served.
func (e *Engine) CalculateP2MPPaths(srcLeaf string, dstLeaves []string) P2MPPlan {
	plan := P2MPPlan{Paths: make(map[string]fabricmodel.Path)}
	spinesUsed := map[string]bool{}

	for _, dst := range dstLeaves {
		p := e.CalculatePath(srcLeaf, dst)
		if p == nil {
			plan.FailedDestinations = append(plan.FailedDestinations, dst)
			continue
		}
		plan.Paths[dst] = *p
		// The spine is always the device after the source in the segment list.
		spinesUsed[p.Segments[0].DstDevice] = true
	}

	plan.TotalSpinesUsed = len(spinesUsed)
	if len(dstLeaves) > 0 {
		plan.PathEfficiency = float64(len(plan.Paths)) / float64(len(dstLeaves))
	}
	sort.Strings(plan.FailedDestinations)
	return plan
}
