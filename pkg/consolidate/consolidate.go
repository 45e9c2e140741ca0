// Package consolidate merges per-device bridge-domain fragments sharing a
// global identifier into a ConsolidatedBridgeDomain (§4.H). Reduction runs
// on a single thread after the fan-out detector/classifier step.
package consolidate

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/dnaas-fabric/reasoner/pkg/fabriclog"
	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
	"github.com/dnaas-fabric/reasoner/pkg/globalid"
)

// usernamePatterns extracts a username from a BD name, tried in order.
// The first three are named directly in §4.H; the rest are supplemental
// patterns the original Python bd_assignment_manager.py also recognizes
// (see SPEC_FULL.md's Supplemented Features).
var usernamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^g_([A-Za-z0-9]+)_v\d+`),    // g_<user>_v<vlan>
	regexp.MustCompile(`^l_([A-Za-z0-9]+)_.+`),      // l_<user>_<desc>
	regexp.MustCompile(`^([A-Za-z0-9]+)_v\d+`),      // <user>_v<vlan>
	regexp.MustCompile(`^([A-Za-z0-9]+)-v\d+`),      // <user>-v<vlan>
	regexp.MustCompile(`^g_([A-Za-z0-9]+)_.+_v\d+`), // g_<user>_<desc>_v<vlan>
}

// ExtractUsername returns the username embedded in a BD name, if any of
// the recognized patterns match.
func ExtractUsername(name string) (string, bool) {
	for _, re := range usernamePatterns {
		if m := re.FindStringSubmatch(name); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// key identifies a consolidation group: an optional username plus the
// global identifier. Fragments with neither remain unconsolidated.
type key struct {
	username string
	hasUser  bool
	ident    int
	hasIdent bool
}

func keyFor(frag *fabricmodel.BridgeDomainFragment, ident *int) key {
	k := key{}
	if user, ok := ExtractUsername(frag.Name); ok {
		k.username, k.hasUser = user, true
	}
	if ident != nil {
		k.ident, k.hasIdent = *ident, true
	}
	return k
}

func (k key) unconsolidatable() bool { return !k.hasUser && !k.hasIdent }

// Consolidate merges fragments sharing a (username?, globalIdentifier) key.
// Fragments with no identifier and no username each become their own
// single-fragment ConsolidatedBridgeDomain.
func Consolidate(fragments []*fabricmodel.BridgeDomainFragment) []*fabricmodel.ConsolidatedBridgeDomain {
	groups := map[key][]*fabricmodel.BridgeDomainFragment{}
	order := []key{}
	nextSolo := 0

	for _, f := range fragments {
		ident := globalid.Extract(f)
		k := keyFor(f, ident)
		if k.unconsolidatable() {
			// Each unconsolidatable fragment gets a unique synthetic key so
			// it never merges with another unconsolidatable fragment.
			k = key{username: fmt.Sprintf("__solo_%d", nextSolo)}
			nextSolo++
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], f)
	}

	var out []*fabricmodel.ConsolidatedBridgeDomain
	for _, k := range order {
		out = append(out, merge(k, groups[k]))
	}
	return out
}

func merge(k key, frags []*fabricmodel.BridgeDomainFragment) *fabricmodel.ConsolidatedBridgeDomain {
	cbd := &fabricmodel.ConsolidatedBridgeDomain{
		ConsolidatedName: synthesizeName(k, frags),
	}
	if k.hasIdent {
		id := k.ident
		cbd.GlobalIdentifier = &id
	}

	deviceSet := map[string]bool{}
	var ifaces []fabricmodel.InterfaceWithRole
	typeVotes := map[fabricmodel.DnaasType]int{}
	confidenceSum := 0.0
	provenance := fabricmodel.ConsolidationProvenance{OriginalConfidence: map[string]float64{}}

	for _, f := range frags {
		deviceSet[f.Device] = true
		ifaces = append(ifaces, f.Interfaces...)
		typeVotes[f.DnaasType]++
		confidenceSum += f.Confidence
		provenance.OriginalNames = append(provenance.OriginalNames, f.Name)
		provenance.OriginalConfidence[f.Name] = f.Confidence
	}
	provenance.ConsolidatedCount = len(frags)
	sort.Strings(provenance.OriginalNames)

	cbd.Devices = sortedKeys(deviceSet)
	cbd.Interfaces = ifaces
	cbd.FragmentsMerged = provenance.OriginalNames
	cbd.ConsolidationProvenance = provenance
	cbd.Confidence = confidenceSum / float64(len(frags))

	cbd.DnaasType, cbd.Confidence = resolveType(typeVotes, cbd.Confidence, cbd.ConsolidatedName)
	if onlyQinQVotes(typeVotes) {
		// Each member fragment was classified alone and may show only one
		// inner tag; re-derive Type-1 vs Type-2A from the merged interface
		// set, where the full spread of inner tags under the shared outer
		// is visible.
		if t, ok := classifyMergedQinQ(cbd.Interfaces); ok {
			cbd.DnaasType = t
		}
	}

	ident := cbd.GlobalIdentifier
	cbd.Scope = globalid.Scope(ident, len(cbd.Devices))

	return cbd
}

// resolveType carries the union type iff all merged fragments agree;
// otherwise picks the most permissive compatible type (a fixed ranking,
// most permissive to least) and reduces confidence, logging a
// ConsolidationConflict warning.
func resolveType(votes map[fabricmodel.DnaasType]int, confidence float64, name string) (fabricmodel.DnaasType, float64) {
	if len(votes) == 1 {
		for t := range votes {
			return t, confidence
		}
	}
	// Most-permissive-compatible ranking: Hybrid covers mixed single/double,
	// then QinQ-MultiBD, QinQ-SingleBD, DoubleTagged, SingleTaggedRangeList,
	// SingleTagged, PortMode, Unknown last.
	order := []fabricmodel.DnaasType{
		fabricmodel.Dnaas3Hybrid,
		fabricmodel.Dnaas2BQinQMultiBD,
		fabricmodel.Dnaas2AQinQSingleBD,
		fabricmodel.Dnaas1DoubleTagged,
		fabricmodel.Dnaas4BSingleTaggedRangeList,
		fabricmodel.Dnaas4ASingleTagged,
		fabricmodel.Dnaas5PortMode,
		fabricmodel.DnaasUnknown,
	}
	chosen := fabricmodel.DnaasUnknown
	for _, t := range order {
		if votes[t] > 0 {
			chosen = t
			break
		}
	}
	fabriclog.WithField("consolidated_name", name).
		Warn("consolidation conflict: merged fragments disagree on DNAAS type")
	return chosen, confidence * 0.75
}

// onlyQinQVotes reports whether every fragment merged into this group
// classified as Type-1 or Type-2A — the pair of types whose boundary
// (single inner vs. multiple inner under one outer) only becomes visible
// once the group's fragments are merged.
func onlyQinQVotes(votes map[fabricmodel.DnaasType]int) bool {
	if len(votes) == 0 {
		return false
	}
	for t := range votes {
		if t != fabricmodel.Dnaas1DoubleTagged && t != fabricmodel.Dnaas2AQinQSingleBD {
			return false
		}
	}
	return true
}

// classifyMergedQinQ re-derives Type-1 vs Type-2A from a merged interface
// set: a single shared outer VLAN with more than one distinct inner tag is
// Type-2A, a single shared outer with one inner tag is Type-1. ok is false
// if the merged set doesn't carry a consistent single outer.
func classifyMergedQinQ(ifaces []fabricmodel.InterfaceWithRole) (t fabricmodel.DnaasType, ok bool) {
	outer, ok := singleOuterOf(ifaces)
	if !ok {
		return fabricmodel.DnaasUnknown, false
	}
	innerSet := map[int]bool{}
	for _, iw := range ifaces {
		if iw.VlanFacts.Kind == fabricmodel.VlanDoubleTag && iw.VlanFacts.Outer == outer {
			innerSet[iw.VlanFacts.Inner] = true
		}
	}
	if len(innerSet) > 1 {
		return fabricmodel.Dnaas2AQinQSingleBD, true
	}
	return fabricmodel.Dnaas1DoubleTagged, true
}

// singleOuterOf returns the outer VLAN tag shared by every double-tagged
// interface in ifaces, or false if there is no double-tagged interface or
// they disagree on the outer tag.
func singleOuterOf(ifaces []fabricmodel.InterfaceWithRole) (int, bool) {
	outer := -1
	for _, iw := range ifaces {
		if iw.VlanFacts.Kind != fabricmodel.VlanDoubleTag {
			continue
		}
		if outer == -1 {
			outer = iw.VlanFacts.Outer
		} else if outer != iw.VlanFacts.Outer {
			return 0, false
		}
	}
	if outer == -1 {
		return 0, false
	}
	return outer, true
}

// PromoteSharedOuterAcrossGroups re-classifies Type-1 and Type-2A
// consolidated bridge domains into Type-2B when two or more distinct
// consolidation groups (by construction already keyed on distinct
// usernames/global identifiers, so they will never merge into each other)
// carry the same outer VLAN tag — "one outer tag maps to multiple BDs by
// inner" (§4.E). Run once, after Consolidate, over the full result set.
func PromoteSharedOuterAcrossGroups(cbds []*fabricmodel.ConsolidatedBridgeDomain) {
	countByOuter := map[int]int{}
	for _, cbd := range cbds {
		if cbd.DnaasType != fabricmodel.Dnaas1DoubleTagged && cbd.DnaasType != fabricmodel.Dnaas2AQinQSingleBD {
			continue
		}
		if outer, ok := singleOuterOf(cbd.Interfaces); ok {
			countByOuter[outer]++
		}
	}
	for _, cbd := range cbds {
		if cbd.DnaasType != fabricmodel.Dnaas1DoubleTagged && cbd.DnaasType != fabricmodel.Dnaas2AQinQSingleBD {
			continue
		}
		outer, ok := singleOuterOf(cbd.Interfaces)
		if ok && countByOuter[outer] > 1 {
			cbd.DnaasType = fabricmodel.Dnaas2BQinQMultiBD
		}
	}
}

func synthesizeName(k key, frags []*fabricmodel.BridgeDomainFragment) string {
	if k.hasUser && k.hasIdent {
		return fmt.Sprintf("g_%s_v%d", k.username, k.ident)
	}
	if k.hasUser {
		return fmt.Sprintf("l_%s", k.username)
	}
	if k.hasIdent {
		return fmt.Sprintf("bd_v%d", k.ident)
	}
	if len(frags) > 0 {
		return frags[0].Name
	}
	return "unnamed"
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// AttachPaths computes one path per distinct device pair in cbd.Devices
// (excluding self-pairs) using pathFn, and stores the results sorted by
// (srcDevice, dstDevice) for determinism. Fragments with a single device
// get an empty Paths list, never a self-loop — satisfied automatically
// since no pair exists when len(Devices) < 2.
func AttachPaths(cbd *fabricmodel.ConsolidatedBridgeDomain, pathFn func(a, b string) *fabricmodel.Path) {
	devices := append([]string(nil), cbd.Devices...)
	sort.Strings(devices)
	for i := 0; i < len(devices); i++ {
		for j := i + 1; j < len(devices); j++ {
			if p := pathFn(devices[i], devices[j]); p != nil {
				cbd.Paths = append(cbd.Paths, *p)
			}
		}
	}
}
