package topology

import "github.com/dnaas-fabric/reasoner/pkg/fabricmodel"

// Discrepancy records a case where a bundle-recorded peer disagreed with
// an LLDP-reported peer on the same local interface; the bundle record
// wins, but the disagreement is surfaced rather than silently dropped.
type Discrepancy struct {
	Device           string
	Interface        string
	BundlePeer       string
	LLDPPeer         string
}

// CoverageStat is the per-device LLDP/bundle coverage detail the
// distillation's boolean gap list doesn't capture on its own.
type CoverageStat struct {
	NeighborsSeen int
	BundlesSeen   int
}

// ValidationReport accompanies a built TopologyGraph with the issues
// found while building it. The graph is still produced even when this
// report is non-empty; invalid links are marked and excluded from
// pathfinding rather than causing the build to fail.
type ValidationReport struct {
	InvalidLinks             []fabricmodel.Link
	LLDPGaps                 []string // canonical keys with zero LLDP entries
	UnreachableDevices       []string // canonical keys not reachable from any spine
	Coverage                 map[string]CoverageStat
	BundleLLDPDiscrepancies  []Discrepancy
}

func newValidationReport() *ValidationReport {
	return &ValidationReport{Coverage: make(map[string]CoverageStat)}
}
