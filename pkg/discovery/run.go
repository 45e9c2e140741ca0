package discovery

import (
	"context"

	"github.com/dnaas-fabric/reasoner/pkg/bridgedomain"
	"github.com/dnaas-fabric/reasoner/pkg/consolidate"
	"github.com/dnaas-fabric/reasoner/pkg/dnaas"
	"github.com/dnaas-fabric/reasoner/pkg/fabriclog"
	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
	"github.com/dnaas-fabric/reasoner/pkg/fabricrun"
	"github.com/dnaas-fabric/reasoner/pkg/ifacerole"
	"github.com/dnaas-fabric/reasoner/pkg/normalize"
	"github.com/dnaas-fabric/reasoner/pkg/pathengine"
	"github.com/dnaas-fabric/reasoner/pkg/topology"
)

// Result is the full product of one discovery run: the built topology, its
// validation report, and the consolidated bridge domains with paths
// attached, plus whether the run was cut short by cancellation.
type Result struct {
	RunID       string
	Graph       *fabricmodel.TopologyGraph
	Validation  *topology.ValidationReport
	BridgeDomains []*fabricmodel.ConsolidatedBridgeDomain
	Cancelled   bool
}

// Options bounds the I/O and CPU worker pools used for one run (§5).
type Options struct {
	IOPoolSize  int
	CPUPoolSize int
}

// Run reads one artifact file per device (I/O pool), runs per-device
// bridge-domain detection and DNAAS classification (CPU pool), then builds
// the topology, assigns interface roles, and consolidates on a single
// thread as §5 requires.
// Consolidated bridge domains are pathed against the finished graph using
// the Path Engine's 2-tier/3-tier shortest-path rule.
func Run(ctx context.Context, norm *normalize.Normalizer, paths []string, opts Options) (Result, error) {
	runID := fabricrun.NewRunID()
	log := fabriclog.WithRun(runID)
	token := fabricrun.NewToken(ctx)

	ioPool := fabricrun.NewPool(opts.IOPoolSize)
	ioResults, cancelled := ioPool.Run(token, len(paths), func(i int) (interface{}, error) {
		return ReadArtifact(paths[i])
	})
	if cancelled {
		log.Warn("discovery run cancelled during artifact read")
		return Result{RunID: runID, Cancelled: true}, nil
	}

	artifacts := make([]RawArtifact, 0, len(ioResults))
	for _, r := range ioResults {
		if r.Err != nil {
			log.WithField("error", r.Err).Warn("skipping unreadable artifact")
			continue
		}
		artifacts = append(artifacts, r.Value.(RawArtifact))
	}

	cpuPool := fabricrun.NewPool(opts.CPUPoolSize)
	cpuResults, cancelled := cpuPool.Run(token, len(artifacts), func(i int) (interface{}, error) {
		in, errs := artifacts[i].bridgeDomainContribution()
		in.Device = norm.CanonicalKey(artifacts[i].Device)
		for j := range in.BDInstances {
			in.BDInstances[j].Device = in.Device
		}
		for _, e := range errs {
			log.WithField("device", artifacts[i].Device).Warn(e.Error())
		}
		frags := bridgedomain.Detect([]bridgedomain.DeviceInput{in})
		dnaas.ClassifyAll(frags)
		return frags, nil
	})
	if cancelled {
		log.Warn("discovery run cancelled during bridge-domain detection")
		return Result{RunID: runID, Cancelled: true}, nil
	}

	// Topology construction is single-threaded per §5: an exclusive writer
	// builds the graph, then it is treated as immutable.
	var discIn topology.DiscoveryInput
	var fragments []*fabricmodel.BridgeDomainFragment
	for i, art := range artifacts {
		neighbors, bundles := art.topologyContribution()
		discIn.Neighbors = append(discIn.Neighbors, neighbors...)
		discIn.Bundles = append(discIn.Bundles, bundles...)
		fragments = append(fragments, cpuResults[i].Value.([]*fabricmodel.BridgeDomainFragment)...)
	}

	builder := topology.NewBuilder(norm)
	graph, report := builder.Build(discIn)

	ifacerole.AssignAll(graph, fragments)
	cbds := consolidate.Consolidate(fragments)
	consolidate.PromoteSharedOuterAcrossGroups(cbds)

	engine := pathengine.New(graph)
	for _, cbd := range cbds {
		consolidate.AttachPaths(cbd, func(a, b string) *fabricmodel.Path {
			return engine.CalculatePath(a, b)
		})
	}

	log.WithFields(map[string]interface{}{
		"devices":        len(graph.Devices()),
		"bridge_domains": len(cbds),
	}).Info("discovery run complete")

	return Result{
		RunID:         runID,
		Graph:         graph,
		Validation:    report,
		BridgeDomains: cbds,
	}, nil
}
