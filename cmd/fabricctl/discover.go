package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dnaas-fabric/reasoner/pkg/discovery"
	"github.com/dnaas-fabric/reasoner/pkg/export"
	"github.com/dnaas-fabric/reasoner/pkg/fabriclog"
	"github.com/dnaas-fabric/reasoner/pkg/ferrors"
	"github.com/dnaas-fabric/reasoner/pkg/persist"
)

var discoverCmd = &cobra.Command{
	Use:   "discover <artifact.json>...",
	Short: "Read per-device artifacts, build the topology graph, and persist it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runDiscovery(cmd.Context(), args)
		if err != nil {
			return err
		}
		if result.Cancelled {
			return ferrors.NewCancelledError("discover")
		}

		if err := persistResult(cmd.Context(), result); err != nil {
			return err
		}

		snap := export.Topology(result.Graph, result.Validation)
		return printJSONOrTable(snap, func() {
			printTopologyTable(snap)
		})
	},
}

var consolidateCmd = &cobra.Command{
	Use:   "consolidate <artifact.json>...",
	Short: "Detect and consolidate cross-device bridge-domain fragments",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runDiscovery(cmd.Context(), args)
		if err != nil {
			return err
		}
		if result.Cancelled {
			return ferrors.NewCancelledError("consolidate")
		}

		if err := persistResult(cmd.Context(), result); err != nil {
			return err
		}

		dtos := export.BridgeDomains(result.BridgeDomains)
		return printJSONOrTable(dtos, func() {
			printBridgeDomainTable(dtos)
		})
	},
}

func runDiscovery(ctx context.Context, paths []string) (discovery.Result, error) {
	opts := discovery.Options{IOPoolSize: app.cfg.IOPoolSize, CPUPoolSize: app.cfg.CPUPoolSize}
	return discovery.Run(ctx, app.norm, paths, opts)
}

func persistResult(ctx context.Context, result discovery.Result) error {
	snap := export.Topology(result.Graph, result.Validation)
	topoJSON, err := json.Marshal(snap)
	if err != nil {
		return ferrors.NewIOError("marshal topology snapshot", err)
	}
	return app.store.Save(ctx, persist.Snapshot{
		NormalizationMap: app.norm.Map(),
		TopologyJSON:     topoJSON,
		RunID:            result.RunID,
	})
}

func printJSONOrTable(v interface{}, renderTable func()) error {
	if app.jsonOutput {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return ferrors.NewIOError("marshal output", err)
		}
		fmt.Println(string(data))
		return nil
	}
	renderTable()
	return nil
}

func printTopologyTable(snap export.TopologySnapshot) {
	t := clitable("DEVICE", "ROLE", "VARIANTS")
	for _, d := range snap.Devices {
		t.Row(d.CanonicalKey, d.Role, fmt.Sprint(len(d.Variants)))
	}
	t.Flush()

	if len(snap.Validation.LLDPGaps) > 0 {
		fmt.Printf("\n%s LLDP gaps: %v\n", yellow("warning:"), snap.Validation.LLDPGaps)
	}
	if len(snap.Validation.UnreachableDevices) > 0 {
		fmt.Printf("%s unreachable from any spine: %v\n", yellow("warning:"), snap.Validation.UnreachableDevices)
	}
	fabriclog.Logger.Debugf("rendered %d devices, %d links", len(snap.Devices), len(snap.Links))
}
