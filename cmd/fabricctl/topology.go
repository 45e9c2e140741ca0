package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dnaas-fabric/reasoner/pkg/export"
	"github.com/dnaas-fabric/reasoner/pkg/ferrors"
)

var topologyCmd = &cobra.Command{
	Use:   "topology",
	Short: "Inspect the last persisted topology snapshot",
}

var topologyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the last persisted topology snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, found, err := app.store.Load(cmd.Context())
		if err != nil {
			return err
		}
		if !found {
			return ferrors.NewIOError("topology show", fmt.Errorf("no persisted topology snapshot; run discover first"))
		}

		var out export.TopologySnapshot
		if err := json.Unmarshal(snap.TopologyJSON, &out); err != nil {
			return ferrors.NewIOError("parse persisted topology snapshot", err)
		}
		return printJSONOrTable(out, func() { printTopologyTable(out) })
	},
}

func init() {
	topologyCmd.AddCommand(topologyShowCmd)
}
