package main

import (
	"fmt"
	"strings"

	"github.com/dnaas-fabric/reasoner/pkg/cli"
	"github.com/dnaas-fabric/reasoner/pkg/export"
)

func clitable(headers ...string) *cli.Table {
	return cli.NewTable(headers...)
}

func printBridgeDomainTable(dtos []export.ConsolidatedBridgeDomainDTO) {
	t := clitable("NAME", "GLOBAL ID", "SCOPE", "TYPE", "DEVICES", "CONFIDENCE")
	for _, d := range dtos {
		id := "-"
		if d.GlobalIdentifier != nil {
			id = fmt.Sprint(*d.GlobalIdentifier)
		}
		t.Row(d.ConsolidatedName, id, d.Scope, d.DnaasType, strings.Join(d.Devices, ","), fmt.Sprintf("%.2f", d.Confidence))
	}
	t.Flush()

	for _, d := range dtos {
		if len(d.Paths) == 0 {
			continue
		}
		fmt.Printf("\n%s (%d path(s)):\n", d.ConsolidatedName, len(d.Paths))
		for _, p := range d.Paths {
			var hops []string
			for _, seg := range p.Segments {
				hops = append(hops, fmt.Sprintf("%s/%s -> %s/%s", seg.SrcDevice, seg.SrcInterface, seg.DstDevice, seg.DstInterface))
			}
			fmt.Printf("  %s\n", strings.Join(hops, " | "))
		}
	}
}
