package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dnaas-fabric/reasoner/pkg/configsynth"
	"github.com/dnaas-fabric/reasoner/pkg/export"
	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
	"github.com/dnaas-fabric/reasoner/pkg/ferrors"
	"github.com/dnaas-fabric/reasoner/pkg/pathengine"
	"github.com/dnaas-fabric/reasoner/pkg/util"
	"github.com/dnaas-fabric/reasoner/pkg/validate"
)

// loadGraph rehydrates the TopologyGraph from the last persisted discovery
// run. Commands that compute paths against it never re-read artifacts.
func loadGraph(cmd *cobra.Command) (*fabricmodel.TopologyGraph, error) {
	snap, found, err := app.store.Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ferrors.NewIOError("load topology", fmt.Errorf("no persisted topology snapshot; run discover first"))
	}
	var dto export.TopologySnapshot
	if err := json.Unmarshal(snap.TopologyJSON, &dto); err != nil {
		return nil, ferrors.NewIOError("parse persisted topology snapshot", err)
	}
	return export.Rehydrate(dto), nil
}

func roleOf(g *fabricmodel.TopologyGraph, device string) (fabricmodel.DeviceRole, bool) {
	dev, ok := g.Device(app.norm.CanonicalKey(device))
	if !ok {
		return fabricmodel.RoleUnknown, false
	}
	return dev.Role, true
}

func interfacePresent(g *fabricmodel.TopologyGraph) func(device, iface string) bool {
	return func(device, iface string) bool {
		key := app.norm.CanonicalKey(device)
		if _, ok := g.Interface(key, iface); ok {
			return true
		}
		_, ok := g.BundleContaining(key, iface)
		return ok
	}
}

// canonicalizeRequest rewrites a validated request's endpoint device names
// to their canonical graph keys, run after validate.Request so the path
// engine and config synthesizer never see a raw CLI-supplied device name.
func canonicalizeRequest(req fabricmodel.ServiceRequest) fabricmodel.ServiceRequest {
	req.Source.Device = app.norm.CanonicalKey(req.Source.Device)
	dests := make([]fabricmodel.ServiceEndpoint, len(req.DestinationEndpoints))
	for i, ep := range req.DestinationEndpoints {
		dests[i] = fabricmodel.ServiceEndpoint{Device: app.norm.CanonicalKey(ep.Device), Interface: ep.Interface}
	}
	req.DestinationEndpoints = dests
	return req
}

var buildP2PCmd = &cobra.Command{
	Use:   "build-p2p <service-name> <vlan-id> <src-device> <src-iface> <dst-device> <dst-iface>",
	Short: "Synthesize configuration for a point-to-point service",
	Args:  cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(cmd)
		if err != nil {
			return err
		}

		req, err := parseP2PRequest(args)
		if err != nil {
			return err
		}

		srcRole, srcFound := roleOf(g, req.Source.Device)
		dstRole, _ := roleOf(g, req.DestinationEndpoints[0].Device)

		if err := validate.Request(req, srcRole, []fabricmodel.DeviceRole{dstRole}, srcFound, interfacePresent(g)); err != nil {
			return err
		}

		req = canonicalizeRequest(req)
		srcKey := req.Source.Device
		dstKey := req.DestinationEndpoints[0].Device

		engine := pathengine.New(g)
		var path *fabricmodel.Path
		if dstRole == fabricmodel.RoleSuperspine {
			path = engine.CalculatePathToSuperspine(srcKey, dstKey)
		} else {
			path = engine.CalculatePath(srcKey, dstKey)
		}
		if path == nil {
			return ferrors.NewTopologyError(fmt.Sprintf("no path from %s to %s", srcKey, dstKey))
		}

		synth := configsynth.New(g)
		var art *fabricmodel.ConfigArtifact
		if dstRole == fabricmodel.RoleSuperspine {
			art, err = synth.P2PSuperspine(req, path)
		} else {
			art, err = synth.P2P(req, path)
		}
		if err != nil {
			return err
		}

		return outputArtifact(art)
	},
}

var buildP2MPCmd = &cobra.Command{
	Use:   "build-p2mp <service-name> <vlan-id> <src-device> <src-iface> <dst-device>:<dst-iface>[,<dst-device>:<dst-iface>...]",
	Short: "Synthesize configuration for a point-to-multipoint service",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(cmd)
		if err != nil {
			return err
		}

		dests, err := parseDestList(args[4])
		if err != nil {
			return err
		}
		req, err := parseServiceRequest(args[0], args[1], args[2], args[3], dests)
		if err != nil {
			return err
		}

		srcRole, srcFound := roleOf(g, req.Source.Device)

		dstRoles := make([]fabricmodel.DeviceRole, len(dests))
		for i, ep := range dests {
			r, _ := roleOf(g, ep.Device)
			dstRoles[i] = r
		}

		if err := validate.Request(req, srcRole, dstRoles, srcFound, interfacePresent(g)); err != nil {
			return err
		}

		req = canonicalizeRequest(req)
		srcKey := req.Source.Device
		dstKeys := make([]string, len(req.DestinationEndpoints))
		for i, ep := range req.DestinationEndpoints {
			dstKeys[i] = ep.Device
		}

		engine := pathengine.New(g)
		plan := engine.CalculateP2MPPaths(srcKey, dstKeys)
		if len(plan.Paths) == 0 {
			return ferrors.NewTopologyError(fmt.Sprintf("no destination reachable from %s", srcKey))
		}

		synth := configsynth.New(g)
		art, err := synth.P2MP(req, plan.Paths, plan.FailedDestinations)
		if err != nil {
			return err
		}
		return outputArtifact(art)
	},
}

// parseP2PRequest builds a ServiceRequest from build-p2p's fixed 6 args.
func parseP2PRequest(args []string) (fabricmodel.ServiceRequest, error) {
	return parseServiceRequest(args[0], args[1], args[2], args[3], []fabricmodel.ServiceEndpoint{{Device: args[4], Interface: args[5]}})
}

func parseServiceRequest(serviceName, vlanStr, srcDevice, srcIface string, dests []fabricmodel.ServiceEndpoint) (fabricmodel.ServiceRequest, error) {
	vlan := 0
	if _, err := fmt.Sscanf(vlanStr, "%d", &vlan); err != nil {
		return fabricmodel.ServiceRequest{}, ferrors.NewValidationError(fmt.Sprintf("invalid vlan id %q", vlanStr))
	}
	return fabricmodel.ServiceRequest{
		ServiceName:          serviceName,
		VlanID:               vlan,
		Source:               fabricmodel.ServiceEndpoint{Device: srcDevice, Interface: srcIface},
		DestinationEndpoints: dests,
	}, nil
}

// parseDestList parses "dev:iface,dev:iface" into endpoints.
func parseDestList(spec string) ([]fabricmodel.ServiceEndpoint, error) {
	var out []fabricmodel.ServiceEndpoint
	for _, entry := range util.SplitCommaSeparated(spec) {
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			return nil, ferrors.NewValidationError(fmt.Sprintf("destination %q must be device:interface", entry))
		}
		out = append(out, fabricmodel.ServiceEndpoint{Device: parts[0], Interface: parts[1]})
	}
	if len(out) == 0 {
		return nil, ferrors.NewValidationError("at least one destination is required")
	}
	return out, nil
}

func outputArtifact(art *fabricmodel.ConfigArtifact) error {
	dto := export.ConfigArtifact(art)

	return printJSONOrTable(dto, func() {
		for _, device := range art.DeviceOrder {
			fmt.Printf("! %s\n", device)
			for _, line := range art.PerDeviceCommands[device] {
				fmt.Println(line)
			}
			fmt.Println()
		}
		if len(art.Issues) > 0 {
			fmt.Println(yellow("issues:"))
			for _, issue := range art.Issues {
				fmt.Printf("  - %s\n", issue)
			}
		}
		if !app.executeMode {
			fmt.Println(yellow("preview only: pass -x to confirm this artifact is final"))
		} else {
			fmt.Println(green("artifact confirmed."))
		}
	})
}
