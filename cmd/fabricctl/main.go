// Fabricctl reasons over a VLAN/bridge-domain fabric's discovered topology.
//
// A noun-group CLI tool for the offline topology and bridge-domain
// reasoning engine:
//   - Discover devices from parsed per-device artifacts, build the
//     TopologyGraph, and persist it.
//   - Consolidate cross-device bridge-domain fragments into deployed
//     services and attach paths.
//   - Synthesize per-device configuration for new point-to-point and
//     point-to-multipoint requests.
//   - Inspect the name normalizer's canonical-key table.
//
// Examples:
//
//	fabricctl discover artifacts/*.json
//	fabricctl consolidate --json artifacts/*.json
//	fabricctl topology show
//	fabricctl build-p2p alice 100 leaf1-ny Ethernet1 leaf2-ny Ethernet3 -x
//	fabricctl build-p2mp alice 100 leaf1-ny Ethernet1 leaf2-ny:Ethernet3,leaf3-ny:Ethernet1 -x
//	fabricctl normalize DNAAS-LEAF-A01
package main

import (
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"

	"github.com/dnaas-fabric/reasoner/pkg/cli"
	"github.com/dnaas-fabric/reasoner/pkg/fabriccfg"
	"github.com/dnaas-fabric/reasoner/pkg/fabriclog"
	"github.com/dnaas-fabric/reasoner/pkg/normalize"
	"github.com/dnaas-fabric/reasoner/pkg/persist"
	"github.com/dnaas-fabric/reasoner/pkg/version"
)

// exit codes per §6: 0 success, 1 validation error, 2 I/O error, 3 cancellation.
const (
	exitOK           = 0
	exitValidation   = 1
	exitIO           = 2
	exitCancelled    = 3
)

// App holds CLI state shared across all commands.
type App struct {
	configPath string
	verbose    bool
	jsonOutput bool
	executeMode bool

	cfg   *fabriccfg.Config
	store persist.Store
	norm  *normalize.Normalizer
}

var app = &App{}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

var rootCmd = &cobra.Command{
	Use:               "fabricctl",
	Short:             "VLAN/bridge-domain fabric topology and consolidation tool",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Fabricctl reasons over a fabric's discovered topology offline: it never
connects to a device. It reads parsed per-device artifacts, builds the
topology graph, detects and consolidates bridge-domain fragments across
devices, computes paths, and synthesizes configuration for new services.

  fabricctl discover <artifact.json>...
  fabricctl consolidate <artifact.json>...
  fabricctl topology show
  fabricctl build-p2p <service> <vlan-id> <src-device> <src-iface> <dst-device> <dst-iface>
  fabricctl normalize <raw-name>...`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isHelpOrVersion(cmd) {
			return nil
		}

		var err error
		if app.configPath != "" {
			app.cfg, err = fabriccfg.Load(app.configPath)
		} else if _, statErr := os.Stat("fabricreason.yaml"); statErr == nil {
			app.cfg, err = fabriccfg.Load("fabricreason.yaml")
		} else {
			app.cfg = fabriccfg.Default()
		}
		if err != nil {
			return err
		}

		if app.verbose {
			fabriclog.SetLevel("debug")
		} else if lvl := app.cfg.LogLevel; lvl != "" {
			fabriclog.SetLevel(lvl)
		}
		if app.cfg.LogJSON {
			fabriclog.SetJSONFormat()
		}

		app.store, err = newStore(app.cfg)
		if err != nil {
			return err
		}

		app.norm = normalize.New()
		snap, found, err := app.store.Load(cmd.Context())
		if err != nil {
			return err
		}
		if found {
			app.norm.LoadMap(snap.NormalizationMap)
		}

		return nil
	},
}

func newStore(cfg *fabriccfg.Config) (persist.Store, error) {
	switch cfg.Persistence.Backend {
	case fabriccfg.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Persistence.RedisAddr,
			DB:   cfg.Persistence.RedisDB,
		})
		return persist.NewRedisStore(client, cfg.Persistence.KeyPrefix), nil
	default:
		return persist.NewFileStore(cfg.Persistence.FilePath), nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&app.configPath, "config", "C", "", "Config file (default fabricreason.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&app.jsonOutput, "json", false, "JSON output")

	for _, cmd := range []*cobra.Command{buildP2PCmd, buildP2MPCmd} {
		cmd.Flags().BoolVarP(&app.executeMode, "execute", "x", false, "Mark the synthesized artifact as final (default previews only)")
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "discovery", Title: "Discovery & Consolidation:"},
		&cobra.Group{ID: "synthesis", Title: "Configuration Synthesis:"},
		&cobra.Group{ID: "meta", Title: "Meta:"},
	)

	for _, cmd := range []*cobra.Command{discoverCmd, consolidateCmd, topologyCmd, normalizeCmd} {
		cmd.GroupID = "discovery"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{buildP2PCmd, buildP2MPCmd} {
		cmd.GroupID = "synthesis"
		rootCmd.AddCommand(cmd)
	}
	versionCmd.GroupID = "meta"
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Println("fabricctl dev build")
		} else {
			fmt.Printf("fabricctl %s (%s)\n", version.Version, version.GitCommit)
		}
	},
}

func isHelpOrVersion(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version":
			return true
		}
	}
	return false
}

func green(s string) string  { return cli.Green(s) }
func yellow(s string) string { return cli.Yellow(s) }
func red(s string) string    { return cli.Red(s) }
