package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type normalizeResultDTO struct {
	Raw          string   `json:"raw"`
	Normalized   string   `json:"normalized"`
	CanonicalKey string   `json:"canonical_key"`
	Variants     []string `json:"variants"`
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <raw-name>...",
	Short: "Canonicalize one or more raw device names",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := make([]normalizeResultDTO, 0, len(args))
		for _, raw := range args {
			key := app.norm.CanonicalKey(raw)
			results = append(results, normalizeResultDTO{
				Raw:          raw,
				Normalized:   app.norm.Normalize(raw),
				CanonicalKey: key,
				Variants:     app.norm.VariantsOf(key),
			})
		}
		return printJSONOrTable(results, func() {
			t := clitable("RAW", "NORMALIZED", "CANONICAL KEY", "VARIANTS")
			for _, r := range results {
				t.Row(r.Raw, r.Normalized, r.CanonicalKey, strings.Join(r.Variants, ","))
			}
			t.Flush()
			fmt.Println()
		})
	},
}
