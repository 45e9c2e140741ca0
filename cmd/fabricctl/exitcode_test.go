package main

import (
	"testing"

	"github.com/dnaas-fabric/reasoner/pkg/ferrors"
)

func TestExitCodeForMapsErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"validation", ferrors.NewValidationError("bad vlan"), exitValidation},
		{"topology", ferrors.NewTopologyError("no path"), exitValidation},
		{"io", ferrors.NewIOError("read", ferrors.ErrIO), exitIO},
		{"data gap", ferrors.NewDataGapError("LEAF01", "vlan", "missing"), exitIO},
		{"cancelled", ferrors.NewCancelledError("discover"), exitCancelled},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := exitCodeFor(c.err); got != c.want {
				t.Fatalf("exitCodeFor(%v) = %d, want %d", c.err, got, c.want)
			}
		})
	}
}
