package dnaas

import (
	"testing"

	"github.com/dnaas-fabric/reasoner/pkg/fabricmodel"
)

func frag(name string, ifaces ...fabricmodel.InterfaceWithRole) *fabricmodel.BridgeDomainFragment {
	f := &fabricmodel.BridgeDomainFragment{Name: name, Interfaces: ifaces}
	for _, iw := range ifaces {
		switch iw.VlanFacts.Kind {
		case fabricmodel.VlanDoubleTag, fabricmodel.VlanSingleTag:
			f.AggregatedVlan = iw.VlanFacts
		}
	}
	return f
}

func iw(vc fabricmodel.VlanConfig) fabricmodel.InterfaceWithRole {
	return fabricmodel.InterfaceWithRole{VlanFacts: vc}
}

func TestClassifySingleTagged(t *testing.T) {
	f := frag("g_u_v100", iw(fabricmodel.SingleTag(100)), iw(fabricmodel.SingleTag(100)))
	ClassifyAll([]*fabricmodel.BridgeDomainFragment{f})
	if f.DnaasType != fabricmodel.Dnaas4ASingleTagged {
		t.Fatalf("got %v", f.DnaasType)
	}
	if f.Confidence != 1.0 {
		t.Fatalf("expected full confidence, got %f", f.Confidence)
	}
}

func TestClassifyPortMode(t *testing.T) {
	f := frag("l_u_desc", iw(fabricmodel.VlanConfig{Kind: fabricmodel.VlanNone}))
	ClassifyAll([]*fabricmodel.BridgeDomainFragment{f})
	if f.DnaasType != fabricmodel.Dnaas5PortMode {
		t.Fatalf("got %v", f.DnaasType)
	}
}

func TestClassifyQinQSingleBD(t *testing.T) {
	f := frag("g_u_v253", iw(fabricmodel.DoubleTag(253, 10)), iw(fabricmodel.DoubleTag(253, 20)))
	ClassifyAll([]*fabricmodel.BridgeDomainFragment{f})
	if f.DnaasType != fabricmodel.Dnaas2AQinQSingleBD {
		t.Fatalf("got %v", f.DnaasType)
	}
}

func TestClassifyQinQSingleBDPerFragmentStaysIndependent(t *testing.T) {
	// Two per-device fragments that will later consolidate into one BD
	// (same username, same outer) each classify as their own single-inner
	// Type-1 in isolation; whether the merged result becomes Type-2A or
	// Type-2B depends on consolidation grouping, not on this package.
	f1 := frag("g_visaev_v253_spirent", iw(fabricmodel.DoubleTag(253, 10)))
	f2 := frag("g_visaev_v253_to_spirent", iw(fabricmodel.DoubleTag(253, 20)))
	ClassifyAll([]*fabricmodel.BridgeDomainFragment{f1, f2})
	if f1.DnaasType != fabricmodel.Dnaas1DoubleTagged || f2.DnaasType != fabricmodel.Dnaas1DoubleTagged {
		t.Fatalf("got %v %v", f1.DnaasType, f2.DnaasType)
	}
}

func TestClassifyHybrid(t *testing.T) {
	f := frag("mixed_bd", iw(fabricmodel.DoubleTag(253, 10)), iw(fabricmodel.SingleTag(253)))
	ClassifyAll([]*fabricmodel.BridgeDomainFragment{f})
	if f.DnaasType != fabricmodel.Dnaas3Hybrid {
		t.Fatalf("got %v", f.DnaasType)
	}
}

func TestClassifyConflict(t *testing.T) {
	f := frag("conflicted", iw(fabricmodel.DoubleTag(100, 1)), iw(fabricmodel.DoubleTag(200, 1)))
	ClassifyAll([]*fabricmodel.BridgeDomainFragment{f})
	if f.DnaasType != fabricmodel.DnaasUnknown {
		t.Fatalf("got %v", f.DnaasType)
	}
	if f.Confidence > 0.5 {
		t.Fatalf("expected reduced confidence, got %f", f.Confidence)
	}
}
