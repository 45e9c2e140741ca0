package fabricmodel

import "testing"

func TestParseVlanRangeSpecContiguous(t *testing.T) {
	e, err := ParseVlanRangeSpec("100-105")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vc := e.ToVlanConfig()
	if vc.Kind != VlanRange || vc.RangeStart != 100 || vc.RangeEnd != 105 {
		t.Fatalf("got %+v", vc)
	}
}

func TestParseVlanRangeSpecDiscontiguousIsList(t *testing.T) {
	e, err := ParseVlanRangeSpec("100,102,3000-3002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vc := e.ToVlanConfig()
	if vc.Kind != VlanList {
		t.Fatalf("expected list, got %v", vc.Kind)
	}
	want := []int{100, 102, 3000, 3001, 3002}
	if len(vc.List) != len(want) {
		t.Fatalf("got %v", vc.List)
	}
	for i, v := range want {
		if vc.List[i] != v {
			t.Fatalf("got %v want %v", vc.List, want)
		}
	}
}

func TestParseVlanRangeSpecRejectsOutOfRange(t *testing.T) {
	if _, err := ParseVlanRangeSpec("1-5000"); err == nil {
		t.Fatal("expected error for out-of-range vlan id")
	}
}
