package normalize

import "testing"

func TestNormalizeFixedPoint(t *testing.T) {
	n := New()
	cases := []string{
		"leaf-a01",
		"SPINE_B08",
		"DNAAS-SPINE-NCP1-B08",
		"superspine-d04(NCPL)",
		"Superspine_D04_NCC1",
	}
	for _, raw := range cases {
		canon := n.Normalize(raw)
		if got, want := n.CanonicalKey(canon), n.CanonicalKey(raw); got != want {
			t.Errorf("canonicalKey(normalize(%q))=%q want %q", raw, got, want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := New()
	raw := "superspine-d04(NCPL)"
	once := n.Normalize(raw)
	twice := n.Normalize(once)
	if once != twice {
		t.Errorf("normalize not idempotent: %q vs %q", once, twice)
	}
}

func TestSuffixVocabulary(t *testing.T) {
	n := New()
	got := n.Normalize("superspine-d04(NCPL)")
	want := "SUPERSPINE-D04-NCP1"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestOverrideTable(t *testing.T) {
	n := New()
	got := n.Normalize("dnaas-spine-ncp1-b08")
	want := "DNAAS-SPINE-B08"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestSameDevice(t *testing.T) {
	n := New()
	if !n.SameDevice("LEAF-A01", "leaf_a01") {
		t.Error("expected same device for case/separator variants")
	}
	if n.SameDevice("LEAF-A01", "LEAF-A02") {
		t.Error("expected different devices")
	}
}

func TestVariantsOf(t *testing.T) {
	n := New()
	n.Normalize("SUPERSPINE-D04-NCC0")
	n.Normalize("SUPERSPINE-D04-NCC")
	key := n.CanonicalKey("SUPERSPINE-D04-NCC0")
	variants := n.VariantsOf(key)
	if len(variants) != 2 {
		t.Fatalf("expected 2 variants, got %v", variants)
	}
}

func TestUnknownPassthrough(t *testing.T) {
	n := New()
	got := n.Normalize("  some odd name  ")
	want := "SOME-ODD-NAME"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}
