// Package normalize canonicalizes device identifiers observed across many
// CLI/LLDP naming variants into a single comparable key.
package normalize

import (
	"regexp"
	"strings"
	"sync"
)

// suffixVariants maps a recognized raw suffix token to its canonical form.
// Matching the suffix vocabulary of §4.A: {NCPL,NCP,NCP0,NCP2 -> NCP1},
// {NCC,NCC0 -> NCC0}, {NCC1 -> NCC1}.
var suffixVariants = map[string]string{
	"NCPL": "NCP1",
	"NCP":  "NCP1",
	"NCP0": "NCP1",
	"NCP2": "NCP1",
	"NCC":  "NCC0",
	"NCC0": "NCC0",
	"NCC1": "NCC1",
}

// overrides is a small explicit table of known one-off renames, applied
// after suffix normalization, keyed by the normalized form.
var overrides = map[string]string{
	"DNAAS-SPINE-NCP1-B08": "DNAAS-SPINE-B08",
}

var (
	parenSuffixRe = regexp.MustCompile(`\(([A-Za-z0-9]+)\)\s*$`)
	seriesRunRe   = regexp.MustCompile(`[_\-\s]+`)
	nonAlnumRe    = regexp.MustCompile(`[^A-Z0-9]+`)
)

// Normalizer canonicalizes device names and memoizes results. Create one
// with New; the zero value has nil maps and is not usable.
type Normalizer struct {
	mu         sync.Mutex
	normalized map[string]string   // raw -> canonical
	keys       map[string]string   // raw -> canonical key
	variants   map[string][]string // canonical key -> observed raw variants (sorted)
}

// New creates a ready-to-use Normalizer.
func New() *Normalizer {
	return &Normalizer{
		normalized: make(map[string]string),
		keys:       make(map[string]string),
		variants:   make(map[string][]string),
	}
}

// Normalize canonicalizes raw into a display-form canonical name. Never
// fails: unknown names pass through uppercased and whitespace-normalized.
// Results are memoized; repeated calls with the same raw always return the
// same value (idempotent writes, safe under concurrent access).
func (n *Normalizer) Normalize(raw string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.normalizeLocked(raw)
}

func (n *Normalizer) normalizeLocked(raw string) string {
	if canon, ok := n.normalized[raw]; ok {
		return canon
	}

	canon := normalizeCore(raw)
	n.normalized[raw] = canon
	key := canonicalKeyOf(canon)
	n.keys[raw] = key

	variants := n.variants[key]
	if !containsString(variants, raw) {
		variants = insertSorted(variants, raw)
		n.variants[key] = variants
	}
	return canon
}

// CanonicalKey returns the canonical comparison key for raw: a case-folded,
// separator-stripped, suffix-normalized, non-alphanumeric-stripped string
// such that all observed variants of the same physical device compare equal.
func (n *Normalizer) CanonicalKey(raw string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if key, ok := n.keys[raw]; ok {
		return key
	}
	n.normalizeLocked(raw)
	return n.keys[raw]
}

// SameDevice reports whether a and b canonicalize to the same device.
func (n *Normalizer) SameDevice(a, b string) bool {
	return n.CanonicalKey(a) == n.CanonicalKey(b)
}

// VariantsOf returns the observed raw-name variants for the given canonical
// key, sorted ascending. Returns an empty slice if the key has not been
// observed.
func (n *Normalizer) VariantsOf(key string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	v := n.variants[key]
	out := make([]string, len(v))
	copy(out, v)
	return out
}

// Map returns a snapshot of the raw->canonical memoization table, suitable
// for persistence alongside the suffix/override tables.
func (n *Normalizer) Map() map[string]string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(map[string]string, len(n.normalized))
	for k, v := range n.normalized {
		out[k] = v
	}
	return out
}

// LoadMap seeds the normalizer's memoization table, e.g. from a persisted
// normalization_map snapshot. Existing entries are not overwritten.
func (n *Normalizer) LoadMap(raw2canon map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for raw := range raw2canon {
		if _, ok := n.normalized[raw]; ok {
			continue
		}
		n.normalizeLocked(raw)
	}
}

// normalizeCore applies the normalization rules to raw, independent of the
// memoization table.
func normalizeCore(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))

	// Strip a parenthesized suffix like "(NCPL)" and re-emit it hyphenated,
	// mapped through the suffix vocabulary, e.g. "...(NCPL)" -> "...-NCP1".
	if m := parenSuffixRe.FindStringSubmatch(s); m != nil {
		base := strings.TrimSpace(s[:len(s)-len(m[0])])
		token := m[1]
		canonSuffix, known := suffixVariants[token]
		if !known {
			canonSuffix = token
		}
		s = base + "-" + canonSuffix
	}

	// Collapse runs of '_', '-', whitespace to a single '-'.
	s = seriesRunRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	// Normalize a trailing hyphenated suffix token through the vocabulary.
	if idx := strings.LastIndex(s, "-"); idx >= 0 {
		tail := s[idx+1:]
		if canonSuffix, known := suffixVariants[tail]; known {
			s = s[:idx] + "-" + canonSuffix
		}
	}

	if override, ok := overrides[s]; ok {
		s = override
	}

	return s
}

// canonicalKeyOf strips all non-alphanumerics from an already-normalized
// name, per §4.A's additional canonicalKey rule.
func canonicalKeyOf(normalized string) string {
	return nonAlnumRe.ReplaceAllString(normalized, "")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func insertSorted(list []string, s string) []string {
	i := 0
	for i < len(list) && list[i] < s {
		i++
	}
	list = append(list, "")
	copy(list[i+1:], list[i:])
	list[i] = s
	return list
}
