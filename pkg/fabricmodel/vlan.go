package fabricmodel

import "fmt"

// VlanKind discriminates the arms of VlanConfig. Consumers switch
// exhaustively on Kind rather than probing for optional fields.
type VlanKind int

const (
	VlanNone VlanKind = iota
	VlanSingleTag
	VlanDoubleTag
	VlanRange
	VlanList
	VlanManipulation
	VlanPortMode
)

func (k VlanKind) String() string {
	switch k {
	case VlanSingleTag:
		return "SingleTag"
	case VlanDoubleTag:
		return "DoubleTag"
	case VlanRange:
		return "Range"
	case VlanList:
		return "List"
	case VlanManipulation:
		return "Manipulation"
	case VlanPortMode:
		return "PortMode"
	default:
		return "None"
	}
}

// ManipulationRule is one edge push/pop/translate operation as parsed from
// device CLI.
type ManipulationRule struct {
	Op    string // "push", "pop", "translate"
	Outer int    // operand for push/translate
	Inner int    // operand for translate (0 if not applicable)
}

// VlanConfig is a tagged-variant VLAN fact set. Exactly one Kind applies;
// only the fields relevant to that Kind are populated.
type VlanConfig struct {
	Kind VlanKind

	VlanID int // VlanSingleTag

	Outer int // VlanDoubleTag
	Inner int // VlanDoubleTag

	RangeStart int // VlanRange
	RangeEnd   int // VlanRange

	List []int // VlanList (sorted ascending, deduplicated)

	Rules []ManipulationRule // VlanManipulation
}

// SingleTag builds a VlanSingleTag config.
func SingleTag(vlan int) VlanConfig { return VlanConfig{Kind: VlanSingleTag, VlanID: vlan} }

// DoubleTag builds a VlanDoubleTag config.
func DoubleTag(outer, inner int) VlanConfig {
	return VlanConfig{Kind: VlanDoubleTag, Outer: outer, Inner: inner}
}

// Range builds a VlanRange config.
func Range(start, end int) VlanConfig {
	return VlanConfig{Kind: VlanRange, RangeStart: start, RangeEnd: end}
}

// List builds a VlanList config from a sorted, deduplicated set of values.
func List(vlans []int) VlanConfig { return VlanConfig{Kind: VlanList, List: vlans} }

// Manipulation builds a VlanManipulation config.
func Manipulation(rules []ManipulationRule) VlanConfig {
	return VlanConfig{Kind: VlanManipulation, Rules: rules}
}

// PortMode builds a VlanPortMode (untagged) config.
func PortMode() VlanConfig { return VlanConfig{Kind: VlanPortMode} }

// None reports whether no VLAN facts are present at all (distinct from
// PortMode, which is an explicit untagged fact).
func (v VlanConfig) None() bool { return v.Kind == VlanNone }

// String renders a VlanConfig for logs and debugging.
func (v VlanConfig) String() string {
	switch v.Kind {
	case VlanSingleTag:
		return fmt.Sprintf("vlan=%d", v.VlanID)
	case VlanDoubleTag:
		return fmt.Sprintf("outer=%d,inner=%d", v.Outer, v.Inner)
	case VlanRange:
		return fmt.Sprintf("range=%d-%d", v.RangeStart, v.RangeEnd)
	case VlanList:
		return fmt.Sprintf("list=%v", v.List)
	case VlanManipulation:
		return fmt.Sprintf("manipulation(%d rules)", len(v.Rules))
	case VlanPortMode:
		return "port-mode"
	default:
		return "none"
	}
}

// VlanConfigEntry is the per-interface CLI-derived VLAN fact record that
// the Bridge-Domain Detector consumes. Golden rule: this is the only
// source of VLAN truth; interface names are never parsed for VLAN IDs.
type VlanConfigEntry struct {
	Interface    string
	VlanID       *int
	OuterVlan    *int
	InnerVlan    *int
	RangeStart   *int
	RangeEnd     *int
	VlanList     []int
	Manipulation []ManipulationRule
}

// ToVlanConfig merges one entry's facts into a VlanConfig following the
// precedence: explicit outer/inner > single vlan-id > range > list >
// manipulation > none.
func (e VlanConfigEntry) ToVlanConfig() VlanConfig {
	switch {
	case e.OuterVlan != nil && e.InnerVlan != nil:
		return DoubleTag(*e.OuterVlan, *e.InnerVlan)
	case e.VlanID != nil:
		return SingleTag(*e.VlanID)
	case e.RangeStart != nil && e.RangeEnd != nil:
		return Range(*e.RangeStart, *e.RangeEnd)
	case len(e.VlanList) > 0:
		return List(e.VlanList)
	case len(e.Manipulation) > 0:
		return Manipulation(e.Manipulation)
	default:
		return VlanConfig{Kind: VlanNone}
	}
}
