package fabricmodel

// SegmentType classifies one hop of a Path.
type SegmentType int

const (
	SegLeafToSpine SegmentType = iota
	SegSpineToLeaf
	SegSpineToSuperspine
	SegSuperspineToSpine
	SegLeafToSuperspine // composite, only for P2P-to-superspine configs
)

func (t SegmentType) String() string {
	switch t {
	case SegLeafToSpine:
		return "LEAF_TO_SPINE"
	case SegSpineToLeaf:
		return "SPINE_TO_LEAF"
	case SegSpineToSuperspine:
		return "SPINE_TO_SUPERSPINE"
	case SegSuperspineToSpine:
		return "SUPERSPINE_TO_SPINE"
	default:
		return "LEAF_TO_SUPERSPINE"
	}
}

// Segment is one hop of a Path: a specific interface pair between two
// devices, with the role the hop plays in the fabric.
type Segment struct {
	SrcDevice    string
	SrcInterface string
	DstDevice    string
	DstInterface string
	Type         SegmentType
}

// Path is an ordered, non-empty sequence of Segments connecting a source
// device to a destination device without repeating any device.
type Path struct {
	Segments []Segment
}

// Devices returns the ordered list of devices visited by the path,
// starting with the source of the first segment.
func (p Path) Devices() []string {
	if len(p.Segments) == 0 {
		return nil
	}
	out := []string{p.Segments[0].SrcDevice}
	for _, s := range p.Segments {
		out = append(out, s.DstDevice)
	}
	return out
}

// Tiers reports how many device-hops the path spans: 2 for a 2-tier
// leaf-spine-leaf path, 4 for a 3-tier leaf-spine-superspine-spine-leaf path.
func (p Path) Tiers() int {
	return len(p.Segments)
}
