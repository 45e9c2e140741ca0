package fabricmodel

import "github.com/dnaas-fabric/reasoner/pkg/util"

// ParseVlanRangeSpec parses a device CLI range/list specification
// ("100-105", "100,102,3000-3005") into a Range or List VlanConfigEntry
// fact set, using the same range grammar the device-facing commands
// already parse interface and slot:port ranges with.
func ParseVlanRangeSpec(spec string) (VlanConfigEntry, error) {
	vlans, err := util.ExpandVLANRange(spec)
	if err != nil {
		return VlanConfigEntry{}, err
	}
	if len(vlans) == 0 {
		return VlanConfigEntry{}, nil
	}
	if isContiguous(vlans) {
		start, end := vlans[0], vlans[len(vlans)-1]
		return VlanConfigEntry{RangeStart: &start, RangeEnd: &end}, nil
	}
	return VlanConfigEntry{VlanList: vlans}, nil
}

func isContiguous(sorted []int) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}
