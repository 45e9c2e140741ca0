package export

import "github.com/dnaas-fabric/reasoner/pkg/fabricmodel"

// VlanFactsDTO is the outbound rendering of a VlanConfig, only the fields
// relevant to Kind populated.
type VlanFactsDTO struct {
	Kind       string `json:"kind"`
	VlanID     int    `json:"vlan_id,omitempty"`
	Outer      int    `json:"outer,omitempty"`
	Inner      int    `json:"inner,omitempty"`
	RangeStart int    `json:"range_start,omitempty"`
	RangeEnd   int    `json:"range_end,omitempty"`
	List       []int  `json:"list,omitempty"`
}

func vlanFactsDTO(v fabricmodel.VlanConfig) VlanFactsDTO {
	return VlanFactsDTO{
		Kind:       v.Kind.String(),
		VlanID:     v.VlanID,
		Outer:      v.Outer,
		Inner:      v.Inner,
		RangeStart: v.RangeStart,
		RangeEnd:   v.RangeEnd,
		List:       v.List,
	}
}

// BDInterfaceDTO is one interface entry in the consolidated BD report.
type BDInterfaceDTO struct {
	Device    string       `json:"device"`
	Name      string       `json:"name"`
	Role      string       `json:"role,omitempty"`
	VlanFacts VlanFactsDTO `json:"vlan_facts"`
}

// SegmentDTO is one path hop in the consolidated BD report.
type SegmentDTO struct {
	SrcDevice    string `json:"src_device"`
	SrcInterface string `json:"src_interface"`
	DstDevice    string `json:"dst_device"`
	DstInterface string `json:"dst_interface"`
	Type         string `json:"type"`
}

// PathDTO is an outbound Path rendering.
type PathDTO struct {
	Segments []SegmentDTO `json:"segments"`
}

// ProvenanceDTO mirrors ConsolidationProvenance.
type ProvenanceDTO struct {
	OriginalNames     []string `json:"original_names"`
	ConsolidatedCount int      `json:"consolidated_count"`
}

// ConsolidatedBridgeDomainDTO is the §6 "Outbound: consolidated
// bridge-domain report" per-BD record.
type ConsolidatedBridgeDomainDTO struct {
	ConsolidatedName        string           `json:"consolidated_name"`
	GlobalIdentifier        *int             `json:"global_identifier,omitempty"`
	Scope                   string           `json:"scope"`
	DnaasType               string           `json:"dnaas_type"`
	Confidence              float64          `json:"confidence"`
	Devices                 []string         `json:"devices"`
	Interfaces              []BDInterfaceDTO `json:"interfaces"`
	Paths                   []PathDTO        `json:"paths"`
	ConsolidationProvenance ProvenanceDTO    `json:"consolidation_provenance"`
}

// BridgeDomain converts one ConsolidatedBridgeDomain into its outbound DTO.
func BridgeDomain(cbd *fabricmodel.ConsolidatedBridgeDomain) ConsolidatedBridgeDomainDTO {
	out := ConsolidatedBridgeDomainDTO{
		ConsolidatedName: cbd.ConsolidatedName,
		GlobalIdentifier: cbd.GlobalIdentifier,
		Scope:            cbd.Scope.String(),
		DnaasType:        cbd.DnaasType.String(),
		Confidence:       cbd.Confidence,
		Devices:          append([]string(nil), cbd.Devices...),
		ConsolidationProvenance: ProvenanceDTO{
			OriginalNames:     append([]string(nil), cbd.ConsolidationProvenance.OriginalNames...),
			ConsolidatedCount: cbd.ConsolidationProvenance.ConsolidatedCount,
		},
	}

	for _, iw := range cbd.Interfaces {
		out.Interfaces = append(out.Interfaces, BDInterfaceDTO{
			Device:    iw.Device,
			Name:      iw.Name,
			Role:      iw.Role.String(),
			VlanFacts: vlanFactsDTO(iw.VlanFacts),
		})
	}

	for _, p := range cbd.Paths {
		var pd PathDTO
		for _, s := range p.Segments {
			pd.Segments = append(pd.Segments, SegmentDTO{
				SrcDevice:    s.SrcDevice,
				SrcInterface: s.SrcInterface,
				DstDevice:    s.DstDevice,
				DstInterface: s.DstInterface,
				Type:         s.Type.String(),
			})
		}
		out.Paths = append(out.Paths, pd)
	}

	return out
}

// BridgeDomains converts each ConsolidatedBridgeDomain into its outbound
// DTO, returning a new slice in the same order.
func BridgeDomains(cbds []*fabricmodel.ConsolidatedBridgeDomain) []ConsolidatedBridgeDomainDTO {
	out := make([]ConsolidatedBridgeDomainDTO, 0, len(cbds))
	for _, cbd := range cbds {
		out = append(out, BridgeDomain(cbd))
	}
	return out
}
