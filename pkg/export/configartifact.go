package export

import "github.com/dnaas-fabric/reasoner/pkg/fabricmodel"

// ConfigMetadataDTO is the metadata block of the outbound configuration
// artifact.
type ConfigMetadataDTO struct {
	ServiceName   string   `json:"service_name"`
	VlanID        int      `json:"vlan_id"`
	TopologyType  string   `json:"topology_type"`
	SourceDevice  string   `json:"source_device"`
	DestDevices   []string `json:"dest_devices"`
	SourceDevType string   `json:"source_device_type"`
	DestDevTypes  []string `json:"dest_device_types"`
	PathCanonical []string `json:"path_canonical,omitempty"`
}

// ConfigArtifactDTO is the §6 "Outbound: configuration artifact" record.
type ConfigArtifactDTO struct {
	Metadata         ConfigMetadataDTO   `json:"metadata"`
	PerDeviceCommands map[string][]string `json:"per_device_commands"`
	Issues           []string            `json:"issues,omitempty"`
}

// ConfigArtifact converts an internal ConfigArtifact into its outbound DTO.
func ConfigArtifact(a *fabricmodel.ConfigArtifact) ConfigArtifactDTO {
	destTypes := make([]string, 0, len(a.Metadata.DestDevTypes))
	for _, r := range a.Metadata.DestDevTypes {
		destTypes = append(destTypes, r.String())
	}

	return ConfigArtifactDTO{
		Metadata: ConfigMetadataDTO{
			ServiceName:   a.Metadata.ServiceName,
			VlanID:        a.Metadata.VlanID,
			TopologyType:  a.Metadata.TopologyType.String(),
			SourceDevice:  a.Metadata.SourceDevice,
			DestDevices:   append([]string(nil), a.Metadata.DestDevices...),
			SourceDevType: a.Metadata.SourceDevType.String(),
			DestDevTypes:  destTypes,
			PathCanonical: append([]string(nil), a.Metadata.PathCanonical...),
		},
		PerDeviceCommands: a.PerDeviceCommands,
		Issues:            a.Issues,
	}
}
