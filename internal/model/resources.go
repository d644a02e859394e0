package model

// VolumeEntry is a top-level named volume.
type VolumeEntry struct {
	Name       string            `json:"name" yaml:"name"`
	Driver     string            `json:"driver" yaml:"driver"`
	DriverOpts map[string]string `json:"driver_opts,omitempty" yaml:"driver_opts,omitempty"`
	External   bool              `json:"external" yaml:"external"`
}

// NetworkEntry is a top-level network.
type NetworkEntry struct {
	Name       string            `json:"name" yaml:"name"`
	Driver     string            `json:"driver" yaml:"driver"`
	DriverOpts map[string]string `json:"driver_opts,omitempty" yaml:"driver_opts,omitempty"`
	External   bool              `json:"external" yaml:"external"`
	IPAM       *IPAMConfig       `json:"ipam,omitempty" yaml:"ipam,omitempty"`
}

// IPAMConfig is the address management section of a network.
type IPAMConfig struct {
	Driver  string       `json:"driver" yaml:"driver"`
	Subnets []IPAMSubnet `json:"config,omitempty" yaml:"config,omitempty"`
}

// IPAMSubnet is one configured subnet.
type IPAMSubnet struct {
	Subnet  string `json:"subnet" yaml:"subnet"`
	Gateway string `json:"gateway,omitempty" yaml:"gateway,omitempty"`
}

// SecretEntry is a top-level secret. UsageCount is informational only.
type SecretEntry struct {
	Name       string `json:"name" yaml:"name"`
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	External   bool   `json:"external" yaml:"external"`
	UsageCount int    `json:"usage_count" yaml:"usage_count"`
}

// ConfigEntry is a top-level config. UsageCount is informational only.
type ConfigEntry struct {
	Name       string `json:"name" yaml:"name"`
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	External   bool   `json:"external" yaml:"external"`
	UsageCount int    `json:"usage_count" yaml:"usage_count"`
}
