package model

import (
	"fmt"
	"sort"
	"strings"
)

// Service is one declared service of the application.
type Service struct {
	Name          string            `json:"name" yaml:"name"`
	Image         string            `json:"image" yaml:"image"`
	Ports         []PortMapping     `json:"ports,omitempty" yaml:"ports,omitempty"`
	Environment   map[string]string `json:"environment,omitempty" yaml:"environment,omitempty"`
	Volumes       []VolumeMount     `json:"volumes,omitempty" yaml:"volumes,omitempty"`
	DependsOn     []string          `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Networks      []string          `json:"networks,omitempty" yaml:"networks,omitempty"`
	Secrets       []string          `json:"secrets,omitempty" yaml:"secrets,omitempty"`
	Configs       []string          `json:"configs,omitempty" yaml:"configs,omitempty"`
	RestartPolicy string            `json:"restart_policy" yaml:"restart_policy"`
	Limits        ResourceLimits    `json:"resource_limits" yaml:"resource_limits"`
	HealthCheck   *HealthProbe      `json:"health_check,omitempty" yaml:"health_check,omitempty"`
	Role          Role              `json:"role" yaml:"role"`
	Scaling       ScalingProfile    `json:"scaling" yaml:"scaling"`
}

// PortMapping represents a port binding. ContainerPort is always set.
type PortMapping struct {
	HostPort      *int   `json:"host_port,omitempty" yaml:"host_port,omitempty"`
	ContainerPort int    `json:"container_port" yaml:"container_port"`
	Protocol      string `json:"protocol" yaml:"protocol"` // TCP, UDP or SCTP
	Exposed       bool   `json:"exposed" yaml:"exposed"`
}

// String returns a human-readable port mapping.
func (p PortMapping) String() string {
	proto := ""
	if p.Protocol != "" && p.Protocol != "TCP" {
		proto = "/" + strings.ToLower(p.Protocol)
	}
	if p.HostPort == nil {
		return fmt.Sprintf("*→%d%s", p.ContainerPort, proto)
	}
	if *p.HostPort == p.ContainerPort {
		return fmt.Sprintf("%d%s", p.ContainerPort, proto)
	}
	return fmt.Sprintf("%d→%d%s", *p.HostPort, p.ContainerPort, proto)
}

// MountType is derived from the shape of a mount source.
type MountType string

const (
	MountVolume    MountType = "Volume"
	MountBind      MountType = "Bind"
	MountTmpfs     MountType = "Tmpfs"
	MountNamedPipe MountType = "NamedPipe"
)

// VolumeMount represents a volume binding.
type VolumeMount struct {
	Source   string    `json:"source" yaml:"source"`
	Target   string    `json:"target" yaml:"target"`
	Type     MountType `json:"mount_type" yaml:"mount_type"`
	ReadOnly bool      `json:"read_only" yaml:"read_only"`
}

// MountTypeOf classifies a mount source by its path shape.
func MountTypeOf(source string) MountType {
	switch {
	case strings.HasPrefix(source, `\\.\pipe\`), strings.HasPrefix(source, "//./pipe/"):
		return MountNamedPipe
	case strings.HasPrefix(source, "/"),
		strings.HasPrefix(source, "./"),
		strings.HasPrefix(source, "../"),
		strings.HasPrefix(source, "~"),
		source == ".", source == "..":
		return MountBind
	default:
		return MountVolume
	}
}

// ResourceLimits holds the limits declared for a service, verbatim.
type ResourceLimits struct {
	Memory    string `json:"memory,omitempty" yaml:"memory,omitempty"`
	CPU       string `json:"cpu,omitempty" yaml:"cpu,omitempty"`
	CPUShares *int64 `json:"cpu_shares,omitempty" yaml:"cpu_shares,omitempty"`
	PidsLimit *int64 `json:"pids_limit,omitempty" yaml:"pids_limit,omitempty"`
}

// HealthProbe is a service health check.
type HealthProbe struct {
	Test        []string `json:"test,omitempty" yaml:"test,omitempty"`
	Interval    string   `json:"interval,omitempty" yaml:"interval,omitempty"`
	Timeout     string   `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Retries     *int     `json:"retries,omitempty" yaml:"retries,omitempty"`
	StartPeriod string   `json:"start_period,omitempty" yaml:"start_period,omitempty"`
}

// HasEnvKey reports whether any environment key contains one of the fragments.
func (s *Service) HasEnvKey(fragments ...string) bool {
	for key := range s.Environment {
		for _, f := range fragments {
			if strings.Contains(key, f) {
				return true
			}
		}
	}
	return false
}

// HasContainerPort reports whether any port targets one of the given container ports.
func (s *Service) HasContainerPort(ports ...int) bool {
	for _, p := range s.Ports {
		for _, want := range ports {
			if p.ContainerPort == want {
				return true
			}
		}
	}
	return false
}

// HasMount reports whether any mount is of the given type.
func (s *Service) HasMount(t MountType) bool {
	for _, v := range s.Volumes {
		if v.Type == t {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the service.
func (s *Service) Clone() *Service {
	c := *s
	c.Ports = make([]PortMapping, len(s.Ports))
	for i, p := range s.Ports {
		c.Ports[i] = p
		if p.HostPort != nil {
			hp := *p.HostPort
			c.Ports[i].HostPort = &hp
		}
	}
	if s.Environment != nil {
		c.Environment = make(map[string]string, len(s.Environment))
		for k, v := range s.Environment {
			c.Environment[k] = v
		}
	}
	c.Volumes = append([]VolumeMount(nil), s.Volumes...)
	c.DependsOn = append([]string(nil), s.DependsOn...)
	c.Networks = append([]string(nil), s.Networks...)
	c.Secrets = append([]string(nil), s.Secrets...)
	c.Configs = append([]string(nil), s.Configs...)
	if s.Limits.CPUShares != nil {
		v := *s.Limits.CPUShares
		c.Limits.CPUShares = &v
	}
	if s.Limits.PidsLimit != nil {
		v := *s.Limits.PidsLimit
		c.Limits.PidsLimit = &v
	}
	if s.HealthCheck != nil {
		hc := *s.HealthCheck
		hc.Test = append([]string(nil), s.HealthCheck.Test...)
		if s.HealthCheck.Retries != nil {
			r := *s.HealthCheck.Retries
			hc.Retries = &r
		}
		c.HealthCheck = &hc
	}
	return &c
}

// SortedEnvKeys returns the environment keys in lexical order.
func (s *Service) SortedEnvKeys() []string {
	keys := make([]string, 0, len(s.Environment))
	for k := range s.Environment {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
