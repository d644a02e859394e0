package model

import (
	"fmt"
	"sort"
)

// DefaultVersion is used when the document declares no version.
const DefaultVersion = "3.8"

// Application is the top-level aggregate extracted from one compose document.
type Application struct {
	Version  string         `json:"version" yaml:"version"`
	Services []*Service     `json:"services" yaml:"services"`
	Volumes  []VolumeEntry  `json:"volumes,omitempty" yaml:"volumes,omitempty"`
	Networks []NetworkEntry `json:"networks,omitempty" yaml:"networks,omitempty"`
	Secrets  []SecretEntry  `json:"secrets,omitempty" yaml:"secrets,omitempty"`
	Configs  []ConfigEntry  `json:"configs,omitempty" yaml:"configs,omitempty"`
}

// NewApplication creates an empty Application.
func NewApplication() *Application {
	return &Application{Version: DefaultVersion}
}

// AddService appends a service. Names must be unique.
func (a *Application) AddService(svc *Service) error {
	if a.Service(svc.Name) != nil {
		return fmt.Errorf("duplicate service %q", svc.Name)
	}
	a.Services = append(a.Services, svc)
	return nil
}

// Service returns the named service, or nil.
func (a *Application) Service(name string) *Service {
	for _, s := range a.Services {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// SortServices orders services by name.
func (a *Application) SortServices() {
	sort.Slice(a.Services, func(i, j int) bool {
		return a.Services[i].Name < a.Services[j].Name
	})
}

// ServiceNames returns the service names in model order.
func (a *Application) ServiceNames() []string {
	names := make([]string, len(a.Services))
	for i, s := range a.Services {
		names[i] = s.Name
	}
	return names
}

// CountRole returns how many services carry the given role.
func (a *Application) CountRole(r Role) int {
	n := 0
	for _, s := range a.Services {
		if s.Role == r {
			n++
		}
	}
	return n
}

// DistinctRoles returns the number of different roles in use.
func (a *Application) DistinctRoles() int {
	seen := make(map[Role]struct{})
	for _, s := range a.Services {
		seen[s.Role] = struct{}{}
	}
	return len(seen)
}

// HasDependencies reports whether any service declares a dependency.
func (a *Application) HasDependencies() bool {
	for _, s := range a.Services {
		if len(s.DependsOn) > 0 {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the application.
func (a *Application) Clone() *Application {
	c := *a
	c.Services = make([]*Service, len(a.Services))
	for i, s := range a.Services {
		c.Services[i] = s.Clone()
	}
	c.Volumes = append([]VolumeEntry(nil), a.Volumes...)
	c.Networks = append([]NetworkEntry(nil), a.Networks...)
	c.Secrets = append([]SecretEntry(nil), a.Secrets...)
	c.Configs = append([]ConfigEntry(nil), a.Configs...)
	return &c
}
