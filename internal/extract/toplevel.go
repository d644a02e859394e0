package extract

import (
	"github.com/ThomasCrouzet/k8sify/internal/model"
)

const (
	defaultVolumeDriver  = "local"
	defaultNetworkDriver = "bridge"
	defaultIPAMDriver    = "default"
)

func (e *extractor) volumes(raw any) []model.VolumeEntry {
	section, ok := asMap(raw)
	if !ok {
		return nil
	}
	var out []model.VolumeEntry
	for _, name := range sortedKeys(section) {
		entry := model.VolumeEntry{Name: name, Driver: defaultVolumeDriver}
		if cfg, ok := asMap(section[name]); ok {
			if d, ok := cfg["driver"].(string); ok && d != "" {
				entry.Driver = d
			}
			entry.DriverOpts = stringMap(cfg["driver_opts"])
			entry.External = boolean(cfg["external"])
		}
		out = append(out, entry)
	}
	return out
}

func (e *extractor) networks(raw any) []model.NetworkEntry {
	section, ok := asMap(raw)
	if !ok {
		return nil
	}
	var out []model.NetworkEntry
	for _, name := range sortedKeys(section) {
		entry := model.NetworkEntry{Name: name, Driver: defaultNetworkDriver}
		if cfg, ok := asMap(section[name]); ok {
			if d, ok := cfg["driver"].(string); ok && d != "" {
				entry.Driver = d
			}
			entry.DriverOpts = stringMap(cfg["driver_opts"])
			entry.External = boolean(cfg["external"])
			entry.IPAM = ipam(cfg["ipam"])
		}
		out = append(out, entry)
	}
	return out
}

func ipam(raw any) *model.IPAMConfig {
	cfg, ok := asMap(raw)
	if !ok {
		return nil
	}
	out := &model.IPAMConfig{Driver: defaultIPAMDriver}
	if d, ok := cfg["driver"].(string); ok && d != "" {
		out.Driver = d
	}
	list, _ := cfg["config"].([]any)
	for _, item := range list {
		m, ok := asMap(item)
		if !ok {
			continue
		}
		subnet, ok := m["subnet"].(string)
		if !ok {
			continue
		}
		gateway, _ := m["gateway"].(string)
		out.Subnets = append(out.Subnets, model.IPAMSubnet{Subnet: subnet, Gateway: gateway})
	}
	return out
}

type fileRef struct {
	name     string
	file     string
	external bool
}

func fileRefs(raw any) []fileRef {
	section, ok := asMap(raw)
	if !ok {
		return nil
	}
	var out []fileRef
	for _, name := range sortedKeys(section) {
		ref := fileRef{name: name}
		if cfg, ok := asMap(section[name]); ok {
			ref.file, _ = cfg["file"].(string)
			ref.external = boolean(cfg["external"])
		}
		out = append(out, ref)
	}
	return out
}

func usage(name string, services []*model.Service, refs func(*model.Service) []string) int {
	n := 0
	for _, svc := range services {
		for _, r := range refs(svc) {
			if r == name {
				n++
			}
		}
	}
	return n
}

func (e *extractor) secrets(raw any, services []*model.Service) []model.SecretEntry {
	var out []model.SecretEntry
	for _, ref := range fileRefs(raw) {
		out = append(out, model.SecretEntry{
			Name:       ref.name,
			File:       ref.file,
			External:   ref.external,
			UsageCount: usage(ref.name, services, func(s *model.Service) []string { return s.Secrets }),
		})
	}
	return out
}

func (e *extractor) configs(raw any, services []*model.Service) []model.ConfigEntry {
	var out []model.ConfigEntry
	for _, ref := range fileRefs(raw) {
		out = append(out, model.ConfigEntry{
			Name:       ref.name,
			File:       ref.file,
			External:   ref.external,
			UsageCount: usage(ref.name, services, func(s *model.Service) []string { return s.Configs }),
		})
	}
	return out
}
