package extract

import (
	"fmt"
	"strings"

	"github.com/ThomasCrouzet/k8sify/internal/model"
)

func (e *extractor) service(name string, raw any) (*model.Service, error) {
	svc := &model.Service{
		Name:          name,
		Image:         DefaultImage,
		RestartPolicy: "no",
		Role:          model.RoleUnknown,
	}

	cfg, ok := asMap(raw)
	if !ok {
		e.fallback(name, "service", "empty definition")
		return svc, nil
	}

	if image, ok := cfg["image"].(string); ok && image != "" {
		svc.Image = image
	} else {
		e.fallback(name, "image", DefaultImage)
	}

	ports, err := e.ports(name, cfg)
	if err != nil {
		return nil, err
	}
	svc.Ports = ports

	svc.Environment = e.environment(name, cfg["environment"])

	mounts, err := e.mounts(name, cfg)
	if err != nil {
		return nil, err
	}
	svc.Volumes = mounts

	svc.DependsOn = nameSet(cfg["depends_on"])
	svc.Networks = nameSet(cfg["networks"])
	svc.Secrets = references(cfg["secrets"])
	svc.Configs = references(cfg["configs"])

	if restart, ok := cfg["restart"].(string); ok && restart != "" {
		svc.RestartPolicy = restart
	}

	svc.Limits = e.limits(name, cfg)
	svc.HealthCheck = e.healthCheck(name, cfg["healthcheck"])

	return svc, nil
}

func (e *extractor) environment(service string, raw any) map[string]string {
	env := make(map[string]string)
	switch v := raw.(type) {
	case nil:
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok || s == "" {
				e.fallback(service, "environment", "skipped entry")
				continue
			}
			key, value, _ := strings.Cut(s, "=")
			env[key] = value
		}
	default:
		m, ok := asMap(raw)
		if !ok {
			e.fallback(service, "environment", "empty")
			break
		}
		for k, val := range m {
			if val == nil {
				env[k] = ""
				continue
			}
			if s, ok := scalar(val); ok {
				env[k] = s
			}
		}
	}
	return env
}

// references reads service-level secrets/configs in short or long syntax.
func references(raw any) []string {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		if m, ok := asMap(item); ok {
			if src, ok := m["source"].(string); ok {
				out = append(out, src)
			}
		}
	}
	return out
}

func (e *extractor) limits(service string, cfg map[string]any) model.ResourceLimits {
	var limits model.ResourceLimits

	if deploy, ok := asMap(cfg["deploy"]); ok {
		if resources, ok := asMap(deploy["resources"]); ok {
			if section, ok := asMap(resources["limits"]); ok {
				limits.Memory, _ = scalar(section["memory"])
				limits.CPU, _ = scalar(section["cpus"])
			}
		}
	}

	if v, ok := integer(cfg["cpu_shares"]); ok {
		limits.CPUShares = &v
	} else if cfg["cpu_shares"] != nil {
		e.fallback(service, "cpu_shares", "unset")
	}
	if v, ok := integer(cfg["pids_limit"]); ok {
		limits.PidsLimit = &v
	} else if cfg["pids_limit"] != nil {
		e.fallback(service, "pids_limit", "unset")
	}

	return limits
}

func (e *extractor) healthCheck(service string, raw any) *model.HealthProbe {
	if raw == nil {
		return nil
	}
	cfg, ok := asMap(raw)
	if !ok {
		e.fallback(service, "healthcheck", "none")
		return nil
	}
	if disabled, _ := cfg["disable"].(bool); disabled {
		return nil
	}

	probe := &model.HealthProbe{}
	switch test := cfg["test"].(type) {
	case string:
		probe.Test = []string{test}
	case []any:
		for _, part := range test {
			if s, ok := scalar(part); ok {
				probe.Test = append(probe.Test, s)
			}
		}
	}
	probe.Interval, _ = cfg["interval"].(string)
	probe.Timeout, _ = cfg["timeout"].(string)
	probe.StartPeriod, _ = cfg["start_period"].(string)
	if retries, ok := integer(cfg["retries"]); ok {
		r := int(retries)
		probe.Retries = &r
	}
	return probe
}

func field(service, key string, index int) string {
	return fmt.Sprintf("services.%s.%s[%d]", service, key, index)
}
