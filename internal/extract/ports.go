package extract

import (
	"fmt"
	"strings"

	"github.com/ThomasCrouzet/k8sify/internal/model"
	"github.com/docker/go-connections/nat"
)

// DefaultExposedPort replaces expose entries that are not port numbers.
const DefaultExposedPort = 8080

func (e *extractor) ports(service string, cfg map[string]any) ([]model.PortMapping, error) {
	var ports []model.PortMapping

	if list, ok := cfg["ports"].([]any); ok {
		for i, item := range list {
			var (
				pm  model.PortMapping
				err error
			)
			if m, ok := asMap(item); ok {
				pm, err = parseLongPort(field(service, "ports", i), m)
			} else if s, ok := scalar(item); ok {
				pm, err = parsePortString(field(service, "ports", i), s)
			} else {
				e.fallback(service, "ports", "skipped entry")
				continue
			}
			if err != nil {
				return nil, err
			}
			ports = append(ports, pm)
		}
	} else if cfg["ports"] != nil {
		e.fallback(service, "ports", "none")
	}

	if list, ok := cfg["expose"].([]any); ok {
		for _, item := range list {
			s, _ := scalar(item)
			proto, raw := nat.SplitProtoPort(s)
			port, err := nat.ParsePort(raw)
			if err != nil || port == 0 {
				e.fallback(service, "expose", DefaultExposedPort)
				port = DefaultExposedPort
			}
			ports = append(ports, model.PortMapping{
				ContainerPort: port,
				Protocol:      protocol(proto),
				Exposed:       true,
			})
		}
	}

	return ports, nil
}

// parsePortString reads "[host:]container[/protocol]".
func parsePortString(fieldName, s string) (model.PortMapping, error) {
	proto, spec := nat.SplitProtoPort(s)
	if spec == "" {
		return model.PortMapping{}, fieldError(fieldName, s, ErrInvalidPort)
	}

	parts := strings.Split(spec, ":")
	pm := model.PortMapping{Protocol: protocol(proto)}

	switch len(parts) {
	case 1:
		container, err := containerPort(parts[0])
		if err != nil {
			return pm, fieldError(fieldName, s, err)
		}
		pm.ContainerPort = container
	case 2:
		container, err := containerPort(parts[1])
		if err != nil {
			return pm, fieldError(fieldName, s, err)
		}
		pm.ContainerPort = container
		if host, err := nat.ParsePort(parts[0]); err == nil && host > 0 {
			pm.HostPort = &host
		}
	default:
		return pm, fieldError(fieldName, s, fmt.Errorf("%w: expected [host:]container", ErrInvalidPort))
	}

	return pm, nil
}

func parseLongPort(fieldName string, m map[string]any) (model.PortMapping, error) {
	target, _ := scalar(m["target"])
	container, err := containerPort(target)
	if err != nil {
		return model.PortMapping{}, fieldError(fieldName, target, err)
	}

	proto, _ := m["protocol"].(string)
	pm := model.PortMapping{ContainerPort: container, Protocol: protocol(proto)}
	if published, ok := scalar(m["published"]); ok {
		if host, err := nat.ParsePort(published); err == nil && host > 0 {
			pm.HostPort = &host
		}
	}
	return pm, nil
}

func containerPort(s string) (int, error) {
	port, err := nat.ParsePort(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: container port: %v", ErrInvalidPort, err)
	}
	if port == 0 {
		return 0, fmt.Errorf("%w: container port is required", ErrInvalidPort)
	}
	return port, nil
}

func protocol(p string) string {
	switch strings.ToLower(p) {
	case "udp":
		return "UDP"
	case "sctp":
		return "SCTP"
	default:
		return "TCP"
	}
}
