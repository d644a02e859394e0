package extract

import (
	"fmt"
	"strings"

	"github.com/ThomasCrouzet/k8sify/internal/model"
)

func (e *extractor) mounts(service string, cfg map[string]any) ([]model.VolumeMount, error) {
	var mounts []model.VolumeMount

	if list, ok := cfg["volumes"].([]any); ok {
		for i, item := range list {
			var (
				vm  model.VolumeMount
				err error
			)
			if m, ok := asMap(item); ok {
				vm, err = parseLongVolume(field(service, "volumes", i), m)
			} else if s, ok := item.(string); ok {
				vm, err = parseVolumeString(field(service, "volumes", i), s)
			} else {
				e.fallback(service, "volumes", "skipped entry")
				continue
			}
			if err != nil {
				return nil, err
			}
			mounts = append(mounts, vm)
		}
	} else if cfg["volumes"] != nil {
		e.fallback(service, "volumes", "none")
	}

	var tmpfs []string
	switch v := cfg["tmpfs"].(type) {
	case string:
		tmpfs = []string{v}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				tmpfs = append(tmpfs, s)
			}
		}
	}
	for _, t := range tmpfs {
		target, _, _ := strings.Cut(t, ":")
		mounts = append(mounts, model.VolumeMount{Source: "tmpfs", Target: target, Type: model.MountTmpfs})
	}

	return mounts, nil
}

// parseVolumeString reads "source:target[:options]".
func parseVolumeString(fieldName, s string) (model.VolumeMount, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return model.VolumeMount{}, fieldError(fieldName, s, fmt.Errorf("%w: expected source:target[:options]", ErrInvalidVolume))
	}

	vm := model.VolumeMount{
		Source: parts[0],
		Target: parts[1],
		Type:   model.MountTypeOf(parts[0]),
	}
	if len(parts) > 2 {
		for _, opt := range strings.Split(parts[2], ",") {
			if opt == "ro" || opt == "readonly" {
				vm.ReadOnly = true
			}
		}
	}
	return vm, nil
}

func parseLongVolume(fieldName string, m map[string]any) (model.VolumeMount, error) {
	source, _ := m["source"].(string)
	target, _ := m["target"].(string)
	if target == "" {
		return model.VolumeMount{}, fieldError(fieldName, source, fmt.Errorf("%w: target is required", ErrInvalidVolume))
	}

	vm := model.VolumeMount{Source: source, Target: target}
	vm.ReadOnly, _ = m["read_only"].(bool)

	kind, _ := m["type"].(string)
	switch kind {
	case "tmpfs":
		vm.Type = model.MountTmpfs
		if vm.Source == "" {
			vm.Source = "tmpfs"
		}
	case "npipe":
		vm.Type = model.MountNamedPipe
	case "bind":
		vm.Type = model.MountBind
	case "volume":
		vm.Type = model.MountVolume
	default:
		vm.Type = model.MountTypeOf(source)
	}
	return vm, nil
}
