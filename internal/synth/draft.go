package synth

import (
	"bytes"
	"fmt"

	"github.com/ThomasCrouzet/k8sify/internal/model"
	"github.com/ThomasCrouzet/k8sify/internal/util"
	"gopkg.in/yaml.v3"
)

// unit is one service prepared for rendering.
type unit struct {
	svc  *model.Service
	mode Mode

	// label is the service name as a DNS label; labelErr is set when the
	// name cannot be converted, which fails every manifest of the service.
	label    string
	labelErr error

	// base prefixes manifest names: the label, or the raw service name when
	// there is no label to report failures under.
	base string
}

func newUnit(svc *model.Service, mode Mode) unit {
	u := unit{svc: svc, mode: mode, base: svc.Name}
	u.label, u.labelErr = util.DNSLabel(svc.Name)
	if u.labelErr == nil {
		u.base = u.label
	}
	return u
}

func (u unit) labels() map[string]string {
	return map[string]string{"app": u.label}
}

func (u unit) name(suffix string) string {
	return u.label + "-" + suffix
}

// draft is a manifest waiting to be rendered.
type draft struct {
	kind   model.ManifestKind
	suffix string // manifest name is <service>-<suffix>
	meta   map[string]string
	build  func(u unit) (any, error)
}

func (d draft) render(u unit) (model.Manifest, error) {
	if u.labelErr != nil {
		return model.Manifest{}, u.labelErr
	}
	obj, err := d.build(u)
	if err != nil {
		return model.Manifest{}, err
	}
	content, err := encode(obj)
	if err != nil {
		return model.Manifest{}, err
	}
	return model.Manifest{
		Kind:    d.kind,
		Name:    u.name(d.suffix),
		Service: u.svc.Name,
		Content: content,
		Meta:    d.meta,
	}, nil
}

func encode(obj any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(obj); err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return buf.String(), nil
}
