package extract

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/ThomasCrouzet/k8sify/internal/model"
	"github.com/ThomasCrouzet/k8sify/internal/util"
	"gopkg.in/yaml.v3"
)

// DefaultImage is recorded for services that declare no usable image.
const DefaultImage = "unknown"

// Option configures an extraction run.
type Option func(*extractor)

// WithLogger reports absorbed field defaults at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(e *extractor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithTemplateStripping makes Jinja2-templated documents parseable.
func WithTemplateStripping() Option {
	return func(e *extractor) {
		e.stripTemplates = true
	}
}

type extractor struct {
	log            *slog.Logger
	stripTemplates bool
}

func newExtractor(opts []Option) *extractor {
	e := &extractor{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses a compose document.
func Extract(data []byte, opts ...Option) (*model.Application, error) {
	e := newExtractor(opts)

	content := string(data)
	if e.stripTemplates {
		content = util.StripTemplates(content)
	}

	var doc map[string]any
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, &StructuralError{Err: fmt.Errorf("%w: %v", ErrInvalidYAML, err)}
	}
	return e.document(doc)
}

// FromDocument builds an application from an already decoded document.
func FromDocument(doc map[string]any, opts ...Option) (*model.Application, error) {
	return newExtractor(opts).document(doc)
}

func (e *extractor) document(doc map[string]any) (*model.Application, error) {
	servicesRaw, ok := doc["services"]
	if !ok {
		return nil, &StructuralError{Err: ErrNoServices}
	}
	servicesMap, ok := asMap(servicesRaw)
	if !ok {
		return nil, &StructuralError{Err: ErrServicesNotMapping}
	}

	app := model.NewApplication()
	if v, ok := scalar(doc["version"]); ok && v != "" {
		app.Version = v
	}

	for _, name := range sortedKeys(servicesMap) {
		svc, err := e.service(name, servicesMap[name])
		if err != nil {
			return nil, err
		}
		if err := app.AddService(svc); err != nil {
			return nil, &StructuralError{Err: err}
		}
	}

	app.Volumes = e.volumes(doc["volumes"])
	app.Networks = e.networks(doc["networks"])
	app.Secrets = e.secrets(doc["secrets"], app.Services)
	app.Configs = e.configs(doc["configs"], app.Services)

	return app, nil
}

func (e *extractor) fallback(service, field string, value any) {
	e.log.Debug("field default applied", "service", service, "field", field, "default", value)
}

// asMap accepts both decoded mapping shapes yaml.v3 may produce.
func asMap(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[fmt.Sprintf("%v", k)] = val
		}
		return out, true
	}
	return nil, false
}

// scalar stringifies strings, numbers and booleans.
func scalar(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case int, int64, uint64, float64, bool:
		return fmt.Sprintf("%v", v), true
	}
	return "", false
}

func integer(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		return int64(v), true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	}
	return 0, false
}

func boolean(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case map[string]any, map[any]any:
		// external: {name: ...}
		return true
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// nameSet reads either a sequence of names or the keys of a mapping.
func nameSet(raw any) []string {
	seen := make(map[string]struct{})
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			if s, ok := scalar(item); ok && s != "" {
				seen[s] = struct{}{}
			}
		}
	default:
		if m, ok := asMap(raw); ok {
			for k := range m {
				seen[k] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func stringMap(raw any) map[string]string {
	m, ok := asMap(raw)
	if !ok || len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := scalar(v); ok {
			out[k] = s
		}
	}
	return out
}
