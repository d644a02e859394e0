package synth

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sort"

	"github.com/ThomasCrouzet/k8sify/internal/model"
	"github.com/ThomasCrouzet/k8sify/internal/util"
	"golang.org/x/sync/errgroup"
)

// Defaults applied when no option overrides them.
const (
	DefaultIngressHost  = "example.com"
	DefaultStorageClass = "standard"
	DefaultNamespace    = "default"
)

// Mode selects which manifests are synthesized.
type Mode int

const (
	ModeBasic Mode = iota
	ModeProduction
)

func (m Mode) String() string {
	if m == ModeProduction {
		return "production"
	}
	return "basic"
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger reports render failures at warn level and progress at debug.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.log = l
		}
	}
}

// WithNamespace sets metadata.namespace on every object.
func WithNamespace(ns string) Option {
	return func(c *Converter) { c.namespace = ns }
}

// WithIngressHost sets the host of generated ingress rules.
func WithIngressHost(host string) Option {
	return func(c *Converter) {
		if host != "" {
			c.ingressHost = host
		}
	}
}

// WithStorageClass sets the storage class of generated claims.
func WithStorageClass(class string) Option {
	return func(c *Converter) {
		if class != "" {
			c.storageClass = class
		}
	}
}

// WithWorkers bounds how many services are rendered concurrently.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		if n > 0 {
			c.workers = n
		}
	}
}

// Converter turns a classified application into Kubernetes manifests.
// Services are rendered independently; a Converter is safe for concurrent use.
type Converter struct {
	log          *slog.Logger
	namespace    string
	ingressHost  string
	storageClass string
	workers      int
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		ingressHost:  DefaultIngressHost,
		storageClass: DefaultStorageClass,
		workers:      runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the outcome of one conversion. Partial success is normal: the
// manifests that rendered are kept alongside the failures.
type Result struct {
	Mode      Mode
	Manifests model.ManifestSet
	Failures  []*RenderError
	Attempted int
}

// Succeeded returns how many manifests rendered.
func (r *Result) Succeeded() int {
	return r.Manifests.Len()
}

// Err joins every render failure, or returns nil.
func (r *Result) Err() error {
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// ConvertBasic renders the per-service manifests.
func (c *Converter) ConvertBasic(app *model.Application) *Result {
	return c.Convert(app, ModeBasic, nil)
}

// ConvertProduction renders the per-service manifests with production
// replicas and resources, plus the manifests contributed by patterns.
func (c *Converter) ConvertProduction(app *model.Application, patterns []model.DetectedPattern) *Result {
	return c.Convert(app, ModeProduction, patterns)
}

// serviceOutput collects everything rendered for one service.
type serviceOutput struct {
	name      string
	manifests []model.Manifest
	failures  []*RenderError
	attempted int
}

// Convert renders every service of app. Patterns are only consulted in
// production mode. Output is ordered by service name, then by the fixed
// per-service manifest order.
func (c *Converter) Convert(app *model.Application, mode Mode, patterns []model.DetectedPattern) *Result {
	slots := make([]serviceOutput, len(app.Services))
	owners := labelOwners(app.Services)

	var g errgroup.Group
	g.SetLimit(c.workers)
	for i, svc := range app.Services {
		g.Go(func() error {
			slots[i] = c.renderService(svc, mode, patterns, owners)
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(slots, func(i, j int) bool { return slots[i].name < slots[j].name })

	res := &Result{Mode: mode}
	for _, s := range slots {
		res.Manifests.Add(s.manifests...)
		res.Failures = append(res.Failures, s.failures...)
		res.Attempted += s.attempted
	}
	c.log.Debug("conversion finished",
		"mode", mode, "attempted", res.Attempted, "succeeded", res.Succeeded(), "failed", len(res.Failures))
	return res
}

// labelOwners maps each DNS label to the service that keeps it. When
// several names reduce to one label, the lowest name wins.
func labelOwners(services []*model.Service) map[string]string {
	owners := make(map[string]string, len(services))
	for _, svc := range services {
		label, err := util.DNSLabel(svc.Name)
		if err != nil {
			continue
		}
		if owner, ok := owners[label]; !ok || svc.Name < owner {
			owners[label] = svc.Name
		}
	}
	return owners
}

func (c *Converter) renderService(svc *model.Service, mode Mode, patterns []model.DetectedPattern, owners map[string]string) serviceOutput {
	out := serviceOutput{name: svc.Name}
	u := newUnit(svc, mode)
	if owner := owners[u.label]; u.labelErr == nil && owner != svc.Name {
		u.labelErr = fmt.Errorf("%w: %q and %q both become %q", ErrNameCollision, owner, svc.Name, u.label)
		u.base = svc.Name
	}

	drafts := c.basicDrafts(u)
	if mode == ModeProduction {
		for _, p := range patterns {
			if p.Kind().Architectural() || !p.Includes(svc.Name) {
				continue
			}
			drafts = append(drafts, c.layer(u, p.Production)...)
		}
	}

	for _, d := range drafts {
		out.attempted++
		m, err := d.render(u)
		if err != nil {
			rerr := &RenderError{Kind: d.kind, Name: u.base + "-" + d.suffix, Service: svc.Name, Err: err}
			c.log.Warn("manifest failed", "kind", d.kind, "name", rerr.Name, "error", err)
			out.failures = append(out.failures, rerr)
			continue
		}
		out.manifests = append(out.manifests, m)
	}
	return out
}
