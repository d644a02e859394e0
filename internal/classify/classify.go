package classify

import (
	"io"
	"log/slog"

	"github.com/ThomasCrouzet/k8sify/internal/model"
)

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger logs role assignments and detected patterns at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.log = l
		}
	}
}

// Classifier assigns roles and detects production patterns. It holds no
// mutable state and is safe for concurrent use.
type Classifier struct {
	rules Rules
	log   *slog.Logger
}

// New creates a Classifier over the given rule tables.
func New(rules Rules, opts ...Option) *Classifier {
	c := &Classifier{
		rules: rules,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Role returns the first role whose rule matches svc, or RoleUnknown.
func (c *Classifier) Role(svc *model.Service) model.Role {
	role, _ := c.match(svc)
	return role
}

func (c *Classifier) match(svc *model.Service) (model.Role, string) {
	for _, rule := range c.rules.RoleChain {
		if rule.Match != nil && rule.Match(svc) {
			return rule.Role.OrUnknown(), rule.Name
		}
	}
	return model.RoleUnknown, ""
}

// Scaling derives the scaling profile of a service with the given role.
func (c *Classifier) Scaling(role model.Role, svc *model.Service) model.ScalingProfile {
	stateful := role.HoldsData() || svc.HasMount(model.MountVolume)

	session := role == model.RoleDatabase
	for _, key := range c.rules.SessionKeys {
		if _, ok := svc.Environment[key]; ok {
			session = true
		}
	}

	return model.ScalingProfile{
		HorizontalScaling: !stateful && !role.HoldsData(),
		VerticalScaling:   role == model.RoleDatabase || role == model.RoleCache,
		Stateful:          stateful,
		SessionAffinity:   session,
	}
}

// Classify returns a copy of app in which every service carries its role and
// scaling profile. app itself is left untouched.
func (c *Classifier) Classify(app *model.Application) *model.Application {
	out := app.Clone()
	for _, svc := range out.Services {
		role, rule := c.match(svc)
		svc.Role = role
		svc.Scaling = c.Scaling(role, svc)
		c.log.Debug("role assigned", "service", svc.Name, "role", role, "rule", rule)
	}
	return out
}
