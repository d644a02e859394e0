package classify

import (
	"strings"

	"github.com/ThomasCrouzet/k8sify/internal/model"
)

// RoleRule maps services matching a predicate to a role. Rules are evaluated
// in order and the first match wins.
type RoleRule struct {
	Name  string
	Role  model.Role
	Match func(*model.Service) bool
}

// ImageRule matches services whose image reference contains substr.
func ImageRule(substr string, role model.Role) RoleRule {
	return RoleRule{
		Name: "image~" + substr,
		Role: role,
		Match: func(s *model.Service) bool {
			return strings.Contains(s.Image, substr)
		},
	}
}

// Signal is one explainable contribution to a pattern confidence.
type Signal struct {
	Name   string
	Points int // hundredths of confidence
	Test   func(*model.Service) bool
}

// Scoring scores services of one role for the pattern of the same kind.
// A pattern is accepted when the summed points exceed Threshold.
type Scoring struct {
	Kind      model.PatternKind
	Role      model.Role
	Signals   []Signal
	Threshold int
}

// Rules holds every table the classifier consults. A Rules value is built
// once and only read afterwards.
type Rules struct {
	RoleChain   []RoleRule
	SessionKeys []string
	Scorings    []Scoring
}

var (
	webPorts          = []int{80, 443, 8080}
	loadBalancerPorts = []int{80, 443}

	webIndicators          = []string{"nginx", "apache", "httpd", "node", "python", "php", "ruby", "tomcat", "jetty"}
	databaseIndicators     = []string{"postgres", "mysql", "mariadb", "mongodb", "cassandra", "elasticsearch", "neo4j", "couchdb"}
	cacheIndicators        = []string{"redis", "memcached", "hazelcast", "varnish"}
	messageQueueIndicators = []string{"rabbitmq", "kafka", "activemq", "nats", "pulsar"}
	loadBalancerIndicators = []string{"nginx", "haproxy", "traefik", "envoy"}
)

// DefaultRules returns the built-in role table and pattern weights.
func DefaultRules() Rules {
	chain := []RoleRule{
		ImageRule("nginx", model.RoleWebApp),
		ImageRule("apache", model.RoleWebApp),
		ImageRule("httpd", model.RoleWebApp),
		ImageRule("postgres", model.RoleDatabase),
		ImageRule("mysql", model.RoleDatabase),
		ImageRule("mariadb", model.RoleDatabase),
		ImageRule("mongodb", model.RoleDatabase),
		ImageRule("redis", model.RoleCache),
		ImageRule("memcached", model.RoleCache),
		ImageRule("rabbitmq", model.RoleMessageQueue),
		ImageRule("kafka", model.RoleMessageQueue),
		ImageRule("traefik", model.RoleLoadBalancer),
		ImageRule("haproxy", model.RoleLoadBalancer),
		ImageRule("minio", model.RoleStorage),
		{
			Name:  "web-port",
			Role:  model.RoleWebApp,
			Match: func(s *model.Service) bool { return s.HasContainerPort(webPorts...) },
		},
		{
			Name:  "database-env",
			Role:  model.RoleDatabase,
			Match: func(s *model.Service) bool { return s.HasEnvKey("DATABASE", "DB_") },
		},
		{
			Name:  "cache-env",
			Role:  model.RoleCache,
			Match: func(s *model.Service) bool { return s.HasEnvKey("REDIS", "CACHE") },
		},
	}

	return Rules{
		RoleChain:   chain,
		SessionKeys: []string{"SESSION_STORE", "SESSION_SECRET"},
		Scorings: []Scoring{
			{
				Kind: model.PatternWebApp,
				Role: model.RoleWebApp,
				Signals: []Signal{
					imageSignal(40, webIndicators),
					{Name: "web-port", Points: 30, Test: func(s *model.Service) bool { return s.HasContainerPort(webPorts...) }},
					envSignal(20, "PORT", "HOST"),
					{Name: "role", Points: 10, Test: func(s *model.Service) bool { return s.Role == model.RoleWebApp }},
				},
				Threshold: 70,
			},
			{
				Kind: model.PatternDatabase,
				Role: model.RoleDatabase,
				Signals: []Signal{
					imageSignal(50, databaseIndicators),
					envSignal(30, "DATABASE", "DB_", "POSTGRES", "MYSQL"),
					{Name: "data-mount", Points: 20, Test: hasDataMount},
				},
				Threshold: 80,
			},
			{
				Kind: model.PatternCache,
				Role: model.RoleCache,
				Signals: []Signal{
					imageSignal(60, cacheIndicators),
					envSignal(40, "REDIS", "CACHE"),
				},
				Threshold: 80,
			},
			{
				Kind: model.PatternMessageQueue,
				Role: model.RoleMessageQueue,
				Signals: []Signal{
					imageSignal(60, messageQueueIndicators),
					envSignal(40, "QUEUE", "RABBITMQ", "KAFKA"),
				},
				Threshold: 80,
			},
			{
				Kind: model.PatternLoadBalancer,
				Role: model.RoleLoadBalancer,
				Signals: []Signal{
					imageSignal(50, loadBalancerIndicators),
					{Name: "lb-port", Points: 30, Test: func(s *model.Service) bool { return s.HasContainerPort(loadBalancerPorts...) }},
					envSignal(20, "UPSTREAM", "BACKEND"),
				},
				Threshold: 70,
			},
		},
	}
}

// WithImageRoles returns a copy of r whose role chain starts with extra.
func (r Rules) WithImageRoles(extra ...RoleRule) Rules {
	chain := make([]RoleRule, 0, len(extra)+len(r.RoleChain))
	chain = append(chain, extra...)
	r.RoleChain = append(chain, r.RoleChain...)
	return r
}

// scoring returns the pattern scoring that applies to a role.
func (r Rules) scoring(role model.Role) (Scoring, bool) {
	for _, s := range r.Scorings {
		if s.Role == role {
			return s, true
		}
	}
	return Scoring{}, false
}

func imageSignal(points int, indicators []string) Signal {
	return Signal{
		Name:   "image",
		Points: points,
		Test: func(s *model.Service) bool {
			for _, ind := range indicators {
				if strings.Contains(s.Image, ind) {
					return true
				}
			}
			return false
		},
	}
}

func envSignal(points int, fragments ...string) Signal {
	return Signal{
		Name:   "env",
		Points: points,
		Test:   func(s *model.Service) bool { return s.HasEnvKey(fragments...) },
	}
}

func hasDataMount(s *model.Service) bool {
	for _, v := range s.Volumes {
		if strings.Contains(v.Target, "/var/lib") || strings.Contains(v.Target, "/data") {
			return true
		}
	}
	return false
}
