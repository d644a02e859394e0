package classify

import (
	"strings"

	"github.com/ThomasCrouzet/k8sify/internal/model"
)

// Score is the explainable confidence of one service for one pattern kind.
type Score struct {
	Service   string            `json:"service" yaml:"service"`
	Kind      model.PatternKind `json:"kind" yaml:"kind"`
	Points    int               `json:"points" yaml:"points"`
	Threshold int               `json:"threshold" yaml:"threshold"`
	Matched   []string          `json:"matched" yaml:"matched"`
}

// Confidence returns the score as a value in [0,1].
func (s Score) Confidence() float64 {
	return model.ClampConfidence(float64(s.Points) / 100)
}

// Accepted reports whether the score clears its threshold.
func (s Score) Accepted() bool {
	return s.Points > s.Threshold
}

// Score rates svc against the pattern kind of its role. ok is false when the
// role has no per-service pattern.
func (c *Classifier) Score(svc *model.Service) (Score, bool) {
	scoring, ok := c.rules.scoring(svc.Role)
	if !ok {
		return Score{}, false
	}
	s := Score{Service: svc.Name, Kind: scoring.Kind, Threshold: scoring.Threshold}
	for _, sig := range scoring.Signals {
		if sig.Test(svc) {
			s.Points += sig.Points
			s.Matched = append(s.Matched, sig.Name)
		}
	}
	if s.Points > 100 {
		s.Points = 100
	}
	return s, true
}

// DetectPatterns returns the per-service patterns, grouped by kind in rule
// order, followed by the architectural patterns. app must already be
// classified.
func (c *Classifier) DetectPatterns(app *model.Application) []model.DetectedPattern {
	var patterns []model.DetectedPattern

	for _, scoring := range c.rules.Scorings {
		for _, svc := range app.Services {
			if svc.Role != scoring.Role {
				continue
			}
			score, _ := c.Score(svc)
			if !score.Accepted() {
				continue
			}
			p := detect(scoring.Kind, svc, score.Confidence())
			c.log.Debug("pattern detected", "service", svc.Name, "kind", p.Kind(), "confidence", p.Confidence)
			patterns = append(patterns, p)
		}
	}

	for _, p := range architectures(app) {
		c.log.Debug("architecture detected", "kind", p.Kind(), "confidence", p.Confidence)
		patterns = append(patterns, p)
	}

	return patterns
}

func detect(kind model.PatternKind, svc *model.Service, confidence float64) model.DetectedPattern {
	switch kind {
	case model.PatternWebApp:
		return model.NewWebAppDetection(svc.Name, confidence, webAppPattern(svc), webAppRecommendations(svc))
	case model.PatternDatabase:
		return model.NewDatabaseDetection(svc.Name, confidence, databasePattern(svc), databaseRecommendations(svc))
	case model.PatternCache:
		return model.NewCacheDetection(svc.Name, confidence, cachePattern(), cacheRecommendations(svc))
	case model.PatternMessageQueue:
		return model.NewMessageQueueDetection(svc.Name, confidence, messageQueuePattern(), messageQueueRecommendations())
	default:
		return model.NewLoadBalancerDetection(svc.Name, confidence, loadBalancerPattern(), loadBalancerRecommendations())
	}
}

func webAppPattern(svc *model.Service) model.WebAppPattern {
	horizontal := svc.Scaling.HorizontalScaling
	p := model.WebAppPattern{
		EnableAutoscaling:   horizontal,
		EnableIngress:       true,
		EnableMonitoring:    true,
		EnableSSL:           true,
		MinReplicas:         1,
		MaxReplicas:         3,
		TargetCPUPercentage: 70,
		HealthCheckEnabled:  svc.HealthCheck != nil,
		ReadinessProbe:      true,
		Requests:            model.ResourceSpec{CPU: "100m", Memory: "128Mi"},
		Limits:              model.ResourceSpec{CPU: "500m", Memory: "512Mi"},
	}
	if horizontal {
		p.MinReplicas, p.MaxReplicas = 2, 10
	}
	return p
}

func databasePattern(svc *model.Service) model.DatabasePattern {
	size := "10Gi"
	if strings.Contains(svc.Image, "postgres") {
		size = "20Gi"
	}
	return model.DatabasePattern{
		EnablePersistence:   true,
		EnableBackup:        true,
		StorageClass:        "fast-ssd",
		StorageSize:         size,
		EnableNetworkPolicy: true,
		EnableSecrets:       true,
		EnableMonitoring:    true,
		BackupSchedule:      "0 2 * * *",
		Requests:            model.ResourceSpec{CPU: "500m", Memory: "1Gi"},
		Limits:              model.ResourceSpec{CPU: "2", Memory: "4Gi"},
	}
}

func cachePattern() model.CachePattern {
	return model.CachePattern{
		MemoryAllocation: "512mb",
		EvictionPolicy:   "allkeys-lru",
		EnableMonitoring: true,
		Requests:         model.ResourceSpec{CPU: "100m", Memory: "256Mi"},
		Limits:           model.ResourceSpec{CPU: "500m", Memory: "1Gi"},
	}
}

func messageQueuePattern() model.MessageQueuePattern {
	return model.MessageQueuePattern{
		EnablePersistence:     true,
		EnableDeadLetterQueue: true,
		QueueDurability:       true,
		MessageTTL:            "24h",
		Requests:              model.ResourceSpec{CPU: "200m", Memory: "512Mi"},
		Limits:                model.ResourceSpec{CPU: "1", Memory: "2Gi"},
	}
}

func loadBalancerPattern() model.LoadBalancerPattern {
	return model.LoadBalancerPattern{
		Algorithm:          "round_robin",
		HealthCheckEnabled: true,
		SSLTermination:     true,
		RateLimiting:       true,
		EnableLogging:      true,
	}
}

func webAppRecommendations(svc *model.Service) []string {
	var recs []string
	if svc.HealthCheck == nil {
		recs = append(recs, "Add health check endpoints (/health, /ready)")
	}
	if svc.Limits.Memory == "" {
		recs = append(recs, "Define memory limits to prevent OOM kills")
	}
	if svc.Scaling.HorizontalScaling {
		recs = append(recs, "Enable Horizontal Pod Autoscaler (HPA)")
	}
	if !svc.HasContainerPort(443) {
		recs = append(recs, "Consider enabling HTTPS/TLS")
	}
	return append(recs,
		"Implement proper logging and monitoring",
		"Add ingress controller for external access",
	)
}

func databaseRecommendations(svc *model.Service) []string {
	recs := []string{
		"Enable persistent storage with appropriate storage class",
		"Implement database backup strategy",
		"Use Kubernetes secrets for database credentials",
		"Apply network policies to restrict database access",
	}
	if svc.Limits.Memory == "" {
		recs = append(recs, "Set appropriate memory limits for database workload")
	}
	switch {
	case strings.Contains(svc.Image, "postgres"):
		recs = append(recs, "Consider using PostgreSQL operator for advanced features")
	case strings.Contains(svc.Image, "mysql"):
		recs = append(recs, "Consider using MySQL operator for clustering")
	}
	return append(recs, "Enable database monitoring and alerting")
}

func cacheRecommendations(svc *model.Service) []string {
	var recs []string
	if strings.Contains(svc.Image, "redis") {
		recs = append(recs,
			"Configure Redis persistence if data durability is required",
			"Set appropriate eviction policy based on use case",
			"Consider Redis Cluster for high availability",
		)
	}
	return append(recs,
		"Set memory limits to prevent cache from consuming all memory",
		"Enable cache monitoring and metrics",
		"Consider implementing cache warming strategies",
	)
}

func messageQueueRecommendations() []string {
	return []string{
		"Enable message persistence for durability",
		"Configure dead letter queues for failed messages",
		"Set appropriate message TTL",
		"Implement proper queue monitoring",
		"Consider queue clustering for high availability",
	}
}

func loadBalancerRecommendations() []string {
	return []string{
		"Configure health checks for backend services",
		"Enable SSL termination at load balancer",
		"Implement rate limiting to prevent abuse",
		"Enable access logging for debugging",
		"Consider implementing circuit breaker pattern",
	}
}
