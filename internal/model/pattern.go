package model

import (
	"encoding/json"
	"math"
)

// PatternKind names a recognized deployment pattern.
type PatternKind string

const (
	PatternWebApp        PatternKind = "WebApp"
	PatternDatabase      PatternKind = "Database"
	PatternCache         PatternKind = "Cache"
	PatternMessageQueue  PatternKind = "MessageQueue"
	PatternLoadBalancer  PatternKind = "LoadBalancer"
	PatternThreeTier     PatternKind = "ThreeTierArchitecture"
	PatternMicroservices PatternKind = "MicroservicesStack"
	PatternMonolith      PatternKind = "MonolithWithDatabase"
)

// Architectural reports whether the kind describes the whole application.
func (k PatternKind) Architectural() bool {
	switch k {
	case PatternThreeTier, PatternMicroservices, PatternMonolith:
		return true
	}
	return false
}

// ProductionPattern is the payload of a DetectedPattern. The set of
// implementations is closed; each one determines the pattern kind.
type ProductionPattern interface {
	Kind() PatternKind
	productionPattern()
}

// ResourceSpec is a cpu/memory pair in Kubernetes quantity notation.
type ResourceSpec struct {
	CPU    string `json:"cpu" yaml:"cpu"`
	Memory string `json:"memory" yaml:"memory"`
}

type WebAppPattern struct {
	EnableAutoscaling   bool         `json:"enable_autoscaling" yaml:"enable_autoscaling"`
	EnableIngress       bool         `json:"enable_ingress" yaml:"enable_ingress"`
	EnableMonitoring    bool         `json:"enable_monitoring" yaml:"enable_monitoring"`
	EnableSSL           bool         `json:"enable_ssl" yaml:"enable_ssl"`
	MinReplicas         int          `json:"min_replicas" yaml:"min_replicas"`
	MaxReplicas         int          `json:"max_replicas" yaml:"max_replicas"`
	TargetCPUPercentage int          `json:"target_cpu_percentage" yaml:"target_cpu_percentage"`
	HealthCheckEnabled  bool         `json:"health_check_enabled" yaml:"health_check_enabled"`
	ReadinessProbe      bool         `json:"readiness_probe_enabled" yaml:"readiness_probe_enabled"`
	Requests            ResourceSpec `json:"resource_requests" yaml:"resource_requests"`
	Limits              ResourceSpec `json:"resource_limits" yaml:"resource_limits"`
}

type DatabasePattern struct {
	EnablePersistence   bool         `json:"enable_persistence" yaml:"enable_persistence"`
	EnableBackup        bool         `json:"enable_backup" yaml:"enable_backup"`
	EnableReplication   bool         `json:"enable_replication" yaml:"enable_replication"`
	StorageClass        string       `json:"storage_class" yaml:"storage_class"`
	StorageSize         string       `json:"storage_size" yaml:"storage_size"`
	EnableNetworkPolicy bool         `json:"enable_network_policy" yaml:"enable_network_policy"`
	EnableSecrets       bool         `json:"enable_secrets" yaml:"enable_secrets"`
	EnableMonitoring    bool         `json:"enable_monitoring" yaml:"enable_monitoring"`
	BackupSchedule      string       `json:"backup_schedule" yaml:"backup_schedule"`
	Requests            ResourceSpec `json:"resource_requests" yaml:"resource_requests"`
	Limits              ResourceSpec `json:"resource_limits" yaml:"resource_limits"`
}

type CachePattern struct {
	EnablePersistence bool         `json:"enable_persistence" yaml:"enable_persistence"`
	EnableClustering  bool         `json:"enable_clustering" yaml:"enable_clustering"`
	MemoryAllocation  string       `json:"memory_allocation" yaml:"memory_allocation"`
	EvictionPolicy    string       `json:"eviction_policy" yaml:"eviction_policy"`
	EnableMonitoring  bool         `json:"enable_monitoring" yaml:"enable_monitoring"`
	Requests          ResourceSpec `json:"resource_requests" yaml:"resource_requests"`
	Limits            ResourceSpec `json:"resource_limits" yaml:"resource_limits"`
}

type MessageQueuePattern struct {
	EnablePersistence     bool         `json:"enable_persistence" yaml:"enable_persistence"`
	EnableClustering      bool         `json:"enable_clustering" yaml:"enable_clustering"`
	EnableDeadLetterQueue bool         `json:"enable_dead_letter_queue" yaml:"enable_dead_letter_queue"`
	QueueDurability       bool         `json:"queue_durability" yaml:"queue_durability"`
	MessageTTL            string       `json:"message_ttl,omitempty" yaml:"message_ttl,omitempty"`
	Requests              ResourceSpec `json:"resource_requests" yaml:"resource_requests"`
	Limits                ResourceSpec `json:"resource_limits" yaml:"resource_limits"`
}

type LoadBalancerPattern struct {
	Algorithm          string `json:"algorithm" yaml:"algorithm"`
	HealthCheckEnabled bool   `json:"health_check_enabled" yaml:"health_check_enabled"`
	SSLTermination     bool   `json:"ssl_termination" yaml:"ssl_termination"`
	RateLimiting       bool   `json:"rate_limiting" yaml:"rate_limiting"`
	EnableLogging      bool   `json:"enable_logging" yaml:"enable_logging"`
}

// ThreeTierPattern, MicroservicesPattern and MonolithPattern carry the
// application-wide scaling presets of the architectural patterns.
type ThreeTierPattern struct {
	Settings WebAppPattern `json:"settings" yaml:"settings"`
}

type MicroservicesPattern struct {
	Settings WebAppPattern `json:"settings" yaml:"settings"`
}

type MonolithPattern struct {
	Settings WebAppPattern `json:"settings" yaml:"settings"`
}

func (WebAppPattern) Kind() PatternKind        { return PatternWebApp }
func (DatabasePattern) Kind() PatternKind      { return PatternDatabase }
func (CachePattern) Kind() PatternKind         { return PatternCache }
func (MessageQueuePattern) Kind() PatternKind  { return PatternMessageQueue }
func (LoadBalancerPattern) Kind() PatternKind  { return PatternLoadBalancer }
func (ThreeTierPattern) Kind() PatternKind     { return PatternThreeTier }
func (MicroservicesPattern) Kind() PatternKind { return PatternMicroservices }
func (MonolithPattern) Kind() PatternKind      { return PatternMonolith }

func (WebAppPattern) productionPattern()        {}
func (DatabasePattern) productionPattern()      {}
func (CachePattern) productionPattern()         {}
func (MessageQueuePattern) productionPattern()  {}
func (LoadBalancerPattern) productionPattern()  {}
func (ThreeTierPattern) productionPattern()     {}
func (MicroservicesPattern) productionPattern() {}
func (MonolithPattern) productionPattern()      {}

// DetectedPattern associates services with a recognized pattern. Its kind is
// the kind of its payload, so the two cannot disagree.
type DetectedPattern struct {
	Services        []string
	Confidence      float64
	Production      ProductionPattern
	Recommendations []string
}

// Kind returns the pattern kind carried by the payload.
func (p DetectedPattern) Kind() PatternKind {
	if p.Production == nil {
		return ""
	}
	return p.Production.Kind()
}

// Includes reports whether the named service is a member of the pattern.
func (p DetectedPattern) Includes(service string) bool {
	for _, s := range p.Services {
		if s == service {
			return true
		}
	}
	return false
}

func newDetected(payload ProductionPattern, services []string, confidence float64, recs []string) DetectedPattern {
	return DetectedPattern{
		Services:        append([]string(nil), services...),
		Confidence:      ClampConfidence(confidence),
		Production:      payload,
		Recommendations: recs,
	}
}

func NewWebAppDetection(service string, confidence float64, p WebAppPattern, recs []string) DetectedPattern {
	return newDetected(p, []string{service}, confidence, recs)
}

func NewDatabaseDetection(service string, confidence float64, p DatabasePattern, recs []string) DetectedPattern {
	return newDetected(p, []string{service}, confidence, recs)
}

func NewCacheDetection(service string, confidence float64, p CachePattern, recs []string) DetectedPattern {
	return newDetected(p, []string{service}, confidence, recs)
}

func NewMessageQueueDetection(service string, confidence float64, p MessageQueuePattern, recs []string) DetectedPattern {
	return newDetected(p, []string{service}, confidence, recs)
}

func NewLoadBalancerDetection(service string, confidence float64, p LoadBalancerPattern, recs []string) DetectedPattern {
	return newDetected(p, []string{service}, confidence, recs)
}

func NewThreeTierDetection(services []string, confidence float64, p ThreeTierPattern, recs []string) DetectedPattern {
	return newDetected(p, services, confidence, recs)
}

func NewMicroservicesDetection(services []string, confidence float64, p MicroservicesPattern, recs []string) DetectedPattern {
	return newDetected(p, services, confidence, recs)
}

func NewMonolithDetection(services []string, confidence float64, p MonolithPattern, recs []string) DetectedPattern {
	return newDetected(p, services, confidence, recs)
}

// ClampConfidence bounds a confidence to [0,1].
func ClampConfidence(c float64) float64 {
	if math.IsNaN(c) {
		return 0
	}
	return math.Max(0, math.Min(1, c))
}

type detectedPatternView struct {
	Kind            PatternKind       `json:"pattern_type" yaml:"pattern_type"`
	Services        []string          `json:"services" yaml:"services"`
	Confidence      float64           `json:"confidence" yaml:"confidence"`
	Production      ProductionPattern `json:"production_pattern" yaml:"production_pattern"`
	Recommendations []string          `json:"recommendations" yaml:"recommendations"`
}

func (p DetectedPattern) view() detectedPatternView {
	return detectedPatternView{
		Kind:            p.Kind(),
		Services:        p.Services,
		Confidence:      p.Confidence,
		Production:      p.Production,
		Recommendations: p.Recommendations,
	}
}

// MarshalJSON includes the derived pattern kind.
func (p DetectedPattern) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.view())
}

// MarshalYAML includes the derived pattern kind.
func (p DetectedPattern) MarshalYAML() (interface{}, error) {
	return p.view(), nil
}
