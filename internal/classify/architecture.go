package classify

import (
	"github.com/ThomasCrouzet/k8sify/internal/model"
)

// Fixed confidences of the architectural patterns.
const (
	ThreeTierConfidence     = 0.9
	MicroservicesConfidence = 0.8
	MonolithConfidence      = 0.85
)

// architectures evaluates each whole-application pattern independently.
func architectures(app *model.Application) []model.DetectedPattern {
	var out []model.DetectedPattern
	names := app.ServiceNames()
	web := app.CountRole(model.RoleWebApp)
	db := app.CountRole(model.RoleDatabase)

	if web >= 1 && db >= 1 && len(app.Services) >= 3 {
		out = append(out, model.NewThreeTierDetection(names, ThreeTierConfidence,
			model.ThreeTierPattern{Settings: architectureSettings(2, 10, 70,
				model.ResourceSpec{CPU: "100m", Memory: "128Mi"},
				model.ResourceSpec{CPU: "500m", Memory: "512Mi"})},
			[]string{
				"Detected three-tier architecture (presentation, business, data)",
				"Consider implementing proper network segmentation",
				"Add load balancing for the presentation tier",
				"Implement database clustering for high availability",
			}))
	}

	if len(app.Services) >= 5 && app.DistinctRoles() >= 3 && app.HasDependencies() {
		out = append(out, model.NewMicroservicesDetection(names, MicroservicesConfidence,
			model.MicroservicesPattern{Settings: architectureSettings(2, 5, 80,
				model.ResourceSpec{CPU: "50m", Memory: "64Mi"},
				model.ResourceSpec{CPU: "200m", Memory: "256Mi"})},
			[]string{
				"Detected microservices architecture",
				"Implement service discovery (e.g., Consul, Eureka)",
				"Add distributed tracing (e.g., Jaeger, Zipkin)",
				"Consider implementing circuit breakers",
				"Add centralized logging and monitoring",
			}))
	}

	if web == 1 && db >= 1 {
		out = append(out, model.NewMonolithDetection(names, MonolithConfidence,
			model.MonolithPattern{Settings: architectureSettings(2, 8, 60,
				model.ResourceSpec{CPU: "200m", Memory: "256Mi"},
				model.ResourceSpec{CPU: "1", Memory: "1Gi"})},
			[]string{
				"Detected monolithic architecture with database",
				"Consider implementing horizontal scaling for the application",
				"Add database backup and recovery procedures",
				"Implement proper resource limits and monitoring",
			}))
	}

	return out
}

func architectureSettings(minReplicas, maxReplicas, cpu int, requests, limits model.ResourceSpec) model.WebAppPattern {
	return model.WebAppPattern{
		EnableAutoscaling:   true,
		EnableIngress:       true,
		EnableMonitoring:    true,
		EnableSSL:           true,
		MinReplicas:         minReplicas,
		MaxReplicas:         maxReplicas,
		TargetCPUPercentage: cpu,
		HealthCheckEnabled:  true,
		ReadinessProbe:      true,
		Requests:            requests,
		Limits:              limits,
	}
}
