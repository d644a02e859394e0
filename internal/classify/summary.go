package classify

import (
	"fmt"

	"github.com/ThomasCrouzet/k8sify/internal/model"
)

// Complexity weights.
const (
	perService    = 10
	perVolume     = 5
	perNetwork    = 3
	perDependency = 2
	perPort       = 1
	perMount      = 1
	perProbe      = 5
	perDataRole   = 10

	largeApplication = 10
)

// Summary is the application-level view reported by `k8sify analyze`.
type Summary struct {
	Services        int                `json:"services" yaml:"services"`
	Volumes         int                `json:"volumes" yaml:"volumes"`
	Networks        int                `json:"networks" yaml:"networks"`
	Roles           map[model.Role]int `json:"roles" yaml:"roles"`
	ComplexityScore int                `json:"complexity_score" yaml:"complexity_score"`
	Recommendations []string           `json:"recommendations" yaml:"recommendations"`
}

// Summarize scores the complexity of a classified application and lists
// model-level recommendations.
func Summarize(app *model.Application) Summary {
	s := Summary{
		Services: len(app.Services),
		Volumes:  len(app.Volumes),
		Networks: len(app.Networks),
		Roles:    make(map[model.Role]int),
	}

	s.ComplexityScore = s.Services*perService + s.Volumes*perVolume + s.Networks*perNetwork
	for _, svc := range app.Services {
		s.Roles[svc.Role.OrUnknown()]++

		s.ComplexityScore += len(svc.DependsOn)*perDependency +
			len(svc.Ports)*perPort +
			len(svc.Volumes)*perMount
		if svc.HealthCheck != nil {
			s.ComplexityScore += perProbe
		}
		if svc.Role.HoldsData() {
			s.ComplexityScore += perDataRole
		}

		if svc.HealthCheck == nil && (svc.Role == model.RoleWebApp || svc.Role == model.RoleDatabase) {
			s.Recommendations = append(s.Recommendations, fmt.Sprintf("Add health check for service '%s'", svc.Name))
		}
		if svc.Limits.Memory == "" || svc.Limits.CPU == "" {
			s.Recommendations = append(s.Recommendations, fmt.Sprintf("Define resource limits for service '%s'", svc.Name))
		}
		if svc.Scaling.Stateful && svc.Scaling.HorizontalScaling {
			s.Recommendations = append(s.Recommendations,
				fmt.Sprintf("Service '%s' appears stateful but configured for horizontal scaling", svc.Name))
		}
		if svc.Role == model.RoleDatabase && !svc.HasMount(model.MountVolume) {
			s.Recommendations = append(s.Recommendations, fmt.Sprintf("Database service '%s' should use persistent volumes", svc.Name))
		}
	}

	if s.Services > largeApplication {
		s.Recommendations = append(s.Recommendations, "Consider breaking down the application into smaller microservices")
	}

	return s
}
