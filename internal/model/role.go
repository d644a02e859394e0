package model

// Role classifies a service's runtime purpose.
type Role string

const (
	RoleWebApp       Role = "WebApp"
	RoleDatabase     Role = "Database"
	RoleCache        Role = "Cache"
	RoleMessageQueue Role = "MessageQueue"
	RoleLoadBalancer Role = "LoadBalancer"
	RoleProxy        Role = "Proxy"
	RoleWorker       Role = "Worker"
	RoleCronJob      Role = "CronJob"
	RoleStorage      Role = "Storage"
	RoleUnknown      Role = "Unknown"
)

// Roles lists every role in declaration order.
var Roles = []Role{
	RoleWebApp,
	RoleDatabase,
	RoleCache,
	RoleMessageQueue,
	RoleLoadBalancer,
	RoleProxy,
	RoleWorker,
	RoleCronJob,
	RoleStorage,
	RoleUnknown,
}

// ParseRole returns the role with the given name.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return RoleUnknown, false
}

// OrUnknown maps the zero value to RoleUnknown.
func (r Role) OrUnknown() Role {
	if r == "" {
		return RoleUnknown
	}
	return r
}

// HoldsData reports whether the role owns persistent data by nature.
func (r Role) HoldsData() bool {
	return r == RoleDatabase || r == RoleStorage
}

// ScalingProfile describes how a service should be replicated.
// Stateful and HorizontalScaling are never both true.
type ScalingProfile struct {
	HorizontalScaling bool `json:"horizontal_scaling" yaml:"horizontal_scaling"`
	VerticalScaling   bool `json:"vertical_scaling" yaml:"vertical_scaling"`
	Stateful          bool `json:"stateful" yaml:"stateful"`
	SessionAffinity   bool `json:"session_affinity" yaml:"session_affinity"`
}
