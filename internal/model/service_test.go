package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestPortMappingString(t *testing.T) {
	tests := []struct {
		pm       PortMapping
		expected string
	}{
		{PortMapping{HostPort: intPtr(8080), ContainerPort: 8080, Protocol: "TCP"}, "8080"},
		{PortMapping{HostPort: intPtr(8080), ContainerPort: 80, Protocol: "TCP"}, "8080→80"},
		{PortMapping{HostPort: intPtr(8080), ContainerPort: 80, Protocol: "UDP"}, "8080→80/udp"},
		{PortMapping{ContainerPort: 3000, Protocol: "TCP", Exposed: true}, "*→3000"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pm.String())
		})
	}
}

func TestMountTypeOf(t *testing.T) {
	tests := []struct {
		source   string
		expected MountType
	}{
		{"db_data", MountVolume},
		{"/var/run/docker.sock", MountBind},
		{"./config", MountBind},
		{"../shared", MountBind},
		{"~/data", MountBind},
		{`\\.\pipe\docker_engine`, MountNamedPipe},
		{"//./pipe/docker_engine", MountNamedPipe},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.expected, MountTypeOf(tt.source))
		})
	}
}

func TestServicePredicates(t *testing.T) {
	svc := &Service{
		Name:        "api",
		Ports:       []PortMapping{{ContainerPort: 8080, Protocol: "TCP"}},
		Environment: map[string]string{"DB_HOST": "db", "PORT": "8080"},
		Volumes:     []VolumeMount{{Source: "./src", Target: "/app", Type: MountBind}},
	}

	assert.True(t, svc.HasEnvKey("DB_"))
	assert.False(t, svc.HasEnvKey("REDIS", "CACHE"))
	assert.True(t, svc.HasContainerPort(80, 443, 8080))
	assert.False(t, svc.HasContainerPort(5432))
	assert.True(t, svc.HasMount(MountBind))
	assert.False(t, svc.HasMount(MountVolume))
	assert.Equal(t, []string{"DB_HOST", "PORT"}, svc.SortedEnvKeys())
}

func TestServiceCloneIsDeep(t *testing.T) {
	retries := 3
	orig := &Service{
		Name:        "web",
		Ports:       []PortMapping{{HostPort: intPtr(80), ContainerPort: 80}},
		Environment: map[string]string{"A": "1"},
		DependsOn:   []string{"db"},
		HealthCheck: &HealthProbe{Test: []string{"CMD", "true"}, Retries: &retries},
	}

	c := orig.Clone()
	*c.Ports[0].HostPort = 8080
	c.Environment["A"] = "2"
	c.DependsOn[0] = "cache"
	c.HealthCheck.Test[0] = "NONE"
	*c.HealthCheck.Retries = 9

	assert.Equal(t, 80, *orig.Ports[0].HostPort)
	assert.Equal(t, "1", orig.Environment["A"])
	assert.Equal(t, "db", orig.DependsOn[0])
	assert.Equal(t, "CMD", orig.HealthCheck.Test[0])
	assert.Equal(t, 3, *orig.HealthCheck.Retries)
}

func TestApplicationAddServiceRejectsDuplicates(t *testing.T) {
	app := NewApplication()
	require.NoError(t, app.AddService(&Service{Name: "web"}))
	require.NoError(t, app.AddService(&Service{Name: "db"}))
	assert.Error(t, app.AddService(&Service{Name: "web"}))

	app.SortServices()
	assert.Equal(t, []string{"db", "web"}, app.ServiceNames())
	assert.Equal(t, DefaultVersion, app.Version)
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("Database")
	assert.True(t, ok)
	assert.Equal(t, RoleDatabase, r)

	r, ok = ParseRole("database")
	assert.False(t, ok)
	assert.Equal(t, RoleUnknown, r)

	assert.Equal(t, RoleUnknown, Role("").OrUnknown())
}
