package synth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ThomasCrouzet/k8sify/internal/classify"
	"github.com/ThomasCrouzet/k8sify/internal/extract"
	"github.com/ThomasCrouzet/k8sify/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func classified(t *testing.T, doc []byte) (*model.Application, []model.DetectedPattern) {
	t.Helper()
	app, err := extract.Extract(doc)
	require.NoError(t, err)
	c := classify.New(classify.DefaultRules())
	app = c.Classify(app)
	return app, c.DetectPatterns(app)
}

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("../../testdata/compose/" + name)
	require.NoError(t, err)
	return data
}

func decode(t *testing.T, m model.Manifest) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(m.Content), &out))
	return out
}

// dig walks nested maps and lists: dig(obj, "spec", "ports", 0, "port").
func dig(t *testing.T, v any, path ...any) any {
	t.Helper()
	for _, p := range path {
		switch key := p.(type) {
		case string:
			m, ok := v.(map[string]any)
			require.True(t, ok, "expected mapping at %v", p)
			v = m[key]
		case int:
			l, ok := v.([]any)
			require.True(t, ok, "expected sequence at %v", p)
			require.Less(t, key, len(l))
			v = l[key]
		}
	}
	return v
}

func names(set model.ManifestSet) []string {
	var out []string
	for _, m := range set.Items {
		out = append(out, m.Name)
	}
	return out
}

func TestConvertBasicWebDB(t *testing.T) {
	app, _ := classified(t, fixture(t, "web-db.yml"))
	res := New().ConvertBasic(app)

	require.NoError(t, res.Err())
	assert.Equal(t, ModeBasic, res.Mode)
	assert.Equal(t, 2, res.Manifests.Count(model.KindDeployment))
	assert.Equal(t, 2, res.Manifests.Count(model.KindService))
	assert.Equal(t, 1, res.Manifests.Count(model.KindPersistentVolumeClaim))
	assert.Equal(t, 2, res.Manifests.Count(model.KindConfigMap))
	assert.Equal(t, 0, res.Manifests.Count(model.KindHorizontalPodAutoscaler))
	assert.Equal(t, res.Attempted, res.Succeeded())

	assert.Equal(t, []string{
		"db-deployment", "db-service", "db-config", "db-db-data-pvc",
		"web-deployment", "web-service", "web-config",
	}, names(res.Manifests))

	web, ok := res.Manifests.Find(model.KindDeployment, "web-deployment")
	require.True(t, ok)
	obj := decode(t, web)
	assert.Equal(t, "apps/v1", obj["apiVersion"])
	assert.Equal(t, "web", dig(t, obj, "metadata", "name"))
	assert.Equal(t, 1, dig(t, obj, "spec", "replicas"))
	assert.Equal(t, "RollingUpdate", dig(t, obj, "spec", "strategy", "type"))
	assert.Equal(t, "nginx:1.20", dig(t, obj, "spec", "template", "spec", "containers", 0, "image"))
	assert.Equal(t, "web-config", dig(t, obj, "spec", "template", "spec", "containers", 0, "envFrom", 0, "configMapRef", "name"))
	assert.Nil(t, dig(t, obj, "spec", "template", "spec", "containers", 0, "resources"))

	db := decode(t, mustFind(t, res, model.KindDeployment, "db-deployment"))
	assert.Equal(t, "Recreate", dig(t, db, "spec", "strategy", "type"))
	assert.Equal(t, "db-db-data-pvc", dig(t, db, "spec", "template", "spec", "volumes", 0, "persistentVolumeClaim", "claimName"))
	assert.Equal(t, "/var/lib/postgresql/data", dig(t, db, "spec", "template", "spec", "containers", 0, "volumeMounts", 0, "mountPath"))

	webSvc := decode(t, mustFind(t, res, model.KindService, "web-service"))
	assert.Equal(t, "LoadBalancer", dig(t, webSvc, "spec", "type"))
	assert.Equal(t, "None", dig(t, webSvc, "spec", "sessionAffinity"))
	assert.Equal(t, "tcp-80", dig(t, webSvc, "spec", "ports", 0, "name"))
	assert.Nil(t, dig(t, webSvc, "spec", "ports", 0, "nodePort"))

	dbSvc := decode(t, mustFind(t, res, model.KindService, "db-service"))
	assert.Equal(t, "ClusterIP", dig(t, dbSvc, "spec", "type"))
	assert.Equal(t, "ClientIP", dig(t, dbSvc, "spec", "sessionAffinity"))

	pvc := mustFind(t, res, model.KindPersistentVolumeClaim, "db-db-data-pvc")
	assert.Equal(t, "10Gi", pvc.Meta["size"])
	claim := decode(t, pvc)
	assert.Equal(t, "ReadWriteOnce", dig(t, claim, "spec", "accessModes", 0))
	assert.Equal(t, "standard", dig(t, claim, "spec", "storageClassName"))
	assert.Equal(t, "10Gi", dig(t, claim, "spec", "resources", "requests", "storage"))

	cm := decode(t, mustFind(t, res, model.KindConfigMap, "db-config"))
	assert.Equal(t, "password", dig(t, cm, "data", "POSTGRES_PASSWORD"))
}

func mustFind(t *testing.T, res *Result, kind model.ManifestKind, name string) model.Manifest {
	t.Helper()
	m, ok := res.Manifests.Find(kind, name)
	require.True(t, ok, "%s %s not rendered", kind, name)
	return m
}

func TestServiceOnlyForServicesWithPorts(t *testing.T) {
	doc := `
services:
  web:
    image: nginx:1.20
    ports: ["80:80"]
  db:
    image: postgres:13
    environment:
      - POSTGRES_PASSWORD=password
    volumes:
      - db_data:/var/lib/postgresql/data
  bare:
    image: busybox
`
	app, _ := classified(t, []byte(doc))
	res := New().ConvertBasic(app)

	assert.Equal(t, 3, res.Manifests.Count(model.KindDeployment))
	assert.Equal(t, 1, res.Manifests.Count(model.KindService))
	assert.Equal(t, 1, res.Manifests.Count(model.KindConfigMap))
	assert.Equal(t, 1, res.Manifests.Count(model.KindPersistentVolumeClaim))
}

func TestConvertIsDeterministic(t *testing.T) {
	app, patterns := classified(t, fixture(t, "microservices.yml"))
	c := New(WithWorkers(4))

	first := c.ConvertProduction(app, patterns)
	for i := 0; i < 5; i++ {
		again := c.ConvertProduction(app, patterns)
		require.Equal(t, names(first.Manifests), names(again.Manifests))
		for j := range first.Manifests.Items {
			assert.Equal(t, first.Manifests.Items[j].Content, again.Manifests.Items[j].Content)
		}
	}
}

func TestConvertOrdersByServiceName(t *testing.T) {
	app := model.NewApplication()
	for i := 40; i > 0; i-- {
		require.NoError(t, app.AddService(&model.Service{Name: fmt.Sprintf("svc-%02d", i), Image: "img"}))
	}

	res := New(WithWorkers(8)).ConvertBasic(app)
	require.Equal(t, 40, res.Succeeded())
	for i, m := range res.Manifests.Items {
		assert.Equal(t, fmt.Sprintf("svc-%02d-deployment", i+1), m.Name)
	}
}

func TestConvertProductionWebDB(t *testing.T) {
	app, patterns := classified(t, fixture(t, "web-db.yml"))
	res := New().ConvertProduction(app, patterns)

	require.NoError(t, res.Err())
	assert.Equal(t, ModeProduction, res.Mode)
	assert.Equal(t, []string{
		"db-deployment", "db-service", "db-config", "db-db-data-pvc", "db-secret", "db-network-policy",
		"web-deployment", "web-service", "web-config", "web-hpa", "web-ingress", "web-monitor",
	}, names(res.Manifests))

	web := decode(t, mustFind(t, res, model.KindDeployment, "web-deployment"))
	assert.Equal(t, 3, dig(t, web, "spec", "replicas"))
	resources := dig(t, web, "spec", "template", "spec", "containers", 0, "resources")
	assert.Equal(t, "128Mi", dig(t, resources, "requests", "memory"))
	assert.Equal(t, "100m", dig(t, resources, "requests", "cpu"))
	assert.Equal(t, "512Mi", dig(t, resources, "limits", "memory"))
	assert.Equal(t, "500m", dig(t, resources, "limits", "cpu"))

	db := decode(t, mustFind(t, res, model.KindDeployment, "db-deployment"))
	assert.Equal(t, 1, dig(t, db, "spec", "replicas"))

	hpa := decode(t, mustFind(t, res, model.KindHorizontalPodAutoscaler, "web-hpa"))
	assert.Equal(t, "web", dig(t, hpa, "spec", "scaleTargetRef", "name"))
	assert.Equal(t, 2, dig(t, hpa, "spec", "minReplicas"))
	assert.Equal(t, 10, dig(t, hpa, "spec", "maxReplicas"))
	assert.Equal(t, 70, dig(t, hpa, "spec", "metrics", 0, "resource", "target", "averageUtilization"))
	assert.Equal(t, 80, dig(t, hpa, "spec", "metrics", 1, "resource", "target", "averageUtilization"))

	ing := decode(t, mustFind(t, res, model.KindIngress, "web-ingress"))
	assert.Equal(t, "example.com", dig(t, ing, "spec", "rules", 0, "host"))
	assert.Equal(t, "web-tls", dig(t, ing, "spec", "tls", 0, "secretName"))
	backend := dig(t, ing, "spec", "rules", 0, "http", "paths", 0, "backend", "service")
	assert.Equal(t, "web-service", dig(t, backend, "name"))
	assert.Equal(t, 80, dig(t, backend, "port", "number"))

	mon := decode(t, mustFind(t, res, model.KindServiceMonitor, "web-monitor"))
	assert.Equal(t, "metrics", dig(t, mon, "spec", "endpoints", 0, "port"))
	assert.Equal(t, "/metrics", dig(t, mon, "spec", "endpoints", 0, "path"))

	sec := decode(t, mustFind(t, res, model.KindSecret, "db-secret"))
	assert.Equal(t, "YWRtaW4=", dig(t, sec, "data", "username"))
	assert.Equal(t, "Y2hhbmdlbWU=", dig(t, sec, "data", "password"))
	assert.Equal(t, "ZGI=", dig(t, sec, "data", "database"))

	np := decode(t, mustFind(t, res, model.KindNetworkPolicy, "db-network-policy"))
	assert.Equal(t, "default", dig(t, np, "metadata", "namespace"))
	assert.Equal(t, "db", dig(t, np, "spec", "podSelector", "matchLabels", "app"))
}

func TestConvertProductionOptions(t *testing.T) {
	app, patterns := classified(t, fixture(t, "web-db.yml"))
	res := New(
		WithNamespace("shop"),
		WithIngressHost("shop.example.org"),
		WithStorageClass("fast-ssd"),
	).ConvertProduction(app, patterns)

	ing := decode(t, mustFind(t, res, model.KindIngress, "web-ingress"))
	assert.Equal(t, "shop", dig(t, ing, "metadata", "namespace"))
	assert.Equal(t, "shop.example.org", dig(t, ing, "spec", "rules", 0, "host"))

	claim := decode(t, mustFind(t, res, model.KindPersistentVolumeClaim, "db-db-data-pvc"))
	assert.Equal(t, "fast-ssd", dig(t, claim, "spec", "storageClassName"))

	np := decode(t, mustFind(t, res, model.KindNetworkPolicy, "db-network-policy"))
	assert.Equal(t, "shop", dig(t, np, "spec", "ingress", 0, "from", 0, "namespaceSelector", "matchLabels", "kubernetes.io/metadata.name"))
}

func TestProductionPatternsOnlyInProductionMode(t *testing.T) {
	app, patterns := classified(t, fixture(t, "web-db.yml"))
	res := New().Convert(app, ModeBasic, patterns)
	assert.Equal(t, 0, res.Manifests.Count(model.KindHorizontalPodAutoscaler))
	assert.Equal(t, 0, res.Manifests.Count(model.KindSecret))
}

func TestInertPatternHooks(t *testing.T) {
	app, patterns := classified(t, fixture(t, "microservices.yml"))

	var kinds []model.PatternKind
	for _, p := range patterns {
		kinds = append(kinds, p.Kind())
	}
	require.Contains(t, kinds, model.PatternCache)
	require.Contains(t, kinds, model.PatternMessageQueue)
	require.Contains(t, kinds, model.PatternLoadBalancer)

	basic := New().ConvertBasic(app)
	prod := New().ConvertProduction(app, patterns)

	for _, svc := range []string{"cache", "queue", "gateway"} {
		count := func(res *Result) int {
			n := 0
			for _, m := range res.Manifests.Items {
				if m.Service == svc {
					n++
				}
			}
			return n
		}
		assert.Equal(t, count(basic), count(prod), svc)
	}

	// frontend (web app) and db (database) gain their production manifests.
	assert.Equal(t, 1, prod.Manifests.Count(model.KindHorizontalPodAutoscaler))
	assert.Equal(t, 1, prod.Manifests.Count(model.KindNetworkPolicy))
}

func TestArchitecturalPatternsAddNothing(t *testing.T) {
	app, patterns := classified(t, fixture(t, "web-db.yml"))
	var arch []model.DetectedPattern
	for _, p := range patterns {
		if p.Kind().Architectural() {
			arch = append(arch, p)
		}
	}
	require.NotEmpty(t, arch)

	res := New().ConvertProduction(app, arch)
	assert.Equal(t, New().ConvertBasic(app).Manifests.Len(), res.Manifests.Len())
}

func TestPartialFailure(t *testing.T) {
	app := model.NewApplication()
	require.NoError(t, app.AddService(&model.Service{
		Name:        "___",
		Image:       "nginx",
		Ports:       []model.PortMapping{{ContainerPort: 80, Protocol: "TCP"}},
		Environment: map[string]string{"A": "1"},
	}))
	require.NoError(t, app.AddService(&model.Service{Name: "api", Image: "example/api"}))

	res := New().ConvertBasic(app)

	assert.Equal(t, 4, res.Attempted)
	assert.Equal(t, 1, res.Succeeded())
	require.Len(t, res.Failures, 3)
	assert.Equal(t, model.KindDeployment, res.Failures[0].Kind)
	assert.Equal(t, "___-deployment", res.Failures[0].Name)
	assert.Equal(t, "___", res.Failures[0].Service)
	assert.Equal(t, model.KindService, res.Failures[1].Kind)
	assert.Equal(t, model.KindConfigMap, res.Failures[2].Kind)

	_, ok := res.Manifests.Find(model.KindDeployment, "api-deployment")
	assert.True(t, ok)

	var rerr *RenderError
	require.True(t, errors.As(res.Err(), &rerr))
}

func TestConvertLabelCollision(t *testing.T) {
	doc := `
services:
  api_v1:
    image: nginx
    ports: ["80:80"]
  api-v1:
    image: redis
    ports: ["6379:6379"]
`
	app, _ := classified(t, []byte(doc))
	res := New().ConvertBasic(app)

	assert.Equal(t, 4, res.Attempted)
	assert.Equal(t, []string{"api-v1-deployment", "api-v1-service"}, names(res.Manifests))
	for _, m := range res.Manifests.Items {
		assert.Equal(t, "api-v1", m.Service)
	}
	dep := decode(t, mustFind(t, res, model.KindDeployment, "api-v1-deployment"))
	assert.Equal(t, "redis", dig(t, dep, "spec", "template", "spec", "containers", 0, "image"))

	require.Len(t, res.Failures, 2)
	for _, f := range res.Failures {
		assert.Equal(t, "api_v1", f.Service)
		assert.ErrorIs(t, f, ErrNameCollision)
	}
	assert.Equal(t, "api_v1-deployment", res.Failures[0].Name)
	assert.Equal(t, model.KindService, res.Failures[1].Kind)

	dir := t.TempDir()
	paths, err := Write(dir, res.Manifests)
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(paths))
}

func TestPartialFailureSingleManifest(t *testing.T) {
	app := model.NewApplication()
	require.NoError(t, app.AddService(&model.Service{
		Name:        "worker",
		Image:       "example/worker",
		Role:        model.RoleWorker,
		Limits:      model.ResourceLimits{Memory: "lots"},
		Environment: map[string]string{"QUEUE": "jobs"},
	}))

	basic := New().ConvertBasic(app)
	assert.Empty(t, basic.Failures)

	prod := New().ConvertProduction(app, nil)
	require.Len(t, prod.Failures, 1)
	assert.Equal(t, model.KindDeployment, prod.Failures[0].Kind)
	_, ok := prod.Manifests.Find(model.KindConfigMap, "worker-config")
	assert.True(t, ok)
}

func TestProductionReplicas(t *testing.T) {
	tests := []struct {
		role       model.Role
		horizontal bool
		want       int
	}{
		{model.RoleWebApp, true, 3},
		{model.RoleWorker, true, 2},
		{model.RoleCache, true, 1},
		{model.RoleWebApp, false, 1},
		{model.RoleWorker, false, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.role, tt.horizontal), func(t *testing.T) {
			svc := &model.Service{
				Name:    "s",
				Role:    tt.role,
				Scaling: model.ScalingProfile{HorizontalScaling: tt.horizontal},
			}
			assert.Equal(t, tt.want, replicas(newUnit(svc, ModeProduction)))
			assert.Equal(t, 1, replicas(newUnit(svc, ModeBasic)))
		})
	}
}

func TestDeclaredLimitsBecomeQuantities(t *testing.T) {
	app, _ := classified(t, fixture(t, "full.yml"))
	res := New().ConvertProduction(app, nil)

	api := decode(t, mustFind(t, res, model.KindDeployment, "api-deployment"))
	ctr := dig(t, api, "spec", "template", "spec", "containers", 0)
	assert.Equal(t, "512Mi", dig(t, ctr, "resources", "limits", "memory"))
	assert.Equal(t, "500m", dig(t, ctr, "resources", "limits", "cpu"))
	assert.Equal(t, []any{"curl", "-f", "http://localhost:8080/health"}, dig(t, ctr, "livenessProbe", "exec", "command"))
	assert.Equal(t, 30, dig(t, ctr, "livenessProbe", "periodSeconds"))
	assert.Equal(t, 40, dig(t, ctr, "livenessProbe", "initialDelaySeconds"))
	assert.Equal(t, 3, dig(t, ctr, "readinessProbe", "failureThreshold"))

	vols := dig(t, api, "spec", "template", "spec", "volumes").([]any)
	require.Len(t, vols, 3)
	assert.Equal(t, "./src", dig(t, vols[0], "hostPath", "path"))
	assert.Equal(t, "api-uploads-pvc", dig(t, vols[1], "persistentVolumeClaim", "claimName"))
	assert.Equal(t, "Memory", dig(t, vols[2], "emptyDir", "medium"))
}

func TestQuantities(t *testing.T) {
	memory := []struct {
		in, want string
		wantErr  bool
	}{
		{in: "512m", want: "512Mi"},
		{in: "512M", want: "512Mi"},
		{in: "1g", want: "1Gi"},
		{in: "1.5g", want: "1536Mi"},
		{in: "64k", want: "64Ki"},
		{in: "1000", want: "1000"},
		{in: "lots", wantErr: true},
		{in: "0", wantErr: true},
	}
	for _, tt := range memory {
		got, err := memoryQuantity(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	cpu := []struct {
		in, want string
		wantErr  bool
	}{
		{in: "0.5", want: "500m"},
		{in: "2", want: "2"},
		{in: "1.25", want: "1250m"},
		{in: "0.001", want: "1m"},
		{in: "0", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "half", wantErr: true},
	}
	for _, tt := range cpu {
		got, err := cpuQuantity(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestProbes(t *testing.T) {
	tests := []struct {
		name string
		hc   *model.HealthProbe
		cmd  []string
		http bool
		none bool
	}{
		{name: "no healthcheck", none: true},
		{name: "CMD", hc: &model.HealthProbe{Test: []string{"CMD", "pg_isready"}}, cmd: []string{"pg_isready"}},
		{name: "CMD-SHELL", hc: &model.HealthProbe{Test: []string{"CMD-SHELL", "curl -f localhost || exit 1"}},
			cmd: []string{"/bin/sh", "-c", "curl -f localhost || exit 1"}},
		{name: "string form", hc: &model.HealthProbe{Test: []string{"wget -q localhost"}},
			cmd: []string{"/bin/sh", "-c", "wget -q localhost"}},
		{name: "NONE", hc: &model.HealthProbe{Test: []string{"NONE"}}, none: true},
		{name: "no test", hc: &model.HealthProbe{Interval: "15s"}, http: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &model.Service{Name: "s", HealthCheck: tt.hc, Ports: []model.PortMapping{{ContainerPort: 3000}}}
			live, ready := probes(svc)
			if tt.none {
				assert.Nil(t, live)
				assert.Nil(t, ready)
				return
			}
			require.NotNil(t, live)
			require.NotNil(t, ready)
			if tt.http {
				assert.Equal(t, &httpGetAction{Path: "/health", Port: 3000}, live.HTTPGet)
				assert.Equal(t, &httpGetAction{Path: "/ready", Port: 3000}, ready.HTTPGet)
				assert.Equal(t, 15, live.PeriodSeconds)
				return
			}
			assert.Equal(t, tt.cmd, live.Exec.Command)
			assert.Equal(t, tt.cmd, ready.Exec.Command)
			assert.Equal(t, 30, live.InitialDelaySeconds)
			assert.Equal(t, 5, ready.InitialDelaySeconds)
		})
	}
}

func TestNodePortOnlyInRange(t *testing.T) {
	low, high := 8080, 30080
	app := model.NewApplication()
	require.NoError(t, app.AddService(&model.Service{
		Name:  "web",
		Image: "nginx",
		Role:  model.RoleWebApp,
		Ports: []model.PortMapping{
			{HostPort: &low, ContainerPort: 80, Protocol: "TCP"},
			{HostPort: &high, ContainerPort: 443, Protocol: "TCP"},
			{ContainerPort: 80, Protocol: "TCP", Exposed: true},
		},
	}))

	svc := decode(t, mustFind(t, New().ConvertBasic(app), model.KindService, "web-service"))
	ports := dig(t, svc, "spec", "ports").([]any)
	require.Len(t, ports, 2)
	assert.Nil(t, dig(t, ports[0], "nodePort"))
	assert.Equal(t, 30080, dig(t, ports[1], "nodePort"))
}

func TestWrite(t *testing.T) {
	app, _ := classified(t, fixture(t, "web-db.yml"))
	res := New().ConvertBasic(app)

	dir := filepath.Join(t.TempDir(), "k8s")
	paths, err := Write(dir, res.Manifests)
	require.NoError(t, err)
	require.Len(t, paths, res.Manifests.Len())

	data, err := os.ReadFile(filepath.Join(dir, "web-deployment.yaml"))
	require.NoError(t, err)
	m, _ := res.Manifests.Find(model.KindDeployment, "web-deployment")
	assert.Equal(t, m.Content, string(data))
}

func TestWriteIOError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	set := model.ManifestSet{}
	set.Add(model.Manifest{Kind: model.KindConfigMap, Name: "x-config", Content: "a: b\n"})

	_, err := Write(file, set)
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, file, ioErr.Path)
}

func TestWriteRejectsDuplicateFiles(t *testing.T) {
	set := model.ManifestSet{}
	set.Add(
		model.Manifest{Kind: model.KindConfigMap, Name: "x-config", Content: "a: b\n"},
		model.Manifest{Kind: model.KindConfigMap, Name: "x-config", Content: "a: c\n"},
	)

	dir := t.TempDir()
	paths, err := Write(dir, set)
	require.ErrorIs(t, err, ErrDuplicateFile)
	assert.Len(t, paths, 1)

	data, err := os.ReadFile(filepath.Join(dir, "x-config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "a: b\n", string(data))
}

func TestConvertEmptyApplication(t *testing.T) {
	app, patterns := classified(t, []byte("services: {}\n"))
	require.Empty(t, patterns)

	for _, mode := range []Mode{ModeBasic, ModeProduction} {
		res := New().Convert(app, mode, patterns)
		assert.Equal(t, 0, res.Manifests.Len(), mode.String())
		assert.Equal(t, 0, res.Attempted)
		for _, kind := range model.ManifestKinds {
			assert.Empty(t, res.Manifests.ByKind(kind))
		}
	}
}
