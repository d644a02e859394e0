package synth

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ThomasCrouzet/k8sify/internal/model"
	"github.com/ThomasCrouzet/k8sify/internal/util"
)

const (
	defaultProbePort = 8080

	nodePortMin = 30000
	nodePortMax = 32767
)

// Production resource defaults for services that declare no limits.
var (
	defaultRequests = resourceList{CPU: "100m", Memory: "128Mi"}
	defaultLimits   = resourceList{CPU: "500m", Memory: "512Mi"}
)

// basicDrafts lists the manifests every service gets in both modes:
// Deployment, Service (when ports are declared), ConfigMap (when environment
// is declared) and one claim per named volume.
func (c *Converter) basicDrafts(u unit) []draft {
	svc := u.svc
	drafts := []draft{{
		kind:   model.KindDeployment,
		suffix: "deployment",
		meta:   map[string]string{"role": string(svc.Role.OrUnknown())},
		build:  c.deployment,
	}}

	if len(svc.Ports) > 0 {
		drafts = append(drafts, draft{
			kind:   model.KindService,
			suffix: "service",
			meta:   map[string]string{"type": serviceType(svc.Role)},
			build:  c.service,
		})
	}

	if len(svc.Environment) > 0 {
		drafts = append(drafts, draft{
			kind:   model.KindConfigMap,
			suffix: "config",
			build:  c.configMap,
		})
	}

	seen := make(map[string]bool)
	for _, vm := range svc.Volumes {
		if vm.Type != model.MountVolume {
			continue
		}
		suffix, _ := claimSuffix(vm.Source)
		if seen[suffix] {
			continue
		}
		seen[suffix] = true
		drafts = append(drafts, draft{
			kind:   model.KindPersistentVolumeClaim,
			suffix: suffix,
			meta:   map[string]string{"size": claimSize(svc.Role), "source": vm.Source},
			build: func(u unit) (any, error) {
				return c.claim(u, vm)
			},
		})
	}

	return drafts
}

func (c *Converter) meta(name string, u unit) objectMeta {
	return objectMeta{Name: name, Namespace: c.namespace, Labels: u.labels()}
}

func (c *Converter) deployment(u unit) (any, error) {
	svc := u.svc

	ctr := container{
		Name:  u.label,
		Image: svc.Image,
	}
	for _, p := range uniquePorts(svc.Ports) {
		ctr.Ports = append(ctr.Ports, containerPort{ContainerPort: p.ContainerPort, Protocol: p.Protocol})
	}
	if len(svc.Environment) > 0 {
		ctr.EnvFrom = append(ctr.EnvFrom, envFromSource{ConfigMapRef: &localObjectRef{Name: u.name("config")}})
	}
	ctr.LivenessProbe, ctr.ReadinessProbe = probes(svc)

	if u.mode == ModeProduction {
		res, err := productionResources(svc.Limits)
		if err != nil {
			return nil, err
		}
		ctr.Resources = res
	}

	volumes, mounts, err := podVolumes(u)
	if err != nil {
		return nil, err
	}
	ctr.VolumeMounts = mounts

	strategyType := "RollingUpdate"
	if svc.Scaling.Stateful {
		strategyType = "Recreate"
	}

	return deployment{
		typeMeta: typeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		Metadata: c.meta(u.label, u),
		Spec: deploymentSpec{
			Replicas: replicas(u),
			Strategy: strategy{Type: strategyType},
			Selector: labelSelector{MatchLabels: u.labels()},
			Template: podTemplateSpec{
				Metadata: templateMeta{Labels: u.labels()},
				Spec: podSpec{
					Containers: []container{ctr},
					Volumes:    volumes,
				},
			},
		},
	}, nil
}

// replicas is 1 in basic mode. In production mode horizontally scalable
// web apps run 3 replicas and workers 2.
func replicas(u unit) int {
	if u.mode != ModeProduction || !u.svc.Scaling.HorizontalScaling {
		return 1
	}
	switch u.svc.Role {
	case model.RoleWebApp:
		return 3
	case model.RoleWorker:
		return 2
	}
	return 1
}

func productionResources(limits model.ResourceLimits) (*resourceRequirements, error) {
	requests, limit := defaultRequests, defaultLimits
	if limits.Memory != "" {
		q, err := memoryQuantity(limits.Memory)
		if err != nil {
			return nil, err
		}
		requests.Memory, limit.Memory = q, q
	}
	if limits.CPU != "" {
		q, err := cpuQuantity(limits.CPU)
		if err != nil {
			return nil, err
		}
		requests.CPU, limit.CPU = q, q
	}
	return &resourceRequirements{Requests: &requests, Limits: &limit}, nil
}

// probes translates a compose healthcheck. A test command becomes an exec
// probe; a healthcheck without one probes /health and /ready over HTTP.
func probes(svc *model.Service) (*probe, *probe) {
	hc := svc.HealthCheck
	if hc == nil {
		return nil, nil
	}

	liveness := &probe{InitialDelaySeconds: 30, PeriodSeconds: 10}
	readiness := &probe{InitialDelaySeconds: 5, PeriodSeconds: 5}

	if len(hc.Test) > 0 {
		if hc.Test[0] == "NONE" {
			return nil, nil
		}
		cmd := probeCommand(hc.Test)
		liveness.Exec = &execAction{Command: cmd}
		readiness.Exec = &execAction{Command: cmd}
	} else {
		port := defaultProbePort
		if len(svc.Ports) > 0 {
			port = svc.Ports[0].ContainerPort
		}
		liveness.HTTPGet = &httpGetAction{Path: "/health", Port: port}
		readiness.HTTPGet = &httpGetAction{Path: "/ready", Port: port}
	}

	if s, ok := seconds(hc.Interval); ok {
		liveness.PeriodSeconds, readiness.PeriodSeconds = s, s
	}
	if s, ok := seconds(hc.Timeout); ok {
		liveness.TimeoutSeconds, readiness.TimeoutSeconds = s, s
	}
	if s, ok := seconds(hc.StartPeriod); ok {
		liveness.InitialDelaySeconds = s
	}
	if hc.Retries != nil && *hc.Retries > 0 {
		liveness.FailureThreshold, readiness.FailureThreshold = *hc.Retries, *hc.Retries
	}
	return liveness, readiness
}

func probeCommand(test []string) []string {
	switch test[0] {
	case "CMD":
		return append([]string(nil), test[1:]...)
	case "CMD-SHELL":
		return []string{"/bin/sh", "-c", strings.Join(test[1:], " ")}
	}
	return []string{"/bin/sh", "-c", strings.Join(test, " ")}
}

func seconds(d string) (int, bool) {
	if d == "" {
		return 0, false
	}
	parsed, err := time.ParseDuration(d)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return int(math.Ceil(parsed.Seconds())), true
}

// podVolumes maps every mount to a pod volume. Named volumes use the claim
// rendered for them; bind mounts become hostPath and tmpfs memory-backed
// emptyDir volumes.
func podVolumes(u unit) ([]volume, []volumeMount, error) {
	var (
		volumes []volume
		mounts  []volumeMount
		byName  = make(map[string]string) // volume name -> source key
	)

	for _, vm := range u.svc.Volumes {
		var (
			v   volume
			key string
			err error
		)
		switch vm.Type {
		case model.MountVolume:
			var suffix string
			if suffix, err = claimSuffix(vm.Source); err == nil {
				v.Name, err = util.DNSLabel(vm.Source)
				v.PersistentVolumeClaim = &claimSource{ClaimName: u.name(suffix)}
			}
			key = "volume:" + vm.Source
		case model.MountTmpfs:
			v.Name, err = util.DNSLabel("tmpfs-" + vm.Target)
			v.EmptyDir = &emptyDirSource{Medium: "Memory"}
			key = "tmpfs:" + vm.Target
		default:
			v.Name, err = util.DNSLabel("host-" + vm.Source)
			v.HostPath = &hostPathSource{Path: vm.Source}
			key = "host:" + vm.Source
		}
		if err != nil {
			return nil, nil, fmt.Errorf("volume %s: %w", vm.Target, err)
		}

		if prev, ok := byName[v.Name]; ok && prev != key {
			v.Name = fmt.Sprintf("%s-%d", v.Name, len(volumes))
		}
		if _, ok := byName[v.Name]; !ok {
			byName[v.Name] = key
			volumes = append(volumes, v)
		}
		mounts = append(mounts, volumeMount{Name: v.Name, MountPath: vm.Target, ReadOnly: vm.ReadOnly})
	}
	return volumes, mounts, nil
}

func claimSuffix(source string) (string, error) {
	label, err := util.DNSLabel(source)
	if err != nil {
		return source + "-pvc", err
	}
	return label + "-pvc", nil
}

func claimSize(role model.Role) string {
	switch role {
	case model.RoleDatabase:
		return "10Gi"
	case model.RoleStorage:
		return "50Gi"
	}
	return "1Gi"
}

func (c *Converter) claim(u unit, vm model.VolumeMount) (any, error) {
	suffix, err := claimSuffix(vm.Source)
	if err != nil {
		return nil, err
	}
	accessMode := "ReadWriteMany"
	if u.svc.Scaling.Stateful {
		accessMode = "ReadWriteOnce"
	}
	return persistentVolumeClaim{
		typeMeta: typeMeta{APIVersion: "v1", Kind: "PersistentVolumeClaim"},
		Metadata: c.meta(u.name(suffix), u),
		Spec: claimSpec{
			AccessModes:      []string{accessMode},
			StorageClassName: c.storageClass,
			Resources: resourceRequirements{
				Requests: &resourceList{Storage: claimSize(u.svc.Role)},
			},
		},
	}, nil
}

func serviceType(role model.Role) string {
	if role == model.RoleWebApp || role == model.RoleLoadBalancer {
		return "LoadBalancer"
	}
	return "ClusterIP"
}

// uniquePorts drops repeated container port/protocol pairs, e.g. a port that
// is both published and exposed.
func uniquePorts(ports []model.PortMapping) []model.PortMapping {
	seen := make(map[string]bool)
	var out []model.PortMapping
	for _, p := range ports {
		key := fmt.Sprintf("%d/%s", p.ContainerPort, p.Protocol)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

func (c *Converter) service(u unit) (any, error) {
	svc := u.svc
	kind := serviceType(svc.Role)

	affinity := "None"
	if svc.Scaling.SessionAffinity {
		affinity = "ClientIP"
	}

	var ports []servicePort
	for _, p := range uniquePorts(svc.Ports) {
		sp := servicePort{
			Name:       fmt.Sprintf("%s-%d", strings.ToLower(p.Protocol), p.ContainerPort),
			Port:       p.ContainerPort,
			TargetPort: p.ContainerPort,
			Protocol:   p.Protocol,
		}
		if kind == "LoadBalancer" && p.HostPort != nil && *p.HostPort >= nodePortMin && *p.HostPort <= nodePortMax {
			sp.NodePort = *p.HostPort
		}
		ports = append(ports, sp)
	}

	return service{
		typeMeta: typeMeta{APIVersion: "v1", Kind: "Service"},
		Metadata: c.meta(u.name("service"), u),
		Spec: serviceSpec{
			Type:            kind,
			SessionAffinity: affinity,
			Selector:        u.labels(),
			Ports:           ports,
		},
	}, nil
}

func (c *Converter) configMap(u unit) (any, error) {
	data := make(map[string]string, len(u.svc.Environment))
	for k, v := range u.svc.Environment {
		data[k] = v
	}
	return configMap{
		typeMeta: typeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		Metadata: c.meta(u.name("config"), u),
		Data:     data,
	}, nil
}
