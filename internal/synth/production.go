package synth

import (
	"encoding/base64"

	"github.com/ThomasCrouzet/k8sify/internal/model"
)

// Autoscaler bounds of production web apps.
const (
	hpaMinReplicas  = 2
	hpaMaxReplicas  = 10
	hpaTargetCPU    = 70
	hpaTargetMemory = 80
)

// Placeholder credentials written into generated secrets. They must be
// replaced before the manifests are applied.
const (
	placeholderUser     = "admin"
	placeholderPassword = "changeme"
)

// layer returns the manifests a per-service pattern adds in production mode.
func (c *Converter) layer(u unit, p model.ProductionPattern) []draft {
	switch p.(type) {
	case model.WebAppPattern:
		return []draft{
			{kind: model.KindHorizontalPodAutoscaler, suffix: "hpa", build: c.autoscaler},
			{kind: model.KindIngress, suffix: "ingress", meta: map[string]string{"host": c.ingressHost}, build: c.ingress},
			{kind: model.KindServiceMonitor, suffix: "monitor", build: c.serviceMonitor},
		}
	case model.DatabasePattern:
		return []draft{
			{kind: model.KindSecret, suffix: "secret", build: c.credentials},
			{kind: model.KindNetworkPolicy, suffix: "network-policy", build: c.networkPolicy},
		}
	case model.CachePattern:
		return c.cacheLayer(u)
	case model.MessageQueuePattern:
		return c.messageQueueLayer(u)
	case model.LoadBalancerPattern:
		return c.loadBalancerLayer(u)
	}
	return nil
}

// Cache, message queue and load balancer patterns are recognized but add no
// manifests yet.

func (c *Converter) cacheLayer(unit) []draft        { return nil }
func (c *Converter) messageQueueLayer(unit) []draft { return nil }
func (c *Converter) loadBalancerLayer(unit) []draft { return nil }

func (c *Converter) autoscaler(u unit) (any, error) {
	return horizontalPodAutoscaler{
		typeMeta: typeMeta{APIVersion: "autoscaling/v2", Kind: "HorizontalPodAutoscaler"},
		Metadata: c.meta(u.name("hpa"), u),
		Spec: hpaSpec{
			ScaleTargetRef: crossVersionRef{APIVersion: "apps/v1", Kind: "Deployment", Name: u.label},
			MinReplicas:    hpaMinReplicas,
			MaxReplicas:    hpaMaxReplicas,
			Metrics: []metricSpec{
				utilization("cpu", hpaTargetCPU),
				utilization("memory", hpaTargetMemory),
			},
		},
	}, nil
}

func utilization(resource string, target int) metricSpec {
	return metricSpec{
		Type: "Resource",
		Resource: resourceMetric{
			Name:   resource,
			Target: metricTarget{Type: "Utilization", AverageUtilization: target},
		},
	}
}

func (c *Converter) ingress(u unit) (any, error) {
	port := 80
	if len(u.svc.Ports) > 0 {
		port = u.svc.Ports[0].ContainerPort
	}

	meta := c.meta(u.name("ingress"), u)
	meta.Annotations = map[string]string{
		"kubernetes.io/ingress.class":    "nginx",
		"cert-manager.io/cluster-issuer": "letsencrypt-prod",
	}

	return ingress{
		typeMeta: typeMeta{APIVersion: "networking.k8s.io/v1", Kind: "Ingress"},
		Metadata: meta,
		Spec: ingressSpec{
			TLS: []ingressTLS{{Hosts: []string{c.ingressHost}, SecretName: u.name("tls")}},
			Rules: []ingressRule{{
				Host: c.ingressHost,
				HTTP: ingressRuleValue{Paths: []ingressPath{{
					Path:     "/",
					PathType: "Prefix",
					Backend: ingressBackend{Service: ingressServiceBackend{
						Name: u.name("service"),
						Port: serviceBackendPort{Number: port},
					}},
				}}},
			}},
		},
	}, nil
}

func (c *Converter) serviceMonitor(u unit) (any, error) {
	return serviceMonitor{
		typeMeta: typeMeta{APIVersion: "monitoring.coreos.com/v1", Kind: "ServiceMonitor"},
		Metadata: c.meta(u.name("monitor"), u),
		Spec: serviceMonitorSpec{
			Selector:  labelSelector{MatchLabels: u.labels()},
			Endpoints: []monitorEndpoint{{Port: "metrics", Path: "/metrics", Interval: "30s"}},
		},
	}, nil
}

func (c *Converter) credentials(u unit) (any, error) {
	enc := base64.StdEncoding.EncodeToString
	return secret{
		typeMeta: typeMeta{APIVersion: "v1", Kind: "Secret"},
		Metadata: c.meta(u.name("secret"), u),
		Type:     "Opaque",
		Data: map[string]string{
			"username": enc([]byte(placeholderUser)),
			"password": enc([]byte(placeholderPassword)),
			"database": enc([]byte(u.svc.Name)),
		},
	}, nil
}

func (c *Converter) networkPolicy(u unit) (any, error) {
	ns := c.namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	sameNamespace := []networkPolicyPeer{{
		NamespaceSelector: labelSelector{MatchLabels: map[string]string{"kubernetes.io/metadata.name": ns}},
	}}

	meta := c.meta(u.name("network-policy"), u)
	meta.Namespace = ns

	return networkPolicy{
		typeMeta: typeMeta{APIVersion: "networking.k8s.io/v1", Kind: "NetworkPolicy"},
		Metadata: meta,
		Spec: networkPolicySpec{
			PodSelector: labelSelector{MatchLabels: u.labels()},
			PolicyTypes: []string{"Ingress", "Egress"},
			Ingress:     []networkPolicyRule{{From: sameNamespace}},
			Egress:      []networkPolicyRule{{To: sameNamespace}},
		},
	}, nil
}
