// Package synth renders Kubernetes manifests for a classified application.
//
// Every service yields a Deployment, plus a Service, ConfigMap and
// PersistentVolumeClaims when it declares ports, environment and named
// volumes. In production mode, replicas and resources are set and
// per-service patterns contribute autoscalers, ingresses, monitors,
// network policies and credential secrets.
package synth
