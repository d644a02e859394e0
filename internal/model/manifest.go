package model

// ManifestKind tags the target object of a rendered manifest.
type ManifestKind string

const (
	KindDeployment              ManifestKind = "Deployment"
	KindService                 ManifestKind = "Service"
	KindConfigMap               ManifestKind = "ConfigMap"
	KindSecret                  ManifestKind = "Secret"
	KindPersistentVolumeClaim   ManifestKind = "PersistentVolumeClaim"
	KindIngress                 ManifestKind = "Ingress"
	KindHorizontalPodAutoscaler ManifestKind = "HorizontalPodAutoscaler"
	KindNetworkPolicy           ManifestKind = "NetworkPolicy"
	KindServiceMonitor          ManifestKind = "ServiceMonitor"
)

// ManifestKinds lists every kind in output order.
var ManifestKinds = []ManifestKind{
	KindDeployment,
	KindService,
	KindConfigMap,
	KindSecret,
	KindPersistentVolumeClaim,
	KindIngress,
	KindHorizontalPodAutoscaler,
	KindNetworkPolicy,
	KindServiceMonitor,
}

// Manifest is one rendered deployment artifact.
type Manifest struct {
	Kind    ManifestKind
	Name    string // object name, also the file stem
	Service string // owning service
	Content string
	Meta    map[string]string
}

// FileName returns the file the manifest is written to.
func (m Manifest) FileName() string {
	return m.Name + ".yaml"
}

// ManifestSet is an ordered collection of manifests.
type ManifestSet struct {
	Items []Manifest
}

// Add appends manifests to the set.
func (s *ManifestSet) Add(ms ...Manifest) {
	s.Items = append(s.Items, ms...)
}

// ByKind returns the manifests of one kind, in set order.
func (s ManifestSet) ByKind(kind ManifestKind) []Manifest {
	var out []Manifest
	for _, m := range s.Items {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// Count returns the number of manifests of one kind.
func (s ManifestSet) Count(kind ManifestKind) int {
	n := 0
	for _, m := range s.Items {
		if m.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the total number of manifests.
func (s ManifestSet) Len() int {
	return len(s.Items)
}

// Find returns the manifest with the given kind and name.
func (s ManifestSet) Find(kind ManifestKind, name string) (Manifest, bool) {
	for _, m := range s.Items {
		if m.Kind == kind && m.Name == name {
			return m, true
		}
	}
	return Manifest{}, false
}
