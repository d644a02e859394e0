package synth

// Minimal typed views of the Kubernetes objects k8sify emits. Field order
// follows the order kubectl prints them in.

type typeMeta struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
}

type objectMeta struct {
	Name        string            `yaml:"name"`
	Namespace   string            `yaml:"namespace,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}

type labelSelector struct {
	MatchLabels map[string]string `yaml:"matchLabels"`
}

type resourceList struct {
	CPU     string `yaml:"cpu,omitempty"`
	Memory  string `yaml:"memory,omitempty"`
	Storage string `yaml:"storage,omitempty"`
}

type resourceRequirements struct {
	Requests *resourceList `yaml:"requests,omitempty"`
	Limits   *resourceList `yaml:"limits,omitempty"`
}

// apps/v1 Deployment

type deployment struct {
	typeMeta `yaml:",inline"`
	Metadata objectMeta     `yaml:"metadata"`
	Spec     deploymentSpec `yaml:"spec"`
}

type deploymentSpec struct {
	Replicas int             `yaml:"replicas"`
	Strategy strategy        `yaml:"strategy"`
	Selector labelSelector   `yaml:"selector"`
	Template podTemplateSpec `yaml:"template"`
}

type strategy struct {
	Type string `yaml:"type"`
}

type podTemplateSpec struct {
	Metadata templateMeta `yaml:"metadata"`
	Spec     podSpec      `yaml:"spec"`
}

type templateMeta struct {
	Labels map[string]string `yaml:"labels"`
}

type podSpec struct {
	Containers []container `yaml:"containers"`
	Volumes    []volume    `yaml:"volumes,omitempty"`
}

type container struct {
	Name           string                `yaml:"name"`
	Image          string                `yaml:"image"`
	Ports          []containerPort       `yaml:"ports,omitempty"`
	EnvFrom        []envFromSource       `yaml:"envFrom,omitempty"`
	LivenessProbe  *probe                `yaml:"livenessProbe,omitempty"`
	ReadinessProbe *probe                `yaml:"readinessProbe,omitempty"`
	Resources      *resourceRequirements `yaml:"resources,omitempty"`
	VolumeMounts   []volumeMount         `yaml:"volumeMounts,omitempty"`
}

type containerPort struct {
	ContainerPort int    `yaml:"containerPort"`
	Protocol      string `yaml:"protocol"`
}

type envFromSource struct {
	ConfigMapRef *localObjectRef `yaml:"configMapRef,omitempty"`
	SecretRef    *localObjectRef `yaml:"secretRef,omitempty"`
}

type localObjectRef struct {
	Name string `yaml:"name"`
}

type probe struct {
	Exec                *execAction    `yaml:"exec,omitempty"`
	HTTPGet             *httpGetAction `yaml:"httpGet,omitempty"`
	InitialDelaySeconds int            `yaml:"initialDelaySeconds,omitempty"`
	PeriodSeconds       int            `yaml:"periodSeconds,omitempty"`
	TimeoutSeconds      int            `yaml:"timeoutSeconds,omitempty"`
	FailureThreshold    int            `yaml:"failureThreshold,omitempty"`
}

type execAction struct {
	Command []string `yaml:"command"`
}

type httpGetAction struct {
	Path string `yaml:"path"`
	Port int    `yaml:"port"`
}

type volumeMount struct {
	Name      string `yaml:"name"`
	MountPath string `yaml:"mountPath"`
	ReadOnly  bool   `yaml:"readOnly,omitempty"`
}

type volume struct {
	Name                  string          `yaml:"name"`
	PersistentVolumeClaim *claimSource    `yaml:"persistentVolumeClaim,omitempty"`
	HostPath              *hostPathSource `yaml:"hostPath,omitempty"`
	EmptyDir              *emptyDirSource `yaml:"emptyDir,omitempty"`
}

type claimSource struct {
	ClaimName string `yaml:"claimName"`
	ReadOnly  bool   `yaml:"readOnly,omitempty"`
}

type hostPathSource struct {
	Path string `yaml:"path"`
}

type emptyDirSource struct {
	Medium string `yaml:"medium,omitempty"`
}

// v1 Service

type service struct {
	typeMeta `yaml:",inline"`
	Metadata objectMeta  `yaml:"metadata"`
	Spec     serviceSpec `yaml:"spec"`
}

type serviceSpec struct {
	Type            string            `yaml:"type"`
	SessionAffinity string            `yaml:"sessionAffinity"`
	Selector        map[string]string `yaml:"selector"`
	Ports           []servicePort     `yaml:"ports"`
}

type servicePort struct {
	Name       string `yaml:"name"`
	Port       int    `yaml:"port"`
	TargetPort int    `yaml:"targetPort"`
	NodePort   int    `yaml:"nodePort,omitempty"`
	Protocol   string `yaml:"protocol"`
}

// v1 ConfigMap and Secret

type configMap struct {
	typeMeta `yaml:",inline"`
	Metadata objectMeta        `yaml:"metadata"`
	Data     map[string]string `yaml:"data"`
}

type secret struct {
	typeMeta `yaml:",inline"`
	Metadata objectMeta        `yaml:"metadata"`
	Type     string            `yaml:"type"`
	Data     map[string]string `yaml:"data"`
}

// v1 PersistentVolumeClaim

type persistentVolumeClaim struct {
	typeMeta `yaml:",inline"`
	Metadata objectMeta `yaml:"metadata"`
	Spec     claimSpec  `yaml:"spec"`
}

type claimSpec struct {
	AccessModes      []string             `yaml:"accessModes"`
	StorageClassName string               `yaml:"storageClassName,omitempty"`
	Resources        resourceRequirements `yaml:"resources"`
}

// networking.k8s.io/v1 Ingress

type ingress struct {
	typeMeta `yaml:",inline"`
	Metadata objectMeta  `yaml:"metadata"`
	Spec     ingressSpec `yaml:"spec"`
}

type ingressSpec struct {
	TLS   []ingressTLS  `yaml:"tls,omitempty"`
	Rules []ingressRule `yaml:"rules"`
}

type ingressTLS struct {
	Hosts      []string `yaml:"hosts"`
	SecretName string   `yaml:"secretName"`
}

type ingressRule struct {
	Host string           `yaml:"host"`
	HTTP ingressRuleValue `yaml:"http"`
}

type ingressRuleValue struct {
	Paths []ingressPath `yaml:"paths"`
}

type ingressPath struct {
	Path     string         `yaml:"path"`
	PathType string         `yaml:"pathType"`
	Backend  ingressBackend `yaml:"backend"`
}

type ingressBackend struct {
	Service ingressServiceBackend `yaml:"service"`
}

type ingressServiceBackend struct {
	Name string             `yaml:"name"`
	Port serviceBackendPort `yaml:"port"`
}

type serviceBackendPort struct {
	Number int `yaml:"number"`
}

// autoscaling/v2 HorizontalPodAutoscaler

type horizontalPodAutoscaler struct {
	typeMeta `yaml:",inline"`
	Metadata objectMeta `yaml:"metadata"`
	Spec     hpaSpec    `yaml:"spec"`
}

type hpaSpec struct {
	ScaleTargetRef crossVersionRef `yaml:"scaleTargetRef"`
	MinReplicas    int             `yaml:"minReplicas"`
	MaxReplicas    int             `yaml:"maxReplicas"`
	Metrics        []metricSpec    `yaml:"metrics"`
}

type crossVersionRef struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
	Name       string `yaml:"name"`
}

type metricSpec struct {
	Type     string         `yaml:"type"`
	Resource resourceMetric `yaml:"resource"`
}

type resourceMetric struct {
	Name   string       `yaml:"name"`
	Target metricTarget `yaml:"target"`
}

type metricTarget struct {
	Type               string `yaml:"type"`
	AverageUtilization int    `yaml:"averageUtilization"`
}

// networking.k8s.io/v1 NetworkPolicy

type networkPolicy struct {
	typeMeta `yaml:",inline"`
	Metadata objectMeta        `yaml:"metadata"`
	Spec     networkPolicySpec `yaml:"spec"`
}

type networkPolicySpec struct {
	PodSelector labelSelector       `yaml:"podSelector"`
	PolicyTypes []string            `yaml:"policyTypes"`
	Ingress     []networkPolicyRule `yaml:"ingress"`
	Egress      []networkPolicyRule `yaml:"egress"`
}

type networkPolicyRule struct {
	From []networkPolicyPeer `yaml:"from,omitempty"`
	To   []networkPolicyPeer `yaml:"to,omitempty"`
}

type networkPolicyPeer struct {
	NamespaceSelector labelSelector `yaml:"namespaceSelector"`
}

// monitoring.coreos.com/v1 ServiceMonitor

type serviceMonitor struct {
	typeMeta `yaml:",inline"`
	Metadata objectMeta         `yaml:"metadata"`
	Spec     serviceMonitorSpec `yaml:"spec"`
}

type serviceMonitorSpec struct {
	Selector  labelSelector     `yaml:"selector"`
	Endpoints []monitorEndpoint `yaml:"endpoints"`
}

type monitorEndpoint struct {
	Port     string `yaml:"port"`
	Path     string `yaml:"path"`
	Interval string `yaml:"interval"`
}
