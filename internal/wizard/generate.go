package wizard

import (
	"bytes"
	"strings"
	"text/template"
)

// WizardAnswers holds all user responses from the wizard.
type WizardAnswers struct {
	// Input
	Input    string
	Template bool
	Strict   bool

	// Output
	OutputDir  string
	Production bool

	// Cluster settings
	Namespace    string
	IngressHost  string
	StorageClass string
}

const configTemplate = `# k8sify configuration
# Environment overrides use the K8SIFY_ prefix, e.g. K8SIFY_NAMESPACE.

input: {{ .Input }}
{{- if .Template }}
template: true
{{- end }}
{{- if .Strict }}
strict: true
{{- end }}
output_dir: {{ .OutputDir }}
production: {{ if .Production }}true{{ else }}false{{ end }}
{{- if .Namespace }}
namespace: {{ .Namespace }}
{{- end }}
ingress_host: {{ .IngressHost }}
storage_class: {{ .StorageClass }}

# Extra image rules, consulted before the built-in ones:
# rules:
#   image_roles:
#     - match: acme/billing
#       role: Worker
`

// GenerateConfig renders the YAML config from wizard answers.
func GenerateConfig(answers WizardAnswers) (string, error) {
	if answers.Input == "" {
		answers.Input = "docker-compose.yml"
	}
	if strings.HasSuffix(answers.Input, ".j2") {
		answers.Template = true
	}
	if answers.OutputDir == "" {
		answers.OutputDir = "k8s"
	}
	if answers.IngressHost == "" {
		answers.IngressHost = "example.com"
	}
	if answers.StorageClass == "" {
		answers.StorageClass = "standard"
	}

	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, answers); err != nil {
		return "", err
	}

	return buf.String(), nil
}
