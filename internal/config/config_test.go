package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ThomasCrouzet/k8sify/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, doc string) *Config {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(doc)))
	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := load(t, "{}")
	assert.Equal(t, "docker-compose.yml", cfg.Input)
	assert.Equal(t, "k8s", cfg.OutputDir)
	assert.Equal(t, "example.com", cfg.IngressHost)
	assert.Equal(t, "standard", cfg.StorageClass)
	assert.False(t, cfg.Production)
	assert.Positive(t, cfg.Workers)
}

func TestLoadFile(t *testing.T) {
	cfg := load(t, `
input: stack.yml
output_dir: manifests
production: true
namespace: shop
ingress_host: shop.example.org
storage_class: fast-ssd
workers: 2
template: true
strict: true
rules:
  image_roles:
    - match: acme/billing
      role: Worker
`)
	assert.Equal(t, "stack.yml", cfg.Input)
	assert.Equal(t, "manifests", cfg.OutputDir)
	assert.True(t, cfg.Production)
	assert.Equal(t, "shop", cfg.Namespace)
	assert.Equal(t, "shop.example.org", cfg.IngressHost)
	assert.Equal(t, "fast-ssd", cfg.StorageClass)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Template)
	assert.True(t, cfg.Strict)
	assert.Equal(t, []ImageRole{{Match: "acme/billing", Role: "Worker"}}, cfg.Rules.ImageRoles)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "compose.yml")
	require.NoError(t, os.WriteFile(input, []byte("services: {}\n"), 0o644))
	notDir := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(notDir, nil, 0o644))

	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing input", mutate: func(c *Config) { c.Input = filepath.Join(dir, "nope.yml") }, fields: []string{"input"}},
		{name: "input is dir", mutate: func(c *Config) { c.Input = dir }, fields: []string{"input"}},
		{name: "output is file", mutate: func(c *Config) { c.OutputDir = notDir }, fields: []string{"output_dir"}},
		{name: "zero workers", mutate: func(c *Config) { c.Workers = 0 }, fields: []string{"workers"}},
		{
			name: "bad rule",
			mutate: func(c *Config) {
				c.Rules.ImageRoles = []ImageRole{{Match: "", Role: "Wizard"}}
			},
			fields: []string{"rules.image_roles[0]", "rules.image_roles[0]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			cfg.Input = input
			cfg.OutputDir = filepath.Join(dir, "out")
			tt.mutate(cfg)

			var fields []string
			for _, p := range cfg.Validate() {
				fields = append(fields, p.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestClassifierRules(t *testing.T) {
	cfg := Defaults()
	cfg.Rules.ImageRoles = []ImageRole{{Match: "acme/billing", Role: "Worker"}}

	rules, err := cfg.ClassifierRules()
	require.NoError(t, err)
	require.NotEmpty(t, rules.RoleChain)
	assert.Equal(t, model.RoleWorker, rules.RoleChain[0].Role)
	assert.True(t, rules.RoleChain[0].Match(&model.Service{Image: "acme/billing:1"}))

	cfg.Rules.ImageRoles[0].Role = "Wizard"
	_, err = cfg.ClassifierRules()
	assert.ErrorContains(t, err, "unknown role")
}

func TestClassifierRulesRejectsEmptyMatch(t *testing.T) {
	for _, match := range []string{"", "  "} {
		cfg := Defaults()
		cfg.Rules.ImageRoles = []ImageRole{{Match: match, Role: "Database"}}

		_, err := cfg.ClassifierRules()
		assert.ErrorContains(t, err, "rules.image_roles[0]: match is empty")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, LoadDotEnv(filepath.Join(dir, ".env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("K8SIFY_DOTENV_TEST=shop\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("K8SIFY_DOTENV_TEST") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "shop", os.Getenv("K8SIFY_DOTENV_TEST"))
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("K8SIFY_NAMESPACE", "staging")
	t.Setenv("K8SIFY_PRODUCTION", "true")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Namespace)
	assert.True(t, cfg.Production)
	assert.Equal(t, "k8s", cfg.OutputDir)
}
