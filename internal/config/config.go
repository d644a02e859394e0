package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/ThomasCrouzet/k8sify/internal/classify"
	"github.com/ThomasCrouzet/k8sify/internal/model"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the working directory.
const FileName = "k8sify.yml"

// EnvPrefix prefixes environment overrides, e.g. K8SIFY_NAMESPACE.
const EnvPrefix = "K8SIFY"

type Config struct {
	Input        string `mapstructure:"input"`
	OutputDir    string `mapstructure:"output_dir"`
	Production   bool   `mapstructure:"production"`
	Namespace    string `mapstructure:"namespace"`
	IngressHost  string `mapstructure:"ingress_host"`
	StorageClass string `mapstructure:"storage_class"`
	Workers      int    `mapstructure:"workers"`
	Template     bool   `mapstructure:"template"`
	Strict       bool   `mapstructure:"strict"`
	Rules        Rules  `mapstructure:"rules"`
}

type Rules struct {
	ImageRoles []ImageRole `mapstructure:"image_roles"`
}

// ImageRole assigns Role to every image containing Match.
type ImageRole struct {
	Match string `mapstructure:"match"`
	Role  string `mapstructure:"role"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Input:        "docker-compose.yml",
		OutputDir:    "k8s",
		IngressHost:  "example.com",
		StorageClass: "standard",
		Workers:      runtime.NumCPU(),
	}
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load reads the global viper state.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom registers the defaults with v and unmarshals it. Registering
// every key also makes it visible to AutomaticEnv. A bound flag left
// unchanged does not clear a default.
func LoadFrom(v *viper.Viper) (*Config, error) {
	d := Defaults()
	v.SetDefault("input", d.Input)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("production", d.Production)
	v.SetDefault("namespace", d.Namespace)
	v.SetDefault("ingress_host", d.IngressHost)
	v.SetDefault("storage_class", d.StorageClass)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("template", d.Template)
	v.SetDefault("strict", d.Strict)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Problem is one configuration check failure.
type Problem struct {
	Field      string
	Message    string
	Suggestion string
}

// Validate checks that the configuration can drive a conversion.
func (c *Config) Validate() []Problem {
	var problems []Problem

	if c.Input == "" {
		problems = append(problems, Problem{Field: "input", Message: "no compose file configured", Suggestion: "set input or pass --file"})
	} else if info, err := os.Stat(c.Input); err != nil {
		problems = append(problems, Problem{Field: "input", Message: fmt.Sprintf("cannot read %s", c.Input), Suggestion: "check the path"})
	} else if info.IsDir() {
		problems = append(problems, Problem{Field: "input", Message: fmt.Sprintf("%s is a directory", c.Input)})
	}

	if c.OutputDir == "" {
		problems = append(problems, Problem{Field: "output_dir", Message: "no output directory configured"})
	} else if info, err := os.Stat(c.OutputDir); err == nil && !info.IsDir() {
		problems = append(problems, Problem{Field: "output_dir", Message: fmt.Sprintf("%s exists and is not a directory", c.OutputDir)})
	}

	if c.Workers < 1 {
		problems = append(problems, Problem{Field: "workers", Message: fmt.Sprintf("must be at least 1, got %d", c.Workers)})
	}

	for i, r := range c.Rules.ImageRoles {
		field := fmt.Sprintf("rules.image_roles[%d]", i)
		if strings.TrimSpace(r.Match) == "" {
			problems = append(problems, Problem{Field: field, Message: "match is empty"})
		}
		if _, ok := model.ParseRole(r.Role); !ok {
			problems = append(problems, Problem{
				Field:      field,
				Message:    fmt.Sprintf("unknown role %q", r.Role),
				Suggestion: "one of " + roleNames(),
			})
		}
	}

	return problems
}

// ClassifierRules returns the default rule tables with the configured image
// rules consulted first. An empty match would claim every image and is
// rejected.
func (c *Config) ClassifierRules() (classify.Rules, error) {
	rules := classify.DefaultRules()
	var extra []classify.RoleRule
	for i, r := range c.Rules.ImageRoles {
		if strings.TrimSpace(r.Match) == "" {
			return rules, fmt.Errorf("rules.image_roles[%d]: match is empty", i)
		}
		role, ok := model.ParseRole(r.Role)
		if !ok {
			return rules, fmt.Errorf("rules.image_roles[%d]: unknown role %q", i, r.Role)
		}
		extra = append(extra, classify.ImageRule(r.Match, role))
	}
	return rules.WithImageRoles(extra...), nil
}

func roleNames() string {
	names := make([]string, len(model.Roles))
	for i, r := range model.Roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
