package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ThomasCrouzet/k8sify/internal/classify"
	"github.com/ThomasCrouzet/k8sify/internal/config"
	"github.com/ThomasCrouzet/k8sify/internal/extract"
	"github.com/ThomasCrouzet/k8sify/internal/model"
	"github.com/ThomasCrouzet/k8sify/internal/ui"
	"github.com/ThomasCrouzet/k8sify/internal/util"
)

// analysis is the classified application and everything detected in it.
type analysis struct {
	App      *model.Application      `json:"application" yaml:"application"`
	Patterns []model.DetectedPattern `json:"patterns" yaml:"patterns"`
	Summary  classify.Summary        `json:"summary" yaml:"summary"`
}

// analyze runs extraction and classification on the configured input. When
// quiet is false, each stage is reported on stdout.
func analyze(ctx context.Context, cfg *config.Config, quiet bool) (*analysis, error) {
	done := func(name, detail string) {
		if !quiet {
			ui.Step(os.Stdout, ui.StatusOK, name, detail)
		}
	}
	skipped := func(name string) {
		if !quiet {
			ui.Step(os.Stdout, ui.StatusSkipped, name, "")
		}
	}

	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	if cfg.Strict {
		doc := data
		if cfg.Template {
			doc = []byte(util.StripTemplates(string(data)))
		}
		if err := extract.Lint(ctx, doc); err != nil {
			return nil, err
		}
		done("Lint", "compose reference loader accepted "+cfg.Input)
	} else {
		skipped("Lint")
	}

	opts := []extract.Option{extract.WithLogger(logger)}
	if cfg.Template {
		opts = append(opts, extract.WithTemplateStripping())
	}
	app, err := extract.Extract(data, opts...)
	if err != nil {
		return nil, err
	}
	done("Extract", fmt.Sprintf("%d services", len(app.Services)))

	rules, err := cfg.ClassifierRules()
	if err != nil {
		return nil, err
	}
	c := classify.New(rules, classify.WithLogger(logger))
	app = c.Classify(app)
	patterns := c.DetectPatterns(app)
	done("Classify", fmt.Sprintf("%d patterns", len(patterns)))

	return &analysis{App: app, Patterns: patterns, Summary: classify.Summarize(app)}, nil
}
