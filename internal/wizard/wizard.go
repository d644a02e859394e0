package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Run executes the interactive wizard and returns the user's answers.
func Run(detection DetectionResult) (*WizardAnswers, error) {
	answers := &WizardAnswers{
		Input:        "docker-compose.yml",
		OutputDir:    "k8s",
		IngressHost:  "example.com",
		StorageClass: "standard",
	}

	candidates := detection.Candidates()
	if len(candidates) > 0 {
		answers.Input = candidates[0]
	}

	var hints []string
	if len(detection.ComposeFiles) > 0 {
		hints = append(hints, fmt.Sprintf("Compose files found: %s", strings.Join(detection.ComposeFiles, ", ")))
	}
	if len(detection.TemplateFiles) > 0 {
		hints = append(hints, fmt.Sprintf("Templates found: %s", strings.Join(detection.TemplateFiles, ", ")))
	}
	if detection.DotEnv {
		hints = append(hints, ".env found (loaded before the config)")
	}

	desc := "The compose file to convert."
	if len(hints) > 0 {
		desc += "\n\nAuto-detected:\n  " + strings.Join(hints, "\n  ")
	}

	// Step 1: input
	var inputField huh.Field
	if len(candidates) > 1 {
		options := make([]huh.Option[string], len(candidates))
		for i, c := range candidates {
			options[i] = huh.NewOption(c, c)
		}
		inputField = huh.NewSelect[string]().
			Title("Which compose file do you want to convert?").
			Description(desc).
			Options(options...).
			Value(&answers.Input)
	} else {
		inputField = huh.NewInput().
			Title("Compose file path").
			Description(desc).
			Value(&answers.Input)
	}

	groups := []*huh.Group{
		huh.NewGroup(
			inputField,
			huh.NewConfirm().
				Title("Cross-check with the compose reference loader?").
				Description("Rejects documents the compose specification does not allow.").
				Value(&answers.Strict),
		),
		// Step 2: output
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Value(&answers.OutputDir),
			huh.NewSelect[bool]().
				Title("Manifest set").
				Options(
					huh.NewOption("Basic: deployments, services, config and volumes", false),
					huh.NewOption("Production: adds autoscaling, ingress, monitoring and policies", true),
				).
				Value(&answers.Production),
		),
		// Step 3: cluster
		huh.NewGroup(
			huh.NewInput().
				Title("Namespace (optional)").
				Value(&answers.Namespace),
			huh.NewInput().
				Title("Ingress host").
				Description("Used for production ingress rules").
				Value(&answers.IngressHost),
			huh.NewInput().
				Title("Storage class").
				Value(&answers.StorageClass),
		),
	}

	if err := huh.NewForm(groups...).Run(); err != nil {
		return nil, err
	}

	answers.Template = strings.HasSuffix(answers.Input, ".j2")
	return answers, nil
}
