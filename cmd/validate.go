package cmd

import (
	"fmt"
	"os"

	"github.com/ThomasCrouzet/k8sify/internal/config"
	"github.com/ThomasCrouzet/k8sify/internal/extract"
	"github.com/ThomasCrouzet/k8sify/internal/ui"
	"github.com/ThomasCrouzet/k8sify/internal/util"
	"github.com/spf13/cobra"
)

var validateFlags map[string]string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate your " + config.FileName + " configuration",
	Long: `Check that the configuration is usable: the input exists and parses,
the output directory can be created, image rules name known roles and the
worker count is positive.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, validateFlags)
	},
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateFlags = inputFlags(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.Abort("Failed to load config", err, "run 'k8sify init' to create a config file"))
		return err
	}

	fmt.Println(ui.Bold("Validating configuration..."))

	passed := 0
	failed := 0

	problems := cfg.Validate()
	for _, p := range problems {
		ui.Failed(os.Stdout, p.Field, p.Message, p.Suggestion)
		failed++
	}
	if len(problems) == 0 {
		ui.Step(os.Stdout, ui.StatusOK, "config", "settings valid")
		passed++

		if err := checkInput(cmd, cfg); err != nil {
			ui.Failed(os.Stdout, "input", err.Error(), abortHint(err))
			failed++
		} else {
			ui.Step(os.Stdout, ui.StatusOK, "input", cfg.Input+" parses")
			passed++
		}
	}

	fmt.Println()
	if failed == 0 {
		fmt.Println(ui.Success(fmt.Sprintf("%d checks passed, 0 errors", passed)))
	} else {
		fmt.Printf("%d checks passed, %d errors\n", passed, failed)
	}

	if failed > 0 {
		return fmt.Errorf("%d validation errors", failed)
	}
	return nil
}

func checkInput(cmd *cobra.Command, cfg *config.Config) error {
	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return err
	}
	if cfg.Template {
		data = []byte(util.StripTemplates(string(data)))
	}
	if cfg.Strict {
		if err := extract.Lint(cmd.Context(), data); err != nil {
			return err
		}
	}
	_, err = extract.Extract(data)
	return err
}
