package cmd

import (
	"fmt"
	"os"

	"github.com/ThomasCrouzet/k8sify/internal/config"
	"github.com/ThomasCrouzet/k8sify/internal/ui"
	"github.com/ThomasCrouzet/k8sify/internal/wizard"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a " + config.FileName + " config file interactively",
	Long: `Scan the working directory for compose files and templates, then generate
a config file through an interactive wizard.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := config.FileName

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("%s already exists.\n", configPath)
		fmt.Print("Overwrite? [y/N] ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	fmt.Println(ui.Bold("Scanning working directory..."))
	detection := wizard.Detect(nil)

	answers, err := wizard.Run(detection)
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}

	content, err := wizard.GenerateConfig(*answers)
	if err != nil {
		return fmt.Errorf("generating config: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Println(ui.Success(fmt.Sprintf("Created %s", configPath)))
	fmt.Println()
	fmt.Printf("Next step: %s\n", ui.Bold("k8sify convert"))
	fmt.Printf("           %s\n", ui.Hint("or k8sify analyze to preview roles and patterns"))
	if detection.KubectlAvailable {
		fmt.Printf("Then:      %s\n", ui.Bold("kubectl apply -f "+answers.OutputDir))
	}

	return nil
}
