package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ThomasCrouzet/k8sify/internal/config"
	"github.com/ThomasCrouzet/k8sify/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	analyzeFlags  map[string]string
	analyzeFormat string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Show service roles and detected patterns without writing manifests",
	Long: `Extract and classify a compose file, then print each service's role and
scaling profile, the detected deployment patterns with their recommendations,
and a complexity summary.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		switch analyzeFormat {
		case "table", "json", "yaml":
		default:
			return fmt.Errorf("unknown format %q: use table, json or yaml", analyzeFormat)
		}
		return bindFlags(cmd, analyzeFlags)
	},
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeFlags = inputFlags(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "table", "output format: table, json, yaml")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.Abort("Failed to load config", err, "run 'k8sify init' to create a config file"))
		return err
	}

	quiet := analyzeFormat != "table"
	result, err := analyze(cmd.Context(), cfg, quiet)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.Abort("Analysis aborted", err, abortHint(err)))
		return err
	}

	return printAnalysis(cmd.OutOrStdout(), analyzeFormat, result)
}

func printAnalysis(w io.Writer, format string, a *analysis) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(a); err != nil {
			return err
		}
		return enc.Close()
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, ui.ServicesTable(a.App))
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Bold("Patterns"))
	fmt.Fprint(w, ui.Patterns(a.Patterns))
	fmt.Fprintln(w)
	fmt.Fprint(w, ui.Summary(a.Summary))
	return nil
}
