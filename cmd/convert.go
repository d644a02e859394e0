package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ThomasCrouzet/k8sify/internal/config"
	"github.com/ThomasCrouzet/k8sify/internal/extract"
	"github.com/ThomasCrouzet/k8sify/internal/synth"
	"github.com/ThomasCrouzet/k8sify/internal/ui"
	"github.com/spf13/cobra"
)

var convertFlags map[string]string

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Write Kubernetes manifests for a compose file",
	Long: `Extract the services of a compose file, classify them and write one
Kubernetes manifest per object into the output directory. Existing files with
the same names are overwritten.

Manifests that fail to render are reported; the others are still written.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, convertFlags)
	},
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertFlags = inputFlags(convertCmd)
	fs := convertCmd.Flags()
	fs.StringP("output", "o", "", "output directory (default: k8s)")
	fs.BoolP("production", "p", false, "emit production manifests")
	fs.StringP("namespace", "n", "", "namespace set on every object")
	fs.String("ingress-host", "", "host of production ingress rules (default: example.com)")
	fs.String("storage-class", "", "storage class of volume claims (default: standard)")
	convertFlags["output"] = "output_dir"
	convertFlags["production"] = "production"
	convertFlags["namespace"] = "namespace"
	convertFlags["ingress-host"] = "ingress_host"
	convertFlags["storage-class"] = "storage_class"
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.Abort("Failed to load config", err, "run 'k8sify init' to create a config file"))
		return err
	}

	fmt.Println(ui.Bold("Converting " + cfg.Input + "..."))

	result, err := analyze(cmd.Context(), cfg, false)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.Abort("Conversion aborted", err, abortHint(err)))
		return err
	}

	mode := synth.ModeBasic
	if cfg.Production {
		mode = synth.ModeProduction
	}
	converter := synth.New(
		synth.WithLogger(logger),
		synth.WithNamespace(cfg.Namespace),
		synth.WithIngressHost(cfg.IngressHost),
		synth.WithStorageClass(cfg.StorageClass),
		synth.WithWorkers(cfg.Workers),
	)
	res := converter.Convert(result.App, mode, result.Patterns)
	ui.Step(os.Stdout, ui.StatusOK, "Synthesize", fmt.Sprintf("%d manifests", res.Succeeded()))

	written, err := synth.Write(cfg.OutputDir, res.Manifests)
	fmt.Print(ui.Conversion(res, written))
	if err != nil {
		fmt.Fprint(os.Stderr, ui.Abort("Failed to write manifests", err, ""))
		return err
	}

	if len(res.Failures) > 0 {
		return fmt.Errorf("%d of %d manifests failed: %w", len(res.Failures), res.Attempted, res.Err())
	}
	fmt.Println(ui.Success(fmt.Sprintf("Wrote %d manifests to %s", len(written), cfg.OutputDir)))
	return nil
}

func abortHint(err error) string {
	var fieldErr *extract.FieldParseError
	switch {
	case errors.Is(err, extract.ErrInvalidYAML):
		return "the file is not valid YAML; use --template for Jinja2 templates"
	case errors.Is(err, extract.ErrNoServices), errors.Is(err, extract.ErrServicesNotMapping):
		return "the file needs a services mapping"
	case errors.Is(err, extract.ErrNotCompliant):
		return "run without --strict to convert anyway"
	case errors.As(err, &fieldErr):
		return "fix " + fieldErr.Field
	case errors.Is(err, os.ErrNotExist):
		return "pass --file or set input in " + config.FileName
	}
	return ""
}
