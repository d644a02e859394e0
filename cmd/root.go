package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ThomasCrouzet/k8sify/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	envFile string
	verbose bool

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

var rootCmd = &cobra.Command{
	Use:   "k8sify",
	Short: "Convert Docker Compose applications into Kubernetes manifests",
	Long: `k8sify reads a Docker Compose file, classifies every service (web app,
database, cache, queue, ...), detects deployment patterns and writes one
Kubernetes manifest per object.

Basic mode emits Deployments, Services, ConfigMaps and PersistentVolumeClaims.
Production mode adds replicas, resources, autoscalers, ingresses, monitors,
network policies and credential secrets.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: "+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
}

func initConfig() {
	if err := config.LoadDotEnv(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading env file: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(strings.TrimSuffix(config.FileName, ".yml"))
		viper.SetConfigType("yml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}
}

// bindFlags lets the named flags of cmd override config keys. Flags are
// bound when the command runs, so commands sharing a key do not clash.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q", flag)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// inputFlags registers the flags that select and parse the compose file.
func inputFlags(cmd *cobra.Command) map[string]string {
	fs := cmd.Flags()
	fs.StringP("file", "f", "", "compose file to convert")
	fs.Bool("template", false, "strip Jinja2 template markup before parsing")
	fs.Bool("strict", false, "cross-check the file with the compose reference loader")
	fs.Int("workers", 0, "services rendered concurrently (default: number of CPUs)")
	return map[string]string{
		"file":     "input",
		"template": "template",
		"strict":   "strict",
		"workers":  "workers",
	}
}
