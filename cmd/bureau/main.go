package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Veraticus/bureau-dispute-flow/internal/cli"
	"github.com/Veraticus/bureau-dispute-flow/internal/common"
	"github.com/Veraticus/bureau-dispute-flow/internal/config"
	"github.com/Veraticus/bureau-dispute-flow/internal/fieldpath"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	// appConfig is resolved once per invocation by initConfig.
	appConfig *config.Config
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bureau",
		Short: "🏦 Credit report dispute finder",
		Long: `bureau reads credit reports from TransUnion, Experian and Equifax,
flags the fields worth disputing, shows where the bureaus disagree and lines up
the same account across all three reports.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/bureau/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("format", config.OutputTable, "output format (table, json)")
	flags.String("db", "", "database path (default: "+config.DefaultDatabasePath+")")
	flags.Int("max-depth", fieldpath.DefaultMaxDepth, "deepest nesting level flattened")
	flags.Int("max-keys", fieldpath.DefaultMaxKeys, "maximum number of paths flattened per report")
	flags.Int("array-sample", fieldpath.DefaultArraySampleSize, "array elements inspected per array")

	bindings := map[string]string{
		"logging.level":            "log-level",
		"logging.format":           "log-format",
		"output.format":            "format",
		"database.path":            "db",
		"limits.max_depth":         "max-depth",
		"limits.max_keys":          "max-keys",
		"limits.array_sample_size": "array-sample",
	}
	for key, flag := range bindings {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(flattenCmd())
	rootCmd.AddCommand(getCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(disputesCmd())
	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(accountsCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(selectCmd())
	rootCmd.AddCommand(selectionsCmd())
	rootCmd.AddCommand(letterCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	handler := cli.NewInterruptHandler(os.Stderr)
	ctx := handler.HandleInterrupts(context.Background())

	err := newRootCmd().ExecuteContext(ctx)
	handler.Stop()

	if err != nil {
		msg := err.Error()
		if userMsg, ok := common.UserMessage(err); ok {
			msg = userMsg
		}
		fmt.Fprintln(os.Stderr, cli.FormatError(msg))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/bureau", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("BUREAU")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return common.NewUserError("invalid configuration", err)
	}
	appConfig = cfg

	if err := setupLogging(cfg); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func setupLogging(cfg *config.Config) error {
	level, err := common.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	return common.SetupLogger(level, cfg.Logging.Format)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "bureau version %s\n", version)
			return err
		},
	}
}
