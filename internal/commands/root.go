// internal/commands/root.go
package densebench

import (
	"fmt"
	"os"
	"strconv"

	"github.com/k0kubun/pp"
	"github.com/mwiater/densebench/internal/appconfig"
	"github.com/mwiater/densebench/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// stringFlags are persistent string flags that fall back to the config file.
var stringFlags = []string{"data", "summary", "out", "catalog", "logFile", "title"}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "densebench",
	Short: "densebench: leaderboard builder for pathology foundation model segmentation benchmarks",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		if !cmd.Flags().Changed("debug") {
			_ = cmd.Flags().Set("debug", strconv.FormatBool(viper.GetBool("debug")))
		}
		for _, name := range stringFlags {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, viper.GetString(name))
			}
		}
		if !cmd.Flags().Changed("timeout") {
			_ = cmd.Flags().Set("timeout", strconv.Itoa(viper.GetInt("timeout")))
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		if used := viper.ConfigFileUsed(); used != "" {
			if _, err := os.Stat(used); err == nil {
				cfg.ConfigPath = used
			}
		}
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			return err
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if cfg.Debug {
			pp.Println(cfg)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("data", "", "directory or base URL holding <method>.json result files")
	rootCmd.PersistentFlags().String("summary", "", "path or URL of the precomputed summary (stats.json)")
	rootCmd.PersistentFlags().String("out", "", "output directory for the rendered site")
	rootCmd.PersistentFlags().String("catalog", "", "catalog YAML replacing the embedded default")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().String("title", "", "site title")
	rootCmd.PersistentFlags().Int("timeout", 0, "seconds to wait for each remote fetch (0 = no timeout)")

	for _, name := range append([]string{"debug", "timeout"}, stringFlags...) {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config and sets safe defaults.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) && cfgFile == appconfig.DefaultConfigPath {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
