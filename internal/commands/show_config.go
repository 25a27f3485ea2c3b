package densebench

import (
	"github.com/mwiater/densebench/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		fallback := appconfig.Config{
			Debug:          viper.GetBool("debug"),
			DataDir:        viper.GetString("data"),
			SummaryPath:    viper.GetString("summary"),
			OutputDir:      viper.GetString("out"),
			CatalogPath:    viper.GetString("catalog"),
			LogFile:        viper.GetString("logFile"),
			Title:          viper.GetString("title"),
			TimeoutSeconds: viper.GetInt("timeout"),
		}
		fallback.ApplyDefaults()
		file := ""
		if cfg := GetConfig(); cfg != nil {
			file = cfg.ConfigPath
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), file, GetConfig(), fallback)
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
