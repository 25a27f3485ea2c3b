package densebench

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/densebench/internal/logging"
	"github.com/spf13/viper"
)

func resetFlag(cmdFlag string) {
	flag := rootCmd.PersistentFlags().Lookup(cmdFlag)
	if flag == nil {
		return
	}
	_ = flag.Value.Set(flag.DefValue)
	flag.Changed = false
}

func resetRootFlags() {
	for _, name := range append([]string{"debug", "timeout"}, stringFlags...) {
		resetFlag(name)
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// useConfig points the root command at configPath for the duration of the test.
func useConfig(t *testing.T, configPath string) {
	t.Helper()
	prevCfgFile := cfgFile
	cfgFile = configPath
	viper.SetConfigFile(configPath)
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
		resetRootFlags()
		currentConfig = nil
	})
	t.Cleanup(func() { _ = logging.Close() })
	resetRootFlags()
}

func TestPersistentPreRunEUsesFlagValues(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "densebench.log")
	configPath := writeTempConfig(t, `{"data": "from-config", "summary": "cfg/stats.json"}`)
	useConfig(t, configPath)

	_ = rootCmd.PersistentFlags().Set("data", "from-flag")
	_ = rootCmd.PersistentFlags().Set("out", "public")
	_ = rootCmd.PersistentFlags().Set("timeout", "12")
	_ = rootCmd.PersistentFlags().Set("logFile", logPath)

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	if currentConfig == nil || currentConfig.ConfigPath != configPath {
		t.Fatalf("expected config loaded with path %s", configPath)
	}
	if currentConfig.DataDir != "from-flag" {
		t.Fatalf("expected flag to override config, got %q", currentConfig.DataDir)
	}
	if currentConfig.SummaryPath != "cfg/stats.json" {
		t.Fatalf("expected summary from config, got %q", currentConfig.SummaryPath)
	}
	if currentConfig.OutputDir != "public" {
		t.Fatalf("expected output dir from flag, got %q", currentConfig.OutputDir)
	}
	if currentConfig.TimeoutSeconds != 12 {
		t.Fatalf("expected timeout set, got %d", currentConfig.TimeoutSeconds)
	}
	if currentConfig.LogFilePath() != logPath {
		t.Fatalf("expected log path %s, got %s", logPath, currentConfig.LogFilePath())
	}
}

func TestPersistentPreRunEAppliesDefaults(t *testing.T) {
	useConfig(t, writeTempConfig(t, "{}"))
	_ = rootCmd.PersistentFlags().Set("logFile", filepath.Join(t.TempDir(), "densebench.log"))

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}
	if currentConfig.DataDir != "Data" || currentConfig.SummaryPath != "data_computed/stats.json" || currentConfig.OutputDir != "site" {
		t.Fatalf("expected defaults, got %+v", currentConfig)
	}
}

func TestPersistentPreRunEInvalidTimeout(t *testing.T) {
	useConfig(t, writeTempConfig(t, "{}"))
	_ = rootCmd.PersistentFlags().Set("timeout", "-1")

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err == nil {
		t.Fatalf("expected error for negative timeout")
	}
}

func TestShowConfigCommandOutput(t *testing.T) {
	useConfig(t, writeTempConfig(t, `{"title": "Bench"}`))

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--logFile", filepath.Join(t.TempDir(), "densebench.log"), "show", "config"})
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })
	_, err := rootCmd.ExecuteC()
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Current configuration:") {
		t.Fatalf("expected configuration header, got %s", out)
	}
	if !strings.Contains(out, "Title:           Bench") {
		t.Fatalf("expected title from config, got %s", out)
	}
}
