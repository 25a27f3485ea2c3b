package appconfig

import (
	"fmt"
	"io"
	"strings"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	if cfg == nil {
		cfg = &fallback
	}

	methods := "(catalog order)"
	if len(cfg.Methods) > 0 {
		methods = strings.Join(cfg.Methods, ", ")
	}
	catalogPath := cfg.CatalogPath
	if catalogPath == "" {
		catalogPath = "(embedded default)"
	}
	timeout := "none"
	if d := cfg.RequestTimeout(); d > 0 {
		timeout = d.String()
	}

	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Data:            %s\n", cfg.DataDir)
	fmt.Fprintf(out, "  Summary:         %s\n", cfg.SummaryPath)
	fmt.Fprintf(out, "  Output:          %s\n", cfg.OutputDir)
	fmt.Fprintf(out, "  Catalog:         %s\n", catalogPath)
	fmt.Fprintf(out, "  Methods:         %s\n", methods)
	fmt.Fprintf(out, "  Title:           %s\n", cfg.PageTitle())
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Fetch Timeout:   %s\n", timeout)
	fmt.Fprintf(out, "  Serve Address:   %s\n", cfg.ServeAddr)
}
