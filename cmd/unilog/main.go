// FILE: lixenwraith/unilog/cmd/unilog/main.go
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lixenwraith/unilog"
	"github.com/spf13/cobra"
)

var (
	configPath string
	overrides  []string
	severity   string
)

var rootCmd = &cobra.Command{
	Use:           "unilog",
	Short:         "Write, rotate and read unilog logfiles",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var pipeCmd = &cobra.Command{
	Use:   "pipe",
	Short: "Log every line of stdin",
	Long:  `Read stdin line by line and log each line through a target built from the config file and overrides.`,
	RunE:  runPipe,
}

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Run the rotate processors once",
	Long:  `Build the configured target, run every rotate processor against the current time and exit.`,
	RunE:  runRotate,
}

var catCmd = &cobra.Command{
	Use:   "cat <file>...",
	Short: "Print logfiles, decompressing rotated .zst files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCat,
}

func init() {
	for _, c := range []*cobra.Command{pipeCmd, rotateCmd} {
		c.Flags().StringVarP(&configPath, "config", "c", "", "TOML file with a [unilog] table")
		c.Flags().StringArrayVarP(&overrides, "set", "s", nil, "key=value override, repeatable")
	}
	pipeCmd.Flags().StringVar(&severity, "severity", "info", "severity of every line")
	rootCmd.AddCommand(pipeCmd, rotateCmd, catCmd)
}

var severities = map[string]unilog.Severity{
	"none":      unilog.SeverityNone,
	"emergency": unilog.SeverityEmergency,
	"notice":    unilog.SeverityNotice,
	"info":      unilog.SeverityInfo,
	"message":   unilog.SeverityMessage,
	"debug":     unilog.SeverityDebug,
	"trace":     unilog.SeverityTrace,
	"detail":    unilog.SeverityDetail,
	"warning":   unilog.SeverityWarning,
	"error":     unilog.SeverityError,
	"critical":  unilog.SeverityCritical,
	"fatal":     unilog.SeverityFatal,
}

func loadConfig() (*unilog.Config, error) {
	cfg := unilog.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = unilog.NewConfigFromFile(configPath); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyOverride(overrides...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runPipe(cmd *cobra.Command, args []string) error {
	sev, ok := severities[strings.ToLower(severity)]
	if !ok {
		return fmt.Errorf("unknown severity: %s", severity)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	target, err := unilog.NewTarget(cfg)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if !target.LogText(sev, scanner.Text()) {
			break
		}
	}
	scanErr := scanner.Err()

	if err := target.Shutdown(10 * time.Second); err != nil {
		return err
	}
	stats := target.Stats()
	fmt.Fprintf(os.Stderr, "logged %d events, %d rotations, %d errors\n",
		stats.EventsProcessed, stats.Rotations, stats.Errors)
	return scanErr
}

func runRotate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	target, err := unilog.NewTarget(cfg)
	if err != nil {
		return err
	}
	target.RotateNow()
	if err := target.Shutdown(10 * time.Second); err != nil {
		return err
	}
	stats := target.Stats()
	fmt.Printf("renamed %d, compressed %d, removed %d\n",
		stats.FilesRenamed, stats.FilesCompressed, stats.FilesRemoved)
	if lastErr := target.LastError(); lastErr != nil {
		return lastErr
	}
	return nil
}

func runCat(cmd *cobra.Command, args []string) error {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for _, path := range args {
		if strings.HasSuffix(path, ".zst") {
			if err := unilog.ReadCompressed(path, w); err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "unilog: %v\n", err)
		os.Exit(1)
	}
}
