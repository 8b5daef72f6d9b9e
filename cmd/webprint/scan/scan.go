package scan

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"webprint/internal/utils"
	"webprint/pkg/hooks"
	"webprint/pkg/logger"
	"webprint/pkg/scanner"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds the scan command configuration
type Config struct {
	TargetsFile  string
	OutputDir    string
	ConfigName   string
	Verbose      bool
	Progress     bool
	Notify       bool
	ReportFields string
	ReportFile   string
}

// App represents the scan application
type App struct {
	config *Config
	logger *logger.Logger
}

// NewApp creates a new scan application instance
func NewApp(config *Config) (*App, error) {
	logLevel := logrus.InfoLevel
	if config.Verbose {
		logLevel = logrus.DebugLevel
	}

	return &App{
		config: config,
		logger: logger.NewLogger(logLevel),
	}, nil
}

// Run executes the scan command
func (a *App) Run(ctx context.Context) error {
	driverConfig, err := utils.LoadDriverConfig(a.config.ConfigName)
	if err != nil {
		return fmt.Errorf("failed to load tool config: %w", err)
	}

	postHooks, err := a.preparePostHooks()
	if err != nil {
		return err
	}

	driver, err := scanner.NewDriver(
		scanner.WithTool(driverConfig.Tool),
		scanner.WithOutputDir(a.config.OutputDir),
		scanner.WithProgress(a.config.Progress),
		scanner.WithPostHooks(postHooks),
		scanner.WithLogger(a.logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create scan driver: %w", err)
	}

	summary, err := driver.Run(ctx, a.config.TargetsFile)
	if err != nil {
		return err
	}

	a.logger.WithFields(logger.Fields{
		"total":      summary.Total,
		"failed":     summary.Failed,
		"output_dir": summary.OutputDir,
	}).Info("All targets processed")
	return nil
}

// preparePostHooks registers the run-specific hooks and returns the hook
// names to execute after the batch
func (a *App) preparePostHooks() ([]string, error) {
	var postHooks []string

	if a.config.ReportFields != "" || a.config.ReportFile != "" {
		if a.config.ReportFields == "" || a.config.ReportFile == "" {
			return nil, fmt.Errorf("--report-fields and --report-file must be used together")
		}
		aggregateHook := hooks.NewAggregateHook(hooks.AggregateHookConfig{
			Fields:     splitFields(a.config.ReportFields),
			OutputFile: a.config.ReportFile,
		})
		scanner.RegisterPostHook(aggregateHook.Name(), aggregateHook)
		postHooks = append(postHooks, aggregateHook.Name())
	}

	if a.config.Notify {
		postHooks = append(postHooks, "notification")
	}

	return postHooks, nil
}

func splitFields(fields string) []string {
	var out []string
	for _, f := range strings.Split(fields, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// getConfigDescription attempts to extract a description from a YAML config file
func getConfigDescription(configPath string) string {
	type ConfigMeta struct {
		Description string `yaml:"description,omitempty"`
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return ""
	}

	var meta ConfigMeta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return ""
	}

	return meta.Description
}

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	config := &Config{}

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Fingerprint every target in a target list",
		Long:  `Run the configured fingerprinting tool once per target in the list, writing one JSON scan record per target into the output directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			app, err := NewApp(config)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			// Setup graceful shutdown
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				sig := <-sigChan
				app.logger.WithFields(logger.Fields{
					"signal": sig.String(),
				}).Info("Received shutdown signal")
				cancel()
			}()

			return app.Run(ctx)
		},
	}

	scanCmd.Flags().StringVarP(&config.TargetsFile, "targets", "t", "", "File containing newline-delimited target URLs (required)")
	scanCmd.Flags().StringVarP(&config.OutputDir, "output-dir", "d", "./scans", "Directory to write per-target scan records to")
	scanCmd.Flags().StringVar(&config.ConfigName, "config", "whatweb", "Scan tool configuration name")
	scanCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Enable verbose logging")
	scanCmd.Flags().BoolVar(&config.Progress, "progress", true, "Show a progress bar while scanning")
	scanCmd.Flags().BoolVar(&config.Notify, "notify", false, "Send a Discord notification when the batch completes")
	scanCmd.Flags().StringVar(&config.ReportFields, "report-fields", "", "Comma-delimited plugin fields to aggregate into a CSV report after the batch")
	scanCmd.Flags().StringVar(&config.ReportFile, "report-file", "", "Destination CSV file for the post-batch report")

	scanCmd.MarkFlagRequired("targets")

	return scanCmd
}

// NewListConfigsCommand creates the list-configs command
func NewListConfigsCommand() *cobra.Command {
	listConfigsCmd := &cobra.Command{
		Use:   "list-configs",
		Short: "List available scan tool configurations",
		Long:  `List all available scan tool configuration files and their descriptions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			configPath := utils.GetConfigPath()

			files, err := os.ReadDir(configPath)
			if err != nil {
				return fmt.Errorf("failed to read config directory %s: %w", configPath, err)
			}

			fmt.Println("Available Configurations:")
			fmt.Println("========================")

			for _, file := range files {
				if !strings.HasSuffix(file.Name(), ".yaml") && !strings.HasSuffix(file.Name(), ".yml") {
					continue
				}

				configFile := filepath.Join(configPath, file.Name())
				description := getConfigDescription(configFile)

				fmt.Printf("\n• %s\n", strings.TrimSuffix(file.Name(), filepath.Ext(file.Name())))
				fmt.Printf("  File: %s\n", file.Name())
				if description != "" {
					fmt.Printf("  Description: %s\n", description)
				}
			}

			if len(files) == 0 {
				fmt.Printf("No configuration files found in %s\n", configPath)
			}

			return nil
		},
	}

	return listConfigsCmd
}

// NewListHooksCommand creates the list-hooks command
func NewListHooksCommand() *cobra.Command {
	listHooksCmd := &cobra.Command{
		Use:   "list-hooks",
		Short: "List available post hooks",
		Long:  `List all available post-scan hooks and their descriptions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			InitHooks()

			available := scanner.ListAvailableHooks()

			fmt.Println("Available Hooks:")
			fmt.Println("===============")

			for _, hook := range available {
				fmt.Printf("\n• %s\n", hook.Name)
				if hook.Description != "" {
					fmt.Printf("  Description: %s\n", hook.Description)
				}
			}

			if len(available) == 0 {
				fmt.Println("No hooks available")
			}

			return nil
		},
	}

	return listHooksCmd
}

// InitHooks registers the hooks that need no run-specific configuration
func InitHooks() {
	if scanner.GetPostHook("notification") == nil {
		scanner.RegisterPostHook("notification", hooks.NewNotifierHook())
	}
}
