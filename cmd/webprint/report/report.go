package report

import (
	"fmt"
	"strings"

	"webprint/pkg/logger"
	"webprint/pkg/report"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Config holds the report command configuration
type Config struct {
	InputFolder  string
	LogFormat    string
	PluginFields string
	OutputFile   string
	Verbose      bool
}

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	config := &Config{}

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate scan records into a CSV report",
		Long:  `Read every scan record in the input folder, extract the requested plugin fields for each record and write a single CSV report with one row per scanned target`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			logLevel := logrus.InfoLevel
			if config.Verbose {
				logLevel = logrus.DebugLevel
			}
			appLogger := logger.NewLogger(logLevel)

			fields := splitFields(config.PluginFields)

			aggregator := report.NewAggregator(report.WithLogger(appLogger))
			records, err := aggregator.Aggregate(
				config.InputFolder,
				report.Format(config.LogFormat),
				fields,
				config.OutputFile,
			)
			if err != nil {
				appLogger.WithError(err).Error("Report aggregation failed")
				return err
			}

			fmt.Printf("Wrote %d records to %s\n", records, config.OutputFile)
			return nil
		},
	}

	reportCmd.Flags().StringVarP(&config.InputFolder, "input-folder", "i", "", "Folder containing the scan tool's log output (required)")
	reportCmd.Flags().StringVarP(&config.LogFormat, "log-format", "f", "json", "Scan tool log format to parse (only json is supported)")
	reportCmd.Flags().StringVarP(&config.PluginFields, "plugin-fields", "p", "", "Comma-delimited plugin fields to extract, e.g. HTTPServer,IP,X-Powered-By (required)")
	reportCmd.Flags().StringVarP(&config.OutputFile, "output-file", "o", "", "Destination CSV file (required)")
	reportCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Enable verbose logging")

	reportCmd.MarkFlagRequired("input-folder")
	reportCmd.MarkFlagRequired("plugin-fields")
	reportCmd.MarkFlagRequired("output-file")

	return reportCmd
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
