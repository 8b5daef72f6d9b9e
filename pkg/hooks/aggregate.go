package hooks

import (
	"webprint/pkg/logger"
	"webprint/pkg/report"
	"webprint/pkg/scanner"

	"github.com/sirupsen/logrus"
)

type AggregateHookConfig struct {
	Fields     []string
	OutputFile string
}

// AggregateHook turns a finished scan batch straight into a CSV report
type AggregateHook struct {
	Config AggregateHookConfig
	logger *logger.Logger
}

func NewAggregateHook(config AggregateHookConfig) *AggregateHook {
	return &AggregateHook{
		Config: config,
		logger: logger.NewLogger(logrus.InfoLevel),
	}
}

func (h *AggregateHook) Name() string {
	return "aggregate_report"
}

func (h *AggregateHook) Description() string {
	return "Aggregates the batch's scan records into a CSV report of the configured plugin fields"
}

func (h *AggregateHook) PostHook(ctx scanner.HookContext) error {
	aggregator := report.NewAggregator(report.WithLogger(h.logger))

	records, err := aggregator.Aggregate(ctx.OutputDir, report.FormatJSON, h.Config.Fields, h.Config.OutputFile)
	if err != nil {
		return err
	}

	h.logger.WithFields(logger.Fields{
		"records":     records,
		"output_file": h.Config.OutputFile,
	}).Info("Post-scan report generated")

	return nil
}
