package services

import (
	"webprint/pkg/logger"
	"webprint/pkg/report"

	"github.com/sirupsen/logrus"
)

type ReportServiceMethods interface {
	GenerateReport(inputFolder string, format string, fields []string, outputFile string) (int, error)
}

type reportService struct {
	aggregator *report.Aggregator
	logger     *logger.Logger
}

func NewReportService() ReportServiceMethods {
	l := logger.NewLogger(logrus.InfoLevel)
	return &reportService{
		aggregator: report.NewAggregator(report.WithLogger(l)),
		logger:     l,
	}
}

func (s *reportService) GenerateReport(inputFolder string, format string, fields []string, outputFile string) (int, error) {
	return s.aggregator.Aggregate(inputFolder, report.Format(format), fields, outputFile)
}
