package handlers

import (
	stderrors "errors"

	"webprint/internal/services"
	"webprint/pkg/errors"
	"webprint/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ReportHandler struct {
	reportService services.ReportServiceMethods
	logger        *logger.Logger
}

func NewReportHandler(reportService services.ReportServiceMethods) *ReportHandler {
	return &ReportHandler{reportService: reportService, logger: logger.NewLogger(logrus.InfoLevel)}
}

func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", logger.Fields{"error": err})
		c.JSON(400, gin.H{"error": "Invalid request payload"})
		return
	}

	if req.LogFormat == "" {
		req.LogFormat = "json"
	}

	records, err := h.reportService.GenerateReport(req.InputFolder, req.LogFormat, req.Fields, req.OutputFile)
	if err != nil {
		h.logger.Error("Failed to generate report:", logger.Fields{"error": err})

		var inputErr *errors.InputError
		var parseErr *errors.ParseError
		switch {
		case stderrors.Is(err, errors.ErrUnsupportedFormat):
			c.JSON(400, gin.H{"error": err.Error()})
		case stderrors.As(err, &inputErr), stderrors.As(err, &parseErr):
			c.JSON(422, gin.H{"error": err.Error()})
		default:
			c.JSON(500, gin.H{"error": "Failed to generate report"})
		}
		return
	}

	c.JSON(200, ReportResponse{Records: records, OutputFile: req.OutputFile})
}
