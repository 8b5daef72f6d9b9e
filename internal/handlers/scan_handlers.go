package handlers

import (
	"webprint/internal/models"
	"webprint/internal/services"
	"webprint/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ScanHandler struct {
	scanService services.ScanServiceMethods
	logger      *logger.Logger
}

func NewScanHandler(scanService services.ScanServiceMethods) *ScanHandler {
	return &ScanHandler{scanService: scanService, logger: logger.NewLogger(logrus.InfoLevel)}
}

func (h *ScanHandler) StartScan(c *gin.Context) {
	var scanRequest ScanRequest
	if err := c.ShouldBindJSON(&scanRequest); err != nil {
		h.logger.Error("Failed to bind JSON:", logger.Fields{"error": err})
		c.JSON(400, gin.H{"error": "Invalid request payload"})
		return
	}

	scanModel := models.Scan{
		TargetsFile: scanRequest.TargetsFile,
		ConfigName:  scanRequest.ConfigName,
		OutputDir:   scanRequest.OutputDir,
	}

	h.logger.Info("Starting scan", logger.Fields{
		"targets_file": scanModel.TargetsFile,
		"config_name":  scanModel.ConfigName,
	})
	id, err := h.scanService.StartScan(&scanModel)
	if err != nil {
		h.logger.Error("Failed to start scan:", logger.Fields{"error": err})
		c.JSON(500, gin.H{"error": "Failed to start scan"})
		return
	}
	c.JSON(200, ScanResponse{ScanID: id})
}

func (h *ScanHandler) GetScanByUUID(c *gin.Context) {
	scanID := c.Param("id")
	scan, err := h.scanService.GetScanByUUID(scanID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(404, gin.H{"error": "Scan not found"})
			return
		}
		h.logger.Error("Failed to get scan:", logger.Fields{"error": err})
		c.JSON(500, gin.H{"error": "Failed to get scan"})
		return
	}
	c.JSON(200, scan)
}

func (h *ScanHandler) ListScans(c *gin.Context) {
	scans, err := h.scanService.ListScans()
	if err != nil {
		h.logger.Error("Failed to list scans:", logger.Fields{"error": err})
		c.JSON(500, gin.H{"error": "Failed to list scans"})
		return
	}
	c.JSON(200, scans)
}

func (h *ScanHandler) DeleteScan(c *gin.Context) {
	scanID := c.Param("id")
	if err := h.scanService.DeleteScan(scanID); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(404, gin.H{"error": "Scan not found"})
			return
		}
		h.logger.Error("Failed to delete scan:", logger.Fields{"error": err})
		c.JSON(500, gin.H{"error": "Failed to delete scan"})
		return
	}
	c.JSON(200, gin.H{"deleted": scanID})
}
