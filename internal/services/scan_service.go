package services

import (
	"context"
	"path/filepath"
	"time"

	"webprint/internal/dao"
	"webprint/internal/models"
	"webprint/internal/utils"
	"webprint/pkg/logger"
	"webprint/pkg/scanner"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ScanServiceMethods interface {
	StartScan(scan *models.Scan) (string, error)
	GetScanByUUID(id string) (*models.Scan, error)
	ListScans() ([]models.Scan, error)
	DeleteScan(id string) error
}

type scanService struct {
	scanDao dao.ScanDAO
	logger  *logger.Logger
}

func NewScanService(scanDao dao.ScanDAO) ScanServiceMethods {
	return &scanService{scanDao: scanDao, logger: logger.NewLogger(logrus.InfoLevel)}
}

func (s *scanService) StartScan(scan *models.Scan) (string, error) {
	id := uuid.New().String()
	scan.UUID = id
	scan.Status = "started"
	scan.CreatedAt = time.Now().Unix()
	scan.UpdatedAt = scan.CreatedAt

	if scan.ConfigName == "" {
		scan.ConfigName = "whatweb"
	}
	if scan.OutputDir == "" {
		scan.OutputDir = filepath.Join("./scans", id)
	}

	driverConfig, err := utils.LoadDriverConfig(scan.ConfigName)
	if err != nil {
		s.logger.Error("Failed to load tool config", logger.Fields{"error": err})
		return "", err
	}

	if err := utils.EnsureDirectoryExists(scan.OutputDir); err != nil {
		s.logger.Error("Failed to create output directory", logger.Fields{"error": err})
		return "", err
	}

	// Keep a per-batch log file next to the scan records
	batchLogger, err := logger.NewBatchLogger(id, scan.OutputDir, logrus.InfoLevel)
	if err != nil {
		s.logger.Error("Failed to create batch logger", logger.Fields{"error": err})
		return "", err
	}

	driver, err := scanner.NewDriver(
		scanner.WithTool(driverConfig.Tool),
		scanner.WithOutputDir(scan.OutputDir),
		scanner.WithLogger(batchLogger.Logger),
	)
	if err != nil {
		batchLogger.Close()
		s.logger.Error("Failed to create scan driver", logger.Fields{"error": err})
		return "", err
	}

	if err := s.scanDao.SaveScan(scan); err != nil {
		s.logger.Error("SaveScan failed", logger.Fields{"error": err})
		return "", err
	}

	ctx, cancel := context.WithCancel(context.Background())

	// The scan model is not shared with the goroutines; progress and
	// completion are written by ID through the DAO.
	go s.monitorRecords(ctx, id, scan.OutputDir)

	go func(scanID, targetsFile string) {
		defer func() {
			cancel()
			batchLogger.Close()
			if r := recover(); r != nil {
				s.logger.Error("panic in background scan", logger.Fields{"scan_id": scanID, "panic": r})
			}
		}()

		summary, runErr := driver.Run(ctx, targetsFile)
		status := "completed"
		if runErr != nil {
			s.logger.Error("Scan batch failed", logger.Fields{"scan_id": scanID, "error": runErr})
			status = "failed"
		} else {
			s.logger.Info("Scan batch completed", logger.Fields{"scan_id": scanID})
		}

		var targetCount, failedCount int
		if summary != nil {
			targetCount = summary.Total
			failedCount = summary.Failed
		}

		if err := s.scanDao.UpdateScanCompletion(scanID, status, targetCount, failedCount); err != nil {
			s.logger.Error("UpdateScanCompletion failed", logger.Fields{"error": err, "scan_id": scanID})
		}
	}(id, scan.TargetsFile)

	return id, nil
}

func (s *scanService) GetScanByUUID(id string) (*models.Scan, error) {
	return s.scanDao.GetScanByUUID(id)
}

func (s *scanService) ListScans() ([]models.Scan, error) {
	return s.scanDao.ListScans()
}

func (s *scanService) DeleteScan(id string) error {
	return s.scanDao.DeleteScan(id)
}
