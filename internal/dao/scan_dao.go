package dao

import (
	"time"

	"webprint/internal/models"

	"gorm.io/gorm"
)

type ScanDAO interface {
	SaveScan(scan *models.Scan) error
	GetScanByUUID(uuid string) (*models.Scan, error)
	ListScans() ([]models.Scan, error)
	UpdateScanProgress(uuid string, recordCount int) error
	UpdateScanCompletion(uuid, status string, targetCount, failedCount int) error
	DeleteScan(uuid string) error
}

type scanDAO struct {
	db *gorm.DB
}

func NewScanDAO(db *gorm.DB) ScanDAO {
	return &scanDAO{db: db}
}

func (dao *scanDAO) SaveScan(scan *models.Scan) error {
	return dao.db.Create(scan).Error
}

// UpdateScanProgress bumps the record count of a running scan without
// touching the rest of the row, so it is safe to call concurrently with
// the completion update.
func (dao *scanDAO) UpdateScanProgress(uuid string, recordCount int) error {
	return dao.db.Model(&models.Scan{}).Where("uuid = ?", uuid).Updates(map[string]interface{}{
		"record_count": recordCount,
		"status":       "running",
		"updated_at":   time.Now().Unix(),
	}).Error
}

func (dao *scanDAO) UpdateScanCompletion(uuid, status string, targetCount, failedCount int) error {
	return dao.db.Model(&models.Scan{}).Where("uuid = ?", uuid).Updates(map[string]interface{}{
		"status":       status,
		"target_count": targetCount,
		"failed_count": failedCount,
		"updated_at":   time.Now().Unix(),
	}).Error
}

func (dao *scanDAO) GetScanByUUID(uuid string) (*models.Scan, error) {
	var scan models.Scan
	if err := dao.db.Where("uuid = ?", uuid).First(&scan).Error; err != nil {
		return nil, err
	}
	return &scan, nil
}

func (dao *scanDAO) ListScans() ([]models.Scan, error) {
	var scans []models.Scan
	if err := dao.db.Order("created_at desc").Limit(50).Find(&scans).Error; err != nil {
		return nil, err
	}
	return scans, nil
}

func (dao *scanDAO) DeleteScan(uuid string) error {
	result := dao.db.Where("uuid = ?", uuid).Delete(&models.Scan{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
