package storage

import (
	"errors"
	"log"

	"civicalert/backend/internal/models"

	"gorm.io/gorm"
)

func (s *Service) CreateReport(report *models.Report) error {
	return s.DB.Create(report).Error
}

func (s *Service) GetReportsByUser(userID string) ([]models.Report, error) {
	var reports []models.Report
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&reports).Error
	if err != nil {
		log.Printf("ERROR: Failed to list reports for user %s: %v", userID, err)
		return nil, err
	}
	return reports, nil
}

func (s *Service) GetReportByID(id string) (*models.Report, error) {
	var report models.Report
	err := s.DB.Where("id = ?", id).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) UpdateReport(report *models.Report) error {
	return s.DB.Save(report).Error
}

// DeleteReport removes a report; the second return value reports whether a
// row actually existed.
func (s *Service) DeleteReport(id string) (bool, error) {
	result := s.DB.Where("id = ?", id).Delete(&models.Report{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateReportStatus sets the status and returns the updated report, or
// (nil, nil) when the id does not resolve.
func (s *Service) UpdateReportStatus(id, status string) (*models.Report, error) {
	result := s.DB.Model(&models.Report{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetReportByID(id)
}
