package store

import (
	"context"

	"inventory-backend/internal/models"

	"gorm.io/gorm"
)

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// CreateReport inserts the report together with its lines.
func (s *Store) CreateReport(ctx context.Context, report *models.Report) error {
	for i := range report.StockReport {
		report.StockReport[i].Position = i
	}
	return translate("create report", s.conn(ctx).Create(report).Error)
}

// ListReports returns every report with its branch and lines, newest first.
func (s *Store) ListReports(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	err := s.conn(ctx).
		Preload("Branch").
		Preload("StockReport", orderedLines).
		Order("date_sent DESC").
		Find(&reports).Error
	if err != nil {
		return nil, translate("list reports", err)
	}
	return reports, nil
}

func (s *Store) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	err := s.conn(ctx).
		Preload("Branch").
		Preload("StockReport", orderedLines).
		First(&report, "id = ?", id).Error
	if err != nil {
		return nil, translate("get report", err)
	}
	return &report, nil
}
