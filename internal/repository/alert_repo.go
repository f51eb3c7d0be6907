package repository

import (
	"errors"
	"time"

	"go-cafe-central/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockAlertRepository interface {
	Create(tx *gorm.DB, alert *model.StockAlert) error
	FindByID(id uuid.UUID) (*model.StockAlert, error)
	FindAll(resolved *bool) ([]model.StockAlert, error)
	FindActiveByProduct(tx *gorm.DB, productID uuid.UUID) (*model.StockAlert, error)
	HasActiveForProduct(tx *gorm.DB, productID uuid.UUID) (bool, error)
	ResolveAllForProduct(tx *gorm.DB, productID uuid.UUID, at time.Time) error
	Update(alert *model.StockAlert) error
	CountActive() (int64, error)
}

type stockAlertRepo struct {
	db *gorm.DB
}

func NewStockAlertRepo(db *gorm.DB) StockAlertRepository {
	return &stockAlertRepo{db}
}

// EnsureAlertIndexes creates the partial unique index that enforces the
// single-active-alert invariant at the database level. Partial because a
// product accumulates many resolved alerts over its lifetime.
func EnsureAlertIndexes(db *gorm.DB) error {
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_stock_alerts_active ON stock_alerts (product_id) WHERE NOT resolved",
	).Error
}

func (r *stockAlertRepo) Create(tx *gorm.DB, alert *model.StockAlert) error {
	return tx.Create(alert).Error
}

func (r *stockAlertRepo) FindByID(id uuid.UUID) (*model.StockAlert, error) {
	var alert model.StockAlert
	err := r.db.Preload("Product").Preload("ResolvedByUser").First(&alert, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *stockAlertRepo) FindAll(resolved *bool) ([]model.StockAlert, error) {
	var alerts []model.StockAlert
	q := r.db.Preload("Product").Preload("ResolvedByUser").Order("alert_timestamp DESC")
	if resolved != nil {
		q = q.Where("resolved = ?", *resolved)
	}
	err := q.Find(&alerts).Error
	return alerts, err
}

func (r *stockAlertRepo) FindActiveByProduct(tx *gorm.DB, productID uuid.UUID) (*model.StockAlert, error) {
	var alert model.StockAlert
	err := tx.Where("product_id = ? AND NOT resolved", productID).First(&alert).Error
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *stockAlertRepo) HasActiveForProduct(tx *gorm.DB, productID uuid.UUID) (bool, error) {
	_, err := r.FindActiveByProduct(tx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ResolveAllForProduct marks every unresolved alert of the product resolved
// with no human attribution (system resolution on a stock increase).
func (r *stockAlertRepo) ResolveAllForProduct(tx *gorm.DB, productID uuid.UUID, at time.Time) error {
	return tx.Model(&model.StockAlert{}).
		Where("product_id = ? AND NOT resolved", productID).
		Updates(map[string]interface{}{
			"resolved":            true,
			"resolved_timestamp":  at,
			"resolved_by_user_id": nil,
		}).Error
}

// Update persists only the resolution fields, so a preloaded Product
// association is never written back as a side effect.
func (r *stockAlertRepo) Update(alert *model.StockAlert) error {
	return r.db.Model(&model.StockAlert{}).
		Where("id = ?", alert.ID).
		Updates(map[string]interface{}{
			"resolved":            alert.Resolved,
			"resolved_by_user_id": alert.ResolvedByUserID,
			"resolved_timestamp":  alert.ResolvedTimestamp,
			"updated_by":          alert.UpdatedBy,
		}).Error
}

func (r *stockAlertRepo) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.StockAlert{}).Where("NOT resolved").Count(&count).Error
	return count, err
}
