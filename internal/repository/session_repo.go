package repository

import (
	"time"

	"go-cafe-central/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SalesSessionRepository interface {
	Create(session *model.DailySalesSession) error
	FindAll() ([]model.DailySalesSession, error)
	FindByID(id uuid.UUID) (*model.DailySalesSession, error)
	FindByDate(date time.Time) (*model.DailySalesSession, error)
	Update(session *model.DailySalesSession) error
	Delete(tx *gorm.DB, id uuid.UUID) error
}

type salesSessionRepo struct {
	db *gorm.DB
}

func NewSalesSessionRepo(db *gorm.DB) SalesSessionRepository {
	return &salesSessionRepo{db}
}

func (r *salesSessionRepo) Create(session *model.DailySalesSession) error {
	return r.db.Create(session).Error
}

func (r *salesSessionRepo) FindAll() ([]model.DailySalesSession, error) {
	var sessions []model.DailySalesSession
	err := r.db.Preload("RegisteredBy").Order("sale_date DESC").Find(&sessions).Error
	return sessions, err
}

func (r *salesSessionRepo) FindByID(id uuid.UUID) (*model.DailySalesSession, error) {
	var session model.DailySalesSession
	err := r.db.
		Preload("RegisteredBy").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.Product").
		First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByDate matches on the calendar date regardless of how the dialect
// serializes the stored timestamp.
func (r *salesSessionRepo) FindByDate(date time.Time) (*model.DailySalesSession, error) {
	var session model.DailySalesSession
	err := r.db.First(&session, "DATE(sale_date) = DATE(?)", date).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *salesSessionRepo) Update(session *model.DailySalesSession) error {
	return r.db.Save(session).Error
}

// Delete removes the row for real so the unique sale_date slot frees up.
func (r *salesSessionRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Unscoped().Delete(&model.DailySalesSession{}, "id = ?", id).Error
}
