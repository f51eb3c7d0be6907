package repository

import (
	"go-cafe-central/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleItemRepository interface {
	Save(tx *gorm.DB, item *model.SaleItem) error
	FindByID(id uuid.UUID) (*model.SaleItem, error)
	FindBySessionAndProduct(tx *gorm.DB, sessionID, productID uuid.UUID) (*model.SaleItem, error)
	FindBySession(sessionID uuid.UUID) ([]model.SaleItem, error)
	Delete(tx *gorm.DB, id uuid.UUID) error
	CountByProduct(productID uuid.UUID) (int64, error)
}

type saleItemRepo struct {
	db *gorm.DB
}

func NewSaleItemRepo(db *gorm.DB) SaleItemRepository {
	return &saleItemRepo{db}
}

func (r *saleItemRepo) Save(tx *gorm.DB, item *model.SaleItem) error {
	return tx.Save(item).Error
}

func (r *saleItemRepo) FindByID(id uuid.UUID) (*model.SaleItem, error) {
	var item model.SaleItem
	err := r.db.Preload("Product").Preload("Session").First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *saleItemRepo) FindBySessionAndProduct(tx *gorm.DB, sessionID, productID uuid.UUID) (*model.SaleItem, error) {
	var item model.SaleItem
	err := tx.Where("session_id = ? AND product_id = ?", sessionID, productID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *saleItemRepo) FindBySession(sessionID uuid.UUID) ([]model.SaleItem, error) {
	var items []model.SaleItem
	err := r.db.Preload("Product").Where("session_id = ?", sessionID).Find(&items).Error
	return items, err
}

// Delete removes the row for real. A soft-deleted line would keep occupying
// the unique (session, product) slot and block re-adding the product.
func (r *saleItemRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Unscoped().Delete(&model.SaleItem{}, "id = ?", id).Error
}

// CountByProduct backs the referential protection on product deletion.
func (r *saleItemRepo) CountByProduct(productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.SaleItem{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}
