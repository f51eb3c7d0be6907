package repository

import (
	"time"

	"go-cafe-central/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockMovementRepository interface {
	Create(tx *gorm.DB, movement *model.StockMovement) error
	FindByID(id uuid.UUID) (*model.StockMovement, error)
	FindAll() ([]model.StockMovement, error)
	FindByProduct(productID uuid.UUID) ([]model.StockMovement, error)
	Delete(tx *gorm.DB, id uuid.UUID) error
	GetDailyAggregates(startDate, endDate time.Time) ([]MovementAggregate, error)
}

// MovementAggregate is one day of IN/OUT totals for the dashboard chart.
type MovementAggregate struct {
	Date     string `json:"date"`
	Inbound  string `json:"inbound"`
	Outbound string `json:"outbound"`
}

type stockMovementRepo struct {
	db *gorm.DB
}

func NewStockMovementRepo(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db}
}

func (r *stockMovementRepo) Create(tx *gorm.DB, movement *model.StockMovement) error {
	return tx.Create(movement).Error
}

func (r *stockMovementRepo) FindByID(id uuid.UUID) (*model.StockMovement, error) {
	var movement model.StockMovement
	err := r.db.Preload("Product").Preload("RegisteredBy").First(&movement, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &movement, nil
}

func (r *stockMovementRepo) FindAll() ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.Preload("Product").Preload("RegisteredBy").Order("movement_date DESC").Find(&movements).Error
	return movements, err
}

func (r *stockMovementRepo) FindByProduct(productID uuid.UUID) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.Where("product_id = ?", productID).Order("movement_date DESC").Find(&movements).Error
	return movements, err
}

// Delete removes the audit row for real; its stock effect has already been
// reversed through the ledger by the caller.
func (r *stockMovementRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Unscoped().Delete(&model.StockMovement{}, "id = ?", id).Error
}

func (r *stockMovementRepo) GetDailyAggregates(startDate, endDate time.Time) ([]MovementAggregate, error) {
	var results []MovementAggregate

	rows, err := r.db.Model(&model.StockMovement{}).
		Select(`
			DATE(movement_date) as date,
			COALESCE(SUM(CASE WHEN type = 'IN' THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type = 'OUT' THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("movement_date BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(movement_date)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data MovementAggregate
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
