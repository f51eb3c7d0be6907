package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitOfMeasurement enumerates the units a product can be stocked in.
type UnitOfMeasurement string

const (
	UnitKilogram   UnitOfMeasurement = "kg"
	UnitPound      UnitOfMeasurement = "lb"
	UnitPiece      UnitOfMeasurement = "unit"
	UnitLiter      UnitOfMeasurement = "liter"
	UnitPack       UnitOfMeasurement = "pack"
	UnitGram       UnitOfMeasurement = "g"
	UnitMilliliter UnitOfMeasurement = "ml"
)

// Product is one inventory item of the cafe. CurrentStock is only ever
// mutated through the stock ledger so that alert evaluation always runs.
type Product struct {
	BaseModel
	Name        string            `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string            `gorm:"type:text" json:"description,omitempty"`
	Unit        UnitOfMeasurement `gorm:"type:varchar(10);not null" json:"unit" validate:"required,oneof=kg lb unit liter pack g ml"`

	CurrentStock      decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"current_stock"`
	MinimumStockLevel decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"minimum_stock_level"`

	// Purchase price from the supplier, floor for any sale price.
	SupplierPrice decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"price_per_unit_from_supplier"`

	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID;constraint:OnDelete:SET NULL" json:"supplier,omitempty"`

	// Refreshed on every stock mutation.
	LastUpdated time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}

// BelowMinimum reports whether the given stock level is at or below the
// product's minimum threshold.
func (p *Product) BelowMinimum(stock decimal.Decimal) bool {
	return stock.LessThanOrEqual(p.MinimumStockLevel)
}
