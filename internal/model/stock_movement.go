package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType distinguishes manual stock entries from withdrawals.
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// StockMovement is the audit record of one manual stock adjustment.
// Movements are never edited after creation; undoing one goes through
// delete-reversal in the movement service.
type StockMovement struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`

	Type MovementType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=IN OUT"`

	// The quantity actually applied to stock. For a clamped OUT this is the
	// clamped amount, so delete-reversal restores the exact prior stock.
	Quantity decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`

	MovementDate time.Time `gorm:"autoCreateTime;index" json:"movement_date"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`

	RegisteredByID *uuid.UUID `gorm:"type:uuid" json:"registered_by_id,omitempty"`
	RegisteredBy   *User      `gorm:"foreignKey:RegisteredByID" json:"registered_by,omitempty"`
}

// SignedDelta is the effect this movement had on product stock.
func (m *StockMovement) SignedDelta() decimal.Decimal {
	if m.Type == MovementOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
