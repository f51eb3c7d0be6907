package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockAlert is a low-stock notification for one product. At most one
// unresolved alert may exist per product: the alert engine gates creation,
// and a partial unique index on (product_id) WHERE NOT resolved enforces
// it at the database level.
type StockAlert struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`

	AlertTimestamp      time.Time       `gorm:"autoCreateTime" json:"alert_timestamp"`
	CurrentStockAtAlert decimal.Decimal `gorm:"type:decimal(10,2)" json:"current_stock_at_alert"`

	Resolved bool `gorm:"not null;default:false" json:"resolved"`

	// Null when the resolution was incidental to a stock increase rather
	// than an explicit user action.
	ResolvedByUserID  *uuid.UUID `gorm:"type:uuid" json:"resolved_by_user_id,omitempty"`
	ResolvedByUser    *User      `gorm:"foreignKey:ResolvedByUserID" json:"resolved_by_user,omitempty"`
	ResolvedTimestamp *time.Time `json:"resolved_timestamp,omitempty"`
}

func (StockAlert) TableName() string { return "stock_alerts" }
