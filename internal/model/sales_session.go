package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailySalesSession groups the sale items of one calendar day. The date is
// unique: there is exactly one session per day.
type DailySalesSession struct {
	BaseModel
	SaleDate time.Time `gorm:"type:date;uniqueIndex;not null" json:"sale_date" validate:"required"`

	RegisteredByID *uuid.UUID `gorm:"type:uuid" json:"registered_by_id,omitempty"`
	RegisteredBy   *User      `gorm:"foreignKey:RegisteredByID" json:"registered_by,omitempty"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	Items []SaleItem `gorm:"foreignKey:SessionID" json:"items,omitempty"`
}

func (DailySalesSession) TableName() string { return "daily_sales_sessions" }

// TotalRevenue sums the subtotals of the loaded items. It is always derived,
// never stored.
func (s *DailySalesSession) TotalRevenue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Subtotal)
	}
	return total
}
