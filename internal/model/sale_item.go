package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItem is one product line within a sales session. A product appears at
// most once per session; selling more of it means editing the existing line.
type SaleItem struct {
	BaseModel
	SessionID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_session_product" json:"session_id"`
	Session   *DailySalesSession `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"session,omitempty"`

	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_session_product" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	QuantitySold decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity_sold"`

	// Unit price captured at sale time, independent of the product's
	// current supplier price.
	PriceAtSale decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_at_sale"`

	// Always recomputed as QuantitySold * PriceAtSale on save; caller input
	// for this field is ignored.
	Subtotal decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
}

// ComputeSubtotal derives the line subtotal from quantity and unit price.
func (i *SaleItem) ComputeSubtotal() {
	i.Subtotal = i.QuantitySold.Mul(i.PriceAtSale).Round(2)
}
