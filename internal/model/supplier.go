package model

// Supplier is a product vendor. Deleting a supplier leaves its products in
// place with supplier_id set to null.
type Supplier struct {
	BaseModel
	Name          string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	ContactPerson string `gorm:"type:varchar(100)" json:"contact_person,omitempty"`
	Phone         string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email         string `gorm:"type:varchar(255)" json:"email,omitempty" validate:"omitempty,email"`
	Address       string `gorm:"type:text" json:"address,omitempty"`

	// Free text, e.g. "Monday, Wednesday, Friday".
	DeliveryDays string `gorm:"type:varchar(255)" json:"delivery_days,omitempty"`

	Products []Product `gorm:"foreignKey:SupplierID" json:"products,omitempty"`
}
