package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "product:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Product"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	// Product management
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	// Supplier management
	{Code: "supplier:view", Name: "View Supplier"},
	{Code: "supplier:create", Name: "Create Supplier"},
	{Code: "supplier:update", Name: "Update Supplier"},
	{Code: "supplier:delete", Name: "Delete Supplier"},
	// Stock movements
	{Code: "movement:view", Name: "View Stock Movement"},
	{Code: "movement:create", Name: "Record Stock Movement"},
	{Code: "movement:delete", Name: "Delete Stock Movement"},
	// Sales sessions and items
	{Code: "sale:view", Name: "View Sales"},
	{Code: "sale:create", Name: "Record Sale Item"},
	{Code: "sale:delete", Name: "Delete Sale Item"},
	{Code: "session:create", Name: "Open Sales Session"},
	{Code: "session:update", Name: "Update Sales Session"},
	{Code: "session:delete", Name: "Delete Sales Session"},
	// Stock alerts
	{Code: "alert:view", Name: "View Stock Alert"},
	{Code: "alert:resolve", Name: "Resolve Stock Alert"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}

// Privileges granted to each role. OWNER receives every privilege; the two
// lists below are consulted during seeding.
var (
	AdminPrivilegeCodes = []string{
		"product:view", "product:create", "product:update", "product:delete",
		"supplier:view", "supplier:create", "supplier:update", "supplier:delete",
		"movement:view", "movement:create", "movement:delete",
		"sale:view", "sale:create", "sale:delete",
		"session:create", "session:update",
		"alert:view", "alert:resolve",
		"dashboard:view",
	}
	EmployeePrivilegeCodes = []string{
		"product:view",
		"supplier:view",
		"sale:view", "sale:create",
		"session:create",
		"alert:view",
		"dashboard:view",
	}
)
