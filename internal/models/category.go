package models

// Category represents a transaction category row.
type Category struct {
	CategoryID  string `db:"category_id"`
	UserID      string `db:"user_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Color       string `db:"color"` // Hex color for chart rendering, may be empty
	IsExpense   bool   `db:"is_expense"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
