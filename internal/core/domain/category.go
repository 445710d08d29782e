package domain

// Category groups transactions for budgeting and spending insights.
type Category struct {
	CategoryID  string `json:"categoryID"` // Primary Key (UUID)
	UserID      string `json:"userID"`     // FK -> users.user_id (Not Null)
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"` // Hex color code, may be empty
	IsExpense   bool   `json:"isExpense"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
