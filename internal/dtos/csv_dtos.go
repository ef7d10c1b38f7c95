package dtos

// BuyerCSVRow is one line of the import/export file. Every cell is text; the
// import pipeline does its own coercion so bad cells become row errors.
type BuyerCSVRow struct {
	FullName     string `csv:"fullName"`
	Email        string `csv:"email"`
	Phone        string `csv:"phone"`
	City         string `csv:"city"`
	PropertyType string `csv:"propertyType"`
	BHK          string `csv:"bhk"`
	Purpose      string `csv:"purpose"`
	BudgetMin    string `csv:"budgetMin"`
	BudgetMax    string `csv:"budgetMax"`
	Timeline     string `csv:"timeline"`
	Source       string `csv:"source"`
	Notes        string `csv:"notes"`
	Tags         string `csv:"tags"`
	Status       string `csv:"status"`
	UpdatedAt    string `csv:"updatedAt"`
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResponse struct {
	Success  bool             `json:"success"`
	Inserted int              `json:"inserted"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
