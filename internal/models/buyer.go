package models

import (
	"time"

	"github.com/google/uuid"
)

type Buyer struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"ownerId"`
	FullName     string    `json:"fullName"`
	Email        *string   `json:"email"`
	Phone        string    `json:"phone"`
	City         string    `json:"city"`
	PropertyType string    `json:"propertyType"`
	BHK          *string   `json:"bhk"`
	Purpose      string    `json:"purpose"`
	BudgetMin    *float64  `json:"budgetMin"`
	BudgetMax    *float64  `json:"budgetMax"`
	Timeline     string    `json:"timeline"`
	Source       string    `json:"source"`
	Status       string    `json:"status"`
	Notes        *string   `json:"notes"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Clone returns a deep copy so snapshots survive later mutation.
func (b *Buyer) Clone() *Buyer {
	if b == nil {
		return nil
	}
	c := *b
	c.Email = clonePtr(b.Email)
	c.BHK = clonePtr(b.BHK)
	c.BudgetMin = clonePtr(b.BudgetMin)
	c.BudgetMax = clonePtr(b.BudgetMax)
	c.Notes = clonePtr(b.Notes)
	if b.Tags != nil {
		c.Tags = append([]string(nil), b.Tags...)
	}
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// BuyerFilter holds the list/export filters. Empty fields are ignored.
type BuyerFilter struct {
	City         string
	PropertyType string
	Status       string
	Timeline     string
	Query        string
}
