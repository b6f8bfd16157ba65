// Package traveller stores additional travellers attached to a customer profile.
package traveller

import (
	"context"
	"errors"

	profilerepo "github.com/janisto/travel-profiles/internal/repository/profile"
)

var (
	// ErrNotFound is returned when no traveller has the requested id.
	ErrNotFound = errors.New("traveller not found")

	// ErrOwnerNotFound is returned when the referenced customer profile does not exist.
	ErrOwnerNotFound = errors.New("owning profile not found")
)

// Traveller is a companion record owned by exactly one profile. Rows are removed with
// their profile.
//
// Both tables carry a CustomerID field, so Profile must be tagged belongsTo; otherwise
// GORM resolves it as has-one and AutoMigrate never creates the foreign key.
type Traveller struct {
	AdditionalID   int64                `gorm:"column:additional_id;primaryKey;autoIncrement"`
	CustomerID     int64                `gorm:"column:customer_id;not null;index"`
	AdditionalName string               `gorm:"column:additional_name;size:255;not null"`
	Profile        *profilerepo.Profile `gorm:"belongsTo;foreignKey:CustomerID;references:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Traveller) TableName() string {
	return "additional_travellers"
}

// Repository persists travellers.
type Repository interface {
	List(ctx context.Context) ([]Traveller, error)
	Get(ctx context.Context, additionalID int64) (*Traveller, error)
	// ListByCustomer returns the customer's travellers; an empty result is not an error.
	ListByCustomer(ctx context.Context, customerID int64) ([]Traveller, error)
	// Add inserts t; the store assigns AdditionalID.
	Add(ctx context.Context, t *Traveller) (*Traveller, error)
	// Update locates the row by t.AdditionalID and overwrites its owner and name.
	Update(ctx context.Context, t *Traveller) (*Traveller, error)
	// Delete removes the traveller and returns the removed row.
	Delete(ctx context.Context, additionalID int64) (*Traveller, error)
}
