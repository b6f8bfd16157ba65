// Package profile stores customer profiles.
package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/janisto/travel-profiles/internal/platform/timeutil"
)

// ErrNotFound is returned when no profile has the requested key.
var ErrNotFound = errors.New("profile not found")

// Profile is a customer account row. Password holds a bcrypt hash, never plaintext.
type Profile struct {
	CustomerID    int64         `gorm:"column:customer_id;primaryKey;autoIncrement"`
	Name          string        `gorm:"column:name;size:255"`
	Dob           timeutil.Date `gorm:"column:dob"`
	Gender        string        `gorm:"column:gender;size:32"`
	MaritalStatus string        `gorm:"column:marital_status;size:32"`
	MobileNumber  int64         `gorm:"column:mobile_number"`
	EmailID       string        `gorm:"column:email_id;size:255;index"`
	Password      string        `gorm:"column:password;size:255"`
	Image         string        `gorm:"column:image;size:255"`
}

func (Profile) TableName() string {
	return "profiles"
}

// mutableColumns are overwritten by Update. The primary key never changes.
var mutableColumns = []string{
	"name", "dob", "gender", "marital_status", "mobile_number", "email_id", "password", "image",
}

// Repository persists profiles.
type Repository interface {
	// List returns every profile ordered by customer id.
	List(ctx context.Context) ([]Profile, error)
	Get(ctx context.Context, customerID int64) (*Profile, error)
	// GetByEmail returns the lowest-id profile with the given email.
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	// Add inserts p; the store assigns CustomerID.
	Add(ctx context.Context, p *Profile) (*Profile, error)
	// Update overwrites every mutable column of the row identified by p.CustomerID.
	Update(ctx context.Context, p *Profile) (*Profile, error)
	// Delete removes the profile and returns the removed row.
	Delete(ctx context.Context, customerID int64) (*Profile, error)
}

// NormalizeEmail trims and lower-cases an address so lookups are case insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
