// Package profile implements the customer profile use cases: CRUD, login and
// personal detail projections, password changes, registration, login and profile images.
package profile

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/janisto/travel-profiles/internal/platform/password"
	"github.com/janisto/travel-profiles/internal/platform/storage"
	"github.com/janisto/travel-profiles/internal/platform/timeutil"
	profilerepo "github.com/janisto/travel-profiles/internal/repository/profile"
)

// Service errors
var (
	ErrNotFound           = profilerepo.ErrNotFound
	ErrInvalidData        = errors.New("invalid data")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrImageRequired      = errors.New("image file is required")
	ErrNameRequired       = errors.New("profile has no name")
	ErrNoImage            = errors.New("profile has no image")
)

// Profile is the stored profile record.
type Profile = profilerepo.Profile

// LoginDetails is the contact projection of a profile.
type LoginDetails struct {
	CustomerID   int64
	EmailID      string
	MobileNumber int64
}

// LoginUpdate changes contact fields; nil fields keep their stored value.
type LoginUpdate struct {
	EmailID      *string
	MobileNumber *int64
}

// PersonalDetails is the personal projection of a profile.
type PersonalDetails struct {
	CustomerID    int64
	Name          string
	Dob           timeutil.Date
	Gender        string
	MaritalStatus string
}

// PasswordChange reports a completed password change. Hash stays server side.
type PasswordChange struct {
	CustomerID int64
	Hash       string
	ChangedAt  time.Time
}

// Registration is a sign-up request carrying a plaintext password.
type Registration struct {
	Name     string
	EmailID  string
	Password string
}

// Registered is the public result of a sign-up; it never carries the password or hash.
type Registered struct {
	CustomerID int64
	EmailID    string
	Name       string
}

// Credentials identify a customer at login.
type Credentials struct {
	EmailID  string
	Password string
}

// ImageUpload is an uploaded image stream.
type ImageUpload struct {
	Reader      io.Reader
	ContentType string
	Size        int64
}

// ImageRef names the stored image of a profile.
type ImageRef struct {
	CustomerID int64
	Image      string
}

// Service defines profile operations.
type Service interface {
	List(ctx context.Context) ([]Profile, error)
	Get(ctx context.Context, customerID int64) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Add(ctx context.Context, p *Profile) (*Profile, error)
	Update(ctx context.Context, p *Profile) (*Profile, error)
	Delete(ctx context.Context, customerID int64) (*Profile, error)

	GetLogin(ctx context.Context, customerID int64) (*LoginDetails, error)
	UpdateLogin(ctx context.Context, customerID int64, in LoginUpdate) (*LoginDetails, error)
	GetDetails(ctx context.Context, customerID int64) (*PersonalDetails, error)
	UpdateDetails(ctx context.Context, customerID int64, in PersonalDetails) (*PersonalDetails, error)

	ChangePassword(ctx context.Context, customerID int64, oldPassword, newPassword string) (*PasswordChange, error)
	Register(ctx context.Context, in Registration) (*Registered, error)
	Login(ctx context.Context, in Credentials) (string, error)

	UpdateImage(ctx context.Context, customerID int64, upload *ImageUpload) (*ImageRef, error)
	ViewImage(ctx context.Context, customerID int64) (*ImageRef, error)
	OpenImage(ctx context.Context, customerID int64) (io.ReadCloser, string, error)
}

// TokenIssuer signs login tokens.
type TokenIssuer interface {
	Issue(customerID int64, name string) (string, error)
}

// Manager implements Service on a profile repository.
type Manager struct {
	repo   profilerepo.Repository
	images storage.ImageStore
	hasher *password.Hasher
	tokens TokenIssuer
	now    func() time.Time
}

var _ Service = (*Manager)(nil)

// NewManager wires the profile use cases to their collaborators.
func NewManager(
	repo profilerepo.Repository,
	images storage.ImageStore,
	hasher *password.Hasher,
	tokens TokenIssuer,
) *Manager {
	return &Manager{
		repo:   repo,
		images: images,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidData):
		return "invalid_data"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrImageRequired), errors.Is(err, ErrNoImage):
		return "image_missing"
	case errors.Is(err, ErrNameRequired):
		return "name_missing"
	default:
		return "internal_error"
	}
}
