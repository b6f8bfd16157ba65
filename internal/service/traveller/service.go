// Package traveller implements the additional traveller use cases.
package traveller

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	applog "github.com/janisto/travel-profiles/internal/platform/logging"
	travellerrepo "github.com/janisto/travel-profiles/internal/repository/traveller"
)

// Service errors
var (
	ErrNotFound      = travellerrepo.ErrNotFound
	ErrOwnerNotFound = travellerrepo.ErrOwnerNotFound
	ErrInvalidData   = errors.New("invalid traveller data")
)

// Traveller is the stored traveller record.
type Traveller = travellerrepo.Traveller

// Service defines traveller operations.
type Service interface {
	List(ctx context.Context) ([]Traveller, error)
	Get(ctx context.Context, additionalID int64) (*Traveller, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]Traveller, error)
	Add(ctx context.Context, t *Traveller) (*Traveller, error)
	// Update replaces the traveller identified by t.AdditionalID. customerID names the
	// route the request arrived on and is only logged.
	Update(ctx context.Context, customerID int64, t *Traveller) (*Traveller, error)
	Delete(ctx context.Context, additionalID int64) (*Traveller, error)
}

// Manager implements Service on a traveller repository.
type Manager struct {
	repo travellerrepo.Repository
}

var _ Service = (*Manager)(nil)

func NewManager(repo travellerrepo.Repository) *Manager {
	return &Manager{repo: repo}
}

func (m *Manager) List(ctx context.Context) ([]Traveller, error) {
	return m.repo.List(ctx)
}

func (m *Manager) Get(ctx context.Context, additionalID int64) (*Traveller, error) {
	return m.repo.Get(ctx, additionalID)
}

func (m *Manager) ListByCustomer(ctx context.Context, customerID int64) ([]Traveller, error) {
	return m.repo.ListByCustomer(ctx, customerID)
}

func (m *Manager) Add(ctx context.Context, t *Traveller) (*Traveller, error) {
	row, err := normalize(t)
	if err != nil {
		audit(ctx, "create", 0, err)
		return nil, err
	}
	added, err := m.repo.Add(ctx, row)
	if err != nil {
		audit(ctx, "create", 0, err)
		return nil, err
	}
	audit(ctx, "create", added.AdditionalID, nil)
	return added, nil
}

func (m *Manager) Update(ctx context.Context, customerID int64, t *Traveller) (*Traveller, error) {
	row, err := normalize(t)
	if err != nil {
		var id int64
		if t != nil {
			id = t.AdditionalID
		}
		audit(ctx, "update", id, err)
		return nil, err
	}
	if customerID != row.CustomerID {
		applog.LogDebug(ctx, "traveller update route customer differs from payload",
			zap.Int64("route_customer_id", customerID),
			zap.Int64("customer_id", row.CustomerID),
		)
	}
	updated, err := m.repo.Update(ctx, row)
	audit(ctx, "update", row.AdditionalID, err)
	return updated, err
}

func (m *Manager) Delete(ctx context.Context, additionalID int64) (*Traveller, error) {
	removed, err := m.repo.Delete(ctx, additionalID)
	audit(ctx, "delete", additionalID, err)
	return removed, err
}

func normalize(t *Traveller) (*Traveller, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: traveller is required", ErrInvalidData)
	}
	row := Traveller{
		AdditionalID:   t.AdditionalID,
		CustomerID:     t.CustomerID,
		AdditionalName: strings.TrimSpace(t.AdditionalName),
	}
	if row.AdditionalName == "" {
		return nil, fmt.Errorf("%w: name must not be blank", ErrInvalidData)
	}
	if row.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customer id must be positive", ErrInvalidData)
	}
	return &row, nil
}

func audit(ctx context.Context, action string, additionalID int64, err error) {
	ev := applog.AuditEvent{
		Action:       action,
		ResourceType: "traveller",
		ResourceID:   strconv.FormatInt(additionalID, 10),
	}
	if err != nil {
		ev.Result = applog.AuditFailure
		ev.Details = map[string]any{"error": categorizeError(err)}
	}
	applog.LogAuditEvent(ctx, ev)
}

func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrOwnerNotFound):
		return "owner_not_found"
	case errors.Is(err, ErrInvalidData):
		return "invalid_data"
	default:
		return "internal_error"
	}
}
