package profile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	applog "github.com/janisto/travel-profiles/internal/platform/logging"
)

// ChangePassword verifies oldPassword against the stored hash and stores a hash of newPassword.
func (m *Manager) ChangePassword(ctx context.Context, customerID int64, oldPassword, newPassword string) (*PasswordChange, error) {
	p, err := m.repo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if oldPassword == "" || newPassword == "" {
		err = fmt.Errorf("%w: old and new password are required", ErrInvalidData)
		m.audit(ctx, "change_password", customerID, err, nil)
		return nil, err
	}
	if !m.hasher.Verify(oldPassword, p.Password) {
		m.audit(ctx, "change_password", customerID, ErrInvalidCredentials, nil)
		return nil, ErrInvalidCredentials
	}
	hash, err := m.hasher.Hash(newPassword)
	if err != nil {
		return nil, err
	}
	p.Password = hash
	if _, err := m.repo.Update(ctx, p); err != nil {
		m.audit(ctx, "change_password", customerID, err, nil)
		return nil, err
	}
	m.audit(ctx, "change_password", customerID, nil, nil)
	return &PasswordChange{CustomerID: customerID, Hash: hash, ChangedAt: m.now().UTC()}, nil
}

// Register creates a profile from a sign-up request.
func (m *Manager) Register(ctx context.Context, in Registration) (*Registered, error) {
	if in.Password == "" {
		err := fmt.Errorf("%w: password is required", ErrInvalidData)
		m.audit(ctx, "register", 0, err, nil)
		return nil, err
	}
	if err := validateContact(0, in.EmailID); err != nil {
		m.audit(ctx, "register", 0, err, nil)
		return nil, err
	}
	hash, err := m.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	added, err := m.repo.Add(ctx, &Profile{
		Name:     strings.TrimSpace(in.Name),
		EmailID:  in.EmailID,
		Password: hash,
	})
	if err != nil {
		return nil, err
	}
	m.audit(ctx, "register", added.CustomerID, nil, nil)
	return &Registered{CustomerID: added.CustomerID, EmailID: added.EmailID, Name: added.Name}, nil
}

// Login checks credentials and returns a signed token. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials.
func (m *Manager) Login(ctx context.Context, in Credentials) (string, error) {
	if strings.TrimSpace(in.EmailID) == "" || in.Password == "" {
		return "", fmt.Errorf("%w: email and password are required", ErrInvalidData)
	}
	p, err := m.repo.GetByEmail(ctx, in.EmailID)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		m.auditLogin(ctx, "", ErrInvalidCredentials)
		return "", ErrInvalidCredentials
	default:
		return "", err
	}
	id := strconv.FormatInt(p.CustomerID, 10)
	if !m.hasher.Verify(in.Password, p.Password) {
		m.auditLogin(ctx, id, ErrInvalidCredentials)
		return "", ErrInvalidCredentials
	}
	if strings.TrimSpace(p.Name) == "" {
		m.auditLogin(ctx, id, ErrNameRequired)
		return "", ErrNameRequired
	}
	token, err := m.tokens.Issue(p.CustomerID, p.Name)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	m.auditLogin(ctx, id, nil)
	return token, nil
}

func (m *Manager) auditLogin(ctx context.Context, customerID string, err error) {
	ev := applog.AuditEvent{Action: "login", Actor: customerID, ResourceType: resourceType, ResourceID: customerID}
	if err != nil {
		ev.Result = applog.AuditFailure
		ev.Details = map[string]any{"error": categorizeError(err)}
	}
	applog.LogAuditEvent(ctx, ev)
}
