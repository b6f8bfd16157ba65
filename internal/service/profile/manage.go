package profile

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	applog "github.com/janisto/travel-profiles/internal/platform/logging"
)

const resourceType = "profile"

func (m *Manager) audit(ctx context.Context, action string, customerID int64, err error, details map[string]any) {
	ev := applog.AuditEvent{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   strconv.FormatInt(customerID, 10),
		Details:      details,
	}
	if err != nil {
		ev.Result = applog.AuditFailure
		ev.Details = map[string]any{"error": categorizeError(err)}
	}
	applog.LogAuditEvent(ctx, ev)
}

func (m *Manager) List(ctx context.Context) ([]Profile, error) {
	return m.repo.List(ctx)
}

func (m *Manager) Get(ctx context.Context, customerID int64) (*Profile, error) {
	return m.repo.Get(ctx, customerID)
}

func (m *Manager) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	return m.repo.GetByEmail(ctx, email)
}

// Add validates contact fields, hashes a supplied password and inserts the profile.
func (m *Manager) Add(ctx context.Context, p *Profile) (*Profile, error) {
	if err := validateContact(p.MobileNumber, p.EmailID); err != nil {
		m.audit(ctx, "create", 0, err, nil)
		return nil, err
	}
	row := *p
	if row.Password != "" {
		hash, err := m.hasher.Hash(row.Password)
		if err != nil {
			return nil, err
		}
		row.Password = hash
	}
	added, err := m.repo.Add(ctx, &row)
	if err != nil {
		return nil, err
	}
	m.audit(ctx, "create", added.CustomerID, nil, nil)
	return added, nil
}

// Update overwrites personal and contact fields. The stored password hash and image are kept.
func (m *Manager) Update(ctx context.Context, p *Profile) (*Profile, error) {
	if err := validateContact(p.MobileNumber, p.EmailID); err != nil {
		m.audit(ctx, "update", p.CustomerID, err, nil)
		return nil, err
	}
	current, err := m.repo.Get(ctx, p.CustomerID)
	if err != nil {
		m.audit(ctx, "update", p.CustomerID, err, nil)
		return nil, err
	}
	row := *p
	row.Password = current.Password
	row.Image = current.Image
	updated, err := m.repo.Update(ctx, &row)
	m.audit(ctx, "update", p.CustomerID, err, nil)
	return updated, err
}

// Delete removes the profile and then its image file. Failing to remove the file is
// logged and does not fail the call.
func (m *Manager) Delete(ctx context.Context, customerID int64) (*Profile, error) {
	removed, err := m.repo.Delete(ctx, customerID)
	m.audit(ctx, "delete", customerID, err, nil)
	if err != nil {
		return nil, err
	}
	if removed.Image != "" {
		if err := m.images.Delete(ctx, removed.Image); err != nil {
			applog.LogWarn(ctx, "orphaned profile image", zap.String("image", removed.Image), zap.Error(err))
		}
	}
	return removed, nil
}

func (m *Manager) GetLogin(ctx context.Context, customerID int64) (*LoginDetails, error) {
	p, err := m.repo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return loginDetails(p), nil
}

func (m *Manager) UpdateLogin(ctx context.Context, customerID int64, in LoginUpdate) (*LoginDetails, error) {
	p, err := m.repo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if in.EmailID != nil {
		p.EmailID = *in.EmailID
	}
	if in.MobileNumber != nil {
		p.MobileNumber = *in.MobileNumber
	}
	if err := validateContact(p.MobileNumber, p.EmailID); err != nil {
		m.audit(ctx, "update_login", customerID, err, nil)
		return nil, err
	}
	updated, err := m.repo.Update(ctx, p)
	m.audit(ctx, "update_login", customerID, err, nil)
	if err != nil {
		return nil, err
	}
	return loginDetails(updated), nil
}

func (m *Manager) GetDetails(ctx context.Context, customerID int64) (*PersonalDetails, error) {
	p, err := m.repo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return personalDetails(p), nil
}

func (m *Manager) UpdateDetails(ctx context.Context, customerID int64, in PersonalDetails) (*PersonalDetails, error) {
	p, err := m.repo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.Dob = in.Dob
	p.Gender = in.Gender
	p.MaritalStatus = in.MaritalStatus
	updated, err := m.repo.Update(ctx, p)
	m.audit(ctx, "update_details", customerID, err, nil)
	if err != nil {
		return nil, err
	}
	return personalDetails(updated), nil
}

func loginDetails(p *Profile) *LoginDetails {
	return &LoginDetails{CustomerID: p.CustomerID, EmailID: p.EmailID, MobileNumber: p.MobileNumber}
}

func personalDetails(p *Profile) *PersonalDetails {
	return &PersonalDetails{
		CustomerID:    p.CustomerID,
		Name:          p.Name,
		Dob:           p.Dob,
		Gender:        p.Gender,
		MaritalStatus: p.MaritalStatus,
	}
}
