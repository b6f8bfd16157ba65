// Package recovery resets forgotten passwords and delivers the replacement by mail.
package recovery

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	applog "github.com/janisto/travel-profiles/internal/platform/logging"
	"github.com/janisto/travel-profiles/internal/platform/mail"
	"github.com/janisto/travel-profiles/internal/platform/password"
	profilerepo "github.com/janisto/travel-profiles/internal/repository/profile"
)

// PasswordLength is the length of generated replacement passwords.
const PasswordLength = 10

var (
	ErrNotFound    = profilerepo.ErrNotFound
	ErrInvalidData = errors.New("email is required")
)

const resetSubject = "Your password has been reset"

// Service resets passwords.
type Service struct {
	repo     profilerepo.Repository
	hasher   *password.Hasher
	mailer   mail.Mailer
	generate func(n int) (string, error)
}

func NewService(repo profilerepo.Repository, hasher *password.Hasher, mailer mail.Mailer) *Service {
	return &Service{repo: repo, hasher: hasher, mailer: mailer, generate: password.Generate}
}

// Reset replaces the password of the profile registered with email and mails the new
// one to that address. The old hash is restored when the mail cannot be delivered.
func (s *Service) Reset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidData
	}
	p, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.audit(ctx, "", err)
		return err
	}
	id := strconv.FormatInt(p.CustomerID, 10)

	plain, err := s.generate(PasswordLength)
	if err != nil {
		return fmt.Errorf("generate password: %w", err)
	}
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return err
	}
	previous := p.Password
	p.Password = hash
	if _, err := s.repo.Update(ctx, p); err != nil {
		s.audit(ctx, id, err)
		return err
	}

	msg := mail.Message{
		To:      p.EmailID,
		Subject: resetSubject,
		Text:    fmt.Sprintf("Hello %s,\r\n\r\nYour new password is: %s\r\n\r\nPlease change it after signing in.\r\n", displayName(p), plain),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		p.Password = previous
		if _, rerr := s.repo.Update(ctx, p); rerr != nil {
			applog.LogError(ctx, "restore password after failed reset mail", rerr)
		}
		s.audit(ctx, id, err)
		return fmt.Errorf("send reset mail: %w", err)
	}
	s.audit(ctx, id, nil)
	return nil
}

func displayName(p *profilerepo.Profile) string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return "customer"
}

func (s *Service) audit(ctx context.Context, customerID string, err error) {
	ev := applog.AuditEvent{Action: "reset_password", ResourceType: "profile", ResourceID: customerID}
	if err != nil {
		ev.Result = applog.AuditFailure
		category := "internal_error"
		if errors.Is(err, ErrNotFound) {
			category = "not_found"
		}
		ev.Details = map[string]any{"error": category}
	}
	applog.LogAuditEvent(ctx, ev)
}
