// Package forgotpassword exposes the password reset endpoint.
package forgotpassword

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	applog "github.com/janisto/travel-profiles/internal/platform/logging"
	"github.com/janisto/travel-profiles/internal/service/recovery"
)

const msgResetDone = "Password reset successful. Check your email for the new password."

// Resetter replaces a forgotten password.
type Resetter interface {
	Reset(ctx context.Context, email string) error
}

// Input for POST /api/ForgotPassword
type Input struct {
	Body struct {
		Email string `json:"email" maxLength:"255" required:"false" doc:"Registered email address" example:"ada@example.com"`
	}
}

// Output for POST /api/ForgotPassword
type Output struct {
	Body struct {
		Message string `json:"message" doc:"Outcome" example:"Password reset successful. Check your email for the new password."`
	}
}

// Register registers the forgot-password endpoint.
func Register(api huma.API, svc Resetter) {
	huma.Register(api, huma.Operation{
		OperationID: "forgot-password",
		Method:      http.MethodPost,
		Path:        "/api/ForgotPassword",
		Summary:     "Reset a forgotten password",
		Description: "Generates a new password and mails it to the registered address.",
		Tags:        []string{"ForgotPassword"},
	}, func(ctx context.Context, input *Input) (*Output, error) {
		if err := svc.Reset(ctx, input.Body.Email); err != nil {
			switch {
			case errors.Is(err, recovery.ErrInvalidData):
				return nil, huma.Error400BadRequest("email is required")
			case errors.Is(err, recovery.ErrNotFound):
				return nil, huma.Error404NotFound("email not registered")
			default:
				applog.LogError(ctx, "password reset failed", err)
				return nil, huma.Error500InternalServerError("password reset failed")
			}
		}
		out := &Output{}
		out.Body.Message = msgResetDone
		return out, nil
	})
}
