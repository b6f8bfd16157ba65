// Package userprofile exposes the customer profile endpoints under /api/UserProfile.
package userprofile

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/travel-profiles/internal/platform/logging"
	"github.com/janisto/travel-profiles/internal/platform/timeutil"
	profilesvc "github.com/janisto/travel-profiles/internal/service/profile"
)

const (
	basePath = "/api/UserProfile"
	tag      = "UserProfile"

	msgPasswordChanged = "Password changed"
	msgUploadFailed    = "image upload failed"
)

// Register registers profile endpoints. maxImageBytes bounds multipart uploads.
func Register(api huma.API, svc profilesvc.Service, maxImageBytes int64) {
	huma.Register(api, huma.Operation{
		OperationID: "list-profiles",
		Method:      http.MethodGet,
		Path:        basePath + "/All",
		Summary:     "List profiles",
		Tags:        []string{tag},
	}, func(ctx context.Context, _ *ProfileListInput) (*ProfileListOutput, error) {
		profiles, err := svc.List(ctx)
		if err != nil {
			return nil, mapServiceError(ctx, err, http.StatusUnprocessableEntity)
		}
		return &ProfileListOutput{Body: toHTTPProfiles(profiles)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-profile",
		Method:      http.MethodPost,
		Path:        basePath + "/All/reg",
		Summary:     "Add profile",
		Description: "Creates a profile. A supplied password is stored as a bcrypt hash.",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *ProfileAddInput) (*ProfileOutput, error) {
		p := fromBody(input.Body.ProfileBody)
		p.Password = input.Body.Password
		added, err := svc.Add(ctx, p)
		if err != nil {
			return nil, mapServiceError(ctx, err, http.StatusUnprocessableEntity)
		}
		return &ProfileOutput{Body: toHTTPProfile(added)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPut,
		Path:        basePath,
		Summary:     "Update profile",
		Description: "Overwrites the personal and contact fields of a profile. Password and image are kept.",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *ProfileUpdateInput) (*ProfileOutput, error) {
		p := fromBody(input.Body.ProfileBody)
		p.CustomerID = input.Body.CustomerID
		updated, err := svc.Update(ctx, p)
		if err != nil {
			return nil, mapServiceError(ctx, err, http.StatusUnprocessableEntity)
		}
		return &ProfileOutput{Body: toHTTPProfile(updated)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-profile",
		Method:      http.MethodDelete,
		Path:        basePath + "/{customerId}",
		Summary:     "Delete profile",
		Description: "Deletes the profile with its travellers and image, returning the removed profile.",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *CustomerPath) (*ProfileOutput, error) {
		removed, err := svc.Delete(ctx, input.CustomerID)
		if err != nil {
			return nil, mapServiceError(ctx, err, http.StatusUnprocessableEntity)
		}
		return &ProfileOutput{Body: toHTTPProfile(removed)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        basePath + "/filter/{customerId}",
		Summary:     "Get profile",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *CustomerPath) (*ProfileOutput, error) {
		p, err := svc.Get(ctx, input.CustomerID)
		if err != nil {
			return nil, mapServiceError(ctx, err, http.StatusUnprocessableEntity)
		}
		return &ProfileOutput{Body: toHTTPProfile(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-login-details",
		Method:      http.MethodGet,
		Path:        basePath + "/login/{customerId}",
		Summary:     "Get login details",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *CustomerPath) (*LoginDetailsOutput, error) {
		l, err := svc.GetLogin(ctx, input.CustomerID)
		if err != nil {
			return nil, mapServiceError(ctx, err, http.StatusUnprocessableEntity)
		}
		return &LoginDetailsOutput{Body: toHTTPLogin(l)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-login-details",
		Method:      http.MethodPut,
		Path:        basePath + "/login_dto/{customerId}",
		Summary:     "Update login details",
		Description: "Updates email and mobile number. Omitted fields keep their stored value.",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *LoginUpdateInput) (*LoginDetailsOutput, error) {
		l, err := svc.UpdateLogin(ctx, input.CustomerID, profilesvc.LoginUpdate{
			EmailID:      input.Body.EmailID,
			MobileNumber: input.Body.MobileNumber,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err, http.StatusUnprocessableEntity)
		}
		return &LoginDetailsOutput{Body: toHTTPLogin(l)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-personal-details",
		Method:      http.MethodGet,
		Path:        basePath + "/profile_dto/{customerId}",
		Summary:     "Get personal details",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *CustomerPath) (*PersonalDetailsOutput, error) {
		d, err := svc.GetDetails(ctx, input.CustomerID)
		if err != nil {
			return nil, mapServiceError(ctx, err, http.StatusUnprocessableEntity)
		}
		return &PersonalDetailsOutput{Body: toHTTPDetails(d)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-personal-details",
		Method:      http.MethodPut,
		Path:        basePath + "/profile_dto/{customerId}",
		Summary:     "Update personal details",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *DetailsUpdateInput) (*PersonalDetailsOutput, error) {
		d, err := svc.UpdateDetails(ctx, input.CustomerID, profilesvc.PersonalDetails{
			Name:          input.Body.Name,
			Dob:           input.Body.Dob,
			Gender:        input.Body.Gender,
			MaritalStatus: input.Body.MaritalStatus,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err, http.StatusUnprocessableEntity)
		}
		return &PersonalDetailsOutput{Body: toHTTPDetails(d)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "change-password",
		Method:      http.MethodPut,
		Path:        basePath + "/ChangePass/{customerId}",
		Summary:     "Change password",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *ChangePasswordInput) (*PasswordChangedOutput, error) {
		res, err := svc.ChangePassword(ctx, input.CustomerID, input.Body.OldPassword, input.Body.NewPassword)
		if err != nil {
			return nil, mapServiceError(ctx, err, http.StatusBadRequest)
		}
		return &PasswordChangedOutput{Body: PasswordChanged{
			CustomerID: res.CustomerID,
			Message:    msgPasswordChanged,
			ChangedAt:  timeutil.NewTime(res.ChangedAt),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:  "update-profile-image",
		Method:       http.MethodPut,
		Path:         basePath + "/updateimage/{customerId}",
		Summary:      "Upload profile image",
		Description:  "Replaces the profile image with the multipart `file` part.",
		Tags:         []string{tag},
		MaxBodyBytes: maxImageBytes,
	}, func(ctx context.Context, input *UpdateImageInput) (*ImageRefOutput, error) {
		form := input.RawBody.Data()
		upload := &profilesvc.ImageUpload{}
		if form != nil && form.File.IsSet {
			defer form.File.Close()
			upload.Reader = form.File
			upload.ContentType = form.File.ContentType
			upload.Size = form.File.Size
		}
		ref, err := svc.UpdateImage(ctx, input.CustomerID, upload)
		if err != nil {
			if errors.Is(err, profilesvc.ErrNotFound) || errors.Is(err, profilesvc.ErrImageRequired) {
				return nil, mapServiceError(ctx, err, http.StatusBadRequest)
			}
			applog.LogError(ctx, "profile image upload failed", err, zap.Int64("customer_id", input.CustomerID))
			return nil, huma.Error500InternalServerError(msgUploadFailed)
		}
		return &ImageRefOutput{Body: ImageRef{CustomerID: ref.CustomerID, Image: ref.Image}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "view-profile-image",
		Method:      http.MethodGet,
		Path:        basePath + "/view_image/{customerId}",
		Summary:     "Get profile image name",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *CustomerPath) (*ImageRefOutput, error) {
		ref, err := svc.ViewImage(ctx, input.CustomerID)
		if err != nil {
			return nil, mapServiceError(ctx, err, http.StatusUnprocessableEntity)
		}
		return &ImageRefOutput{Body: ImageRef{CustomerID: ref.CustomerID, Image: ref.Image}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile-image-file",
		Method:      http.MethodGet,
		Path:        basePath + "/view_image/{customerId}/file",
		Summary:     "Download profile image",
		Tags:        []string{tag},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Image bytes",
				Content: map[string]*huma.MediaType{
					"image/*": {Schema: &huma.Schema{Type: huma.TypeString, Format: "binary"}},
				},
			},
		},
	}, func(ctx context.Context, input *CustomerPath) (*ImageFileOutput, error) {
		rc, contentType, err := svc.OpenImage(ctx, input.CustomerID)
		if err != nil {
			return nil, mapServiceError(ctx, err, http.StatusUnprocessableEntity)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, mapServiceError(ctx, err, http.StatusUnprocessableEntity)
		}
		return &ImageFileOutput{
			ContentType:  contentType,
			CacheControl: "private, max-age=300",
			Body:         data,
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        basePath + "/register",
		Summary:     "Register",
		Description: "Creates a profile from a name, email and password.",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *RegisterInput) (*RegisteredOutput, error) {
		r, err := svc.Register(ctx, profilesvc.Registration{
			Name:     input.Body.Name,
			EmailID:  input.Body.EmailID,
			Password: input.Body.Password,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err, http.StatusBadRequest)
		}
		return &RegisteredOutput{Body: Registered{CustomerID: r.CustomerID, EmailID: r.EmailID, Name: r.Name}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        basePath + "/login/Authenticator",
		Summary:     "Log in",
		Description: "Checks the credentials and returns a signed access token.",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *LoginInput) (*TokenOutput, error) {
		token, err := svc.Login(ctx, profilesvc.Credentials{
			EmailID:  input.Body.EmailID,
			Password: input.Body.Password,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err, http.StatusBadRequest)
		}
		return &TokenOutput{Body: token}, nil
	})
}

func fromBody(b ProfileBody) *profilesvc.Profile {
	return &profilesvc.Profile{
		Name:          b.Name,
		Dob:           b.Dob,
		Gender:        b.Gender,
		MaritalStatus: b.MaritalStatus,
		MobileNumber:  b.MobileNumber,
		EmailID:       b.EmailID,
	}
}

// mapServiceError converts service errors to problem responses. invalidStatus is
// used for rejected input. Unexpected errors are logged and reported without detail.
func mapServiceError(ctx context.Context, err error, invalidStatus int) error {
	switch {
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("profile not found")
	case errors.Is(err, profilesvc.ErrNoImage):
		return huma.Error404NotFound("profile has no image")
	case errors.Is(err, profilesvc.ErrInvalidData):
		return huma.NewError(invalidStatus, err.Error())
	case errors.Is(err, profilesvc.ErrInvalidCredentials):
		return huma.Error400BadRequest("invalid credentials")
	case errors.Is(err, profilesvc.ErrImageRequired):
		return huma.Error400BadRequest("image file is required")
	case errors.Is(err, profilesvc.ErrNameRequired):
		return huma.Error400BadRequest("profile has no name")
	default:
		applog.LogError(ctx, "profile operation failed", err)
		return huma.Error500InternalServerError("internal server error")
	}
}
