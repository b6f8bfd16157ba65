package userprofile

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/travel-profiles/internal/platform/timeutil"
)

// ProfileBody carries the writable profile fields.
type ProfileBody struct {
	Name          string        `json:"name"                    maxLength:"255"                required:"false" doc:"Full name"              example:"Ada Lovelace"`
	Dob           timeutil.Date `json:"dob"                                                    required:"false" doc:"Date of birth"          example:"1815-12-10"`
	Gender        string        `json:"gender"                  maxLength:"32"                 required:"false" doc:"Gender"                 example:"F"`
	MaritalStatus string        `json:"maritalStatus"           maxLength:"32"                 required:"false" doc:"Marital status"         example:"Married"`
	MobileNumber  int64         `json:"mobileNumber"            minimum:"0" maximum:"9999999999" required:"false" doc:"10 digit mobile number" example:"9876543210"`
	EmailID       string        `json:"emailId"                 maxLength:"255"                required:"false" doc:"Email address"          example:"ada@example.com"`
}

// ProfileListInput for GET /api/UserProfile/All
type ProfileListInput struct{}

// ProfileAddInput for POST /api/UserProfile/All/reg
type ProfileAddInput struct {
	Body struct {
		ProfileBody
		Password string `json:"password" maxLength:"72" required:"false" doc:"Initial password; stored as a bcrypt hash" example:"s3cret-pass"`
	}
}

// ProfileUpdateInput for PUT /api/UserProfile
type ProfileUpdateInput struct {
	Body struct {
		CustomerID int64 `json:"customerId" minimum:"1" required:"true" doc:"Customer identifier" example:"1"`
		ProfileBody
	}
}

// CustomerPath identifies a profile by path parameter.
type CustomerPath struct {
	CustomerID int64 `path:"customerId" minimum:"1" doc:"Customer identifier" example:"1"`
}

// LoginUpdateInput for PUT /api/UserProfile/login_dto/{customerId}
type LoginUpdateInput struct {
	CustomerPath
	Body struct {
		EmailID      *string `json:"emailId,omitempty"      maxLength:"255"                  doc:"Email address"          example:"ada@example.com"`
		MobileNumber *int64  `json:"mobileNumber,omitempty" minimum:"0" maximum:"9999999999" doc:"10 digit mobile number" example:"9876543210"`
	}
}

// DetailsUpdateInput for PUT /api/UserProfile/profile_dto/{customerId}
type DetailsUpdateInput struct {
	CustomerPath
	Body struct {
		Name          string        `json:"name"          maxLength:"255" required:"false" doc:"Full name"      example:"Ada Lovelace"`
		Dob           timeutil.Date `json:"dob"                           required:"false" doc:"Date of birth"  example:"1815-12-10"`
		Gender        string        `json:"gender"        maxLength:"32"  required:"false" doc:"Gender"         example:"F"`
		MaritalStatus string        `json:"maritalStatus" maxLength:"32"  required:"false" doc:"Marital status" example:"Married"`
	}
}

// ChangePasswordInput for PUT /api/UserProfile/ChangePass/{customerId}
type ChangePasswordInput struct {
	CustomerPath
	Body struct {
		OldPassword string `json:"oldPassword" maxLength:"72" required:"false" doc:"Current password" example:"old-pass"`
		NewPassword string `json:"newPassword" maxLength:"72" required:"false" doc:"New password"     example:"new-pass"`
	}
}

// ImageForm is the multipart form of an image upload.
type ImageForm struct {
	File huma.FormFile `form:"file" contentType:"image/jpeg,image/png,image/gif,image/webp" doc:"Profile image"`
}

// UpdateImageInput for PUT /api/UserProfile/updateimage/{customerId}
type UpdateImageInput struct {
	CustomerPath
	RawBody huma.MultipartFormFiles[ImageForm]
}

// RegisterInput for POST /api/UserProfile/register
type RegisterInput struct {
	Body struct {
		Name     string `json:"name"     maxLength:"255" required:"false" doc:"Full name"     example:"Ada Lovelace"`
		EmailID  string `json:"emailId"  maxLength:"255" required:"true"  doc:"Email address" example:"ada@example.com"`
		Password string `json:"password" maxLength:"72"  required:"false" doc:"Password"      example:"s3cret-pass"`
	}
}

// LoginInput for POST /api/UserProfile/login/Authenticator
type LoginInput struct {
	Body struct {
		EmailID  string `json:"emailId"  maxLength:"255" required:"false" doc:"Email address" example:"ada@example.com"`
		Password string `json:"password" maxLength:"72"  required:"false" doc:"Password"      example:"s3cret-pass"`
	}
}
