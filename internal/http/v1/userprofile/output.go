package userprofile

// ProfileListOutput for GET /api/UserProfile/All
type ProfileListOutput struct {
	Body []Profile
}

// ProfileOutput carries a single profile.
type ProfileOutput struct {
	Body Profile
}

// LoginDetailsOutput carries the contact projection.
type LoginDetailsOutput struct {
	Body LoginDetails
}

// PersonalDetailsOutput carries the personal projection.
type PersonalDetailsOutput struct {
	Body PersonalDetails
}

// PasswordChangedOutput for PUT /api/UserProfile/ChangePass/{customerId}
type PasswordChangedOutput struct {
	Body PasswordChanged
}

// ImageRefOutput carries the stored image name.
type ImageRefOutput struct {
	Body ImageRef
}

// ImageFileOutput streams the stored image bytes.
type ImageFileOutput struct {
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	Body         []byte
}

// RegisteredOutput for POST /api/UserProfile/register
type RegisteredOutput struct {
	Body Registered
}

// TokenOutput for POST /api/UserProfile/login/Authenticator
type TokenOutput struct {
	Body string `doc:"Signed access token"`
}
