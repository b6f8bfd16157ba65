package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/travel-profiles/internal/http/v1/forgotpassword"
	"github.com/janisto/travel-profiles/internal/http/v1/traveller"
	"github.com/janisto/travel-profiles/internal/http/v1/userprofile"
	profilesvc "github.com/janisto/travel-profiles/internal/service/profile"
	travellersvc "github.com/janisto/travel-profiles/internal/service/traveller"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Profiles   profilesvc.Service
	Travellers travellersvc.Service
	Recovery   forgotpassword.Resetter
	// MaxImageBytes bounds profile image uploads.
	MaxImageBytes int64
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, svc Services) {
	userprofile.Register(api, svc.Profiles, svc.MaxImageBytes)
	traveller.Register(api, svc.Travellers)
	forgotpassword.Register(api, svc.Recovery)
}
