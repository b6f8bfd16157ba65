package userprofile

import (
	"github.com/janisto/travel-profiles/internal/platform/timeutil"
	profilesvc "github.com/janisto/travel-profiles/internal/service/profile"
)

// Profile represents a customer profile response. The password hash is never exposed.
type Profile struct {
	CustomerID    int64         `json:"customerId"    doc:"Customer identifier"     example:"1"`
	Name          string        `json:"name"          doc:"Full name"               example:"Ada Lovelace"`
	Dob           timeutil.Date `json:"dob"           doc:"Date of birth"           example:"1815-12-10"`
	Gender        string        `json:"gender"        doc:"Gender"                  example:"F"`
	MaritalStatus string        `json:"maritalStatus" doc:"Marital status"          example:"Married"`
	MobileNumber  int64         `json:"mobileNumber"  doc:"10 digit mobile number"  example:"9876543210"`
	EmailID       string        `json:"emailId"       doc:"Email address"           example:"ada@example.com"`
	Image         string        `json:"image"         doc:"Stored image file name"  example:"3f2a9c0d8e7b4a1f9c6d5e4b3a2f1e0d.jpg"`
}

// LoginDetails is the contact projection of a profile.
type LoginDetails struct {
	CustomerID   int64  `json:"customerId"   doc:"Customer identifier"    example:"1"`
	EmailID      string `json:"emailId"      doc:"Email address"          example:"ada@example.com"`
	MobileNumber int64  `json:"mobileNumber" doc:"10 digit mobile number" example:"9876543210"`
}

// PersonalDetails is the personal projection of a profile.
type PersonalDetails struct {
	CustomerID    int64         `json:"customerId"    doc:"Customer identifier" example:"1"`
	Name          string        `json:"name"          doc:"Full name"           example:"Ada Lovelace"`
	Dob           timeutil.Date `json:"dob"           doc:"Date of birth"       example:"1815-12-10"`
	Gender        string        `json:"gender"        doc:"Gender"              example:"F"`
	MaritalStatus string        `json:"maritalStatus" doc:"Marital status"      example:"Married"`
}

// PasswordChanged confirms a password change.
type PasswordChanged struct {
	CustomerID int64         `json:"customerId" doc:"Customer identifier"   example:"1"`
	Message    string        `json:"message"    doc:"Outcome"               example:"Password changed"`
	ChangedAt  timeutil.Time `json:"changedAt"  doc:"Time of the change"    example:"2024-01-15T10:30:00.000Z"`
}

// ImageRef names the stored image of a profile.
type ImageRef struct {
	CustomerID int64  `json:"customerId" doc:"Customer identifier"    example:"1"`
	Image      string `json:"image"      doc:"Stored image file name" example:"3f2a9c0d8e7b4a1f9c6d5e4b3a2f1e0d.jpg"`
}

// Registered is the public result of a sign-up.
type Registered struct {
	CustomerID int64  `json:"customerId" doc:"Customer identifier" example:"1"`
	EmailID    string `json:"emailId"    doc:"Email address"       example:"ada@example.com"`
	Name       string `json:"name"       doc:"Full name"           example:"Ada Lovelace"`
}

func toHTTPProfile(p *profilesvc.Profile) Profile {
	return Profile{
		CustomerID:    p.CustomerID,
		Name:          p.Name,
		Dob:           p.Dob,
		Gender:        p.Gender,
		MaritalStatus: p.MaritalStatus,
		MobileNumber:  p.MobileNumber,
		EmailID:       p.EmailID,
		Image:         p.Image,
	}
}

func toHTTPProfiles(in []profilesvc.Profile) []Profile {
	out := make([]Profile, 0, len(in))
	for i := range in {
		out = append(out, toHTTPProfile(&in[i]))
	}
	return out
}

func toHTTPLogin(l *profilesvc.LoginDetails) LoginDetails {
	return LoginDetails{CustomerID: l.CustomerID, EmailID: l.EmailID, MobileNumber: l.MobileNumber}
}

func toHTTPDetails(d *profilesvc.PersonalDetails) PersonalDetails {
	return PersonalDetails{
		CustomerID:    d.CustomerID,
		Name:          d.Name,
		Dob:           d.Dob,
		Gender:        d.Gender,
		MaritalStatus: d.MaritalStatus,
	}
}
